package subscription

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinova/clinic-api/internal/application/dto"
	"github.com/clinova/clinic-api/internal/application/guard"
	"github.com/clinova/clinic-api/internal/domain"
	"github.com/clinova/clinic-api/internal/domain/entity"
	"github.com/clinova/clinic-api/internal/domain/plan"
	"github.com/clinova/clinic-api/internal/domain/repository"
)

const paidPeriodDays = 30

// PaymentProvider is the checkout side of the payment gateway.
type PaymentProvider interface {
	// CreateOrder opens an order for amountINR and returns the provider's
	// order id.
	CreateOrder(ctx context.Context, amountINR int, receipt string) (string, error)
	// VerifySignature checks the callback signature over orderID and
	// paymentID.
	VerifySignature(orderID, paymentID, signature string) bool
	// KeyID is the public key the frontend widget needs.
	KeyID() string
}

// UseCase handles plan checkout and activation.
type UseCase struct {
	subRepo    repository.SubscriptionRepository
	clinicRepo repository.ClinicRepository
	provider   PaymentProvider
	guard      *guard.Service
}

// NewUseCase builds the use case.
func NewUseCase(
	subRepo repository.SubscriptionRepository,
	clinicRepo repository.ClinicRepository,
	provider PaymentProvider,
	g *guard.Service,
) *UseCase {
	return &UseCase{subRepo: subRepo, clinicRepo: clinicRepo, provider: provider, guard: g}
}

// Checkout opens a provider order for the requested plan and records a
// pending subscription.
func (uc *UseCase) Checkout(ctx context.Context, clinicID string, in dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if !plan.Purchasable(in.Plan) {
		return nil, domain.ErrInvalidInput
	}
	clinic, err := uc.clinicRepo.GetByID(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	if clinic == nil {
		return nil, domain.ErrUnauthenticated
	}
	p := plan.Get(in.Plan)

	subID := uuid.New().String()
	orderID, err := uc.provider.CreateOrder(ctx, p.PriceINR, subID)
	if err != nil {
		return nil, err
	}

	sub := &entity.Subscription{
		ID:              subID,
		ClinicID:        clinicID,
		Plan:            in.Plan,
		AmountINR:       p.PriceINR,
		Status:          entity.SubscriptionPending,
		Provider:        "razorpay",
		ProviderOrderID: orderID,
		CreatedAt:       time.Now(),
	}
	if err := uc.subRepo.Create(ctx, sub); err != nil {
		return nil, err
	}
	return &dto.CheckoutResponse{
		OrderID:   orderID,
		AmountINR: p.PriceINR,
		KeyID:     uc.provider.KeyID(),
	}, nil
}

// Verify checks the provider callback signature and, on success, activates
// the subscription and upgrades the clinic for the paid period. A bad
// signature marks the subscription failed and leaves the clinic untouched.
func (uc *UseCase) Verify(ctx context.Context, clinicID string, in dto.VerifyPaymentRequest) (*dto.SubscriptionStatusResponse, error) {
	if in.OrderID == "" || in.PaymentID == "" || in.Signature == "" {
		return nil, domain.ErrInvalidInput
	}
	sub, err := uc.subRepo.GetByProviderOrder(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if sub == nil || sub.ClinicID != clinicID {
		return nil, domain.ErrNotFound
	}
	if sub.Status == entity.SubscriptionActive {
		return nil, domain.ErrConflict
	}

	if !uc.provider.VerifySignature(in.OrderID, in.PaymentID, in.Signature) {
		sub.Status = entity.SubscriptionFailed
		if err := uc.subRepo.Update(ctx, sub); err != nil {
			return nil, err
		}
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	ends := now.AddDate(0, 0, paidPeriodDays)
	sub.Status = entity.SubscriptionActive
	sub.StartedAt = &now
	sub.EndsAt = &ends
	if err := uc.subRepo.Update(ctx, sub); err != nil {
		return nil, err
	}

	clinic, err := uc.clinicRepo.GetByID(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	if clinic == nil {
		return nil, domain.ErrUnauthenticated
	}
	clinic.Plan = sub.Plan
	clinic.SubscriptionStatus = plan.StatusActive
	clinic.SubscriptionEndsAt = &ends
	if err := uc.clinicRepo.UpdateSubscription(ctx, clinic); err != nil {
		return nil, err
	}
	return uc.toStatus(clinic), nil
}

// Status returns the clinic's current plan state.
func (uc *UseCase) Status(ctx context.Context, clinicID string) (*dto.SubscriptionStatusResponse, error) {
	clinic, err := uc.clinicRepo.GetByID(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	if clinic == nil {
		return nil, domain.ErrUnauthenticated
	}
	return uc.toStatus(clinic), nil
}

func (uc *UseCase) toStatus(clinic *entity.Clinic) *dto.SubscriptionStatusResponse {
	resp := &dto.SubscriptionStatusResponse{
		Plan:               clinic.Plan,
		SubscriptionStatus: clinic.SubscriptionStatus,
		BillingEnabled:     uc.guard.BillingEnabled(clinic),
	}
	if clinic.TrialEndsAt != nil {
		resp.TrialEndsAt = clinic.TrialEndsAt.Format(time.RFC3339)
	}
	if clinic.SubscriptionEndsAt != nil {
		resp.SubscriptionEndsAt = clinic.SubscriptionEndsAt.Format(time.RFC3339)
	}
	return resp
}
