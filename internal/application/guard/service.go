// Package guard enforces subscription-plan quotas and tenant activity.
// It is the only place that knows how plan limits map onto row counts.
package guard

import (
	"context"
	"fmt"
	"time"

	"github.com/clinova/clinic-api/internal/domain"
	"github.com/clinova/clinic-api/internal/domain/entity"
	"github.com/clinova/clinic-api/internal/domain/plan"
	"github.com/clinova/clinic-api/internal/domain/repository"
)

// Service answers plan-limit questions for a clinic. All checks are pure
// reads against current counts; callers must check before creating and
// reject on false. Two concurrent creates can both pass the check before
// either commits, so the limits are soft, not hard guarantees.
type Service struct {
	clinicRepo  repository.ClinicRepository
	userRepo    repository.UserRepository
	patientRepo repository.PatientRepository
	now         func() time.Time
}

// NewService builds the guard.
func NewService(
	clinicRepo repository.ClinicRepository,
	userRepo repository.UserRepository,
	patientRepo repository.PatientRepository,
) *Service {
	return &Service{
		clinicRepo:  clinicRepo,
		userRepo:    userRepo,
		patientRepo: patientRepo,
		now:         time.Now,
	}
}

// WithClock overrides the clock, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// EnsureActive loads the clinic and lazily expires a finished trial before
// any other check runs. It returns the clinic when the tenant may proceed,
// domain.ErrSubscriptionExpired when it is locked out (the caller must still
// allow the subscription-management routes), and domain.ErrUnauthenticated
// when the clinic no longer exists.
func (s *Service) EnsureActive(ctx context.Context, clinicID string) (*entity.Clinic, error) {
	clinic, err := s.clinicRepo.GetByID(ctx, clinicID)
	if err != nil {
		return nil, fmt.Errorf("guard: load clinic: %w", err)
	}
	if clinic == nil {
		return nil, domain.ErrUnauthenticated
	}

	if clinic.SubscriptionStatus == plan.StatusTrial &&
		clinic.TrialEndsAt != nil && clinic.TrialEndsAt.Before(s.now()) {
		clinic.SubscriptionStatus = plan.StatusExpired
		if err := s.clinicRepo.UpdateSubscription(ctx, clinic); err != nil {
			return nil, fmt.Errorf("guard: expire trial: %w", err)
		}
	}

	// A paid period that lapsed behaves like an expired trial.
	if clinic.SubscriptionStatus == plan.StatusActive &&
		clinic.SubscriptionEndsAt != nil && clinic.SubscriptionEndsAt.Before(s.now()) {
		clinic.SubscriptionStatus = plan.StatusExpired
		if err := s.clinicRepo.UpdateSubscription(ctx, clinic); err != nil {
			return nil, fmt.Errorf("guard: expire subscription: %w", err)
		}
	}

	if clinic.SubscriptionStatus == plan.StatusExpired {
		return clinic, domain.ErrSubscriptionExpired
	}
	return clinic, nil
}

// CanAddStaff reports whether the clinic may add one more non-owner user.
func (s *Service) CanAddStaff(ctx context.Context, clinic *entity.Clinic) (bool, error) {
	p := plan.Get(clinic.Plan)
	if p.StaffLimit == nil {
		return true, nil
	}
	count, err := s.userRepo.CountStaff(ctx, clinic.ID)
	if err != nil {
		return false, fmt.Errorf("guard: count staff: %w", err)
	}
	return count < *p.StaffLimit, nil
}

// CanAddPatient reports whether the clinic may register one more patient
// today. "Today" is the full calendar day in the clinic's operating
// timezone (server local time).
func (s *Service) CanAddPatient(ctx context.Context, clinic *entity.Clinic) (bool, error) {
	p := plan.Get(clinic.Plan)
	if p.PatientsPerDay == nil {
		return true, nil
	}
	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	count, err := s.patientRepo.CountCreatedBetween(ctx, clinic.ID, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return false, fmt.Errorf("guard: count today's patients: %w", err)
	}
	return count < *p.PatientsPerDay, nil
}

// BillingEnabled reports whether the clinic's plan includes the billing
// module at all (trial excludes it).
func (s *Service) BillingEnabled(clinic *entity.Clinic) bool {
	return plan.Get(clinic.Plan).Billing
}
