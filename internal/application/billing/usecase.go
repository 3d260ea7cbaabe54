package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/clinova/clinic-api/internal/application/dto"
	"github.com/clinova/clinic-api/internal/domain"
	"github.com/clinova/clinic-api/internal/domain/entity"
	"github.com/clinova/clinic-api/internal/domain/repository"
)

// UseCase drives invoices and payments. Invoice creation and payment
// recording run through the TxRunner so the number mint, the invoice row and
// any immediate payment commit or roll back together.
type UseCase struct {
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
	patientRepo repository.PatientRepository
	tx          TxRunner
}

// NewUseCase builds the use case on pool-bound repositories for reads and a
// TxRunner for writes.
func NewUseCase(
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	patientRepo repository.PatientRepository,
	tx TxRunner,
) *UseCase {
	return &UseCase{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		patientRepo: patientRepo,
		tx:          tx,
	}
}

// Create mints the next invoice number for the clinic and writes the invoice,
// its items and an optional immediate payment in one transaction.
func (uc *UseCase) Create(ctx context.Context, clinicID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.PatientID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	total := decimal.Zero
	for _, item := range in.Items {
		if item.Name == "" || item.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		total = total.Add(item.Amount)
	}
	if in.PaidNow.IsNegative() || in.PaidNow.GreaterThan(total) {
		return nil, domain.ErrInvalidInput
	}

	patient, err := uc.patientRepo.GetByID(ctx, clinicID, in.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	invoice := &entity.Invoice{
		ID:          uuid.New().String(),
		ClinicID:    clinicID,
		PatientID:   in.PatientID,
		PatientName: patient.Name,
		Description: in.Description,
		Total:       total,
		DueDate:     in.DueDate,
		Status:      entity.InvoiceUnpaid,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	var payment *entity.Payment

	err = uc.tx.RunBilling(ctx, func(repos TxRepos) error {
		n, err := repos.Sequences.NextNumber(ctx, clinicID)
		if err != nil {
			return err
		}
		invoice.Number = FormatNumber(n)

		if in.PaidNow.GreaterThan(decimal.Zero) {
			invoice.Status = entity.StatusFor(total, in.PaidNow)
			invoice.Locked = invoice.Status == entity.InvoicePaid
			invoice.Paid = in.PaidNow
		}
		if err := repos.Invoices.Create(ctx, invoice); err != nil {
			return err
		}
		for _, item := range in.Items {
			it := &entity.InvoiceItem{
				ID:        uuid.New().String(),
				InvoiceID: invoice.ID,
				Name:      item.Name,
				Amount:    item.Amount,
			}
			if err := repos.Invoices.CreateItem(ctx, it); err != nil {
				return err
			}
		}
		if in.PaidNow.GreaterThan(decimal.Zero) {
			payment = &entity.Payment{
				ID:        uuid.New().String(),
				InvoiceID: invoice.ID,
				Amount:    in.PaidNow,
				Method:    in.PaymentMethod,
				PaidAt:    now,
			}
			return repos.Payments.Create(ctx, payment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := toResponse(invoice)
	for _, item := range in.Items {
		resp.Items = append(resp.Items, dto.InvoiceItemResponse{Name: item.Name, Amount: item.Amount})
	}
	if payment != nil {
		resp.Payments = append(resp.Payments, toPaymentResponse(payment))
	}
	return resp, nil
}

// RecordPayment applies a payment and recomputes the invoice status. Fully
// paid invoices lock and reject further payments.
func (uc *UseCase) RecordPayment(ctx context.Context, clinicID, invoiceID string, in dto.RecordPaymentRequest) (*dto.InvoiceResponse, error) {
	if in.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	invoice, err := uc.invoiceRepo.GetByID(ctx, clinicID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	if invoice.Locked {
		return nil, domain.ErrInvoiceLocked
	}

	err = uc.tx.RunBilling(ctx, func(repos TxRepos) error {
		payment := &entity.Payment{
			ID:        uuid.New().String(),
			InvoiceID: invoice.ID,
			Amount:    in.Amount,
			Method:    in.Method,
			PaidAt:    time.Now(),
		}
		if err := repos.Payments.Create(ctx, payment); err != nil {
			return err
		}
		paid, err := repos.Payments.SumByInvoice(ctx, invoice.ID)
		if err != nil {
			return err
		}
		if paid.GreaterThan(invoice.Total) {
			return domain.ErrInvalidInput
		}
		invoice.Paid = paid
		invoice.Status = entity.StatusFor(invoice.Total, paid)
		invoice.Locked = invoice.Status == entity.InvoicePaid
		invoice.UpdatedAt = time.Now()
		return repos.Invoices.Update(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, clinicID, invoiceID)
}

// Get returns the invoice with its items and payments.
func (uc *UseCase) Get(ctx context.Context, clinicID, id string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.invoiceRepo.GetByID(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	resp := toResponse(invoice)

	items, err := uc.invoiceRepo.GetItems(ctx, invoice.ID)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.InvoiceItemResponse{ID: it.ID, Name: it.Name, Amount: it.Amount})
	}
	payments, err := uc.paymentRepo.ListByInvoice(ctx, invoice.ID)
	if err != nil {
		return nil, err
	}
	for _, p := range payments {
		resp.Payments = append(resp.Payments, toPaymentResponse(p))
	}
	return resp, nil
}

// List returns a page of invoices plus the due counter.
func (uc *UseCase) List(ctx context.Context, clinicID, query, status string, page dto.PageRequest) (*dto.InvoiceListResponse, error) {
	page.DefaultPage()
	invoices, err := uc.invoiceRepo.List(ctx, clinicID, query, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	due, err := uc.invoiceRepo.CountDue(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	resp := &dto.InvoiceListResponse{
		Invoices: make([]dto.InvoiceResponse, 0, len(invoices)),
		DueCount: due,
		Page:     dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, inv := range invoices {
		resp.Invoices = append(resp.Invoices, *toResponse(inv))
	}
	return resp, nil
}

// Delete soft-deletes an invoice. Locked invoices cannot be deleted.
func (uc *UseCase) Delete(ctx context.Context, clinicID, id string) error {
	invoice, err := uc.invoiceRepo.GetByID(ctx, clinicID, id)
	if err != nil {
		return err
	}
	if invoice == nil {
		return domain.ErrNotFound
	}
	if invoice.Locked {
		return domain.ErrInvoiceLocked
	}
	return uc.invoiceRepo.SoftDelete(ctx, clinicID, id)
}

// FormatNumber renders a sequence value as a display number, zero-padded to
// four digits and widening naturally past 9999.
func FormatNumber(n int64) string {
	return fmt.Sprintf("INV-%04d", n)
}

func toResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:          inv.ID,
		ClinicID:    inv.ClinicID,
		PatientID:   inv.PatientID,
		PatientName: inv.PatientName,
		Number:      inv.Number,
		Description: inv.Description,
		Total:       inv.Total,
		Paid:        inv.Paid,
		Balance:     inv.Total.Sub(inv.Paid),
		DueDate:     inv.DueDate,
		Status:      inv.Status,
		Locked:      inv.Locked,
		Date:        inv.CreatedAt.Format("2006-01-02"),
	}
}

func toPaymentResponse(p *entity.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:     p.ID,
		Amount: p.Amount,
		Method: p.Method,
		PaidAt: p.PaidAt.Format(time.RFC3339),
	}
}
