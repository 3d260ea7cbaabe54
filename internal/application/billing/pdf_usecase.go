package billing

import (
	"context"

	"github.com/clinova/clinic-api/internal/domain"
	"github.com/clinova/clinic-api/internal/domain/repository"
)

// PDFUseCase renders invoices for download.
type PDFUseCase struct {
	invoices   *UseCase
	clinicRepo repository.ClinicRepository
	generator  PDFGenerator
}

// NewPDFUseCase builds the PDF use case.
func NewPDFUseCase(invoices *UseCase, clinicRepo repository.ClinicRepository, generator PDFGenerator) *PDFUseCase {
	return &PDFUseCase{invoices: invoices, clinicRepo: clinicRepo, generator: generator}
}

// Render produces the PDF bytes and a suggested file name for the invoice.
func (uc *PDFUseCase) Render(ctx context.Context, clinicID, invoiceID string) ([]byte, string, error) {
	invoice, err := uc.invoices.Get(ctx, clinicID, invoiceID)
	if err != nil {
		return nil, "", err
	}
	clinic, err := uc.clinicRepo.GetByID(ctx, clinicID)
	if err != nil {
		return nil, "", err
	}
	if clinic == nil {
		return nil, "", domain.ErrNotFound
	}
	data, err := uc.generator.Generate(invoice, clinic.Name)
	if err != nil {
		return nil, "", err
	}
	return data, invoice.Number + ".pdf", nil
}
