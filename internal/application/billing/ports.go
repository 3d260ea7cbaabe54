package billing

import (
	"context"

	"github.com/clinova/clinic-api/internal/application/dto"
	"github.com/clinova/clinic-api/internal/domain/repository"
)

// TxRepos are the repositories bound to a single billing transaction.
type TxRepos struct {
	Invoices  repository.InvoiceRepository
	Sequences repository.SequenceRepository
	Payments  repository.PaymentRepository
}

// TxRunner runs fn inside one database transaction. The repositories handed
// to fn share that transaction; an error from fn rolls everything back,
// including any invoice number minted inside it.
type TxRunner interface {
	RunBilling(ctx context.Context, fn func(repos TxRepos) error) error
}

// PDFGenerator renders a printable invoice.
type PDFGenerator interface {
	Generate(invoice *dto.InvoiceResponse, clinicName string) ([]byte, error)
}
