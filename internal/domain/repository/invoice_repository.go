package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/clinova/clinic-api/internal/domain/entity"
)

// InvoiceRepository is the persistence port for invoices and their items.
// Reads exclude soft-deleted rows.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	CreateItem(ctx context.Context, item *entity.InvoiceItem) error
	GetByID(ctx context.Context, clinicID, id string) (*entity.Invoice, error)
	GetItems(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error)
	// List filters on invoice number / patient name (query) and status;
	// empty values match everything. Newest first.
	List(ctx context.Context, clinicID, query, status string, limit, offset int) ([]*entity.Invoice, error)
	ListByPatient(ctx context.Context, clinicID, patientID string) ([]*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	SoftDelete(ctx context.Context, clinicID, id string) error
	CountDue(ctx context.Context, clinicID string) (int, error)
}

// SequenceRepository mints per-clinic invoice numbers. NextNumber must only
// be called on a transaction-bound repository: the increment takes a row
// lock on the clinic's sequence row (creating it lazily) and holds it until
// the surrounding transaction commits, so the number and the invoice insert
// are atomic. A rolled-back transaction rolls the increment back with it.
type SequenceRepository interface {
	NextNumber(ctx context.Context, clinicID string) (int64, error)
}

// PaymentRepository persists payments against invoices.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	ListByInvoice(ctx context.Context, invoiceID string) ([]*entity.Payment, error)
	SumByInvoice(ctx context.Context, invoiceID string) (decimal.Decimal, error)
}
