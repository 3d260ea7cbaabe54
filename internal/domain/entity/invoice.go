package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice statuses, derived from the sum of recorded payments.
const (
	InvoiceUnpaid  = "Unpaid"
	InvoicePartial = "Partial"
	InvoicePaid    = "Paid"
)

// Invoice is a clinic-scoped financial document. Number is unique per clinic
// and minted by the invoice sequence inside the creating transaction. Locked
// becomes true once the invoice is fully paid; a locked invoice can no longer
// be edited or deleted. Deletion is the soft IsDeleted flag.
type Invoice struct {
	ID          string
	ClinicID    string
	PatientID   string
	PatientName string // joined from patients on reads
	Number      string // INV-0001, widening past 9999
	Description string
	Total       decimal.Decimal
	Paid        decimal.Decimal // aggregated from payments on reads
	DueDate     string // YYYY-MM-DD, optional
	Status      string // Unpaid, Partial, Paid
	Locked      bool
	IsDeleted   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// InvoiceItem is one billed line on an invoice.
type InvoiceItem struct {
	ID        string
	InvoiceID string
	Name      string
	Amount    decimal.Decimal
}

// Payment records money received against an invoice.
type Payment struct {
	ID        string
	InvoiceID string
	Amount    decimal.Decimal
	Method    string // Cash, Card, UPI
	PaidAt    time.Time
}

// StatusFor derives the invoice status from the paid amount.
func StatusFor(total, paid decimal.Decimal) string {
	switch {
	case paid.LessThanOrEqual(decimal.Zero):
		return InvoiceUnpaid
	case paid.GreaterThanOrEqual(total):
		return InvoicePaid
	default:
		return InvoicePartial
	}
}
