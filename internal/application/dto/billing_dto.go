package dto

import "github.com/shopspring/decimal"

// InvoiceItemRequest one billed line.
type InvoiceItemRequest struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// CreateInvoiceRequest body for POST /api/billing/invoices. The invoice
// number is always minted server-side. PaidNow optionally records an
// immediate payment in the same transaction.
type CreateInvoiceRequest struct {
	PatientID     string               `json:"patient_id"`
	Description   string               `json:"description,omitempty"`
	DueDate       string               `json:"due_date,omitempty"`
	Items         []InvoiceItemRequest `json:"items"`
	PaidNow       decimal.Decimal      `json:"paid_now,omitempty"`
	PaymentMethod string               `json:"payment_method,omitempty"`
}

// RecordPaymentRequest body for POST /api/billing/invoices/:id/payments.
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method,omitempty"`
}

// InvoiceItemResponse billed line in responses.
type InvoiceItemResponse struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// PaymentResponse payment in responses.
type PaymentResponse struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method"`
	PaidAt string          `json:"paid_at"`
}

// InvoiceResponse invoice with detail for GET /api/billing/invoices/:id.
type InvoiceResponse struct {
	ID          string                `json:"id"`
	ClinicID    string                `json:"clinic_id"`
	PatientID   string                `json:"patient_id"`
	PatientName string                `json:"patient_name,omitempty"`
	Number      string                `json:"number"`
	Description string                `json:"description,omitempty"`
	Total       decimal.Decimal       `json:"total"`
	Paid        decimal.Decimal       `json:"paid"`
	Balance     decimal.Decimal       `json:"balance"`
	DueDate     string                `json:"due_date,omitempty"`
	Status      string                `json:"status"`
	Locked      bool                  `json:"locked"`
	Date        string                `json:"date"`
	Items       []InvoiceItemResponse `json:"items"`
	Payments    []PaymentResponse     `json:"payments,omitempty"`
}

// InvoiceListResponse listing plus the due counter shown on the billing page.
type InvoiceListResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
	DueCount int               `json:"due_count"`
	Page     PageResponse      `json:"page"`
}
