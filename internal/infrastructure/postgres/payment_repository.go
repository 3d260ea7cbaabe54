package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/clinova/clinic-api/internal/domain/entity"
	"github.com/clinova/clinic-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implements the PaymentRepository port on PostgreSQL (usable
// with pool or tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository builds the payment adapter. Pass pool or tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create persists a payment.
func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	query := `INSERT INTO payments (id, invoice_id, amount, method, paid_at) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, p.ID, p.InvoiceID, p.Amount, nullIfEmpty(p.Method), p.PaidAt)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// ListByInvoice lists payments against an invoice, oldest first.
func (r *PaymentRepo) ListByInvoice(ctx context.Context, invoiceID string) ([]*entity.Payment, error) {
	query := `
		SELECT id, invoice_id, amount, COALESCE(method, ''), paid_at
		FROM payments WHERE invoice_id = $1 ORDER BY paid_at ASC`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.Amount, &p.Method, &p.PaidAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// SumByInvoice totals payments against an invoice.
func (r *PaymentRepo) SumByInvoice(ctx context.Context, invoiceID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE invoice_id = $1`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, invoiceID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum payments: %w", err)
	}
	return total, nil
}
