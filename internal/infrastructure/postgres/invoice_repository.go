package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/clinova/clinic-api/internal/domain"
	"github.com/clinova/clinic-api/internal/domain/entity"
	"github.com/clinova/clinic-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implements the InvoiceRepository port on PostgreSQL (usable
// with pool or tx). Reads join the patient name and the paid aggregate.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository builds the invoice adapter. Pass pool or tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceSelect = `
	SELECT i.id, i.clinic_id, i.patient_id, COALESCE(p.name, ''), i.number,
		COALESCE(i.description, ''), i.total,
		COALESCE((SELECT SUM(amount) FROM payments WHERE invoice_id = i.id), 0),
		COALESCE(i.due_date, ''), i.status, i.locked, i.is_deleted, i.created_at, i.updated_at
	FROM invoices i
	LEFT JOIN patients p ON p.id = i.patient_id`

// Create persists a new invoice. The per-clinic unique index on number turns
// into ErrDuplicate, which should not happen when numbers come from the
// sequence inside the same transaction.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, clinic_id, patient_id, number, description, total,
			due_date, status, locked, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, FALSE, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.ClinicID, inv.PatientID, inv.Number, nullIfEmpty(inv.Description),
		inv.Total, nullIfEmpty(inv.DueDate), inv.Status, inv.Locked,
		inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateItem persists one billed line.
func (r *InvoiceRepo) CreateItem(ctx context.Context, item *entity.InvoiceItem) error {
	query := `INSERT INTO invoice_items (id, invoice_id, name, amount) VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, item.ID, item.InvoiceID, item.Name, item.Amount)
	if err != nil {
		return fmt.Errorf("insert invoice item: %w", err)
	}
	return nil
}

// GetByID fetches an invoice within the clinic.
func (r *InvoiceRepo) GetByID(ctx context.Context, clinicID, id string) (*entity.Invoice, error) {
	query := invoiceSelect + ` WHERE i.id = $1 AND i.clinic_id = $2 AND i.is_deleted = FALSE`
	var inv entity.Invoice
	err := r.q.QueryRow(ctx, query, id, clinicID).Scan(
		&inv.ID, &inv.ClinicID, &inv.PatientID, &inv.PatientName, &inv.Number,
		&inv.Description, &inv.Total, &inv.Paid, &inv.DueDate, &inv.Status,
		&inv.Locked, &inv.IsDeleted, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice by id: %w", err)
	}
	return &inv, nil
}

// GetItems lists the billed lines of an invoice.
func (r *InvoiceRepo) GetItems(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	query := `SELECT id, invoice_id, name, amount FROM invoice_items WHERE invoice_id = $1`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.Name, &it.Amount); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// List filters on invoice number / patient name and optional status, newest
// first.
func (r *InvoiceRepo) List(ctx context.Context, clinicID, query, status string, limit, offset int) ([]*entity.Invoice, error) {
	sql := invoiceSelect + `
		WHERE i.clinic_id = $1 AND i.is_deleted = FALSE
			AND ($2 = '' OR i.number ILIKE '%' || $2 || '%' OR p.name ILIKE '%' || $2 || '%')
			AND ($3 = '' OR i.status = $3)
		ORDER BY i.created_at DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, sql, clinicID, query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(
			&inv.ID, &inv.ClinicID, &inv.PatientID, &inv.PatientName, &inv.Number,
			&inv.Description, &inv.Total, &inv.Paid, &inv.DueDate, &inv.Status,
			&inv.Locked, &inv.IsDeleted, &inv.CreatedAt, &inv.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// ListByPatient returns the patient's invoices, newest first.
func (r *InvoiceRepo) ListByPatient(ctx context.Context, clinicID, patientID string) ([]*entity.Invoice, error) {
	sql := invoiceSelect + `
		WHERE i.clinic_id = $1 AND i.patient_id = $2 AND i.is_deleted = FALSE
		ORDER BY i.created_at DESC`
	rows, err := r.q.Query(ctx, sql, clinicID, patientID)
	if err != nil {
		return nil, fmt.Errorf("list invoices by patient: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(
			&inv.ID, &inv.ClinicID, &inv.PatientID, &inv.PatientName, &inv.Number,
			&inv.Description, &inv.Total, &inv.Paid, &inv.DueDate, &inv.Status,
			&inv.Locked, &inv.IsDeleted, &inv.CreatedAt, &inv.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// Update persists invoice changes (status, lock).
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	query := `
		UPDATE invoices SET description = $3, total = $4, due_date = $5, status = $6,
			locked = $7, updated_at = now()
		WHERE id = $1 AND clinic_id = $2 AND is_deleted = FALSE`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.ClinicID, nullIfEmpty(inv.Description), inv.Total,
		nullIfEmpty(inv.DueDate), inv.Status, inv.Locked,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// SoftDelete flags the invoice deleted.
func (r *InvoiceRepo) SoftDelete(ctx context.Context, clinicID, id string) error {
	query := `UPDATE invoices SET is_deleted = TRUE, updated_at = now()
		WHERE id = $1 AND clinic_id = $2 AND locked = FALSE`
	_, err := r.q.Exec(ctx, query, id, clinicID)
	if err != nil {
		return fmt.Errorf("soft delete invoice: %w", err)
	}
	return nil
}

// CountDue counts invoices not fully paid.
func (r *InvoiceRepo) CountDue(ctx context.Context, clinicID string) (int, error) {
	query := `
		SELECT COUNT(*) FROM invoices
		WHERE clinic_id = $1 AND is_deleted = FALSE AND status <> 'Paid'`
	var n int
	if err := r.q.QueryRow(ctx, query, clinicID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count due invoices: %w", err)
	}
	return n, nil
}
