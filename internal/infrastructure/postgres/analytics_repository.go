package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/clinova/clinic-api/internal/domain/entity"
	"github.com/clinova/clinic-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo serves the read-only dashboard aggregates on PostgreSQL.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository builds the analytics adapter.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// CountPatients counts the clinic's live patients.
func (r *AnalyticsRepo) CountPatients(ctx context.Context, clinicID string) (int, error) {
	query := `SELECT COUNT(*) FROM patients WHERE clinic_id = $1 AND is_deleted = FALSE`
	var n int
	if err := r.pool.QueryRow(ctx, query, clinicID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count patients: %w", err)
	}
	return n, nil
}

// CountAppointmentsOn counts appointments on a date, cancelled excluded.
func (r *AnalyticsRepo) CountAppointmentsOn(ctx context.Context, clinicID, date string) (int, error) {
	query := `
		SELECT COUNT(*) FROM appointments
		WHERE clinic_id = $1 AND date = $2 AND status <> 'Cancelled'`
	var n int
	if err := r.pool.QueryRow(ctx, query, clinicID, date).Scan(&n); err != nil {
		return 0, fmt.Errorf("count appointments on date: %w", err)
	}
	return n, nil
}

// PendingInvoices returns the count and outstanding balance of invoices not
// fully paid.
func (r *AnalyticsRepo) PendingInvoices(ctx context.Context, clinicID string) (int, decimal.Decimal, error) {
	query := `
		SELECT COUNT(*),
			COALESCE(SUM(i.total - COALESCE(p.paid, 0)), 0)
		FROM invoices i
		LEFT JOIN (
			SELECT invoice_id, SUM(amount) AS paid FROM payments GROUP BY invoice_id
		) p ON p.invoice_id = i.id
		WHERE i.clinic_id = $1 AND i.is_deleted = FALSE AND i.status <> 'Paid'`
	var n int
	var outstanding decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, clinicID).Scan(&n, &outstanding); err != nil {
		return 0, decimal.Zero, fmt.Errorf("pending invoices: %w", err)
	}
	return n, outstanding, nil
}

// RevenueBetween totals payments received in [from, to) against the clinic's
// invoices.
func (r *AnalyticsRepo) RevenueBetween(ctx context.Context, clinicID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(p.amount), 0)
		FROM payments p
		JOIN invoices i ON i.id = p.invoice_id
		WHERE i.clinic_id = $1 AND i.is_deleted = FALSE AND p.paid_at >= $2 AND p.paid_at < $3`
	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, clinicID, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("revenue between: %w", err)
	}
	return total, nil
}

// RecentPatients lists the newest registrations.
func (r *AnalyticsRepo) RecentPatients(ctx context.Context, clinicID string, limit int) ([]*entity.Patient, error) {
	query := `SELECT ` + patientColumns + `
		FROM patients WHERE clinic_id = $1 AND is_deleted = FALSE
		ORDER BY created_at DESC LIMIT $2`
	rows, err := r.pool.Query(ctx, query, clinicID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent patients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Patient
	for rows.Next() {
		var p entity.Patient
		if err := rows.Scan(
			&p.ID, &p.ClinicID, &p.Name, &p.Age, &p.Gender, &p.Phone, &p.Disease, &p.Status,
			&p.LastVisit, &p.Address, &p.City, &p.State, &p.Pincode, &p.Image,
			&p.IsDeleted, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan patient: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
