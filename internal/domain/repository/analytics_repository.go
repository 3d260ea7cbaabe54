package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/clinova/clinic-api/internal/domain/entity"
)

// AnalyticsRepository serves the read-only aggregates behind the dashboard.
type AnalyticsRepository interface {
	CountPatients(ctx context.Context, clinicID string) (int, error)
	CountAppointmentsOn(ctx context.Context, clinicID, date string) (int, error)
	// PendingInvoices returns the count and outstanding total of invoices
	// that are not fully paid.
	PendingInvoices(ctx context.Context, clinicID string) (int, decimal.Decimal, error)
	RevenueBetween(ctx context.Context, clinicID string, from, to time.Time) (decimal.Decimal, error)
	RecentPatients(ctx context.Context, clinicID string, limit int) ([]*entity.Patient, error)
}
