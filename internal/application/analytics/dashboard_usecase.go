package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/clinova/clinic-api/internal/application/dto"
	"github.com/clinova/clinic-api/internal/domain/entity"
	"github.com/clinova/clinic-api/internal/domain/repository"
)

const dashboardRecentPatients = 5

// DashboardUseCase assembles the clinic home screen.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase builds the use case.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetSummary runs the widget queries concurrently and merges them.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, clinicID string) (*dto.DashboardSummaryDTO, error) {
	now := time.Now()
	today := now.Format("2006-01-02")
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	type countResult struct {
		n   int
		err error
	}
	type pendingResult struct {
		n     int
		total decimal.Decimal
		err   error
	}
	type revenueResult struct {
		total decimal.Decimal
		err   error
	}
	type recentResult struct {
		patients []*entity.Patient
		err      error
	}

	patientsCh := make(chan countResult, 1)
	apptsCh := make(chan countResult, 1)
	pendingCh := make(chan pendingResult, 1)
	revenueCh := make(chan revenueResult, 1)
	recentCh := make(chan recentResult, 1)

	go func() {
		n, err := uc.analyticsRepo.CountPatients(ctx, clinicID)
		patientsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountAppointmentsOn(ctx, clinicID, today)
		apptsCh <- countResult{n, err}
	}()
	go func() {
		n, total, err := uc.analyticsRepo.PendingInvoices(ctx, clinicID)
		pendingCh <- pendingResult{n, total, err}
	}()
	go func() {
		total, err := uc.analyticsRepo.RevenueBetween(ctx, clinicID, monthStart, monthEnd)
		revenueCh <- revenueResult{total, err}
	}()
	go func() {
		patients, err := uc.analyticsRepo.RecentPatients(ctx, clinicID, dashboardRecentPatients)
		recentCh <- recentResult{patients, err}
	}()

	patients := <-patientsCh
	appts := <-apptsCh
	pending := <-pendingCh
	revenue := <-revenueCh
	recent := <-recentCh

	if patients.err != nil {
		return nil, fmt.Errorf("dashboard: patient count: %w", patients.err)
	}
	if appts.err != nil {
		return nil, fmt.Errorf("dashboard: today's appointments: %w", appts.err)
	}
	if pending.err != nil {
		return nil, fmt.Errorf("dashboard: pending invoices: %w", pending.err)
	}
	if revenue.err != nil {
		return nil, fmt.Errorf("dashboard: month revenue: %w", revenue.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: recent patients: %w", recent.err)
	}

	summary := &dto.DashboardSummaryDTO{
		TotalPatients:     patients.n,
		TodayAppointments: appts.n,
		PendingInvoices:   pending.n,
		OutstandingTotal:  pending.total,
		MonthRevenue:      revenue.total,
		RecentPatients:    make([]dto.PatientResponse, 0, len(recent.patients)),
	}
	for _, p := range recent.patients {
		summary.RecentPatients = append(summary.RecentPatients, dto.PatientResponse{
			ID:        p.ID,
			ClinicID:  p.ClinicID,
			Name:      p.Name,
			Age:       p.Age,
			Gender:    p.Gender,
			Phone:     p.Phone,
			Disease:   p.Disease,
			Status:    p.Status,
			LastVisit: p.LastVisit,
			CreatedAt: p.CreatedAt,
		})
	}
	return summary, nil
}
