package repository

import (
	"context"

	"github.com/clinova/clinic-api/internal/domain/entity"
)

// AppointmentTabCounts are the per-status totals shown on the appointments
// screen tabs.
type AppointmentTabCounts struct {
	Queue     int
	Finished  int
	Cancelled int
}

// AppointmentRepository is the persistence port for Appointment.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *entity.Appointment) error
	GetByID(ctx context.Context, clinicID, id string) (*entity.Appointment, error)
	// ListByStatus filters by status and optional date (YYYY-MM-DD); empty
	// values match everything.
	ListByStatus(ctx context.Context, clinicID, status, date string) ([]*entity.Appointment, error)
	ListByPatient(ctx context.Context, clinicID, patientID string) ([]*entity.Appointment, error)
	CountByStatus(ctx context.Context, clinicID, date string) (AppointmentTabCounts, error)
	UpdateStatus(ctx context.Context, clinicID, id, status string) error
	Delete(ctx context.Context, clinicID, id string) error
}
