package repository

import (
	"context"
	"time"

	"github.com/clinova/clinic-api/internal/domain/entity"
)

// PatientRepository is the persistence port for Patient. Every read is
// tenant-scoped by clinicID and excludes soft-deleted rows.
type PatientRepository interface {
	Create(ctx context.Context, patient *entity.Patient) error
	GetByID(ctx context.Context, clinicID, id string) (*entity.Patient, error)
	// Search lists patients matching the free-text query on name/phone and
	// the optional status filter; empty arguments match everything.
	Search(ctx context.Context, clinicID, query, status string, limit, offset int) ([]*entity.Patient, error)
	Update(ctx context.Context, patient *entity.Patient) error
	SoftDelete(ctx context.Context, clinicID, id string) error
	// CountCreatedBetween counts patients registered in [from, to) for the
	// daily-intake plan quota.
	CountCreatedBetween(ctx context.Context, clinicID string, from, to time.Time) (int, error)
	SetLastVisit(ctx context.Context, clinicID, id, date string) error
}

// VisitRepository persists consultation records.
type VisitRepository interface {
	Create(ctx context.Context, visit *entity.Visit) error
	ListByPatient(ctx context.Context, clinicID, patientID string) ([]*entity.Visit, error)
}
