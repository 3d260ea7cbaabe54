package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinova/clinic-api/internal/domain/entity"
	"github.com/clinova/clinic-api/internal/domain/repository"
)

var _ repository.VisitRepository = (*VisitRepo)(nil)

// VisitRepo implements the VisitRepository port on PostgreSQL.
type VisitRepo struct {
	pool *pgxpool.Pool
}

// NewVisitRepository builds the persistence adapter for visits.
func NewVisitRepository(pool *pgxpool.Pool) *VisitRepo {
	return &VisitRepo{pool: pool}
}

// Create persists a consultation record.
func (r *VisitRepo) Create(ctx context.Context, v *entity.Visit) error {
	query := `
		INSERT INTO visits (id, clinic_id, patient_id, visit_date, diagnosis, treatment, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query,
		v.ID, v.ClinicID, v.PatientID, v.VisitDate, v.Diagnosis, v.Treatment,
		nullIfEmpty(v.Notes), v.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert visit: %w", err)
	}
	return nil
}

// ListByPatient lists a patient's visits, newest first.
func (r *VisitRepo) ListByPatient(ctx context.Context, clinicID, patientID string) ([]*entity.Visit, error) {
	query := `
		SELECT id, clinic_id, patient_id, visit_date, diagnosis, treatment, COALESCE(notes, ''), created_at
		FROM visits WHERE clinic_id = $1 AND patient_id = $2
		ORDER BY visit_date DESC, created_at DESC`
	rows, err := r.pool.Query(ctx, query, clinicID, patientID)
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	defer rows.Close()
	var list []*entity.Visit
	for rows.Next() {
		var v entity.Visit
		if err := rows.Scan(
			&v.ID, &v.ClinicID, &v.PatientID, &v.VisitDate, &v.Diagnosis, &v.Treatment,
			&v.Notes, &v.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}
