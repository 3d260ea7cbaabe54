package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinova/clinic-api/internal/domain/entity"
	"github.com/clinova/clinic-api/internal/domain/repository"
)

var _ repository.PatientRepository = (*PatientRepo)(nil)

const patientColumns = `id, clinic_id, name, age, gender, phone, disease, status,
	COALESCE(last_visit, ''), COALESCE(address, ''), COALESCE(city, ''),
	COALESCE(state, ''), COALESCE(pincode, ''), COALESCE(image, ''),
	is_deleted, created_at, updated_at`

// PatientRepo implements the PatientRepository port on PostgreSQL. Every
// read filters is_deleted.
type PatientRepo struct {
	pool *pgxpool.Pool
}

// NewPatientRepository builds the persistence adapter for patients.
func NewPatientRepository(pool *pgxpool.Pool) *PatientRepo {
	return &PatientRepo{pool: pool}
}

// Create persists a new patient.
func (r *PatientRepo) Create(ctx context.Context, p *entity.Patient) error {
	query := `
		INSERT INTO patients (id, clinic_id, name, age, gender, phone, disease, status,
			last_visit, address, city, state, pincode, image, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, FALSE, $15, $16)`
	_, err := r.pool.Exec(ctx, query,
		p.ID, p.ClinicID, p.Name, p.Age, p.Gender, p.Phone, p.Disease, p.Status,
		nullIfEmpty(p.LastVisit), nullIfEmpty(p.Address), nullIfEmpty(p.City),
		nullIfEmpty(p.State), nullIfEmpty(p.Pincode), nullIfEmpty(p.Image),
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert patient: %w", err)
	}
	return nil
}

// GetByID fetches a patient within the clinic.
func (r *PatientRepo) GetByID(ctx context.Context, clinicID, id string) (*entity.Patient, error) {
	query := `SELECT ` + patientColumns + `
		FROM patients WHERE id = $1 AND clinic_id = $2 AND is_deleted = FALSE`
	var p entity.Patient
	err := r.pool.QueryRow(ctx, query, id, clinicID).Scan(
		&p.ID, &p.ClinicID, &p.Name, &p.Age, &p.Gender, &p.Phone, &p.Disease, &p.Status,
		&p.LastVisit, &p.Address, &p.City, &p.State, &p.Pincode, &p.Image,
		&p.IsDeleted, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get patient by id: %w", err)
	}
	return &p, nil
}

// Search lists patients by free-text query on name/phone and optional status.
func (r *PatientRepo) Search(ctx context.Context, clinicID, query, status string, limit, offset int) ([]*entity.Patient, error) {
	sql := `SELECT ` + patientColumns + `
		FROM patients
		WHERE clinic_id = $1 AND is_deleted = FALSE
			AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR phone ILIKE '%' || $2 || '%')
			AND ($3 = '' OR status = $3)
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.pool.Query(ctx, sql, clinicID, query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("search patients: %w", err)
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

// Update persists patient changes.
func (r *PatientRepo) Update(ctx context.Context, p *entity.Patient) error {
	query := `
		UPDATE patients SET name = $3, age = $4, gender = $5, phone = $6, disease = $7,
			status = $8, address = $9, city = $10, state = $11, pincode = $12,
			image = $13, updated_at = now()
		WHERE id = $1 AND clinic_id = $2 AND is_deleted = FALSE`
	_, err := r.pool.Exec(ctx, query,
		p.ID, p.ClinicID, p.Name, p.Age, p.Gender, p.Phone, p.Disease, p.Status,
		nullIfEmpty(p.Address), nullIfEmpty(p.City), nullIfEmpty(p.State),
		nullIfEmpty(p.Pincode), nullIfEmpty(p.Image),
	)
	if err != nil {
		return fmt.Errorf("update patient: %w", err)
	}
	return nil
}

// SoftDelete flags the patient deleted.
func (r *PatientRepo) SoftDelete(ctx context.Context, clinicID, id string) error {
	query := `UPDATE patients SET is_deleted = TRUE, updated_at = now()
		WHERE id = $1 AND clinic_id = $2`
	_, err := r.pool.Exec(ctx, query, id, clinicID)
	if err != nil {
		return fmt.Errorf("soft delete patient: %w", err)
	}
	return nil
}

// CountCreatedBetween counts patients registered in [from, to).
func (r *PatientRepo) CountCreatedBetween(ctx context.Context, clinicID string, from, to time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM patients
		WHERE clinic_id = $1 AND is_deleted = FALSE AND created_at >= $2 AND created_at < $3`
	var n int
	if err := r.pool.QueryRow(ctx, query, clinicID, from, to).Scan(&n); err != nil {
		return 0, fmt.Errorf("count patients created between: %w", err)
	}
	return n, nil
}

// SetLastVisit stamps the most recent visit date.
func (r *PatientRepo) SetLastVisit(ctx context.Context, clinicID, id, date string) error {
	query := `UPDATE patients SET last_visit = $3, updated_at = now()
		WHERE id = $1 AND clinic_id = $2 AND is_deleted = FALSE`
	_, err := r.pool.Exec(ctx, query, id, clinicID, date)
	if err != nil {
		return fmt.Errorf("set last visit: %w", err)
	}
	return nil
}
