package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinova/clinic-api/internal/domain/entity"
	"github.com/clinova/clinic-api/internal/domain/repository"
)

var _ repository.AppointmentRepository = (*AppointmentRepo)(nil)

// AppointmentRepo implements the AppointmentRepository port on PostgreSQL.
// Reads join the patient name for list screens.
type AppointmentRepo struct {
	pool *pgxpool.Pool
}

// NewAppointmentRepository builds the persistence adapter for appointments.
func NewAppointmentRepository(pool *pgxpool.Pool) *AppointmentRepo {
	return &AppointmentRepo{pool: pool}
}

const appointmentSelect = `
	SELECT a.id, a.clinic_id, a.patient_id, COALESCE(p.name, ''), a.type, a.date,
		a.time, a.status, a.created_at, a.updated_at
	FROM appointments a
	LEFT JOIN patients p ON p.id = a.patient_id`

// Create persists a new appointment.
func (r *AppointmentRepo) Create(ctx context.Context, appt *entity.Appointment) error {
	query := `
		INSERT INTO appointments (id, clinic_id, patient_id, type, date, time, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(ctx, query,
		appt.ID, appt.ClinicID, appt.PatientID, appt.Type, appt.Date, appt.Time,
		appt.Status, appt.CreatedAt, appt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

// GetByID fetches an appointment within the clinic.
func (r *AppointmentRepo) GetByID(ctx context.Context, clinicID, id string) (*entity.Appointment, error) {
	query := appointmentSelect + ` WHERE a.id = $1 AND a.clinic_id = $2`
	var a entity.Appointment
	err := r.pool.QueryRow(ctx, query, id, clinicID).Scan(
		&a.ID, &a.ClinicID, &a.PatientID, &a.PatientName, &a.Type, &a.Date,
		&a.Time, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get appointment by id: %w", err)
	}
	return &a, nil
}

// ListByStatus lists appointments, optionally filtered by status and date.
func (r *AppointmentRepo) ListByStatus(ctx context.Context, clinicID, status, date string) ([]*entity.Appointment, error) {
	query := appointmentSelect + `
		WHERE a.clinic_id = $1
			AND ($2 = '' OR a.status = $2)
			AND ($3 = '' OR a.date = $3)
		ORDER BY a.date ASC, a.time ASC`
	rows, err := r.pool.Query(ctx, query, clinicID, status, date)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return scanAppointments(rows)
}

// ListByPatient lists a patient's appointments, newest first.
func (r *AppointmentRepo) ListByPatient(ctx context.Context, clinicID, patientID string) ([]*entity.Appointment, error) {
	query := appointmentSelect + `
		WHERE a.clinic_id = $1 AND a.patient_id = $2
		ORDER BY a.date DESC, a.time DESC`
	rows, err := r.pool.Query(ctx, query, clinicID, patientID)
	if err != nil {
		return nil, fmt.Errorf("list appointments by patient: %w", err)
	}
	return scanAppointments(rows)
}

func scanAppointments(rows pgx.Rows) ([]*entity.Appointment, error) {
	defer rows.Close()
	var list []*entity.Appointment
	for rows.Next() {
		var a entity.Appointment
		if err := rows.Scan(
			&a.ID, &a.ClinicID, &a.PatientID, &a.PatientName, &a.Type, &a.Date,
			&a.Time, &a.Status, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// CountByStatus returns the per-status totals, optionally for one date.
func (r *AppointmentRepo) CountByStatus(ctx context.Context, clinicID, date string) (repository.AppointmentTabCounts, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'Queue'),
			COUNT(*) FILTER (WHERE status = 'Finished'),
			COUNT(*) FILTER (WHERE status = 'Cancelled')
		FROM appointments
		WHERE clinic_id = $1 AND ($2 = '' OR date = $2)`
	var counts repository.AppointmentTabCounts
	err := r.pool.QueryRow(ctx, query, clinicID, date).Scan(
		&counts.Queue, &counts.Finished, &counts.Cancelled,
	)
	if err != nil {
		return counts, fmt.Errorf("count appointments by status: %w", err)
	}
	return counts, nil
}

// UpdateStatus changes an appointment's status.
func (r *AppointmentRepo) UpdateStatus(ctx context.Context, clinicID, id, status string) error {
	query := `UPDATE appointments SET status = $3, updated_at = now()
		WHERE id = $1 AND clinic_id = $2`
	_, err := r.pool.Exec(ctx, query, id, clinicID, status)
	if err != nil {
		return fmt.Errorf("update appointment status: %w", err)
	}
	return nil
}

// Delete removes an appointment.
func (r *AppointmentRepo) Delete(ctx context.Context, clinicID, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1 AND clinic_id = $2`, id, clinicID)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	return nil
}
