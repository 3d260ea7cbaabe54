package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinova/clinic-api/internal/domain"
	"github.com/clinova/clinic-api/internal/domain/entity"
	"github.com/clinova/clinic-api/internal/domain/repository"
)

var _ repository.TemplateRepository = (*TemplateRepo)(nil)

// TemplateRepo implements the TemplateRepository port on PostgreSQL.
// (clinic_id, name) is unique.
type TemplateRepo struct {
	pool *pgxpool.Pool
}

// NewTemplateRepository builds the persistence adapter for templates.
func NewTemplateRepository(pool *pgxpool.Pool) *TemplateRepo {
	return &TemplateRepo{pool: pool}
}

// Create persists a template.
func (r *TemplateRepo) Create(ctx context.Context, tpl *entity.PrescriptionTemplate) error {
	query := `
		INSERT INTO prescription_templates (id, clinic_id, name, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query,
		tpl.ID, tpl.ClinicID, tpl.Name, tpl.Content, tpl.CreatedAt, tpl.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert template: %w", err)
	}
	return nil
}

// GetByID fetches a template within the clinic.
func (r *TemplateRepo) GetByID(ctx context.Context, clinicID, id string) (*entity.PrescriptionTemplate, error) {
	query := `
		SELECT id, clinic_id, name, content, created_at, updated_at
		FROM prescription_templates WHERE id = $1 AND clinic_id = $2`
	var t entity.PrescriptionTemplate
	err := r.pool.QueryRow(ctx, query, id, clinicID).Scan(
		&t.ID, &t.ClinicID, &t.Name, &t.Content, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get template by id: %w", err)
	}
	return &t, nil
}

// ListByClinic lists a clinic's templates by name.
func (r *TemplateRepo) ListByClinic(ctx context.Context, clinicID string) ([]*entity.PrescriptionTemplate, error) {
	query := `
		SELECT id, clinic_id, name, content, created_at, updated_at
		FROM prescription_templates WHERE clinic_id = $1 ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, query, clinicID)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()
	var list []*entity.PrescriptionTemplate
	for rows.Next() {
		var t entity.PrescriptionTemplate
		if err := rows.Scan(&t.ID, &t.ClinicID, &t.Name, &t.Content, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// Update persists template changes.
func (r *TemplateRepo) Update(ctx context.Context, tpl *entity.PrescriptionTemplate) error {
	query := `
		UPDATE prescription_templates SET name = $3, content = $4, updated_at = now()
		WHERE id = $1 AND clinic_id = $2`
	_, err := r.pool.Exec(ctx, query, tpl.ID, tpl.ClinicID, tpl.Name, tpl.Content)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update template: %w", err)
	}
	return nil
}

// Delete removes a template.
func (r *TemplateRepo) Delete(ctx context.Context, clinicID, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM prescription_templates WHERE id = $1 AND clinic_id = $2`, id, clinicID)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}
