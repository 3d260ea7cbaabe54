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

var _ repository.ClinicRepository = (*ClinicRepo)(nil)

// ClinicRepo implements the ClinicRepository port on PostgreSQL.
type ClinicRepo struct {
	pool *pgxpool.Pool
}

// NewClinicRepository builds the persistence adapter for clinics.
func NewClinicRepository(pool *pgxpool.Pool) *ClinicRepo {
	return &ClinicRepo{pool: pool}
}

// Create persists a new clinic.
func (r *ClinicRepo) Create(ctx context.Context, clinic *entity.Clinic) error {
	query := `
		INSERT INTO clinics (id, name, phone, address, owner_id, plan, subscription_status,
			trial_started_at, trial_ends_at, subscription_ends_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.pool.Exec(ctx, query,
		clinic.ID, clinic.Name, clinic.Phone, clinic.Address, nullIfEmpty(clinic.OwnerID),
		clinic.Plan, clinic.SubscriptionStatus,
		clinic.TrialStartedAt, clinic.TrialEndsAt, clinic.SubscriptionEndsAt,
		clinic.CreatedAt, clinic.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert clinic: %w", err)
	}
	return nil
}

// GetByID fetches a clinic by ID.
func (r *ClinicRepo) GetByID(ctx context.Context, id string) (*entity.Clinic, error) {
	query := `
		SELECT id, name, phone, address, COALESCE(owner_id::text, ''), plan, subscription_status,
			trial_started_at, trial_ends_at, subscription_ends_at, created_at, updated_at
		FROM clinics WHERE id = $1`
	var c entity.Clinic
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Phone, &c.Address, &c.OwnerID, &c.Plan, &c.SubscriptionStatus,
		&c.TrialStartedAt, &c.TrialEndsAt, &c.SubscriptionEndsAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get clinic by id: %w", err)
	}
	return &c, nil
}

// Update persists clinic profile changes.
func (r *ClinicRepo) Update(ctx context.Context, clinic *entity.Clinic) error {
	query := `
		UPDATE clinics SET name = $2, phone = $3, address = $4, owner_id = $5,
			plan = $6, subscription_status = $7, trial_started_at = $8,
			trial_ends_at = $9, subscription_ends_at = $10, updated_at = now()
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		clinic.ID, clinic.Name, clinic.Phone, clinic.Address, nullIfEmpty(clinic.OwnerID),
		clinic.Plan, clinic.SubscriptionStatus,
		clinic.TrialStartedAt, clinic.TrialEndsAt, clinic.SubscriptionEndsAt,
	)
	if err != nil {
		return fmt.Errorf("update clinic: %w", err)
	}
	return nil
}

// UpdateSubscription persists only the plan fields.
func (r *ClinicRepo) UpdateSubscription(ctx context.Context, clinic *entity.Clinic) error {
	query := `
		UPDATE clinics SET plan = $2, subscription_status = $3, subscription_ends_at = $4,
			updated_at = now()
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		clinic.ID, clinic.Plan, clinic.SubscriptionStatus, clinic.SubscriptionEndsAt,
	)
	if err != nil {
		return fmt.Errorf("update clinic subscription: %w", err)
	}
	return nil
}
