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

var _ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)

// SubscriptionRepo implements the SubscriptionRepository port on PostgreSQL.
type SubscriptionRepo struct {
	pool *pgxpool.Pool
}

// NewSubscriptionRepository builds the persistence adapter for subscriptions.
func NewSubscriptionRepository(pool *pgxpool.Pool) *SubscriptionRepo {
	return &SubscriptionRepo{pool: pool}
}

// Create persists a purchase attempt.
func (r *SubscriptionRepo) Create(ctx context.Context, sub *entity.Subscription) error {
	query := `
		INSERT INTO subscriptions (id, clinic_id, plan, amount_inr, status, provider,
			provider_order_id, started_at, ends_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(ctx, query,
		sub.ID, sub.ClinicID, sub.Plan, sub.AmountINR, sub.Status, sub.Provider,
		sub.ProviderOrderID, sub.StartedAt, sub.EndsAt, sub.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

// GetByProviderOrder fetches a subscription by the provider's order id.
func (r *SubscriptionRepo) GetByProviderOrder(ctx context.Context, providerOrderID string) (*entity.Subscription, error) {
	query := `
		SELECT id, clinic_id, plan, amount_inr, status, provider, provider_order_id,
			started_at, ends_at, created_at
		FROM subscriptions WHERE provider_order_id = $1`
	var s entity.Subscription
	err := r.pool.QueryRow(ctx, query, providerOrderID).Scan(
		&s.ID, &s.ClinicID, &s.Plan, &s.AmountINR, &s.Status, &s.Provider,
		&s.ProviderOrderID, &s.StartedAt, &s.EndsAt, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subscription by provider order: %w", err)
	}
	return &s, nil
}

// Update persists status and period changes.
func (r *SubscriptionRepo) Update(ctx context.Context, sub *entity.Subscription) error {
	query := `
		UPDATE subscriptions SET status = $2, started_at = $3, ends_at = $4
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, sub.ID, sub.Status, sub.StartedAt, sub.EndsAt)
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}
	return nil
}
