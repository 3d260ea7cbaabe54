package repository

import (
	"context"

	"github.com/clinova/clinic-api/internal/domain/entity"
)

// ClinicRepository is the persistence port for Clinic (the tenant row).
type ClinicRepository interface {
	Create(ctx context.Context, clinic *entity.Clinic) error
	GetByID(ctx context.Context, id string) (*entity.Clinic, error)
	Update(ctx context.Context, clinic *entity.Clinic) error
	// UpdateSubscription persists only plan, subscription_status and
	// subscription_ends_at. Used by lazy trial expiry and plan activation.
	UpdateSubscription(ctx context.Context, clinic *entity.Clinic) error
}
