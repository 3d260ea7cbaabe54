package repository

import (
	"context"

	"github.com/clinova/clinic-api/internal/domain/entity"
)

// SubscriptionRepository persists plan purchases.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *entity.Subscription) error
	GetByProviderOrder(ctx context.Context, providerOrderID string) (*entity.Subscription, error)
	Update(ctx context.Context, sub *entity.Subscription) error
}

// TemplateRepository persists prescription templates, unique by (clinic, name).
type TemplateRepository interface {
	Create(ctx context.Context, tpl *entity.PrescriptionTemplate) error
	GetByID(ctx context.Context, clinicID, id string) (*entity.PrescriptionTemplate, error)
	ListByClinic(ctx context.Context, clinicID string) ([]*entity.PrescriptionTemplate, error)
	Update(ctx context.Context, tpl *entity.PrescriptionTemplate) error
	Delete(ctx context.Context, clinicID, id string) error
}
