package repository

import (
	"context"

	"github.com/clinova/clinic-api/internal/domain/entity"
)

// AuditLogRepository appends and lists audit entries. There is deliberately
// no update or delete: the log is append-only.
type AuditLogRepository interface {
	Insert(ctx context.Context, log *entity.AuditLog) error
	ListByClinic(ctx context.Context, clinicID string, limit, offset int) ([]*entity.AuditLog, error)
	CountByClinic(ctx context.Context, clinicID string) (int, error)
}
