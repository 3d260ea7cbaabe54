package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinova/clinic-api/internal/domain/entity"
	"github.com/clinova/clinic-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo implements the append-only audit log on PostgreSQL. It is
// always pool-bound so entries survive rolled-back business transactions.
type AuditLogRepo struct {
	pool *pgxpool.Pool
}

// NewAuditLogRepository builds the persistence adapter for audit entries.
func NewAuditLogRepository(pool *pgxpool.Pool) *AuditLogRepo {
	return &AuditLogRepo{pool: pool}
}

// Insert appends one entry.
func (r *AuditLogRepo) Insert(ctx context.Context, log *entity.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, clinic_id, user_id, action, ip, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(ctx, query,
		log.ID, log.ClinicID, nullIfEmpty(log.UserID), log.Action,
		nullIfEmpty(log.IP), nullIfEmpty(log.UserAgent), log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// ListByClinic lists entries newest first.
func (r *AuditLogRepo) ListByClinic(ctx context.Context, clinicID string, limit, offset int) ([]*entity.AuditLog, error) {
	query := `
		SELECT id, clinic_id, COALESCE(user_id::text, ''), action, COALESCE(ip, ''),
			COALESCE(user_agent, ''), created_at
		FROM audit_logs WHERE clinic_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, clinicID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditLog
	for rows.Next() {
		var l entity.AuditLog
		if err := rows.Scan(&l.ID, &l.ClinicID, &l.UserID, &l.Action, &l.IP, &l.UserAgent, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// CountByClinic counts a clinic's entries.
func (r *AuditLogRepo) CountByClinic(ctx context.Context, clinicID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM audit_logs WHERE clinic_id = $1`, clinicID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count audit logs: %w", err)
	}
	return n, nil
}
