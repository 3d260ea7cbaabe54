// Package audit appends best-effort security log entries. Recording must
// never be able to break the business operation it is attached to: the
// recorder swallows every failure after logging it operationally, and it
// always writes outside the caller's transaction.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinova/clinic-api/internal/domain/entity"
	"github.com/clinova/clinic-api/internal/domain/repository"
	"github.com/clinova/clinic-api/pkg/logger"
)

// Well-known actions. Free-form strings are also accepted.
const (
	ActionLogin          = "auth.login"
	ActionLoginFailed    = "auth.login_failed"
	ActionSignup         = "auth.signup"
	ActionPasswordReset  = "auth.password_reset"
	ActionStaffAdded     = "staff.added"
	ActionStaffDeleted   = "staff.deleted"
	ActionInvoiceCreated = "billing.invoice_created"
	ActionInvoiceDeleted = "billing.invoice_deleted"
	ActionPaymentAdded   = "billing.payment_recorded"
	ActionPlanActivated  = "subscription.activated"
)

// Recorder writes audit entries through its own repository handle, bound to
// the pool rather than any business transaction.
type Recorder struct {
	repo repository.AuditLogRepository
	log  *logger.Logger
}

// NewRecorder builds the recorder.
func NewRecorder(repo repository.AuditLogRepository, log *logger.Logger) *Recorder {
	return &Recorder{repo: repo, log: log}
}

// Record appends one entry. userID may be empty when the actor could not be
// resolved (e.g. failed login). IP and user agent are truncated to bounded
// lengths. Errors are logged at warn level and never propagated.
func (r *Recorder) Record(ctx context.Context, clinicID, userID, action, ip, userAgent string) {
	entry := &entity.AuditLog{
		ID:        uuid.New().String(),
		ClinicID:  clinicID,
		UserID:    userID,
		Action:    action,
		IP:        entity.Truncate(ip, entity.AuditMaxIPLen),
		UserAgent: entity.Truncate(userAgent, entity.AuditMaxAgentLen),
		CreatedAt: time.Now(),
	}
	if err := r.repo.Insert(ctx, entry); err != nil {
		r.log.Warn().Err(err).
			Str("clinic_id", clinicID).
			Str("action", action).
			Msg("audit write failed, continuing")
	}
}

// List returns the clinic's audit trail, newest first.
func (r *Recorder) List(ctx context.Context, clinicID string, limit, offset int) ([]*entity.AuditLog, int, error) {
	logs, err := r.repo.ListByClinic(ctx, clinicID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := r.repo.CountByClinic(ctx, clinicID)
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
