package audit_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinova/clinic-api/internal/application/audit"
	"github.com/clinova/clinic-api/internal/domain/entity"
	"github.com/clinova/clinic-api/pkg/logger"
)

type fakeAuditRepo struct {
	entries   []*entity.AuditLog
	insertErr error
}

func (r *fakeAuditRepo) Insert(_ context.Context, e *entity.AuditLog) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.entries = append(r.entries, e)
	return nil
}

func (r *fakeAuditRepo) ListByClinic(_ context.Context, clinicID string, limit, offset int) ([]*entity.AuditLog, error) {
	var out []*entity.AuditLog
	for _, e := range r.entries {
		if e.ClinicID == clinicID {
			out = append(out, e)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeAuditRepo) CountByClinic(_ context.Context, clinicID string) (int, error) {
	n := 0
	for _, e := range r.entries {
		if e.ClinicID == clinicID {
			n++
		}
	}
	return n, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

func TestRecord_WritesEntry(t *testing.T) {
	repo := &fakeAuditRepo{}
	rec := audit.NewRecorder(repo, testLogger())

	rec.Record(context.Background(), "clinic-1", "user-1", audit.ActionLogin, "10.0.0.1", "curl/8.0")

	require.Len(t, repo.entries, 1)
	e := repo.entries[0]
	assert.Equal(t, "clinic-1", e.ClinicID)
	assert.Equal(t, "user-1", e.UserID)
	assert.Equal(t, audit.ActionLogin, e.Action)
	assert.NotEmpty(t, e.ID)
	assert.False(t, e.CreatedAt.IsZero())
}

// A broken audit store must never surface to the business operation.
func TestRecord_InsertFailure_DoesNotPropagate(t *testing.T) {
	repo := &fakeAuditRepo{insertErr: errors.New("disk full")}
	rec := audit.NewRecorder(repo, testLogger())

	assert.NotPanics(t, func() {
		rec.Record(context.Background(), "clinic-1", "user-1", audit.ActionInvoiceCreated, "", "")
	})
}

func TestRecord_TruncatesClientMetadata(t *testing.T) {
	repo := &fakeAuditRepo{}
	rec := audit.NewRecorder(repo, testLogger())

	longIP := strings.Repeat("a", 500)
	longAgent := strings.Repeat("b", 500)
	rec.Record(context.Background(), "clinic-1", "", audit.ActionLoginFailed, longIP, longAgent)

	require.Len(t, repo.entries, 1)
	assert.Len(t, repo.entries[0].IP, entity.AuditMaxIPLen)
	assert.Len(t, repo.entries[0].UserAgent, entity.AuditMaxAgentLen)
}

// The byte clamp must not cut through a multi-byte rune, or the stored
// user agent would no longer be valid UTF-8.
func TestRecord_TruncationKeepsValidUTF8(t *testing.T) {
	repo := &fakeAuditRepo{}
	rec := audit.NewRecorder(repo, testLogger())

	// One ASCII byte followed by two-byte runes puts the clamp boundary
	// in the middle of a rune.
	agent := "x" + strings.Repeat("ж", 200)
	rec.Record(context.Background(), "clinic-1", "", audit.ActionLoginFailed, "", agent)

	require.Len(t, repo.entries, 1)
	got := repo.entries[0].UserAgent
	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, len(got), entity.AuditMaxAgentLen)
	assert.Equal(t, entity.AuditMaxAgentLen-1, len(got))
}

func TestList_PagesNewestFirstTotal(t *testing.T) {
	repo := &fakeAuditRepo{}
	rec := audit.NewRecorder(repo, testLogger())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		rec.Record(ctx, "clinic-1", "user-1", audit.ActionLogin, "", "")
	}
	rec.Record(ctx, "clinic-2", "user-2", audit.ActionLogin, "", "")

	logs, total, err := rec.List(ctx, "clinic-1", 3, 0)
	require.NoError(t, err)
	assert.Len(t, logs, 3)
	assert.Equal(t, 5, total)
}
