package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinova/clinic-api/internal/application/audit"
	"github.com/clinova/clinic-api/internal/application/auth"
	"github.com/clinova/clinic-api/internal/application/guard"
	"github.com/clinova/clinic-api/internal/application/subscription"
	"github.com/clinova/clinic-api/internal/domain/entity"
	"github.com/clinova/clinic-api/internal/domain/plan"
	"github.com/clinova/clinic-api/internal/domain/repository"
	apphttp "github.com/clinova/clinic-api/internal/interfaces/http"
	"github.com/clinova/clinic-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stub stores for full-router wiring
// ──────────────────────────────────────────────────────────────────────────────

type stubClinicStore struct {
	repository.ClinicRepository
	clinic *entity.Clinic
}

func (s *stubClinicStore) GetByID(_ context.Context, id string) (*entity.Clinic, error) {
	if s.clinic != nil && s.clinic.ID == id {
		return s.clinic, nil
	}
	return nil, nil
}

type stubUserStore struct {
	repository.UserRepository
	user    *entity.User
	newHash string
}

func (s *stubUserStore) GetByID(_ context.Context, id string) (*entity.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, nil
}

func (s *stubUserStore) UpdatePassword(_ context.Context, _, passwordHash string) error {
	s.newHash = passwordHash
	return nil
}

type stubAuditStore struct {
	repository.AuditLogRepository
	entries []*entity.AuditLog
}

func (s *stubAuditStore) Insert(_ context.Context, e *entity.AuditLog) error {
	s.entries = append(s.entries, e)
	return nil
}

func testClinic(status string) *entity.Clinic {
	return &entity.Clinic{
		ID:                 testClinicID,
		Name:               "Test Clinic",
		Plan:               plan.Basic,
		SubscriptionStatus: status,
	}
}

// newRouterApp wires the real router with stub stores so middleware ordering
// is exercised exactly as in production.
func newRouterApp(clinic *entity.Clinic, users *stubUserStore) (*fiber.App, *stubAuditStore) {
	clinics := &stubClinicStore{clinic: clinic}
	auditStore := &stubAuditStore{}
	log := logger.New(logger.Config{Env: "test", Level: "error"})

	authUC := auth.NewUseCase(users, clinics, nil,
		auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}, 14, 10)
	g := guard.NewService(clinics, nil, nil)
	subUC := subscription.NewUseCase(nil, clinics, nil, g)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:         authUC,
		SubscriptionUC: subUC,
		Audit:          audit.NewRecorder(auditStore, log),
		Guard:          g,
		Users:          &stubUserLoader{user: activeUser(entity.RoleDoctor)},
		JWTSecret:      testJWTSecret,
	})
	return app, auditStore
}

func postJSON(t *testing.T, app *fiber.App, path, body, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Expired-tenant route surface
// ──────────────────────────────────────────────────────────────────────────────

// Change-password sits behind the active-tenant gate: an expired clinic may
// only reach the subscription routes.
func TestRouter_ChangePassword_BlockedForExpiredTenant(t *testing.T) {
	app, _ := newRouterApp(testClinic(plan.StatusExpired), &stubUserStore{})

	resp := postJSON(t, app, "/api/auth/change-password",
		`{"old_password":"irrelevant1","new_password":"irrelevant2"}`,
		tokenForRole(t, entity.RoleDoctor))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "SUBSCRIPTION_EXPIRED")
}

func TestRouter_ChangePassword_ActiveTenant(t *testing.T) {
	oldHash, err := bcrypt.GenerateFromPassword([]byte("old-password"), bcrypt.DefaultCost)
	require.NoError(t, err)
	users := &stubUserStore{user: &entity.User{
		ID:           testUserID,
		ClinicID:     testClinicID,
		Role:         entity.RoleDoctor,
		Status:       "active",
		PasswordHash: string(oldHash),
	}}
	app, auditStore := newRouterApp(testClinic(plan.StatusActive), users)

	resp := postJSON(t, app, "/api/auth/change-password",
		`{"old_password":"old-password","new_password":"new-password-9"}`,
		tokenForRole(t, entity.RoleDoctor))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, users.newHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users.newHash), []byte("new-password-9")))
	assert.NotEmpty(t, auditStore.entries)
}

// The renewal escape hatch stays open for expired tenants.
func TestRouter_SubscriptionStatus_ReachableWhenExpired(t *testing.T) {
	app, _ := newRouterApp(testClinic(plan.StatusExpired), &stubUserStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/subscription/status", nil)
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleDoctor))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, plan.StatusExpired, body["subscription_status"])
}
