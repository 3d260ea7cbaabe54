package guard_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinova/clinic-api/internal/application/guard"
	"github.com/clinova/clinic-api/internal/domain"
	"github.com/clinova/clinic-api/internal/domain/entity"
	"github.com/clinova/clinic-api/internal/domain/plan"
	"github.com/clinova/clinic-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stubs: only the methods the guard touches are implemented; anything else
// panics via the embedded nil interface.
// ──────────────────────────────────────────────────────────────────────────────

type stubClinicRepo struct {
	repository.ClinicRepository
	clinic  *entity.Clinic
	updated *entity.Clinic
}

func (s *stubClinicRepo) GetByID(_ context.Context, _ string) (*entity.Clinic, error) {
	return s.clinic, nil
}

func (s *stubClinicRepo) UpdateSubscription(_ context.Context, c *entity.Clinic) error {
	s.updated = c
	return nil
}

type stubUserRepo struct {
	repository.UserRepository
	staffCount int
}

func (s *stubUserRepo) CountStaff(_ context.Context, _ string) (int, error) {
	return s.staffCount, nil
}

type stubPatientRepo struct {
	repository.PatientRepository
	todayCount int
	gotFrom    time.Time
	gotTo      time.Time
}

func (s *stubPatientRepo) CountCreatedBetween(_ context.Context, _ string, from, to time.Time) (int, error) {
	s.gotFrom, s.gotTo = from, to
	return s.todayCount, nil
}

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

func trialClinic(endsAt time.Time) *entity.Clinic {
	return &entity.Clinic{
		ID:                 "clinic-1",
		Plan:               plan.Trial,
		SubscriptionStatus: plan.StatusTrial,
		TrialEndsAt:        &endsAt,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// EnsureActive
// ──────────────────────────────────────────────────────────────────────────────

func TestEnsureActive_TrialStillRunning(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	clinics := &stubClinicRepo{clinic: trialClinic(now.Add(24 * time.Hour))}
	svc := guard.NewService(clinics, &stubUserRepo{}, &stubPatientRepo{}).WithClock(fixedClock(now))

	clinic, err := svc.EnsureActive(context.Background(), "clinic-1")
	require.NoError(t, err)
	assert.Equal(t, plan.StatusTrial, clinic.SubscriptionStatus)
	assert.Nil(t, clinics.updated, "a running trial must not be touched")
}

func TestEnsureActive_TrialJustPast_ExpiresLazily(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	clinics := &stubClinicRepo{clinic: trialClinic(now.Add(-time.Minute))}
	svc := guard.NewService(clinics, &stubUserRepo{}, &stubPatientRepo{}).WithClock(fixedClock(now))

	clinic, err := svc.EnsureActive(context.Background(), "clinic-1")
	assert.ErrorIs(t, err, domain.ErrSubscriptionExpired)
	require.NotNil(t, clinic)
	assert.Equal(t, plan.StatusExpired, clinic.SubscriptionStatus)
	require.NotNil(t, clinics.updated, "the expiry must be persisted")
	assert.Equal(t, plan.StatusExpired, clinics.updated.SubscriptionStatus)
}

func TestEnsureActive_PaidPeriodLapsed_Expires(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	endsAt := now.Add(-time.Hour)
	clinics := &stubClinicRepo{clinic: &entity.Clinic{
		ID:                 "clinic-1",
		Plan:               plan.Basic,
		SubscriptionStatus: plan.StatusActive,
		SubscriptionEndsAt: &endsAt,
	}}
	svc := guard.NewService(clinics, &stubUserRepo{}, &stubPatientRepo{}).WithClock(fixedClock(now))

	_, err := svc.EnsureActive(context.Background(), "clinic-1")
	assert.ErrorIs(t, err, domain.ErrSubscriptionExpired)
}

func TestEnsureActive_UnknownClinic_Unauthenticated(t *testing.T) {
	svc := guard.NewService(&stubClinicRepo{clinic: nil}, &stubUserRepo{}, &stubPatientRepo{})

	_, err := svc.EnsureActive(context.Background(), "gone")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

// ──────────────────────────────────────────────────────────────────────────────
// Staff limit
// ──────────────────────────────────────────────────────────────────────────────

func TestCanAddStaff_Limits(t *testing.T) {
	cases := []struct {
		name       string
		plan       string
		staffCount int
		want       bool
	}{
		{"trial allows no staff", plan.Trial, 0, false},
		{"basic below limit", plan.Basic, 1, true},
		{"basic at limit", plan.Basic, 2, false},
		{"pro below limit", plan.Pro, 4, true},
		{"pro at limit", plan.Pro, 5, false},
		{"clinic+ unlimited", plan.ClinicPlus, 500, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := guard.NewService(&stubClinicRepo{}, &stubUserRepo{staffCount: tc.staffCount}, &stubPatientRepo{})
			ok, err := svc.CanAddStaff(context.Background(), &entity.Clinic{ID: "c", Plan: tc.plan})
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Daily patient quota
// ──────────────────────────────────────────────────────────────────────────────

func TestCanAddPatient_Limits(t *testing.T) {
	cases := []struct {
		name       string
		plan       string
		todayCount int
		want       bool
	}{
		{"trial below limit", plan.Trial, 19, true},
		{"trial at limit", plan.Trial, 20, false},
		{"basic at limit", plan.Basic, 60, false},
		{"pro below limit", plan.Pro, 149, true},
		{"clinic+ unlimited", plan.ClinicPlus, 10000, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := guard.NewService(&stubClinicRepo{}, &stubUserRepo{}, &stubPatientRepo{todayCount: tc.todayCount})
			ok, err := svc.CanAddPatient(context.Background(), &entity.Clinic{ID: "c", Plan: tc.plan})
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}
}

func TestCanAddPatient_CountsFullCalendarDay(t *testing.T) {
	now := time.Date(2025, 3, 10, 23, 45, 0, 0, time.UTC)
	patients := &stubPatientRepo{}
	svc := guard.NewService(&stubClinicRepo{}, &stubUserRepo{}, patients).WithClock(fixedClock(now))

	_, err := svc.CanAddPatient(context.Background(), &entity.Clinic{ID: "c", Plan: plan.Basic})
	require.NoError(t, err)

	wantFrom := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, wantFrom, patients.gotFrom)
	assert.Equal(t, wantFrom.Add(24*time.Hour), patients.gotTo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Plan catalog
// ──────────────────────────────────────────────────────────────────────────────

func TestPlanGet_UnknownFallsBackToTrial(t *testing.T) {
	p := plan.Get("enterprise-mega")
	assert.Equal(t, plan.Trial, p.Name)
	assert.False(t, p.Billing)
}

func TestPlanPurchasable(t *testing.T) {
	assert.False(t, plan.Purchasable(plan.Trial))
	assert.True(t, plan.Purchasable(plan.Basic))
	assert.True(t, plan.Purchasable(plan.Pro))
	assert.True(t, plan.Purchasable(plan.ClinicPlus))
	assert.False(t, plan.Purchasable("nope"))
}

func TestBillingEnabled(t *testing.T) {
	svc := guard.NewService(&stubClinicRepo{}, &stubUserRepo{}, &stubPatientRepo{})
	assert.False(t, svc.BillingEnabled(&entity.Clinic{Plan: plan.Trial}))
	assert.True(t, svc.BillingEnabled(&entity.Clinic{Plan: plan.Pro}))
}
