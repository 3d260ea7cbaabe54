package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinova/clinic-api/internal/application/dto"
	"github.com/clinova/clinic-api/internal/application/guard"
	"github.com/clinova/clinic-api/internal/application/usecase"
	"github.com/clinova/clinic-api/internal/domain"
	"github.com/clinova/clinic-api/internal/domain/entity"
	"github.com/clinova/clinic-api/internal/domain/plan"
	"github.com/clinova/clinic-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// In-memory fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	repository.UserRepository
	users map[string]*entity.User // by id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ListByClinic(_ context.Context, clinicID string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if u.ClinicID == clinicID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) CountStaff(_ context.Context, clinicID string) (int, error) {
	n := 0
	for _, u := range r.users {
		if u.ClinicID == clinicID && !u.IsOwner() && u.Status == "active" {
			n++
		}
	}
	return n, nil
}

type fakeClinicRepo struct {
	repository.ClinicRepository
	clinic *entity.Clinic
}

func (r *fakeClinicRepo) GetByID(_ context.Context, id string) (*entity.Clinic, error) {
	if r.clinic != nil && r.clinic.ID == id {
		return r.clinic, nil
	}
	return nil, nil
}

type fakePatientCounter struct {
	repository.PatientRepository
}

const (
	clinicID = "clinic-1"
	ownerID  = "owner-1"
)

func newStaffFixture(planName string) (*usecase.StaffUseCase, *fakeUserRepo) {
	users := newFakeUserRepo()
	users.users[ownerID] = &entity.User{
		ID:       ownerID,
		ClinicID: clinicID,
		Email:    "owner@clinic.test",
		Role:     entity.RoleDoctor,
		Status:   "active",
	}
	clinics := &fakeClinicRepo{clinic: &entity.Clinic{
		ID:                 clinicID,
		Plan:               planName,
		SubscriptionStatus: plan.StatusActive,
	}}
	g := guard.NewService(clinics, users, &fakePatientCounter{})
	return usecase.NewStaffUseCase(users, clinics, g), users
}

func addReq(email string) dto.AddStaffRequest {
	return dto.AddStaffRequest{
		FullName: "Staff Member",
		Email:    email,
		Password: "secret-password",
		Role:     entity.RoleReception,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// AddStaff
// ──────────────────────────────────────────────────────────────────────────────

func TestAddStaff_BasicPlanStopsAtTwo(t *testing.T) {
	uc, _ := newStaffFixture(plan.Basic)
	ctx := context.Background()

	first, err := uc.AddStaff(ctx, clinicID, ownerID, addReq("one@clinic.test"))
	require.NoError(t, err)
	assert.Equal(t, entity.RoleReception, first.Role)

	_, err = uc.AddStaff(ctx, clinicID, ownerID, addReq("two@clinic.test"))
	require.NoError(t, err)

	_, err = uc.AddStaff(ctx, clinicID, ownerID, addReq("three@clinic.test"))
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
}

func TestAddStaff_TrialPlanAllowsNone(t *testing.T) {
	uc, _ := newStaffFixture(plan.Trial)

	_, err := uc.AddStaff(context.Background(), clinicID, ownerID, addReq("one@clinic.test"))
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
}

func TestAddStaff_DuplicateEmail(t *testing.T) {
	uc, _ := newStaffFixture(plan.Pro)
	ctx := context.Background()

	_, err := uc.AddStaff(ctx, clinicID, ownerID, addReq("dup@clinic.test"))
	require.NoError(t, err)

	_, err = uc.AddStaff(ctx, clinicID, ownerID, addReq("dup@clinic.test"))
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestAddStaff_RejectsOwnerRole(t *testing.T) {
	uc, _ := newStaffFixture(plan.Pro)

	req := addReq("mole@clinic.test")
	req.Role = entity.RoleDoctor
	_, err := uc.AddStaff(context.Background(), clinicID, ownerID, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddStaff_PasswordIsHashed(t *testing.T) {
	uc, users := newStaffFixture(plan.Pro)

	resp, err := uc.AddStaff(context.Background(), clinicID, ownerID, addReq("hash@clinic.test"))
	require.NoError(t, err)

	stored := users.users[resp.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret-password", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

// ──────────────────────────────────────────────────────────────────────────────
// DeleteStaff
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteStaff_RemovesAccount(t *testing.T) {
	uc, users := newStaffFixture(plan.Pro)
	ctx := context.Background()

	resp, err := uc.AddStaff(ctx, clinicID, ownerID, addReq("bye@clinic.test"))
	require.NoError(t, err)

	require.NoError(t, uc.DeleteStaff(ctx, clinicID, ownerID, resp.ID))
	assert.Nil(t, users.users[resp.ID])
}

func TestDeleteStaff_CannotDeleteOwner(t *testing.T) {
	uc, _ := newStaffFixture(plan.Pro)

	err := uc.DeleteStaff(context.Background(), clinicID, "someone-else", ownerID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDeleteStaff_CannotDeleteSelf(t *testing.T) {
	uc, _ := newStaffFixture(plan.Pro)

	err := uc.DeleteStaff(context.Background(), clinicID, ownerID, ownerID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestDeleteStaff_CrossClinic_NotFound(t *testing.T) {
	uc, users := newStaffFixture(plan.Pro)
	users.users["foreign"] = &entity.User{
		ID:       "foreign",
		ClinicID: "other-clinic",
		Role:     entity.RoleReception,
		Status:   "active",
	}

	err := uc.DeleteStaff(context.Background(), clinicID, ownerID, "foreign")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Freed seats become usable again after a delete.
func TestAddStaff_SeatFreesAfterDelete(t *testing.T) {
	uc, _ := newStaffFixture(plan.Basic)
	ctx := context.Background()

	a, err := uc.AddStaff(ctx, clinicID, ownerID, addReq("a@clinic.test"))
	require.NoError(t, err)
	_, err = uc.AddStaff(ctx, clinicID, ownerID, addReq("b@clinic.test"))
	require.NoError(t, err)

	require.NoError(t, uc.DeleteStaff(ctx, clinicID, ownerID, a.ID))

	_, err = uc.AddStaff(ctx, clinicID, ownerID, addReq("c@clinic.test"))
	assert.NoError(t, err)
}
