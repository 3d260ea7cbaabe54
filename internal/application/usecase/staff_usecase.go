package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinova/clinic-api/internal/application/dto"
	"github.com/clinova/clinic-api/internal/application/guard"
	"github.com/clinova/clinic-api/internal/domain"
	"github.com/clinova/clinic-api/internal/domain/entity"
	"github.com/clinova/clinic-api/internal/domain/repository"
)

// StaffUseCase lets the clinic owner manage reception/lab/pharmacy accounts.
type StaffUseCase struct {
	userRepo   repository.UserRepository
	clinicRepo repository.ClinicRepository
	guard      *guard.Service
}

// NewStaffUseCase builds the use case.
func NewStaffUseCase(userRepo repository.UserRepository, clinicRepo repository.ClinicRepository, g *guard.Service) *StaffUseCase {
	return &StaffUseCase{userRepo: userRepo, clinicRepo: clinicRepo, guard: g}
}

// AddStaff creates a staff user under the owner. The plan staff limit is
// checked first; on a full plan the create is not performed at all.
func (uc *StaffUseCase) AddStaff(ctx context.Context, clinicID, ownerID string, in dto.AddStaffRequest) (*dto.UserResponse, error) {
	if in.Email == "" || in.Password == "" || !entity.ValidStaffRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	clinic, err := uc.clinicRepo.GetByID(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	if clinic == nil {
		return nil, domain.ErrUnauthenticated
	}

	ok, err := uc.guard.CanAddStaff(ctx, clinic)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrQuotaExceeded
	}

	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	fullname := in.FullName
	if fullname == "" {
		fullname = in.Email
	}
	now := time.Now()
	staff := &entity.User{
		ID:           uuid.New().String(),
		ClinicID:     clinicID,
		FullName:     fullname,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
		CreatedBy:    ownerID,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, staff); err != nil {
		return nil, err
	}
	return toUserResponse(staff), nil
}

// ListStaff returns every user in the clinic, owner included.
func (uc *StaffUseCase) ListStaff(ctx context.Context, clinicID string) ([]dto.UserResponse, error) {
	users, err := uc.userRepo.ListByClinic(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

// DeleteStaff removes a staff account. The owner cannot be deleted, nor can
// callers delete themselves or users from another clinic.
func (uc *StaffUseCase) DeleteStaff(ctx context.Context, clinicID, callerID, staffID string) error {
	if staffID == callerID {
		return domain.ErrConflict
	}
	staff, err := uc.userRepo.GetByID(ctx, staffID)
	if err != nil {
		return err
	}
	if staff == nil || staff.ClinicID != clinicID {
		return domain.ErrNotFound
	}
	if staff.IsOwner() {
		return domain.ErrForbidden
	}
	return uc.userRepo.Delete(ctx, staffID)
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		ClinicID:  u.ClinicID,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}
