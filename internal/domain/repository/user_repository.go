package repository

import (
	"context"
	"time"

	"github.com/clinova/clinic-api/internal/domain/entity"
)

// UserRepository is the persistence port for User.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	ListByClinic(ctx context.Context, clinicID string) ([]*entity.User, error)
	Delete(ctx context.Context, id string) error
	// CountStaff counts active non-owner users in the clinic (the plan
	// staff-limit denominator).
	CountStaff(ctx context.Context, clinicID string) (int, error)
	// SetResetOTP stores the bcrypt hash of a password-reset OTP and its
	// expiry; UpdatePassword clears both.
	SetResetOTP(ctx context.Context, userID, otpHash string, expires time.Time) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}
