package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinova/clinic-api/internal/domain"
	"github.com/clinova/clinic-api/internal/domain/entity"
	"github.com/clinova/clinic-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, clinic_id, full_name, email, password_hash, role,
	COALESCE(created_by::text, ''), status, COALESCE(reset_otp_hash, ''), reset_expires,
	created_at, updated_at`

// UserRepo implements the UserRepository port on PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository builds the persistence adapter for users.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create persists a new user. Email is globally unique.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, clinic_id, full_name, email, password_hash, role, created_by,
			status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(ctx, query,
		user.ID, user.ClinicID, user.FullName, user.Email, user.PasswordHash, user.Role,
		nullIfEmpty(user.CreatedBy), user.Status, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID fetches a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id), "get user by id")
}

// GetByEmail fetches a user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 LIMIT 1`
	return r.scanOne(r.pool.QueryRow(ctx, query, email), "get user by email")
}

func (r *UserRepo) scanOne(row pgx.Row, op string) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.ClinicID, &u.FullName, &u.Email, &u.PasswordHash, &u.Role,
		&u.CreatedBy, &u.Status, &u.ResetOTPHash, &u.ResetExpires,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}

// Update persists user changes.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET full_name = $2, email = $3, password_hash = $4, role = $5,
			status = $6, updated_at = now()
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		user.ID, user.FullName, user.Email, user.PasswordHash, user.Role, user.Status,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// ListByClinic lists a clinic's users, owner first.
func (r *UserRepo) ListByClinic(ctx context.Context, clinicID string) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users WHERE clinic_id = $1
		ORDER BY (role = 'doctor') DESC, created_at ASC`
	rows, err := r.pool.Query(ctx, query, clinicID)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(
			&u.ID, &u.ClinicID, &u.FullName, &u.Email, &u.PasswordHash, &u.Role,
			&u.CreatedBy, &u.Status, &u.ResetOTPHash, &u.ResetExpires,
			&u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Delete removes a user by ID.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// CountStaff counts active non-owner users in the clinic.
func (r *UserRepo) CountStaff(ctx context.Context, clinicID string) (int, error) {
	query := `
		SELECT COUNT(*) FROM users
		WHERE clinic_id = $1 AND role <> 'doctor' AND status = 'active'`
	var n int
	if err := r.pool.QueryRow(ctx, query, clinicID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count staff: %w", err)
	}
	return n, nil
}

// SetResetOTP stores a pending password-reset OTP hash and its expiry.
func (r *UserRepo) SetResetOTP(ctx context.Context, userID, otpHash string, expires time.Time) error {
	query := `UPDATE users SET reset_otp_hash = $2, reset_expires = $3, updated_at = now() WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, userID, otpHash, expires)
	if err != nil {
		return fmt.Errorf("set reset otp: %w", err)
	}
	return nil
}

// UpdatePassword replaces the password hash and clears any pending OTP.
func (r *UserRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	query := `
		UPDATE users SET password_hash = $2, reset_otp_hash = NULL, reset_expires = NULL,
			updated_at = now()
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, userID, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}
