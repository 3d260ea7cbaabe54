package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinova/clinic-api/internal/application/dto"
	"github.com/clinova/clinic-api/internal/domain"
	"github.com/clinova/clinic-api/internal/domain/entity"
	"github.com/clinova/clinic-api/internal/domain/plan"
	"github.com/clinova/clinic-api/internal/domain/repository"
	"github.com/clinova/clinic-api/pkg/jwt"
)

// JWTConfig token-generation settings.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// OTPSender delivers a password-reset OTP to the user. Mail transport lives
// outside this core; implementations decide the channel.
type OTPSender interface {
	SendOTP(ctx context.Context, email, otp string) error
}

// UseCase covers signup, login and the password flows.
type UseCase struct {
	userRepo   repository.UserRepository
	clinicRepo repository.ClinicRepository
	otpSender  OTPSender
	jwtCfg     JWTConfig
	trialDays  int
	otpMinutes int
}

// NewUseCase builds the auth use case.
func NewUseCase(
	userRepo repository.UserRepository,
	clinicRepo repository.ClinicRepository,
	otpSender OTPSender,
	jwtCfg JWTConfig,
	trialDays, otpMinutes int,
) *UseCase {
	if trialDays <= 0 {
		trialDays = 14
	}
	if otpMinutes <= 0 {
		otpMinutes = 10
	}
	return &UseCase{
		userRepo:   userRepo,
		clinicRepo: clinicRepo,
		otpSender:  otpSender,
		jwtCfg:     jwtCfg,
		trialDays:  trialDays,
		otpMinutes: otpMinutes,
	}
}

// Signup creates a clinic and its owning doctor. The clinic starts on the
// trial plan with a trial window attached.
func (uc *UseCase) Signup(ctx context.Context, in dto.SignupRequest) (*dto.UserResponse, error) {
	if in.ClinicName == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
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

	now := time.Now()
	trialEnds := now.AddDate(0, 0, uc.trialDays)
	clinic := &entity.Clinic{
		ID:                 uuid.New().String(),
		Name:               in.ClinicName,
		Phone:              in.Phone,
		Address:            in.Address,
		Plan:               plan.Trial,
		SubscriptionStatus: plan.StatusTrial,
		TrialStartedAt:     &now,
		TrialEndsAt:        &trialEnds,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.clinicRepo.Create(ctx, clinic); err != nil {
		return nil, err
	}

	fullname := in.FullName
	if fullname == "" {
		fullname = in.Email
	}
	owner := &entity.User{
		ID:           uuid.New().String(),
		ClinicID:     clinic.ID,
		FullName:     fullname,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         entity.RoleDoctor,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, owner); err != nil {
		return nil, err
	}

	clinic.OwnerID = owner.ID
	if err := uc.clinicRepo.Update(ctx, clinic); err != nil {
		return nil, err
	}
	return toUserResponse(owner), nil
}

// Login verifies credentials and issues a JWT carrying the clinic and role.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthenticated
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.ClinicID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

// ForgotPassword generates a 6-digit OTP, stores only its hash, and hands
// the plaintext to the sender. Always answers success for unknown emails so
// the endpoint cannot be used to enumerate accounts.
func (uc *UseCase) ForgotPassword(ctx context.Context, email string) error {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}
	otp, err := generateOTP()
	if err != nil {
		return err
	}
	otpHash, err := bcrypt.GenerateFromPassword([]byte(otp), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	expires := time.Now().Add(time.Duration(uc.otpMinutes) * time.Minute)
	if err := uc.userRepo.SetResetOTP(ctx, user.ID, string(otpHash), expires); err != nil {
		return err
	}
	return uc.otpSender.SendOTP(ctx, email, otp)
}

// ResetPassword checks the OTP and replaces the password.
func (uc *UseCase) ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) error {
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return err
	}
	if user == nil || user.ResetOTPHash == "" || user.ResetExpires == nil {
		return domain.ErrUnauthenticated
	}
	if user.ResetExpires.Before(time.Now()) {
		return domain.ErrUnauthenticated
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.ResetOTPHash), []byte(in.OTP)); err != nil {
		return domain.ErrUnauthenticated
	}
	if len(in.NewPassword) < 8 {
		return domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.userRepo.UpdatePassword(ctx, user.ID, string(hash))
}

// ChangePassword replaces the password after verifying the current one.
func (uc *UseCase) ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordRequest) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.OldPassword)); err != nil {
		return domain.ErrUnauthenticated
	}
	if len(in.NewPassword) < 8 {
		return domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.userRepo.UpdatePassword(ctx, user.ID, string(hash))
}

// ClinicIDByEmail resolves the tenant for an email, for attributing failed
// logins in the audit trail. Empty when the email is unknown.
func (uc *UseCase) ClinicIDByEmail(ctx context.Context, email string) string {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil || user == nil {
		return ""
	}
	return user.ClinicID
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
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
