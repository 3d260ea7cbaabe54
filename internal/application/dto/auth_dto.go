package dto

import "time"

// SignupRequest body for POST /api/auth/signup. Creates a clinic and its
// owning doctor in one step; the clinic starts on the trial plan.
type SignupRequest struct {
	ClinicName string `json:"clinic_name"`
	FullName   string `json:"fullname"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address,omitempty"`
}

// LoginRequest body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token plus the authenticated user.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ForgotPasswordRequest body for POST /api/auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest body for POST /api/auth/reset-password.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"new_password"`
}

// ChangePasswordRequest body for POST /api/auth/change-password (logged in).
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// UserResponse user in responses (never includes the password hash).
type UserResponse struct {
	ID        string    `json:"id"`
	ClinicID  string    `json:"clinic_id"`
	FullName  string    `json:"fullname"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// AddStaffRequest body for POST /api/staff (owner only, plan-limited).
type AddStaffRequest struct {
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // reception, lab, pharmacy
}
