package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinova/clinic-api/internal/application/audit"
	"github.com/clinova/clinic-api/internal/application/auth"
	"github.com/clinova/clinic-api/internal/application/dto"
)

// AuthHandler serves signup, login and the password flows.
type AuthHandler struct {
	uc    *auth.UseCase
	audit *audit.Recorder
}

// NewAuthHandler builds the handler.
func NewAuthHandler(uc *auth.UseCase, recorder *audit.Recorder) *AuthHandler {
	return &AuthHandler{uc: uc, audit: recorder}
}

// Signup creates a clinic and its owning doctor.
// POST /api/auth/signup
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var in dto.SignupRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	user, err := h.uc.Signup(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	h.audit.Record(c.Context(), user.ClinicID, user.ID, audit.ActionSignup, c.IP(), c.Get("User-Agent"))
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login verifies credentials and returns a JWT.
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	resp, err := h.uc.Login(c.Context(), in)
	if err != nil {
		if clinicID := h.uc.ClinicIDByEmail(c.Context(), in.Email); clinicID != "" {
			h.audit.Record(c.Context(), clinicID, "", audit.ActionLoginFailed, c.IP(), c.Get("User-Agent"))
		}
		// Same answer for bad email and bad password.
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHENTICATED", Message: "invalid credentials"})
	}
	h.audit.Record(c.Context(), resp.User.ClinicID, resp.User.ID, audit.ActionLogin, c.IP(), c.Get("User-Agent"))
	return c.JSON(resp)
}

// ForgotPassword issues a reset OTP. Always answers 200.
// POST /api/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var in dto.ForgotPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if err := h.uc.ForgotPassword(c.Context(), in.Email); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "if the email exists, an OTP was sent"})
}

// ResetPassword completes the OTP flow.
// POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if err := h.uc.ResetPassword(c.Context(), in); err != nil {
		return respondError(c, err)
	}
	if clinicID := h.uc.ClinicIDByEmail(c.Context(), in.Email); clinicID != "" {
		h.audit.Record(c.Context(), clinicID, "", audit.ActionPasswordReset, c.IP(), c.Get("User-Agent"))
	}
	return c.JSON(fiber.Map{"message": "password updated"})
}

// ChangePassword replaces the password for the logged-in user.
// POST /api/auth/change-password
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if err := h.uc.ChangePassword(c.Context(), GetUserID(c), in); err != nil {
		return respondError(c, err)
	}
	h.audit.Record(c.Context(), GetClinicID(c), GetUserID(c), audit.ActionPasswordReset, c.IP(), c.Get("User-Agent"))
	return c.JSON(fiber.Map{"message": "password updated"})
}
