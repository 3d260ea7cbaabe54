package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/clinova/clinic-api/internal/application/dto"
	"github.com/clinova/clinic-api/internal/domain/entity"
)

// userLoader is the minimal contract RequireRole needs. *postgres.UserRepo
// satisfies it; tests stub it.
type userLoader interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

// RequireRole gates a route to the given roles. It re-reads the user from
// storage on every request so a revoked or demoted account loses access
// immediately, whatever its token still claims. Must run after
// AuthMiddleware.
//
//   - 401 when the user no longer exists, is inactive, or moved clinics.
//   - 403 when the user's current role is not in the allow list.
func RequireRole(users userLoader, roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		clinicID := GetClinicID(c)
		if userID == "" || clinicID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "missing identity in token"})
		}
		user, err := users.GetByID(c.Context(), userID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "ROLE_CHECK_FAILED", Message: "could not verify role, try again later"})
		}
		if user == nil || user.Status != "active" || user.ClinicID != clinicID {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "account is no longer valid"})
		}
		if !allowed[user.Role] {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "role not allowed for this resource"})
		}
		return c.Next()
	}
}
