package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/clinova/clinic-api/internal/application/dto"
	"github.com/clinova/clinic-api/internal/application/guard"
	"github.com/clinova/clinic-api/internal/domain"
	"github.com/clinova/clinic-api/internal/domain/entity"
)

// LocalClinic holds the loaded tenant row after RequireActive.
const LocalClinic = "clinic"

// RequireActive loads the tenant, lazily expiring a finished trial or paid
// period, and blocks expired tenants. The subscription-management routes
// must NOT sit behind this middleware or an expired clinic could never
// renew. Must run after AuthMiddleware.
func RequireActive(g *guard.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		clinicID := GetClinicID(c)
		if clinicID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "missing clinic in token"})
		}
		clinic, err := g.EnsureActive(c.Context(), clinicID)
		if err != nil {
			if errors.Is(err, domain.ErrSubscriptionExpired) {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "SUBSCRIPTION_EXPIRED", Message: "subscription expired, renew to continue"})
			}
			if errors.Is(err, domain.ErrUnauthenticated) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "clinic no longer exists"})
			}
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "TENANT_CHECK_FAILED", Message: "could not verify subscription, try again later"})
		}
		c.Locals(LocalClinic, clinic)
		return c.Next()
	}
}

// RequireBilling blocks plans without the billing module. Must run after
// RequireActive.
func RequireBilling(g *guard.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		clinic := GetClinic(c)
		if clinic == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant not resolved"})
		}
		if !g.BillingEnabled(clinic) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "BILLING_DISABLED", Message: "billing is not included in the current plan"})
		}
		return c.Next()
	}
}

// GetClinic returns the tenant loaded by RequireActive.
func GetClinic(c *fiber.Ctx) *entity.Clinic {
	v := c.Locals(LocalClinic)
	if v == nil {
		return nil
	}
	clinic, _ := v.(*entity.Clinic)
	return clinic
}
