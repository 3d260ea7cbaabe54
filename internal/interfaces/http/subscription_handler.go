package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinova/clinic-api/internal/application/audit"
	"github.com/clinova/clinic-api/internal/application/dto"
	"github.com/clinova/clinic-api/internal/application/subscription"
)

// SubscriptionHandler serves plan checkout and renewal. These routes stay
// reachable for expired tenants.
type SubscriptionHandler struct {
	uc    *subscription.UseCase
	audit *audit.Recorder
}

// NewSubscriptionHandler builds the handler.
func NewSubscriptionHandler(uc *subscription.UseCase, recorder *audit.Recorder) *SubscriptionHandler {
	return &SubscriptionHandler{uc: uc, audit: recorder}
}

// Checkout opens a provider order for a paid plan.
// POST /api/subscription/checkout
func (h *SubscriptionHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	resp, err := h.uc.Checkout(c.Context(), GetClinicID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Verify checks the provider callback and activates the plan.
// POST /api/subscription/verify
func (h *SubscriptionHandler) Verify(c *fiber.Ctx) error {
	var in dto.VerifyPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	resp, err := h.uc.Verify(c.Context(), GetClinicID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	h.audit.Record(c.Context(), GetClinicID(c), GetUserID(c), audit.ActionPlanActivated, c.IP(), c.Get("User-Agent"))
	return c.JSON(resp)
}

// Status returns the clinic's current plan state.
// GET /api/subscription/status
func (h *SubscriptionHandler) Status(c *fiber.Ctx) error {
	resp, err := h.uc.Status(c.Context(), GetClinicID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
