package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinova/clinic-api/internal/application/audit"
	"github.com/clinova/clinic-api/internal/application/dto"
	"github.com/clinova/clinic-api/internal/application/usecase"
)

// StaffHandler serves owner-only staff management.
type StaffHandler struct {
	uc    *usecase.StaffUseCase
	audit *audit.Recorder
}

// NewStaffHandler builds the handler.
func NewStaffHandler(uc *usecase.StaffUseCase, recorder *audit.Recorder) *StaffHandler {
	return &StaffHandler{uc: uc, audit: recorder}
}

// Add creates a staff account, bounded by the plan's staff limit.
// POST /api/staff
func (h *StaffHandler) Add(c *fiber.Ctx) error {
	var in dto.AddStaffRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	user, err := h.uc.AddStaff(c.Context(), GetClinicID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	h.audit.Record(c.Context(), GetClinicID(c), GetUserID(c), audit.ActionStaffAdded, c.IP(), c.Get("User-Agent"))
	return c.Status(fiber.StatusCreated).JSON(user)
}

// List returns the clinic's users.
// GET /api/staff
func (h *StaffHandler) List(c *fiber.Ctx) error {
	users, err := h.uc.ListStaff(c.Context(), GetClinicID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

// Delete removes a staff account.
// DELETE /api/staff/:id
func (h *StaffHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id required"})
	}
	if err := h.uc.DeleteStaff(c.Context(), GetClinicID(c), GetUserID(c), id); err != nil {
		return respondError(c, err)
	}
	h.audit.Record(c.Context(), GetClinicID(c), GetUserID(c), audit.ActionStaffDeleted, c.IP(), c.Get("User-Agent"))
	return c.SendStatus(fiber.StatusNoContent)
}
