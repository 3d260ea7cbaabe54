package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinova/clinic-api/internal/application/appointments"
	"github.com/clinova/clinic-api/internal/application/dto"
)

// AppointmentHandler serves the appointment queue.
type AppointmentHandler struct {
	uc *appointments.UseCase
}

// NewAppointmentHandler builds the handler.
func NewAppointmentHandler(uc *appointments.UseCase) *AppointmentHandler {
	return &AppointmentHandler{uc: uc}
}

// Book queues an appointment.
// POST /api/appointments
func (h *AppointmentHandler) Book(c *fiber.Ctx) error {
	var in dto.BookAppointmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	appt, err := h.uc.Book(c.Context(), GetClinicID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(appt)
}

// List returns the tab listing plus per-tab counts.
// GET /api/appointments?status=&date=
func (h *AppointmentHandler) List(c *fiber.Ctx) error {
	resp, err := h.uc.List(c.Context(), GetClinicID(c), c.Query("status"), c.Query("date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// SetStatus finishes or cancels an appointment.
// PATCH /api/appointments/:id/status
func (h *AppointmentHandler) SetStatus(c *fiber.Ctx) error {
	var in struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if err := h.uc.SetStatus(c.Context(), GetClinicID(c), c.Params("id"), in.Status); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "status updated"})
}

// Delete removes an appointment.
// DELETE /api/appointments/:id
func (h *AppointmentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetClinicID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
