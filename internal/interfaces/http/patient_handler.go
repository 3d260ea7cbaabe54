package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinova/clinic-api/internal/application/dto"
	"github.com/clinova/clinic-api/internal/application/patients"
)

// PatientHandler serves the patient registry.
type PatientHandler struct {
	uc *patients.UseCase
}

// NewPatientHandler builds the handler.
func NewPatientHandler(uc *patients.UseCase) *PatientHandler {
	return &PatientHandler{uc: uc}
}

// Create registers a patient, bounded by the plan's daily intake quota.
// POST /api/patients
func (h *PatientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePatientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	patient, err := h.uc.Create(c.Context(), GetClinicID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(patient)
}

// List searches the registry.
// GET /api/patients?q=&status=&limit=&offset=
func (h *PatientHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid pagination"})
	}
	list, err := h.uc.Search(c.Context(), GetClinicID(c), c.Query("q"), c.Query("status"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Profile aggregates a patient with their appointment and visit history.
// GET /api/patients/:id
func (h *PatientHandler) Profile(c *fiber.Ctx) error {
	profile, err := h.uc.Profile(c.Context(), GetClinicID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// Update edits a patient record.
// PUT /api/patients/:id
func (h *PatientHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePatientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	patient, err := h.uc.Update(c.Context(), GetClinicID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(patient)
}

// Delete soft-deletes a patient.
// DELETE /api/patients/:id
func (h *PatientHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetClinicID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RecordVisit appends a consultation record.
// POST /api/patients/:id/visits
func (h *PatientHandler) RecordVisit(c *fiber.Ctx) error {
	var in dto.RecordVisitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	visit, err := h.uc.RecordVisit(c.Context(), GetClinicID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(visit)
}
