package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinova/clinic-api/internal/application/dto"
	"github.com/clinova/clinic-api/internal/application/usecase"
)

// TemplateHandler serves prescription templates.
type TemplateHandler struct {
	uc *usecase.TemplateUseCase
}

// NewTemplateHandler builds the handler.
func NewTemplateHandler(uc *usecase.TemplateUseCase) *TemplateHandler {
	return &TemplateHandler{uc: uc}
}

// Create adds a template.
// POST /api/templates
func (h *TemplateHandler) Create(c *fiber.Ctx) error {
	var in dto.TemplateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	tpl, err := h.uc.Create(c.Context(), GetClinicID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tpl)
}

// List returns the clinic's templates.
// GET /api/templates
func (h *TemplateHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), GetClinicID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Update edits a template.
// PUT /api/templates/:id
func (h *TemplateHandler) Update(c *fiber.Ctx) error {
	var in dto.TemplateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	tpl, err := h.uc.Update(c.Context(), GetClinicID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tpl)
}

// Delete removes a template.
// DELETE /api/templates/:id
func (h *TemplateHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetClinicID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
