package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinova/clinic-api/internal/application/audit"
	"github.com/clinova/clinic-api/internal/application/billing"
	"github.com/clinova/clinic-api/internal/application/dto"
)

// InvoiceHandler serves billing: invoices, payments and the printable PDF.
type InvoiceHandler struct {
	uc    *billing.UseCase
	pdf   *billing.PDFUseCase
	audit *audit.Recorder
}

// NewInvoiceHandler builds the handler.
func NewInvoiceHandler(uc *billing.UseCase, pdf *billing.PDFUseCase, recorder *audit.Recorder) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, pdf: pdf, audit: recorder}
}

// Create mints the next number and writes the invoice atomically.
// POST /api/billing/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	invoice, err := h.uc.Create(c.Context(), GetClinicID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	h.audit.Record(c.Context(), GetClinicID(c), GetUserID(c), audit.ActionInvoiceCreated, c.IP(), c.Get("User-Agent"))
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// List returns a page of invoices plus the due counter.
// GET /api/billing/invoices?q=&status=&limit=&offset=
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid pagination"})
	}
	resp, err := h.uc.List(c.Context(), GetClinicID(c), c.Query("q"), c.Query("status"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Get returns the invoice detail with items and payments.
// GET /api/billing/invoices/:id
func (h *InvoiceHandler) Get(c *fiber.Ctx) error {
	invoice, err := h.uc.Get(c.Context(), GetClinicID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invoice)
}

// RecordPayment applies a payment against an invoice.
// POST /api/billing/invoices/:id/payments
func (h *InvoiceHandler) RecordPayment(c *fiber.Ctx) error {
	var in dto.RecordPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	invoice, err := h.uc.RecordPayment(c.Context(), GetClinicID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	h.audit.Record(c.Context(), GetClinicID(c), GetUserID(c), audit.ActionPaymentAdded, c.IP(), c.Get("User-Agent"))
	return c.JSON(invoice)
}

// Delete soft-deletes an unlocked invoice.
// DELETE /api/billing/invoices/:id
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetClinicID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	h.audit.Record(c.Context(), GetClinicID(c), GetUserID(c), audit.ActionInvoiceDeleted, c.IP(), c.Get("User-Agent"))
	return c.SendStatus(fiber.StatusNoContent)
}

// PDF streams the printable invoice.
// GET /api/billing/invoices/:id/pdf
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	data, filename, err := h.pdf.Render(c.Context(), GetClinicID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
