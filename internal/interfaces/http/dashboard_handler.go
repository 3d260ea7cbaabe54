package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/clinova/clinic-api/internal/application/analytics"
	"github.com/clinova/clinic-api/internal/application/audit"
	"github.com/clinova/clinic-api/internal/application/dto"
)

// DashboardHandler serves the clinic home screen and the owner's audit log.
type DashboardHandler struct {
	uc    *analytics.DashboardUseCase
	audit *audit.Recorder
}

// NewDashboardHandler builds the handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase, recorder *audit.Recorder) *DashboardHandler {
	return &DashboardHandler{uc: uc, audit: recorder}
}

// Summary returns the widget aggregates.
// GET /api/dashboard
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context(), GetClinicID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// AuditLog lists the clinic's audit trail, newest first.
// GET /api/audit-logs?limit=&offset=
func (h *DashboardHandler) AuditLog(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid pagination"})
	}
	page.DefaultPage()
	logs, total, err := h.audit.List(c.Context(), GetClinicID(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	resp := dto.AuditLogListResponse{
		Logs: make([]dto.AuditLogResponse, 0, len(logs)),
		Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for _, l := range logs {
		resp.Logs = append(resp.Logs, dto.AuditLogResponse{
			ID:        l.ID,
			UserID:    l.UserID,
			Action:    l.Action,
			IP:        l.IP,
			UserAgent: l.UserAgent,
			CreatedAt: l.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(resp)
}
