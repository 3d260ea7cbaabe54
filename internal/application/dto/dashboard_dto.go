package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO the clinic home-screen widgets.
type DashboardSummaryDTO struct {
	TotalPatients     int               `json:"total_patients"`
	TodayAppointments int               `json:"today_appointments"`
	PendingInvoices   int               `json:"pending_invoices"`
	OutstandingTotal  decimal.Decimal   `json:"outstanding_total"`
	MonthRevenue      decimal.Decimal   `json:"month_revenue"`
	RecentPatients    []PatientResponse `json:"recent_patients"`
}

// TemplateRequest body for creating/updating a prescription template.
type TemplateRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// TemplateResponse prescription template in responses.
type TemplateResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

// AuditLogResponse one audit entry for the owner's log screen.
type AuditLogResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id,omitempty"`
	Action    string `json:"action"`
	IP        string `json:"ip,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
	CreatedAt string `json:"created_at"`
}

// AuditLogListResponse paginated audit log.
type AuditLogListResponse struct {
	Logs []AuditLogResponse `json:"logs"`
	Page PageResponse       `json:"page"`
}
