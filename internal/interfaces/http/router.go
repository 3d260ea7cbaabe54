package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinova/clinic-api/internal/application/analytics"
	"github.com/clinova/clinic-api/internal/application/appointments"
	"github.com/clinova/clinic-api/internal/application/audit"
	"github.com/clinova/clinic-api/internal/application/auth"
	"github.com/clinova/clinic-api/internal/application/billing"
	"github.com/clinova/clinic-api/internal/application/guard"
	"github.com/clinova/clinic-api/internal/application/patients"
	"github.com/clinova/clinic-api/internal/application/subscription"
	"github.com/clinova/clinic-api/internal/application/usecase"
	"github.com/clinova/clinic-api/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC         *auth.UseCase
	StaffUC        *usecase.StaffUseCase
	TemplateUC     *usecase.TemplateUseCase
	PatientUC      *patients.UseCase
	AppointmentUC  *appointments.UseCase
	BillingUC      *billing.UseCase
	BillingPDF     *billing.PDFUseCase
	SubscriptionUC *subscription.UseCase
	DashboardUC    *analytics.DashboardUseCase
	Audit          *audit.Recorder
	Guard          *guard.Service
	Users          userLoader
	JWTSecret      string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Audit)
	authGroup := api.Group("/auth")
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/reset-password", authHandler.ResetPassword)

	// Everything below requires a Bearer token.
	authed := api.Group("", AuthMiddleware(deps.JWTSecret))

	// Subscription management stays reachable for expired tenants, owner only.
	subHandler := NewSubscriptionHandler(deps.SubscriptionUC, deps.Audit)
	subGroup := authed.Group("/subscription", RequireRole(deps.Users, entity.RoleDoctor))
	subGroup.Post("/checkout", subHandler.Checkout)
	subGroup.Post("/verify", subHandler.Verify)
	subGroup.Get("/status", subHandler.Status)

	// Active tenants only past this point.
	active := authed.Group("", RequireActive(deps.Guard))
	active.Post("/auth/change-password", authHandler.ChangePassword)

	anyRole := RequireRole(deps.Users,
		entity.RoleDoctor, entity.RoleReception, entity.RoleLab, entity.RolePharmacy)
	frontDesk := RequireRole(deps.Users, entity.RoleDoctor, entity.RoleReception)
	ownerOnly := RequireRole(deps.Users, entity.RoleDoctor)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.Audit)
	active.Get("/dashboard", anyRole, dashboardHandler.Summary)
	active.Get("/audit-logs", ownerOnly, dashboardHandler.AuditLog)

	// Patients
	patientHandler := NewPatientHandler(deps.PatientUC)
	patientsGroup := active.Group("/patients")
	patientsGroup.Get("/", anyRole, patientHandler.List)
	patientsGroup.Get("/:id", anyRole, patientHandler.Profile)
	patientsGroup.Post("/", frontDesk, patientHandler.Create)
	patientsGroup.Put("/:id", frontDesk, patientHandler.Update)
	patientsGroup.Delete("/:id", frontDesk, patientHandler.Delete)
	patientsGroup.Post("/:id/visits", frontDesk, patientHandler.RecordVisit)

	// Appointments
	apptHandler := NewAppointmentHandler(deps.AppointmentUC)
	apptGroup := active.Group("/appointments")
	apptGroup.Get("/", anyRole, apptHandler.List)
	apptGroup.Post("/", frontDesk, apptHandler.Book)
	apptGroup.Patch("/:id/status", frontDesk, apptHandler.SetStatus)
	apptGroup.Delete("/:id", frontDesk, apptHandler.Delete)

	// Staff management (owner only)
	staffHandler := NewStaffHandler(deps.StaffUC, deps.Audit)
	staffGroup := active.Group("/staff", ownerOnly)
	staffGroup.Post("/", staffHandler.Add)
	staffGroup.Get("/", staffHandler.List)
	staffGroup.Delete("/:id", staffHandler.Delete)

	// Prescription templates (owner only)
	templateHandler := NewTemplateHandler(deps.TemplateUC)
	templateGroup := active.Group("/templates", ownerOnly)
	templateGroup.Post("/", templateHandler.Create)
	templateGroup.Get("/", templateHandler.List)
	templateGroup.Put("/:id", templateHandler.Update)
	templateGroup.Delete("/:id", templateHandler.Delete)

	// Billing (plan-gated)
	invoiceHandler := NewInvoiceHandler(deps.BillingUC, deps.BillingPDF, deps.Audit)
	billingGroup := active.Group("/billing", RequireBilling(deps.Guard), frontDesk)
	billingGroup.Post("/invoices", invoiceHandler.Create)
	billingGroup.Get("/invoices", invoiceHandler.List)
	billingGroup.Get("/invoices/:id", invoiceHandler.Get)
	billingGroup.Get("/invoices/:id/pdf", invoiceHandler.PDF)
	billingGroup.Post("/invoices/:id/payments", invoiceHandler.RecordPayment)
	billingGroup.Delete("/invoices/:id", invoiceHandler.Delete)
}
