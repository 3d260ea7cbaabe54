package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/clinova/clinic-api/internal/application/analytics"
	"github.com/clinova/clinic-api/internal/application/appointments"
	"github.com/clinova/clinic-api/internal/application/audit"
	"github.com/clinova/clinic-api/internal/application/auth"
	"github.com/clinova/clinic-api/internal/application/billing"
	"github.com/clinova/clinic-api/internal/application/guard"
	"github.com/clinova/clinic-api/internal/application/patients"
	"github.com/clinova/clinic-api/internal/application/subscription"
	"github.com/clinova/clinic-api/internal/application/usecase"
	"github.com/clinova/clinic-api/internal/infrastructure/notify"
	infrapdf "github.com/clinova/clinic-api/internal/infrastructure/pdf"
	"github.com/clinova/clinic-api/internal/infrastructure/postgres"
	"github.com/clinova/clinic-api/internal/infrastructure/razorpay"
	httpRouter "github.com/clinova/clinic-api/internal/interfaces/http"
	"github.com/clinova/clinic-api/pkg/config"
	"github.com/clinova/clinic-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	clinicRepo := postgres.NewClinicRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	patientRepo := postgres.NewPatientRepository(pool)
	visitRepo := postgres.NewVisitRepository(pool)
	apptRepo := postgres.NewAppointmentRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)
	subRepo := postgres.NewSubscriptionRepository(pool)
	templateRepo := postgres.NewTemplateRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	guardSvc := guard.NewService(clinicRepo, userRepo, patientRepo)
	recorder := audit.NewRecorder(auditRepo, log)

	authUC := auth.NewUseCase(userRepo, clinicRepo, notify.NewLogSender(log), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Trial.Days, cfg.Trial.OTPMinutes)

	staffUC := usecase.NewStaffUseCase(userRepo, clinicRepo, guardSvc)
	templateUC := usecase.NewTemplateUseCase(templateRepo)
	patientUC := patients.NewUseCase(patientRepo, visitRepo, apptRepo, invoiceRepo, clinicRepo, guardSvc)
	appointmentUC := appointments.NewUseCase(apptRepo, patientRepo)
	billingUC := billing.NewUseCase(invoiceRepo, paymentRepo, patientRepo, txRunner)
	billingPDF := billing.NewPDFUseCase(billingUC, clinicRepo, infrapdf.NewMarotoInvoiceGenerator())
	subscriptionUC := subscription.NewUseCase(subRepo, clinicRepo, razorpay.NewClient(cfg.Billing), guardSvc)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI in local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Clinova API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		StaffUC:        staffUC,
		TemplateUC:     templateUC,
		PatientUC:      patientUC,
		AppointmentUC:  appointmentUC,
		BillingUC:      billingUC,
		BillingPDF:     billingPDF,
		SubscriptionUC: subscriptionUC,
		DashboardUC:    dashboardUC,
		Audit:          recorder,
		Guard:          guardSvc,
		Users:          userRepo,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
