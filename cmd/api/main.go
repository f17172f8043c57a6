package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lynck-services/lead-api/docs"
	"github.com/lynck-services/lead-api/internal/auth"
	"github.com/lynck-services/lead-api/internal/config"
	"github.com/lynck-services/lead-api/internal/database"
	"github.com/lynck-services/lead-api/internal/http/handler"
	"github.com/lynck-services/lead-api/internal/http/middleware"
	"github.com/lynck-services/lead-api/internal/http/router"
	"github.com/lynck-services/lead-api/internal/jobs"
	"github.com/lynck-services/lead-api/internal/logger"
	"github.com/lynck-services/lead-api/internal/notify"
	"github.com/lynck-services/lead-api/internal/repository"
	"github.com/lynck-services/lead-api/internal/service"
	"go.uber.org/zap"
)

// @title Lynck Services Lead API
// @version 1.0
// @description Lead generation API for home services: service catalog, lead intake and the admin backoffice

// @contact.name API Support
// @contact.email support@lynck-services.de

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description API Key for system operations

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	// Configure Swagger host based on environment
	switch basicCfg.App.Environment {
	case "staging":
		docs.SwaggerInfo.Host = "api-staging.lynck-services.de"
	case "production":
		docs.SwaggerInfo.Host = "api.lynck-services.de"
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	// Connect to database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize repositories
	serviceRepo := repository.NewServiceRepository(db)
	cityRepo := repository.NewCityRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)

	// Outbound webhook client (best-effort notifications)
	webhookClient := notify.NewWebhookClient(&cfg.Webhook, log)
	if webhookClient.Enabled() {
		log.Info("Webhook notifications enabled")
	} else {
		log.Info("Webhook notifications disabled, no URL configured")
	}

	// Initialize services
	tokenManager := auth.NewTokenManager(&cfg.Auth, cfg.App.Name)
	authService := service.NewAuthService(&cfg.Auth, tokenManager, log)
	catalogService := service.NewCatalogService(serviceRepo, cityRepo, log)
	companyService := service.NewCompanyService(companyRepo, serviceRepo, log)
	leadService := service.NewLeadService(leadRepo, serviceRepo, cityRepo, assignmentRepo, webhookClient, log)
	assignmentService := service.NewAssignmentService(assignmentRepo, leadRepo, companyRepo, log)
	dashboardService := service.NewDashboardService(leadRepo, companyRepo, assignmentRepo, log)

	// Initialize middleware
	authMiddleware := auth.NewMiddleware(cfg, tokenManager, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	catalogHandler := handler.NewCatalogHandler(catalogService, log)
	leadHandler := handler.NewLeadHandler(leadService, log)
	companyHandler := handler.NewCompanyHandler(companyService, log)
	assignmentHandler := handler.NewAssignmentHandler(assignmentService, log)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, log)
	authHandler := handler.NewAuthHandler(authService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		rateLimiter,
		catalogHandler,
		leadHandler,
		companyHandler,
		assignmentHandler,
		dashboardHandler,
		authHandler,
	)

	// Initialize and start scheduler for background jobs
	var scheduler *jobs.Scheduler
	if cfg.Webhook.DigestEnabled {
		scheduler = jobs.NewScheduler(log)

		if err := jobs.RegisterDigestJob(
			scheduler,
			dashboardService,
			webhookClient,
			log,
			cfg.Webhook.DigestCron,
		); err != nil {
			log.Error("Failed to register digest job", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("Scheduler started",
				zap.String("cron_expr", cfg.Webhook.DigestCron),
			)
		}
	} else {
		log.Info("Daily digest disabled",
			zap.Bool("digest_enabled", cfg.Webhook.DigestEnabled),
		)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		// Stop scheduler if running
		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
