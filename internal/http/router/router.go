package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lynck-services/lead-api/internal/auth"
	"github.com/lynck-services/lead-api/internal/config"
	"github.com/lynck-services/lead-api/internal/database"
	"github.com/lynck-services/lead-api/internal/http/handler"
	"github.com/lynck-services/lead-api/internal/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/lynck-services/lead-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg               *config.Config
	logger            *zap.Logger
	db                *gorm.DB
	authMiddleware    *auth.Middleware
	rateLimiter       *middleware.RateLimiter
	catalogHandler    *handler.CatalogHandler
	leadHandler       *handler.LeadHandler
	companyHandler    *handler.CompanyHandler
	assignmentHandler *handler.AssignmentHandler
	dashboardHandler  *handler.DashboardHandler
	authHandler       *handler.AuthHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	catalogHandler *handler.CatalogHandler,
	leadHandler *handler.LeadHandler,
	companyHandler *handler.CompanyHandler,
	assignmentHandler *handler.AssignmentHandler,
	dashboardHandler *handler.DashboardHandler,
	authHandler *handler.AuthHandler,
) *Router {
	return &Router{
		cfg:               cfg,
		logger:            logger,
		db:                db,
		authMiddleware:    authMiddleware,
		rateLimiter:       rateLimiter,
		catalogHandler:    catalogHandler,
		leadHandler:       leadHandler,
		companyHandler:    companyHandler,
		assignmentHandler: assignmentHandler,
		dashboardHandler:  dashboardHandler,
		authHandler:       authHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP) // Apply IP-based rate limiting globally

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with detailed stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"max_open_connections": stats.MaxOpenConnections,
				"open_connections":     stats.OpenConnections,
				"in_use":               stats.InUse,
				"idle":                 stats.Idle,
				"wait_count":           stats.WaitCount,
				"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
				"max_idle_closed":      stats.MaxIdleClosed,
				"max_lifetime_closed":  stats.MaxLifetimeClosed,
			},
		})
	})

	// Combined readiness check (checks all dependencies)
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		// Check database
		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if allHealthy {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "healthy",
				"checks": checks,
			})
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "unhealthy",
				"checks": checks,
			})
		}
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes (no auth required)
		r.Get("/services", rt.catalogHandler.ListServices)
		r.Get("/services/{slug}", rt.catalogHandler.GetServiceBySlug)
		r.Get("/cities", rt.catalogHandler.ListCities)

		r.With(rt.rateLimiter.LimitLeadIntake).Post("/leads", rt.leadHandler.Create)
		r.Get("/leads/{id}/confirmation", rt.leadHandler.GetConfirmation)

		r.Post("/admin/login", rt.authHandler.Login)

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)

			r.Get("/me", rt.authHandler.Me)

			// Leads
			r.Route("/leads", func(r chi.Router) {
				r.Get("/", rt.leadHandler.List)
				r.Post("/bulk/status", rt.leadHandler.BulkUpdateStatus)
				r.Get("/{id}", rt.leadHandler.GetByID)
				r.Patch("/{id}/status", rt.leadHandler.UpdateStatus)
				r.Patch("/{id}/notes", rt.leadHandler.UpdateNotes)
				r.Delete("/{id}", rt.leadHandler.Delete)

				// Matching and assignment
				r.Get("/{id}/matches", rt.assignmentHandler.GetMatches)
				r.Post("/{id}/assign", rt.assignmentHandler.Assign)
				r.Get("/{id}/assignments", rt.assignmentHandler.ListByLead)
			})

			r.Delete("/assignments/{id}", rt.assignmentHandler.Delete)

			// Companies
			r.Route("/companies", func(r chi.Router) {
				r.Get("/", rt.companyHandler.List)
				r.Post("/", rt.companyHandler.Create)
				r.Get("/{id}", rt.companyHandler.GetByID)
				r.Put("/{id}", rt.companyHandler.Update)
				r.Delete("/{id}", rt.companyHandler.Delete)
			})

			// Services
			r.Route("/services", func(r chi.Router) {
				r.Get("/", rt.catalogHandler.ListAllServices)
				r.Put("/{id}", rt.catalogHandler.UpdateService)
				r.Patch("/{id}/active", rt.catalogHandler.SetServiceActive)
			})

			// Cities
			r.Route("/cities", func(r chi.Router) {
				r.Get("/", rt.catalogHandler.ListAllCities)
				r.Post("/", rt.catalogHandler.CreateCity)
				r.Patch("/{id}/active", rt.catalogHandler.SetCityActive)
			})

			// Dashboard
			r.Get("/dashboard/stats", rt.dashboardHandler.GetStats)
		})
	})

	return r
}
