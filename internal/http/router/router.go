package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sixink-6/gas-grove-api/internal/auth"
	"github.com/sixink-6/gas-grove-api/internal/config"
	"github.com/sixink-6/gas-grove-api/internal/database"
	"github.com/sixink-6/gas-grove-api/internal/http/handler"
	"github.com/sixink-6/gas-grove-api/internal/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/sixink-6/gas-grove-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg                  *config.Config
	logger               *zap.Logger
	db                   *gorm.DB
	authMiddleware       *auth.Middleware
	rateLimiter          *middleware.RateLimiter
	auditMiddleware      *middleware.AuditMiddleware
	clientHandler        *handler.ClientHandler
	purchaseOrderHandler *handler.PurchaseOrderHandler
	deliveryOrderHandler *handler.DeliveryOrderHandler
	invoiceHandler       *handler.InvoiceHandler
	alertHandler         *handler.AlertHandler
	fileHandler          *handler.FileHandler
	auditHandler         *handler.AuditHandler
	sequenceHandler      *handler.NumberSequenceHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	auditMiddleware *middleware.AuditMiddleware,
	clientHandler *handler.ClientHandler,
	purchaseOrderHandler *handler.PurchaseOrderHandler,
	deliveryOrderHandler *handler.DeliveryOrderHandler,
	invoiceHandler *handler.InvoiceHandler,
	alertHandler *handler.AlertHandler,
	fileHandler *handler.FileHandler,
	auditHandler *handler.AuditHandler,
	sequenceHandler *handler.NumberSequenceHandler,
) *Router {
	return &Router{
		cfg:                  cfg,
		logger:               logger,
		db:                   db,
		authMiddleware:       authMiddleware,
		rateLimiter:          rateLimiter,
		auditMiddleware:      auditMiddleware,
		clientHandler:        clientHandler,
		purchaseOrderHandler: purchaseOrderHandler,
		deliveryOrderHandler: deliveryOrderHandler,
		invoiceHandler:       invoiceHandler,
		alertHandler:         alertHandler,
		fileHandler:          fileHandler,
		auditHandler:         auditHandler,
		sequenceHandler:      sequenceHandler,
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
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)
			r.Use(rt.auditMiddleware.Audit) // Audit all modifications

			// Audit logs (admin only)
			r.Route("/audit-logs", func(r chi.Router) {
				r.Use(rt.authMiddleware.RequireAdmin)
				r.Get("/", rt.auditHandler.List)
				r.Get("/entity/{entityType}/{entityId}", rt.auditHandler.GetByEntity)
				r.Get("/{id}", rt.auditHandler.GetByID)
			})

			// Document number sequences (admin only)
			r.Route("/number-sequences", func(r chi.Router) {
				r.Use(rt.authMiddleware.RequireAdmin)
				r.Get("/", rt.sequenceHandler.List)
			})

			// Clients
			r.Route("/clients", func(r chi.Router) {
				r.Get("/", rt.clientHandler.List)
				r.Post("/", rt.clientHandler.Create)
				r.Get("/{id}", rt.clientHandler.GetByID)
				r.Put("/{id}", rt.clientHandler.Update)
			})

			// Purchase orders
			r.Route("/purchase-orders", func(r chi.Router) {
				r.Get("/", rt.purchaseOrderHandler.List)
				r.Post("/", rt.purchaseOrderHandler.Create)
				r.Get("/{id}", rt.purchaseOrderHandler.GetByID)

				// Lifecycle endpoints
				r.Post("/{id}/approve", rt.purchaseOrderHandler.Approve)
				r.Post("/{id}/cancel", rt.purchaseOrderHandler.Cancel)
			})

			// Delivery orders
			r.Route("/delivery-orders", func(r chi.Router) {
				r.Get("/", rt.deliveryOrderHandler.List)
				r.Get("/{id}", rt.deliveryOrderHandler.GetByID)

				// Lifecycle endpoints
				r.Post("/{id}/dispatch", rt.deliveryOrderHandler.Dispatch)
				r.Post("/{id}/verify", rt.deliveryOrderHandler.Verify)
				r.Post("/{id}/cancel", rt.deliveryOrderHandler.Cancel)
			})

			// Invoices
			r.Route("/invoices", func(r chi.Router) {
				r.Get("/", rt.invoiceHandler.List)
				r.Post("/", rt.invoiceHandler.Create)
				r.Get("/{id}", rt.invoiceHandler.GetByID)
				r.Post("/{id}/pay", rt.invoiceHandler.Pay)
			})

			// Alerts
			r.Route("/alerts", func(r chi.Router) {
				r.Get("/", rt.alertHandler.List)
				r.Post("/", rt.alertHandler.Create)
				r.Get("/stats", rt.alertHandler.Stats)
				r.Get("/{id}", rt.alertHandler.GetByID)
				r.Patch("/{id}/status", rt.alertHandler.UpdateStatus)
			})

			// Files
			r.Route("/files", func(r chi.Router) {
				r.Post("/upload", rt.fileHandler.Upload)
				r.Get("/{id}", rt.fileHandler.GetByID)
				r.Get("/{id}/download", rt.fileHandler.Download)
			})
		})
	})

	return r
}
