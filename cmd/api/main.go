package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sixink-6/gas-grove-api/docs"
	"github.com/sixink-6/gas-grove-api/internal/auth"
	"github.com/sixink-6/gas-grove-api/internal/config"
	"github.com/sixink-6/gas-grove-api/internal/database"
	"github.com/sixink-6/gas-grove-api/internal/http/handler"
	"github.com/sixink-6/gas-grove-api/internal/http/middleware"
	"github.com/sixink-6/gas-grove-api/internal/http/router"
	"github.com/sixink-6/gas-grove-api/internal/jobs"
	"github.com/sixink-6/gas-grove-api/internal/logger"
	"github.com/sixink-6/gas-grove-api/internal/repository"
	"github.com/sixink-6/gas-grove-api/internal/service"
	"github.com/sixink-6/gas-grove-api/internal/storage"
	"go.uber.org/zap"
)

// @title Gas Grove API
// @version 1.0
// @description Admin workflow API for gas distribution: purchase orders, deliveries, invoices and operational alerts
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@gasgrove.io

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
// @Security BearerAuth
// @Security ApiKeyAuth

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
		docs.SwaggerInfo.Host = "gas-grove-staging.azurecontainerapps.io"
	case "production":
		docs.SwaggerInfo.Host = "api.gasgrove.io"
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

	// Connect to database with retry logic
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize storage
	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Initialize repositories
	clientRepo := repository.NewClientRepository(db)
	purchaseOrderRepo := repository.NewPurchaseOrderRepository(db)
	deliveryOrderRepo := repository.NewDeliveryOrderRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	alertRepo := repository.NewAlertRepository(db)
	numberSequenceRepo := repository.NewNumberSequenceRepository(db)
	fileRepo := repository.NewFileRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize services
	// Number sequence service first (all numbered entities depend on it)
	numberSequenceService := service.NewNumberSequenceService(numberSequenceRepo, log)

	clientService := service.NewClientService(clientRepo, log)
	fileService := service.NewFileService(fileRepo, fileStorage, log)
	purchaseOrderService := service.NewPurchaseOrderService(purchaseOrderRepo, deliveryOrderRepo, clientRepo, numberSequenceService, log)
	deliveryOrderService := service.NewDeliveryOrderService(deliveryOrderRepo, fileService, log)
	invoiceService := service.NewInvoiceService(invoiceRepo, clientRepo, numberSequenceService, log)
	alertService := service.NewAlertService(alertRepo, numberSequenceService, log)
	auditLogService := service.NewAuditLogService(auditLogRepo, log)

	// Initialize middleware
	authMiddleware := auth.NewMiddleware(cfg, userRepo, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)
	auditMiddleware := middleware.NewAuditMiddleware(auditLogService, nil, log)

	// Initialize handlers
	clientHandler := handler.NewClientHandler(clientService, log)
	purchaseOrderHandler := handler.NewPurchaseOrderHandler(purchaseOrderService, log)
	deliveryOrderHandler := handler.NewDeliveryOrderHandler(deliveryOrderService, log)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService, log)
	alertHandler := handler.NewAlertHandler(alertService, log)
	fileHandler := handler.NewFileHandler(fileService, cfg.Storage.MaxUploadSizeMB, log)
	auditHandler := handler.NewAuditHandler(auditLogService, log)
	sequenceHandler := handler.NewNumberSequenceHandler(numberSequenceService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		rateLimiter,
		auditMiddleware,
		clientHandler,
		purchaseOrderHandler,
		deliveryOrderHandler,
		invoiceHandler,
		alertHandler,
		fileHandler,
		auditHandler,
		sequenceHandler,
	)

	// Initialize and start scheduler for background jobs
	scheduler := jobs.NewScheduler(log)

	overdueJob := jobs.NewInvoiceOverdueJob(invoiceService, log)
	if err := scheduler.AddJob("invoice-overdue-scan", cfg.Jobs.OverdueScanSchedule, overdueJob.Run); err != nil {
		log.Error("Failed to register overdue invoice job", zap.Error(err))
	}

	cleanupJob := jobs.NewAuditCleanupJob(auditLogService, cfg.Jobs.AuditRetentionDays, log)
	if err := scheduler.AddJob("audit-log-cleanup", cfg.Jobs.AuditCleanupSchedule, cleanupJob.Run); err != nil {
		log.Error("Failed to register audit cleanup job", zap.Error(err))
	}

	scheduler.Start()
	log.Info("Scheduler started",
		zap.Strings("jobs", scheduler.GetJobNames()),
	)

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

		// Stop scheduler, let running jobs finish
		stopCtx := scheduler.Stop()
		<-stopCtx.Done()
		log.Info("Scheduler stopped")

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
