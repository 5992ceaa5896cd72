package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	auditapp "github.com/retailops/backend/internal/application/audit"
	"github.com/retailops/backend/internal/application/settlement"
	"github.com/retailops/backend/internal/infrastructure/config"
	"github.com/retailops/backend/internal/infrastructure/event"
	"github.com/retailops/backend/internal/infrastructure/logger"
	"github.com/retailops/backend/internal/infrastructure/persistence"
	"github.com/retailops/backend/internal/interfaces/http/handler"
	"github.com/retailops/backend/internal/interfaces/http/middleware"
	"github.com/retailops/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting settlement engine",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection
	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}

	// Event bus and audit trail subscriber
	eventBus := event.NewInMemoryEventBus(log.Named("eventbus"))
	auditRecorder := auditapp.NewRecorder(
		persistence.NewGormAuditLogRepository(db.DB),
		log.Named("audit"),
	)
	eventBus.Subscribe(auditRecorder)

	// Application services
	scope := persistence.NewGormTransactionScope(db.DB)
	settlementCfg := settlement.Config{
		BillValueCeiling:    cfg.Settlement.BillValueCeiling,
		BillVolumeCeilingML: cfg.Settlement.BillVolumeCeilingML,
	}
	saleService := settlement.NewSaleService(scope, settlementCfg, eventBus, log.Named("sale"))
	purchaseService := settlement.NewPurchaseService(scope, eventBus, log.Named("purchase"))
	reconciliationService := settlement.NewReconciliationService(scope, settlementCfg, eventBus, log.Named("reconciliation"))
	creditService := settlement.NewCreditService(scope, eventBus, log.Named("credit"))
	ledgerService := settlement.NewLedgerService(scope, eventBus, log.Named("ledger"))

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log.Named("http")),
		logger.Recovery(log.Named("http")),
	)

	r := router.NewRouter(engine)
	r.Register(handler.NewSaleHandler(saleService))
	r.Register(handler.NewPurchaseHandler(purchaseService))
	r.Register(handler.NewStockClosingHandler(reconciliationService))
	r.Register(handler.NewCreditPaymentHandler(creditService))
	r.Register(handler.NewLedgerHandler(ledgerService))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
