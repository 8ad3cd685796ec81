package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clinicdesk/clinic-backend/internal/application/services"
	"github.com/clinicdesk/clinic-backend/internal/config"
	"github.com/clinicdesk/clinic-backend/internal/infrastructure/persistence/postgres"
	"github.com/clinicdesk/clinic-backend/internal/interfaces/rest/handlers"
	"github.com/clinicdesk/clinic-backend/internal/interfaces/rest/middleware"
	"github.com/clinicdesk/clinic-backend/internal/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting clinic billing service",
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
	)

	policy, err := cfg.Billing.Policy()
	if err != nil {
		logger.Error("invalid billing configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := postgres.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	invoiceRepo := postgres.NewInvoiceRepository(db)
	ledgerRepo := postgres.NewCopaymentLedgerRepository(db)
	coordinator := postgres.NewTransactionCoordinator(db)

	composer := services.NewInvoiceComposer(nil, cfg.Billing.InvoiceDueDays)
	billingService := services.NewBillingService(coordinator, policy, composer, logger)
	queryService := services.NewQueryService(invoiceRepo, ledgerRepo, policy)

	h := handlers.NewHandlers(billingService, queryService, logger)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	router := http.Handler(mux)

	handler := middleware.Recovery(logger)(router)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Timeout(cfg.Server.ReadTimeout)(handler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	overdueWorker := worker.NewOverdueWorker(
		invoiceRepo,
		cfg.Worker.Interval,
		cfg.Worker.BatchSize,
		logger,
	)

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	go overdueWorker.Start(workerCtx)

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	cancelWorkers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
