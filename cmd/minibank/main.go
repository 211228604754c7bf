package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"minibank/internal/config"
	"minibank/internal/service"
	"minibank/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	logger.Info("starting minibank",
		"data_dir", cfg.Storage.Dir,
		"idle_timeout", cfg.Session.IdleTimeout,
	)

	stores, err := store.Open(cfg.Storage.Dir)
	if err != nil {
		logger.Error("failed to open stores", "error", err)
		os.Exit(1)
	}

	identity, err := service.NewIdentityService(stores.Identity, stores.Ledger, logger)
	if err != nil {
		logger.Error("failed to initialize identity service", "error", err)
		os.Exit(1)
	}

	app := &app{
		cfg:        cfg,
		log:        logger,
		stores:     stores,
		identity:   identity,
		ledger:     service.NewLedgerService(stores.Ledger, stores.Transactions, logger),
		loans:      service.NewLoanService(stores.Loans, stores.Ledger, stores.Transactions, logger),
		statements: service.NewStatementService(stores.Ledger, stores.Transactions, cfg.Storage.OutDir, logger),
		feedback:   service.NewFeedbackService(stores.Reviews, stores.Feedback, logger),
		rates:      service.NewRateService(stores.Rates, logger),
		reports: service.NewReportService(
			stores.Ledger, stores.Identity, stores.Loans,
			stores.AccountRequests, stores.AdminRequests, stores.Appointments,
		),
	}
	app.engine = service.NewApprovalEngine(
		stores.AccountRequests, stores.AdminRequests, stores.Appointments,
		stores.Ledger, app.ledger, identity, logger,
	)

	// Stores flush on every mutation, so an interrupt loses nothing.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		fmt.Println("\nGoodbye!")
		logger.Info("shutting down")
		os.Exit(0)
	}()

	app.run(os.Stdin)
	logger.Info("stopped")
}
