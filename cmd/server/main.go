package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	httpapi "chorebank-backend/internal/api/http"
	"chorebank-backend/internal/config"
	"chorebank-backend/internal/logger"
	"chorebank-backend/internal/payment"
	"chorebank-backend/internal/push"
	"chorebank-backend/internal/repository/postgres"
	"chorebank-backend/internal/security"
	"chorebank-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting ChoreBank Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret)

	// Initialize push sender
	var pushSender push.Sender = push.NoopSender{}
	if cfg.Push.Enabled {
		sender, err := push.NewFCMSender(context.Background(), cfg.Push.CredentialsFile)
		if err != nil {
			logger.Error("Failed to initialize FCM sender", "error", err)
			log.Fatalf("Failed to initialize FCM sender: %v", err)
		}
		pushSender = sender
	} else {
		logger.Info("Push notifications disabled, using noop sender")
	}

	// Initialize payment processor client
	processor := payment.NewClient(
		cfg.Processor.BaseURL,
		cfg.Processor.APIKey,
		time.Duration(cfg.Processor.TimeoutSeconds)*time.Second,
		cfg.Processor.VerifyRetries,
	)

	// Initialize Services
	noteSvc := service.NewNotificationService(store, pushSender)
	emailSvc := service.NewEmailService(cfg.Sendgrid.APIKey, cfg.Sendgrid.FromEmail, cfg.Sendgrid.FromName)
	walletSvc := service.NewWalletService(store)
	ledgerSvc := service.NewLedgerService(store)
	savingsSvc := service.NewSavingsService(store)
	paymentSvc := service.NewPaymentService(store, processor, noteSvc, cfg.Processor.Currency)
	scheduleSvc := service.NewScheduleService(store, noteSvc, emailSvc)

	// Build the router
	router := httpapi.NewRouter(httpapi.Services{
		Wallet:       walletSvc,
		Ledger:       ledgerSvc,
		Savings:      savingsSvc,
		Payment:      paymentSvc,
		Schedule:     scheduleSvc,
		Notification: noteSvc,
	}, tokenManager, cfg.Scheduler.SharedSecret)

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
