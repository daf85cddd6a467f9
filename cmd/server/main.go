package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "rentride-backend/internal/api/http"
	"rentride-backend/internal/config"
	"rentride-backend/internal/logger"
	"rentride-backend/internal/payment"
	"rentride-backend/internal/repository/postgres"
	"rentride-backend/internal/security"
	"rentride-backend/internal/service"

	_ "github.com/lib/pq"
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
	logger.Info("Starting RentRide Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
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
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// Initialize Payment Gateway
	gateway := payment.NewGateway(cfg.Payment)

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	noteSvc := service.NewNotificationService(store.NotificationRepository)
	bookingSvc := service.NewBookingService(
		store.BookingRepository,
		store.VehicleRepository,
		store.UserRepository,
		store.CouponRepository,
		noteSvc,
		emailSvc,
		cfg.Booking.ReclaimDelay,
	)
	settlementSvc := service.NewSettlementService(
		store.BookingRepository,
		store.ContractRepository,
		store.SettlementRepository,
		store.WalletRepository,
		store.VehicleRepository,
		store.UserRepository,
		noteSvc,
		emailSvc,
	)
	slotSvc := service.NewSlotService(store.SlotRepository)
	walletSvc := service.NewWalletService(store.WalletRepository)
	reclaimSvc := service.NewReclaimService(
		store.BookingRepository,
		store.ReclaimRepository,
		noteSvc,
		cfg.Booking.ReclaimPollInterval,
	)

	// The reclaim worker runs inside the API server so abandoned bookings
	// are released promptly; the cronjob binary is the safety net.
	workerCtx, stopWorker := context.WithCancel(context.Background())
	reclaimSvc.Start(workerCtx)

	// Initialize HTTP handlers
	router := httpapi.NewRouter(tokenManager, httpapi.Handlers{
		Auth:         httpapi.NewAuthHandler(tokenManager),
		Booking:      httpapi.NewBookingHandler(bookingSvc, settlementSvc),
		Slot:         httpapi.NewSlotHandler(slotSvc),
		Payment:      httpapi.NewPaymentHandler(gateway, bookingSvc, settlementSvc),
		Notification: httpapi.NewNotificationHandler(noteSvc),
		Wallet:       httpapi.NewWalletHandler(walletSvc),
	})

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down...")
	stopWorker()
	reclaimSvc.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shut down HTTP server", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
