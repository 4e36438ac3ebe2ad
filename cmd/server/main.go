package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "genset-rental-backend/internal/api/http"
	"genset-rental-backend/internal/config"
	"genset-rental-backend/internal/database"
	"genset-rental-backend/internal/logger"
	"genset-rental-backend/internal/repository/postgres"
	"genset-rental-backend/internal/security"
	"genset-rental-backend/internal/service"
	"genset-rental-backend/internal/storage"

	"github.com/prometheus/client_golang/prometheus"
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
	logger.Info("Starting Genset Rental Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Email configuration", "provider", cfg.Email.Provider, "admin_email", cfg.Email.AdminEmail)

	// Initialize Database
	db, err := database.Open(cfg.GetDatabaseConnectionString(), cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	if cfg.Database.RunMigrations {
		migrator, err := database.NewMigrator(db)
		if err != nil {
			log.Fatalf("Failed to initialize migrations: %v", err)
		}
		if err := migrator.Up(); err != nil {
			logger.Error("Failed to run migrations", "error", err)
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.AccessTokenTTL())

	// Initialize Storage
	logger.Info("Using local file storage", "upload_dir", cfg.Storage.UploadDir, "base_url", cfg.Storage.BaseURL)
	fileStore, err := storage.New(cfg.Storage)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	maxUploadSize := cfg.Storage.MaxFileSize * 1024 * 1024
	imageSvc := service.NewImageStorageService(fileStore, maxUploadSize, cfg.Storage.AllowedTypes)

	// Initialize Email Service
	emailSvc, err := service.NewEmailService(
		cfg.Email.Provider,
		cfg.Email.SendGridAPIKey,
		cfg.Email.FromEmail,
		cfg.Email.FromName,
		cfg.Email.AdminEmail,
	)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	// Initialize Services
	authSvc := service.NewAuthService(store.Users, tokenManager)
	customerSvc := service.NewCustomerService(store.Customers)
	itemSvc := service.NewItemService(store.Items)
	poSvc := service.NewPurchaseOrderService(store.Repositories, store, imageSvc, cfg.Business.SequenceRetry)
	invoiceSvc := service.NewInvoiceService(store.Repositories, store, cfg.Business.SequenceRetry)
	financeSvc := service.NewFinanceService(store.Finance)
	reportSvc := service.NewReportService(store.Repositories, cfg.Location(), cfg.Business.DueSoonDays)
	productSvc := service.NewProductService(store.Products, imageSvc)
	settingSvc := service.NewSiteSettingService(store.Settings, imageSvc)
	contactSvc := service.NewContactService(store.Contacts, emailSvc)

	if cfg.Bootstrap.AdminUsername != "" && cfg.Bootstrap.AdminPassword != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := authSvc.EnsureAdmin(ctx, cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword)
		cancel()
		if err != nil {
			logger.Error("Failed to bootstrap admin account", "error", err)
			log.Fatalf("Failed to bootstrap admin account: %v", err)
		}
	}

	// Initialize HTTP handlers
	handlers := httpapi.Handlers{
		Auth:      httpapi.NewAuthHandler(authSvc),
		Customers: httpapi.NewCustomerHandler(customerSvc),
		Items:     httpapi.NewItemHandler(itemSvc),
		POs:       httpapi.NewPOHandler(poSvc),
		Invoices:  httpapi.NewInvoiceHandler(invoiceSvc),
		Finance:   httpapi.NewFinanceHandler(financeSvc, reportSvc),
		Products:  httpapi.NewProductHandler(productSvc, maxUploadSize),
		Settings:  httpapi.NewSettingHandler(settingSvc, maxUploadSize),
		Contacts:  httpapi.NewContactHandler(contactSvc),
		Uploads:   httpapi.NewImageUploadHandler(fileStore),
		Health:    httpapi.NewHealthHandler(store),
	}
	metrics := httpapi.NewMetrics(prometheus.NewRegistry())
	router := httpapi.NewRouter(handlers, tokenManager, metrics, cfg.Server.CorsAllowedOrigins)

	srv := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
