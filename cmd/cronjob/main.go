package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"genset-rental-backend/internal/config"
	"genset-rental-backend/internal/database"
	"genset-rental-backend/internal/jobs"
	"genset-rental-backend/internal/logger"
	"genset-rental-backend/internal/repository/postgres"
	"genset-rental-backend/internal/scheduler"
	"genset-rental-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'send-due-soon-reminders', 'report-overdue-returns', 'all')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Genset Rental Cronjob Runner...", "log_level", cfg.Log.Level, "timezone", cfg.Business.Timezone)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := database.Open(cfg.GetDatabaseConnectionString(), cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Services
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
	reportSvc := service.NewReportService(store.Repositories, cfg.Location(), cfg.Business.DueSoonDays)

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(&jobs.Services{Reports: reportSvc, Email: emailSvc}, cfg)

	// Check if running a single job
	if *runOnce != "" {
		if !slices.Contains(jobs.Names, *runOnce) {
			logger.Error("Unknown job name", "job", *runOnce)
			fmt.Printf("Available jobs:\n")
			for _, name := range jobs.Names {
				fmt.Printf("  - %s\n", name)
			}
			db.Close()
			os.Exit(1)
		}

		logger.Info("Running job once", "job", *runOnce)
		if err := jobRunner.RunJob(*runOnce); err != nil {
			db.Close()
			log.Fatalf("Job %s failed: %v", *runOnce, err)
		}
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler, err := scheduler.NewScheduler(jobRunner)
	if err != nil {
		logger.Error("Failed to register cron jobs", "error", err)
		log.Fatalf("Failed to register cron jobs: %v", err)
	}

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.", "jobs", cronScheduler.Entries())

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}
