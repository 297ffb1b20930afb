package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/api/http"
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/config"
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/ingestion"
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/jobs"
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/logger"
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/repository/postgres"
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/scheduler"
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	withScheduler := flag.Bool("with-scheduler", false, "Run the cron jobs inside the API process")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting equipment registry API...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Email configuration", "provider", cfg.Email.Provider)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Database.EnsureSchema {
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			log.Fatalf("Failed to ensure schema: %v", err)
		}
	}

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email)
	registrySvc := service.NewRegistryService(store.EquipmentRepository, store.SiteRepository)
	sharingSvc := service.NewSharingService(store.EquipmentRepository, store.SiteRepository, store.RentalRequestRepository, emailSvc)
	utilizationSvc := service.NewUtilizationService(store.EquipmentRepository, emailSvc)

	if cfg.Database.SeedFleet {
		n, err := registrySvc.SeedFleet(ctx)
		if err != nil {
			log.Fatalf("Failed to seed fleet: %v", err)
		}
		logger.Info("Fleet seed checked", "inserted", n)
	}

	// Telemetry ingestion
	if cfg.MQTT.Broker != "" {
		subscriber, err := ingestion.NewSubscriber(cfg.MQTT, ingestion.NewProcessor(registrySvc))
		if err != nil {
			log.Fatalf("Failed to configure telemetry subscriber: %v", err)
		}
		if err := subscriber.Start(); err != nil {
			logger.Error("Telemetry ingestion unavailable", "error", err)
		} else {
			defer subscriber.Stop()
		}
	} else {
		logger.Info("MQTT broker not configured, telemetry ingestion disabled")
	}

	// Optional in-process scheduler
	if *withScheduler {
		jobRunner := jobs.NewJobRunner(&jobs.Services{
			Registry:    registrySvc,
			Utilization: utilizationSvc,
		}, cfg)
		cronScheduler := scheduler.NewScheduler(jobRunner)
		cronScheduler.Start()
		defer cronScheduler.Stop()
	}

	router := httpapi.NewRouter(httpapi.Dependencies{
		Registry:    registrySvc,
		Sharing:     sharingSvc,
		Utilization: utilizationSvc,
		Health:      store.Ping,
	})

	srv := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
