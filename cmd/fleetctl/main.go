package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/cli"
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/config"
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/logger"
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/repository/postgres"
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	rootCmd, release := cli.NewRootCmd(openRegistry)
	err := rootCmd.Execute()
	release()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openRegistry(ctx context.Context, configPath string) (*cli.Services, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	// Keep the terminal for command output; only warnings and errors are logged.
	logger.InitializeWithWriter(os.Stderr, "warn", cfg.Log.Format)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		return nil, nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	if cfg.Database.EnsureSchema {
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
	}

	store := postgres.NewStore(db)
	emailSvc := service.NewEmailService(cfg.Email)
	return &cli.Services{
		Registry:    service.NewRegistryService(store.EquipmentRepository, store.SiteRepository),
		Sharing:     service.NewSharingService(store.EquipmentRepository, store.SiteRepository, store.RentalRequestRepository, emailSvc),
		Utilization: service.NewUtilizationService(store.EquipmentRepository, emailSvc),
		Threshold:   cfg.Utilization.Threshold,
	}, func() { db.Close() }, nil
}
