package main

import (
	"context"
	"flag"
	"log"

	"order_entry/internal/catalog"
	"order_entry/internal/config"
	"order_entry/internal/database"
	"order_entry/internal/logging"
	"order_entry/internal/migrations"
	"order_entry/internal/repository"

	"go.uber.org/zap"
)

// Imports the delimited reference exports into the database used by
// REFERENCE_SOURCE=database.
func main() {
	reset := flag.Bool("reset", false, "drop and recreate the reference tables first")
	flag.Parse()

	// Load configuration
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.LoadTimeoutDuration())
	defer cancel()

	var source catalog.Source = catalog.NewDirSource(cfg.ReferenceDir)
	if cfg.ReferenceURL != "" {
		source = catalog.NewHTTPSource(cfg.ReferenceURL)
	}
	cat, err := catalog.NewLoader(source, cfg.Files(), cfg.Separator, logger).Load(ctx)
	if err != nil {
		logger.Fatal("failed to load reference files", zap.Error(err))
	}

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	if *reset {
		if err := migrations.RunMigrations(db, logger); err != nil {
			logger.Fatal("failed to migrate database", zap.Error(err))
		}
	}

	repo := repository.NewReferenceRepository(db)
	if err := migrations.Seed(ctx, repo, cat, logger); err != nil {
		logger.Fatal("import failed", zap.Error(err))
	}

	articles, clients, err := repo.Counts(ctx)
	if err != nil {
		logger.Fatal("failed to count imported rows", zap.Error(err))
	}
	logger.Info("import complete", zap.Int64("articles", articles), zap.Int64("clients", clients))
}
