package migrations

import (
	"context"
	"fmt"

	"order_entry/internal/catalog"
	"order_entry/internal/database"
	"order_entry/internal/models"
	"order_entry/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RunMigrations drops and recreates the reference tables.
func RunMigrations(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")

	// Force recreate all tables to ensure proper schema
	if err := db.Migrator().DropTable(&models.Article{}, &models.Client{}); err != nil {
		log.Warn("error dropping tables", zap.Error(err))
	}

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	log.Info("database migrations completed")
	return nil
}

// Seed copies a loaded catalog into the reference tables, replacing their
// content.
func Seed(ctx context.Context, repo repository.ReferenceRepository, cat *catalog.Catalog, log *zap.Logger) error {
	if err := repo.ReplaceArticles(ctx, cat.Articles()); err != nil {
		return fmt.Errorf("failed to import articles: %w", err)
	}
	if err := repo.ReplaceClients(ctx, cat.Clients()); err != nil {
		return fmt.Errorf("failed to import clients: %w", err)
	}

	log.Info("reference data imported",
		zap.Int("articles", len(cat.Articles())),
		zap.Int("clients", len(cat.Clients())),
	)
	return nil
}
