package main

import (
	"context"
	"log"

	"real-balance/internal/repository"
	"real-balance/internal/service"
	"real-balance/pkg/config"
	"real-balance/pkg/database"
	"real-balance/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	// Connect to database
	ctx := context.Background()
	db, dialect, err := database.Open(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	store := repository.NewStore(db, dialect, appLogger)
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		appLogger.Fatal("Failed to migrate database", zap.Error(err))
	}

	appLogger.Info("Starting database seeding...")

	created, err := service.NewCategoryService(store, appLogger).SeedDefaults(ctx)
	if err != nil {
		appLogger.Fatal("Failed to seed default categories", zap.Error(err))
	}
	if created == 0 {
		appLogger.Info("Default categories already present, nothing to do")
		return
	}

	appLogger.Info("Database seeding completed successfully!", zap.Int("categories", created))
}
