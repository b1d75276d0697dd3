package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"real-balance/internal/api"
	"real-balance/internal/api/handlers"
	"real-balance/internal/repository"
	"real-balance/internal/service"
	"real-balance/pkg/auth"
	"real-balance/pkg/config"
	"real-balance/pkg/database"
	"real-balance/pkg/logger"

	"go.uber.org/zap"
)

// @title Real Balance API
// @version 1.0
// @description Personal finance tracker: categories, transactions and savings goals.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting Real Balance service")

	// Initialize database
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

	// Initialize auth primitives
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.Issuer)
	hasher := auth.NewPasswordHasher(cfg.Password.BcryptCost)

	// Initialize services
	authService := service.NewAuthService(store, hasher, jwtManager, appLogger)
	categoryService := service.NewCategoryService(store, appLogger)
	txService := service.NewTransactionService(store, appLogger)
	goalService := service.NewGoalService(store, appLogger)

	if cfg.Database.SeedDefaults {
		if _, err := categoryService.SeedDefaults(ctx); err != nil {
			appLogger.Fatal("Failed to seed default categories", zap.Error(err))
		}
	}

	// Setup router
	app := api.SetupRouter(api.Handlers{
		Auth:         handlers.NewAuthHandler(authService, appLogger),
		Categories:   handlers.NewCategoryHandler(categoryService, appLogger),
		Transactions: handlers.NewTransactionHandler(txService, appLogger),
		Goals:        handlers.NewGoalHandler(goalService, appLogger),
	}, authService, &cfg.Server, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
