package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"nomad-nest/internal/api"
	"nomad-nest/internal/api/handlers"
	"nomad-nest/internal/repository"
	"nomad-nest/internal/service"
	"nomad-nest/pkg/auth"
	"nomad-nest/pkg/blobstore"
	"nomad-nest/pkg/config"
	"nomad-nest/pkg/logger"
	"nomad-nest/pkg/postgres"

	"go.uber.org/zap"
)

// @title Nomad Nest API
// @version 1.0
// @description Travel journaling backend: journal entries with photos and expense tracking

// @contact.name API Support
// @contact.email support@nomad-nest.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

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
	appLogger.Info("Starting Nomad Nest service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, &cfg.Database); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize blob storage
	blob, err := blobstore.New(ctx, &cfg.Blob, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize blob storage", zap.Error(err))
	}

	// Initialize repositories
	allocator := repository.NewIDAllocator(db, appLogger)
	userRepo := repository.NewUserRepository(db, appLogger)
	entryRepo := repository.NewEntryRepository(db, appLogger)
	photoRepo := repository.NewPhotoRepository(db, appLogger)
	expenseRepo := repository.NewExpenseRepository(db, cfg.Database.SettleWindow, appLogger)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration)

	// Initialize services
	authService := service.NewAuthService(userRepo, allocator, blob, jwtManager, appLogger)
	userService := service.NewUserService(userRepo, appLogger)
	entryService := service.NewEntryService(entryRepo, photoRepo, expenseRepo, allocator, blob, appLogger)
	expenseService := service.NewExpenseService(entryRepo, expenseRepo, allocator, appLogger)
	photoService := service.NewPhotoService(photoRepo, blob, appLogger)
	queryService := service.NewQueryService(entryRepo, expenseRepo, appLogger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	userHandler := handlers.NewUserHandler(userService, appLogger)
	entryHandler := handlers.NewEntryHandler(entryService, queryService, appLogger)
	expenseHandler := handlers.NewExpenseHandler(expenseService, queryService, appLogger)
	photoHandler := handlers.NewPhotoHandler(photoService, appLogger)

	// Setup router
	app := api.SetupRouter(authHandler, userHandler, entryHandler, expenseHandler, photoHandler, jwtManager, appLogger)

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
