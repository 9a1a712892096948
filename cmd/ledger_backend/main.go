package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/Adams-ibr/Commodity-sub000/internal/core/ports/repositories"
	"github.com/Adams-ibr/Commodity-sub000/internal/core/services"
	"github.com/Adams-ibr/Commodity-sub000/internal/handlers"
	"github.com/Adams-ibr/Commodity-sub000/internal/middleware"
	"github.com/Adams-ibr/Commodity-sub000/internal/platform/clock"
	"github.com/Adams-ibr/Commodity-sub000/internal/platform/config"
	"github.com/Adams-ibr/Commodity-sub000/internal/platform/events"
	"github.com/Adams-ibr/Commodity-sub000/internal/repositories/database/memory"
	"github.com/Adams-ibr/Commodity-sub000/internal/repositories/database/pgsql"
	"github.com/Adams-ibr/Commodity-sub000/pkg/database"
	"github.com/gin-gonic/gin"
)

// @title Commodity Ledger API
// @version 1.0
// @description Multi-company double-entry ledger with multi-currency invoicing and financial reports.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos, cleanup, err := setupStorage(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("driver", cfg.StorageDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	bus := events.NewBus()
	bus.Subscribe(events.AuditLogger(logger))

	serviceContainer, err := services.NewServiceContainer(cfg, repos, bus, clock.System{})
	if err != nil {
		logger.Error("Failed to create services", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// setupStorage builds the repositories for the configured driver. The returned
// cleanup func releases any connections.
func setupStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repositories.RepositoryProvider, func(), error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		logger.Info("Using in-memory storage")
		return memory.NewRepositoryProvider(memory.NewStore()), func() {}, nil
	case config.StoragePostgres:
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return repositories.RepositoryProvider{}, nil, fmt.Errorf("database pool: %w", err)
		}
		logger.Info("Database connection pool established.")

		logger.Info("Running database migrations...")
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			dbPool.Close()
			return repositories.RepositoryProvider{}, nil, err
		}
		return pgsql.NewRepositoryProvider(dbPool), dbPool.Close, nil
	default:
		return repositories.RepositoryProvider{}, nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}
