package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/SscSPs/money_forecast/internal/adapters/bridge"
	portsrepo "github.com/SscSPs/money_forecast/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/money_forecast/internal/core/ports/services"
	"github.com/SscSPs/money_forecast/internal/core/services"
	"github.com/SscSPs/money_forecast/internal/handlers"
	"github.com/SscSPs/money_forecast/internal/middleware"
	"github.com/SscSPs/money_forecast/internal/platform/config"
	"github.com/SscSPs/money_forecast/internal/repositories/database/pgsql"
	"github.com/SscSPs/money_forecast/internal/repositories/memory"
	"github.com/SscSPs/money_forecast/internal/utils/categorizer"
	"github.com/SscSPs/money_forecast/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Money Forecast API
// @version 1.0
// @description Recurring transactions, bank sync and forecast-vs-actual balances.

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

	bankSource := newBankSource(cfg, logger)

	var repos portsrepo.RepositoryProvider
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		logger.Warn("Using in-memory storage, state is lost on restart")
		repos = memory.NewRepositoryProvider(bankSource)
	default:
		dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer database.ClosePgxPool(dbPool)

		if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
			logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		repos = pgsql.NewRepositoryProvider(dbPool, bankSource)
	}

	cat, err := newCategorizer(cfg)
	if err != nil {
		logger.Error("Failed to load categorization rules", slog.String("error", err.Error()))
		os.Exit(1)
	}

	serviceContainer := services.NewServiceContainer(cfg, repos, cat)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg)))

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to configure rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(rateLimiter))

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// newBankSource returns the Bridge client, or nil when sync is not configured.
func newBankSource(cfg *config.Config, logger *slog.Logger) portsrepo.BankTransactionReader {
	if !cfg.BridgeEnabled() {
		logger.Info("Bank synchronization disabled, no Bridge credentials configured")
		return nil
	}
	client, err := bridge.NewClient(bridge.Config{
		BaseURL:      cfg.BridgeBaseURL,
		TokenURL:     cfg.BridgeTokenURL,
		ClientID:     cfg.BridgeClientID,
		ClientSecret: cfg.BridgeClientSecret,
		Version:      cfg.BridgeVersion,
		Timeout:      cfg.BridgeTimeout,
	})
	if err != nil {
		logger.Error("Failed to configure Bridge client, bank synchronization disabled", slog.String("error", err.Error()))
		return nil
	}
	return client
}

func newCategorizer(cfg *config.Config) (portssvc.Categorizer, error) {
	if cfg.CategorizerRulesFile == "" {
		return categorizer.NewDefault(), nil
	}
	rules, err := categorizer.LoadRules(cfg.CategorizerRulesFile)
	if err != nil {
		return nil, err
	}
	return categorizer.New(rules), nil
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization", middleware.RequestIDHeader)
	c.ExposeHeaders = []string{middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"}
	if len(cfg.CORSAllowedOrigins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.CORSAllowedOrigins
	}
	return c
}

// runMigrations applies the embedded SQL migrations through a temporary database/sql
// connection using the pgx stdlib driver.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}
	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
