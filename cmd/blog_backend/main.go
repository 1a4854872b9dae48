package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	portssvc "github.com/inkwell-labs/blog_backend/internal/core/ports/services"
	"github.com/inkwell-labs/blog_backend/internal/core/services"
	"github.com/inkwell-labs/blog_backend/internal/handlers"
	"github.com/inkwell-labs/blog_backend/internal/middleware"
	"github.com/inkwell-labs/blog_backend/internal/platform/config"
	"github.com/inkwell-labs/blog_backend/internal/platform/email"
	"github.com/inkwell-labs/blog_backend/internal/platform/storage"
	"github.com/inkwell-labs/blog_backend/internal/repositories"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Blog Backend API
// @version 1.0
// @description REST API for a blog platform with posts, comments, categories, tags, and likes.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	repos, closeRepos, err := repositories.NewRepositoryProvider(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize repositories", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeRepos()
	logger.Info("Database connection established", slog.String("backend", cfg.DatabaseKind))

	// Schema migrations only apply to the relational backend; MongoDB
	// collections and indexes are ensured by the repository provider.
	if cfg.DatabaseKind == config.DatabasePostgres {
		if err := runMigrations(cfg, logger); err != nil {
			logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	// Assign into the interfaces only when construction produced a real
	// client, so downstream nil checks keep working.
	var mailer portssvc.Mailer
	if m := email.NewResendMailer(cfg); m != nil {
		mailer = m
	} else {
		logger.Warn("RESEND_API_KEY not set, outgoing email is disabled")
	}

	var images portssvc.ImageStore
	s3Store, err := storage.NewS3ImageStore(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize image storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if s3Store != nil {
		images = s3Store
	} else {
		logger.Warn("S3_BUCKET not set, image uploads are disabled")
	}

	serviceContainer := services.NewServiceContainer(cfg, repos, mailer, images)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimitFormat)
	if err != nil {
		logger.Error("Invalid rate limit format", slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(memory.NewStore(), rate)))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending schema migrations from the migrations
// directory using a temporary database/sql connection over the pgx stdlib
// driver.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
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

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
