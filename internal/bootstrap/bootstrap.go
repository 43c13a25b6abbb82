package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appMigrations "github.com/certsys/certdb/internal/app/migrations"
	appRepos "github.com/certsys/certdb/internal/app/repositories"
	appServices "github.com/certsys/certdb/internal/app/services"
	"github.com/certsys/certdb/internal/config"
	"github.com/certsys/certdb/internal/db"
	"github.com/certsys/certdb/internal/pkg/filestorage"
	"github.com/certsys/certdb/internal/pkg/logger"
	"github.com/certsys/certdb/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	UserService   *appServices.UserService
	ConfigService *appServices.ConfigService
	ImportService *appServices.ImportService
	ExportService *appServices.ExportService
	FileService   *appServices.FileService
	VerifyService *appServices.VerifyService
	Repos         *appRepos.Repositories
	FileStorage   *filestorage.LocalStorage
	Logger        zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = filepath.Join("configs", "config.yaml")
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Debug().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// ConnectDatabase establishes the database connection without touching the
// schema. Callers own the returned pool and must close it.
func ConnectDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Debug().Str("host", cfg.Database.Host).Str("dbname", cfg.Database.DBName).Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Debug().Msg("Database connection successfully established.")

	return dbPool, nil
}

// RunMigrations applies every pending migration from the configured directory.
func RunMigrations(ctx context.Context, cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	migrationsDir := cfg.Migrations.Dir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("dir", migrationsDir).Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")
	return nil
}

// RunSeed creates the default admin account and the submission deadline
// setting. Safe to call repeatedly.
func RunSeed(ctx context.Context, cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	if err := seed.CreateDefaultData(ctx, dbPool, cfg, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data")
		return fmt.Errorf("seeding default data failed: %w", err)
	}
	return nil
}

// BuildDependencies initializes application repositories and services.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Storage.UploadDir)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository, lgr)
	deps.ConfigService = appServices.NewConfigService(deps.Repos.ConfigRepository, lgr)
	deps.ImportService = appServices.NewImportService(deps.UserService, deps.Repos.UserRepository, lgr)
	deps.ExportService = appServices.NewExportService(deps.Repos.CertificateRepository, lgr)
	deps.FileService = appServices.NewFileService(deps.Repos.FileRepository, deps.Repos.UserRepository, deps.FileStorage, lgr)
	deps.VerifyService = appServices.NewVerifyService(deps.Repos.UserRepository, deps.Repos.ConfigRepository, cfg, lgr)

	return deps, nil
}
