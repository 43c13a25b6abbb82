package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/certsys/certdb/internal/app/models"
	"github.com/certsys/certdb/internal/app/repositories"
	"github.com/certsys/certdb/internal/config"
	"github.com/certsys/certdb/internal/pkg/auth"
)

// DeadlineDescription documents the seeded submission_deadline row.
const DeadlineDescription = "Certificate submission deadline (YYYY-MM-DD HH:MM:SS)"

// Seeder writes the two bootstrap rows the system needs to be usable:
// the default administrator account and the default submission deadline.
type Seeder struct {
	users   repositories.IUserRepository
	configs repositories.IConfigRepository
	seed    config.Config
	logger  zerolog.Logger
}

// NewSeeder creates a Seeder over repository interfaces.
func NewSeeder(users repositories.IUserRepository, configs repositories.IConfigRepository, cfg *config.Config, lgr zerolog.Logger) *Seeder {
	return &Seeder{
		users:   users,
		configs: configs,
		seed:    *cfg,
		logger:  lgr,
	}
}

// CreateDefaultData seeds the default admin user and the default
// submission deadline. Both writes are insert-if-absent, so running the
// seeder any number of times leaves the database in the same state.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	repos := repositories.NewRepositories(dbPool)
	return NewSeeder(repos.UserRepository, repos.ConfigRepository, cfg, lgr).Run(ctx)
}

// Run executes the seeding steps, collecting errors without stopping early.
func (s *Seeder) Run(ctx context.Context) error {
	s.logger.Info().Msg("Checking/Creating default data...")
	var finalErr error

	if err := s.seedAdminUser(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Error seeding admin user")
		finalErr = errors.Join(finalErr, err)
	}

	if err := s.seedDeadline(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Error seeding submission deadline")
		finalErr = errors.Join(finalErr, err)
	}

	s.logger.Info().Msg("Default data check/creation finished.")
	return finalErr
}

func (s *Seeder) seedAdminUser(ctx context.Context) error {
	accountID := s.seed.Seed.AdminAccountID

	exists, err := s.users.AccountExists(ctx, accountID)
	if err != nil {
		return err
	}
	if exists {
		s.logger.Info().Str("accountID", accountID).Msg("Admin user already exists, skipping creation")
		return nil
	}

	s.logger.Info().Str("accountID", accountID).Msg("Creating default admin user...")

	// The hash is always regenerated through the real bcrypt routine;
	// the bootstrap password is configuration, never a literal hash.
	hash, err := auth.HashPassword(s.seed.Seed.AdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		AccountID:    accountID,
		Name:         s.seed.Seed.AdminName,
		Role:         models.RoleAdmin,
		Department:   s.seed.Seed.AdminDepartment,
		Email:        s.seed.Seed.AdminEmail,
		PasswordHash: hash,
		IsActive:     true,
		CreatedBy:    models.CreatedBySystem,
	}

	adminID, err := s.users.Create(ctx, admin)
	if err != nil {
		return err
	}

	s.logger.Info().Int64("adminID", adminID).Msg("Default admin user created")
	s.logger.Warn().Str("accountID", accountID).Msg("Bootstrap admin password in use; rotate it on first login")
	return nil
}

func (s *Seeder) seedDeadline(ctx context.Context) error {
	created, err := s.configs.SeedDefault(ctx,
		models.ConfigKeySubmissionDeadline, s.seed.Seed.Deadline, DeadlineDescription)
	if err != nil {
		return err
	}

	if created {
		s.logger.Info().Str("deadline", s.seed.Seed.Deadline).Msg("Default submission deadline created")
	} else {
		s.logger.Info().Msg("Submission deadline already configured, skipping")
	}
	return nil
}
