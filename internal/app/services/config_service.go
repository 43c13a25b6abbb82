package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cast"

	"github.com/certsys/certdb/internal/app/models"
	"github.com/certsys/certdb/internal/app/repositories"
	"github.com/certsys/certdb/internal/pkg/apperrors"
	"github.com/certsys/certdb/internal/pkg/helpers"
)

// ConfigService exposes typed access to the system_config key/value table.
type ConfigService struct {
	configs repositories.IConfigRepository
	logger  zerolog.Logger
}

// NewConfigService creates a new ConfigService
func NewConfigService(configs repositories.IConfigRepository, lgr zerolog.Logger) *ConfigService {
	return &ConfigService{configs: configs, logger: lgr}
}

// Get retrieves a config row by key.
func (s *ConfigService) Get(ctx context.Context, key string) (*models.SystemConfig, error) {
	return s.configs.Get(ctx, key)
}

// GetString retrieves a config value as a string.
func (s *ConfigService) GetString(ctx context.Context, key string) (string, error) {
	cfg, err := s.configs.Get(ctx, key)
	if err != nil {
		return "", err
	}
	return cfg.ConfigValue, nil
}

// GetInt retrieves a config value coerced to an integer.
func (s *ConfigService) GetInt(ctx context.Context, key string) (int, error) {
	cfg, err := s.configs.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	return cast.ToIntE(cfg.ConfigValue)
}

// GetBool retrieves a config value coerced to a boolean.
func (s *ConfigService) GetBool(ctx context.Context, key string) (bool, error) {
	cfg, err := s.configs.Get(ctx, key)
	if err != nil {
		return false, err
	}
	return cast.ToBoolE(cfg.ConfigValue)
}

// GetDeadline retrieves the submission deadline as a parsed time.
func (s *ConfigService) GetDeadline(ctx context.Context) (time.Time, error) {
	value, err := s.GetString(ctx, models.ConfigKeySubmissionDeadline)
	if err != nil {
		return time.Time{}, err
	}

	deadline, err := helpers.ParseDeadline(value)
	if err != nil {
		return time.Time{}, apperrors.ErrInvalidDeadline
	}
	return deadline, nil
}

// Set writes a config value. Values for the submission deadline are
// validated against the YYYY-MM-DD HH:MM:SS format before being stored.
// updatedBy, when non-nil, must reference an existing user.
func (s *ConfigService) Set(ctx context.Context, key, value string, updatedBy *int64) error {
	if key == "" {
		return apperrors.NewValidationError("config key is required")
	}

	if key == models.ConfigKeySubmissionDeadline {
		if _, err := helpers.ParseDeadline(value); err != nil {
			return apperrors.ErrInvalidDeadline
		}
	}

	if err := s.configs.Upsert(ctx, key, value, nil, updatedBy); err != nil {
		return err
	}

	s.logger.Info().Str("key", key).Str("value", value).Msg("Config updated")
	return nil
}

// List retrieves all config rows.
func (s *ConfigService) List(ctx context.Context) ([]*models.SystemConfig, error) {
	return s.configs.List(ctx)
}
