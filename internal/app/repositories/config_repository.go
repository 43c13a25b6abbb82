package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/certsys/certdb/internal/app/models"
	"github.com/certsys/certdb/internal/pkg/apperrors"
	"github.com/certsys/certdb/internal/pkg/dberrors"
	"github.com/certsys/certdb/internal/pkg/helpers"
)

// IConfigRepository defines the interface for system_config operations
type IConfigRepository interface {
	Get(ctx context.Context, key string) (*models.SystemConfig, error)
	List(ctx context.Context) ([]*models.SystemConfig, error)
	Upsert(ctx context.Context, key, value string, description *string, updatedBy *int64) error
	SeedDefault(ctx context.Context, key, value, description string) (bool, error)
	CountByKey(ctx context.Context, key string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// ConfigRepository handles database operations for the system_config table
type ConfigRepository struct {
	db *pgxpool.Pool
}

// NewConfigRepository creates a new ConfigRepository
func NewConfigRepository(db *pgxpool.Pool) *ConfigRepository {
	return &ConfigRepository{db: db}
}

// Get retrieves a config row by key
func (r *ConfigRepository) Get(ctx context.Context, key string) (*models.SystemConfig, error) {
	cfg := &models.SystemConfig{}
	err := r.db.QueryRow(ctx, `
		SELECT config_id, config_key, config_value, description, updated_at, updated_by
		FROM system_config
		WHERE config_key = $1`,
		key).Scan(
		&cfg.ConfigID, &cfg.ConfigKey, &cfg.ConfigValue, &cfg.Description,
		&cfg.UpdatedAt, &cfg.UpdatedBy)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrConfigKeyNotFound
		}
		return nil, fmt.Errorf("error getting config: %w", err)
	}

	return cfg, nil
}

// List retrieves all config rows ordered by key
func (r *ConfigRepository) List(ctx context.Context) ([]*models.SystemConfig, error) {
	rows, err := r.db.Query(ctx, `
		SELECT config_id, config_key, config_value, description, updated_at, updated_by
		FROM system_config
		ORDER BY config_key`)
	if err != nil {
		return nil, fmt.Errorf("error listing config: %w", err)
	}
	defer rows.Close()

	var configs []*models.SystemConfig
	for rows.Next() {
		cfg := &models.SystemConfig{}
		if err := rows.Scan(
			&cfg.ConfigID, &cfg.ConfigKey, &cfg.ConfigValue, &cfg.Description,
			&cfg.UpdatedAt, &cfg.UpdatedBy); err != nil {
			return nil, fmt.Errorf("error scanning config: %w", err)
		}
		configs = append(configs, cfg)
	}

	return configs, rows.Err()
}

// Upsert writes a config value, inserting the key when absent and updating
// it otherwise. updatedBy must reference an existing user or be nil.
func (r *ConfigRepository) Upsert(ctx context.Context, key, value string, description *string, updatedBy *int64) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO system_config (config_key, config_value, description, updated_by)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (config_key) DO UPDATE
		SET config_value = EXCLUDED.config_value,
		    description = COALESCE(EXCLUDED.description, system_config.description),
		    updated_at = now(),
		    updated_by = EXCLUDED.updated_by`,
		key, value, helpers.GetNullString(description), helpers.GetNullInt64(updatedBy))

	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrConfigUpdaterUnset
		}
		return fmt.Errorf("error upserting config: %w", err)
	}

	return nil
}

// SeedDefault inserts a config row only if the key is absent, reporting
// whether a row was written. Re-running the seeder is a no-op.
func (r *ConfigRepository) SeedDefault(ctx context.Context, key, value, description string) (bool, error) {
	result, err := r.db.Exec(ctx, `
		INSERT INTO system_config (config_key, config_value, description)
		VALUES ($1, $2, $3)
		ON CONFLICT (config_key) DO NOTHING`,
		key, value, description)

	if err != nil {
		return false, fmt.Errorf("error seeding config: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// CountByKey returns how many rows carry the given key (0 or 1 under the
// unique constraint; used by verify).
func (r *ConfigRepository) CountByKey(ctx context.Context, key string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM system_config WHERE config_key = $1`, key).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting config by key: %w", err)
	}
	return count, nil
}

// Count returns the total number of configuration rows.
func (r *ConfigRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM system_config`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting config rows: %w", err)
	}
	return count, nil
}
