package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/certsys/certdb/internal/pkg/helpers"
)

// Config structure represents the application configuration
type Config struct {
	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	Migrations struct {
		Dir string `yaml:"dir" env:"MIGRATIONS_DIR"`
	} `yaml:"migrations"`

	Storage struct {
		UploadDir string `yaml:"upload_dir" env:"STORAGE_UPLOAD_DIR"`
	} `yaml:"storage"`

	Seed struct {
		AdminAccountID  string `yaml:"admin_account_id" env:"SEED_ADMIN_ACCOUNT_ID"`
		AdminName       string `yaml:"admin_name" env:"SEED_ADMIN_NAME"`
		AdminDepartment string `yaml:"admin_department" env:"SEED_ADMIN_DEPARTMENT"`
		AdminEmail      string `yaml:"admin_email" env:"SEED_ADMIN_EMAIL"`
		AdminPassword   string `yaml:"admin_password" env:"SEED_ADMIN_PASSWORD"`
		Deadline        string `yaml:"deadline" env:"SEED_DEADLINE"`
	} `yaml:"seed"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load default config with sane defaults
	config := &Config{}
	setDefaults(config)

	// Try to read config file if it exists
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		err = yaml.Unmarshal(file, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	err := loadFromEnv(config)
	if err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	// Validate config
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Database defaults
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "certificate_system"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"

	// Migration / storage defaults
	config.Migrations.Dir = "migrations"
	config.Storage.UploadDir = "uploaded_files"

	// Seed defaults: the bootstrap admin account and the initial
	// submission deadline. The password is hashed at seed time and is
	// expected to be rotated on first login.
	config.Seed.AdminAccountID = "admin00000000"
	config.Seed.AdminName = "System Administrator"
	config.Seed.AdminDepartment = "Academic Affairs Office"
	config.Seed.AdminEmail = "admin@school.edu.cn"
	config.Seed.AdminPassword = "Admin123456"
	config.Seed.Deadline = "2025-12-31 23:59:59"

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if config.Database.DBName == "" {
		return fmt.Errorf("database name is required")
	}

	if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
		return fmt.Errorf("invalid connection max lifetime format: %w", err)
	}

	if config.Seed.AdminAccountID == "" {
		return fmt.Errorf("seed admin account id is required")
	}
	if config.Seed.AdminPassword == "" {
		return fmt.Errorf("seed admin password is required")
	}
	if _, err := helpers.ParseDeadline(config.Seed.Deadline); err != nil {
		return fmt.Errorf("invalid seed deadline format: %w", err)
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}
