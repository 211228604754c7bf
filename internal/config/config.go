package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds all application configuration
type Config struct {
	Storage StorageConfig
	Session SessionConfig
	Logger  LoggerConfig
}

// StorageConfig holds the data directory layout
type StorageConfig struct {
	// Dir is the directory holding every persisted store file.
	Dir string
	// OutDir receives generated receipts, statements and exports.
	OutDir string
	// BackupDir receives timestamped backup directories.
	BackupDir string
}

// SessionConfig holds interactive session behavior
type SessionConfig struct {
	// IdleTimeout forces a logout when no input arrives for this long.
	// It is checked between engine calls and never interrupts one.
	IdleTimeout time.Duration
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level  string // debug, info, warn, error
	Format string // text or json
}

// Load loads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	cfg := &Config{
		Storage: StorageConfig{
			Dir:       getEnv("MINIBANK_DATA_DIR", "data"),
			OutDir:    getEnv("MINIBANK_OUT_DIR", "out"),
			BackupDir: getEnv("MINIBANK_BACKUP_DIR", "backups"),
		},
		Session: SessionConfig{
			IdleTimeout: getEnvAsDuration("MINIBANK_IDLE_TIMEOUT", "2m"),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Storage.Dir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}
	if c.Storage.OutDir == "" {
		return fmt.Errorf("output directory cannot be empty")
	}
	if c.Storage.BackupDir == "" {
		return fmt.Errorf("backup directory cannot be empty")
	}

	if c.Session.IdleTimeout <= 0 {
		return fmt.Errorf("idle timeout must be positive, got %s", c.Session.IdleTimeout)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}
	if c.Logger.Format != "text" && c.Logger.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be text or json)", c.Logger.Format)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to parsing the default if provided value is invalid
		duration, err = time.ParseDuration(defaultValue)
		if err != nil {
			return 0
		}
	}
	return duration
}
