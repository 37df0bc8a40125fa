// Package config provides configuration management functionality.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir       string // Base directory for the runs database
	LogLevel      string
	Port          int
	DevMode       bool
	Workers       int    // Sampling worker count (0 = one per CPU)
	Seed          int64  // Base seed for sample draws
	RetentionDays int    // Prune run records older than this many days
	Schedule      string // Cron expression for the retention job
}

// Load reads configuration from the environment, with a .env file as
// fallback when present.
func Load() (*Config, error) {
	// Missing .env is fine; the environment still applies.
	_ = godotenv.Load()

	cfg := &Config{
		DataDir:       getEnv("ANNEALER_DATA_DIR", "./data"),
		LogLevel:      getEnv("ANNEALER_LOG_LEVEL", "info"),
		Port:          getEnvInt("ANNEALER_PORT", 8090),
		DevMode:       getEnvBool("ANNEALER_DEV_MODE", false),
		Workers:       getEnvInt("ANNEALER_WORKERS", 0),
		Seed:          int64(getEnvInt("ANNEALER_SEED", 0)),
		RetentionDays: getEnvInt("ANNEALER_RETENTION_DAYS", 30),
		Schedule:      getEnv("ANNEALER_RETENTION_SCHEDULE", "@daily"),
	}

	return cfg, nil
}

// getEnv gets environment variable with fallback
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvInt gets integer environment variable with fallback
func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

// getEnvBool gets boolean environment variable with fallback
func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
