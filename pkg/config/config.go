package config

import (
	"fmt"
	"os"
	"strconv"

	// Load environment variables from .env files when present.
	_ "github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Tables        TablesConfig
	Inbox         InboxConfig
	Database      DatabaseConfig
	Observability ObservabilityConfig
}

// TablesConfig points at the optional YAML override for the built-in
// vendor/keyword/category tables.
type TablesConfig struct {
	Path string // empty keeps the built-in defaults
}

// InboxConfig configures the watched receipt drop directory.
type InboxConfig struct {
	Dir      string
	Archive  string // processed files are moved here
	Schedule string // cron expression for the sweep
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

type ObservabilityConfig struct {
	MetricsEnabled bool
	MetricsPort    int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Tables: TablesConfig{
			Path: getEnv("TABLES_PATH", ""),
		},
		Inbox: InboxConfig{
			Dir:      getEnv("INBOX_DIR", "inbox"),
			Archive:  getEnv("INBOX_ARCHIVE_DIR", "inbox/processed"),
			Schedule: getEnv("INBOX_SCHEDULE", "*/5 * * * *"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvAsInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", "postgres"),
			Database: getEnv("POSTGRES_DB", "receipts-dev"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		},
		Observability: ObservabilityConfig{
			MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
			MetricsPort:    getEnvAsInt("METRICS_PORT", 9090),
		},
	}

	return cfg, nil
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
