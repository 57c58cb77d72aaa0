// Package config loads the service configuration from the environment
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Port              string
	Address           string
	Env               Environment
	LogLevel          string // empty means the environment default
	LogDir            string
	LogRetentionWeeks int
	MaxLogFileSize    int64
	MaxRequestBody    int64
	MaxHeaderSize     int64

	// Clinic backend. An empty URL disables every live data source.
	BackendURL            string
	BackendToken          string
	InventoryTimeout      time.Duration
	AnalyticsTimeout      time.Duration
	RestockRefreshMinutes int
}

// Load loads and validates configuration from environment variables
func Load() (*Config, error) {
	env, err := ParseEnvironment(getEnvWithDefault("ENV", "dev"))
	if err != nil {
		return nil, fmt.Errorf("configuration validation failed: invalid ENV: %w", err)
	}

	cfg := &Config{
		Port:                  getEnvWithDefault("PORT", "8000"),
		Address:               getEnvWithDefault("ADDRESS", "127.0.0.1"),
		Env:                   env,
		LogLevel:              os.Getenv("LOG_LEVEL"),
		LogDir:                getEnvWithDefault("LOG_DIR", "logs"),
		LogRetentionWeeks:     getIntEnvWithDefault("LOG_RETENTION_WEEKS", 4),
		MaxLogFileSize:        getInt64EnvWithDefault("MAX_LOG_FILE_SIZE", 100*1024*1024),
		MaxRequestBody:        getInt64EnvWithDefault("MAX_REQUEST_BODY", 1024*1024),
		MaxHeaderSize:         getInt64EnvWithDefault("MAX_HEADER_SIZE", 1024*1024),
		BackendURL:            os.Getenv("BACKEND_URL"),
		BackendToken:          os.Getenv("BACKEND_TOKEN"),
		InventoryTimeout:      getDurationEnvWithDefault("INVENTORY_TIMEOUT", 3*time.Second),
		AnalyticsTimeout:      getDurationEnvWithDefault("ANALYTICS_TIMEOUT", 5*time.Second),
		RestockRefreshMinutes: getIntEnvWithDefault("RESTOCK_REFRESH_MINUTES", 15),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// ListenAddr returns the host:port the server binds to
func (c *Config) ListenAddr() string {
	return c.Address + ":" + c.Port
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnvWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getInt64EnvWithDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnvWithDefault accepts Go durations ("3s") or plain seconds ("3")
func getDurationEnvWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

// GetEnvVars returns every environment variable the service reads
func GetEnvVars() []string {
	return []string{
		"PORT",
		"ADDRESS",
		"ENV",
		"LOG_LEVEL",
		"LOG_DIR",
		"LOG_RETENTION_WEEKS",
		"MAX_LOG_FILE_SIZE",
		"MAX_REQUEST_BODY",
		"MAX_HEADER_SIZE",
		"BACKEND_URL",
		"BACKEND_TOKEN",
		"INVENTORY_TIMEOUT",
		"ANALYTICS_TIMEOUT",
		"RESTOCK_REFRESH_MINUTES",
	}
}
