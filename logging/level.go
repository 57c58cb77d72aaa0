package logging

import (
	"log/slog"
	"strings"

	"github.com/medicore/ai-service/config"
)

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// GetConsoleLogLevel picks the console level. An explicit level wins except in
// tests, which stay at error unless verbose.
func GetConsoleLogLevel(env config.Environment, level string, verbose bool) slog.Level {
	switch env {
	case config.EnvTest:
		if verbose {
			return slog.LevelInfo
		}
		return slog.LevelError
	case config.EnvStaging, config.EnvProduction:
		if level == "" {
			return slog.LevelWarn
		}
	default:
		if level == "" {
			return slog.LevelInfo
		}
	}
	return parseLogLevel(level)
}

// GetFileLogLevel returns the level of the JSON file handler
func GetFileLogLevel() slog.Level {
	return slog.LevelDebug
}
