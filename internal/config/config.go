// Package config loads the command-line tool's defaults from the
// environment. Flags given on the command line override these values.
package config

import (
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// Config holds the environment-provided defaults of the reflow command
type Config struct {
	MediaDir string     // REFLOW_MEDIA_DIR, parent of scratch directories
	Workers  int        // REFLOW_WORKERS
	Title    string     // REFLOW_TITLE
	LogLevel slog.Level // REFLOW_LOG_LEVEL: debug, info, warn or error
	RawText  bool       // REFLOW_RAW_TEXT
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		MediaDir: getEnv("REFLOW_MEDIA_DIR", ""),
		Workers:  getEnvAsInt("REFLOW_WORKERS", runtime.GOMAXPROCS(0)),
		Title:    getEnv("REFLOW_TITLE", ""),
		LogLevel: getEnvAsLevel("REFLOW_LOG_LEVEL", slog.LevelInfo),
		RawText:  getEnvAsBool("REFLOW_RAW_TEXT", false),
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil && intVal > 0 {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsLevel(key string, defaultValue slog.Level) slog.Level {
	if value := os.Getenv(key); value != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(strings.TrimSpace(value))); err == nil {
			return level
		}
	}
	return defaultValue
}
