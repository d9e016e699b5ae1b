// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the identity-scoped Postgres connection string used for
	// all normal operations. Required.
	DatabaseURL string

	// ElevatedDatabaseURL is the elevated-privilege connection string used
	// only as the tag sync fallback path. Defaults to DatabaseURL when not
	// set, which disables meaningful escalation but keeps the wiring uniform.
	ElevatedDatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// TagSyncMaxRetries is the number of re-attempts the tag sync executor
	// makes after a failed store call. Defaults to 3.
	TagSyncMaxRetries uint64

	// TagSyncInitialDelay is the wait before the executor's first retry; the
	// delay doubles on every subsequent retry. Defaults to 500ms.
	// Set TAG_SYNC_INITIAL_DELAY_MS to override, in milliseconds.
	TagSyncInitialDelay time.Duration
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	cfg := Config{
		Port:                getEnv("PORT", "8080"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		CORSOrigins:         splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		TagSyncMaxRetries:   getEnvUint("TAG_SYNC_MAX_RETRIES", 3),
		TagSyncInitialDelay: time.Duration(getEnvUint("TAG_SYNC_INITIAL_DELAY_MS", 500)) * time.Millisecond,
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.ElevatedDatabaseURL = getEnv("ELEVATED_DATABASE_URL", cfg.DatabaseURL)

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvUint parses the environment variable named by key as an unsigned
// integer, falling back when unset or malformed.
func getEnvUint(key string, fallback uint64) uint64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
