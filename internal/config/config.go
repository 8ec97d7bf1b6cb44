// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds everything tunable from the environment.
type Config struct {
	// BaseURL is the backend base address. Defaults to the local dev server.
	BaseURL string

	// RequestTimeout bounds every backend request. Defaults to 10s.
	RequestTimeout time.Duration

	// LogPath is the debug log file. Empty disables file logging.
	LogPath string
}

// Load reads configuration from the environment and returns a Config.
func Load() (Config, error) {
	cfg := Config{
		BaseURL:        getEnv("WAYFARER_API_URL", "http://localhost:3000"),
		RequestTimeout: 10 * time.Second,
		LogPath:        os.Getenv("WAYFARER_LOG"),
	}

	if v := os.Getenv("WAYFARER_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid WAYFARER_TIMEOUT %q: %w", v, err)
		}
		cfg.RequestTimeout = d
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
