package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvAPIBaseURL     = "OPENMARKET_API_BASE_URL"
	EnvDatabasePath   = "OPENMARKET_DB"
	EnvLogLevel       = "OPENMARKET_LOG_LEVEL"
	EnvLogFormat      = "OPENMARKET_LOG_FORMAT"
	EnvRequestTimeout = "OPENMARKET_REQUEST_TIMEOUT"
)

// parseEnv loads dotenvPath into the process environment (a missing file is
// fine; variables already set win) and overlays the OPENMARKET_* variables.
func parseEnv(cfg *Config, dotenvPath string) error {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", dotenvPath, err)
		}
	}

	setFromEnv(&cfg.APIBaseURL, EnvAPIBaseURL)
	setFromEnv(&cfg.DatabasePath, EnvDatabasePath)
	setFromEnv(&cfg.LogLevel, EnvLogLevel)
	setFromEnv(&cfg.LogFormat, EnvLogFormat)

	if v := os.Getenv(EnvRequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvRequestTimeout, err)
		}
		cfg.RequestTimeout = d
	}
	return nil
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
