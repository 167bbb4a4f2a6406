package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the OpenMarket client.
type Config struct {
	APIBaseURL     string
	DatabasePath   string
	RequestTimeout time.Duration // zero means no client-side timeout
	LogLevel       string
	LogFormat      string
	Ephemeral      bool
}

const (
	DefaultAPIBaseURL = "http://localhost:3000/api"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
)

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = DefaultAPIBaseURL
	c.DatabasePath = DefaultDatabasePath()
	c.RequestTimeout = 0
	c.LogLevel = DefaultLogLevel
	c.LogFormat = DefaultLogFormat
	c.Ephemeral = false
}

// DefaultDatabasePath is openmarket/openmarket.db under the user config
// directory, or in the working directory when that is unknown.
func DefaultDatabasePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "openmarket.db"
	}
	return filepath.Join(dir, "openmarket", "openmarket.db")
}

// LoadConfig builds a Config from defaults, the environment, the JSON file
// and the command-line flags in args (without the program name). Later
// sources take precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseEnv(cfg, ".env"); err != nil {
		return nil, err
	}
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
