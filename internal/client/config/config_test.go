package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvAPIBaseURL, EnvDatabasePath, EnvLogLevel, EnvLogFormat, EnvRequestTimeout} {
		t.Setenv(k, "")
	}
}

func defaults() Config {
	var c Config
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "http://localhost:3000/api", c.APIBaseURL)
	assert.Equal(t, DefaultDatabasePath(), c.DatabasePath)
	assert.Equal(t, "openmarket.db", filepath.Base(c.DatabasePath))
	assert.Zero(t, c.RequestTimeout)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)
	assert.False(t, c.Ephemeral)
}

func TestParseEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIBaseURL, "https://env.example.com/api")
	t.Setenv(EnvRequestTimeout, "15s")

	cfg := defaults()
	require.NoError(t, parseEnv(&cfg, filepath.Join(t.TempDir(), "missing.env")))

	want := defaults()
	want.APIBaseURL = "https://env.example.com/api"
	want.RequestTimeout = 15 * time.Second
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestParseEnv_DotEnvFile(t *testing.T) {
	clearEnv(t)
	dotenv := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("OPENMARKET_LOG_FORMAT=zerolog\n"), 0o600))
	// godotenv never overrides a variable that is set, even to ""
	require.NoError(t, os.Unsetenv(EnvLogFormat))

	cfg := defaults()
	require.NoError(t, parseEnv(&cfg, dotenv))
	assert.Equal(t, "zerolog", cfg.LogFormat)
}

func TestParseEnv_BadTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvRequestTimeout, "soon")

	cfg := defaults()
	require.Error(t, parseEnv(&cfg, ""))
}

func TestParseJSON(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"api_base_url":    "https://json.example.com/api",
		"request_timeout": "10s",
		"log_format":      "json",
	})

	t.Run("loads from flags", func(t *testing.T) {
		cfg := defaults()
		require.NoError(t, parseJSON(&cfg, []string{"-config", path}))

		want := defaults()
		want.APIBaseURL = "https://json.example.com/api"
		want.RequestTimeout = 10 * time.Second
		want.LogFormat = "json"
		assert.Empty(t, cmp.Diff(want, cfg))
	})

	t.Run("short flag", func(t *testing.T) {
		cfg := defaults()
		require.NoError(t, parseJSON(&cfg, []string{"-c=" + path, "-a", "ignored"}))
		assert.Equal(t, "https://json.example.com/api", cfg.APIBaseURL)
	})

	t.Run("no flag → no changes", func(t *testing.T) {
		cfg := defaults()
		require.NoError(t, parseJSON(&cfg, nil))
		assert.Empty(t, cmp.Diff(defaults(), cfg))
	})

	t.Run("invalid JSON", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		cfg := defaults()
		require.Error(t, parseJSON(&cfg, []string{"-c", bad}))
	})

	t.Run("missing file", func(t *testing.T) {
		cfg := defaults()
		require.Error(t, parseJSON(&cfg, []string{"-c", filepath.Join(t.TempDir(), "nope.json")}))
	})
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		expected  func(c *Config)
		expectErr bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "http://127.0.0.1:9090/api", "-d", "/tmp/om.db", "-t", "30", "-l", "debug", "-ephemeral"},
			expected: func(c *Config) {
				c.APIBaseURL = "http://127.0.0.1:9090/api"
				c.DatabasePath = "/tmp/om.db"
				c.RequestTimeout = 30 * time.Second
				c.LogLevel = "debug"
				c.Ephemeral = true
			},
		},
		{
			name:     "foreign flags ignored",
			args:     []string{"-c", "cfg.json", "-x", "1", "-l=warn"},
			expected: func(c *Config) { c.LogLevel = "warn" },
		},
		{name: "bad timeout", args: []string{"-t", "abc"}, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			err := parseFlags(&cfg, tt.args)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			want := defaults()
			tt.expected(&want)
			assert.Empty(t, cmp.Diff(want, cfg))
		})
	}
}

func TestParseFlags_KeepsSubSecondTimeoutWhenUnset(t *testing.T) {
	cfg := defaults()
	cfg.RequestTimeout = 1500 * time.Millisecond
	require.NoError(t, parseFlags(&cfg, []string{"-l", "debug"}))
	assert.Equal(t, 1500*time.Millisecond, cfg.RequestTimeout)
}

func TestLoadConfig_Precedence(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIBaseURL, "https://env.example.com/api")
	t.Setenv(EnvLogLevel, "error")
	path := writeTempJSON(t, map[string]any{"log_level": "warn", "database_path": "/json/om.db"})

	cfg, err := LoadConfig([]string{"-c", path, "-d", "/flag/om.db"})
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com/api", cfg.APIBaseURL)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "/flag/om.db", cfg.DatabasePath)
}
