// Package config loads runtime configuration for the OpenMarket client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory (if present) and the process
//     environment (see parseEnv).
//  3. Optional JSON file (see parseJSON) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string     base URL of the API, e.g. https://market.example.com/api
//	-d string     path of the local SQLite database
//	-t int        request timeout in seconds (0 = none)
//	-l string     log level: debug, info, warn, error
//	-ephemeral    keep the session in memory only
//
// Environment
//
//	OPENMARKET_API_BASE_URL, OPENMARKET_DB, OPENMARKET_LOG_LEVEL,
//	OPENMARKET_LOG_FORMAT, OPENMARKET_REQUEST_TIMEOUT (Go duration)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so it can be either a
// string like "15s" or integer nanoseconds. Absent fields keep their value:
//
//	{
//	  "api_base_url": "http://localhost:3000/api",
//	  "database_path": "/home/me/.config/openmarket/openmarket.db",
//	  "request_timeout": "15s",
//	  "log_level": "debug",
//	  "log_format": "zerolog"
//	}
package config
