package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/openmarket/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Only the flags handled here are kept (see flagx.FilterArgs) so the -c
// flag of the JSON stage does not abort parsing.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-t", "-l", "-ephemeral", "--ephemeral"})

	fs := flag.NewFlagSet("openmarket", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the API")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local database")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.BoolVar(&cfg.Ephemeral, "ephemeral", cfg.Ephemeral, "keep the session in memory only")
	timeout := fs.Int("t", int(cfg.RequestTimeout/time.Second), "request timeout (in seconds, 0 = none)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
