package config

import (
	"flag"
	"fmt"
	"io"
	"strconv"
)

// parseFlags parses the client command-line flags from args.
//
// Flags:
//
//	-a document service address (URL or host:port)
//	-t request timeout (e.g., "30s", "1m")
//	-d local cache database path
//	-o output directory for generated documents
//	-provider provider override
//	-session-key passphrase for the session cache
//	-log-file log file path
//	-c/-config json file path with configs
//	-retries number of retries for idempotent calls
//	-retry-base-delay first retry delay
//	-retry-max-delay retry delay ceiling
//	-retry-jitter retry jitter fraction
//	-batch-delay pause between batch requests
//	-refresh-interval token refresh check interval
func parseFlags(args []string) (*StructuredConfig, error) {
	cfg := &StructuredConfig{}
	fs := flag.NewFlagSet("docmanager-client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Adapter.HTTPAddress, "a", "", "Document service address")
	fs.DurationVar(&cfg.Adapter.RequestTimeout, "t", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Local cache database path")
	fs.StringVar(&cfg.App.OutputDir, "o", "", "Output directory for generated documents")
	fs.StringVar(&cfg.App.Provider, "provider", "", "Provider override")
	fs.StringVar(&cfg.App.SessionKey, "session-key", "", "Session cache passphrase")
	fs.StringVar(&cfg.App.LogFile, "log-file", "", "Log file path")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")
	fs.Func("retries", "Retries for idempotent calls", func(s string) error {
		n, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		cfg.Adapter.Retry.MaxRetries = &n
		return nil
	})
	fs.DurationVar(&cfg.Adapter.Retry.BaseDelay, "retry-base-delay", 0, "First retry delay")
	fs.DurationVar(&cfg.Adapter.Retry.MaxDelay, "retry-max-delay", 0, "Retry delay ceiling")
	fs.Func("retry-jitter", "Retry jitter fraction (0..1)", func(s string) error {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		cfg.Adapter.Retry.Jitter = &f
		return nil
	})
	fs.DurationVar(&cfg.Workers.BatchDelay, "batch-delay", 0, "Pause between batch requests")
	fs.DurationVar(&cfg.Workers.TokenRefreshInterval, "refresh-interval", 0, "Token refresh check interval")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return cfg, nil
}

