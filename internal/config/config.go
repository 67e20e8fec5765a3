// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// docmanager client. It aggregates all sub-configurations and is populated
// by merging values from environment variables, command-line flags, an
// optional JSON file and built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds client runtime settings: where generated files go, the
	// provider override and the session cache key.
	App App `envPrefix:"APP_"`

	// Storage holds the local cache database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds the document service address, timeout and retry policy.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds background job settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds client runtime settings.
type App struct {
	// OutputDir is the directory generated documents are written to.
	// Env: APP_OUTPUT_DIR
	OutputDir string `env:"OUTPUT_DIR"`

	// SessionKey is the passphrase the cached session tokens are encrypted
	// with. Defaults to a value derived from the host and user name.
	// Env: APP_SESSION_KEY
	SessionKey string `env:"SESSION_KEY"`

	// Provider is the deployment-wide provider override. When set, PROVIDER
	// placeholders are hidden and pre-filled with it.
	// Env: APP_PROVIDER
	Provider string `env:"PROVIDER"`

	// LogFile is the path of the JSON log file.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// Storage groups the configuration for the local cache.
type Storage struct {
	// DB holds the SQLite connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite cache.
type DB struct {
	// DSN is the SQLite file path (e.g. "docmanager-client.db").
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Adapter holds configuration for the document service transport.
type Adapter struct {
	// HTTPAddress is the base URL of the document service, with or without
	// scheme (e.g. "http://localhost:8000", "docs.example.com").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single outbound request (e.g. "30s", "1m").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Retry controls retries of idempotent document service calls.
	Retry Retry `envPrefix:"RETRY_"`
}

// Retry holds the retry policy knobs. Pointer fields distinguish an explicit
// zero (no retries, no jitter) from an unset value.
type Retry struct {
	// MaxRetries is the number of retries after the first attempt.
	// Env: ADAPTER_RETRY_MAX_RETRIES
	MaxRetries *int `env:"MAX_RETRIES"`

	// BaseDelay is the delay before the first retry; it doubles per attempt.
	// Env: ADAPTER_RETRY_BASE_DELAY
	BaseDelay time.Duration `env:"BASE_DELAY"`

	// MaxDelay caps a single backoff delay.
	// Env: ADAPTER_RETRY_MAX_DELAY
	MaxDelay time.Duration `env:"MAX_DELAY"`

	// Jitter is the ± fraction applied to every delay, in [0, 1].
	// Env: ADAPTER_RETRY_JITTER
	Jitter *float64 `env:"JITTER"`
}

// Workers holds configuration for background and batch processing.
type Workers struct {
	// BatchDelay is the pause between two batch generation requests.
	// Env: WORKERS_BATCH_DELAY
	BatchDelay time.Duration `env:"BATCH_DELAY"`

	// TokenRefreshInterval is how often the refresh job inspects the access
	// token expiry.
	// Env: WORKERS_TOKEN_REFRESH_INTERVAL
	TokenRefreshInterval time.Duration `env:"TOKEN_REFRESH_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the client configuration
// from all available sources. For every field the first non-zero value wins,
// in the following order:
//  1. Environment variables
//  2. Command-line flags parsed from args
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		withDefaults().
		build()
}
