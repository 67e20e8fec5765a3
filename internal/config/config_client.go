package config

import (
	"fmt"
	"time"
)

// ClientApp holds client runtime settings derived from the shared
// structured config.
type ClientApp struct {
	// OutputDir is where generated documents are written.
	OutputDir string
	// SessionKey encrypts the cached session tokens.
	SessionKey string
	// Provider is the provider override; empty means none.
	Provider string
	// LogFile is the JSON log destination; empty means beside the executable.
	LogFile string
}

// ClientRetry holds the resolved retry policy.
type ClientRetry struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	Jitter     float64
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the document service base address.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
	// Retry is the retry policy for idempotent calls.
	Retry ClientRetry
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite connection string used by the client.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// BatchDelay is the pause between two batch requests.
	BatchDelay time.Duration
	// TokenRefreshInterval defines how often the refresh job runs.
	TokenRefreshInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Adapter contains client transport addresses and timeouts.
	Adapter ClientAdapter
	// Storage contains client storage settings.
	Storage ClientStorage
	// Workers contains background job settings.
	Workers ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], resolves optional
// values, and validates the resulting [ClientConfig].
func GetClientConfig(args []string) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	retry := ClientRetry{
		BaseDelay: cfg.Adapter.Retry.BaseDelay,
		MaxDelay:  cfg.Adapter.Retry.MaxDelay,
	}
	if cfg.Adapter.Retry.MaxRetries != nil {
		retry.MaxRetries = *cfg.Adapter.Retry.MaxRetries
	}
	if cfg.Adapter.Retry.Jitter != nil {
		retry.Jitter = *cfg.Adapter.Retry.Jitter
	}

	return &ClientConfig{
		App: ClientApp{
			OutputDir:  cfg.App.OutputDir,
			SessionKey: cfg.App.SessionKey,
			Provider:   cfg.App.Provider,
			LogFile:    cfg.App.LogFile,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			Retry:          retry,
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: cfg.Storage.DB.DSN},
		},
		Workers: ClientWorkers{
			BatchDelay:           cfg.Workers.BatchDelay,
			TokenRefreshInterval: cfg.Workers.TokenRefreshInterval,
		},
	}
}
