package config

import (
	"os"
	"os/user"
	"time"
)

const (
	DefaultHTTPAddress          = "http://localhost:8000"
	DefaultRequestTimeout       = 60 * time.Second
	DefaultMaxRetries           = 3
	DefaultRetryBaseDelay       = time.Second
	DefaultRetryMaxDelay        = 10 * time.Second
	DefaultRetryJitter          = 0.25
	DefaultDSN                  = "docmanager-client.db"
	DefaultOutputDir            = "."
	DefaultBatchDelay           = 500 * time.Millisecond
	DefaultTokenRefreshInterval = time.Minute
)

func defaultConfig() *StructuredConfig {
	maxRetries := DefaultMaxRetries
	jitter := DefaultRetryJitter

	return &StructuredConfig{
		App: App{
			OutputDir:  DefaultOutputDir,
			SessionKey: machineSessionKey(),
		},
		Storage: Storage{DB: DB{DSN: DefaultDSN}},
		Adapter: Adapter{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
			Retry: Retry{
				MaxRetries: &maxRetries,
				BaseDelay:  DefaultRetryBaseDelay,
				MaxDelay:   DefaultRetryMaxDelay,
				Jitter:     &jitter,
			},
		},
		Workers: Workers{
			BatchDelay:           DefaultBatchDelay,
			TokenRefreshInterval: DefaultTokenRefreshInterval,
		},
	}
}

// machineSessionKey ties the session cache to the current host and account
// when no explicit key is configured.
func machineSessionKey() string {
	host, _ := os.Hostname()
	name := "docmanager"
	if u, err := user.Current(); err == nil {
		name = u.Username
	}
	return "docmanager-client:" + host + ":" + name
}
