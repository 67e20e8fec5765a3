// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks source-independent invariants of the merged
// [StructuredConfig]: durations may not be negative.
func (cfg *StructuredConfig) validate() error {
	durations := map[string]int64{
		"adapter request timeout": int64(cfg.Adapter.RequestTimeout),
		"retry base delay":        int64(cfg.Adapter.Retry.BaseDelay),
		"retry max delay":         int64(cfg.Adapter.Retry.MaxDelay),
		"batch delay":             int64(cfg.Workers.BatchDelay),
		"token refresh interval":  int64(cfg.Workers.TokenRefreshInterval),
	}
	for name, d := range durations {
		if d < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	r := cfg.Adapter.Retry
	if r.MaxRetries < 0 || r.Jitter < 0 || r.Jitter > 1 || r.BaseDelay <= 0 || r.MaxDelay < r.BaseDelay {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.TokenRefreshInterval == 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.App.OutputDir == "" || cfg.App.SessionKey == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
