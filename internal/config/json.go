package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		OutputDir  string `json:"output_dir"`
		SessionKey string `json:"session_key"`
		Provider   string `json:"provider"`
		LogFile    string `json:"log_file"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		Retry          struct {
			MaxRetries *int     `json:"max_retries"`
			BaseDelay  Duration `json:"base_delay"`
			MaxDelay   Duration `json:"max_delay"`
			Jitter     *float64 `json:"jitter"`
		} `json:"retry,omitempty"`
	} `json:"adapter,omitempty"`

	Workers struct {
		BatchDelay           Duration `json:"batch_delay"`
		TokenRefreshInterval Duration `json:"token_refresh_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			OutputDir:  jsonCfg.App.OutputDir,
			SessionKey: jsonCfg.App.SessionKey,
			Provider:   jsonCfg.App.Provider,
			LogFile:    jsonCfg.App.LogFile,
		},
		Storage: Storage{
			DB: DB{DSN: jsonCfg.Storage.DB.DSN},
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
			Retry: Retry{
				MaxRetries: jsonCfg.Adapter.Retry.MaxRetries,
				BaseDelay:  time.Duration(jsonCfg.Adapter.Retry.BaseDelay),
				MaxDelay:   time.Duration(jsonCfg.Adapter.Retry.MaxDelay),
				Jitter:     jsonCfg.Adapter.Retry.Jitter,
			},
		},
		Workers: Workers{
			BatchDelay:           time.Duration(jsonCfg.Workers.BatchDelay),
			TokenRefreshInterval: time.Duration(jsonCfg.Workers.TokenRefreshInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
