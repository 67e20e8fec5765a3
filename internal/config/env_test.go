// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	setEnvVars(t, map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_OUTPUT_DIR":  "/tmp/out",
		"APP_SESSION_KEY": "session-secret",
		"APP_PROVIDER":    "Acme",
		"APP_LOG_FILE":    "/tmp/client.log",

		"ADAPTER_ADDRESS":           "http://docs:8000",
		"ADAPTER_REQUEST_TIMEOUT":   "30s",
		"ADAPTER_RETRY_MAX_RETRIES": "5",
		"ADAPTER_RETRY_BASE_DELAY":  "200ms",
		"ADAPTER_RETRY_MAX_DELAY":   "2s",
		"ADAPTER_RETRY_JITTER":      "0.1",

		"STORAGE_DB_DSN": "/tmp/cache.db",

		"WORKERS_BATCH_DELAY":            "1s",
		"WORKERS_TOKEN_REFRESH_INTERVAL": "45s",
	})

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.Equal(t, "/tmp/out", cfg.App.OutputDir)
	assert.Equal(t, "session-secret", cfg.App.SessionKey)
	assert.Equal(t, "Acme", cfg.App.Provider)
	assert.Equal(t, "/tmp/client.log", cfg.App.LogFile)

	assert.Equal(t, "http://docs:8000", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Adapter.RequestTimeout)
	require.NotNil(t, cfg.Adapter.Retry.MaxRetries)
	assert.Equal(t, 5, *cfg.Adapter.Retry.MaxRetries)
	assert.Equal(t, 200*time.Millisecond, cfg.Adapter.Retry.BaseDelay)
	assert.Equal(t, 2*time.Second, cfg.Adapter.Retry.MaxDelay)
	require.NotNil(t, cfg.Adapter.Retry.Jitter)
	assert.InDelta(t, 0.1, *cfg.Adapter.Retry.Jitter, 1e-9)

	assert.Equal(t, "/tmp/cache.db", cfg.Storage.DB.DSN)

	assert.Equal(t, time.Second, cfg.Workers.BatchDelay)
	assert.Equal(t, 45*time.Second, cfg.Workers.TokenRefreshInterval)
}

func TestParseEnv_Unset(t *testing.T) {
	clearEnvVars(t)

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Nil(t, cfg.Adapter.Retry.MaxRetries)
	assert.Nil(t, cfg.Adapter.Retry.Jitter)
	assert.Empty(t, cfg.Adapter.HTTPAddress)
}

func TestParseEnv_ExplicitZeroRetries(t *testing.T) {
	setEnvVars(t, map[string]string{"ADAPTER_RETRY_MAX_RETRIES": "0"})

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	require.NotNil(t, cfg.Adapter.Retry.MaxRetries)
	assert.Equal(t, 0, *cfg.Adapter.Retry.MaxRetries)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	setEnvVars(t, map[string]string{"ADAPTER_REQUEST_TIMEOUT": "soon"})

	err := parseEnv(&StructuredConfig{})
	assert.Error(t, err)
}

func TestParseEnv_ExpandsHomeInPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	setEnvVars(t, map[string]string{
		"APP_OUTPUT_DIR": "~/Documents/generated",
		"APP_LOG_FILE":   "~",
		"STORAGE_DB_DSN": ":memory:",
	})

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, filepath.Join(home, "Documents", "generated"), cfg.App.OutputDir)
	assert.Equal(t, home, cfg.App.LogFile)
	assert.Equal(t, ":memory:", cfg.Storage.DB.DSN)
}

func TestExpandHome_LeavesOtherPaths(t *testing.T) {
	for _, path := range []string{"", "out", "/abs/out", "~other/out", "./~/x"} {
		got, err := expandHome(path)
		require.NoError(t, err)
		assert.Equal(t, path, got)
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

var envKeys = []string{
	"CONFIG",

	"APP_OUTPUT_DIR",
	"APP_SESSION_KEY",
	"APP_PROVIDER",
	"APP_LOG_FILE",

	"ADAPTER_ADDRESS",
	"ADAPTER_REQUEST_TIMEOUT",
	"ADAPTER_RETRY_MAX_RETRIES",
	"ADAPTER_RETRY_BASE_DELAY",
	"ADAPTER_RETRY_MAX_DELAY",
	"ADAPTER_RETRY_JITTER",

	"STORAGE_DB_DSN",

	"WORKERS_BATCH_DELAY",
	"WORKERS_TOKEN_REFRESH_INTERVAL",
}

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	clearEnvVars(t)
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

// clearEnvVars blanks every known key for the test's duration. Empty values
// are treated as unset by the env parser.
func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}
