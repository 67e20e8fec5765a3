package client

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuvrajShekhar/docmanager-client/internal/config"
	"github.com/YuvrajShekhar/docmanager-client/internal/logger"
	"github.com/YuvrajShekhar/docmanager-client/models"
)

func testConfig(t *testing.T) *config.ClientConfig {
	t.Helper()
	return &config.ClientConfig{
		App: config.ClientApp{OutputDir: t.TempDir(), SessionKey: "test-session-key"},
		Adapter: config.ClientAdapter{
			HTTPAddress:    "http://localhost:8000",
			RequestTimeout: time.Second,
			Retry:          config.ClientRetry{MaxRetries: 1, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond},
		},
		Storage: config.ClientStorage{DB: config.ClientDB{DSN: ":memory:"}},
		Workers: config.ClientWorkers{BatchDelay: time.Millisecond, TokenRefreshInterval: time.Minute},
	}
}

func TestNewApp_RequiresConfig(t *testing.T) {
	_, err := NewApp(context.Background(), nil, models.AppBuildInfo{}, logger.Nop())
	require.Error(t, err)
}

func TestNewApp_Wires(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(t), models.NewAppBuildInfo("1.0.0", "", ""), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, app.Close()) })

	require.NotNil(t, app.services)
	assert.NotNil(t, app.services.Session)
	assert.NotNil(t, app.services.Batch)
	assert.NotNil(t, app.workers)

	authenticated, err := app.services.Session.Init(context.Background())
	require.NoError(t, err)
	assert.False(t, authenticated)
}

func TestApp_WorkersStartStop(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(t), models.AppBuildInfo{}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app.workers.Start(ctx)
	app.workers.Start(ctx)
	app.workers.Stop()
	app.workers.Stop()
}
