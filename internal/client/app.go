package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/YuvrajShekhar/docmanager-client/internal/adapter"
	"github.com/YuvrajShekhar/docmanager-client/internal/config"
	"github.com/YuvrajShekhar/docmanager-client/internal/logger"
	"github.com/YuvrajShekhar/docmanager-client/internal/service"
	"github.com/YuvrajShekhar/docmanager-client/internal/store"
	"github.com/YuvrajShekhar/docmanager-client/internal/tui"
	"github.com/YuvrajShekhar/docmanager-client/internal/workers"
	"github.com/YuvrajShekhar/docmanager-client/models"
)

// App owns the storages, services and background workers of one client
// process and runs the terminal interface on top of them.
type App struct {
	cfg       *config.ClientConfig
	buildInfo models.AppBuildInfo
	logger    *logger.Logger

	storages *store.ClientStorages
	services *service.ClientServices
	workers  *workers.Workers
}

// NewApp wires the client. When the local database cannot be opened the
// client keeps running on in-memory storage, so nothing survives a restart.
func NewApp(ctx context.Context, cfg *config.ClientConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("client: config is required")
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Warn().Err(err).Str("func", "client.NewApp").Msg("local storage unavailable, falling back to memory")
		storages = store.NewMemoryClientStorages()
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		_ = storages.Close()
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	services, err := service.NewClientServices(ctx, *cfg, storages, serverAdapter, log)
	if err != nil {
		_ = storages.Close()
		return nil, fmt.Errorf("create client services: %w", err)
	}

	return &App{
		cfg:       cfg,
		buildInfo: buildInfo,
		logger:    log,
		storages:  storages,
		services:  services,
		workers:   workers.NewClientWorkers(services, cfg.Workers),
	}, nil
}

// Run restores the cached session, shows the interface and blocks until the
// user quits or ctx is canceled. Background workers run only while a user is
// signed in.
func (a *App) Run(ctx context.Context) error {
	authenticated, err := a.services.Session.Init(ctx)
	if err != nil {
		a.logger.Warn().Err(err).Str("func", "App.Run").Msg("cached session could not be restored")
		authenticated = false
	}

	if authenticated {
		a.workers.Start(ctx)
	}
	defer a.workers.Stop()

	ui, err := tui.New(a.services, tui.Options{
		BuildInfo: a.buildInfo,
		Provider:  a.cfg.App.Provider,
		Hooks: tui.Hooks{
			OnLogin:  func() { a.workers.Start(ctx) },
			OnLogout: a.workers.Stop,
		},
	}, a.logger)
	if err != nil {
		return fmt.Errorf("create ui: %w", err)
	}

	err = ui.Run(ctx, authenticated)
	switch {
	case errors.Is(err, tui.ErrUserQuit), errors.Is(err, context.Canceled):
		a.logger.Info().Msg("client stopped")
		return nil
	case err != nil:
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// Close releases the local storage.
func (a *App) Close() error {
	return a.storages.Close()
}
