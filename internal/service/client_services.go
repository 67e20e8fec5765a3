package service

import (
	"context"
	"fmt"

	"github.com/YuvrajShekhar/docmanager-client/internal/adapter"
	"github.com/YuvrajShekhar/docmanager-client/internal/config"
	"github.com/YuvrajShekhar/docmanager-client/internal/logger"
	"github.com/YuvrajShekhar/docmanager-client/internal/store"
)

// ClientServices groups every client service for the TUI.
type ClientServices struct {
	Session     SessionService
	RefreshJob  TokenRefreshJob
	Catalog     CatalogService
	Forms       FormService
	Generation  GenerationService
	Validation  ValidationService
	Recent      RecentTracker
	Preferences PreferencesService
	Batch       *BatchDriver
	// OutputDir receives generated documents, reports and CSV templates.
	OutputDir string
}

// NewClientServices wires the services over the local storages and the
// server adapter.
func NewClientServices(ctx context.Context, cfg config.ClientConfig, storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, logger *logger.Logger) (*ClientServices, error) {
	cipher, err := LoadSessionCipher(ctx, storages.KeyValue, cfg.App.SessionKey)
	if err != nil {
		return nil, fmt.Errorf("session cipher: %w", err)
	}

	session := NewClientSessionService(storages.KeyValue, serverAdapter, cipher, logger)
	recent := NewRecentTracker(storages.KeyValue, logger)
	generation := NewClientGenerationService(serverAdapter, cfg.App.OutputDir, logger)

	return &ClientServices{
		Session:     session,
		RefreshJob:  NewTokenRefreshJob(session, logger),
		Catalog:     NewClientCatalogService(serverAdapter, logger),
		Forms:       NewClientFormService(serverAdapter, recent, logger),
		Generation:  generation,
		Validation:  NewClientValidationService(serverAdapter, cfg.App.OutputDir, logger),
		Recent:      recent,
		Preferences: NewClientPreferencesService(storages.KeyValue, logger),
		Batch:       NewBatchDriver(generation, cfg.Workers.BatchDelay, logger),
		OutputDir:   cfg.App.OutputDir,
	}, nil
}
