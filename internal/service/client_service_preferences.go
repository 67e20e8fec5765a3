package service

import (
	"context"
	"strconv"

	"github.com/YuvrajShekhar/docmanager-client/internal/logger"
	"github.com/YuvrajShekhar/docmanager-client/internal/store"
)

// KeySidebarCollapsed stores whether the recent sidebar is collapsed.
const KeySidebarCollapsed = "sidebar-collapsed"

type clientPreferencesService struct {
	kv     store.KeyValueRepository
	logger *logger.Logger
}

// NewClientPreferencesService constructs a [PreferencesService].
func NewClientPreferencesService(kv store.KeyValueRepository, logger *logger.Logger) PreferencesService {
	return &clientPreferencesService{kv: kv, logger: logger}
}

// SidebarCollapsed returns false when the preference was never stored or
// cannot be read.
func (p *clientPreferencesService) SidebarCollapsed(ctx context.Context) bool {
	raw, err := p.kv.Get(ctx, KeySidebarCollapsed)
	if err != nil {
		return false
	}
	collapsed, err := strconv.ParseBool(raw)
	if err != nil {
		p.logger.Debug().Err(err).Str("func", "clientPreferencesService.SidebarCollapsed").Msg("stored preference is not a boolean")
		return false
	}
	return collapsed
}

func (p *clientPreferencesService) SetSidebarCollapsed(ctx context.Context, collapsed bool) error {
	return p.kv.Set(ctx, KeySidebarCollapsed, strconv.FormatBool(collapsed))
}
