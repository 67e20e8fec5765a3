package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/YuvrajShekhar/docmanager-client/internal/logger"
	"github.com/YuvrajShekhar/docmanager-client/internal/store"
	"github.com/YuvrajShekhar/docmanager-client/models"
)

const (
	// KeyRecentTemplates is the local store key of the recent list.
	KeyRecentTemplates = "docmanager:recent-templates"
	// MaxRecentTemplates caps the recent list.
	MaxRecentTemplates = 5
)

// recentTracker keeps the recent list as a JSON array in the local store.
// Storage failures never reach the caller: reads fall back to an empty list
// and failed writes are logged.
type recentTracker struct {
	kv     store.KeyValueRepository
	logger *logger.Logger
	now    func() time.Time

	mu sync.Mutex
}

// NewRecentTracker constructs a [RecentTracker] over kv.
func NewRecentTracker(kv store.KeyValueRepository, logger *logger.Logger) RecentTracker {
	return &recentTracker{kv: kv, logger: logger, now: time.Now}
}

func (r *recentTracker) Add(ctx context.Context, template models.RecentTemplate) {
	r.mu.Lock()
	defer r.mu.Unlock()

	template.AccessedAt = r.now().UnixMilli()

	list := []models.RecentTemplate{template}
	for _, t := range r.read(ctx) {
		if t.Filename != template.Filename {
			list = append(list, t)
		}
	}
	if len(list) > MaxRecentTemplates {
		list = list[:MaxRecentTemplates]
	}

	r.write(ctx, list)
}

func (r *recentTracker) Remove(ctx context.Context, filename string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.read(ctx)
	list := make([]models.RecentTemplate, 0, len(current))
	for _, t := range current {
		if t.Filename != filename {
			list = append(list, t)
		}
	}

	r.write(ctx, list)
}

func (r *recentTracker) Clear(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.kv.Delete(ctx, KeyRecentTemplates); err != nil {
		r.logger.Warn().Err(err).Str("func", "recentTracker.Clear").Msg("failed to clear recent templates")
	}
}

func (r *recentTracker) List(ctx context.Context) []models.RecentTemplate {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.read(ctx)
}

func (r *recentTracker) IsRecent(ctx context.Context, filename string) bool {
	for _, t := range r.List(ctx) {
		if t.Filename == filename {
			return true
		}
	}
	return false
}

func (r *recentTracker) HasRecent(ctx context.Context) bool {
	return len(r.List(ctx)) > 0
}

func (r *recentTracker) read(ctx context.Context) []models.RecentTemplate {
	raw, err := r.kv.Get(ctx, KeyRecentTemplates)
	if err != nil {
		if !errors.Is(err, store.ErrKeyNotFound) {
			r.logger.Debug().Err(err).Str("func", "recentTracker.read").Msg("failed to load recent templates")
		}
		return []models.RecentTemplate{}
	}

	var list []models.RecentTemplate
	if err = json.Unmarshal([]byte(raw), &list); err != nil {
		r.logger.Debug().Err(err).Str("func", "recentTracker.read").Msg("recent templates record is corrupt")
		return []models.RecentTemplate{}
	}
	if list == nil {
		list = []models.RecentTemplate{}
	}
	return list
}

func (r *recentTracker) write(ctx context.Context, list []models.RecentTemplate) {
	raw, err := json.Marshal(list)
	if err == nil {
		err = r.kv.Set(ctx, KeyRecentTemplates, string(raw))
	}
	if err != nil {
		r.logger.Warn().Err(err).Str("func", "recentTracker.write").Msg("failed to save recent templates")
	}
}
