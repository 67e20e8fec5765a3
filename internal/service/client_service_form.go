package service

import (
	"context"
	"time"

	"github.com/YuvrajShekhar/docmanager-client/internal/adapter"
	"github.com/YuvrajShekhar/docmanager-client/internal/form"
	"github.com/YuvrajShekhar/docmanager-client/internal/logger"
	"github.com/YuvrajShekhar/docmanager-client/internal/validators"
	"github.com/YuvrajShekhar/docmanager-client/models"
)

// FormSession is an opened template ready for editing.
type FormSession struct {
	Filename    string
	DisplayName string
	Meta        models.TemplateMeta
	Provider    string
	// Placeholders are the resolved variants for Provider.
	Placeholders []models.Placeholder
	Layout       form.Layout
	Store        *form.ValueStore

	schema    models.PlaceholderSchema
	validator *validators.FormValidator
	now       func() time.Time
}

// SetProvider re-resolves the form for another provider. Values typed so far
// are discarded.
func (s *FormSession) SetProvider(provider string) {
	s.Provider = provider
	s.Placeholders = form.ResolvePlaceholders(s.schema.Placeholders, s.schema.Meta, provider)
	s.Layout = form.ResolveLayout(s.Placeholders, s.schema.Layout)
	s.Store.Reset(s.Placeholders, provider, s.now())
}

// InitialValues returns a fresh default value set of the form.
func (s *FormSession) InitialValues() models.FormValues {
	return form.InitialValues(s.Placeholders, s.Provider, s.now())
}

// Validate checks the store's values and records the field errors.
func (s *FormSession) Validate() bool {
	return s.Store.Validate(s.validator)
}

// Request returns the generation request of the current values.
func (s *FormSession) Request() GenerateRequest {
	return GenerateRequest{
		Filename:     s.Filename,
		Placeholders: s.Placeholders,
		Values:       s.Store.Values(),
	}
}

type clientFormService struct {
	adapter adapter.ServerAdapter
	recent  RecentTracker
	logger  *logger.Logger
	now     func() time.Time
}

// NewClientFormService constructs a [FormService]. Every opened template is
// recorded in recent.
func NewClientFormService(serverAdapter adapter.ServerAdapter, recent RecentTracker, logger *logger.Logger) FormService {
	return &clientFormService{
		adapter: serverAdapter,
		recent:  recent,
		logger:  logger,
		now:     time.Now,
	}
}

func (f *clientFormService) Open(ctx context.Context, filename, provider string) (*FormSession, error) {
	schema, err := f.adapter.GetPlaceholders(ctx, filename)
	if err != nil {
		f.logger.Err(err).Str("func", "clientFormService.Open").Str("filename", filename).Msg("failed to load placeholders")
		return nil, mapAdapterError(err)
	}

	session := &FormSession{
		Filename:    filename,
		DisplayName: TemplateDisplayName(models.TemplateItem{Filename: filename, Meta: schema.Meta}),
		Meta:        schema.Meta,
		Store:       form.NewValueStore(),
		schema:      schema,
		validator:   validators.NewFormValidator(),
		now:         f.now,
	}
	session.SetProvider(provider)

	recentProvider := provider
	if recentProvider == "" && len(schema.Meta.Provider) > 0 {
		recentProvider = schema.Meta.Provider[0]
	}
	f.recent.Add(ctx, models.RecentTemplate{
		Filename: filename,
		Name:     session.DisplayName,
		Provider: recentProvider,
	})

	return session, nil
}
