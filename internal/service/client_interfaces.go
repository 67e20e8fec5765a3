package service

import (
	"context"
	"io"
	"time"

	"github.com/YuvrajShekhar/docmanager-client/models"
)

// SessionService owns the authenticated session of the client. The session
// is cached in the local store, encrypted, so a restart does not require a
// new login while the tokens are still accepted by the server.
type SessionService interface {
	// Init restores the cached session. The cached access token is checked
	// against the current-user endpoint; if that fails a refresh is tried,
	// and if the refresh fails too the cache is purged. It reports whether
	// an authenticated session is active afterwards.
	Init(ctx context.Context) (bool, error)

	// Login authenticates with the server and caches the new session.
	Login(ctx context.Context, creds models.Credentials) (models.User, error)

	// Logout revokes the refresh token on the server on a best-effort basis
	// and always clears the local session.
	Logout(ctx context.Context) error

	// Refresh obtains a new access token. The refresh token and user are
	// kept. A rejected refresh purges the session and returns
	// [ErrSessionExpired].
	Refresh(ctx context.Context) error

	// Current returns a copy of the session in memory.
	Current() models.Session

	// IsAuthenticated reports whether a user is logged in.
	IsAuthenticated() bool

	// HandleError inspects an error returned by an authenticated call. A 401
	// purges the session and yields [ErrSessionExpired]; any other error is
	// returned unchanged.
	HandleError(ctx context.Context, err error) error
}

// TokenRefreshJob keeps the access token fresh in the background.
type TokenRefreshJob interface {
	// Start launches the job. Every interval it refreshes the access token
	// when the token expires within the refresh window. Any previously
	// running job is stopped first.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the job to exit and blocks until it has terminated.
	Stop()
}

// CatalogService lists and searches the template catalog.
type CatalogService interface {
	List(ctx context.Context) ([]models.TemplateItem, error)
	Filter(items []models.TemplateItem, filter TemplateFilter) []models.TemplateItem
	Facets(items []models.TemplateItem) TemplateFacets
	// Rank orders items by fuzzy match against query. Items that do not
	// match are dropped; an empty query returns items unchanged.
	Rank(items []models.TemplateItem, query string) []models.TemplateItem
}

// FormService opens a template as an editable form.
type FormService interface {
	// Open fetches the placeholder schema of filename and prepares a
	// [FormSession] for it. provider is the provider override, or "".
	Open(ctx context.Context, filename, provider string) (*FormSession, error)
}

// GenerationService fills a template on the server and saves the result.
type GenerationService interface {
	Generate(ctx context.Context, req GenerateRequest) (GenerateResult, error)
}

// ValidationService validates documents and exports the reports.
type ValidationService interface {
	// ValidateFile uploads the document at path and returns the normalised
	// result.
	ValidateFile(ctx context.Context, path string) (models.ValidationResult, error)

	// Export writes result to dst in the given format.
	Export(result models.ValidationResult, format ReportFormat, dst io.Writer) error

	// SaveReport exports result into the output directory and returns the
	// written path.
	SaveReport(result models.ValidationResult, format ReportFormat) (string, error)
}

// RecentTracker remembers the templates the user opened last.
type RecentTracker interface {
	Add(ctx context.Context, template models.RecentTemplate)
	Remove(ctx context.Context, filename string)
	Clear(ctx context.Context)
	List(ctx context.Context) []models.RecentTemplate
	IsRecent(ctx context.Context, filename string) bool
	HasRecent(ctx context.Context) bool
}

// PreferencesService stores small UI preferences.
type PreferencesService interface {
	SidebarCollapsed(ctx context.Context) bool
	SetSidebarCollapsed(ctx context.Context, collapsed bool) error
}
