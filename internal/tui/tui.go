// Package tui is the terminal interface of the docmanager client.
//
// A [RootModel] routes between the login, catalog, form, batch and
// validator pages. Pages talk to the server only through the services in
// [service.ClientServices] and never block Update: every remote call runs
// inside a [tea.Cmd] and comes back as a message.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/YuvrajShekhar/docmanager-client/internal/logger"
	"github.com/YuvrajShekhar/docmanager-client/internal/service"
	"github.com/YuvrajShekhar/docmanager-client/models"
)

// Options configure a [TUI].
type Options struct {
	BuildInfo models.AppBuildInfo
	// Provider is the deployment-wide provider override, or "".
	Provider string
	Hooks    Hooks
}

type TUI struct {
	services *service.ClientServices
	opts     Options
	logger   *logger.Logger
}

func New(services *service.ClientServices, opts Options, logger *logger.Logger) (*TUI, error) {
	if services == nil {
		return nil, errors.New("tui: services are required")
	}
	return &TUI{services: services, opts: opts, logger: logger}, nil
}

// Run shows the interface until the user quits. authenticated selects the
// start page. It returns [ErrUserQuit] when the user pressed ctrl+c.
func (t *TUI) Run(ctx context.Context, authenticated bool) error {
	start := pageLogin
	if authenticated {
		start = pageCatalog
	}

	root := NewRootModel(t.pages(ctx), start, t.opts.BuildInfo, t.opts.Hooks)
	finalModel, err := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		return ErrUserQuit
	}
	return nil
}

func (t *TUI) pages(ctx context.Context) map[string]tea.Model {
	return map[string]tea.Model{
		pageLogin:     NewLoginModel(ctx, t.services.Session),
		pageCatalog:   NewCatalogModel(ctx, t.services, t.opts.Provider),
		pageForm:      NewFormModel(ctx, t.services, t.logger),
		pageBatch:     NewBatchModel(ctx, t.services, t.logger),
		pageValidator: NewValidatorModel(ctx, t.services),
	}
}
