package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/YuvrajShekhar/docmanager-client/models"
)

// Hooks are called by the router when the session changes. Both are
// optional.
type Hooks struct {
	// OnLogin runs after a successful login.
	OnLogin func()
	// OnLogout runs after an explicit logout or an expired session.
	OnLogout func()
}

// RootModel is the TUI router:
// 1) keeps the active page
// 2) handles global ctrl+c quit and the about window
// 3) handles NavigateTo messages
// 4) finishes login, logout and session expiry
// 5) delegates all other messages to the active page
type RootModel struct {
	pages   map[string]tea.Model
	current tea.Model
	page    string
	hooks   Hooks

	quitByUser bool
	buildInfo  models.AppBuildInfo

	showBuildInfo bool
}

// NewRootModel registers all pages and opens startPage.
func NewRootModel(pages map[string]tea.Model, startPage string, buildInfo models.AppBuildInfo, hooks Hooks) RootModel {
	return RootModel{
		pages:     pages,
		current:   pages[startPage],
		page:      startPage,
		buildInfo: buildInfo,
		hooks:     hooks,
	}
}

func (r RootModel) Init() tea.Cmd {
	if r.current == nil {
		return nil
	}
	return r.current.Init()
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			r.quitByUser = true
			return r, tea.Quit
		case "?":
			if r.page == pageCatalog {
				r.showBuildInfo = !r.showBuildInfo
				return r, nil
			}
		case "esc":
			if r.showBuildInfo {
				r.showBuildInfo = false
				return r, nil
			}
		}

		if r.showBuildInfo {
			return r, nil
		}
	}

	switch msg := msg.(type) {
	case NavigateTo:
		return r.navigate(msg)

	case LoginResult:
		if msg.Err == nil {
			if r.hooks.OnLogin != nil {
				r.hooks.OnLogin()
			}
			r.delegate(msg)
			return r.navigate(NavigateTo{Page: pageCatalog})
		}

	case LogoutResult:
		if r.hooks.OnLogout != nil {
			r.hooks.OnLogout()
		}
		return r.navigate(NavigateTo{Page: pageLogin})

	case SessionExpiredMsg:
		if r.hooks.OnLogout != nil {
			r.hooks.OnLogout()
		}
		return r.navigate(NavigateTo{Page: pageLogin, Payload: loginNotice{text: "Your session has expired. Please log in again."}})
	}

	if r.current == nil {
		return r, nil
	}

	return r, r.delegate(msg)
}

func (r RootModel) View() string {
	if r.showBuildInfo {
		return appStyle.Render(renderBuildInfoWindow(r.buildInfo))
	}
	if r.current == nil {
		return renderPage("DOCMANAGER", "", "")
	}
	return appStyle.Render(r.current.View())
}

// Page returns the name of the active page.
func (r RootModel) Page() string {
	return r.page
}

func (r *RootModel) navigate(nav NavigateTo) (tea.Model, tea.Cmd) {
	next, exists := r.pages[nav.Page]
	if !exists {
		return *r, nil
	}

	r.showBuildInfo = false
	r.current = next
	r.page = nav.Page

	cmds := []tea.Cmd{r.current.Init()}
	if nav.Payload != nil {
		payload := nav.Payload
		cmds = append(cmds, func() tea.Msg { return payload })
	}
	return *r, tea.Sequence(cmds...)
}

func (r *RootModel) delegate(msg tea.Msg) tea.Cmd {
	if r.current == nil {
		return nil
	}
	updated, cmd := r.current.Update(msg)
	r.current = updated
	r.pages[r.page] = updated
	return cmd
}
