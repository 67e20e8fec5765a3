package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuvrajShekhar/docmanager-client/models"
)

type stubPage struct {
	name  string
	inits int
	msgs  []tea.Msg
}

func (p *stubPage) Init() tea.Cmd {
	p.inits++
	return nil
}

func (p *stubPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	p.msgs = append(p.msgs, msg)
	return p, nil
}

func (p *stubPage) View() string {
	return "page:" + p.name
}

type stubPages struct {
	login, catalog, form *stubPage
}

func newStubRouter(start string, hooks Hooks) (RootModel, stubPages) {
	s := stubPages{
		login:   &stubPage{name: pageLogin},
		catalog: &stubPage{name: pageCatalog},
		form:    &stubPage{name: pageForm},
	}
	pages := map[string]tea.Model{
		pageLogin:   s.login,
		pageCatalog: s.catalog,
		pageForm:    s.form,
	}
	return NewRootModel(pages, start, models.NewAppBuildInfo("1.0.0", "2026-01-01", "deadbeef"), hooks), s
}

func update(t *testing.T, r RootModel, msg tea.Msg) (RootModel, tea.Cmd) {
	t.Helper()
	next, cmd := r.Update(msg)
	root, ok := next.(RootModel)
	require.True(t, ok)
	return root, cmd
}

func TestRootModel_Navigate(t *testing.T) {
	r, pages := newStubRouter(pageCatalog, Hooks{})

	r, cmd := update(t, r, NavigateTo{Page: pageForm, Payload: openTemplateMsg{Filename: "invoice.docx"}})

	assert.Equal(t, pageForm, r.Page())
	assert.Equal(t, 1, pages.form.inits)
	assert.NotNil(t, cmd)
	assert.Contains(t, r.View(), "page:"+pageForm)
}

func TestRootModel_NavigateUnknownPage(t *testing.T) {
	r, _ := newStubRouter(pageCatalog, Hooks{})

	r, cmd := update(t, r, NavigateTo{Page: "nowhere"})

	assert.Equal(t, pageCatalog, r.Page())
	assert.Nil(t, cmd)
}

func TestRootModel_DelegatesToActivePage(t *testing.T) {
	r, pages := newStubRouter(pageCatalog, Hooks{})

	_, _ = update(t, r, keyRunes("j"))

	require.Len(t, pages.catalog.msgs, 1)
	assert.Empty(t, pages.login.msgs)
}

func TestRootModel_LoginSuccess(t *testing.T) {
	logins := 0
	r, pages := newStubRouter(pageLogin, Hooks{OnLogin: func() { logins++ }})

	r, _ = update(t, r, LoginResult{User: models.User{Username: "dana"}})

	assert.Equal(t, 1, logins)
	assert.Equal(t, pageCatalog, r.Page())
	assert.Equal(t, 1, pages.catalog.inits)
	require.Len(t, pages.login.msgs, 1)
}

func TestRootModel_LoginFailureStaysOnLogin(t *testing.T) {
	logins := 0
	r, pages := newStubRouter(pageLogin, Hooks{OnLogin: func() { logins++ }})

	r, _ = update(t, r, LoginResult{Err: errors.New("bad credentials")})

	assert.Zero(t, logins)
	assert.Equal(t, pageLogin, r.Page())
	require.Len(t, pages.login.msgs, 1)
}

func TestRootModel_LogoutAndExpiry(t *testing.T) {
	logouts := 0
	hooks := Hooks{OnLogout: func() { logouts++ }}

	r, _ := newStubRouter(pageCatalog, hooks)
	r, _ = update(t, r, LogoutResult{})
	assert.Equal(t, pageLogin, r.Page())

	r, _ = newStubRouter(pageForm, hooks)
	r, cmd := update(t, r, SessionExpiredMsg{})
	assert.Equal(t, pageLogin, r.Page())
	assert.NotNil(t, cmd)

	assert.Equal(t, 2, logouts)
}

func TestRootModel_CtrlCQuits(t *testing.T) {
	r, _ := newStubRouter(pageForm, Hooks{})

	r, cmd := update(t, r, tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, r.quitByUser)
}

func TestRootModel_AboutWindow(t *testing.T) {
	r, pages := newStubRouter(pageCatalog, Hooks{})

	r, _ = update(t, r, keyRunes("?"))
	assert.True(t, r.showBuildInfo)
	assert.Contains(t, r.View(), "deadbeef")

	r, _ = update(t, r, keyRunes("j"))
	assert.Empty(t, pages.catalog.msgs)

	r, _ = update(t, r, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, r.showBuildInfo)
	assert.Empty(t, pages.catalog.msgs)
}

func TestRootModel_AboutOnlyOnCatalog(t *testing.T) {
	r, pages := newStubRouter(pageForm, Hooks{})

	r, _ = update(t, r, keyRunes("?"))

	assert.False(t, r.showBuildInfo)
	require.Len(t, pages.form.msgs, 1)
}
