// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/YuvrajShekhar/docmanager-client/internal/app"
	"github.com/YuvrajShekhar/docmanager-client/internal/service"
	"github.com/YuvrajShekhar/docmanager-client/models"
)

// loginNotice is shown above the form, e.g. after the session expired.
type loginNotice struct {
	text string
}

// LoginModel is the Bubble Tea model for the login screen. It renders two
// text inputs (username and password) and dispatches an async login command
// on submit. A successful [LoginResult] is handled by [RootModel], which
// opens the catalog.
type LoginModel struct {
	ctx     context.Context
	session service.SessionService

	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
	notice     string
}

// NewLoginModel creates a [LoginModel] with username and password inputs.
// The username field receives focus immediately; the password is masked.
func NewLoginModel(ctx context.Context, session service.SessionService) *LoginModel {
	m := &LoginModel{ctx: ctx, session: session}
	m.reset()
	return m
}

// Init implements [tea.Model].
func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements [tea.Model]. Handled messages:
//   - [LoginResult]: clears the submitting state and shows the error, or
//     resets the form after a success.
//   - loginNotice: shows a notice above the form.
//   - tab, shift+tab: move the focus.
//   - enter: validates the inputs and dispatches the login command.
//
// All other key events are forwarded to the focused input.
func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoginResult:
		m.submitting = false
		if msg.Err != nil {
			m.errMsg = errorText(msg.Err)
			return m, nil
		}
		m.reset()
		return m, nil
	case loginNotice:
		m.notice = msg.text
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.tab), msg.Type == tea.KeyDown:
			m.focusNext()
			return m, nil
		case key.Matches(msg, keys.backtab), msg.Type == tea.KeyUp:
			m.focusPrev()
			return m, nil
		case key.Matches(msg, keys.enter):
			if m.submitting {
				return m, nil
			}
			if m.focus == 0 {
				m.focusNext()
				return m, nil
			}

			username := strings.TrimSpace(m.inputs[0].Value())
			password := m.inputs[1].Value()
			if username == "" || password == "" {
				m.errMsg = app.BackendMissingCredentials
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdLogin(models.Credentials{Username: username, Password: password})
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// View implements [tea.Model].
func (m *LoginModel) View() string {
	var b strings.Builder

	if m.notice != "" {
		b.WriteString(warnStyle.Render(m.notice))
		b.WriteString("\n\n")
	}

	b.WriteString("Field     │ Value\n")
	b.WriteString("──────────┼────────────────────────────────────────────\n")
	b.WriteString("Username  │ [")
	b.WriteString(m.inputs[0].View())
	b.WriteString("]\n")
	b.WriteString("Password  │ [")
	b.WriteString(m.inputs[1].View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\n[Signing in...]\n")
	} else {
		b.WriteString("\n[Sign in]\n")
	}

	b.WriteString(statusLine("", m.errMsg))

	return renderPage("SIGN IN", strings.TrimRight(b.String(), "\n"), "tab: next field │ enter: submit")
}

func (m *LoginModel) reset() {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 150
	username.Width = 40
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 256
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	m.inputs = []textinput.Model{username, password}
	m.focus = 0
	m.submitting = false
	m.errMsg = ""
	m.notice = ""
}

func (m *LoginModel) cmdLogin(creds models.Credentials) tea.Cmd {
	ctx := m.ctx
	session := m.session

	return func() tea.Msg {
		user, err := session.Login(ctx, creds)
		return LoginResult{User: user, Err: err}
	}
}

func (m *LoginModel) focusNext() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *LoginModel) focusPrev() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}
