package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/YuvrajShekhar/docmanager-client/internal/app"
	"github.com/YuvrajShekhar/docmanager-client/internal/logger"
	"github.com/YuvrajShekhar/docmanager-client/internal/service"
)

// FormModel edits the placeholders of one template and generates the
// document.
type FormModel struct {
	ctx      context.Context
	services *service.ClientServices
	logger   *logger.Logger

	filename string
	session  *service.FormSession
	editors  []fieldEditor
	byName   map[string]int
	focus    int

	loading    bool
	submitting bool
	result     *service.GenerateResult
	spinner    spinner.Model
	status     string
	errMsg     string
}

func NewFormModel(ctx context.Context, services *service.ClientServices, logger *logger.Logger) *FormModel {
	return &FormModel{
		ctx:      ctx,
		services: services,
		logger:   logger,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (m *FormModel) Init() tea.Cmd {
	return nil
}

func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case openTemplateMsg:
		m.filename = msg.Filename
		m.session = nil
		m.editors = nil
		m.result = nil
		m.status = ""
		m.errMsg = ""
		m.loading = true
		return m, tea.Batch(m.cmdOpen(msg.Filename, msg.Provider), m.spinner.Tick)

	case formOpenedMsg:
		m.loading = false
		if msg.err != nil {
			if isSessionExpired(msg.err) {
				return m, cmdSessionExpired
			}
			m.errMsg = errorText(msg.err)
			return m, nil
		}
		m.session = msg.session
		return m, m.rebuild()

	case generatedMsg:
		m.submitting = false
		if msg.err != nil {
			return m, m.handleGenerateError(msg.err)
		}
		res := msg.result
		m.result = &res
		m.errMsg = ""
		m.status = fmt.Sprintf("Saved %s (%d bytes)", res.Path, res.Size)
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.status = "Copied " + msg.what
		return m, cmdClearStatus()

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, m.updateFocused(msg)
}

func (m *FormModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.esc) {
		if m.submitting {
			return m, nil
		}
		return m, func() tea.Msg { return NavigateTo{Page: pageCatalog} }
	}
	if m.session == nil || m.submitting {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.tab), msg.Type == tea.KeyDown:
		return m, m.moveFocus(1)
	case key.Matches(msg, keys.backtab), msg.Type == tea.KeyUp:
		return m, m.moveFocus(-1)
	case key.Matches(msg, keys.submit):
		return m, m.submit()
	case key.Matches(msg, keys.enter):
		if m.focus == len(m.editors)-1 {
			return m, m.submit()
		}
		return m, m.moveFocus(1)
	case key.Matches(msg, keys.copy):
		if m.result != nil {
			return m, cmdCopyToClipboard("output path", m.result.Path)
		}
		return m, nil
	case msg.String() == "ctrl+r":
		m.session.SetProvider(m.session.Provider)
		m.result = nil
		m.status = "Form reset"
		return m, m.rebuild()
	}

	if e := m.focused(); e != nil {
		switch {
		case !e.usesInput() && key.Matches(msg, keys.left):
			e.cycle(-1)
			m.sync(e)
			return m, nil
		case !e.usesInput() && key.Matches(msg, keys.right):
			e.cycle(1)
			m.sync(e)
			return m, nil
		case !e.usesInput() && key.Matches(msg, keys.toggle):
			e.toggle()
			m.sync(e)
			return m, nil
		}
	}

	return m, m.updateFocused(msg)
}

func (m *FormModel) View() string {
	title := "FORM"
	if m.session != nil {
		title = "FORM │ " + m.session.DisplayName
	} else if m.filename != "" {
		title = "FORM │ " + m.filename
	}

	var b strings.Builder
	switch {
	case m.loading:
		b.WriteString(m.spinner.View())
		b.WriteString(" Loading placeholders...")
	case m.session == nil:
		b.WriteString("No template selected.")
	case len(m.editors) == 0:
		b.WriteString("This template has no fields to fill in.")
	default:
		b.WriteString(m.renderSections())
	}

	if m.submitting {
		b.WriteString("\n\n")
		b.WriteString(m.spinner.View())
		b.WriteString(" Generating document...")
	}

	b.WriteString(statusLine(m.status, m.errMsg))

	hot := "tab/↑↓: field │ ←/→: choose │ space: toggle │ ctrl+s: generate │ ctrl+r: reset │ ctrl+y: copy path │ esc: back"
	return renderPage(title, b.String(), hot)
}

func (m *FormModel) renderSections() string {
	var b strings.Builder
	width := labelWidth(m.editors)

	for _, section := range m.session.Layout.Sections() {
		if section.Label != "" {
			b.WriteString(titleStyle.Render(section.Label))
			b.WriteString("\n")
		}
		for _, row := range section.Rows {
			for _, p := range row {
				i, ok := m.byName[p.Name]
				if !ok {
					continue
				}
				e := &m.editors[i]
				line := fmt.Sprintf("%s %s  %s", cursor(i == m.focus), padRight(e.label(), width), e.view(i == m.focus))
				if i == m.focus {
					line = selectedStyle.Render(line)
				}
				b.WriteString(line)
				b.WriteString("\n")
				if msg := m.session.Store.Error(p.Name); msg != "" {
					b.WriteString("    ")
					b.WriteString(errorStyle.Render(msg))
					b.WriteString("\n")
				} else if i == m.focus && p.Description != "" {
					b.WriteString("    ")
					b.WriteString(helpStyle.Render(p.Description))
					b.WriteString("\n")
				}
			}
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// rebuild recreates the editors from the session's current values.
func (m *FormModel) rebuild() tea.Cmd {
	fields := m.session.Layout.Fields()
	m.editors = buildEditors(fields, m.session.Store.Values())
	m.byName = make(map[string]int, len(m.editors))
	for i, e := range m.editors {
		m.byName[e.placeholder.Name] = i
	}
	m.focus = 0
	if len(m.editors) == 0 {
		return nil
	}
	return m.editors[0].focus()
}

func (m *FormModel) focused() *fieldEditor {
	if m.focus < 0 || m.focus >= len(m.editors) {
		return nil
	}
	return &m.editors[m.focus]
}

func (m *FormModel) moveFocus(delta int) tea.Cmd {
	if len(m.editors) == 0 {
		return nil
	}
	m.editors[m.focus].blur()
	m.focus = (m.focus + delta + len(m.editors)) % len(m.editors)
	return m.editors[m.focus].focus()
}

func (m *FormModel) updateFocused(msg tea.Msg) tea.Cmd {
	e := m.focused()
	if e == nil || m.session == nil {
		return nil
	}
	before := e.value()
	cmd := e.update(msg)
	if e.value() != before {
		m.sync(e)
	}
	return cmd
}

func (m *FormModel) sync(e *fieldEditor) {
	m.session.Store.Set(e.placeholder.Name, e.value())
	m.result = nil
}

func (m *FormModel) submit() tea.Cmd {
	for i := range m.editors {
		m.session.Store.Set(m.editors[i].placeholder.Name, m.editors[i].value())
	}
	if !m.session.Validate() {
		m.errMsg = app.MsgFixFormErrors
		return m.focusFirstError()
	}

	m.errMsg = ""
	m.status = ""
	m.submitting = true
	return tea.Batch(m.cmdGenerate(m.session.Request()), m.spinner.Tick)
}

func (m *FormModel) focusFirstError() tea.Cmd {
	for i := range m.editors {
		if m.session.Store.Error(m.editors[i].placeholder.Name) != "" {
			return m.moveFocus(i - m.focus)
		}
	}
	return nil
}

func (m *FormModel) handleGenerateError(err error) tea.Cmd {
	var fieldErr *service.FieldValidationError
	switch {
	case errors.As(err, &fieldErr):
		m.session.Store.SetErrors(fieldErr.Fields)
		m.errMsg = app.MsgFixFormErrors
		return m.focusFirstError()
	case isSessionExpired(err):
		return cmdSessionExpired
	default:
		m.errMsg = errorText(err)
		return nil
	}
}

func (m *FormModel) cmdOpen(filename, provider string) tea.Cmd {
	ctx := m.ctx
	services := m.services
	return func() tea.Msg {
		session, err := services.Forms.Open(ctx, filename, provider)
		return formOpenedMsg{session: session, err: withSession(ctx, services.Session, err)}
	}
}

func (m *FormModel) cmdGenerate(req service.GenerateRequest) tea.Cmd {
	ctx := m.ctx
	services := m.services
	log := m.logger
	return func() tea.Msg {
		res, err := services.Generation.Generate(ctx, req)
		if err != nil {
			log.Err(err).Str("func", "FormModel.cmdGenerate").Str("filename", req.Filename).Msg("generation failed")
		}
		return generatedMsg{result: res, err: withSession(ctx, services.Session, err)}
	}
}
