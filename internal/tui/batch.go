package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/YuvrajShekhar/docmanager-client/internal/logger"
	"github.com/YuvrajShekhar/docmanager-client/internal/service"
	"github.com/YuvrajShekhar/docmanager-client/models"
)

const batchEventBuffer = 16

// BatchModel generates one document per item for a single template.
type BatchModel struct {
	ctx      context.Context
	services *service.ClientServices
	logger   *logger.Logger

	filename string
	session  *service.FormSession
	idx      int

	importing bool
	pathInput textinput.Model

	editing   bool
	editID    string
	editors   []fieldEditor
	editFocus int

	loading bool
	running bool
	events  chan tea.Msg
	bar     progress.Model
	spinner spinner.Model
	status  string
	errMsg  string
}

func NewBatchModel(ctx context.Context, services *service.ClientServices, logger *logger.Logger) *BatchModel {
	in := textinput.New()
	in.Placeholder = "path/to/items.csv"
	in.Width = 50
	in.CharLimit = 1024

	return &BatchModel{
		ctx:       ctx,
		services:  services,
		logger:    logger,
		pathInput: in,
		bar:       progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (m *BatchModel) Init() tea.Cmd {
	return nil
}

func (m *BatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case openTemplateMsg:
		if m.running {
			return m, nil
		}
		m.services.Batch.Clear()
		m.filename = msg.Filename
		m.session = nil
		m.idx = 0
		m.closeEditor()
		m.status = ""
		m.errMsg = ""
		m.loading = true
		return m, tea.Batch(m.cmdOpen(msg.Filename, msg.Provider), m.spinner.Tick)

	case batchOpenedMsg:
		m.loading = false
		if msg.err != nil {
			if isSessionExpired(msg.err) {
				return m, cmdSessionExpired
			}
			m.errMsg = errorText(msg.err)
			return m, nil
		}
		m.session = msg.session
		return m, nil

	case batchProgressMsg:
		return m, waitForBatchEvent(m.events)

	case batchDoneMsg:
		m.running = false
		m.events = nil
		p := msg.progress
		switch {
		case errors.Is(msg.err, service.ErrBatchCanceled):
			m.status = fmt.Sprintf("Canceled: %d of %d settled", p.Settled(), p.Total)
		case isSessionExpired(msg.err):
			return m, cmdSessionExpired
		case msg.err != nil:
			m.errMsg = errorText(msg.err)
		default:
			m.status = fmt.Sprintf("Done: %d generated, %d failed", p.Completed, p.Failed)
		}
		return m, nil

	case csvImportedMsg:
		if msg.err != nil {
			m.errMsg = errorText(msg.err)
			return m, nil
		}
		if !msg.result.Success {
			m.errMsg = "Import failed: " + strings.Join(msg.result.Errors, "; ")
			return m, nil
		}
		m.errMsg = ""
		m.status = fmt.Sprintf("Imported %d item(s)", msg.result.Count)
		return m, nil

	case csvTemplateSavedMsg:
		if msg.err != nil {
			m.errMsg = errorText(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.status = "CSV template saved to " + msg.path
		return m, nil

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.importing {
			return m.updateImport(msg)
		}
		if m.editing {
			return m.updateEditor(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m *BatchModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	driver := m.services.Batch
	items := driver.Items()

	switch {
	case key.Matches(msg, keys.esc):
		if m.running {
			return m, nil
		}
		return m, func() tea.Msg { return NavigateTo{Page: pageCatalog} }
	case key.Matches(msg, keys.cancel):
		if m.running {
			driver.Cancel()
			m.status = "Canceling..."
		}
		return m, nil
	}

	if m.session == nil || m.running {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(items)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.add):
		driver.AddItem(m.session.InitialValues())
		m.idx = len(driver.Items()) - 1
		m.errMsg = ""
	case key.Matches(msg, keys.delete):
		if m.idx < len(items) {
			if err := driver.RemoveItem(items[m.idx].ID); err != nil {
				m.errMsg = errorText(err)
				return m, nil
			}
			if m.idx >= len(items)-1 && m.idx > 0 {
				m.idx--
			}
		}
	case key.Matches(msg, keys.edit):
		if m.idx < len(items) {
			return m, m.openEditor(items[m.idx])
		}
	case key.Matches(msg, keys.csvTmpl):
		return m, m.cmdSaveCSVTemplate()
	case key.Matches(msg, keys.importCSV):
		m.importing = true
		m.pathInput.SetValue("")
		return m, m.pathInput.Focus()
	case key.Matches(msg, keys.reset):
		driver.ResetStatuses()
		m.status = "Statuses reset"
		return m, cmdClearStatus()
	case key.Matches(msg, keys.generate):
		return m, m.start()
	}

	return m, nil
}

func (m *BatchModel) updateImport(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.importing = false
		m.pathInput.Blur()
		return m, nil
	case key.Matches(msg, keys.enter):
		path := strings.TrimSpace(m.pathInput.Value())
		if path == "" {
			return m, nil
		}
		m.importing = false
		m.pathInput.Blur()
		return m, m.cmdImport(path)
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

// openEditor edits item with the form's field editors. Template defaults
// fill the fields the item does not set.
func (m *BatchModel) openEditor(item models.BatchItem) tea.Cmd {
	values := m.session.InitialValues()
	for k, v := range item.Values {
		values[k] = v
	}

	m.editing = true
	m.editID = item.ID
	m.editors = buildEditors(m.session.Layout.Fields(), values)
	m.editFocus = 0
	m.errMsg = ""
	if len(m.editors) == 0 {
		return nil
	}
	return m.editors[0].focus()
}

func (m *BatchModel) closeEditor() {
	m.editing = false
	m.editID = ""
	m.editors = nil
	m.editFocus = 0
}

func (m *BatchModel) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.closeEditor()
		return m, nil
	case key.Matches(msg, keys.tab), msg.Type == tea.KeyDown:
		return m, m.moveEditorFocus(1)
	case key.Matches(msg, keys.backtab), msg.Type == tea.KeyUp:
		return m, m.moveEditorFocus(-1)
	case key.Matches(msg, keys.submit):
		return m, m.saveEditor()
	case key.Matches(msg, keys.enter):
		if m.editFocus >= len(m.editors)-1 {
			return m, m.saveEditor()
		}
		return m, m.moveEditorFocus(1)
	}

	if len(m.editors) == 0 {
		return m, nil
	}
	e := &m.editors[m.editFocus]
	switch {
	case !e.usesInput() && key.Matches(msg, keys.left):
		e.cycle(-1)
		return m, nil
	case !e.usesInput() && key.Matches(msg, keys.right):
		e.cycle(1)
		return m, nil
	case !e.usesInput() && key.Matches(msg, keys.toggle):
		e.toggle()
		return m, nil
	}
	return m, e.update(msg)
}

func (m *BatchModel) moveEditorFocus(delta int) tea.Cmd {
	if len(m.editors) == 0 {
		return nil
	}
	m.editors[m.editFocus].blur()
	m.editFocus = (m.editFocus + delta + len(m.editors)) % len(m.editors)
	return m.editors[m.editFocus].focus()
}

// saveEditor writes the edited values back. An item that already settled
// returns to pending.
func (m *BatchModel) saveEditor() tea.Cmd {
	driver := m.services.Batch

	values := models.FormValues{}
	for _, item := range driver.Items() {
		if item.ID == m.editID {
			values = item.Values
			break
		}
	}
	for i := range m.editors {
		values[m.editors[i].placeholder.Name] = m.editors[i].value()
	}

	if err := driver.UpdateItem(m.editID, values); err != nil {
		m.errMsg = errorText(err)
		return nil
	}

	m.closeEditor()
	m.status = fmt.Sprintf("Item %d updated", m.idx+1)
	return cmdClearStatus()
}

func (m *BatchModel) start() tea.Cmd {
	driver := m.services.Batch
	if driver.PendingCount() == 0 {
		m.errMsg = "No pending items. Add items or reset statuses first."
		return nil
	}

	m.errMsg = ""
	m.status = ""
	m.running = true
	m.events = make(chan tea.Msg, batchEventBuffer)

	return tea.Batch(m.cmdRun(m.template(), m.events), waitForBatchEvent(m.events), m.spinner.Tick)
}

func (m *BatchModel) template() service.BatchTemplate {
	return service.BatchTemplate{
		Filename:      m.session.Filename,
		Placeholders:  m.session.Placeholders,
		InitialValues: m.session.InitialValues(),
	}
}

func (m *BatchModel) View() string {
	title := "BATCH"
	if m.session != nil {
		title = "BATCH │ " + m.session.DisplayName
	} else if m.filename != "" {
		title = "BATCH │ " + m.filename
	}

	var b strings.Builder
	switch {
	case m.loading:
		b.WriteString(m.spinner.View())
		b.WriteString(" Loading placeholders...")
	case m.session == nil:
		b.WriteString("No template selected.")
	case m.editing:
		title += fmt.Sprintf(" │ item %d", m.idx+1)
		b.WriteString(m.renderEditor())
	default:
		b.WriteString(m.renderItems())
	}

	if m.importing {
		b.WriteString("\n\nCSV file: [")
		b.WriteString(m.pathInput.View())
		b.WriteString("]")
	}

	b.WriteString(statusLine(m.status, m.errMsg))

	hot := "a: add │ e: edit │ d: delete │ i: import csv │ t: csv template │ g: generate │ x: cancel │ r: reset │ esc: back"
	switch {
	case m.importing:
		hot = "enter: import │ esc: cancel"
	case m.editing:
		hot = "tab/↑↓: field │ ←/→: choose │ space: toggle │ ctrl+s: save │ esc: cancel"
	}
	return renderPage(title, b.String(), hot)
}

func (m *BatchModel) renderItems() string {
	driver := m.services.Batch
	items := driver.Items()
	if len(items) == 0 {
		return "No items yet. Press a to add one or i to import a CSV file."
	}

	var b strings.Builder
	p := driver.Progress()
	if m.running {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
	}
	b.WriteString(m.bar.ViewAs(p.Percent / 100))
	fmt.Fprintf(&b, "  %d/%d", p.Settled(), p.Total)
	if p.Failed > 0 {
		b.WriteString(errorStyle.Render(fmt.Sprintf("  %d failed", p.Failed)))
	}
	b.WriteString("\n\n")

	for i, item := range items {
		line := fmt.Sprintf("%s %2d. %-10s %s", cursor(i == m.idx), i+1, statusBadge(item.Status), itemSummary(item))
		if i == m.idx {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
		switch {
		case item.Status == models.BatchError && item.Error != "":
			b.WriteString("      ")
			b.WriteString(errorStyle.Render(item.Error))
			b.WriteString("\n")
		case item.Status == models.BatchSuccess && item.Filename != "":
			b.WriteString("      ")
			b.WriteString(helpStyle.Render("→ " + item.Filename))
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m *BatchModel) renderEditor() string {
	if len(m.editors) == 0 {
		return "This template has no fields to fill in."
	}

	var b strings.Builder
	width := labelWidth(m.editors)
	for i := range m.editors {
		e := &m.editors[i]
		line := fmt.Sprintf("%s %s  %s", cursor(i == m.editFocus), padRight(e.label(), width), e.view(i == m.editFocus))
		if i == m.editFocus {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func statusBadge(s models.BatchStatus) string {
	switch s {
	case models.BatchGenerating:
		return infoStyle.Render(string(s))
	case models.BatchSuccess:
		return okStyle.Render(string(s))
	case models.BatchError:
		return errorStyle.Render(string(s))
	default:
		return string(s)
	}
}

// itemSummary lists the item's non-empty values in name order.
func itemSummary(item models.BatchItem) string {
	names := make([]string, 0, len(item.Values))
	for name, v := range item.Values {
		if v == nil || fmt.Sprint(v) == "" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%v", name, item.Values[name]))
	}
	if len(parts) == 0 {
		return "-"
	}
	return fitText(strings.Join(parts, ", "), 60)
}

func (m *BatchModel) cmdOpen(filename, provider string) tea.Cmd {
	ctx := m.ctx
	services := m.services
	return func() tea.Msg {
		session, err := services.Forms.Open(ctx, filename, provider)
		return batchOpenedMsg{session: session, err: withSession(ctx, services.Session, err)}
	}
}

func (m *BatchModel) cmdImport(path string) tea.Cmd {
	driver := m.services.Batch
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return csvImportedMsg{err: err}
		}
		return csvImportedMsg{result: driver.ImportCSV(string(data), nil)}
	}
}

func (m *BatchModel) cmdSaveCSVTemplate() tea.Cmd {
	dir := m.services.OutputDir
	tmpl := m.template()
	return func() tea.Msg {
		path, err := service.SaveCSVTemplate(dir, tmpl, time.Now())
		return csvTemplateSavedMsg{path: path, err: err}
	}
}

// cmdRun drives the whole batch. Progress is reported through events, which
// is closed when the run ends.
func (m *BatchModel) cmdRun(tmpl service.BatchTemplate, events chan tea.Msg) tea.Cmd {
	ctx := m.ctx
	driver := m.services.Batch
	session := m.services.Session
	log := m.logger
	return func() tea.Msg {
		defer close(events)
		p, err := driver.GenerateAll(ctx, tmpl, service.BatchOptions{
			OnProgress: func(p models.BatchProgress) {
				select {
				case events <- batchProgressMsg{progress: p}:
				default:
				}
			},
		})
		if err != nil && !errors.Is(err, service.ErrBatchCanceled) {
			log.Err(err).Str("func", "BatchModel.cmdRun").Str("filename", tmpl.Filename).Msg("batch run failed")
		}
		return batchDoneMsg{progress: p, err: withSession(ctx, session, err)}
	}
}

func waitForBatchEvent(events <-chan tea.Msg) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}
