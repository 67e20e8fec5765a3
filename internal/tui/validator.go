package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/YuvrajShekhar/docmanager-client/internal/service"
	"github.com/YuvrajShekhar/docmanager-client/models"
)

const validatorVisibleIssues = 8

// ValidatorModel uploads a document to the structure validator and shows the
// reported issues.
type ValidatorModel struct {
	ctx      context.Context
	services *service.ClientServices

	pathInput  textinput.Model
	editing    bool
	validating bool
	result     *models.ValidationResult
	offset     int
	formatIdx  int

	spinner spinner.Model
	status  string
	errMsg  string
}

func NewValidatorModel(ctx context.Context, services *service.ClientServices) *ValidatorModel {
	in := textinput.New()
	in.Placeholder = "path/to/document.docx"
	in.Width = 50
	in.CharLimit = 1024

	return &ValidatorModel{
		ctx:       ctx,
		services:  services,
		pathInput: in,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (m *ValidatorModel) Init() tea.Cmd {
	m.editing = true
	m.status = ""
	m.errMsg = ""
	return m.pathInput.Focus()
}

func (m *ValidatorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case validatedMsg:
		m.validating = false
		if msg.err != nil {
			if isSessionExpired(msg.err) {
				return m, cmdSessionExpired
			}
			m.errMsg = errorText(msg.err)
			return m, m.pathInput.Focus()
		}
		res := msg.result
		m.result = &res
		m.offset = 0
		m.editing = false
		m.pathInput.Blur()
		m.errMsg = ""
		return m, nil

	case reportSavedMsg:
		if msg.err != nil {
			m.errMsg = errorText(msg.err)
			return m, nil
		}
		m.status = "Report saved to " + msg.path
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
		if !m.validating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, keys.esc) {
			if m.validating {
				return m, nil
			}
			return m, func() tea.Msg { return NavigateTo{Page: pageCatalog} }
		}
		if m.validating {
			return m, nil
		}
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateResult(msg)
	}

	return m, nil
}

func (m *ValidatorModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.enter):
		path := strings.TrimSpace(m.pathInput.Value())
		if path == "" {
			return m, nil
		}
		m.errMsg = ""
		m.status = ""
		m.validating = true
		return m, tea.Batch(m.cmdValidate(path), m.spinner.Tick)
	case key.Matches(msg, keys.tab):
		if m.result != nil {
			m.editing = false
			m.pathInput.Blur()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

func (m *ValidatorModel) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.tab):
		m.editing = true
		return m, m.pathInput.Focus()
	case key.Matches(msg, keys.up):
		if m.offset > 0 {
			m.offset--
		}
	case key.Matches(msg, keys.down):
		if m.result != nil && m.offset < len(m.result.Issues)-validatorVisibleIssues {
			m.offset++
		}
	case key.Matches(msg, keys.format):
		m.formatIdx = (m.formatIdx + 1) % len(service.ReportFormats)
	case key.Matches(msg, keys.export):
		if m.result != nil {
			return m, m.cmdSave(*m.result, m.format())
		}
	case key.Matches(msg, keys.copy):
		if m.result != nil {
			return m, cmdCopyToClipboard("summary", resultSummary(*m.result))
		}
	}
	return m, nil
}

func (m *ValidatorModel) View() string {
	var b strings.Builder

	b.WriteString("Document: [")
	b.WriteString(m.pathInput.View())
	b.WriteString("]\n")

	if m.validating {
		b.WriteString("\n")
		b.WriteString(m.spinner.View())
		b.WriteString(" Validating...")
	} else if m.result != nil {
		b.WriteString("\n")
		b.WriteString(m.renderResult(*m.result))
	}

	b.WriteString(statusLine(m.status, m.errMsg))

	hot := "enter: validate │ tab: results │ esc: back"
	if !m.editing {
		hot = fmt.Sprintf("↑↓: scroll │ f: format (%s) │ e: export │ ctrl+y: copy summary │ tab: path │ esc: back", m.format())
	}
	return renderPage("VALIDATE DOCUMENT", b.String(), hot)
}

func (m *ValidatorModel) renderResult(res models.ValidationResult) string {
	var b strings.Builder

	if res.OK {
		b.WriteString(okStyle.Render("✓ " + valueOrDash(res.Filename) + " passed validation"))
	} else {
		b.WriteString(errorStyle.Render("✗ " + valueOrDash(res.Filename) + " has problems"))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Total: %d │ %s │ %s │ %s\n\n",
		res.Stats.Total,
		errorStyle.Render(fmt.Sprintf("errors: %d", res.Stats.Errors)),
		warnStyle.Render(fmt.Sprintf("warnings: %d", res.Stats.Warnings)),
		infoStyle.Render(fmt.Sprintf("info: %d", res.Stats.Info)),
	)

	if len(res.Issues) == 0 {
		b.WriteString("No issues reported.")
		return b.String()
	}

	end := min(m.offset+validatorVisibleIssues, len(res.Issues))
	for _, issue := range res.Issues[m.offset:end] {
		b.WriteString(severityBadge(issue.Severity))
		b.WriteString(" ")
		b.WriteString(issue.Code)
		if issue.Title != "" {
			b.WriteString(": ")
			b.WriteString(issue.Title)
		}
		if loc := locationText(issue.Location); loc != "" {
			b.WriteString(helpStyle.Render(" (" + loc + ")"))
		}
		b.WriteString("\n")
		if issue.Message != "" {
			b.WriteString("    ")
			b.WriteString(fitText(issue.Message, 90))
			b.WriteString("\n")
		}
		if issue.Hint != "" {
			b.WriteString("    ")
			b.WriteString(helpStyle.Render("hint: " + fitText(issue.Hint, 84)))
			b.WriteString("\n")
		}
	}
	if len(res.Issues) > validatorVisibleIssues {
		fmt.Fprintf(&b, "\n%d-%d of %d issues", m.offset+1, end, len(res.Issues))
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m *ValidatorModel) format() service.ReportFormat {
	return service.ReportFormats[m.formatIdx]
}

func severityBadge(s models.Severity) string {
	switch s {
	case models.SeverityError:
		return errorStyle.Render("[error]")
	case models.SeverityWarn:
		return warnStyle.Render("[warn] ")
	default:
		return infoStyle.Render("[info] ")
	}
}

func locationText(loc *models.IssueLocation) string {
	if loc == nil {
		return ""
	}
	var parts []string
	if loc.Paragraph != nil {
		parts = append(parts, fmt.Sprintf("paragraph %d", *loc.Paragraph))
	}
	if loc.Span != nil {
		parts = append(parts, fmt.Sprintf("chars %d-%d", loc.Span[0], loc.Span[1]))
	}
	return strings.Join(parts, ", ")
}

// resultSummary is the plain-text summary copied to the clipboard.
func resultSummary(res models.ValidationResult) string {
	var b strings.Builder
	verdict := "FAILED"
	if res.OK {
		verdict = "OK"
	}
	fmt.Fprintf(&b, "%s: %s (total %d, errors %d, warnings %d, info %d)\n",
		valueOrDash(res.Filename), verdict,
		res.Stats.Total, res.Stats.Errors, res.Stats.Warnings, res.Stats.Info)
	for _, issue := range res.Issues {
		fmt.Fprintf(&b, "- [%s] %s", issue.Severity, issue.Code)
		if issue.Title != "" {
			fmt.Fprintf(&b, ": %s", issue.Title)
		}
		if loc := locationText(issue.Location); loc != "" {
			fmt.Fprintf(&b, " (%s)", loc)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *ValidatorModel) cmdValidate(path string) tea.Cmd {
	ctx := m.ctx
	services := m.services
	return func() tea.Msg {
		res, err := services.Validation.ValidateFile(ctx, path)
		return validatedMsg{result: res, err: withSession(ctx, services.Session, err)}
	}
}

func (m *ValidatorModel) cmdSave(res models.ValidationResult, format service.ReportFormat) tea.Cmd {
	validation := m.services.Validation
	return func() tea.Msg {
		path, err := validation.SaveReport(res, format)
		return reportSavedMsg{path: path, err: err}
	}
}
