package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/YuvrajShekhar/docmanager-client/internal/form"
	"github.com/YuvrajShekhar/docmanager-client/models"
)

// fieldEditor edits one placeholder. Strings, numbers and dates use a text
// input, enums cycle through their values and booleans toggle.
type fieldEditor struct {
	placeholder models.Placeholder
	input       textinput.Model
	choice      int
	checked     bool
}

func newFieldEditor(p models.Placeholder, value any) fieldEditor {
	e := fieldEditor{placeholder: p}

	switch p.EffectiveType() {
	case models.PlaceholderEnum:
		if s, ok := value.(string); ok {
			if i := slices.Index(p.Values, s); i >= 0 {
				e.choice = i
			}
		}
	case models.PlaceholderBoolean:
		b, _ := value.(bool)
		e.checked = b
	default:
		in := textinput.New()
		in.Prompt = ""
		in.Width = 40
		in.CharLimit = 500
		switch p.EffectiveType() {
		case models.PlaceholderDate:
			in.Placeholder = "YYYY-MM-DD"
			in.CharLimit = len(form.ISODateLayout)
		case models.PlaceholderNumber:
			in.Placeholder = "number"
		default:
			in.Placeholder = p.Description
		}
		if value != nil {
			in.SetValue(fmt.Sprint(value))
		}
		e.input = in
	}

	return e
}

func (e *fieldEditor) usesInput() bool {
	switch e.placeholder.EffectiveType() {
	case models.PlaceholderEnum, models.PlaceholderBoolean:
		return false
	default:
		return true
	}
}

// value returns the edited value in its form-store representation.
func (e *fieldEditor) value() any {
	switch e.placeholder.EffectiveType() {
	case models.PlaceholderEnum:
		if len(e.placeholder.Values) == 0 {
			return ""
		}
		return e.placeholder.Values[e.choice]
	case models.PlaceholderBoolean:
		return e.checked
	default:
		return e.input.Value()
	}
}

// cycle moves an enum to the next or previous value, wrapping around.
func (e *fieldEditor) cycle(delta int) {
	n := len(e.placeholder.Values)
	if n == 0 {
		return
	}
	e.choice = ((e.choice+delta)%n + n) % n
}

func (e *fieldEditor) toggle() {
	e.checked = !e.checked
}

func (e *fieldEditor) focus() tea.Cmd {
	if e.usesInput() {
		return e.input.Focus()
	}
	return nil
}

func (e *fieldEditor) blur() {
	if e.usesInput() {
		e.input.Blur()
	}
}

func (e *fieldEditor) update(msg tea.Msg) tea.Cmd {
	if !e.usesInput() {
		return nil
	}
	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	return cmd
}

func (e *fieldEditor) view(focused bool) string {
	switch e.placeholder.EffectiveType() {
	case models.PlaceholderEnum:
		v, _ := e.value().(string)
		if focused {
			return "< " + v + " >"
		}
		return "  " + v
	case models.PlaceholderBoolean:
		if e.checked {
			return "[x]"
		}
		return "[ ]"
	default:
		return "[" + e.input.View() + "]"
	}
}

func (e *fieldEditor) label() string {
	l := form.Label(e.placeholder)
	if !e.placeholder.Optional {
		l += " *"
	}
	return l
}

// buildEditors creates one editor per rendered field, seeded from values.
func buildEditors(fields []models.Placeholder, values models.FormValues) []fieldEditor {
	editors := make([]fieldEditor, 0, len(fields))
	for _, p := range fields {
		editors = append(editors, newFieldEditor(p, values[p.Name]))
	}
	return editors
}

func labelWidth(editors []fieldEditor) int {
	w := 0
	for i := range editors {
		if l := len([]rune(editors[i].label())); l > w {
			w = l
		}
	}
	return w
}

func padRight(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
