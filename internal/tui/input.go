package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rbright/vtrans/internal/providers"
)

// input is one form row: a single-line textinput, or a textarea for
// templates and line-based role lists.
type input struct {
	field providers.Field
	// models marks the row editing the settings pick-list rather than a param.
	models    bool
	multiline bool
	line      textinput.Model
	area      textarea.Model
}

func newInput(field providers.Field, value string, multiline bool, suggestions []string) input {
	in := input{field: field, multiline: multiline}
	if multiline {
		ta := textarea.New()
		ta.ShowLineNumbers = false
		ta.CharLimit = 0
		ta.SetHeight(6)
		ta.SetWidth(76)
		ta.SetValue(value)
		ta.Blur()
		in.area = ta
		return in
	}

	ti := textinput.New()
	ti.CharLimit = 0
	ti.Width = 60
	ti.Placeholder = field.Default
	ti.SetValue(value)
	if field.Kind == providers.KindSecret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	if len(suggestions) > 0 {
		ti.ShowSuggestions = true
		ti.SetSuggestions(suggestions)
	}
	in.line = ti
	return in
}

func (in input) Value() string {
	if in.multiline {
		return in.area.Value()
	}
	return in.line.Value()
}

func (in *input) Focus() tea.Cmd {
	if in.multiline {
		return in.area.Focus()
	}
	return in.line.Focus()
}

func (in *input) Blur() {
	if in.multiline {
		in.area.Blur()
		return
	}
	in.line.Blur()
}

func (in input) Update(msg tea.Msg) (input, tea.Cmd) {
	var cmd tea.Cmd
	if in.multiline {
		in.area, cmd = in.area.Update(msg)
	} else {
		in.line, cmd = in.line.Update(msg)
	}
	return in, cmd
}

func (in input) View() string {
	if in.multiline {
		return in.area.View()
	}
	return in.line.View()
}

func multilineField(d providers.Descriptor, f providers.Field) bool {
	switch {
	case f.Kind == providers.KindTemplate:
		return true
	case f.Kind == providers.KindRoles && d.RoleFormat != providers.RolesNone && f.Key == d.RoleField:
		return true
	default:
		return false
	}
}

func suggestionsFor(f providers.Field, models []string) []string {
	switch f.Kind {
	case providers.KindChoice:
		return f.Choices
	case providers.KindModel:
		out := make([]string, 0, len(models))
		for _, m := range models {
			if strings.TrimSpace(m) != "" {
				out = append(out, m)
			}
		}
		return out
	default:
		return nil
	}
}
