// Package tui is the terminal front end of the provider settings editor.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rbright/vtrans/internal/config"
	"github.com/rbright/vtrans/internal/editor"
	"github.com/rbright/vtrans/internal/fsm"
	"github.com/rbright/vtrans/internal/i18n"
	"github.com/rbright/vtrans/internal/providers"
	"github.com/rbright/vtrans/internal/task"
)

// Config wires the program to the owner's documents.
type Config struct {
	Store    editor.Store
	Params   *config.Params
	Settings *config.Settings
	Locale   string
	// Bundle supplies translated chrome labels. Missing keys keep English.
	Bundle   i18n.Bundle
	Factory  *providers.Factory
	AudioDir string
	Logger   *slog.Logger
	// Provider opens the form directly when set.
	Provider string
	// Play renders a synthesized clip. Nil disables playback.
	Play func(ctx context.Context, path string) error
}

type screen int

const (
	pickerScreen screen = iota
	formScreen
)

// testDoneMsg carries the one terminal result of a test worker back to the
// update loop, together with the editor that started it.
type testDoneMsg struct {
	editor *editor.Editor
	result task.Result[providers.Outcome]
}

type playDoneMsg struct {
	err error
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

type model struct {
	ctx    context.Context
	config Config

	providers []providers.Descriptor
	cursor    int

	screen screen
	editor *editor.Editor
	inputs []input
	focus  int

	status    string
	statusErr bool
	width     int
}

// Run starts the editor program and blocks until it quits.
func Run(ctx context.Context, cfg Config) error {
	m, err := newModel(ctx, cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

func newModel(ctx context.Context, cfg Config) (model, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	m := model{
		ctx:       ctx,
		config:    cfg,
		providers: providers.All(),
		screen:    pickerScreen,
	}
	if cfg.Provider == "" {
		return m, nil
	}

	for i, d := range m.providers {
		if d.Name == cfg.Provider {
			m.cursor = i
			if err := m.open(d); err != nil {
				return model{}, err
			}
			return m, nil
		}
	}
	return model{}, fmt.Errorf("unknown provider %q", cfg.Provider)
}

func (m model) Init() tea.Cmd {
	if m.screen == formScreen && len(m.inputs) > 0 {
		return m.inputs[m.focus].Focus()
	}
	return nil
}

// open builds the form for d.
func (m *model) open(d providers.Descriptor) error {
	ed, err := editor.New(editor.Options{
		Store:      m.config.Store,
		Descriptor: d,
		Params:     m.config.Params,
		Settings:   m.config.Settings,
		Locale:     m.config.Locale,
		Factory:    m.config.Factory,
		AudioDir:   m.config.AudioDir,
		Logger:     m.config.Logger,
	})
	if err != nil {
		return err
	}

	models := ed.Models()
	inputs := make([]input, 0, len(d.Fields)+1)
	for _, f := range d.Fields {
		inputs = append(inputs, newInput(f, ed.Value(f.Key), multilineField(d, f), suggestionsFor(f, models)))
	}
	if d.ModelList != "" {
		row := newInput(providers.Field{Key: d.ModelList, Label: m.text("models", "Model list (comma separated)"), Kind: providers.KindText}, ed.ModelsText(), false, nil)
		row.models = true
		inputs = append(inputs, row)
	}

	m.editor = ed
	m.inputs = inputs
	m.focus = 0
	m.screen = formScreen
	m.status = ""
	m.statusErr = false
	if len(m.inputs) > 0 {
		m.inputs[0].Focus()
	}
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case testDoneMsg:
		return m.finishTest(msg)
	case playDoneMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("playback failed: %v", msg.err))
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.screen == pickerScreen {
			return m.updatePicker(msg)
		}
		return m.updateForm(msg)
	}

	if m.screen == formScreen && len(m.inputs) > 0 {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyUp, tea.KeyShiftTab:
		if m.cursor > 0 {
			m.cursor--
		}
	case tea.KeyDown, tea.KeyTab:
		if m.cursor < len(m.providers)-1 {
			m.cursor++
		}
	case tea.KeyEnter:
		if err := m.open(m.providers[m.cursor]); err != nil {
			m.setError(err.Error())
			return m, nil
		}
		return m, m.inputs[m.focus].Focus()
	case tea.KeyRunes:
		if msg.String() == "q" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.screen = pickerScreen
		m.status = ""
		m.statusErr = false
		return m, nil
	case tea.KeyTab:
		return m, m.moveFocus(1)
	case tea.KeyShiftTab:
		return m, m.moveFocus(-1)
	case tea.KeyCtrlT:
		return m.startTest()
	case tea.KeyCtrlS:
		return m.save()
	}

	if len(m.inputs) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *model) moveFocus(delta int) tea.Cmd {
	if len(m.inputs) == 0 {
		return nil
	}
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	return m.inputs[m.focus].Focus()
}

// syncDraft copies the form rows into the editor draft.
func (m *model) syncDraft() error {
	for _, in := range m.inputs {
		if in.models {
			continue
		}
		if err := m.editor.Set(in.field.Key, in.Value()); err != nil {
			return err
		}
	}
	return nil
}

func (m model) startTest() (tea.Model, tea.Cmd) {
	// One outstanding test per editor; further presses are ignored.
	if m.editor.State() == fsm.StateTesting {
		return m, nil
	}
	if err := m.syncDraft(); err != nil {
		m.setError(err.Error())
		return m, nil
	}

	future, err := m.editor.Test(m.ctx)
	if err != nil {
		m.setError(err.Error())
		return m, nil
	}
	m.status = ""
	m.statusErr = false

	ed := m.editor
	return m, func() tea.Msg {
		return testDoneMsg{editor: ed, result: future.Result()}
	}
}

func (m model) finishTest(msg testDoneMsg) (tea.Model, tea.Cmd) {
	text, ok := msg.editor.Finish(msg.result)
	if msg.editor != m.editor {
		return m, nil
	}
	if !ok {
		m.setError(text)
		return m, nil
	}
	m.status = text
	m.statusErr = false

	clip := msg.result.Value.AudioFile
	if clip == "" || m.config.Play == nil {
		return m, nil
	}
	play, ctx := m.config.Play, m.ctx
	return m, func() tea.Msg {
		return playDoneMsg{err: play(ctx, clip)}
	}
}

func (m model) save() (tea.Model, tea.Cmd) {
	if err := m.syncDraft(); err != nil {
		m.setError(err.Error())
		return m, nil
	}
	for _, in := range m.inputs {
		if in.models && in.Value() != m.editor.ModelsText() {
			if err := m.editor.SetModels(in.Value()); err != nil {
				m.setError(err.Error())
				return m, nil
			}
		}
	}
	if err := m.editor.Save(); err != nil {
		m.setError(err.Error())
		return m, nil
	}
	m.status = m.text("saved", "Saved")
	m.statusErr = false
	return m, nil
}

func (m model) text(key, fallback string) string {
	if value := m.config.Bundle.UIText(key); value != key && value != "" {
		return value
	}
	return fallback
}

func (m *model) setError(text string) {
	m.status = text
	m.statusErr = true
}

func (m model) View() string {
	var b strings.Builder
	if m.screen == pickerScreen {
		b.WriteString(titleStyle.Render("vtrans "+m.text("providers", "providers")) + "\n\n")
		for i, d := range m.providers {
			line := fmt.Sprintf("%-14s %-12s %s", d.Name, d.Capability, d.Title)
			if i == m.cursor {
				b.WriteString(cursorStyle.Render("> "+line) + "\n")
				continue
			}
			b.WriteString("  " + line + "\n")
		}
		b.WriteString("\n" + dimStyle.Render("enter: edit  up/down: move  esc: quit"))
		m.writeStatus(&b)
		return b.String()
	}

	d := m.editor.Descriptor()
	b.WriteString(titleStyle.Render(d.Title) + dimStyle.Render(" ("+d.Name+")") + "\n\n")
	for i, in := range m.inputs {
		label := in.field.Label
		if i == m.focus {
			label = cursorStyle.Render(label)
		}
		b.WriteString(label + "\n" + in.View() + "\n\n")
	}

	test := ""
	if d.Testable() {
		test = "ctrl+t: " + m.editor.TestLabel() + "  "
	}
	b.WriteString(dimStyle.Render(test + "ctrl+s: save  tab: next field  esc: back  ctrl+c: quit"))
	m.writeStatus(&b)
	return b.String()
}

func (m model) writeStatus(b *strings.Builder) {
	if m.status == "" {
		return
	}
	b.WriteString("\n\n")
	if m.statusErr {
		b.WriteString(errStyle.Render(m.status))
		return
	}
	b.WriteString(okStyle.Render(m.status))
}
