package settings

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/linkext/internal/config"
)

type field struct {
	key         string
	prompt      string
	placeholder string
	limit       int
}

var fields = []field{
	{key: config.KeyVaultDir, prompt: "Vault Directory: ", placeholder: "~/vaults/notes", limit: 256},
	{key: config.KeyFieldName, prompt: "URL Field Name: ", placeholder: "url", limit: 64},
	{key: config.KeyIncludeFrontmatter, prompt: "Include Front Matter (true/false): ", placeholder: "false", limit: 5},
	{key: config.KeyPinnedFile, prompt: "Pinned File: ", placeholder: "none", limit: 256},
}

// FormModel edits the active workspace settings. Each changed value goes
// through config.Set, so the form applies the same validation as
// `settings set`.
type FormModel struct {
	cfg        *config.Config
	inputs     []textinput.Model
	focusIndex int
	cursorMode cursor.Mode
	err        error
	saved      bool
}

func NewForm(cfg *config.Config) FormModel {
	ws := cfg.MustWorkspace()
	m := FormModel{
		cfg:    cfg,
		inputs: make([]textinput.Model, len(fields)),
	}

	for i, f := range fields {
		t := textinput.New()
		t.Cursor.Style = cursorStyle
		t.CharLimit = f.limit
		t.Prompt = f.prompt
		t.Placeholder = f.placeholder
		t.PlaceholderStyle = focusedDimStyle
		t.PromptStyle = noStyle

		if value, ok := ws.Value(f.key); ok {
			t.SetValue(value)
		}

		if i == 0 {
			t.Focus()
			t.PromptStyle = focusedStyle
			t.TextStyle = focusedStyle
		}

		m.inputs[i] = t
	}

	return m
}

// Saved reports whether the form was submitted successfully.
func (m FormModel) Saved() bool {
	return m.saved
}

func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "ctrl+r":
			m.cursorMode++
			if m.cursorMode > cursor.CursorHide {
				m.cursorMode = cursor.CursorBlink
			}
			cmds := make([]tea.Cmd, len(m.inputs))
			for i := range m.inputs {
				cmds[i] = m.inputs[i].Cursor.SetMode(m.cursorMode)
			}
			return m, tea.Batch(cmds...)

		case "tab", "shift+tab", "enter", "up", "down":
			s := msg.String()

			if s == "enter" && m.focusIndex == len(m.inputs) {
				if err := m.submit(); err != nil {
					m.err = err
					return m, nil
				}
				m.saved = true
				return m, tea.Quit
			}

			if s == "up" || s == "shift+tab" {
				m.focusIndex--
			} else {
				m.focusIndex++
			}

			if m.focusIndex > len(m.inputs) {
				m.focusIndex = 0
			} else if m.focusIndex < 0 {
				m.focusIndex = len(m.inputs)
			}

			return m, m.focus()
		}
	}

	return m, m.updateInputs(msg)
}

func (m *FormModel) focus() tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		if i == m.focusIndex {
			cmds[i] = m.inputs[i].Focus()
			m.inputs[i].PromptStyle = focusedStyle
			m.inputs[i].TextStyle = focusedStyle
			continue
		}
		m.inputs[i].Blur()
		m.inputs[i].PromptStyle = noStyle
		m.inputs[i].TextStyle = noStyle
	}
	return tea.Batch(cmds...)
}

// submit applies changed values. Blank field name and include inputs fall
// back to their defaults.
func (m *FormModel) submit() error {
	ws := m.cfg.MustWorkspace()
	for i, f := range fields {
		value := strings.TrimSpace(m.inputs[i].Value())
		if value == "" && f.key == config.KeyIncludeFrontmatter {
			value = "false"
		}

		current, _ := ws.Value(f.key)
		if value == current {
			continue
		}
		if err := m.cfg.Set(f.key, value); err != nil {
			return fmt.Errorf("%s: %w", strings.TrimSuffix(strings.TrimSpace(f.prompt), ":"), err)
		}
	}
	return nil
}

func (m *FormModel) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))

	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}

	return tea.Batch(cmds...)
}

func (m FormModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("linkext settings (%s)", m.cfg.CurrentWorkspace)))
	b.WriteString("\n\n")

	for i := range m.inputs {
		b.WriteString(m.inputs[i].View())
		if i < len(m.inputs)-1 {
			b.WriteRune('\n')
		}
	}

	button := &blurredButton
	if m.focusIndex == len(m.inputs) {
		button = &focusedButton
	}
	fmt.Fprintf(&b, "\n\n%s\n\n", *button)

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n\n")
	}

	b.WriteString(helpStyle.Render("cursor mode is "))
	b.WriteString(cursorModeHelpStyle.Render(m.cursorMode.String()))
	b.WriteString(helpStyle.Render(" (ctrl+r to change style)"))
	b.WriteString(helpStyle.Render("\n(Leave the field name blank to use url)"))

	return b.String()
}

// Run shows the form and reports whether settings were saved.
func Run(cfg *config.Config) (bool, error) {
	final, err := tea.NewProgram(NewForm(cfg)).Run()
	if err != nil {
		return false, err
	}
	if m, ok := final.(FormModel); ok {
		return m.Saved(), nil
	}
	return false, nil
}
