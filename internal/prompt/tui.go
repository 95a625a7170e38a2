package prompt

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51")).
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	answerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231"))
)

// TUI prompts with an editable bubbletea text input
type TUI struct {
	in  io.Reader
	out io.Writer
}

// NewTUI creates a terminal UI prompt
func NewTUI(in io.Reader, out io.Writer) *TUI {
	return &TUI{in: in, out: out}
}

// Input implements TextPrompt
func (t *TUI) Input(label, value string) (string, error) {
	final, err := t.run(newInputModel(label, value))
	if err != nil {
		return "", err
	}
	m := final.(inputModel)
	if m.aborted {
		return "", ErrAborted
	}
	return m.Value(), nil
}

// Confirm implements ConfirmPrompt
func (t *TUI) Confirm(label string) (bool, error) {
	final, err := t.run(newConfirmModel(label))
	if err != nil {
		return false, err
	}
	m := final.(confirmModel)
	if m.aborted {
		return false, ErrAborted
	}
	return m.answer, nil
}

func (t *TUI) run(model tea.Model) (tea.Model, error) {
	p := tea.NewProgram(model, tea.WithInput(t.in), tea.WithOutput(t.out))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("running prompt: %w", err)
	}
	return final, nil
}

// inputModel is an editable single-line prompt
type inputModel struct {
	label   string
	input   textinput.Model
	done    bool
	aborted bool
}

func newInputModel(label, value string) inputModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.SetValue(value)
	ti.CursorEnd()
	ti.Focus()
	return inputModel{label: label, input: ti}
}

// Value returns the trimmed text in the input
func (m inputModel) Value() string {
	return strings.TrimSpace(m.input.Value())
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyCtrlD:
			m.aborted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done {
		return labelStyle.Render(m.label) + " " + answerStyle.Render(m.Value()) + "\n"
	}
	if m.aborted {
		return labelStyle.Render(m.label) + " " + hintStyle.Render("(cancelled)") + "\n"
	}
	return labelStyle.Render(m.label) + "\n" +
		m.input.View() + "\n" +
		hintStyle.Render("enter to accept, clear to skip, esc to quit") + "\n"
}

// confirmModel is a y/N question
type confirmModel struct {
	label   string
	answer  bool
	done    bool
	aborted bool
}

func newConfirmModel(label string) confirmModel {
	return confirmModel{label: label}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "y", "Y":
		m.answer = true
		m.done = true
		return m, tea.Quit
	case "n", "N", "enter":
		m.done = true
		return m, tea.Quit
	case "ctrl+c", "ctrl+d", "esc":
		m.aborted = true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		answer := "no"
		if m.answer {
			answer = "yes"
		}
		return labelStyle.Render(m.label) + " " + answerStyle.Render(answer) + "\n"
	}
	return labelStyle.Render(m.label) + " " + hintStyle.Render("[y/N]") + "\n"
}
