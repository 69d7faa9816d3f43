// Package compose provides the single-line input used to write a custom toast.
package compose

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/toastq/internal/types"
	"github.com/riordanpawley/toastq/internal/ui/styles"
)

// SubmitMsg is emitted when the user confirms the message
type SubmitMsg struct {
	Message string
	Level   types.ToastLevel
}

// CancelMsg is emitted when the user abandons the input
type CancelMsg struct{}

// Input is a text input with a severity selector
type Input struct {
	input  textinput.Model
	level  types.ToastLevel
	styles *styles.Styles
}

// New creates an input starting at the given severity
func New(level types.ToastLevel, s *styles.Styles) *Input {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = "toast message..."
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 50

	return &Input{
		input:  ti,
		level:  level,
		styles: s,
	}
}

// Level returns the selected severity
func (c *Input) Level() types.ToastLevel {
	return c.level
}

// Value returns the current text
func (c *Input) Value() string {
	return c.input.Value()
}

// Init implements tea.Model
func (c *Input) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (c *Input) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			submit := SubmitMsg{Message: c.input.Value(), Level: c.level}
			return c, func() tea.Msg { return submit }

		case tea.KeyEsc:
			return c, func() tea.Msg { return CancelMsg{} }

		case tea.KeyTab:
			c.level = c.level.Next()
			return c, nil
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// View implements tea.Model
func (c *Input) View() string {
	badge := c.styles.LevelBadge(c.level).Render(c.level.String())
	row := lipgloss.JoinHorizontal(lipgloss.Center, badge, " ", c.input.View())
	return c.styles.Input.Render(row)
}
