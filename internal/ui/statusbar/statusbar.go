package statusbar

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/toastq/internal/types"
	"github.com/riordanpawley/toastq/internal/ui/styles"
)

// StatusBar represents the status bar at the bottom of the TUI
type StatusBar struct {
	mode   types.Mode
	width  int
	styles *styles.Styles
	info   string
	hints  string
}

// New creates a new StatusBar with the given mode, width, and styles
func New(mode types.Mode, width int, styles *styles.Styles) StatusBar {
	return StatusBar{
		mode:   mode,
		width:  width,
		styles: styles,
	}
}

// WithInfo sets the text shown after the mode badge, such as the number of
// visible toasts
func (sb StatusBar) WithInfo(info string) StatusBar {
	sb.info = info
	return sb
}

// WithHints sets the keybinding hints
func (sb StatusBar) WithHints(hints string) StatusBar {
	sb.hints = hints
	return sb
}

// Render renders the status bar as a string
func (sb StatusBar) Render() string {
	parts := []string{sb.styles.StatusMode.Render(" " + sb.mode.String() + " ")}
	separator := sb.styles.StatusHint.Render(" │ ")

	if sb.info != "" {
		parts = append(parts, separator, sb.styles.StatusInfo.Render(sb.info))
	}
	if sb.hints != "" {
		parts = append(parts, separator, sb.styles.StatusHint.Render(sb.hints))
	}

	content := lipgloss.JoinHorizontal(lipgloss.Left, parts...)

	// Apply status bar style and fill width
	return sb.styles.StatusBar.Width(sb.width).Render(content)
}
