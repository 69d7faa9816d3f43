package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/toastq/internal/types"
)

// Styles holds all the UI styles
type Styles struct {
	// Main pane
	Header   lipgloss.Style
	Subtle   lipgloss.Style
	LogTime  lipgloss.Style
	LogEntry lipgloss.Style

	// Badges
	LevelBadge func(level types.ToastLevel) lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusMode lipgloss.Style
	StatusHint lipgloss.Style
	StatusInfo lipgloss.Style

	// Compose input
	Input       lipgloss.Style
	InputPrompt lipgloss.Style

	// Toasts
	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style
	ToastMeta    lipgloss.Style
}

// New creates a new Styles instance with Catppuccin Macchiato theme
func New() *Styles {
	return &Styles{
		Header: lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true).
			Padding(0, 1).
			MarginBottom(1),

		Subtle: lipgloss.NewStyle().
			Foreground(Overlay1),

		LogTime: lipgloss.NewStyle().
			Foreground(Overlay0),

		LogEntry: lipgloss.NewStyle().
			Foreground(Text),

		LevelBadge: func(level types.ToastLevel) lipgloss.Style {
			return lipgloss.NewStyle().
				Foreground(Base).
				Background(LevelColor(level)).
				Padding(0, 1).
				Bold(true)
		},

		StatusBar: lipgloss.NewStyle().
			Background(Surface0).
			Foreground(Subtext0).
			Padding(0, 1),

		StatusMode: lipgloss.NewStyle().
			Background(Blue).
			Foreground(Base).
			Bold(true).
			Padding(0, 1),

		StatusHint: lipgloss.NewStyle().
			Foreground(Overlay1),

		StatusInfo: lipgloss.NewStyle().
			Foreground(Subtext0),

		Input: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Lavender).
			Padding(0, 1),

		InputPrompt: lipgloss.NewStyle().
			Foreground(Lavender).
			Bold(true),

		ToastSuccess: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Green).
			Foreground(Green).
			Padding(0, 1),

		ToastWarning: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Yellow).
			Foreground(Yellow).
			Padding(0, 1),

		ToastError: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Red).
			Foreground(Red).
			Padding(0, 1),

		ToastMeta: lipgloss.NewStyle().
			Foreground(Overlay0),
	}
}
