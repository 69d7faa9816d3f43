package toast

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/toastq/internal/types"
	"github.com/riordanpawley/toastq/internal/ui/styles"
)

// DefaultMaxWidth caps the toast width when no limit is configured
const DefaultMaxWidth = 40

// ToastRenderer handles rendering of toast notifications
type ToastRenderer struct {
	styles   *styles.Styles
	maxWidth int
}

// New creates a new ToastRenderer with the given styles
func New(styles *styles.Styles) *ToastRenderer {
	return &ToastRenderer{
		styles:   styles,
		maxWidth: DefaultMaxWidth,
	}
}

// WithMaxWidth sets the widest a toast may render. Non-positive values keep
// the default.
func (r *ToastRenderer) WithMaxWidth(w int) *ToastRenderer {
	if w > 0 {
		r.maxWidth = w
	}
	return r
}

// Width returns the toast width used for a terminal of the given width
func (r *ToastRenderer) Width(termWidth int) int {
	return min(termWidth/3, r.maxWidth)
}

// Render renders a stack of toasts in display order, aligned to the right
// edge of a terminal of the given width. Each toast shows the time it has
// left at now.
// Returns empty string if no toasts to display
func (r *ToastRenderer) Render(toasts []types.Toast, width int, now time.Time) string {
	if len(toasts) == 0 {
		return ""
	}

	toastWidth := r.Width(width)

	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		meta := r.styles.ToastMeta.Render(fmt.Sprintf("#%d %s · %s", t.ID, t.Level, FormatRemaining(t.Remaining(now))))
		body := lipgloss.JoinVertical(lipgloss.Left, t.Message, meta)
		rendered = append(rendered, r.styleForLevel(t.Level).Width(toastWidth).Render(body))
	}

	stack := lipgloss.JoinVertical(lipgloss.Right, rendered...)
	if width <= 0 {
		return stack
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, stack)
}

// FormatRemaining rounds d up to whole seconds, so a toast counts down
// 3s, 2s, 1s before it disappears
func FormatRemaining(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	return (d + time.Second - 1).Truncate(time.Second).String()
}

// styleForLevel returns the appropriate style for a toast level
func (r *ToastRenderer) styleForLevel(level types.ToastLevel) lipgloss.Style {
	switch level {
	case types.ToastWarning:
		return r.styles.ToastWarning
	case types.ToastError:
		return r.styles.ToastError
	default:
		return r.styles.ToastSuccess
	}
}
