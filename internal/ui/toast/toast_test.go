package toast

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/toastq/internal/types"
	"github.com/riordanpawley/toastq/internal/ui/styles"
	"github.com/stretchr/testify/assert"
)

func TestToastRenderer_Render_Empty(t *testing.T) {
	renderer := New(styles.New())

	result := renderer.Render([]types.Toast{}, 80, time.Time{})

	assert.Equal(t, "", result, "Empty toast list should return empty string")
}

func TestToastRenderer_Render_SingleToast(t *testing.T) {
	renderer := New(styles.New())

	toasts := []types.Toast{
		{ID: 7, Level: types.ToastSuccess, Message: "Test message"},
	}

	result := renderer.Render(toasts, 80, time.Time{})

	assert.NotEmpty(t, result, "Should render toast")
	assert.Contains(t, result, "Test message", "Should contain toast message")
	assert.Contains(t, result, "#7 success", "Should contain toast id and level")
}

func TestToastRenderer_Render_MultipleToastsKeepOrder(t *testing.T) {
	renderer := New(styles.New())

	toasts := []types.Toast{
		{ID: 1, Level: types.ToastSuccess, Message: "First toast"},
		{ID: 2, Level: types.ToastWarning, Message: "Second toast"},
		{ID: 3, Level: types.ToastError, Message: "Third toast"},
	}

	result := renderer.Render(toasts, 90, time.Time{})

	first := strings.Index(result, "First toast")
	second := strings.Index(result, "Second toast")
	third := strings.Index(result, "Third toast")
	assert.True(t, first >= 0 && second > first && third > second, "toasts should render in display order")

	lines := strings.Split(result, "\n")
	assert.Greater(t, len(lines), 3, "Multiple toasts should create multiple lines")
}

func TestToastRenderer_Render_AlignedRight(t *testing.T) {
	renderer := New(styles.New())

	result := renderer.Render([]types.Toast{{ID: 1, Message: "hi"}}, 90, time.Time{})

	for _, line := range strings.Split(result, "\n") {
		assert.Equal(t, 90, lipgloss.Width(line), "each line should span the terminal width")
	}
}

func TestToastRenderer_Render_DifferentLevels(t *testing.T) {
	renderer := New(styles.New())

	for _, level := range types.Levels {
		t.Run(level.String(), func(t *testing.T) {
			toasts := []types.Toast{
				{ID: 1, Level: level, Message: "Test " + level.String()},
			}

			result := renderer.Render(toasts, 80, time.Time{})

			assert.NotEmpty(t, result, "Should render toast for level %s", level)
			assert.Contains(t, result, "Test "+level.String(), "Should contain toast message")
		})
	}
}

func TestToastRenderer_Width(t *testing.T) {
	renderer := New(styles.New())
	assert.Equal(t, 20, renderer.Width(60))
	assert.Equal(t, DefaultMaxWidth, renderer.Width(300))

	renderer.WithMaxWidth(60)
	assert.Equal(t, 60, renderer.Width(300))

	renderer.WithMaxWidth(0)
	assert.Equal(t, 60, renderer.Width(300), "non-positive max width is ignored")
}

func TestToastRenderer_styleForLevel(t *testing.T) {
	s := styles.New()
	renderer := New(s)

	assert.Equal(t, s.ToastSuccess.Render("x"), renderer.styleForLevel(types.ToastSuccess).Render("x"))
	assert.Equal(t, s.ToastWarning.Render("x"), renderer.styleForLevel(types.ToastWarning).Render("x"))
	assert.Equal(t, s.ToastError.Render("x"), renderer.styleForLevel(types.ToastError).Render("x"))
}

func TestToastRenderer_Render_ShowsRemainingTime(t *testing.T) {
	renderer := New(styles.New())
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	toasts := []types.Toast{
		{ID: 3, Level: types.ToastError, Message: "boom", Created: now, Expires: now.Add(2 * time.Second)},
	}

	assert.Contains(t, renderer.Render(toasts, 90, now), "#3 error · 2s")
	assert.Contains(t, renderer.Render(toasts, 90, now.Add(1500*time.Millisecond)), "#3 error · 1s")
	assert.Contains(t, renderer.Render(toasts, 90, now.Add(time.Hour)), "#3 error · 0s")
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0s"},
		{-time.Second, "0s"},
		{time.Millisecond, "1s"},
		{time.Second, "1s"},
		{2400 * time.Millisecond, "3s"},
		{90 * time.Second, "1m30s"},
	}

	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRemaining(tt.in))
		})
	}
}
