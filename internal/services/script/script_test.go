package script

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riordanpawley/toastq/internal/services/toasts"
	"github.com/riordanpawley/toastq/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlScript = `
- message: Saved
  duration: 100ms
- after: 50ms
  message: Upload failed
  level: error
  duration: 500ms
- after: 25ms
  message: Disk almost full
  level: WARN
`

func TestParse_YAML(t *testing.T) {
	s, err := Parse([]byte(yamlScript), FormatYAML)
	require.NoError(t, err)
	require.Len(t, s.Steps, 3)

	assert.Equal(t, Step{Message: "Saved", Level: types.ToastSuccess, Duration: 100 * time.Millisecond, HasDuration: true}, s.Steps[0])
	assert.Equal(t, Step{After: 50 * time.Millisecond, Message: "Upload failed", Level: types.ToastError, Duration: 500 * time.Millisecond, HasDuration: true}, s.Steps[1])
	assert.Equal(t, types.ToastWarning, s.Steps[2].Level)
	assert.Equal(t, time.Duration(0), s.Steps[2].Duration)
	assert.False(t, s.Steps[2].HasDuration)
	assert.Equal(t, 75*time.Millisecond, s.Total())
}

func TestParse_JSON(t *testing.T) {
	data := `[{"message": "ok"}, {"after": "1s", "message": "", "level": "error", "duration": "2s"}]`

	s, err := Parse([]byte(data), FormatJSON)
	require.NoError(t, err)
	require.Len(t, s.Steps, 2)
	assert.Equal(t, "", s.Steps[1].Message, "empty messages are allowed")
	assert.Equal(t, 2*time.Second, s.Steps[1].Duration)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		format  Format
		wantErr string
	}{
		{"bad level", "- message: x\n  level: info\n", FormatYAML, "step 1"},
		{"bad after", "- message: x\n- after: soon\n", FormatYAML, "step 2"},
		{"negative duration", "- duration: -1s\n", FormatYAML, "negative duration"},
		{"bad json", "{", FormatJSON, "failed to parse script JSON"},
		{"bad yaml", "- [", FormatYAML, "failed to parse script YAML"},
		{"unknown format", "[]", Format("toml"), "unsupported script format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	_, err := Parse([]byte("- message: ok\n- level: nope\n"), FormatYAML)
	assert.ErrorIs(t, err, ErrInvalidStep)
	assert.ErrorIs(t, err, types.ErrUnknownLevel)

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, 2, stepErr.Step)
	assert.Equal(t, "level", stepErr.Field)
}

func TestLoad_PicksFormatFromExtension(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "demo.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`[{"message": "hi", "level": "warning"}]`), 0644))
	s, err := Load(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, types.ToastWarning, s.Steps[0].Level)

	yamlPath := filepath.Join(dir, "demo.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(yamlScript), 0644))
	s, err = Load(yamlPath)
	require.NoError(t, err)
	assert.Len(t, s.Steps, 3)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPlayer_Run(t *testing.T) {
	s, err := Parse([]byte(yamlScript), FormatYAML)
	require.NoError(t, err)

	sched := toasts.NewManualScheduler(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	q := toasts.New(toasts.WithScheduler(sched))

	var waits []time.Duration
	p := NewPlayer(s, slog.Default())
	p.after = func(d time.Duration) <-chan time.Time {
		waits = append(waits, d)
		ch := make(chan time.Time, 1)
		ch <- time.Time{}
		return ch
	}

	n, err := p.Run(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []time.Duration{50 * time.Millisecond, 25 * time.Millisecond}, waits)

	got := q.Toasts()
	require.Len(t, got, 3)
	assert.Equal(t, "Saved", got[0].Message)
	assert.Equal(t, toasts.DefaultDuration, got[2].Expires.Sub(got[2].Created))
}

func TestPlayer_RunCancelled(t *testing.T) {
	s, err := Parse([]byte(yamlScript), FormatYAML)
	require.NoError(t, err)

	q := toasts.New(toasts.WithScheduler(toasts.NewManualScheduler(time.Now())))
	p := NewPlayer(s, slog.Default())
	p.after = func(time.Duration) <-chan time.Time {
		return make(chan time.Time)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, err := p.Run(ctx, q)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, q.Len())
}

func TestPlay_ExplicitZeroDurationExpiresImmediately(t *testing.T) {
	s, err := Parse([]byte("- message: flash\n  duration: 0s\n"), FormatYAML)
	require.NoError(t, err)
	require.True(t, s.Steps[0].HasDuration)

	sched := toasts.NewManualScheduler(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	q := toasts.New(toasts.WithScheduler(sched))

	shown := Play(q, s.Steps[0])
	assert.Equal(t, shown.Created, shown.Expires)
	assert.Equal(t, 1, q.Len(), "visible until the scheduler runs")

	sched.Advance(0)
	assert.Equal(t, 0, q.Len())
}

func TestPlay_MissingDurationUsesQueueDefault(t *testing.T) {
	s, err := Parse([]byte("- message: saved\n"), FormatYAML)
	require.NoError(t, err)
	require.False(t, s.Steps[0].HasDuration)

	sched := toasts.NewManualScheduler(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	q := toasts.New(toasts.WithScheduler(sched), toasts.WithDefaultDuration(time.Second))

	shown := Play(q, s.Steps[0])
	assert.Equal(t, time.Second, shown.Expires.Sub(shown.Created))

	sched.Advance(0)
	assert.Equal(t, 1, q.Len())
	sched.Advance(time.Second)
	assert.Equal(t, 0, q.Len())
}
