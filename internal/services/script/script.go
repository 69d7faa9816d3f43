// Package script loads and plays timed toast sequences. Scripts are YAML or
// JSON lists of steps:
//
//	- after: 0s
//	  message: Saved
//	  level: success
//	  duration: 100ms
//	- after: 50ms
//	  message: Disk almost full
//	  level: warning
package script

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/riordanpawley/toastq/internal/types"
)

// ErrInvalidStep is returned when a script step cannot be parsed
var ErrInvalidStep = errors.New("invalid script step")

// StepError reports which step and field of a script is invalid
type StepError struct {
	Step  int    // 1-based index
	Field string // "after", "duration" or "level"
	Err   error  // Underlying error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d: %s: %v", e.Step, e.Field, e.Err)
}

// Is makes every StepError match ErrInvalidStep
func (e *StepError) Is(target error) bool {
	return target == ErrInvalidStep
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Format is a script encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Step is one toast to show. After is the delay since the previous step.
// Duration only applies when HasDuration is set; otherwise the queue default
// is used. An explicit zero duration expires on the scheduler's next turn.
type Step struct {
	After       time.Duration
	Message     string
	Level       types.ToastLevel
	Duration    time.Duration
	HasDuration bool
}

// Script is an ordered list of steps
type Script struct {
	Steps []Step
}

// Total returns the time from start until the last step is enqueued
func (s Script) Total() time.Duration {
	var total time.Duration
	for _, step := range s.Steps {
		total += step.After
	}
	return total
}

// rawStep mirrors the file layout. Durations and levels are strings so YAML
// and JSON decode the same way.
type rawStep struct {
	After    string `yaml:"after" json:"after"`
	Message  string `yaml:"message" json:"message"`
	Level    string `yaml:"level" json:"level"`
	Duration string `yaml:"duration" json:"duration"`
}

// Load reads a script file, picking the format from the extension
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	format := FormatYAML
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = FormatJSON
	}

	s, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return s, nil
}

// Parse decodes and validates script data
func Parse(data []byte, format Format) (*Script, error) {
	var raw []rawStep
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse script JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse script YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported script format %q", format)
	}

	s := &Script{Steps: make([]Step, 0, len(raw))}
	for i, r := range raw {
		step, err := r.toStep()
		if err != nil {
			var stepErr *StepError
			if errors.As(err, &stepErr) {
				stepErr.Step = i + 1
			}
			return nil, err
		}
		s.Steps = append(s.Steps, step)
	}
	return s, nil
}

func (r rawStep) toStep() (Step, error) {
	var step Step
	var err error

	if step.After, err = parseDuration(r.After); err != nil {
		return Step{}, &StepError{Field: "after", Err: err}
	}
	if step.Duration, err = parseDuration(r.Duration); err != nil {
		return Step{}, &StepError{Field: "duration", Err: err}
	}
	step.HasDuration = strings.TrimSpace(r.Duration) != ""
	if r.Level != "" {
		if step.Level, err = types.ParseToastLevel(r.Level); err != nil {
			return Step{}, &StepError{Field: "level", Err: err}
		}
	}
	step.Message = r.Message
	return step, nil
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %s", s)
	}
	return d, nil
}

// Target receives the toasts a script produces
type Target interface {
	Show(message string, level types.ToastLevel, duration ...time.Duration) types.Toast
}

// Player plays a script against a Target
type Player struct {
	script *Script
	after  func(time.Duration) <-chan time.Time
	logger *slog.Logger
}

// NewPlayer creates a Player that waits on real time between steps
func NewPlayer(s *Script, logger *slog.Logger) *Player {
	return &Player{
		script: s,
		after:  time.After,
		logger: logger,
	}
}

// Run enqueues each step after its delay. It returns the number of steps
// played, and ctx.Err() if the context ended first.
func (p *Player) Run(ctx context.Context, target Target) (int, error) {
	for i, step := range p.script.Steps {
		if step.After > 0 {
			select {
			case <-ctx.Done():
				return i, ctx.Err()
			case <-p.after(step.After):
			}
		} else if err := ctx.Err(); err != nil {
			return i, err
		}

		Play(target, step)
		p.logger.Debug("script step played", "step", i+1, "level", step.Level.String())
	}
	return len(p.script.Steps), nil
}

// Play shows a single step on the target
func Play(target Target, step Step) types.Toast {
	if step.HasDuration {
		return target.Show(step.Message, step.Level, step.Duration)
	}
	return target.Show(step.Message, step.Level)
}
