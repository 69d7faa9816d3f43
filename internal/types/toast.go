// Package types contains shared types used across the application.
package types

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownLevel is returned when a severity name cannot be parsed
var ErrUnknownLevel = errors.New("unknown toast level")

// Toast represents a notification message
type Toast struct {
	ID      int
	Level   ToastLevel
	Message string
	Created time.Time
	Expires time.Time
}

// Remaining returns how long the toast has left at the given instant,
// never less than zero
func (t Toast) Remaining(now time.Time) time.Duration {
	if d := t.Expires.Sub(now); d > 0 {
		return d
	}
	return 0
}

// ToastLevel indicates the severity of a toast.
// The zero value is ToastSuccess.
type ToastLevel int

const (
	ToastSuccess ToastLevel = iota
	ToastError
	ToastWarning
)

// Levels lists every severity in cycling order
var Levels = []ToastLevel{ToastSuccess, ToastError, ToastWarning}

// String returns the string representation of the level
func (l ToastLevel) String() string {
	switch l {
	case ToastSuccess:
		return "success"
	case ToastError:
		return "error"
	case ToastWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Next returns the level after l in cycling order
func (l ToastLevel) Next() ToastLevel {
	for i, lvl := range Levels {
		if lvl == l {
			return Levels[(i+1)%len(Levels)]
		}
	}
	return ToastSuccess
}

// ParseToastLevel parses a severity name. Matching is case-insensitive and
// "warn" is accepted for warning.
func ParseToastLevel(s string) (ToastLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "success":
		return ToastSuccess, nil
	case "error":
		return ToastError, nil
	case "warning", "warn":
		return ToastWarning, nil
	default:
		return ToastSuccess, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}
