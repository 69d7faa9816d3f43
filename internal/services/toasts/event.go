package toasts

import (
	"fmt"
	"time"

	"github.com/riordanpawley/toastq/internal/types"
)

// EventKind identifies the mutation an Event reports
type EventKind int

const (
	EventAdded EventKind = iota
	EventExpired
	EventDismissed
)

// String returns the string representation of the event kind
func (k EventKind) String() string {
	switch k {
	case EventAdded:
		return "added"
	case EventExpired:
		return "expired"
	case EventDismissed:
		return "dismissed"
	default:
		return "unknown"
	}
}

// Event describes one change to the queue
type Event struct {
	Kind  EventKind
	Toast types.Toast
	// At is the scheduler time of the change
	At time.Time

	// Snapshot is the list of visible toasts after the change
	Snapshot []types.Toast
}

// String formats the event as a single log line, e.g.
// `+ #1 success "Saved"` or `- #1 expired`
func (e Event) String() string {
	if e.Kind == EventAdded {
		return fmt.Sprintf("+ #%d %s %q", e.Toast.ID, e.Toast.Level, e.Toast.Message)
	}
	return fmt.Sprintf("- #%d %s", e.Toast.ID, e.Kind)
}

// Listener receives queue events. It runs synchronously on the goroutine
// that mutated the queue and must not block. It may read the queue but must
// not enqueue or dismiss from inside the call.
type Listener func(Event)

type subscription struct {
	id int
	fn Listener
}
