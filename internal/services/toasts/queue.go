// Package toasts implements the transient notification queue. Each toast is
// visible from the moment it is enqueued until its own timer removes it.
package toasts

import (
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/riordanpawley/toastq/internal/types"
)

// DefaultDuration is how long a toast stays visible when no duration is given
const DefaultDuration = 3 * time.Second

// Option configures a Queue
type Option func(*Queue)

// WithScheduler sets the clock and timer source
func WithScheduler(s Scheduler) Option {
	return func(q *Queue) {
		q.scheduler = s
	}
}

// WithIDGenerator replaces the queue's own counter. The generator is only
// called with the queue lock held and must never repeat a value.
func WithIDGenerator(next func() int) Option {
	return func(q *Queue) {
		q.nextID = next
	}
}

// WithDefaultDuration sets the display time used by Show and the severity
// helpers when the caller omits one
func WithDefaultDuration(d time.Duration) Option {
	return func(q *Queue) {
		q.defaultDuration = max(d, 0)
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(q *Queue) {
		q.logger = logger
	}
}

// Queue holds the ordered list of visible toasts.
//
// Mutations are serialized by emitMu, which is held while listeners run so
// they observe events in mutation order. mu guards the list itself and is
// never held while waiting for emitMu.
type Queue struct {
	emitMu sync.Mutex

	mu              sync.Mutex
	toasts          []types.Toast
	timers          map[int]Timer
	nextID          func() int
	defaultDuration time.Duration
	listeners       []subscription
	nextSub         int

	scheduler Scheduler
	logger    *slog.Logger
}

// New creates an empty queue
func New(opts ...Option) *Queue {
	q := &Queue{
		toasts:          []types.Toast{},
		timers:          make(map[int]Timer),
		defaultDuration: DefaultDuration,
		scheduler:       RuntimeScheduler{},
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	counter := 0
	q.nextID = func() int {
		counter++
		return counter
	}

	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Enqueue appends a toast and schedules its removal after duration.
// A negative duration is treated as zero, which removes the toast on the
// scheduler's next turn. The toast is visible when Enqueue returns.
func (q *Queue) Enqueue(message string, level types.ToastLevel, duration time.Duration) types.Toast {
	duration = max(duration, 0)

	q.emitMu.Lock()
	defer q.emitMu.Unlock()

	q.mu.Lock()
	now := q.scheduler.Now()
	toast := types.Toast{
		ID:      q.nextID(),
		Level:   level,
		Message: message,
		Created: now,
		Expires: now.Add(duration),
	}
	q.toasts = append(q.toasts, toast)

	id := toast.ID
	q.timers[id] = q.scheduler.AfterFunc(duration, func() {
		q.expire(id)
	})
	ev, listeners := q.eventLocked(EventAdded, toast, now)
	q.mu.Unlock()

	q.logger.Debug("toast enqueued", "id", id, "level", level.String(), "duration", duration)
	deliver(listeners, ev)
	return toast
}

// Show enqueues a toast using the default duration unless one is given
func (q *Queue) Show(message string, level types.ToastLevel, duration ...time.Duration) types.Toast {
	d := q.DefaultDuration()
	if len(duration) > 0 {
		d = duration[0]
	}
	return q.Enqueue(message, level, d)
}

// Success enqueues a success toast
func (q *Queue) Success(message string, duration ...time.Duration) types.Toast {
	return q.Show(message, types.ToastSuccess, duration...)
}

// Error enqueues an error toast
func (q *Queue) Error(message string, duration ...time.Duration) types.Toast {
	return q.Show(message, types.ToastError, duration...)
}

// Warning enqueues a warning toast
func (q *Queue) Warning(message string, duration ...time.Duration) types.Toast {
	return q.Show(message, types.ToastWarning, duration...)
}

// Dismiss removes a toast before its timer fires and cancels the timer.
// It returns false if no toast with that id is visible.
func (q *Queue) Dismiss(id int) bool {
	return q.remove(id, EventDismissed)
}

// expire is run by a toast's timer. Missing ids are ignored.
func (q *Queue) expire(id int) {
	q.remove(id, EventExpired)
}

func (q *Queue) remove(id int, kind EventKind) bool {
	q.emitMu.Lock()
	defer q.emitMu.Unlock()

	q.mu.Lock()
	idx := slices.IndexFunc(q.toasts, func(t types.Toast) bool {
		return t.ID == id
	})
	if idx == -1 {
		q.mu.Unlock()
		return false
	}

	toast := q.toasts[idx]
	q.toasts = slices.Delete(q.toasts, idx, idx+1)
	if timer, ok := q.timers[id]; ok {
		timer.Stop()
		delete(q.timers, id)
	}
	ev, listeners := q.eventLocked(kind, toast, q.scheduler.Now())
	q.mu.Unlock()

	q.logger.Debug("toast removed", "id", id, "reason", kind.String())
	deliver(listeners, ev)
	return true
}

// Toasts returns a copy of the visible toasts in display order
func (q *Queue) Toasts() []types.Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.snapshotLocked()
}

// Len returns the number of visible toasts
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.toasts)
}

// Oldest returns the toast that has been visible the longest
func (q *Queue) Oldest() (types.Toast, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.toasts) == 0 {
		return types.Toast{}, false
	}
	return q.toasts[0], true
}

// DefaultDuration returns the display time used when none is given
func (q *Queue) DefaultDuration() time.Duration {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.defaultDuration
}

// SetDefaultDuration changes the default display time for later toasts.
// Negative values are treated as zero.
func (q *Queue) SetDefaultDuration(d time.Duration) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.defaultDuration = max(d, 0)
}

// Subscribe registers a listener for queue events and returns a function
// that removes it
func (q *Queue) Subscribe(fn Listener) func() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.nextSub++
	id := q.nextSub
	q.listeners = append(q.listeners, subscription{id: id, fn: fn})

	return func() {
		q.mu.Lock()
		defer q.mu.Unlock()
		q.listeners = slices.DeleteFunc(q.listeners, func(s subscription) bool {
			return s.id == id
		})
	}
}

func (q *Queue) snapshotLocked() []types.Toast {
	out := make([]types.Toast, len(q.toasts))
	copy(out, q.toasts)
	return out
}

func (q *Queue) eventLocked(kind EventKind, toast types.Toast, at time.Time) (Event, []subscription) {
	ev := Event{
		Kind:     kind,
		Toast:    toast,
		At:       at,
		Snapshot: q.snapshotLocked(),
	}
	return ev, slices.Clone(q.listeners)
}

func deliver(listeners []subscription, ev Event) {
	for _, s := range listeners {
		s.fn(ev)
	}
}
