package toasts

import "time"

// Timer is a handle to a scheduled one-shot callback
type Timer interface {
	// Stop prevents the callback from running. It returns false if the
	// callback already ran or the timer was already stopped.
	Stop() bool
}

// Scheduler provides the clock and one-shot timers used by the queue
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// RuntimeScheduler schedules callbacks on the Go runtime timers.
// Callbacks run on their own goroutine.
type RuntimeScheduler struct{}

// Now returns the current wall-clock time
func (RuntimeScheduler) Now() time.Time {
	return time.Now()
}

// AfterFunc runs f after d has elapsed
func (RuntimeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
