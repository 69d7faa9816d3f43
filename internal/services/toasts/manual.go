package toasts

import (
	"sync"
	"time"
)

// ManualScheduler is a Scheduler whose clock only moves when Advance is
// called. Due callbacks run synchronously inside Advance, in deadline order,
// with ties broken by scheduling order. A callback is never run from inside
// AfterFunc, even with a zero delay.
type ManualScheduler struct {
	mu      sync.Mutex
	now     time.Time
	seq     int
	pending []*manualTimer
}

type manualTimer struct {
	s       *ManualScheduler
	at      time.Time
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

// NewManualScheduler creates a ManualScheduler whose clock starts at start
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start}
}

// Now returns the scheduler's virtual time
func (s *ManualScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// AfterFunc registers f to run once the clock has advanced by d
func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	if d < 0 {
		d = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	t := &manualTimer{s: s, at: s.now.Add(d), seq: s.seq, fn: f}
	s.pending = append(s.pending, t)
	return t
}

// Stop cancels the timer if it has not fired yet
func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves the clock forward by d, running every callback that
// becomes due on the way. Callbacks scheduled by a running callback are
// picked up if they fall inside the window.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now.Add(d)
	s.mu.Unlock()

	for {
		s.mu.Lock()
		t := s.popDueLocked(target)
		if t == nil {
			if target.After(s.now) {
				s.now = target
			}
			s.mu.Unlock()
			return
		}
		if t.at.After(s.now) {
			s.now = t.at
		}
		t.fired = true
		s.mu.Unlock()

		t.fn()
	}
}

// Flush runs every pending callback, advancing the clock to the last
// deadline. It returns the total virtual time that passed.
func (s *ManualScheduler) Flush() time.Duration {
	start := s.Now()
	for {
		next, ok := s.NextDeadline()
		if !ok {
			return s.Now().Sub(start)
		}
		s.Advance(next.Sub(s.Now()))
	}
}

// NextDeadline reports when the earliest live timer is due
func (s *ManualScheduler) NextDeadline() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var next *manualTimer
	for _, t := range s.pending {
		if t.stopped {
			continue
		}
		if next == nil || t.at.Before(next.at) {
			next = t
		}
	}
	if next == nil {
		return time.Time{}, false
	}
	return next.at, true
}

// Pending returns the number of live timers
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, t := range s.pending {
		if !t.stopped {
			n++
		}
	}
	return n
}

// popDueLocked removes and returns the earliest live timer due at or before
// target. Stopped timers are dropped along the way.
func (s *ManualScheduler) popDueLocked(target time.Time) *manualTimer {
	live := s.pending[:0]
	for _, t := range s.pending {
		if !t.stopped {
			live = append(live, t)
		}
	}
	s.pending = live

	best := -1
	for i, t := range s.pending {
		if t.at.After(target) {
			continue
		}
		if best == -1 || t.at.Before(s.pending[best].at) ||
			(t.at.Equal(s.pending[best].at) && t.seq < s.pending[best].seq) {
			best = i
		}
	}
	if best == -1 {
		return nil
	}

	t := s.pending[best]
	s.pending = append(s.pending[:best], s.pending[best+1:]...)
	return t
}
