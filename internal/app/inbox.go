package app

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/toastq/internal/services/toasts"
)

// maxPendingEvents bounds the events buffered between two renders
const maxPendingEvents = 256

// toastsChangedMsg carries the queue events seen since the last delivery
type toastsChangedMsg struct {
	events []toasts.Event
}

// inbox moves queue events from timer goroutines into the Bubble Tea loop.
// push never blocks; signals are coalesced so one wake-up may carry many
// events.
type inbox struct {
	mu     sync.Mutex
	events []toasts.Event
	signal chan struct{}
}

func newInbox() *inbox {
	return &inbox{signal: make(chan struct{}, 1)}
}

func (b *inbox) push(ev toasts.Event) {
	b.mu.Lock()
	b.events = append(b.events, ev)
	if over := len(b.events) - maxPendingEvents; over > 0 {
		b.events = b.events[over:]
	}
	b.mu.Unlock()

	select {
	case b.signal <- struct{}{}:
	default:
	}
}

func (b *inbox) drain() []toasts.Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	events := b.events
	b.events = nil
	return events
}

// wait returns a command that blocks until the queue changes
func (b *inbox) wait() tea.Cmd {
	return func() tea.Msg {
		<-b.signal
		return toastsChangedMsg{events: b.drain()}
	}
}
