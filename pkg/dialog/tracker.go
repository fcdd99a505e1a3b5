package dialog

import (
	"sync"
	"time"
)

// StateChange represents a state transition event.
type StateChange struct {
	FromState State
	ToState   State
	Timestamp time.Time
	Reason    string
}

// StateListener observes dialogue state changes.
type StateListener interface {
	OnStateChange(event StateChange)
}

// Tracker is the per-session dialogue state machine. Two states, one slot:
// Idle -> AwaitingName when a creation asks for a name, and back to Idle on
// the very next turn whether or not it delivered one.
type Tracker struct {
	mu        sync.RWMutex
	current   State
	listeners []StateListener
}

func NewTracker() *Tracker {
	return &Tracker{current: Idle}
}

// State returns the current state.
func (t *Tracker) State() State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}

// Await marks the session as owing a name on the next turn. Overwrites any
// prior pending marker.
func (t *Tracker) Await(reason string) {
	t.transition(AwaitingName, reason)
}

// Consume clears the pending marker and reports whether one was pending.
// The dispatcher calls this at the start of every turn.
func (t *Tracker) Consume(reason string) bool {
	t.mu.Lock()
	pending := t.current == AwaitingName
	t.mu.Unlock()
	if pending {
		t.transition(Idle, reason)
	}
	return pending
}

// Reset returns the tracker to Idle regardless of its state.
func (t *Tracker) Reset(reason string) {
	t.transition(Idle, reason)
}

// AddListener registers a listener for state change events.
func (t *Tracker) AddListener(l StateListener) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, l)
}

func (t *Tracker) transition(to State, reason string) {
	t.mu.Lock()
	from := t.current
	t.current = to
	listeners := make([]StateListener, len(t.listeners))
	copy(listeners, t.listeners)
	t.mu.Unlock()

	if from == to {
		return
	}
	event := StateChange{
		FromState: from,
		ToState:   to,
		Timestamp: time.Now(),
		Reason:    reason,
	}
	for _, l := range listeners {
		l.OnStateChange(event)
	}
}
