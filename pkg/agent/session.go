package agent

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/mckayn10/ai-chat-app/pkg/dialog"
)

// Session is one user's conversation. It owns the dialogue state and a
// single in-flight flag; the engine rejects a new utterance while a prior
// one is still being processed. Sessions never share state.
type Session struct {
	ID       string
	UserID   int64
	tracker  *dialog.Tracker
	inFlight atomic.Bool
}

func NewSession(userID int64) *Session {
	return &Session{
		ID:      uuid.NewString(),
		UserID:  userID,
		tracker: dialog.NewTracker(),
	}
}

// State exposes the current dialogue state, mainly for tests.
func (s *Session) State() dialog.State { return s.tracker.State() }

func (s *Session) begin() bool { return s.inFlight.CompareAndSwap(false, true) }
func (s *Session) end()        { s.inFlight.Store(false) }

// SessionRegistry hands out one Session per user. Lookups after the first
// return the same session so dialogue state survives across turns.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[int64]*Session)}
}

func (r *SessionRegistry) Get(userID int64) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[userID]
	if !ok {
		s = NewSession(userID)
		r.sessions[userID] = s
	}
	return s
}

// Reset drops a user's session, clearing any pending dialogue state.
func (r *SessionRegistry) Reset(userID int64) {
	r.mu.Lock()
	delete(r.sessions, userID)
	r.mu.Unlock()
}
