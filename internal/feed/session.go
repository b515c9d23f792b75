package feed

import (
	"sync"

	"github.com/google/uuid"
)

// Session holds one viewer's scroll position. Positions drive periodic news
// and topic placement. Safe for concurrent use: racing loads claim disjoint
// windows.
type Session struct {
	ID string

	mu       sync.Mutex
	position int
}

// NewSession starts a session at position 0.
func NewSession() *Session {
	return &Session{ID: uuid.NewString()}
}

// Position returns the next unclaimed position.
func (s *Session) Position() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

// claim reserves [start, start+n) and returns start.
func (s *Session) claim(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	start := s.position
	s.position += n
	return start
}

// release gives back a claim that produced nothing, unless a later claim
// already built on top of it.
func (s *Session) release(start, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.position == start+n {
		s.position = start
	}
}
