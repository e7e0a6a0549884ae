// Package session keeps per-user quiz state in memory.
package session

import (
	"sync"
	"time"

	"cardbot/internal/domain"
)

// Store is an in-memory session map safe for concurrent use
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]domain.Session
	now      func() time.Time
}

// NewStore creates an empty session store
func NewStore() *Store {
	return &Store{
		sessions: make(map[int64]domain.Session),
		now:      time.Now,
	}
}

// Get returns the user's session, or an idle one if none exists
func (s *Store) Get(userID int64) domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return domain.IdleSession()
	}
	sess.Distractors = append([]string(nil), sess.Distractors...)
	return sess
}

// Set replaces the user's session
func (s *Store) Set(userID int64, sess domain.Session) {
	sess.UpdatedAt = s.now()
	sess.Distractors = append([]string(nil), sess.Distractors...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = sess
}

// Reset puts the user back to idle
func (s *Store) Reset(userID int64) {
	s.Set(userID, domain.IdleSession())
}

// EvictIdle drops sessions not touched for longer than ttl and returns how many were removed
func (s *Store) EvictIdle(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for userID, sess := range s.sessions {
		if sess.UpdatedAt.Before(cutoff) {
			delete(s.sessions, userID)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of tracked sessions
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
