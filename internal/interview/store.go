package interview

import (
	"errors"
	"sync"
)

// ErrSessionNotFound is returned when a session id is unknown.
var ErrSessionNotFound = errors.New("interview session not found")

// SessionStore is an in-memory session registry keyed by session id.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// Start creates (or resets) a session with the given area and level.
func (s *SessionStore) Start(sessionID, area, level string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	session := &Session{Area: area, Level: level}
	s.sessions[sessionID] = session
	return session
}

// Get returns the session for an id or ErrSessionNotFound.
func (s *SessionStore) Get(sessionID string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}
