package auth

import (
	"sync"
	"time"

	"github.com/desertthunder/moodtunes/internal/shared"
)

// Session is one logged-in user's server-side state.
//
// Created at login, destroyed at logout or expiry. Handlers receive the
// session explicitly; there is no ambient global login state.
type Session struct {
	ID        string
	Email     string
	Name      string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its TTL.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// SessionManager tracks active sessions in memory.
//
// One process serves one interactive user at a time in practice, but the
// manager is safe for concurrent handlers.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]Session
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionManager creates a manager with the given session TTL.
func NewSessionManager(ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &SessionManager{
		sessions: make(map[string]Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create starts a session for an authenticated email and returns it.
func (m *SessionManager) Create(email string) Session {
	now := m.now()
	session := Session{
		ID:        shared.GenerateID(),
		Email:     email,
		Name:      DisplayName(email),
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	return session
}

// Get returns the session for id. Expired sessions are removed and
// treated as absent.
func (m *SessionManager) Get(id string) (Session, bool) {
	m.mu.RLock()
	session, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return Session{}, false
	}

	if session.Expired(m.now()) {
		m.Destroy(id)
		return Session{}, false
	}

	return session, true
}

// Destroy removes a session. Destroying an unknown id is a no-op.
func (m *SessionManager) Destroy(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}
