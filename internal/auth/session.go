package auth

import (
	"sync"

	"github.com/google/uuid"
)

// SessionStore maps opaque session tokens to user ids. Sessions live in
// memory only; a restart logs everyone out, which matches the
// ephemeral server-side sessions this replaces.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]int // token → user id
}

// NewSessionStore creates an empty SessionStore.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]int),
	}
}

// Create issues a new token for the user.
func (s *SessionStore) Create(userID int) string {
	token := uuid.NewString()

	s.mu.Lock()
	s.sessions[token] = userID
	s.mu.Unlock()

	return token
}

// Resolve returns the user id for a token.
func (s *SessionStore) Resolve(token string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userID, ok := s.sessions[token]
	return userID, ok
}

// Destroy removes a token. Destroying an unknown token is a no-op.
func (s *SessionStore) Destroy(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}
