package auth

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
)

// Sessions tracks which issued tokens are still live, so logout actually
// revokes access instead of waiting for token expiry. State is process-local
// like everything else here.
type Sessions struct {
	mu     sync.Mutex
	active map[string]string
}

func NewSessions() *Sessions {
	return &Sessions{active: make(map[string]string)}
}

// Create registers a fresh session for the user and returns its id.
func (s *Sessions) Create(username string) (string, error) {
	buff := make([]byte, 32)
	if _, err := rand.Read(buff); err != nil {
		return "", err
	}
	id := base64.RawURLEncoding.EncodeToString(buff)
	s.mu.Lock()
	s.active[id] = username
	s.mu.Unlock()
	return id, nil
}

func (s *Sessions) Valid(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.active[id]
	return ok
}

// Revoke ends a session. Revoking an unknown id is a no-op.
func (s *Sessions) Revoke(id string) {
	s.mu.Lock()
	delete(s.active, id)
	s.mu.Unlock()
}
