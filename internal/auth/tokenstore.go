package auth

import "sync"

// TokenStore holds the active bearer token for the current session. It is a
// transparent in-memory cache; issuance and refresh belong to the identity
// provider, not here.
type TokenStore struct {
	mu    sync.RWMutex
	token string
	set   bool
}

// NewTokenStore creates an empty token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Save replaces the stored token.
func (s *TokenStore) Save(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.set = true
}

// Get returns the stored token, or ErrNoToken when nothing has been saved.
func (s *TokenStore) Get() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.set {
		return "", ErrNoToken
	}
	return s.token, nil
}

// Clear removes the stored token.
func (s *TokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.set = false
}
