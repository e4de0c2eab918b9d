package auth

import (
	"sync"
	"time"
)

// Token represents a tenant access token.
type Token struct {
	AccessToken string    `json:"tenant_access_token"`
	ExpiresIn   int       `json:"expire,omitempty"`
	ExpiresAt   time.Time `json:"-"`
}

// ValidAt reports whether the token can still be sent at now, keeping margin
// in reserve before ExpiresAt. A zero ExpiresAt never expires.
func (t *Token) ValidAt(now time.Time, margin time.Duration) bool {
	if t == nil || t.AccessToken == "" {
		return false
	}

	if t.ExpiresAt.IsZero() {
		return true
	}

	return now.Before(t.ExpiresAt.Add(-margin))
}

// TokenStore holds at most one token.
type TokenStore struct {
	mu    sync.RWMutex
	token *Token
}

// NewTokenStore creates an empty token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get returns the stored token or nil.
func (s *TokenStore) Get() *Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// Set replaces the stored token.
func (s *TokenStore) Set(token *Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
}

// Clear drops the stored token.
func (s *TokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = nil
}
