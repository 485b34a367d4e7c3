// AngelaMos | 2026
// token.go

package client

import (
	"sync"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwt"
)

// TokenStore persists the bearer token between calls.
type TokenStore interface {
	Token() string
	SetToken(token string)
}

type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemoryStore) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// tokenExpired decodes exp without verifying the signature. A token
// that cannot be decoded counts as expired.
func tokenExpired(token string, now time.Time) bool {
	if token == "" {
		return true
	}

	parsed, err := jwt.ParseInsecure([]byte(token))
	if err != nil {
		return true
	}

	exp, ok := parsed.Expiration()
	if !ok {
		return false
	}
	return !now.Before(exp)
}
