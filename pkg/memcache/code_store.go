// memcache/code_store.go
package memcache

import (
	"sync"
	"time"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// CodeStore keeps short-lived single-use codes in memory: OTP codes keyed
// by email and password-reset tokens keyed by the token itself. Values are
// dropped on expiry or on Consume, whichever comes first.
type CodeStore interface {
	Set(key, value string, ttl time.Duration)
	// Peek returns the value without consuming it.
	Peek(key string) (string, bool)
	// Consume returns the value and removes it in the same step.
	Consume(key string) (string, bool)
	Delete(key string)
}

type codeStore struct {
	mu      sync.Mutex
	entries map[string]entry
}

func NewCodeStore() CodeStore {
	return &codeStore{entries: make(map[string]entry)}
}

func (s *codeStore) Set(key, value string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{value: value, expiresAt: time.Now().Add(ttl)}
}

func (s *codeStore) Peek(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return "", false
	}
	if time.Now().After(e.expiresAt) {
		delete(s.entries, key)
		return "", false
	}
	return e.value, true
}

func (s *codeStore) Consume(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return "", false
	}
	delete(s.entries, key)
	if time.Now().After(e.expiresAt) {
		return "", false
	}
	return e.value, true
}

func (s *codeStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}
