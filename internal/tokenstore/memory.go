package tokenstore

import (
	"sync"

	"github.com/inkwell-cms/inkwell-go/internal/model"
)

// MemoryStore is an in-process Store for tests and throwaway sessions.
type MemoryStore struct {
	mu      sync.RWMutex
	access  string
	refresh string
	user    *model.User
	prefs   map[string]string
}

var _ Store = (*MemoryStore)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{prefs: map[string]string{}}
}

func (s *MemoryStore) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

func (s *MemoryStore) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

func (s *MemoryStore) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	cp := *s.user
	return &cp
}

func (s *MemoryStore) SetSession(tokens model.TokenPair, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = tokens.AccessToken
	s.refresh = tokens.RefreshToken
	if u == nil {
		s.user = nil
	} else {
		cp := *u
		s.user = &cp
	}
	return nil
}

func (s *MemoryStore) SetAccessToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = token
	return nil
}

func (s *MemoryStore) SetUser(u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u == nil {
		s.user = nil
		return nil
	}
	cp := *u
	s.user = &cp
	return nil
}

func (s *MemoryStore) Preference(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs[key]
}

func (s *MemoryStore) SetPreference(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs[key] = value
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access, s.refresh, s.user = "", "", nil
	return nil
}
