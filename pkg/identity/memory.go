package identity

import (
	"context"
	"strings"
	"sync"
)

// MemoryUsers is an in-process UserStore for development and tests.
type MemoryUsers struct {
	mu    sync.RWMutex
	byID  map[string]*User
	names map[string]string
}

// NewMemoryUsers creates an empty store.
func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{
		byID:  make(map[string]*User),
		names: make(map[string]string),
	}
}

// Add stores u, replacing any user with the same id.
func (m *MemoryUsers) Add(u User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[u.ID] = &u
	m.names[strings.ToLower(u.Username)] = u.ID
}

// Remove deletes the user with the given id.
func (m *MemoryUsers) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		delete(m.names, strings.ToLower(u.Username))
		delete(m.byID, id)
	}
}

func (m *MemoryUsers) UserByUsername(_ context.Context, username string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.names[strings.ToLower(username)]
	if !ok {
		return nil, ErrUnknownUser
	}
	u := *m.byID[id]
	return &u, nil
}

func (m *MemoryUsers) UserByID(_ context.Context, id string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, ErrUnknownUser
	}
	cp := *u
	return &cp, nil
}
