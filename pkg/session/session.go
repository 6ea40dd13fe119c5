package session

import (
	"errors"
	"time"
)

// Session represents a browser session: an opaque identifier carried in a cookie,
// arbitrary values, and the id of the identity attached to it (if any).
type Session struct {
	CreatedAt time.Time      `json:"created_at"`
	ExpiresAt time.Time      `json:"expires_at"`
	Values    map[string]any `json:"values,omitempty"`
	ID        string         `json:"id"`
	UserID    string         `json:"user_id,omitempty"` // empty = anonymous session

	dirty bool
	isNew bool
}

// New creates a new session with the given ID and absolute expiry.
func New(id string, expiresAt time.Time) *Session {
	return &Session{
		ID:        id,
		Values:    make(map[string]any),
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
		isNew:     true,
		dirty:     true,
	}
}

// Renew returns a copy of the session under a new id and expiry, carrying
// the user and values over. The copy is new and dirty.
func (s *Session) Renew(id string, expiresAt time.Time) *Session {
	renewed := New(id, expiresAt)
	renewed.UserID = s.UserID
	for k, v := range s.Values {
		renewed.Values[k] = v
	}
	return renewed
}

// IsAuthenticated returns true if an identity is attached to the session.
func (s *Session) IsAuthenticated() bool {
	return s.UserID != ""
}

// SetUser attaches an identity id to the session.
func (s *Session) SetUser(id string) {
	if s.UserID == id {
		return
	}
	s.UserID = id
	s.dirty = true
}

// ClearUser detaches the identity from the session.
func (s *Session) ClearUser() {
	s.SetUser("")
}

// SetValue stores a value in the session.
// Marks the session as dirty for automatic saving.
func (s *Session) SetValue(key string, val any) {
	if s.Values == nil {
		s.Values = make(map[string]any)
	}
	s.Values[key] = val
	s.dirty = true
}

// GetValue retrieves a value from the session.
func (s *Session) GetValue(key string) (any, bool) {
	if s.Values == nil {
		return nil, false
	}
	val, ok := s.Values[key]
	return val, ok
}

// DeleteValue removes a value from the session.
// Marks the session as dirty only if the key existed.
func (s *Session) DeleteValue(key string) {
	if s.Values == nil {
		return
	}
	if _, exists := s.Values[key]; exists {
		delete(s.Values, key)
		s.dirty = true
	}
}

// IsDirty returns true if the session has unsaved changes.
func (s *Session) IsDirty() bool {
	return s.dirty
}

// ClearDirty marks the session as saved.
func (s *Session) ClearDirty() {
	s.dirty = false
}

// MarkDirty marks the session as needing to be saved.
func (s *Session) MarkDirty() {
	s.dirty = true
}

// IsNew returns true if the session was created during this request.
func (s *Session) IsNew() bool {
	return s.isNew
}

// ClearNew marks the session as persisted at least once.
func (s *Session) ClearNew() {
	s.isNew = false
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// TTL returns the remaining lifetime of the session, never negative.
func (s *Session) TTL() time.Duration {
	return max(time.Until(s.ExpiresAt), 0)
}

// Value is a typed helper to retrieve session values with type safety.
// Returns an error if the key doesn't exist or type assertion fails.
func Value[T any](s *Session, key string) (T, error) {
	var zero T
	if s == nil {
		return zero, ErrNotFound
	}
	val, ok := s.GetValue(key)
	if !ok {
		return zero, ErrNotFound
	}
	typed, ok := val.(T)
	if !ok {
		return zero, errors.New("session: type mismatch for key: " + key)
	}
	return typed, nil
}

// ValueOr is a typed helper that returns a default value if the key
// doesn't exist or type assertion fails.
func ValueOr[T any](s *Session, key string, defaultVal T) T {
	val, err := Value[T](s, key)
	if err != nil {
		return defaultVal
	}
	return val
}
