package session

import "context"

// Store persists sessions keyed by their identifier.
// Implementations must be safe for concurrent use; the session manager
// never locks around store calls.
type Store interface {
	// Get retrieves a session by id.
	// Returns ErrNotFound if the session doesn't exist.
	// Returns ErrExpired if the session has expired.
	Get(ctx context.Context, id string) (*Session, error)

	// Save creates or replaces the session record.
	// The record must not outlive s.ExpiresAt.
	Save(ctx context.Context, s *Session) error

	// Delete removes a session by id. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error
}
