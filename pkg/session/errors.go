package session

import "errors"

// Session errors.
var (
	// ErrNotFound is returned when a session does not exist in the store.
	ErrNotFound = errors.New("session: not found")

	// ErrExpired is returned when a session has outlived its max age.
	ErrExpired = errors.New("session: expired")

	// ErrCorrupt is returned when a stored session record cannot be decoded.
	ErrCorrupt = errors.New("session: corrupt record")

	// ErrStoreUnavailable wraps transport failures of a remote store.
	ErrStoreUnavailable = errors.New("session: store unavailable")
)
