package cache

import "errors"

var (
	// ErrNotFound is returned when a key does not exist or has expired.
	ErrNotFound = errors.New("cache: entry not found")

	// ErrClosed is returned when a write is attempted on a closed cache.
	ErrClosed = errors.New("cache: closed")
)
