package cookie

import "errors"

// Errors.
var (
	ErrNotFound  = errors.New("cookie: not found")
	ErrNoSecret  = errors.New("cookie: secret required")
	ErrBadSecret = errors.New("cookie: secret must be 32+ bytes")
	ErrNotSigned = errors.New("cookie: value is not signed")
	ErrBadSig    = errors.New("cookie: invalid signature")
)
