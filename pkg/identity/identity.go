package identity

import (
	"context"
	"errors"
)

var (
	ErrInvalidCredentials = errors.New("identity: invalid credentials")
	ErrUnknownUser        = errors.New("identity: unknown user")
	ErrNoProvider         = errors.New("identity: no provider attached")
)

// Identity is the authenticated principal of a request.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Admin    bool   `json:"admin"`
}

// Provider authenticates credentials and resolves stored identities.
type Provider interface {
	// Authenticate returns ErrInvalidCredentials when the username is unknown
	// or the password does not match.
	Authenticate(ctx context.Context, username, password string) (*Identity, error)
	// Resolve returns ErrUnknownUser when no user has the given id.
	Resolve(ctx context.Context, id string) (*Identity, error)
}

// User is a stored account.
type User struct {
	Identity
	PasswordHash []byte
}

// UserStore looks up accounts. Lookups for missing users return ErrUnknownUser.
type UserStore interface {
	UserByUsername(ctx context.Context, username string) (*User, error)
	UserByID(ctx context.Context, id string) (*User, error)
}
