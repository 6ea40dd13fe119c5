package identity

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared on unknown usernames so both failure paths cost the
// same bcrypt check as a real account hashed by HashPassword.
var dummyHash = sync.OnceValue(func() []byte {
	hash, _ := bcrypt.GenerateFromPassword([]byte("starburst"), bcrypt.DefaultCost)
	return hash
})

// Local is the username/password strategy backed by bcrypt hashes.
type Local struct {
	users UserStore
}

// NewLocal creates a Local strategy over users.
func NewLocal(users UserStore) *Local {
	return &Local{users: users}
}

// Authenticate verifies the password of username.
func (l *Local) Authenticate(ctx context.Context, username, password string) (*Identity, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := l.users.UserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUnknownUser) {
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	id := u.Identity
	return &id, nil
}

// Resolve loads the identity stored under id.
func (l *Local) Resolve(ctx context.Context, id string) (*Identity, error) {
	u, err := l.users.UserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ident := u.Identity
	return &ident, nil
}

// HashPassword returns the bcrypt hash of password at the default cost.
func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}
