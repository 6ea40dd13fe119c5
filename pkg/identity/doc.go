// Package identity authenticates users and resolves the user behind a session.
//
// [Local] checks a username and password against bcrypt hashes held by a
// [UserStore]:
//
//	p := identity.NewLocal(store)
//	id, err := p.Authenticate(ctx, "alice", "secret")
//	if errors.Is(err, identity.ErrInvalidCredentials) {
//	    // wrong username or password
//	}
package identity
