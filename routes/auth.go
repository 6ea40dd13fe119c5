package routes

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/adness/starburst/internal"
	"github.com/adness/starburst/pkg/identity"
)

// Login checks the username and password form fields with the local
// strategy. Bad credentials redirect to "/"; a successful login rotates the
// session and redirects to the browse root.
func Login(c *internal.Context) error {
	if c.Auth == nil {
		return identity.ErrNoProvider
	}

	ident, err := c.Auth.Authenticate(c.Context(), c.Field("username"), c.Field("password"))
	switch {
	case errors.Is(err, identity.ErrInvalidCredentials), errors.Is(err, identity.ErrUnknownUser):
		c.Logger().InfoContext(c.Context(), "login failed", slog.String("username", c.Field("username")))
		return c.Redirect(http.StatusFound, "/")
	case err != nil:
		return err
	}

	if err := c.Login(ident); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, Browse+"/")
}

// Logout drops the identity from the request and the session.
func Logout(c *internal.Context) error {
	c.Logout()
	return c.Redirect(http.StatusFound, Browse+"/")
}
