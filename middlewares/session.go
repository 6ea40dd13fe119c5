package middlewares

import (
	"errors"
	"log/slog"

	"github.com/adness/starburst/internal"
	"github.com/adness/starburst/pkg/identity"
)

// Session loads the request's session through sm. The session is saved,
// and its cookie set, right before the first byte of the response.
// Store failures other than a missing or expired session fail the request.
func Session(sm *internal.SessionManager) internal.Step {
	return internal.Step{
		Name: StepSession,
		Run: func(c *internal.Context) (internal.Signal, error) {
			if err := sm.Attach(c); err != nil {
				return internal.Fail, err
			}
			return internal.Continue, nil
		},
	}
}

// IdentityInit attaches the identity provider to every request.
func IdentityInit(p identity.Provider) internal.Step {
	return internal.Step{
		Name: StepIdentityInit,
		Run: func(c *internal.Context) (internal.Signal, error) {
			c.Auth = p
			return internal.Continue, nil
		},
	}
}

// IdentitySession resolves the user id stored in the session into
// Context.Identity. A user that no longer exists is dropped from the session
// and the request goes on unauthenticated.
func IdentitySession() internal.Step {
	return internal.Step{
		Name: StepIdentitySession,
		Run: func(c *internal.Context) (internal.Signal, error) {
			if c.Session == nil || !c.Session.IsAuthenticated() {
				return internal.Continue, nil
			}
			if c.Auth == nil {
				return internal.Fail, identity.ErrNoProvider
			}

			ident, err := c.Auth.Resolve(c.Context(), c.Session.UserID)
			switch {
			case errors.Is(err, identity.ErrUnknownUser):
				c.Logger().WarnContext(c.Context(), "session user no longer exists",
					slog.String("user_id", c.Session.UserID),
				)
				c.Session.ClearUser()
			case err != nil:
				return internal.Fail, err
			default:
				c.Identity = ident
			}
			return internal.Continue, nil
		},
	}
}
