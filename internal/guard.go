package internal

import "net/http"

// RequireAuth lets authenticated requests through and redirects the others
// to prefix + "/" with an empty body.
func RequireAuth(prefix string) Middleware {
	target := prefix + "/"
	return func(next HandlerFunc) HandlerFunc {
		return func(c *Context) error {
			if c.IsAuthenticated() {
				return next(c)
			}
			return c.Redirect(http.StatusFound, target)
		}
	}
}
