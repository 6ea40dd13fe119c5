package internal

import (
	"context"
	"errors"
	"io"
)

// HandlerFunc is the signature for route handlers.
// Returning nil means a response was written. Returning ErrNext hands the
// request to the next matching route, and after the last one, to the steps
// that follow the router. Any other error is a failure.
type HandlerFunc func(c *Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
// Middleware can inspect the request, short-circuit processing,
// or wrap the response.
//
// Example:
//
//	func AdminOnly(next internal.HandlerFunc) internal.HandlerFunc {
//	    return func(c *internal.Context) error {
//	        if c.Identity == nil || !c.Identity.Admin {
//	            return c.Redirect(http.StatusFound, "/sb/")
//	        }
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrNext signals that a handler did not handle the request.
var ErrNext = errors.New("route: not handled")

// Component is the interface for renderable templates.
// It matches templ.Component.
type Component interface {
	Render(ctx context.Context, w io.Writer) error
}
