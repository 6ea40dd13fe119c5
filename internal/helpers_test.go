package internal

import (
	"net/http"
	"net/http/httptest"

	"github.com/adness/starburst/pkg/identity"
	"github.com/adness/starburst/pkg/logger"
)

var identityStub = identity.Identity{ID: "u1", Username: "alice", Name: "Alice"}

// newTestContext builds a context over a recorder.
func newTestContext(method, target string) (*Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(method, target, nil)
	return NewContext(NewResponseWriter(w), r, logger.NewNope()), w
}

func respond(code int) HandlerFunc {
	return func(c *Context) error {
		return c.String(code, http.StatusText(code))
	}
}
