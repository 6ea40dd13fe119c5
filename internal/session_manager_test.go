package internal

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adness/starburst/pkg/cookie"
	"github.com/adness/starburst/pkg/logger"
	"github.com/adness/starburst/pkg/session"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type failingStore struct {
	session.Store
	err error
}

func (s failingStore) Get(context.Context, string) (*session.Session, error) {
	return nil, s.err
}

func newTestSessions(t *testing.T, store session.Store) *SessionManager {
	t.Helper()
	cookies, err := cookie.New(testSecret, cookie.WithSecure(false))
	require.NoError(t, err)
	return NewSessionManager(store, cookies)
}

func serveWithSession(t *testing.T, sm *SessionManager, req *http.Request, fn func(c *Context)) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c := NewContext(NewResponseWriter(w), req, logger.NewNope())
	require.NoError(t, sm.Attach(c))
	fn(c)
	return w
}

func TestSessionManager_Cookie(t *testing.T) {
	t.Parallel()

	sm := newTestSessions(t, session.NewMemoryStore())
	w := serveWithSession(t, sm, httptest.NewRequest(http.MethodGet, "/", nil), func(c *Context) {
		_ = c.NoContent(http.StatusNoContent)
	})

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	require.Equal(t, "sb.sid", c.Name)
	require.Equal(t, int64(86_400_000), int64(c.MaxAge)*1000)
	require.False(t, c.Secure)
	require.True(t, c.HttpOnly)
	require.Equal(t, http.SameSiteLaxMode, c.SameSite)
	require.Equal(t, "/", c.Path)
	require.True(t, cookie.IsSigned(c.Value))
}

func TestSessionManager_PersistsAcrossRequests(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()
	sm := newTestSessions(t, store)

	var firstID string
	w := serveWithSession(t, sm, httptest.NewRequest(http.MethodGet, "/", nil), func(c *Context) {
		firstID = c.Session.ID
		c.Session.SetValue("visits", "1")
		_ = c.NoContent(http.StatusOK)
	})
	require.Equal(t, 1, store.Len())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(w.Result().Cookies()[0])

	w = serveWithSession(t, sm, req, func(c *Context) {
		require.Equal(t, firstID, c.Session.ID)
		require.Equal(t, "1", session.ValueOr(c.Session, "visits", ""))
		require.False(t, c.Session.IsNew())
		_ = c.NoContent(http.StatusOK)
	})
	require.Empty(t, w.Result().Cookies(), "unchanged session must not be re-sent")
}

func TestSessionManager_BadCookieStartsFresh(t *testing.T) {
	t.Parallel()

	sm := newTestSessions(t, session.NewMemoryStore())

	tests := []struct {
		name  string
		value string
	}{
		{name: "unsigned", value: "plain-id"},
		{name: "tampered", value: "s:YWJj.AAAA"},
		{name: "unknown session", value: mustSign(t, "not-in-store")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(&http.Cookie{Name: "sb.sid", Value: tt.value})
			serveWithSession(t, sm, req, func(c *Context) {
				require.True(t, c.Session.IsNew())
				require.NotEqual(t, "not-in-store", c.Session.ID)
			})
		})
	}
}

func TestSessionManager_StoreFailure(t *testing.T) {
	t.Parallel()

	boom := errors.Join(session.ErrStoreUnavailable, errors.New("dial tcp: refused"))
	sm := newTestSessions(t, failingStore{err: boom})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sb.sid", Value: mustSign(t, "sid")})
	c := NewContext(NewResponseWriter(httptest.NewRecorder()), req, logger.NewNope())

	require.ErrorIs(t, sm.Attach(c), session.ErrStoreUnavailable)
	require.Nil(t, c.Session)
}

func TestSessionManager_Rotate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore()
	sm := newTestSessions(t, store)

	old := sm.New()
	old.SetValue("k", "v")
	require.NoError(t, sm.Save(ctx, httptest.NewRecorder(), old))

	renewed, err := sm.Rotate(ctx, old)
	require.NoError(t, err)
	require.NotEqual(t, old.ID, renewed.ID)
	require.Equal(t, "v", session.ValueOr(renewed, "k", ""))

	_, err = store.Get(ctx, old.ID)
	require.ErrorIs(t, err, session.ErrNotFound)
}

func TestContext_LoginLogout(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()
	sm := newTestSessions(t, store)

	w := serveWithSession(t, sm, httptest.NewRequest(http.MethodPost, "/login", nil), func(c *Context) {
		before := c.Session.ID
		require.NoError(t, c.Login(&identityStub))
		require.NotEqual(t, before, c.Session.ID)
		require.True(t, c.IsAuthenticated())
		_ = c.Redirect(http.StatusFound, "/sb/")
	})

	sid, err := sm.cookies.Signer().Unsign(w.Result().Cookies()[0].Value)
	require.NoError(t, err)
	stored, err := store.Get(context.Background(), sid)
	require.NoError(t, err)
	require.Equal(t, identityStub.ID, stored.UserID)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(w.Result().Cookies()[0])
	serveWithSession(t, sm, req, func(c *Context) {
		c.Logout()
		require.False(t, c.IsAuthenticated())
		_ = c.Redirect(http.StatusFound, "/sb/")
	})

	stored, err = store.Get(context.Background(), sid)
	require.NoError(t, err)
	require.False(t, stored.IsAuthenticated())
}

func TestContext_LoginWithoutSession(t *testing.T) {
	t.Parallel()

	c := NewContext(NewResponseWriter(httptest.NewRecorder()), httptest.NewRequest(http.MethodPost, "/login", nil), logger.NewNope())
	require.ErrorIs(t, c.Login(&identityStub), ErrNoSession)
}

func mustSign(t *testing.T, v string) string {
	t.Helper()
	s, err := cookie.NewSigner(testSecret)
	require.NoError(t, err)
	return s.Sign(v)
}
