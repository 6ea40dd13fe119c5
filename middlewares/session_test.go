package middlewares_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/adness/starburst/internal"
	"github.com/adness/starburst/middlewares"
	"github.com/adness/starburst/pkg/identity"
	"github.com/adness/starburst/pkg/session"
)

func ok() internal.Step {
	return internal.Step{
		Name: "ok",
		Run: func(c *internal.Context) (internal.Signal, error) {
			return internal.Respond, c.String(http.StatusOK, "ok")
		},
	}
}

type stubProvider struct {
	users map[string]*identity.Identity
	err   error
}

func (p stubProvider) Authenticate(context.Context, string, string) (*identity.Identity, error) {
	return nil, identity.ErrInvalidCredentials
}

func (p stubProvider) Resolve(_ context.Context, id string) (*identity.Identity, error) {
	if p.err != nil {
		return nil, p.err
	}
	if u, ok := p.users[id]; ok {
		return u, nil
	}
	return nil, identity.ErrUnknownUser
}

func sessionSteps(t *testing.T, store session.Store, p identity.Provider, seen **internal.Context) []internal.Step {
	t.Helper()
	cookies := newCookies(t)
	sm := internal.NewSessionManager(store, cookies)
	return []internal.Step{
		middlewares.Cookies(cookies.Signer()),
		middlewares.Session(sm),
		middlewares.IdentityInit(p),
		middlewares.IdentitySession(),
		capture(seen),
		ok(),
	}
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == internal.DefaultSessionCookieName {
			return ck
		}
	}
	t.Fatalf("no %s cookie in response", internal.DefaultSessionCookieName)
	return nil
}

func TestSession_RoundTrip(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()
	var seen *internal.Context
	steps := sessionSteps(t, store, stubProvider{}, &seen)

	w := serve(httptest.NewRequest(http.MethodGet, "/sb", nil), steps)
	require.Equal(t, http.StatusOK, w.Code)
	ck := sessionCookie(t, w)
	require.Equal(t, 86400, ck.MaxAge)
	require.True(t, ck.HttpOnly)
	require.False(t, ck.Secure)
	require.Equal(t, "/", ck.Path)
	firstID := seen.Session.ID
	require.Equal(t, 1, store.Len())

	r := httptest.NewRequest(http.MethodGet, "/sb/rules", nil)
	r.AddCookie(ck)
	w = serve(r, steps)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, firstID, seen.Session.ID)
	require.False(t, seen.Session.IsNew())
	require.Empty(t, w.Result().Cookies(), "unchanged session is not re-sent")
}

func TestSession_TamperedCookieStartsFresh(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()
	var seen *internal.Context
	steps := sessionSteps(t, store, stubProvider{}, &seen)

	r := httptest.NewRequest(http.MethodGet, "/sb", nil)
	r.AddCookie(&http.Cookie{Name: internal.DefaultSessionCookieName, Value: "s:c2Vzcw.bm9wZQ"})
	w := serve(r, steps)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, store.Len())
	require.NotEqual(t, "sess", seen.Session.ID)
	sessionCookie(t, w)
}

type brokenStore struct{ session.Store }

var errStoreDown = errors.New("store down")

func (brokenStore) Get(context.Context, string) (*session.Session, error) {
	return nil, errStoreDown
}

func TestSession_StoreFailureFails(t *testing.T) {
	t.Parallel()

	cookies := newCookies(t)
	sm := internal.NewSessionManager(brokenStore{}, cookies)

	r := httptest.NewRequest(http.MethodGet, "/sb", nil)
	r.AddCookie(cookies.Cookie(internal.DefaultSessionCookieName, cookies.Signer().Sign("known"), 60))
	w := serve(r, []internal.Step{middlewares.Cookies(cookies.Signer()), middlewares.Session(sm), ok()})

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, http.StatusText(http.StatusInternalServerError), w.Body.String())
}

func TestIdentitySession(t *testing.T) {
	t.Parallel()

	alice := &identity.Identity{ID: "u1", Username: "alice"}

	signedIn := func(t *testing.T, store session.Store, userID string) *http.Cookie {
		t.Helper()
		sess := session.New("sess-"+userID, time.Now().Add(time.Hour))
		sess.SetUser(userID)
		require.NoError(t, store.Save(context.Background(), sess))
		return newCookies(t).Cookie(internal.DefaultSessionCookieName, newSigner(t).Sign(sess.ID), 3600)
	}

	t.Run("known user", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore()
		var seen *internal.Context
		steps := sessionSteps(t, store, stubProvider{users: map[string]*identity.Identity{"u1": alice}}, &seen)

		r := httptest.NewRequest(http.MethodGet, "/sb", nil)
		r.AddCookie(signedIn(t, store, "u1"))
		w := serve(r, steps)

		require.Equal(t, http.StatusOK, w.Code)
		require.True(t, seen.IsAuthenticated())
		require.Equal(t, alice, seen.Identity)
		require.NotNil(t, seen.Auth)
	})

	t.Run("deleted user is dropped", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore()
		var seen *internal.Context
		steps := sessionSteps(t, store, stubProvider{}, &seen)

		r := httptest.NewRequest(http.MethodGet, "/sb", nil)
		r.AddCookie(signedIn(t, store, "gone"))
		w := serve(r, steps)

		require.Equal(t, http.StatusOK, w.Code)
		require.False(t, seen.IsAuthenticated())

		saved, err := store.Get(context.Background(), "sess-gone")
		require.NoError(t, err)
		require.Empty(t, saved.UserID)
	})

	t.Run("provider failure fails", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore()
		var seen *internal.Context
		steps := sessionSteps(t, store, stubProvider{err: errors.New("db down")}, &seen)

		r := httptest.NewRequest(http.MethodGet, "/sb", nil)
		r.AddCookie(signedIn(t, store, "u1"))
		w := serve(r, steps)

		require.Equal(t, http.StatusInternalServerError, w.Code)
		require.Nil(t, seen)
	})

	t.Run("anonymous session", func(t *testing.T) {
		t.Parallel()

		var seen *internal.Context
		steps := sessionSteps(t, session.NewMemoryStore(), stubProvider{}, &seen)

		w := serve(httptest.NewRequest(http.MethodGet, "/sb", nil), steps)
		require.Equal(t, http.StatusOK, w.Code)
		require.False(t, seen.IsAuthenticated())
	})
}
