package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adness/starburst/pkg/cookie"
)

const testSecret = "this-is-a-32-byte-or-longer-key!"

func TestNewSigner(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		secret string
		err    error
	}{
		{name: "empty", secret: "", err: cookie.ErrNoSecret},
		{name: "short", secret: "adness", err: cookie.ErrBadSecret},
		{name: "valid", secret: testSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := cookie.NewSigner(tt.secret)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				require.Nil(t, s)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, s)
		})
	}
}

func TestSigner_SignUnsign(t *testing.T) {
	t.Parallel()

	s, err := cookie.NewSigner(testSecret)
	require.NoError(t, err)

	raw := s.Sign("session-id")
	require.True(t, cookie.IsSigned(raw))

	value, err := s.Unsign(raw)
	require.NoError(t, err)
	require.Equal(t, "session-id", value)

	t.Run("plain value", func(t *testing.T) {
		t.Parallel()
		_, err := s.Unsign("session-id")
		require.ErrorIs(t, err, cookie.ErrNotSigned)
	})

	t.Run("tampered value", func(t *testing.T) {
		t.Parallel()
		_, sig, _ := strings.Cut(raw, ".")
		_, err := s.Unsign("s:b3RoZXI." + sig)
		require.ErrorIs(t, err, cookie.ErrBadSig)
	})

	t.Run("other secret", func(t *testing.T) {
		t.Parallel()
		other, err := cookie.NewSigner(strings.Repeat("x", 32))
		require.NoError(t, err)
		_, err = other.Unsign(raw)
		require.ErrorIs(t, err, cookie.ErrBadSig)
	})

	t.Run("missing signature", func(t *testing.T) {
		t.Parallel()
		_, err := s.Unsign("s:abc")
		require.ErrorIs(t, err, cookie.ErrBadSig)
	})
}

func TestManager(t *testing.T) {
	t.Parallel()

	m, err := cookie.New(testSecret, cookie.WithSecure(false), cookie.WithSameSite(http.SameSiteLaxMode))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	m.SetSigned(w, "sb.sid", "abc", 86400)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	require.Equal(t, "sb.sid", c.Name)
	require.Equal(t, 86400, c.MaxAge)
	require.False(t, c.Secure)
	require.True(t, c.HttpOnly)
	require.Equal(t, "/", c.Path)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(c)
	got, err := m.GetSigned(r, "sb.sid")
	require.NoError(t, err)
	require.Equal(t, "abc", got)

	_, err = m.GetSigned(httptest.NewRequest(http.MethodGet, "/", nil), "sb.sid")
	require.ErrorIs(t, err, cookie.ErrNotFound)

	w = httptest.NewRecorder()
	m.Delete(w, "sb.sid")
	require.Equal(t, -1, w.Result().Cookies()[0].MaxAge)

	_, err = cookie.New("short")
	require.ErrorIs(t, err, cookie.ErrBadSecret)
}
