package internal

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/adness/starburst/pkg/cookie"
	"github.com/adness/starburst/pkg/session"
)

// Default session configuration.
const (
	DefaultSessionCookieName = "sb.sid"
	DefaultSessionMaxAge     = 24 * time.Hour
)

// SessionManager loads sessions by their signed cookie and persists them
// right before the response is written.
type SessionManager struct {
	store      session.Store
	cookies    *cookie.Manager
	logger     *slog.Logger
	newID      func() string
	cookieName string
	maxAge     time.Duration
}

// SessionOption configures the SessionManager.
type SessionOption func(*SessionManager)

// NewSessionManager creates a SessionManager. Cookie attributes (Secure,
// HttpOnly, SameSite, path) come from cookies.
func NewSessionManager(store session.Store, cookies *cookie.Manager, opts ...SessionOption) *SessionManager {
	sm := &SessionManager{
		store:      store,
		cookies:    cookies,
		logger:     slog.New(slog.DiscardHandler),
		newID:      uuid.NewString,
		cookieName: DefaultSessionCookieName,
		maxAge:     DefaultSessionMaxAge,
	}
	for _, opt := range opts {
		opt(sm)
	}
	return sm
}

// WithSessionCookieName sets the session cookie name.
func WithSessionCookieName(name string) SessionOption {
	return func(sm *SessionManager) {
		if name != "" {
			sm.cookieName = name
		}
	}
}

// WithSessionMaxAge sets the lifetime of the session and its cookie.
func WithSessionMaxAge(d time.Duration) SessionOption {
	return func(sm *SessionManager) {
		if d >= time.Second {
			sm.maxAge = d
		}
	}
}

// WithSessionIDGenerator replaces the session id generator.
func WithSessionIDGenerator(fn func() string) SessionOption {
	return func(sm *SessionManager) {
		if fn != nil {
			sm.newID = fn
		}
	}
}

// WithSessionLogger sets the logger used for save failures.
func WithSessionLogger(l *slog.Logger) SessionOption {
	return func(sm *SessionManager) {
		if l != nil {
			sm.logger = l
		}
	}
}

func (sm *SessionManager) CookieName() string {
	return sm.cookieName
}

func (sm *SessionManager) MaxAge() time.Duration {
	return sm.maxAge
}

func (sm *SessionManager) Store() session.Store {
	return sm.store
}

// Attach loads the session for c and registers the save hook.
// A missing, unsigned or tampered cookie, and a session the store no longer
// has, all start a fresh session. Other store errors are returned.
func (sm *SessionManager) Attach(c *Context) error {
	id, ok := c.SignedCookies[sm.cookieName]
	if !ok {
		v, err := sm.cookies.GetSigned(c.request, sm.cookieName)
		ok = err == nil
		id = v
	}

	sess, err := sm.load(c.Context(), id, ok)
	if err != nil {
		return err
	}

	c.Session = sess
	c.sessions = sm
	c.response.OnBeforeWrite(func() {
		if c.Session == nil {
			return
		}
		if err := sm.Save(c.Context(), c.response, c.Session); err != nil {
			sm.logger.ErrorContext(c.Context(), "failed to save session",
				slog.String("session_id", c.Session.ID),
				slog.String("error", err.Error()),
			)
		}
	})
	return nil
}

func (sm *SessionManager) load(ctx context.Context, id string, found bool) (*session.Session, error) {
	if !found || id == "" {
		return sm.New(), nil
	}

	sess, err := sm.store.Get(ctx, id)
	switch {
	case err == nil:
		return sess, nil
	case errors.Is(err, session.ErrNotFound), errors.Is(err, session.ErrExpired):
		return sm.New(), nil
	default:
		return nil, err
	}
}

// New creates an unsaved session.
func (sm *SessionManager) New() *session.Session {
	return session.New(sm.newID(), time.Now().Add(sm.maxAge))
}

// Save persists sess and sets its cookie when it is new or changed.
func (sm *SessionManager) Save(ctx context.Context, w http.ResponseWriter, sess *session.Session) error {
	if !sess.IsNew() && !sess.IsDirty() {
		return nil
	}

	sess.ExpiresAt = time.Now().Add(sm.maxAge)
	if err := sm.store.Save(ctx, sess); err != nil {
		return err
	}
	sm.cookies.SetSigned(w, sm.cookieName, sess.ID, int(sm.maxAge/time.Second))
	sess.ClearNew()
	sess.ClearDirty()
	return nil
}

// Rotate moves sess to a fresh id and drops the old record.
func (sm *SessionManager) Rotate(ctx context.Context, sess *session.Session) (*session.Session, error) {
	renewed := sess.Renew(sm.newID(), time.Now().Add(sm.maxAge))
	if !sess.IsNew() {
		if err := sm.store.Delete(ctx, sess.ID); err != nil {
			return nil, err
		}
	}
	return renewed, nil
}
