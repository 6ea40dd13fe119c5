package internal

import (
	"context"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/adness/starburst/internal/repository"
	"github.com/adness/starburst/pkg/identity"
	"github.com/adness/starburst/pkg/session"
)

// BodyKind identifies a request body encoding.
type BodyKind uint8

const (
	BodyJSON BodyKind = 1 << iota
	BodyURLEncoded
	BodyMultipart
)

// AssetResolver maps a logical asset name to its public, fingerprinted path.
type AssetResolver interface {
	Path(name string) (string, bool)
}

// Context is the per-request state threaded through the pipeline.
// Exported fields are the derived values filled in by pipeline steps;
// a nil or empty field means the step that owns it has not run.
type Context struct {
	// Prefix is the browse prefix of the server-rendered views.
	Prefix string
	// Params holds the unescaped named segments of the matched route.
	Params map[string]string
	// Cookies holds every cookie of the request by name.
	Cookies map[string]string
	// SignedCookies holds the verified values of signed cookies.
	SignedCookies map[string]string
	// Form holds url-encoded and multipart fields.
	Form url.Values
	// Body holds a decoded JSON object body.
	Body map[string]any
	// Files holds multipart file parts.
	Files map[string][]*multipart.FileHeader

	Session  *session.Session
	Identity *identity.Identity
	Auth     identity.Provider
	Models   repository.Models
	Assets   AssetResolver

	RequestID      string
	OriginalMethod string

	request  *http.Request
	response *ResponseWriter
	logger   *slog.Logger
	sessions *SessionManager
	finish   []func()
	parsed   BodyKind
}

// NewContext creates the context for one request.
func NewContext(w *ResponseWriter, r *http.Request, logger *slog.Logger) *Context {
	return &Context{
		Params:         map[string]string{},
		Cookies:        map[string]string{},
		SignedCookies:  map[string]string{},
		Form:           url.Values{},
		OriginalMethod: r.Method,
		request:        r,
		response:       w,
		logger:         logger,
	}
}

func (c *Context) Request() *http.Request {
	return c.request
}

func (c *Context) Response() *ResponseWriter {
	return c.response
}

func (c *Context) Context() context.Context {
	return c.request.Context()
}

// Method returns the effective request method.
func (c *Context) Method() string {
	return c.request.Method
}

// SetMethod rewrites the effective request method.
func (c *Context) SetMethod(m string) {
	c.request.Method = m
}

// Path returns the request path.
func (c *Context) Path() string {
	return c.request.URL.Path
}

// Set stores a value in the request's context.Context.
func (c *Context) Set(key, val any) {
	c.request = c.request.WithContext(context.WithValue(c.request.Context(), key, val))
}

// Get reads a value stored with Set.
func (c *Context) Get(key any) any {
	return c.request.Context().Value(key)
}

func (c *Context) Param(name string) string {
	return c.Params[name]
}

func (c *Context) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

// Field returns a body field from the url-encoded or JSON body.
func (c *Context) Field(name string) string {
	if v := c.Form.Get(name); v != "" {
		return v
	}
	if s, ok := c.Body[name].(string); ok {
		return s
	}
	return ""
}

// BodyParsed reports whether a body of kind k has already been parsed.
func (c *Context) BodyParsed(k BodyKind) bool {
	return c.parsed&k != 0
}

// MarkBodyParsed records that a body of kind k was parsed.
func (c *Context) MarkBodyParsed(k BodyKind) {
	c.parsed |= k
}

func (c *Context) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *Context) SetHeader(name, value string) {
	c.response.Header().Set(name, value)
}

func (c *Context) Written() bool {
	return c.response.Written()
}

func (c *Context) JSON(code int, v any) error {
	c.response.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *Context) String(code int, s string) error {
	c.response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.response.WriteHeader(code)
	_, err := c.response.Write([]byte(s))
	return err
}

func (c *Context) NoContent(code int) error {
	c.response.WriteHeader(code)
	return nil
}

// Redirect answers with a Location header and no body.
func (c *Context) Redirect(code int, url string) error {
	c.response.Header().Set("Location", url)
	c.response.WriteHeader(code)
	return nil
}

// Render renders a component with the given status code.
func (c *Context) Render(code int, component Component) error {
	c.response.Header().Set("Content-Type", "text/html; charset=utf-8")
	c.response.WriteHeader(code)
	return component.Render(c.Context(), c.response)
}

func (c *Context) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(code, message, opts...)
}

// Logger returns the request logger.
func (c *Context) Logger() *slog.Logger {
	return c.logger
}

// OnFinish registers fn to run after the pipeline completes.
// Hooks run in registration order.
func (c *Context) OnFinish(fn func()) {
	c.finish = append(c.finish, fn)
}

func (c *Context) runFinish() {
	for _, fn := range c.finish {
		fn()
	}
}

// AssetPath returns the public path of a manifest asset, or name itself when
// the asset is unknown.
func (c *Context) AssetPath(name string) string {
	if c.Assets != nil {
		if p, ok := c.Assets.Path(name); ok {
			return p
		}
	}
	return name
}

// IsAuthenticated reports whether an identity is attached to the request.
func (c *Context) IsAuthenticated() bool {
	return c.Identity != nil
}

// Login attaches ident to the request and the session, rotating the session id.
func (c *Context) Login(ident *identity.Identity) error {
	if c.sessions == nil || c.Session == nil {
		return ErrNoSession
	}
	renewed, err := c.sessions.Rotate(c.Context(), c.Session)
	if err != nil {
		return err
	}
	renewed.SetUser(ident.ID)
	c.Session = renewed
	c.Identity = ident
	return nil
}

// Logout detaches the identity from the request and the session.
func (c *Context) Logout() {
	c.Identity = nil
	if c.Session != nil {
		c.Session.ClearUser()
	}
}
