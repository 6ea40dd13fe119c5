package middlewares

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/adness/starburst/internal"
)

// Body size limits.
const (
	DefaultBodyLimit      int64 = 1 << 20  // 1MB
	DefaultMultipartLimit int64 = 32 << 20 // 32MB
)

// BodyConfig configures the body parsing steps.
type BodyConfig struct {
	Limit          int64 // max url-encoded or JSON body size
	MultipartLimit int64 // max multipart body size kept in memory
}

// BodyOption configures BodyConfig.
type BodyOption func(*BodyConfig)

// WithBodyLimit sets the maximum url-encoded and JSON body size.
func WithBodyLimit(n int64) BodyOption {
	return func(cfg *BodyConfig) {
		if n > 0 {
			cfg.Limit = n
		}
	}
}

// WithMultipartLimit sets the multipart memory limit.
func WithMultipartLimit(n int64) BodyOption {
	return func(cfg *BodyConfig) {
		if n > 0 {
			cfg.MultipartLimit = n
		}
	}
}

func newBodyConfig(opts []BodyOption) *BodyConfig {
	cfg := &BodyConfig{
		Limit:          DefaultBodyLimit,
		MultipartLimit: DefaultMultipartLimit,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Body parses url-encoded, JSON and multipart request bodies.
// Malformed bodies fail the request with 400, oversized ones with 413.
func Body(opts ...BodyOption) internal.Step {
	cfg := newBodyConfig(opts)
	return internal.Step{
		Name: StepBody,
		Run: func(c *internal.Context) (internal.Signal, error) {
			var err error
			switch bodyKind(c.Request()) {
			case internal.BodyJSON:
				err = parseJSON(c, cfg.Limit)
			case internal.BodyURLEncoded:
				err = parseURLEncoded(c, cfg.Limit)
			case internal.BodyMultipart:
				err = parseMultipart(c, cfg.MultipartLimit)
			}
			if err != nil {
				return internal.Fail, err
			}
			return internal.Continue, nil
		},
	}
}

// JSON parses a JSON body unless it was already parsed.
func JSON(opts ...BodyOption) internal.Step {
	cfg := newBodyConfig(opts)
	return internal.Step{
		Name: StepJSON,
		Run: func(c *internal.Context) (internal.Signal, error) {
			if bodyKind(c.Request()) != internal.BodyJSON {
				return internal.Continue, nil
			}
			if err := parseJSON(c, cfg.Limit); err != nil {
				return internal.Fail, err
			}
			return internal.Continue, nil
		},
	}
}

// URLEncoded parses a url-encoded body unless it was already parsed.
func URLEncoded(opts ...BodyOption) internal.Step {
	cfg := newBodyConfig(opts)
	return internal.Step{
		Name: StepURLEncoded,
		Run: func(c *internal.Context) (internal.Signal, error) {
			if bodyKind(c.Request()) != internal.BodyURLEncoded {
				return internal.Continue, nil
			}
			if err := parseURLEncoded(c, cfg.Limit); err != nil {
				return internal.Fail, err
			}
			return internal.Continue, nil
		},
	}
}

func bodyKind(r *http.Request) internal.BodyKind {
	if r.Body == nil || r.Body == http.NoBody {
		return 0
	}
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return 0
	}
	switch mt {
	case "application/json":
		return internal.BodyJSON
	case "application/x-www-form-urlencoded":
		return internal.BodyURLEncoded
	case "multipart/form-data":
		return internal.BodyMultipart
	}
	return 0
}

func parseJSON(c *internal.Context, limit int64) error {
	if c.BodyParsed(internal.BodyJSON) {
		return nil
	}
	c.MarkBodyParsed(internal.BodyJSON)

	data, err := readBody(c, limit)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}

	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil {
		return internal.ErrBadRequest("invalid JSON body", internal.WithError(err))
	}
	c.Body = body
	return nil
}

func parseURLEncoded(c *internal.Context, limit int64) error {
	if c.BodyParsed(internal.BodyURLEncoded) {
		return nil
	}
	c.MarkBodyParsed(internal.BodyURLEncoded)

	data, err := readBody(c, limit)
	if err != nil {
		return err
	}
	values, err := url.ParseQuery(string(data))
	if err != nil {
		return internal.ErrBadRequest("invalid form body", internal.WithError(err))
	}
	for k, vs := range values {
		for _, v := range vs {
			c.Form.Add(k, v)
		}
	}
	return nil
}

func parseMultipart(c *internal.Context, limit int64) error {
	if c.BodyParsed(internal.BodyMultipart) {
		return nil
	}
	c.MarkBodyParsed(internal.BodyMultipart)

	r := c.Request()
	if err := r.ParseMultipartForm(limit); err != nil {
		return internal.ErrBadRequest("invalid multipart body", internal.WithError(err))
	}
	for k, vs := range r.MultipartForm.Value {
		for _, v := range vs {
			c.Form.Add(k, v)
		}
	}
	c.Files = r.MultipartForm.File
	c.OnFinish(func() {
		_ = r.MultipartForm.RemoveAll()
	})
	return nil
}

func readBody(c *internal.Context, limit int64) ([]byte, error) {
	r := c.Request()
	data, err := io.ReadAll(http.MaxBytesReader(c.Response(), r.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, internal.NewHTTPError(http.StatusRequestEntityTooLarge, "request body too large", internal.WithError(err))
		}
		return nil, internal.ErrBadRequest("unreadable body", internal.WithError(err))
	}
	return data, nil
}
