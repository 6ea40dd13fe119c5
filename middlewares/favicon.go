package middlewares

import (
	"bytes"
	"crypto/md5"
	_ "embed"
	"encoding/hex"
	"net/http"
	"strconv"
	"time"

	"github.com/adness/starburst/internal"
)

//go:embed favicon.ico
var defaultFavicon []byte

// FaviconPath is the path answered by the favicon step.
const FaviconPath = "/favicon.ico"

// DefaultFaviconMaxAge is the browser cache lifetime of the icon.
const DefaultFaviconMaxAge = 24 * time.Hour

// FaviconOption configures the favicon step.
type FaviconOption func(*faviconConfig)

type faviconConfig struct {
	icon   []byte
	maxAge time.Duration
}

// WithFaviconIcon replaces the embedded icon.
func WithFaviconIcon(icon []byte) FaviconOption {
	return func(cfg *faviconConfig) {
		if len(icon) > 0 {
			cfg.icon = icon
		}
	}
}

// WithFaviconMaxAge sets the Cache-Control max-age of the icon.
func WithFaviconMaxAge(d time.Duration) FaviconOption {
	return func(cfg *faviconConfig) {
		if d >= 0 {
			cfg.maxAge = d
		}
	}
}

// Favicon answers /favicon.ico from memory. GET and HEAD get the icon with
// cache headers and an ETag. OPTIONS gets 200 and other methods 405, both
// with Allow.
func Favicon(opts ...FaviconOption) internal.Step {
	cfg := &faviconConfig{icon: defaultFavicon, maxAge: DefaultFaviconMaxAge}
	for _, opt := range opts {
		opt(cfg)
	}

	sum := md5.Sum(cfg.icon)
	etag := `"` + hex.EncodeToString(sum[:]) + `"`
	cacheControl := "public, max-age=" + strconv.Itoa(int(cfg.maxAge/time.Second))
	const allow = "GET, HEAD, OPTIONS"

	return internal.Step{
		Name: StepFavicon,
		Run: func(c *internal.Context) (internal.Signal, error) {
			if c.Path() != FaviconPath {
				return internal.Continue, nil
			}

			switch c.Method() {
			case http.MethodGet, http.MethodHead:
			case http.MethodOptions:
				c.SetHeader("Allow", allow)
				return internal.Respond, c.NoContent(http.StatusOK)
			default:
				c.SetHeader("Allow", allow)
				return internal.Respond, c.NoContent(http.StatusMethodNotAllowed)
			}

			c.SetHeader("Content-Type", "image/x-icon")
			c.SetHeader("Cache-Control", cacheControl)
			c.SetHeader("ETag", etag)
			http.ServeContent(c.Response(), c.Request(), "favicon.ico", time.Time{}, bytes.NewReader(cfg.icon))
			return internal.Respond, nil
		},
	}
}
