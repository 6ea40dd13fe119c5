package middlewares

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/adness/starburst/internal"
	"github.com/adness/starburst/pkg/logger"
)

// requestIDKey is the context key for storing the request ID.
type requestIDKey struct{}

// DefaultRequestIDHeaders are the headers checked (in order) for an existing request ID.
var DefaultRequestIDHeaders = []string{"X-Request-ID", "X-Correlation-ID"}

// RequestIDHeader is the response header carrying the request ID.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLen bounds client supplied ids.
const maxRequestIDLen = 128

// assignRequestID takes the id from the request headers or generates one,
// stores it on c and echoes it in the response.
func assignRequestID(c *internal.Context, headers []string, gen func() string) string {
	var reqID string
	for _, header := range headers {
		if v := c.Header(header); v != "" && len(v) <= maxRequestIDLen {
			reqID = v
			break
		}
	}
	if reqID == "" {
		reqID = gen()
	}

	c.RequestID = reqID
	c.Set(requestIDKey{}, reqID)
	c.SetHeader(RequestIDHeader, reqID)
	return reqID
}

func newRequestID() string {
	return uuid.NewString()
}

// GetRequestID extracts the request ID from ctx.
// Returns an empty string if no request ID is set.
func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// RequestIDExtractor returns a ContextExtractor for logger.WithExtractors.
// It adds "request_id" to every record logged with the request context.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v := GetRequestID(ctx); v != "" {
			return slog.String("request_id", v), true
		}
		return slog.Attr{}, false
	}
}
