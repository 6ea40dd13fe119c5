package middlewares_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adness/starburst/internal"
	"github.com/adness/starburst/middlewares"
	"github.com/adness/starburst/pkg/cookie"
	"github.com/adness/starburst/pkg/logger"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newContext(r *http.Request) (*internal.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	return internal.NewContext(internal.NewResponseWriter(w), r, logger.NewNope()), w
}

// runStep runs a single step and returns its outcome.
func runStep(t *testing.T, s internal.Step, c *internal.Context) internal.Signal {
	t.Helper()
	sig, err := s.Run(c)
	require.NoError(t, err)
	return sig
}

// serve runs steps as a pipeline for r.
func serve(r *http.Request, steps []internal.Step, errorSteps ...internal.ErrorStep) *httptest.ResponseRecorder {
	c, w := newContext(r)
	internal.NewPipeline(logger.NewNope(), steps, errorSteps...).Serve(c)
	return w
}

// capture is a terminal step that records the context it sees.
func capture(dst **internal.Context) internal.Step {
	return internal.Step{
		Name: "capture",
		Run: func(c *internal.Context) (internal.Signal, error) {
			*dst = c
			return internal.Continue, nil
		},
	}
}

func newSigner(t *testing.T) *cookie.Signer {
	t.Helper()
	s, err := cookie.NewSigner(testSecret)
	require.NoError(t, err)
	return s
}

func newCookies(t *testing.T) *cookie.Manager {
	t.Helper()
	m, err := cookie.New(testSecret)
	require.NoError(t, err)
	return m
}

func jsonLogger(buf *bytes.Buffer) *slog.Logger {
	return logger.New(
		logger.WithWriter(buf),
		logger.WithExtractors(middlewares.RequestIDExtractor()),
	)
}

func readAll(t *testing.T, r io.Reader) string {
	t.Helper()
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(b)
}
