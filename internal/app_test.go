package internal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestApp_PipelineMount(t *testing.T) {
	t.Parallel()

	table := BuildRoutes(func(r Router) {
		r.GET("/", func(c *Context) error { return c.String(http.StatusOK, "index") })
		r.GET("/sb/qr/{qrString}", func(c *Context) error { return c.String(http.StatusOK, c.Param("qrString")) })
	})
	app := New(WithSteps(table.Step()), WithRoutes(table))

	require.Equal(t, []string{StepRouter}, app.StepNames())
	require.Len(t, app.Routes(), 2)

	tests := []struct {
		method string
		target string
		code   int
		body   string
	}{
		{method: http.MethodGet, target: "/", code: http.StatusOK, body: "index"},
		{method: http.MethodGet, target: "/sb/qr/hello%20world", code: http.StatusOK, body: "hello world"},
		{method: http.MethodPost, target: "/", code: http.StatusNotFound, body: "Cannot POST /"},
		{method: http.MethodGet, target: "/nope", code: http.StatusNotFound, body: "Cannot GET /nope"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			app.ServeHTTP(w, httptest.NewRequest(tt.method, tt.target, nil))
			require.Equal(t, tt.code, w.Code)
			require.Equal(t, tt.body, w.Body.String())
		})
	}
}

func TestApp_Health(t *testing.T) {
	t.Parallel()

	app := New(WithHealthChecks(
		WithReadinessCheck("redis", func(context.Context) error { return nil }),
		WithReadinessCheck("postgres", func(context.Context) error { return errors.New("refused") }),
	))

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "OK", w.Body.String())

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	req.Header.Set("Accept", "application/json")
	app.ServeHTTP(w, req)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp healthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Equal(t, statusUnhealthy, resp.Status)
	require.Equal(t, statusHealthy, resp.Checks["redis"].Status)
	require.Equal(t, "refused", resp.Checks["postgres"].Error)
}

func TestApp_HealthDisabled(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	New().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestApp_TrustProxy(t *testing.T) {
	t.Parallel()

	var remote string
	app := New(WithTrustProxy(true), WithSteps(Step{
		Name: "capture",
		Run: func(c *Context) (Signal, error) {
			remote = c.Request().RemoteAddr
			return Respond, c.NoContent(http.StatusNoContent)
		},
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", "203.0.113.7")
	app.ServeHTTP(httptest.NewRecorder(), req)
	require.Equal(t, "203.0.113.7", remote)
}

func TestApp_RunShutsDownOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	hookRan := make(chan struct{})

	done := make(chan error, 1)
	go func() {
		done <- New().Run("127.0.0.1:0",
			WithContext(ctx),
			ShutdownTimeout(time.Second),
			ShutdownHook(func(context.Context) error {
				close(hookRan)
				return nil
			}),
		)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
	<-hookRan
}
