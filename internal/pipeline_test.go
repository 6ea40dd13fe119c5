package internal

import (
	"bytes"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adness/starburst/pkg/logger"
)

func step(name string, sig Signal, err error) Step {
	return Step{Name: name, Run: func(*Context) (Signal, error) { return sig, err }}
}

func TestPipeline_Order(t *testing.T) {
	t.Parallel()

	var order []string
	rec := func(name string) Step {
		return Step{Name: name, Run: func(*Context) (Signal, error) {
			order = append(order, name)
			return Continue, nil
		}}
	}

	p := NewPipeline(logger.NewNope(), []Step{rec("a"), rec("b"), rec("c")})
	require.Equal(t, []string{"a", "b", "c"}, p.Names())

	c, w := newTestContext(http.MethodGet, "/missing")
	p.Serve(c)

	require.Equal(t, []string{"a", "b", "c"}, order)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Cannot GET /missing", w.Body.String())
}

func TestPipeline_RespondStops(t *testing.T) {
	t.Parallel()

	reached := false
	p := NewPipeline(logger.NewNope(), []Step{
		{Name: "answer", Run: func(c *Context) (Signal, error) {
			return Respond, c.String(http.StatusOK, "hi")
		}},
		{Name: "after", Run: func(*Context) (Signal, error) {
			reached = true
			return Continue, nil
		}},
	})

	c, w := newTestContext(http.MethodGet, "/")
	p.Serve(c)
	require.False(t, reached)
	require.Equal(t, "hi", w.Body.String())
}

func TestPipeline_WrittenStops(t *testing.T) {
	t.Parallel()

	reached := false
	p := NewPipeline(logger.NewNope(), []Step{
		{Name: "writes", Run: func(c *Context) (Signal, error) {
			return Continue, c.NoContent(http.StatusNoContent)
		}},
		{Name: "after", Run: func(*Context) (Signal, error) {
			reached = true
			return Continue, nil
		}},
	})

	c, w := newTestContext(http.MethodGet, "/")
	p.Serve(c)
	require.False(t, reached)
	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestPipeline_OpaqueFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		step Step
		code int
	}{
		{name: "error", step: step("boom", Continue, errors.New("secret detail")), code: http.StatusInternalServerError},
		{name: "fail signal", step: step("boom", Fail, nil), code: http.StatusInternalServerError},
		{name: "http error", step: step("boom", Fail, ErrNotImplemented("later")), code: http.StatusNotImplemented},
		{name: "panic", step: Step{Name: "boom", Run: func(*Context) (Signal, error) { panic("secret detail") }}, code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			p := NewPipeline(logger.New(logger.WithWriter(&buf)), []Step{tt.step})

			c, w := newTestContext(http.MethodGet, "/x")
			p.Serve(c)

			require.Equal(t, tt.code, w.Code)
			require.Equal(t, http.StatusText(tt.code), w.Body.String())
			require.NotContains(t, w.Body.String(), "secret")
			require.Contains(t, buf.String(), "request failed")
		})
	}
}

func TestPipeline_ErrorSteps(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")

	t.Run("respond handles the failure", func(t *testing.T) {
		t.Parallel()

		var got error
		p := NewPipeline(logger.NewNope(), []Step{step("boom", Fail, boom)}, ErrorStep{
			Name: "diagnostic",
			Run: func(c *Context, err error) (Signal, error) {
				got = err
				return Respond, c.String(http.StatusInternalServerError, "diagnostic: "+err.Error())
			},
		})
		require.Equal(t, []string{"boom", "diagnostic"}, p.Names())

		c, w := newTestContext(http.MethodGet, "/")
		p.Serve(c)

		require.ErrorIs(t, got, boom)
		var se *StepError
		require.ErrorAs(t, got, &se)
		require.Equal(t, "boom", se.Step)
		require.Equal(t, "diagnostic: step boom: boom", w.Body.String())
	})

	t.Run("continue passes the failure on", func(t *testing.T) {
		t.Parallel()

		p := NewPipeline(logger.NewNope(), []Step{step("boom", Fail, boom)}, ErrorStep{
			Name: "observer",
			Run:  func(*Context, error) (Signal, error) { return Continue, nil },
		})

		c, w := newTestContext(http.MethodGet, "/")
		p.Serve(c)
		require.Equal(t, http.StatusInternalServerError, w.Code)
		require.Equal(t, "Internal Server Error", w.Body.String())
	})

	t.Run("panicking error step falls back to opaque", func(t *testing.T) {
		t.Parallel()

		p := NewPipeline(logger.NewNope(), []Step{step("boom", Fail, boom)}, ErrorStep{
			Name: "broken",
			Run:  func(*Context, error) (Signal, error) { panic("renderer") },
		})

		c, w := newTestContext(http.MethodGet, "/")
		p.Serve(c)
		require.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestPipeline_OnFinish(t *testing.T) {
	t.Parallel()

	var status int
	p := NewPipeline(logger.NewNope(), []Step{
		{Name: "log", Run: func(c *Context) (Signal, error) {
			c.OnFinish(func() { status = c.Response().Status() })
			return Continue, nil
		}},
		step("boom", Fail, errors.New("boom")),
	})

	c, _ := newTestContext(http.MethodGet, "/")
	p.Serve(c)
	require.Equal(t, http.StatusInternalServerError, status)
}

func TestNewPipeline_Validation(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		NewPipeline(logger.NewNope(), []Step{step("a", Continue, nil), step("a", Continue, nil)})
	})
	require.Panics(t, func() {
		NewPipeline(logger.NewNope(), []Step{{Name: "nil run"}})
	})
}
