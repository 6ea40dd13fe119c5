package internal

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "plain error", err: errors.New("boom"), want: http.StatusInternalServerError},
		{name: "http error", err: ErrNotFound("missing"), want: http.StatusNotFound},
		{name: "wrapped http error", err: fmt.Errorf("load: %w", ErrNotImplemented("soon")), want: http.StatusNotImplemented},
		{name: "step error", err: &StepError{Step: "router", Err: ErrBadRequest("bad")}, want: http.StatusBadRequest},
		{name: "non-error code", err: NewHTTPError(http.StatusFound, "moved"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}

func TestHTTPError(t *testing.T) {
	t.Parallel()

	cause := errors.New("db down")
	err := ErrInternal("", WithError(cause))

	require.Equal(t, "Internal Server Error", err.Error())
	require.ErrorIs(t, err, cause)
	require.Equal(t, "Internal Server Error", err.StatusText())
	require.Nil(t, AsHTTPError(cause))
}

func TestPanicError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("nil map")
	require.ErrorIs(t, &PanicError{Value: cause}, cause)
	require.Equal(t, "panic: oops", (&PanicError{Value: "oops"}).Error())
	require.NoError(t, (&PanicError{Value: 42}).Unwrap())
}
