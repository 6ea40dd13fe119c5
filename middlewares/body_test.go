package middlewares_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adness/starburst/internal"
	"github.com/adness/starburst/middlewares"
)

func TestBody(t *testing.T) {
	t.Parallel()

	t.Run("url-encoded", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("username=alice&password=hunter22"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		c, _ := newContext(r)

		require.Equal(t, internal.Continue, runStep(t, middlewares.Body(), c))
		require.Equal(t, "alice", c.Form.Get("username"))
		require.Equal(t, "hunter22", c.Field("password"))
		require.True(t, c.BodyParsed(internal.BodyURLEncoded))
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/api/bids", strings.NewReader(`{"amount":"12.50","auctionId":"a1"}`))
		r.Header.Set("Content-Type", "application/json; charset=utf-8")
		c, _ := newContext(r)

		require.Equal(t, internal.Continue, runStep(t, middlewares.Body(), c))
		require.Equal(t, "a1", c.Field("auctionId"))
		require.Equal(t, "12.50", c.Body["amount"])
	})

	t.Run("multipart", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("title", "Bike"))
		fw, err := mw.CreateFormFile("image", "bike.png")
		require.NoError(t, err)
		_, err = fw.Write([]byte("png"))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		r := httptest.NewRequest(http.MethodPost, "/sb/ads", &buf)
		r.Header.Set("Content-Type", mw.FormDataContentType())
		c, _ := newContext(r)

		require.Equal(t, internal.Continue, runStep(t, middlewares.Body(), c))
		require.Equal(t, "Bike", c.Form.Get("title"))
		require.Len(t, c.Files["image"], 1)
		require.Equal(t, "bike.png", c.Files["image"][0].Filename)
	})

	t.Run("other content types are left alone", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("hello"))
		r.Header.Set("Content-Type", "text/plain")
		c, _ := newContext(r)

		require.Equal(t, internal.Continue, runStep(t, middlewares.Body(), c))
		require.Empty(t, c.Form)
		require.Nil(t, c.Body)
	})
}

func TestBody_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		body        string
		opts        []middlewares.BodyOption
		wantCode    int
	}{
		{name: "bad json", contentType: "application/json", body: `{"amount":`, wantCode: http.StatusBadRequest},
		{name: "json array", contentType: "application/json", body: `[1,2]`, wantCode: http.StatusBadRequest},
		{name: "bad form", contentType: "application/x-www-form-urlencoded", body: "a=%zz", wantCode: http.StatusBadRequest},
		{
			name:        "too large",
			contentType: "application/json",
			body:        `{"title":"` + strings.Repeat("x", 64) + `"}`,
			opts:        []middlewares.BodyOption{middlewares.WithBodyLimit(16)},
			wantCode:    http.StatusRequestEntityTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodPost, "/api/ads", strings.NewReader(tt.body))
			r.Header.Set("Content-Type", tt.contentType)

			w := serve(r, []internal.Step{middlewares.Body(tt.opts...)})
			require.Equal(t, tt.wantCode, w.Code)
			require.Equal(t, http.StatusText(tt.wantCode), w.Body.String())
		})
	}
}

func TestJSONAndURLEncoded_Idempotent(t *testing.T) {
	t.Parallel()

	t.Run("json after body", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/api/bids", strings.NewReader(`{"amount":"3"}`))
		r.Header.Set("Content-Type", "application/json")
		c, _ := newContext(r)

		runStep(t, middlewares.Body(), c)
		require.Equal(t, internal.Continue, runStep(t, middlewares.JSON(), c))
		require.Equal(t, "3", c.Body["amount"])
	})

	t.Run("urlencoded after body", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/sb/bids", strings.NewReader("amount=3"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		c, _ := newContext(r)

		runStep(t, middlewares.Body(), c)
		require.Equal(t, internal.Continue, runStep(t, middlewares.URLEncoded(), c))
		require.Equal(t, []string{"3"}, c.Form["amount"])
	})

	t.Run("json alone", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/api/bids", strings.NewReader(`{"amount":"4"}`))
		r.Header.Set("Content-Type", "application/json")
		c, _ := newContext(r)

		require.Equal(t, internal.Continue, runStep(t, middlewares.JSON(), c))
		require.Equal(t, "4", c.Body["amount"])
		require.Equal(t, internal.Continue, runStep(t, middlewares.URLEncoded(), c))
		require.Empty(t, c.Form)
	})
}
