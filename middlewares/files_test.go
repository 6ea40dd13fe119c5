package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/adness/starburst/internal"
	"github.com/adness/starburst/middlewares"
)

func TestFavicon(t *testing.T) {
	t.Parallel()

	icon := []byte("icon-bytes")
	step := middlewares.Favicon(middlewares.WithFaviconIcon(icon))

	t.Run("GET", func(t *testing.T) {
		t.Parallel()

		w := serve(httptest.NewRequest(http.MethodGet, "/favicon.ico", nil), []internal.Step{step})
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "image/x-icon", w.Header().Get("Content-Type"))
		require.Equal(t, "public, max-age=86400", w.Header().Get("Cache-Control"))
		require.NotEmpty(t, w.Header().Get("ETag"))
		require.Equal(t, "icon-bytes", w.Body.String())
	})

	t.Run("HEAD", func(t *testing.T) {
		t.Parallel()

		w := serve(httptest.NewRequest(http.MethodHead, "/favicon.ico", nil), []internal.Step{step})
		require.Equal(t, http.StatusOK, w.Code)
		require.Empty(t, w.Body.String())
	})

	t.Run("conditional GET", func(t *testing.T) {
		t.Parallel()

		first := serve(httptest.NewRequest(http.MethodGet, "/favicon.ico", nil), []internal.Step{step})
		r := httptest.NewRequest(http.MethodGet, "/favicon.ico", nil)
		r.Header.Set("If-None-Match", first.Header().Get("ETag"))

		w := serve(r, []internal.Step{step})
		require.Equal(t, http.StatusNotModified, w.Code)
	})

	t.Run("POST", func(t *testing.T) {
		t.Parallel()

		w := serve(httptest.NewRequest(http.MethodPost, "/favicon.ico", nil), []internal.Step{step})
		require.Equal(t, http.StatusMethodNotAllowed, w.Code)
		require.Equal(t, "GET, HEAD, OPTIONS", w.Header().Get("Allow"))
	})

	t.Run("other paths", func(t *testing.T) {
		t.Parallel()

		w := serve(httptest.NewRequest(http.MethodGet, "/sb", nil), []internal.Step{step})
		require.Equal(t, http.StatusNotFound, w.Code)
		require.Equal(t, "Cannot GET /sb", w.Body.String())
	})
}

func TestFavicon_Embedded(t *testing.T) {
	t.Parallel()

	w := serve(httptest.NewRequest(http.MethodGet, "/favicon.ico", nil), []internal.Step{middlewares.Favicon()})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotZero(t, w.Body.Len())
}

func testAssets() fstest.MapFS {
	return fstest.MapFS{
		"manifest.json":     {Data: []byte(`{"app.js":"app-3f2a9c.js","app.css":"app-77b1.css"}`)},
		"app-3f2a9c.js":     {Data: []byte("console.log('sb')")},
		"app-77b1.css":      {Data: []byte("body{}")},
		"img/logo.svg":      {Data: []byte("<svg/>")},
		"img/sub/empty.txt": {Data: []byte("")},
	}
}

func TestManifest(t *testing.T) {
	t.Parallel()

	m, err := middlewares.LoadManifest(testAssets())
	require.NoError(t, err)
	require.Equal(t, 2, m.Len())

	p, ok := m.Path("app.js")
	require.True(t, ok)
	require.Equal(t, "/assets/app-3f2a9c.js", p)

	_, ok = m.Path("missing.js")
	require.False(t, ok)

	c, _ := newContext(httptest.NewRequest(http.MethodGet, "/sb", nil))
	runStep(t, middlewares.Assets(m), c)
	require.Equal(t, "/assets/app-77b1.css", c.AssetPath("app.css"))
	require.Equal(t, "other.css", c.AssetPath("other.css"))
}

func TestManifest_Missing(t *testing.T) {
	t.Parallel()

	m, err := middlewares.LoadManifest(fstest.MapFS{})
	require.NoError(t, err)
	require.Zero(t, m.Len())
}

func TestManifest_Invalid(t *testing.T) {
	t.Parallel()

	_, err := middlewares.LoadManifest(fstest.MapFS{"manifest.json": {Data: []byte("{")}})
	require.ErrorIs(t, err, middlewares.ErrBadManifest)
}

func TestAssets_Serve(t *testing.T) {
	t.Parallel()

	m, err := middlewares.LoadManifest(testAssets())
	require.NoError(t, err)
	steps := []internal.Step{middlewares.Assets(m)}

	tests := []struct {
		name      string
		method    string
		target    string
		wantCode  int
		wantBody  string
		immutable bool
	}{
		{name: "fingerprinted", method: http.MethodGet, target: "/assets/app-3f2a9c.js", wantCode: http.StatusOK, wantBody: "console.log('sb')", immutable: true},
		{name: "plain file", method: http.MethodGet, target: "/assets/img/logo.svg", wantCode: http.StatusOK, wantBody: "<svg/>"},
		{name: "missing", method: http.MethodGet, target: "/assets/nope.js", wantCode: http.StatusNotFound, wantBody: "Cannot GET /assets/nope.js"},
		{name: "directory", method: http.MethodGet, target: "/assets/img", wantCode: http.StatusNotFound, wantBody: "Cannot GET /assets/img"},
		{name: "manifest hidden", method: http.MethodGet, target: "/assets/manifest.json", wantCode: http.StatusNotFound, wantBody: "Cannot GET /assets/manifest.json"},
		{name: "traversal", method: http.MethodGet, target: "/assets/../manifest.json", wantCode: http.StatusNotFound, wantBody: "Cannot GET /assets/../manifest.json"},
		{name: "POST", method: http.MethodPost, target: "/assets/app-77b1.css", wantCode: http.StatusNotFound, wantBody: "Cannot POST /assets/app-77b1.css"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := serve(httptest.NewRequest(tt.method, tt.target, nil), steps)
			require.Equal(t, tt.wantCode, w.Code)
			require.Equal(t, tt.wantBody, w.Body.String())
			if tt.immutable {
				require.Contains(t, w.Header().Get("Cache-Control"), "immutable")
			}
		})
	}
}

func TestStatic(t *testing.T) {
	t.Parallel()

	public := fstest.MapFS{
		"robots.txt":        {Data: []byte("User-agent: *")},
		"docs/index.html":   {Data: []byte("<h1>docs</h1>")},
		"img/banner.png":    {Data: []byte("png")},
		"empty/placeholder": {Data: []byte("")},
	}
	steps := []internal.Step{middlewares.Static(public)}

	tests := []struct {
		name     string
		method   string
		target   string
		wantCode int
		wantBody string
	}{
		{name: "file", method: http.MethodGet, target: "/robots.txt", wantCode: http.StatusOK, wantBody: "User-agent: *"},
		{name: "nested file", method: http.MethodGet, target: "/img/banner.png", wantCode: http.StatusOK, wantBody: "png"},
		{name: "directory index", method: http.MethodGet, target: "/docs/", wantCode: http.StatusOK, wantBody: "<h1>docs</h1>"},
		{name: "directory without index", method: http.MethodGet, target: "/empty/", wantCode: http.StatusNotFound, wantBody: "Cannot GET /empty/"},
		{name: "HEAD", method: http.MethodHead, target: "/robots.txt", wantCode: http.StatusOK, wantBody: ""},
		{name: "missing", method: http.MethodGet, target: "/x", wantCode: http.StatusNotFound, wantBody: "Cannot GET /x"},
		{name: "POST", method: http.MethodPost, target: "/robots.txt", wantCode: http.StatusNotFound, wantBody: "Cannot POST /robots.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := serve(httptest.NewRequest(tt.method, tt.target, nil), steps)
			require.Equal(t, tt.wantCode, w.Code)
			require.Equal(t, tt.wantBody, w.Body.String())
		})
	}
}
