package middlewares

import (
	"io/fs"
	"net/http"
	"path"
	"slices"
	"strings"

	"github.com/adness/starburst/internal"
)

const indexFile = "index.html"

// fsName turns a URL path into an fs.FS name.
// It reports false for paths with dot-dot segments or that cannot name a
// file in an fs.FS.
func fsName(urlPath string) (string, bool) {
	if strings.Contains(urlPath, "\x00") || slices.Contains(strings.Split(urlPath, "/"), "..") {
		return "", false
	}
	name := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if name == "" {
		name = "."
	}
	return name, fs.ValidPath(name)
}

// resolveFile returns the name of the regular file to serve for name:
// name itself, or the index.html of a directory.
func resolveFile(fsys fs.FS, name string) (string, bool) {
	info, err := fs.Stat(fsys, name)
	if err != nil {
		return "", false
	}
	if info.Mode().IsRegular() {
		return name, true
	}
	if !info.IsDir() {
		return "", false
	}

	index := path.Join(name, indexFile)
	info, err = fs.Stat(fsys, index)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return index, true
}

func isReadMethod(c *internal.Context) bool {
	return c.Method() == http.MethodGet || c.Method() == http.MethodHead
}

// serveFile writes name from fsys. http.ServeFileFS handles conditional
// and range requests.
func serveFile(c *internal.Context, fsys fs.FS, name string) {
	http.ServeFileFS(c.Response(), c.Request(), fsys, name)
}
