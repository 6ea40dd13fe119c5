// Package web embeds the default site: markdown pages, public files and the
// built assets with their manifest.
package web

import (
	"embed"
	"io/fs"
)

//go:embed content public assets
var files embed.FS

// Content holds the markdown pages, one "<name>.md" per page.
func Content() fs.FS { return sub("content") }

// Public is the root served by the static fallback.
func Public() fs.FS { return sub("public") }

// Assets holds the built bundles and manifest.json.
func Assets() fs.FS { return sub("assets") }

func sub(dir string) fs.FS {
	fsys, err := fs.Sub(files, dir)
	if err != nil {
		panic(err)
	}
	return fsys
}
