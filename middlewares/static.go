package middlewares

import (
	"io/fs"

	"github.com/adness/starburst/internal"
)

// Static serves GET and HEAD requests from the public root when a regular
// file, or a directory index.html, matches the path. Anything else goes on
// to the final not-found outcome.
func Static(fsys fs.FS) internal.Step {
	return internal.Step{
		Name: StepStatic,
		Run: func(c *internal.Context) (internal.Signal, error) {
			if !isReadMethod(c) {
				return internal.Continue, nil
			}
			name, ok := fsName(c.Path())
			if !ok {
				return internal.Continue, nil
			}
			file, ok := resolveFile(fsys, name)
			if !ok {
				return internal.Continue, nil
			}

			serveFile(c, fsys, file)
			return internal.Respond, nil
		},
	}
}
