package middlewares

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/adness/starburst/internal"
)

// Asset defaults.
const (
	DefaultAssetsPrefix = "/assets/"
	ManifestFile        = "manifest.json"
)

// ErrBadManifest is returned when the asset manifest cannot be decoded.
var ErrBadManifest = errors.New("assets: invalid manifest")

// Manifest maps logical asset names to the fingerprinted files produced by
// the asset build, e.g. {"app.js": "app-3f2a9c.js"}.
type Manifest struct {
	fsys    fs.FS
	prefix  string
	entries map[string]string
	built   map[string]bool
}

// LoadManifest reads manifest.json from fsys. A missing manifest yields an
// empty one; every file in fsys is still served.
func LoadManifest(fsys fs.FS) (*Manifest, error) {
	m := &Manifest{
		fsys:    fsys,
		prefix:  DefaultAssetsPrefix,
		entries: map[string]string{},
		built:   map[string]bool{},
	}

	data, err := fs.ReadFile(fsys, ManifestFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return m, nil
	case err != nil:
		return nil, fmt.Errorf("assets: read manifest: %w", err)
	}

	if err := json.Unmarshal(data, &m.entries); err != nil {
		return nil, errors.Join(ErrBadManifest, err)
	}
	for _, file := range m.entries {
		m.built[file] = true
	}
	return m, nil
}

// Path returns the public path of the named asset.
func (m *Manifest) Path(name string) (string, bool) {
	file, ok := m.entries[strings.TrimPrefix(name, "/")]
	if !ok {
		return "", false
	}
	return m.prefix + file, true
}

// Len returns the number of manifest entries.
func (m *Manifest) Len() int {
	return len(m.entries)
}

// Assets attaches m to every request and serves files under /assets/.
// Fingerprinted files are cached for a year. Requests for files that do not
// exist go on down the pipeline.
func Assets(m *Manifest) internal.Step {
	return internal.Step{
		Name: StepAssets,
		Run: func(c *internal.Context) (internal.Signal, error) {
			c.Assets = m

			rest, ok := strings.CutPrefix(c.Path(), m.prefix)
			if !ok || !isReadMethod(c) {
				return internal.Continue, nil
			}
			name, ok := fsName(rest)
			if !ok || name == "." || name == ManifestFile {
				return internal.Continue, nil
			}
			info, err := fs.Stat(m.fsys, name)
			if err != nil || !info.Mode().IsRegular() {
				return internal.Continue, nil
			}

			if m.built[name] {
				c.SetHeader("Cache-Control", "public, max-age=31536000, immutable")
			}
			serveFile(c, m.fsys, name)
			return internal.Respond, nil
		},
	}
}
