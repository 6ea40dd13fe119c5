// Package content renders the site's markdown pages.
//
// A page is a markdown file with optional YAML frontmatter:
//
//	---
//	title: Auction rules
//	---
//	# Rules
//	Bids are final.
//
// Rendered pages are sanitized and cached by name in a [cache.Memory].
package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/adness/starburst/pkg/cache"
	"github.com/adness/starburst/pkg/sanitizer"
)

// Page is a rendered markdown page.
type Page struct {
	Meta
	Name string
	HTML template.HTML
}

// Library loads pages from a file system.
type Library struct {
	fs    fs.FS
	md    goldmark.Markdown
	pages *cache.Memory[*Page]
}

// Option configures a Library.
type Option func(*libraryOptions)

type libraryOptions struct {
	ttl        time.Duration
	maxEntries int
}

// WithTTL re-renders pages older than d, so edits to a directory-backed
// library show up without a restart. Default: rendered pages are kept.
func WithTTL(d time.Duration) Option {
	return func(o *libraryOptions) {
		if d > 0 {
			o.ttl = d
		}
	}
}

// WithMaxPages bounds the number of cached pages.
func WithMaxPages(n int) Option {
	return func(o *libraryOptions) {
		o.maxEntries = n
	}
}

// NewLibrary creates a Library reading "<name>.md" files from fsys.
func NewLibrary(fsys fs.FS, opts ...Option) *Library {
	o := &libraryOptions{ttl: -1, maxEntries: 128}
	for _, opt := range opts {
		opt(o)
	}

	return &Library{
		fs: fsys,
		md: NewMarkdown(),
		pages: cache.NewMemory[*Page](
			cache.WithDefaultTTL(o.ttl),
			cache.WithMaxEntries(o.maxEntries),
		),
	}
}

// NewMarkdown returns the goldmark processor used for pages: GitHub
// flavored tables, strikethrough and autolinks, with heading ids.
func NewMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
}

// Page returns the rendered page called name.
func (l *Library) Page(ctx context.Context, name string) (*Page, error) {
	return l.pages.GetOrSet(ctx, name, func(context.Context) (*Page, time.Duration, error) {
		p, err := l.render(name)
		return p, 0, err
	})
}

func (l *Library) render(name string) (*Page, error) {
	file := path.Clean(name) + ".md"
	if !fs.ValidPath(file) || strings.HasPrefix(file, ".") {
		return nil, fmt.Errorf("%w: %s", ErrPageNotFound, name)
	}

	src, err := fs.ReadFile(l.fs, file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrPageNotFound, name)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}

	meta, body, err := splitFrontmatter(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	var out bytes.Buffer
	if err := l.md.Convert(body, &out); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}

	return &Page{
		Meta: meta,
		Name: name,
		// #nosec G203 -- sanitized
		HTML: template.HTML(sanitizer.SanitizeContent(out.String())),
	}, nil
}

// Markdown renders user-written markdown with the restrictive sanitizer.
func Markdown(src string) (template.HTML, error) {
	var out bytes.Buffer
	if err := userMarkdown.Convert([]byte(src), &out); err != nil {
		return "", errors.Join(ErrRenderFailed, err)
	}
	// #nosec G203 -- sanitized
	return template.HTML(sanitizer.SanitizeHTML(out.String())), nil
}

var userMarkdown = goldmark.New(goldmark.WithExtensions(extension.Linkify))
