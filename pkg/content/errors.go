package content

import "errors"

var (
	// ErrPageNotFound indicates no markdown file exists for the page.
	ErrPageNotFound = errors.New("content: page not found")

	// ErrInvalidFrontmatter indicates invalid YAML frontmatter.
	ErrInvalidFrontmatter = errors.New("content: invalid frontmatter")

	// ErrRenderFailed indicates markdown conversion failed.
	ErrRenderFailed = errors.New("content: failed to render page")
)
