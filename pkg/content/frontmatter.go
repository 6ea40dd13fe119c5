package content

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Meta is the YAML frontmatter of a page.
type Meta struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	// Layout selects the page chrome; "bare" drops the navigation.
	Layout string `yaml:"layout"`
}

// splitFrontmatter separates the YAML frontmatter from the markdown body.
// Content without a leading "---" line has empty metadata.
func splitFrontmatter(src []byte) (Meta, []byte, error) {
	var meta Meta
	delimiter := []byte("---")

	if !bytes.HasPrefix(src, delimiter) {
		return meta, src, nil
	}

	afterFirst := bytes.TrimPrefix(src, delimiter)
	afterFirst = bytes.TrimLeft(afterFirst, "\n\r")
	if len(afterFirst) == 0 {
		return meta, nil, fmt.Errorf("%w: no content after opening delimiter", ErrInvalidFrontmatter)
	}

	endIdx := bytes.Index(afterFirst, delimiter)
	if endIdx == -1 {
		return meta, nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
	}

	front := afterFirst[:endIdx]
	bodyStart := endIdx + len(delimiter)
	// Skip one newline after closing delimiter (handles both \r\n and \n)
	if bodyStart < len(afterFirst) {
		if afterFirst[bodyStart] == '\r' && bodyStart+1 < len(afterFirst) && afterFirst[bodyStart+1] == '\n' {
			bodyStart += 2
		} else if afterFirst[bodyStart] == '\n' {
			bodyStart++
		}
	}

	if len(bytes.TrimSpace(front)) > 0 {
		if err := yaml.Unmarshal(front, &meta); err != nil {
			return meta, nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
		}
	}
	return meta, afterFirst[bodyStart:], nil
}
