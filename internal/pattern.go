package internal

import (
	"fmt"
	"net/url"
	"strings"
)

type segment struct {
	literal string
	param   string
}

// pattern is a compiled route path such as "/sb/ads/{adId}/edit".
type pattern struct {
	raw      string
	segments []segment
}

func parsePattern(raw string) (pattern, error) {
	if !strings.HasPrefix(raw, "/") {
		return pattern{}, fmt.Errorf("route: pattern %q must start with /", raw)
	}

	p := pattern{raw: raw}
	trimmed := strings.Trim(raw, "/")
	if trimmed == "" {
		return p, nil
	}

	seen := map[string]bool{}
	for part := range strings.SplitSeq(trimmed, "/") {
		switch {
		case part == "":
			return pattern{}, fmt.Errorf("route: pattern %q has an empty segment", raw)
		case strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}"):
			name := part[1 : len(part)-1]
			if name == "" || strings.ContainsAny(name, "{}") {
				return pattern{}, fmt.Errorf("route: pattern %q has an invalid parameter %q", raw, part)
			}
			if seen[name] {
				return pattern{}, fmt.Errorf("route: pattern %q repeats parameter %q", raw, name)
			}
			seen[name] = true
			p.segments = append(p.segments, segment{param: name})
		case strings.ContainsAny(part, "{}"):
			return pattern{}, fmt.Errorf("route: pattern %q mixes literal and parameter in %q", raw, part)
		default:
			p.segments = append(p.segments, segment{literal: part})
		}
	}
	return p, nil
}

// match tests an escaped request path. Literal segments compare
// case-insensitively and one trailing slash is ignored.
func (p pattern) match(escapedPath string) (map[string]string, bool) {
	if escapedPath == "" {
		escapedPath = "/"
	}
	if len(escapedPath) > 1 {
		escapedPath = strings.TrimSuffix(escapedPath, "/")
	}

	rest := strings.TrimPrefix(escapedPath, "/")
	if rest == "" {
		return nil, len(p.segments) == 0
	}

	parts := strings.Split(rest, "/")
	if len(parts) != len(p.segments) {
		return nil, false
	}

	var params map[string]string
	for i, seg := range p.segments {
		value, err := url.PathUnescape(parts[i])
		if err != nil || value == "" {
			return nil, false
		}
		if seg.param == "" {
			if !strings.EqualFold(seg.literal, value) {
				return nil, false
			}
			continue
		}
		if params == nil {
			params = make(map[string]string, len(p.segments))
		}
		params[seg.param] = value
	}
	return params, true
}

func (p pattern) String() string {
	return p.raw
}
