package handlers

import (
	"time"

	"github.com/adness/starburst/internal"
	"github.com/adness/starburst/views"
)

// site collects the layout data of c.
func site(c *internal.Context, title string) views.Site {
	return views.Site{
		User:   c.Identity,
		Title:  title,
		Prefix: c.Prefix,
		CSS:    c.AssetPath("app.css"),
		JS:     c.AssetPath("app.js"),
		Year:   time.Now().Year(),
	}
}
