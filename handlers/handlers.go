// Package handlers holds the default collaborators bound by the route table.
// Pages come from markdown content and the request's models; every mutating
// endpoint answers 501 until a write path exists.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/adness/starburst/internal"
	"github.com/adness/starburst/internal/repository"
	"github.com/adness/starburst/pkg/content"
	"github.com/adness/starburst/routes"
)

// Option configures the default handlers.
type Option func(*config)

type config struct {
	now func() time.Time
}

// WithClock overrides the clock used to classify auctions.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		c.now = now
	}
}

// New returns the default handler set backed by pages for the content pages.
func New(pages *content.Library, opts ...Option) routes.Handlers {
	cfg := config{now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}

	return routes.Handlers{
		Pages:    &Pages{content: pages, now: cfg.now},
		Auctions: &Auctions{now: cfg.now},
		Bids:     Bids{},
		Ads:      Ads{},
		API:      &API{now: cfg.now},
	}
}

var (
	_ routes.Pages        = (*Pages)(nil)
	_ routes.AuctionViews = (*Auctions)(nil)
	_ routes.BidViews     = Bids{}
	_ routes.AdViews      = Ads{}
	_ routes.API          = (*API)(nil)
)

// readOnly answers a mutation that has no write path.
func readOnly(what string) error {
	return internal.ErrNotImplemented(what + " are read-only")
}

// lookup maps a missing row to 404.
func lookup(what string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return internal.ErrNotFound(what+" not found", internal.WithError(err))
	}
	return err
}

func models(c *internal.Context) (repository.Models, error) {
	if c.Models == nil {
		return nil, errNoModels
	}
	return c.Models, nil
}

var errNoModels = errors.New("handlers: no models attached")

func forbidden() error {
	return internal.NewHTTPError(http.StatusForbidden, "forbidden")
}

func isAdmin(c *internal.Context) bool {
	return c.Identity != nil && c.Identity.Admin
}

func owns(c *internal.Context, userID string) bool {
	return c.Identity != nil && (c.Identity.ID == userID || c.Identity.Admin)
}
