package handlers

import (
	"cmp"
	"net/http"
	"slices"
	"time"

	"github.com/adness/starburst/internal"
	"github.com/adness/starburst/internal/repository"
	"github.com/adness/starburst/views"
)

// Auctions serves the auction pages.
type Auctions struct {
	now func() time.Time
}

// Show renders an auction with its bids, highest first.
func (a *Auctions) Show(c *internal.Context) error {
	db, err := models(c)
	if err != nil {
		return err
	}
	auction, err := db.Auction(c.Context(), c.Param("auctionId"))
	if err != nil {
		return lookup("auction", err)
	}
	bids, err := db.BidsForAuction(c.Context(), auction.ID)
	if err != nil {
		return err
	}
	slices.SortStableFunc(bids, func(x, y repository.Bid) int { return cmp.Compare(y.Amount, x.Amount) })

	return c.Render(http.StatusOK, views.AuctionPage(site(c, auction.Title), views.AuctionView{
		Auction: *auction,
		State:   auction.In(a.now()),
		Bids:    bids,
	}))
}

// Edit renders the admin form for an auction.
func (a *Auctions) Edit(c *internal.Context) error {
	if !isAdmin(c) {
		return forbidden()
	}
	db, err := models(c)
	if err != nil {
		return err
	}
	auction, err := db.Auction(c.Context(), c.Param("auctionId"))
	if err != nil {
		return lookup("auction", err)
	}

	return c.Render(http.StatusOK, views.AuctionEditPage(site(c, "Edit auction"), *auction))
}

func (a *Auctions) Enable(*internal.Context) error  { return readOnly("auctions") }
func (a *Auctions) Disable(*internal.Context) error { return readOnly("auctions") }
func (a *Auctions) Update(*internal.Context) error  { return readOnly("auctions") }
func (a *Auctions) Create(*internal.Context) error  { return readOnly("auctions") }
func (a *Auctions) Delete(*internal.Context) error  { return readOnly("auctions") }

// Bids has no pages of its own; bids are shown on their auction.
type Bids struct{}

func (Bids) Update(*internal.Context) error { return readOnly("bids") }
func (Bids) Delete(*internal.Context) error { return readOnly("bids") }
func (Bids) Create(*internal.Context) error { return readOnly("bids") }
