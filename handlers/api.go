package handlers

import (
	"net/http"
	"time"

	"github.com/adness/starburst/internal"
	"github.com/adness/starburst/internal/repository"
)

// API serves the JSON endpoints.
type API struct {
	now func() time.Time
}

// Clock is the server time reported to bidding clients.
type Clock struct {
	Now  time.Time `json:"now"`
	Unix int64     `json:"unix"`
}

func (a *API) AuctionsTime(c *internal.Context) error {
	now := a.now().UTC()
	return c.JSON(http.StatusOK, Clock{Now: now, Unix: now.UnixMilli()})
}

func (a *API) AuctionsOpen(c *internal.Context) error   { return a.auctionsBy(c, repository.AuctionsOpen) }
func (a *API) AuctionsClosed(c *internal.Context) error { return a.auctionsBy(c, repository.AuctionsClosed) }
func (a *API) AuctionsFuture(c *internal.Context) error { return a.auctionsBy(c, repository.AuctionsFuture) }
func (a *API) AuctionsPast(c *internal.Context) error   { return a.auctionsBy(c, repository.AuctionsPast) }

func (a *API) auctionsBy(c *internal.Context, state repository.AuctionState) error {
	db, err := models(c)
	if err != nil {
		return err
	}
	list, err := db.AuctionsBy(c.Context(), state, a.now())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (a *API) Auctions(c *internal.Context) error {
	db, err := models(c)
	if err != nil {
		return err
	}
	list, err := db.Auctions(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (a *API) Auction(c *internal.Context) error {
	db, err := models(c)
	if err != nil {
		return err
	}
	auction, err := db.Auction(c.Context(), c.Param("auctionId"))
	if err != nil {
		return lookup("auction", err)
	}
	return c.JSON(http.StatusOK, auction)
}

// AuctionBids lists the bids of an existing auction.
func (a *API) AuctionBids(c *internal.Context) error {
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
	return c.JSON(http.StatusOK, bids)
}

func (a *API) Bid(c *internal.Context) error {
	db, err := models(c)
	if err != nil {
		return err
	}
	bid, err := db.Bid(c.Context(), c.Param("bidId"))
	if err != nil {
		return lookup("bid", err)
	}
	return c.JSON(http.StatusOK, bid)
}

// Ad returns an approved ad; other ads are visible to their owner and admins.
func (a *API) Ad(c *internal.Context) error {
	db, err := models(c)
	if err != nil {
		return err
	}
	ad, err := db.Ad(c.Context(), c.Param("adId"))
	if err != nil {
		return lookup("ad", err)
	}
	if ad.Status != repository.AdApproved && !owns(c, ad.UserID) {
		return internal.ErrNotFound("ad not found")
	}
	return c.JSON(http.StatusOK, ad)
}

func (a *API) EnableAuction(*internal.Context) error  { return readOnly("auctions") }
func (a *API) DisableAuction(*internal.Context) error { return readOnly("auctions") }
func (a *API) UpdateAuction(*internal.Context) error  { return readOnly("auctions") }
func (a *API) NewAuction(*internal.Context) error     { return readOnly("auctions") }
func (a *API) DeleteAuction(*internal.Context) error  { return readOnly("auctions") }
func (a *API) UpdateBid(*internal.Context) error      { return readOnly("bids") }
func (a *API) NewBid(*internal.Context) error         { return readOnly("bids") }
func (a *API) DeleteBid(*internal.Context) error      { return readOnly("bids") }
func (a *API) UpdateAd(*internal.Context) error       { return readOnly("ads") }
func (a *API) NewAd(*internal.Context) error          { return readOnly("ads") }
func (a *API) DeleteAd(*internal.Context) error       { return readOnly("ads") }
