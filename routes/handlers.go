package routes

import "github.com/adness/starburst/internal"

// Pages serves the general browser views.
type Pages interface {
	SBIndex(c *internal.Context) error
	Rules(c *internal.Context) error
	History(c *internal.Context) error
	Registration(c *internal.Context) error
	Payment(c *internal.Context) error
	QR(c *internal.Context) error
	Profile(c *internal.Context) error
	// AdUpload serves both the upload form and the edit form of an ad.
	AdUpload(c *internal.Context) error
	Admin(c *internal.Context) error
	Index(c *internal.Context) error
}

// AuctionViews serves the browser views of auctions.
type AuctionViews interface {
	Show(c *internal.Context) error
	Enable(c *internal.Context) error
	Disable(c *internal.Context) error
	Update(c *internal.Context) error
	Create(c *internal.Context) error
	Delete(c *internal.Context) error
	Edit(c *internal.Context) error
}

// BidViews serves the browser views of bids.
type BidViews interface {
	Update(c *internal.Context) error
	Delete(c *internal.Context) error
	Create(c *internal.Context) error
}

// AdViews serves the browser views of ads.
type AdViews interface {
	Show(c *internal.Context) error
	Approve(c *internal.Context) error
	Reject(c *internal.Context) error
	// PostDelete deletes an ad from a plain HTML form.
	PostDelete(c *internal.Context) error
	Update(c *internal.Context) error
	Create(c *internal.Context) error
	Delete(c *internal.Context) error
}

// API serves the JSON endpoints.
type API interface {
	AuctionsTime(c *internal.Context) error
	AuctionsOpen(c *internal.Context) error
	AuctionsClosed(c *internal.Context) error
	AuctionsFuture(c *internal.Context) error
	AuctionsPast(c *internal.Context) error
	AuctionBids(c *internal.Context) error
	Auction(c *internal.Context) error
	Auctions(c *internal.Context) error
	EnableAuction(c *internal.Context) error
	DisableAuction(c *internal.Context) error
	UpdateAuction(c *internal.Context) error
	NewAuction(c *internal.Context) error
	DeleteAuction(c *internal.Context) error

	Bid(c *internal.Context) error
	UpdateBid(c *internal.Context) error
	NewBid(c *internal.Context) error
	DeleteBid(c *internal.Context) error

	Ad(c *internal.Context) error
	UpdateAd(c *internal.Context) error
	NewAd(c *internal.Context) error
	DeleteAd(c *internal.Context) error
}

// Handlers groups the collaborators the route table dispatches to.
type Handlers struct {
	Pages    Pages
	Auctions AuctionViews
	Bids     BidViews
	Ads      AdViews
	API      API
}
