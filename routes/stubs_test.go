package routes_test

import (
	"net/http"
	"sort"
	"strings"

	"github.com/adness/starburst/internal"
	"github.com/adness/starburst/routes"
)

// say answers with the handler name followed by the bound params.
func say(c *internal.Context, name string) error {
	keys := make([]string, 0, len(c.Params))
	for k := range c.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(name)
	for _, k := range keys {
		b.WriteString(" " + k + "=" + c.Params[k])
	}
	return c.String(http.StatusOK, b.String())
}

type pagesStub struct{}

func (pagesStub) SBIndex(c *internal.Context) error      { return say(c, "pages.SBIndex") }
func (pagesStub) Rules(c *internal.Context) error        { return say(c, "pages.Rules") }
func (pagesStub) History(c *internal.Context) error      { return say(c, "pages.History") }
func (pagesStub) Registration(c *internal.Context) error { return say(c, "pages.Registration") }
func (pagesStub) Payment(c *internal.Context) error      { return say(c, "pages.Payment") }
func (pagesStub) QR(c *internal.Context) error           { return say(c, "pages.QR") }
func (pagesStub) Profile(c *internal.Context) error      { return say(c, "pages.Profile") }
func (pagesStub) AdUpload(c *internal.Context) error     { return say(c, "pages.AdUpload") }
func (pagesStub) Admin(c *internal.Context) error        { return say(c, "pages.Admin") }
func (pagesStub) Index(c *internal.Context) error        { return say(c, "pages.Index") }

type auctionsStub struct{}

func (auctionsStub) Show(c *internal.Context) error    { return say(c, "auctions.Show") }
func (auctionsStub) Enable(c *internal.Context) error  { return say(c, "auctions.Enable") }
func (auctionsStub) Disable(c *internal.Context) error { return say(c, "auctions.Disable") }
func (auctionsStub) Update(c *internal.Context) error  { return say(c, "auctions.Update") }
func (auctionsStub) Create(c *internal.Context) error  { return say(c, "auctions.Create") }
func (auctionsStub) Delete(c *internal.Context) error  { return say(c, "auctions.Delete") }
func (auctionsStub) Edit(c *internal.Context) error    { return say(c, "auctions.Edit") }

type bidsStub struct{}

func (bidsStub) Update(c *internal.Context) error { return say(c, "bids.Update") }
func (bidsStub) Delete(c *internal.Context) error { return say(c, "bids.Delete") }
func (bidsStub) Create(c *internal.Context) error { return say(c, "bids.Create") }

type adsStub struct{}

func (adsStub) Show(c *internal.Context) error       { return say(c, "ads.Show") }
func (adsStub) Approve(c *internal.Context) error    { return say(c, "ads.Approve") }
func (adsStub) Reject(c *internal.Context) error     { return say(c, "ads.Reject") }
func (adsStub) PostDelete(c *internal.Context) error { return say(c, "ads.PostDelete") }
func (adsStub) Update(c *internal.Context) error     { return say(c, "ads.Update") }
func (adsStub) Create(c *internal.Context) error     { return say(c, "ads.Create") }
func (adsStub) Delete(c *internal.Context) error     { return say(c, "ads.Delete") }

type apiStub struct{}

func (apiStub) AuctionsTime(c *internal.Context) error   { return say(c, "api.AuctionsTime") }
func (apiStub) AuctionsOpen(c *internal.Context) error   { return say(c, "api.AuctionsOpen") }
func (apiStub) AuctionsClosed(c *internal.Context) error { return say(c, "api.AuctionsClosed") }
func (apiStub) AuctionsFuture(c *internal.Context) error { return say(c, "api.AuctionsFuture") }
func (apiStub) AuctionsPast(c *internal.Context) error   { return say(c, "api.AuctionsPast") }
func (apiStub) AuctionBids(c *internal.Context) error    { return say(c, "api.AuctionBids") }
func (apiStub) Auction(c *internal.Context) error        { return say(c, "api.Auction") }
func (apiStub) Auctions(c *internal.Context) error       { return say(c, "api.Auctions") }
func (apiStub) EnableAuction(c *internal.Context) error  { return say(c, "api.EnableAuction") }
func (apiStub) DisableAuction(c *internal.Context) error { return say(c, "api.DisableAuction") }
func (apiStub) UpdateAuction(c *internal.Context) error  { return say(c, "api.UpdateAuction") }
func (apiStub) NewAuction(c *internal.Context) error     { return say(c, "api.NewAuction") }
func (apiStub) DeleteAuction(c *internal.Context) error  { return say(c, "api.DeleteAuction") }
func (apiStub) Bid(c *internal.Context) error            { return say(c, "api.Bid") }
func (apiStub) UpdateBid(c *internal.Context) error      { return say(c, "api.UpdateBid") }
func (apiStub) NewBid(c *internal.Context) error         { return say(c, "api.NewBid") }
func (apiStub) DeleteBid(c *internal.Context) error      { return say(c, "api.DeleteBid") }
func (apiStub) Ad(c *internal.Context) error             { return say(c, "api.Ad") }
func (apiStub) UpdateAd(c *internal.Context) error       { return say(c, "api.UpdateAd") }
func (apiStub) NewAd(c *internal.Context) error          { return say(c, "api.NewAd") }
func (apiStub) DeleteAd(c *internal.Context) error       { return say(c, "api.DeleteAd") }

func stubHandlers() routes.Handlers {
	return routes.Handlers{
		Pages:    pagesStub{},
		Auctions: auctionsStub{},
		Bids:     bidsStub{},
		Ads:      adsStub{},
		API:      apiStub{},
	}
}
