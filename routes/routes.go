// Package routes declares the StarBurst route table: the browser views under
// /sb, a few top-level pages, the JSON API under /api, and login/logout.
package routes

import (
	"github.com/adness/starburst/internal"
)

// Path prefixes.
const (
	Browse = "/sb"
	API    = "/api"
)

// Table builds the frozen route table for h.
func Table(h Handlers) *internal.RouteTable {
	return internal.BuildRoutes(func(r internal.Router) {
		Register(r, h)
	})
}

// Register declares every route on r. Registration order is dispatch order.
func Register(r internal.Router, h Handlers) {
	auth := internal.RequireAuth(Browse)

	r.Route(Browse, func(r internal.Router) {
		r.GET("/", h.Pages.SBIndex)
		r.GET("/rules", h.Pages.Rules)
		r.GET("/history", h.Pages.History)
		r.GET("/registration", h.Pages.Registration)
		r.GET("/payment", h.Pages.Payment)
		r.GET("/qr/{qrString}", h.Pages.QR)

		// auctions
		r.GET("/auctions/{auctionId}", h.Auctions.Show)
		r.POST("/auctions/enable/{auctionId}", h.Auctions.Enable, auth)
		r.POST("/auctions/disable/{auctionId}", h.Auctions.Disable, auth)
		r.POST("/auctions/edit", h.Auctions.Update, auth)
		r.POST("/auctions", h.Auctions.Create, auth)
		r.DELETE("/auctions/{auctionId}", h.Auctions.Delete, auth)

		// bids
		r.POST("/bids/edit", h.Bids.Update, auth)
		r.DELETE("/bids/{bidId}", h.Bids.Delete, auth)
		r.POST("/bids", h.Bids.Create, auth)

		// ads
		r.GET("/users/{userId}", h.Pages.Profile, auth)
		r.GET("/ads/upload", h.Pages.AdUpload, auth)
		r.GET("/ads/{adId}/edit", h.Pages.AdUpload, auth)
		r.GET("/ads/{adId}", h.Ads.Show)
		r.POST("/ads/{adId}/approve", h.Ads.Approve, auth)
		r.POST("/ads/{adId}/reject", h.Ads.Reject, auth)
		r.POST("/ads/{adId}/delete", h.Ads.PostDelete, auth)
		r.POST("/ads/{adId}", h.Ads.Update, auth)
		r.POST("/ads", h.Ads.Create, auth)
		r.DELETE("/ads/{adId}", h.Ads.Delete, auth)
	})

	r.Group(func(r internal.Router) {
		r.GET("/admin/auctions/edit/{auctionId}", h.Auctions.Edit, auth)
		r.GET("/admin", h.Pages.Admin, auth)
		r.GET("/", h.Pages.Index)
	})

	r.Route(API, func(r internal.Router) {
		// auctions
		r.GET("/auctions/time", h.API.AuctionsTime)
		r.GET("/auctions/open", h.API.AuctionsOpen)
		r.GET("/auctions/closed", h.API.AuctionsClosed)
		r.GET("/auctions/future", h.API.AuctionsFuture)
		r.GET("/auctions/past", h.API.AuctionsPast)
		r.GET("/auctions/{auctionId}/bids", h.API.AuctionBids)
		r.GET("/auctions/{auctionId}", h.API.Auction)
		r.GET("/auctions", h.API.Auctions)
		r.POST("/auctions/enable/{auctionId}", h.API.EnableAuction, auth)
		r.POST("/auctions/disable/{auctionId}", h.API.DisableAuction, auth)
		r.POST("/auctions/edit", h.API.UpdateAuction, auth)
		r.POST("/auctions", h.API.NewAuction, auth)
		r.DELETE("/auctions/{auctionId}", h.API.DeleteAuction, auth)

		// bids
		r.GET("/bids/{bidId}", h.API.Bid)
		r.POST("/bids/edit", h.API.UpdateBid, auth)
		r.POST("/bids", h.API.NewBid, auth)
		r.DELETE("/bids/{bidId}", h.API.DeleteBid, auth)

		// ads
		r.GET("/ads/{adId}", h.API.Ad)
		r.POST("/ads/{adId}", h.API.UpdateAd, auth)
		r.POST("/ads", h.API.NewAd, auth)
		r.DELETE("/ads/{adId}", h.API.DeleteAd, auth)
	})

	r.POST("/login", Login)
	r.GET("/logout", Logout)
}
