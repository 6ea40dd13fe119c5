// Package internal provides the core of the site: the request pipeline, the
// route table, the request context and the session manager.
//
// Import "github.com/adness/starburst" instead, which re-exports the public
// API and composes the pipeline in its fixed order.
//
// # Pipeline
//
// A [Pipeline] is an ordered list of [Step] values run by a driver loop.
// Each step returns a [Signal]: Continue runs the next step, Respond ends
// the request, Fail hands the error to the [ErrorStep] list and, when none
// of them answers, to an opaque response carrying only the status text.
// Panics inside steps are recovered as [PanicError]. A request that no step
// answered ends with 404 "Cannot METHOD /path".
//
// # Routes
//
// [BuildRoutes] freezes an ordered [RouteTable]. Dispatch is first match in
// registration order on method and pattern; HEAD matches GET routes.
// Patterns use "{name}" segments:
//
//	table := internal.BuildRoutes(func(r internal.Router) {
//	    r.Route("/sb", func(r internal.Router) {
//	        r.GET("/auctions/{auctionId}", views.ShowAuction)
//	        r.POST("/auctions", views.NewAuction, internal.RequireAuth("/sb"))
//	    })
//	})
//
// A handler returning [ErrNext] passes the request to the next matching
// route.
//
// # Sessions
//
// [SessionManager] resolves the session from its signed cookie, starts a new
// one when the cookie is missing or invalid, and saves it right before the
// first byte of the response.
package internal
