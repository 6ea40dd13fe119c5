package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/adness/starburst/handlers"
	"github.com/adness/starburst/internal"
	"github.com/adness/starburst/internal/repository"
	"github.com/adness/starburst/middlewares"
	"github.com/adness/starburst/pkg/content"
	"github.com/adness/starburst/pkg/identity"
	"github.com/adness/starburst/pkg/logger"
	"github.com/adness/starburst/routes"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

var (
	alice = &identity.Identity{ID: "u1", Username: "alice", Name: "Alice", Email: "alice@example.com"}
	bob   = &identity.Identity{ID: "u2", Username: "bob"}
	admin = &identity.Identity{ID: "u3", Username: "root", Admin: true}
)

func strPtr(s string) *string { return &s }

func seed(t *testing.T) *repository.Memory {
	t.Helper()
	m := repository.NewMemory()
	for _, ident := range []*identity.Identity{alice, bob, admin} {
		m.Add(identity.User{Identity: *ident})
	}

	m.PutAuction(repository.Auction{ID: "a1", Title: "Vintage <b>lamp</b>", Enabled: true,
		StartsAt: now.Add(-time.Hour), EndsAt: now.Add(time.Hour)})
	m.PutAuction(repository.Auction{ID: "a2", Title: "Bicycle", Enabled: true,
		StartsAt: now.Add(time.Hour), EndsAt: now.Add(2 * time.Hour)})
	m.PutAuction(repository.Auction{ID: "a3", Title: "Piano", Enabled: false,
		StartsAt: now.Add(-time.Hour), EndsAt: now.Add(time.Hour)})

	m.PutBid(repository.Bid{ID: "b1", AuctionID: "a1", UserID: "u1", Amount: 1250, CreatedAt: now.Add(-30 * time.Minute)})
	m.PutBid(repository.Bid{ID: "b2", AuctionID: "a1", UserID: "u2", Amount: 1500, CreatedAt: now.Add(-10 * time.Minute)})

	m.PutAd(repository.Ad{ID: "ad1", UserID: "u1", Title: "Garden chairs", Body: "Two **chairs**", Status: repository.AdApproved,
		AuctionID: strPtr("a1"), CreatedAt: now})
	m.PutAd(repository.Ad{ID: "ad2", UserID: "u1", Title: "Old radio", Body: "<script>x()</script>works", Status: repository.AdPending, CreatedAt: now})
	return m
}

func library() *content.Library {
	return content.NewLibrary(fstest.MapFS{
		"sbindex.md":      {Data: []byte("---\ntitle: Auctions\n---\n# Welcome to StarBurst\n")},
		"index.md":        {Data: []byte("# StarBurst\n")},
		"rules.md":        {Data: []byte("---\ntitle: Rules\n---\n# Rules\nBids are final.\n")},
		"history.md":      {Data: []byte("# History\n")},
		"registration.md": {Data: []byte("# Registration\n")},
	})
}

// site serves the default handlers as ident over the given models.
func site(t *testing.T, db repository.Models, ident *identity.Identity) func(method, target string) *httptest.ResponseRecorder {
	t.Helper()
	table := routes.Table(handlers.New(library(), handlers.WithClock(func() time.Time { return now })))
	as := internal.Step{
		Name: "as",
		Run: func(c *internal.Context) (internal.Signal, error) {
			c.Identity = ident
			return internal.Continue, nil
		},
	}
	p := internal.NewPipeline(logger.NewNope(), []internal.Step{
		middlewares.Loader(db),
		middlewares.BrowsePrefix(routes.Browse),
		as,
		table.Step(),
	})

	return func(method, target string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		c := internal.NewContext(internal.NewResponseWriter(w), httptest.NewRequest(method, target, nil), logger.NewNope())
		p.Serve(c)
		return w
	}
}

func TestPages_Content(t *testing.T) {
	t.Parallel()

	get := site(t, seed(t), nil)

	w := get(http.MethodGet, "/sb/rules")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	body := w.Body.String()
	require.Contains(t, body, "<title>Rules · StarBurst</title>")
	require.Contains(t, body, `<h1 id="rules">Rules</h1>`)
	require.Contains(t, body, `<a href="/sb/history">History</a>`)
	require.Contains(t, body, `<form class="login" method="post" action="/login">`)

	w = get(http.MethodGet, "/")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "StarBurst</h1>")

	w = get(http.MethodGet, "/sb/payment")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestPages_SBIndex(t *testing.T) {
	t.Parallel()

	w := site(t, seed(t), alice)(http.MethodGet, "/sb/")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	require.Contains(t, body, "Welcome to StarBurst")
	require.Contains(t, body, `<a href="/sb/auctions/a1">Vintage &lt;b&gt;lamp&lt;/b&gt;</a>`)
	require.NotContains(t, body, "/sb/auctions/a2")
	require.NotContains(t, body, "/sb/auctions/a3")
	require.Contains(t, body, `<a href="/sb/ads/ad1">Garden chairs</a>`)
	require.NotContains(t, body, "Old radio")
	require.Contains(t, body, `<a href="/sb/users/u1">Alice</a>`)
	require.Contains(t, body, `<a href="/logout">Sign out</a>`)
}

func TestPages_QR(t *testing.T) {
	t.Parallel()

	w := site(t, seed(t), nil)(http.MethodGet, "/sb/qr/REF-%3Cx%3E")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "<code>REF-&lt;x&gt;</code>")
}

func TestPages_Profile(t *testing.T) {
	t.Parallel()

	db := seed(t)

	w := site(t, db, alice)(http.MethodGet, "/sb/users/u1")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "alice@example.com")
	require.Contains(t, w.Body.String(), "/sb/ads/upload")

	w = site(t, db, bob)(http.MethodGet, "/sb/users/u1")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotContains(t, w.Body.String(), "alice@example.com")

	w = site(t, db, bob)(http.MethodGet, "/sb/users/nobody")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestPages_AdUpload(t *testing.T) {
	t.Parallel()

	db := seed(t)

	w := site(t, db, alice)(http.MethodGet, "/sb/ads/upload")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `action="/sb/ads"`)

	w = site(t, db, alice)(http.MethodGet, "/sb/ads/ad2/edit")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `action="/sb/ads/ad2"`)
	require.Contains(t, w.Body.String(), `value="Old radio"`)

	w = site(t, db, bob)(http.MethodGet, "/sb/ads/ad2/edit")
	require.Equal(t, http.StatusForbidden, w.Code)

	w = site(t, db, admin)(http.MethodGet, "/sb/ads/ad2/edit")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestPages_Admin(t *testing.T) {
	t.Parallel()

	db := seed(t)

	w := site(t, db, alice)(http.MethodGet, "/admin")
	require.Equal(t, http.StatusForbidden, w.Code)

	w = site(t, db, admin)(http.MethodGet, "/admin")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.Contains(t, body, `<a href="/sb/ads/ad2">Old radio</a>`)
	require.Contains(t, body, `action="/sb/ads/ad2/approve"`)
	require.NotContains(t, body, `action="/sb/ads/ad1/approve"`)
	require.Contains(t, body, `<a href="/admin/auctions/edit/a3">Edit</a>`)
	require.Contains(t, body, `<span class="state">closed</span>`)
}

func TestAuctions_Show(t *testing.T) {
	t.Parallel()

	db := seed(t)

	w := site(t, db, alice)(http.MethodGet, "/sb/auctions/a1")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.Contains(t, body, `<p class="state">open</p>`)
	require.Contains(t, body, `<form class="bid" method="post" action="/sb/bids">`)
	require.Contains(t, body, `action="/sb/bids/b1"`)
	require.NotContains(t, body, `action="/sb/bids/b2"`)
	require.Less(t, strings.Index(body, "15.00"), strings.Index(body, "12.50"))

	w = site(t, db, nil)(http.MethodGet, "/sb/auctions/a2")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "No bids yet.")
	require.NotContains(t, w.Body.String(), `class="bid"`)

	w = site(t, db, nil)(http.MethodGet, "/sb/auctions/missing")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuctions_Edit(t *testing.T) {
	t.Parallel()

	db := seed(t)

	w := site(t, db, bob)(http.MethodGet, "/admin/auctions/edit/a1")
	require.Equal(t, http.StatusForbidden, w.Code)

	w = site(t, db, admin)(http.MethodGet, "/admin/auctions/edit/a3")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `action="/sb/auctions/enable/a3"`)
	require.Contains(t, w.Body.String(), `name="_method" value="DELETE"`)
}

func TestAds_Show(t *testing.T) {
	t.Parallel()

	db := seed(t)

	w := site(t, db, nil)(http.MethodGet, "/sb/ads/ad1")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Two <strong>chairs</strong>")
	require.Contains(t, w.Body.String(), `<a href="/sb/auctions/a1">Go to auction</a>`)

	w = site(t, db, bob)(http.MethodGet, "/sb/ads/ad2")
	require.Equal(t, http.StatusNotFound, w.Code)

	w = site(t, db, alice)(http.MethodGet, "/sb/ads/ad2")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `<p class="status">pending</p>`)
	require.NotContains(t, w.Body.String(), "<script>")
}

func TestMutations_NotImplemented(t *testing.T) {
	t.Parallel()

	get := site(t, seed(t), admin)
	for _, tc := range []struct{ method, target string }{
		{http.MethodPost, "/sb/auctions"},
		{http.MethodPost, "/sb/auctions/enable/a1"},
		{http.MethodDelete, "/sb/bids/b1"},
		{http.MethodPost, "/sb/ads/ad2/approve"},
		{http.MethodPost, "/api/bids"},
		{http.MethodDelete, "/api/ads/ad1"},
	} {
		w := get(tc.method, tc.target)
		require.Equal(t, http.StatusNotImplemented, w.Code, "%s %s", tc.method, tc.target)
	}
}

func TestAPI_Auctions(t *testing.T) {
	t.Parallel()

	get := site(t, seed(t), nil)

	tests := []struct {
		target string
		want   []string
	}{
		{target: "/api/auctions/open", want: []string{"a1"}},
		{target: "/api/auctions/future", want: []string{"a2"}},
		{target: "/api/auctions/closed", want: []string{"a3"}},
		{target: "/api/auctions/past", want: []string{}},
	}
	for _, tt := range tests {
		w := get(http.MethodGet, tt.target)
		require.Equal(t, http.StatusOK, w.Code, tt.target)

		var list []repository.Auction
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		ids := []string{}
		for _, a := range list {
			ids = append(ids, a.ID)
		}
		require.Equal(t, tt.want, ids, tt.target)
	}

	w := get(http.MethodGet, "/api/auctions")
	var all []repository.Auction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	require.Len(t, all, 3)
}

func TestAPI_Lookups(t *testing.T) {
	t.Parallel()

	get := site(t, seed(t), nil)

	w := get(http.MethodGet, "/api/auctions/time")
	require.Equal(t, http.StatusOK, w.Code)
	var clock handlers.Clock
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &clock))
	require.True(t, clock.Now.Equal(now))
	require.Equal(t, now.UnixMilli(), clock.Unix)

	w = get(http.MethodGet, "/api/auctions/a1/bids")
	var bids []repository.Bid
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bids))
	require.Len(t, bids, 2)

	require.Equal(t, http.StatusNotFound, get(http.MethodGet, "/api/auctions/zzz/bids").Code)

	w = get(http.MethodGet, "/api/auctions/a2")
	var auction repository.Auction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &auction))
	require.Equal(t, "Bicycle", auction.Title)

	w = get(http.MethodGet, "/api/bids/b2")
	var bid repository.Bid
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bid))
	require.EqualValues(t, 1500, bid.Amount)

	require.Equal(t, http.StatusOK, get(http.MethodGet, "/api/ads/ad1").Code)
	require.Equal(t, http.StatusNotFound, get(http.MethodGet, "/api/ads/ad2").Code)
	require.Equal(t, http.StatusNotFound, get(http.MethodGet, "/api/bids/none").Code)
}

func TestNoModels(t *testing.T) {
	t.Parallel()

	w := site(t, nil, nil)(http.MethodGet, "/api/auctions")
	require.Equal(t, http.StatusInternalServerError, w.Code)
}
