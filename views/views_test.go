package views_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"

	"github.com/adness/starburst/internal/repository"
	"github.com/adness/starburst/pkg/identity"
	"github.com/adness/starburst/views"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestLayout(t *testing.T) {
	t.Parallel()

	site := views.Site{Title: "Rules", Prefix: "/sb", CSS: "/assets/app-1.css", JS: "/assets/app-1.js", Year: 2024}

	t.Run("anonymous", func(t *testing.T) {
		t.Parallel()

		body := render(t, views.ContentPage(site, "<h1>Rules</h1>"))
		require.Contains(t, body, "<!DOCTYPE html>")
		require.Contains(t, body, "<title>Rules · StarBurst</title>")
		require.Contains(t, body, `<link rel="stylesheet" href="/assets/app-1.css">`)
		require.Contains(t, body, `<script defer src="/assets/app-1.js"></script>`)
		require.Contains(t, body, `<a href="/sb/payment">Payment</a>`)
		require.Contains(t, body, `<main><article class="page"><h1>Rules</h1></article></main>`)
		require.Contains(t, body, `<form class="login" method="post" action="/login">`)
		require.Contains(t, body, "<footer>© 2024 StarBurst</footer>")
	})

	t.Run("signed in admin", func(t *testing.T) {
		t.Parallel()

		s := site
		s.User = &identity.Identity{ID: "u3", Username: "root", Admin: true}
		body := render(t, views.ContentPage(s, ""))
		require.NotContains(t, body, `class="login"`)
		require.Contains(t, body, `<a href="/sb/users/u3">root</a>`)
		require.Contains(t, body, `<a href="/admin">Admin</a>`)
		require.Contains(t, body, `<a href="/logout">Sign out</a>`)
	})

	t.Run("untitled", func(t *testing.T) {
		t.Parallel()

		s := site
		s.Title = ""
		require.Contains(t, render(t, views.ContentPage(s, "")), "<title>StarBurst</title>")
	})
}

func TestEscaping(t *testing.T) {
	t.Parallel()

	site := views.Site{Prefix: "/sb", User: &identity.Identity{ID: "u1", Username: "alice"}}

	t.Run("attribute values", func(t *testing.T) {
		t.Parallel()

		body := render(t, views.AdFormPage(site, views.AdForm{
			Heading: "Edit ad",
			Action:  "/sb/ads/ad1",
			Ad:      repository.Ad{ID: "ad1", Title: `"><script>x</script>`, Body: "</textarea><b>"},
		}))
		require.NotContains(t, body, "<script>x")
		require.Contains(t, body, `value="&#34;&gt;&lt;script&gt;x&lt;/script&gt;"`)
		require.Contains(t, body, `<textarea name="body">&lt;/textarea&gt;&lt;b&gt;</textarea>`)
	})

	t.Run("unsafe urls", func(t *testing.T) {
		t.Parallel()

		body := render(t, views.AdPage(site, views.AdView{
			Ad: repository.Ad{ID: "ad1", UserID: "u2", Title: "Chairs", ImageURL: "javascript:alert(1)", Status: repository.AdApproved},
		}))
		require.NotContains(t, body, "javascript:")
		require.Contains(t, body, `src="about:invalid#TemplFailedSanitizationURL"`)
		require.NotContains(t, body, "/sb/ads/ad1/edit")
	})

	t.Run("qr text", func(t *testing.T) {
		t.Parallel()

		body := render(t, views.QRPage(site, "REF-<x>&y"))
		require.Contains(t, body, "<code>REF-&lt;x&gt;&amp;y</code>")
	})
}

func TestAuctionPage(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	auction := repository.Auction{ID: "a1", Title: "Lamp", StartsAt: now.Add(-time.Hour), EndsAt: now.Add(time.Hour), Enabled: true}
	v := views.AuctionView{
		Auction: auction,
		State:   auction.In(now),
		Bids: []repository.Bid{
			{ID: "b2", UserID: "u2", Amount: 1500},
			{ID: "b1", UserID: "u1", Amount: 1250},
		},
	}

	anonymous := render(t, views.AuctionPage(views.Site{Prefix: "/sb"}, v))
	require.Contains(t, anonymous, `<p class="state">open</p>`)
	require.Contains(t, anonymous, `<span class="amount">15.00</span>`)
	require.Contains(t, anonymous, "2024-05-01 11:00 UTC to 2024-05-01 13:00 UTC")
	require.NotContains(t, anonymous, `class="bid"`)
	require.NotContains(t, anonymous, "Withdraw")

	bidder := render(t, views.AuctionPage(views.Site{Prefix: "/sb", User: &identity.Identity{ID: "u1"}}, v))
	require.Contains(t, bidder, `<form class="bid" method="post" action="/sb/bids"><input type="hidden" name="auctionId" value="a1">`)
	require.Contains(t, bidder, `action="/sb/bids/b1"`)
	require.NotContains(t, bidder, `action="/sb/bids/b2"`)
	require.NotContains(t, bidder, "Edit auction")

	edit := render(t, views.AuctionEditPage(views.Site{Prefix: "/sb"}, auction))
	require.Contains(t, edit, `value="2024-05-01T11:00"`)
	require.Contains(t, edit, `action="/sb/auctions/disable/a1"><button>disable</button>`)
}

func TestAdminPage(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	body := render(t, views.AdminPage(views.Site{Prefix: "/sb"}, views.Admin{
		Now:      now,
		Auctions: []repository.Auction{{ID: "a3", Title: "Radio", Enabled: false}},
	}))
	require.Contains(t, body, "<p>Nothing to review.</p>")
	require.Contains(t, body, `<a href="/sb/auctions/a3">Radio</a> <span class="state">closed</span> <a href="/admin/auctions/edit/a3">Edit</a>`)
}
