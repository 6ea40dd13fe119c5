// Package views holds the server-rendered pages. Components are written in
// .templ files; the _templ.go files are generated with `templ generate`.
package views

import (
	"fmt"
	"html/template"
	"time"

	"github.com/adness/starburst/internal/repository"
	"github.com/adness/starburst/pkg/identity"
)

// Site is the layout data every page needs.
type Site struct {
	User   *identity.Identity
	Title  string
	Prefix string
	CSS    string
	JS     string
	Year   int
}

// IsAdmin reports whether the viewer is an administrator.
func (s Site) IsAdmin() bool {
	return s.User != nil && s.User.Admin
}

// Owns reports whether the viewer may manage what userID owns.
func (s Site) Owns(userID string) bool {
	return s.User != nil && (s.User.ID == userID || s.User.Admin)
}

// Home is the list shown under the landing page text.
type Home struct {
	Open []repository.Auction
	Ads  []repository.Ad
}

type Profile struct {
	User      repository.User
	ShowEmail bool
	Self      bool
}

type AdForm struct {
	Heading string
	Action  string
	Ad      repository.Ad
}

type Admin struct {
	Now      time.Time
	Pending  []repository.Ad
	Auctions []repository.Auction
}

// AuctionView is an auction with its bids, highest first.
type AuctionView struct {
	Auction repository.Auction
	State   repository.AuctionState
	Bids    []repository.Bid
}

// AdView carries the ad with its body already rendered and sanitized.
type AdView struct {
	Ad   repository.Ad
	Body template.HTML
}

func pageTitle(title string) string {
	if title == "" {
		return "StarBurst"
	}
	return title + " · StarBurst"
}

func copyright(year int) string {
	return fmt.Sprintf("© %d StarBurst", year)
}

func displayName(name, username string) string {
	if name != "" {
		return name
	}
	return username
}

// formatAmount renders an amount in cents.
func formatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign, cents = "-", -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04 MST")
}

func datetimeLocal(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04")
}

// toggle names the switch action offered for a.
func toggle(a repository.Auction) string {
	if a.Enabled {
		return "disable"
	}
	return "enable"
}
