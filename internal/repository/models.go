package repository

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("repository: not found")

// AuctionState selects auctions by their bidding window.
type AuctionState string

const (
	// AuctionsOpen are enabled and inside their window.
	AuctionsOpen AuctionState = "open"
	// AuctionsFuture start after now.
	AuctionsFuture AuctionState = "future"
	// AuctionsPast ended at or before now.
	AuctionsPast AuctionState = "past"
	// AuctionsClosed are disabled regardless of their window.
	AuctionsClosed AuctionState = "closed"
)

// Valid reports whether s is a known state.
func (s AuctionState) Valid() bool {
	switch s {
	case AuctionsOpen, AuctionsFuture, AuctionsPast, AuctionsClosed:
		return true
	}
	return false
}

// AdStatus is the moderation state of an ad.
type AdStatus string

const (
	AdPending  AdStatus = "pending"
	AdApproved AdStatus = "approved"
	AdRejected AdStatus = "rejected"
)

type Auction struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	StartsAt    time.Time `db:"starts_at" json:"starts_at"`
	EndsAt      time.Time `db:"ends_at" json:"ends_at"`
	Enabled     bool      `db:"enabled" json:"enabled"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// In reports which state a is in at now.
func (a Auction) In(now time.Time) AuctionState {
	switch {
	case !a.Enabled:
		return AuctionsClosed
	case now.Before(a.StartsAt):
		return AuctionsFuture
	case !now.Before(a.EndsAt):
		return AuctionsPast
	default:
		return AuctionsOpen
	}
}

type Bid struct {
	ID        string    `db:"id" json:"id"`
	AuctionID string    `db:"auction_id" json:"auction_id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Amount    int64     `db:"amount" json:"amount"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Ad struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	AuctionID *string   `db:"auction_id" json:"auction_id,omitempty"`
	Title     string    `db:"title" json:"title"`
	Body      string    `db:"body" json:"body"`
	ImageURL  string    `db:"image_url" json:"image_url"`
	Status    AdStatus  `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// User is the public profile of an account.
type User struct {
	ID        string    `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"-"`
	Admin     bool      `db:"admin" json:"admin"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Models are the look-up-by-id helpers attached to every request.
// Lookups of missing rows return ErrNotFound.
type Models interface {
	Auction(ctx context.Context, id string) (*Auction, error)
	Auctions(ctx context.Context) ([]Auction, error)
	AuctionsBy(ctx context.Context, state AuctionState, now time.Time) ([]Auction, error)
	Bid(ctx context.Context, id string) (*Bid, error)
	BidsForAuction(ctx context.Context, auctionID string) ([]Bid, error)
	Ad(ctx context.Context, id string) (*Ad, error)
	AdsByStatus(ctx context.Context, status AdStatus) ([]Ad, error)
	User(ctx context.Context, id string) (*User, error)
}
