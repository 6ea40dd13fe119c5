package repository

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/adness/starburst/pkg/identity"
)

// Memory is an in-process Models implementation for development and tests.
// Its users are backed by an identity.MemoryUsers so the same accounts can
// log in.
type Memory struct {
	*identity.MemoryUsers

	mu       sync.RWMutex
	auctions map[string]Auction
	bids     map[string]Bid
	ads      map[string]Ad
}

var _ Models = (*Memory)(nil)

// NewMemory creates an empty store.
func NewMemory() *Memory {
	return &Memory{
		MemoryUsers: identity.NewMemoryUsers(),
		auctions:    make(map[string]Auction),
		bids:        make(map[string]Bid),
		ads:         make(map[string]Ad),
	}
}

func (m *Memory) PutAuction(a Auction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.auctions[a.ID] = a
}

func (m *Memory) PutBid(b Bid) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bids[b.ID] = b
}

func (m *Memory) PutAd(a Ad) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ads[a.ID] = a
}

func (m *Memory) Auction(_ context.Context, id string) (*Auction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.auctions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (m *Memory) Auctions(_ context.Context) ([]Auction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := collect(m.auctions, func(Auction) bool { return true })
	slices.SortFunc(out, func(a, b Auction) int { return b.StartsAt.Compare(a.StartsAt) })
	return out, nil
}

func (m *Memory) AuctionsBy(_ context.Context, state AuctionState, now time.Time) ([]Auction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := collect(m.auctions, func(a Auction) bool { return a.In(now) == state })
	slices.SortFunc(out, func(a, b Auction) int { return a.StartsAt.Compare(b.StartsAt) })
	return out, nil
}

func (m *Memory) Bid(_ context.Context, id string) (*Bid, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.bids[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (m *Memory) BidsForAuction(_ context.Context, auctionID string) ([]Bid, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := collect(m.bids, func(b Bid) bool { return b.AuctionID == auctionID })
	slices.SortFunc(out, func(a, b Bid) int {
		return cmp.Or(cmp.Compare(b.Amount, a.Amount), a.CreatedAt.Compare(b.CreatedAt))
	})
	return out, nil
}

func (m *Memory) Ad(_ context.Context, id string) (*Ad, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.ads[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (m *Memory) AdsByStatus(_ context.Context, status AdStatus) ([]Ad, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := collect(m.ads, func(a Ad) bool { return a.Status == status })
	slices.SortFunc(out, func(a, b Ad) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, nil
}

func (m *Memory) User(ctx context.Context, id string) (*User, error) {
	u, err := m.UserByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return &User{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Email:    u.Email,
		Admin:    u.Admin,
	}, nil
}

func collect[T any](m map[string]T, keep func(T) bool) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
