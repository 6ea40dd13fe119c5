package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adness/starburst/pkg/identity"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ DBTX = (*pgxpool.Pool)(nil)

// Queries implements Models and identity.UserStore on PostgreSQL.
type Queries struct {
	db DBTX
}

// New creates Queries over db.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

var (
	_ Models             = (*Queries)(nil)
	_ identity.UserStore = (*Queries)(nil)
)

const auctionColumns = `id::text AS id, title, description, starts_at, ends_at, enabled, created_at`

func (q *Queries) Auction(ctx context.Context, id string) (*Auction, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return one[Auction](ctx, q.db, `SELECT `+auctionColumns+` FROM auctions WHERE id = $1`, uid)
}

func (q *Queries) Auctions(ctx context.Context) ([]Auction, error) {
	return many[Auction](ctx, q.db, `SELECT `+auctionColumns+` FROM auctions ORDER BY starts_at DESC`)
}

func (q *Queries) AuctionsBy(ctx context.Context, state AuctionState, now time.Time) ([]Auction, error) {
	var where string
	switch state {
	case AuctionsOpen:
		where = `enabled AND starts_at <= $1 AND ends_at > $1`
	case AuctionsFuture:
		where = `enabled AND starts_at > $1`
	case AuctionsPast:
		where = `enabled AND ends_at <= $1`
	case AuctionsClosed:
		where = `NOT enabled AND $1::timestamptz IS NOT NULL`
	default:
		return nil, fmt.Errorf("repository: unknown auction state %q", state)
	}
	return many[Auction](ctx, q.db,
		`SELECT `+auctionColumns+` FROM auctions WHERE `+where+` ORDER BY starts_at`, now)
}

const bidColumns = `id::text AS id, auction_id::text AS auction_id, user_id::text AS user_id, amount, created_at`

func (q *Queries) Bid(ctx context.Context, id string) (*Bid, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return one[Bid](ctx, q.db, `SELECT `+bidColumns+` FROM bids WHERE id = $1`, uid)
}

func (q *Queries) BidsForAuction(ctx context.Context, auctionID string) ([]Bid, error) {
	uid, err := parseID(auctionID)
	if err != nil {
		// no auction can carry a malformed id
		return nil, nil
	}
	return many[Bid](ctx, q.db,
		`SELECT `+bidColumns+` FROM bids WHERE auction_id = $1 ORDER BY amount DESC, created_at`, uid)
}

const adColumns = `id::text AS id, user_id::text AS user_id, auction_id::text AS auction_id, title, body, image_url, status, created_at`

func (q *Queries) Ad(ctx context.Context, id string) (*Ad, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return one[Ad](ctx, q.db, `SELECT `+adColumns+` FROM ads WHERE id = $1`, uid)
}

func (q *Queries) AdsByStatus(ctx context.Context, status AdStatus) ([]Ad, error) {
	return many[Ad](ctx, q.db,
		`SELECT `+adColumns+` FROM ads WHERE status = $1 ORDER BY created_at DESC`, string(status))
}

const userColumns = `id::text AS id, username, name, email, admin, created_at`

func (q *Queries) User(ctx context.Context, id string) (*User, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return one[User](ctx, q.db, `SELECT `+userColumns+` FROM users WHERE id = $1`, uid)
}

type account struct {
	User
	PasswordHash []byte `db:"password_hash"`
}

func (a *account) identity() *identity.User {
	return &identity.User{
		Identity: identity.Identity{
			ID:       a.ID,
			Username: a.Username,
			Name:     a.Name,
			Email:    a.Email,
			Admin:    a.Admin,
		},
		PasswordHash: a.PasswordHash,
	}
}

func (q *Queries) UserByUsername(ctx context.Context, username string) (*identity.User, error) {
	a, err := one[account](ctx, q.db,
		`SELECT `+userColumns+`, password_hash FROM users WHERE LOWER(username) = $1`, strings.ToLower(username))
	if err != nil {
		return nil, userErr(err)
	}
	return a.identity(), nil
}

func (q *Queries) UserByID(ctx context.Context, id string) (*identity.User, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, userErr(err)
	}
	a, err := one[account](ctx, q.db,
		`SELECT `+userColumns+`, password_hash FROM users WHERE id = $1`, uid)
	if err != nil {
		return nil, userErr(err)
	}
	return a.identity(), nil
}

// CreateUser inserts an account and returns its id.
func (q *Queries) CreateUser(ctx context.Context, username, name, email string, admin bool, hash []byte) (string, error) {
	var id string
	err := q.db.QueryRow(ctx,
		`INSERT INTO users (username, name, email, admin, password_hash) VALUES ($1, $2, $3, $4, $5) RETURNING id::text`,
		username, name, email, admin, hash,
	).Scan(&id)
	return id, err
}

// parseID maps ids that cannot be a row key to ErrNotFound, so lookups
// compare the uuid column directly.
func parseID(id string) (uuid.UUID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, ErrNotFound
	}
	return uid, nil
}

func userErr(err error) error {
	if errors.Is(err, ErrNotFound) {
		return identity.ErrUnknownUser
	}
	return err
}

func one[T any](ctx context.Context, db DBTX, sql string, args ...any) (*T, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	v, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return v, err
}

func many[T any](ctx context.Context, db DBTX, sql string, args ...any) ([]T, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[T])
}
