package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "sess"

// RedisStore keeps sessions in Redis as JSON blobs whose key TTL matches
// the session's remaining lifetime, so expired sessions vanish on their own.
//
// Values round-trip through JSON: numbers come back as float64 and
// structs as map[string]any.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithRedisPrefix sets the key prefix. Keys are stored as "{prefix}:{id}".
// Default: "sess".
func WithRedisPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// NewRedisStore creates a Redis-backed session store.
// The client should be obtained from pkg/redis.Open.
func NewRedisStore(client redis.UniversalClient, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client: client,
		prefix: defaultRedisPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get loads a session by id.
func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, errors.Join(ErrCorrupt, err)
	}
	if sess.IsExpired() {
		return nil, ErrExpired
	}
	if sess.Values == nil {
		sess.Values = make(map[string]any)
	}
	return &sess, nil
}

// Save writes the session with a TTL equal to its remaining lifetime.
func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	ttl := sess.TTL()
	if ttl <= 0 {
		return s.Delete(ctx, sess.ID)
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	// Redis rounds sub-millisecond TTLs up; keep at least one millisecond.
	if err := s.client.Set(ctx, s.key(sess.ID), data, max(ttl, time.Millisecond)).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

// Delete removes the session record.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

func (s *RedisStore) key(id string) string {
	return s.prefix + ":" + id
}

var _ Store = (*RedisStore)(nil)
