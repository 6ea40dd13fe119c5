package cache

import "time"

// Option configures a Memory cache.
type Option func(*options)

type options struct {
	defaultTTL      time.Duration
	cleanupInterval time.Duration
	maxEntries      int
	now             func() time.Time
}

func defaultOptions() *options {
	return &options{
		defaultTTL: time.Hour,
		now:        time.Now,
	}
}

// WithDefaultTTL sets the expiration used when Set is called with a zero TTL.
// A negative value keeps entries until they are deleted or evicted.
// Default: 1 hour.
func WithDefaultTTL(d time.Duration) Option {
	return func(o *options) {
		o.defaultTTL = d
	}
}

// WithCleanupInterval starts a janitor that drops expired entries at the
// given interval. Expired entries are otherwise removed when read.
// Default: 0 (no janitor).
func WithCleanupInterval(d time.Duration) Option {
	return func(o *options) {
		o.cleanupInterval = d
	}
}

// WithMaxEntries bounds the cache. When full, the least recently used entry
// is evicted. Zero means unlimited.
func WithMaxEntries(n int) Option {
	return func(o *options) {
		o.maxEntries = n
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
