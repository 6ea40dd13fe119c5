// Package cache provides a generic in-memory cache with TTL expiration,
// optional LRU eviction and stampede-free loading.
//
//	c := cache.NewMemory[*Page](
//	    cache.WithDefaultTTL(5 * time.Minute),
//	    cache.WithMaxEntries(256),
//	)
//	defer c.Close()
//
//	page, err := c.GetOrSet(ctx, "rules", func(ctx context.Context) (*Page, time.Duration, error) {
//	    p, err := render("rules")
//	    return p, 0, err
//	})
//
// TTL semantics for Set: a positive duration expires the entry after that
// long, zero uses the configured default and a negative duration never
// expires.
package cache
