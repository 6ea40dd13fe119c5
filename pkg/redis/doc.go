// Package redis opens the Redis client that backs the session store.
//
// The server is addressed by host and port rather than a URL:
//
//	client, err := redis.Open(ctx, redis.Config{Host: "localhost", Port: 6379},
//	    redis.WithRetry(5, time.Second),
//	)
//
// [Open] pings the server and retries with a linear backoff until the
// configured attempts are exhausted. [Healthcheck] and [Shutdown] return
// closures for the readiness endpoint and the shutdown hooks.
package redis
