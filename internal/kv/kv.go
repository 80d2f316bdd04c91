// Package kv is a small fail-safe Redis wrapper for short-lived markers.
package kv

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps redis.Client. Write and lookup errors are swallowed so a Redis
// outage degrades to "no markers set". A nil *Client behaves the same way.
type Client struct {
	client *redis.Client
	prefix string
}

// New creates a client whose keys are all namespaced under prefix.
func New(addr, password string, db int, prefix string) *Client {
	return &Client{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		prefix: prefix,
	}
}

func (c *Client) key(k string) string {
	return c.prefix + k
}

// Mark sets key with a TTL. A non-positive ttl is a no-op since the marker
// would already be stale.
func (c *Client) Mark(ctx context.Context, key string, ttl time.Duration) error {
	if c == nil || c.client == nil || ttl <= 0 {
		return nil
	}
	// fail safe: ignore redis errors
	_ = c.client.Set(ctx, c.key(key), "1", ttl).Err()
	return nil
}

// Marked reports whether key is currently set; unreachable redis reads as false.
func (c *Client) Marked(ctx context.Context, key string) bool {
	if c == nil || c.client == nil {
		return false
	}
	n, err := c.client.Exists(ctx, c.key(key)).Result()
	if err != nil {
		return false
	}
	return n > 0
}

// Ping reports whether redis is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
