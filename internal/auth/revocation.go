package auth

import (
	"context"
	"time"

	"campushub/internal/kv"
)

// RevocationList records token ids that must no longer authenticate.
type RevocationList interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) bool
}

// RedisRevocations keeps revoked token ids in Redis until the token would
// have expired anyway.
type RedisRevocations struct {
	store *kv.Client
}

// Ensure RedisRevocations implements RevocationList
var _ RevocationList = (*RedisRevocations)(nil)

// NewRedisRevocations creates a revocation list on top of a kv client.
func NewRedisRevocations(store *kv.Client) *RedisRevocations {
	return &RedisRevocations{store: store}
}

// Revoke blacklists tokenID for ttl.
func (r *RedisRevocations) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return r.store.Mark(ctx, tokenID, ttl)
}

// IsRevoked checks the blacklist. Redis being down reads as not revoked.
func (r *RedisRevocations) IsRevoked(ctx context.Context, tokenID string) bool {
	return r.store.Marked(ctx, tokenID)
}
