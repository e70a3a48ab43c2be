package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenDenylist records revoked refresh-token IDs (JWT jti) until they would
// have expired anyway. Backed by Redis when available; otherwise an
// in-process map so single-node deployments still revoke correctly.
type TokenDenylist struct {
	redis *redis.Client

	mu    sync.Mutex
	local map[string]time.Time
}

// NewTokenDenylist creates a denylist over the given Redis client, which may
// be nil.
func NewTokenDenylist(client *redis.Client) *TokenDenylist {
	return &TokenDenylist{
		redis: client,
		local: make(map[string]time.Time),
	}
}

func denyKey(jti string) string {
	return fmt.Sprintf("revoked_refresh:%s", jti)
}

// Revoke marks a token ID as unusable for the given remaining lifetime.
func (d *TokenDenylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// Already expired; nothing to remember.
		return nil
	}
	if d.redis != nil {
		return d.redis.Set(ctx, denyKey(jti), "1", ttl).Err()
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.local[jti] = time.Now().Add(ttl)
	d.sweepLocked()
	return nil
}

// IsRevoked reports whether the token ID has been revoked.
func (d *TokenDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if d.redis != nil {
		n, err := d.redis.Exists(ctx, denyKey(jti)).Result()
		if err != nil {
			return false, err
		}
		return n > 0, nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	expiry, ok := d.local[jti]
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		delete(d.local, jti)
		return false, nil
	}
	return true, nil
}

// sweepLocked drops expired local entries. Caller holds d.mu.
func (d *TokenDenylist) sweepLocked() {
	now := time.Now()
	for jti, expiry := range d.local {
		if now.After(expiry) {
			delete(d.local, jti)
		}
	}
}
