package auth

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	appErr "github.com/airsense/platform/pkg/errors"
)

// Denylist tracks revoked tokens until they expire on their own. Revoking a
// token at logout makes Revoked report true for it for at least ttl.
type Denylist interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	Revoked(ctx context.Context, token string) (bool, error)
}

const denylistPrefix = "revoked_token:"

// RedisDenylist keys revoked tokens in Redis with a TTL, so revocations
// survive restarts and are shared across instances.
type RedisDenylist struct {
	rdb *redis.Client
}

func NewRedisDenylist(rdb *redis.Client) *RedisDenylist {
	return &RedisDenylist{rdb: rdb}
}

func (d *RedisDenylist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // already expired, nothing to track
	}
	if err := d.rdb.Set(ctx, denylistPrefix+token, "1", ttl).Err(); err != nil {
		return appErr.Wrap(err, appErr.CodeUnavailable, "revoke token failed")
	}
	return nil
}

func (d *RedisDenylist) Revoked(ctx context.Context, token string) (bool, error) {
	n, err := d.rdb.Exists(ctx, denylistPrefix+token).Result()
	if err != nil {
		return false, appErr.Wrap(err, appErr.CodeUnavailable, "denylist lookup failed")
	}
	return n > 0, nil
}

// MemoryDenylist is a process-local Denylist for tests.
type MemoryDenylist struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func NewMemoryDenylist() *MemoryDenylist {
	return &MemoryDenylist{entries: map[string]time.Time{}}
}

func (d *MemoryDenylist) Revoke(_ context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries[token] = time.Now().Add(ttl)
	return nil
}

func (d *MemoryDenylist) Revoked(_ context.Context, token string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	exp, ok := d.entries[token]
	if !ok {
		return false, nil
	}
	if time.Now().After(exp) {
		delete(d.entries, token)
		return false, nil
	}
	return true, nil
}
