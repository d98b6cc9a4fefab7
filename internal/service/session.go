package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRevoker remembers token ids that were logged out before they expired.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RedisTokenRevoker stores revoked token ids with a TTL matching the token
// expiry.
type RedisTokenRevoker struct {
	redis     *redis.Client
	keyPrefix string
}

func NewRedisTokenRevoker(client *redis.Client) *RedisTokenRevoker {
	return &RedisTokenRevoker{redis: client, keyPrefix: "revoked_token"}
}

func (r *RedisTokenRevoker) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return r.redis.Set(ctx, fmt.Sprintf("%s:%s", r.keyPrefix, tokenID), 1, ttl).Err()
}

func (r *RedisTokenRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.redis.Exists(ctx, fmt.Sprintf("%s:%s", r.keyPrefix, tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MemoryTokenRevoker is the in-process fallback used without redis. Expired
// ids are swept on Revoke, at most once per sweepInterval.
type MemoryTokenRevoker struct {
	mu            sync.Mutex
	revoked       map[string]time.Time
	now           func() time.Time
	lastSweep     time.Time
	sweepInterval time.Duration
}

func NewMemoryTokenRevoker() *MemoryTokenRevoker {
	return &MemoryTokenRevoker{
		revoked:       make(map[string]time.Time),
		now:           time.Now,
		sweepInterval: time.Minute,
	}
}

func (r *MemoryTokenRevoker) Revoke(_ context.Context, tokenID string, until time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if now.Sub(r.lastSweep) >= r.sweepInterval {
		r.lastSweep = now
		for id, exp := range r.revoked {
			if now.After(exp) {
				delete(r.revoked, id)
			}
		}
	}
	if now.After(until) {
		return nil
	}
	r.revoked[tokenID] = until
	return nil
}

func (r *MemoryTokenRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	until, ok := r.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if r.now().After(until) {
		delete(r.revoked, tokenID)
		return false, nil
	}
	return true, nil
}

// Len reports how many revoked ids are held.
func (r *MemoryTokenRevoker) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.revoked)
}
