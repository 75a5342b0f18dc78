package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultGuardTTL = 30 * time.Second

// MutationGuard marks admin mutations as in flight so a double-submitted
// form is rejected instead of written twice.
// Key format: mutation:<action>:<target>
type MutationGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewMutationGuard creates a MutationGuard. Keys expire after ttl so a
// crashed request cannot block the action forever.
func NewMutationGuard(client *redis.Client, ttl time.Duration) *MutationGuard {
	if ttl <= 0 {
		ttl = defaultGuardTTL
	}
	return &MutationGuard{client: client, ttl: ttl}
}

// Acquire reports whether the caller now holds key.
func (g *MutationGuard) Acquire(ctx context.Context, key string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(key), "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("mutation guard acquire: %w", err)
	}
	return ok, nil
}

// Release frees key.
func (g *MutationGuard) Release(ctx context.Context, key string) error {
	if err := g.client.Del(ctx, g.key(key)).Err(); err != nil {
		return fmt.Errorf("mutation guard release: %w", err)
	}
	return nil
}

func (g *MutationGuard) key(key string) string {
	return "mutation:" + key
}
