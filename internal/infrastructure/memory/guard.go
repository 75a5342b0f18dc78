package memory

import (
	"context"
	"sync"
	"time"
)

// MutationGuard is the single-process counterpart of the Redis guard.
type MutationGuard struct {
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
	held map[string]time.Time
}

// NewMutationGuard returns a guard whose keys lapse after ttl.
func NewMutationGuard(ttl time.Duration) *MutationGuard {
	return &MutationGuard{ttl: ttl, now: time.Now, held: make(map[string]time.Time)}
}

func (g *MutationGuard) Acquire(_ context.Context, key string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if exp, ok := g.held[key]; ok && (g.ttl <= 0 || now.Before(exp)) {
		return false, nil
	}
	g.held[key] = now.Add(g.ttl)
	return true, nil
}

func (g *MutationGuard) Release(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.held, key)
	return nil
}
