package ports

import "context"

// MutationGuard rejects a mutation while an identical one is still in flight.
type MutationGuard interface {
	// Acquire reports false when key is already held.
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}
