package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/schoolcare/counselor-dashboard/internal/core/domain"
)

const reviewKey = "crisisReviews"

// ReviewStore keeps crisis triage statuses in a single Redis hash keyed by
// message key.
type ReviewStore struct {
	client *redis.Client
}

func NewReviewStore(client *redis.Client) *ReviewStore {
	return &ReviewStore{client: client}
}

// SetStatus overwrites the status stored for key.
func (s *ReviewStore) SetStatus(ctx context.Context, key string, status domain.CrisisStatus) error {
	if err := s.client.HSet(ctx, reviewKey, key, string(status)).Err(); err != nil {
		return fmt.Errorf("hset %s: %w", reviewKey, err)
	}
	return nil
}

// Statuses returns every stored status.
func (s *ReviewStore) Statuses(ctx context.Context) (map[string]domain.CrisisStatus, error) {
	raw, err := s.client.HGetAll(ctx, reviewKey).Result()
	if err != nil {
		return nil, fmt.Errorf("hgetall %s: %w", reviewKey, err)
	}
	out := make(map[string]domain.CrisisStatus, len(raw))
	for k, v := range raw {
		out[k] = domain.CrisisStatus(v)
	}
	return out, nil
}
