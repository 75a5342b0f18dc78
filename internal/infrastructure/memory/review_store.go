package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/schoolcare/counselor-dashboard/internal/core/domain"
)

// ReviewStore keeps crisis statuses in a map.
type ReviewStore struct {
	mu       sync.RWMutex
	statuses map[string]domain.CrisisStatus
}

func NewReviewStore() *ReviewStore {
	return &ReviewStore{statuses: make(map[string]domain.CrisisStatus)}
}

func (s *ReviewStore) SetStatus(_ context.Context, key string, status domain.CrisisStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[key] = status
	return nil
}

func (s *ReviewStore) Statuses(context.Context) (map[string]domain.CrisisStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.statuses), nil
}
