// Package memory holds process-local implementations of the storage ports.
// They are the default backends and what tests run against.
package memory

import (
	"context"
	"sync"

	"github.com/schoolcare/counselor-dashboard/internal/core/domain"
)

// AuditStore keeps the audit log in a slice.
type AuditStore struct {
	mu      sync.Mutex
	records []domain.AuditRecord
}

func NewAuditStore() *AuditStore {
	return &AuditStore{}
}

func (s *AuditStore) Append(_ context.Context, rec domain.AuditRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

// ReadAll returns a copy of the log, oldest first.
func (s *AuditStore) ReadAll(context.Context) ([]domain.AuditRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AuditRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}
