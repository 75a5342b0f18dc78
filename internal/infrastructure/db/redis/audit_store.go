package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/schoolcare/counselor-dashboard/internal/core/domain"
)

// DefaultAuditKey is the list key the audit log is stored under.
const DefaultAuditKey = "adminAudit"

// AuditStore keeps the audit log as a Redis list of JSON records, oldest at
// the head. RPUSH is atomic, so concurrent writers never lose an entry.
type AuditStore struct {
	client *redis.Client
	key    string
}

// NewAuditStore creates an AuditStore under key, or DefaultAuditKey when key
// is empty.
func NewAuditStore(client *redis.Client, key string) *AuditStore {
	if key == "" {
		key = DefaultAuditKey
	}
	return &AuditStore{client: client, key: key}
}

// Append pushes rec to the tail of the list.
func (s *AuditStore) Append(ctx context.Context, rec domain.AuditRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode audit record: %w", err)
	}
	if err := s.client.RPush(ctx, s.key, raw).Err(); err != nil {
		return fmt.Errorf("rpush %s: %w", s.key, err)
	}
	return nil
}

// ReadAll returns every record in insertion order. Entries that do not decode
// are skipped so one corrupt record cannot hide the rest of the log.
func (s *AuditStore) ReadAll(ctx context.Context) ([]domain.AuditRecord, error) {
	raws, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("lrange %s: %w", s.key, err)
	}

	records := make([]domain.AuditRecord, 0, len(raws))
	for _, raw := range raws {
		var rec domain.AuditRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
