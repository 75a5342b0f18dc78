package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/schoolcare/counselor-dashboard/internal/api/metrics"
	"github.com/schoolcare/counselor-dashboard/internal/core/domain"
	"github.com/schoolcare/counselor-dashboard/internal/core/ports"
)

// AuditLog appends timestamped action records to an AuditStore.
type AuditLog struct {
	store ports.AuditStore
	now   func() time.Time
	loc   *time.Location
	log   zerolog.Logger
}

// NewAuditLog returns an AuditLog writing to store. Display times are
// rendered in loc; nil means the local zone.
func NewAuditLog(store ports.AuditStore, loc *time.Location, log zerolog.Logger) *AuditLog {
	if loc == nil {
		loc = time.Local
	}
	return &AuditLog{store: store, now: time.Now, loc: loc, log: log}
}

// Record appends {now, user, role, action} and returns the stored record.
func (a *AuditLog) Record(ctx context.Context, user, role, action string) (domain.AuditRecord, error) {
	at := a.now().In(a.loc)
	rec := domain.AuditRecord{
		ID:     uuid.NewString(),
		At:     at.UTC(),
		Time:   at.Format(domain.AuditTimeLayout),
		User:   user,
		Role:   role,
		Action: action,
	}

	if err := a.store.Append(ctx, rec); err != nil {
		metrics.AuditRecordsTotal.WithLabelValues("error").Inc()
		return domain.AuditRecord{}, fmt.Errorf("append audit record: %w", err)
	}
	metrics.AuditRecordsTotal.WithLabelValues("ok").Inc()

	a.log.Info().Str("user", user).Str("role", role).Str("action", action).Msg("audit record appended")
	return rec, nil
}

// List returns every record, oldest first.
func (a *AuditLog) List(ctx context.Context) ([]domain.AuditRecord, error) {
	records, err := a.store.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("read audit log: %w", err)
	}
	if records == nil {
		records = []domain.AuditRecord{}
	}
	return records, nil
}
