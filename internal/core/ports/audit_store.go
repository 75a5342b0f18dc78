package ports

import (
	"context"

	"github.com/schoolcare/counselor-dashboard/internal/core/domain"
)

// AuditStore is the append-only backend behind the audit log.
type AuditStore interface {
	Append(ctx context.Context, record domain.AuditRecord) error
	// ReadAll returns every record in insertion order.
	ReadAll(ctx context.Context) ([]domain.AuditRecord, error)
}

// AuditRecorder appends audit records on behalf of an actor.
type AuditRecorder interface {
	Record(ctx context.Context, user, role, action string) (domain.AuditRecord, error)
	List(ctx context.Context) ([]domain.AuditRecord, error)
}
