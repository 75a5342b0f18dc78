package ports

import (
	"context"

	"github.com/schoolcare/counselor-dashboard/internal/core/domain"
)

// ReviewStore persists the triage status of crisis messages by message key.
type ReviewStore interface {
	SetStatus(ctx context.Context, messageKey string, status domain.CrisisStatus) error
	// Statuses returns every known status. Keys without an entry are Unseen.
	Statuses(ctx context.Context) (map[string]domain.CrisisStatus, error)
}
