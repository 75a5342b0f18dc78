package ports

import (
	"context"
	"time"

	"github.com/schoolcare/counselor-dashboard/internal/core/domain"
)

// ReloadTrigger names who asked for a reload.
type ReloadTrigger string

const (
	TriggerTimer    ReloadTrigger = "timer"
	TriggerUser     ReloadTrigger = "user"
	TriggerMutation ReloadTrigger = "mutation"
	TriggerStartup  ReloadTrigger = "startup"
)

// CounselorCard is the view model of one counselor card.
type CounselorCard struct {
	Name             string   `json:"name"`
	Username         string   `json:"username"`
	AssignedStudents int      `json:"assigned_students"`
	ActiveCrises     int      `json:"active_crises"`
	Synthesized      bool     `json:"synthesized"`
	Actions          []string `json:"actions"`
}

// StudentRow is the view model of one student table row.
type StudentRow struct {
	Key         string   `json:"key"`
	Name        string   `json:"name"`
	Grade       string   `json:"grade"`
	Counselor   string   `json:"counselor"`
	CrisisBadge string   `json:"crisis_badge,omitempty"`
	Actions     []string `json:"actions"`
}

// CrisisCard is the view model of one crisis monitor card.
type CrisisCard struct {
	Key       string   `json:"key"`
	Title     string   `json:"title"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Counselor string   `json:"counselor"`
	Status    string   `json:"status"`
	Actions   []string `json:"actions"`
}

// AuditRow is the view model of one audit table row.
type AuditRow struct {
	Time   string `json:"time"`
	User   string `json:"user"`
	Role   string `json:"role"`
	Action string `json:"action"`
}

// Summary holds the aggregate counters shown above the panels.
type Summary struct {
	TotalCounselors int    `json:"total_counselors"`
	TotalStudents   int    `json:"total_students"`
	ActiveCrises    int    `json:"active_crises"`
	CrisisLabel     string `json:"crisis_label"`
}

// Panels is everything one render pass produces.
type Panels struct {
	Summary    Summary         `json:"summary"`
	Counselors []CounselorCard `json:"counselors"`
	Students   []StudentRow    `json:"students"`
	Crises     []CrisisCard    `json:"crises"`
	Audit      []AuditRow      `json:"audit"`
}

// Snapshot is the last applied reload.
type Snapshot struct {
	Panels    Panels        `json:"panels"`
	Sequence  uint64        `json:"sequence"`
	Trigger   ReloadTrigger `json:"trigger"`
	LoadedAt  time.Time     `json:"loaded_at"`
	FetchFail bool          `json:"fetch_failed"`
}

// CounselorOption is one entry of the student form's counselor dropdown.
type CounselorOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// DashboardService reloads and serves the dashboard.
type DashboardService interface {
	Reload(ctx context.Context, trigger ReloadTrigger) (Snapshot, error)
	// TryReload behaves like Reload but returns false without waiting when
	// another reload is already running.
	TryReload(ctx context.Context, trigger ReloadTrigger) (Snapshot, bool, error)
	Snapshot() Snapshot
	RefreshCounselorOptions(ctx context.Context) ([]CounselorOption, error)
	CounselorOptions() []CounselorOption
	// Collections returns the merged collections of the current snapshot.
	Collections() domain.Collections
}
