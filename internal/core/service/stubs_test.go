package service

import (
	"context"
	"errors"
	"sync"

	"github.com/schoolcare/counselor-dashboard/internal/core/domain"
	"github.com/schoolcare/counselor-dashboard/internal/core/ports"
)

// ---------------------------------------------------------------------------
// SIS stub
// ---------------------------------------------------------------------------

type stubSIS struct {
	mu sync.Mutex

	counselors []domain.Counselor
	students   []domain.Student
	messages   []domain.Message

	counselorsErr error
	studentsErr   error
	messagesErr   error
	writeErr      error

	// honourCtx makes the list calls fail once ctx is done.
	honourCtx bool

	listCalls     int
	created       []domain.Counselor
	deleted       []string
	studentsAdded []domain.Student
}

func (s *stubSIS) ListCounselors(ctx context.Context) ([]domain.Counselor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.honourCtx && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	s.listCalls++
	if s.counselorsErr != nil {
		return nil, s.counselorsErr
	}
	return append([]domain.Counselor(nil), s.counselors...), nil
}

func (s *stubSIS) ListStudents(ctx context.Context) ([]domain.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.honourCtx && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if s.studentsErr != nil {
		return nil, s.studentsErr
	}
	return append([]domain.Student(nil), s.students...), nil
}

func (s *stubSIS) ListMessages(ctx context.Context) ([]domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.honourCtx && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if s.messagesErr != nil {
		return nil, s.messagesErr
	}
	return append([]domain.Message(nil), s.messages...), nil
}

func (s *stubSIS) CreateCounselor(_ context.Context, c domain.Counselor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, c)
	if s.writeErr != nil {
		return s.writeErr
	}
	s.counselors = append(s.counselors, c)
	return nil
}

func (s *stubSIS) DeleteCounselor(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, username)
	return s.writeErr
}

func (s *stubSIS) CreateStudent(_ context.Context, st domain.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.studentsAdded = append(s.studentsAdded, st)
	if s.writeErr != nil {
		return s.writeErr
	}
	s.students = append(s.students, st)
	return nil
}

// ---------------------------------------------------------------------------
// Store stubs
// ---------------------------------------------------------------------------

type stubAuditStore struct {
	records   []domain.AuditRecord
	appendErr error
	readErr   error
	honourCtx bool
}

func (s *stubAuditStore) Append(ctx context.Context, r domain.AuditRecord) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	if s.honourCtx && ctx.Err() != nil {
		return ctx.Err()
	}
	s.records = append(s.records, r)
	return nil
}

func (s *stubAuditStore) ReadAll(context.Context) ([]domain.AuditRecord, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	return append([]domain.AuditRecord(nil), s.records...), nil
}

type stubReviewStore struct {
	statuses map[string]domain.CrisisStatus
	setErr   error
}

func newStubReviewStore() *stubReviewStore {
	return &stubReviewStore{statuses: make(map[string]domain.CrisisStatus)}
}

func (s *stubReviewStore) SetStatus(_ context.Context, key string, status domain.CrisisStatus) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.statuses[key] = status
	return nil
}

func (s *stubReviewStore) Statuses(context.Context) (map[string]domain.CrisisStatus, error) {
	out := make(map[string]domain.CrisisStatus, len(s.statuses))
	for k, v := range s.statuses {
		out[k] = v
	}
	return out, nil
}

type stubGuard struct {
	held       map[string]bool
	acquireErr error
	released   []string
}

func newStubGuard() *stubGuard {
	return &stubGuard{held: make(map[string]bool)}
}

func (g *stubGuard) Acquire(_ context.Context, key string) (bool, error) {
	if g.acquireErr != nil {
		return false, g.acquireErr
	}
	if g.held[key] {
		return false, nil
	}
	g.held[key] = true
	return true, nil
}

func (g *stubGuard) Release(_ context.Context, key string) error {
	delete(g.held, key)
	g.released = append(g.released, key)
	return nil
}

// ---------------------------------------------------------------------------
// Dashboard stub: counts reloads and option refreshes.
// ---------------------------------------------------------------------------

type countingDashboard struct {
	collections    domain.Collections
	reloads        int
	optionRefreshs int
}

func (d *countingDashboard) Reload(context.Context, ports.ReloadTrigger) (ports.Snapshot, error) {
	d.reloads++
	return ports.Snapshot{}, nil
}

func (d *countingDashboard) TryReload(ctx context.Context, t ports.ReloadTrigger) (ports.Snapshot, bool, error) {
	snap, err := d.Reload(ctx, t)
	return snap, true, err
}

func (d *countingDashboard) Snapshot() ports.Snapshot { return ports.Snapshot{} }

func (d *countingDashboard) RefreshCounselorOptions(context.Context) ([]ports.CounselorOption, error) {
	d.optionRefreshs++
	return nil, nil
}

func (d *countingDashboard) CounselorOptions() []ports.CounselorOption { return nil }

func (d *countingDashboard) Collections() domain.Collections { return d.collections }

var errUnreachable = errors.New("dial tcp: connection refused")
