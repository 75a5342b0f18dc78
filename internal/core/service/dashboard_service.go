package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/schoolcare/counselor-dashboard/internal/api/metrics"
	"github.com/schoolcare/counselor-dashboard/internal/core/domain"
	"github.com/schoolcare/counselor-dashboard/internal/core/ports"
)

// DashboardService owns the current dashboard snapshot.
//
// Reloads are serialized through reloadMu, so renders are applied in the
// order reloads started. Each applied snapshot carries a sequence number and
// a snapshot older than the current one is discarded.
type DashboardService struct {
	sis     ports.SISClient
	fetcher *Fetcher
	audit   ports.AuditRecorder
	reviews ports.ReviewStore
	log     zerolog.Logger
	now     func() time.Time

	reloadMu sync.Mutex
	seq      uint64

	mu          sync.RWMutex
	snapshot    ports.Snapshot
	collections domain.Collections
	options     []ports.CounselorOption

	optionsGroup singleflight.Group
}

// NewDashboardService wires the reload pipeline.
func NewDashboardService(
	sis ports.SISClient,
	audit ports.AuditRecorder,
	reviews ports.ReviewStore,
	log zerolog.Logger,
) *DashboardService {
	empty := domain.EmptyCollections()
	return &DashboardService{
		sis:         sis,
		fetcher:     NewFetcher(sis, log),
		audit:       audit,
		reviews:     reviews,
		log:         log,
		now:         time.Now,
		collections: empty,
		snapshot:    ports.Snapshot{Panels: BuildPanels(empty, nil, nil)},
		options:     []ports.CounselorOption{},
	}
}

// Reload fetches, renders and swaps in a new snapshot, waiting for any
// reload already in flight to finish first.
func (s *DashboardService) Reload(ctx context.Context, trigger ports.ReloadTrigger) (ports.Snapshot, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()
	return s.reloadLocked(ctx, trigger)
}

// TryReload reloads only if no other reload is running.
func (s *DashboardService) TryReload(ctx context.Context, trigger ports.ReloadTrigger) (ports.Snapshot, bool, error) {
	if !s.reloadMu.TryLock() {
		metrics.ReloadsTotal.WithLabelValues(string(trigger), "skipped").Inc()
		s.log.Debug().Str("trigger", string(trigger)).Msg("reload already in flight, skipping")
		return s.Snapshot(), false, nil
	}
	defer s.reloadMu.Unlock()
	snap, err := s.reloadLocked(ctx, trigger)
	return snap, true, err
}

func (s *DashboardService) reloadLocked(ctx context.Context, trigger ports.ReloadTrigger) (ports.Snapshot, error) {
	start := s.now()
	s.seq++
	seq := s.seq

	collections, fetchErr := s.fetcher.Fetch(ctx)

	statuses, err := s.reviews.Statuses(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to read crisis review statuses, rendering as unseen")
		statuses = nil
	}

	records, err := s.audit.List(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to read audit log, rendering empty")
		records = nil
	}

	snap := ports.Snapshot{
		Panels:    BuildPanels(collections, statuses, records),
		Sequence:  seq,
		Trigger:   trigger,
		LoadedAt:  s.now().UTC(),
		FetchFail: fetchErr != nil,
	}

	if !s.apply(snap, collections) {
		metrics.ReloadsTotal.WithLabelValues(string(trigger), "stale").Inc()
		return s.Snapshot(), nil
	}

	result := "ok"
	if fetchErr != nil {
		result = "fetch_failed"
	}
	metrics.ReloadsTotal.WithLabelValues(string(trigger), result).Inc()
	metrics.ReloadDuration.WithLabelValues(string(trigger)).Observe(s.now().Sub(start).Seconds())
	metrics.ActiveCrises.Set(float64(snap.Panels.Summary.ActiveCrises))

	s.log.Debug().
		Str("trigger", string(trigger)).
		Uint64("sequence", seq).
		Int("counselors", snap.Panels.Summary.TotalCounselors).
		Int("students", snap.Panels.Summary.TotalStudents).
		Int("crises", snap.Panels.Summary.ActiveCrises).
		Msg("dashboard reloaded")

	return snap, fetchErr
}

// apply swaps in snap unless a newer snapshot is already current.
// Reload assigns sequences under reloadMu, so snapshots from Reload arrive in
// order and never hit the stale branch. The check keeps the current snapshot
// monotonic for any caller that applies outside that lock.
func (s *DashboardService) apply(snap ports.Snapshot, c domain.Collections) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if snap.Sequence < s.snapshot.Sequence {
		return false
	}
	s.snapshot = snap
	s.collections = c
	return true
}

// Snapshot returns the current snapshot.
func (s *DashboardService) Snapshot() ports.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Collections returns the merged collections behind the current snapshot.
func (s *DashboardService) Collections() domain.Collections {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collections
}

// RefreshCounselorOptions reloads the counselor dropdown straight from the
// counselor endpoint. Synthesized counselors are not offered. Concurrent
// callers share one upstream request. On failure the previous options stay.
func (s *DashboardService) RefreshCounselorOptions(ctx context.Context) ([]ports.CounselorOption, error) {
	v, err, _ := s.optionsGroup.Do("counselor-options", func() (any, error) {
		counselors, err := s.sis.ListCounselors(ctx)
		if err != nil {
			return nil, err
		}
		opts := make([]ports.CounselorOption, 0, len(counselors))
		for _, c := range counselors {
			opts = append(opts, ports.CounselorOption{Value: c.Username, Label: clean(c.Name)})
		}
		return opts, nil
	})
	if err != nil {
		s.log.Error().Err(err).Msg("failed to refresh counselor options")
		return s.CounselorOptions(), err
	}

	opts, ok := v.([]ports.CounselorOption)
	if !ok {
		return s.CounselorOptions(), errors.New("counselor options: unexpected result type")
	}

	s.mu.Lock()
	s.options = opts
	s.mu.Unlock()
	return opts, nil
}

// CounselorOptions returns the last loaded dropdown options.
func (s *DashboardService) CounselorOptions() []ports.CounselorOption {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ports.CounselorOption, len(s.options))
	copy(out, s.options)
	return out
}
