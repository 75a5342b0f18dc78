package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/schoolcare/counselor-dashboard/internal/core/ports"
)

const defaultInterval = 5 * time.Second

// Refresher drives the periodic dashboard reload. A tick that lands while a
// reload is still running is skipped rather than queued.
type Refresher struct {
	dashboard ports.DashboardService
	interval  time.Duration
	log       zerolog.Logger
	done      chan struct{}
}

// NewRefresher creates a Refresher. If interval <= 0, defaultInterval is used.
func NewRefresher(dashboard ports.DashboardService, interval time.Duration, log zerolog.Logger) *Refresher {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Refresher{
		dashboard: dashboard,
		interval:  interval,
		log:       log,
		done:      make(chan struct{}),
	}
}

// Start loads the counselor options and the first snapshot, then launches
// the ticker goroutine. It stops when ctx is cancelled.
func (r *Refresher) Start(ctx context.Context) {
	if _, err := r.dashboard.RefreshCounselorOptions(ctx); err != nil {
		r.log.Warn().Err(err).Msg("initial counselor options load failed")
	}
	if _, err := r.dashboard.Reload(ctx, ports.TriggerStartup); err != nil {
		r.log.Warn().Err(err).Msg("initial dashboard load failed")
	}
	go r.run(ctx)
}

// Done is closed once the ticker goroutine has exited.
func (r *Refresher) Done() <-chan struct{} {
	return r.done
}

func (r *Refresher) run(ctx context.Context) {
	defer close(r.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, ran, err := r.dashboard.TryReload(ctx, ports.TriggerTimer); err != nil && ran {
				r.log.Warn().Err(err).Msg("scheduled reload failed")
			}
		}
	}
}
