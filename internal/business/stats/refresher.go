package stats

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/academyhub/stats/apps/api/pkg/model"
)

// ErrRefreshInProgress is returned when a snapshot refresh is already running.
var ErrRefreshInProgress = errors.New("stats refresh already in progress")

// Refresher persists academy snapshots on an interval. At most one refresh
// runs at a time; overlapping ticks are skipped rather than queued.
type Refresher struct {
	svc      *Service
	interval time.Duration
	timeout  time.Duration

	mu      sync.Mutex
	running bool
	last    model.StatsSnapshot
	lastErr error
}

// NewRefresher builds a refresher. A non-positive interval disables Run.
func NewRefresher(svc *Service, interval time.Duration) *Refresher {
	timeout := interval
	if timeout <= 0 || timeout > 5*time.Minute {
		timeout = 5 * time.Minute
	}
	return &Refresher{svc: svc, interval: interval, timeout: timeout}
}

// RunOnce refreshes immediately unless another refresh holds the slot.
func (r *Refresher) RunOnce(ctx context.Context) (model.StatsSnapshot, error) {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return model.StatsSnapshot{}, ErrRefreshInProgress
	}
	r.running = true
	r.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	snap, err := r.svc.Refresh(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.running = false
	r.lastErr = err
	if err == nil {
		r.last = snap
	}
	return snap, err
}

// Running reports whether a refresh is in flight.
func (r *Refresher) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Last returns the most recent successful snapshot and the error of the latest attempt.
func (r *Refresher) Last() (model.StatsSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last, r.lastErr
}

// Run blocks, refreshing every interval until ctx is cancelled.
func (r *Refresher) Run(ctx context.Context) {
	if r.interval <= 0 {
		return
	}
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	slog.Info("stats refresher started", "interval", r.interval.String())
	for {
		select {
		case <-ctx.Done():
			slog.Info("stats refresher stopped")
			return
		case <-ticker.C:
			if _, err := r.RunOnce(ctx); err != nil && !errors.Is(err, ErrRefreshInProgress) {
				slog.Warn("scheduled stats refresh failed", "err", err)
			}
		}
	}
}
