package feed

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// Refresher runs a data-refresh function on an interval. Runs never
// overlap: a tick that arrives while a refresh is still in flight is
// skipped, not queued.
type Refresher struct {
	Interval time.Duration
	Run      func(ctx context.Context) error
	Log      *logrus.Logger

	running atomic.Bool
}

// TryRun executes one refresh unless one is already in flight. It reports
// whether the refresh ran.
func (r *Refresher) TryRun(ctx context.Context) bool {
	if !r.running.CompareAndSwap(false, true) {
		if r.Log != nil {
			r.Log.Debug("refresh already in flight, skipping")
		}
		return false
	}
	defer r.running.Store(false)

	start := time.Now()
	if err := r.Run(ctx); err != nil {
		if r.Log != nil {
			r.Log.WithError(err).Warn("refresh failed")
		}
		return true
	}
	if r.Log != nil {
		r.Log.WithField("elapsed", time.Since(start)).Info("refresh complete")
	}
	return true
}

// Start refreshes once immediately, then on every interval tick until the
// context is canceled.
func (r *Refresher) Start(ctx context.Context) {
	r.TryRun(ctx)
	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.TryRun(ctx)
		}
	}
}
