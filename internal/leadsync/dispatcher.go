package leadsync

import (
	"context"
	"time"

	"leadsync_backend/platform/logger"
)

// Dispatcher enqueues a sync job on a fixed interval. It is the timer-side
// twin of the manual trigger; both converge on Enqueuer.EnqueueSync.
type Dispatcher struct {
	enqueuer Enqueuer
	interval time.Duration
	count    int
	log      *logger.Logger
}

// NewDispatcher creates the periodic sync dispatcher.
func NewDispatcher(enqueuer Enqueuer, interval time.Duration, count int, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		enqueuer: enqueuer,
		interval: interval,
		count:    count,
		log:      log,
	}
}

// Run enqueues a sync job every interval until the context is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		jobID, err := d.enqueuer.EnqueueSync(ctx, d.count)
		if err != nil {
			d.log.Warn("scheduled sync enqueue failed", "error", err)
			continue
		}
		d.log.Info("scheduled sync enqueued", "job_id", jobID, "count", d.count)
	}
}
