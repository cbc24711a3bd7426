package prediction

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/predictle/predictle/internal/logger"
)

// ExpiryJob adapts SweepExpired to the worker.Job interface so the scheduler
// can run it on an interval. A running flag keeps overlapping ticks from
// sweeping concurrently; the sweep itself is idempotent either way, so a
// skipped tick just defers work to the next one.
type ExpiryJob struct {
	service Service
	running atomic.Bool
}

// NewExpiryJob creates a new ExpiryJob
func NewExpiryJob(service Service) *ExpiryJob {
	return &ExpiryJob{service: service}
}

// Process runs one expiry sweep.
func (j *ExpiryJob) Process(ctx context.Context) error {
	if !j.running.CompareAndSwap(false, true) {
		logger.FromContext(ctx).Debug("Expiry sweep already running, skipping tick")
		return nil
	}
	defer j.running.Store(false)

	_, err := j.service.SweepExpired(ctx, time.Now())
	return err
}
