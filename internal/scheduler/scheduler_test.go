package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/predictle/predictle/internal/worker"
)

type tickJob struct {
	runs atomic.Int32
}

func (j *tickJob) Process(_ context.Context) error {
	j.runs.Add(1)
	return nil
}

func TestScheduler_RunsJobOnInterval(t *testing.T) {
	pool := worker.NewPool(1, 8)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	job := &tickJob{}
	sched.Schedule(10*time.Millisecond, job)

	assert.Eventually(t, func() bool {
		return job.runs.Load() >= 3
	}, 2*time.Second, 10*time.Millisecond)

	sched.Stop()
}

func TestScheduler_StopHaltsTicks(t *testing.T) {
	pool := worker.NewPool(1, 8)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	job := &tickJob{}
	sched.Schedule(10*time.Millisecond, job)

	assert.Eventually(t, func() bool {
		return job.runs.Load() >= 1
	}, 2*time.Second, 10*time.Millisecond)

	sched.Stop()
	// Give in-flight work a moment to drain, then confirm no new ticks.
	time.Sleep(30 * time.Millisecond)
	after := job.runs.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, job.runs.Load())
}
