package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingJob struct {
	count atomic.Int32
	done  chan struct{}
	once  sync.Once
}

func (j *countingJob) Process(_ context.Context) error {
	j.count.Add(1)
	j.once.Do(func() { close(j.done) })
	return nil
}

type failingJob struct {
	done chan struct{}
}

func (j *failingJob) Process(_ context.Context) error {
	defer close(j.done)
	return errors.New("job failed")
}

func TestPool_ProcessesJobs(t *testing.T) {
	pool := NewPool(2, 4)
	pool.Start()
	defer pool.Stop()

	job := &countingJob{done: make(chan struct{})}
	pool.Enqueue(job)

	select {
	case <-job.done:
	case <-time.After(2 * time.Second):
		t.Fatal("job was not processed in time")
	}
	assert.Equal(t, int32(1), job.count.Load())
}

func TestPool_SurvivesJobError(t *testing.T) {
	pool := NewPool(1, 4)
	pool.Start()
	defer pool.Stop()

	failing := &failingJob{done: make(chan struct{})}
	pool.Enqueue(failing)
	<-failing.done

	// The worker keeps running after a failed job.
	next := &countingJob{done: make(chan struct{})}
	pool.Enqueue(next)

	select {
	case <-next.done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not recover after a failed job")
	}
}

func TestPool_StopWaitsForWorkers(t *testing.T) {
	pool := NewPool(3, 4)
	pool.Start()

	done := make(chan struct{})
	go func() {
		pool.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
}
