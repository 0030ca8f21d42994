// Package workqueue runs submitted jobs on a fixed pool of workers.
package workqueue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"weekly-task-report/pkg/log"
)

var (
	ErrQueueStarted = errors.New("workqueue: already started")
	ErrQueueFull    = errors.New("workqueue: queue full")
	ErrQueueStopped = errors.New("workqueue: stopped")
	ErrStopTimeout  = errors.New("workqueue: stop timed out")
)

// Job is one unit of work. ctx is canceled when the queue is stopped and the
// stop timeout elapses.
type Job struct {
	Name string
	Run  func(ctx context.Context)
}

// Queue is a bounded FIFO of jobs consumed by a worker pool.
type Queue struct {
	l    log.Logger
	jobs chan Job

	mu       sync.Mutex
	started  bool
	stopping bool
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// New creates a queue holding up to size pending jobs.
func New(l log.Logger, size int) *Queue {
	if size <= 0 {
		size = 64
	}
	return &Queue{l: l, jobs: make(chan Job, size)}
}

// Start launches workers goroutines.
func (q *Queue) Start(parent context.Context, workers int) error {
	if workers <= 0 {
		workers = 1
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started {
		return ErrQueueStarted
	}
	if q.stopping {
		return ErrQueueStopped
	}

	ctx, cancel := context.WithCancel(parent)
	q.cancel = cancel
	q.started = true

	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.worker(ctx)
	}
	return nil
}

// Enqueue adds job without blocking.
func (q *Queue) Enqueue(job Job) error {
	if job.Run == nil {
		return fmt.Errorf("workqueue: job %q has no Run func", job.Name)
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.stopping {
		return ErrQueueStopped
	}

	select {
	case q.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Len returns the number of pending jobs.
func (q *Queue) Len() int {
	return len(q.jobs)
}

// Running reports whether workers are started and the queue still accepts jobs.
func (q *Queue) Running() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.started && !q.stopping
}

// Stop refuses new jobs, lets workers drain what is queued and waits up to
// timeout for them. On timeout running jobs see their context canceled.
func (q *Queue) Stop(timeout time.Duration) error {
	q.mu.Lock()
	if q.stopping {
		q.mu.Unlock()
		return nil
	}
	q.stopping = true
	close(q.jobs)
	started := q.started
	cancel := q.cancel
	q.mu.Unlock()

	if !started {
		return nil
	}

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	if timeout <= 0 {
		<-done
		cancel()
		return nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-done:
		cancel()
		return nil
	case <-timer.C:
		cancel()
		return ErrStopTimeout
	}
}

func (q *Queue) worker(ctx context.Context) {
	defer q.wg.Done()
	for job := range q.jobs {
		q.run(ctx, job)
	}
}

func (q *Queue) run(ctx context.Context, job Job) {
	defer func() {
		if r := recover(); r != nil {
			q.l.Errorf(ctx, "workqueue.run: job %q panicked: %v", job.Name, r)
		}
	}()
	job.Run(ctx)
}
