// Package schedule fires the weekly report. The cron goroutine never runs the
// report itself; it only hands a job to the work queue.
package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	pkgLog "weekly-task-report/pkg/log"
	"weekly-task-report/pkg/workqueue"
)

// DefaultSpec fires every Monday at 15:00.
const DefaultSpec = "0 15 * * 1"

// Enqueuer accepts work for the main worker pool.
type Enqueuer interface {
	Enqueue(job workqueue.Job) error
}

// Scheduler triggers run on a cron spec in a fixed timezone.
type Scheduler struct {
	l     pkgLog.Logger
	cron  *cron.Cron
	queue Enqueuer
	run   func(ctx context.Context)
	spec  string
	loc   *time.Location
}

// New creates a Scheduler. run is what the queued job executes.
func New(l pkgLog.Logger, queue Enqueuer, loc *time.Location, spec string, run func(ctx context.Context)) (*Scheduler, error) {
	if spec == "" {
		spec = DefaultSpec
	}
	if loc == nil {
		loc = time.UTC
	}

	s := &Scheduler{
		l:     l,
		cron:  cron.New(cron.WithLocation(loc)),
		queue: queue,
		run:   run,
		spec:  spec,
		loc:   loc,
	}
	if _, err := s.cron.AddFunc(spec, s.fire); err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start runs the cron loop in its own goroutine.
func (s *Scheduler) Start(ctx context.Context) {
	s.cron.Start()
	s.l.Infof(ctx, "schedule.Start: scheduler started (%s, %q), next run %s", s.loc, s.spec, s.Next().Format(time.RFC3339))
}

// Stop halts the cron loop and waits for a firing in progress to return.
func (s *Scheduler) Stop(ctx context.Context) {
	<-s.cron.Stop().Done()
	s.l.Info(ctx, "schedule.Stop: scheduler stopped")
}

// Next returns the next firing time.
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	if !entries[0].Next.IsZero() {
		return entries[0].Next
	}
	return entries[0].Schedule.Next(time.Now().In(s.loc))
}

// fire runs on the cron goroutine.
func (s *Scheduler) fire() {
	ctx := context.Background()
	err := s.queue.Enqueue(workqueue.Job{Name: "scheduled-report", Run: s.run})
	if err != nil {
		s.l.Errorf(ctx, "schedule.fire: could not queue scheduled report: %v", err)
		return
	}
	s.l.Info(ctx, "schedule.fire: scheduled report queued")
}
