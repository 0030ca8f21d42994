package schedule

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"weekly-task-report/pkg/log"
	"weekly-task-report/pkg/workqueue"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeQueue struct {
	mu   sync.Mutex
	jobs []workqueue.Job
	err  error
}

func (f *fakeQueue) Enqueue(job workqueue.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, job)
	return nil
}

func TestNextRunIsMondayAfternoonInLocation(t *testing.T) {
	moscow, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	s, err := New(log.NewNop(), &fakeQueue{}, moscow, "", func(context.Context) {})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	next := s.Next().In(moscow)
	if next.Weekday() != time.Monday || next.Hour() != 15 || next.Minute() != 0 {
		t.Errorf("expected Monday 15:00 Moscow, got %v", next)
	}
}

func TestInvalidSpec(t *testing.T) {
	if _, err := New(log.NewNop(), &fakeQueue{}, time.UTC, "every monday", func(context.Context) {}); err == nil {
		t.Fatal("expected error for invalid spec")
	}
}

func TestFireOnlyEnqueues(t *testing.T) {
	q := &fakeQueue{}
	ran := false
	s, _ := New(log.NewNop(), q, time.UTC, DefaultSpec, func(context.Context) { ran = true })

	s.fire()

	if len(q.jobs) != 1 || q.jobs[0].Name != "scheduled-report" {
		t.Fatalf("expected one queued job, got %+v", q.jobs)
	}
	if ran {
		t.Fatal("fire must not run the report on the cron goroutine")
	}

	q.jobs[0].Run(context.Background())
	if !ran {
		t.Error("queued job must run the report")
	}
}

func TestFireQueueFull(t *testing.T) {
	q := &fakeQueue{err: workqueue.ErrQueueFull}
	s, _ := New(log.NewNop(), q, time.UTC, DefaultSpec, func(context.Context) {})

	s.fire()

	if len(q.jobs) != 0 {
		t.Errorf("nothing should be queued, got %d", len(q.jobs))
	}
}

func TestStartStopWithQueue(t *testing.T) {
	q := workqueue.New(log.NewNop(), 4)
	if err := q.Start(context.Background(), 1); err != nil {
		t.Fatalf("start queue: %v", err)
	}

	done := make(chan struct{})
	// The weekly spec never fires during a test; fire by hand while the loop runs.
	s, _ := New(log.NewNop(), q, time.UTC, DefaultSpec, func(context.Context) { close(done) })
	s.Start(context.Background())
	s.fire()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("queued report did not run")
	}

	s.Stop(context.Background())
	if err := q.Stop(time.Second); err != nil {
		t.Fatalf("stop queue: %v", err)
	}
}
