package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"weekly-task-report/internal/notify"
	"weekly-task-report/internal/report"
	"weekly-task-report/pkg/datemath"
)

// mockLogger records warnings and errors.
type mockLogger struct {
	mu     sync.Mutex
	warns  []string
	errors []string
}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any) {
	m.Warnf(ctx, "%s", fmt.Sprint(arg...))
}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warns = append(m.warns, fmt.Sprintf(template, arg...))
}
func (m *mockLogger) Error(ctx context.Context, arg ...any) {
	m.Errorf(ctx, "%s", fmt.Sprint(arg...))
}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, fmt.Sprintf(template, arg...))
}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

func (m *mockLogger) warnCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.warns)
}

func (m *mockLogger) errorCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.errors)
}

// mockRepository returns fixed records and tracks invalidations and overlap.
type mockRepository struct {
	mu          sync.Mutex
	records     []report.Record
	err         error
	delay       time.Duration
	reads       int
	invalidated int
	inFlight    int
	maxInFlight int
}

func (m *mockRepository) ListRecords(ctx context.Context) ([]report.Record, error) {
	m.mu.Lock()
	m.reads++
	m.inFlight++
	if m.inFlight > m.maxInFlight {
		m.maxInFlight = m.inFlight
	}
	m.mu.Unlock()

	if m.delay > 0 {
		time.Sleep(m.delay)
	}

	m.mu.Lock()
	m.inFlight--
	m.mu.Unlock()
	return m.records, m.err
}

func (m *mockRepository) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invalidated++
}

// mockDeliverer records deliveries.
type mockDeliverer struct {
	mu      sync.Mutex
	chatIDs []int64
	texts   []string
	summary notify.Summary
	err     error
}

func (m *mockDeliverer) Deliver(ctx context.Context, chatID int64, text string) (notify.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chatIDs = append(m.chatIDs, chatID)
	m.texts = append(m.texts, text)
	return m.summary, m.err
}

// newTestUseCase builds a use case whose clock reads now in Europe/Moscow.
func newTestUseCase(repo *mockRepository, deliverer *mockDeliverer, l *mockLogger, now time.Time, chatID string) *implUseCase {
	dm, err := datemath.NewParser("Europe/Moscow")
	if err != nil {
		panic(err)
	}
	uc := New(l, repo, deliverer, dm, Options{ChatID: chatID})
	uc.now = func() time.Time { return now }
	return uc
}

func row(task, link, status, closed string) report.Record {
	c := report.DefaultColumns()
	return report.Record{c.Task: task, c.Link: link, c.Status: status, c.ClosedDate: closed}
}
