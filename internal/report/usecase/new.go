package usecase

import (
	"context"
	"sync"
	"time"

	"weekly-task-report/internal/notify"
	"weekly-task-report/internal/report"
	"weekly-task-report/internal/report/repository"
	"weekly-task-report/pkg/datemath"
	pkgLog "weekly-task-report/pkg/log"
)

// Deliverer sends rendered report text to a chat.
type Deliverer interface {
	Deliver(ctx context.Context, chatID int64, text string) (notify.Summary, error)
}

// Options carries the non-collaborator settings of the use case.
type Options struct {
	Columns report.Columns
	// ChatID is the raw destination of the scheduled report. Empty disables it.
	ChatID string
}

type implUseCase struct {
	l        pkgLog.Logger
	repo     repository.SheetRepository
	notifier Deliverer
	dateMath *datemath.Parser
	columns  report.Columns
	chatID   string
	now      func() time.Time

	// generateMu serializes report builds process-wide.
	generateMu sync.Mutex
}

// New creates a new report UseCase instance.
func New(
	l pkgLog.Logger,
	repo repository.SheetRepository,
	notifier Deliverer,
	dateMath *datemath.Parser,
	opts Options,
) *implUseCase {
	columns := opts.Columns
	if columns == (report.Columns{}) {
		columns = report.DefaultColumns()
	}
	return &implUseCase{
		l:        l,
		repo:     repo,
		notifier: notifier,
		dateMath: dateMath,
		columns:  columns,
		chatID:   opts.ChatID,
		now:      time.Now,
	}
}
