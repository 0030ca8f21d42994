package xlsx

import (
	"context"
	"os"
	"sync"
	"time"

	"weekly-task-report/internal/report/repository"
	pkgLog "weekly-task-report/pkg/log"
	"weekly-task-report/pkg/workbook"
)

type implRepository struct {
	l      pkgLog.Logger
	path   string
	sheet  string
	handle *repository.Handle[*workbook.Workbook]

	mu      sync.Mutex
	modTime time.Time
}

// New creates a SheetRepository reading sheet from the .xlsx file at path.
// The file is reopened whenever its modification time changes.
func New(l pkgLog.Logger, path, sheet string) repository.SheetRepository {
	r := &implRepository{l: l, path: path, sheet: sheet}
	r.handle = repository.NewHandle(func(ctx context.Context) (*workbook.Workbook, error) {
		return workbook.Open(path)
	}, func(wb *workbook.Workbook) {
		if err := wb.Close(); err != nil {
			l.Warnf(context.Background(), "xlsx.repository: close %s: %v", path, err)
		}
	})
	return r
}

// refresh drops the cached workbook if the file changed on disk.
func (r *implRepository) refresh(ctx context.Context) error {
	info, err := os.Stat(r.path)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !info.ModTime().Equal(r.modTime) {
		if !r.modTime.IsZero() {
			r.l.Infof(ctx, "xlsx.repository: %s changed, reopening", r.path)
		}
		r.handle.Invalidate()
		r.modTime = info.ModTime()
	}
	return nil
}
