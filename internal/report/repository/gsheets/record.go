package gsheets

import (
	"context"

	"weekly-task-report/internal/report"
)

// ListRecords reads all rows of the worksheet, opening it on first use.
func (r *implRepository) ListRecords(ctx context.Context) ([]report.Record, error) {
	ws, err := r.handle.GetOrOpen(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := ws.GetAllRecords(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]report.Record, len(rows))
	for i, row := range rows {
		records[i] = report.Record(row)
	}
	return records, nil
}

// Invalidate drops the cached worksheet; the next read re-authenticates.
func (r *implRepository) Invalidate() {
	r.handle.Invalidate()
}
