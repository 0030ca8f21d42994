package xlsx

import (
	"context"

	"weekly-task-report/internal/report"
)

// ListRecords reads all rows of the configured sheet.
func (r *implRepository) ListRecords(ctx context.Context) ([]report.Record, error) {
	if err := r.refresh(ctx); err != nil {
		return nil, err
	}

	wb, err := r.handle.GetOrOpen(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := wb.Records(r.sheet)
	if err != nil {
		return nil, err
	}

	records := make([]report.Record, len(rows))
	for i, row := range rows {
		records[i] = report.Record(row)
	}
	return records, nil
}

// Invalidate closes the cached workbook.
func (r *implRepository) Invalidate() {
	r.handle.Invalidate()
}
