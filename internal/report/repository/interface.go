package repository

import (
	"context"

	"weekly-task-report/internal/report"
)

// SheetRepository reads task rows from the spreadsheet source.
type SheetRepository interface {
	// ListRecords returns every data row in sheet order, blank rows included,
	// so record i is sheet row i+2.
	ListRecords(ctx context.Context) ([]report.Record, error)
	// Invalidate drops the cached connection so the next read reconnects.
	Invalidate()
}
