// Package workbook reads task rows from a local .xlsx file.
package workbook

import (
	"errors"
	"fmt"
	"slices"

	"github.com/xuri/excelize/v2"

	"weekly-task-report/pkg/records"
)

// ErrSheetNotFound is returned when the workbook has no sheet with the requested name.
var ErrSheetNotFound = errors.New("workbook: sheet not found")

// Workbook is an opened .xlsx file.
type Workbook struct {
	file *excelize.File
	path string
}

// Open opens the workbook at path. Call Close when done.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	return &Workbook{file: f, path: path}, nil
}

// Sheets lists the sheet names in workbook order.
func (w *Workbook) Sheets() []string {
	return w.file.GetSheetList()
}

// Records reads sheet as header-keyed rows. Values are the cells' displayed
// text and cells missing at the end of a row read as "". Blank rows inside the
// used range are kept, so record i is sheet row i+2.
func (w *Workbook) Records(sheet string) ([]map[string]string, error) {
	if !slices.Contains(w.file.GetSheetList(), sheet) {
		return nil, fmt.Errorf("%w: %q in %s", ErrSheetNotFound, sheet, w.path)
	}

	rows, err := w.file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header, err := records.Header(rows[0])
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}

	out := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		out = append(out, records.Map(header, row))
	}
	return out, nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.file.Close()
}
