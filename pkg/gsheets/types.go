package gsheets

import "errors"

// ErrWorksheetNotFound is returned when the spreadsheet has no tab with the requested title.
var ErrWorksheetNotFound = errors.New("gsheets: worksheet not found")

// Record is one data row keyed by the header row's column names.
type Record map[string]string
