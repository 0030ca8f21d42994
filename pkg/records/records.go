// Package records maps spreadsheet rows onto their header row.
package records

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrDuplicateHeader is returned when two header cells carry the same name.
var ErrDuplicateHeader = errors.New("records: duplicate header")

// Header trims and NFC-normalizes the header cells, so a column typed with
// combining marks still matches its configured name. Blank cells stay "" and
// their columns are dropped from records.
func Header(cells []string) ([]string, error) {
	header := make([]string, len(cells))
	seen := make(map[string]int, len(cells))
	for i, cell := range cells {
		name := Normalize(cell)
		if name == "" {
			continue
		}
		if first, ok := seen[name]; ok {
			return nil, fmt.Errorf("%w: %q in columns %d and %d", ErrDuplicateHeader, name, first+1, i+1)
		}
		seen[name] = i
		header[i] = name
	}
	return header, nil
}

// Map builds one record from row. Cells missing at the end of row read as "".
func Map(header, row []string) map[string]string {
	rec := make(map[string]string, len(header))
	for i, name := range header {
		if name == "" {
			continue
		}
		if i < len(row) {
			rec[name] = norm.NFC.String(row[i])
		} else {
			rec[name] = ""
		}
	}
	return rec
}

// Normalize trims s and puts it in NFC form.
func Normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
