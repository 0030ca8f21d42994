package datemath

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the closed-date column format (DD.MM.YYYY). Single-digit day
// and month are accepted as well.
const DateLayout = "2.1.2006"

// Parser computes calendar dates and week windows in a fixed timezone.
type Parser struct {
	location *time.Location
}

// NewParser creates a new date parser for the given IANA timezone string.
// e.g. "Europe/Moscow"
func NewParser(timezone string) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

// Location returns the parser's timezone.
func (p *Parser) Location() *time.Location {
	return p.location
}

// Today returns midnight of now's calendar day in the parser's timezone.
func (p *Parser) Today(now time.Time) time.Time {
	return p.startOfDay(now)
}

// CurrentWeek returns the Monday-Sunday window containing day.
func (p *Parser) CurrentWeek(day time.Time) Window {
	day = p.startOfDay(day)
	// time.Weekday starts on Sunday; shift so Monday is 0.
	offset := (int(day.Weekday()) + 6) % 7
	start := day.AddDate(0, 0, -offset)
	return Window{Start: start, End: start.AddDate(0, 0, 6)}
}

// PreviousWeek returns the Monday-Sunday window before the one containing day.
func (p *Parser) PreviousWeek(day time.Time) Window {
	current := p.CurrentWeek(day)
	return Window{Start: current.Start.AddDate(0, 0, -7), End: current.Start.AddDate(0, 0, -1)}
}

// ParseDate parses a DD.MM.YYYY string as a calendar day in the parser's timezone.
// Out-of-range values such as 31.02.2026 are rejected.
func (p *Parser) ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(value), p.location)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// startOfDay returns midnight at the start of the given day in the parser's timezone.
func (p *Parser) startOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.location)
}
