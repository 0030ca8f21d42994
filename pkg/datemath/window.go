package datemath

import (
	"fmt"
	"time"
)

// Genitive month names, as used after a day number ("5 января").
var monthNames = [...]string{
	time.January:   "января",
	time.February:  "февраля",
	time.March:     "марта",
	time.April:     "апреля",
	time.May:       "мая",
	time.June:      "июня",
	time.July:      "июля",
	time.August:    "августа",
	time.September: "сентября",
	time.October:   "октября",
	time.November:  "ноября",
	time.December:  "декабря",
}

// Window is an inclusive range of calendar days.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether day falls within the window, both ends included.
// Only the calendar date of day is compared.
func (w Window) Contains(day time.Time) bool {
	d := dateOf(day)
	return !d.Before(dateOf(w.Start)) && !d.After(dateOf(w.End))
}

// Label renders the window as "5-11 января", or "29 декабря - 4 января"
// when it spans two months.
func (w Window) Label() string {
	startMonth := monthNames[w.Start.Month()]
	if w.Start.Month() == w.End.Month() {
		return fmt.Sprintf("%d-%d %s", w.Start.Day(), w.End.Day(), startMonth)
	}
	return fmt.Sprintf("%d %s - %d %s", w.Start.Day(), startMonth, w.End.Day(), monthNames[w.End.Month()])
}

func (w Window) String() string {
	return fmt.Sprintf("%s..%s", w.Start.Format(time.DateOnly), w.End.Format(time.DateOnly))
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
