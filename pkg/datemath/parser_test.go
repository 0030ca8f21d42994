package datemath_test

import (
	"testing"
	"time"

	"weekly-task-report/pkg/datemath"
)

func TestNewParser(t *testing.T) {
	_, err := datemath.NewParser("Europe/Moscow")
	if err != nil {
		t.Fatalf("unexpected error creating valid parser: %v", err)
	}

	_, err = datemath.NewParser("Invalid/Timezone")
	if err == nil {
		t.Fatalf("expected error for invalid timezone")
	}
}

func TestToday(t *testing.T) {
	parser, _ := datemath.NewParser("Europe/Moscow")

	// 22:30 UTC on Sunday is already Monday in Moscow (UTC+3).
	now := time.Date(2026, 1, 11, 22, 30, 0, 0, time.UTC)
	today := parser.Today(now)

	if today.Weekday() != time.Monday || today.Day() != 12 {
		t.Errorf("expected Monday 12th in report timezone, got %v", today)
	}
	if today.Hour() != 0 || today.Minute() != 0 {
		t.Errorf("expected midnight, got %v", today)
	}
}

func TestWeeks(t *testing.T) {
	parser, _ := datemath.NewParser("UTC")

	tests := []struct {
		name         string
		day          time.Time
		currentStart string
		currentEnd   string
		prevStart    string
		prevEnd      string
	}{
		{
			name:         "Monday",
			day:          time.Date(2026, 1, 12, 15, 0, 0, 0, time.UTC),
			currentStart: "2026-01-12", currentEnd: "2026-01-18",
			prevStart: "2026-01-05", prevEnd: "2026-01-11",
		},
		{
			name:         "Wednesday",
			day:          time.Date(2026, 1, 14, 9, 0, 0, 0, time.UTC),
			currentStart: "2026-01-12", currentEnd: "2026-01-18",
			prevStart: "2026-01-05", prevEnd: "2026-01-11",
		},
		{
			name:         "Sunday belongs to the week before",
			day:          time.Date(2026, 1, 18, 23, 59, 0, 0, time.UTC),
			currentStart: "2026-01-12", currentEnd: "2026-01-18",
			prevStart: "2026-01-05", prevEnd: "2026-01-11",
		},
		{
			name:         "Across new year",
			day:          time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC),
			currentStart: "2025-12-29", currentEnd: "2026-01-04",
			prevStart: "2025-12-22", prevEnd: "2025-12-28",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := parser.CurrentWeek(tt.day)
			prev := parser.PreviousWeek(tt.day)

			if got := current.Start.Format(time.DateOnly); got != tt.currentStart {
				t.Errorf("current start: want %s, got %s", tt.currentStart, got)
			}
			if got := current.End.Format(time.DateOnly); got != tt.currentEnd {
				t.Errorf("current end: want %s, got %s", tt.currentEnd, got)
			}
			if got := prev.Start.Format(time.DateOnly); got != tt.prevStart {
				t.Errorf("previous start: want %s, got %s", tt.prevStart, got)
			}
			if got := prev.End.Format(time.DateOnly); got != tt.prevEnd {
				t.Errorf("previous end: want %s, got %s", tt.prevEnd, got)
			}
			if current.Start.Weekday() != time.Monday || prev.Start.Weekday() != time.Monday {
				t.Errorf("windows must start on Monday")
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	parser, _ := datemath.NewParser("Europe/Moscow")

	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{name: "Padded", value: "06.01.2026", want: "2026-01-06"},
		{name: "Unpadded", value: "6.1.2026", want: "2026-01-06"},
		{name: "Surrounding spaces", value: " 20.01.2026 ", want: "2026-01-20"},
		{name: "Day out of range", value: "31.02.2026", wantErr: true},
		{name: "ISO format", value: "2026-01-06", wantErr: true},
		{name: "Garbage", value: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.ParseDate(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if !tt.wantErr && got.Format(time.DateOnly) != tt.want {
				t.Errorf("ParseDate(%q) = %s, want %s", tt.value, got.Format(time.DateOnly), tt.want)
			}
		})
	}
}

func TestWindowContains(t *testing.T) {
	parser, _ := datemath.NewParser("Europe/Moscow")
	w := parser.PreviousWeek(time.Date(2026, 1, 12, 12, 0, 0, 0, time.UTC))

	for _, value := range []string{"05.01.2026", "06.01.2026", "11.01.2026"} {
		d, _ := parser.ParseDate(value)
		if !w.Contains(d) {
			t.Errorf("expected %s inside %s", value, w)
		}
	}
	for _, value := range []string{"04.01.2026", "12.01.2026", "20.01.2026"} {
		d, _ := parser.ParseDate(value)
		if w.Contains(d) {
			t.Errorf("expected %s outside %s", value, w)
		}
	}
}

func TestWindowLabel(t *testing.T) {
	parser, _ := datemath.NewParser("UTC")

	tests := []struct {
		name string
		day  time.Time
		want string
	}{
		{name: "Same month", day: time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC), want: "5-11 января"},
		{name: "Two months", day: time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), want: "29 декабря - 4 января"},
		{name: "May", day: time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC), want: "18-24 мая"},
		{name: "Autumn", day: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), want: "28 сентября - 4 октября"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parser.CurrentWeek(tt.day).Label(); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}
