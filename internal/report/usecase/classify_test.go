package usecase

import (
	"errors"
	"testing"
	"time"

	"weekly-task-report/internal/report"
)

func TestSafeLink(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{name: "Javascript", raw: "javascript:alert(1)"},
		{name: "Relative path", raw: "/tasks/1"},
		{name: "Relative no slash", raw: "tasks/1"},
		{name: "FTP", raw: "ftp://example.com/file"},
		{name: "Missing host", raw: "https:///path"},
		{name: "Data URI", raw: "data:text/html,<b>x</b>"},
		{name: "HTTPS with query", raw: "https://host/path?a=1&b=2", want: "https://host/path?a=1&amp;b=2", wantOK: true},
		{name: "HTTP", raw: "http://example.com", want: "http://example.com", wantOK: true},
		{name: "Quotes escaped", raw: `https://example.com/?q="x"&r='y'`, want: "https://example.com/?q=&quot;x&quot;&amp;r=&#39;y&#39;", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := safeLink(tt.raw)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("safeLink(%q) = %q, %v; want %q, %v", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestEscapeBody(t *testing.T) {
	if got := escapeBody(`a & <b> "c"`); got != `a &amp; &lt;b&gt; "c"` {
		t.Errorf("unexpected escape: %q", got)
	}
}

func TestClassifyRow(t *testing.T) {
	uc := newTestUseCase(&mockRepository{}, &mockDeliverer{}, &mockLogger{}, wednesday, "")
	done := uc.dateMath.PreviousWeek(uc.dateMath.Today(wednesday))

	tests := []struct {
		name     string
		rec      report.Record
		category report.Category
		line     string
		warning  error
	}{
		{
			name:     "Blank task",
			rec:      row("  ", "", "Выполнено", "06.01.2026"),
			category: report.CategorySkip,
		},
		{
			name:     "Done on window start",
			rec:      row("Start", "", "Выполнено", "05.01.2026"),
			category: report.CategoryDone,
			line:     "• Start",
		},
		{
			name:     "Done on window end",
			rec:      row("End", "", "Выполнено", "11.01.2026"),
			category: report.CategoryDone,
			line:     "• End",
		},
		{
			name:     "Done without date",
			rec:      row("Nodate", "", "Выполнено", ""),
			category: report.CategorySkip,
		},
		{
			name:     "Done with malformed date",
			rec:      row("Bad", "", "Выполнено", "2026-01-06"),
			category: report.CategorySkip,
			warning:  report.ErrMalformedDate,
		},
		{
			name:     "In progress with malformed date still counts",
			rec:      row("Going", "", "В работе", "soon"),
			category: report.CategoryInProgress,
			line:     "• Going",
			warning:  report.ErrMalformedDate,
		},
		{
			name:     "Fields are trimmed",
			rec:      row("  Padded  ", " https://example.com ", " В работе ", ""),
			category: report.CategoryInProgress,
			line:     `• <a href="https://example.com">Padded</a>`,
		},
		{
			name:     "Unsafe link degrades to text",
			rec:      row("X", "javascript:void(0)", "В работе", ""),
			category: report.CategoryInProgress,
			line:     "• X",
			warning:  report.ErrUnsafeLink,
		},
		{
			name:     "Other status",
			rec:      row("Later", "", "Отложено", "06.01.2026"),
			category: report.CategorySkip,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := uc.classifyRow(tt.rec, done)
			if got.category != tt.category {
				t.Errorf("category = %s, want %s", got.category, tt.category)
			}
			if got.line != tt.line {
				t.Errorf("line = %q, want %q", got.line, tt.line)
			}
			if tt.warning == nil && len(got.warnings) != 0 {
				t.Errorf("unexpected warnings: %v", got.warnings)
			}
			if tt.warning != nil && (len(got.warnings) != 1 || !errors.Is(got.warnings[0], tt.warning)) {
				t.Errorf("warnings = %v, want one %v", got.warnings, tt.warning)
			}
		})
	}
}

func TestClassifyRowUsesReportTimezone(t *testing.T) {
	// Sunday 23:30 UTC is Monday in Moscow, so the done window moves forward a week.
	sundayNight := time.Date(2026, 1, 18, 23, 30, 0, 0, time.UTC)
	uc := newTestUseCase(&mockRepository{}, &mockDeliverer{}, &mockLogger{}, sundayNight, "")
	done := uc.dateMath.PreviousWeek(uc.dateMath.Today(sundayNight))

	got := uc.classifyRow(row("Closed Friday", "", "Выполнено", "16.01.2026"), done)
	if got.category != report.CategoryDone {
		t.Errorf("expected row in the 12-18 Jan done window, got %s", got.category)
	}
}
