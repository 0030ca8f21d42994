package usecase

import (
	"context"
	"fmt"
	"strings"

	"weekly-task-report/internal/report"
	"weekly-task-report/pkg/datemath"
)

const (
	doneTitle       = "✅ Выполнено"
	inProgressTitle = "🔄 В работе"
)

// Generate reads the sheet once and renders the weekly report. Only one
// Generate runs at a time.
func (uc *implUseCase) Generate(ctx context.Context) (report.Report, error) {
	uc.generateMu.Lock()
	defer uc.generateMu.Unlock()

	now := uc.now()
	today := uc.dateMath.Today(now)
	doneWindow := uc.dateMath.PreviousWeek(today)
	inProgressWindow := uc.dateMath.CurrentWeek(today)

	records, err := uc.repo.ListRecords(ctx)
	if err != nil {
		uc.repo.Invalidate()
		uc.l.Errorf(ctx, "report.usecase.Generate: sheet read failed, cached connection dropped: %v", err)
		return report.Report{}, fmt.Errorf("%w: %w", report.ErrSourceRead, err)
	}

	var doneLines, inProgressLines []string
	for i, rec := range records {
		row := uc.classifyRow(rec, doneWindow)
		for _, w := range row.warnings {
			// +2: header row, 1-based
			uc.l.Warnf(ctx, "report.usecase.Generate: row %d: %v", i+2, w)
		}

		switch row.category {
		case report.CategoryDone:
			doneLines = append(doneLines, row.line)
		case report.CategoryInProgress:
			inProgressLines = append(inProgressLines, row.line)
		}
	}

	uc.l.Infof(ctx, "report.usecase.Generate: rows=%d done=%d in_progress=%d done_window=%s",
		len(records), len(doneLines), len(inProgressLines), doneWindow)

	return report.Report{
		Text:             render(doneWindow, inProgressWindow, doneLines, inProgressLines),
		DoneCount:        len(doneLines),
		InProgressCount:  len(inProgressLines),
		DoneWindow:       doneWindow,
		InProgressWindow: inProgressWindow,
		GeneratedAt:      now,
	}, nil
}

func render(doneWindow, inProgressWindow datemath.Window, doneLines, inProgressLines []string) string {
	lines := make([]string, 0, len(doneLines)+len(inProgressLines)+5)
	lines = appendSection(lines, fmt.Sprintf("%s (%s)", doneTitle, doneWindow.Label()), doneLines)
	lines = append(lines, "")
	lines = appendSection(lines, fmt.Sprintf("%s (%s)", inProgressTitle, inProgressWindow.Label()), inProgressLines)
	return strings.Join(lines, "\n")
}

func appendSection(lines []string, title string, items []string) []string {
	lines = append(lines, "<b>"+escapeBody(title)+"</b>")
	if len(items) == 0 {
		return append(lines, report.EmptySectionLine)
	}
	return append(lines, items...)
}
