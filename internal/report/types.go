package report

import (
	"time"

	"weekly-task-report/pkg/datemath"
)

// EmptySectionLine stands in for a section with no items.
const EmptySectionLine = "• —"

// Record is one spreadsheet row keyed by column name.
type Record map[string]string

// Columns names the spreadsheet columns and the status literals.
type Columns struct {
	Task             string
	Link             string
	Status           string
	ClosedDate       string
	StatusDone       string
	StatusInProgress string
}

// DefaultColumns returns the layout of the team's task sheet.
func DefaultColumns() Columns {
	return Columns{
		Task:             "Задача",
		Link:             "Ссылка",
		Status:           "Статус",
		ClosedDate:       "Дата закрытия",
		StatusDone:       "Выполнено",
		StatusInProgress: "В работе",
	}
}

// Category is where a row lands in the report.
type Category int

const (
	CategorySkip Category = iota
	CategoryDone
	CategoryInProgress
)

func (c Category) String() string {
	switch c {
	case CategoryDone:
		return "done"
	case CategoryInProgress:
		return "in_progress"
	default:
		return "skip"
	}
}

// Report is a rendered weekly report.
type Report struct {
	Text             string
	DoneCount        int
	InProgressCount  int
	DoneWindow       datemath.Window
	InProgressWindow datemath.Window
	GeneratedAt      time.Time
}

// Delivery is the outcome of sending a report to a chat.
type Delivery struct {
	Report Report
	Chunks int
	Sent   int
	Failed int
}
