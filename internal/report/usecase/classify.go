package usecase

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"weekly-task-report/internal/report"
	"weekly-task-report/pkg/datemath"
)

// classifiedRow is the result of looking at one sheet row.
type classifiedRow struct {
	category report.Category
	line     string
	warnings []error
}

// classifyRow decides where a row goes and renders its line. Problems with the
// row come back as warnings; they never make the row fail.
func (uc *implUseCase) classifyRow(rec report.Record, done datemath.Window) classifiedRow {
	task := strings.TrimSpace(rec[uc.columns.Task])
	link := strings.TrimSpace(rec[uc.columns.Link])
	status := strings.TrimSpace(rec[uc.columns.Status])
	closedRaw := strings.TrimSpace(rec[uc.columns.ClosedDate])

	if task == "" {
		return classifiedRow{category: report.CategorySkip}
	}

	var res classifiedRow

	var closed time.Time
	hasClosed := false
	if closedRaw != "" {
		d, err := uc.dateMath.ParseDate(closedRaw)
		if err != nil {
			res.warnings = append(res.warnings, fmt.Errorf("%w: %q (task %q)", report.ErrMalformedDate, closedRaw, task))
		} else {
			closed, hasClosed = d, true
		}
	}

	switch {
	case status == uc.columns.StatusDone && hasClosed && done.Contains(closed):
		res.category = report.CategoryDone
	case status == uc.columns.StatusInProgress:
		res.category = report.CategoryInProgress
	default:
		res.category = report.CategorySkip
		return res
	}

	res.line = "• " + escapeBody(task)
	if link != "" {
		if href, ok := safeLink(link); ok {
			res.line = fmt.Sprintf(`• <a href="%s">%s</a>`, href, escapeBody(task))
		} else {
			res.warnings = append(res.warnings, fmt.Errorf("%w for task %q", report.ErrUnsafeLink, task))
		}
	}
	return res
}

// safeLink returns raw escaped for an href attribute if it is an absolute
// http(s) URL with a host.
func safeLink(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	if u.Host == "" {
		return "", false
	}
	return escapeAttr(raw), true
}

var (
	bodyReplacer = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrReplacer = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "'", "&#39;")
)

// escapeBody escapes text for an HTML message body.
func escapeBody(s string) string {
	return bodyReplacer.Replace(s)
}

// escapeAttr escapes text for a double or single quoted attribute value.
func escapeAttr(s string) string {
	return attrReplacer.Replace(s)
}
