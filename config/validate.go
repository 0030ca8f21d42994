package config

import (
	"fmt"
	"strings"
	"time"
)

// ValidationError lists every missing required setting and every invalid
// value found by Validate.
type ValidationError struct {
	Missing []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required settings: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid settings: "+strings.Join(e.Invalid, "; "))
	}
	return "config: " + strings.Join(parts, "; ")
}

// Validate checks the settings the bot cannot start without. Fields only
// used by the scheduled job, such as Report.ChatID, are checked at run time.
func (c *Config) Validate() error {
	verr := &ValidationError{}

	if c.Telegram.BotToken == "" {
		verr.Missing = append(verr.Missing, "BOT_TOKEN")
	}

	switch c.Sheets.Source {
	case SourceGoogle:
		if c.Sheets.SpreadsheetID == "" {
			verr.Missing = append(verr.Missing, "SPREADSHEET_ID")
		}
	case SourceXLSX:
		if c.Sheets.WorkbookPath == "" {
			verr.Missing = append(verr.Missing, "WORKBOOK_PATH")
		}
	default:
		verr.Invalid = append(verr.Invalid, fmt.Sprintf("sheets.source %q (want %s or %s)", c.Sheets.Source, SourceGoogle, SourceXLSX))
	}

	switch c.Telegram.Mode {
	case ModePolling, ModeWebhook:
	default:
		verr.Invalid = append(verr.Invalid, fmt.Sprintf("telegram.mode %q (want %s or %s)", c.Telegram.Mode, ModePolling, ModeWebhook))
	}

	if _, err := time.LoadLocation(c.Report.Timezone); err != nil || c.Report.Timezone == "" {
		verr.Invalid = append(verr.Invalid, fmt.Sprintf("REPORT_TIMEZONE %q", c.Report.Timezone))
	}
	if c.Report.ChunkSize <= 0 {
		verr.Invalid = append(verr.Invalid, fmt.Sprintf("report.chunk_size %d", c.Report.ChunkSize))
	}
	if c.Report.RetryAttempts <= 0 {
		verr.Invalid = append(verr.Invalid, fmt.Sprintf("report.retry_attempts %d", c.Report.RetryAttempts))
	}

	if len(verr.Missing) == 0 && len(verr.Invalid) == 0 {
		return nil
	}
	return verr
}
