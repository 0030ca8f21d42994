package report

import "context"

// UseCase defines the business logic interface for the report domain.
type UseCase interface {
	// Generate reads the task sheet and renders this week's report.
	Generate(ctx context.Context) (Report, error)

	// SendReport generates the report and delivers it to chatID.
	SendReport(ctx context.Context, chatID int64) (Delivery, error)

	// ScheduledReport sends the report to the configured chat, logging instead of returning errors.
	ScheduledReport(ctx context.Context)
}
