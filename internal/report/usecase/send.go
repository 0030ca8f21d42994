package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"weekly-task-report/internal/report"
	pkgLog "weekly-task-report/pkg/log"
)

// SendReport generates the report and delivers it to chatID.
func (uc *implUseCase) SendReport(ctx context.Context, chatID int64) (report.Delivery, error) {
	if pkgLog.TraceIDFromContext(ctx) == "" {
		ctx = pkgLog.WithTraceID(ctx, uuid.NewString())
	}

	rep, err := uc.Generate(ctx)
	if err != nil {
		return report.Delivery{}, err
	}

	summary, err := uc.notifier.Deliver(ctx, chatID, rep.Text)
	delivery := report.Delivery{
		Report: rep,
		Chunks: summary.Total,
		Sent:   summary.Sent,
		Failed: summary.Failed,
	}
	if err != nil {
		return delivery, fmt.Errorf("deliver report to chat %d: %w", chatID, err)
	}

	uc.l.Infof(ctx, "report.usecase.SendReport: chat=%d chunks=%d sent=%d failed=%d",
		chatID, delivery.Chunks, delivery.Sent, delivery.Failed)
	return delivery, nil
}

// ScheduledReport sends the report to the configured chat. A missing or
// malformed chat id skips the run; failures are logged, not retried.
func (uc *implUseCase) ScheduledReport(ctx context.Context) {
	ctx = pkgLog.WithTraceID(ctx, uuid.NewString())

	chatID, err := ParseChatID(uc.chatID)
	if err != nil {
		if errors.Is(err, errEmptyChatID) {
			uc.l.Warnf(ctx, "report.usecase.ScheduledReport: REPORT_CHAT_ID is not set, scheduled report disabled")
			return
		}
		uc.l.Errorf(ctx, "report.usecase.ScheduledReport: REPORT_CHAT_ID must be an integer (e.g. -100...), got %q", uc.chatID)
		return
	}

	if _, err := uc.SendReport(ctx, chatID); err != nil {
		uc.l.Errorf(ctx, "report.usecase.ScheduledReport: scheduled report to chat %d failed: %v", chatID, err)
	}
}

var errEmptyChatID = errors.New("chat id is empty")

// ParseChatID parses a Telegram chat id such as "-1001234567890".
func ParseChatID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: %w", report.ErrInvalidChatID, errEmptyChatID)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", report.ErrInvalidChatID, raw)
	}
	return id, nil
}
