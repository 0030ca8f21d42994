package telegram

import (
	"context"

	"github.com/gin-gonic/gin"

	"weekly-task-report/internal/access"
	"weekly-task-report/internal/report"
	"weekly-task-report/internal/webhook"
	pkgLog "weekly-task-report/pkg/log"
	pkgTelegram "weekly-task-report/pkg/telegram"
	"weekly-task-report/pkg/workqueue"
)

// Handler turns incoming Telegram updates into report commands.
type Handler interface {
	HandleWebhook(c *gin.Context)
	Dispatch(update pkgTelegram.Update) error
}

// Messenger sends replies back to Telegram.
type Messenger interface {
	Send(ctx context.Context, req pkgTelegram.SendMessageRequest) error
}

// Diagnoser produces the /netdiag text.
type Diagnoser interface {
	Run(ctx context.Context) string
}

// Enqueuer hands work to the background queue.
type Enqueuer interface {
	Enqueue(job workqueue.Job) error
}

// New creates a new Telegram delivery handler. limiter throttles /otchet per
// chat and may be nil.
func New(
	l pkgLog.Logger,
	uc report.UseCase,
	bot Messenger,
	guard *access.Guard,
	limiter *webhook.RateLimiter,
	diag Diagnoser,
	queue Enqueuer,
) Handler {
	return &handler{
		l:       l,
		uc:      uc,
		bot:     bot,
		guard:   guard,
		limiter: limiter,
		diag:    diag,
		queue:   queue,
	}
}
