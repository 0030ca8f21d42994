package telegram

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"weekly-task-report/internal/access"
	"weekly-task-report/internal/report"
	"weekly-task-report/internal/webhook"
	pkgLog "weekly-task-report/pkg/log"
	pkgResponse "weekly-task-report/pkg/response"
	pkgTelegram "weekly-task-report/pkg/telegram"
	"weekly-task-report/pkg/workqueue"
)

type handler struct {
	l       pkgLog.Logger
	uc      report.UseCase
	bot     Messenger
	guard   *access.Guard
	limiter *webhook.RateLimiter
	diag    Diagnoser
	queue   Enqueuer
}

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// The update is queued and Telegram gets its 200 right away; report
// generation may take longer than the webhook deadline.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.BadRequest(c, err)
		return
	}

	if update.Message == nil {
		pkgResponse.Ack(c, pkgResponse.StatusIgnored, update.UpdateID)
		return
	}

	if err := h.Dispatch(update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to queue update %d: %v", update.UpdateID, err)
		pkgResponse.InternalError(c, err)
		return
	}

	pkgResponse.Ack(c, pkgResponse.StatusAccepted, update.UpdateID)
}

// Dispatch queues a single update for processing. Updates without a command
// are dropped here.
func (h *handler) Dispatch(update pkgTelegram.Update) error {
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return nil
	}
	command := parseCommand(msg.Text)
	if command == "" {
		return nil
	}

	return h.queue.Enqueue(workqueue.Job{
		Name: "command " + command,
		Run: func(ctx context.Context) {
			ctx = pkgLog.WithTraceID(ctx, uuid.NewString())
			h.processMessage(ctx, command, msg)
		},
	})
}

func (h *handler) processMessage(ctx context.Context, command string, msg *pkgTelegram.Message) {
	switch command {
	case cmdReport, cmdReportAlias:
		h.handleReport(ctx, msg)
	case cmdChatID:
		h.handleChatID(ctx, msg)
	case cmdNetdiag:
		h.handleNetdiag(ctx, msg)
	case cmdStart, cmdHelp:
		h.reply(ctx, msg, msgHelp)
	default:
		h.l.Debugf(ctx, "telegram handler: ignoring command %s in chat %d", command, msg.Chat.ID)
	}
}

func (h *handler) handleReport(ctx context.Context, msg *pkgTelegram.Message) {
	chatID := msg.Chat.ID
	if !h.guard.Allowed(chatID, senderID(msg)) {
		h.l.Warnf(ctx, "telegram handler: report denied for chat %d", chatID)
		h.reply(ctx, msg, msgDenied)
		return
	}

	if h.limiter != nil {
		if err := h.limiter.Allow(fmt.Sprint(chatID)); err != nil {
			h.l.Warnf(ctx, "telegram handler: %v", err)
			h.reply(ctx, msg, msgRateLimited)
			return
		}
	}

	delivery, err := h.uc.SendReport(ctx, chatID)
	if err != nil {
		h.l.Errorf(ctx, "telegram handler: report for chat %d failed: %v", chatID, err)
		h.reply(ctx, msg, msgReportFailed)
		return
	}
	h.l.Infof(ctx, "telegram handler: report for chat %d sent %d/%d chunks",
		chatID, delivery.Sent, delivery.Chunks)
}

// handleChatID only checks the user list so a new chat can be looked up
// before it is allowed.
func (h *handler) handleChatID(ctx context.Context, msg *pkgTelegram.Message) {
	if !h.guard.UserAllowed(senderID(msg)) {
		h.reply(ctx, msg, msgDenied)
		return
	}
	h.reply(ctx, msg, fmt.Sprintf(msgChatIDPattern, msg.Chat.ID))
}

func (h *handler) handleNetdiag(ctx context.Context, msg *pkgTelegram.Message) {
	if !h.guard.Allowed(msg.Chat.ID, senderID(msg)) {
		h.reply(ctx, msg, msgDenied)
		return
	}
	h.reply(ctx, msg, msgNetdiagStart)
	h.reply(ctx, msg, h.diag.Run(ctx))
}

func (h *handler) reply(ctx context.Context, msg *pkgTelegram.Message, text string) {
	err := h.bot.Send(ctx, pkgTelegram.SendMessageRequest{
		ChatID:           msg.Chat.ID,
		Text:             text,
		ReplyToMessageID: msg.MessageID,
	})
	if err != nil {
		h.l.Warnf(ctx, "telegram handler: failed to reply in chat %d: %v", msg.Chat.ID, err)
	}
}

// parseCommand returns the lower-cased command of text without a @botname
// suffix, or "" when text is not a command.
func parseCommand(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return ""
	}
	command, _, _ := strings.Cut(fields[0], "@")
	if command == "/" {
		return ""
	}
	return strings.ToLower(command)
}

func senderID(msg *pkgTelegram.Message) *int64 {
	if msg.From == nil {
		return nil
	}
	id := msg.From.ID
	return &id
}
