package telegram

import (
	"context"
	"fmt"
	"time"

	pkgLog "weekly-task-report/pkg/log"
	pkgTelegram "weekly-task-report/pkg/telegram"
)

const pollRetryDelay = 3 * time.Second

// Updater is the part of the Bot API the poller needs.
type Updater interface {
	DeleteWebhook(ctx context.Context) error
	GetUpdates(ctx context.Context, offset int64) ([]pkgTelegram.Update, error)
}

// Poller long-polls getUpdates and dispatches every update to a Handler.
type Poller struct {
	l          pkgLog.Logger
	updater    Updater
	handler    Handler
	retryDelay time.Duration
}

// NewPoller creates a Poller.
func NewPoller(l pkgLog.Logger, updater Updater, h Handler) *Poller {
	return &Poller{l: l, updater: updater, handler: h, retryDelay: pollRetryDelay}
}

// Run removes any webhook and polls until ctx is done.
func (p *Poller) Run(ctx context.Context) error {
	if err := p.updater.DeleteWebhook(ctx); err != nil {
		return fmt.Errorf("delete webhook before polling: %w", err)
	}
	p.l.Infof(ctx, "telegram poller: started")

	var offset int64
	for {
		updates, err := p.updater.GetUpdates(ctx, offset)
		if ctx.Err() != nil {
			p.l.Infof(ctx, "telegram poller: stopped")
			return nil
		}
		if err != nil {
			p.l.Warnf(ctx, "telegram poller: getUpdates failed: %v", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(p.retryDelay):
			}
			continue
		}

		for _, update := range updates {
			offset = max(offset, update.UpdateID+1)
			if err := p.handler.Dispatch(update); err != nil {
				p.l.Errorf(ctx, "telegram poller: failed to queue update %d: %v", update.UpdateID, err)
			}
		}
	}
}
