package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"weekly-task-report/pkg/chunker"
	"weekly-task-report/pkg/log"
	"weekly-task-report/pkg/telegram"
)

const (
	defaultChunkSize      = 3900
	defaultRetryAttempts  = 3
	defaultRetryBaseDelay = time.Second
)

// Notifier delivers report text to a chat: intro, chunks, then an optional
// warning about chunks that could not be sent.
type Notifier struct {
	l         log.Logger
	transport Transport
	cfg       Config
}

// New creates a Notifier. Zero config values fall back to defaults.
func New(l log.Logger, transport Transport, cfg Config) *Notifier {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = defaultChunkSize
	}
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = defaultRetryAttempts
	}
	if cfg.RetryBaseDelay <= 0 {
		cfg.RetryBaseDelay = defaultRetryBaseDelay
	}
	return &Notifier{l: l, transport: transport, cfg: cfg}
}

// Intro returns the introductory message, or "" when none is configured.
func (n *Notifier) Intro() string {
	return strings.TrimSpace(n.cfg.IntroMentions + " " + n.cfg.IntroText)
}

// Chunks splits text the way Deliver will send it.
func (n *Notifier) Chunks(text string) []string {
	return chunker.Split(text, n.cfg.ChunkSize, n.cfg.Placeholder)
}

// Deliver sends text to chatID. Chunks that time out after all retries are
// counted and skipped; any other send error aborts the delivery. If every
// chunk fails the returned error wraps ErrDeliveryTimeout and telegram.ErrTimeout.
func (n *Notifier) Deliver(ctx context.Context, chatID int64, text string) (Summary, error) {
	chunks := n.Chunks(text)
	summary := Summary{Total: len(chunks)}

	if intro := n.Intro(); intro != "" {
		if err := n.sendWithRetry(ctx, telegram.SendMessageRequest{ChatID: chatID, Text: intro}); err != nil {
			n.l.Errorf(ctx, "notify.Deliver: intro to chat %d failed: %v", chatID, err)
			return summary, fmt.Errorf("failed to send intro: %w", err)
		}
	}

	var lastTimeout error
	for i, chunk := range chunks {
		err := n.sendWithRetry(ctx, telegram.SendMessageRequest{
			ChatID:             chatID,
			Text:               chunk,
			ParseMode:          telegram.ParseModeHTML,
			LinkPreviewOptions: &telegram.LinkPreviewOptions{IsDisabled: true},
		})
		if err == nil {
			summary.Sent++
			continue
		}
		if !telegram.IsTimeout(err) {
			return summary, fmt.Errorf("failed to send chunk %d/%d: %w", i+1, len(chunks), err)
		}

		summary.Failed++
		lastTimeout = err
		n.l.Errorf(ctx, "notify.Deliver: chunk %d/%d to chat %d failed after retries: %v", i+1, len(chunks), chatID, err)
	}

	if summary.Sent == 0 {
		return summary, fmt.Errorf("%w: %w", ErrDeliveryTimeout, lastTimeout)
	}

	if summary.Failed > 0 {
		warning := fmt.Sprintf("⚠️ Из-за нестабильной сети не отправлено %d из %d частей отчета.", summary.Failed, summary.Total)
		if err := n.sendWithRetry(ctx, telegram.SendMessageRequest{ChatID: chatID, Text: warning}); err != nil {
			n.l.Warnf(ctx, "notify.Deliver: failed to deliver partial-send warning to chat %d: %v", chatID, err)
		}
	}

	n.l.Infof(ctx, "notify.Deliver: chat=%d sent=%d failed=%d", chatID, summary.Sent, summary.Failed)
	return summary, nil
}

// sendWithRetry retries a timed out send with a linearly growing delay.
func (n *Notifier) sendWithRetry(ctx context.Context, req telegram.SendMessageRequest) error {
	var last error
	for attempt := 1; attempt <= n.cfg.RetryAttempts; attempt++ {
		res := n.attempt(ctx, req)
		switch res.outcome {
		case outcomeSent:
			return nil
		case outcomeFailed:
			return res.err
		}

		last = res.err
		if attempt == n.cfg.RetryAttempts {
			break
		}

		delay := time.Duration(attempt) * n.cfg.RetryBaseDelay
		n.l.Warnf(ctx, "notify.sendWithRetry: telegram send timeout (attempt %d/%d), retry in %s", attempt, n.cfg.RetryAttempts, delay)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return last
}

func (n *Notifier) attempt(ctx context.Context, req telegram.SendMessageRequest) attemptResult {
	err := n.transport.Send(ctx, req)
	switch {
	case err == nil:
		return attemptResult{outcome: outcomeSent}
	case telegram.IsTimeout(err):
		return attemptResult{outcome: outcomeTimeout, err: err}
	default:
		return attemptResult{outcome: outcomeFailed, err: err}
	}
}
