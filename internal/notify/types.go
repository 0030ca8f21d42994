package notify

import (
	"context"
	"errors"
	"time"

	"weekly-task-report/pkg/telegram"
)

// ErrDeliveryTimeout is returned when not a single report chunk got through.
var ErrDeliveryTimeout = errors.New("notify: timed out sending all report chunks")

// Transport sends one message. Timeouts must wrap telegram.ErrTimeout.
type Transport interface {
	Send(ctx context.Context, req telegram.SendMessageRequest) error
}

// Config controls message layout and the retry policy.
type Config struct {
	IntroMentions  string
	IntroText      string
	ChunkSize      int
	Placeholder    string // entry used for an empty section when re-chunking
	RetryAttempts  int
	RetryBaseDelay time.Duration
}

// Summary counts the report chunks of one delivery.
type Summary struct {
	Total  int
	Sent   int
	Failed int
}

type outcome int

const (
	outcomeSent outcome = iota
	outcomeTimeout
	outcomeFailed
)

type attemptResult struct {
	outcome outcome
	err     error
}
