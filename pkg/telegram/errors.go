package telegram

import (
	"context"
	"errors"
	"net"
)

var (
	// ErrTimeout marks a call that got no answer within its deadline.
	ErrTimeout = errors.New("telegram: timed out")
	// ErrAPI marks a call answered by Telegram with ok=false or a non-200 status.
	ErrAPI = errors.New("telegram: api error")
)

// IsTimeout reports whether err is a transport timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

func isDeadline(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
