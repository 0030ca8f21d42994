package report

import "errors"

var (
	// ErrSourceRead wraps any failure to read the task sheet.
	ErrSourceRead = errors.New("failed to read task sheet")
	// ErrMalformedDate marks a closed date that is not DD.MM.YYYY. Logged, never returned.
	ErrMalformedDate = errors.New("malformed closed date")
	// ErrUnsafeLink marks a link that is not an absolute http(s) URL. Logged, never returned.
	ErrUnsafeLink = errors.New("unsafe link")
	// ErrInvalidChatID marks a destination chat id that is not an integer.
	ErrInvalidChatID = errors.New("invalid chat id")
)
