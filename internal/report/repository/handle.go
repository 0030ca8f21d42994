package repository

import (
	"context"
	"sync"
)

// Handle owns a lazily opened connection. One mutex guards both the open and
// the invalidate path.
type Handle[T any] struct {
	mu     sync.Mutex
	open   func(ctx context.Context) (T, error)
	close  func(T)
	value  T
	opened bool
}

// NewHandle creates a Handle. closeFn may be nil.
func NewHandle[T any](open func(ctx context.Context) (T, error), closeFn func(T)) *Handle[T] {
	return &Handle[T]{open: open, close: closeFn}
}

// GetOrOpen returns the cached connection, opening it first if needed.
// A failed open caches nothing.
func (h *Handle[T]) GetOrOpen(ctx context.Context) (T, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.opened {
		return h.value, nil
	}

	v, err := h.open(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	h.value = v
	h.opened = true
	return v, nil
}

// Invalidate drops the cached connection.
func (h *Handle[T]) Invalidate() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.opened {
		return
	}
	if h.close != nil {
		h.close(h.value)
	}
	var zero T
	h.value = zero
	h.opened = false
}

// Opened reports whether a connection is cached.
func (h *Handle[T]) Opened() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.opened
}
