// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/danielhkuo/areamap/metrics"
)

var ErrClosed = errors.New("persistence handle closed")

// ConnectFunc establishes a new handle.
type ConnectFunc[T any] func(ctx context.Context) (T, error)

// CloseFunc releases a handle returned by a ConnectFunc.
type CloseFunc[T any] func(ctx context.Context, conn T) error

// Lazy owns a single connection that is established on first use.
//
// Concurrent callers of Acquire share one in-flight attempt. A failed attempt
// is not remembered, so the next Acquire dials again.
type Lazy[T any] struct {
	connect ConnectFunc[T]
	close   CloseFunc[T]

	group singleflight.Group

	mu     sync.Mutex
	conn   T
	ready  bool
	closed bool
}

func NewLazy[T any](connect ConnectFunc[T], close CloseFunc[T]) *Lazy[T] {
	return &Lazy[T]{connect: connect, close: close}
}

// Acquire returns the cached handle, connecting if needed.
// Cancelling ctx abandons this caller's wait, not the shared attempt.
func (l *Lazy[T]) Acquire(ctx context.Context) (T, error) {
	var zero T

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return zero, ErrClosed
	}
	if l.ready {
		conn := l.conn
		l.mu.Unlock()
		return conn, nil
	}
	l.mu.Unlock()

	attemptCtx := context.WithoutCancel(ctx)
	ch := l.group.DoChan("connect", func() (any, error) {
		// Another attempt may have finished between our check and DoChan.
		l.mu.Lock()
		if l.ready {
			conn := l.conn
			l.mu.Unlock()
			return conn, nil
		}
		l.mu.Unlock()

		conn, err := l.connect(attemptCtx)
		if err != nil {
			metrics.StoreConnectTotal.WithLabelValues("failure").Inc()
			return nil, err
		}
		metrics.StoreConnectTotal.WithLabelValues("success").Inc()

		l.mu.Lock()
		defer l.mu.Unlock()
		if l.closed {
			if l.close != nil {
				_ = l.close(attemptCtx, conn)
			}
			return nil, ErrClosed
		}
		l.conn = conn
		l.ready = true
		return conn, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// Ready reports whether a handle is currently cached.
func (l *Lazy[T]) Ready() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ready
}

// Close releases the cached handle. Later Acquire calls fail with ErrClosed.
func (l *Lazy[T]) Close(ctx context.Context) error {
	l.mu.Lock()
	conn, ready := l.conn, l.ready
	var zero T
	l.conn, l.ready, l.closed = zero, false, true
	l.mu.Unlock()

	if !ready || l.close == nil {
		return nil
	}
	return l.close(ctx, conn)
}
