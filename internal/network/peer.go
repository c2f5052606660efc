// Package network runs the background host/join task that links two players.
// The link is a bare TCP connection; nothing is exchanged over it.
package network

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"
)

// RetryInterval is the delay between failed dial attempts when joining.
const RetryInterval = 500 * time.Millisecond

// Task is a cancellable background job.
type Task struct {
	cancel context.CancelFunc
	done   chan struct{}
	err    error
	once   sync.Once
}

// Go runs fn on its own goroutine with a context derived from ctx.
func Go(ctx context.Context, fn func(context.Context) error) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(t.done)
		t.err = fn(ctx)
	}()
	return t
}

// Cancel asks the task to stop. It does not wait.
func (t *Task) Cancel() {
	t.once.Do(t.cancel)
}

// Wait blocks until the task has returned and reports its error.
// Cancellation is not an error.
func (t *Task) Wait() error {
	<-t.done
	if errors.Is(t.err, context.Canceled) {
		return nil
	}
	return t.err
}

// Handler receives connection lifecycle callbacks. Either field may be nil.
type Handler struct {
	Listening func(addr string) // Host only, once the listener is up
	Connected func(addr string) // Remote address of the peer
}

// Host listens on addr, accepts one peer and holds the connection until ctx
// is done.
func Host(ctx context.Context, addr string, h Handler) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()
	defer ln.Close()

	if h.Listening != nil {
		h.Listening(ln.Addr().String())
	}

	conn, err := ln.Accept()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("accept: %w", err)
	}
	return hold(ctx, conn, h)
}

// Join dials addr until it succeeds or ctx is done, then holds the connection.
func Join(ctx context.Context, addr string, h Handler) error {
	var d net.Dialer
	for {
		conn, err := d.DialContext(ctx, "tcp", addr)
		if err == nil {
			return hold(ctx, conn, h)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(RetryInterval):
		}
	}
}

func hold(ctx context.Context, conn net.Conn, h Handler) error {
	defer conn.Close()
	if h.Connected != nil {
		h.Connected(conn.RemoteAddr().String())
	}
	<-ctx.Done()
	return ctx.Err()
}
