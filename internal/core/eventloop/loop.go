// Package eventloop provides the single execution context a map session runs on.
// Tasks posted to a Loop run one at a time in posting order, so state owned by
// the loop needs no locking.
package eventloop

import (
	"context"
	"sync"

	"weathermap.app/pkg/errors"
)

// Task is a unit of work executed on the loop goroutine
type Task func()

// Loop executes posted tasks sequentially on one goroutine
type Loop struct {
	mu     sync.Mutex
	queue  []Task
	wake   chan struct{}
	closed bool
	done   chan struct{}
}

// New creates a loop. Tasks do not run until Run is called.
func New() *Loop {
	return &Loop{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// Post enqueues fn. It never blocks and reports false once the loop is closed.
func (l *Loop) Post(fn Task) bool {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Call runs fn on the loop and waits for it to finish
func (l *Loop) Call(ctx context.Context, fn Task) error {
	finished := make(chan struct{})
	if !l.Post(func() {
		defer close(finished)
		fn()
	}) {
		return errors.NewSessionClosedError("event loop is closed")
	}

	select {
	case <-finished:
		return nil
	case <-l.done:
		// the loop may have drained the task before stopping
		select {
		case <-finished:
			return nil
		default:
			return errors.NewSessionClosedError("event loop stopped")
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run executes tasks until ctx is cancelled or Close is called.
// Tasks already queued when Close is called still run.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.done)

	for {
		l.mu.Lock()
		batch := l.queue
		l.queue = nil
		closed := l.closed
		l.mu.Unlock()

		for _, task := range batch {
			task()
		}

		if len(batch) > 0 {
			continue
		}
		if closed {
			return
		}

		select {
		case <-l.wake:
		case <-ctx.Done():
			l.Close()
			return
		}
	}
}

// Close stops accepting tasks. Run returns once the queue is drained.
func (l *Loop) Close() {
	l.mu.Lock()
	if !l.closed {
		l.closed = true
	}
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Done is closed when Run returns
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
