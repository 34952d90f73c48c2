// Package taskq serializes ledger mutations through a single runner
// goroutine. Routing every mutation through one queue gives the board and
// the last-game slot a single writer without sprinkling locks over the
// service.
package taskq

import (
	"context"
	"sync"
)

const defaultCapacity = 64

// Task is a unit of work executed by the runner.
type Task func()

// Queue executes submitted tasks strictly in submission order.
type Queue struct {
	tasks    chan Task
	capacity int

	mu      sync.RWMutex
	started bool
	closed  bool
	done    chan struct{}
}

// Option applies a configuration option to the Queue.
type Option func(*Queue)

// WithCapacity bounds the number of tasks waiting to run.
func WithCapacity(n int) Option {
	return func(q *Queue) {
		if n > 0 {
			q.capacity = n
		}
	}
}

// New creates a Queue with configuration options. Call Start before Do.
func New(opts ...Option) *Queue {
	q := &Queue{capacity: defaultCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.tasks = make(chan Task, q.capacity)
	q.done = make(chan struct{})
	return q
}

// Start launches the runner goroutine. Starting twice is a no-op.
func (q *Queue) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started {
		return
	}
	q.started = true

	go func() {
		defer close(q.done)
		for {
			select {
			case t, ok := <-q.tasks:
				if !ok {
					return
				}
				t()
			case <-ctx.Done():
				// Drain what was already accepted so no submitter is
				// left waiting on a task that will never run.
				for {
					select {
					case t, ok := <-q.tasks:
						if !ok {
							return
						}
						t()
					default:
						return
					}
				}
			}
		}
	}()
}

// Do submits t and blocks until the runner has executed it, or until ctx
// expires. A task that was accepted still runs even if the submitter stops
// waiting.
func (q *Queue) Do(ctx context.Context, t Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	finished := make(chan struct{})
	wrapped := func() {
		defer close(finished)
		t()
	}

	// The read lock keeps Close from closing the channel mid-send.
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return ErrClosed
	}
	select {
	case q.tasks <- wrapped:
		q.mu.RUnlock()
	case <-ctx.Done():
		q.mu.RUnlock()
		return ctx.Err()
	case <-q.done:
		q.mu.RUnlock()
		return ErrClosed
	}

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-q.done:
		// Runner exited before picking the task up.
		select {
		case <-finished:
			return nil
		default:
			return ErrClosed
		}
	}
}

// Len returns the number of tasks waiting to run.
func (q *Queue) Len() int {
	return len(q.tasks)
}

// Close stops accepting tasks and waits for the runner to drain the queue.
func (q *Queue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	q.mu.Unlock()

	close(q.tasks)
	<-q.done
	return nil
}
