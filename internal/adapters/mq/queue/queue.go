// Package queue defines the contract for the fire-and-forget feedback sink.
// Producers must never block on it: enqueue is non-blocking and reports
// backpressure by returning false.
package queue

import (
	"context"
	"sync"

	"github.com/okian/serene/internal/domain/model"
	"github.com/okian/serene/pkg/metrics"
)

// Default queue capacity.
const defaultCapacity = 10000

// Event is the payload type flowing through the queue.
type Event = model.FeedbackEvent

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a feedback event. Returns false if the queue is full or
	// closed and the event was dropped.
	Enqueue(ctx context.Context, e Event) bool

	// Dequeue returns a channel receiving events as they become available.
	// The channel is closed when the queue is closed.
	Dequeue(ctx context.Context) <-chan Event

	// Len returns the current number of queued events.
	Len(ctx context.Context) int

	// Close shuts the queue down; further enqueues are rejected.
	Close() error
}

// Option applies a configuration option to the in-memory queue.
type Option func(*InMemoryQueue)

// WithCapacity bounds the number of buffered events.
func WithCapacity(n int) Option {
	return func(q *InMemoryQueue) {
		if n > 0 {
			q.capacity = n
		}
	}
}

// InMemoryQueue implements Queue on a buffered channel.
type InMemoryQueue struct {
	capacity int
	events   chan Event
	mu       sync.RWMutex
	closed   bool
}

// NewInMemoryQueue creates a queue with the default capacity, then applies
// options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultCapacity,
	}
	for _, opt := range opts {
		opt(q)
	}
	q.events = make(chan Event, q.capacity)

	metrics.UpdateFeedbackQueueSize(0)
	return q
}

// Enqueue adds an event without blocking.
func (q *InMemoryQueue) Enqueue(_ context.Context, e Event) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return false
	}
	select {
	case q.events <- e:
		metrics.UpdateFeedbackQueueSize(len(q.events))
		return true
	default:
		return false
	}
}

// Dequeue returns the receive side of the queue.
func (q *InMemoryQueue) Dequeue(_ context.Context) <-chan Event {
	return q.events
}

// Len returns the number of buffered events.
func (q *InMemoryQueue) Len(_ context.Context) int {
	return len(q.events)
}

// Close rejects further enqueues and closes the dequeue channel once
// drained producers are gone.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil
	}
	q.closed = true
	close(q.events)
	return nil
}
