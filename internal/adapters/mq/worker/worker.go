// Package worker drains the feedback queue and applies events to the
// profile and catalog stores. Workers run until the queue closes or the
// context is canceled; the engine never waits on them.
package worker

import (
	"context"
	"sync"

	"github.com/okian/serene/internal/domain/model"
	"github.com/okian/serene/pkg/logger"
	"github.com/okian/serene/pkg/metrics"
)

// Event is what workers read off the queue.
type Event = model.FeedbackEvent

// Queue defines how workers receive events.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Event
}

// ProfileRecorder applies a feedback event to the user's preference profile.
type ProfileRecorder interface {
	RecordFeedback(ctx context.Context, e model.FeedbackEvent) error
}

// CatalogRater folds a user rating into an entry's effectiveness signal.
type CatalogRater interface {
	ApplyRating(ctx context.Context, meditationID string, rating float64) error
}

// Pool runs a fixed number of workers over one queue.
type Pool struct {
	queue    Queue
	profiles ProfileRecorder
	catalog  CatalogRater
	count    int

	wg     sync.WaitGroup
	cancel context.CancelFunc
	logger logger.Logger
}

// Option applies a configuration option to the Pool.
type Option func(*Pool)

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.count = n
		}
	}
}

// WithLogger sets the pool's logger.
func WithLogger(l logger.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPool creates a worker pool, then applies options.
func NewPool(queue Queue, profiles ProfileRecorder, catalog CatalogRater, opts ...Option) *Pool {
	p := &Pool{
		queue:    queue,
		profiles: profiles,
		catalog:  catalog,
		count:    2,
		logger:   logger.Get().Named("feedback"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start launches the workers.
func (p *Pool) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	metrics.UpdateWorkerCount(p.count)
	for i := 0; i < p.count; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			p.run(ctx)
		}()
	}
}

// Stop cancels the workers and waits for them to drain.
func (p *Pool) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	metrics.UpdateWorkerCount(0)
}

func (p *Pool) run(ctx context.Context) {
	events := p.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			p.process(ctx, e)
		}
	}
}

// process applies one feedback event. Failures are logged and dropped; the
// sink is fire-and-forget and must not stall the queue.
func (p *Pool) process(ctx context.Context, e Event) {
	if err := p.profiles.RecordFeedback(ctx, e); err != nil {
		metrics.RecordFeedbackError()
		p.logger.Error(ctx, "failed to record feedback on profile",
			logger.String("eventID", e.EventID),
			logger.String("userID", e.UserID),
			logger.Error(err),
		)
	}
	if e.Rating != nil && p.catalog != nil {
		if err := p.catalog.ApplyRating(ctx, e.MeditationID, *e.Rating); err != nil {
			metrics.RecordFeedbackError()
			p.logger.Error(ctx, "failed to apply rating to catalog",
				logger.String("eventID", e.EventID),
				logger.String("meditationID", e.MeditationID),
				logger.Error(err),
			)
		}
	}
	metrics.RecordFeedbackProcessed()
}
