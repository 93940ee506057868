// Package service provides the core business service that sequences the
// classifier and scoring engine, applies the fallback policy, and feeds the
// feedback sink. It implements the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/serene/internal/adapters/catalog"
	"github.com/okian/serene/internal/adapters/mq/queue"
	"github.com/okian/serene/internal/adapters/mq/worker"
	"github.com/okian/serene/internal/adapters/profile"
	"github.com/okian/serene/internal/domain/assess"
	"github.com/okian/serene/internal/domain/dedupe"
	"github.com/okian/serene/internal/domain/model"
	"github.com/okian/serene/internal/domain/recommend"
	"github.com/okian/serene/pkg/logger"
	"github.com/okian/serene/pkg/metrics"
)

// Sentinel kinds for service errors.
var (
	// ErrEmptyCatalog is returned only when both the real catalog and the
	// fallback source have no entries.
	ErrEmptyCatalog = errors.New("no catalog available")

	// ErrBackpressure is returned when the feedback queue is full.
	ErrBackpressure = errors.New("feedback queue full")
)

// Generic fallback content, used when the scoring path is unavailable.
var genericBenefits = []string{
	"Supports overall mental wellness",
	"Easy to fit into your day",
}

const genericExplanation = "Generally helpful for mental wellness"

// Service wires the pure engine to its collaborators.
type Service struct {
	mu sync.RWMutex

	// Core components
	classifier assess.Classifier
	engine     *recommend.Engine
	catalog    catalog.Store
	profiles   profile.Store
	deduper    dedupe.Deduper
	feedbackQ  queue.Queue
	pool       *worker.Pool

	// Configuration
	queueSize   int
	workerCount int
	dedupeSize  int
	defaultRecs int
	maxRecs     int
	fallback    []model.CatalogEntry

	// State
	started bool

	logger logger.Logger
}

// New constructs a Service with default configuration, then applies options.
func New(opts ...Option) *Service {
	s := &Service{
		queueSize:   10_000,
		workerCount: 2,
		dedupeSize:  50_000,
		defaultRecs: 5,
		maxRecs:     20,
		fallback:    catalog.SampleEntries(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes any components not injected through options and starts
// the feedback workers.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.classifier == nil {
		s.classifier = assess.NewKeywordClassifier()
	}
	if s.engine == nil {
		s.engine = recommend.NewEngine()
	}
	if s.catalog == nil {
		s.catalog = catalog.NewMemStore()
	}
	if s.profiles == nil {
		s.profiles = profile.NewMemStore()
	}
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.feedbackQ = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))

	rater, _ := s.catalog.(worker.CatalogRater)
	s.pool = worker.NewPool(s.feedbackQ, s.profiles, rater,
		worker.WithWorkerCount(s.workerCount),
		worker.WithLogger(s.logger.Named("feedback")),
	)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "recommendation service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("catalogSize", s.catalog.Count(ctx)),
	)
	return nil
}

// Stop gracefully shuts down the feedback sink.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	ctx := context.Background()
	s.logger.Info(ctx, "stopping recommendation service...")
	if s.feedbackQ != nil {
		_ = s.feedbackQ.Close()
	}
	if s.pool != nil {
		s.pool.Stop()
	}
	s.started = false
	s.logger.Info(ctx, "recommendation service stopped")
}

// AnalyzeMentalState classifies text into an assessment. It always
// succeeds: keyword-less input yields the general_wellness sentinel.
func (s *Service) AnalyzeMentalState(ctx context.Context, text string) model.Assessment {
	a := s.classifier.Classify(text)
	metrics.RecordClassification(string(a.PrimaryConcern), string(a.Urgency), a.SeverityScore)
	if a.Urgency == model.UrgencyHigh {
		s.logger.Warn(ctx, "high urgency classification",
			logger.String("primaryConcern", string(a.PrimaryConcern)),
			logger.Float64("severity", a.SeverityScore),
		)
	}
	return a
}

// Recommend classifies the text, loads the user's profile and the catalog,
// and returns a ranked recommendation list. Recommendation failure must
// never surface to the conversational flow: any internal failure degrades
// to the fallback list instead of an error. The returned bool reports
// whether the fallback was used. ErrEmptyCatalog is returned only when the
// catalog and the fallback source are both empty.
func (s *Service) Recommend(ctx context.Context, userID, text string, max int) (model.Assessment, []model.Recommendation, bool, error) {
	start := time.Now()
	max = s.clampCount(max)

	a := s.AnalyzeMentalState(ctx, text)
	prof := s.profiles.Get(ctx, userID)

	entries, err := s.catalog.All(ctx)
	if err == nil {
		recs, rankErr := s.engine.Rank(a, prof, entries, max)
		if rankErr == nil {
			metrics.RecordRecommendationServed()
			metrics.RecordScoringLatency(float64(time.Since(start).Milliseconds()))
			return a, recs, false, nil
		}
		err = rankErr
	}

	s.logger.Warn(ctx, "scoring unavailable, serving fallback",
		logger.String("userID", userID),
		logger.Error(err),
	)
	recs, fbErr := s.fallbackList(ctx, max)
	if fbErr != nil {
		metrics.RecordEmptyCatalog()
		return a, nil, true, fbErr
	}
	metrics.RecordFallbackServed()
	return a, recs, true, nil
}

// RecordFeedback submits a feedback event to the sink, fire-and-forget.
// Returns the event id and whether it was a duplicate. Events without an id
// get a generated UUID.
func (s *Service) RecordFeedback(ctx context.Context, e model.FeedbackEvent) (string, bool, error) {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}
	if s.deduper.SeenAndRecord(ctx, e.EventID) {
		metrics.RecordFeedbackDuplicate()
		return e.EventID, true, nil
	}
	if !s.feedbackQ.Enqueue(ctx, e) {
		// Roll back the seen mark so the caller can retry.
		s.deduper.Unrecord(ctx, e.EventID)
		metrics.RecordFeedbackDropped()
		return e.EventID, false, ErrBackpressure
	}
	metrics.RecordFeedbackEnqueued()
	return e.EventID, false, nil
}

// TopEffective exposes the catalog's most effective entries.
func (s *Service) TopEffective(ctx context.Context, n int) ([]model.CatalogEntry, error) {
	return s.catalog.TopEffective(ctx, n)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats(ctx context.Context) map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
	}
	if s.started {
		stats["feedbackQueued"] = s.feedbackQ.Len(ctx)
		stats["catalogSize"] = s.catalog.Count(ctx)
		stats["profileCount"] = s.profiles.Count(ctx)
		stats["dedupeSize"] = s.deduper.Size()
		metrics.UpdateFeedbackQueueSize(s.feedbackQ.Len(ctx))
		metrics.UpdateCatalogSize(s.catalog.Count(ctx))
		metrics.UpdateProfileCount(s.profiles.Count(ctx))
	}
	return stats
}

// fallbackList builds generic recommendations from the top-effectiveness
// catalog entries, or from the built-in sample set when the catalog itself
// is unavailable.
func (s *Service) fallbackList(ctx context.Context, max int) ([]model.Recommendation, error) {
	entries, err := s.catalog.TopEffective(ctx, max)
	if err != nil || len(entries) == 0 {
		entries = topEffective(s.fallback, max)
	}
	if len(entries) == 0 {
		return nil, ErrEmptyCatalog
	}
	recs := make([]model.Recommendation, 0, len(entries))
	for _, e := range entries {
		recs = append(recs, model.Recommendation{
			Entry:              e,
			EffectivenessScore: e.EffectivenessScore,
			VarietyScore:       1.0,
			TotalScore:         e.EffectivenessScore,
			Explanation:        genericExplanation,
			Benefits:           append([]string(nil), genericBenefits...),
		})
	}
	return recs, nil
}

// topEffective sorts a static entry slice the same way the catalog store
// does: effectiveness descending, id ascending.
func topEffective(entries []model.CatalogEntry, n int) []model.CatalogEntry {
	out := append([]model.CatalogEntry(nil), entries...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].EffectivenessScore != out[j].EffectivenessScore {
			return out[i].EffectivenessScore > out[j].EffectivenessScore
		}
		return out[i].ID < out[j].ID
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// clampCount applies the default and maximum recommendation counts.
func (s *Service) clampCount(max int) int {
	if max < 1 {
		return s.defaultRecs
	}
	if max > s.maxRecs {
		return s.maxRecs
	}
	return max
}
