package service

import (
	"github.com/okian/serene/internal/adapters/catalog"
	"github.com/okian/serene/internal/adapters/profile"
	"github.com/okian/serene/internal/domain/assess"
	"github.com/okian/serene/internal/domain/model"
	"github.com/okian/serene/internal/domain/recommend"
	"github.com/okian/serene/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClassifier injects a configured classifier.
func WithClassifier(c assess.Classifier) Option {
	return func(s *Service) {
		if c != nil {
			s.classifier = c
		}
	}
}

// WithEngine injects a configured scoring engine.
func WithEngine(e *recommend.Engine) Option {
	return func(s *Service) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithCatalog injects the catalog store.
func WithCatalog(c catalog.Store) Option {
	return func(s *Service) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithProfiles injects the profile store.
func WithProfiles(p profile.Store) Option {
	return func(s *Service) {
		if p != nil {
			s.profiles = p
		}
	}
}

// WithQueueSize bounds the feedback queue.
func WithQueueSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.queueSize = n
		}
	}
}

// WithWorkerCount sets the number of feedback workers.
func WithWorkerCount(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workerCount = n
		}
	}
}

// WithDedupeSize bounds the feedback idempotency cache.
func WithDedupeSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.dedupeSize = n
		}
	}
}

// WithRecommendationCounts sets the default and maximum list sizes.
func WithRecommendationCounts(def, max int) Option {
	return func(s *Service) {
		if def > 0 && max >= def {
			s.defaultRecs = def
			s.maxRecs = max
		}
	}
}

// WithFallbackEntries replaces the built-in fallback sample set. An empty
// slice disables the last-resort fallback entirely.
func WithFallbackEntries(entries []model.CatalogEntry) Option {
	return func(s *Service) {
		s.fallback = entries
	}
}
