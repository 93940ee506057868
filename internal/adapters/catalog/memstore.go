package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/okian/serene/internal/domain/model"
	"github.com/okian/serene/pkg/metrics"
)

// MemStore implements Store in memory.
type MemStore struct {
	mu      sync.RWMutex
	entries map[string]model.CatalogEntry
	// ratings tracks the rolling mean per entry for ApplyRating.
	ratingSum   map[string]float64
	ratingCount map[string]int
}

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithEntries seeds the store with the given entries instead of the built-in
// sample set.
func WithEntries(entries []model.CatalogEntry) Option {
	return func(s *MemStore) {
		s.entries = make(map[string]model.CatalogEntry, len(entries))
		for _, e := range entries {
			s.entries[e.ID] = e
		}
	}
}

// NewMemStore creates an in-memory catalog seeded with the sample entries,
// then applies options.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		ratingSum:   make(map[string]float64),
		ratingCount: make(map[string]int),
	}
	WithEntries(SampleEntries())(s)
	for _, opt := range opts {
		opt(s)
	}
	metrics.UpdateCatalogSize(len(s.entries))
	return s
}

// All returns every entry, id ascending.
func (s *MemStore) All(_ context.Context) ([]model.CatalogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.entries) == 0 {
		return nil, ErrEmptyCatalog
	}
	out := make([]model.CatalogEntry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Get returns one entry by id.
func (s *MemStore) Get(_ context.Context, id string) (model.CatalogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	if !ok {
		return model.CatalogEntry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return e, nil
}

// TopEffective returns up to n entries by effectiveness descending, id
// ascending on ties.
func (s *MemStore) TopEffective(ctx context.Context, n int) ([]model.CatalogEntry, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].EffectivenessScore != all[j].EffectivenessScore {
			return all[i].EffectivenessScore > all[j].EffectivenessScore
		}
		return all[i].ID < all[j].ID
	})
	if n > 0 && len(all) > n {
		all = all[:n]
	}
	return all, nil
}

// ApplyRating updates the entry's effectiveness to the rolling mean rating
// divided by 5.
func (s *MemStore) ApplyRating(_ context.Context, id string, rating float64) error {
	if rating < 0 || rating > 5 {
		return fmt.Errorf("%w: %.2f", ErrInvalidRating, rating)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.ratingSum[id] += rating
	s.ratingCount[id]++
	e.EffectivenessScore = s.ratingSum[id] / float64(s.ratingCount[id]) / 5.0
	s.entries[id] = e
	return nil
}

// Count returns the number of entries.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
