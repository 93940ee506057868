package profile

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/serene/internal/domain/model"
)

// Default bound on the recent-session recency list.
const defaultRecencyLimit = 10

// MemStore implements Store in memory.
type MemStore struct {
	mu           sync.RWMutex
	profiles     map[string]model.PreferenceProfile
	recencyLimit int
	now          func() time.Time
}

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithRecencyLimit bounds the recent-session list kept per user.
func WithRecencyLimit(n int) Option {
	return func(s *MemStore) {
		if n > 0 {
			s.recencyLimit = n
		}
	}
}

// WithClock sets the timestamp source, used by tests for determinism.
func WithClock(now func() time.Time) Option {
	return func(s *MemStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemStore creates an empty in-memory profile store, then applies
// options.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		profiles:     make(map[string]model.PreferenceProfile),
		recencyLimit: defaultRecencyLimit,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns a copy of the user's profile. Unknown users get a defaulted
// beginner profile; missing maps and slices come back empty, never nil
// lookups for the caller to guard against.
func (s *MemStore) Get(_ context.Context, userID string) model.PreferenceProfile {
	s.mu.RLock()
	p, ok := s.profiles[userID]
	s.mu.RUnlock()
	if !ok {
		return model.PreferenceProfile{
			UserID:           userID,
			ExperienceLevel:  model.LevelBeginner,
			PastRatings:      map[string]float64{},
			CompletionCounts: map[string]int{},
		}
	}
	return clone(p)
}

// Update replaces the user's stated preferences, keeping history fields.
func (s *MemStore) Update(_ context.Context, p model.PreferenceProfile) error {
	if p.UserID == "" {
		return ErrMissingUserID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.profiles[p.UserID]
	if ok {
		p.RecentSessionIDs = existing.RecentSessionIDs
		p.PastRatings = existing.PastRatings
		p.CompletionCounts = existing.CompletionCounts
	} else {
		p.PastRatings = map[string]float64{}
		p.CompletionCounts = map[string]int{}
	}
	p.LastUpdated = s.now()
	s.profiles[p.UserID] = p
	return nil
}

// RecordSession prepends the meditation to the user's recency list, most
// recent first, trimmed to the configured bound.
func (s *MemStore) RecordSession(_ context.Context, userID, meditationID string) error {
	if userID == "" {
		return ErrMissingUserID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.getOrCreate(userID)
	recent := make([]string, 0, s.recencyLimit)
	recent = append(recent, meditationID)
	for _, id := range p.RecentSessionIDs {
		if id == meditationID || len(recent) >= s.recencyLimit {
			continue
		}
		recent = append(recent, id)
	}
	p.RecentSessionIDs = recent
	p.LastUpdated = s.now()
	s.profiles[userID] = p
	return nil
}

// RecordFeedback folds one feedback event into the profile.
func (s *MemStore) RecordFeedback(ctx context.Context, e model.FeedbackEvent) error {
	if e.UserID == "" {
		return fmt.Errorf("%w: event %s", ErrMissingUserID, e.EventID)
	}
	s.mu.Lock()
	p := s.getOrCreate(e.UserID)
	if e.Rating != nil {
		p.PastRatings[e.MeditationID] = *e.Rating
	}
	if e.Accepted {
		p.CompletionCounts[e.MeditationID]++
	}
	p.LastUpdated = s.now()
	s.profiles[e.UserID] = p
	s.mu.Unlock()

	if e.Accepted {
		return s.RecordSession(ctx, e.UserID, e.MeditationID)
	}
	return nil
}

// Count returns the number of stored profiles.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.profiles)
}

// getOrCreate must be called with the write lock held.
func (s *MemStore) getOrCreate(userID string) model.PreferenceProfile {
	p, ok := s.profiles[userID]
	if !ok {
		p = model.PreferenceProfile{
			UserID:           userID,
			ExperienceLevel:  model.LevelBeginner,
			PastRatings:      map[string]float64{},
			CompletionCounts: map[string]int{},
		}
	}
	return p
}

// clone deep-copies a profile so callers can't mutate stored state.
func clone(p model.PreferenceProfile) model.PreferenceProfile {
	out := p
	out.PreferredTypes = append([]string(nil), p.PreferredTypes...)
	out.PreferredDurations = append([]model.DurationBucket(nil), p.PreferredDurations...)
	out.RecentSessionIDs = append([]string(nil), p.RecentSessionIDs...)
	out.PastRatings = make(map[string]float64, len(p.PastRatings))
	for k, v := range p.PastRatings {
		out.PastRatings[k] = v
	}
	out.CompletionCounts = make(map[string]int, len(p.CompletionCounts))
	for k, v := range p.CompletionCounts {
		out.CompletionCounts[k] = v
	}
	return out
}
