// Package profile defines the user preference profile store. The engine
// only ever reads snapshots from it; writes come from the feedback sink.
package profile

import (
	"context"

	"github.com/okian/serene/internal/domain/model"
)

// Store supplies preference profile snapshots and accepts feedback writes.
type Store interface {
	// Get returns a snapshot for the user. Unknown users get a defaulted
	// profile with empty sets and maps; Get never fails on missing data.
	Get(ctx context.Context, userID string) model.PreferenceProfile

	// Update replaces a user's stated preferences.
	Update(ctx context.Context, p model.PreferenceProfile) error

	// RecordSession prepends a session to the user's recency list.
	RecordSession(ctx context.Context, userID, meditationID string) error

	// RecordFeedback folds a feedback event into the profile: ratings into
	// pastRatings, acceptances into completion counts and recency.
	RecordFeedback(ctx context.Context, e model.FeedbackEvent) error

	// Count returns the number of stored profiles.
	Count(ctx context.Context) int
}
