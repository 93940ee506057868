// Package catalog defines the meditation catalog store interface and its
// in-memory implementation. The scoring engine treats the catalog strictly
// as an opaque input, so a persisted store can be substituted behind this
// interface without touching any scoring logic.
package catalog

import (
	"context"

	"github.com/okian/serene/internal/domain/model"
)

// Store provides read access to catalog entries plus the one write path the
// feedback sink needs.
type Store interface {
	// All returns every entry. Returns ErrEmptyCatalog when no entries exist.
	All(ctx context.Context) ([]model.CatalogEntry, error)

	// Get returns one entry by id. Returns ErrNotFound if it is unknown.
	Get(ctx context.Context, id string) (model.CatalogEntry, error)

	// TopEffective returns up to n entries ordered by effectiveness
	// descending, id ascending on ties.
	TopEffective(ctx context.Context, n int) ([]model.CatalogEntry, error)

	// ApplyRating folds a user rating in [0, 5] into the entry's
	// effectiveness score as the rolling mean rating divided by 5.
	ApplyRating(ctx context.Context, id string, rating float64) error

	// Count returns the number of entries.
	Count(ctx context.Context) int
}
