package catalog

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrNotFound      = errors.New("meditation not found")
	ErrEmptyCatalog  = errors.New("catalog is empty")
	ErrInvalidRating = errors.New("rating out of range")
)
