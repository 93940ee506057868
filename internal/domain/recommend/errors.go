package recommend

import "errors"

// Sentinel kinds for scoring errors.
var (
	ErrEmptyCatalog = errors.New("empty catalog")
	ErrInvalidCount = errors.New("invalid recommendation count")
)
