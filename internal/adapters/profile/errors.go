package profile

import "errors"

// Sentinel kinds for profile errors.
var (
	ErrMissingUserID = errors.New("missing user id")
)
