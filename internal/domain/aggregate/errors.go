package aggregate

import "errors"

// Sentinel kinds for aggregation errors.
var (
	ErrInvalidSpec = errors.New("invalid aggregation spec")
)
