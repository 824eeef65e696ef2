package worker

import "errors"

// Sentinel kinds for worker errors.
var (
	ErrJobFailed = errors.New("job failed")
)
