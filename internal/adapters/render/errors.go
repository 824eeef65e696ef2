package render

import "errors"

// Sentinel kinds for render errors.
var (
	ErrReportNotFound = errors.New("report not found")
	ErrEmptyReportID  = errors.New("report has no id")
)
