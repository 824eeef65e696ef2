package service

import (
	"errors"
	"fmt"
)

// Sentinel kinds for service errors.
var (
	ErrNilStore = errors.New("record store is nil")
	ErrSink     = errors.New("sink failed")
)

// EmptyGroupWarning notes a report whose aggregation produced no groups,
// usually because its filter matched nothing. It never aborts a run.
type EmptyGroupWarning struct {
	ReportID string
	Records  int
}

func (w EmptyGroupWarning) Error() string {
	return fmt.Sprintf("report %q produced no groups from %d records", w.ReportID, w.Records)
}
