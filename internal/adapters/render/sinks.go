package render

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// JSONSink writes every report as one JSON document per line.
type JSONSink struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewJSONSink returns a sink writing JSON lines to w.
func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{enc: json.NewEncoder(w)}
}

// Render encodes report.
func (s *JSONSink) Render(ctx context.Context, report Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enc.Encode(report); err != nil {
		return fmt.Errorf("encode report %q: %w", report.ID(), err)
	}
	return nil
}

// MemorySink keeps the latest report per id, listed in first-render order.
// It backs the HTTP API.
type MemorySink struct {
	mu      sync.RWMutex
	order   []string
	reports map[string]Report
}

// NewMemorySink returns an empty memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{reports: make(map[string]Report)}
}

// Render stores report, replacing any earlier report with the same id.
func (s *MemorySink) Render(_ context.Context, report Report) error {
	id := report.ID()
	if id == "" {
		return ErrEmptyReportID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reports[id]; !ok {
		s.order = append(s.order, id)
	}
	s.reports[id] = report
	return nil
}

// List returns the stored reports.
func (s *MemorySink) List() []Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Report, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.reports[id])
	}
	return out
}

// Get returns the report with the given id.
func (s *MemorySink) Get(id string) (Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[id]
	if !ok {
		return Report{}, fmt.Errorf("%w: %s", ErrReportNotFound, id)
	}
	return r, nil
}

// Len returns the number of stored reports.
func (s *MemorySink) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// MultiSink fans a report out to several sinks in order. The first error
// stops the fan-out.
type MultiSink []Sink

// NewMultiSink drops nil sinks and returns the rest as one sink.
func NewMultiSink(sinks ...Sink) MultiSink {
	out := make(MultiSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

// Render forwards report to every sink.
func (m MultiSink) Render(ctx context.Context, report Report) error {
	for _, s := range m {
		if err := s.Render(ctx, report); err != nil {
			return err
		}
	}
	return nil
}

// Discard accepts and drops every report.
var Discard Sink = SinkFunc(func(context.Context, Report) error { return nil })
