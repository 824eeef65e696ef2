// Package render turns summary tables into chart descriptions and hands the
// finished reports to sinks.
package render

import (
	"context"
	"time"

	"github.com/okian/paylens/internal/domain/aggregate"
	"github.com/okian/paylens/internal/domain/catalog"
)

// Report is one rendered catalog entry.
type Report struct {
	RunID       string             `json:"run_id"`
	GeneratedAt time.Time          `json:"generated_at"`
	Spec        catalog.ReportSpec `json:"spec"`
	Table       aggregate.Table    `json:"table"`
	Chart       Chart              `json:"chart"`
	Narrative   string             `json:"narrative"`
	Warnings    []string           `json:"warnings,omitempty"`
}

// ID returns the catalog id of the report.
func (r Report) ID() string { return r.Spec.ID }

// Sink consumes finished reports. Render is called once per report, in
// catalog order, from a single goroutine.
type Sink interface {
	Render(ctx context.Context, report Report) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, report Report) error

// Render calls f.
func (f SinkFunc) Render(ctx context.Context, report Report) error { return f(ctx, report) }

// Build assembles a report from a spec and its table.
func Build(spec catalog.ReportSpec, table aggregate.Table) Report {
	return Report{
		Spec:      spec,
		Table:     table,
		Chart:     BuildChart(spec, table),
		Narrative: Narrative(spec, table),
	}
}
