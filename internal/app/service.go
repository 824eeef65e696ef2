// Package service runs the report catalog against a record store and hands
// the results to a render sink.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/paylens/internal/adapters/mq/queue"
	"github.com/okian/paylens/internal/adapters/mq/worker"
	"github.com/okian/paylens/internal/adapters/render"
	"github.com/okian/paylens/internal/adapters/repository"
	"github.com/okian/paylens/internal/domain/aggregate"
	"github.com/okian/paylens/internal/domain/catalog"
	"github.com/okian/paylens/pkg/logger"
	"github.com/okian/paylens/pkg/metrics"
)

// Run outcomes recorded in metrics.
const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// Stats describes the service and its most recent run.
type Stats struct {
	WorkerCount    int       `json:"worker_count"`
	CatalogSize    int       `json:"catalog_size"`
	Runs           int       `json:"runs"`
	LastRunID      string    `json:"last_run_id,omitempty"`
	LastRunAt      time.Time `json:"last_run_at"`
	LastDurationMs float64   `json:"last_duration_ms"`
	LastError      string    `json:"last_error,omitempty"`
	Source         string    `json:"source,omitempty"`
	Records        int       `json:"records"`
	Reports        int       `json:"reports"`
	EmptyReports   int       `json:"empty_reports"`
}

// Service produces the catalog reports.
type Service struct {
	mu sync.RWMutex

	specs       []catalog.ReportSpec
	workerCount int
	sink        render.Sink
	now         func() time.Time
	logger      logger.Logger

	stats Stats
}

// New constructs a new Service with default configuration: the default
// catalog, one worker and a sink that discards reports.
func New(opts ...Option) *Service {
	s := &Service{
		specs:       catalog.Default(),
		workerCount: 1,
		sink:        render.Discard,
		now:         time.Now,
		logger:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes every catalog report against store. Reports are returned and
// handed to the sink in catalog order regardless of the worker count. The
// first aggregation or sink error aborts the run.
func (s *Service) Run(ctx context.Context, store *repository.Store) ([]render.Report, error) {
	start := s.now()
	runID := uuid.NewString()
	log := s.logger

	reports, err := s.run(ctx, store, runID, start)
	s.record(runID, start, store, reports, err)
	if err != nil {
		metrics.RecordPipelineRun(outcomeFailure)
		log.Error(ctx, "report run failed", logger.String("run_id", runID), logger.Error(err))
		return nil, err
	}

	metrics.RecordPipelineRun(outcomeSuccess)
	metrics.UpdatePipelineLastSuccess(s.now().Unix())
	log.Info(ctx, "report run finished",
		logger.String("run_id", runID),
		logger.Int("reports", len(reports)),
		logger.Int("records", store.Len()),
		logger.Duration("elapsed", s.now().Sub(start)),
	)
	return reports, nil
}

func (s *Service) run(ctx context.Context, store *repository.Store, runID string, start time.Time) ([]render.Report, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	if err := catalog.Validate(s.specs); err != nil {
		return nil, err
	}

	q := queue.NewInMemoryQueue(queue.WithCapacity(len(s.specs)))
	jobs := make([]queue.Job, len(s.specs))
	for i, spec := range s.specs {
		jobs[i] = queue.Job{Index: i, Spec: spec}
	}
	if err := queue.Submit(ctx, q, jobs...); err != nil {
		return nil, fmt.Errorf("schedule reports: %w", err)
	}
	if err := q.Close(); err != nil {
		return nil, fmt.Errorf("schedule reports: %w", err)
	}

	exec := &executor{
		store:       store,
		runID:       runID,
		generatedAt: start,
		logger:      s.logger,
	}
	pool := worker.NewPool(s.workerCount, q, exec, worker.WithPoolLogger(s.logger))
	results, err := pool.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("run reports: %w", err)
	}

	reports := make([]render.Report, len(results))
	for i, r := range results {
		reports[i] = r.Report
	}

	for _, r := range reports {
		if err := s.sink.Render(ctx, r); err != nil {
			metrics.RecordSinkError(r.ID())
			return nil, fmt.Errorf("%w: report %q: %w", ErrSink, r.ID(), err)
		}
		metrics.RecordReportRendered(r.ID(), string(r.Spec.Chart))
	}
	return reports, nil
}

func (s *Service) record(runID string, start time.Time, store *repository.Store, reports []render.Report, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats.Runs++
	s.stats.LastRunID = runID
	s.stats.LastRunAt = start
	s.stats.LastDurationMs = float64(s.now().Sub(start).Microseconds()) / 1000
	s.stats.LastError = ""
	if err != nil {
		s.stats.LastError = err.Error()
	}
	s.stats.Source = ""
	s.stats.Records = store.Len()
	if store != nil {
		s.stats.Source = store.Source()
	}
	s.stats.Reports = len(reports)
	s.stats.EmptyReports = 0
	for _, r := range reports {
		if r.Table.Empty() {
			s.stats.EmptyReports++
		}
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := s.stats
	stats.WorkerCount = s.workerCount
	stats.CatalogSize = len(s.specs)
	return stats
}

// executor runs one report job against the store.
type executor struct {
	store       *repository.Store
	runID       string
	generatedAt time.Time
	logger      logger.Logger
}

func (e *executor) Execute(ctx context.Context, job queue.Job) (render.Report, error) {
	if err := ctx.Err(); err != nil {
		return render.Report{}, err
	}
	spec := job.Spec
	start := time.Now()

	src := e.store
	if pred := spec.Predicate(); pred != nil {
		src = e.store.Filter(pred)
	}
	table := aggregate.Run(src, spec.Aggregation)

	report := render.Build(spec, table)
	report.RunID = e.runID
	report.GeneratedAt = e.generatedAt

	if table.Empty() {
		warn := EmptyGroupWarning{ReportID: spec.ID, Records: src.Len()}
		report.Warnings = append(report.Warnings, warn.Error())
		metrics.RecordEmptyGroupWarning(spec.ID)
		e.logger.Info(ctx, "report has no groups",
			logger.String("report", spec.ID),
			logger.Int("records", src.Len()),
		)
	}

	metrics.RecordReportDuration(spec.ID, float64(time.Since(start).Microseconds())/1000)
	metrics.UpdateReportRows(spec.ID, table.Len())
	return report, nil
}
