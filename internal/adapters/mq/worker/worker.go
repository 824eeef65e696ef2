// Package worker runs report jobs off the queue and collects their results.
package worker

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/paylens/internal/adapters/mq/queue"
	"github.com/okian/paylens/internal/adapters/render"
	"github.com/okian/paylens/pkg/logger"
	"github.com/okian/paylens/pkg/metrics"
)

// Executor turns one job into a report.
type Executor interface {
	Execute(ctx context.Context, job queue.Job) (render.Report, error)
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(ctx context.Context, job queue.Job) (render.Report, error)

// Execute calls f.
func (f ExecutorFunc) Execute(ctx context.Context, job queue.Job) (render.Report, error) {
	return f(ctx, job)
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Job
}

// Result is a finished job.
type Result struct {
	Index    int
	Report   render.Report
	Duration time.Duration
}

// InMemoryWorker drains a queue through an executor.
type InMemoryWorker struct {
	queue  Queue
	exec   Executor
	name   string
	emit   func(Result)
	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(q Queue, exec Executor, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:  q,
		exec:   exec,
		name:   "worker",
		emit:   func(Result) {},
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.Named(w.name)
	return w
}

// Run processes jobs until the queue is drained, ctx is done or a job
// fails. The first job error is returned.
func (w *InMemoryWorker) Run(ctx context.Context) error {
	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case job, ok := <-jobs:
			if !ok {
				// The forwarder also closes on cancellation.
				return ctx.Err()
			}
			if err := w.process(ctx, job); err != nil {
				return err
			}
		}
	}
}

func (w *InMemoryWorker) process(ctx context.Context, job queue.Job) error {
	start := time.Now()
	report, err := w.exec.Execute(ctx, job)
	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordWorkerError()
		w.logger.Error(ctx, "report job failed",
			logger.String("report", job.Spec.ID),
			logger.Int("index", job.Index),
			logger.Error(err),
		)
		return fmt.Errorf("%w: report %q: %w", ErrJobFailed, job.Spec.ID, err)
	}

	w.logger.Debug(ctx, "report job done",
		logger.String("report", job.Spec.ID),
		logger.Duration("elapsed", elapsed),
	)
	w.emit(Result{Index: job.Index, Report: report, Duration: elapsed})
	return nil
}

// Pool runs a fixed number of workers over one queue.
type Pool struct {
	size   int
	queue  Queue
	exec   Executor
	logger logger.Logger
}

// NewPool creates a pool of size workers. Sizes below one run a single
// worker, which executes jobs strictly in queue order.
func NewPool(size int, q Queue, exec Executor, opts ...PoolOption) *Pool {
	if size < 1 {
		size = 1
	}
	p := &Pool{
		size:   size,
		queue:  q,
		exec:   exec,
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int { return p.size }

// Run starts the workers and waits for them. The queue must be closed by the
// producer, otherwise Run returns only when ctx is done. Results are sorted
// by job index; on error the results finished so far are returned with it.
func (p *Pool) Run(ctx context.Context) ([]Result, error) {
	var (
		mu      sync.Mutex
		results []Result
	)
	collect := func(r Result) {
		mu.Lock()
		results = append(results, r)
		mu.Unlock()
	}

	metrics.UpdateWorkerCount(p.size)
	defer metrics.UpdateWorkerCount(0)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < p.size; i++ {
		w := NewInMemoryWorker(p.queue, p.exec,
			WithName("worker-"+strconv.Itoa(i)),
			WithLogger(p.logger),
			WithResultHandler(collect),
		)
		g.Go(func() error { return w.Run(gctx) })
	}
	err := g.Wait()

	slices.SortFunc(results, func(a, b Result) int { return cmp.Compare(a.Index, b.Index) })
	if err != nil {
		p.logger.Warn(ctx, "worker pool stopped early",
			logger.Int("completed", len(results)),
			logger.Error(err),
		)
		return results, err
	}
	return results, nil
}
