// Package queue hands report jobs from the pipeline service to the worker
// pool through a bounded in-memory channel.
package queue

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/paylens/internal/domain/catalog"
	"github.com/okian/paylens/pkg/metrics"
)

const defaultQueueCapacity = 64

// Job is one catalog entry scheduled for execution. Index is the position
// of the spec in the catalog and fixes the output order.
type Job struct {
	Index int
	Spec  catalog.ReportSpec
}

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a job. It returns false if the queue is full or closed.
	Enqueue(ctx context.Context, job Job) bool

	// Dequeue returns a channel receiving jobs in enqueue order. The channel
	// is closed once the queue is closed and drained.
	Dequeue(ctx context.Context) <-chan Job

	// Len returns the number of pending jobs.
	Len(ctx context.Context) int

	// Close stops accepting jobs. Pending jobs stay available to Dequeue.
	Close() error

	// IsClosed reports whether Close has been called.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	jobs     chan Job
	capacity int

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultQueueCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.jobs = make(chan Job, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)

	return q
}

// Enqueue adds a job to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, job Job) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return false
	}

	select {
	case q.jobs <- job:
		metrics.UpdateQueueSize(len(q.jobs))
		return true
	case <-ctx.Done():
		return false
	default:
		return false
	}
}

// Dequeue returns a channel that will receive jobs as they become available.
// Each call starts a forwarder, so several workers may share one queue.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Job {
	out := make(chan Job)
	go func() {
		defer close(out)
		for job := range q.jobs {
			select {
			case out <- job:
				metrics.UpdateQueueSize(len(q.jobs))
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the current number of queued jobs.
func (q *InMemoryQueue) Len(_ context.Context) int {
	return len(q.jobs)
}

// Close stops the queue. It is safe to call more than once.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.jobs)
	q.closed = true
	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

// Submit enqueues jobs in order and stops at the first rejection.
func Submit(ctx context.Context, q Queue, jobs ...Job) error {
	for _, job := range jobs {
		if q.Enqueue(ctx, job) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if q.IsClosed() {
			return fmt.Errorf("%w: job %d", ErrQueueClosed, job.Index)
		}
		return fmt.Errorf("%w: job %d", ErrQueueFull, job.Index)
	}
	return nil
}
