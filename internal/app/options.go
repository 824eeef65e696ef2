package service

import (
	"time"

	"github.com/okian/paylens/internal/adapters/render"
	"github.com/okian/paylens/internal/domain/catalog"
	"github.com/okian/paylens/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSink sets where finished reports go.
func WithSink(sink render.Sink) Option {
	return func(s *Service) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// WithCatalog replaces the default report catalog.
func WithCatalog(specs []catalog.ReportSpec) Option {
	return func(s *Service) {
		s.specs = specs
	}
}

// WithClock sets the time source used to stamp reports.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
