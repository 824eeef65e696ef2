package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/paylens/internal/adapters/http/api"
	"github.com/okian/paylens/internal/adapters/http/swagger"
	"github.com/okian/paylens/internal/adapters/render"
	"github.com/okian/paylens/internal/adapters/repository"
	app "github.com/okian/paylens/internal/app"
	"github.com/okian/paylens/internal/config"
	"github.com/okian/paylens/pkg/logger"
	"github.com/okian/paylens/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 10 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdout); err != nil {
		os.Stderr.WriteString("paylens: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}

// run loads configuration, sets up logging and executes the pipeline.
func run(ctx context.Context, stdout io.Writer) error {
	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()
	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if err := execute(ctx, cfg, stdout, log); err != nil {
		log.Error(ctx, "pipeline failed", logger.Error(err))
		return err
	}
	return nil
}

// execute loads the store, renders every report and, when an address is
// configured, serves the dashboard API until ctx is cancelled.
func execute(ctx context.Context, cfg *config.Config, stdout io.Writer, log logger.Logger) error {
	store, err := repository.LoadFile(ctx, cfg.DataPath, repository.WithLogger(log.Named("repository")))
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(cfg.OutputPath, stdout)
	if err != nil {
		return err
	}
	defer closeOut()

	memory := render.NewMemorySink()
	sinks := []render.Sink{render.NewJSONSink(out)}
	if cfg.ServeHTTP() {
		sinks = append(sinks, memory)
	}

	svc := app.New(
		app.WithLogger(log.Named("service")),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithSink(render.NewMultiSink(sinks...)),
	)
	if _, err := svc.Run(ctx, store); err != nil {
		return err
	}

	if !cfg.ServeHTTP() {
		return nil
	}
	return serve(ctx, cfg.Addr, newHandler(svc, memory), log.Named("http"))
}

// openOutput returns the report destination. An empty path means stdout.
func openOutput(path string, stdout io.Writer) (io.Writer, func(), error) {
	if path == "" {
		return stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open output %s: %w", path, err)
	}
	return f, func() { _ = f.Close() }, nil
}

// newHandler registers the API docs and the dashboard API.
func newHandler(svc *app.Service, reports api.ReportReader) http.Handler {
	mux := http.NewServeMux()
	swagger.Register(mux)
	api.NewServer(reports, svc).Register(mux)
	return mux
}

// serve runs the HTTP server and the system metrics updater until ctx is
// cancelled or the server fails.
func serve(ctx context.Context, addr string, handler http.Handler, log logger.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info(gctx, "starting HTTP server", logger.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info(gctx, "shutting down server...")

		// Graceful shutdown with timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		log.Info(gctx, "server stopped")
		return nil
	})
	g.Go(func() error {
		startSystemMetricsUpdater(gctx)
		return nil
	})
	return g.Wait()
}

// startSystemMetricsUpdater updates system metrics until ctx is done.
func startSystemMetricsUpdater(ctx context.Context) {
	updateSystemMetrics()

	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}
