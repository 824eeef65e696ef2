// Package config defines process configuration and its layered loading.
package config

import (
	"fmt"
	"strings"
)

// Default values.
const (
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultDataPath    = "ds_salaries.csv"
	DefaultWorkerCount = 1
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// DataPath is the salary CSV to load.
	DataPath string `koanf:"data_path"`

	// OutputPath receives JSON-lines reports. Empty means stdout.
	OutputPath string `koanf:"output_path"`

	// Addr configures the HTTP listen address, e.g. ":8080". Empty disables
	// the dashboard API and the process exits after rendering.
	Addr string `koanf:"addr"`

	// WorkerCount sets the number of report workers.
	WorkerCount int `koanf:"worker_count"`
}

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:    DefaultLogLevel,
		LogFormat:   DefaultLogFormat,
		DataPath:    DefaultDataPath,
		WorkerCount: DefaultWorkerCount,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.DataPath) == "":
		return fmt.Errorf("%w: data_path must not be empty", ErrInvalidConfig)
	case c.WorkerCount < 1:
		return fmt.Errorf("%w: worker_count must be at least 1, got %d", ErrInvalidConfig, c.WorkerCount)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

// ServeHTTP reports whether the dashboard API should run.
func (c *Config) ServeHTTP() bool { return c.Addr != "" }
