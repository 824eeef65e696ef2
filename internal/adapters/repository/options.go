package repository

import "github.com/okian/paylens/pkg/logger"

// loadOptions holds settings for Load and LoadFile.
type loadOptions struct {
	source string
	logger logger.Logger
}

// Option applies a configuration option to a load.
type Option func(*loadOptions)

// WithSourceName labels errors and logs with name instead of the default.
func WithSourceName(name string) Option {
	return func(o *loadOptions) {
		if name != "" {
			o.source = name
		}
	}
}

// WithLogger sets the logger used to report load progress.
func WithLogger(l logger.Logger) Option {
	return func(o *loadOptions) {
		if l != nil {
			o.logger = l
		}
	}
}
