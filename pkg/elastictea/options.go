package elastictea

import "log/slog"

// Recorder receives connector counters. internal/metrics provides the
// Prometheus implementation.
type Recorder interface {
	PageFetched(index string, hits int)
	BulkSent(index string, items, failed int)
	BulkRejected(index string)
}

type nopRecorder struct{}

func (nopRecorder) PageFetched(string, int)   {}
func (nopRecorder) BulkSent(string, int, int) {}
func (nopRecorder) BulkRejected(string)       {}

type options struct {
	logger   *slog.Logger
	recorder Recorder
}

type Option func(*options)

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorder = r
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		logger:   slog.Default(),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
