package qoi

import "github.com/rs/zerolog"

// defaultParallelThreshold is the pixel-count threshold at or above which
// EncodeAuto picks the parallel path.
const defaultParallelThreshold = 256 * 1024

// Options configures the Orchestrator's auto-selection between the
// serial and parallel codecs. The zero value is not useful; build one
// with NewOptions and the With* functions below.
type Options struct {
	workers   int
	threshold int
	logger    zerolog.Logger
}

// Option mutates an Options under construction.
type Option func(*Options) error

// NewOptions builds an Options from the given functional options,
// defaulting to runtime.NumCPU() workers, a 256Ki-pixel parallel
// threshold, and a discarding logger.
func NewOptions(opts ...Option) (Options, error) {
	o := Options{
		workers:   defaultWorkers(),
		threshold: defaultParallelThreshold,
		logger:    defaultLogger(),
	}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return Options{}, err
		}
	}
	return o, nil
}

// WithWorkers sets the worker-pool size for the parallel path. Rejected
// at construction time if n <= 0.
func WithWorkers(n int) Option {
	return func(o *Options) error {
		if n <= 0 {
			return newError(InvalidArgument, "workers must be > 0, got %d", n)
		}
		o.workers = n
		return nil
	}
}

// WithParallelThreshold sets the pixel-count threshold at or above which
// EncodeAuto selects the parallel codec. DecodeAuto does not use it: it
// picks the codec from the stream's own layout.
func WithParallelThreshold(pixels int) Option {
	return func(o *Options) error {
		if pixels < 0 {
			return newError(InvalidArgument, "threshold must be >= 0, got %d", pixels)
		}
		o.threshold = pixels
		return nil
	}
}

// WithLogger attaches a structured logger that EncodeAuto/DecodeAuto emit
// Debug/Info events to. EncodeParallel and DecodeParallel do not log. The
// default is silent.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Options) error {
		o.logger = logger
		return nil
	}
}
