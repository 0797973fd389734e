package binning

import "log/slog"

type options struct {
	numBins       int
	hasNumBins    bool
	maxBinSize    float64
	hasMaxBinSize bool
	logger        *slog.Logger
}

// Option configures bin construction. The sizing options only matter to the
// equal-width constructors.
type Option func(*options)

// WithNumBins splits the range into n bins.
func WithNumBins(n int) Option {
	return func(o *options) {
		o.numBins = n
		o.hasNumBins = true
	}
}

// WithMaxBinSize derives the bin count as ceil(range / size), so no bin is
// wider than size. It takes precedence over WithNumBins.
func WithMaxBinSize(size float64) Option {
	return func(o *options) {
		o.maxBinSize = size
		o.hasMaxBinSize = true
	}
}

// WithLogger sets the logger. By default logger.Get() is used.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func newOptions(opts []Option) options {
	var o options

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
