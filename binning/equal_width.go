package binning

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/amp-labs/binkeys/errors"
	"github.com/amp-labs/binkeys/logger"
)

// MaxNumBins caps how many bins a range may be split into.
const MaxNumBins = 1 << 24

// EqualWidth is a Strategy whose bins all have the same width.
type EqualWidth struct {
	minValue float64
	maxValue float64
	numBins  int
	binSize  float64
}

var _ Strategy = (*EqualWidth)(nil)

// NewEqualWidth splits [minValue, maxValue] into equal-width bins. Exactly one
// of WithNumBins or WithMaxBinSize should be given; if both are, the maximum
// bin size wins.
func NewEqualWidth(minValue, maxValue float64, opts ...Option) (*EqualWidth, error) {
	o := newOptions(opts)

	numBins, err := resolveNumBins(minValue, maxValue, o)
	if err != nil {
		return nil, err
	}

	log := o.logger
	if log == nil {
		log = logger.Get()
	}

	if o.hasNumBins && o.hasMaxBinSize && o.numBins != numBins {
		log.Warn("both bin count and max bin size given, using max bin size",
			"num_bins", o.numBins, "max_bin_size", o.maxBinSize, "derived_num_bins", numBins)
	}

	ew := &EqualWidth{
		minValue: minValue,
		maxValue: maxValue,
		numBins:  numBins,
		binSize:  (maxValue - minValue) / float64(numBins),
	}

	log.Debug("created equal-width bins",
		"min_value", minValue, "max_value", maxValue, "num_bins", numBins, "bin_size", ew.binSize)

	return ew, nil
}

func resolveNumBins(minValue, maxValue float64, o options) (int, error) {
	if !isFinite(minValue) || !isFinite(maxValue) {
		return 0, fmt.Errorf("%w: range [%g, %g] must be finite", errors.ErrInvalidConfig, minValue, maxValue)
	}

	if minValue >= maxValue {
		return 0, fmt.Errorf("%w: min value %g must be less than max value %g",
			errors.ErrInvalidConfig, minValue, maxValue)
	}

	span := maxValue - minValue
	if !isFinite(span) {
		return 0, fmt.Errorf("%w: range [%g, %g] is too wide", errors.ErrInvalidConfig, minValue, maxValue)
	}

	switch {
	case o.hasMaxBinSize:
		if !isFinite(o.maxBinSize) || o.maxBinSize <= 0 {
			return 0, fmt.Errorf("%w: max bin size %g must be positive", errors.ErrInvalidConfig, o.maxBinSize)
		}

		count := math.Ceil(span / o.maxBinSize)
		if count > MaxNumBins {
			return 0, fmt.Errorf("%w: max bin size %g gives more than %d bins",
				errors.ErrInvalidConfig, o.maxBinSize, MaxNumBins)
		}

		return max(int(count), 1), nil
	case o.hasNumBins:
		if o.numBins <= 0 || o.numBins > MaxNumBins {
			return 0, fmt.Errorf("%w: bin count %d must be in [1, %d]", errors.ErrInvalidConfig, o.numBins, MaxNumBins)
		}

		return o.numBins, nil
	default:
		return 0, fmt.Errorf("%w: one of bin count or max bin size is required", errors.ErrInvalidConfig)
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (e *EqualWidth) Name() string {
	return "equal_width"
}

func (e *EqualWidth) MinValue() float64 {
	return e.minValue
}

func (e *EqualWidth) MaxValue() float64 {
	return e.maxValue
}

func (e *EqualWidth) NumBins() int {
	return e.numBins
}

// BinSize is the width shared by every bin.
func (e *EqualWidth) BinSize() float64 {
	return e.binSize
}

// BinIndex returns floor((value - min) / binSize). The maximum value goes in
// the last bin. Near a boundary, rounding can put a value in the neighboring
// bin; the result is always clamped to a valid index.
func (e *EqualWidth) BinIndex(value float64) int {
	if value == e.maxValue {
		return e.numBins - 1
	}

	idx := int(math.Floor((value - e.minValue) / e.binSize))

	return min(max(idx, 0), e.numBins-1)
}

// Bounds is computed from the bin size rather than stored, so each bin's max
// is the next bin's min.
func (e *EqualWidth) Bounds(binIndex int) Bounds {
	lo := e.binSize*float64(binIndex) + e.minValue

	return Bounds{Min: lo, Max: lo + e.binSize}
}

func (e *EqualWidth) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("min_value", e.minValue),
		slog.Float64("max_value", e.maxValue),
		slog.Int("num_bins", e.numBins),
		slog.Float64("bin_size", e.binSize))
}
