package binning

import (
	"fmt"
	"iter"
	"log/slog"
	"math"
	"slices"

	"github.com/amp-labs/binkeys/errors"
	"github.com/amp-labs/binkeys/logger"
)

// BinnedKeys files keys into the bins of a Strategy. Bins keep insertion
// order and items are never removed.
//
// A BinnedKeys is not safe for concurrent use.
type BinnedKeys[K any] struct {
	strategy Strategy
	bins     [][]Item[K]
	size     int
	logger   *slog.Logger
}

var _ Container[string] = (*BinnedKeys[string])(nil)

// New creates an empty container with one bin per strategy bin.
func New[K any](strategy Strategy, opts ...Option) (*BinnedKeys[K], error) {
	if strategy == nil {
		return nil, fmt.Errorf("%w: strategy is required", errors.ErrInvalidConfig)
	}

	numBins := strategy.NumBins()
	if numBins <= 0 {
		return nil, fmt.Errorf("%w: strategy has %d bins", errors.ErrInvalidConfig, numBins)
	}

	o := newOptions(opts)

	containersCreated.WithLabelValues(strategyName(strategy)).Inc()

	return &BinnedKeys[K]{
		strategy: strategy,
		bins:     make([][]Item[K], numBins),
		logger:   o.logger,
	}, nil
}

// NewEqualWidthKeys creates an empty container over equal-width bins.
func NewEqualWidthKeys[K any](minValue, maxValue float64, opts ...Option) (*BinnedKeys[K], error) {
	strategy, err := NewEqualWidth(minValue, maxValue, opts...)
	if err != nil {
		return nil, err
	}

	return New[K](strategy, opts...)
}

func (b *BinnedKeys[K]) log() *slog.Logger {
	if b.logger != nil {
		return b.logger
	}

	return logger.Get()
}

func (b *BinnedKeys[K]) Strategy() Strategy { //nolint:ireturn
	return b.strategy
}

func (b *BinnedKeys[K]) NumBins() int {
	return len(b.bins)
}

func (b *BinnedKeys[K]) MinValue() float64 {
	return b.strategy.MinValue()
}

func (b *BinnedKeys[K]) MaxValue() float64 {
	return b.strategy.MaxValue()
}

// Len returns the number of items across all bins.
func (b *BinnedKeys[K]) Len() int {
	return b.size
}

// BinLen returns the number of items in bin i, or 0 if there is no such bin.
func (b *BinnedKeys[K]) BinLen(i int) int {
	if i < 0 || i >= len(b.bins) {
		return 0
	}

	return len(b.bins[i])
}

// Insert files key under value with no attached data.
func (b *BinnedKeys[K]) Insert(key K, value float64) error {
	return b.InsertWithData(key, value, nil)
}

// InsertWithData files key under value. It returns a *BoundsError if value is
// outside [MinValue(), MaxValue()]. A failed insert leaves the bins untouched.
func (b *BinnedKeys[K]) InsertWithData(key K, value float64, data Data) error {
	return b.insert(NewItem(key, value, data))
}

// InsertAll inserts every item, skipping the ones that fail. The failures are
// returned together.
func (b *BinnedKeys[K]) InsertAll(items iter.Seq[Item[K]]) error {
	var errs errors.Collection

	for item := range items {
		errs.Add(b.insert(NewItem(item.key, item.value, item.data)))
	}

	return errs.GetError()
}

func (b *BinnedKeys[K]) insert(item Item[K]) error {
	minValue, maxValue := b.strategy.MinValue(), b.strategy.MaxValue()

	if math.IsNaN(item.value) || item.value < minValue || item.value > maxValue {
		insertsTotal.WithLabelValues(resultOutOfBounds).Inc()
		b.log().Debug("rejected item outside of bin range",
			"key", item.key, "value", item.value, "min_value", minValue, "max_value", maxValue)

		return &BoundsError{Value: item.value, Min: minValue, Max: maxValue}
	}

	idx := b.strategy.BinIndex(item.value)
	if idx < 0 || idx >= len(b.bins) {
		insertsTotal.WithLabelValues(resultInvalidIndex).Inc()
		b.log().Error("strategy returned an invalid bin index",
			"key", item.key, "value", item.value, "index", idx, "num_bins", len(b.bins))

		return fmt.Errorf("%w: %d for value %g (have %d bins)", errors.ErrInvalidBinIndex, idx, item.value, len(b.bins))
	}

	b.bins[idx] = append(b.bins[idx], item)
	b.size++

	insertsTotal.WithLabelValues(resultOK).Inc()

	return nil
}

// Keys yields, for each bin in order, a sequence of the keys in that bin.
// Nothing is copied: the sequences read the bins as they are consumed.
func (b *BinnedKeys[K]) Keys() iter.Seq[iter.Seq[K]] {
	return func(yield func(iter.Seq[K]) bool) {
		for i := range b.bins {
			if !yield(b.binKeys(i)) {
				return
			}
		}
	}
}

func (b *BinnedKeys[K]) binKeys(i int) iter.Seq[K] {
	return func(yield func(K) bool) {
		for _, item := range b.bins[i] {
			if !yield(item.key) {
				return
			}
		}
	}
}

// Bounds yields the bounds of every bin, in order.
func (b *BinnedKeys[K]) Bounds() iter.Seq[Bounds] {
	return func(yield func(Bounds) bool) {
		for i := range b.strategy.NumBins() {
			if !yield(b.strategy.Bounds(i)) {
				return
			}
		}
	}
}

// BinsWithBounds yields a copy of each bin's items alongside its bounds.
func (b *BinnedKeys[K]) BinsWithBounds() iter.Seq2[[]Item[K], Bounds] {
	return func(yield func([]Item[K], Bounds) bool) {
		for i := range b.pairedLen() {
			if !yield(slices.Clone(b.bins[i]), b.strategy.Bounds(i)) {
				return
			}
		}
	}
}

// KeysWithBounds yields each bin's keys alongside its bounds.
func (b *BinnedKeys[K]) KeysWithBounds() iter.Seq2[iter.Seq[K], Bounds] {
	return func(yield func(iter.Seq[K], Bounds) bool) {
		for i := range b.pairedLen() {
			if !yield(b.binKeys(i), b.strategy.Bounds(i)) {
				return
			}
		}
	}
}

// pairedLen is how far bins and bounds can be zipped together.
func (b *BinnedKeys[K]) pairedLen() int {
	return min(len(b.bins), b.strategy.NumBins())
}
