package binning

import "fmt"

// Strategy maps values onto bins over [MinValue(), MaxValue()].
//
// Implementations must be pure functions of their configuration. For every v
// with MinValue() <= v <= MaxValue(), BinIndex(v) is in [0, NumBins()) and
// Bounds(BinIndex(v)) contains v (the last bin being closed on the right).
// Consecutive bins are adjacent, Bounds(0).Min == MinValue() and
// Bounds(NumBins()-1).Max == MaxValue().
type Strategy interface {
	MinValue() float64
	MaxValue() float64
	NumBins() int

	// BinIndex returns the index of the bin value belongs in. The caller
	// guarantees value is within range.
	BinIndex(value float64) int

	// Bounds returns the interval covered by bin binIndex.
	Bounds(binIndex int) Bounds
}

// strategyName is the metrics label for a strategy.
func strategyName(s Strategy) string {
	if named, ok := s.(interface{ Name() string }); ok {
		return named.Name()
	}

	return fmt.Sprintf("%T", s)
}
