package binning

import "iter"

// Container is the API shared by BinnedKeys and its thread-safe wrapper.
type Container[K any] interface {
	Strategy() Strategy
	NumBins() int
	MinValue() float64
	MaxValue() float64
	Len() int
	BinLen(i int) int

	Insert(key K, value float64) error
	InsertWithData(key K, value float64, data Data) error
	InsertAll(items iter.Seq[Item[K]]) error

	Keys() iter.Seq[iter.Seq[K]]
	Bounds() iter.Seq[Bounds]
	BinsWithBounds() iter.Seq2[[]Item[K], Bounds]
	KeysWithBounds() iter.Seq2[iter.Seq[K], Bounds]
}
