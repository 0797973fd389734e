package binning

import (
	"iter"
	"slices"
	"sync"

	"go.uber.org/atomic"
)

// NewThreadSafe wraps b so it can be shared between goroutines. Inserts take
// an exclusive lock. Iterators copy the bins under a shared lock when they
// start and then run without holding it, so a range loop sees the contents
// as of the moment it began.
//
// b must not be used directly after wrapping.
func NewThreadSafe[K any](b *BinnedKeys[K]) *ThreadSafe[K] {
	if b == nil {
		return nil
	}

	ts := &ThreadSafe[K]{internal: b}
	ts.size.Store(int64(b.Len()))

	return ts
}

// ThreadSafe is a BinnedKeys guarded by a sync.RWMutex.
type ThreadSafe[K any] struct {
	mutex    sync.RWMutex
	internal *BinnedKeys[K]
	size     atomic.Int64
}

var _ Container[string] = (*ThreadSafe[string])(nil)

func (t *ThreadSafe[K]) Strategy() Strategy { //nolint:ireturn
	return t.internal.Strategy()
}

func (t *ThreadSafe[K]) NumBins() int {
	return t.internal.NumBins()
}

func (t *ThreadSafe[K]) MinValue() float64 {
	return t.internal.MinValue()
}

func (t *ThreadSafe[K]) MaxValue() float64 {
	return t.internal.MaxValue()
}

// Len reads an atomic counter and never blocks on the lock.
func (t *ThreadSafe[K]) Len() int {
	return int(t.size.Load())
}

func (t *ThreadSafe[K]) BinLen(i int) int {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.internal.BinLen(i)
}

func (t *ThreadSafe[K]) Insert(key K, value float64) error {
	return t.InsertWithData(key, value, nil)
}

func (t *ThreadSafe[K]) InsertWithData(key K, value float64, data Data) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	err := t.internal.InsertWithData(key, value, data)
	t.size.Store(int64(t.internal.Len()))

	return err
}

// InsertAll drains items before taking the lock, so the sequence may itself
// read from this container.
func (t *ThreadSafe[K]) InsertAll(items iter.Seq[Item[K]]) error {
	batch := slices.Collect(items)

	t.mutex.Lock()
	defer t.mutex.Unlock()

	err := t.internal.InsertAll(slices.Values(batch))
	t.size.Store(int64(t.internal.Len()))

	return err
}

// snapshot copies the bins into a standalone container sharing the strategy.
func (t *ThreadSafe[K]) snapshot() *BinnedKeys[K] {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	bins := make([][]Item[K], len(t.internal.bins))
	for i, bin := range t.internal.bins {
		bins[i] = slices.Clone(bin)
	}

	return &BinnedKeys[K]{
		strategy: t.internal.strategy,
		bins:     bins,
		size:     t.internal.size,
		logger:   t.internal.logger,
	}
}

func (t *ThreadSafe[K]) Keys() iter.Seq[iter.Seq[K]] {
	return func(yield func(iter.Seq[K]) bool) {
		t.snapshot().Keys()(yield)
	}
}

// Bounds needs no lock: the strategy is immutable.
func (t *ThreadSafe[K]) Bounds() iter.Seq[Bounds] {
	return t.internal.Bounds()
}

func (t *ThreadSafe[K]) BinsWithBounds() iter.Seq2[[]Item[K], Bounds] {
	return func(yield func([]Item[K], Bounds) bool) {
		t.snapshot().BinsWithBounds()(yield)
	}
}

func (t *ThreadSafe[K]) KeysWithBounds() iter.Seq2[iter.Seq[K], Bounds] {
	return func(yield func(iter.Seq[K], Bounds) bool) {
		t.snapshot().KeysWithBounds()(yield)
	}
}
