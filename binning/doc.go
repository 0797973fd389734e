// Package binning partitions a closed numeric range into contiguous,
// non-overlapping bins and files keyed items into the bin covering their value.
//
// A Strategy does the arithmetic (value to bin index, bin index to bounds) and
// a BinnedKeys container owns the bins:
//
//	bins, err := binning.NewEqualWidthKeys[string](0, 10, binning.WithNumBins(5))
//	if err != nil {
//	    return err
//	}
//
//	_ = bins.Insert("a", 1.5)  // bin 0, [0, 2)
//	_ = bins.Insert("b", 10)   // bin 4, the last bin is closed on the right
//	err = bins.Insert("c", 10.1) // *BoundsError, errors.Is(err, errors.ErrOutOfBounds)
//
//	for keys, bounds := range bins.KeysWithBounds() {
//	    fmt.Println(bounds, slices.Collect(keys))
//	}
//
// BinnedKeys is not safe for concurrent use; wrap it with NewThreadSafe when
// it is shared between goroutines.
package binning
