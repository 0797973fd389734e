package binning

import (
	"fmt"

	"github.com/amp-labs/binkeys/errors"
)

// BoundsError is returned when an inserted value is outside the binned range.
// It unwraps to errors.ErrOutOfBounds.
type BoundsError struct {
	Value float64
	Min   float64
	Max   float64
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s: %g not in [%g, %g]", errors.ErrOutOfBounds, e.Value, e.Min, e.Max)
}

func (e *BoundsError) Unwrap() error { return errors.ErrOutOfBounds }
