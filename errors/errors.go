// Package errors is the single home of the sentinel errors shared across binkeys
// packages, so errors.Is checks work no matter which package produced the error.
package errors

import "errors"

var (
	// ErrOutOfBounds is returned when an item's value lies outside the binned range.
	ErrOutOfBounds = errors.New("item value out of bounds")

	// ErrInvalidBinIndex is returned when a strategy maps a value to a bin
	// index the container doesn't have.
	ErrInvalidBinIndex = errors.New("bin index out of range")

	// ErrInvalidConfig is returned when bins can't be built from the given parameters.
	ErrInvalidConfig = errors.New("invalid binning configuration")

	// ErrValidation wraps any failure reported by validate.Validate.
	ErrValidation = errors.New("validation failed")
)

// Collection accumulates errors from a batch of operations and reports them as one.
// It is not safe for concurrent use.
type Collection struct {
	errors []error
}

// Add appends err to the collection. Nil errors are ignored.
func (c *Collection) Add(err error) {
	if err != nil {
		c.errors = append(c.errors, err)
	}
}

// Clear empties the collection.
func (c *Collection) Clear() {
	c.errors = nil
}

// HasError reports whether at least one error was added.
func (c *Collection) HasError() bool {
	return len(c.errors) > 0
}

// Len returns the number of collected errors.
func (c *Collection) Len() int {
	return len(c.errors)
}

// GetError returns nil when empty, the lone error when there is exactly one,
// and an errors.Join of everything otherwise.
func (c *Collection) GetError() error {
	switch len(c.errors) {
	case 0:
		return nil
	case 1:
		return c.errors[0]
	default:
		return errors.Join(c.errors...)
	}
}
