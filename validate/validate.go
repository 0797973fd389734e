// Package validate dispatches validation to values that know how to check
// themselves.
package validate

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/amp-labs/binkeys/errors"
	"github.com/amp-labs/binkeys/logger"
)

type HasValidate interface {
	Validate() error
}

type HasValidateWithContext interface {
	Validate(ctx context.Context) error
}

// Validate calls the Validate method of value, if it has one. Nil values and
// types without a Validate method pass (the latter with a warning). Failures
// are wrapped with errors.ErrValidation unless disabled via WithWrappedError.
func Validate(ctx context.Context, value any) error {
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	canValidate, err := validateInternal(ctx, value)
	hasError := strconv.FormatBool(err != nil)

	validationsTotal.WithLabelValues(strconv.FormatBool(canValidate), hasError).Inc()
	validationTime.WithLabelValues(fmt.Sprintf("%T", value), hasError).
		Observe(float64(time.Since(start).Microseconds()))

	if err == nil {
		return nil
	}

	if !wantWrappedErrors(ctx) {
		return err
	}

	return fmt.Errorf("%w: %w", errors.ErrValidation, err)
}

func validateInternal(ctx context.Context, value any) (bool, error) {
	if isNilish(value) {
		return false, nil
	}

	switch v := value.(type) {
	case HasValidate:
		return true, v.Validate()
	case HasValidateWithContext:
		return true, v.Validate(ctx)
	default:
		logger.Get(ctx).Warn("Validate called on unsupported type",
			"type", fmt.Sprintf("%T", v))

		return false, nil
	}
}

func isNilish(val any) bool {
	if val == nil {
		return true
	}

	valOf := reflect.ValueOf(val)

	switch valOf.Kind() { //nolint:exhaustive
	case reflect.Chan, reflect.Func, reflect.Map, reflect.Pointer,
		reflect.UnsafePointer, reflect.Interface, reflect.Slice:
		return valOf.IsNil()
	}

	return false
}
