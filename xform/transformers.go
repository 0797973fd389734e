// Package xform holds small string-to-value transformers. Each has the shape
// func(A) (B, error) so they chain through envutil.Map.
package xform

import (
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"
)

// TrimString removes leading and trailing whitespace.
func TrimString(s string) (string, error) {
	return strings.TrimSpace(s), nil
}

func ToLower(s string) (string, error) {
	return strings.ToLower(s), nil
}

// OneOf returns a transformer that rejects anything but the given choices.
func OneOf[A comparable](choices ...A) func(A) (A, error) { //nolint:ireturn
	return func(value A) (A, error) {
		if slices.Contains(choices, value) {
			return value, nil
		}

		return value, fmt.Errorf("%w: %v", ErrInvalidChoice, value)
	}
}

// Bool parses anything strconv.ParseBool accepts.
func Bool(value string) (bool, error) {
	return strconv.ParseBool(value)
}

func Int64(value string) (int64, error) {
	return strconv.ParseInt(value, 10, 64)
}

func Float64(value string) (float64, error) {
	return strconv.ParseFloat(value, 64)
}

// Finite rejects NaN and the infinities, which strconv.ParseFloat happily returns.
func Finite(value float64) (float64, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value, fmt.Errorf("%w: %v", ErrNotFinite, value)
	}

	return value, nil
}

// Positive validates that a numeric value is greater than zero.
func Positive[A Numeric](value A) (A, error) { //nolint:ireturn
	if value <= 0 {
		return value, ErrNonPositive
	}

	return value, nil
}

// CastNumeric converts between numeric types. It may truncate.
func CastNumeric[A Numeric, B Numeric](value A) (B, error) { //nolint:ireturn
	return B(value), nil
}

// SlogLevel parses "debug", "info", "warn" or "error".
func SlogLevel(value string) (slog.Level, error) {
	switch value {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, value)
	}
}
