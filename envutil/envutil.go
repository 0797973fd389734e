// Package envutil reads typed configuration out of environment variables.
//
//	level := envutil.SlogLevel("LOG_LEVEL", envutil.Default(slog.LevelInfo)).ValueOrFatal()
package envutil

import (
	"log/slog"
	"os"

	"github.com/amp-labs/binkeys/xform"
)

func get(key string) Reader[string] {
	val, ok := os.LookupEnv(key)

	return Reader[string]{
		key:     key,
		present: ok,
		value:   val,
	}
}

// NewReader builds a Reader from values that didn't come from the environment.
func NewReader[T any](key string, present bool, err error, value T) Reader[T] {
	return Reader[T]{
		key:     key,
		present: present,
		value:   value,
		err:     err,
	}
}

func apply[T any](rdr Reader[T], opts []Option[T]) Reader[T] {
	for _, opt := range opts {
		rdr = opt(rdr)
	}

	return rdr
}

func String(key string, opts ...Option[string]) Reader[string] {
	return apply(get(key), opts)
}

func Bool(key string, opts ...Option[bool]) Reader[bool] {
	return apply(Map(Map(get(key), xform.TrimString), xform.Bool), opts)
}

func Int[I xform.Intish](key string, opts ...Option[I]) Reader[I] {
	return apply(Map(Map(Map(get(key), xform.TrimString), xform.Int64), xform.CastNumeric[int64, I]), opts)
}

// Float64 parses the variable as a finite float; NaN and Inf are rejected.
func Float64(key string, opts ...Option[float64]) Reader[float64] {
	return apply(Map(Map(Map(get(key), xform.TrimString), xform.Float64), xform.Finite), opts)
}

func SlogLevel(key string, opts ...Option[slog.Level]) Reader[slog.Level] {
	return apply(Map(Map(Map(get(key), xform.TrimString), xform.ToLower), xform.SlogLevel), opts)
}
