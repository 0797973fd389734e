package xform

import (
	"errors"
)

var (
	ErrInvalidChoice   = errors.New("invalid choice")
	ErrNonPositive     = errors.New("value must be positive")
	ErrNotFinite       = errors.New("value must be a finite number")
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// Intish covers the signed integer kinds envutil.Int can produce.
type Intish interface {
	int | int8 | int16 | int32 | int64
}

type Numeric interface {
	int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | float32 | float64 | int | uint
}
