package binning

import (
	"fmt"
	"maps"
)

// Data is arbitrary information attached to an inserted key.
type Data map[string]any

// Item is a key filed under a value, plus whatever data came with it.
type Item[K any] struct {
	key   K
	value float64
	data  Data
}

// NewItem builds an Item holding its own copy of data. A nil map becomes a
// fresh empty one, so items never share a default map.
func NewItem[K any](key K, value float64, data Data) Item[K] {
	if data == nil {
		data = make(Data)
	} else {
		data = maps.Clone(data)
	}

	return Item[K]{
		key:   key,
		value: value,
		data:  data,
	}
}

func (i Item[K]) Key() K { //nolint:ireturn
	return i.key
}

func (i Item[K]) Value() float64 {
	return i.value
}

// Data returns a copy of the attached data.
func (i Item[K]) Data() Data {
	return maps.Clone(i.data)
}

// Bounds is the interval a bin covers: [Min, Max), except for the last bin of
// a range, which also includes Max.
type Bounds struct {
	Min float64
	Max float64
}

func (b Bounds) Width() float64 {
	return b.Max - b.Min
}

// Contains reports whether value lies in the half-open interval [Min, Max).
func (b Bounds) Contains(value float64) bool {
	return value >= b.Min && value < b.Max
}

func (b Bounds) String() string {
	return fmt.Sprintf("[%g, %g)", b.Min, b.Max)
}
