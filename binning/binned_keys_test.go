package binning

import (
	"fmt"
	"iter"
	"math"
	"slices"
	"testing"

	commonErrors "github.com/amp-labs/binkeys/errors"
	"github.com/neilotoole/slogt"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// edgesStrategy bins by explicit, possibly uneven, edges.
type edgesStrategy struct {
	edges []float64
}

func (e edgesStrategy) MinValue() float64 { return e.edges[0] }
func (e edgesStrategy) MaxValue() float64 { return e.edges[len(e.edges)-1] }
func (e edgesStrategy) NumBins() int { return len(e.edges) - 1 }

func (e edgesStrategy) BinIndex(value float64) int {
	for i := 1; i < len(e.edges)-1; i++ {
		if value < e.edges[i] {
			return i - 1
		}
	}

	return e.NumBins() - 1
}

func (e edgesStrategy) Bounds(i int) Bounds {
	return Bounds{Min: e.edges[i], Max: e.edges[i+1]}
}

// offByOneStrategy claims one bin more than it reports.
type offByOneStrategy struct {
	edgesStrategy
}

func (o offByOneStrategy) BinIndex(float64) int { return o.NumBins() }

func newTestKeys(t *testing.T) *BinnedKeys[string] {
	t.Helper()

	keys, err := NewEqualWidthKeys[string](0, 10, WithNumBins(5), WithLogger(slogt.New(t)))
	require.NoError(t, err)

	return keys
}

func collectKeys[K any](b Container[K]) [][]K {
	var out [][]K

	for keys := range b.Keys() {
		out = append(out, slices.Collect(keys))
	}

	return out
}

func TestNew_Invalid(t *testing.T) {
	t.Parallel()

	_, err := New[string](nil)
	require.ErrorIs(t, err, commonErrors.ErrInvalidConfig)

	_, err = New[string](edgesStrategy{edges: []float64{1}})
	require.ErrorIs(t, err, commonErrors.ErrInvalidConfig)

	_, err = NewEqualWidthKeys[string](0, 10)
	require.ErrorIs(t, err, commonErrors.ErrInvalidConfig)
}

func TestBinnedKeys_StartsEmpty(t *testing.T) {
	t.Parallel()

	keys := newTestKeys(t)

	assert.Equal(t, 5, keys.NumBins())
	assert.Zero(t, keys.Len())
	assert.InDelta(t, 0.0, keys.MinValue(), 0)
	assert.InDelta(t, 10.0, keys.MaxValue(), 0)
	assert.IsType(t, &EqualWidth{}, keys.Strategy())

	bins := collectKeys[string](keys)
	require.Len(t, bins, 5)

	for _, bin := range bins {
		assert.Empty(t, bin)
	}
}

func TestBinnedKeys_Scenario(t *testing.T) {
	t.Parallel()

	keys := newTestKeys(t)

	require.NoError(t, keys.Insert("a", 1.5))
	require.NoError(t, keys.Insert("b", 10.0))

	err := keys.Insert("c", 10.1)
	require.ErrorIs(t, err, commonErrors.ErrOutOfBounds)

	var boundsErr *BoundsError
	require.ErrorAs(t, err, &boundsErr)
	assert.InDelta(t, 10.1, boundsErr.Value, 0)
	assert.InDelta(t, 0.0, boundsErr.Min, 0)
	assert.InDelta(t, 10.0, boundsErr.Max, 0)
	assert.Contains(t, err.Error(), "10.1")

	assert.Equal(t, [][]string{{"a"}, nil, nil, nil, {"b"}}, collectKeys[string](keys))
	assert.Equal(t, 1, keys.BinLen(0))
	assert.Equal(t, 1, keys.BinLen(4))
	assert.Zero(t, keys.BinLen(5))
	assert.Zero(t, keys.BinLen(-1))
	assert.Equal(t, 2, keys.Len())

	bounds := slices.Collect(keys.Bounds())
	assert.Equal(t, Bounds{Min: 0, Max: 2}, bounds[0])
	assert.Equal(t, Bounds{Min: 8, Max: 10}, bounds[4])
}

func TestBinnedKeys_RejectLeavesBinsUnchanged(t *testing.T) {
	t.Parallel()

	keys := newTestKeys(t)

	for i, v := range []float64{0, 3, 3.5, 9} {
		require.NoError(t, keys.Insert(fmt.Sprintf("k%d", i), v))
	}

	before := collectKeys[string](keys)

	for _, v := range []float64{-0.0001, 10.0001, math.Inf(1), math.Inf(-1), math.NaN()} {
		err := keys.Insert("bad", v)
		require.ErrorIs(t, err, commonErrors.ErrOutOfBounds, "value %v", v)
	}

	assert.Equal(t, before, collectKeys[string](keys))
	assert.Equal(t, 4, keys.Len())
}

func TestBinnedKeys_InvalidStrategyIndex(t *testing.T) {
	t.Parallel()

	keys, err := New[string](offByOneStrategy{edgesStrategy{edges: []float64{0, 1, 2}}}, WithLogger(slogt.New(t)))
	require.NoError(t, err)

	err = keys.Insert("a", 0.5)
	require.ErrorIs(t, err, commonErrors.ErrInvalidBinIndex)
	assert.Zero(t, keys.Len())
	assert.Equal(t, [][]string{nil, nil}, collectKeys[string](keys))
}

func TestBinnedKeys_CustomStrategy(t *testing.T) {
	t.Parallel()

	keys, err := New[int](edgesStrategy{edges: []float64{0, 1, 5, 100}}, WithLogger(slogt.New(t)))
	require.NoError(t, err)

	for i, v := range []float64{0, 0.99, 1, 4.5, 5, 100, 42} {
		require.NoError(t, keys.Insert(i, v))
	}

	assert.Equal(t, [][]int{{0, 1}, {2, 3}, {4, 5, 6}}, collectKeys[int](keys))
	assert.Equal(t, []Bounds{{0, 1}, {1, 5}, {5, 100}}, slices.Collect(keys.Bounds()))
}

func TestBinnedKeys_DistinctKeysLandOnce(t *testing.T) {
	t.Parallel()

	keys, err := NewEqualWidthKeys[int](-50, 50, WithMaxBinSize(7), WithLogger(slogt.New(t)))
	require.NoError(t, err)

	const n = 500

	for i := range n {
		value := -50 + 100*float64(i)/float64(n-1)
		require.NoError(t, keys.Insert(i, value))
	}

	seen := map[int]int{}
	total := 0

	for bin := range keys.Keys() {
		for key := range bin {
			seen[key]++
			total++
		}
	}

	assert.Equal(t, n, total)
	assert.Len(t, seen, n)

	for key, count := range seen {
		assert.Equal(t, 1, count, "key %d", key)
	}
}

func TestBinnedKeys_ItemsRespectBounds(t *testing.T) {
	t.Parallel()

	keys, err := NewEqualWidthKeys[int](-3.5, 7.25, WithNumBins(7), WithLogger(slogt.New(t)))
	require.NoError(t, err)

	for i := range 300 {
		require.NoError(t, keys.Insert(i, -3.5+10.75*float64(i)/299))
	}

	for items, bounds := range keys.BinsWithBounds() {
		for _, item := range items {
			assert.GreaterOrEqual(t, item.Value(), bounds.Min-tolerance)
			assert.LessOrEqual(t, item.Value(), bounds.Max+tolerance)
		}
	}
}

func TestBinnedKeys_PairsAlignWithBounds(t *testing.T) {
	t.Parallel()

	keys := newTestKeys(t)
	require.NoError(t, keys.Insert("a", 1))
	require.NoError(t, keys.Insert("b", 5))

	allBounds := slices.Collect(keys.Bounds())

	var binBounds, keyBounds []Bounds

	var binItems [][]Item[string]

	for items, bounds := range keys.BinsWithBounds() {
		binItems = append(binItems, items)
		binBounds = append(binBounds, bounds)
	}

	var pairedKeys [][]string

	for ks, bounds := range keys.KeysWithBounds() {
		pairedKeys = append(pairedKeys, slices.Collect(ks))
		keyBounds = append(keyBounds, bounds)
	}

	assert.Len(t, binItems, 5)
	assert.Equal(t, allBounds, binBounds)
	assert.Equal(t, allBounds, keyBounds)
	assert.Equal(t, collectKeys[string](keys), pairedKeys)
	assert.Equal(t, "b", binItems[2][0].Key())
}

func TestBinnedKeys_BoundsIdempotent(t *testing.T) {
	t.Parallel()

	keys := newTestKeys(t)

	assert.Equal(t, slices.Collect(keys.Bounds()), slices.Collect(keys.Bounds()))
}

func TestBinnedKeys_IterationIsLive(t *testing.T) {
	t.Parallel()

	keys := newTestKeys(t)
	seq := keys.Keys()

	require.NoError(t, keys.Insert("late", 3))

	assert.Equal(t, [][]string{nil, {"late"}, nil, nil, nil}, collectSeq(seq))

	require.NoError(t, keys.Insert("later", 3.5))
	assert.Equal(t, [][]string{nil, {"late", "later"}, nil, nil, nil}, collectSeq(seq))
}

func collectSeq[K any](seq iter.Seq[iter.Seq[K]]) [][]K {
	var out [][]K

	for inner := range seq {
		out = append(out, slices.Collect(inner))
	}

	return out
}

func TestBinnedKeys_InsertionOrderPreserved(t *testing.T) {
	t.Parallel()

	keys := newTestKeys(t)

	for _, k := range []string{"z", "y", "x", "w"} {
		require.NoError(t, keys.Insert(k, 6.5))
	}

	assert.Equal(t, []string{"z", "y", "x", "w"}, collectKeys[string](keys)[3])
}

func TestBinnedKeys_EarlyBreak(t *testing.T) {
	t.Parallel()

	keys := newTestKeys(t)
	for i, v := range []float64{0.1, 0.2, 0.3, 9} {
		require.NoError(t, keys.Insert(fmt.Sprint(i), v))
	}

	count := 0

	for bin := range keys.Keys() {
		for range bin {
			count++

			break
		}

		break
	}

	assert.Equal(t, 1, count)

	bins := 0

	for range keys.BinsWithBounds() {
		bins++
		if bins == 2 {
			break
		}
	}

	assert.Equal(t, 2, bins)

	for range keys.KeysWithBounds() {
		break
	}

	for range keys.Bounds() {
		break
	}
}

func TestBinnedKeys_BinsAreCopies(t *testing.T) {
	t.Parallel()

	keys := newTestKeys(t)
	require.NoError(t, keys.Insert("a", 1))

	for items := range keys.BinsWithBounds() {
		if len(items) > 0 {
			items[0] = NewItem("mutated", 1, nil)
		}
	}

	assert.Equal(t, []string{"a"}, collectKeys[string](keys)[0])
}

func TestBinnedKeys_DataIsNeverShared(t *testing.T) {
	t.Parallel()

	keys := newTestKeys(t)
	require.NoError(t, keys.Insert("a", 1))
	require.NoError(t, keys.Insert("b", 1))

	data := Data{"color": "red"}
	require.NoError(t, keys.InsertWithData("c", 1, data))
	data["color"] = "blue"

	var items []Item[string]

	for bin := range keys.BinsWithBounds() {
		items = append(items, bin...)
	}

	require.Len(t, items, 3)

	first := items[0].Data()
	require.NotNil(t, first)
	assert.Empty(t, first)

	first["leak"] = true

	assert.Empty(t, items[0].Data())
	assert.Empty(t, items[1].Data())
	assert.Equal(t, Data{"color": "red"}, items[2].Data())
}

func TestBinnedKeys_InsertAll(t *testing.T) {
	t.Parallel()

	keys := newTestKeys(t)

	err := keys.InsertAll(slices.Values([]Item[string]{
		NewItem("a", 1, nil),
		NewItem("bad-low", -1, nil),
		NewItem("b", 9, Data{"n": 1}),
		NewItem("bad-high", 11, nil),
	}))

	require.ErrorIs(t, err, commonErrors.ErrOutOfBounds)
	assert.Contains(t, err.Error(), "-1")
	assert.Contains(t, err.Error(), "11")
	assert.Equal(t, 2, keys.Len())
	assert.Equal(t, [][]string{{"a"}, nil, nil, nil, {"b"}}, collectKeys[string](keys))

	require.NoError(t, keys.InsertAll(slices.Values([]Item[string]{NewItem("c", 2, nil)})))
	assert.Equal(t, 3, keys.Len())
}

func TestBinnedKeys_Metrics(t *testing.T) {
	t.Parallel()

	rejected := insertsTotal.WithLabelValues(resultOutOfBounds)
	accepted := insertsTotal.WithLabelValues(resultOK)
	created := containersCreated.WithLabelValues("equal_width")

	beforeRejected := testutil.ToFloat64(rejected)
	beforeAccepted := testutil.ToFloat64(accepted)
	beforeCreated := testutil.ToFloat64(created)

	keys := newTestKeys(t)
	require.NoError(t, keys.Insert("a", 1))
	require.Error(t, keys.Insert("b", 100))

	assert.GreaterOrEqual(t, testutil.ToFloat64(rejected)-beforeRejected, 1.0)
	assert.GreaterOrEqual(t, testutil.ToFloat64(accepted)-beforeAccepted, 1.0)
	assert.GreaterOrEqual(t, testutil.ToFloat64(created)-beforeCreated, 1.0)
}
