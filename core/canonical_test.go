package core_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quantatlas/chartengine/core"
)

// TestCanonicalizePoints_SortDedupDropNonFinite covers the full contract in
// one pass: non-finite samples dropped, remaining sorted ascending,
// duplicate times collapsed to the last occurrence.
func TestCanonicalizePoints_SortDedupDropNonFinite(t *testing.T) {
	in := []core.DataPoint{
		{Time: 5, Value: 50},
		{Time: math.NaN(), Value: 1},
		{Time: 1, Value: 10},
		{Time: 5, Value: 55}, // later duplicate wins
		{Time: 3, Value: math.Inf(1)},
		{Time: 2, Value: 20},
	}

	out := core.CanonicalizePoints(in)
	assert.Equal(t, []core.DataPoint{
		{Time: 1, Value: 10},
		{Time: 2, Value: 20},
		{Time: 5, Value: 55},
	}, out)
}

// TestCanonicalizePoints_EmptyAndDoesNotAlias verifies empty input yields an
// empty slice and the output never aliases the input backing array.
func TestCanonicalizePoints_EmptyAndDoesNotAlias(t *testing.T) {
	assert.Empty(t, core.CanonicalizePoints(nil))

	in := []core.DataPoint{{Time: 2, Value: 1}, {Time: 1, Value: 2}}
	out := core.CanonicalizePoints(in)
	out[0].Value = 99
	assert.Equal(t, 2.0, in[1].Value, "mutating the output must not touch the input")
}

// TestCanonicalizeCandles_DropsInvalidOhlc verifies bars violating
// low <= body <= high are dropped alongside non-finite ones.
func TestCanonicalizeCandles_DropsInvalidOhlc(t *testing.T) {
	in := []core.OhlcBar{
		{Time: 1, Open: 10, High: 20, Low: 5, Close: 15},
		{Time: 2, Open: 10, High: 8, Low: 5, Close: 7},      // high below open
		{Time: 3, Open: 10, High: 20, Low: 12, Close: 15},   // low above open
		{Time: 4, Open: 10, High: 20, Low: 5, Close: math.NaN()},
		{Time: 0, Open: 1, High: 2, Low: 0.5, Close: 1.5},
	}

	out := core.CanonicalizeCandles(in)
	assert.Len(t, out, 2)
	assert.Equal(t, 0.0, out[0].Time)
	assert.Equal(t, 1.0, out[1].Time)
}

// TestCanonicalizeCandles_LastDuplicateWins mirrors the point contract for
// OHLC series.
func TestCanonicalizeCandles_LastDuplicateWins(t *testing.T) {
	in := []core.OhlcBar{
		{Time: 1, Open: 1, High: 2, Low: 0.5, Close: 1.5},
		{Time: 1, Open: 3, High: 4, Low: 2.5, Close: 3.5},
	}

	out := core.CanonicalizeCandles(in)
	assert.Len(t, out, 1)
	assert.Equal(t, 3.0, out[0].Open)
}
