package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantatlas/chartengine/core"
)

// TestExpandVisibleWindow_RatioContract: negative ratios fail, ratio 0 is
// the identity, positive ratios pad both sides symmetrically.
func TestExpandVisibleWindow_RatioContract(t *testing.T) {
	_, _, err := core.ExpandVisibleWindow(0, 100, -0.1)
	assert.ErrorIs(t, err, core.ErrInvalidData)

	s, e, err := core.ExpandVisibleWindow(0, 100, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, s)
	assert.Equal(t, 100.0, e)

	s, e, err = core.ExpandVisibleWindow(0, 100, 0.25)
	require.NoError(t, err)
	assert.InDelta(t, -25.0, s, 1e-12)
	assert.InDelta(t, 125.0, e, 1e-12)
}

// TestVisiblePoints_InclusiveBounds verifies both endpoints are included.
func TestVisiblePoints_InclusiveBounds(t *testing.T) {
	points := []core.DataPoint{
		{Time: 0, Value: 1}, {Time: 5, Value: 2}, {Time: 10, Value: 3}, {Time: 15, Value: 4},
	}

	out := core.VisiblePoints(points, 5, 10)
	require.Len(t, out, 2)
	assert.Equal(t, 5.0, out[0].Time)
	assert.Equal(t, 10.0, out[1].Time)
}

// TestVisibleCandles_FiltersByTime mirrors the point filter for bars.
func TestVisibleCandles_FiltersByTime(t *testing.T) {
	bars := []core.OhlcBar{
		{Time: 1, Open: 1, High: 2, Low: 0.5, Close: 1.5},
		{Time: 9, Open: 1, High: 2, Low: 0.5, Close: 1.5},
	}

	out := core.VisibleCandles(bars, 0, 5)
	require.Len(t, out, 1)
	assert.Equal(t, 1.0, out[0].Time)
}
