package axis_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantatlas/chartengine/axis"
)

// TestTickCount_ClampsToBounds checks the target-spacing heuristic and its
// [min, max] clamp.
func TestTickCount_ClampsToBounds(t *testing.T) {
	// 720px at 72px target spacing wants 11 ticks.
	assert.Equal(t, 11, axis.TickCount(720, axis.TimeTargetSpacingPx, 2, 20))
	// A tiny viewport clamps up to min.
	assert.Equal(t, 2, axis.TickCount(10, axis.TimeTargetSpacingPx, 2, 20))
	// A huge viewport clamps down to max.
	assert.Equal(t, 20, axis.TickCount(1e6, axis.TimeTargetSpacingPx, 2, 20))
}

// TestTickCount_NonFiniteSpan falls back to the minimum.
func TestTickCount_NonFiniteSpan(t *testing.T) {
	assert.Equal(t, 3, axis.TickCount(math.NaN(), axis.PriceTargetSpacingPx, 3, 9))
	assert.Equal(t, 3, axis.TickCount(math.Inf(1), axis.PriceTargetSpacingPx, 3, 9))
}

// TestEvenTicks_EndpointsIncluded verifies the first and last ticks sit on
// the range edges.
func TestEvenTicks_EndpointsIncluded(t *testing.T) {
	ticks := axis.EvenTicks(0, 100, 5)
	require.Len(t, ticks, 5)
	assert.InDelta(t, 0.0, ticks[0], 1e-12)
	assert.InDelta(t, 25.0, ticks[1], 1e-12)
	assert.InDelta(t, 100.0, ticks[4], 1e-12)
}

// TestFilterTicksByMinSpacing_LastSurvives: when the trailing candidate
// crowds the last admitted tick, it replaces it instead of vanishing.
func TestFilterTicksByMinSpacing_LastSurvives(t *testing.T) {
	ticks := []axis.Tick{
		{Value: 0, Px: 0},
		{Value: 1, Px: 60},
		{Value: 2, Px: 120},
		{Value: 3, Px: 150},
	}
	kept := axis.FilterTicksByMinSpacing(ticks, 56)
	require.Len(t, kept, 3)
	assert.Equal(t, 0.0, kept[0].Value)
	assert.Equal(t, 1.0, kept[1].Value)
	// 150 crowds 120, so the final candidate takes its slot.
	assert.Equal(t, 3.0, kept[2].Value)
}

// TestFilterTicksByMinSpacing_NoCrowding keeps everything untouched.
func TestFilterTicksByMinSpacing_NoCrowding(t *testing.T) {
	ticks := []axis.Tick{{Px: 0}, {Px: 100}, {Px: 200}}
	kept := axis.FilterTicksByMinSpacing(ticks, 56)
	assert.Equal(t, ticks, kept)
}

// TestNarrowViewport_LabelBudget pins the crowd-control guarantee: a
// 180x120 viewport shows at most 4 time labels and 5 price labels.
func TestNarrowViewport_LabelBudget(t *testing.T) {
	timeCount := axis.TickCount(180, axis.TimeTargetSpacingPx, 2, 20)
	timeTicks := make([]axis.Tick, 0, timeCount)
	for i, v := range axis.EvenTicks(0, 180, timeCount) {
		timeTicks = append(timeTicks, axis.Tick{Value: float64(i), Px: v})
	}
	kept := axis.FilterTicksByMinSpacing(timeTicks, axis.TimeMinSpacingPx)
	assert.LessOrEqual(t, len(kept), 4)

	priceCount := axis.TickCount(120, axis.PriceTargetSpacingPx, 2, 20)
	priceTicks := make([]axis.Tick, 0, priceCount)
	for i, v := range axis.EvenTicks(0, 120, priceCount) {
		priceTicks = append(priceTicks, axis.Tick{Value: float64(i), Px: v})
	}
	keptPrice := axis.FilterTicksByMinSpacing(priceTicks, axis.PriceMinSpacingPx)
	assert.LessOrEqual(t, len(keptPrice), 5)
}

// TestTickStepHint picks the smallest positive adjacent delta.
func TestTickStepHint(t *testing.T) {
	step := axis.TickStepHint([]float64{0, 0.5, 1.5, 1.5, 2.0})
	assert.InDelta(t, 0.5, step, 1e-12)
	assert.Equal(t, 0.0, axis.TickStepHint([]float64{3}))
}
