package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantatlas/chartengine/core"
)

func mustTimeScale(t *testing.T, start, end float64) core.TimeScale {
	t.Helper()
	ts, err := core.NewTimeScale(start, end)
	require.NoError(t, err)
	return ts
}

// TestTimeScale_PanPreservesSpanAndInverts verifies the two pan laws:
// span preservation and invertibility.
func TestTimeScale_PanPreservesSpanAndInverts(t *testing.T) {
	ts := mustTimeScale(t, 0, 100)
	preSpan := ts.VisibleSpan()

	require.NoError(t, ts.PanVisibleBy(-10))
	assert.InDelta(t, preSpan, ts.VisibleSpan(), 1e-12, "pan must preserve the span")

	require.NoError(t, ts.PanVisibleBy(10))
	vs, ve := ts.VisibleRange()
	assert.InDelta(t, 0.0, vs, 1e-12)
	assert.InDelta(t, 100.0, ve, 1e-12)
}

// TestTimeScale_ZoomVisibleByFactorKeepsAnchorFraction verifies anchored
// zoom: factor 2 around t=25 on (0, 100) yields (12.5, 62.5).
func TestTimeScale_ZoomVisibleByFactorKeepsAnchorFraction(t *testing.T) {
	ts := mustTimeScale(t, 0, 100)

	require.NoError(t, ts.ZoomVisibleByFactor(2, 25, 1e-9))
	vs, ve := ts.VisibleRange()
	assert.InDelta(t, 12.5, vs, 1e-9)
	assert.InDelta(t, 62.5, ve, 1e-9)
}

// TestTimeScale_ZoomClampsToMinSpan verifies the span floor.
func TestTimeScale_ZoomClampsToMinSpan(t *testing.T) {
	ts := mustTimeScale(t, 0, 100)

	require.NoError(t, ts.ZoomVisibleByFactor(1e9, 50, 4))
	assert.InDelta(t, 4.0, ts.VisibleSpan(), 1e-9, "span must clamp to the minimum")
}

// TestTimeScale_ZoomRejectsBadFactor covers zero, negative and NaN factors.
func TestTimeScale_ZoomRejectsBadFactor(t *testing.T) {
	ts := mustTimeScale(t, 0, 100)

	assert.ErrorIs(t, ts.ZoomVisibleByFactor(0, 50, 1), core.ErrInvalidData)
	assert.ErrorIs(t, ts.ZoomVisibleByFactor(-1, 50, 1), core.ErrInvalidData)
}

// TestTimeScale_ClampVisibleToFullEdges walks the right-fix, left-fix and
// both-fixed paths.
func TestTimeScale_ClampVisibleToFullEdges(t *testing.T) {
	ts := mustTimeScale(t, 0, 100)
	require.NoError(t, ts.SetVisibleRange(30, 130))
	assert.True(t, ts.ClampVisibleToFullEdges(false, true), "right overshoot must clamp")
	vs, ve := ts.VisibleRange()
	assert.InDelta(t, 0.0, vs, 1e-12)
	assert.InDelta(t, 100.0, ve, 1e-12)

	require.NoError(t, ts.SetVisibleRange(-40, 60))
	assert.True(t, ts.ClampVisibleToFullEdges(true, false), "left overshoot must clamp")
	vs, ve = ts.VisibleRange()
	assert.InDelta(t, 0.0, vs, 1e-12)
	assert.InDelta(t, 100.0, ve, 1e-12)

	require.NoError(t, ts.SetVisibleRange(-500, 500))
	assert.True(t, ts.ClampVisibleToFullEdges(true, true), "over-wide zoom must collapse to full")
	vs, ve = ts.VisibleRange()
	assert.InDelta(t, 0.0, vs, 1e-12)
	assert.InDelta(t, 100.0, ve, 1e-12)

	require.NoError(t, ts.SetVisibleRange(10, 90))
	assert.False(t, ts.ClampVisibleToFullEdges(true, true), "inside range must not move")
}

// TestTimeScale_IncludeTimeInFullRange verifies growth and no-op reporting.
func TestTimeScale_IncludeTimeInFullRange(t *testing.T) {
	ts := mustTimeScale(t, 0, 100)

	changed, err := ts.IncludeTimeInFullRange(110)
	require.NoError(t, err)
	assert.True(t, changed)
	fs, fe := ts.FullRange()
	assert.InDelta(t, 0.0, fs, 1e-12)
	assert.InDelta(t, 110.0, fe, 1e-12)

	changed, err = ts.IncludeTimeInFullRange(50)
	require.NoError(t, err)
	assert.False(t, changed, "an interior time must not change the full range")
}

// TestTimeScale_BarSpacingDerivationRoundTrip verifies the derive/set pair
// are inverses of each other.
func TestTimeScale_BarSpacingDerivationRoundTrip(t *testing.T) {
	ts := mustTimeScale(t, 0, 1000)
	require.NoError(t, ts.SetVisibleRange(400, 1050))

	const step, width = 10.0, 1300.0
	spacing, rightOffset, err := ts.DeriveVisibleBarSpacingAndRightOffset(step, width)
	require.NoError(t, err)
	assert.InDelta(t, width*step/650.0, spacing, 1e-9)
	assert.InDelta(t, 5.0, rightOffset, 1e-9, "visible end 50 past full end at step 10 is 5 bars")

	require.NoError(t, ts.SetVisibleRangeFromBarSpacingAndRightOffset(spacing, rightOffset, step, width))
	vs, ve := ts.VisibleRange()
	assert.InDelta(t, 400.0, vs, 1e-9)
	assert.InDelta(t, 1050.0, ve, 1e-9)
}
