package core_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantatlas/chartengine/core"
)

func mustViewport(t *testing.T, w, h int) core.Viewport {
	t.Helper()
	vp, err := core.NewViewport(w, h)
	require.NoError(t, err)
	return vp
}

// TestPriceScale_LinearRoundTrip covers the concrete scenario: viewport
// (1000, 600), domain [10, 110], 42.5 must survive a pixel round trip
// within 1e-9.
func TestPriceScale_LinearRoundTrip(t *testing.T) {
	s, err := core.NewPriceScale(10, 110)
	require.NoError(t, err)
	vp := mustViewport(t, 1000, 600)

	px, err := s.PriceToPixel(42.5, vp)
	require.NoError(t, err)
	back, err := s.PixelToPrice(px, vp)
	require.NoError(t, err)
	assert.InDelta(t, 42.5, back, 1e-9)
}

// TestPriceScale_HigherPriceIsHigherOnScreen verifies y decreases as price
// grows in the default orientation, and increases when inverted.
func TestPriceScale_HigherPriceIsHigherOnScreen(t *testing.T) {
	s, err := core.NewPriceScale(0, 100)
	require.NoError(t, err)
	vp := mustViewport(t, 100, 500)

	yLow, err := s.PriceToPixel(10, vp)
	require.NoError(t, err)
	yHigh, err := s.PriceToPixel(90, vp)
	require.NoError(t, err)
	assert.Less(t, yHigh, yLow, "higher price must sit at a smaller y")

	inv := s.WithInverted(true)
	yLowInv, err := inv.PriceToPixel(10, vp)
	require.NoError(t, err)
	yHighInv, err := inv.PriceToPixel(90, vp)
	require.NoError(t, err)
	assert.Greater(t, yHighInv, yLowInv, "inversion must flip the ordering")
}

// TestPriceScale_MarginsCompressInnerHeight verifies margins reserve pixel
// bands at both ends of the viewport.
func TestPriceScale_MarginsCompressInnerHeight(t *testing.T) {
	s, err := core.NewPriceScale(0, 100)
	require.NoError(t, err)
	s, err = s.WithMargins(0.2, 0.1)
	require.NoError(t, err)
	vp := mustViewport(t, 100, 1000)

	yTop, err := s.PriceToPixel(100, vp)
	require.NoError(t, err)
	yBottom, err := s.PriceToPixel(0, vp)
	require.NoError(t, err)
	assert.InDelta(t, 200.0, yTop, 1e-9, "domain max must sit below the top margin")
	assert.InDelta(t, 900.0, yBottom, 1e-9, "domain min must sit above the bottom margin")
}

// TestPriceScale_MarginValidation rejects negative ratios and sums >= 1.
func TestPriceScale_MarginValidation(t *testing.T) {
	s, err := core.NewPriceScale(0, 1)
	require.NoError(t, err)

	_, err = s.WithMargins(-0.1, 0)
	assert.ErrorIs(t, err, core.ErrInvalidData)

	_, err = s.WithMargins(0.5, 0.5)
	assert.ErrorIs(t, err, core.ErrInvalidData)
}

// TestPriceScale_LogRejectsNonPositiveDomain covers the Unsupported path.
func TestPriceScale_LogRejectsNonPositiveDomain(t *testing.T) {
	_, err := core.NewPriceScaleWithModeAndBase(0, 100, core.PriceScaleLog, nil)
	assert.ErrorIs(t, err, core.ErrUnsupported)

	_, err = core.NewPriceScaleWithModeAndBase(-5, 100, core.PriceScaleLog, nil)
	assert.ErrorIs(t, err, core.ErrUnsupported)
}

// TestPriceScale_LogRoundTrip verifies log-space mapping stays stable.
func TestPriceScale_LogRoundTrip(t *testing.T) {
	s, err := core.NewPriceScaleWithModeAndBase(1, 1000, core.PriceScaleLog, nil)
	require.NoError(t, err)
	vp := mustViewport(t, 100, 1024)

	for _, price := range []float64{1, 10, 31.6, 100, 999} {
		px, err := s.PriceToPixel(price, vp)
		require.NoError(t, err)
		back, err := s.PixelToPrice(px, vp)
		require.NoError(t, err)
		assert.InDelta(t, price, back, 1e-9*price+1e-9)
	}

	_, err = s.PriceToPixel(-1, vp)
	assert.ErrorIs(t, err, core.ErrInvalidData, "log mapping of a negative price must error")
}

// TestPriceScale_PercentageTransform verifies the base-relative transform:
// with base 100, price 110 is +10% and the geometric midpoint of a
// symmetric domain.
func TestPriceScale_PercentageTransform(t *testing.T) {
	base := 100.0
	s, err := core.NewPriceScaleWithModeAndBase(90, 130, core.PriceScalePercentage, &base)
	require.NoError(t, err)
	vp := mustViewport(t, 100, 400)

	y110, err := s.PriceToPixel(110, vp)
	require.NoError(t, err)
	// Domain transforms to [-10%, +30%]; 110 → +10% → halfway down from top.
	assert.InDelta(t, 200.0, y110, 1e-9)

	back, err := s.PixelToPrice(y110, vp)
	require.NoError(t, err)
	assert.InDelta(t, 110.0, back, 1e-9)
}

// TestPriceScale_IndexedTo100Transform verifies price/base×100 mapping.
func TestPriceScale_IndexedTo100Transform(t *testing.T) {
	base := 50.0
	s, err := core.NewPriceScaleWithModeAndBase(50, 150, core.PriceScaleIndexedTo100, &base)
	require.NoError(t, err)
	vp := mustViewport(t, 100, 200)

	// Domain transforms to [100, 300]; 100 (=200 indexed) is the midpoint.
	y, err := s.PriceToPixel(100, vp)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, y, 1e-9)
}

// TestPriceScale_BaseValidation verifies zero and non-finite explicit bases
// are rejected by WithBaseValue.
func TestPriceScale_BaseValidation(t *testing.T) {
	s, err := core.NewPriceScale(0, 1)
	require.NoError(t, err)

	zero := 0.0
	_, err = s.WithBaseValue(&zero)
	assert.ErrorIs(t, err, core.ErrInvalidData)

	inf := math.Inf(1)
	_, err = s.WithBaseValue(&inf)
	assert.ErrorIs(t, err, core.ErrInvalidData)
}
