package core_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantatlas/chartengine/core"
)

// TestLinearScale_RejectsDegenerateRange verifies reversed, equal, and
// non-finite bounds all fail with ErrInvalidData.
func TestLinearScale_RejectsDegenerateRange(t *testing.T) {
	_, err := core.NewLinearScale(10, 10)
	assert.ErrorIs(t, err, core.ErrInvalidData, "equal bounds must error")

	_, err = core.NewLinearScale(10, 5)
	assert.ErrorIs(t, err, core.ErrInvalidData, "reversed bounds must error")

	nan := math.NaN()
	_, err = core.NewLinearScale(nan, 5)
	assert.ErrorIs(t, err, core.ErrInvalidData, "NaN bound must error")
}

// TestLinearScale_MapsFullWidth verifies the midpoint of (0, 10) lands at
// exactly half the viewport width.
func TestLinearScale_MapsFullWidth(t *testing.T) {
	s, err := core.NewLinearScale(0, 10)
	require.NoError(t, err)

	x, err := s.DomainToPixel(5, 1000)
	require.NoError(t, err)
	assert.InDelta(t, 500.0, x, 1e-12, "midpoint must map to half width")

	x, err = s.DomainToPixel(0, 1000)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, x, 1e-12, "start must map to pixel 0")

	x, err = s.DomainToPixel(10, 1000)
	require.NoError(t, err)
	assert.InDelta(t, 1000.0, x, 1e-12, "end must map to the full width")
}

// TestLinearScale_RoundTrip verifies pixel→domain→pixel stability within 1e-7.
func TestLinearScale_RoundTrip(t *testing.T) {
	s, err := core.NewLinearScale(-250, 775)
	require.NoError(t, err)

	for _, v := range []float64{-250, -1, 0, 3.25, 500.5, 775} {
		px, err := s.DomainToPixel(v, 1280)
		require.NoError(t, err)
		back, err := s.PixelToDomain(px, 1280)
		require.NoError(t, err)
		assert.InDelta(t, v, back, 1e-7, "round trip must return the input")
	}
}

// TestLinearScale_DegenerateViewport verifies width < 1 fails both directions.
func TestLinearScale_DegenerateViewport(t *testing.T) {
	s, err := core.NewLinearScale(0, 1)
	require.NoError(t, err)

	_, err = s.DomainToPixel(0.5, 0)
	assert.ErrorIs(t, err, core.ErrInvalidData)

	_, err = s.PixelToDomain(0.5, 0)
	assert.ErrorIs(t, err, core.ErrInvalidData)
}
