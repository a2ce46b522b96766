package core_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantatlas/chartengine/core"
)

// TestPaneCollection_DefaultHasOnlyMainPane verifies the auto-created main
// pane with ID 0 and stretch 1.
func TestPaneCollection_DefaultHasOnlyMainPane(t *testing.T) {
	c := core.NewPaneCollection()

	descs := c.Descriptors()
	require.Len(t, descs, 1)
	assert.Equal(t, core.MainPaneID, descs[0].ID)
	assert.True(t, descs[0].IsMain)
	assert.Equal(t, 1.0, descs[0].StretchFactor)
}

// TestPaneCollection_CreateValidatesStretch rejects zero, negative, and
// non-finite stretch factors.
func TestPaneCollection_CreateValidatesStretch(t *testing.T) {
	c := core.NewPaneCollection()

	_, err := c.Create(0)
	assert.ErrorIs(t, err, core.ErrInvalidData)
	_, err = c.Create(-1)
	assert.ErrorIs(t, err, core.ErrInvalidData)
	_, err = c.Create(math.Inf(1))
	assert.ErrorIs(t, err, core.ErrInvalidData)
}

// TestPaneCollection_RemoveMainFails verifies main-pane protection and
// unknown-id rejection.
func TestPaneCollection_RemoveMainFails(t *testing.T) {
	c := core.NewPaneCollection()

	assert.ErrorIs(t, c.Remove(core.MainPaneID), core.ErrInvalidData)
	assert.ErrorIs(t, c.Remove(42), core.ErrInvalidData)

	id, err := c.Create(0.5)
	require.NoError(t, err)
	assert.NoError(t, c.Remove(id))
	assert.False(t, c.Contains(id))
}

// TestPaneCollection_LayoutRegionsTileExactly verifies weight-proportional
// stacking with the last pane absorbing the remainder.
func TestPaneCollection_LayoutRegionsTileExactly(t *testing.T) {
	c := core.NewPaneCollection()
	_, err := c.Create(1) // main has stretch 1 too: 50/50 split
	require.NoError(t, err)

	regions := c.LayoutRegions(0, 470)
	require.Len(t, regions, 2)
	assert.InDelta(t, 0.0, regions[0].Top, 1e-12)
	assert.InDelta(t, 235.0, regions[0].Bottom, 1e-12)
	assert.InDelta(t, 235.0, regions[1].Top, 1e-12)
	assert.InDelta(t, 470.0, regions[1].Bottom, 1e-12, "last pane must end exactly at the bottom")
}

// TestPaneCollection_LayoutDegenerateHeight collapses all regions when
// bottom <= top.
func TestPaneCollection_LayoutDegenerateHeight(t *testing.T) {
	c := core.NewPaneCollection()

	regions := c.LayoutRegions(100, 100)
	require.Len(t, regions, 1)
	assert.Equal(t, regions[0].Top, regions[0].Bottom)
}
