package render_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantatlas/chartengine/core"
	"github.com/quantatlas/chartengine/render"
)

func testPanes() []core.PaneDescriptor {
	return []core.PaneDescriptor{
		{ID: core.MainPaneID, IsMain: true, StretchFactor: 1},
		{ID: 1, StretchFactor: 0.5},
	}
}

// TestColor_Validation covers channel range checks and clamping helpers.
func TestColor_Validation(t *testing.T) {
	_, err := render.NewColor(0, 0.5, 1, 1)
	assert.NoError(t, err)

	_, err = render.NewColor(1.5, 0, 0, 1)
	assert.ErrorIs(t, err, core.ErrInvalidData)

	_, err = render.NewColor(0, math.NaN(), 0, 1)
	assert.ErrorIs(t, err, core.ErrInvalidData)

	c := render.RGB(2, -1, 0.25)
	assert.Equal(t, 1.0, c.R)
	assert.Equal(t, 0.0, c.G)
	assert.Equal(t, 1.0, c.A)
}

// TestRect_CornerRadiusBound verifies radii above half the smaller side fail.
func TestRect_CornerRadiusBound(t *testing.T) {
	r := render.Rect{Width: 10, Height: 4, Fill: render.RGB(0, 0, 0), BorderColor: render.RGB(0, 0, 0), CornerRadius: 2}
	assert.NoError(t, r.Validate())

	r.CornerRadius = 2.5
	assert.ErrorIs(t, r.Validate(), core.ErrInvalidData)
}

// TestFrame_ValidateRejectsNonFinite checks the finiteness sweep.
func TestFrame_ValidateRejectsNonFinite(t *testing.T) {
	vp, err := core.NewViewport(100, 100)
	require.NoError(t, err)
	f := render.NewFrame(vp)
	f.PushLine(render.Line{X1: 0, Y1: 0, X2: math.Inf(1), Y2: 1, StrokeWidth: 1, Color: render.RGB(0, 0, 0)})

	assert.ErrorIs(t, f.Validate(), core.ErrInvalidData)
}

// TestLayeredFrame_CanonicalStackAlwaysPresent verifies all six layers
// exist per pane in draw order.
func TestLayeredFrame_CanonicalStackAlwaysPresent(t *testing.T) {
	vp, err := core.NewViewport(100, 100)
	require.NoError(t, err)
	lf := render.NewLayeredFrame(vp, testPanes())

	require.Len(t, lf.Panes, 2)
	for _, pane := range lf.Panes {
		for i, layer := range pane.Layers {
			assert.Equal(t, render.LayerKind(i), layer.Kind)
		}
	}
}

// TestLayeredFrame_FlattenPreservesCountsAndOrder codifies the flatten law.
func TestLayeredFrame_FlattenPreservesCountsAndOrder(t *testing.T) {
	vp, err := core.NewViewport(100, 100)
	require.NoError(t, err)
	lf := render.NewLayeredFrame(vp, testPanes())

	white := render.RGB(1, 1, 1)
	lf.PushLine(core.MainPaneID, render.LayerGrid, render.Line{X2: 1, StrokeWidth: 1, Color: white})
	lf.PushLine(1, render.LayerSeries, render.Line{X2: 2, StrokeWidth: 1, Color: white})
	lf.PushRect(core.MainPaneID, render.LayerSeries, render.Rect{Width: 5, Height: 5, Fill: white, BorderColor: white})
	lf.PushText(1, render.LayerAxis, render.Text{Content: "t", FontSizePx: 10, Color: white})

	flat := lf.Flatten()
	assert.Equal(t, 2, len(flat.Lines))
	assert.Equal(t, 1, len(flat.Rects))
	assert.Equal(t, 1, len(flat.Texts))
	// Pane 0 grid line precedes pane 1 series line.
	assert.Equal(t, 1.0, flat.Lines[0].X2)
	assert.Equal(t, 2.0, flat.Lines[1].X2)
}

// TestLayeredFrame_FlattenPaneUnknownIsNil verifies absence without error.
func TestLayeredFrame_FlattenPaneUnknownIsNil(t *testing.T) {
	vp, err := core.NewViewport(100, 100)
	require.NoError(t, err)
	lf := render.NewLayeredFrame(vp, testPanes())

	assert.Nil(t, lf.FlattenPane(99))
	assert.NotNil(t, lf.FlattenPane(1))
}

// TestLayeredFrame_RemapPlotLayers verifies the linear stretch and the
// Background/Axis exemption.
func TestLayeredFrame_RemapPlotLayers(t *testing.T) {
	vp, err := core.NewViewport(100, 400)
	require.NoError(t, err)
	lf := render.NewLayeredFrame(vp, testPanes())
	white := render.RGB(1, 1, 1)

	lf.PushLine(1, render.LayerSeries, render.Line{Y1: 0, Y2: 400, StrokeWidth: 1, Color: white})
	lf.PushLine(1, render.LayerAxis, render.Line{Y1: 0, Y2: 400, StrokeWidth: 1, Color: white})
	lf.PushRect(1, render.LayerSeries, render.Rect{Y: 100, Height: 200, Fill: white, BorderColor: white})

	lf.RemapPlotLayers(1, 0, 400, 300, 400)

	series := lf.Panes[1].Layers[render.LayerSeries]
	assert.InDelta(t, 300.0, series.Lines[0].Y1, 1e-9)
	assert.InDelta(t, 400.0, series.Lines[0].Y2, 1e-9)
	assert.InDelta(t, 325.0, series.Rects[0].Y, 1e-9)
	assert.InDelta(t, 50.0, series.Rects[0].Height, 1e-9)

	axis := lf.Panes[1].Layers[render.LayerAxis]
	assert.Equal(t, 0.0, axis.Lines[0].Y1, "axis layer must not be remapped")
	assert.Equal(t, 400.0, axis.Lines[0].Y2)
}

// TestNullRenderer_CountsAndValidates verifies counting plus validation
// failures wrapping ErrInvalidData.
func TestNullRenderer_CountsAndValidates(t *testing.T) {
	vp, err := core.NewViewport(10, 10)
	require.NoError(t, err)
	f := render.NewFrame(vp)
	f.PushLine(render.Line{X2: 1, StrokeWidth: 1, Color: render.RGB(0, 0, 0)})
	f.PushText(render.Text{Content: "x", FontSizePx: 8, Color: render.RGB(0, 0, 0)})

	n := render.NewNullRenderer()
	require.NoError(t, n.Render(&f))
	assert.Equal(t, 1, n.RenderCalls)
	assert.Equal(t, 1, n.LineCount)
	assert.Equal(t, 1, n.TextCount)

	assert.ErrorIs(t, n.Render(nil), core.ErrInvalidData)

	n.Reset()
	assert.Zero(t, n.LineCount)
}
