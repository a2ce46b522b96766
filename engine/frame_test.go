package engine_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantatlas/chartengine/core"
	"github.com/quantatlas/chartengine/engine"
	"github.com/quantatlas/chartengine/render"
)

func frameFixture(t *testing.T) *engine.Engine {
	t.Helper()
	e := newTestEngine(t, func(cfg *engine.ChartConfig) {
		cfg.TimeEnd = 20
	})
	require.NoError(t, e.SetData([]core.DataPoint{
		{Time: 2, Value: 20}, {Time: 6, Value: 45}, {Time: 11, Value: 30}, {Time: 17, Value: 80},
	}))
	require.NoError(t, e.SetCandles([]core.OhlcBar{
		{Time: 4, Open: 40, High: 60, Low: 30, Close: 50},
		{Time: 9, Open: 50, High: 70, Low: 45, Close: 48},
	}))
	return e
}

// TestBuildLayeredRenderFrame_Deterministic: the same state yields
// byte-for-byte identical frames.
func TestBuildLayeredRenderFrame_Deterministic(t *testing.T) {
	e := frameFixture(t)
	require.NoError(t, e.PointerMove(400, 200))

	first, err := e.BuildLayeredRenderFrame()
	require.NoError(t, err)
	second, err := e.BuildLayeredRenderFrame()
	require.NoError(t, err)
	assert.True(t, reflect.DeepEqual(first, second))
}

// TestBuildRenderFrame_MatchesFlattenedLayeredFrame: the flat frame is the
// layered frame flattened, nothing more.
func TestBuildRenderFrame_MatchesFlattenedLayeredFrame(t *testing.T) {
	e := frameFixture(t)

	layered, err := e.BuildLayeredRenderFrame()
	require.NoError(t, err)
	flat, err := e.BuildRenderFrame()
	require.NoError(t, err)
	assert.Equal(t, layered.Flatten().PrimitiveCount(), flat.PrimitiveCount())
}

// TestBuildRenderFrame_ContainsSeriesAndAxes: a populated chart emits line
// segments, candle rects, and labeled axes.
func TestBuildRenderFrame_ContainsSeriesAndAxes(t *testing.T) {
	e := frameFixture(t)

	frame, err := e.BuildRenderFrame()
	require.NoError(t, err)
	assert.NotEmpty(t, frame.Lines)
	assert.NotEmpty(t, frame.Rects)
	assert.NotEmpty(t, frame.Texts)
}

// TestBuildRenderFrameForPane_UnknownPane returns nil without error
// surface for a pane that was never created.
func TestBuildRenderFrameForPane_UnknownPane(t *testing.T) {
	e := frameFixture(t)
	frame, err := e.BuildRenderFrameForPane(99)
	require.NoError(t, err)
	assert.Nil(t, frame)
}

// TestBuildRenderFrameForPane_SecondPane: series bound to a second pane
// render inside that pane's region.
func TestBuildRenderFrameForPane_SecondPane(t *testing.T) {
	e := frameFixture(t)
	id, err := e.CreatePane(0.5)
	require.NoError(t, err)
	require.NoError(t, e.SetPointsPane(id))

	frame, err := e.BuildRenderFrameForPane(id)
	require.NoError(t, err)
	require.NotNil(t, frame)
	assert.NotEmpty(t, frame.Lines)

	regions := e.PaneRegions()
	require.Len(t, regions, 2)
	var region core.PaneRegion
	for _, r := range regions {
		if r.ID == id {
			region = r
		}
	}
	for _, l := range frame.Lines {
		assert.GreaterOrEqual(t, l.Y1, region.Top-1e-9)
		assert.GreaterOrEqual(t, l.Y2, region.Top-1e-9)
	}
}

// TestCrosshairLayer_OnlyWhenPointerPresent: no crosshair primitives
// without a pointer; a pointer in the plot adds guide lines.
func TestCrosshairLayer_OnlyWhenPointerPresent(t *testing.T) {
	e := frameFixture(t)

	before, err := e.BuildRenderFrame()
	require.NoError(t, err)
	require.NoError(t, e.PointerMove(400, 200))
	after, err := e.BuildRenderFrame()
	require.NoError(t, err)
	assert.Greater(t, after.PrimitiveCount(), before.PrimitiveCount())

	e.PointerLeave()
	cleared, err := e.BuildRenderFrame()
	require.NoError(t, err)
	assert.Equal(t, before.PrimitiveCount(), cleared.PrimitiveCount())
}

// TestCrosshairAxisLabels_EmitIndependently: hiding one axis label leaves
// the other label in the crosshair layer untouched.
func TestCrosshairAxisLabels_EmitIndependently(t *testing.T) {
	e := frameFixture(t)
	require.NoError(t, e.PointerMove(400, 200))

	crosshairTexts := func() []render.Text {
		layered, err := e.BuildLayeredRenderFrame()
		require.NoError(t, err)
		for _, pane := range layered.Panes {
			if pane.PaneID == core.MainPaneID {
				return pane.Layers[render.LayerCrosshair].Texts
			}
		}
		return nil
	}
	require.Len(t, crosshairTexts(), 2)

	b := e.Behavior()
	b.CrosshairLabels.ShowTimeLabel = false
	require.NoError(t, e.SetBehavior(b))
	texts := crosshairTexts()
	require.Len(t, texts, 1)
	assert.Equal(t, render.AlignLeft, texts[0].HAlign)

	b.CrosshairLabels.ShowTimeLabel = true
	b.CrosshairLabels.ShowPriceLabel = false
	require.NoError(t, e.SetBehavior(b))
	texts = crosshairTexts()
	require.Len(t, texts, 1)
	assert.Equal(t, render.AlignCenter, texts[0].HAlign)
}

// TestRenderTo_NullRenderer drains a frame without error.
func TestRenderTo_NullRenderer(t *testing.T) {
	e := frameFixture(t)
	r := render.NewNullRenderer()
	require.NoError(t, e.RenderTo(r))
	assert.Equal(t, 1, r.RenderCalls)
	assert.Positive(t, r.LineCount)
}

// TestAdaptivePriceAxisWidth_GrowOnly: wider labels grow the reserved
// axis strip and it never shrinks back.
func TestAdaptivePriceAxisWidth_GrowOnly(t *testing.T) {
	e := newTestEngine(t, func(cfg *engine.ChartConfig) {
		cfg.PriceMin = 0
		cfg.PriceMax = 100
	})
	_, err := e.BuildRenderFrame()
	require.NoError(t, err)
	narrow := e.PriceAxisWidthPx()

	require.NoError(t, e.SetPriceDomain(123456.789, 123456.791))
	_, err = e.BuildRenderFrame()
	require.NoError(t, err)
	wide := e.PriceAxisWidthPx()
	assert.GreaterOrEqual(t, wide, narrow)

	require.NoError(t, e.SetPriceDomain(0, 100))
	_, err = e.BuildRenderFrame()
	require.NoError(t, err)
	assert.Equal(t, wide, e.PriceAxisWidthPx())
}

// TestCandleOverride_ChangesBodyColor: per-bar style overrides survive
// through to the emitted rects.
func TestCandleOverride_ChangesBodyColor(t *testing.T) {
	e := newTestEngine(t, func(cfg *engine.ChartConfig) {
		cfg.TimeEnd = 20
	})
	override := render.Color{R: 0.1, G: 0.2, B: 0.3, A: 1}
	require.NoError(t, e.SetStyledCandles([]engine.StyledCandle{
		{Bar: core.OhlcBar{Time: 5, Open: 40, High: 60, Low: 30, Close: 50},
			Style: &engine.CandleStyleOverride{BodyColor: &override}},
		{Bar: core.OhlcBar{Time: 10, Open: 50, High: 70, Low: 45, Close: 48}},
	}))

	frame, err := e.BuildRenderFrame()
	require.NoError(t, err)
	found := false
	want := render.Color{R: 0.1, G: 0.2, B: 0.3, A: 1}
	for _, r := range frame.Rects {
		if r.Fill == want {
			found = true
		}
	}
	assert.True(t, found)
}

// TestLayeredFrame_LayerOrderIsCanonical checks each pane carries the
// fixed back-to-front stack.
func TestLayeredFrame_LayerOrderIsCanonical(t *testing.T) {
	e := frameFixture(t)
	layered, err := e.BuildLayeredRenderFrame()
	require.NoError(t, err)

	want := render.CanonicalLayerKinds()
	for _, pane := range layered.Panes {
		require.Len(t, pane.Layers, len(want))
		for i, layer := range pane.Layers {
			assert.Equal(t, want[i], layer.Kind)
		}
	}
}
