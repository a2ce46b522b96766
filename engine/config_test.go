package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantatlas/chartengine/core"
	"github.com/quantatlas/chartengine/engine"
	"github.com/quantatlas/chartengine/render"
)

const fullConfigYAML = `
viewport:
  width: 1000
  height: 500
time_start: 0
time_end: 100
price_min: 10
price_max: 200
price_scale_mode: log
crosshair_mode: normal
price_scale_margins:
  top_margin_ratio: 0.15
  bottom_margin_ratio: 0.05
crosshair_guide_line_behavior:
  show_lines: true
  show_horizontal_line: false
  show_vertical_line: true
crosshair_guide_line_style_behavior:
  color: {r: 0.5, g: 0.5, b: 0.5, a: 1}
  width_px: 2
  stroke_style: dotted
  vertical_line_color: {r: 1, g: 0, b: 0, a: 1}
crosshair_axis_label_visibility_behavior:
  show_time_label: true
  show_price_label: true
  show_time_box: true
  show_price_box: false
  show_time_border: true
  show_price_border: false
crosshair_axis_label_style_behavior:
  text_color: {r: 0, g: 0, b: 0, a: 1}
  font_size_px: 12
  padding_px: 5
crosshair_axis_label_box_style_behavior:
  fill: {r: 0.9, g: 0.9, b: 0.9, a: 1}
  time_border: {r: 0.2, g: 0.2, b: 0.2, a: 1}
  corner_radius_px: 3
candlestick_style_behavior:
  up_body_color: {r: 0, g: 0.8, b: 0.3, a: 1}
  down_body_color: {r: 0.8, g: 0.1, b: 0.1, a: 1}
  body_mode: hollow_up
  body_width_px: 5
  show_borders: true
time_scale_scroll_zoom_behavior:
  right_bar_stays_on_scroll: true
time_scale_navigation_behavior:
  right_offset_bars: 3
  bar_spacing_px: 8
time_scale_edge_behavior:
  fix_left_edge: true
  fix_right_edge: false
time_scale_zoom_limit_behavior:
  min_bar_spacing_px: 2
time_scale_realtime_append_behavior:
  preserve_right_edge_on_append: true
  right_edge_tolerance_bars: 1.5
time_axis_label_config:
  locale: es-ES
  policy: utc_adaptive
  timezone_offset_minutes: 120
  session:
    start_minute_of_day: 540
    end_minute_of_day: 1020
price_axis_label_config:
  locale: en-US
  policy: min_move
  min_move: 0.25
  trim_trailing_zeros: true
interaction_input_behavior:
  handle_scroll: true
  handle_scale: true
  scroll_mouse_wheel: true
  scroll_pressed_mouse_move: false
  scale_mouse_wheel: true
  scale_pinch: false
`

// TestParseConfigYAML_FullDocument decodes every optional block.
func TestParseConfigYAML_FullDocument(t *testing.T) {
	cfg, err := engine.ParseConfigYAML([]byte(fullConfigYAML))
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.Viewport.Width)
	assert.Equal(t, "log", cfg.PriceScaleMode)
	require.NotNil(t, cfg.Navigation)
	assert.Equal(t, 3.0, cfg.Navigation.RightOffsetBars)
	require.NotNil(t, cfg.Navigation.BarSpacingPx)
	assert.Equal(t, 8.0, *cfg.Navigation.BarSpacingPx)
	require.NotNil(t, cfg.TimeAxisLabels)
	assert.Equal(t, 120, cfg.TimeAxisLabels.TimezoneOffsetMinutes)
	require.NotNil(t, cfg.TimeAxisLabels.Session)
	assert.Equal(t, uint16(540), cfg.TimeAxisLabels.Session.StartMinuteOfDay)
	require.NotNil(t, cfg.ScrollZoom)
	assert.True(t, cfg.ScrollZoom.RightBarStaysOnScroll)

	e, err := engine.New(cfg)
	require.NoError(t, err)
	b := e.Behavior()
	assert.True(t, b.Edge.FixLeftEdge)
	assert.True(t, b.ScrollZoom.RightBarStaysOnScroll)
	assert.False(t, b.InteractionInput.AllowsPressedMovePan())
	assert.True(t, b.InteractionInput.AllowsWheelZoom())
	assert.False(t, b.InteractionInput.AllowsPinchZoom())
	assert.True(t, b.CrosshairGuides.ShowVerticalLine)
	assert.False(t, b.CrosshairGuides.ShowHorizontalLine)
	assert.True(t, b.CrosshairLabels.ShowTimeLabel)
	assert.False(t, b.CrosshairLabels.ShowPriceBox)

	s := e.Style()
	assert.Equal(t, render.Color{R: 0.5, G: 0.5, B: 0.5, A: 1}, s.CrosshairLineColor)
	assert.Equal(t, 2.0, s.CrosshairLineWidthPx)
	assert.Equal(t, render.StrokeDotted, s.CrosshairStrokeStyle)
	require.NotNil(t, s.CrosshairVerticalLineColor)
	assert.Equal(t, render.Color{R: 1, A: 1}, *s.CrosshairVerticalLineColor)
	assert.Nil(t, s.CrosshairHorizontalLineColor)
	assert.Equal(t, 12.0, s.CrosshairLabelBox.FontSizePx)
	assert.Equal(t, 5.0, s.CrosshairLabelBox.PaddingPx)
	assert.Equal(t, render.Color{R: 0.9, G: 0.9, B: 0.9, A: 1}, s.CrosshairLabelBox.TimeFill)
	assert.Equal(t, render.Color{R: 0.9, G: 0.9, B: 0.9, A: 1}, s.CrosshairLabelBox.PriceFill)
	assert.Equal(t, render.Color{R: 0.2, G: 0.2, B: 0.2, A: 1}, s.CrosshairLabelBox.TimeBorder)
	assert.Equal(t, 3.0, s.CrosshairLabelBox.CornerRadiusPx)
	assert.Equal(t, engine.CandleBodyHollowUp, s.Candles.BodyMode)
	assert.Equal(t, 5.0, s.Candles.BodyWidthPx)
	assert.True(t, s.Candles.ShowBorders)
	assert.Equal(t, render.Color{G: 0.8, B: 0.3, A: 1}, s.Candles.UpBodyColor)
}

// TestParseConfigJSON_MirrorsYAML: the JSON form decodes to the same
// record as the YAML form.
func TestParseConfigJSON_MirrorsYAML(t *testing.T) {
	doc := `{
  "viewport": {"width": 640, "height": 480},
  "time_start": 0, "time_end": 50,
  "price_min": 1, "price_max": 9,
  "time_scale_zoom_limit_behavior": {"min_bar_spacing_px": 4}
}`
	cfg, err := engine.ParseConfigJSON([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Viewport.Width)
	require.NotNil(t, cfg.ZoomLimit)
	assert.Equal(t, 4.0, cfg.ZoomLimit.MinBarSpacingPx)
}

// TestConfigValidate_RejectsBoundaryViolations covers the documented
// rejection cases.
func TestConfigValidate_RejectsBoundaryViolations(t *testing.T) {
	base := engine.ChartConfig{
		Viewport:  engine.ViewportConfig{Width: 100, Height: 100},
		TimeStart: 0, TimeEnd: 100, PriceMin: 1, PriceMax: 9,
	}

	cfg := base
	cfg.PriceScaleMode = "log"
	cfg.PriceMin = 0
	assert.ErrorIs(t, cfg.Validate(), core.ErrUnsupported)

	cfg = base
	cfg.PriceScaleMargins = &engine.MarginsConfig{TopMarginRatio: 0.6, BottomMarginRatio: 0.5}
	assert.ErrorIs(t, cfg.Validate(), core.ErrInvalidData)

	cfg = base
	cfg.PriceAxisLabels = &engine.PriceAxisLabelConfigRecord{Precision: 21}
	assert.ErrorIs(t, cfg.Validate(), core.ErrInvalidData)

	cfg = base
	cfg.PriceAxisLabels = &engine.PriceAxisLabelConfigRecord{Policy: "min_move", MinMove: 0}
	assert.ErrorIs(t, cfg.Validate(), core.ErrInvalidData)

	cfg = base
	cfg.TimeAxisLabels = &engine.TimeAxisLabelConfigRecord{TimezoneOffsetMinutes: 900}
	assert.ErrorIs(t, cfg.Validate(), core.ErrInvalidData)

	cfg = base
	cfg.TimeAxisLabels = &engine.TimeAxisLabelConfigRecord{
		Session: &engine.SessionConfigRecord{StartMinuteOfDay: 540, EndMinuteOfDay: 540},
	}
	assert.ErrorIs(t, cfg.Validate(), core.ErrInvalidData)

	cfg = base
	cfg.CrosshairMode = "laser"
	assert.ErrorIs(t, cfg.Validate(), core.ErrInvalidData)

	negative := -1.0
	cfg = base
	cfg.RightOffsetPx = &negative
	assert.ErrorIs(t, cfg.Validate(), core.ErrInvalidData)

	cfg = base
	cfg.CrosshairGuideStyle = &engine.CrosshairGuideLineStyleConfig{StrokeStyle: "wavy"}
	assert.ErrorIs(t, cfg.Validate(), core.ErrInvalidData)

	cfg = base
	cfg.CrosshairGuideStyle = &engine.CrosshairGuideLineStyleConfig{WidthPx: &negative}
	assert.ErrorIs(t, cfg.Validate(), core.ErrInvalidData)

	cfg = base
	cfg.CrosshairLabelBoxStyle = &engine.CrosshairAxisLabelBoxStyleConfig{
		Fill: &render.Color{R: 1.5, A: 1},
	}
	assert.ErrorIs(t, cfg.Validate(), core.ErrInvalidData)

	cfg = base
	cfg.Candlesticks = &engine.CandlestickStyleConfig{BodyMode: "hollow_down"}
	assert.ErrorIs(t, cfg.Validate(), core.ErrInvalidData)
}

// TestParseConfigYAML_RejectsMalformedDocument surfaces decode failures.
func TestParseConfigYAML_RejectsMalformedDocument(t *testing.T) {
	_, err := engine.ParseConfigYAML([]byte("viewport: [unclosed"))
	assert.ErrorIs(t, err, core.ErrInvalidData)
}

// TestConfig_EmptyEnumStringsPickDefaults: absent enum strings mean the
// documented defaults, not errors.
func TestConfig_EmptyEnumStringsPickDefaults(t *testing.T) {
	e := newTestEngine(t, nil)
	assert.Equal(t, engine.CrosshairMagnet, e.Crosshair().Mode)
	b := e.Behavior()
	assert.True(t, b.InteractionInput.AllowsWheelPan())
	assert.True(t, b.RealtimeAppend.PreserveRightEdgeOnAppend)
	assert.InDelta(t, 0.75, b.RealtimeAppend.RightEdgeToleranceBars, 1e-12)
}
