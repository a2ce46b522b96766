package engine

import "github.com/quantatlas/chartengine/render"

// CandleBodyMode selects how candle bodies are filled.
type CandleBodyMode int

const (
	// CandleBodySolid fills every body.
	CandleBodySolid CandleBodyMode = iota
	// CandleBodyHollowUp leaves bullish bodies unfilled.
	CandleBodyHollowUp
)

// CandlestickStyle holds the candle palette and widths. Optional overrides
// replace the per-direction wick and border colors with one shared color.
type CandlestickStyle struct {
	UpBodyColor       render.Color
	DownBodyColor     render.Color
	UpWickColor       render.Color
	DownWickColor     render.Color
	WickColorOverride *render.Color
	UpBorderColor     render.Color
	DownBorderColor   render.Color
	BorderOverride    *render.Color
	BodyMode          CandleBodyMode
	BodyWidthPx       float64
	WickWidthPx       float64
	BorderWidthPx     float64
	ShowWicks         bool
	ShowBorders       bool
}

// WickColorFor resolves the wick color for one candle direction.
func (s CandlestickStyle) WickColorFor(bullish bool) render.Color {
	if s.WickColorOverride != nil {
		return *s.WickColorOverride
	}
	if bullish {
		return s.UpWickColor
	}
	return s.DownWickColor
}

// BorderColorFor resolves the border color for one candle direction.
func (s CandlestickStyle) BorderColorFor(bullish bool) render.Color {
	if s.BorderOverride != nil {
		return *s.BorderOverride
	}
	if bullish {
		return s.UpBorderColor
	}
	return s.DownBorderColor
}

// BodyColorFor resolves the body fill for one candle direction; hollow
// bullish bodies fall back to the background fill.
func (s CandlestickStyle) BodyColorFor(bullish bool, background render.Color) render.Color {
	if bullish {
		if s.BodyMode == CandleBodyHollowUp {
			return background
		}
		return s.UpBodyColor
	}
	return s.DownBodyColor
}

// CrosshairLabelBoxStyle styles the crosshair axis label boxes.
type CrosshairLabelBoxStyle struct {
	TimeFill          render.Color
	PriceFill         render.Color
	TimeBorder        render.Color
	PriceBorder       render.Color
	BorderWidthPx     float64
	CornerRadiusPx    float64
	TextColor         render.Color
	FontSizePx        float64
	PaddingPx         float64
	TimeLabelOffsetY  float64
	PriceLabelOffsetX float64
}

// RenderStyle is the full visual configuration consumed by the frame
// builder. Everything is plain data; the builder never mutates it.
type RenderStyle struct {
	Background render.Color

	GridColor       render.Color
	GridWidthPx     float64
	GridStrokeStyle render.LineStrokeStyle

	LineSeriesColor   render.Color
	LineSeriesWidthPx float64

	AreaFillColor     render.Color
	AreaLineColor     render.Color
	AreaLineWidthPx   float64
	BaselineLineColor render.Color
	BaselineAboveFill render.Color
	BaselineBelowFill render.Color

	HistogramColor    render.Color
	HistogramBarWidth float64

	BarSeriesUpColor   render.Color
	BarSeriesDownColor render.Color
	BarTickWidthPx     float64
	BarSeriesWidthPx   float64

	Candles CandlestickStyle

	LastPriceLineColor   render.Color
	LastPriceUpColor     render.Color
	LastPriceDownColor   render.Color
	LastPriceLineWidthPx float64
	LastPriceStrokeStyle render.LineStrokeStyle
	LastPriceFontSizePx  float64

	CrosshairLineColor   render.Color
	CrosshairLineWidthPx float64
	CrosshairStrokeStyle render.LineStrokeStyle
	// CrosshairVerticalLineColor and CrosshairHorizontalLineColor, when
	// set, replace CrosshairLineColor on that guide only.
	CrosshairVerticalLineColor   *render.Color
	CrosshairHorizontalLineColor *render.Color
	CrosshairLabelBox            CrosshairLabelBoxStyle

	AxisLineColor     render.Color
	AxisTextColor     render.Color
	AxisFontSizePx    float64
	AxisTickLengthPx  float64
	TimeAxisHeightPx  float64
	PriceAxisWidthPx  float64
	AxisLineWidthPx   float64
	MajorTickLengthPx float64
}

// DefaultRenderStyle returns a dark theme matching common trading UIs.
func DefaultRenderStyle() RenderStyle {
	up := render.RGB(0.15, 0.65, 0.40)
	down := render.RGB(0.85, 0.25, 0.25)
	return RenderStyle{
		Background: render.RGB(0.07, 0.08, 0.10),

		GridColor:       render.RGB(0.16, 0.18, 0.22),
		GridWidthPx:     1,
		GridStrokeStyle: render.StrokeSolid,

		LineSeriesColor:   render.RGB(0.25, 0.55, 0.95),
		LineSeriesWidthPx: 2,

		AreaFillColor:     render.RGB(0.25, 0.55, 0.95).WithAlpha(0.25),
		AreaLineColor:     render.RGB(0.25, 0.55, 0.95),
		AreaLineWidthPx:   2,
		BaselineLineColor: render.RGB(0.55, 0.55, 0.60),
		BaselineAboveFill: up.WithAlpha(0.25),
		BaselineBelowFill: down.WithAlpha(0.25),

		HistogramColor:    render.RGB(0.45, 0.50, 0.60).WithAlpha(0.8),
		HistogramBarWidth: 4,

		BarSeriesUpColor:   up,
		BarSeriesDownColor: down,
		BarTickWidthPx:     1,
		BarSeriesWidthPx:   6,

		Candles: CandlestickStyle{
			UpBodyColor:     up,
			DownBodyColor:   down,
			UpWickColor:     up,
			DownWickColor:   down,
			UpBorderColor:   up,
			DownBorderColor: down,
			BodyMode:        CandleBodySolid,
			BodyWidthPx:     6,
			WickWidthPx:     1,
			BorderWidthPx:   1,
			ShowWicks:       true,
			ShowBorders:     false,
		},

		LastPriceLineColor:   render.RGB(0.60, 0.60, 0.65),
		LastPriceUpColor:     up,
		LastPriceDownColor:   down,
		LastPriceLineWidthPx: 1,
		LastPriceStrokeStyle: render.StrokeDashed,
		LastPriceFontSizePx:  11,

		CrosshairLineColor:   render.RGB(0.55, 0.58, 0.65),
		CrosshairLineWidthPx: 1,
		CrosshairStrokeStyle: render.StrokeDashed,
		CrosshairLabelBox: CrosshairLabelBoxStyle{
			TimeFill:       render.RGB(0.20, 0.22, 0.27),
			PriceFill:      render.RGB(0.20, 0.22, 0.27),
			TimeBorder:     render.RGB(0.35, 0.38, 0.45),
			PriceBorder:    render.RGB(0.35, 0.38, 0.45),
			BorderWidthPx:  1,
			CornerRadiusPx: 2,
			TextColor:      render.RGB(0.92, 0.93, 0.95),
			FontSizePx:     11,
			PaddingPx:      4,
		},

		AxisLineColor:     render.RGB(0.30, 0.32, 0.38),
		AxisTextColor:     render.RGB(0.75, 0.77, 0.82),
		AxisFontSizePx:    11,
		AxisTickLengthPx:  4,
		TimeAxisHeightPx:  24,
		PriceAxisWidthPx:  56,
		AxisLineWidthPx:   1,
		MajorTickLengthPx: 7,
	}
}
