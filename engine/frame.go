package engine

import (
	"fmt"
	"math"

	"github.com/quantatlas/chartengine/axis"
	"github.com/quantatlas/chartengine/core"
	"github.com/quantatlas/chartengine/render"
)

// axisDisplayContext carries price-axis facts the crosshair and last-price
// emitters reuse within one frame build.
type axisDisplayContext struct {
	fallbackBase float64
	tickStepAbs  float64
	suffix       string
	plotRight    float64
	plotBottom   float64
}

// BuildRenderFrame builds the flat frame: the layered frame flattened in
// pane order then layer order.
func (e *Engine) BuildRenderFrame() (render.Frame, error) {
	layered, err := e.BuildLayeredRenderFrame()
	if err != nil {
		return render.Frame{}, err
	}
	return layered.Flatten(), nil
}

// BuildRenderFrameForPane builds the flat frame scoped to one pane.
// Unknown ids return nil without error.
func (e *Engine) BuildRenderFrameForPane(id core.PaneID) (*render.Frame, error) {
	layered, err := e.BuildLayeredRenderFrame()
	if err != nil {
		return nil, err
	}
	return layered.FlattenPane(id), nil
}

// BuildLayeredRenderFrame builds the per-pane layered frame. The build is
// deterministic: identical engine state yields identical frames.
func (e *Engine) BuildLayeredRenderFrame() (render.LayeredFrame, error) {
	regions := e.PaneRegions()
	descriptors := e.panes.Descriptors()
	frame := render.NewLayeredFrame(e.viewport, descriptors)
	for _, r := range regions {
		frame.SetPaneRegion(r.ID, r.Top, r.Bottom)
	}

	ctx, priceTicks, priceLabels, err := e.resolveAxisContext()
	if err != nil {
		return render.LayeredFrame{}, err
	}

	// 1. Backgrounds fill each pane's plot region.
	for _, r := range regions {
		frame.PushRect(r.ID, render.LayerBackground, render.Rect{
			X: 0, Y: r.Top, Width: ctx.plotRight, Height: r.Bottom - r.Top,
			Fill: e.style.Background,
		})
	}

	// 2. Series primitives are projected in the main price-scale pixel
	// space, then remapped into each pane's local region. The remap source
	// space is [0, plotBottom]: projection always spans the full plot
	// height above the time axis, and the pane regions partition that same
	// interval, so the main pane (whose region equals the source space)
	// needs no remap.
	if err := e.emitSeries(&frame, ctx); err != nil {
		return render.LayeredFrame{}, err
	}
	totalTop, totalBottom := 0.0, ctx.plotBottom
	for _, r := range regions {
		if r.Top != totalTop || r.Bottom != totalBottom {
			frame.RemapPlotLayers(r.ID, totalTop, totalBottom, r.Top, r.Bottom)
		}
	}

	// 3. Grid: horizontal price lines on the main pane, vertical time
	// lines on every pane.
	timeTicks, timeLabels, err := e.resolveTimeTicks(ctx)
	if err != nil {
		return render.LayeredFrame{}, err
	}
	for _, t := range priceTicks {
		frame.PushLine(core.MainPaneID, render.LayerGrid, render.Line{
			X1: 0, Y1: t.Px, X2: ctx.plotRight, Y2: t.Px,
			Color: e.style.GridColor, StrokeWidth: e.style.GridWidthPx, Style: e.style.GridStrokeStyle,
		})
	}
	for _, r := range regions {
		for _, t := range timeTicks {
			frame.PushLine(r.ID, render.LayerGrid, render.Line{
				X1: t.Px, Y1: r.Top, X2: t.Px, Y2: r.Bottom,
				Color: e.style.GridColor, StrokeWidth: e.style.GridWidthPx, Style: e.style.GridStrokeStyle,
			})
		}
	}

	// 4. Last-price marker.
	if err := e.emitLastPrice(&frame, ctx); err != nil {
		return render.LayeredFrame{}, err
	}

	// 5. Crosshair guides and axis label boxes, scoped to the pane under
	// the pointer.
	e.emitCrosshair(&frame, regions, ctx)

	// 6. Axis borders, tick marks, labels.
	e.emitAxes(&frame, ctx, priceTicks, priceLabels, timeTicks, timeLabels)

	e.plugins.dispatch(EventFrameBuilt)
	return frame, nil
}

// RenderTo builds the flat frame and hands it to the renderer. Renderer
// errors surface as BackendFailure.
func (e *Engine) RenderTo(r render.Renderer) error {
	frame, err := e.BuildRenderFrame()
	if err != nil {
		return err
	}
	if err := r.Render(&frame); err != nil {
		return fmt.Errorf("engine: renderer failed: %w: %v", core.ErrBackendFailure, err)
	}
	return nil
}

// resolveAxisContext lays out the price axis: ticks, labels, the adaptive
// axis width (grow-only), and the display facts downstream emitters need.
func (e *Engine) resolveAxisContext() (axisDisplayContext, []axis.Tick, []string, error) {
	plotBottom := float64(e.viewport.Height) - e.style.TimeAxisHeightPx
	if plotBottom < 1 {
		plotBottom = float64(e.viewport.Height)
	}
	ctx := axisDisplayContext{
		fallbackBase: e.ResolveTransformedBase(),
		suffix:       e.behavior.PriceAxisLabels.Mode.Suffix(),
		plotBottom:   plotBottom,
	}

	n := axis.TickCount(plotBottom, axis.PriceTargetSpacingPx, 2, 20)
	pixels := axis.EvenTicks(0, plotBottom, n)
	ticks := make([]axis.Tick, 0, len(pixels))
	for _, px := range pixels {
		price, err := e.PixelToPrice(px)
		if err != nil {
			return ctx, nil, nil, err
		}
		display := axis.MapPriceToDisplayValue(price, e.behavior.PriceAxisLabels.Mode, ctx.fallbackBase)
		ticks = append(ticks, axis.Tick{Value: display, Px: px})
	}
	ticks = axis.FilterTicksByMinSpacing(ticks, axis.PriceMinSpacingPx)
	kept := make([]float64, len(ticks))
	for i, t := range ticks {
		kept[i] = t.Value
	}
	ctx.tickStepAbs = axis.TickStepHint(kept)

	labels := make([]string, len(ticks))
	maxLen := 0
	for i, t := range ticks {
		labels[i] = e.formatPriceAxisLabel(t.Value, ctx.tickStepAbs) + ctx.suffix
		if len(labels[i]) > maxLen {
			maxLen = len(labels[i])
		}
	}

	// Grow the axis width when labels would overflow it; never shrink, so
	// the layout stays stable while scrolling.
	needed := float64(maxLen)*e.style.AxisFontSizePx*0.6 + 2*e.style.CrosshairLabelBox.PaddingPx + e.style.AxisTickLengthPx
	if needed > e.adaptivePriceAxisWidthPx {
		e.adaptivePriceAxisWidthPx = needed
	}
	ctx.plotRight = float64(e.viewport.Width) - e.adaptivePriceAxisWidthPx
	if ctx.plotRight < 1 {
		ctx.plotRight = float64(e.viewport.Width)
	}
	return ctx, ticks, labels, nil
}

func (e *Engine) formatPriceAxisLabel(displayValue, tickStepAbs float64) string {
	if e.axisFormatters.priceFormatter != nil {
		profile := axis.CustomProfile{SourceModeTag: 0, Generation: e.axisFormatters.generation}
		return e.priceAxisCache.FormatCustomPrice(displayValue, e.behavior.PriceAxisLabels, tickStepAbs, profile, e.axisFormatters.priceFormatter)
	}
	return e.priceAxisCache.Format(displayValue, e.behavior.PriceAxisLabels, tickStepAbs)
}

func (e *Engine) formatTimeAxisLabel(tm, visibleSpan float64) string {
	if e.axisFormatters.timeFormatter != nil {
		profile := axis.CustomProfile{SourceModeTag: 0, Generation: e.axisFormatters.generation}
		return e.timeAxisCache.FormatCustomTime(tm, e.behavior.TimeAxisLabels, visibleSpan, profile, e.axisFormatters.timeFormatter)
	}
	return e.timeAxisCache.Format(tm, e.behavior.TimeAxisLabels, visibleSpan)
}

func (e *Engine) resolveTimeTicks(ctx axisDisplayContext) ([]axis.Tick, []string, error) {
	n := axis.TickCount(ctx.plotRight, axis.TimeTargetSpacingPx, 2, 20)
	pixels := axis.EvenTicks(0, ctx.plotRight, n)
	ticks := make([]axis.Tick, 0, len(pixels))
	for _, px := range pixels {
		tm, err := e.PixelToX(px)
		if err != nil {
			return nil, nil, err
		}
		ticks = append(ticks, axis.Tick{Value: tm, Px: px})
	}
	ticks = axis.FilterTicksByMinSpacing(ticks, axis.TimeMinSpacingPx)
	span := math.Abs(e.timeScale.VisibleSpan())
	labels := make([]string, len(ticks))
	for i, t := range ticks {
		labels[i] = e.formatTimeAxisLabel(t.Value, span)
	}
	return ticks, labels, nil
}

// emitSeries projects every series into its pane's Series layer using the
// main price-scale pixel space.
func (e *Engine) emitSeries(frame *render.LayeredFrame, ctx axisDisplayContext) error {
	if len(e.points) >= 2 {
		geom, err := e.ProjectVisibleLine()
		if err != nil {
			return err
		}
		for i := 1; i < len(geom.Points); i++ {
			frame.PushLine(e.pointsPaneID, render.LayerSeries, render.Line{
				X1: geom.Points[i-1].X, Y1: geom.Points[i-1].Y,
				X2: geom.Points[i].X, Y2: geom.Points[i].Y,
				Color: e.style.LineSeriesColor, StrokeWidth: e.style.LineSeriesWidthPx, Style: render.StrokeSolid,
			})
		}
	}
	if len(e.candles) > 0 {
		geoms, err := e.ProjectVisibleCandles(e.style.Candles.BodyWidthPx)
		if err != nil {
			return err
		}
		for _, g := range geoms {
			style := e.style.Candles
			override, hasOverride := e.candleStyles[g.Time]
			wick := style.WickColorFor(g.IsBullish)
			body := style.BodyColorFor(g.IsBullish, e.style.Background)
			border := style.BorderColorFor(g.IsBullish)
			if hasOverride {
				if override.WickColor != nil {
					wick = *override.WickColor
				}
				if override.BodyColor != nil {
					body = *override.BodyColor
				}
				if override.BorderColor != nil {
					border = *override.BorderColor
				}
			}
			if style.ShowWicks {
				frame.PushLine(e.candlesPaneID, render.LayerSeries, render.Line{
					X1: g.CenterX, Y1: g.WickTopY, X2: g.CenterX, Y2: g.WickBottomY,
					Color: wick, StrokeWidth: style.WickWidthPx, Style: render.StrokeSolid,
				})
			}
			rect := render.Rect{
				X: g.BodyLeft, Y: g.BodyTop,
				Width: g.BodyRight - g.BodyLeft, Height: g.BodyBottom - g.BodyTop,
				Fill: body,
			}
			if style.ShowBorders {
				rect.BorderColor = border
				rect.BorderWidth = style.BorderWidthPx
			}
			frame.PushRect(e.candlesPaneID, render.LayerSeries, rect)
		}
	}
	return nil
}

// lastPriceSample picks the marker sample per the last-price source mode.
// The previous sample supplies the trend direction.
func (e *Engine) lastPriceSample() (value, prev float64, ok bool) {
	candles := e.candles
	points := e.points
	if e.behavior.LastPrice.SourceMode == LastPriceLatestVisible {
		start, end := e.timeScale.VisibleRange()
		candles = core.VisibleCandles(candles, start, end)
		points = core.VisiblePoints(points, start, end)
	}
	if n := len(candles); n > 0 {
		value = candles[n-1].Close
		prev = candles[n-1].Open
		if n > 1 {
			prev = candles[n-2].Close
		}
		return value, prev, true
	}
	if n := len(points); n > 0 {
		value = points[n-1].Value
		prev = value
		if n > 1 {
			prev = points[n-2].Value
		}
		return value, prev, true
	}
	return 0, 0, false
}

func (e *Engine) emitLastPrice(frame *render.LayeredFrame, ctx axisDisplayContext) error {
	b := e.behavior.LastPrice
	if !b.ShowLine && !b.ShowLabel {
		return nil
	}
	value, prev, ok := e.lastPriceSample()
	if !ok {
		return nil
	}
	y, err := e.PriceToPixel(value)
	if err != nil {
		return nil
	}
	color := e.style.LastPriceLineColor
	if b.UseTrendColor {
		if value >= prev {
			color = e.style.LastPriceUpColor
		} else {
			color = e.style.LastPriceDownColor
		}
	}
	paneID := e.candlesPaneID
	if len(e.candles) == 0 {
		paneID = e.pointsPaneID
	}
	if b.ShowLine {
		frame.PushLine(paneID, render.LayerOverlay, render.Line{
			X1: 0, Y1: y, X2: ctx.plotRight, Y2: y,
			Color: color, StrokeWidth: e.style.LastPriceLineWidthPx, Style: e.style.LastPriceStrokeStyle,
		})
	}
	if b.ShowLabel {
		display := axis.MapPriceToDisplayValue(value, e.behavior.PriceAxisLabels.Mode, ctx.fallbackBase)
		label := e.formatPriceAxisLabel(display, ctx.tickStepAbs) + ctx.suffix
		frame.PushText(paneID, render.LayerOverlay, render.Text{
			X: ctx.plotRight + e.style.AxisTickLengthPx, Y: y,
			Content: label, Color: color,
			FontSizePx: e.style.LastPriceFontSizePx, HAlign: render.AlignLeft,
		})
	}
	return nil
}

// emitCrosshair draws the guides and axis label boxes. Guides appear only
// in the pane containing the pointer; when the pointer sits outside every
// pane region nothing is emitted.
func (e *Engine) emitCrosshair(frame *render.LayeredFrame, regions []core.PaneRegion, ctx axisDisplayContext) {
	ch := e.crosshair
	if !ch.Visible || ch.Mode == CrosshairHidden {
		return
	}
	x, y := ch.PointerX, ch.PointerY
	if ch.Mode == CrosshairMagnet && ch.SnappedX != nil && ch.SnappedY != nil {
		x, y = *ch.SnappedX, *ch.SnappedY
	}
	var pane *core.PaneRegion
	for i := range regions {
		if y >= regions[i].Top && y <= regions[i].Bottom {
			pane = &regions[i]
			break
		}
	}
	if pane == nil {
		return
	}

	guides := e.behavior.CrosshairGuides
	if guides.ShowLines && guides.ShowVerticalLine {
		color := e.style.CrosshairLineColor
		if e.style.CrosshairVerticalLineColor != nil {
			color = *e.style.CrosshairVerticalLineColor
		}
		frame.PushLine(pane.ID, render.LayerCrosshair, render.Line{
			X1: x, Y1: pane.Top, X2: x, Y2: pane.Bottom,
			Color: color, StrokeWidth: e.style.CrosshairLineWidthPx, Style: e.style.CrosshairStrokeStyle,
		})
	}
	if guides.ShowLines && guides.ShowHorizontalLine {
		color := e.style.CrosshairLineColor
		if e.style.CrosshairHorizontalLineColor != nil {
			color = *e.style.CrosshairHorizontalLineColor
		}
		frame.PushLine(pane.ID, render.LayerCrosshair, render.Line{
			X1: 0, Y1: y, X2: ctx.plotRight, Y2: y,
			Color: color, StrokeWidth: e.style.CrosshairLineWidthPx, Style: e.style.CrosshairStrokeStyle,
		})
	}

	// The time and price labels emit independently; a missing value on one
	// axis never suppresses the other.
	labels := e.behavior.CrosshairLabels
	box := e.style.CrosshairLabelBox
	tm, okTime := 0.0, false
	switch {
	case ch.Mode == CrosshairMagnet && ch.SnappedTime != nil:
		tm, okTime = *ch.SnappedTime, true
	case ch.PointerTime != nil:
		tm, okTime = *ch.PointerTime, true
	}
	if labels.ShowTimeLabel && okTime {
		label := e.formatCrosshairTimeLabel(tm)
		w := float64(len(label))*box.FontSizePx*0.6 + 2*box.PaddingPx
		if labels.ShowTimeBox {
			rect := render.Rect{
				X: x - w/2, Y: ctx.plotBottom,
				Width: w, Height: e.style.TimeAxisHeightPx,
				Fill: box.TimeFill, CornerRadius: box.CornerRadiusPx,
			}
			if labels.ShowTimeBorder {
				rect.BorderColor = box.TimeBorder
				rect.BorderWidth = box.BorderWidthPx
			}
			frame.PushRect(pane.ID, render.LayerCrosshair, rect)
		}
		frame.PushText(pane.ID, render.LayerCrosshair, render.Text{
			X: x, Y: ctx.plotBottom + e.style.TimeAxisHeightPx/2 + box.TimeLabelOffsetY,
			Content: label, Color: box.TextColor, FontSizePx: box.FontSizePx, HAlign: render.AlignCenter,
		})
	}
	price, okPrice := 0.0, false
	switch {
	case ch.Mode == CrosshairMagnet && ch.SnappedPrice != nil:
		price, okPrice = *ch.SnappedPrice, true
	case ch.PointerPrice != nil:
		price, okPrice = *ch.PointerPrice, true
	}
	if labels.ShowPriceLabel && okPrice {
		display := axis.MapPriceToDisplayValue(price, e.behavior.PriceAxisLabels.Mode, ctx.fallbackBase)
		label := e.formatCrosshairPriceLabel(display) + ctx.suffix
		h := box.FontSizePx + 2*box.PaddingPx
		if labels.ShowPriceBox {
			rect := render.Rect{
				X: ctx.plotRight, Y: y - h/2,
				Width: e.adaptivePriceAxisWidthPx, Height: h,
				Fill: box.PriceFill, CornerRadius: box.CornerRadiusPx,
			}
			if labels.ShowPriceBorder {
				rect.BorderColor = box.PriceBorder
				rect.BorderWidth = box.BorderWidthPx
			}
			frame.PushRect(pane.ID, render.LayerCrosshair, rect)
		}
		frame.PushText(pane.ID, render.LayerCrosshair, render.Text{
			X: ctx.plotRight + box.PaddingPx + box.PriceLabelOffsetX, Y: y,
			Content: label, Color: box.TextColor, FontSizePx: box.FontSizePx, HAlign: render.AlignLeft,
		})
	}
}

func (e *Engine) formatCrosshairTimeLabel(tm float64) string {
	span := math.Abs(e.timeScale.VisibleSpan())
	if e.crosshairFormatters.timeFormatter != nil {
		profile := axis.CustomProfile{
			SourceModeTag: uint8(e.crosshair.SourceMode),
			Generation:    e.crosshairFormatters.generation,
		}
		return e.crosshairTimeCache.FormatCustomTime(tm, e.behavior.TimeAxisLabels, span, profile, e.crosshairFormatters.timeFormatter)
	}
	return e.crosshairTimeCache.Format(tm, e.behavior.TimeAxisLabels, span)
}

func (e *Engine) formatCrosshairPriceLabel(display float64) string {
	if e.crosshairFormatters.priceFormatter != nil {
		profile := axis.CustomProfile{
			SourceModeTag: uint8(e.crosshair.SourceMode),
			Generation:    e.crosshairFormatters.generation,
		}
		return e.crosshairPriceCache.FormatCustomPrice(display, e.behavior.PriceAxisLabels, 0, profile, e.crosshairFormatters.priceFormatter)
	}
	return e.crosshairPriceCache.Format(display, e.behavior.PriceAxisLabels, 0)
}

// emitAxes draws the axis borders, tick marks, and labels into the main
// pane's Axis layer.
func (e *Engine) emitAxes(frame *render.LayeredFrame, ctx axisDisplayContext, priceTicks []axis.Tick, priceLabels []string, timeTicks []axis.Tick, timeLabels []string) {
	main := core.MainPaneID
	// Borders: the price axis runs down plotRight, the time axis across
	// plotBottom.
	frame.PushLine(main, render.LayerAxis, render.Line{
		X1: ctx.plotRight, Y1: 0, X2: ctx.plotRight, Y2: ctx.plotBottom,
		Color: e.style.AxisLineColor, StrokeWidth: e.style.AxisLineWidthPx, Style: render.StrokeSolid,
	})
	frame.PushLine(main, render.LayerAxis, render.Line{
		X1: 0, Y1: ctx.plotBottom, X2: float64(e.viewport.Width), Y2: ctx.plotBottom,
		Color: e.style.AxisLineColor, StrokeWidth: e.style.AxisLineWidthPx, Style: render.StrokeSolid,
	})

	for i, t := range priceTicks {
		frame.PushLine(main, render.LayerAxis, render.Line{
			X1: ctx.plotRight, Y1: t.Px, X2: ctx.plotRight + e.style.AxisTickLengthPx, Y2: t.Px,
			Color: e.style.AxisLineColor, StrokeWidth: e.style.AxisLineWidthPx, Style: render.StrokeSolid,
		})
		frame.PushText(main, render.LayerAxis, render.Text{
			X: ctx.plotRight + e.style.AxisTickLengthPx + 2, Y: t.Px,
			Content: priceLabels[i], Color: e.style.AxisTextColor,
			FontSizePx: e.style.AxisFontSizePx, HAlign: render.AlignLeft,
		})
	}
	for i, t := range timeTicks {
		length := e.style.AxisTickLengthPx
		if axis.IsMajorTimeTick(t.Value, e.behavior.TimeAxisLabels) {
			length = e.style.MajorTickLengthPx
		}
		frame.PushLine(main, render.LayerAxis, render.Line{
			X1: t.Px, Y1: ctx.plotBottom, X2: t.Px, Y2: ctx.plotBottom + length,
			Color: e.style.AxisLineColor, StrokeWidth: e.style.AxisLineWidthPx, Style: render.StrokeSolid,
		})
		frame.PushText(main, render.LayerAxis, render.Text{
			X: t.Px, Y: ctx.plotBottom + e.style.TimeAxisHeightPx/2,
			Content: timeLabels[i], Color: e.style.AxisTextColor,
			FontSizePx: e.style.AxisFontSizePx, HAlign: render.AlignCenter,
		})
	}
}
