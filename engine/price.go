package engine

import (
	"fmt"
	"math"

	"github.com/quantatlas/chartengine/core"
)

// SetPriceScaleMode switches the price display mode, preserving the
// domain, margins, and inversion. Switching to Log with a non-positive
// domain is Unsupported.
func (e *Engine) SetPriceScaleMode(mode core.PriceScaleMode) error {
	min, max := e.priceScale.Domain()
	next, err := core.NewPriceScaleWithModeAndBase(min, max, mode, e.priceScale.BaseValue())
	if err != nil {
		return err
	}
	top, bottom := e.priceScale.Margins()
	next, err = next.WithMargins(top, bottom)
	if err != nil {
		return err
	}
	e.priceScale = next.WithInverted(e.priceScale.IsInverted())
	e.behavior.PriceAxisLabels.Mode = displayModeFor(mode, e.behavior.TransformedBase.ExplicitBasePrice)
	e.invalidation.Mark(InvalidatePriceScale)
	e.plugins.dispatch(EventPriceDomainChanged)
	return nil
}

// SetPriceScaleInverted flips the y direction.
func (e *Engine) SetPriceScaleInverted(inverted bool) {
	e.priceScale = e.priceScale.WithInverted(inverted)
	e.invalidation.Mark(InvalidatePriceScale)
	e.plugins.dispatch(EventPriceDomainChanged)
}

// SetPriceScaleMargins replaces the top and bottom margin ratios.
func (e *Engine) SetPriceScaleMargins(top, bottom float64) error {
	next, err := e.priceScale.WithMargins(top, bottom)
	if err != nil {
		return err
	}
	e.priceScale = next
	e.invalidation.Mark(InvalidatePriceScale)
	return nil
}

// SetPriceDomain replaces the (min, max) price domain.
func (e *Engine) SetPriceDomain(min, max float64) error {
	next, err := core.NewPriceScaleWithModeAndBase(min, max, e.priceScale.Mode(), e.priceScale.BaseValue())
	if err != nil {
		return err
	}
	top, bottom := e.priceScale.Margins()
	next, err = next.WithMargins(top, bottom)
	if err != nil {
		return err
	}
	e.priceScale = next.WithInverted(e.priceScale.IsInverted())
	e.invalidation.Mark(InvalidatePriceScale)
	e.plugins.dispatch(EventPriceDomainChanged)
	return nil
}

// autoscalePrice fits the domain to the data. Candles take priority over
// points; visibleOnly restricts to the visible window, falling back to a
// no-op when the window is empty. Margins configured on the scale keep
// visual breathing room, so the raw extrema become the domain directly.
func (e *Engine) autoscalePrice(visibleOnly bool) bool {
	min, max, ok := e.autoscaleExtrema(visibleOnly)
	if !ok {
		return false
	}
	if min == max {
		pad := math.Max(math.Abs(min)*0.5, 0.5)
		min -= pad
		max += pad
	}
	if e.priceScale.Mode() == core.PriceScaleLog && min <= 0 {
		return false
	}
	if err := e.SetPriceDomain(min, max); err != nil {
		return false
	}
	return true
}

func (e *Engine) autoscaleExtrema(visibleOnly bool) (float64, float64, bool) {
	candles := e.candles
	points := e.points
	if visibleOnly {
		start, end := e.timeScale.VisibleRange()
		candles = core.VisibleCandles(candles, start, end)
		points = core.VisiblePoints(points, start, end)
	}
	if len(candles) > 0 {
		min, max := math.Inf(1), math.Inf(-1)
		for _, b := range candles {
			min = math.Min(min, b.Low)
			max = math.Max(max, b.High)
		}
		return min, max, true
	}
	if len(points) > 0 {
		min, max := math.Inf(1), math.Inf(-1)
		for _, p := range points {
			min = math.Min(min, p.Value)
			max = math.Max(max, p.Value)
		}
		return min, max, true
	}
	return 0, 0, false
}

// AutoscalePrice fits the price domain to all data; reports whether the
// domain changed.
func (e *Engine) AutoscalePrice() bool { return e.autoscalePrice(false) }

// AutoscalePriceToVisible fits the domain to the visible window only.
func (e *Engine) AutoscalePriceToVisible() bool { return e.autoscalePrice(true) }

// AxisDragScalePrice rescales the price domain around the anchor pixel's
// price. factor = (1 + stepRatio)^(dy/120): dragging down (positive dy)
// zooms out. Gated by interaction input; a closed gate returns 1.0 without
// validating.
func (e *Engine) AxisDragScalePrice(dy, anchorY, stepRatio, minSpanAbs float64) (float64, error) {
	if !e.behavior.InteractionInput.AllowsAxisDragScale() {
		return 1, nil
	}
	if math.IsNaN(dy) || math.IsInf(dy, 0) || math.IsNaN(anchorY) || math.IsInf(anchorY, 0) {
		return 1, fmt.Errorf("engine: axis drag inputs must be finite: %w", core.ErrInvalidData)
	}
	if math.IsNaN(stepRatio) || stepRatio <= 0 || math.IsNaN(minSpanAbs) || minSpanAbs <= 0 {
		return 1, fmt.Errorf("engine: axis drag ratio and min span must be positive: %w", core.ErrInvalidData)
	}
	factor := math.Pow(1+stepRatio, dy/120)
	anchorPrice, err := e.priceScale.PixelToPrice(anchorY, e.viewport)
	if err != nil {
		return 1, err
	}
	min, max := e.priceScale.Domain()
	span := (max - min) * factor
	if span < minSpanAbs {
		span = minSpanAbs
	}
	fraction := (anchorPrice - min) / (max - min)
	newMin := anchorPrice - fraction*span
	newMax := newMin + span
	if err := e.SetPriceDomain(newMin, newMax); err != nil {
		return 1, err
	}
	return factor, nil
}

// AxisDragPanPrice shifts the price domain so the price under the pointer
// follows the drag. Linear modes shift additively; Log multiplies the
// domain by the anchor ratio and requires positive anchors.
func (e *Engine) AxisDragPanPrice(fromY, toY float64) error {
	if !e.behavior.InteractionInput.AllowsAxisDragScale() {
		return nil
	}
	if math.IsNaN(fromY) || math.IsInf(fromY, 0) || math.IsNaN(toY) || math.IsInf(toY, 0) {
		return fmt.Errorf("engine: axis drag pan pixels must be finite: %w", core.ErrInvalidData)
	}
	fromPrice, err := e.priceScale.PixelToPrice(fromY, e.viewport)
	if err != nil {
		return err
	}
	toPrice, err := e.priceScale.PixelToPrice(toY, e.viewport)
	if err != nil {
		return err
	}
	min, max := e.priceScale.Domain()
	if e.priceScale.Mode() == core.PriceScaleLog {
		if fromPrice <= 0 || toPrice <= 0 {
			return fmt.Errorf("engine: log axis pan needs positive anchor prices: %w", core.ErrInvalidData)
		}
		ratio := fromPrice / toPrice
		return e.SetPriceDomain(min*ratio, max*ratio)
	}
	delta := fromPrice - toPrice
	return e.SetPriceDomain(min+delta, max+delta)
}

// AxisDoubleClickResetPriceScale autoscales from all candles, else all
// points; no-op with no data. Reports whether the domain changed. Gated.
func (e *Engine) AxisDoubleClickResetPriceScale() bool {
	if !e.behavior.InteractionInput.AllowsAxisDoubleClickReset() {
		return false
	}
	return e.autoscalePrice(false)
}

// ResolveTransformedBase resolves the base price for Percentage and
// IndexedTo100 display: an explicit finite non-zero base wins; otherwise
// the dynamic source picks a sample (candles beat points at equal time;
// visible variants fall back to all data when the window is empty). A base
// that resolves to zero or non-finite degrades to 1.
func (e *Engine) ResolveTransformedBase() float64 {
	b := e.behavior.TransformedBase
	if b.ExplicitBasePrice != nil {
		v := *b.ExplicitBasePrice
		if !math.IsNaN(v) && !math.IsInf(v, 0) && v != 0 {
			return v
		}
	}
	var candidate *float64
	switch b.DynamicSource {
	case BaseSourceDomainStart:
		min, _ := e.priceScale.Domain()
		candidate = &min
	case BaseSourceFirstData:
		candidate = e.baseCandidate(e.points, e.candles, true)
	case BaseSourceLastData:
		candidate = e.baseCandidate(e.points, e.candles, false)
	case BaseSourceFirstVisibleData:
		start, end := e.timeScale.VisibleRange()
		candidate = e.baseCandidate(core.VisiblePoints(e.points, start, end), core.VisibleCandles(e.candles, start, end), true)
		if candidate == nil {
			candidate = e.baseCandidate(e.points, e.candles, true)
		}
	case BaseSourceLastVisibleData:
		start, end := e.timeScale.VisibleRange()
		candidate = e.baseCandidate(core.VisiblePoints(e.points, start, end), core.VisibleCandles(e.candles, start, end), false)
		if candidate == nil {
			candidate = e.baseCandidate(e.points, e.candles, false)
		}
	}
	if candidate == nil {
		min, _ := e.priceScale.Domain()
		candidate = &min
	}
	v := *candidate
	if math.IsNaN(v) || math.IsInf(v, 0) || v == 0 {
		return 1
	}
	return v
}

// baseCandidate picks the first or last usable sample value. A candle beats
// a point carrying the same time.
func (e *Engine) baseCandidate(points []core.DataPoint, candles []core.OhlcBar, first bool) *float64 {
	var pointTime, pointValue float64
	havePoint := false
	for i := range points {
		p := points[i]
		if !first {
			p = points[len(points)-1-i]
		}
		if v := p.Value; !math.IsNaN(v) && !math.IsInf(v, 0) && v != 0 {
			pointTime, pointValue, havePoint = p.Time, v, true
			break
		}
	}
	var candleTime, candleValue float64
	haveCandle := false
	for i := range candles {
		b := candles[i]
		if !first {
			b = candles[len(candles)-1-i]
		}
		if v := b.Close; !math.IsNaN(v) && !math.IsInf(v, 0) && v != 0 {
			candleTime, candleValue, haveCandle = b.Time, v, true
			break
		}
	}
	switch {
	case havePoint && haveCandle:
		if first {
			if candleTime <= pointTime {
				return &candleValue
			}
			return &pointValue
		}
		if candleTime >= pointTime {
			return &candleValue
		}
		return &pointValue
	case haveCandle:
		return &candleValue
	case havePoint:
		return &pointValue
	default:
		return nil
	}
}
