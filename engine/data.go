package engine

import (
	"fmt"
	"math"

	"github.com/quantatlas/chartengine/core"
)

// SetData replaces the point series. Input is canonicalized (non-finite
// samples dropped, sorted, duplicate times collapse to the last) and the
// full time range grows to cover the new samples. Realtime follow and
// autoscale run per behavior.
func (e *Engine) SetData(points []core.DataPoint) error {
	canonical := core.CanonicalizePoints(points)
	_, prevEnd := e.timeScale.FullRange()
	e.points = canonical
	e.absorbDataTimes(prevEnd)
	e.invalidation.Mark(InvalidateSeries)
	if e.behavior.PriceRealtime.AutoscaleOnDataSet {
		e.autoscalePrice(false)
	}
	e.logger.Debug("data set", "points", len(canonical))
	e.plugins.dispatch(EventDataSet)
	return nil
}

// SetCandles replaces the OHLC series. Invalid bars are dropped during
// canonicalization; per-bar style overrides for vanished times are pruned.
func (e *Engine) SetCandles(bars []core.OhlcBar) error {
	canonical := core.CanonicalizeCandles(bars)
	_, prevEnd := e.timeScale.FullRange()
	e.candles = canonical
	e.pruneCandleStyles()
	e.absorbDataTimes(prevEnd)
	e.invalidation.Mark(InvalidateSeries)
	if e.behavior.PriceRealtime.AutoscaleOnDataSet {
		e.autoscalePrice(false)
	}
	e.logger.Debug("candles set", "bars", len(canonical))
	e.plugins.dispatch(EventDataSet)
	return nil
}

// SetStyledCandles replaces the OHLC series together with per-bar style
// overrides.
func (e *Engine) SetStyledCandles(bars []StyledCandle) error {
	raw := make([]core.OhlcBar, len(bars))
	for i, b := range bars {
		raw[i] = b.Bar
	}
	canonical := core.CanonicalizeCandles(raw)
	_, prevEnd := e.timeScale.FullRange()
	e.candles = canonical
	e.candleStyles = make(map[float64]CandleStyleOverride)
	for _, b := range bars {
		if b.Style != nil {
			e.candleStyles[b.Bar.Time] = *b.Style
		}
	}
	e.pruneCandleStyles()
	e.absorbDataTimes(prevEnd)
	e.invalidation.Mark(InvalidateSeries)
	if e.behavior.PriceRealtime.AutoscaleOnDataSet {
		e.autoscalePrice(false)
	}
	e.plugins.dispatch(EventDataSet)
	return nil
}

// AppendPoint adds one sample; it must not precede the current last time.
func (e *Engine) AppendPoint(p core.DataPoint) error {
	if !p.IsFinite() {
		return fmt.Errorf("engine: append point (%v, %v) must be finite: %w", p.Time, p.Value, core.ErrInvalidData)
	}
	if n := len(e.points); n > 0 && p.Time < e.points[n-1].Time {
		return fmt.Errorf("engine: append point time %v precedes last %v: %w", p.Time, e.points[n-1].Time, core.ErrInvalidData)
	}
	return e.applyPointTail(p)
}

// UpdatePoint applies realtime update semantics: append on empty or
// strictly greater time, replace at equal time, fail when out of order.
func (e *Engine) UpdatePoint(p core.DataPoint) error {
	if !p.IsFinite() {
		return fmt.Errorf("engine: update point (%v, %v) must be finite: %w", p.Time, p.Value, core.ErrInvalidData)
	}
	if n := len(e.points); n > 0 && p.Time < e.points[n-1].Time {
		return fmt.Errorf("engine: update point time %v is out of order (last %v): %w", p.Time, e.points[n-1].Time, core.ErrInvalidData)
	}
	return e.applyPointTail(p)
}

func (e *Engine) applyPointTail(p core.DataPoint) error {
	_, prevEnd := e.timeScale.FullRange()
	if n := len(e.points); n > 0 && e.points[n-1].Time == p.Time {
		e.points[n-1] = p
	} else {
		e.points = append(e.points, p)
	}
	e.absorbDataTimes(prevEnd)
	e.invalidation.Mark(InvalidateSeries)
	if e.behavior.PriceRealtime.AutoscaleOnDataUpdate {
		e.autoscalePrice(false)
	}
	e.plugins.dispatch(EventDataUpdated)
	return nil
}

// AppendCandle adds one bar; it must be valid and not precede the last.
func (e *Engine) AppendCandle(b core.OhlcBar) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if n := len(e.candles); n > 0 && b.Time < e.candles[n-1].Time {
		return fmt.Errorf("engine: append candle time %v precedes last %v: %w", b.Time, e.candles[n-1].Time, core.ErrInvalidData)
	}
	return e.applyCandleTail(b, nil)
}

// UpdateCandle applies realtime update semantics to the OHLC series.
func (e *Engine) UpdateCandle(b core.OhlcBar) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if n := len(e.candles); n > 0 && b.Time < e.candles[n-1].Time {
		return fmt.Errorf("engine: update candle time %v is out of order (last %v): %w", b.Time, e.candles[n-1].Time, core.ErrInvalidData)
	}
	return e.applyCandleTail(b, nil)
}

// AppendStyledCandle is AppendCandle carrying a per-bar style override.
func (e *Engine) AppendStyledCandle(c StyledCandle) error {
	if err := c.Bar.Validate(); err != nil {
		return err
	}
	if n := len(e.candles); n > 0 && c.Bar.Time < e.candles[n-1].Time {
		return fmt.Errorf("engine: append candle time %v precedes last %v: %w", c.Bar.Time, e.candles[n-1].Time, core.ErrInvalidData)
	}
	return e.applyCandleTail(c.Bar, c.Style)
}

// UpdateStyledCandle is UpdateCandle carrying a per-bar style override.
func (e *Engine) UpdateStyledCandle(c StyledCandle) error {
	if err := c.Bar.Validate(); err != nil {
		return err
	}
	if n := len(e.candles); n > 0 && c.Bar.Time < e.candles[n-1].Time {
		return fmt.Errorf("engine: update candle time %v is out of order (last %v): %w", c.Bar.Time, e.candles[n-1].Time, core.ErrInvalidData)
	}
	return e.applyCandleTail(c.Bar, c.Style)
}

func (e *Engine) applyCandleTail(b core.OhlcBar, style *CandleStyleOverride) error {
	_, prevEnd := e.timeScale.FullRange()
	if n := len(e.candles); n > 0 && e.candles[n-1].Time == b.Time {
		e.candles[n-1] = b
	} else {
		e.candles = append(e.candles, b)
	}
	if style != nil {
		e.candleStyles[b.Time] = *style
	}
	e.absorbDataTimes(prevEnd)
	e.invalidation.Mark(InvalidateSeries)
	if e.behavior.PriceRealtime.AutoscaleOnDataUpdate {
		e.autoscalePrice(false)
	}
	e.plugins.dispatch(EventDataUpdated)
	return nil
}

func (e *Engine) pruneCandleStyles() {
	if len(e.candleStyles) == 0 {
		return
	}
	present := make(map[float64]struct{}, len(e.candles))
	for _, b := range e.candles {
		present[b.Time] = struct{}{}
	}
	for tm := range e.candleStyles {
		if _, ok := present[tm]; !ok {
			delete(e.candleStyles, tm)
		}
	}
}

// absorbDataTimes widens the full range to cover every sample and applies
// the realtime append-follow policy when the right end moved past prevEnd.
func (e *Engine) absorbDataTimes(prevEnd float64) {
	first, okFirst := e.firstSampleTime()
	last, okLast := e.lastSampleTime()
	if okFirst {
		_, _ = e.timeScale.IncludeTimeInFullRange(first)
	}
	if !okLast {
		return
	}
	grew, _ := e.timeScale.IncludeTimeInFullRange(last)
	if !grew || last <= prevEnd {
		return
	}
	e.invalidation.Mark(InvalidateTimeScale)
	if !e.behavior.RealtimeAppend.PreserveRightEdgeOnAppend {
		return
	}
	step := e.referenceStep()
	tolerance := DefaultSnapToleranceRatio + e.behavior.RealtimeAppend.RightEdgeToleranceBars*step
	_, visEnd := e.timeScale.VisibleRange()
	if math.Abs(visEnd-prevEnd) > tolerance {
		return
	}
	shift := last - visEnd
	_ = e.timeScale.PanVisibleBy(shift)
	e.timeScale.ClampVisibleToFullEdges(e.behavior.Edge.FixLeftEdge, e.behavior.Edge.FixRightEdge)
	e.invalidation.Mark(InvalidateTimeScale)
	if e.behavior.PriceRealtime.AutoscaleOnTimeRangeChange {
		e.autoscalePrice(true)
	}
	e.plugins.dispatch(EventTimeRangeChanged)
}
