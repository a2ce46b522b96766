package engine

import (
	"github.com/quantatlas/chartengine/core"
	"github.com/quantatlas/chartengine/series"
)

// visibleScale builds the linear time scale over the visible range.
func (e *Engine) visibleScale() (core.LinearScale, error) {
	start, end := e.timeScale.VisibleRange()
	return core.NewLinearScale(start, end)
}

// windowedPoints filters the point series to the visible range widened by
// overscanRatio on each side.
func (e *Engine) windowedPoints(overscanRatio float64) ([]core.DataPoint, error) {
	start, end := e.timeScale.VisibleRange()
	start, end, err := core.ExpandVisibleWindow(start, end, overscanRatio)
	if err != nil {
		return nil, err
	}
	return core.VisiblePoints(e.points, start, end), nil
}

// windowedCandles filters the OHLC series likewise.
func (e *Engine) windowedCandles(overscanRatio float64) ([]core.OhlcBar, error) {
	start, end := e.timeScale.VisibleRange()
	start, end, err := core.ExpandVisibleWindow(start, end, overscanRatio)
	if err != nil {
		return nil, err
	}
	return core.VisibleCandles(e.candles, start, end), nil
}

// ProjectLine projects the full point series as a polyline.
func (e *Engine) ProjectLine() (series.LineGeometry, error) {
	scale, err := e.visibleScale()
	if err != nil {
		return series.LineGeometry{}, err
	}
	return series.ProjectLine(e.points, scale, e.priceScale, e.viewport)
}

// ProjectVisibleLine projects only the visible samples.
func (e *Engine) ProjectVisibleLine() (series.LineGeometry, error) {
	return e.ProjectVisibleLineWithOverscan(0)
}

// ProjectVisibleLineWithOverscan widens the visible filter by ratio on
// each side so partially off-screen segments survive.
func (e *Engine) ProjectVisibleLineWithOverscan(ratio float64) (series.LineGeometry, error) {
	points, err := e.windowedPoints(ratio)
	if err != nil {
		return series.LineGeometry{}, err
	}
	scale, err := e.visibleScale()
	if err != nil {
		return series.LineGeometry{}, err
	}
	return series.ProjectLine(points, scale, e.priceScale, e.viewport)
}

// ProjectArea projects the full point series as a filled area.
func (e *Engine) ProjectArea(baselineValue float64) (series.AreaGeometry, error) {
	scale, err := e.visibleScale()
	if err != nil {
		return series.AreaGeometry{}, err
	}
	return series.ProjectArea(e.points, scale, e.priceScale, e.viewport, baselineValue)
}

// ProjectVisibleArea projects only the visible samples.
func (e *Engine) ProjectVisibleArea(baselineValue float64) (series.AreaGeometry, error) {
	return e.ProjectVisibleAreaWithOverscan(baselineValue, 0)
}

// ProjectVisibleAreaWithOverscan widens the filter by ratio.
func (e *Engine) ProjectVisibleAreaWithOverscan(baselineValue, ratio float64) (series.AreaGeometry, error) {
	points, err := e.windowedPoints(ratio)
	if err != nil {
		return series.AreaGeometry{}, err
	}
	scale, err := e.visibleScale()
	if err != nil {
		return series.AreaGeometry{}, err
	}
	return series.ProjectArea(points, scale, e.priceScale, e.viewport, baselineValue)
}

// ProjectBaseline projects the full point series split around a baseline.
func (e *Engine) ProjectBaseline(baselineValue float64) (series.BaselineGeometry, error) {
	scale, err := e.visibleScale()
	if err != nil {
		return series.BaselineGeometry{}, err
	}
	return series.ProjectBaseline(e.points, scale, e.priceScale, e.viewport, baselineValue)
}

// ProjectVisibleBaseline projects only the visible samples.
func (e *Engine) ProjectVisibleBaseline(baselineValue float64) (series.BaselineGeometry, error) {
	return e.ProjectVisibleBaselineWithOverscan(baselineValue, 0)
}

// ProjectVisibleBaselineWithOverscan widens the filter by ratio.
func (e *Engine) ProjectVisibleBaselineWithOverscan(baselineValue, ratio float64) (series.BaselineGeometry, error) {
	points, err := e.windowedPoints(ratio)
	if err != nil {
		return series.BaselineGeometry{}, err
	}
	scale, err := e.visibleScale()
	if err != nil {
		return series.BaselineGeometry{}, err
	}
	return series.ProjectBaseline(points, scale, e.priceScale, e.viewport, baselineValue)
}

// ProjectHistogram projects the full point series as histogram columns.
func (e *Engine) ProjectHistogram(baselineValue, barWidthPx float64) (series.HistogramGeometry, error) {
	scale, err := e.visibleScale()
	if err != nil {
		return series.HistogramGeometry{}, err
	}
	return series.ProjectHistogram(e.points, scale, e.priceScale, e.viewport, baselineValue, barWidthPx)
}

// ProjectVisibleHistogram projects only the visible samples.
func (e *Engine) ProjectVisibleHistogram(baselineValue, barWidthPx float64) (series.HistogramGeometry, error) {
	return e.ProjectVisibleHistogramWithOverscan(baselineValue, barWidthPx, 0)
}

// ProjectVisibleHistogramWithOverscan widens the filter by ratio.
func (e *Engine) ProjectVisibleHistogramWithOverscan(baselineValue, barWidthPx, ratio float64) (series.HistogramGeometry, error) {
	points, err := e.windowedPoints(ratio)
	if err != nil {
		return series.HistogramGeometry{}, err
	}
	scale, err := e.visibleScale()
	if err != nil {
		return series.HistogramGeometry{}, err
	}
	return series.ProjectHistogram(points, scale, e.priceScale, e.viewport, baselineValue, barWidthPx)
}

// ProjectOhlcBars projects the full OHLC series as open/close tick bars.
func (e *Engine) ProjectOhlcBars(tickWidthPx float64) (series.BarGeometry, error) {
	scale, err := e.visibleScale()
	if err != nil {
		return series.BarGeometry{}, err
	}
	return series.ProjectBars(e.candles, scale, e.priceScale, e.viewport, tickWidthPx)
}

// ProjectVisibleOhlcBars projects only the visible bars.
func (e *Engine) ProjectVisibleOhlcBars(tickWidthPx float64) (series.BarGeometry, error) {
	return e.ProjectVisibleOhlcBarsWithOverscan(tickWidthPx, 0)
}

// ProjectVisibleOhlcBarsWithOverscan widens the filter by ratio.
func (e *Engine) ProjectVisibleOhlcBarsWithOverscan(tickWidthPx, ratio float64) (series.BarGeometry, error) {
	bars, err := e.windowedCandles(ratio)
	if err != nil {
		return series.BarGeometry{}, err
	}
	scale, err := e.visibleScale()
	if err != nil {
		return series.BarGeometry{}, err
	}
	return series.ProjectBars(bars, scale, e.priceScale, e.viewport, tickWidthPx)
}

// ProjectCandles projects the full OHLC series as candle geometry.
func (e *Engine) ProjectCandles(bodyWidthPx float64) ([]series.CandleGeometry, error) {
	scale, err := e.visibleScale()
	if err != nil {
		return nil, err
	}
	return series.ProjectCandles(e.candles, scale, e.priceScale, e.viewport, bodyWidthPx)
}

// ProjectVisibleCandles projects only the visible bars.
func (e *Engine) ProjectVisibleCandles(bodyWidthPx float64) ([]series.CandleGeometry, error) {
	return e.ProjectVisibleCandlesWithOverscan(bodyWidthPx, 0)
}

// ProjectVisibleCandlesWithOverscan widens the filter by ratio.
func (e *Engine) ProjectVisibleCandlesWithOverscan(bodyWidthPx, ratio float64) ([]series.CandleGeometry, error) {
	bars, err := e.windowedCandles(ratio)
	if err != nil {
		return nil, err
	}
	scale, err := e.visibleScale()
	if err != nil {
		return nil, err
	}
	return series.ProjectCandles(bars, scale, e.priceScale, e.viewport, bodyWidthPx)
}
