package engine

import (
	"math"

	"github.com/quantatlas/chartengine/core"
)

// MapX maps a time into a pixel x over the visible range.
func (e *Engine) MapX(tm float64) (float64, error) {
	start, end := e.timeScale.VisibleRange()
	scale, err := core.NewLinearScale(start, end)
	if err != nil {
		return 0, err
	}
	return scale.DomainToPixel(tm, e.viewport.Width)
}

// PixelToX maps a pixel x back into a time.
func (e *Engine) PixelToX(px float64) (float64, error) {
	start, end := e.timeScale.VisibleRange()
	scale, err := core.NewLinearScale(start, end)
	if err != nil {
		return 0, err
	}
	return scale.PixelToDomain(px, e.viewport.Width)
}

// PriceToPixel maps a price into a pixel y under the active mode, margins,
// and inversion.
func (e *Engine) PriceToPixel(price float64) (float64, error) {
	return e.priceScale.PriceToPixel(price, e.viewport)
}

// PixelToPrice maps a pixel y back into a price.
func (e *Engine) PixelToPrice(py float64) (float64, error) {
	return e.priceScale.PixelToPrice(py, e.viewport)
}

// LogicalIndexToPixel maps a logical bar index into a pixel x through the
// derived time-index coordinate space.
func (e *Engine) LogicalIndexToPixel(index float64) (float64, error) {
	space, _, err := e.timeIndexSpace()
	if err != nil {
		return 0, err
	}
	return space.IndexToCoordinate(index), nil
}

// PixelToLogicalIndex maps a pixel x into a continuous logical index.
func (e *Engine) PixelToLogicalIndex(px float64) (float64, error) {
	space, _, err := e.timeIndexSpace()
	if err != nil {
		return 0, err
	}
	return space.CoordinateToLogicalIndex(px), nil
}

// PixelToLogicalIndexCeil maps a pixel x into the ceiling logical index.
func (e *Engine) PixelToLogicalIndexCeil(px float64) (float64, error) {
	space, _, err := e.timeIndexSpace()
	if err != nil {
		return 0, err
	}
	return space.CoordinateToIndexCeil(px), nil
}

// filledLogicalIndices returns the sorted logical indices carrying data.
// Candle times win ties against point times within 1e-12 so OHLC slots
// dominate mixed charts.
func (e *Engine) filledLogicalIndices(step float64) []float64 {
	indices := make([]float64, 0, len(e.points)+len(e.candles))
	for _, b := range e.candles {
		indices = append(indices, e.timeToLogicalIndex(b.Time, step))
	}
	for _, p := range e.points {
		idx := e.timeToLogicalIndex(p.Time, step)
		duplicate := false
		for _, existing := range indices[:len(e.candles)] {
			if math.Abs(existing-idx) <= 1e-12 {
				duplicate = true
				break
			}
		}
		if !duplicate {
			indices = append(indices, idx)
		}
	}
	sortFloat64s(indices)
	return indices
}

func sortFloat64s(v []float64) {
	// Insertion sort keeps this allocation-free; slot lists are small and
	// mostly sorted already.
	for i := 1; i < len(v); i++ {
		for j := i; j > 0 && v[j] < v[j-1]; j-- {
			v[j], v[j-1] = v[j-1], v[j]
		}
	}
}

// NearestFilledLogicalSlotAtPixel returns the logical index of the data
// slot nearest to the pixel, or false when no data exists. Equidistant
// candidates resolve to the later index.
func (e *Engine) NearestFilledLogicalSlotAtPixel(px float64) (float64, bool, error) {
	space, step, err := e.timeIndexSpace()
	if err != nil {
		return 0, false, err
	}
	indices := e.filledLogicalIndices(step)
	if len(indices) == 0 {
		return 0, false, nil
	}
	target := space.CoordinateToLogicalIndex(px)
	best := indices[0]
	bestDist := math.Abs(best - target)
	for _, idx := range indices[1:] {
		d := math.Abs(idx - target)
		if d < bestDist || (d == bestDist && idx > best) {
			best, bestDist = idx, d
		}
	}
	return best, true, nil
}

// NextFilledLogicalIndex returns the smallest data slot strictly greater
// than index, or false at the right edge.
func (e *Engine) NextFilledLogicalIndex(index float64) (float64, bool) {
	step := e.referenceStep()
	for _, idx := range e.filledLogicalIndices(step) {
		if idx > index+1e-12 {
			return idx, true
		}
	}
	return 0, false
}

// PrevFilledLogicalIndex returns the largest data slot strictly smaller
// than index, or false at the left edge.
func (e *Engine) PrevFilledLogicalIndex(index float64) (float64, bool) {
	step := e.referenceStep()
	indices := e.filledLogicalIndices(step)
	for i := len(indices) - 1; i >= 0; i-- {
		if indices[i] < index-1e-12 {
			return indices[i], true
		}
	}
	return 0, false
}
