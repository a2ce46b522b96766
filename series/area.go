package series

import (
	"fmt"
	"math"

	"github.com/quantatlas/chartengine/core"
)

// ProjectArea projects a polyline plus its closed fill polygon down to
// baselineValue. One sample still produces a (degenerate) polygon.
func ProjectArea(points []core.DataPoint, timeScale core.LinearScale, priceScale core.PriceScale, viewport core.Viewport, baselineValue float64) (AreaGeometry, error) {
	if len(points) == 0 {
		return AreaGeometry{}, nil
	}
	line, err := projectSamples(points, timeScale, priceScale, viewport)
	if err != nil {
		return AreaGeometry{}, err
	}
	baselineY, err := priceScale.PriceToPixel(baselineValue, viewport)
	if err != nil {
		return AreaGeometry{}, fmt.Errorf("series: projecting baseline %v: %w", baselineValue, err)
	}
	fill := closeFillPolygon(line, baselineY)
	return AreaGeometry{Line: line, Fill: fill}, nil
}

// ProjectBaseline projects an area split at the baseline into an above
// polygon (y clamped to ≤ baselineY) and a below polygon (y clamped to
// ≥ baselineY).
func ProjectBaseline(points []core.DataPoint, timeScale core.LinearScale, priceScale core.PriceScale, viewport core.Viewport, baselineValue float64) (BaselineGeometry, error) {
	if len(points) == 0 {
		return BaselineGeometry{}, nil
	}
	line, err := projectSamples(points, timeScale, priceScale, viewport)
	if err != nil {
		return BaselineGeometry{}, err
	}
	baselineY, err := priceScale.PriceToPixel(baselineValue, viewport)
	if err != nil {
		return BaselineGeometry{}, fmt.Errorf("series: projecting baseline %v: %w", baselineValue, err)
	}
	fill := closeFillPolygon(line, baselineY)
	above := make([]PixelPoint, len(fill))
	below := make([]PixelPoint, len(fill))
	for i, v := range fill {
		above[i] = PixelPoint{X: v.X, Y: math.Min(v.Y, baselineY)}
		below[i] = PixelPoint{X: v.X, Y: math.Max(v.Y, baselineY)}
	}
	return BaselineGeometry{Line: line, Above: above, Below: below, BaselineY: baselineY}, nil
}

// closeFillPolygon closes a polyline into a fill polygon anchored at the
// baseline: baseline-start, line…, baseline-end, baseline-start.
func closeFillPolygon(line []PixelPoint, baselineY float64) []PixelPoint {
	fill := make([]PixelPoint, 0, len(line)+3)
	first := PixelPoint{X: line[0].X, Y: baselineY}
	fill = append(fill, first)
	fill = append(fill, line...)
	fill = append(fill, PixelPoint{X: line[len(line)-1].X, Y: baselineY})
	fill = append(fill, first)
	return fill
}
