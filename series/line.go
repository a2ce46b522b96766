package series

import (
	"fmt"

	"github.com/quantatlas/chartengine/core"
)

// projectSamples maps canonical points into pixel vertices.
func projectSamples(points []core.DataPoint, timeScale core.LinearScale, priceScale core.PriceScale, viewport core.Viewport) ([]PixelPoint, error) {
	out := make([]PixelPoint, 0, len(points))
	for _, p := range points {
		x, err := timeScale.DomainToPixel(p.Time, viewport.Width)
		if err != nil {
			return nil, fmt.Errorf("series: projecting time %v: %w", p.Time, err)
		}
		y, err := priceScale.PriceToPixel(p.Value, viewport)
		if err != nil {
			return nil, fmt.Errorf("series: projecting value %v: %w", p.Value, err)
		}
		out = append(out, PixelPoint{X: x, Y: y})
	}
	return out, nil
}

// ProjectLine projects a polyline. Fewer than two samples yield the empty
// geometry.
func ProjectLine(points []core.DataPoint, timeScale core.LinearScale, priceScale core.PriceScale, viewport core.Viewport) (LineGeometry, error) {
	if len(points) < 2 {
		return LineGeometry{}, nil
	}
	vertices, err := projectSamples(points, timeScale, priceScale, viewport)
	if err != nil {
		return LineGeometry{}, err
	}
	return LineGeometry{Points: vertices}, nil
}
