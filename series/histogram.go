package series

import (
	"fmt"
	"math"

	"github.com/quantatlas/chartengine/core"
)

// ProjectHistogram projects one column per sample from the value down to
// baselineValue. barWidthPx must be finite and > 0.
func ProjectHistogram(points []core.DataPoint, timeScale core.LinearScale, priceScale core.PriceScale, viewport core.Viewport, baselineValue, barWidthPx float64) (HistogramGeometry, error) {
	if err := validateWidth("histogram bar width", barWidthPx); err != nil {
		return HistogramGeometry{}, err
	}
	if len(points) == 0 {
		return HistogramGeometry{}, nil
	}
	baselineY, err := priceScale.PriceToPixel(baselineValue, viewport)
	if err != nil {
		return HistogramGeometry{}, fmt.Errorf("series: projecting baseline %v: %w", baselineValue, err)
	}
	half := barWidthPx / 2
	columns := make([]HistogramColumn, 0, len(points))
	for _, p := range points {
		x, err := timeScale.DomainToPixel(p.Time, viewport.Width)
		if err != nil {
			return HistogramGeometry{}, fmt.Errorf("series: projecting time %v: %w", p.Time, err)
		}
		y, err := priceScale.PriceToPixel(p.Value, viewport)
		if err != nil {
			return HistogramGeometry{}, fmt.Errorf("series: projecting value %v: %w", p.Value, err)
		}
		columns = append(columns, HistogramColumn{
			XLeft:   x - half,
			XCenter: x,
			XRight:  x + half,
			YTop:    math.Min(y, baselineY),
			YBottom: math.Max(y, baselineY),
		})
	}
	return HistogramGeometry{Columns: columns, BaselineY: baselineY}, nil
}

func validateWidth(what string, widthPx float64) error {
	if math.IsNaN(widthPx) || math.IsInf(widthPx, 0) || widthPx <= 0 {
		return fmt.Errorf("series: %s %v must be finite and > 0: %w", what, widthPx, core.ErrInvalidData)
	}
	return nil
}
