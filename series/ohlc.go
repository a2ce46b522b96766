package series

import (
	"fmt"
	"math"

	"github.com/quantatlas/chartengine/core"
)

// ProjectBars projects OHLC bars: a vertical high/low line at the bar
// center, an open tick reaching tickWidthPx/2 to the left, and a close tick
// reaching tickWidthPx/2 to the right. tickWidthPx must be finite and > 0.
func ProjectBars(bars []core.OhlcBar, timeScale core.LinearScale, priceScale core.PriceScale, viewport core.Viewport, tickWidthPx float64) (BarGeometry, error) {
	if err := validateWidth("ohlc tick width", tickWidthPx); err != nil {
		return BarGeometry{}, err
	}
	if len(bars) == 0 {
		return BarGeometry{}, nil
	}
	halfTick := tickWidthPx / 2
	out := make([]OhlcBarGeometry, 0, len(bars))
	for _, b := range bars {
		centerX, highY, lowY, openY, closeY, err := projectBarAnchors(b, timeScale, priceScale, viewport)
		if err != nil {
			return BarGeometry{}, err
		}
		out = append(out, OhlcBarGeometry{
			CenterX: centerX,
			HighY:   highY,
			LowY:    lowY,
			OpenX:   centerX - halfTick,
			OpenY:   openY,
			CloseX:  centerX + halfTick,
			CloseY:  closeY,
		})
	}
	return BarGeometry{Bars: out}, nil
}

// ProjectCandles projects candlesticks with bodies of bodyWidthPx pixels.
// bodyWidthPx must be finite and > 0.
func ProjectCandles(bars []core.OhlcBar, timeScale core.LinearScale, priceScale core.PriceScale, viewport core.Viewport, bodyWidthPx float64) ([]CandleGeometry, error) {
	if err := validateWidth("candle body width", bodyWidthPx); err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, nil
	}
	half := bodyWidthPx / 2
	out := make([]CandleGeometry, 0, len(bars))
	for _, b := range bars {
		centerX, highY, lowY, openY, closeY, err := projectBarAnchors(b, timeScale, priceScale, viewport)
		if err != nil {
			return nil, err
		}
		out = append(out, CandleGeometry{
			Time:        b.Time,
			CenterX:     centerX,
			WickTopY:    highY,
			WickBottomY: lowY,
			BodyLeft:    centerX - half,
			BodyTop:     math.Min(openY, closeY),
			BodyRight:   centerX + half,
			BodyBottom:  math.Max(openY, closeY),
			IsBullish:   b.Close >= b.Open,
		})
	}
	return out, nil
}

func projectBarAnchors(b core.OhlcBar, timeScale core.LinearScale, priceScale core.PriceScale, viewport core.Viewport) (centerX, highY, lowY, openY, closeY float64, err error) {
	centerX, err = timeScale.DomainToPixel(b.Time, viewport.Width)
	if err != nil {
		return 0, 0, 0, 0, 0, fmt.Errorf("series: projecting bar time %v: %w", b.Time, err)
	}
	highY, err = priceScale.PriceToPixel(b.High, viewport)
	if err == nil {
		lowY, err = priceScale.PriceToPixel(b.Low, viewport)
	}
	if err == nil {
		openY, err = priceScale.PriceToPixel(b.Open, viewport)
	}
	if err == nil {
		closeY, err = priceScale.PriceToPixel(b.Close, viewport)
	}
	if err != nil {
		return 0, 0, 0, 0, 0, fmt.Errorf("series: projecting bar at t=%v: %w", b.Time, err)
	}
	return centerX, highY, lowY, openY, closeY, nil
}
