package core

import "fmt"

// ExpandVisibleWindow widens (start, end) symmetrically by ratio × span on
// each side. Ratio must be finite and ≥ 0; ratio 0 returns the input.
func ExpandVisibleWindow(start, end, ratio float64) (float64, float64, error) {
	if err := validateRange("visible window", start, end); err != nil {
		return 0, 0, err
	}
	if !isFinite(ratio) || ratio < 0 {
		return 0, 0, fmt.Errorf("core: overscan ratio %v must be finite and >= 0: %w", ratio, ErrInvalidData)
	}
	pad := (end - start) * ratio
	return start - pad, end + pad, nil
}

// VisiblePoints filters canonical points to time ∈ [start, end].
// The input slice is not modified; output preserves order.
func VisiblePoints(points []DataPoint, start, end float64) []DataPoint {
	out := make([]DataPoint, 0, len(points))
	for _, p := range points {
		if p.Time >= start && p.Time <= end {
			out = append(out, p)
		}
	}
	return out
}

// VisibleCandles filters canonical candles to time ∈ [start, end].
func VisibleCandles(bars []OhlcBar, start, end float64) []OhlcBar {
	out := make([]OhlcBar, 0, len(bars))
	for _, b := range bars {
		if b.Time >= start && b.Time <= end {
			out = append(out, b)
		}
	}
	return out
}
