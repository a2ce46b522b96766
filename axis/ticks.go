package axis

import "math"

// Pixel-density constants for tick selection.
const (
	// TimeTargetSpacingPx is the preferred gap between time-axis ticks.
	TimeTargetSpacingPx = 72.0
	// TimeMinSpacingPx is the hard lower bound between time-axis ticks.
	TimeMinSpacingPx = 56.0
	// PriceTargetSpacingPx is the preferred gap between price-axis ticks.
	PriceTargetSpacingPx = 26.0
	// PriceMinSpacingPx is the hard lower bound between price-axis ticks.
	PriceMinSpacingPx = 22.0
)

// TickCount derives how many ticks fit an axis of spanPx pixels:
// clamp(⌊spanPx/targetPx⌋ + 1, minTicks, maxTicks). Non-finite inputs
// degrade to minTicks.
func TickCount(spanPx, targetPx float64, minTicks, maxTicks int) int {
	if minTicks > maxTicks {
		minTicks, maxTicks = maxTicks, minTicks
	}
	if math.IsNaN(spanPx) || math.IsInf(spanPx, 0) || math.IsNaN(targetPx) || math.IsInf(targetPx, 0) || targetPx <= 0 {
		return minTicks
	}
	n := int(math.Floor(spanPx/targetPx)) + 1
	if n < minTicks {
		return minTicks
	}
	if n > maxTicks {
		return maxTicks
	}
	return n
}

// EvenTicks returns n values evenly spaced over [start, end] inclusive.
// n < 2 yields just the start.
func EvenTicks(start, end float64, n int) []float64 {
	if n < 1 {
		return nil
	}
	if n == 1 {
		return []float64{start}
	}
	out := make([]float64, n)
	step := (end - start) / float64(n-1)
	for i := 0; i < n; i++ {
		out[i] = start + float64(i)*step
	}
	out[n-1] = end
	return out
}

// Tick is a candidate tick: its value and its resolved pixel position.
type Tick struct {
	Value float64
	Px    float64
}

// FilterTicksByMinSpacing greedily admits ticks left to right while keeping
// at least minSpacingPx between admitted neighbors. The final candidate
// always survives: when the greedy pass ends on a different tick, that tick
// is replaced by the true last so the axis edge stays labeled.
func FilterTicksByMinSpacing(candidates []Tick, minSpacingPx float64) []Tick {
	if len(candidates) == 0 {
		return nil
	}
	selected := make([]Tick, 0, len(candidates))
	selected = append(selected, candidates[0])
	for _, c := range candidates[1:] {
		if c.Px-selected[len(selected)-1].Px >= minSpacingPx {
			selected = append(selected, c)
		}
	}
	last := candidates[len(candidates)-1]
	if selected[len(selected)-1] != last {
		selected[len(selected)-1] = last
	}
	return selected
}

// TickStepHint returns the smallest positive absolute delta between
// adjacent values, or 0 when none exists. Works for ascending and
// descending sequences alike.
func TickStepHint(values []float64) float64 {
	best := 0.0
	for i := 1; i < len(values); i++ {
		d := math.Abs(values[i] - values[i-1])
		if d > 0 && (best == 0 || d < best) {
			best = d
		}
	}
	return best
}
