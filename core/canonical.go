package core

import (
	"math"
	"sort"
)

// CanonicalizePoints returns a fresh slice holding only finite samples,
// sorted strictly ascending by time, with duplicate times collapsed to the
// last occurrence in input order.
// Complexity: O(n log n) time, O(n) memory.
func CanonicalizePoints(points []DataPoint) []DataPoint {
	kept := make([]DataPoint, 0, len(points))
	for _, p := range points {
		if p.IsFinite() {
			kept = append(kept, p)
		}
	}
	// Stable sort keeps input order inside equal-time runs so that
	// last-write-wins dedup below is well defined.
	sort.SliceStable(kept, func(i, j int) bool { return totalLess(kept[i].Time, kept[j].Time) })
	out := kept[:0]
	for _, p := range kept {
		if len(out) > 0 && out[len(out)-1].Time == p.Time {
			out[len(out)-1] = p
			continue
		}
		out = append(out, p)
	}
	result := make([]DataPoint, len(out))
	copy(result, out)
	return result
}

// CanonicalizeCandles is CanonicalizePoints for OHLC series: bars violating
// the OHLC invariant are dropped alongside non-finite ones.
// Complexity: O(n log n) time, O(n) memory.
func CanonicalizeCandles(bars []OhlcBar) []OhlcBar {
	kept := make([]OhlcBar, 0, len(bars))
	for _, b := range bars {
		if b.IsValid() {
			kept = append(kept, b)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool { return totalLess(kept[i].Time, kept[j].Time) })
	out := kept[:0]
	for _, b := range kept {
		if len(out) > 0 && out[len(out)-1].Time == b.Time {
			out[len(out)-1] = b
			continue
		}
		out = append(out, b)
	}
	result := make([]OhlcBar, len(out))
	copy(result, out)
	return result
}

// totalLess is a total order over float64 (negative zero before positive
// zero, NaN ordered last). Canonical inputs never contain NaN, but the
// comparator stays total regardless.
func totalLess(a, b float64) bool {
	return totalOrderKey(a) < totalOrderKey(b)
}

// totalOrderKey maps a float64 to a uint64 whose natural ordering matches
// IEEE-754 total order.
func totalOrderKey(v float64) uint64 {
	bits := math.Float64bits(v)
	if bits>>63 == 1 {
		return ^bits
	}
	return bits | (1 << 63)
}
