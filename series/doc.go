// Package series turns canonical samples into pixel-space geometry.
//
// What:
//
//   - ProjectLine       — polyline through (time, value) samples.
//   - ProjectArea       — polyline plus a closed fill polygon down to a baseline.
//   - ProjectBaseline   — above/below fill polygons split at a baseline value.
//   - ProjectHistogram  — columns from each value down to a baseline.
//   - ProjectBars       — OHLC bars with open/close ticks.
//   - ProjectCandles    — candle bodies plus wicks, bullish classification.
//
// Why:
//
//   - Projectors are pure: same samples, scales, and viewport always yield
//     the same geometry, which keeps frame building deterministic and easy
//     to test sample-by-sample.
//
// Guarantees:
//
//   - Empty or under-sized input yields the empty geometry, never an error
//     (a line needs at least two samples; everything else at least one).
//   - Every emitted coordinate is finite.
//   - Width parameters must be finite and > 0, otherwise ErrInvalidData.
//
// Complexity: each projector is O(n) over its sample count.
package series
