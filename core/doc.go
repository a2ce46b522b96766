// Package core provides the value types and coordinate systems every other
// chartengine package builds on.
//
// What:
//
//   - Viewport, DataPoint, OhlcBar — validated value types.
//   - LinearScale — finite (start, end) interval mapped onto a pixel width.
//   - TimeScale — a full data range plus a visible sub-range with pan, zoom,
//     edge clamping, and bar-spacing derivation helpers.
//   - PriceScale — price domain with mode (Linear, Log, Percentage,
//     IndexedTo100), inversion, and top/bottom margin ratios.
//   - TimeIndexCoordinateSpace — the bar-indexed pixel mapping used by
//     lightweight-chart style navigation.
//   - Pane descriptors and vertical region layout.
//   - Canonicalization of point and OHLC series.
//
// Why:
//
//   - Every transform here is a pure, deterministic function: no global
//     state, no randomness, no clocks.
//   - Interaction reducers and frame building compose these primitives
//     without back-pointers; context travels by value.
//
// Conventions:
//
//   - Pixel x grows rightward, pixel y grows downward.
//   - All fallible constructors and mutators return wrapped sentinel
//     errors (ErrInvalidData, ErrUnsupported) matched via errors.Is.
//   - Non-finite float inputs are rejected at the boundary; internal code
//     may assume finiteness afterwards.
//
// Errors:
//
//   - ErrInvalidData: reversed or degenerate ranges, non-finite numerics,
//     OHLC violations, non-positive widths or spacings.
//   - ErrUnsupported: an operation that is meaningful but disallowed in the
//     current configuration (e.g. Log mode over a non-positive domain).
//   - ErrBackendFailure: reserved for renderer adapters.
package core
