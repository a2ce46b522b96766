// Package axis selects tick positions and formats axis labels
// deterministically.
//
// What:
//
//   - TickCount / EvenTicks / FilterTicksByMinSpacing — density selection
//     with pixel-spacing guarantees (time: target 72 px, minimum 56 px;
//     price: target 26 px, minimum 22 px).
//   - Time label policies: fixed-precision logical decimals, explicit UTC
//     date-time, or span-adaptive UTC buckets, with locale, fixed-offset
//     timezone, and optional trading-session envelope.
//   - Price label policies: fixed decimals, min-move snapping with optional
//     trailing-zero trimming, or adaptive precision from the tick step,
//     under Normal, Percentage, or IndexedTo100 display modes.
//   - Bounded label caches with hit/miss/size statistics.
//
// Determinism: every function here is pure; the caches are plain size-capped
// maps cleared wholesale on overflow, so repeated builds with identical
// state produce identical label sets.
package axis
