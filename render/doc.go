// Package render defines the backend-agnostic drawing primitives, the flat
// and layered frame containers, and the renderer facade.
//
// What:
//
//   - Color, LineStrokeStyle, TextHAlign — shared style atoms.
//   - Line, Rect, Text — validated pixel-space primitives.
//   - Frame — the flat (viewport, lines, rects, texts) draw list.
//   - LayeredFrame — per-pane, per-layer primitive buckets in the canonical
//     Background → Grid → Series → Overlay → Crosshair → Axis order.
//   - Renderer — the facade a backend implements; NullRenderer counts
//     primitives for tests.
//
// Guarantees:
//
//   - Frame.Validate rejects any non-finite numeric field.
//   - LayeredFrame.Flatten preserves primitive counts and emission order
//     (panes in pane order, layers in canonical order).
//   - Remapping pane plot layers stretches y linearly and never touches the
//     Background or Axis layers.
package render
