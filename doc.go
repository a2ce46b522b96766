// Package chartengine is a headless, deterministic financial chart engine:
// it maps time/price samples to 2D pixel primitives that any raster or
// vector backend can draw.
//
// 🚀 What is chartengine?
//
//	A pure-Go projection and layout pipeline for market data:
//		• Coordinate systems: linear time, bar-indexed time, linear/log/
//		  percentage/indexed-to-100 price scales with margins and inversion
//		• Series projectors: line, area, baseline, histogram, OHLC bars,
//		  candlesticks — all pure functions into pixel space
//		• Interaction: pan, wheel/pinch zoom, kinetic pan, axis dragging,
//		  crosshair with magnet snapping
//		• Axes: deterministic tick selection, adaptive labels, bounded caches
//		• Frames: layered per-pane primitive emission with a canonical
//		  Background→Grid→Series→Overlay→Crosshair→Axis order
//
// ✨ Why choose chartengine?
//
//   - Deterministic – identical state yields byte-identical frames
//   - Headless – no GUI toolkit, no GPU, no font shaping; just geometry
//   - Embeddable – single-threaded, host-driven, no internal timers
//   - Testable – every reducer is a plain function over explicit state
//
// Everything is organized under five packages:
//
//	core/   — value types, scales, time-index space, panes, windowing
//	series/ — per-series projectors producing pixel geometry
//	render/ — primitives, flat & layered frames, renderer facade
//	axis/   — tick selection, label policies, label caches
//	engine/ — the owning aggregate: model, behaviors, interaction,
//	          frame builder, snapshots, plugins
//
// Quick ASCII sketch of one frame:
//
//	┌────────────────────────────┬────┐
//	│  series + grid + crosshair │ $  │
//	├────────────────────────────┤axis│
//	│          time axis         │    │
//	└────────────────────────────┴────┘
//
// Dive into the package docs for formulas, invariants, and examples.
//
//	go get github.com/quantatlas/chartengine
package chartengine
