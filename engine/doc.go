// Package engine assembles the chart aggregate: canonical series, panes,
// behavior records, interaction reducers, the frame builder, and the
// renderer facade.
//
// 🚀 What
//
// Engine owns everything a host needs to drive a chart headlessly:
//
//   - data ingestion with canonicalization and atomic batch semantics;
//   - time navigation (pan, wheel, pinch, kinetic, axis drag, fit, reset)
//     with edge fixing, zoom limits, resize anchoring, and realtime
//     append follow;
//   - price scale control (modes, margins, inversion, autoscale, axis
//     drag, transformed-base resolution);
//   - a crosshair state machine with Hidden / Normal / Magnet snap;
//   - a layered render-frame builder with a canonical per-pane layer
//     stack, plus flat and pane-scoped frame shapes;
//   - JSON snapshots, plugin fan-out, and an invalidation mask.
//
// ✨ Why
//
// Hosts embed the engine behind their own event loop. Every entry point
// is synchronous and single-threaded; nothing blocks and nothing spawns.
// Kinetic pan is host-stepped via StepKineticPan.
//
// Errors
//
// Fallible operations return errors wrapping the sentinel set in the core
// package (core.ErrInvalidData, core.ErrUnsupported,
// core.ErrBackendFailure). On error the engine state is unchanged.
package engine
