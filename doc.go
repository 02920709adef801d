// Package renderkit is a renderer support layer for fixed-function style
// 3D rendering.
//
// # Overview
//
// renderkit provides two things a frame renderer needs underneath its batch
// sorter and post-processing pipeline:
//
//   - Render states: tiny immutable values, one per axis of GPU state
//     (blending, alpha test, depth test, culling, write masks, fog, ...),
//     that compare by value. A batch sorter keys draw groups by them and
//     only brackets a group with Begin/End when the state actually changes.
//   - Composite render targets: a pair of equally-sized textures ("main"
//     and "alt") that multi-pass pipelines ping-pong between, reading one
//     pass's output while writing the next.
//
// # Architecture
//
//	            batch sorter          post-processing pipeline
//	                 │                           │
//	                 ▼                           ▼
//	        renderkit/state               renderkit/render
//	   (State, Catalog, Set, Tracker)  (CompositeTarget, Builder)
//	                 │                           │
//	                 └─────────────┬─────────────┘
//	                               ▼
//	                    renderkit/gpucore.Backend
//	                               │
//	        ┌──────────────────────┼──────────────────────┐
//	        ▼                      ▼                      ▼
//	backend/recording        backend/cached         backend/native
//	(in-memory model)     (redundant-call skip)      (gogpu/wgpu hal)
//
// # Threading
//
// Everything except [SetLogger] and the backend registry runs on the thread
// that owns the graphics context. There is no internal locking.
//
// # Logging
//
// renderkit is silent by default. Call [SetLogger] to route diagnostics to a
// [log/slog] logger.
package renderkit

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"
)
