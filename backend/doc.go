// Package backend provides the pluggable graphics backends renderkit runs on.
//
// Every backend implements [gpucore.Backend]. The package itself contains the
// registry and the in-memory recording backend; GPU and caching backends live
// in sub-packages.
//
// # Backend Registration
//
// Backends are registered via init() functions or explicit Register calls
// and selected at runtime. The recording backend is automatically registered
// on import:
//
//	import _ "github.com/gogpu/renderkit/backend"
//
// The native backend needs an open hal device, so it registers explicitly:
//
//	native.Register(device, native.WithFancyGraphics(true))
//
// # Backend Selection
//
// Use Default() to get the best available backend, or Get() to request
// a specific backend by name:
//
//	// Get the default (best available) backend
//	b := backend.Default()
//
//	// Or request a specific backend
//	b, err := backend.Get(backend.BackendRecording)
//
// # Recording Backend
//
// [Recording] models the fixed-function context as a comparable [Snapshot]
// and keeps a texture table, a call log and a list of detected misuse. It is
// what the state and render packages are tested against, and what the
// rkdemo trace command prints.
//
// # Available Backends
//
//   - "recording": in-memory model of the context (always available)
//   - "native": GPU textures and pipeline state via gogpu/wgpu hal
package backend
