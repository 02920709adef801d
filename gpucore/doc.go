// Package gpucore defines the graphics-backend contract shared by the
// renderkit packages.
//
// The [Backend] interface is the only way renderkit touches the GPU. Render
// states (package state) call its fixed-function setters inside Begin/End;
// composite render targets (package render) allocate, resize and delete
// textures through it. Concrete backends live under backend/:
//
//	               +------------------+
//	               |  state / render  |
//	               +--------+---------+
//	                        |
//	                 gpucore.Backend
//	                        |
//	     +------------------+------------------+
//	     |                  |                  |
//	recording            cached             native
//	(in-memory)      (shadow state)     (gogpu/wgpu hal)
//
// # Resource Management
//
// Textures are referred to by opaque [TextureID] values. A backend keeps the
// mapping between IDs and real resources. IDs are stable across TexImage2D
// re-uploads, which is what lets a ping-pong target resize without the
// pipeline noticing.
//
// # Formats
//
// Storage formats, blend factors, compare functions and sampler modes use
// the github.com/gogpu/gputypes vocabulary rather than numeric API
// constants. [PixelFormat] and [PixelType] describe the client-side layout
// that accompanies an upload.
//
// # Optional Capabilities
//
// Some fixed-function paths are only available on some backends. They are
// expressed as small interfaces ([LightmapController],
// [DiffuseLightingController]) discovered by type assertion.
package gpucore
