package gpucore

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
)

// Backend errors.
var (
	// ErrInvalidTexture is returned when an operation names a texture the
	// backend never allocated or has already deleted.
	ErrInvalidTexture = errors.New("gpucore: invalid texture")

	// ErrInvalidImage is returned when TexImage2D is given a non-positive size
	// or an undefined format.
	ErrInvalidImage = errors.New("gpucore: invalid texture image")

	// ErrUnknownResource is returned by a TextureResolver for a ResourceID it
	// cannot map to a texture.
	ErrUnknownResource = errors.New("gpucore: unknown texture resource")
)

// Backend abstracts the graphics API the render states and render targets
// drive.
//
// This interface is the boundary between renderkit and the host's GPU
// bindings. Implementations (backend.Recording, backend/cached,
// backend/native) own the actual GPU context.
//
// Threading:
//   - A Backend belongs to the render thread; implementations are not
//     required to be safe for concurrent use
//   - All methods are synchronous and complete before returning
//
// Resource lifecycle:
//   - Textures are allocated with GenTextures and released with DeleteTextures
//   - TexImage2D (re)allocates storage behind an existing ID
//   - Deleting a texture twice is a caller bug
type Backend interface {
	// === Fixed-function state ===

	// Enable turns a feature on.
	Enable(f Feature)

	// Disable turns a feature off.
	Disable(f Feature)

	// BlendFunc sets the same source and destination factors for color and
	// alpha.
	BlendFunc(src, dst gputypes.BlendFactor)

	// BlendFuncSeparate sets separate factors for color and alpha.
	BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha gputypes.BlendFactor)

	// DepthFunc sets the depth comparison function.
	DepthFunc(fn gputypes.CompareFunction)

	// AlphaFunc sets the alpha test comparison and reference value.
	AlphaFunc(fn gputypes.CompareFunction, ref float32)

	// FogColor sets the fog color.
	FogColor(c gputypes.Color)

	// ShadeModel selects flat or smooth shading.
	ShadeModel(m ShadeModel)

	// ColorMask enables or disables writes per color channel.
	ColorMask(r, g, b, a bool)

	// DepthMask enables or disables depth writes.
	DepthMask(write bool)

	// === Textures ===

	// GenTextures allocates n texture IDs without storage.
	GenTextures(n int) ([]TextureID, error)

	// BindTexture binds a texture to the 2D target of the active unit.
	// Binding InvalidID unbinds.
	BindTexture(id TextureID)

	// TexParameters sets filtering and wrap parameters of a texture.
	// Returns an error wrapping ErrInvalidTexture for an unknown ID.
	TexParameters(id TextureID, p SamplerParams) error

	// TexImage2D (re)allocates the storage of a texture. The ID is unchanged;
	// previous contents are discarded.
	TexImage2D(id TextureID, img TextureImage) error

	// DeleteTextures releases a batch of textures in one call.
	DeleteTextures(ids []TextureID)

	// === Framebuffers ===

	// BindFramebuffer makes fb the current render destination.
	BindFramebuffer(fb Framebuffer)

	// FancyGraphics reports whether the host runs in the high-quality
	// graphics mode that routes translucent geometry to its own framebuffer.
	FancyGraphics() bool
}

// LightmapController is implemented by backends that can switch the
// lightmap texture unit on and off. Lightmap states fail with
// ErrNotImplemented on backends that do not implement it.
type LightmapController interface {
	// EnableLightmap activates the lightmap texture unit.
	EnableLightmap()

	// DisableLightmap deactivates the lightmap texture unit.
	DisableLightmap()
}

// DiffuseLightingController is implemented by backends that can apply the
// fixed diffuse (GUI item) lighting setup.
type DiffuseLightingController interface {
	// EnableDiffuseLighting applies diffuse lighting.
	EnableDiffuseLighting()

	// DisableDiffuseLighting removes diffuse lighting.
	DisableDiffuseLighting()
}

// TextureResolver maps game texture resources to backend textures.
// It is implemented by the host's texture manager.
type TextureResolver interface {
	// ResolveTexture returns the texture for id, loading it if needed.
	// Returns an error wrapping ErrUnknownResource if id is unknown.
	ResolveTexture(id ResourceID) (TextureID, error)
}

// TextureResolverFunc adapts a function to TextureResolver.
type TextureResolverFunc func(id ResourceID) (TextureID, error)

// ResolveTexture calls f(id).
func (f TextureResolverFunc) ResolveTexture(id ResourceID) (TextureID, error) {
	return f(id)
}

// StaticResolver resolves from a fixed table.
type StaticResolver map[ResourceID]TextureID

// ResolveTexture looks id up in the table.
func (r StaticResolver) ResolveTexture(id ResourceID) (TextureID, error) {
	tex, ok := r[id]
	if !ok {
		return InvalidID, fmt.Errorf("%w: %q", ErrUnknownResource, id)
	}
	return tex, nil
}

// ValidateImage checks the parts of a TextureImage every backend relies on.
func ValidateImage(img TextureImage) error {
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidImage, img.Width, img.Height)
	}
	if img.InternalFormat == gputypes.TextureFormatUndefined {
		return fmt.Errorf("%w: undefined internal format", ErrInvalidImage)
	}
	return nil
}

// Wrapper is implemented by backends that decorate another backend, such as
// the redundant-call filter in backend/cached. Optional capabilities are
// looked up through the chain of wrapped backends.
type Wrapper interface {
	// Unwrap returns the decorated backend.
	Unwrap() Backend
}

// AsLightmapController returns the first backend in the wrapper chain of b
// that implements LightmapController.
func AsLightmapController(b Backend) (LightmapController, bool) {
	for b != nil {
		if c, ok := b.(LightmapController); ok {
			return c, true
		}
		w, ok := b.(Wrapper)
		if !ok {
			break
		}
		b = w.Unwrap()
	}
	return nil, false
}

// AsDiffuseLightingController returns the first backend in the wrapper chain
// of b that implements DiffuseLightingController.
func AsDiffuseLightingController(b Backend) (DiffuseLightingController, bool) {
	for b != nil {
		if c, ok := b.(DiffuseLightingController); ok {
			return c, true
		}
		w, ok := b.(Wrapper)
		if !ok {
			break
		}
		b = w.Unwrap()
	}
	return nil, false
}
