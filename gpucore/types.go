package gpucore

import "github.com/gogpu/gputypes"

// Resource IDs
//
// Textures are referred to by opaque IDs. Each backend maintains the mapping
// between IDs and its actual resources. An ID stays valid, and keeps naming
// the same texture, until DeleteTextures releases it; re-uploading storage
// through TexImage2D never changes it.

// TextureID is an opaque handle to a 2D texture.
type TextureID uint64

// InvalidID is the zero value, representing an invalid/null resource.
// Binding InvalidID unbinds the current texture.
const InvalidID TextureID = 0

// ResourceID names a texture owned by the game's texture manager,
// e.g. "textures/atlas/blocks.png". It is resolved to a TextureID through
// a TextureResolver at bind time.
type ResourceID string

// Feature is a fixed-function capability toggled with Enable/Disable.
type Feature uint8

// Fixed-function features.
const (
	// FeatureBlend enables color blending.
	FeatureBlend Feature = iota + 1

	// FeatureDepthTest enables the depth test.
	FeatureDepthTest

	// FeatureAlphaTest enables the alpha test.
	FeatureAlphaTest

	// FeatureCullFace enables face culling.
	FeatureCullFace

	// FeatureFog enables fog.
	FeatureFog

	// FeatureTexture2D enables 2D texturing on the active unit.
	FeatureTexture2D
)

// String returns the feature name.
func (f Feature) String() string {
	switch f {
	case FeatureBlend:
		return "Blend"
	case FeatureDepthTest:
		return "DepthTest"
	case FeatureAlphaTest:
		return "AlphaTest"
	case FeatureCullFace:
		return "CullFace"
	case FeatureFog:
		return "Fog"
	case FeatureTexture2D:
		return "Texture2D"
	default:
		return "Unknown"
	}
}

// ShadeModel selects how vertex colors are interpolated across a primitive.
type ShadeModel uint8

// Shade models.
const (
	// ShadeFlat uses the provoking vertex color for the whole primitive.
	ShadeFlat ShadeModel = iota

	// ShadeSmooth interpolates vertex colors.
	ShadeSmooth
)

// String returns the shade model name.
func (m ShadeModel) String() string {
	switch m {
	case ShadeFlat:
		return "Flat"
	case ShadeSmooth:
		return "Smooth"
	default:
		return "Unknown"
	}
}

// Framebuffer names a render destination the backend knows how to bind.
type Framebuffer uint8

// Framebuffers.
const (
	// FramebufferDefault is the main scene framebuffer.
	FramebufferDefault Framebuffer = iota

	// FramebufferOutline receives entity outlines.
	FramebufferOutline

	// FramebufferTranslucent receives translucent geometry in fancy mode.
	FramebufferTranslucent
)

// String returns the framebuffer name.
func (f Framebuffer) String() string {
	switch f {
	case FramebufferDefault:
		return "Default"
	case FramebufferOutline:
		return "Outline"
	case FramebufferTranslucent:
		return "Translucent"
	default:
		return "Unknown"
	}
}

// SamplerParams are the filtering and wrap parameters of a texture.
type SamplerParams struct {
	// MinFilter is the minification filter.
	MinFilter gputypes.FilterMode

	// MagFilter is the magnification filter.
	MagFilter gputypes.FilterMode

	// WrapS is the address mode along the S (horizontal) axis.
	WrapS gputypes.AddressMode

	// WrapT is the address mode along the T (vertical) axis.
	WrapT gputypes.AddressMode
}

// TextureImage describes the storage uploaded by TexImage2D.
// Storage is allocated uninitialized; no pixel data travels with it.
type TextureImage struct {
	// Width is the image width in pixels.
	Width int

	// Height is the image height in pixels.
	Height int

	// InternalFormat is the GPU-side storage format.
	InternalFormat gputypes.TextureFormat

	// Format is the client-side pixel layout.
	Format PixelFormat

	// Type is the client-side component type.
	Type PixelType
}

// Default blend function factors. Transparency states restore these when
// their bracket ends.
const (
	DefaultBlendSrcRGB   = gputypes.BlendFactorSrcAlpha
	DefaultBlendDstRGB   = gputypes.BlendFactorOneMinusSrcAlpha
	DefaultBlendSrcAlpha = gputypes.BlendFactorOne
	DefaultBlendDstAlpha = gputypes.BlendFactorZero
)

// DefaultBlendFunc applies the default blend function to b.
func DefaultBlendFunc(b Backend) {
	b.BlendFuncSeparate(DefaultBlendSrcRGB, DefaultBlendDstRGB, DefaultBlendSrcAlpha, DefaultBlendDstAlpha)
}
