package gpucore

import "github.com/gogpu/gputypes"

// PixelFormat is the client-side channel layout of texture data.
type PixelFormat uint8

// Pixel formats.
const (
	// PixelFormatRGBA is red, green, blue, alpha.
	PixelFormatRGBA PixelFormat = iota + 1

	// PixelFormatBGRA is blue, green, red, alpha.
	PixelFormatBGRA

	// PixelFormatRed is a single red channel.
	PixelFormatRed

	// PixelFormatRG is red and green channels.
	PixelFormatRG

	// PixelFormatRGBAInteger is RGBA with unnormalized integer components.
	PixelFormatRGBAInteger

	// PixelFormatRedInteger is a single unnormalized integer channel.
	PixelFormatRedInteger

	// PixelFormatRGInteger is two unnormalized integer channels.
	PixelFormatRGInteger
)

// String returns the pixel format name.
func (f PixelFormat) String() string {
	switch f {
	case PixelFormatRGBA:
		return "RGBA"
	case PixelFormatBGRA:
		return "BGRA"
	case PixelFormatRed:
		return "Red"
	case PixelFormatRG:
		return "RG"
	case PixelFormatRGBAInteger:
		return "RGBAInteger"
	case PixelFormatRedInteger:
		return "RedInteger"
	case PixelFormatRGInteger:
		return "RGInteger"
	default:
		return "Unknown"
	}
}

// IsInteger reports whether the layout carries unnormalized integers.
func (f PixelFormat) IsInteger() bool {
	switch f {
	case PixelFormatRGBAInteger, PixelFormatRedInteger, PixelFormatRGInteger:
		return true
	default:
		return false
	}
}

// PixelType is the client-side component type of texture data.
type PixelType uint8

// Pixel types.
const (
	PixelTypeUnsignedByte PixelType = iota + 1
	PixelTypeByte
	PixelTypeUnsignedShort
	PixelTypeShort
	PixelTypeUnsignedInt
	PixelTypeInt
	PixelTypeHalfFloat
	PixelTypeFloat
)

// String returns the pixel type name.
func (t PixelType) String() string {
	switch t {
	case PixelTypeUnsignedByte:
		return "UnsignedByte"
	case PixelTypeByte:
		return "Byte"
	case PixelTypeUnsignedShort:
		return "UnsignedShort"
	case PixelTypeShort:
		return "Short"
	case PixelTypeUnsignedInt:
		return "UnsignedInt"
	case PixelTypeInt:
		return "Int"
	case PixelTypeHalfFloat:
		return "HalfFloat"
	case PixelTypeFloat:
		return "Float"
	default:
		return "Unknown"
	}
}

// IsIntegerFormat reports whether textures stored in f hold unnormalized
// integers. Hardware filtering of such textures is undefined, so they must be
// sampled with nearest filtering.
func IsIntegerFormat(f gputypes.TextureFormat) bool {
	switch f {
	case gputypes.TextureFormatR8Uint,
		gputypes.TextureFormatR8Sint,
		gputypes.TextureFormatR16Uint,
		gputypes.TextureFormatR16Sint,
		gputypes.TextureFormatRG8Uint,
		gputypes.TextureFormatRG8Sint,
		gputypes.TextureFormatR32Uint,
		gputypes.TextureFormatR32Sint,
		gputypes.TextureFormatRG16Uint,
		gputypes.TextureFormatRG16Sint,
		gputypes.TextureFormatRGBA8Uint,
		gputypes.TextureFormatRGBA8Sint,
		gputypes.TextureFormatRGB10A2Uint,
		gputypes.TextureFormatRG32Uint,
		gputypes.TextureFormatRG32Sint,
		gputypes.TextureFormatRGBA16Uint,
		gputypes.TextureFormatRGBA16Sint,
		gputypes.TextureFormatRGBA32Uint,
		gputypes.TextureFormatRGBA32Sint:
		return true
	default:
		return false
	}
}

// SamplerParamsFor returns the parameters a render-target texture of the
// given format is configured with: linear filtering unless the format is an
// integer format, and clamp-to-edge on both axes.
func SamplerParamsFor(f gputypes.TextureFormat) SamplerParams {
	filter := gputypes.FilterModeLinear
	if IsIntegerFormat(f) {
		filter = gputypes.FilterModeNearest
	}
	return SamplerParams{
		MinFilter: filter,
		MagFilter: filter,
		WrapS:     gputypes.AddressModeClampToEdge,
		WrapT:     gputypes.AddressModeClampToEdge,
	}
}
