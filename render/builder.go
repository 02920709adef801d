// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/renderkit/gpucore"
)

// Builder stages the parameters of a CompositeTarget.
//
// The format triple defaults to 8-bit RGBA: internal format RGBA8Unorm,
// pixel format RGBA, pixel type UnsignedByte. Dimensions have no default and
// must be set before Build.
//
// Example:
//
//	b := render.NewBuilder().SetInternalFormat(gputypes.TextureFormatRGBA16Float)
//	if err := b.SetDimensions(1920, 1080); err != nil {
//		return err
//	}
//	target, err := b.Build(backend)
type Builder struct {
	internalFormat gputypes.TextureFormat
	pixelFormat    gpucore.PixelFormat
	pixelType      gpucore.PixelType
	width          int
	height         int
}

// NewBuilder creates a builder with the default format triple.
func NewBuilder() *Builder {
	return &Builder{
		internalFormat: gputypes.TextureFormatRGBA8Unorm,
		pixelFormat:    gpucore.PixelFormatRGBA,
		pixelType:      gpucore.PixelTypeUnsignedByte,
	}
}

// SetInternalFormat sets the GPU storage format.
func (b *Builder) SetInternalFormat(f gputypes.TextureFormat) *Builder {
	b.internalFormat = f
	return b
}

// SetPixelFormat sets the client-side pixel layout.
func (b *Builder) SetPixelFormat(f gpucore.PixelFormat) *Builder {
	b.pixelFormat = f
	return b
}

// SetPixelType sets the client-side component type.
func (b *Builder) SetPixelType(t gpucore.PixelType) *Builder {
	b.pixelType = t
	return b
}

// SetDimensions sets the initial size. It fails with ErrInvalidDimensions,
// leaving the builder unchanged, if either value is not positive.
func (b *Builder) SetDimensions(width, height int) error {
	if width <= 0 {
		return fmt.Errorf("%w: width %d", ErrInvalidDimensions, width)
	}
	if height <= 0 {
		return fmt.Errorf("%w: height %d", ErrInvalidDimensions, height)
	}
	b.width, b.height = width, height
	return nil
}

// Build allocates the texture pair on backend. The builder is not retained;
// later changes to it do not affect the returned target.
//
// No backend call is made when the dimensions were never set. If allocation
// fails part way, the textures already generated are deleted.
func (b *Builder) Build(backend gpucore.Backend) (*CompositeTarget, error) {
	if b.width <= 0 || b.height <= 0 {
		return nil, fmt.Errorf("%w: dimensions not set", ErrInvalidDimensions)
	}
	if backend == nil {
		return nil, ErrNilBackend
	}
	return newCompositeTarget(backend, *b)
}
