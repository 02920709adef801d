// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/renderkit"
	"github.com/gogpu/renderkit/gpucore"
)

// Errors returned by composite targets and their builder.
var (
	// ErrInvalidDimensions is returned when a width or height is not positive,
	// or when Build is called before SetDimensions.
	ErrInvalidDimensions = errors.New("render: width and height must be greater than zero")

	// ErrTargetDestroyed is returned by every operation on a destroyed target.
	ErrTargetDestroyed = errors.New("render: attempted to use a deleted composite render target")

	// ErrNilBackend is returned by Build when no backend is given.
	ErrNilBackend = errors.New("render: nil backend")
)

// CompositeTarget is a ping-pong pair of equally sized, equally formatted
// 2D textures. A multi-pass pipeline writes one texture while sampling the
// other and swaps roles between passes.
//
// The two texture IDs are allocated once and never change: Resize only
// replaces their storage, so the pipeline can hold on to the IDs across
// frames. The target owns both textures and must be released with Destroy,
// exactly once.
//
// A CompositeTarget belongs to the render thread and is not safe for
// concurrent use.
type CompositeTarget struct {
	backend gpucore.Backend

	internalFormat gputypes.TextureFormat
	pixelFormat    gpucore.PixelFormat
	pixelType      gpucore.PixelType

	width  int
	height int

	// textures holds main then alt. It is also the batch handed to
	// DeleteTextures.
	textures [2]gpucore.TextureID

	valid bool
}

// newCompositeTarget allocates and configures both textures.
func newCompositeTarget(b gpucore.Backend, cfg Builder) (*CompositeTarget, error) {
	ids, err := b.GenTextures(2)
	if err != nil {
		return nil, fmt.Errorf("render: allocate textures: %w", err)
	}
	if len(ids) != 2 {
		b.DeleteTextures(ids)
		return nil, fmt.Errorf("render: backend allocated %d textures, want 2", len(ids))
	}

	t := &CompositeTarget{
		backend:        b,
		internalFormat: cfg.internalFormat,
		pixelFormat:    cfg.pixelFormat,
		pixelType:      cfg.pixelType,
		width:          cfg.width,
		height:         cfg.height,
		textures:       [2]gpucore.TextureID{ids[0], ids[1]},
		valid:          true,
	}

	params := gpucore.SamplerParamsFor(t.internalFormat)
	for _, id := range t.textures {
		if err := b.TexImage2D(id, t.image(t.width, t.height)); err != nil {
			b.DeleteTextures(t.textures[:])
			return nil, fmt.Errorf("render: allocate storage for texture %d: %w", id, err)
		}
		if err := b.TexParameters(id, params); err != nil {
			b.DeleteTextures(t.textures[:])
			return nil, fmt.Errorf("render: set sampling of texture %d: %w", id, err)
		}
	}

	// Leave nothing bound so unrelated code cannot modify the pair by accident.
	b.BindTexture(gpucore.InvalidID)

	renderkit.Logger().Debug("composite target created",
		"main", t.textures[0], "alt", t.textures[1],
		"width", t.width, "height", t.height,
		"format", t.internalFormat.String())
	return t, nil
}

func (t *CompositeTarget) image(width, height int) gpucore.TextureImage {
	return gpucore.TextureImage{
		Width:          width,
		Height:         height,
		InternalFormat: t.internalFormat,
		Format:         t.pixelFormat,
		Type:           t.pixelType,
	}
}

// Resize reallocates the storage of both textures at the new size. The
// texture IDs do not change; previous contents are discarded.
//
// If an upload fails, the textures already resized are reallocated at the
// previous size so both keep identical dimensions, and the size is left
// unchanged. A failed rollback is joined to the returned error.
func (t *CompositeTarget) Resize(width, height int) error {
	if !t.valid {
		return ErrTargetDestroyed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	for i, id := range t.textures {
		if err := t.backend.TexImage2D(id, t.image(width, height)); err != nil {
			err = fmt.Errorf("render: resize texture %d: %w", id, err)
			for _, done := range t.textures[:i] {
				if rerr := t.backend.TexImage2D(done, t.image(t.width, t.height)); rerr != nil {
					err = errors.Join(err, fmt.Errorf("render: restore texture %d: %w", done, rerr))
				}
			}
			return err
		}
	}
	renderkit.Logger().Debug("composite target resized",
		"main", t.textures[0], "alt", t.textures[1],
		"from", fmt.Sprintf("%dx%d", t.width, t.height),
		"to", fmt.Sprintf("%dx%d", width, height))
	t.width, t.height = width, height
	return nil
}

// ResizeIfNeeded resizes the target only when the size differs from the
// current one. It reports whether a resize happened.
func (t *CompositeTarget) ResizeIfNeeded(width, height int) (bool, error) {
	if !t.valid {
		return false, ErrTargetDestroyed
	}
	if width == t.width && height == t.height {
		return false, nil
	}
	if err := t.Resize(width, height); err != nil {
		return false, err
	}
	return true, nil
}

// MainTexture returns the ID of the main texture.
func (t *CompositeTarget) MainTexture() (gpucore.TextureID, error) {
	if !t.valid {
		return gpucore.InvalidID, ErrTargetDestroyed
	}
	return t.textures[0], nil
}

// AltTexture returns the ID of the alternate texture.
func (t *CompositeTarget) AltTexture() (gpucore.TextureID, error) {
	if !t.valid {
		return gpucore.InvalidID, ErrTargetDestroyed
	}
	return t.textures[1], nil
}

// Width returns the current width in pixels.
func (t *CompositeTarget) Width() int { return t.width }

// Height returns the current height in pixels.
func (t *CompositeTarget) Height() int { return t.height }

// InternalFormat returns the GPU storage format of both textures.
func (t *CompositeTarget) InternalFormat() gputypes.TextureFormat { return t.internalFormat }

// PixelFormat returns the client-side pixel layout used for uploads.
func (t *CompositeTarget) PixelFormat() gpucore.PixelFormat { return t.pixelFormat }

// PixelType returns the client-side component type used for uploads.
func (t *CompositeTarget) PixelType() gpucore.PixelType { return t.pixelType }

// Valid reports whether the target has not been destroyed.
func (t *CompositeTarget) Valid() bool { return t.valid }

// Destroy deletes both textures in one batch. It fails with
// ErrTargetDestroyed if the target was already destroyed, so double frees
// surface instead of being ignored.
func (t *CompositeTarget) Destroy() error {
	if !t.valid {
		return ErrTargetDestroyed
	}
	t.valid = false
	t.backend.DeleteTextures(t.textures[:])
	renderkit.Logger().Debug("composite target destroyed",
		"main", t.textures[0], "alt", t.textures[1])
	return nil
}

// WithCompositeTarget builds a target from b, runs fn with it and destroys
// it when fn returns, including when fn panics. An error from Destroy is
// joined with the error from fn.
func WithCompositeTarget(backend gpucore.Backend, b *Builder, fn func(*CompositeTarget) error) (err error) {
	if b == nil {
		return fmt.Errorf("%w: nil builder", ErrInvalidDimensions)
	}
	t, err := b.Build(backend)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, t.Destroy())
	}()
	return fn(t)
}
