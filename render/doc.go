// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render provides the ping-pong composite render target used by
// multi-pass rendering pipelines.
//
// A [CompositeTarget] owns two textures of identical size and format, "main"
// and "alt". A post-processing pipeline renders into one while sampling the
// other, then swaps their roles for the next pass. Which texture is read and
// which is written is the pipeline's business; the target only guarantees
// that both stay consistent.
//
// # Key Principle
//
// The texture IDs never change. [CompositeTarget.Resize] replaces the
// storage behind both IDs, so framebuffers and bind groups that captured the
// IDs keep working across viewport changes.
//
// # Lifecycle
//
//	b := render.NewBuilder()
//	if err := b.SetDimensions(width, height); err != nil {
//	    return err
//	}
//	target, err := b.Build(backend)
//	if err != nil {
//	    return err
//	}
//	defer target.Destroy()
//
//	// On viewport change
//	if _, err := target.ResizeIfNeeded(newWidth, newHeight); err != nil {
//	    return err
//	}
//
// Destroy is one-shot: a second call, and any use after it, fails with
// [ErrTargetDestroyed]. [WithCompositeTarget] wraps build, use and destroy
// in a single call.
//
// # Filtering
//
// Both textures are sampled with linear filtering unless the internal format
// is an integer format, which gets nearest filtering. Both axes clamp to
// edge.
package render
