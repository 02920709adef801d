// Package cached provides a backend decorator that drops redundant
// fixed-function calls.
//
// Render states end by returning to a fixed baseline, so a frame issues many
// calls that set what is already set: disabling blending that is already off,
// restoring a depth function that was never changed. The cached Backend
// shadows the last value it forwarded for every fixed-function parameter and
// skips calls that would not change it.
//
// The shadow only knows what went through it. Call Invalidate after any code
// touches the wrapped backend directly.
package cached

import (
	"log/slog"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/renderkit"
	"github.com/gogpu/renderkit/gpucore"
)

// Stats counts forwarded and skipped calls.
type Stats struct {
	// Forwarded is the number of calls passed to the wrapped backend.
	Forwarded uint64

	// Skipped is the number of calls dropped because they would not change
	// the context.
	Skipped uint64
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger skipped calls are reported to at debug level.
// By default renderkit.Logger() is used.
func WithLogger(l *slog.Logger) Option {
	return func(b *Backend) {
		b.logger = l
	}
}

// shadow is the last forwarded value of each parameter. A parameter is only
// compared when its known flag is set.
type shadow struct {
	features map[gpucore.Feature]bool

	blend      [4]gputypes.BlendFactor
	blendKnown bool

	depthFunc      gputypes.CompareFunction
	depthFuncKnown bool

	alphaFunc  gputypes.CompareFunction
	alphaRef   float32
	alphaKnown bool

	fogColor      gputypes.Color
	fogColorKnown bool

	shade      gpucore.ShadeModel
	shadeKnown bool

	colorMask      [4]bool
	colorMaskKnown bool

	depthMask      bool
	depthMaskKnown bool

	texture      gpucore.TextureID
	textureKnown bool

	framebuffer      gpucore.Framebuffer
	framebufferKnown bool
}

// Backend wraps another backend and skips redundant fixed-function calls.
// Texture allocation, parameters, uploads and deletion are always forwarded.
//
// Backend is not safe for concurrent use.
type Backend struct {
	inner  gpucore.Backend
	logger *slog.Logger
	shadow shadow
	stats  Stats
}

// Ensure Backend implements gpucore.Backend and exposes the wrapped backend.
var (
	_ gpucore.Backend = (*Backend)(nil)
	_ gpucore.Wrapper = (*Backend)(nil)
)

// New wraps inner. The shadow starts empty, so the first call for every
// parameter is forwarded.
func New(inner gpucore.Backend, opts ...Option) *Backend {
	b := &Backend{inner: inner}
	for _, opt := range opts {
		opt(b)
	}
	b.Invalidate()
	return b
}

// Unwrap returns the wrapped backend.
func (b *Backend) Unwrap() gpucore.Backend {
	return b.inner
}

// Stats returns the call counters.
func (b *Backend) Stats() Stats {
	return b.stats
}

// ResetStats zeroes the call counters.
func (b *Backend) ResetStats() {
	b.stats = Stats{}
}

// Invalidate forgets every shadowed value.
func (b *Backend) Invalidate() {
	b.shadow = shadow{features: make(map[gpucore.Feature]bool)}
}

func (b *Backend) slogger() *slog.Logger {
	if b.logger != nil {
		return b.logger
	}
	return renderkit.Logger()
}

func (b *Backend) skip(op string) {
	b.stats.Skipped++
	b.slogger().Debug("cached: skipped redundant call", "op", op)
}

// Enable turns a feature on unless it is known to be on.
func (b *Backend) Enable(f gpucore.Feature) {
	if on, ok := b.shadow.features[f]; ok && on {
		b.skip("Enable")
		return
	}
	b.shadow.features[f] = true
	b.stats.Forwarded++
	b.inner.Enable(f)
}

// Disable turns a feature off unless it is known to be off.
func (b *Backend) Disable(f gpucore.Feature) {
	if on, ok := b.shadow.features[f]; ok && !on {
		b.skip("Disable")
		return
	}
	b.shadow.features[f] = false
	b.stats.Forwarded++
	b.inner.Disable(f)
}

// BlendFunc sets the same factors for color and alpha.
func (b *Backend) BlendFunc(src, dst gputypes.BlendFactor) {
	want := [4]gputypes.BlendFactor{src, dst, src, dst}
	if b.shadow.blendKnown && b.shadow.blend == want {
		b.skip("BlendFunc")
		return
	}
	b.shadow.blend, b.shadow.blendKnown = want, true
	b.stats.Forwarded++
	b.inner.BlendFunc(src, dst)
}

// BlendFuncSeparate sets separate factors for color and alpha.
func (b *Backend) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha gputypes.BlendFactor) {
	want := [4]gputypes.BlendFactor{srcRGB, dstRGB, srcAlpha, dstAlpha}
	if b.shadow.blendKnown && b.shadow.blend == want {
		b.skip("BlendFuncSeparate")
		return
	}
	b.shadow.blend, b.shadow.blendKnown = want, true
	b.stats.Forwarded++
	b.inner.BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha)
}

// DepthFunc sets the depth comparison function.
func (b *Backend) DepthFunc(fn gputypes.CompareFunction) {
	if b.shadow.depthFuncKnown && b.shadow.depthFunc == fn {
		b.skip("DepthFunc")
		return
	}
	b.shadow.depthFunc, b.shadow.depthFuncKnown = fn, true
	b.stats.Forwarded++
	b.inner.DepthFunc(fn)
}

// AlphaFunc sets the alpha test comparison and reference value.
func (b *Backend) AlphaFunc(fn gputypes.CompareFunction, ref float32) {
	if b.shadow.alphaKnown && b.shadow.alphaFunc == fn && b.shadow.alphaRef == ref {
		b.skip("AlphaFunc")
		return
	}
	b.shadow.alphaFunc, b.shadow.alphaRef, b.shadow.alphaKnown = fn, ref, true
	b.stats.Forwarded++
	b.inner.AlphaFunc(fn, ref)
}

// FogColor sets the fog color.
func (b *Backend) FogColor(c gputypes.Color) {
	if b.shadow.fogColorKnown && b.shadow.fogColor == c {
		b.skip("FogColor")
		return
	}
	b.shadow.fogColor, b.shadow.fogColorKnown = c, true
	b.stats.Forwarded++
	b.inner.FogColor(c)
}

// ShadeModel selects flat or smooth shading.
func (b *Backend) ShadeModel(m gpucore.ShadeModel) {
	if b.shadow.shadeKnown && b.shadow.shade == m {
		b.skip("ShadeModel")
		return
	}
	b.shadow.shade, b.shadow.shadeKnown = m, true
	b.stats.Forwarded++
	b.inner.ShadeModel(m)
}

// ColorMask enables or disables writes per color channel.
func (b *Backend) ColorMask(red, green, blue, alpha bool) {
	want := [4]bool{red, green, blue, alpha}
	if b.shadow.colorMaskKnown && b.shadow.colorMask == want {
		b.skip("ColorMask")
		return
	}
	b.shadow.colorMask, b.shadow.colorMaskKnown = want, true
	b.stats.Forwarded++
	b.inner.ColorMask(red, green, blue, alpha)
}

// DepthMask enables or disables depth writes.
func (b *Backend) DepthMask(write bool) {
	if b.shadow.depthMaskKnown && b.shadow.depthMask == write {
		b.skip("DepthMask")
		return
	}
	b.shadow.depthMask, b.shadow.depthMaskKnown = write, true
	b.stats.Forwarded++
	b.inner.DepthMask(write)
}

// GenTextures is always forwarded.
func (b *Backend) GenTextures(n int) ([]gpucore.TextureID, error) {
	b.stats.Forwarded++
	return b.inner.GenTextures(n)
}

// BindTexture binds a texture unless it is known to be bound.
func (b *Backend) BindTexture(id gpucore.TextureID) {
	if b.shadow.textureKnown && b.shadow.texture == id {
		b.skip("BindTexture")
		return
	}
	b.shadow.texture, b.shadow.textureKnown = id, true
	b.stats.Forwarded++
	b.inner.BindTexture(id)
}

// TexParameters is always forwarded.
func (b *Backend) TexParameters(id gpucore.TextureID, p gpucore.SamplerParams) error {
	b.stats.Forwarded++
	return b.inner.TexParameters(id, p)
}

// TexImage2D is always forwarded.
func (b *Backend) TexImage2D(id gpucore.TextureID, img gpucore.TextureImage) error {
	b.stats.Forwarded++
	return b.inner.TexImage2D(id, img)
}

// DeleteTextures is always forwarded. The bound texture is forgotten, since
// the wrapped backend may unbind a deleted texture.
func (b *Backend) DeleteTextures(ids []gpucore.TextureID) {
	b.shadow.textureKnown = false
	b.stats.Forwarded++
	b.inner.DeleteTextures(ids)
}

// BindFramebuffer binds fb unless it is known to be bound.
func (b *Backend) BindFramebuffer(fb gpucore.Framebuffer) {
	if b.shadow.framebufferKnown && b.shadow.framebuffer == fb {
		b.skip("BindFramebuffer")
		return
	}
	b.shadow.framebuffer, b.shadow.framebufferKnown = fb, true
	b.stats.Forwarded++
	b.inner.BindFramebuffer(fb)
}

// FancyGraphics reports the wrapped backend's graphics mode.
func (b *Backend) FancyGraphics() bool {
	return b.inner.FancyGraphics()
}
