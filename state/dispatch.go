package state

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/renderkit/gpucore"
)

// Baselines End returns to.
const (
	// defaultAlphaRef is the alpha test reference restored by Alpha states.
	defaultAlphaRef float32 = 0.1

	// defaultDepthFunc is the depth function restored by DepthTest states.
	defaultDepthFunc = gputypes.CompareFunctionLessEqual
)

// blackFog is the color BlackFog states set.
var blackFog = gputypes.Color{R: 0, G: 0, B: 0, A: 1}

// applyFunc applies one half of a state to a context.
type applyFunc func(s State, c *Context) error

// behavior is the begin/end pair of a kind.
type behavior struct {
	begin applyFunc
	end   applyFunc
}

// behaviors is the dispatch table from kind to begin/end functions.
var behaviors = [numKinds + 1]behavior{
	KindTexture:         {beginTexture, endTexture},
	KindTransparency:    {beginTransparency, endTransparency},
	KindDiffuseLighting: {beginDiffuseLighting, endDiffuseLighting},
	KindShadeModel:      {beginShadeModel, endShadeModel},
	KindAlpha:           {beginAlpha, endAlpha},
	KindDepthTest:       {beginDepthTest, endDepthTest},
	KindCull:            {beginCull, endCull},
	KindLightmap:        {beginLightmap, endLightmap},
	KindFog:             {beginFog, endFog},
	KindLayering:        {noop, noop},
	KindTarget:          {beginTarget, endTarget},
	KindTexturing:       {noop, noop},
	KindWriteMask:       {beginWriteMask, endWriteMask},
}

// Begin applies s to the context.
//
// With tracking enabled, Begin fails with ErrBracketViolation if another
// state of the same kind is open; no backend call is made in that case.
func (s State) Begin(c *Context) error {
	if !s.Valid() {
		return ErrInvalidState
	}
	if c.tracker != nil {
		if err := c.tracker.begin(s); err != nil {
			return err
		}
	}
	if err := behaviors[s.kind].begin(s, c); err != nil {
		if c.tracker != nil {
			c.tracker.abort(s)
		}
		return fmt.Errorf("begin %v: %w", s, err)
	}
	return nil
}

// End returns the context to the baseline of s's kind. The baseline is fixed
// per kind; it is not the state that was current before Begin.
//
// With tracking enabled, End fails with ErrBracketViolation unless s is the
// open state of its kind.
func (s State) End(c *Context) error {
	if !s.Valid() {
		return ErrInvalidState
	}
	if c.tracker != nil {
		if err := c.tracker.end(s); err != nil {
			return err
		}
	}
	if err := behaviors[s.kind].end(s, c); err != nil {
		return fmt.Errorf("end %v: %w", s, err)
	}
	return nil
}

func noop(State, *Context) error { return nil }

// blendFunc is the blend setup of a blend mode.
type blendFunc struct {
	separate bool
	srcRGB   gputypes.BlendFactor
	dstRGB   gputypes.BlendFactor
	srcAlpha gputypes.BlendFactor
	dstAlpha gputypes.BlendFactor
}

var blendFuncs = [...]blendFunc{
	BlendAdditive: {
		srcRGB: gputypes.BlendFactorOne,
		dstRGB: gputypes.BlendFactorOne,
	},
	BlendLightning: {
		srcRGB: gputypes.BlendFactorSrcAlpha,
		dstRGB: gputypes.BlendFactorOne,
	},
	BlendGlint: {
		separate: true,
		srcRGB:   gputypes.BlendFactorSrc,
		dstRGB:   gputypes.BlendFactorOne,
		srcAlpha: gputypes.BlendFactorZero,
		dstAlpha: gputypes.BlendFactorOne,
	},
	BlendCrumbling: {
		separate: true,
		srcRGB:   gputypes.BlendFactorDst,
		dstRGB:   gputypes.BlendFactorSrc,
		srcAlpha: gputypes.BlendFactorOne,
		dstAlpha: gputypes.BlendFactorZero,
	},
	BlendTranslucent: {
		separate: true,
		srcRGB:   gputypes.BlendFactorSrcAlpha,
		dstRGB:   gputypes.BlendFactorOneMinusSrcAlpha,
		srcAlpha: gputypes.BlendFactorOne,
		dstAlpha: gputypes.BlendFactorOneMinusSrcAlpha,
	},
}

func beginTransparency(s State, c *Context) error {
	if s.blend == BlendNone {
		c.backend.Disable(gpucore.FeatureBlend)
		return nil
	}
	if int(s.blend) >= len(blendFuncs) {
		return fmt.Errorf("%w: blend mode %d", ErrInvalidState, s.blend)
	}
	f := blendFuncs[s.blend]
	c.backend.Enable(gpucore.FeatureBlend)
	if f.separate {
		c.backend.BlendFuncSeparate(f.srcRGB, f.dstRGB, f.srcAlpha, f.dstAlpha)
	} else {
		c.backend.BlendFunc(f.srcRGB, f.dstRGB)
	}
	return nil
}

func endTransparency(s State, c *Context) error {
	if s.blend == BlendNone {
		return nil
	}
	c.backend.Disable(gpucore.FeatureBlend)
	gpucore.DefaultBlendFunc(c.backend)
	return nil
}

func beginAlpha(s State, c *Context) error {
	if s.threshold > 0 {
		c.backend.Enable(gpucore.FeatureAlphaTest)
		c.backend.AlphaFunc(gputypes.CompareFunctionGreater, s.threshold)
	} else {
		c.backend.Disable(gpucore.FeatureAlphaTest)
	}
	return nil
}

func endAlpha(_ State, c *Context) error {
	c.backend.Disable(gpucore.FeatureAlphaTest)
	c.backend.AlphaFunc(gputypes.CompareFunctionGreater, defaultAlphaRef)
	return nil
}

func beginShadeModel(s State, c *Context) error {
	if s.enabled {
		c.backend.ShadeModel(gpucore.ShadeSmooth)
	} else {
		c.backend.ShadeModel(gpucore.ShadeFlat)
	}
	return nil
}

func endShadeModel(_ State, c *Context) error {
	c.backend.ShadeModel(gpucore.ShadeFlat)
	return nil
}

func beginTexture(s State, c *Context) error {
	if s.resource == "" {
		c.backend.Disable(gpucore.FeatureTexture2D)
		return nil
	}
	if c.resolver == nil {
		return ErrNoTextureResolver
	}
	id, err := c.resolver.ResolveTexture(s.resource)
	if err != nil {
		return err
	}
	// Filtering is owned by the texture manager; bilinear and mipmap only
	// take part in identity.
	c.backend.Enable(gpucore.FeatureTexture2D)
	c.backend.BindTexture(id)
	return nil
}

func endTexture(s State, c *Context) error {
	if s.resource == "" {
		c.backend.Enable(gpucore.FeatureTexture2D)
	}
	return nil
}

func beginLightmap(s State, c *Context) error {
	if !s.enabled {
		return nil
	}
	ctl, ok := gpucore.AsLightmapController(c.backend)
	if !ok {
		return fmt.Errorf("%w: lightmap", ErrNotImplemented)
	}
	ctl.EnableLightmap()
	return nil
}

func endLightmap(s State, c *Context) error {
	if !s.enabled {
		return nil
	}
	ctl, ok := gpucore.AsLightmapController(c.backend)
	if !ok {
		return fmt.Errorf("%w: lightmap", ErrNotImplemented)
	}
	ctl.DisableLightmap()
	return nil
}

func beginDiffuseLighting(s State, c *Context) error {
	if !s.enabled {
		return nil
	}
	ctl, ok := gpucore.AsDiffuseLightingController(c.backend)
	if !ok {
		return fmt.Errorf("%w: diffuse lighting", ErrNotImplemented)
	}
	ctl.EnableDiffuseLighting()
	return nil
}

func endDiffuseLighting(s State, c *Context) error {
	if !s.enabled {
		return nil
	}
	ctl, ok := gpucore.AsDiffuseLightingController(c.backend)
	if !ok {
		return fmt.Errorf("%w: diffuse lighting", ErrNotImplemented)
	}
	ctl.DisableDiffuseLighting()
	return nil
}

func beginCull(s State, c *Context) error {
	if !s.enabled {
		c.backend.Disable(gpucore.FeatureCullFace)
	}
	return nil
}

func endCull(s State, c *Context) error {
	if !s.enabled {
		c.backend.Enable(gpucore.FeatureCullFace)
	}
	return nil
}

func beginDepthTest(s State, c *Context) error {
	if s.compare == gputypes.CompareFunctionAlways {
		return nil
	}
	c.backend.Enable(gpucore.FeatureDepthTest)
	c.backend.DepthFunc(s.compare)
	return nil
}

func endDepthTest(s State, c *Context) error {
	if s.compare == gputypes.CompareFunctionAlways {
		return nil
	}
	c.backend.Disable(gpucore.FeatureDepthTest)
	c.backend.DepthFunc(defaultDepthFunc)
	return nil
}

func beginWriteMask(s State, c *Context) error {
	if !s.writeDepth {
		c.backend.DepthMask(false)
	}
	if !s.writeColor {
		c.backend.ColorMask(false, false, false, false)
	}
	return nil
}

// endWriteMask re-enables only the writes its Begin masked.
func endWriteMask(s State, c *Context) error {
	if !s.writeDepth {
		c.backend.DepthMask(true)
	}
	if !s.writeColor {
		c.backend.ColorMask(true, true, true, true)
	}
	return nil
}

func beginFog(s State, c *Context) error {
	switch s.fog {
	case FogStandard:
		// The level fog color is chosen by the world renderer.
		c.slogger().Debug("fog: level fog color not applied", "state", s.String())
		c.backend.Enable(gpucore.FeatureFog)
	case FogBlack:
		c.backend.FogColor(blackFog)
		c.backend.Enable(gpucore.FeatureFog)
	}
	return nil
}

func endFog(s State, c *Context) error {
	switch s.fog {
	case FogStandard:
		c.backend.Disable(gpucore.FeatureFog)
	case FogBlack:
		// The fog color is left black; restoring it is the world renderer's job.
		c.slogger().Debug("fog: level fog color not restored", "state", s.String())
		c.backend.Disable(gpucore.FeatureFog)
	}
	return nil
}

func beginTarget(s State, c *Context) error {
	switch s.target {
	case TargetOutline:
		c.backend.BindFramebuffer(gpucore.FramebufferOutline)
	case TargetTranslucent:
		if c.backend.FancyGraphics() {
			c.backend.BindFramebuffer(gpucore.FramebufferTranslucent)
		}
	}
	return nil
}

func endTarget(s State, c *Context) error {
	switch s.target {
	case TargetOutline:
		c.backend.BindFramebuffer(gpucore.FramebufferDefault)
	case TargetTranslucent:
		if c.backend.FancyGraphics() {
			c.backend.BindFramebuffer(gpucore.FramebufferDefault)
		}
	}
	return nil
}
