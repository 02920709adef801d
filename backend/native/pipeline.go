package native

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/renderkit/gpucore"
	"github.com/gogpu/wgpu/hal"
)

// DepthStencilFormat is the depth attachment format reported in
// PipelineState.
const DepthStencilFormat = gputypes.TextureFormatDepth24PlusStencil8

// FixedFunction holds the parts of the emulated context that WebGPU leaves
// to shaders. Renderers upload it as a uniform block.
type FixedFunction struct {
	AlphaTest bool
	AlphaFunc gputypes.CompareFunction
	AlphaRef  float32

	Fog      bool
	FogColor gputypes.Color

	FlatShading bool

	Texturing bool
	Texture   gpucore.TextureID

	Lightmap        bool
	DiffuseLighting bool

	Framebuffer gpucore.Framebuffer
}

// PipelineState is the emulated fixed-function context expressed as render
// pipeline descriptor pieces.
type PipelineState struct {
	// ColorTarget has a nil Blend when blending is disabled.
	ColorTarget gputypes.ColorTargetState

	// DepthStencil is nil when the depth test is disabled.
	DepthStencil *hal.DepthStencilState

	Primitive gputypes.PrimitiveState

	Uniforms FixedFunction
}

// PipelineState returns the current context as pipeline descriptor pieces.
func (b *Backend) PipelineState() PipelineState {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := &b.state

	ps := PipelineState{
		ColorTarget: gputypes.ColorTargetState{
			Format:    b.colorFormat,
			WriteMask: colorWriteMask(s.colorMask),
		},
		Primitive: gputypes.PrimitiveState{
			Topology:  gputypes.PrimitiveTopologyTriangleList,
			FrontFace: gputypes.FrontFaceCCW,
			CullMode:  gputypes.CullModeNone,
		},
		Uniforms: FixedFunction{
			AlphaTest:       s.features[gpucore.FeatureAlphaTest],
			AlphaFunc:       s.alphaFunc,
			AlphaRef:        s.alphaRef,
			Fog:             s.features[gpucore.FeatureFog],
			FogColor:        s.fogColor,
			FlatShading:     s.shade == gpucore.ShadeFlat,
			Texturing:       s.features[gpucore.FeatureTexture2D],
			Texture:         s.texture,
			Lightmap:        s.lightmap,
			DiffuseLighting: s.diffuseLighting,
			Framebuffer:     s.framebuffer,
		},
	}
	if s.features[gpucore.FeatureBlend] {
		ps.ColorTarget.Blend = &gputypes.BlendState{
			Color: gputypes.BlendComponent{
				SrcFactor: s.blend[0],
				DstFactor: s.blend[1],
				Operation: gputypes.BlendOperationAdd,
			},
			Alpha: gputypes.BlendComponent{
				SrcFactor: s.blend[2],
				DstFactor: s.blend[3],
				Operation: gputypes.BlendOperationAdd,
			},
		}
	}
	if s.features[gpucore.FeatureDepthTest] {
		ps.DepthStencil = &hal.DepthStencilState{
			Format:            DepthStencilFormat,
			DepthWriteEnabled: s.depthMask,
			DepthCompare:      s.depthFunc,
			StencilFront:      keepStencil(),
			StencilBack:       keepStencil(),
		}
	}
	if s.features[gpucore.FeatureCullFace] {
		ps.Primitive.CullMode = gputypes.CullModeBack
	}
	return ps
}

// keepStencil leaves the stencil buffer untouched.
func keepStencil() hal.StencilFaceState {
	return hal.StencilFaceState{
		Compare:     gputypes.CompareFunctionAlways,
		FailOp:      hal.StencilOperationKeep,
		DepthFailOp: hal.StencilOperationKeep,
		PassOp:      hal.StencilOperationKeep,
	}
}

func colorWriteMask(m [4]bool) gputypes.ColorWriteMask {
	var mask gputypes.ColorWriteMask
	if m[0] {
		mask |= gputypes.ColorWriteMaskRed
	}
	if m[1] {
		mask |= gputypes.ColorWriteMaskGreen
	}
	if m[2] {
		mask |= gputypes.ColorWriteMaskBlue
	}
	if m[3] {
		mask |= gputypes.ColorWriteMaskAlpha
	}
	return mask
}
