// Package native implements gpucore.Backend on a gogpu/wgpu hal device.
//
// Textures map onto real device resources: GenTextures hands out IDs,
// TexImage2D creates the texture and its default view, TexParameters creates
// the sampler. Reallocating storage destroys the previous texture and view,
// but the ID stays the same, which is what render.CompositeTarget relies on
// across resizes.
//
// WebGPU has no global fixed-function context. The legacy state calls are
// folded into a [PipelineState] instead: blend, color write mask, depth
// compare, depth writes and culling land in the descriptor pieces a render
// pipeline is built from, and the rest (alpha test, fog, flat shading,
// texturing, lightmap) land in [FixedFunction], which a renderer uploads as
// shader uniforms.
//
// # Usage
//
//	b, err := native.New(device, native.WithFancyGraphics(true))
//	if err != nil {
//	    return err
//	}
//	defer b.Close()
//
//	ctx := state.NewContext(b, state.WithTextureResolver(textures))
//	if err := set.Begin(ctx); err != nil {
//	    return err
//	}
//	desc := b.PipelineState()
//
// Register makes a device available through the backend registry under
// the name "native".
package native
