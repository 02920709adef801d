// Package state provides value-identified fixed-function render states.
//
// A [State] describes one axis of GPU state: blending, alpha test, shading,
// bound texture, lightmap, diffuse lighting, culling, depth test, write
// masks, fog, framebuffer selection, and the texturing and layering hooks.
// States carry only the fields that identify them, so equal states compare
// equal with == and hash equally with [State.Hash]. A batch sorter uses that
// to merge consecutive draws that need no state change.
//
// # Brackets
//
// Every Begin is paired with exactly one End before another state of the
// same [Kind] begins. End returns to a fixed baseline for the kind, not to
// whatever was current before Begin:
//
//	ctx := state.NewContext(b, state.WithTextureResolver(textures))
//	if err := cat.TranslucentTransparency.Begin(ctx); err != nil {
//		return err
//	}
//	drawTranslucent()
//	return cat.TranslucentTransparency.End(ctx)
//
// The bracket rule is checked when the context is created with
// [WithTracking]; violations return [ErrBracketViolation] before the backend
// is touched.
//
// # Catalog and Sets
//
// [NewCatalog] builds the canonical instances once. A [Set] holds one state
// per kind and is itself comparable; [Transition] applies only the kinds that
// differ between two sets.
//
// # Unsupported Paths
//
// Lightmap and diffuse lighting need optional backend capabilities
// ([gpucore.LightmapController], [gpucore.DiffuseLightingController]). On a
// backend without them the enabled variants fail with [ErrNotImplemented].
package state
