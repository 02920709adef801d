package state

// Kind is the state category a State belongs to. At most one state of each
// kind is active at a time.
//
// Kinds are declared in the order a Set begins them.
type Kind uint8

// State kinds.
const (
	// KindTexture binds a texture or disables texturing.
	KindTexture Kind = iota + 1

	// KindTransparency selects the blend function.
	KindTransparency

	// KindDiffuseLighting toggles the fixed diffuse lighting setup.
	KindDiffuseLighting

	// KindShadeModel selects flat or smooth shading.
	KindShadeModel

	// KindAlpha sets the alpha test threshold.
	KindAlpha

	// KindDepthTest selects the depth comparison.
	KindDepthTest

	// KindCull toggles face culling.
	KindCull

	// KindLightmap toggles the lightmap texture unit.
	KindLightmap

	// KindFog selects the fog mode.
	KindFog

	// KindLayering is a hook for multi-layer rendering.
	KindLayering

	// KindTarget selects the framebuffer.
	KindTarget

	// KindTexturing is a hook for texture coordinate generation.
	KindTexturing

	// KindWriteMask masks color and depth writes.
	KindWriteMask
)

// numKinds is the number of valid kinds.
const numKinds = int(KindWriteMask)

var kindNames = [numKinds + 1]string{
	KindTexture:         "texture",
	KindTransparency:    "transparency",
	KindDiffuseLighting: "diffuse_lighting",
	KindShadeModel:      "shade_model",
	KindAlpha:           "alpha",
	KindDepthTest:       "depth_test",
	KindCull:            "cull",
	KindLightmap:        "lightmap",
	KindFog:             "fog",
	KindLayering:        "layering",
	KindTarget:          "target",
	KindTexturing:       "texturing",
	KindWriteMask:       "write_mask_state",
}

// String returns the category name.
func (k Kind) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return kindNames[k]
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= KindTexture && k <= KindWriteMask
}

// Kinds returns every kind in begin order.
func Kinds() []Kind {
	out := make([]Kind, 0, numKinds)
	for k := KindTexture; k <= KindWriteMask; k++ {
		out = append(out, k)
	}
	return out
}

// index maps a valid kind to a zero-based slot.
func (k Kind) index() int {
	return int(k) - 1
}
