package state

import (
	"hash/maphash"
	"strconv"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/renderkit/gpucore"
)

// BlendMode is a named blend function pair used by Transparency states.
type BlendMode uint8

// Blend modes.
const (
	// BlendNone disables blending.
	BlendNone BlendMode = iota

	// BlendAdditive adds source to destination (One, One).
	BlendAdditive

	// BlendLightning adds alpha-weighted source (SrcAlpha, One).
	BlendLightning

	// BlendGlint multiplies source color into the destination and keeps
	// destination alpha.
	BlendGlint

	// BlendCrumbling is the block-breaking overlay blend.
	BlendCrumbling

	// BlendTranslucent is regular alpha blending with accumulated alpha.
	BlendTranslucent
)

var blendModeNames = [...]string{
	BlendNone:        "no_transparency",
	BlendAdditive:    "additive_transparency",
	BlendLightning:   "lightning_transparency",
	BlendGlint:       "glint_transparency",
	BlendCrumbling:   "crumbling_transparency",
	BlendTranslucent: "translucent_transparency",
}

// String returns the state name of the mode.
func (m BlendMode) String() string {
	if int(m) < len(blendModeNames) {
		return blendModeNames[m]
	}
	return "unknown_transparency"
}

// FogMode selects how fog is applied.
type FogMode uint8

// Fog modes.
const (
	// FogNone leaves fog untouched.
	FogNone FogMode = iota

	// FogStandard enables fog with the level fog color.
	FogStandard

	// FogBlack enables fog with an opaque black color.
	FogBlack
)

var fogModeNames = [...]string{
	FogNone:     "no_fog",
	FogStandard: "fog",
	FogBlack:    "black_fog",
}

// String returns the state name of the mode.
func (m FogMode) String() string {
	if int(m) < len(fogModeNames) {
		return fogModeNames[m]
	}
	return "unknown_fog"
}

// TargetKind names the framebuffer a Target state renders into.
type TargetKind uint8

// Targets.
const (
	// TargetMain is the main scene framebuffer.
	TargetMain TargetKind = iota

	// TargetOutline is the entity outline framebuffer.
	TargetOutline

	// TargetTranslucent is the translucent framebuffer used in fancy mode.
	TargetTranslucent
)

var targetNames = [...]string{
	TargetMain:        "main_target",
	TargetOutline:     "outline_target",
	TargetTranslucent: "translucent_target",
}

// String returns the state name of the target.
func (t TargetKind) String() string {
	if int(t) < len(targetNames) {
		return targetNames[t]
	}
	return "unknown_target"
}

// State is one axis of fixed-function GPU state.
//
// A State carries its kind and the fields that identify it, nothing else.
// It is comparable: two states built separately with the same arguments are
// equal with == and can be used as map keys or batch keys. The behavior
// applied by Begin and End is looked up from the kind.
//
// The zero State is not valid; Begin and End reject it.
type State struct {
	kind Kind

	blend  BlendMode
	fog    FogMode
	target TargetKind

	compare   gputypes.CompareFunction
	threshold float32

	resource gpucore.ResourceID
	bilinear bool
	mipmap   bool

	name    string
	enabled bool

	writeColor bool
	writeDepth bool
}

// Transparency returns the blending state for mode.
func Transparency(mode BlendMode) State {
	return State{kind: KindTransparency, blend: mode}
}

// Alpha returns an alpha test state. A threshold of zero or less disables
// the alpha test. NaN is treated as zero and negative zero as zero, so every
// threshold has exactly one representation.
func Alpha(threshold float32) State {
	if threshold != threshold || threshold == 0 {
		threshold = 0
	}
	return State{kind: KindAlpha, threshold: threshold}
}

// ShadeModel returns a shading state; smooth selects smooth shading.
func ShadeModel(smooth bool) State {
	return State{kind: KindShadeModel, enabled: smooth}
}

// Texture returns a state that enables texturing and binds the texture the
// game knows as id. An empty id is the same as NoTexture.
func Texture(id gpucore.ResourceID, bilinear, mipmap bool) State {
	if id == "" {
		return NoTexture()
	}
	return State{kind: KindTexture, resource: id, bilinear: bilinear, mipmap: mipmap}
}

// NoTexture returns a state that disables texturing for its bracket.
func NoTexture() State {
	return State{kind: KindTexture}
}

// Texturing returns a texture coordinate generation hook identified by name.
func Texturing(name string) State {
	return State{kind: KindTexturing, name: name}
}

// Lightmap returns a state that toggles the lightmap texture unit.
func Lightmap(enabled bool) State {
	return State{kind: KindLightmap, enabled: enabled}
}

// DiffuseLighting returns a state that toggles diffuse lighting.
func DiffuseLighting(enabled bool) State {
	return State{kind: KindDiffuseLighting, enabled: enabled}
}

// Cull returns a face culling state. Culling is assumed on; Cull(false)
// turns it off for its bracket.
func Cull(enabled bool) State {
	return State{kind: KindCull, enabled: enabled}
}

// DepthTest returns a depth test state. CompareFunctionAlways leaves the depth
// test untouched; CompareFunctionUndefined is treated as Always.
func DepthTest(fn gputypes.CompareFunction) State {
	if fn == gputypes.CompareFunctionUndefined {
		fn = gputypes.CompareFunctionAlways
	}
	return State{kind: KindDepthTest, compare: fn}
}

// WriteMask returns a state that masks color and/or depth writes.
func WriteMask(color, depth bool) State {
	return State{kind: KindWriteMask, writeColor: color, writeDepth: depth}
}

// Layering returns a multi-layer rendering hook identified by name.
func Layering(name string) State {
	return State{kind: KindLayering, name: name}
}

// Fog returns the fog state for mode.
func Fog(mode FogMode) State {
	return State{kind: KindFog, fog: mode}
}

// Target returns the framebuffer selection state for t.
func Target(t TargetKind) State {
	return State{kind: KindTarget, target: t}
}

// Kind returns the state category.
func (s State) Kind() Kind { return s.kind }

// Valid reports whether s was built by one of the constructors.
func (s State) Valid() bool { return s.kind.Valid() }

// BlendMode returns the blend mode of a Transparency state.
func (s State) BlendMode() BlendMode { return s.blend }

// FogMode returns the mode of a Fog state.
func (s State) FogMode() FogMode { return s.fog }

// TargetKind returns the framebuffer of a Target state.
func (s State) TargetKind() TargetKind { return s.target }

// Threshold returns the threshold of an Alpha state.
func (s State) Threshold() float32 { return s.threshold }

// DepthFunc returns the compare function of a DepthTest state.
func (s State) DepthFunc() gputypes.CompareFunction { return s.compare }

// Resource returns the texture of a Texture state and whether it has one.
func (s State) Resource() (gpucore.ResourceID, bool) {
	return s.resource, s.resource != ""
}

// Enabled returns the flag of a ShadeModel (smooth), Lightmap,
// DiffuseLighting or Cull state.
func (s State) Enabled() bool { return s.enabled }

// WritesColor reports whether a WriteMask state keeps color writes.
func (s State) WritesColor() bool { return s.writeColor }

// WritesDepth reports whether a WriteMask state keeps depth writes.
func (s State) WritesDepth() bool { return s.writeDepth }

// Hash returns a hash of the state consistent with ==.
func (s State) Hash(seed maphash.Seed) uint64 {
	return maphash.Comparable(seed, s)
}

// String returns the state in name[payload] form, e.g. "depth_test[<=]" or
// "write_mask_state[writeColor=true, writeDepth=false]". Named states print
// their name only.
func (s State) String() string {
	switch s.kind {
	case KindTransparency:
		return s.blend.String()
	case KindFog:
		return s.fog.String()
	case KindTarget:
		return s.target.String()
	case KindTexturing, KindLayering:
		return s.name
	case KindAlpha:
		return "alpha[" + formatThreshold(s.threshold) + "]"
	case KindShadeModel:
		if s.enabled {
			return "shade_model[smooth]"
		}
		return "shade_model[flat]"
	case KindTexture:
		id := string(s.resource)
		if id == "" {
			id = "none"
		}
		return "texture[" + id + "(blur=" + strconv.FormatBool(s.bilinear) +
			", mipmap=" + strconv.FormatBool(s.mipmap) + ")]"
	case KindLightmap, KindDiffuseLighting, KindCull:
		return s.kind.String() + "[" + strconv.FormatBool(s.enabled) + "]"
	case KindDepthTest:
		return "depth_test[" + depthLabel(s.compare) + "]"
	case KindWriteMask:
		return "write_mask_state[writeColor=" + strconv.FormatBool(s.writeColor) +
			", writeDepth=" + strconv.FormatBool(s.writeDepth) + "]"
	default:
		return "invalid_state"
	}
}

func formatThreshold(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

// depthLabel returns the short operator form of a compare function.
func depthLabel(fn gputypes.CompareFunction) string {
	switch fn {
	case gputypes.CompareFunctionNever:
		return "never"
	case gputypes.CompareFunctionLess:
		return "<"
	case gputypes.CompareFunctionEqual:
		return "=="
	case gputypes.CompareFunctionLessEqual:
		return "<="
	case gputypes.CompareFunctionGreater:
		return ">"
	case gputypes.CompareFunctionNotEqual:
		return "!="
	case gputypes.CompareFunctionGreaterEqual:
		return ">="
	case gputypes.CompareFunctionAlways:
		return "always"
	default:
		return "undefined"
	}
}
