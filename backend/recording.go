package backend

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/renderkit/gpucore"
)

// Snapshot is the fixed-function context modeled by the recording backend.
// It is comparable, so tests can assert a whole context with ==.
type Snapshot struct {
	Blend     bool
	DepthTest bool
	AlphaTest bool
	CullFace  bool
	Fog       bool
	Texture2D bool

	BlendSrcRGB   gputypes.BlendFactor
	BlendDstRGB   gputypes.BlendFactor
	BlendSrcAlpha gputypes.BlendFactor
	BlendDstAlpha gputypes.BlendFactor

	DepthFunc gputypes.CompareFunction
	AlphaFunc gputypes.CompareFunction
	AlphaRef  float32
	FogColor  gputypes.Color

	ShadeModel gpucore.ShadeModel
	ColorMask  [4]bool
	DepthMask  bool

	BoundTexture gpucore.TextureID
	Framebuffer  gpucore.Framebuffer

	Lightmap        bool
	DiffuseLighting bool
}

// DefaultSnapshot returns the context a freshly created GL context starts in.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		BlendSrcRGB:   gputypes.BlendFactorOne,
		BlendDstRGB:   gputypes.BlendFactorZero,
		BlendSrcAlpha: gputypes.BlendFactorOne,
		BlendDstAlpha: gputypes.BlendFactorZero,
		DepthFunc:     gputypes.CompareFunctionLess,
		AlphaFunc:     gputypes.CompareFunctionAlways,
		ShadeModel:    gpucore.ShadeSmooth,
		ColorMask:     [4]bool{true, true, true, true},
		DepthMask:     true,
	}
}

// WorldSnapshot returns the context the game leaves in place while drawing
// the world: textured, culled, depth-tested with less-or-equal.
func WorldSnapshot() Snapshot {
	s := DefaultSnapshot()
	s.DepthTest = true
	s.DepthFunc = gputypes.CompareFunctionLessEqual
	s.CullFace = true
	s.Texture2D = true
	s.ShadeModel = gpucore.ShadeFlat
	return s
}

// Call is one recorded backend call.
type Call struct {
	Op   string
	Args string
}

// String returns the call as "Op(Args)".
func (c Call) String() string {
	return c.Op + "(" + c.Args + ")"
}

// TextureInfo is what the recording backend knows about a texture.
type TextureInfo struct {
	Image   gpucore.TextureImage
	Params  gpucore.SamplerParams
	Uploads int
	Deleted bool
}

// RecordingOption configures a Recording backend.
type RecordingOption func(*Recording)

// WithInitialState sets the context the backend starts in.
func WithInitialState(s Snapshot) RecordingOption {
	return func(r *Recording) {
		r.state = s
	}
}

// WithFancyGraphics sets the value reported by FancyGraphics.
func WithFancyGraphics(fancy bool) RecordingOption {
	return func(r *Recording) {
		r.fancy = fancy
	}
}

// WithoutCallLog disables the call log. Context state and textures are
// still tracked.
func WithoutCallLog() RecordingOption {
	return func(r *Recording) {
		r.noLog = true
	}
}

// Recording is an in-memory backend that models the fixed-function context
// and the texture table, and logs every call it receives.
//
// It is the always-available fallback backend and the backend the other
// packages test against. Misuse that a real driver would silently accept
// (double frees, uploads to unknown textures) is collected in Misuse.
type Recording struct {
	state    Snapshot
	fancy    bool
	noLog    bool
	calls    []Call
	textures map[gpucore.TextureID]*TextureInfo
	nextID   gpucore.TextureID
	misuse   []error
}

// init registers the recording backend on package import.
func init() {
	Register(BackendRecording, func() gpucore.Backend {
		return NewRecording()
	})
}

// NewRecording creates a recording backend in DefaultSnapshot state.
func NewRecording(opts ...RecordingOption) *Recording {
	r := &Recording{
		state:    DefaultSnapshot(),
		textures: make(map[gpucore.TextureID]*TextureInfo),
		nextID:   1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Ensure Recording implements the backend contract and both optional controllers.
var (
	_ gpucore.Backend                   = (*Recording)(nil)
	_ gpucore.LightmapController        = (*Recording)(nil)
	_ gpucore.DiffuseLightingController = (*Recording)(nil)
)

func (r *Recording) record(op string, args ...any) {
	if r.noLog {
		return
	}
	var s string
	for i, a := range args {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprint(a)
	}
	r.calls = append(r.calls, Call{Op: op, Args: s})
}

func (r *Recording) feature(f gpucore.Feature) *bool {
	switch f {
	case gpucore.FeatureBlend:
		return &r.state.Blend
	case gpucore.FeatureDepthTest:
		return &r.state.DepthTest
	case gpucore.FeatureAlphaTest:
		return &r.state.AlphaTest
	case gpucore.FeatureCullFace:
		return &r.state.CullFace
	case gpucore.FeatureFog:
		return &r.state.Fog
	case gpucore.FeatureTexture2D:
		return &r.state.Texture2D
	default:
		return nil
	}
}

// Enable turns a feature on.
func (r *Recording) Enable(f gpucore.Feature) {
	r.record("Enable", f)
	if p := r.feature(f); p != nil {
		*p = true
		return
	}
	r.misuse = append(r.misuse, fmt.Errorf("enable of unknown feature %d", f))
}

// Disable turns a feature off.
func (r *Recording) Disable(f gpucore.Feature) {
	r.record("Disable", f)
	if p := r.feature(f); p != nil {
		*p = false
		return
	}
	r.misuse = append(r.misuse, fmt.Errorf("disable of unknown feature %d", f))
}

// BlendFunc sets the same factors for color and alpha.
func (r *Recording) BlendFunc(src, dst gputypes.BlendFactor) {
	r.record("BlendFunc", src, dst)
	r.state.BlendSrcRGB, r.state.BlendDstRGB = src, dst
	r.state.BlendSrcAlpha, r.state.BlendDstAlpha = src, dst
}

// BlendFuncSeparate sets separate factors for color and alpha.
func (r *Recording) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha gputypes.BlendFactor) {
	r.record("BlendFuncSeparate", srcRGB, dstRGB, srcAlpha, dstAlpha)
	r.state.BlendSrcRGB, r.state.BlendDstRGB = srcRGB, dstRGB
	r.state.BlendSrcAlpha, r.state.BlendDstAlpha = srcAlpha, dstAlpha
}

// DepthFunc sets the depth comparison function.
func (r *Recording) DepthFunc(fn gputypes.CompareFunction) {
	r.record("DepthFunc", fn)
	r.state.DepthFunc = fn
}

// AlphaFunc sets the alpha test comparison and reference value.
func (r *Recording) AlphaFunc(fn gputypes.CompareFunction, ref float32) {
	r.record("AlphaFunc", fn, ref)
	r.state.AlphaFunc, r.state.AlphaRef = fn, ref
}

// FogColor sets the fog color.
func (r *Recording) FogColor(c gputypes.Color) {
	r.record("FogColor", c.R, c.G, c.B, c.A)
	r.state.FogColor = c
}

// ShadeModel selects flat or smooth shading.
func (r *Recording) ShadeModel(m gpucore.ShadeModel) {
	r.record("ShadeModel", m)
	r.state.ShadeModel = m
}

// ColorMask enables or disables writes per color channel.
func (r *Recording) ColorMask(red, green, blue, alpha bool) {
	r.record("ColorMask", red, green, blue, alpha)
	r.state.ColorMask = [4]bool{red, green, blue, alpha}
}

// DepthMask enables or disables depth writes.
func (r *Recording) DepthMask(write bool) {
	r.record("DepthMask", write)
	r.state.DepthMask = write
}

// GenTextures allocates n texture IDs without storage.
func (r *Recording) GenTextures(n int) ([]gpucore.TextureID, error) {
	r.record("GenTextures", n)
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, n)
	}
	ids := make([]gpucore.TextureID, n)
	for i := range ids {
		id := r.nextID
		r.nextID++
		r.textures[id] = &TextureInfo{}
		ids[i] = id
	}
	return ids, nil
}

// live returns the texture info for id if it exists and was not deleted.
func (r *Recording) live(id gpucore.TextureID) (*TextureInfo, bool) {
	info, ok := r.textures[id]
	if !ok || info.Deleted {
		return nil, false
	}
	return info, true
}

// BindTexture binds a texture; InvalidID unbinds.
func (r *Recording) BindTexture(id gpucore.TextureID) {
	r.record("BindTexture", id)
	if id != gpucore.InvalidID {
		if _, ok := r.live(id); !ok {
			r.misuse = append(r.misuse, fmt.Errorf("%w: bind of texture %d", gpucore.ErrInvalidTexture, id))
		}
	}
	r.state.BoundTexture = id
}

// TexParameters sets filtering and wrap parameters of a texture.
func (r *Recording) TexParameters(id gpucore.TextureID, p gpucore.SamplerParams) error {
	r.record("TexParameters", id, p.MinFilter, p.MagFilter, p.WrapS, p.WrapT)
	info, ok := r.live(id)
	if !ok {
		err := fmt.Errorf("%w: parameters of texture %d", gpucore.ErrInvalidTexture, id)
		r.misuse = append(r.misuse, err)
		return err
	}
	info.Params = p
	return nil
}

// TexImage2D (re)allocates the storage of a texture.
func (r *Recording) TexImage2D(id gpucore.TextureID, img gpucore.TextureImage) error {
	r.record("TexImage2D", id, img.Width, img.Height, img.InternalFormat, img.Format, img.Type)
	if err := gpucore.ValidateImage(img); err != nil {
		return err
	}
	info, ok := r.live(id)
	if !ok {
		return fmt.Errorf("%w: upload to texture %d", gpucore.ErrInvalidTexture, id)
	}
	info.Image = img
	info.Uploads++
	return nil
}

// DeleteTextures releases a batch of textures. Deleting an unknown or
// already deleted texture is recorded as misuse.
func (r *Recording) DeleteTextures(ids []gpucore.TextureID) {
	r.record("DeleteTextures", fmt.Sprint(ids))
	for _, id := range ids {
		info, ok := r.live(id)
		if !ok {
			r.misuse = append(r.misuse, fmt.Errorf("%w: double free of texture %d", gpucore.ErrInvalidTexture, id))
			continue
		}
		info.Deleted = true
		if r.state.BoundTexture == id {
			r.state.BoundTexture = gpucore.InvalidID
		}
	}
}

// BindFramebuffer makes fb the current render destination.
func (r *Recording) BindFramebuffer(fb gpucore.Framebuffer) {
	r.record("BindFramebuffer", fb)
	r.state.Framebuffer = fb
}

// FancyGraphics reports the configured graphics mode.
func (r *Recording) FancyGraphics() bool {
	return r.fancy
}

// SetFancyGraphics changes the value reported by FancyGraphics.
func (r *Recording) SetFancyGraphics(fancy bool) {
	r.fancy = fancy
}

// EnableLightmap activates the lightmap texture unit.
func (r *Recording) EnableLightmap() {
	r.record("EnableLightmap")
	r.state.Lightmap = true
}

// DisableLightmap deactivates the lightmap texture unit.
func (r *Recording) DisableLightmap() {
	r.record("DisableLightmap")
	r.state.Lightmap = false
}

// EnableDiffuseLighting applies diffuse lighting.
func (r *Recording) EnableDiffuseLighting() {
	r.record("EnableDiffuseLighting")
	r.state.DiffuseLighting = true
}

// DisableDiffuseLighting removes diffuse lighting.
func (r *Recording) DisableDiffuseLighting() {
	r.record("DisableDiffuseLighting")
	r.state.DiffuseLighting = false
}

// State returns the current modeled context.
func (r *Recording) State() Snapshot {
	return r.state
}

// Calls returns a copy of the call log.
func (r *Recording) Calls() []Call {
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Reset clears the call log and misuse list. Context state and textures are kept.
func (r *Recording) Reset() {
	r.calls = r.calls[:0]
	r.misuse = nil
}

// Texture returns what is known about a texture. The boolean is false for
// IDs that were never allocated.
func (r *Recording) Texture(id gpucore.TextureID) (TextureInfo, bool) {
	info, ok := r.textures[id]
	if !ok {
		return TextureInfo{}, false
	}
	return *info, true
}

// LiveTextures returns the number of allocated, not yet deleted textures.
func (r *Recording) LiveTextures() int {
	n := 0
	for _, info := range r.textures {
		if !info.Deleted {
			n++
		}
	}
	return n
}

// Misuse returns the misuse detected so far.
func (r *Recording) Misuse() []error {
	out := make([]error, len(r.misuse))
	copy(out, r.misuse)
	return out
}
