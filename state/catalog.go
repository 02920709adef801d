package state

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/renderkit/gpucore"
)

// DefaultBlockAtlas is the resource ID of the block texture atlas.
const DefaultBlockAtlas gpucore.ResourceID = "textures/atlas/blocks.png"

// CatalogOption configures a Catalog during creation.
type CatalogOption func(*catalogOptions)

type catalogOptions struct {
	blockAtlas gpucore.ResourceID
}

// WithBlockAtlas sets the resource the block atlas texture states bind.
func WithBlockAtlas(id gpucore.ResourceID) CatalogOption {
	return func(o *catalogOptions) {
		o.blockAtlas = id
	}
}

// Catalog holds the canonical state instances a renderer composes its
// state sets from. Build it once with NewCatalog at renderer setup and pass
// it to the code that needs it; it is never modified afterwards.
type Catalog struct {
	NoTransparency          State
	AdditiveTransparency    State
	LightningTransparency   State
	GlintTransparency       State
	CrumblingTransparency   State
	TranslucentTransparency State

	ZeroAlpha     State
	OneTenthAlpha State
	HalfAlpha     State

	ShadeModel       State
	SmoothShadeModel State

	MipmapBlockAtlasTexture State
	BlockAtlasTexture       State
	NoTexture               State

	DefaultTexturing State

	EnableLightmap  State
	DisableLightmap State

	EnableDiffuseLighting  State
	DisableDiffuseLighting State

	EnableCulling  State
	DisableCulling State

	AlwaysDepthTest State
	EqualDepthTest  State
	LequalDepthTest State

	AllMask   State
	ColorMask State
	DepthMask State

	NoLayering State

	NoFog    State
	Fog      State
	BlackFog State

	MainTarget        State
	OutlineTarget     State
	TranslucentTarget State

	all    []State
	byName map[string]State
}

// NewCatalog builds the canonical state instances.
func NewCatalog(opts ...CatalogOption) *Catalog {
	o := catalogOptions{blockAtlas: DefaultBlockAtlas}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Catalog{
		NoTransparency:          Transparency(BlendNone),
		AdditiveTransparency:    Transparency(BlendAdditive),
		LightningTransparency:   Transparency(BlendLightning),
		GlintTransparency:       Transparency(BlendGlint),
		CrumblingTransparency:   Transparency(BlendCrumbling),
		TranslucentTransparency: Transparency(BlendTranslucent),

		ZeroAlpha:     Alpha(0),
		OneTenthAlpha: Alpha(0.003921569), // 1/255
		HalfAlpha:     Alpha(0.5),

		ShadeModel:       ShadeModel(false),
		SmoothShadeModel: ShadeModel(true),

		MipmapBlockAtlasTexture: Texture(o.blockAtlas, false, true),
		BlockAtlasTexture:       Texture(o.blockAtlas, false, false),
		NoTexture:               NoTexture(),

		DefaultTexturing: Texturing("default_texturing"),

		EnableLightmap:  Lightmap(true),
		DisableLightmap: Lightmap(false),

		EnableDiffuseLighting:  DiffuseLighting(true),
		DisableDiffuseLighting: DiffuseLighting(false),

		EnableCulling:  Cull(true),
		DisableCulling: Cull(false),

		AlwaysDepthTest: DepthTest(gputypes.CompareFunctionAlways),
		EqualDepthTest:  DepthTest(gputypes.CompareFunctionEqual),
		LequalDepthTest: DepthTest(gputypes.CompareFunctionLessEqual),

		AllMask:   WriteMask(true, true),
		ColorMask: WriteMask(true, false),
		DepthMask: WriteMask(false, true),

		NoLayering: Layering("no_layering"),

		NoFog:    Fog(FogNone),
		Fog:      Fog(FogStandard),
		BlackFog: Fog(FogBlack),

		MainTarget:        Target(TargetMain),
		OutlineTarget:     Target(TargetOutline),
		TranslucentTarget: Target(TargetTranslucent),
	}

	c.all = []State{
		c.NoTransparency, c.AdditiveTransparency, c.LightningTransparency,
		c.GlintTransparency, c.CrumblingTransparency, c.TranslucentTransparency,
		c.ZeroAlpha, c.OneTenthAlpha, c.HalfAlpha,
		c.ShadeModel, c.SmoothShadeModel,
		c.MipmapBlockAtlasTexture, c.BlockAtlasTexture, c.NoTexture,
		c.DefaultTexturing,
		c.EnableLightmap, c.DisableLightmap,
		c.EnableDiffuseLighting, c.DisableDiffuseLighting,
		c.EnableCulling, c.DisableCulling,
		c.AlwaysDepthTest, c.EqualDepthTest, c.LequalDepthTest,
		c.AllMask, c.ColorMask, c.DepthMask,
		c.NoLayering,
		c.NoFog, c.Fog, c.BlackFog,
		c.MainTarget, c.OutlineTarget, c.TranslucentTarget,
	}
	c.byName = make(map[string]State, len(c.all))
	for _, s := range c.all {
		c.byName[s.String()] = s
	}
	return c
}

// All returns every canonical state in declaration order.
func (c *Catalog) All() []State {
	out := make([]State, len(c.all))
	copy(out, c.all)
	return out
}

// Lookup returns the canonical state whose String() is name.
func (c *Catalog) Lookup(name string) (State, bool) {
	s, ok := c.byName[name]
	return s, ok
}

// Default returns the state set the game renders opaque world geometry with.
func (c *Catalog) Default() Set {
	return Set{}.
		With(c.MipmapBlockAtlasTexture).
		With(c.NoTransparency).
		With(c.DisableDiffuseLighting).
		With(c.ShadeModel).
		With(c.ZeroAlpha).
		With(c.LequalDepthTest).
		With(c.EnableCulling).
		With(c.DisableLightmap).
		With(c.Fog).
		With(c.NoLayering).
		With(c.MainTarget).
		With(c.DefaultTexturing).
		With(c.AllMask)
}
