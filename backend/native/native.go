package native

import (
	"log/slog"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/renderkit"
	"github.com/gogpu/renderkit/backend"
	"github.com/gogpu/renderkit/gpucore"
	"github.com/gogpu/wgpu/hal"
)

// DefaultTextureUsage is the usage every texture is created with unless
// WithUsage overrides it. Composite targets are both rendered to and
// sampled, and copied for readback.
const DefaultTextureUsage = gputypes.TextureUsageTextureBinding |
	gputypes.TextureUsageRenderAttachment |
	gputypes.TextureUsageCopySrc |
	gputypes.TextureUsageCopyDst

// Option configures a Backend.
type Option func(*Backend)

// WithFancyGraphics sets the value FancyGraphics reports.
func WithFancyGraphics(fancy bool) Option {
	return func(b *Backend) {
		b.fancy = fancy
	}
}

// WithLabel sets the prefix of the debug labels of created resources.
// The default is "renderkit".
func WithLabel(label string) Option {
	return func(b *Backend) {
		b.label = label
	}
}

// WithUsage overrides the usage flags textures are created with.
func WithUsage(usage gputypes.TextureUsage) Option {
	return func(b *Backend) {
		b.usage = usage
	}
}

// WithColorFormat sets the color attachment format reported in
// PipelineState. The default is BGRA8Unorm.
func WithColorFormat(f gputypes.TextureFormat) Option {
	return func(b *Backend) {
		b.colorFormat = f
	}
}

// WithLogger sets the logger misuse is reported to. By default
// renderkit.Logger() is used.
func WithLogger(l *slog.Logger) Option {
	return func(b *Backend) {
		b.logger = l
	}
}

// fixedState is the emulated fixed-function context.
type fixedState struct {
	features map[gpucore.Feature]bool

	blend     [4]gputypes.BlendFactor
	depthFunc gputypes.CompareFunction
	alphaFunc gputypes.CompareFunction
	alphaRef  float32
	fogColor  gputypes.Color
	shade     gpucore.ShadeModel
	colorMask [4]bool
	depthMask bool

	texture     gpucore.TextureID
	framebuffer gpucore.Framebuffer

	lightmap        bool
	diffuseLighting bool
}

func defaultFixedState() fixedState {
	return fixedState{
		features: make(map[gpucore.Feature]bool),
		blend: [4]gputypes.BlendFactor{
			gputypes.BlendFactorOne, gputypes.BlendFactorZero,
			gputypes.BlendFactorOne, gputypes.BlendFactorZero,
		},
		depthFunc: gputypes.CompareFunctionLess,
		alphaFunc: gputypes.CompareFunctionAlways,
		shade:     gpucore.ShadeSmooth,
		colorMask: [4]bool{true, true, true, true},
		depthMask: true,
	}
}

// Backend drives a hal.Device through the gpucore.Backend interface.
//
// Backend is safe for concurrent use, although render states are normally
// driven from a single render thread.
type Backend struct {
	mu sync.Mutex

	device      hal.Device
	label       string
	usage       gputypes.TextureUsage
	colorFormat gputypes.TextureFormat
	fancy       bool
	logger      *slog.Logger

	state    fixedState
	nextID   gpucore.TextureID
	textures map[gpucore.TextureID]*texture
	closed   bool
}

// Ensure Backend implements gpucore.Backend and the optional controllers.
var (
	_ gpucore.Backend                   = (*Backend)(nil)
	_ gpucore.LightmapController        = (*Backend)(nil)
	_ gpucore.DiffuseLightingController = (*Backend)(nil)
)

// New creates a backend on device. The device is borrowed: Close releases
// the resources the backend created but leaves the device alive.
func New(device hal.Device, opts ...Option) (*Backend, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	b := &Backend{
		device:      device,
		label:       "renderkit",
		usage:       DefaultTextureUsage,
		colorFormat: gputypes.TextureFormatBGRA8Unorm,
		state:       defaultFixedState(),
		nextID:      1,
		textures:    make(map[gpucore.TextureID]*texture),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Register makes device available from the backend registry under
// backend.BackendNative. Each registry lookup creates a new Backend with
// opts. Native has the highest registry priority, so after Register it is
// what backend.Default returns.
func Register(device hal.Device, opts ...Option) error {
	if device == nil {
		return ErrNilDevice
	}
	backend.Register(backend.BackendNative, func() gpucore.Backend {
		b, err := New(device, opts...)
		if err != nil {
			return nil
		}
		return b
	})
	return nil
}

func (b *Backend) slogger() *slog.Logger {
	if b.logger != nil {
		return b.logger
	}
	return renderkit.Logger()
}

func (b *Backend) misuse(msg string, args ...any) {
	b.slogger().Warn("native: "+msg, args...)
}

func knownFeature(f gpucore.Feature) bool {
	return f >= gpucore.FeatureBlend && f <= gpucore.FeatureTexture2D
}

// Enable turns a feature on.
func (b *Backend) Enable(f gpucore.Feature) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !knownFeature(f) {
		b.misuse("enable of unknown feature", "feature", f)
		return
	}
	b.state.features[f] = true
}

// Disable turns a feature off.
func (b *Backend) Disable(f gpucore.Feature) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !knownFeature(f) {
		b.misuse("disable of unknown feature", "feature", f)
		return
	}
	b.state.features[f] = false
}

// BlendFunc sets the same factors for color and alpha.
func (b *Backend) BlendFunc(src, dst gputypes.BlendFactor) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.blend = [4]gputypes.BlendFactor{src, dst, src, dst}
}

// BlendFuncSeparate sets separate factors for color and alpha.
func (b *Backend) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha gputypes.BlendFactor) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.blend = [4]gputypes.BlendFactor{srcRGB, dstRGB, srcAlpha, dstAlpha}
}

// DepthFunc sets the depth comparison function.
func (b *Backend) DepthFunc(fn gputypes.CompareFunction) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.depthFunc = fn
}

// AlphaFunc sets the alpha test comparison and reference value.
func (b *Backend) AlphaFunc(fn gputypes.CompareFunction, ref float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.alphaFunc, b.state.alphaRef = fn, ref
}

// FogColor sets the fog color.
func (b *Backend) FogColor(c gputypes.Color) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.fogColor = c
}

// ShadeModel selects flat or smooth shading.
func (b *Backend) ShadeModel(m gpucore.ShadeModel) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.shade = m
}

// ColorMask enables or disables writes per color channel.
func (b *Backend) ColorMask(red, green, blue, alpha bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.colorMask = [4]bool{red, green, blue, alpha}
}

// DepthMask enables or disables depth writes.
func (b *Backend) DepthMask(write bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.depthMask = write
}

// BindFramebuffer makes fb the current render destination.
func (b *Backend) BindFramebuffer(fb gpucore.Framebuffer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.framebuffer = fb
}

// FancyGraphics reports the value set with WithFancyGraphics.
func (b *Backend) FancyGraphics() bool {
	return b.fancy
}

// EnableLightmap activates the lightmap texture unit.
func (b *Backend) EnableLightmap() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.lightmap = true
}

// DisableLightmap deactivates the lightmap texture unit.
func (b *Backend) DisableLightmap() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.lightmap = false
}

// EnableDiffuseLighting applies diffuse lighting.
func (b *Backend) EnableDiffuseLighting() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.diffuseLighting = true
}

// DisableDiffuseLighting removes diffuse lighting.
func (b *Backend) DisableDiffuseLighting() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.diffuseLighting = false
}

// Close destroys every texture, view and sampler the backend created.
// Texture operations fail with ErrClosed afterwards. Close is idempotent.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	for id, tex := range b.textures {
		tex.destroy(b.device)
		delete(b.textures, id)
	}
	b.state.texture = gpucore.InvalidID
	b.closed = true
}
