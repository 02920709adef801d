package backend

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/renderkit/gpucore"
	"github.com/google/go-cmp/cmp"
)

func TestRecordingDefaultState(t *testing.T) {
	r := NewRecording()
	if got := r.State(); got != DefaultSnapshot() {
		t.Errorf("State() diff (-want +got):\n%s", cmp.Diff(DefaultSnapshot(), got))
	}
	if r.FancyGraphics() {
		t.Error("FancyGraphics() = true, want false by default")
	}
}

func TestRecordingOptions(t *testing.T) {
	r := NewRecording(WithInitialState(WorldSnapshot()), WithFancyGraphics(true))
	if r.State() != WorldSnapshot() {
		t.Error("WithInitialState was not applied")
	}
	if !r.FancyGraphics() {
		t.Error("WithFancyGraphics(true) was not applied")
	}

	quiet := NewRecording(WithoutCallLog())
	quiet.Enable(gpucore.FeatureBlend)
	if len(quiet.Calls()) != 0 {
		t.Errorf("Calls() = %v, want empty with WithoutCallLog", quiet.Calls())
	}
	if !quiet.State().Blend {
		t.Error("state must still be tracked with WithoutCallLog")
	}
}

func TestRecordingFixedFunction(t *testing.T) {
	r := NewRecording()
	r.Enable(gpucore.FeatureBlend)
	r.BlendFuncSeparate(gputypes.BlendFactorSrcAlpha, gputypes.BlendFactorOneMinusSrcAlpha,
		gputypes.BlendFactorOne, gputypes.BlendFactorOneMinusSrcAlpha)
	r.DepthFunc(gputypes.CompareFunctionEqual)
	r.AlphaFunc(gputypes.CompareFunctionGreater, 0.5)
	r.ColorMask(false, false, false, false)
	r.DepthMask(false)
	r.ShadeModel(gpucore.ShadeFlat)
	r.FogColor(gputypes.ColorBlack)
	r.BindFramebuffer(gpucore.FramebufferOutline)

	want := DefaultSnapshot()
	want.Blend = true
	want.BlendSrcRGB = gputypes.BlendFactorSrcAlpha
	want.BlendDstRGB = gputypes.BlendFactorOneMinusSrcAlpha
	want.BlendSrcAlpha = gputypes.BlendFactorOne
	want.BlendDstAlpha = gputypes.BlendFactorOneMinusSrcAlpha
	want.DepthFunc = gputypes.CompareFunctionEqual
	want.AlphaFunc = gputypes.CompareFunctionGreater
	want.AlphaRef = 0.5
	want.ColorMask = [4]bool{}
	want.DepthMask = false
	want.ShadeModel = gpucore.ShadeFlat
	want.FogColor = gputypes.ColorBlack
	want.Framebuffer = gpucore.FramebufferOutline

	if diff := cmp.Diff(want, r.State()); diff != "" {
		t.Errorf("State() mismatch (-want +got):\n%s", diff)
	}

	calls := r.Calls()
	if len(calls) != 9 {
		t.Fatalf("len(Calls()) = %d, want 9", len(calls))
	}
	if calls[0].Op != "Enable" || calls[0].Args != "Blend" {
		t.Errorf("Calls()[0] = %v, want Enable(Blend)", calls[0])
	}

	r.Reset()
	if len(r.Calls()) != 0 {
		t.Error("Reset() should clear the call log")
	}
	if !r.State().Blend {
		t.Error("Reset() must not change the context state")
	}
}

func TestRecordingBlendFuncSetsBothChannels(t *testing.T) {
	r := NewRecording()
	r.BlendFunc(gputypes.BlendFactorOne, gputypes.BlendFactorOne)
	s := r.State()
	if s.BlendSrcAlpha != gputypes.BlendFactorOne || s.BlendDstAlpha != gputypes.BlendFactorOne {
		t.Errorf("alpha factors = %v/%v, want One/One", s.BlendSrcAlpha, s.BlendDstAlpha)
	}
}

func TestRecordingTextureLifecycle(t *testing.T) {
	r := NewRecording()

	ids, err := r.GenTextures(2)
	if err != nil {
		t.Fatalf("GenTextures: %v", err)
	}
	if len(ids) != 2 || ids[0] == ids[1] || ids[0] == gpucore.InvalidID {
		t.Fatalf("GenTextures(2) = %v, want two distinct valid IDs", ids)
	}

	img := gpucore.TextureImage{
		Width: 64, Height: 32,
		InternalFormat: gputypes.TextureFormatRGBA8Unorm,
		Format:         gpucore.PixelFormatRGBA,
		Type:           gpucore.PixelTypeUnsignedByte,
	}
	if err := r.TexImage2D(ids[0], img); err != nil {
		t.Fatalf("TexImage2D: %v", err)
	}
	params := gpucore.SamplerParamsFor(img.InternalFormat)
	if err := r.TexParameters(ids[0], params); err != nil {
		t.Fatalf("TexParameters: %v", err)
	}
	r.BindTexture(ids[0])

	info, ok := r.Texture(ids[0])
	if !ok {
		t.Fatal("Texture() did not find an allocated texture")
	}
	want := TextureInfo{Image: img, Params: params, Uploads: 1}
	if diff := cmp.Diff(want, info); diff != "" {
		t.Errorf("Texture() mismatch (-want +got):\n%s", diff)
	}
	if r.LiveTextures() != 2 {
		t.Errorf("LiveTextures() = %d, want 2", r.LiveTextures())
	}

	r.DeleteTextures(ids)
	if r.State().BoundTexture != gpucore.InvalidID {
		t.Error("deleting the bound texture should reset the binding")
	}
	if r.LiveTextures() != 0 {
		t.Errorf("LiveTextures() = %d after delete, want 0", r.LiveTextures())
	}
	if len(r.Misuse()) != 0 {
		t.Errorf("Misuse() = %v, want none", r.Misuse())
	}
}

func TestRecordingMisuse(t *testing.T) {
	r := NewRecording()
	ids, _ := r.GenTextures(1)
	r.DeleteTextures(ids)
	r.DeleteTextures(ids)
	r.BindTexture(99)
	if err := r.TexParameters(99, gpucore.SamplerParams{}); !errors.Is(err, gpucore.ErrInvalidTexture) {
		t.Errorf("TexParameters(99) error = %v, want ErrInvalidTexture", err)
	}

	misuse := r.Misuse()
	if len(misuse) != 3 {
		t.Fatalf("len(Misuse()) = %d, want 3: %v", len(misuse), misuse)
	}
	for _, err := range misuse {
		if !errors.Is(err, gpucore.ErrInvalidTexture) {
			t.Errorf("misuse %v does not wrap ErrInvalidTexture", err)
		}
	}

	err := r.TexImage2D(ids[0], gpucore.TextureImage{Width: 1, Height: 1, InternalFormat: gputypes.TextureFormatRGBA8Unorm})
	if !errors.Is(err, gpucore.ErrInvalidTexture) {
		t.Errorf("TexImage2D on deleted texture = %v, want ErrInvalidTexture", err)
	}
}

func TestRecordingGenTexturesNegative(t *testing.T) {
	r := NewRecording()
	if _, err := r.GenTextures(-1); !errors.Is(err, ErrInvalidCount) {
		t.Errorf("GenTextures(-1) = %v, want ErrInvalidCount", err)
	}
}

func TestRecordingTexImageValidation(t *testing.T) {
	r := NewRecording()
	ids, _ := r.GenTextures(1)
	err := r.TexImage2D(ids[0], gpucore.TextureImage{Width: 0, Height: 4, InternalFormat: gputypes.TextureFormatRGBA8Unorm})
	if !errors.Is(err, gpucore.ErrInvalidImage) {
		t.Errorf("TexImage2D(0x4) = %v, want ErrInvalidImage", err)
	}
}

func TestRecordingControllers(t *testing.T) {
	r := NewRecording()
	r.EnableLightmap()
	r.EnableDiffuseLighting()
	if s := r.State(); !s.Lightmap || !s.DiffuseLighting {
		t.Errorf("after enable: lightmap=%v diffuse=%v", s.Lightmap, s.DiffuseLighting)
	}
	r.DisableLightmap()
	r.DisableDiffuseLighting()
	if s := r.State(); s.Lightmap || s.DiffuseLighting {
		t.Errorf("after disable: lightmap=%v diffuse=%v", s.Lightmap, s.DiffuseLighting)
	}
}

func TestRegistryRegisterAndGet(t *testing.T) {
	// Recording backend is auto-registered via init()
	if !IsRegistered(BackendRecording) {
		t.Fatal("recording backend should be auto-registered")
	}

	b, err := Get(BackendRecording)
	if err != nil {
		t.Fatalf("Get(recording): %v", err)
	}
	if _, ok := b.(*Recording); !ok {
		t.Errorf("Get(recording) = %T, want *Recording", b)
	}
}

func TestRegistryGetUnregistered(t *testing.T) {
	b, err := Get("nonexistent")
	if !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("Get(nonexistent) error = %v, want ErrBackendNotAvailable", err)
	}
	if b != nil {
		t.Error("Get(nonexistent) should return nil")
	}
}

func TestRegistryAvailable(t *testing.T) {
	found := false
	for _, name := range Available() {
		if name == BackendRecording {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Available() = %v, should include %q", Available(), BackendRecording)
	}
}

func TestRegistryDefault(t *testing.T) {
	if Default() == nil {
		t.Fatal("Default() returned nil")
	}
	if DefaultName() != BackendRecording {
		t.Logf("DefaultName() = %q (may vary based on available backends)", DefaultName())
	}
}

func TestRegistryMustDefault(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("MustDefault() panicked: %v", r)
		}
	}()
	if MustDefault() == nil {
		t.Error("MustDefault() returned nil")
	}
}

func TestRegistryPriority(t *testing.T) {
	Register(BackendNative, func() gpucore.Backend {
		return NewRecording(WithFancyGraphics(true))
	})
	defer Unregister(BackendNative)

	if DefaultName() != BackendNative {
		t.Errorf("DefaultName() = %q, want %q when native is registered", DefaultName(), BackendNative)
	}
	if !Default().FancyGraphics() {
		t.Error("Default() should come from the native factory")
	}
}

func TestRegistryUnregister(t *testing.T) {
	Register("test-backend", func() gpucore.Backend {
		return NewRecording()
	})
	if !IsRegistered("test-backend") {
		t.Error("test-backend should be registered")
	}

	Unregister("test-backend")
	if IsRegistered("test-backend") {
		t.Error("test-backend should be unregistered")
	}
}

func BenchmarkRecordingFixedFunction(b *testing.B) {
	r := NewRecording(WithoutCallLog())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Enable(gpucore.FeatureBlend)
		r.BlendFunc(gputypes.BlendFactorOne, gputypes.BlendFactorOne)
		r.Disable(gpucore.FeatureBlend)
	}
}
