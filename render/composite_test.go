// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/renderkit/backend"
	"github.com/gogpu/renderkit/gpucore"
	"github.com/google/go-cmp/cmp"
)

// errUpload is returned by failingBackend once its upload budget is spent.
var errUpload = errors.New("upload failed")

// errSampler is returned by failingBackend when failParams is set.
var errSampler = errors.New("sampler failed")

// failingBackend fails TexImage2D after the first ok uploads. With
// failures set, only that many uploads fail and later ones succeed again.
type failingBackend struct {
	*backend.Recording
	ok         int
	failures   int
	failed     int
	failParams bool
}

func (f *failingBackend) TexImage2D(id gpucore.TextureID, img gpucore.TextureImage) error {
	if f.ok > 0 {
		f.ok--
		return f.Recording.TexImage2D(id, img)
	}
	if f.failures == 0 || f.failed < f.failures {
		f.failed++
		return errUpload
	}
	return f.Recording.TexImage2D(id, img)
}

func (f *failingBackend) TexParameters(id gpucore.TextureID, p gpucore.SamplerParams) error {
	if f.failParams {
		return errSampler
	}
	return f.Recording.TexParameters(id, p)
}

// imageSize returns the dimensions of the storage last uploaded to id.
func imageSize(t *testing.T, rec *backend.Recording, id gpucore.TextureID) (int, int) {
	t.Helper()
	info, ok := rec.Texture(id)
	if !ok {
		t.Fatalf("texture %d unknown to the backend", id)
	}
	return info.Image.Width, info.Image.Height
}

func buildTarget(t *testing.T, b gpucore.Backend, width, height int) *CompositeTarget {
	t.Helper()
	builder := NewBuilder()
	if err := builder.SetDimensions(width, height); err != nil {
		t.Fatalf("SetDimensions(%d, %d): %v", width, height, err)
	}
	target, err := builder.Build(b)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return target
}

func TestSetDimensionsRejectsNonPositive(t *testing.T) {
	tests := []struct {
		width, height int
	}{
		{0, 5},
		{5, 0},
		{-1, -1},
	}
	for _, tt := range tests {
		b := NewBuilder()
		if err := b.SetDimensions(tt.width, tt.height); !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("SetDimensions(%d, %d) = %v, want ErrInvalidDimensions", tt.width, tt.height, err)
		}

		rec := backend.NewRecording()
		if _, err := b.Build(rec); !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("Build after failed SetDimensions = %v, want ErrInvalidDimensions", err)
		}
		if calls := rec.Calls(); len(calls) != 0 {
			t.Errorf("Build made backend calls %v before failing", calls)
		}
	}
}

func TestBuildNilBackend(t *testing.T) {
	b := NewBuilder()
	if err := b.SetDimensions(4, 4); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Build(nil); !errors.Is(err, ErrNilBackend) {
		t.Errorf("Build(nil) = %v, want ErrNilBackend", err)
	}
}

func TestBuildDefaults(t *testing.T) {
	rec := backend.NewRecording()
	target := buildTarget(t, rec, 256, 256)

	if target.InternalFormat() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("InternalFormat() = %v, want RGBA8Unorm", target.InternalFormat())
	}
	if target.PixelFormat() != gpucore.PixelFormatRGBA || target.PixelType() != gpucore.PixelTypeUnsignedByte {
		t.Errorf("pixel layout = %v/%v, want RGBA/UnsignedByte", target.PixelFormat(), target.PixelType())
	}
	if !target.Valid() {
		t.Error("new target should be valid")
	}

	main, err := target.MainTexture()
	if err != nil {
		t.Fatal(err)
	}
	alt, err := target.AltTexture()
	if err != nil {
		t.Fatal(err)
	}
	if main == alt || main == gpucore.InvalidID || alt == gpucore.InvalidID {
		t.Fatalf("textures = %d/%d, want two distinct valid IDs", main, alt)
	}

	wantImage := gpucore.TextureImage{
		Width: 256, Height: 256,
		InternalFormat: gputypes.TextureFormatRGBA8Unorm,
		Format:         gpucore.PixelFormatRGBA,
		Type:           gpucore.PixelTypeUnsignedByte,
	}
	wantParams := gpucore.SamplerParams{
		MinFilter: gputypes.FilterModeLinear,
		MagFilter: gputypes.FilterModeLinear,
		WrapS:     gputypes.AddressModeClampToEdge,
		WrapT:     gputypes.AddressModeClampToEdge,
	}
	for _, id := range []gpucore.TextureID{main, alt} {
		info, ok := rec.Texture(id)
		if !ok {
			t.Fatalf("texture %d unknown to backend", id)
		}
		want := backend.TextureInfo{Image: wantImage, Params: wantParams, Uploads: 1}
		if diff := cmp.Diff(want, info); diff != "" {
			t.Errorf("texture %d mismatch (-want +got):\n%s", id, diff)
		}
	}

	calls := rec.Calls()
	if last := calls[len(calls)-1]; last.Op != "BindTexture" || last.Args != "0" {
		t.Errorf("last call = %v, want BindTexture(0)", last)
	}
	if rec.State().BoundTexture != gpucore.InvalidID {
		t.Error("no texture should be bound after Build")
	}
}

func TestBuildIntegerFormatUsesNearest(t *testing.T) {
	rec := backend.NewRecording()
	b := NewBuilder().
		SetInternalFormat(gputypes.TextureFormatRGBA32Uint).
		SetPixelFormat(gpucore.PixelFormatRGBAInteger).
		SetPixelType(gpucore.PixelTypeUnsignedInt)
	if err := b.SetDimensions(8, 8); err != nil {
		t.Fatal(err)
	}
	target, err := b.Build(rec)
	if err != nil {
		t.Fatal(err)
	}
	main, _ := target.MainTexture()
	info, _ := rec.Texture(main)
	if info.Params.MinFilter != gputypes.FilterModeNearest || info.Params.MagFilter != gputypes.FilterModeNearest {
		t.Errorf("filters = %v/%v, want Nearest/Nearest", info.Params.MinFilter, info.Params.MagFilter)
	}
	if info.Image.Format != gpucore.PixelFormatRGBAInteger || info.Image.Type != gpucore.PixelTypeUnsignedInt {
		t.Errorf("image layout = %v/%v", info.Image.Format, info.Image.Type)
	}
}

func TestBuilderNotRetained(t *testing.T) {
	rec := backend.NewRecording()
	b := NewBuilder()
	if err := b.SetDimensions(16, 16); err != nil {
		t.Fatal(err)
	}
	target, err := b.Build(rec)
	if err != nil {
		t.Fatal(err)
	}
	b.SetInternalFormat(gputypes.TextureFormatRGBA16Float)
	if err := b.SetDimensions(32, 32); err != nil {
		t.Fatal(err)
	}
	if target.Width() != 16 || target.InternalFormat() != gputypes.TextureFormatRGBA8Unorm {
		t.Error("changing the builder after Build must not affect the target")
	}
}

func TestResizeKeepsHandles(t *testing.T) {
	rec := backend.NewRecording()
	target := buildTarget(t, rec, 256, 256)
	main, _ := target.MainTexture()
	alt, _ := target.AltTexture()

	if err := target.Resize(512, 128); err != nil {
		t.Fatalf("Resize: %v", err)
	}

	gotMain, _ := target.MainTexture()
	gotAlt, _ := target.AltTexture()
	if gotMain != main || gotAlt != alt {
		t.Errorf("handles changed: %d/%d -> %d/%d", main, alt, gotMain, gotAlt)
	}
	if target.Width() != 512 || target.Height() != 128 {
		t.Errorf("size = %dx%d, want 512x128", target.Width(), target.Height())
	}
	for _, id := range []gpucore.TextureID{main, alt} {
		info, _ := rec.Texture(id)
		if info.Image.Width != 512 || info.Image.Height != 128 || info.Uploads != 2 {
			t.Errorf("texture %d: %dx%d after %d uploads", id, info.Image.Width, info.Image.Height, info.Uploads)
		}
		if info.Image.InternalFormat != gputypes.TextureFormatRGBA8Unorm {
			t.Errorf("texture %d format = %v after resize", id, info.Image.InternalFormat)
		}
	}
	if rec.LiveTextures() != 2 {
		t.Errorf("LiveTextures() = %d, want 2", rec.LiveTextures())
	}
}

func TestResizeValidation(t *testing.T) {
	target := buildTarget(t, backend.NewRecording(), 64, 64)
	if err := target.Resize(0, 10); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("Resize(0, 10) = %v, want ErrInvalidDimensions", err)
	}
	if target.Width() != 64 || target.Height() != 64 {
		t.Error("failed Resize must not change the size")
	}
}

func TestResizeIfNeeded(t *testing.T) {
	rec := backend.NewRecording()
	target := buildTarget(t, rec, 64, 64)

	resized, err := target.ResizeIfNeeded(64, 64)
	if err != nil || resized {
		t.Errorf("ResizeIfNeeded(same) = %v, %v; want false, nil", resized, err)
	}
	resized, err = target.ResizeIfNeeded(128, 64)
	if err != nil || !resized {
		t.Errorf("ResizeIfNeeded(new) = %v, %v; want true, nil", resized, err)
	}
}

func TestDestroyIsOneShot(t *testing.T) {
	rec := backend.NewRecording()
	target := buildTarget(t, rec, 32, 32)
	rec.Reset()

	if err := target.Destroy(); err != nil {
		t.Fatalf("first Destroy: %v", err)
	}
	if diff := cmp.Diff([]backend.Call{{Op: "DeleteTextures", Args: "[1 2]"}}, rec.Calls()); diff != "" {
		t.Errorf("Destroy calls mismatch (-want +got):\n%s", diff)
	}
	if err := target.Destroy(); !errors.Is(err, ErrTargetDestroyed) {
		t.Errorf("second Destroy = %v, want ErrTargetDestroyed", err)
	}
	if rec.LiveTextures() != 0 || len(rec.Misuse()) != 0 {
		t.Errorf("live=%d misuse=%v, want 0 and none", rec.LiveTextures(), rec.Misuse())
	}
}

func TestUseAfterDestroy(t *testing.T) {
	target := buildTarget(t, backend.NewRecording(), 32, 32)
	if err := target.Destroy(); err != nil {
		t.Fatal(err)
	}
	if target.Valid() {
		t.Error("destroyed target reports Valid")
	}
	if _, err := target.MainTexture(); !errors.Is(err, ErrTargetDestroyed) {
		t.Errorf("MainTexture after Destroy = %v, want ErrTargetDestroyed", err)
	}
	if _, err := target.AltTexture(); !errors.Is(err, ErrTargetDestroyed) {
		t.Errorf("AltTexture after Destroy = %v, want ErrTargetDestroyed", err)
	}
	if err := target.Resize(64, 64); !errors.Is(err, ErrTargetDestroyed) {
		t.Errorf("Resize after Destroy = %v, want ErrTargetDestroyed", err)
	}
	if _, err := target.ResizeIfNeeded(64, 64); !errors.Is(err, ErrTargetDestroyed) {
		t.Errorf("ResizeIfNeeded after Destroy = %v, want ErrTargetDestroyed", err)
	}
}

func TestBuildPartialFailureReleasesTextures(t *testing.T) {
	fb := &failingBackend{Recording: backend.NewRecording(), ok: 1}
	b := NewBuilder()
	if err := b.SetDimensions(16, 16); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Build(fb); !errors.Is(err, errUpload) {
		t.Fatalf("Build = %v, want the upload error", err)
	}
	if fb.LiveTextures() != 0 {
		t.Errorf("LiveTextures() = %d after failed Build, want 0", fb.LiveTextures())
	}
}

func TestResizeFailureKeepsSize(t *testing.T) {
	// Build uses two uploads, the resize of main a third; alt fails once.
	fb := &failingBackend{Recording: backend.NewRecording(), ok: 3, failures: 1}
	target := buildTarget(t, fb, 16, 16)
	if err := target.Resize(32, 32); !errors.Is(err, errUpload) {
		t.Fatalf("Resize = %v, want the upload error", err)
	}
	if target.Width() != 16 || target.Height() != 16 {
		t.Errorf("size = %dx%d after failed Resize, want 16x16", target.Width(), target.Height())
	}

	mainID, _ := target.MainTexture()
	altID, _ := target.AltTexture()
	mainW, mainH := imageSize(t, fb.Recording, mainID)
	altW, altH := imageSize(t, fb.Recording, altID)
	if mainW != altW || mainH != altH {
		t.Errorf("pair diverged: main %dx%d, alt %dx%d", mainW, mainH, altW, altH)
	}
	if mainW != 16 || mainH != 16 {
		t.Errorf("main = %dx%d after failed Resize, want 16x16", mainW, mainH)
	}

	// The target stays usable.
	if err := target.Resize(32, 32); err != nil {
		t.Fatalf("Resize after recovery: %v", err)
	}
	if w, h := imageSize(t, fb.Recording, altID); w != 32 || h != 32 {
		t.Errorf("alt = %dx%d, want 32x32", w, h)
	}
}

func TestResizeRollbackFailureJoined(t *testing.T) {
	fb := &failingBackend{Recording: backend.NewRecording(), ok: 3}
	target := buildTarget(t, fb, 16, 16)
	err := target.Resize(32, 32)
	if !errors.Is(err, errUpload) {
		t.Fatalf("Resize = %v, want the upload error", err)
	}
	if fb.failed != 2 {
		t.Errorf("failed uploads = %d, want the resize and the restore", fb.failed)
	}
}

func TestBuildSamplerFailureReleasesTextures(t *testing.T) {
	fb := &failingBackend{Recording: backend.NewRecording(), ok: 2, failParams: true}
	b := NewBuilder()
	if err := b.SetDimensions(16, 16); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Build(fb); !errors.Is(err, errSampler) {
		t.Fatalf("Build = %v, want the sampler error", err)
	}
	if fb.LiveTextures() != 0 {
		t.Errorf("LiveTextures() = %d after failed Build, want 0", fb.LiveTextures())
	}
}

func TestWithCompositeTargetNilBuilder(t *testing.T) {
	rec := backend.NewRecording()
	called := false
	err := WithCompositeTarget(rec, nil, func(*CompositeTarget) error {
		called = true
		return nil
	})
	if !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("WithCompositeTarget(nil builder) = %v, want ErrInvalidDimensions", err)
	}
	if called || len(rec.Calls()) != 0 {
		t.Error("nothing should run with a nil builder")
	}
}

func TestWithCompositeTarget(t *testing.T) {
	rec := backend.NewRecording()
	b := NewBuilder()
	if err := b.SetDimensions(8, 8); err != nil {
		t.Fatal(err)
	}

	var kept *CompositeTarget
	err := WithCompositeTarget(rec, b, func(target *CompositeTarget) error {
		kept = target
		return target.Resize(16, 16)
	})
	if err != nil {
		t.Fatalf("WithCompositeTarget: %v", err)
	}
	if kept.Valid() || rec.LiveTextures() != 0 {
		t.Error("target should be destroyed when the function returns")
	}

	errBody := errors.New("pass failed")
	err = WithCompositeTarget(rec, b, func(target *CompositeTarget) error {
		if err := target.Destroy(); err != nil {
			return err
		}
		return errBody
	})
	if !errors.Is(err, errBody) || !errors.Is(err, ErrTargetDestroyed) {
		t.Errorf("WithCompositeTarget = %v, want both the body error and ErrTargetDestroyed", err)
	}
}

func TestCompositeTargetAsTexture(t *testing.T) {
	target := buildTarget(t, backend.NewRecording(), 40, 30)
	var tex interface {
		Width() int
		Height() int
	} = target
	if tex.Width() != 40 || tex.Height() != 30 {
		t.Errorf("size = %dx%d, want 40x30", tex.Width(), tex.Height())
	}
}
