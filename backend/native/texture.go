package native

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/renderkit/backend"
	"github.com/gogpu/renderkit/gpucore"
	"github.com/gogpu/wgpu/hal"
)

// texture holds the device resources behind one TextureID. Storage and
// sampler are nil until TexImage2D and TexParameters create them.
type texture struct {
	tex     hal.Texture
	view    hal.TextureView
	sampler hal.Sampler
	image   gpucore.TextureImage
	params  gpucore.SamplerParams
}

// destroyStorage releases the texture and its view.
func (t *texture) destroyStorage(device hal.Device) {
	if t.view != nil {
		device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		device.DestroyTexture(t.tex)
		t.tex = nil
	}
}

func (t *texture) destroy(device hal.Device) {
	t.destroyStorage(device)
	if t.sampler != nil {
		device.DestroySampler(t.sampler)
		t.sampler = nil
	}
}

// TextureInfo describes the storage and sampling of a live texture.
type TextureInfo struct {
	// Image is the last successful TexImage2D; zero before the first upload.
	Image gpucore.TextureImage

	// Params are the last sampler parameters set.
	Params gpucore.SamplerParams

	// HasStorage reports whether the device texture and view exist.
	HasStorage bool

	// HasSampler reports whether a sampler exists.
	HasSampler bool
}

// GenTextures allocates n texture IDs. Device resources are created lazily
// by TexImage2D and TexParameters.
func (b *Backend) GenTextures(n int) ([]gpucore.TextureID, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrClosed
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", backend.ErrInvalidCount, n)
	}
	ids := make([]gpucore.TextureID, n)
	for i := range ids {
		ids[i] = b.nextID
		b.textures[b.nextID] = &texture{}
		b.nextID++
	}
	return ids, nil
}

// BindTexture binds a live texture, or unbinds with InvalidID.
func (b *Backend) BindTexture(id gpucore.TextureID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if id != gpucore.InvalidID {
		if _, ok := b.textures[id]; !ok {
			b.misuse("bind of unknown texture", "id", id)
			return
		}
	}
	b.state.texture = id
}

// TexParameters replaces the sampler of a texture. If the device cannot
// create the new sampler the previous one is kept.
func (b *Backend) TexParameters(id gpucore.TextureID, p gpucore.SamplerParams) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	t, ok := b.textures[id]
	if !ok {
		return fmt.Errorf("%w: %d", gpucore.ErrInvalidTexture, id)
	}
	sampler, err := b.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        fmt.Sprintf("%s_sampler_%d", b.label, id),
		AddressModeU: p.WrapS,
		AddressModeV: p.WrapT,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    p.MagFilter,
		MinFilter:    p.MinFilter,
		MipmapFilter: gputypes.FilterModeNearest,
		LodMinClamp:  0,
		LodMaxClamp:  32,
	})
	if err != nil {
		return fmt.Errorf("%w: create sampler %d: %w", ErrSamplerCreation, id, err)
	}
	if t.sampler != nil {
		b.device.DestroySampler(t.sampler)
	}
	t.sampler = sampler
	t.params = p
	return nil
}

// TexImage2D creates new storage for id. The previous texture and view are
// destroyed only once the new ones exist, so a failed reallocation leaves
// the old storage in place.
func (b *Backend) TexImage2D(id gpucore.TextureID, img gpucore.TextureImage) error {
	if err := gpucore.ValidateImage(img); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	t, ok := b.textures[id]
	if !ok {
		return fmt.Errorf("%w: %d", gpucore.ErrInvalidTexture, id)
	}

	label := fmt.Sprintf("%s_texture_%d", b.label, id)
	tex, err := b.device.CreateTexture(&hal.TextureDescriptor{
		Label: label,
		Size: hal.Extent3D{
			Width:              uint32(img.Width),  //nolint:gosec // validated positive
			Height:             uint32(img.Height), //nolint:gosec // validated positive
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        img.InternalFormat,
		Usage:         b.usage,
	})
	if err != nil {
		return fmt.Errorf("%w: create texture %d: %w", ErrTextureStorage, id, err)
	}
	view, err := b.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: label + "_view",
	})
	if err != nil {
		b.device.DestroyTexture(tex)
		return fmt.Errorf("%w: create view %d: %w", ErrTextureStorage, id, err)
	}

	t.destroyStorage(b.device)
	t.tex, t.view, t.image = tex, view, img
	return nil
}

// DeleteTextures destroys the resources of every listed texture. Deleting
// the bound texture unbinds it. Unknown IDs are reported and skipped.
func (b *Backend) DeleteTextures(ids []gpucore.TextureID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, id := range ids {
		t, ok := b.textures[id]
		if !ok {
			b.misuse("delete of unknown texture", "id", id)
			continue
		}
		t.destroy(b.device)
		delete(b.textures, id)
		if b.state.texture == id {
			b.state.texture = gpucore.InvalidID
		}
	}
}

// Texture returns what is known about a live texture.
func (b *Backend) Texture(id gpucore.TextureID) (TextureInfo, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t, ok := b.textures[id]
	if !ok {
		return TextureInfo{}, false
	}
	return TextureInfo{
		Image:      t.image,
		Params:     t.params,
		HasStorage: t.tex != nil,
		HasSampler: t.sampler != nil,
	}, true
}

// TextureView returns the default view of a texture for attaching it to a
// render pass or bind group. It is nil until TexImage2D succeeds.
func (b *Backend) TextureView(id gpucore.TextureID) hal.TextureView {
	b.mu.Lock()
	defer b.mu.Unlock()
	if t, ok := b.textures[id]; ok {
		return t.view
	}
	return nil
}

// Sampler returns the sampler of a texture, nil until TexParameters.
func (b *Backend) Sampler(id gpucore.TextureID) hal.Sampler {
	b.mu.Lock()
	defer b.mu.Unlock()
	if t, ok := b.textures[id]; ok {
		return t.sampler
	}
	return nil
}

// LiveTextures returns the number of textures generated and not deleted.
func (b *Backend) LiveTextures() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.textures)
}
