// Command rkdemo exercises the renderkit render states and composite render
// targets against the recording and native backends.
package main

import (
	"errors"
	"fmt"
	"hash/maphash"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/renderkit"
	"github.com/gogpu/renderkit/backend"
	"github.com/gogpu/renderkit/backend/cached"
	"github.com/gogpu/renderkit/backend/native"
	"github.com/gogpu/renderkit/gpucore"
	"github.com/gogpu/renderkit/render"
	"github.com/gogpu/renderkit/state"
	"github.com/gogpu/wgpu/hal/noop"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "rkdemo"
	app.Usage = "inspect render states and composite render targets"
	app.Version = renderkit.Version
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "debug",
			Usage: "Log backend activity at debug level",
		},
	}
	app.Before = func(c *cli.Context) error {
		if c.Bool("debug") {
			renderkit.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			})))
		}
		return nil
	}
	app.Commands = []cli.Command{
		{
			Name:   "catalog",
			Usage:  "List the canonical render states",
			Action: runCatalog,
		},
		{
			Name:  "trace",
			Usage: "Run sample frames and print the backend calls they issue",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "fancy",
					Usage: "Run with fancy graphics, routing translucent geometry to its own framebuffer",
				},
				cli.BoolFlag{
					Name:  "no-cache",
					Usage: "Do not filter redundant calls",
				},
				cli.IntFlag{
					Name:  "frames",
					Usage: "Number of frames to run",
					Value: 2,
				},
			},
			Action: runTrace,
		},
		{
			Name:  "pingpong",
			Usage: "Build a composite render target, resize it and destroy it",
			Flags: []cli.Flag{
				cli.IntFlag{Name: "width", Value: 1280, Usage: "Initial width"},
				cli.IntFlag{Name: "height", Value: 720, Usage: "Initial height"},
				cli.IntFlag{Name: "resize-width", Value: 1920, Usage: "Width after resize"},
				cli.IntFlag{Name: "resize-height", Value: 1080, Usage: "Height after resize"},
				cli.StringFlag{
					Name:  "format",
					Value: "rgba8",
					Usage: "Texture format: " + strings.Join(formatNames(), ", "),
				},
				cli.StringFlag{
					Name:  "backend",
					Value: backend.BackendRecording,
					Usage: "Backend: recording or native (on the noop device)",
				},
			},
			Action: runPingPong,
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("rkdemo failed", "error", err)
		os.Exit(1)
	}
}

func runCatalog(_ *cli.Context) error {
	seed := maphash.MakeSeed()
	for _, s := range state.NewCatalog().All() {
		fmt.Printf("%-48s %-24s %016x\n", s, s.Kind(), s.Hash(seed))
	}
	return nil
}

// sampleFrame is the order a frame draws its layers in.
func sampleFrame(cat *state.Catalog) []state.Set {
	solid := cat.Default()
	return []state.Set{
		solid,
		solid.With(cat.HalfAlpha),
		solid.With(cat.TranslucentTransparency).With(cat.TranslucentTarget).With(cat.ColorMask),
		solid.With(cat.OutlineTarget).With(cat.NoTexture).With(cat.AlwaysDepthTest),
		solid.With(cat.GlintTransparency).With(cat.EqualDepthTest).With(cat.ColorMask),
	}
}

func runTrace(c *cli.Context) error {
	rec := backend.NewRecording(
		backend.WithInitialState(backend.WorldSnapshot()),
		backend.WithFancyGraphics(c.Bool("fancy")),
	)
	atlas, err := rec.GenTextures(1)
	if err != nil {
		return err
	}
	rec.Reset()

	var (
		b     gpucore.Backend = rec
		cache *cached.Backend
	)
	if !c.Bool("no-cache") {
		cache = cached.New(rec)
		b = cache
	}
	ctx := state.NewContext(b,
		state.WithTextureResolver(gpucore.StaticResolver{state.DefaultBlockAtlas: atlas[0]}),
		state.WithTracking(),
	)

	cat := state.NewCatalog()
	for frame := range c.Int("frames") {
		for i, set := range sampleFrame(cat) {
			if err := set.Begin(ctx); err != nil {
				return fmt.Errorf("frame %d layer %d: %w", frame, i, err)
			}
			if err := set.End(ctx); err != nil {
				return fmt.Errorf("frame %d layer %d: %w", frame, i, err)
			}
		}
	}

	for _, call := range rec.Calls() {
		fmt.Println(call)
	}
	if cache != nil {
		st := cache.Stats()
		fmt.Printf("forwarded=%d skipped=%d\n", st.Forwarded, st.Skipped)
	}
	if misuse := rec.Misuse(); len(misuse) > 0 {
		return fmt.Errorf("backend misuse: %w", errors.Join(misuse...))
	}
	return nil
}

type textureFormat struct {
	internal    gputypes.TextureFormat
	pixelFormat gpucore.PixelFormat
	pixelType   gpucore.PixelType
}

var formats = map[string]textureFormat{
	"rgba8":   {gputypes.TextureFormatRGBA8Unorm, gpucore.PixelFormatRGBA, gpucore.PixelTypeUnsignedByte},
	"bgra8":   {gputypes.TextureFormatBGRA8Unorm, gpucore.PixelFormatBGRA, gpucore.PixelTypeUnsignedByte},
	"rgba16f": {gputypes.TextureFormatRGBA16Float, gpucore.PixelFormatRGBA, gpucore.PixelTypeHalfFloat},
	"rgba32f": {gputypes.TextureFormatRGBA32Float, gpucore.PixelFormatRGBA, gpucore.PixelTypeFloat},
	"r32ui":   {gputypes.TextureFormatR32Uint, gpucore.PixelFormatRedInteger, gpucore.PixelTypeUnsignedInt},
}

func formatNames() []string {
	return slices.Sorted(maps.Keys(formats))
}

// openBackend returns the named backend and a function releasing it.
func openBackend(name string) (gpucore.Backend, func(), error) {
	switch name {
	case backend.BackendRecording:
		return backend.NewRecording(), func() {}, nil
	case backend.BackendNative:
		api := noop.API{}
		instance, err := api.CreateInstance(nil)
		if err != nil {
			return nil, nil, fmt.Errorf("create instance: %w", err)
		}
		adapters := instance.EnumerateAdapters(nil)
		if len(adapters) == 0 {
			instance.Destroy()
			return nil, nil, errors.New("no adapters")
		}
		openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
		if err != nil {
			instance.Destroy()
			return nil, nil, fmt.Errorf("open device: %w", err)
		}
		nb, err := native.New(openDev.Device, native.WithLabel("rkdemo"))
		if err != nil {
			openDev.Device.Destroy()
			instance.Destroy()
			return nil, nil, err
		}
		return nb, func() {
			nb.Close()
			openDev.Device.Destroy()
			instance.Destroy()
		}, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", backend.ErrBackendNotAvailable, name)
	}
}

func runPingPong(c *cli.Context) error {
	f, ok := formats[c.String("format")]
	if !ok {
		return fmt.Errorf("unknown format %q", c.String("format"))
	}
	b, release, err := openBackend(c.String("backend"))
	if err != nil {
		return err
	}
	defer release()

	builder := render.NewBuilder().
		SetInternalFormat(f.internal).
		SetPixelFormat(f.pixelFormat).
		SetPixelType(f.pixelType)
	if err := builder.SetDimensions(c.Int("width"), c.Int("height")); err != nil {
		return err
	}

	return render.WithCompositeTarget(b, builder, func(t *render.CompositeTarget) error {
		report(t, "built")
		resized, err := t.ResizeIfNeeded(c.Int("resize-width"), c.Int("resize-height"))
		if err != nil {
			return err
		}
		if resized {
			report(t, "resized")
		} else {
			report(t, "unchanged")
		}
		return nil
	})
}

func report(t *render.CompositeTarget, event string) {
	mainID, _ := t.MainTexture()
	altID, _ := t.AltTexture()
	fmt.Printf("%-9s %dx%d %v main=%d alt=%d\n", event, t.Width(), t.Height(), t.InternalFormat(), mainID, altID)
}
