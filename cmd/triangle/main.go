package main

import (
	"flag"
	"io/fs"
	"log"
	"os"
	"runtime"

	"glpass/assets"
	"glpass/internal/config"
	"glpass/internal/graphics"
	"glpass/internal/graphics/graphicstest"
	"glpass/internal/graphics/renderables/crosshair"
	"glpass/internal/graphics/renderables/triangle"
	"glpass/internal/graphics/renderer"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "glpass.toml", "path to TOML configuration")
	headless := flag.Bool("headless", false, "record backend calls instead of opening a window")
	frames := flag.Int("frames", 3, "frames to render in headless mode")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	config.Apply(cfg)

	var shaders fs.FS = assets.Shaders
	if cfg.Render.ShaderDir != "" {
		shaders = os.DirFS(cfg.Render.ShaderDir)
	}
	sources, err := loadSources(shaders)
	if err != nil {
		log.Fatal(err)
	}

	if *headless {
		if err := runHeadless(cfg, sources, *frames); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := glfw.Init(); err != nil {
		log.Fatal(err)
	}
	defer glfw.Terminate()

	app, err := setup(cfg, sources)
	if err != nil {
		log.Fatal(err)
	}
	defer app.Dispose()

	app.Run()
}

type shaderSources struct {
	triangle  graphics.Source
	crosshair graphics.Source
	solid     graphics.Source
}

func loadSources(fsys fs.FS) (shaderSources, error) {
	var s shaderSources
	var err error
	if s.triangle, err = graphics.ReadSource(fsys, assets.TriangleVert); err != nil {
		return s, err
	}
	if s.crosshair, err = graphics.ReadSource(fsys, assets.CrosshairVert); err != nil {
		return s, err
	}
	if s.solid, err = graphics.ReadSource(fsys, assets.SolidFrag); err != nil {
		return s, err
	}
	return s, nil
}

// buildRenderer compiles the shared fragment stage once and hands it to
// both renderables.
func buildRenderer(b graphics.Backend, cfg config.Config, src shaderSources) (*renderer.Renderer, error) {
	frag, err := graphics.CompileSource(b, graphics.Fragment, src.solid)
	if err != nil {
		return nil, err
	}
	if frag.Log() != "" {
		log.Printf("%s: %s", frag.Name(), frag.Log())
	}
	solid := frag.Share()
	defer solid.Dispose()

	r, err := renderer.NewRenderer(b, cfg.Window.Width, cfg.Window.Height,
		triangle.New(src.triangle, solid),
		crosshair.NewCrosshair(src.crosshair, solid),
	)
	if err != nil {
		return nil, err
	}
	r.Spin = cfg.Render.Spin
	return r, nil
}

func runHeadless(cfg config.Config, src shaderSources, frames int) error {
	rec := graphicstest.New()
	rec.Attributes["position"] = 0
	rec.Uniforms["mvp"] = 0
	rec.Uniforms["color"] = 1
	rec.Uniforms["aspectRatio"] = 2

	r, err := buildRenderer(rec, cfg, src)
	if err != nil {
		return err
	}
	for i := 0; i < frames; i++ {
		if err := r.Render(1.0 / 60.0); err != nil {
			r.Dispose()
			return err
		}
	}
	r.Dispose()

	log.Printf("headless: %d frames, %d draw calls, %d live shaders, %d live programs, %d live buffers",
		frames, rec.Count("DrawArrays"), rec.Live("shader"), rec.Live("program"), rec.Live("buffer"))
	return nil
}
