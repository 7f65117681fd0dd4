package main

import (
	"log"
	"time"

	"glpass/internal/config"
	"glpass/internal/graphics/opengl"
	"glpass/internal/graphics/renderer"
	"glpass/internal/pacing"
	"glpass/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// App owns the window, the GL backend and the renderer
type App struct {
	window   *glfw.Window
	backend  *opengl.Backend
	renderer *renderer.Renderer
	cfg      config.Config
	limiter  *pacing.Limiter
	lastTime time.Time
}

func setupWindow(cfg config.Config) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	// Initialize OpenGL bindings
	if err := gl.Init(); err != nil {
		window.Destroy()
		return nil, err
	}
	log.Printf("OpenGL %s", gl.GoStr(gl.GetString(gl.VERSION)))

	applySwapInterval()
	return window, nil
}

func applySwapInterval() {
	if config.GetVSync() {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
}

func setup(cfg config.Config, src shaderSources) (*App, error) {
	window, err := setupWindow(cfg)
	if err != nil {
		return nil, err
	}

	backend := opengl.New()
	backend.Debug = config.GetDebug()

	r, err := buildRenderer(backend, cfg, src)
	if err != nil {
		backend.Dispose()
		window.Destroy()
		return nil, err
	}

	app := &App{window: window, backend: backend, renderer: r, cfg: cfg, limiter: pacing.NewLimiter()}

	fbw, fbh := window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbw), int32(fbh))
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
		app.renderer.UpdateViewport(width, height)
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeyV:
			log.Printf("vsync: %v", config.ToggleVSync())
			applySwapInterval()
		}
	})

	return app, nil
}

// Run renders until the window is closed
func (a *App) Run() {
	a.lastTime = time.Now()
	for !a.window.ShouldClose() {
		a.tick()
	}
}

func (a *App) tick() {
	profiling.ResetFrame()
	now := time.Now()
	dt := now.Sub(a.lastTime).Seconds()
	a.lastTime = now

	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

	c := a.cfg.Render.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if err := a.renderer.Render(dt); err != nil {
		log.Printf("render: %v", err)
	}

	func() { defer profiling.Track("glfw.SwapBuffers")(); a.window.SwapBuffers() }()

	frame := time.Since(now)
	if ms := float64(frame.Microseconds()) / 1000.0; a.cfg.Render.SlowFrameMs > 0 && ms > a.cfg.Render.SlowFrameMs {
		log.Printf("Slow frame: %v, %d draw calls. Top tasks: %s",
			frame, profiling.Counter("graphics.drawCalls"), profiling.TopN(5))
	}

	if !config.GetVSync() {
		a.limiter.Wait(a.cfg.Render.FPSLimit)
	}
}

// Dispose releases GPU objects while the context is still current, then
// destroys the window
func (a *App) Dispose() {
	a.renderer.Dispose()
	a.backend.Dispose()
	a.window.Destroy()
}
