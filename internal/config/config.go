package config

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/BurntSushi/toml"
)

// Config is the demo configuration read from a TOML file
type Config struct {
	Window WindowConfig `toml:"window"`
	Render RenderConfig `toml:"render"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type RenderConfig struct {
	// ShaderDir overrides the embedded shaders when set
	ShaderDir  string     `toml:"shader_dir"`
	ClearColor [4]float32 `toml:"clear_color"`
	VSync      bool       `toml:"vsync"`

	// FPSLimit caps the frame rate when vsync is off; 0 means unlimited
	FPSLimit int     `toml:"fps_limit"`
	Spin     float32 `toml:"spin"`
	Debug    bool    `toml:"debug"`

	// SlowFrameMs logs the profiling breakdown for frames slower than this
	SlowFrameMs float64 `toml:"slow_frame_ms"`
}

// Default returns the configuration used when no file is present
func Default() Config {
	return Config{
		Window: WindowConfig{Width: 800, Height: 600, Title: "glpass"},
		Render: RenderConfig{
			ClearColor:  [4]float32{0.1, 0.1, 0.12, 1.0},
			VSync:       true,
			FPSLimit:    144,
			Spin:        0.5,
			SlowFrameMs: 50,
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values the window and renderer cannot work with
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Render.FPSLimit < 0 {
		return fmt.Errorf("fps_limit %d must not be negative", c.Render.FPSLimit)
	}
	for i, v := range c.Render.ClearColor {
		if v < 0 || v > 1 {
			return fmt.Errorf("clear_color[%d] = %v out of [0, 1]", i, v)
		}
	}
	return nil
}

// RenderSettings holds settings that can change while running
type RenderSettings struct {
	mu    sync.RWMutex
	vsync bool
	debug bool
}

var globalRenderSettings = &RenderSettings{vsync: true}

// Apply copies the runtime-tunable values from cfg
func Apply(cfg Config) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.vsync = cfg.Render.VSync
	globalRenderSettings.debug = cfg.Render.Debug
}

// GetVSync reports whether buffer swaps wait for vertical sync
func GetVSync() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.vsync
}

// ToggleVSync flips vsync and returns the new value
func ToggleVSync() bool {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.vsync = !globalRenderSettings.vsync
	return globalRenderSettings.vsync
}

// GetDebug reports whether GL error checking is on
func GetDebug() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.debug
}
