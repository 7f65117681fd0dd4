package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "glpass.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[window]
width = 1024
title = "demo"

[render]
shader_dir = "assets/shaders"
clear_color = [0.0, 0.5, 1.0, 1.0]
vsync = false
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height, "default kept")
	assert.Equal(t, "demo", cfg.Window.Title)
	assert.Equal(t, "assets/shaders", cfg.Render.ShaderDir)
	assert.Equal(t, [4]float32{0, 0.5, 1, 1}, cfg.Render.ClearColor)
	assert.False(t, cfg.Render.VSync)
}

func TestLoadRejectsBadValues(t *testing.T) {
	_, err := Load(writeConfig(t, "[window]\nwidth = 0\n"))
	assert.ErrorContains(t, err, "window size")

	_, err = Load(writeConfig(t, "[render]\nclear_color = [2.0, 0.0, 0.0, 1.0]\n"))
	assert.ErrorContains(t, err, "clear_color[0]")

	_, err = Load(writeConfig(t, "[render]\nvsnyc = true\n"))
	assert.ErrorContains(t, err, "unknown key")

	_, err = Load(writeConfig(t, "not toml ="))
	assert.Error(t, err)
}

func TestRuntimeSettings(t *testing.T) {
	cfg := Default()
	cfg.Render.VSync = false
	cfg.Render.Debug = true
	Apply(cfg)
	assert.False(t, GetVSync())
	assert.True(t, GetDebug())
	assert.True(t, ToggleVSync())
	assert.True(t, GetVSync())
}

func TestLoadRejectsNegativeFPSLimit(t *testing.T) {
	_, err := Load(writeConfig(t, "[render]\nfps_limit = -5\n"))
	assert.ErrorContains(t, err, "fps_limit")
}
