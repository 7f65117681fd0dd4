package renderer

import (
	"glpass/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

// RenderContext provides shared context for all renderables
type RenderContext struct {
	Backend graphics.Backend
	Camera  *Camera
	DT      float64
	Time    float64
	View    mgl32.Mat4
	Proj    mgl32.Mat4
}

// Renderable interface defines the lifecycle for renderable features
type Renderable interface {
	Init(b graphics.Backend) error
	Render(ctx RenderContext) error
	Dispose()
	SetViewport(width, height int)
}
