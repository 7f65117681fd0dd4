package renderer

import (
	"errors"
	"fmt"

	"glpass/internal/graphics"
	"glpass/internal/profiling"
)

// Renderer orchestrates rendering via renderable features
type Renderer struct {
	backend     graphics.Backend
	renderables []Renderable
	camera      *Camera
	elapsed     float64

	// Orbit speed in radians per second
	Spin float32
}

// NewRenderer initializes the renderables in order. If one fails, the ones
// already initialized are disposed in reverse order.
func NewRenderer(b graphics.Backend, width, height int, rs ...Renderable) (*Renderer, error) {
	r := &Renderer{
		backend: b,
		camera:  NewCamera(width, height),
	}

	for i, rend := range rs {
		if err := rend.Init(b); err != nil {
			for j := i - 1; j >= 0; j-- {
				rs[j].Dispose()
			}
			return nil, fmt.Errorf("init renderable %d: %w", i, err)
		}
		rend.SetViewport(width, height)
	}
	r.renderables = rs

	return r, nil
}

// Render draws every renderable once and returns their joined errors
func (r *Renderer) Render(dt float64) error {
	defer profiling.Track("renderer.Render")()

	r.elapsed += dt
	r.camera.Yaw += r.Spin * float32(dt)

	ctx := RenderContext{
		Backend: r.backend,
		Camera:  r.camera,
		DT:      dt,
		Time:    r.elapsed,
		View:    r.camera.ViewMatrix(),
		Proj:    r.camera.ProjectionMatrix(),
	}

	var errs []error
	for _, renderable := range r.renderables {
		if err := renderable.Render(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Dispose cleans up all renderables in reverse order
func (r *Renderer) Dispose() {
	for i := len(r.renderables) - 1; i >= 0; i-- {
		r.renderables[i].Dispose()
	}
	r.renderables = nil
}

// Camera returns the camera instance
func (r *Renderer) Camera() *Camera {
	return r.camera
}

// UpdateViewport updates the camera and every renderable
func (r *Renderer) UpdateViewport(width, height int) {
	r.camera.SetViewport(width, height)
	for _, renderable := range r.renderables {
		renderable.SetViewport(width, height)
	}
}
