package crosshair

import (
	"glpass/internal/graphics"
	"glpass/internal/graphics/renderer"
	"glpass/internal/profiling"
)

var Vertices = []float32{
	-0.02, 0.0,
	0.02, 0.0,
	0.0, -0.02,
	0.0, 0.02,
}

// Crosshair implements crosshair rendering
type Crosshair struct {
	vert        graphics.Source
	frag        *graphics.SharedShader
	program     *graphics.LinkedProgram
	vbo         *graphics.Buffer
	aspectRatio float32
}

// NewCrosshair creates a new crosshair renderable. frag is shared, not owned.
func NewCrosshair(vert graphics.Source, frag *graphics.SharedShader) *Crosshair {
	return &Crosshair{vert: vert, frag: frag, aspectRatio: 1}
}

// Init initializes the crosshair rendering system
func (c *Crosshair) Init(b graphics.Backend) error {
	vert, err := graphics.CompileSource(b, graphics.Vertex, c.vert)
	if err != nil {
		return err
	}
	c.program, err = graphics.NewProgram(b, "crosshair").Attach(vert).AttachShared(c.frag).Link()
	if err != nil {
		return err
	}

	c.vbo, err = graphics.NewBuffer(b, 2)
	if err != nil {
		c.program.Dispose()
		return err
	}
	c.vbo.Load(Vertices)
	return nil
}

// Render renders the crosshair
func (c *Crosshair) Render(ctx renderer.RenderContext) error {
	defer profiling.Track("renderer.renderCrosshair")()

	return c.program.Use().
		UniformScalar("aspectRatio", c.aspectRatio).
		UniformVector("color", []float32{1, 1, 1, 1}).
		Attribute("position", c.vbo).
		Primitive(graphics.Lines).
		Range(0, c.vbo.Vertices()).
		Draw()
}

// Dispose cleans up GPU resources
func (c *Crosshair) Dispose() {
	if c.vbo != nil {
		c.vbo.Dispose()
	}
	if c.program != nil {
		c.program.Dispose()
	}
}

func (c *Crosshair) SetViewport(width, height int) {
	if height > 0 {
		c.aspectRatio = float32(width) / float32(height)
	}
}
