package triangle

import (
	"math"

	"glpass/internal/graphics"
	"glpass/internal/graphics/renderer"
	"glpass/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

var Vertices = []float32{
	0.0, 0.5, 0.0,
	-0.5, -0.5, 0.0,
	0.5, -0.5, 0.0,
}

// Triangle draws a single pulsing triangle in world space
type Triangle struct {
	vert     graphics.Source
	frag     *graphics.SharedShader
	program  *graphics.LinkedProgram
	position *graphics.Buffer
}

// New creates a triangle renderable. frag is shared, not owned.
func New(vert graphics.Source, frag *graphics.SharedShader) *Triangle {
	return &Triangle{vert: vert, frag: frag}
}

// Init compiles the vertex stage, links it with the shared fragment stage
// and uploads the vertices
func (t *Triangle) Init(b graphics.Backend) error {
	vert, err := graphics.CompileSource(b, graphics.Vertex, t.vert)
	if err != nil {
		return err
	}
	t.program, err = graphics.NewProgram(b, "triangle").Attach(vert).AttachShared(t.frag).Link()
	if err != nil {
		return err
	}

	t.position, err = graphics.NewBuffer(b, 3)
	if err != nil {
		t.program.Dispose()
		return err
	}
	t.position.Load(Vertices)
	return nil
}

// Render draws the triangle
func (t *Triangle) Render(ctx renderer.RenderContext) error {
	defer profiling.Track("renderer.renderTriangle")()

	pulse := float32(0.5 + 0.5*math.Sin(ctx.Time*2))
	mvp := ctx.Proj.Mul4(ctx.View)

	return t.program.Use().
		UniformMat4("mvp", mvp).
		UniformVec4("color", mgl32.Vec4{1.0, pulse, 0.2, 1.0}).
		Attribute("position", t.position).
		Primitive(graphics.Triangles).
		Range(0, t.position.Vertices()).
		Draw()
}

// Dispose releases the buffer and program
func (t *Triangle) Dispose() {
	if t.position != nil {
		t.position.Dispose()
	}
	if t.program != nil {
		t.program.Dispose()
	}
}

func (t *Triangle) SetViewport(width, height int) {}
