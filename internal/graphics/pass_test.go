package graphics_test

import (
	"errors"
	"testing"

	"glpass/internal/graphics"
	"glpass/internal/graphics/graphicstest"
	"glpass/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linkedProgram(t *testing.T, r *graphicstest.Recorder) *graphics.LinkedProgram {
	t.Helper()
	p, err := graphics.NewProgram(r, "test").
		Attach(mustCompile(t, r, graphics.Vertex, "v")).
		Attach(mustCompile(t, r, graphics.Fragment, "f")).
		Link()
	require.NoError(t, err)
	return p
}

func TestEndToEndTriangle(t *testing.T) {
	r := graphicstest.New()
	r.Attributes["pos"] = 0

	vert := graphics.NewShader(r, graphics.Vertex, "tri.vert").Load(emptyMain)
	cv, err := vert.Compile()
	require.NoError(t, err)
	frag := graphics.NewShader(r, graphics.Fragment, "tri.frag").Load(emptyMain)
	cf, err := frag.Compile()
	require.NoError(t, err)

	program, err := graphics.NewProgram(r, "triangle").Attach(cv).Attach(cf).Link()
	require.NoError(t, err)
	defer program.Dispose()

	buf, err := graphics.NewBuffer(r, 3)
	require.NoError(t, err)
	defer buf.Dispose()
	buf.Load([]float32{
		0, 0.5, 0,
		-0.5, -0.5, 0,
		0.5, -0.5, 0,
	})
	assert.Equal(t, 3, buf.Vertices())

	profiling.ResetFrame()
	r.Reset()
	pass := program.Use().
		Attribute("pos", buf).
		Primitive(graphics.Triangles).
		Range(0, 3)
	require.NoError(t, pass.Err())
	assert.Equal(t, []uint32{0}, r.Enabled())
	assert.Equal(t, program.ID(), r.InUse())

	require.NoError(t, pass.Draw())

	assert.Equal(t, 1, r.Count("DrawArrays"))
	assert.Equal(t, 1, profiling.Counter("graphics.drawCalls"))
	assert.Equal(t, 3, profiling.Counter("graphics.vertices"))
	assert.Empty(t, r.Enabled())
	assert.Equal(t, graphics.Handle(0), r.InUse())
	assert.Equal(t, []string{
		"UseProgram",
		"AttribLocation", "EnableVertexAttribArray", "BindBuffer", "VertexAttribPointer", "BindBuffer",
		"DrawArrays", "DisableVertexAttribArray", "UseProgram",
	}, r.Names())

	draw := r.Calls[6]
	assert.Equal(t, []any{graphics.Triangles, int32(0), int32(3)}, draw.Args)
	pointer := r.Calls[4]
	assert.Equal(t, []any{uint32(0), int32(3), buf.ID()}, pointer.Args)
}

func TestPassUniforms(t *testing.T) {
	r := graphicstest.New()
	r.Uniforms["alpha"] = 1
	r.Uniforms["color"] = 2
	r.Uniforms["rot"] = 3
	r.Uniforms["mvp"] = 4
	r.Uniforms["offset"] = 5
	program := linkedProgram(t, r)

	r.Reset()
	pass := program.Use().
		UniformScalar("alpha", 0.5).
		UniformVector("alpha", []float32{0.25}).
		UniformVector("offset", []float32{0.5, -0.5}).
		UniformVector("color", []float32{1, 0, 0}).
		UniformVec4("color", mgl32.Vec4{1, 1, 1, 1}).
		UniformMatrix("rot", []float32{1, 0, 0, 1}).
		UniformMatrix("rot", make([]float32, 9)).
		UniformMatrix("mvp", make([]float32, 16))
	require.NoError(t, pass.Err())

	assert.Equal(t, 2, r.Count("Uniform1fv"))
	assert.Equal(t, 1, r.Count("Uniform2fv"))
	assert.Equal(t, 1, r.Count("Uniform3fv"))
	assert.Equal(t, 1, r.Count("Uniform4fv"))
	assert.Equal(t, 1, r.Count("UniformMatrix2fv"))
	assert.Equal(t, 1, r.Count("UniformMatrix3fv"))
	assert.Equal(t, 1, r.Count("UniformMatrix4fv"))
	for _, c := range r.Calls {
		switch c.Name {
		case "Uniform2fv":
			assert.Equal(t, []any{int32(5), []float32{0.5, -0.5}}, c.Args)
		case "UniformMatrix2fv", "UniformMatrix3fv", "UniformMatrix4fv":
			assert.Equal(t, true, c.Args[1], "matrices upload row-major")
		}
	}
	require.NoError(t, pass.Draw())
}

func TestPassUniformMat4Transposes(t *testing.T) {
	r := graphicstest.New()
	r.Uniforms["mvp"] = 0
	program := linkedProgram(t, r)

	m := mgl32.Translate3D(1, 2, 3)
	r.Reset()
	require.NoError(t, program.Use().UniformMat4("mvp", m).Draw())

	var upload []float32
	for _, c := range r.Calls {
		if c.Name == "UniformMatrix4fv" {
			upload = c.Args[2].([]float32)
		}
	}
	require.Len(t, upload, 16)
	// Row-major: translation sits at the end of the first three rows.
	assert.Equal(t, float32(1), upload[3])
	assert.Equal(t, float32(2), upload[7])
	assert.Equal(t, float32(3), upload[11])
}

func TestPassRejectsArity(t *testing.T) {
	cases := []struct {
		name string
		bind func(p *graphics.Pass) *graphics.Pass
		got  int
	}{
		{"empty vector", func(p *graphics.Pass) *graphics.Pass { return p.UniformVector("u", nil) }, 0},
		{"vector of 5", func(p *graphics.Pass) *graphics.Pass { return p.UniformVector("u", make([]float32, 5)) }, 5},
		{"matrix of 3", func(p *graphics.Pass) *graphics.Pass { return p.UniformMatrix("u", make([]float32, 3)) }, 3},
		{"matrix of 8", func(p *graphics.Pass) *graphics.Pass { return p.UniformMatrix("u", make([]float32, 8)) }, 8},
		{"matrix of 25", func(p *graphics.Pass) *graphics.Pass { return p.UniformMatrix("u", make([]float32, 25)) }, 25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := graphicstest.New()
			r.Uniforms["u"] = 0
			program := linkedProgram(t, r)

			r.Reset()
			pass := tc.bind(program.Use())

			var ae *graphics.InvalidArityError
			require.ErrorAs(t, pass.Err(), &ae)
			assert.Equal(t, "u", ae.Name)
			assert.Equal(t, tc.got, ae.Got)
			assert.Equal(t, []string{"UseProgram"}, r.Names(), "no upload on rejection")
		})
	}
}

func TestPassUnknownNames(t *testing.T) {
	r := graphicstest.New()
	program := linkedProgram(t, r)
	buf, err := graphics.NewBuffer(r, 2)
	require.NoError(t, err)

	pass := program.Use().Attribute("missing", buf)
	var le *graphics.LocationError
	require.ErrorAs(t, pass.Err(), &le)
	assert.Equal(t, graphics.AttributeLocation, le.Kind)
	assert.Equal(t, "missing", le.Name)
	assert.Equal(t, "attribute 'missing' location error", le.Error())
	assert.Empty(t, r.Enabled())
	assert.Zero(t, r.Count("EnableVertexAttribArray"))
	require.Error(t, pass.Draw())

	err = program.Use().UniformScalar("nope", 1).Draw()
	require.ErrorAs(t, err, &le)
	assert.Equal(t, graphics.UniformLocation, le.Kind)
}

func TestPassFirstErrorWins(t *testing.T) {
	r := graphicstest.New()
	r.Attributes["pos"] = 0
	r.Attributes["uv"] = 1
	r.Uniforms["alpha"] = 0
	program := linkedProgram(t, r)
	buf, err := graphics.NewBuffer(r, 3)
	require.NoError(t, err)

	r.Reset()
	pass := program.Use().
		Attribute("pos", buf).
		UniformScalar("missing", 1).
		Attribute("uv", buf).
		UniformScalar("alpha", 1).
		UniformVector("alpha", nil)

	var le *graphics.LocationError
	require.ErrorAs(t, pass.Err(), &le)
	assert.Equal(t, "missing", le.Name)
	assert.Equal(t, 1, r.Count("EnableVertexAttribArray"))
	assert.Zero(t, r.Count("Uniform1fv"))

	err = pass.Draw()
	assert.Same(t, le, err)
	assert.Zero(t, r.Count("DrawArrays"), "draw skipped after binding error")
	assert.Empty(t, r.Enabled(), "recorded attributes still disabled")
	assert.Equal(t, graphics.Handle(0), r.InUse())
}

func TestPassDisposedBuffer(t *testing.T) {
	r := graphicstest.New()
	r.Attributes["pos"] = 0
	program := linkedProgram(t, r)
	buf, err := graphics.NewBuffer(r, 3)
	require.NoError(t, err)
	buf.Load(make([]float32, 9))
	buf.Dispose()

	r.Reset()
	pass := program.Use().Attribute("pos", buf).Range(0, 3)
	assert.ErrorIs(t, pass.Err(), graphics.ErrBufferDisposed)
	assert.Zero(t, r.Count("AttribLocation"))
	assert.Zero(t, r.Count("EnableVertexAttribArray"))
	assert.Zero(t, r.Count("VertexAttribPointer"))

	assert.ErrorIs(t, pass.Draw(), graphics.ErrBufferDisposed)
	assert.Zero(t, r.Count("DrawArrays"))

	r.Reset()
	assert.ErrorIs(t, program.Use().Attribute("pos", nil).Draw(), graphics.ErrBufferDisposed)
	assert.Zero(t, r.Count("EnableVertexAttribArray"))
}

func TestPassRejectsRange(t *testing.T) {
	cases := []struct {
		name         string
		first, count int
	}{
		{"negative count", 0, -5},
		{"negative first", -1, 3},
		{"count past int32", 0, 1<<32 + 3},
		{"end past int32", 10, 1<<31 - 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := graphicstest.New()
			program := linkedProgram(t, r)

			r.Reset()
			pass := program.Use().Range(tc.first, tc.count)

			var re *graphics.RangeError
			require.ErrorAs(t, pass.Err(), &re)
			assert.Equal(t, tc.first, re.First)
			assert.Equal(t, tc.count, re.Count)
			require.Error(t, pass.Draw())
			assert.Zero(t, r.Count("DrawArrays"))
		})
	}

	r := graphicstest.New()
	program := linkedProgram(t, r)
	r.Reset()
	require.NoError(t, program.Use().Range(0, 1<<31-1).Draw())
	assert.Equal(t, []any{graphics.Triangles, int32(0), int32(1<<31 - 1)}, r.Calls[1].Args)
}

func TestPassDuplicateAttribute(t *testing.T) {
	r := graphicstest.New()
	r.Attributes["pos"] = 5
	program := linkedProgram(t, r)
	buf, err := graphics.NewBuffer(r, 4)
	require.NoError(t, err)

	r.Reset()
	require.NoError(t, program.Use().Attribute("pos", buf).Attribute("pos", buf).Draw())
	assert.Equal(t, 2, r.Count("EnableVertexAttribArray"))
	assert.Equal(t, 2, r.Count("DisableVertexAttribArray"))
	assert.Empty(t, r.Enabled())
}

func TestPassDrawParameters(t *testing.T) {
	r := graphicstest.New()
	program := linkedProgram(t, r)

	r.Reset()
	require.NoError(t, program.Use().Draw())
	assert.Equal(t, []any{graphics.Triangles, int32(0), int32(0)}, r.Calls[1].Args, "defaults")

	r.Reset()
	require.NoError(t, program.Use().
		Primitive(graphics.Points).Range(1, 2).
		Primitive(graphics.LineStrip).Range(4, 8).
		Draw())
	assert.Equal(t, []any{graphics.LineStrip, int32(4), int32(8)}, r.Calls[1].Args, "last call wins")
}

func TestPassConsumedAndOrphaned(t *testing.T) {
	r := graphicstest.New()
	r.Uniforms["alpha"] = 0
	program := linkedProgram(t, r)

	pass := program.Use()
	require.NoError(t, pass.Draw())
	assert.True(t, errors.Is(pass.Draw(), graphics.ErrPassConsumed))
	assert.Panics(t, func() { pass.UniformScalar("alpha", 1) })

	orphan := program.Use()
	program.Dispose()
	r.Reset()
	orphan.UniformScalar("alpha", 1)
	assert.True(t, errors.Is(orphan.Err(), graphics.ErrProgramDisposed))
	assert.Zero(t, r.Count("UniformLocation"))
	assert.True(t, errors.Is(orphan.Draw(), graphics.ErrProgramDisposed))
	assert.Zero(t, r.Count("DrawArrays"))

	assert.Panics(t, func() { program.Use() })
}

func BenchmarkPassDraw(b *testing.B) {
	r := graphicstest.New()
	r.Attributes["pos"] = 0
	r.Uniforms["mvp"] = 0
	vert, _ := graphics.CompileSource(r, graphics.Vertex, graphics.Source{Name: "v", Text: emptyMain})
	program, err := graphics.NewProgram(r, "bench").Attach(vert).Link()
	if err != nil {
		b.Fatal(err)
	}
	buf, _ := graphics.NewBuffer(r, 3)
	buf.Load(make([]float32, 9))
	mvp := mgl32.Ident4()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Reset()
		if err := program.Use().UniformMat4("mvp", mvp).Attribute("pos", buf).Range(0, 3).Draw(); err != nil {
			b.Fatal(err)
		}
	}
}
