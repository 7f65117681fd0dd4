package graphics

import (
	"math"

	"glpass/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	vectorArity = []int{1, 2, 3, 4}
	matrixArity = []int{4, 9, 16}
)

// Pass binds uniforms and attributes to a program for a single draw call.
//
// Binding methods return the pass for chaining. The first failing binding
// is stored and every later binding becomes a no-op, so no backend call
// happens after an error. Draw reports the stored error.
type Pass struct {
	program  *LinkedProgram
	backend  Backend
	attribs  []uint32
	topology Topology
	first    int32
	count    int32
	err      error
	done     bool
}

func newPass(p *LinkedProgram) *Pass {
	p.backend.UseProgram(p.id)
	return &Pass{program: p, backend: p.backend, topology: Triangles}
}

// Err returns the first binding error, if any.
func (p *Pass) Err() error { return p.err }

// ok reports whether the next binding may touch the backend.
func (p *Pass) ok() bool {
	if p.done {
		panic("graphics: binding on drawn Pass")
	}
	if p.err != nil {
		return false
	}
	if p.program.id == 0 {
		p.err = ErrProgramDisposed
		return false
	}
	return true
}

func (p *Pass) uniformLocation(name string) (int32, bool) {
	loc := p.backend.UniformLocation(p.program.id, name)
	if loc == -1 {
		p.err = &LocationError{Kind: UniformLocation, Name: name}
		return 0, false
	}
	return loc, true
}

// UniformScalar uploads one float to the named uniform.
func (p *Pass) UniformScalar(name string, value float32) *Pass {
	if !p.ok() {
		return p
	}
	if loc, found := p.uniformLocation(name); found {
		p.backend.Uniform1fv(loc, []float32{value})
	}
	return p
}

// UniformVector uploads a float vector of length 1 to 4.
func (p *Pass) UniformVector(name string, data []float32) *Pass {
	if !p.ok() {
		return p
	}
	if len(data) < 1 || len(data) > 4 {
		p.err = &InvalidArityError{Name: name, Expected: vectorArity, Got: len(data)}
		return p
	}
	loc, found := p.uniformLocation(name)
	if !found {
		return p
	}
	switch len(data) {
	case 1:
		p.backend.Uniform1fv(loc, data)
	case 2:
		p.backend.Uniform2fv(loc, data)
	case 3:
		p.backend.Uniform3fv(loc, data)
	case 4:
		p.backend.Uniform4fv(loc, data)
	}
	return p
}

// UniformMatrix uploads a row-major 2x2, 3x3 or 4x4 matrix.
func (p *Pass) UniformMatrix(name string, data []float32) *Pass {
	if !p.ok() {
		return p
	}
	if len(data) != 4 && len(data) != 9 && len(data) != 16 {
		p.err = &InvalidArityError{Name: name, Expected: matrixArity, Got: len(data)}
		return p
	}
	loc, found := p.uniformLocation(name)
	if !found {
		return p
	}
	switch len(data) {
	case 4:
		p.backend.UniformMatrix2fv(loc, true, data)
	case 9:
		p.backend.UniformMatrix3fv(loc, true, data)
	case 16:
		p.backend.UniformMatrix4fv(loc, true, data)
	}
	return p
}

// UniformVec3 uploads an mgl32 vector.
func (p *Pass) UniformVec3(name string, v mgl32.Vec3) *Pass {
	return p.UniformVector(name, v[:])
}

// UniformVec4 uploads an mgl32 vector.
func (p *Pass) UniformVec4(name string, v mgl32.Vec4) *Pass {
	return p.UniformVector(name, v[:])
}

// UniformMat4 uploads an mgl32 matrix. mgl32 stores columns first, so the
// matrix is transposed into row-major order.
func (p *Pass) UniformMat4(name string, m mgl32.Mat4) *Pass {
	t := m.Transpose()
	return p.UniformMatrix(name, t[:])
}

// Attribute enables the named vertex attribute and points it at buf. Each
// call records its location for Draw to disable, duplicates included.
func (p *Pass) Attribute(name string, buf *Buffer) *Pass {
	if !p.ok() {
		return p
	}
	if buf == nil || buf.id == 0 {
		p.err = ErrBufferDisposed
		return p
	}
	loc := p.backend.AttribLocation(p.program.id, name)
	if loc == -1 {
		p.err = &LocationError{Kind: AttributeLocation, Name: name}
		return p
	}
	index := uint32(loc)
	p.attribs = append(p.attribs, index)
	p.backend.EnableVertexAttribArray(index)
	buf.bind()
	p.backend.VertexAttribPointer(index, int32(buf.components))
	buf.unbind()
	return p
}

// Primitive sets the topology. Defaults to Triangles.
func (p *Pass) Primitive(t Topology) *Pass {
	p.topology = t
	return p
}

// Range sets the vertex range [first, first+count). Negative values or a
// range past the backend's 32-bit limit are recorded as a *RangeError.
func (p *Pass) Range(first, count int) *Pass {
	if first < 0 || count < 0 || first > math.MaxInt32 || count > math.MaxInt32-first {
		if p.err == nil {
			p.err = &RangeError{First: first, Count: count}
		}
		return p
	}
	p.first, p.count = int32(first), int32(count)
	return p
}

// Draw issues the draw call, disables every recorded attribute in the
// order they were enabled and deactivates the program. If a binding
// failed, the draw call is skipped, cleanup still runs and the binding
// error is returned. The pass cannot be used afterwards.
func (p *Pass) Draw() error {
	if p.done {
		return ErrPassConsumed
	}
	p.done = true
	defer profiling.Track("graphics.Pass.Draw")()

	if p.err == nil && p.program.id == 0 {
		p.err = ErrProgramDisposed
	}
	if p.err == nil {
		p.backend.DrawArrays(p.topology, p.first, p.count)
		profiling.Count("graphics.drawCalls", 1)
		profiling.Count("graphics.vertices", int(p.count))
	}
	for _, index := range p.attribs {
		p.backend.DisableVertexAttribArray(index)
	}
	p.attribs = nil
	p.backend.UseProgram(0)
	return p.err
}
