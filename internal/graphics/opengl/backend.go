// Package opengl implements graphics.Backend on an OpenGL 4.1 core context.
package opengl

import (
	"log"
	"strings"

	"glpass/internal/graphics"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Backend issues calls on the current OpenGL context. gl.Init must have
// run on the context thread before New.
type Backend struct {
	// Debug checks glGetError after uploads and draws and logs failures.
	Debug bool

	vao uint32
}

// New binds a vertex array object for the backend's lifetime. The core
// profile rejects attribute pointers without one.
func New() *Backend {
	b := &Backend{}
	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)
	return b
}

// Dispose deletes the vertex array object.
func (b *Backend) Dispose() {
	if b.vao == 0 {
		return
	}
	gl.BindVertexArray(0)
	gl.DeleteVertexArrays(1, &b.vao)
	b.vao = 0
}

func (b *Backend) check(label string) {
	if !b.Debug {
		return
	}
	if err := gl.GetError(); err != gl.NO_ERROR {
		log.Printf("gl error %s: 0x%x", label, err)
	}
}

func (b *Backend) CreateBuffer() graphics.Handle {
	var id uint32
	gl.GenBuffers(1, &id)
	return graphics.Handle(id)
}

func (b *Backend) DeleteBuffer(id graphics.Handle) {
	v := uint32(id)
	gl.DeleteBuffers(1, &v)
}

func (b *Backend) BindBuffer(id graphics.Handle) {
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(id))
}

func (b *Backend) BufferData(data []float32) {
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	}
	b.check("BufferData")
}

func (b *Backend) CreateShader(stage graphics.Stage) graphics.Handle {
	kind := uint32(gl.VERTEX_SHADER)
	if stage == graphics.Fragment {
		kind = gl.FRAGMENT_SHADER
	}
	return graphics.Handle(gl.CreateShader(kind))
}

func (b *Backend) DeleteShader(id graphics.Handle) {
	gl.DeleteShader(uint32(id))
}

func (b *Backend) ShaderSource(id graphics.Handle, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(uint32(id), 1, csources, nil)
	free()
}

func (b *Backend) CompileShader(id graphics.Handle) {
	gl.CompileShader(uint32(id))
}

func (b *Backend) ShaderStatus(id graphics.Handle) (bool, string) {
	var status, logLength int32
	gl.GetShaderiv(uint32(id), gl.COMPILE_STATUS, &status)
	gl.GetShaderiv(uint32(id), gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 1 {
		return status != gl.FALSE, ""
	}
	buf := make([]byte, logLength+1)
	gl.GetShaderInfoLog(uint32(id), logLength, nil, &buf[0])
	return status != gl.FALSE, trimLog(buf)
}

func (b *Backend) CreateProgram() graphics.Handle {
	return graphics.Handle(gl.CreateProgram())
}

func (b *Backend) DeleteProgram(id graphics.Handle) {
	gl.DeleteProgram(uint32(id))
}

func (b *Backend) AttachShader(program, shader graphics.Handle) {
	gl.AttachShader(uint32(program), uint32(shader))
}

func (b *Backend) DetachShader(program, shader graphics.Handle) {
	gl.DetachShader(uint32(program), uint32(shader))
}

func (b *Backend) LinkProgram(id graphics.Handle) {
	gl.LinkProgram(uint32(id))
}

func (b *Backend) ProgramStatus(id graphics.Handle) (bool, string) {
	var status, logLength int32
	gl.GetProgramiv(uint32(id), gl.LINK_STATUS, &status)
	gl.GetProgramiv(uint32(id), gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 1 {
		return status != gl.FALSE, ""
	}
	buf := make([]byte, logLength+1)
	gl.GetProgramInfoLog(uint32(id), logLength, nil, &buf[0])
	return status != gl.FALSE, trimLog(buf)
}

func (b *Backend) UseProgram(id graphics.Handle) {
	gl.UseProgram(uint32(id))
}

func (b *Backend) UniformLocation(program graphics.Handle, name string) int32 {
	return gl.GetUniformLocation(uint32(program), gl.Str(name+"\x00"))
}

func (b *Backend) AttribLocation(program graphics.Handle, name string) int32 {
	return gl.GetAttribLocation(uint32(program), gl.Str(name+"\x00"))
}

func (b *Backend) Uniform1fv(location int32, v []float32) {
	gl.Uniform1fv(location, 1, &v[0])
}

func (b *Backend) Uniform2fv(location int32, v []float32) {
	gl.Uniform2fv(location, 1, &v[0])
}

func (b *Backend) Uniform3fv(location int32, v []float32) {
	gl.Uniform3fv(location, 1, &v[0])
}

func (b *Backend) Uniform4fv(location int32, v []float32) {
	gl.Uniform4fv(location, 1, &v[0])
}

func (b *Backend) UniformMatrix2fv(location int32, transpose bool, v []float32) {
	gl.UniformMatrix2fv(location, 1, transpose, &v[0])
}

func (b *Backend) UniformMatrix3fv(location int32, transpose bool, v []float32) {
	gl.UniformMatrix3fv(location, 1, transpose, &v[0])
}

func (b *Backend) UniformMatrix4fv(location int32, transpose bool, v []float32) {
	gl.UniformMatrix4fv(location, 1, transpose, &v[0])
}

func (b *Backend) EnableVertexAttribArray(location uint32) {
	gl.EnableVertexAttribArray(location)
}

func (b *Backend) DisableVertexAttribArray(location uint32) {
	gl.DisableVertexAttribArray(location)
}

func (b *Backend) VertexAttribPointer(location uint32, size int32) {
	gl.VertexAttribPointerWithOffset(location, size, gl.FLOAT, false, 0, 0)
}

func (b *Backend) DrawArrays(mode graphics.Topology, first, count int32) {
	gl.DrawArrays(primitive(mode), first, count)
	b.check("DrawArrays")
}

func primitive(t graphics.Topology) uint32 {
	switch t {
	case graphics.TriangleStrip:
		return gl.TRIANGLE_STRIP
	case graphics.TriangleFan:
		return gl.TRIANGLE_FAN
	case graphics.Points:
		return gl.POINTS
	case graphics.Lines:
		return gl.LINES
	case graphics.LineStrip:
		return gl.LINE_STRIP
	case graphics.LineLoop:
		return gl.LINE_LOOP
	default:
		return gl.TRIANGLES
	}
}

func trimLog(buf []byte) string {
	return strings.TrimRight(string(buf), "\x00\n ")
}

var _ graphics.Backend = (*Backend)(nil)
