// Package graphicstest provides a Backend that records calls instead of
// talking to a GPU.
package graphicstest

import (
	"fmt"
	"slices"
	"strings"

	"glpass/internal/graphics"
)

// Call is one recorded backend invocation.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = fmt.Sprint(a)
	}
	return c.Name + "(" + strings.Join(args, ", ") + ")"
}

type object struct {
	kind    string
	stage   graphics.Stage
	source  string
	shaders []graphics.Handle
	deletes int
}

// Recorder is an in-memory graphics.Backend. Shaders whose source
// contains "#error" fail to compile; programs fail to link when FailLink
// is set or nothing is attached. Uniforms and Attributes map active names
// to locations and apply to every program.
type Recorder struct {
	Uniforms   map[string]int32
	Attributes map[string]int32

	// CompileLog is reported for successful compiles.
	CompileLog string
	FailLink   bool
	LinkLog    string

	Calls []Call

	next    graphics.Handle
	objects map[graphics.Handle]*object
	bound   graphics.Handle
	program graphics.Handle
	enabled map[uint32]int
}

// New returns an empty recorder.
func New() *Recorder {
	return &Recorder{
		Uniforms:   make(map[string]int32),
		Attributes: make(map[string]int32),
		objects:    make(map[graphics.Handle]*object),
		enabled:    make(map[uint32]int),
	}
}

func (r *Recorder) record(name string, args ...any) {
	r.Calls = append(r.Calls, Call{Name: name, Args: args})
}

func (r *Recorder) alloc(kind string) graphics.Handle {
	r.next++
	r.objects[r.next] = &object{kind: kind}
	return r.next
}

func (r *Recorder) lookup(id graphics.Handle, kind string) *object {
	o, ok := r.objects[id]
	if !ok || o.kind != kind {
		panic(fmt.Sprintf("graphicstest: %d is not a %s", id, kind))
	}
	return o
}

func (r *Recorder) release(id graphics.Handle, kind string) {
	o := r.lookup(id, kind)
	o.deletes++
}

// Count returns how many times the named call was recorded.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Names returns the recorded call names in order.
func (r *Recorder) Names() []string {
	names := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		names[i] = c.Name
	}
	return names
}

// Reset forgets recorded calls but keeps object state.
func (r *Recorder) Reset() { r.Calls = nil }

// Deletes returns how many times id was deleted.
func (r *Recorder) Deletes(id graphics.Handle) int {
	if o, ok := r.objects[id]; ok {
		return o.deletes
	}
	return 0
}

// Live returns the number of objects of kind ("buffer", "shader",
// "program") that were never deleted.
func (r *Recorder) Live(kind string) int {
	n := 0
	for _, o := range r.objects {
		if o.kind == kind && o.deletes == 0 {
			n++
		}
	}
	return n
}

// Attached returns the shaders currently attached to a program.
func (r *Recorder) Attached(program graphics.Handle) []graphics.Handle {
	return slices.Clone(r.lookup(program, "program").shaders)
}

// Source returns the last source set on a shader.
func (r *Recorder) Source(shader graphics.Handle) string {
	return r.lookup(shader, "shader").source
}

// Enabled returns the attribute locations currently enabled.
func (r *Recorder) Enabled() []uint32 {
	var out []uint32
	for loc, n := range r.enabled {
		if n > 0 {
			out = append(out, loc)
		}
	}
	slices.Sort(out)
	return out
}

// InUse returns the active program, 0 if none.
func (r *Recorder) InUse() graphics.Handle { return r.program }

// Bound returns the bound buffer, 0 if none.
func (r *Recorder) Bound() graphics.Handle { return r.bound }

func (r *Recorder) CreateBuffer() graphics.Handle {
	id := r.alloc("buffer")
	r.record("CreateBuffer", id)
	return id
}

func (r *Recorder) DeleteBuffer(id graphics.Handle) {
	r.record("DeleteBuffer", id)
	r.release(id, "buffer")
}

func (r *Recorder) BindBuffer(id graphics.Handle) {
	r.record("BindBuffer", id)
	r.bound = id
}

func (r *Recorder) BufferData(data []float32) {
	r.record("BufferData", len(data))
	if r.bound == 0 {
		panic("graphicstest: BufferData with no buffer bound")
	}
}

func (r *Recorder) CreateShader(stage graphics.Stage) graphics.Handle {
	id := r.alloc("shader")
	r.objects[id].stage = stage
	r.record("CreateShader", stage)
	return id
}

func (r *Recorder) DeleteShader(id graphics.Handle) {
	r.record("DeleteShader", id)
	r.release(id, "shader")
}

func (r *Recorder) ShaderSource(id graphics.Handle, source string) {
	r.record("ShaderSource", id)
	r.lookup(id, "shader").source = source
}

func (r *Recorder) CompileShader(id graphics.Handle) {
	r.record("CompileShader", id)
}

func (r *Recorder) ShaderStatus(id graphics.Handle) (bool, string) {
	o := r.lookup(id, "shader")
	if strings.Contains(o.source, "#error") {
		return false, "ERROR: 0:1: '#error' : " + o.stage.String() + " shader rejected"
	}
	return true, r.CompileLog
}

func (r *Recorder) CreateProgram() graphics.Handle {
	id := r.alloc("program")
	r.record("CreateProgram", id)
	return id
}

func (r *Recorder) DeleteProgram(id graphics.Handle) {
	r.record("DeleteProgram", id)
	o := r.lookup(id, "program")
	if len(o.shaders) > 0 {
		panic(fmt.Sprintf("graphicstest: program %d deleted with shaders attached", id))
	}
	o.deletes++
}

func (r *Recorder) AttachShader(program, shader graphics.Handle) {
	r.record("AttachShader", program, shader)
	s := r.lookup(shader, "shader")
	if s.deletes > 0 {
		panic(fmt.Sprintf("graphicstest: attaching deleted shader %d", shader))
	}
	p := r.lookup(program, "program")
	if slices.Contains(p.shaders, shader) {
		panic(fmt.Sprintf("graphicstest: shader %d already attached to %d", shader, program))
	}
	p.shaders = append(p.shaders, shader)
}

func (r *Recorder) DetachShader(program, shader graphics.Handle) {
	r.record("DetachShader", program, shader)
	p := r.lookup(program, "program")
	i := slices.Index(p.shaders, shader)
	if i < 0 {
		panic(fmt.Sprintf("graphicstest: shader %d not attached to %d", shader, program))
	}
	p.shaders = slices.Delete(p.shaders, i, i+1)
}

func (r *Recorder) LinkProgram(id graphics.Handle) {
	r.record("LinkProgram", id)
}

func (r *Recorder) ProgramStatus(id graphics.Handle) (bool, string) {
	p := r.lookup(id, "program")
	if r.FailLink {
		return false, r.LinkLog
	}
	if len(p.shaders) == 0 {
		return false, ""
	}
	return true, r.LinkLog
}

func (r *Recorder) UseProgram(id graphics.Handle) {
	r.record("UseProgram", id)
	r.program = id
}

func (r *Recorder) UniformLocation(program graphics.Handle, name string) int32 {
	r.record("UniformLocation", program, name)
	if loc, ok := r.Uniforms[name]; ok {
		return loc
	}
	return -1
}

func (r *Recorder) AttribLocation(program graphics.Handle, name string) int32 {
	r.record("AttribLocation", program, name)
	if loc, ok := r.Attributes[name]; ok {
		return loc
	}
	return -1
}

func (r *Recorder) Uniform1fv(location int32, v []float32) {
	r.record("Uniform1fv", location, slices.Clone(v))
}

func (r *Recorder) Uniform2fv(location int32, v []float32) {
	r.record("Uniform2fv", location, slices.Clone(v))
}

func (r *Recorder) Uniform3fv(location int32, v []float32) {
	r.record("Uniform3fv", location, slices.Clone(v))
}

func (r *Recorder) Uniform4fv(location int32, v []float32) {
	r.record("Uniform4fv", location, slices.Clone(v))
}

func (r *Recorder) UniformMatrix2fv(location int32, transpose bool, v []float32) {
	r.record("UniformMatrix2fv", location, transpose, slices.Clone(v))
}

func (r *Recorder) UniformMatrix3fv(location int32, transpose bool, v []float32) {
	r.record("UniformMatrix3fv", location, transpose, slices.Clone(v))
}

func (r *Recorder) UniformMatrix4fv(location int32, transpose bool, v []float32) {
	r.record("UniformMatrix4fv", location, transpose, slices.Clone(v))
}

func (r *Recorder) EnableVertexAttribArray(location uint32) {
	r.record("EnableVertexAttribArray", location)
	r.enabled[location]++
}

func (r *Recorder) DisableVertexAttribArray(location uint32) {
	r.record("DisableVertexAttribArray", location)
	if r.enabled[location] > 0 {
		r.enabled[location]--
	}
}

func (r *Recorder) VertexAttribPointer(location uint32, size int32) {
	r.record("VertexAttribPointer", location, size, r.bound)
}

func (r *Recorder) DrawArrays(mode graphics.Topology, first, count int32) {
	r.record("DrawArrays", mode, first, count)
}

var _ graphics.Backend = (*Recorder)(nil)
