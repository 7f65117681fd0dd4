package graphics

// Handle is an object name issued by the rendering backend for a buffer,
// shader or program. Zero is never a live object.
type Handle uint32

// Stage selects the pipeline stage a shader object is compiled for.
type Stage int

const (
	Vertex Stage = iota
	Fragment
)

func (s Stage) String() string {
	switch s {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// Topology is the primitive assembly mode used by a draw call.
type Topology int

const (
	Triangles Topology = iota
	TriangleStrip
	TriangleFan
	Points
	Lines
	LineStrip
	LineLoop
)

func (t Topology) String() string {
	switch t {
	case Triangles:
		return "triangles"
	case TriangleStrip:
		return "triangle-strip"
	case TriangleFan:
		return "triangle-fan"
	case Points:
		return "points"
	case Lines:
		return "lines"
	case LineStrip:
		return "line-strip"
	case LineLoop:
		return "line-loop"
	default:
		return "unknown"
	}
}

// Backend is the immediate-mode graphics API the objects in this package
// drive. Every method is a synchronous call on the thread that owns the
// rendering context.
type Backend interface {
	// Buffers
	CreateBuffer() Handle
	DeleteBuffer(id Handle)
	// BindBuffer binds id as the vertex array buffer; 0 unbinds.
	BindBuffer(id Handle)
	// BufferData uploads data to the bound buffer with static draw usage.
	BufferData(data []float32)

	// Shaders
	CreateShader(stage Stage) Handle
	DeleteShader(id Handle)
	ShaderSource(id Handle, source string)
	CompileShader(id Handle)
	// ShaderStatus reports the compile status and the info log.
	ShaderStatus(id Handle) (ok bool, log string)

	// Programs
	CreateProgram() Handle
	DeleteProgram(id Handle)
	AttachShader(program, shader Handle)
	DetachShader(program, shader Handle)
	LinkProgram(id Handle)
	// ProgramStatus reports the link status and the info log.
	ProgramStatus(id Handle) (ok bool, log string)
	// UseProgram activates id on the pipeline; 0 deactivates.
	UseProgram(id Handle)

	// Locations return -1 when name is not an active uniform or attribute.
	UniformLocation(program Handle, name string) int32
	AttribLocation(program Handle, name string) int32

	// Uniform uploads. Matrices are row-major when transpose is set.
	Uniform1fv(location int32, v []float32)
	Uniform2fv(location int32, v []float32)
	Uniform3fv(location int32, v []float32)
	Uniform4fv(location int32, v []float32)
	UniformMatrix2fv(location int32, transpose bool, v []float32)
	UniformMatrix3fv(location int32, transpose bool, v []float32)
	UniformMatrix4fv(location int32, transpose bool, v []float32)

	// Vertex attributes
	EnableVertexAttribArray(location uint32)
	DisableVertexAttribArray(location uint32)
	// VertexAttribPointer describes the bound buffer as tightly packed
	// float elements of size components.
	VertexAttribPointer(location uint32, size int32)

	DrawArrays(mode Topology, first, count int32)
}
