package graphics

// shaderObject is the native shader stage carried from state to state.
type shaderObject struct {
	backend Backend
	id      Handle
	name    string
	stage   Stage
}

func (o *shaderObject) release() {
	if o.id == 0 {
		return
	}
	o.backend.DeleteShader(o.id)
	o.id = 0
}

// Shader is a freshly allocated shader stage with no source attached.
//
// Shader, LoadedShader and CompiledShader form a chain: each transition
// returns the next state and leaves the receiver consumed. Calling into a
// consumed value panics.
type Shader struct {
	obj *shaderObject
}

// NewShader allocates a native shader object for stage. name identifies
// the source origin in diagnostics.
func NewShader(b Backend, stage Stage, name string) *Shader {
	return &Shader{obj: &shaderObject{
		backend: b,
		id:      b.CreateShader(stage),
		name:    name,
		stage:   stage,
	}}
}

func (s *Shader) live(op string) *shaderObject {
	if s.obj == nil {
		panic("graphics: " + op + " on consumed Shader")
	}
	return s.obj
}

// Name returns the diagnostic name.
func (s *Shader) Name() string { return s.live("Name").name }

// Stage returns the pipeline stage.
func (s *Shader) Stage() Stage { return s.live("Stage").stage }

// Load attaches source verbatim and moves the shader to the loaded state.
func (s *Shader) Load(source string) *LoadedShader {
	obj := s.live("Load")
	s.obj = nil
	obj.backend.ShaderSource(obj.id, source)
	return &LoadedShader{obj: obj}
}

// Dispose releases the native shader unless it has moved on.
func (s *Shader) Dispose() {
	if s.obj != nil {
		s.obj.release()
		s.obj = nil
	}
}

// LoadedShader has source attached and awaits compilation.
type LoadedShader struct {
	obj       *shaderObject
	attempted bool
	log       string
}

func (s *LoadedShader) live(op string) *shaderObject {
	if s.obj == nil {
		panic("graphics: " + op + " on consumed LoadedShader")
	}
	return s.obj
}

// Name returns the diagnostic name.
func (s *LoadedShader) Name() string { return s.live("Name").name }

// Stage returns the pipeline stage.
func (s *LoadedShader) Stage() Stage { return s.live("Stage").stage }

// Log returns the driver log of a failed compilation.
func (s *LoadedShader) Log() string { return s.log }

// Load replaces the pending source. It is only legal before Compile.
func (s *LoadedShader) Load(source string) *LoadedShader {
	obj := s.live("Load")
	if s.attempted {
		panic("graphics: Load on LoadedShader after Compile")
	}
	obj.backend.ShaderSource(obj.id, source)
	return s
}

// Compile compiles the pending source. On success the shader moves to the
// compiled state, whose Log holds any warnings. On failure the returned
// *CompileError carries the log and the receiver stays alive only for
// inspection and Dispose; compilation is never retried.
func (s *LoadedShader) Compile() (*CompiledShader, error) {
	obj := s.live("Compile")
	if s.attempted {
		return nil, ErrCompileAttempted
	}
	s.attempted = true

	obj.backend.CompileShader(obj.id)
	ok, log := obj.backend.ShaderStatus(obj.id)
	s.log = log
	if !ok {
		return nil, &CompileError{Name: obj.name, Log: log}
	}
	s.obj = nil
	return &CompiledShader{obj: obj, log: log}, nil
}

// Dispose releases the native shader unless it has moved on.
func (s *LoadedShader) Dispose() {
	if s.obj != nil {
		s.obj.release()
		s.obj = nil
	}
}

// CompiledShader is a successfully compiled stage, ready to attach.
type CompiledShader struct {
	obj *shaderObject
	log string
}

func (s *CompiledShader) live(op string) *shaderObject {
	if s.obj == nil {
		panic("graphics: " + op + " on consumed CompiledShader")
	}
	return s.obj
}

// ID returns the native handle.
func (s *CompiledShader) ID() Handle { return s.live("ID").id }

// Name returns the diagnostic name.
func (s *CompiledShader) Name() string { return s.live("Name").name }

// Stage returns the pipeline stage.
func (s *CompiledShader) Stage() Stage { return s.live("Stage").stage }

// Log returns the compile log, possibly empty.
func (s *CompiledShader) Log() string { return s.log }

// Share turns the shader into a reference counted SharedShader holding one
// reference. The receiver is consumed.
func (s *CompiledShader) Share() *SharedShader {
	obj := s.live("Share")
	s.obj = nil
	return &SharedShader{core: &sharedShaderCore{obj: obj, log: s.log, refs: 1}}
}

// Dispose releases the native shader unless it has moved on.
func (s *CompiledShader) Dispose() {
	if s.obj != nil {
		s.obj.release()
		s.obj = nil
	}
}
