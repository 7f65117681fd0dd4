package graphics

type sharedShaderCore struct {
	obj  *shaderObject
	log  string
	refs int
}

// SharedShader is one counted reference to a compiled shader. Several
// programs can hold references to the same native shader; it is deleted
// when the last reference is disposed.
//
// Counting is not synchronized. References must only be used from the
// rendering thread.
type SharedShader struct {
	core *sharedShaderCore
}

func (s *SharedShader) live(op string) *sharedShaderCore {
	if s.core == nil {
		panic("graphics: " + op + " on disposed SharedShader")
	}
	return s.core
}

// Clone returns a new reference to the same shader.
func (s *SharedShader) Clone() *SharedShader {
	c := s.live("Clone")
	c.refs++
	return &SharedShader{core: c}
}

// ID returns the native handle.
func (s *SharedShader) ID() Handle { return s.live("ID").obj.id }

// Name returns the diagnostic name.
func (s *SharedShader) Name() string { return s.live("Name").obj.name }

// Stage returns the pipeline stage.
func (s *SharedShader) Stage() Stage { return s.live("Stage").obj.stage }

// Log returns the compile log.
func (s *SharedShader) Log() string { return s.live("Log").log }

// Refs returns the number of live references to the shader.
func (s *SharedShader) Refs() int { return s.live("Refs").refs }

// Dispose drops this reference. Safe to call more than once.
func (s *SharedShader) Dispose() {
	c := s.core
	if c == nil {
		return
	}
	s.core = nil
	c.refs--
	if c.refs == 0 {
		c.obj.release()
	}
}
