package graphics

// Program is a native program object collecting compiled shaders before
// link. Link consumes it and yields a LinkedProgram.
type Program struct {
	backend Backend
	id      Handle
	name    string
	shaders []*SharedShader
}

// NewProgram allocates a native program object. name prefixes link errors.
func NewProgram(b Backend, name string) *Program {
	return &Program{backend: b, id: b.CreateProgram(), name: name}
}

func (p *Program) live(op string) {
	if p.id == 0 {
		panic("graphics: " + op + " on consumed Program")
	}
}

// Name returns the program name.
func (p *Program) Name() string { return p.name }

// Attach moves s into the program.
func (p *Program) Attach(s *CompiledShader) *Program {
	p.live("Attach")
	p.shaders = append(p.shaders, s.Share())
	return p
}

// AttachShared adds a reference to s. The caller keeps its own reference.
// A shader already attached to the program is not attached again.
func (p *Program) AttachShared(s *SharedShader) *Program {
	p.live("AttachShared")
	c := s.live("AttachShared")
	for _, held := range p.shaders {
		if held.core == c {
			return p
		}
	}
	p.shaders = append(p.shaders, s.Clone())
	return p
}

// Link attaches every collected shader to the native program and links it.
// The receiver is consumed either way; on failure it is torn down and the
// returned *LinkError carries the driver log.
func (p *Program) Link() (*LinkedProgram, error) {
	p.live("Link")
	id, shaders := p.id, p.shaders
	p.id, p.shaders = 0, nil

	for _, s := range shaders {
		p.backend.AttachShader(id, s.ID())
	}
	p.backend.LinkProgram(id)

	ok, log := p.backend.ProgramStatus(id)
	if !ok {
		teardown(p.backend, id, shaders)
		return nil, &LinkError{Name: p.name, Log: log}
	}
	return &LinkedProgram{backend: p.backend, id: id, name: p.name, shaders: shaders}, nil
}

// Dispose releases an unlinked program and its shader references.
func (p *Program) Dispose() {
	if p.id == 0 {
		return
	}
	p.backend.DeleteProgram(p.id)
	for _, s := range p.shaders {
		s.Dispose()
	}
	p.id, p.shaders = 0, nil
}

// LinkedProgram is a linked program ready to draw with.
type LinkedProgram struct {
	backend Backend
	id      Handle
	name    string
	shaders []*SharedShader
}

// ID returns the native handle, or 0 once disposed.
func (p *LinkedProgram) ID() Handle { return p.id }

// Name returns the program name.
func (p *LinkedProgram) Name() string { return p.name }

// Shaders returns the names of the attached shaders in attach order.
func (p *LinkedProgram) Shaders() []string {
	names := make([]string, len(p.shaders))
	for i, s := range p.shaders {
		names[i] = s.Name()
	}
	return names
}

// Use activates the program and starts a Pass bound to it.
func (p *LinkedProgram) Use() *Pass {
	if p.id == 0 {
		panic("graphics: Use on disposed LinkedProgram")
	}
	return newPass(p)
}

// Dispose detaches every shader, deletes the program and drops its shader
// references. Safe to call more than once.
func (p *LinkedProgram) Dispose() {
	if p.id == 0 {
		return
	}
	teardown(p.backend, p.id, p.shaders)
	p.id, p.shaders = 0, nil
}

// teardown detaches all shaders before the program is deleted; the
// backend will not finish deleting a program with shaders attached.
func teardown(b Backend, id Handle, shaders []*SharedShader) {
	for _, s := range shaders {
		b.DetachShader(id, s.ID())
	}
	b.DeleteProgram(id)
	for _, s := range shaders {
		s.Dispose()
	}
}
