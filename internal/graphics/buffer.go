package graphics

var bufferArity = []int{1, 2, 3, 4}

// Buffer owns one vertex data buffer. Components is the number of floats
// making up one attribute element.
type Buffer struct {
	backend    Backend
	id         Handle
	components int
	vertices   int
}

// NewBuffer allocates an empty buffer whose elements have the given number
// of components (1-4).
func NewBuffer(b Backend, components int) (*Buffer, error) {
	if components < 1 || components > 4 {
		return nil, &InvalidArityError{Name: "buffer components", Expected: bufferArity, Got: components}
	}
	return &Buffer{backend: b, id: b.CreateBuffer(), components: components}, nil
}

// ID returns the native handle, or 0 once disposed.
func (buf *Buffer) ID() Handle { return buf.id }

// Components returns the element arity used when binding as an attribute.
func (buf *Buffer) Components() int { return buf.components }

// Vertices returns the number of whole elements in the last load.
func (buf *Buffer) Vertices() int { return buf.vertices }

// Load replaces the buffer contents with data.
func (buf *Buffer) Load(data []float32) {
	if buf.id == 0 {
		panic("graphics: Load on disposed Buffer")
	}
	buf.bind()
	buf.backend.BufferData(data)
	buf.unbind()
	buf.vertices = len(data) / buf.components
}

func (buf *Buffer) bind()   { buf.backend.BindBuffer(buf.id) }
func (buf *Buffer) unbind() { buf.backend.BindBuffer(0) }

// Dispose releases the native buffer. Safe to call more than once.
func (buf *Buffer) Dispose() {
	if buf.id == 0 {
		return
	}
	buf.backend.DeleteBuffer(buf.id)
	buf.id = 0
}
