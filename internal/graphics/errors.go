package graphics

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrCompileAttempted is returned when Compile is called again on a
	// shader whose compilation already ran.
	ErrCompileAttempted = errors.New("graphics: shader compilation already attempted")
	// ErrPassConsumed is returned by Draw on a pass that already drew.
	ErrPassConsumed = errors.New("graphics: pass already drawn")
	// ErrProgramDisposed is recorded when a pass outlives its program.
	ErrProgramDisposed = errors.New("graphics: program disposed while pass in use")
	// ErrBufferDisposed is recorded when a disposed or nil buffer is bound.
	ErrBufferDisposed = errors.New("graphics: attribute bound to disposed buffer")
)

// CompileError carries the driver log of a failed shader compilation.
type CompileError struct {
	Name string
	Log  string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to compile shader %q: %s", e.Name, e.Log)
}

// LinkError carries the driver log of a failed program link.
type LinkError struct {
	Name string
	Log  string
}

func (e *LinkError) Error() string {
	return e.Name + ": failed to link program: " + e.Log
}

// LocationKind tells which namespace a failed lookup searched.
type LocationKind int

const (
	UniformLocation LocationKind = iota
	AttributeLocation
)

func (k LocationKind) String() string {
	if k == AttributeLocation {
		return "attribute"
	}
	return "uniform"
}

// LocationError reports a name with no active location in a program.
type LocationError struct {
	Kind LocationKind
	Name string
}

func (e *LocationError) Error() string {
	return fmt.Sprintf("%s '%s' location error", e.Kind, e.Name)
}

// InvalidArityError reports a data length the target cannot accept.
type InvalidArityError struct {
	Name     string
	Expected []int
	Got      int
}

func (e *InvalidArityError) Error() string {
	want := make([]string, len(e.Expected))
	for i, n := range e.Expected {
		want[i] = strconv.Itoa(n)
	}
	return fmt.Sprintf("%s: invalid length %d, expected one of {%s}", e.Name, e.Got, strings.Join(want, ", "))
}

// RangeError reports a vertex range the draw call cannot express.
type RangeError struct {
	First int
	Count int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid vertex range first=%d count=%d", e.First, e.Count)
}

// SourceReadError wraps a failure to obtain shader source text.
type SourceReadError struct {
	Origin string
	Err    error
}

func (e *SourceReadError) Error() string {
	return e.Origin + ": " + e.Err.Error()
}

func (e *SourceReadError) Unwrap() error { return e.Err }
