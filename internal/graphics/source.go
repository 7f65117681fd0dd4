package graphics

import (
	"io/fs"
	"os"
)

// Source is shader text together with where it came from.
type Source struct {
	Name string
	Text string
}

// ReadSource reads path from fsys.
func ReadSource(fsys fs.FS, path string) (Source, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Source{}, &SourceReadError{Origin: path, Err: err}
	}
	return Source{Name: path, Text: string(data)}, nil
}

// ReadSourceFile reads a shader from the local filesystem.
func ReadSourceFile(path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Source{}, &SourceReadError{Origin: path, Err: err}
	}
	return Source{Name: path, Text: string(data)}, nil
}

// CompileSource creates, loads and compiles a shader for stage in one go.
// The shader is released if compilation fails.
func CompileSource(b Backend, stage Stage, src Source) (*CompiledShader, error) {
	loaded := NewShader(b, stage, src.Name).Load(src.Text)
	compiled, err := loaded.Compile()
	if err != nil {
		loaded.Dispose()
		return nil, err
	}
	return compiled, nil
}
