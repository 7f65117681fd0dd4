// Package assets embeds the default shader sources.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed shaders
var embedded embed.FS

// Shaders holds the shader sources keyed by file name.
var Shaders = mustSub(embedded, "shaders")

const (
	TriangleVert  = "triangle.vert"
	CrosshairVert = "crosshair.vert"
	SolidFrag     = "solid.frag"
)

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
