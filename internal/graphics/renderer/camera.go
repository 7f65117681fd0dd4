package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera orbits the origin at a fixed distance
type Camera struct {
	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32
	Distance    float32
	Yaw         float32 // radians
}

func NewCamera(width, height int) *Camera {
	c := &Camera{
		FOV:       60.0,
		NearPlane: 0.1,
		FarPlane:  100.0,
		Distance:  2.5,
	}
	c.SetViewport(width, height)
	return c
}

// SetViewport updates the aspect ratio; a zero height keeps the previous one
func (c *Camera) SetViewport(width, height int) {
	if height <= 0 {
		return
	}
	c.AspectRatio = float32(width) / float32(height)
}

func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	eye := mgl32.Vec3{
		c.Distance * float32(math.Sin(float64(c.Yaw))),
		0,
		c.Distance * float32(math.Cos(float64(c.Yaw))),
	}
	return mgl32.LookAtV(eye, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
}
