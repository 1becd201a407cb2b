// Package camera provides the orbit camera used to inspect an assembly.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/assembly-guide/internal/scene"
	"github.com/Faultbox/assembly-guide/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates
	Distance  float32
	RotationX float32 // pitch, radians
	RotationY float32 // yaw, radians

	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	DragSensitivity float32
	ZoomSensitivity float32

	FOV       float32 // vertical field of view, radians
	NearPlane float32
	FarPlane  float32
}

// NewOrbitCamera creates an orbit camera looking at the origin.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        10,
		RotationX:       0.5,
		MinDistance:     0.1,
		MaxDistance:     1000,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		FOV:             math32.Pi / 4,
		NearPlane:       0.05,
		FarPlane:        2000,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	cosPitch := math32.Cos(c.RotationX)
	offset := math.Vec3{
		X: c.Distance * cosPitch * math32.Sin(c.RotationY),
		Y: c.Distance * math32.Sin(c.RotationX),
		Z: c.Distance * cosPitch * math32.Cos(c.RotationY),
	}
	return c.Center.Add(offset)
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3{Y: 1})
}

// ProjectionMatrix returns the perspective projection for the given aspect ratio.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(c.FOV, aspect, c.NearPlane, c.FarPlane)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX = math.Clamp(c.RotationX+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance = math.Clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// FitToBounds centres the camera on b and backs off far enough for the
// whole box to fit the vertical field of view. Empty bounds are ignored.
func (c *OrbitCamera) FitToBounds(b scene.Bounds) {
	if b.IsEmpty() {
		return
	}
	c.Center = b.Center()

	radius := b.Size().Length() / 2
	if radius <= 0 {
		radius = 1
	}
	c.Distance = math.Clamp(radius/math32.Sin(c.FOV/2), c.MinDistance, c.MaxDistance)
	c.RotationX = 0.5
	c.RotationY = 0.6
}
