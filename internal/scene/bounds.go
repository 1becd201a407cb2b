package scene

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/assembly-guide/pkg/math"
)

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// EmptyBounds returns an inverted box that any Extend call replaces.
func EmptyBounds() Bounds {
	inf := math32.Inf(1)
	return Bounds{
		Min: math.Vec3{X: inf, Y: inf, Z: inf},
		Max: math.Vec3{X: -inf, Y: -inf, Z: -inf},
	}
}

// IsEmpty reports whether the box contains no points.
func (b Bounds) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Extend grows the box to contain p.
func (b Bounds) Extend(p math.Vec3) Bounds {
	return Bounds{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Union returns the smallest box containing both boxes.
func (b Bounds) Union(other Bounds) Bounds {
	if other.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return other
	}
	return Bounds{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// Center returns the centroid of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the extent along each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Corners returns the eight box corners.
func (b Bounds) Corners() [8]math.Vec3 {
	lo, hi := b.Min, b.Max
	return [8]math.Vec3{
		{X: lo.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: lo.Y, Z: lo.Z},
		{X: lo.X, Y: hi.Y, Z: lo.Z},
		{X: hi.X, Y: hi.Y, Z: lo.Z},
		{X: lo.X, Y: lo.Y, Z: hi.Z},
		{X: hi.X, Y: lo.Y, Z: hi.Z},
		{X: lo.X, Y: hi.Y, Z: hi.Z},
		{X: hi.X, Y: hi.Y, Z: hi.Z},
	}
}

// Transform returns the axis-aligned box enclosing b after transformation by m.
func (b Bounds) Transform(m math.Mat4) Bounds {
	if b.IsEmpty() {
		return b
	}
	out := EmptyBounds()
	for _, c := range b.Corners() {
		out = out.Extend(m.TransformVec3(c))
	}
	return out
}
