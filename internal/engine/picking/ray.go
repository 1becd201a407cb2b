// Package picking finds the mesh under the cursor.
package picking

import (
	gomath "math"

	"github.com/chewxy/math32"

	"github.com/Faultbox/assembly-guide/internal/scene"
	"github.com/Faultbox/assembly-guide/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // normalized
}

// ScreenToRay converts pixel coordinates to a world-space ray.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH

	near := invViewProj.TransformVec3(math.Vec3{X: ndcX, Y: ndcY, Z: -1})
	far := invViewProj.TransformVec3(math.Vec3{X: ndcX, Y: ndcY, Z: 1})

	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// IntersectBounds tests the ray against an axis-aligned box using the slab
// method. It returns the entry distance, or the exit distance when the ray
// starts inside the box.
func (r Ray) IntersectBounds(b scene.Bounds) (t float32, hit bool) {
	if b.IsEmpty() {
		return 0, false
	}
	origin, dir := r.Origin.Array(), r.Direction.Array()
	lo, hi := b.Min.Array(), b.Max.Array()

	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)
	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math32.Max(tmin, t1)
		tmax = math32.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}

	if tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// Pick returns the nearest visible mesh whose world bounds the ray hits,
// or nil. Fully faded meshes are not pickable.
func Pick(r Ray, meshes []*scene.Mesh) *scene.Mesh {
	var best *scene.Mesh
	bestT := float32(gomath.MaxFloat32)
	for _, m := range meshes {
		if !m.Visible || m.Opacity() <= 0 {
			continue
		}
		if t, ok := r.IntersectBounds(m.WorldBounds()); ok && t < bestT {
			best, bestT = m, t
		}
	}
	return best
}
