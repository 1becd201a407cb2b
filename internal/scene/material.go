package scene

// Material holds the surface properties the core animates.
// Models commonly share one Material between many meshes; the snapshot
// store isolates a per-mesh copy before any opacity is animated.
type Material struct {
	Name        string
	Color       [3]float32
	Opacity     float32
	Transparent bool
}

// DefaultMaterial returns an opaque white material.
func DefaultMaterial() *Material {
	return &Material{
		Name:    "default",
		Color:   [3]float32{1, 1, 1},
		Opacity: 1,
	}
}

// Clone returns an independent copy of the material.
func (m *Material) Clone() *Material {
	c := *m
	return &c
}
