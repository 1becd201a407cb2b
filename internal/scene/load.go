package scene

import (
	"errors"
	"fmt"

	"github.com/Faultbox/assembly-guide/internal/manifest"
	"github.com/Faultbox/assembly-guide/pkg/math"
)

// ErrUnknownParent is returned when a document names a parent node that does not exist.
var ErrUnknownParent = errors.New("unknown parent node")

// ErrUnknownMaterial is returned when a mesh references an undeclared material.
var ErrUnknownMaterial = errors.New("unknown material")

// Document is the on-disk scene description. It stands in for the parsed
// output of a model loader.
type Document struct {
	Name      string        `yaml:"name" toml:"name"`
	Materials []MaterialDoc `yaml:"materials" toml:"materials"`
	Nodes     []NodeDoc     `yaml:"nodes" toml:"nodes"`
	Meshes    []MeshDoc     `yaml:"meshes" toml:"meshes"`
}

// MaterialDoc declares a named material that meshes share by reference.
type MaterialDoc struct {
	Name        string     `yaml:"name" toml:"name"`
	Color       [3]float32 `yaml:"color" toml:"color"`
	Opacity     *float32   `yaml:"opacity" toml:"opacity"`
	Transparent bool       `yaml:"transparent" toml:"transparent"`
}

// TransformDoc is the local transform shared by nodes and meshes.
// Rotation is a quaternion [x, y, z, w]; zero values mean identity.
type TransformDoc struct {
	Position [3]float32 `yaml:"position" toml:"position"`
	Rotation [4]float32 `yaml:"rotation" toml:"rotation"`
	Scale    [3]float32 `yaml:"scale" toml:"scale"`
}

// NodeDoc declares a transform node.
type NodeDoc struct {
	Name         string `yaml:"name" toml:"name"`
	Parent       string `yaml:"parent" toml:"parent"`
	TransformDoc `yaml:",inline"`
}

// MeshDoc declares a mesh.
type MeshDoc struct {
	Name         string `yaml:"name" toml:"name"`
	Parent       string `yaml:"parent" toml:"parent"`
	Material     string `yaml:"material" toml:"material"`
	Bounds       BoxDoc `yaml:"bounds" toml:"bounds"`
	TransformDoc `yaml:",inline"`
}

// BoxDoc is a local-space bounding box.
type BoxDoc struct {
	Min [3]float32 `yaml:"min" toml:"min"`
	Max [3]float32 `yaml:"max" toml:"max"`
}

// Load reads a scene document from a YAML, JSON or TOML file.
func Load(path string) (*Scene, error) {
	var doc Document
	if err := manifest.Load(path, &doc); err != nil {
		return nil, err
	}
	s, err := Build(&doc)
	if err != nil {
		return nil, fmt.Errorf("building scene from %s: %w", path, err)
	}
	return s, nil
}

// Build instantiates a scene from a decoded document. Nodes may be declared
// in any order; parents are linked after all nodes exist.
func Build(doc *Document) (*Scene, error) {
	s := New(doc.Name)

	materials := make(map[string]*Material, len(doc.Materials))
	for _, md := range doc.Materials {
		mat := &Material{
			Name:        md.Name,
			Color:       md.Color,
			Opacity:     1,
			Transparent: md.Transparent,
		}
		if md.Opacity != nil {
			mat.Opacity = math.Clamp(*md.Opacity, 0, 1)
		}
		materials[md.Name] = mat
	}

	for _, nd := range doc.Nodes {
		n := s.AddNode(nd.Name, nil)
		nd.TransformDoc.apply(n)
	}
	for _, nd := range doc.Nodes {
		if nd.Parent == "" {
			continue
		}
		parent := s.Node(nd.Parent)
		if parent == nil {
			return nil, fmt.Errorf("node %q: %w %q", nd.Name, ErrUnknownParent, nd.Parent)
		}
		if !s.Node(nd.Name).SetParent(parent) {
			return nil, fmt.Errorf("node %q: parent %q would create a cycle", nd.Name, nd.Parent)
		}
	}

	for _, md := range doc.Meshes {
		var parent *Node
		if md.Parent != "" {
			parent = s.Node(md.Parent)
			if parent == nil {
				return nil, fmt.Errorf("mesh %q: %w %q", md.Name, ErrUnknownParent, md.Parent)
			}
		}

		var mat *Material
		if md.Material != "" {
			mat = materials[md.Material]
			if mat == nil {
				return nil, fmt.Errorf("mesh %q: %w %q", md.Name, ErrUnknownMaterial, md.Material)
			}
		}

		bounds := Bounds{Min: math.V3(md.Bounds.Min), Max: math.V3(md.Bounds.Max)}
		m := s.AddMesh(md.Name, parent, bounds, mat)
		md.TransformDoc.apply(&m.Node)
	}

	return s, nil
}

func (t TransformDoc) apply(n *Node) {
	n.Position = math.V3(t.Position)
	n.Rotation = math.QuatFromArray(t.Rotation)
	if t.Scale != [3]float32{} {
		n.Scale = math.V3(t.Scale)
	}
}
