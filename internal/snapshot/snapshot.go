// Package snapshot records the original transform and material state of every
// tracked mesh so it can be restored exactly.
package snapshot

import (
	"go.uber.org/zap"

	"github.com/Faultbox/assembly-guide/internal/scene"
	"github.com/Faultbox/assembly-guide/pkg/math"
)

// Entry is the captured state of one mesh. It is never mutated after capture.
type Entry struct {
	Position    math.Vec3
	Opacity     float32
	Transparent bool
}

// Store holds one Entry per tracked mesh.
type Store struct {
	entries map[*scene.Mesh]Entry
	order   []*scene.Mesh
	log     *zap.Logger
}

// New creates an empty store.
func New(log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		entries: make(map[*scene.Mesh]Entry),
		log:     log,
	}
}

// Capture records the current state of every mesh not yet tracked and gives
// each newly tracked mesh its own material instance, so that animating one
// mesh's opacity never reaches other meshes sharing the source material.
// Meshes already tracked keep their original entry.
func (s *Store) Capture(meshes []*scene.Mesh) {
	added := 0
	for _, m := range meshes {
		if m == nil {
			continue
		}
		if _, ok := s.entries[m]; ok {
			continue
		}

		if m.Material == nil {
			m.Material = scene.DefaultMaterial()
		} else {
			m.Material = m.Material.Clone()
		}

		s.entries[m] = Entry{
			Position:    m.Position,
			Opacity:     m.Material.Opacity,
			Transparent: m.Material.Transparent,
		}
		s.order = append(s.order, m)
		added++
	}

	s.log.Debug("snapshot captured",
		zap.Int("added", added),
		zap.Int("tracked", len(s.order)),
	)
}

// Get returns the entry for m.
func (s *Store) Get(m *scene.Mesh) (Entry, bool) {
	e, ok := s.entries[m]
	return e, ok
}

// Has reports whether m is tracked.
func (s *Store) Has(m *scene.Mesh) bool {
	_, ok := s.entries[m]
	return ok
}

// Tracked returns every tracked mesh in capture order.
func (s *Store) Tracked() []*scene.Mesh {
	return s.order
}

// Len returns the number of tracked meshes.
func (s *Store) Len() int {
	return len(s.order)
}

// RestorePosition resets m's local position. It reports false, with a
// warning, for meshes that were never captured.
func (s *Store) RestorePosition(m *scene.Mesh) bool {
	e, ok := s.lookup(m)
	if !ok {
		return false
	}
	m.Position = e.Position
	return true
}

// RestoreOpacity resets m's opacity and transparency flag.
func (s *Store) RestoreOpacity(m *scene.Mesh) bool {
	e, ok := s.lookup(m)
	if !ok {
		return false
	}
	m.SetOpacity(e.Opacity)
	m.SetTransparent(e.Transparent)
	return true
}

// RestoreAll resets position, opacity and transparency of every tracked mesh
// and makes it visible again.
func (s *Store) RestoreAll() {
	for _, m := range s.order {
		e := s.entries[m]
		m.Position = e.Position
		m.SetOpacity(e.Opacity)
		m.SetTransparent(e.Transparent)
		m.Visible = true
	}
}

func (s *Store) lookup(m *scene.Mesh) (Entry, bool) {
	e, ok := s.entries[m]
	if !ok {
		name := ""
		if m != nil {
			name = m.Name
		}
		s.log.Warn("missing snapshot", zap.String("mesh", name))
	}
	return e, ok
}
