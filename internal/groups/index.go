// Package groups maps human-authored part names onto scene meshes.
//
// A base group collects every mesh named exactly after it or after it plus
// a numeric suffix ("wing", "wing_1", "wing_2"). A composite group is a
// named union of other groups, declared in configuration and resolved once.
package groups

import (
	"sort"
	"strconv"
	"strings"

	"github.com/Faultbox/assembly-guide/internal/scene"
)

// Index looks meshes up by base name.
type Index struct {
	byBase map[string][]entry
}

type entry struct {
	mesh     *scene.Mesh
	suffix   uint64
	suffixed bool
	seq      int
}

// SplitSuffix splits "name_<digits>" into ("name", N, true). Names without
// an underscore-digit tail, or whose tail is not a plain non-negative
// integer, return (name, 0, false).
func SplitSuffix(name string) (base string, n uint64, ok bool) {
	i := strings.LastIndexByte(name, '_')
	if i <= 0 || i == len(name)-1 {
		return name, 0, false
	}
	digits := name[i+1:]
	for _, r := range digits {
		if r < '0' || r > '9' {
			return name, 0, false
		}
	}
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return name, 0, false
	}
	return name[:i], n, true
}

// NewIndex indexes meshes in a single pass. Every mesh is reachable under
// its own exact name and, if it carries a numeric suffix, under the name
// with that suffix removed.
func NewIndex(meshes []*scene.Mesh) *Index {
	idx := &Index{byBase: make(map[string][]entry, len(meshes))}
	for seq, m := range meshes {
		if m == nil {
			continue
		}
		idx.byBase[m.Name] = append(idx.byBase[m.Name], entry{mesh: m, seq: seq})
		if base, n, ok := SplitSuffix(m.Name); ok {
			idx.byBase[base] = append(idx.byBase[base], entry{mesh: m, suffix: n, suffixed: true, seq: seq})
		}
	}

	for _, entries := range idx.byBase {
		sort.SliceStable(entries, func(i, j int) bool {
			a, b := entries[i], entries[j]
			if a.suffix != b.suffix {
				return a.suffix < b.suffix
			}
			if a.suffixed != b.suffixed {
				return !a.suffixed
			}
			return a.seq < b.seq
		})
	}
	return idx
}

// Lookup returns the meshes for base ordered by numeric suffix, the
// unsuffixed mesh first. The slice is freshly allocated.
func (idx *Index) Lookup(base string) []*scene.Mesh {
	entries := idx.byBase[base]
	if len(entries) == 0 {
		return nil
	}
	out := make([]*scene.Mesh, len(entries))
	for i, e := range entries {
		out[i] = e.mesh
	}
	return out
}

// Names returns the mesh names for base in Lookup order.
func (idx *Index) Names(base string) []string {
	entries := idx.byBase[base]
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.mesh.Name
	}
	return out
}

// Has reports whether any mesh matches base.
func (idx *Index) Has(base string) bool {
	return len(idx.byBase[base]) > 0
}
