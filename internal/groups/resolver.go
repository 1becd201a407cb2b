package groups

import (
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/assembly-guide/internal/scene"
)

// BaseGroup is the flat mesh set discovered for one configured base name.
type BaseGroup struct {
	Name    string
	Members []*scene.Mesh
}

// CompositeGroup is a named union of other groups.
type CompositeGroup struct {
	Name     string
	Children []string
	// Members is the deduplicated union of all reachable meshes in
	// depth-first discovery order.
	Members []*scene.Mesh
}

// Resolver owns the base and composite groups of one loaded scene.
type Resolver struct {
	index      *Index
	base       map[string]*BaseGroup
	composites map[string]*CompositeGroup
	decls      map[string]CompositeDecl
	log        *zap.Logger

	diags    []Diagnostic
	diagSeen map[string]bool
}

// NewResolver creates a resolver over index with no groups yet.
func NewResolver(index *Index, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{
		index:      index,
		base:       make(map[string]*BaseGroup),
		composites: make(map[string]*CompositeGroup),
		decls:      make(map[string]CompositeDecl),
		log:        log,
		diagSeen:   make(map[string]bool),
	}
}

// Build indexes meshes and builds every group declared in cfg.
func Build(meshes []*scene.Mesh, cfg *Config, log *zap.Logger) *Resolver {
	r := NewResolver(NewIndex(meshes), log)
	if cfg == nil {
		return r
	}
	r.BuildBaseGroups(cfg.BaseNames)
	r.BuildCompositeGroups(cfg.AssembledGroups)
	return r
}

// BuildBaseGroups creates one base group per name. A name matching no mesh
// still gets an empty group so steps referencing it keep working.
func (r *Resolver) BuildBaseGroups(names []string) map[string]*BaseGroup {
	for _, name := range names {
		g := &BaseGroup{Name: name, Members: r.index.Lookup(name)}
		if len(g.Members) == 0 {
			r.diagnose(Diagnostic{Kind: EmptyGroup, Group: name})
			r.log.Warn("configuration warning: base group matched no meshes", zap.String("group", name))
		}
		r.base[name] = g
	}
	return r.base
}

// BuildCompositeGroups resolves every declaration into a composite group.
// Children may name composites (checked first) or base groups, in any
// declaration order. A cycle contributes nothing for the branch that
// closes it; the rest of the composite still resolves.
func (r *Resolver) BuildCompositeGroups(decls []CompositeDecl) map[string]*CompositeGroup {
	for _, d := range decls {
		r.decls[d.Name] = d
	}
	for _, d := range decls {
		members := r.expandComposite(d.Name)
		r.composites[d.Name] = &CompositeGroup{
			Name:     d.Name,
			Children: d.Groups,
			Members:  members,
		}
		r.log.Debug("composite group resolved",
			zap.String("group", d.Name),
			zap.Int("members", len(members)),
		)
	}
	return r.composites
}

// expansion carries the state of one top-level resolution.
type expansion struct {
	root      string
	resolving map[string]bool
	path      []string
	seen      map[*scene.Mesh]struct{}
	out       []*scene.Mesh
}

func (r *Resolver) expandComposite(name string) []*scene.Mesh {
	x := &expansion{
		root:      name,
		resolving: make(map[string]bool),
		seen:      make(map[*scene.Mesh]struct{}),
	}
	r.expand(x, name)
	return x.out
}

func (r *Resolver) expand(x *expansion, name string) {
	if d, ok := r.decls[name]; ok {
		if x.resolving[name] {
			path := append(append([]string(nil), x.path...), name)
			r.diagnose(Diagnostic{Kind: CycleDetected, Group: x.root, Path: path})
			r.log.Warn("group cycle detected",
				zap.String("group", x.root),
				zap.Strings("path", path),
			)
			return
		}
		x.resolving[name] = true
		x.path = append(x.path, name)
		for _, child := range d.Groups {
			if _, isComposite := r.decls[child]; !isComposite {
				if _, isBase := r.base[child]; !isBase {
					r.diagnose(Diagnostic{Kind: UndefinedReference, Group: name, Ref: child})
					r.log.Warn("configuration warning: composite references undefined group",
						zap.String("group", name),
						zap.String("ref", child),
					)
					continue
				}
			}
			r.expand(x, child)
		}
		x.path = x.path[:len(x.path)-1]
		delete(x.resolving, name)
		return
	}

	if g, ok := r.base[name]; ok {
		x.add(g.Members)
	}
}

func (x *expansion) add(meshes []*scene.Mesh) {
	for _, m := range meshes {
		if _, dup := x.seen[m]; dup {
			continue
		}
		x.seen[m] = struct{}{}
		x.out = append(x.out, m)
	}
}

// Resolve returns the meshes of a composite group, else a base group, else
// nothing with an unknown-group diagnostic.
func (r *Resolver) Resolve(name string) []*scene.Mesh {
	if c, ok := r.composites[name]; ok {
		return c.Members
	}
	if b, ok := r.base[name]; ok {
		return b.Members
	}
	r.diagnose(Diagnostic{Kind: UnknownGroup, Group: name})
	r.log.Warn("configuration warning: unknown group", zap.String("group", name))
	return nil
}

// ResolveAll returns the deduplicated union of several groups in order.
func (r *Resolver) ResolveAll(names []string) []*scene.Mesh {
	x := &expansion{seen: make(map[*scene.Mesh]struct{})}
	for _, name := range names {
		x.add(r.Resolve(name))
	}
	return x.out
}

// GroupsOf returns the names of every base and composite group containing
// m, sorted.
func (r *Resolver) GroupsOf(m *scene.Mesh) []string {
	var out []string
	for name, g := range r.base {
		if slices.Contains(g.Members, m) {
			out = append(out, name)
		}
	}
	for name, g := range r.composites {
		if slices.Contains(g.Members, m) {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out
}

// Base returns a base group by name.
func (r *Resolver) Base(name string) (*BaseGroup, bool) {
	g, ok := r.base[name]
	return g, ok
}

// Composite returns a composite group by name.
func (r *Resolver) Composite(name string) (*CompositeGroup, bool) {
	g, ok := r.composites[name]
	return g, ok
}

// Index returns the name index the groups were built from.
func (r *Resolver) Index() *Index {
	return r.index
}

// Diagnostics returns every distinct diagnostic recorded so far.
func (r *Resolver) Diagnostics() []Diagnostic {
	return r.diags
}

func (r *Resolver) diagnose(d Diagnostic) {
	key := d.String()
	if r.diagSeen[key] {
		return
	}
	r.diagSeen[key] = true
	r.diags = append(r.diags, d)
}
