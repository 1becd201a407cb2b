package groups

import (
	"fmt"
	"strings"
)

// Kind classifies a resolution diagnostic.
type Kind int

const (
	// EmptyGroup: a configured base name matched no mesh.
	EmptyGroup Kind = iota
	// UndefinedReference: a composite names a group that does not exist.
	UndefinedReference
	// CycleDetected: a composite reaches itself through its children.
	CycleDetected
	// UnknownGroup: Resolve was asked for a name that is not a group.
	UnknownGroup
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case EmptyGroup:
		return "empty-group"
	case UndefinedReference:
		return "undefined-reference"
	case CycleDetected:
		return "cycle"
	case UnknownGroup:
		return "unknown-group"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Diagnostic records one degraded resolution. None of them stop resolution.
type Diagnostic struct {
	Kind  Kind
	Group string
	// Ref is the offending child name for UndefinedReference.
	Ref string
	// Path is the resolution path that closed a cycle, e.g. [A B A].
	Path []string
}

// String formats the diagnostic for CLI output.
func (d Diagnostic) String() string {
	switch d.Kind {
	case UndefinedReference:
		return fmt.Sprintf("%s: %s references undefined group %q", d.Kind, d.Group, d.Ref)
	case CycleDetected:
		return fmt.Sprintf("%s: %s", d.Kind, strings.Join(d.Path, " -> "))
	default:
		return fmt.Sprintf("%s: %s", d.Kind, d.Group)
	}
}
