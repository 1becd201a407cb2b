package guide

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/assembly-guide/internal/groups"
	"github.com/Faultbox/assembly-guide/internal/scene"
	"github.com/Faultbox/assembly-guide/internal/steps"
)

// Paths names the documents of one assembly guide. Groups and Steps are
// optional; without them every mesh is tracked but no step can isolate any.
type Paths struct {
	Scene  string
	Groups string
	Steps  string
}

// Open loads the documents and builds an orchestrator over them.
func Open(paths Paths, opts Options, log *zap.Logger) (*Orchestrator, error) {
	sc, err := scene.Load(paths.Scene)
	if err != nil {
		return nil, fmt.Errorf("loading scene: %w", err)
	}

	groupCfg := &groups.Config{}
	if paths.Groups != "" {
		if groupCfg, err = groups.LoadConfig(paths.Groups); err != nil {
			return nil, fmt.Errorf("loading groups: %w", err)
		}
	}

	var seq *steps.Sequence
	if paths.Steps != "" {
		if seq, err = steps.Load(paths.Steps); err != nil {
			return nil, fmt.Errorf("loading steps: %w", err)
		}
	}

	return New(sc, groupCfg, seq, opts, log), nil
}

// EmptySteps returns the ids of steps whose groups resolve to no meshes.
func (o *Orchestrator) EmptySteps() []string {
	var out []string
	for i := 0; i < o.seq.Len(); i++ {
		s := o.seq.At(i)
		if len(o.resolver.ResolveAll(s.InvolvedGroupNames)) == 0 {
			out = append(out, s.ID)
		}
	}
	return out
}
