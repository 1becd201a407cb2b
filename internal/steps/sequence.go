package steps

import (
	"errors"
	"fmt"

	"github.com/Faultbox/assembly-guide/internal/manifest"
	"github.com/Faultbox/assembly-guide/pkg/math"
)

var (
	// ErrDuplicateStep is returned when two steps share an id.
	ErrDuplicateStep = errors.New("duplicate step id")
	// ErrInvalidPolicy is returned for visibility policies other than hide and fade.
	ErrInvalidPolicy = errors.New("invalid visibility policy")
	// ErrMissingID is returned for steps without an id.
	ErrMissingID = errors.New("step without id")
)

// Sequence is the ordered, immutable list of steps.
type Sequence struct {
	Steps []Step `yaml:"steps" toml:"steps"`

	index map[string]int
}

// Load reads and validates a step document from a YAML, JSON or TOML file.
func Load(path string) (*Sequence, error) {
	var seq Sequence
	if err := manifest.Load(path, &seq); err != nil {
		return nil, err
	}
	if err := seq.Normalize(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &seq, nil
}

// New builds a validated sequence from steps.
func New(steps []Step) (*Sequence, error) {
	seq := &Sequence{Steps: steps}
	if err := seq.Normalize(); err != nil {
		return nil, err
	}
	return seq, nil
}

// Normalize fills defaults, clamps ranges and builds the id index.
func (q *Sequence) Normalize() error {
	q.index = make(map[string]int, len(q.Steps))
	for i := range q.Steps {
		s := &q.Steps[i]
		if s.ID == "" {
			return fmt.Errorf("step %d: %w", i, ErrMissingID)
		}
		if _, dup := q.index[s.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateStep, s.ID)
		}
		q.index[s.ID] = i

		switch s.VisibilityPolicy {
		case "":
			s.VisibilityPolicy = PolicyFade
		case PolicyHide, PolicyFade:
		default:
			return fmt.Errorf("step %q: %w %q", s.ID, ErrInvalidPolicy, s.VisibilityPolicy)
		}

		s.FadeOpacity = math.Clamp(s.FadeOpacity, 0, 1)
		s.FadeDurationMs = normalizeMs(s.FadeDurationMs, DefaultFadeDurationMs)
		s.StagingDurationMs = normalizeMs(s.StagingDurationMs, DefaultStagingDurationMs)
		if s.Outline.Blinking && s.Outline.BlinkFrequencyHz <= 0 {
			s.Outline.BlinkFrequencyHz = DefaultBlinkFrequencyHz
		}
		if s.Assembly != nil && s.Assembly.PartDurationMs <= 0 {
			s.Assembly.PartDurationMs = DefaultPartDurationMs
		}
	}
	return nil
}

// normalizeMs fills a missing duration with def and clamps negatives to 0.
// An explicit 0 is kept.
func normalizeMs(ms *int, def int) *int {
	switch {
	case ms == nil:
		return Millis(def)
	case *ms < 0:
		return Millis(0)
	default:
		return ms
	}
}

// Len returns the number of steps.
func (q *Sequence) Len() int {
	return len(q.Steps)
}

// IndexOf returns the position of the step with id, or -1.
func (q *Sequence) IndexOf(id string) int {
	if i, ok := q.index[id]; ok {
		return i
	}
	return -1
}

// At returns the step at position i, or nil when out of range.
func (q *Sequence) At(i int) *Step {
	if i < 0 || i >= len(q.Steps) {
		return nil
	}
	return &q.Steps[i]
}

// Get returns the step with id, or nil.
func (q *Sequence) Get(id string) *Step {
	return q.At(q.IndexOf(id))
}

// GroupNames returns every group name referenced by any step, first use first.
func (q *Sequence) GroupNames() []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range q.Steps {
		for _, g := range s.InvolvedGroupNames {
			if !seen[g] {
				seen[g] = true
				out = append(out, g)
			}
		}
	}
	return out
}
