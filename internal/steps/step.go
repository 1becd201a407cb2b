// Package steps holds the ordered assembly step sequence.
//
// Steps are read-only once loaded; the orchestrator only ever reads them.
package steps

import (
	"time"

	"github.com/Faultbox/assembly-guide/pkg/math"
)

// Policy selects how meshes outside the step are removed from view.
type Policy string

const (
	// PolicyHide makes non-involved meshes invisible immediately.
	PolicyHide Policy = "hide"
	// PolicyFade animates non-involved meshes towards FadeOpacity.
	PolicyFade Policy = "fade"
)

// Defaults applied by Normalize to fields a document leaves out.
const (
	DefaultFadeDurationMs    = 500
	DefaultStagingDurationMs = 800
	DefaultBlinkFrequencyHz  = 2.0
	DefaultPartDurationMs    = 400
)

// Outline configures the highlight drawn around the involved meshes.
type Outline struct {
	Color            string  `yaml:"color" toml:"color"`
	Blinking         bool    `yaml:"blinking" toml:"blinking"`
	BlinkFrequencyHz float64 `yaml:"blinkFrequencyHz" toml:"blinkFrequencyHz"`
}

// Assembly requests part-by-part staging: each involved mesh starts at its
// staged target plus ExplodeOffset and moves in only after the previous
// mesh has settled.
type Assembly struct {
	Sequential     bool       `yaml:"sequential" toml:"sequential"`
	ExplodeOffset  [3]float32 `yaml:"explodeOffset" toml:"explodeOffset"`
	PartDurationMs int        `yaml:"partDurationMs" toml:"partDurationMs"`
}

// Step is one entry of the assembly sequence. Durations left out of the
// document get the package defaults on load; zero or negative durations
// are instant.
type Step struct {
	ID                 string     `yaml:"id" toml:"id"`
	Label              string     `yaml:"label" toml:"label"`
	InvolvedGroupNames []string   `yaml:"involvedGroupNames" toml:"involvedGroupNames"`
	Outline            Outline    `yaml:"outline" toml:"outline"`
	VisibilityPolicy   Policy     `yaml:"visibilityPolicy" toml:"visibilityPolicy"`
	FadeOpacity        float32    `yaml:"fadeOpacity" toml:"fadeOpacity"`
	FadeDurationMs     *int       `yaml:"fadeDurationMs" toml:"fadeDurationMs"`
	StagingCenter      [3]float32 `yaml:"stagingCenter" toml:"stagingCenter"`
	StagingDurationMs  *int       `yaml:"stagingDurationMs" toml:"stagingDurationMs"`
	Assembly           *Assembly  `yaml:"assembly,omitempty" toml:"assembly,omitempty"`
}

// Millis returns a pointer to ms, for building steps in code.
func Millis(ms int) *int {
	return &ms
}

func millis(ms *int, def int) time.Duration {
	if ms == nil {
		return time.Duration(def) * time.Millisecond
	}
	if *ms < 0 {
		return 0
	}
	return time.Duration(*ms) * time.Millisecond
}

// FadeDuration returns FadeDurationMs as a duration.
func (s *Step) FadeDuration() time.Duration {
	return millis(s.FadeDurationMs, DefaultFadeDurationMs)
}

// StagingDuration returns StagingDurationMs as a duration.
func (s *Step) StagingDuration() time.Duration {
	return millis(s.StagingDurationMs, DefaultStagingDurationMs)
}

// Center returns the staging focal point.
func (s *Step) Center() math.Vec3 {
	return math.V3(s.StagingCenter)
}

// Sequential reports whether the step stages its parts one at a time.
func (s *Step) Sequential() bool {
	return s.Assembly != nil && s.Assembly.Sequential
}

// PartDuration returns the per-part staging duration for sequential steps.
func (s *Step) PartDuration() time.Duration {
	if s.Assembly == nil {
		return 0
	}
	return time.Duration(s.Assembly.PartDurationMs) * time.Millisecond
}

// Title returns the label, or the id when no label is set.
func (s *Step) Title() string {
	if s.Label != "" {
		return s.Label
	}
	return s.ID
}
