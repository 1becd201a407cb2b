// Package guide sequences assembly steps over a scene. The Orchestrator owns
// the group resolver, the snapshot store and the visibility and outline
// controllers, and is driven from the host's frame loop through Update.
package guide

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/assembly-guide/internal/groups"
	"github.com/Faultbox/assembly-guide/internal/outline"
	"github.com/Faultbox/assembly-guide/internal/scene"
	"github.com/Faultbox/assembly-guide/internal/snapshot"
	"github.com/Faultbox/assembly-guide/internal/steps"
	"github.com/Faultbox/assembly-guide/internal/tween"
	"github.com/Faultbox/assembly-guide/internal/visibility"
)

var (
	// ErrUnknownStep is returned when a step id is not in the sequence.
	ErrUnknownStep = errors.New("unknown step")
	// ErrEndOfSequence is returned by Next and Previous at either end.
	ErrEndOfSequence = errors.New("no further step in that direction")
)

// Options configures an Orchestrator.
type Options struct {
	// Clock drives every animation. Nil means the system clock.
	Clock tween.Clock
	// Timing is shared by every step.
	Timing visibility.Options
	// OutlineColor is used by steps that do not name a colour.
	OutlineColor outline.Color
}

// DefaultOptions returns the stock timing and outline colour on the system clock.
func DefaultOptions() Options {
	return Options{
		Timing:       visibility.DefaultOptions(),
		OutlineColor: outline.DefaultColor,
	}
}

// Orchestrator is the step state machine. At most one step is active at a
// time; every transition advances the animation generation so that work
// launched by an earlier transition is discarded.
type Orchestrator struct {
	scene    *scene.Scene
	seq      *steps.Sequence
	resolver *groups.Resolver
	store    *snapshot.Store
	anim     *tween.Animator
	vis      *visibility.Controller
	outline  *outline.Controller
	opts     Options
	log      *zap.Logger

	listeners []StepListener

	state     State
	active    int
	partition visibility.Partition
	pending   *tween.Signal
}

// New builds the group index over sc, captures the snapshot of every mesh
// and returns an idle orchestrator. sc must be fully loaded: meshes added
// later are not tracked.
func New(sc *scene.Scene, groupCfg *groups.Config, seq *steps.Sequence, opts Options, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	if groupCfg == nil {
		groupCfg = &groups.Config{}
	}
	if seq == nil {
		seq, _ = steps.New(nil)
	}

	store := snapshot.New(log.Named("snapshot"))
	store.Capture(sc.Meshes())

	resolver := groups.Build(sc.Meshes(), groupCfg, log.Named("groups"))
	anim := tween.NewAnimator(opts.Clock, &tween.Epoch{}, log.Named("tween"))

	o := &Orchestrator{
		scene:    sc,
		seq:      seq,
		resolver: resolver,
		store:    store,
		anim:     anim,
		vis:      visibility.New(resolver, store, anim, opts.Timing, log.Named("visibility")),
		outline:  outline.New(log.Named("outline")),
		opts:     opts,
		log:      log,
		state:    StateIdle,
		active:   -1,
	}
	o.outline.SetColor(opts.OutlineColor)

	log.Info("step orchestrator ready",
		zap.String("scene", sc.Name),
		zap.Int("meshes", store.Len()),
		zap.Int("steps", seq.Len()),
	)
	return o
}

// AddListener registers l for step notifications.
func (o *Orchestrator) AddListener(l StepListener) {
	o.listeners = append(o.listeners, l)
}

// EnterStep makes the step with id the active one. If another step is
// active or entering, its restore runs first and the new step's isolate
// animations start once the restore settles. Entering the step that is
// already active or entering returns the pending completion signal.
func (o *Orchestrator) EnterStep(id string) (*tween.Signal, error) {
	idx := o.seq.IndexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStep, id)
	}
	if idx == o.active && (o.state == StateEntering || o.state == StateActive) {
		return o.pending, nil
	}
	return o.enter(idx), nil
}

func (o *Orchestrator) enter(idx int) *tween.Signal {
	gen := o.anim.Epoch().Advance()
	step := o.seq.At(idx)

	restored := tween.Resolved()
	if o.state != StateIdle {
		o.leave()
		restored = o.restore()
	}

	o.log.Info("entering step",
		zap.String("step", step.ID),
		zap.Int("index", idx),
		zap.Uint64("generation", gen),
	)

	o.state = StateEntering
	o.active = idx
	o.partition = o.vis.Partition(step)

	done := restored.Chain(func() *tween.Signal {
		o.applyOutline(step)
		return o.vis.Apply(step, o.partition)
	})
	done.Then(func() {
		if !o.anim.Epoch().Valid(gen) {
			return
		}
		o.state = StateActive
		o.log.Debug("step settled", zap.String("step", step.ID))
		for _, l := range o.listeners {
			l.OnStepEntered(step)
		}
	})
	o.pending = done
	return done
}

// ExitStep restores the scene and returns to idle once the restore settles.
// From idle it is a no-op; while already exiting it returns the pending
// restore signal.
func (o *Orchestrator) ExitStep() *tween.Signal {
	switch o.state {
	case StateIdle:
		return tween.Resolved()
	case StateExiting:
		return o.pending
	}

	gen := o.anim.Epoch().Advance()
	o.log.Info("exiting step", zap.String("step", o.ActiveStepID()), zap.Uint64("generation", gen))
	o.leave()

	done := o.restore()
	done.Then(func() {
		if o.anim.Epoch().Valid(gen) {
			o.state = StateIdle
		}
	})
	o.pending = done
	return done
}

// Reset forces the idle state immediately: in-flight animations are
// discarded and every mesh snaps back to its captured state, visible.
func (o *Orchestrator) Reset() {
	gen := o.anim.Epoch().Advance()
	o.log.Info("resetting", zap.Uint64("generation", gen))
	if o.state != StateIdle {
		o.leave()
	}

	o.vis.RestoreAll()
	o.outline.Clear()

	o.state = StateIdle
	o.pending = nil
}

// leave drops the active step and notifies listeners. The caller has
// already advanced the generation.
func (o *Orchestrator) leave() {
	step := o.seq.At(o.active)
	o.state = StateExiting
	o.active = -1
	o.partition = visibility.Partition{}
	o.pending = nil
	if step == nil {
		return
	}
	for _, l := range o.listeners {
		l.OnStepExited(step)
	}
}

func (o *Orchestrator) restore() *tween.Signal {
	o.outline.Clear()
	o.vis.ResetPositions()
	return o.vis.ShowAll()
}

func (o *Orchestrator) applyOutline(step *steps.Step) {
	col := o.opts.OutlineColor
	if step.Outline.Color != "" {
		parsed, err := outline.ParseColor(step.Outline.Color)
		if err != nil {
			o.log.Warn("configuration warning: invalid outline color",
				zap.String("step", step.ID),
				zap.String("color", step.Outline.Color),
				zap.Error(err),
			)
		} else {
			col = parsed
		}
	}
	o.outline.SetColor(col)
	o.outline.SetSelection(o.partition.Involved)
	o.outline.SetBlinking(step.Outline.Blinking, step.Outline.BlinkFrequencyHz)
}

// Next enters the step after the active one, or the first step from idle.
func (o *Orchestrator) Next() (*tween.Signal, error) {
	idx := o.active + 1
	if idx >= o.seq.Len() {
		return nil, ErrEndOfSequence
	}
	return o.EnterStep(o.seq.At(idx).ID)
}

// Previous enters the step before the active one, or the last step from idle.
func (o *Orchestrator) Previous() (*tween.Signal, error) {
	idx := o.active - 1
	if o.active < 0 {
		idx = o.seq.Len() - 1
	}
	if idx < 0 {
		return nil, ErrEndOfSequence
	}
	return o.EnterStep(o.seq.At(idx).ID)
}

// Update advances animations and the outline blink. Call once per frame
// with the time since the previous frame.
func (o *Orchestrator) Update(dt time.Duration) {
	o.anim.Update()
	o.outline.Update(dt.Seconds())
}

// ActiveStepID returns the id of the active or entering step, or "".
func (o *Orchestrator) ActiveStepID() string {
	if s := o.ActiveStep(); s != nil {
		return s.ID
	}
	return ""
}

// ActiveStep returns the active or entering step, or nil.
func (o *Orchestrator) ActiveStep() *steps.Step {
	return o.seq.At(o.active)
}

// ActiveIndex returns the position of the active step, or -1.
func (o *Orchestrator) ActiveIndex() int {
	return o.active
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() State {
	return o.state
}

// Generation returns the current animation generation.
func (o *Orchestrator) Generation() uint64 {
	return o.anim.Epoch().Current()
}

// Involved returns the meshes of the active step.
func (o *Orchestrator) Involved() []*scene.Mesh {
	return o.partition.Involved
}

// NonInvolved returns the tracked meshes outside the active step.
func (o *Orchestrator) NonInvolved() []*scene.Mesh {
	return o.partition.NonInvolved
}

// Steps returns the step sequence.
func (o *Orchestrator) Steps() *steps.Sequence {
	return o.seq
}

// Scene returns the scene being guided.
func (o *Orchestrator) Scene() *scene.Scene {
	return o.scene
}

// Resolver returns the group resolver built over the scene.
func (o *Orchestrator) Resolver() *groups.Resolver {
	return o.resolver
}

// Snapshot returns the captured mesh state.
func (o *Orchestrator) Snapshot() *snapshot.Store {
	return o.store
}

// Outline returns the highlight controller the renderer reads each frame.
func (o *Orchestrator) Outline() *outline.Controller {
	return o.outline
}
