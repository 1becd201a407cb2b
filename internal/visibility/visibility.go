// Package visibility isolates the meshes of a step: it fades or hides
// everything else, then moves the involved meshes so their combined
// bounding box is centred on the step's staging point.
package visibility

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/assembly-guide/internal/scene"
	"github.com/Faultbox/assembly-guide/internal/snapshot"
	"github.com/Faultbox/assembly-guide/internal/steps"
	"github.com/Faultbox/assembly-guide/internal/tween"
	"github.com/Faultbox/assembly-guide/pkg/math"
)

// Resolver turns group names into meshes.
type Resolver interface {
	ResolveAll(names []string) []*scene.Mesh
}

// Options tunes the timing shared by every step.
type Options struct {
	// SettleDelay separates the end of the fade from the start of staging.
	SettleDelay time.Duration
	// RestoreDuration is how long ShowAll takes to bring opacity back.
	RestoreDuration time.Duration
	// StagingEase shapes the move to the staging point. Nil means Smoothstep.
	StagingEase tween.Ease
}

// DefaultOptions returns the stock timing.
func DefaultOptions() Options {
	return Options{
		SettleDelay:     250 * time.Millisecond,
		RestoreDuration: 400 * time.Millisecond,
		StagingEase:     tween.Smoothstep,
	}
}

// Partition splits the tracked meshes for one step.
type Partition struct {
	Involved    []*scene.Mesh
	NonInvolved []*scene.Mesh
}

// Controller drives mesh opacity, visibility and position for steps.
type Controller struct {
	resolver Resolver
	store    *snapshot.Store
	anim     *tween.Animator
	opts     Options
	log      *zap.Logger
}

// New creates a controller. The store must already hold the snapshot of
// every mesh the controller may touch.
func New(resolver Resolver, store *snapshot.Store, anim *tween.Animator, opts Options, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.StagingEase == nil {
		opts.StagingEase = tween.Smoothstep
	}
	return &Controller{
		resolver: resolver,
		store:    store,
		anim:     anim,
		opts:     opts,
		log:      log,
	}
}

// Partition resolves the step's groups and splits the tracked meshes into
// involved and non-involved sets. Involved meshes the store does not track
// are left out.
func (c *Controller) Partition(step *steps.Step) Partition {
	var p Partition
	involved := make(map[*scene.Mesh]struct{})
	for _, m := range c.resolver.ResolveAll(step.InvolvedGroupNames) {
		if !c.store.Has(m) {
			c.log.Warn("missing snapshot", zap.String("mesh", m.Name), zap.String("step", step.ID))
			continue
		}
		involved[m] = struct{}{}
		p.Involved = append(p.Involved, m)
	}
	for _, m := range c.store.Tracked() {
		if _, ok := involved[m]; !ok {
			p.NonInvolved = append(p.NonInvolved, m)
		}
	}
	return p
}

// ShowOnlyStepMeshes isolates the step's meshes. The returned signal resolves
// once staging has finished for every involved mesh.
func (c *Controller) ShowOnlyStepMeshes(step *steps.Step) *tween.Signal {
	return c.Apply(step, c.Partition(step))
}

// Apply runs the isolate sequence for a precomputed partition: hide or fade
// the non-involved meshes, wait for the settle delay, then stage.
func (c *Controller) Apply(step *steps.Step, p Partition) *tween.Signal {
	c.log.Debug("isolating step",
		zap.String("step", step.ID),
		zap.Int("involved", len(p.Involved)),
		zap.Int("non_involved", len(p.NonInvolved)),
		zap.String("policy", string(step.VisibilityPolicy)),
	)

	for _, m := range p.Involved {
		m.Visible = true
	}

	var removed *tween.Signal
	if step.VisibilityPolicy == steps.PolicyHide {
		for _, m := range p.NonInvolved {
			m.Visible = false
		}
		removed = tween.Resolved()
	} else {
		removed = c.fade(p.NonInvolved, step.FadeOpacity, step.FadeDuration())
	}

	return removed.
		Chain(func() *tween.Signal { return c.anim.Delay(c.opts.SettleDelay) }).
		Chain(func() *tween.Signal { return c.stage(step, p.Involved) })
}

// fade animates opacity linearly from its current value to target. Meshes
// that reach zero opacity are made invisible.
func (c *Controller) fade(meshes []*scene.Mesh, target float32, d time.Duration) *tween.Signal {
	signals := make([]*tween.Signal, 0, len(meshes))
	for _, m := range meshes {
		from := m.Opacity()
		m.SetTransparent(true)
		done := c.anim.Tween(d, tween.Linear, func(p float32) {
			m.SetOpacity(math.Lerp(from, target, p))
		})
		if target <= 0 {
			done.Then(func() { m.Visible = false })
		}
		signals = append(signals, done)
	}
	return tween.All(signals...)
}

// StagingTargets returns, for each mesh, the local position that moves the
// group's world-space bounding box centroid onto center while preserving
// the meshes' relative offsets.
func StagingTargets(meshes []*scene.Mesh, center math.Vec3) []math.Vec3 {
	bounds := scene.EmptyBounds()
	for _, m := range meshes {
		bounds = bounds.Union(m.WorldBounds())
	}
	offset := center.Sub(bounds.Center())

	targets := make([]math.Vec3, len(meshes))
	for i, m := range meshes {
		targets[i] = m.WorldToLocal(m.WorldPosition().Add(offset))
	}
	return targets
}

func (c *Controller) stage(step *steps.Step, meshes []*scene.Mesh) *tween.Signal {
	if len(meshes) == 0 {
		c.log.Warn("configuration warning: step has no meshes to stage", zap.String("step", step.ID))
		return tween.Resolved()
	}

	targets := StagingTargets(meshes, step.Center())
	if step.Sequential() {
		return c.assemble(step, meshes, targets)
	}

	signals := make([]*tween.Signal, len(meshes))
	for i, m := range meshes {
		signals[i] = c.move(m, m.Position, targets[i], step.StagingDuration())
	}
	return tween.All(signals...)
}

// assemble stages parts one after another. Every part is first parked at
// its target plus the explode offset; parts wait hidden until their turn.
func (c *Controller) assemble(step *steps.Step, meshes []*scene.Mesh, targets []math.Vec3) *tween.Signal {
	explode := math.V3(step.Assembly.ExplodeOffset)
	starts := make([]math.Vec3, len(meshes))
	for i, m := range meshes {
		targetWorld := m.ParentWorldMatrix().TransformVec3(targets[i])
		starts[i] = m.WorldToLocal(targetWorld.Add(explode))
		m.Position = starts[i]
		m.Visible = i == 0
	}

	parts := make([]func() *tween.Signal, len(meshes))
	for i, m := range meshes {
		parts[i] = func() *tween.Signal {
			m.Visible = true
			c.log.Debug("assembling part", zap.String("step", step.ID), zap.String("mesh", m.Name), zap.Int("order", i))
			return c.move(m, starts[i], targets[i], step.PartDuration())
		}
	}
	return tween.Sequence(parts...)
}

func (c *Controller) move(m *scene.Mesh, from, to math.Vec3, d time.Duration) *tween.Signal {
	return c.anim.Tween(d, c.opts.StagingEase, func(p float32) {
		m.Position = from.Lerp(to, p)
	})
}

// ShowAll makes every tracked mesh visible and animates its opacity back to
// the captured value, then restores the captured transparency flag.
func (c *Controller) ShowAll() *tween.Signal {
	tracked := c.store.Tracked()
	signals := make([]*tween.Signal, 0, len(tracked))
	for _, m := range tracked {
		e, _ := c.store.Get(m)
		from := m.Opacity()
		m.Visible = true
		done := c.anim.Tween(c.opts.RestoreDuration, tween.Linear, func(p float32) {
			m.SetOpacity(math.Lerp(from, e.Opacity, p))
		})
		done.Then(func() { c.store.RestoreOpacity(m) })
		signals = append(signals, done)
	}
	return tween.All(signals...)
}

// ResetPositions snaps every tracked mesh back to its captured local position.
func (c *Controller) ResetPositions() {
	for _, m := range c.store.Tracked() {
		c.store.RestorePosition(m)
	}
}

// HideAll makes every tracked mesh invisible.
func (c *Controller) HideAll() {
	for _, m := range c.store.Tracked() {
		m.Visible = false
	}
}

// RestoreAll snaps every tracked mesh back to its captured state without animation.
func (c *Controller) RestoreAll() {
	c.store.RestoreAll()
}
