package tween

import (
	"time"

	"go.uber.org/zap"
)

// Animator owns every in-flight animation for one orchestrator.
type Animator struct {
	clock Clock
	epoch *Epoch
	log   *zap.Logger

	tasks []*task
}

type task struct {
	gen      uint64
	start    time.Time
	duration time.Duration
	ease     Ease
	apply    func(p float32)
	done     *Signal
}

// NewAnimator creates an animator. A nil clock uses the system clock and a
// nil epoch gets a private counter.
func NewAnimator(clock Clock, epoch *Epoch, log *zap.Logger) *Animator {
	if clock == nil {
		clock = SystemClock{}
	}
	if epoch == nil {
		epoch = &Epoch{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Animator{clock: clock, epoch: epoch, log: log}
}

// Epoch returns the generation counter animations are checked against.
func (a *Animator) Epoch() *Epoch {
	return a.epoch
}

// Clock returns the animator's time source.
func (a *Animator) Clock() Clock {
	return a.clock
}

// Tween starts an animation lasting d. On every Update, apply receives the
// eased progress; the final call always receives exactly 1. The returned
// signal resolves after that final call. If the epoch advances first, the
// animation is dropped without another apply call and the signal never
// resolves.
func (a *Animator) Tween(d time.Duration, ease Ease, apply func(p float32)) *Signal {
	if ease == nil {
		ease = Linear
	}
	t := &task{
		gen:      a.epoch.Current(),
		start:    a.clock.Now(),
		duration: d,
		ease:     ease,
		apply:    apply,
		done:     NewSignal(),
	}
	a.tasks = append(a.tasks, t)
	return t.done
}

// Delay returns a signal that resolves once d has elapsed, subject to the
// same generation check as Tween.
func (a *Animator) Delay(d time.Duration) *Signal {
	return a.Tween(d, Linear, nil)
}

// Pending returns the number of animations still in flight.
func (a *Animator) Pending() int {
	return len(a.tasks)
}

// Update advances every animation to the current clock time. Call once per frame.
func (a *Animator) Update() {
	if len(a.tasks) == 0 {
		return
	}

	now := a.clock.Now()
	current := a.tasks
	a.tasks = nil

	var finished []*task
	stale := 0
	for _, t := range current {
		if !a.epoch.Valid(t.gen) {
			stale++
			continue
		}
		p := progress(now, t)
		if t.apply != nil {
			t.apply(t.ease(p))
		}
		if p >= 1 {
			finished = append(finished, t)
			continue
		}
		a.tasks = append(a.tasks, t)
	}

	if stale > 0 {
		a.log.Debug("stale animation discarded",
			zap.Int("count", stale),
			zap.Uint64("generation", a.epoch.Current()),
		)
	}

	// Callbacks may launch new animations; they join a.tasks and are first
	// sampled on the next Update.
	for _, t := range finished {
		if !a.epoch.Valid(t.gen) {
			continue
		}
		t.done.Resolve()
	}
}

// progress returns clamp(elapsed/duration, 0, 1).
func progress(now time.Time, t *task) float32 {
	if t.duration <= 0 {
		return 1
	}
	p := float32(now.Sub(t.start)) / float32(t.duration)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
