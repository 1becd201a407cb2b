// Package tween drives time-based animations from the host's frame loop.
//
// Everything runs on the frame thread: the host calls Animator.Update once per
// frame, animations sample wall-clock time, and completion is reported
// through Signals whose callbacks run inside that same Update call. There
// are no goroutines and no locks.
package tween

// Signal is a one-shot completion notification.
type Signal struct {
	done    bool
	waiters []func()
}

// NewSignal returns an unresolved signal.
func NewSignal() *Signal {
	return &Signal{}
}

// Resolved returns a signal that has already completed.
func Resolved() *Signal {
	return &Signal{done: true}
}

// Done reports whether the signal has resolved.
func (s *Signal) Done() bool {
	return s.done
}

// Resolve completes the signal and runs its callbacks in registration order.
// Later calls are no-ops.
func (s *Signal) Resolve() {
	if s.done {
		return
	}
	s.done = true
	waiters := s.waiters
	s.waiters = nil
	for _, fn := range waiters {
		fn()
	}
}

// Then registers fn to run on resolution, or runs it now if already resolved.
func (s *Signal) Then(fn func()) {
	if s.done {
		fn()
		return
	}
	s.waiters = append(s.waiters, fn)
}

// Chain returns a signal that resolves when the signal produced by next
// resolves; next is only called after s resolves.
func (s *Signal) Chain(next func() *Signal) *Signal {
	out := NewSignal()
	s.Then(func() {
		next().Then(out.Resolve)
	})
	return out
}

// All resolves once every given signal has resolved. With no inputs it is
// already resolved.
func All(signals ...*Signal) *Signal {
	out := NewSignal()
	pending := len(signals)
	if pending == 0 {
		out.Resolve()
		return out
	}
	for _, s := range signals {
		s.Then(func() {
			pending--
			if pending == 0 {
				out.Resolve()
			}
		})
	}
	return out
}

// Sequence runs each step only after the previous step's signal resolved.
func Sequence(steps ...func() *Signal) *Signal {
	s := Resolved()
	for _, step := range steps {
		s = s.Chain(step)
	}
	return s
}
