package guide

import "github.com/Faultbox/assembly-guide/internal/steps"

// State is the orchestrator's position in the step lifecycle.
type State int

const (
	// StateIdle means no step is active and the scene shows its captured state.
	StateIdle State = iota
	// StateEntering means a step's isolate animations are in flight.
	StateEntering
	// StateActive means the active step's animations have settled.
	StateActive
	// StateExiting means the scene is being restored after a step.
	StateExiting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEntering:
		return "entering"
	case StateActive:
		return "active"
	case StateExiting:
		return "exiting"
	default:
		return "unknown"
	}
}

// StepListener is notified about step changes. Callbacks run on the frame
// thread.
type StepListener interface {
	// OnStepEntered is called once a step's animations have settled.
	OnStepEntered(step *steps.Step)

	// OnStepExited is called when a step stops being the active one.
	OnStepExited(step *steps.Step)
}
