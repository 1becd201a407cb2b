// Package input turns SDL2 events into viewer events and step commands.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a processed event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventMouseDrag
	EventMouseWheel
	EventMouseClick
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	DX, DY float32 // drag delta in pixels or wheel steps
	X, Y   int     // cursor position for clicks
}

// Action is a viewer command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionNextStep
	ActionPreviousStep
	ActionExitStep
	ActionReset
	ActionScreenshot
	ActionQuit
)

// DefaultKeymap binds the step navigation keys.
func DefaultKeymap() map[sdl.Scancode]Action {
	return map[sdl.Scancode]Action{
		sdl.SCANCODE_RIGHT:  ActionNextStep,
		sdl.SCANCODE_N:      ActionNextStep,
		sdl.SCANCODE_LEFT:   ActionPreviousStep,
		sdl.SCANCODE_P:      ActionPreviousStep,
		sdl.SCANCODE_E:      ActionExitStep,
		sdl.SCANCODE_R:      ActionReset,
		sdl.SCANCODE_F12:    ActionScreenshot,
		sdl.SCANCODE_ESCAPE: ActionQuit,
	}
}

// Input handles all input processing.
type Input struct {
	keymap   map[sdl.Scancode]Action
	events   []Event
	actions  []Action
	dragging bool
}

// New creates an input handler using keymap, or DefaultKeymap when nil.
func New(keymap map[sdl.Scancode]Action) *Input {
	if keymap == nil {
		keymap = DefaultKeymap()
	}
	return &Input{
		keymap: keymap,
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events. Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	i.actions = i.actions[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
				continue
			}
			i.events = append(i.events, Event{Type: EventKeyDown, Key: e.Keysym.Scancode})
			if a, ok := i.keymap[e.Keysym.Scancode]; ok {
				if a == ActionQuit {
					return true
				}
				i.actions = append(i.actions, a)
			}

		case *sdl.MouseButtonEvent:
			switch e.Button {
			case sdl.BUTTON_LEFT:
				i.dragging = e.Type == sdl.MOUSEBUTTONDOWN
			case sdl.BUTTON_RIGHT:
				if e.Type == sdl.MOUSEBUTTONDOWN {
					i.events = append(i.events, Event{Type: EventMouseClick, X: int(e.X), Y: int(e.Y)})
				}
			}

		case *sdl.MouseMotionEvent:
			if i.dragging {
				i.events = append(i.events, Event{
					Type: EventMouseDrag,
					DX:   float32(e.XRel),
					DY:   float32(e.YRel),
				})
			}

		case *sdl.MouseWheelEvent:
			i.events = append(i.events, Event{Type: EventMouseWheel, DY: float32(e.Y)})
		}
	}

	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Actions returns the key commands from the last Update in arrival order.
func (i *Input) Actions() []Action {
	return i.actions
}
