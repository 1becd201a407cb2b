// Package outline tracks which meshes are highlighted and the blink phase of
// the highlight. It never touches mesh state; the renderer reads Selection
// and On once per frame.
package outline

import (
	"go.uber.org/zap"

	"github.com/Faultbox/assembly-guide/internal/scene"
)

// Controller holds the highlight selection and blink timer.
type Controller struct {
	selection []*scene.Mesh
	selected  map[*scene.Mesh]struct{}
	color     Color

	blinking  bool
	frequency float64
	timer     float64
	on        bool

	log *zap.Logger
}

// New creates a controller with an empty selection and the highlight on.
func New(log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		selected: make(map[*scene.Mesh]struct{}),
		color:    DefaultColor,
		on:       true,
		log:      log,
	}
}

// SetSelection replaces the highlighted set.
func (c *Controller) SetSelection(meshes []*scene.Mesh) {
	c.selection = append(c.selection[:0], meshes...)
	clear(c.selected)
	for _, m := range meshes {
		c.selected[m] = struct{}{}
	}
}

// Selection returns the highlighted meshes.
func (c *Controller) Selection() []*scene.Mesh {
	return c.selection
}

// IsSelected reports whether m is highlighted.
func (c *Controller) IsSelected(m *scene.Mesh) bool {
	_, ok := c.selected[m]
	return ok
}

// SetColor sets the highlight colour.
func (c *Controller) SetColor(col Color) {
	c.color = col
}

// Color returns the highlight colour.
func (c *Controller) Color() Color {
	return c.color
}

// SetBlinking turns blinking on at frequencyHz full on/off cycles per
// second, or off. Turning it off forces the highlight on and resets the timer.
func (c *Controller) SetBlinking(enabled bool, frequencyHz float64) {
	if enabled && frequencyHz <= 0 {
		c.log.Warn("configuration warning: blinking needs a positive frequency",
			zap.Float64("frequency_hz", frequencyHz),
		)
		enabled = false
	}

	c.timer = 0
	c.on = true
	c.blinking = enabled
	if enabled {
		c.frequency = frequencyHz
	} else {
		c.frequency = 0
	}
}

// Blinking reports whether the highlight is blinking.
func (c *Controller) Blinking() bool {
	return c.blinking
}

// Update advances the blink timer by dt seconds, toggling the highlight
// once per half period elapsed.
func (c *Controller) Update(dt float64) {
	if !c.blinking || dt <= 0 {
		return
	}
	half := 1 / (2 * c.frequency)
	c.timer += dt
	if c.timer < half {
		return
	}
	toggles := int(c.timer / half)
	c.timer -= float64(toggles) * half
	if toggles%2 == 1 {
		c.on = !c.on
	}
}

// On reports whether the highlight is in its visible phase.
func (c *Controller) On() bool {
	return c.on
}

// Clear empties the selection and stops blinking.
func (c *Controller) Clear() {
	c.SetSelection(nil)
	c.SetBlinking(false, 0)
}
