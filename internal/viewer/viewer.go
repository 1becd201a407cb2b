// Package viewer runs the interactive assembly guide: window, input, camera
// and renderer around a guide.Orchestrator.
package viewer

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/assembly-guide/internal/engine/camera"
	"github.com/Faultbox/assembly-guide/internal/engine/debug"
	"github.com/Faultbox/assembly-guide/internal/engine/input"
	"github.com/Faultbox/assembly-guide/internal/engine/picking"
	"github.com/Faultbox/assembly-guide/internal/engine/renderer"
	"github.com/Faultbox/assembly-guide/internal/engine/window"
	"github.com/Faultbox/assembly-guide/internal/guide"
	"github.com/Faultbox/assembly-guide/internal/steps"
)

// Config holds viewer configuration.
type Config struct {
	Title         string
	Width         int
	Height        int
	Fullscreen    bool
	VSync         bool
	ScreenshotDir string
}

// Viewer is the interactive shell around one orchestrator.
type Viewer struct {
	config   Config
	running  bool
	guide    *guide.Orchestrator
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	shots    *debug.ScreenshotCapture
	log      *zap.Logger

	title string
}

// New opens the window and prepares rendering for g.
func New(cfg Config, g *guide.Orchestrator, log *zap.Logger) (*Viewer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("initializing viewer",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
	)

	v := &Viewer{
		config: cfg,
		guide:  g,
		input:  input.New(nil),
		camera: camera.NewOrbitCamera(),
		shots:  debug.NewScreenshotCapture(cfg.ScreenshotDir, "assembly"),
		log:    log,
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      cfg.Title,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Fullscreen: cfg.Fullscreen,
		VSync:      cfg.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context the window just created.
	w, h := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{Width: w, Height: h, LineWidth: 1})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.camera.FitToBounds(g.Scene().Bounds())
	g.AddListener(v)
	v.refreshTitle()

	log.Info("viewer initialized")
	return v, nil
}

// Run drives the frame loop until the window closes or Esc is pressed.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := lastTime

	v.log.Info("starting frame loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()
		for _, a := range v.input.Actions() {
			if err := v.handleAction(a); err != nil {
				return err
			}
		}

		v.guide.Update(dt)
		v.refreshTitle()

		v.renderer.Begin()
		viewProj := v.camera.ProjectionMatrix(v.renderer.Aspect()).Mul(v.camera.ViewMatrix())
		v.renderer.Draw(viewProj, debug.BuildDrawList(v.guide.Scene().Meshes(), v.guide.Outline()))
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount), zap.Duration("dt", dt))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleEvents() {
	for _, e := range v.input.Events() {
		switch e.Type {
		case input.EventWindowResize:
			w, h := v.window.DrawableSize()
			v.renderer.Resize(w, h)
		case input.EventMouseDrag:
			v.camera.HandleDrag(e.DX, e.DY)
		case input.EventMouseWheel:
			v.camera.HandleZoom(e.DY)
		case input.EventMouseClick:
			v.inspect(e.X, e.Y)
		}
	}
}

// inspect logs the mesh under the cursor and the groups it belongs to.
func (v *Viewer) inspect(x, y int) {
	w, h := v.window.Size()
	viewProj := v.camera.ProjectionMatrix(v.renderer.Aspect()).Mul(v.camera.ViewMatrix())
	ray := picking.ScreenToRay(float32(x), float32(y), float32(w), float32(h), viewProj.Inverse())

	m := picking.Pick(ray, v.guide.Scene().Meshes())
	if m == nil {
		v.log.Info("nothing under cursor")
		return
	}
	v.log.Info("mesh under cursor",
		zap.String("mesh", m.Name),
		zap.Strings("groups", v.guide.Resolver().GroupsOf(m)),
		zap.Bool("highlighted", v.guide.Outline().IsSelected(m)),
	)
}

func (v *Viewer) handleAction(a input.Action) error {
	var err error
	switch a {
	case input.ActionNextStep:
		_, err = v.guide.Next()
	case input.ActionPreviousStep:
		_, err = v.guide.Previous()
	case input.ActionExitStep:
		v.guide.ExitStep()
	case input.ActionReset:
		v.guide.Reset()
	case input.ActionScreenshot:
		v.screenshot()
	}

	if errors.Is(err, guide.ErrEndOfSequence) {
		v.log.Debug("no step in that direction", zap.String("active", v.guide.ActiveStepID()))
		return nil
	}
	return err
}

func (v *Viewer) screenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.shots.CaptureFromPixels(pixels, w, h, v.guide.ActiveStepID())
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// OnStepEntered logs the settled step.
func (v *Viewer) OnStepEntered(s *steps.Step) {
	v.log.Info("step ready", zap.String("step", s.ID), zap.String("label", s.Label))
}

// OnStepExited logs the step being left.
func (v *Viewer) OnStepExited(s *steps.Step) {
	v.log.Debug("step left", zap.String("step", s.ID))
}

func (v *Viewer) refreshTitle() {
	title := v.config.Title
	if s := v.guide.ActiveStep(); s != nil {
		title = fmt.Sprintf("%s | %d/%d %s", v.config.Title, v.guide.ActiveIndex()+1, v.guide.Steps().Len(), s.Title())
	}
	if title != v.title {
		v.title = title
		v.window.SetTitle(title)
	}
}

// Close releases the renderer and window.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
