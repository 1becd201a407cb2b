// Package renderer draws the assembly as coloured wireframe boxes with
// OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/assembly-guide/internal/engine/debug"
	"github.com/Faultbox/assembly-guide/internal/engine/shader"
	"github.com/Faultbox/assembly-guide/internal/logger"
	"github.com/Faultbox/assembly-guide/pkg/math"
)

const vertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;

uniform mat4 uViewProj;

void main() {
	gl_Position = uViewProj * vec4(aPos, 1.0);
}
`

const fragmentShader = `
#version 410 core

uniform vec4 uColor;
out vec4 FragColor;

void main() {
	FragColor = uColor;
}
`

// Config holds renderer configuration.
type Config struct {
	Width     int
	Height    int
	LineWidth float32
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config  Config
	program *shader.Program
	log     *zap.Logger

	vao      uint32
	vbo      uint32
	capacity int // floats the VBO can hold
}

// New creates a renderer. Must be called after the OpenGL context exists.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.MULTISAMPLE)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)

	var err error
	r.program, err = shader.NewProgram(vertexShader, fragmentShader, "uViewProj", "uColor")
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close releases GPU resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles a framebuffer size change.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// Aspect returns the framebuffer aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw renders the batches in order. Transparent batches are blended and
// do not write depth.
func (r *Renderer) Draw(viewProj math.Mat4, batches []debug.Batch) {
	if len(batches) == 0 {
		return
	}

	total := 0
	for _, b := range batches {
		total += len(b.Vertices)
	}
	verts := make([]float32, 0, total)
	for _, b := range batches {
		verts = append(verts, b.Vertices...)
	}

	r.program.Use()
	r.program.SetMat4("uViewProj", viewProj)
	gl.LineWidth(r.config.LineWidth)
	gl.BindVertexArray(r.vao)
	r.upload(verts)

	first := int32(0)
	for _, b := range batches {
		if b.Transparent {
			gl.Enable(gl.BLEND)
			gl.DepthMask(false)
		} else {
			gl.Disable(gl.BLEND)
			gl.DepthMask(true)
		}
		r.program.SetVec4("uColor", b.Color[0], b.Color[1], b.Color[2], b.Color[3])
		count := int32(len(b.Vertices) / 3)
		gl.DrawArrays(gl.LINES, first, count)
		first += count
	}

	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	gl.BindVertexArray(0)
}

func (r *Renderer) upload(verts []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	if len(verts) > r.capacity {
		r.capacity = len(verts) * 2
		gl.BufferData(gl.ARRAY_BUFFER, r.capacity*4, nil, gl.DYNAMIC_DRAW)
		r.log.Debug("vertex buffer grown", zap.Int("floats", r.capacity))
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(verts)*4, unsafe.Pointer(&verts[0]))
}

// ReadPixels returns the current framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}
