// Package render draws a frame of quads with OpenGL. Quads are laid out in
// window points with the origin at the top left; the renderer maps them onto
// the framebuffer, which may be denser than the window on HiDPI displays.
//
// All calls must happen on the goroutine (and OS thread) that owns the GL
// context.
package render

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/irfansharif/verso/internal/geom"
)

var renderLogger *log.Logger = log.New(io.Discard, "", 0)

func init() {
	if os.Getenv("VERSO_DEBUG_RENDER") == "1" {
		renderLogger = log.New(os.Stdout, "[render] ", log.Ltime|log.Lmsgprefix)
	}
}

// Renderer draws quads into the current GL context.
type Renderer struct {
	w, h       int     // framebuffer size, in pixels
	pixelRatio float64 // framebuffer pixels per window point

	program *program
	buffer  *vertexBuffer
	stats   Stats
}

// Stats tracks rendering performance metrics.
type Stats struct {
	LastPrepareTimeMs float64 // time spent in the last Prepare, in milliseconds
	LastDrawTimeUs    float64 // time spent in the last Draw, in microseconds
	Quads             int     // visible quads in the last Prepare
	Triangles         int
	GPUBytes          int
	BufferGrows       int
}

// NewRenderer compiles the shaders and allocates the vertex buffer. The GL
// context must be current.
func NewRenderer() (*Renderer, error) {
	p, err := newProgram()
	if err != nil {
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	return &Renderer{
		pixelRatio: 1,
		program:    p,
		buffer:     newVertexBuffer(),
	}, nil
}

// SetView sets the framebuffer size and its density relative to window points.
func (r *Renderer) SetView(w, h int, pixelRatio float64) {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	r.w, r.h, r.pixelRatio = w, h, pixelRatio
}

// Prepare triangulates the quads and uploads them, replacing whatever was
// drawn before.
func (r *Renderer) Prepare(quads []Quad) {
	start := time.Now()

	vertices := Vertices(quads)
	r.buffer.Upload(vertices)

	visible := 0
	for _, q := range quads {
		if q.visible() {
			visible++
		}
	}
	r.stats.Quads = visible
	r.stats.Triangles = len(vertices) / floatsPerVertex / 3
	r.stats.GPUBytes = r.buffer.Bytes()
	r.stats.BufferGrows = r.buffer.grows
	r.stats.LastPrepareTimeMs = float64(time.Since(start).Microseconds()) / 1000.0
}

// Draw draws the prepared quads.
func (r *Renderer) Draw() {
	start := time.Now()
	if r.w <= 0 || r.h <= 0 {
		return
	}

	r.program.use()
	r.program.setTransform(transformMatrix(r.w, r.h, r.pixelRatio))
	r.buffer.Draw()

	r.stats.LastDrawTimeUs = float64(time.Since(start).Microseconds())
}

// Stats returns the current performance statistics.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// Cleanup releases the GL resources.
func (r *Renderer) Cleanup() {
	r.buffer.cleanup()
	gl.DeleteProgram(r.program.id)
}

// transformMatrix maps window points to OpenGL NDC: points are scaled up to
// framebuffer pixels, and then y is flipped so the origin sits at the top
// left.
func transformMatrix(w, h int, pixelRatio float64) [16]float32 {
	toPixels := geom.Scaling(pixelRatio)
	toNDC := geom.MakeAffine(
		2.0/float64(w), 0, -1,
		0, -2.0/float64(h), 1,
	)
	return affineToMatrix4(toNDC.Mul(toPixels))
}

// affineToMatrix4 converts an affine transform to the column-major 4x4 matrix
// OpenGL expects.
func affineToMatrix4(t geom.Affine) [16]float32 {
	return [16]float32{
		float32(t.A), float32(t.D), 0, 0,
		float32(t.B), float32(t.E), 0, 0,
		0, 0, 1, 0,
		float32(t.C), float32(t.F), 0, 1,
	}
}
