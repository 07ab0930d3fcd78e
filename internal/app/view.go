package app

import (
	"time"

	"github.com/irfansharif/verso/internal/geom"
)

const (
	// velocitySmoothing is the weight of the newest sample in the drag
	// velocity estimate.
	velocitySmoothing = 0.8
	// velocityTimeout is how long the pointer may rest before a release
	// counts as a drag without velocity.
	velocityTimeout = 100 * time.Millisecond
)

// View tracks the window size in points and the framebuffer density.
type View struct {
	Width, Height float64 // in points
	PixelRatio    float64 // framebuffer pixels per point
}

// NewView creates a view of the given window and framebuffer sizes.
func NewView(windowW, windowH, framebufferW int) *View {
	vs := &View{}
	vs.SetSize(windowW, windowH, framebufferW)
	return vs
}

// SetSize updates the viewport dimensions.
func (vs *View) SetSize(windowW, windowH, framebufferW int) {
	vs.Width, vs.Height = float64(windowW), float64(windowH)
	vs.PixelRatio = 1
	if windowW > 0 {
		vs.PixelRatio = float64(framebufferW) / float64(windowW)
	}
}

// Size returns the viewport size in points.
func (vs *View) Size() geom.Size { return geom.MakeSize(vs.Width, vs.Height) }

// Drag turns pointer motion into scroll offsets and a release velocity.
type Drag struct {
	active      bool
	startCursor geom.Point
	startOffset geom.Point

	last     geom.Point
	lastAt   time.Time
	velocity geom.Point // of the scroll offset, in points per millisecond
}

// Begin starts a drag at the given cursor position, with the container
// scrolled to offset.
func (d *Drag) Begin(cursor, offset geom.Point, now time.Time) {
	*d = Drag{
		active:      true,
		startCursor: cursor,
		startOffset: offset,
		last:        cursor,
		lastAt:      now,
	}
}

// Active reports whether a drag is in progress.
func (d *Drag) Active() bool { return d.active }

// Move returns the scroll offset for the new cursor position. Content follows
// the pointer, so the offset moves the opposite way.
func (d *Drag) Move(cursor geom.Point, now time.Time) geom.Point {
	if dt := float64(now.Sub(d.lastAt)) / float64(time.Millisecond); dt > 0 {
		sample := d.last.Sub(cursor).Scale(1 / dt)
		d.velocity = sample.Scale(velocitySmoothing).Add(d.velocity.Scale(1 - velocitySmoothing))
		d.last, d.lastAt = cursor, now
	}
	return d.startOffset.Sub(cursor.Sub(d.startCursor))
}

// End finishes the drag, returning the release velocity.
func (d *Drag) End(now time.Time) geom.Point {
	d.active = false
	if now.Sub(d.lastAt) > velocityTimeout {
		return geom.Point{}
	}
	return d.velocity
}
