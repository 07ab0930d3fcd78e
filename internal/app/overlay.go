package app

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/irfansharif/verso/internal/geom"
	"github.com/irfansharif/verso/internal/indexset"
	"github.com/irfansharif/verso/internal/render"
	"github.com/irfansharif/verso/internal/verso"
)

const (
	spineWidth = 24.0
	spineAlpha = 0.18
)

// SpineOverlay shades the fold between the two pages of a double spread while
// it is zoomed.
type SpineOverlay struct {
	frame     geom.Box
	container verso.Container
	spine     geom.Box // relative to frame
}

var _ verso.Overlay = (*SpineOverlay)(nil)

// NewSpineOverlay returns an overlay for the given zoomed pages, or nil unless
// they form a double spread.
func NewSpineOverlay(pageIndexes indexset.Set, size geom.Size, pageFrames map[int]geom.Box) verso.Overlay {
	first, _ := pageIndexes.First()
	last, _ := pageIndexes.Last()
	if pageIndexes.Len() != 2 {
		return nil
	}
	left, ok := pageFrames[first]
	if !ok {
		return nil
	}
	right, ok := pageFrames[last]
	if !ok {
		return nil
	}

	fold := (left.MaxX() + right.MinX()) / 2
	pages := geom.MakeBox(0, 0, size.W, size.H).Intersect(left.Union(right))
	return &SpineOverlay{
		spine: geom.MakeBox(fold-spineWidth/2, pages.Y, spineWidth, pages.H),
	}
}

// SetFrame positions the overlay over the zoomed pages.
func (o *SpineOverlay) SetFrame(frame geom.Box) { o.frame = frame }

// Mount moves the overlay to the given container.
func (o *SpineOverlay) Mount(c verso.Container) { o.container = c }

// Frame returns the overlay's frame.
func (o *SpineOverlay) Frame() geom.Box { return o.frame }

// Container returns where the overlay is mounted.
func (o *SpineOverlay) Container() verso.Container { return o.container }

// Quads returns what the overlay paints, relative to its frame's container.
func (o *SpineOverlay) Quads() []render.Quad {
	return []render.Quad{{
		Frame: o.spine.Offset(o.frame.X, o.frame.Y),
		Color: colorful.Color{},
		Alpha: spineAlpha,
	}}
}
