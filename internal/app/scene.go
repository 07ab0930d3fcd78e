package app

import (
	"github.com/irfansharif/verso/internal/geom"
	"github.com/irfansharif/verso/internal/render"
	"github.com/irfansharif/verso/internal/verso"
)

// Scene returns the quads showing the current state of v, in window points,
// back to front: pages in the paging container, then the zoom background,
// then the zoomed pages and the spread overlay.
func Scene(v *verso.Verso) []render.Quad {
	sv := v.ScrollView()
	offset := sv.Offset()

	var scrolled, zoomed []Paintable
	for _, pageIndex := range v.LoadedPageIndexes().Slice() {
		view, ok := v.PageViewIfLoaded(pageIndex)
		if !ok {
			continue
		}
		p, ok := view.(Paintable)
		if !ok {
			continue
		}
		switch p.Container() {
		case verso.ContainerScroll:
			scrolled = append(scrolled, p)
		case verso.ContainerZoom:
			zoomed = append(zoomed, p)
		}
	}

	quads := make([]render.Quad, 0, len(scrolled)+len(zoomed)+2)
	for _, p := range scrolled {
		quads = append(quads, pageQuad(p, func(b geom.Box) geom.Box {
			return b.Offset(-offset.X, -offset.Y)
		}))
	}

	z := v.ZoomView()
	zoomFrame := z.Frame.Offset(-offset.X, -offset.Y)
	if bg := z.Background; bg.Alpha > 0 && !v.ZoomingPageIndexes().Empty() {
		quads = append(quads, render.Quad{Frame: zoomFrame, Color: bg.RGB, Alpha: bg.Alpha})
	}

	// Zoomed contents are scaled about the content origin, which sits at
	// ContentFrame within the zoom view.
	content := z.ContentFrame()
	toWindow := func(b geom.Box) geom.Box {
		return geom.MakeBox(
			zoomFrame.X+content.X+b.X*z.Scale,
			zoomFrame.Y+content.Y+b.Y*z.Scale,
			b.W*z.Scale,
			b.H*z.Scale,
		)
	}
	for _, p := range zoomed {
		quads = append(quads, pageQuad(p, toWindow))
	}

	if o, ok := v.Overlay().(*SpineOverlay); ok && o.Container() == verso.ContainerZoom {
		for _, q := range o.Quads() {
			q.Frame = toWindow(q.Frame)
			quads = append(quads, q)
		}
	}
	return quads
}

func pageQuad(p Paintable, toWindow func(geom.Box) geom.Box) render.Quad {
	return render.Quad{
		Frame:     toWindow(p.Frame()),
		Transform: p.Transform(),
		Color:     p.Fill(),
		Alpha:     p.Alpha(),
	}
}
