package verso

import (
	"fmt"
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/irfansharif/verso/internal/geom"
	"github.com/irfansharif/verso/internal/indexset"
)

const (
	// defaultZoomBackgroundAlpha is the alpha the zoom background fades to
	// when no background color is supplied.
	defaultZoomBackgroundAlpha = 0.7
	// fullBackgroundZoomScale is the zoom scale at which the background is
	// fully faded in.
	fullBackgroundZoomScale = 1.5
	// unzoomedTolerance is how close to the minimum zoom scale counts as
	// zoomed out, re-enabling paging.
	unzoomedTolerance = 0.01
	// doubleTapZoomDuration is how long the zoom of a double tap takes.
	doubleTapZoomDuration = 300 * time.Millisecond
)

// zoomAnimation moves the zoom scale and offset to a target, advanced by
// Tick. Like offset animations, it starts on the first tick.
type zoomAnimation struct {
	fromScale, toScale float64
	from, to           geom.Point
	start              time.Time
	duration           time.Duration
}

// at returns the scale and offset at the given time, and whether the
// animation is done.
func (a *zoomAnimation) at(now time.Time) (float64, geom.Point, bool) {
	t, done := progress(&a.start, now, a.duration)
	scale := a.fromScale + (a.toScale-a.fromScale)*t
	return scale, a.from.Add(a.to.Sub(a.from).Scale(t)), done
}

// Color is an RGB color with alpha.
type Color struct {
	RGB   colorful.Color
	Alpha float64
}

// Clear is the fully transparent color.
var Clear = Color{}

// Black returns black with the given alpha.
func Black(alpha float64) Color {
	return Color{RGB: colorful.Color{R: 0, G: 0, B: 0}, Alpha: alpha}
}

// WithAlpha returns the color with its alpha replaced.
func (c Color) WithAlpha(alpha float64) Color {
	c.Alpha = alpha
	return c
}

func (c Color) String() string {
	return fmt.Sprintf("%s@%.2f", c.RGB.Clamped().Hex(), c.Alpha)
}

// ZoomView is the state of the zoom container. It sits over the visible rect
// of the paging scroll container and holds the active pages while they are
// zoomed. Its contents are laid out in zoom-content coordinates: the union of
// the active page frames, translated to the origin.
type ZoomView struct {
	Frame geom.Box // in paging content coordinates

	ContentSize        geom.Size // unscaled size of the contents
	TargetContentFrame geom.Box  // where the unscaled contents sit within Frame

	Scale    float64
	MinScale float64
	MaxScale float64

	Offset geom.Point
	Inset  geom.Insets

	Background Color

	anim *zoomAnimation
}

func newZoomView() ZoomView {
	return ZoomView{Scale: 1, MinScale: 1, MaxScale: 1}
}

// Bounds returns the visible rect of the zoom view in its own scaled content
// coordinates.
func (z ZoomView) Bounds() geom.Box {
	return geom.Box{X: z.Offset.X, Y: z.Offset.Y, W: z.Frame.W, H: z.Frame.H}
}

// ScaledContentSize returns the size of the contents at the current scale.
func (z ZoomView) ScaledContentSize() geom.Size { return z.ContentSize.Scale(z.Scale) }

// ContentFrame returns where the scaled contents appear, relative to Frame.
func (z ZoomView) ContentFrame() geom.Box {
	size := z.ScaledContentSize()
	return geom.Box{X: -z.Offset.X, Y: -z.Offset.Y, W: size.W, H: size.H}
}

// ViewToContent converts a point relative to Frame to unscaled content
// coordinates.
func (z ZoomView) ViewToContent(p geom.Point) geom.Point {
	return p.Add(z.Offset).Scale(1 / z.Scale)
}

// Zoomable reports whether the zoom scale can change at all.
func (z ZoomView) Zoomable() bool { return z.MinScale < z.MaxScale }

// Animating reports whether a double tap zoom is in flight.
func (z ZoomView) Animating() bool { return z.anim != nil }

// updateInsets adjusts the content insets so that, at any scale, the
// contents keep the same share of the remaining space on either side as the
// unscaled contents have within TargetContentFrame.
func (z *ZoomView) updateInsets() {
	bounds := z.Frame.Size()
	target := z.TargetContentFrame

	pct := geom.Point{X: 1, Y: 1}
	if bounds.W != target.W {
		pct.X = target.X / (bounds.W - target.W)
	}
	if bounds.H != target.H {
		pct.Y = target.Y / (bounds.H - target.H)
	}

	scaled := z.ScaledContentSize()
	origin := geom.Point{
		X: (bounds.W - scaled.W) * pct.X,
		Y: (bounds.H - scaled.H) * pct.Y,
	}

	z.Inset = geom.Insets{}
	if bounds.H > scaled.H {
		z.Inset.Top = origin.Y
	}
	if bounds.W > scaled.W {
		z.Inset.Left = origin.X
	}
	z.clampOffset()
}

// clampOffset keeps the offset within the scrollable range given by the
// content size and insets. Along an axis where the contents are smaller than
// the bounds that range is a single point.
func (z *ZoomView) clampOffset() {
	scaled := z.ScaledContentSize()
	clamp := func(v, lo, hi float64) float64 {
		hi = math.Max(hi, lo)
		return math.Min(math.Max(v, lo), hi)
	}
	z.Offset.X = clamp(z.Offset.X, -z.Inset.Left, scaled.W+z.Inset.Right-z.Frame.W)
	z.Offset.Y = clamp(z.Offset.Y, -z.Inset.Top, scaled.H+z.Inset.Bottom-z.Frame.H)
}

// setScale sets the zoom scale, clamped to [MinScale, MaxScale], keeping the
// content under anchor (relative to Frame) in place.
func (z *ZoomView) setScale(scale float64, anchor geom.Point) {
	scale = math.Min(math.Max(scale, z.MinScale), z.MaxScale)
	content := z.ViewToContent(anchor)
	z.Scale = scale
	z.Offset = content.Scale(scale).Sub(anchor)
	z.updateInsets()
}

// zoomToRect zooms so the given rect, in unscaled content coordinates, fills
// as much of the view as the scale limits allow, centered.
func (z *ZoomView) zoomToRect(rect geom.Box) {
	if rect.IsEmpty() {
		return
	}
	scale := math.Min(z.Frame.W/rect.W, z.Frame.H/rect.H)
	z.Scale = math.Min(math.Max(scale, z.MinScale), z.MaxScale)
	z.Offset = rect.Mid().Scale(z.Scale).Sub(geom.Point{X: z.Frame.W / 2, Y: z.Frame.H / 2})
	z.updateInsets()
}

// ZoomingPageIndexes returns the pages held by the zoom container.
func (v *Verso) ZoomingPageIndexes() indexset.Set { return v.zooming }

// ZoomView returns the state of the zoom container.
func (v *Verso) ZoomView() ZoomView { return v.zoom }

// Overlay returns the spread overlay mounted over the zoomed pages, if any.
func (v *Verso) Overlay() Overlay { return v.overlay }

// BeginZooming is called when a pinch starts. It is ignored if zooming is
// disabled. A running double tap zoom stops where it is and the pinch
// continues its zoom lifecycle.
func (v *Verso) BeginZooming() {
	if !v.attached || !v.zoom.Zoomable() {
		return
	}
	if v.zoom.anim != nil {
		// A pinch takes over the double tap zoom where it is.
		v.zoom.anim = nil
		return
	}
	v.pinching = true
	v.didStartZooming()
}

// ZoomTo changes the zoom scale, keeping the content under anchor (relative
// to the zoom view) in place. Non-positive scales are ignored, as are all
// requests while zooming is disabled.
func (v *Verso) ZoomTo(scale float64, anchor geom.Point) {
	if !v.attached || scale <= 0 || !v.zoom.Zoomable() {
		return
	}
	v.zoom.setScale(scale, anchor)
	v.didZoom()
}

// PanZoomBy scrolls the zoom view's contents by delta.
func (v *Verso) PanZoomBy(delta geom.Point) {
	if !v.attached {
		return
	}
	v.zoom.Offset = v.zoom.Offset.Add(delta)
	v.zoom.clampOffset()
}

// EndZooming is called when a pinch ends. Paging is disabled unless the
// pinch ended zoomed out.
func (v *Verso) EndZooming() {
	if !v.attached || !v.pinching {
		return
	}
	v.pinching = false
	v.didEndZooming()
}

// DoubleTap toggles between the minimum and maximum zoom scale. Zooming in
// centers on location, relative to the zoom view. The change is animated by
// Tick, inside the usual zoom lifecycle: the start is reported now, every
// step as a zoom, and the end once the animation is done. It reports whether
// anything happened; taps during a running double tap zoom are ignored.
func (v *Verso) DoubleTap(location geom.Point) bool {
	if !v.attached || !v.zoom.Zoomable() || v.zoom.anim != nil {
		return false
	}

	target := v.zoom
	if target.Scale > target.MinScale {
		target.setScale(target.MinScale, location)
	} else {
		size := target.ScaledContentSize().Scale(1 / target.MaxScale)
		center := target.ViewToContent(location)
		target.zoomToRect(geom.MakeBox(center.X-size.W/2, center.Y-size.H/2, size.W, size.H))
	}

	v.BeginZooming()
	v.zoom.anim = &zoomAnimation{
		fromScale: v.zoom.Scale,
		toScale:   target.Scale,
		from:      v.zoom.Offset,
		to:        target.Offset,
		duration:  doubleTapZoomDuration,
	}
	return true
}

// tickZoom advances a double tap zoom.
func (v *Verso) tickZoom(now time.Time) {
	a := v.zoom.anim
	if a == nil {
		return
	}
	scale, offset, done := a.at(now)
	v.zoom.Scale, v.zoom.Offset = scale, offset
	v.zoom.updateInsets()
	v.didZoom()
	if done {
		v.zoom.anim = nil
		v.EndZooming()
	}
}

func (v *Verso) zoomEvent() ZoomEvent {
	return ZoomEvent{Pages: v.zooming, Scale: v.zoom.Scale}
}

func (v *Verso) didStartZooming() {
	if v.zooming.Empty() {
		return
	}
	zoomLogger.Printf("zoom started on pages %s at %.2fx", v.zooming, v.zoom.Scale)
	v.delegate.ZoomStarted(v.zoomEvent())

	v.hasZoomTarget = false
	if v.opts.ZoomBackgroundColor != nil {
		v.zoomTarget = v.opts.ZoomBackgroundColor(v.zooming)
		v.hasZoomTarget = true
	}
}

// backgroundAlpha is the zoom background alpha at the given scale: zero at
// scale 1, rising linearly to maxAlpha at fullBackgroundZoomScale.
func backgroundAlpha(scale, maxAlpha float64) float64 {
	alpha := maxAlpha / (fullBackgroundZoomScale - 1) * (scale - 1)
	return math.Max(math.Min(alpha, maxAlpha), 0)
}

func (v *Verso) didZoom() {
	target := Black(defaultZoomBackgroundAlpha)
	if v.hasZoomTarget {
		target = v.zoomTarget
	}
	v.zoom.Background = target.WithAlpha(backgroundAlpha(v.zoom.Scale, target.Alpha))

	if !v.zooming.Empty() {
		v.delegate.Zoomed(v.zoomEvent())
	}
}

func (v *Verso) didEndZooming() {
	v.scroll.ScrollEnabled = v.zoom.Scale <= v.zoom.MinScale+unzoomedTolerance

	if !v.zooming.Empty() {
		zoomLogger.Printf("zoom ended on pages %s at %.2fx (paging enabled=%t)", v.zooming, v.zoom.Scale, v.scroll.ScrollEnabled)
		v.delegate.ZoomEnded(v.zoomEvent())
	}
}

// updateMaxZoomScale lets the zoom view zoom up to the active spread's
// maximum.
func (v *Verso) updateMaxZoomScale() {
	v.zoom.MaxScale = 1
	if !v.hasActive || !v.hasConfig {
		return
	}
	if p, ok := v.config.Property(v.activeSpread); ok {
		v.zoom.MaxScale = p.MaxZoomScale()
	}
}

// resetZoomView moves the zooming page views back to the paging container,
// abandoning any double tap zoom.
func (v *Verso) resetZoomView() {
	if v.zoom.anim != nil {
		v.zoom.anim = nil
		v.pinching = false
	}
	for _, pageIndex := range v.zooming.Slice() {
		pv, ok := v.pages[pageIndex]
		if !ok {
			continue
		}
		pv.view.Mount(ContainerScroll)
		pv.view.SetTransform(geom.Identity)
		pv.view.SetFrame(v.resizedFrame(pv.view))
		pv.view.SetAlpha(1)
	}

	v.zoom.MaxScale = 1
	v.zoom.Background = Clear
	v.zooming = indexset.Set{}
}

// enableZooming moves the active page views into the zoom container, unless
// they are already there (and force is unset).
func (v *Verso) enableZooming(force bool) {
	if v.zooming.Equal(v.activePages) && !force {
		return
	}

	v.resetZoomView()
	v.updateMaxZoomScale()
	v.zooming = v.activePages

	z := &v.zoom
	z.Scale = 1
	z.Inset = geom.Insets{}
	z.Offset = geom.Point{}
	z.Frame = v.scroll.Bounds
	v.scroll.ScrollEnabled = true

	var combined geom.Box
	var views []PageView
	for _, pageIndex := range v.zooming.Slice() {
		pv, ok := v.pages[pageIndex]
		if !ok {
			continue
		}
		frame := pv.view.Frame().Offset(-z.Frame.X, -z.Frame.Y)
		if len(views) == 0 {
			combined = frame
		} else {
			combined = combined.Union(frame)
		}
		views = append(views, pv.view)
	}

	z.ContentSize = combined.Size()
	for _, view := range views {
		frame := view.Frame().Offset(-z.Frame.X-combined.X, -z.Frame.Y-combined.Y)
		view.SetFrame(frame)
		view.Mount(ContainerZoom)
	}
	z.TargetContentFrame = combined
	z.updateInsets()

	zoomLogger.Printf("zooming pages %s in %v (max %.2fx)", v.zooming, combined, z.MaxScale)
	v.updateSpreadOverlay()
}

// ReconfigureSpreadOverlay asks for the spread overlay again.
func (v *Verso) ReconfigureSpreadOverlay() {
	if !v.attached {
		return
	}
	v.updateSpreadOverlay()
}

func (v *Verso) removeSpreadOverlay() {
	if v.overlay != nil {
		v.overlay.Mount(ContainerNone)
		v.overlay = nil
	}
}

func (v *Verso) updateSpreadOverlay() {
	v.removeSpreadOverlay()
	if v.activePages.Empty() || v.opts.SpreadOverlay == nil {
		return
	}

	frames := make(map[int]geom.Box, v.activePages.Len())
	for _, pageIndex := range v.activePages.Slice() {
		if pv, ok := v.pages[pageIndex]; ok && v.zooming.Contains(pageIndex) {
			frames[pageIndex] = pv.view.Frame()
		}
	}
	overlay := v.opts.SpreadOverlay(v.activePages, v.zoom.ContentSize, frames)
	if overlay == nil {
		return
	}
	overlay.SetFrame(geom.Box{W: v.zoom.ContentSize.W, H: v.zoom.ContentSize.H})
	overlay.Mount(ContainerZoom)
	v.overlay = overlay
}
