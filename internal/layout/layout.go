// Package layout computes the geometry of a spread configuration inside a
// viewport: spread frames, page frames, content size, scroll offsets and
// visibility. Everything here is a pure function of its inputs; the functions
// run on every scroll tick and must stay cheap.
package layout

import (
	"math"

	"github.com/irfansharif/verso/internal/geom"
	"github.com/irfansharif/verso/internal/indexset"
	"github.com/irfansharif/verso/internal/spread"
)

// currentSpreadSlop is how far the visible rect is grown before looking for
// the current spread, to absorb rounding errors in scroll offsets.
const currentSpreadSlop = 2.0

// SpreadFrames returns the frame of every spread, left to right. Each spread
// is as tall as the viewport and floor(width * widthPercentage) wide, and
// starts spacing points after the previous one.
func SpreadFrames(viewport geom.Size, config spread.Configuration) []geom.Box {
	frames := make([]geom.Box, 0, config.SpreadCount())

	var prev geom.Box
	for _, p := range config.Properties() {
		frame := geom.MakeBox(
			prev.MaxX()+config.Spacing(),
			0,
			math.Floor(viewport.W*p.WidthPercentage()),
			viewport.H,
		)
		frames = append(frames, frame)
		prev = frame
	}
	return frames
}

// PageFrames returns the frame of every page. Single spreads give their whole
// frame to the page; double spreads are split into equal verso and recto
// halves.
func PageFrames(spreadFrames []geom.Box, config spread.Configuration) []geom.Box {
	frames := make([]geom.Box, 0, config.PageCount())
	for spreadIndex, spreadFrame := range spreadFrames {
		switch config.TypeForSpread(spreadIndex) {
		case spread.Double:
			verso := spreadFrame
			verso.W /= 2

			recto := verso
			recto.X = verso.MaxX()

			frames = append(frames, verso, recto)
		case spread.Single:
			frames = append(frames, spreadFrame)
		}
	}
	return frames
}

// ContentSize returns the scrollable size covering all the spreads.
func ContentSize(spreadFrames []geom.Box) geom.Size {
	if len(spreadFrames) == 0 {
		return geom.Size{}
	}
	last := spreadFrames[len(spreadFrames)-1]
	return geom.MakeSize(last.MaxX(), last.H)
}

// ScrollOffsetForSpread returns the scroll offset showing the given spread.
// The first spread is anchored to the left edge of the viewport, the last one
// to the right edge, and all others are centered, so neither end of the
// content can be scrolled past.
func ScrollOffsetForSpread(spreadIndex int, spreadFrames []geom.Box, viewport geom.Size) geom.Point {
	if spreadIndex < 0 || spreadIndex >= len(spreadFrames) {
		return geom.Point{}
	}

	frame := spreadFrames[spreadIndex]
	switch spreadIndex {
	case 0:
		return geom.MakePoint(frame.X, 0)
	case len(spreadFrames) - 1:
		return geom.MakePoint(frame.MaxX()-viewport.W, 0)
	default:
		return geom.MakePoint(frame.MidX()-viewport.W/2, 0)
	}
}

// VisibilityPercentage returns the fraction of the spread's width that lies
// within the visible rect, in [0,1].
func VisibilityPercentage(spreadIndex int, visible geom.Box, spreadFrames []geom.Box) float64 {
	if spreadIndex < 0 || spreadIndex >= len(spreadFrames) {
		return 0
	}
	frame := spreadFrames[spreadIndex]
	if frame.W <= 0 {
		return 0
	}
	overlap := frame.Intersect(visible)
	if overlap.IsEmpty() {
		return 0
	}
	return overlap.W / frame.W
}

// VisiblePageIndexes returns the pages whose frames are within the visible
// rect: entirely if fullyVisible, otherwise by any overlap.
//
// TODO(irfansharif): Page frames are sorted by x; binary search the first and
// last overlapping frame instead of scanning them all.
func VisiblePageIndexes(visible geom.Box, pageFrames []geom.Box, fullyVisible bool) indexset.Set {
	var idx []int
	for pageIndex, frame := range pageFrames {
		if (fullyVisible && visible.Contains(frame)) || (!fullyVisible && visible.Intersects(frame)) {
			idx = append(idx, pageIndex)
		}
	}
	return indexset.Of(idx...)
}

// CurrentSpreadIndex returns the spread under the center of the visible rect.
// If the first (or last) spread is entirely visible it wins outright, so the
// ends of the content are reachable even when their spreads are narrow.
// Otherwise the spread frames are binary searched by x. If no frame contains
// the visible center, as when it falls in the spacing between two spreads,
// the search ends on the midpoint of its crossed bounds: the spread before
// the gap.
func CurrentSpreadIndex(visible geom.Box, spreadFrames []geom.Box) (int, bool) {
	if len(spreadFrames) == 0 {
		return 0, false
	}

	visible = visible.Inset(-currentSpreadSlop, -currentSpreadSlop)
	if visible.Contains(spreadFrames[0]) {
		return 0, true
	}
	if last := len(spreadFrames) - 1; visible.Contains(spreadFrames[last]) {
		return last, true
	}

	mid := visible.Mid()
	lo, hi := 0, len(spreadFrames)-1
	for {
		i := (lo + hi) / 2
		frame := spreadFrames[i]
		if frame.ContainsPoint(mid) || lo > hi {
			return i, true
		}
		if mid.X < frame.MidX() {
			hi = i - 1
		} else {
			lo = i + 1
		}
	}
}

// FitPageFrame positions a page view of the given preferred size inside its
// maximum page frame: vertically centered, horizontally per alignment.
func FitPageFrame(maxFrame geom.Box, size geom.Size, alignment spread.Alignment) geom.Box {
	frame := geom.MakeBox(0, math.Round(maxFrame.MidY()-size.H/2), size.W, size.H)
	switch alignment {
	case spread.AlignLeft:
		frame.X = maxFrame.MinX()
	case spread.AlignRight:
		frame.X = maxFrame.MaxX() - size.W
	default:
		frame.X = math.Round(maxFrame.MidX() - size.W/2)
	}
	return frame
}

// PreloadCounts are the number of pages to preload on either side of the
// visible pages. A nil count means no expansion on that side.
type PreloadCounts struct {
	Before *int
	After  *int
}

// PreloadWindow returns the pages to materialize: the visible pages, the
// explicitly requested ones, and up to Before/After pages on either side of
// the visible range, all clamped to [0, pageCount).
func PreloadWindow(visible, explicit indexset.Set, counts PreloadCounts, pageCount int) indexset.Set {
	if pageCount <= 0 {
		return indexset.Set{}
	}

	window := visible.Union(explicit)
	first, ok := visible.First()
	if !ok {
		return window.Clamp(0, pageCount)
	}
	last, _ := visible.Last()

	if counts.Before != nil {
		lo := first - *counts.Before
		if lo < 0 {
			lo = 0
		}
		window = window.Union(indexset.Range(lo, first))
	}
	if counts.After != nil {
		hi := last + *counts.After
		if hi > pageCount-1 {
			hi = pageCount - 1
		}
		window = window.Union(indexset.Range(last+1, hi+1))
	}
	return window.Clamp(0, pageCount)
}
