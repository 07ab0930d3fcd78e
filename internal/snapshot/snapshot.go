// Package snapshot paints a spread configuration, laid out for a viewport,
// into an image. Snapshots show the whole scrollable content: spreads on the
// backdrop, each page filling its maximum frame.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/irfansharif/verso/internal/geom"
	"github.com/irfansharif/verso/internal/layout"
	"github.com/irfansharif/verso/internal/palette"
	"github.com/irfansharif/verso/internal/spread"
)

// pageMargin is the gap, in points, kept between a page and the edges of its
// page frame so that spread boundaries stay visible.
const pageMargin = 2.0

// highlightOpacity is how strongly the visible rect is darkened.
const highlightOpacity = 0.2

// Options configure a snapshot.
type Options struct {
	Palette palette.Palette
	// Scale is the number of pixels per point. Zero means 1.
	Scale float64
	// MaxWidth, if positive, downsamples wider snapshots to this width.
	MaxWidth int
	// IsOutro reports whether the page is the trailing outro page.
	IsOutro func(pageIndex int) bool
	// Highlight, if set, darkens the visible rect when showing this spread.
	Highlight *int
}

// Render paints the layout of config inside a viewport of the given size.
func Render(viewport geom.Size, config spread.Configuration, opts Options) (*image.NRGBA, error) {
	if viewport.Empty() {
		return nil, fmt.Errorf("empty viewport %v", viewport)
	}
	if config.SpreadCount() == 0 {
		return nil, fmt.Errorf("no spreads to render")
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}

	spreadFrames := layout.SpreadFrames(viewport, config)
	pageFrames := layout.PageFrames(spreadFrames, config)
	content := layout.ContentSize(spreadFrames)

	bounds := pixelRect(geom.MakeBox(0, 0, content.W, content.H), scale)
	img := imaging.New(bounds.Dx(), bounds.Dy(), opts.Palette.Backdrop)

	for _, frame := range spreadFrames {
		img = fill(img, pixelRect(frame, scale), opts.Palette.Spread)
	}
	for pageIndex, frame := range pageFrames {
		c := opts.Palette.Page(pageIndex)
		if opts.IsOutro != nil && opts.IsOutro(pageIndex) {
			c = opts.Palette.Outro
		}
		img = fill(img, pixelRect(frame.Inset(pageMargin, pageMargin), scale), c)
	}

	if opts.Highlight != nil {
		offset := layout.ScrollOffsetForSpread(*opts.Highlight, spreadFrames, viewport)
		visible := pixelRect(geom.MakeBox(offset.X, offset.Y, viewport.W, viewport.H), scale).Intersect(img.Bounds())
		if !visible.Empty() {
			shade := imaging.New(visible.Dx(), visible.Dy(), color.Black)
			img = imaging.Overlay(img, shade, visible.Min, highlightOpacity)
		}
	}

	if opts.MaxWidth > 0 && img.Bounds().Dx() > opts.MaxWidth {
		img = imaging.Resize(img, opts.MaxWidth, 0, imaging.Lanczos)
	}
	return img, nil
}

// Save writes the image to path, in the format implied by its extension.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}

// fill paints r in the given color.
func fill(img *image.NRGBA, r image.Rectangle, c color.Color) *image.NRGBA {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return img
	}
	return imaging.Paste(img, imaging.New(r.Dx(), r.Dy(), c), r.Min)
}

// pixelRect converts a box in points to the pixels it covers.
func pixelRect(b geom.Box, scale float64) image.Rectangle {
	return image.Rect(
		int(math.Round(b.MinX()*scale)),
		int(math.Round(b.MinY()*scale)),
		int(math.Round(b.MaxX()*scale)),
		int(math.Round(b.MaxY()*scale)),
	)
}
