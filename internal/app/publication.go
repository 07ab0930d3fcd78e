package app

import (
	"fmt"

	"github.com/irfansharif/verso/internal/geom"
	"github.com/irfansharif/verso/internal/indexset"
	"github.com/irfansharif/verso/internal/palette"
	"github.com/irfansharif/verso/internal/spread"
	"github.com/irfansharif/verso/internal/verso"
)

// DefaultAspect is the width to height ratio of publication pages.
const DefaultAspect = 0.7

// zoomBackgroundAlpha is how opaque the zoom background gets.
const zoomBackgroundAlpha = 0.8

const (
	// outroPreloadDistance is how close (in pages) the last visible page must
	// be to the outro for the outro to be preloaded.
	outroPreloadDistance = 10

	leadingPreloadCount  = 2
	trailingPreloadCount = 6
)

// Publication is the demo data source: a run of colored pages, paired up in
// landscape viewports, optionally followed by an outro page.
type Publication struct {
	PageCount int
	Outro     *spread.Outro
	Aspect    float64
	Palette   palette.Palette
}

var _ verso.DataSource = (*Publication)(nil)

// NewPublication returns a publication of pageCount pages, colored by the
// palette of the given seed.
func NewPublication(pageCount int, seed int64, outro bool) *Publication {
	p := &Publication{
		PageCount: pageCount,
		Aspect:    DefaultAspect,
		Palette:   palette.New(seed),
	}
	if outro {
		p.Outro = &spread.Outro{MaxZoomScale: 1, WidthPercentage: 0.8}
	}
	return p
}

// TotalPageCount returns the number of pages including the outro.
func (p *Publication) TotalPageCount() int {
	if p.Outro != nil {
		return p.PageCount + 1
	}
	return p.PageCount
}

// IsOutro reports whether the page is the outro.
func (p *Publication) IsOutro(pageIndex int) bool {
	return p.Outro != nil && pageIndex == p.PageCount
}

// SpreadConfiguration pairs pages up in landscape viewports.
func (p *Publication) SpreadConfiguration(viewport geom.Size) spread.Configuration {
	return spread.BuildPublication(p.PageCount, viewport.W > viewport.H, p.Outro)
}

// PageClass returns the outro class for the outro page.
func (p *Publication) PageClass(pageIndex int) *verso.PageClass {
	if p.IsOutro(pageIndex) {
		return OutroClass
	}
	return PageClass
}

// ConfigurePage paints the view for its page.
func (p *Publication) ConfigurePage(view verso.PageView, pageIndex int) {
	switch v := view.(type) {
	case *Page:
		v.Configure(palette.ToColorful(p.Palette.Page(pageIndex)), p.Aspect)
	case *OutroPage:
		v.color = palette.ToColorful(p.Palette.Outro)
	default:
		panic(fmt.Sprintf("app: unexpected page view %T for page %d", view, pageIndex))
	}
}

// ZoomBackground is the color behind zoomed pages: the outro color, so the
// publication keeps its tint.
func (p *Publication) ZoomBackground(indexset.Set) verso.Color {
	return verso.Color{RGB: palette.ToColorful(p.Palette.Outro), Alpha: zoomBackgroundAlpha}
}

// PreloadPageIndexes adds the outro to the pages to preload once the visible
// pages come within outroPreloadDistance of it, so it is ready before it is
// scrolled to.
func (p *Publication) PreloadPageIndexes(visible indexset.Set) indexset.Set {
	last, ok := visible.Last()
	if p.Outro == nil || !ok || p.PageCount-last >= outroPreloadDistance {
		return indexset.Set{}
	}
	return indexset.Of(p.PageCount)
}

// PreloadOptions returns the engine options preloading the usual pages around
// the visible ones plus, when near, the outro.
func (p *Publication) PreloadOptions(opts verso.Options) verso.Options {
	opts.PreloadPageIndexes = p.PreloadPageIndexes
	opts.LeadingPreloadCount = func(indexset.Set) int { return leadingPreloadCount }
	opts.TrailingPreloadCount = func(indexset.Set) int { return trailingPreloadCount }
	return opts
}
