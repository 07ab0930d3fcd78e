package app

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/irfansharif/verso/internal/geom"
	"github.com/irfansharif/verso/internal/verso"
)

// Page classes of the demo publication. Views are only recycled within a
// class.
var (
	PageClass  = verso.NewPageClass("page", func(frame geom.Box) verso.PageView { return NewPage(frame) })
	OutroClass = verso.NewPageClass("outro", func(frame geom.Box) verso.PageView { return NewOutroPage(frame) })
)

// Paintable is a page view the scene knows how to draw.
type Paintable interface {
	verso.PageView
	Alpha() float64
	Transform() geom.Affine
	Container() verso.Container
	Fill() colorful.Color
}

// Page is a publication page: a sheet of a fixed aspect ratio, painted a flat
// color.
type Page struct {
	*verso.BasePage
	color  colorful.Color
	aspect float64 // width / height; zero fills the whole page frame
}

var _ Paintable = (*Page)(nil)

// NewPage returns an unconfigured page view.
func NewPage(frame geom.Box) *Page {
	return &Page{BasePage: verso.NewBasePage(frame)}
}

// Configure sets what the page shows.
func (p *Page) Configure(c colorful.Color, aspect float64) {
	p.color, p.aspect = c, aspect
}

// Fill returns the color the page is painted.
func (p *Page) Fill() colorful.Color { return p.color }

// Aspect returns the page's width to height ratio.
func (p *Page) Aspect() float64 { return p.aspect }

// SizeThatFits returns the largest size of the page's aspect ratio fitting
// within max.
func (p *Page) SizeThatFits(max geom.Size) geom.Size {
	if p.aspect <= 0 || max.Empty() {
		return max
	}
	if max.W/max.H > p.aspect {
		return geom.MakeSize(max.H*p.aspect, max.H)
	}
	return geom.MakeSize(max.W, max.W/p.aspect)
}

// OutroPage is the trailing page shown after the publication's own pages. It
// fills its whole page frame.
type OutroPage struct {
	*verso.BasePage
	color colorful.Color
}

var _ Paintable = (*OutroPage)(nil)

// NewOutroPage returns an unconfigured outro view.
func NewOutroPage(frame geom.Box) *OutroPage {
	return &OutroPage{BasePage: verso.NewBasePage(frame)}
}

// Fill returns the color the outro is painted.
func (p *OutroPage) Fill() colorful.Color { return p.color }
