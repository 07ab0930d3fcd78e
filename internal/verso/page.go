package verso

import (
	"github.com/irfansharif/verso/internal/geom"
)

// Container identifies which container a page view (or overlay) is mounted
// in. A page is positioned either by the paging scroll container or by the
// zoom container, never both.
type Container int

const (
	ContainerNone   Container = iota // not mounted
	ContainerScroll                  // positioned by the virtualizer, in content coordinates
	ContainerZoom                    // owned by the zoom container, in zoom-content coordinates
)

func (c Container) String() string {
	switch c {
	case ContainerNone:
		return "none"
	case ContainerScroll:
		return "scroll"
	case ContainerZoom:
		return "zoom"
	default:
		return "unknown"
	}
}

// NoPage is the page index of a page view that has not been assigned a page.
const NoPage = -1

// PageView is a view showing a single page. Hosts implement it, usually by
// embedding BasePage.
//
// Views are recycled: a view leaving the preload window may be reassigned to
// another page of the same PageClass. Implementations must cancel any
// outstanding work tied to the old page (image loads, etc.) when
// SetPageIndex is called.
type PageView interface {
	PageIndex() int
	SetPageIndex(pageIndex int)
	Frame() geom.Box
	SetFrame(frame geom.Box)
	SetAlpha(alpha float64)
	SetTransform(t geom.Affine)
	// SizeThatFits returns the size the view wants to be, within the given
	// maximum page size.
	SizeThatFits(max geom.Size) geom.Size
	// Mount moves the view to the given container (ContainerNone unmounts
	// it).
	Mount(c Container)
}

// PageClass is a registered kind of page view. Recyclable views are only
// reused for pages requiring the same class.
type PageClass struct {
	name string
	new  func(frame geom.Box) PageView
}

// NewPageClass registers a page view kind. ctor builds a view with the given
// initial frame.
func NewPageClass(name string, ctor func(frame geom.Box) PageView) *PageClass {
	return &PageClass{name: name, new: ctor}
}

func (pc *PageClass) Name() string   { return pc.name }
func (pc *PageClass) String() string { return pc.name }

// BaseClass builds plain BasePage views.
var BaseClass = NewPageClass("base", func(frame geom.Box) PageView { return NewBasePage(frame) })

// BasePage is a PageView that records the state the engine gives it. It
// fills whatever frame it is offered.
type BasePage struct {
	pageIndex int
	frame     geom.Box
	alpha     float64
	transform geom.Affine
	container Container
}

var _ PageView = (*BasePage)(nil)

// NewBasePage returns an unassigned, unmounted page view.
func NewBasePage(frame geom.Box) *BasePage {
	return &BasePage{
		pageIndex: NoPage,
		frame:     frame,
		alpha:     1,
		transform: geom.Identity,
	}
}

func (p *BasePage) PageIndex() int                      { return p.pageIndex }
func (p *BasePage) SetPageIndex(i int)                  { p.pageIndex = i }
func (p *BasePage) Frame() geom.Box                     { return p.frame }
func (p *BasePage) SetFrame(f geom.Box)                 { p.frame = f }
func (p *BasePage) Alpha() float64                      { return p.alpha }
func (p *BasePage) SetAlpha(a float64)                  { p.alpha = a }
func (p *BasePage) Transform() geom.Affine              { return p.transform }
func (p *BasePage) SetTransform(t geom.Affine)          { p.transform = t }
func (p *BasePage) Container() Container                { return p.container }
func (p *BasePage) Mount(c Container)                   { p.container = c }
func (p *BasePage) SizeThatFits(max geom.Size) geom.Size { return max }

// Overlay is an optional view laid over the zoomed spread, e.g. hotspots.
type Overlay interface {
	SetFrame(frame geom.Box)
	Mount(c Container)
}
