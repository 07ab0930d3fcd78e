package verso

import (
	"github.com/irfansharif/verso/internal/geom"
	"github.com/irfansharif/verso/internal/indexset"
	"github.com/irfansharif/verso/internal/spread"
)

// DataSource supplies the spread configuration and page views. It is
// required; a Verso without one panics on first layout.
type DataSource interface {
	// SpreadConfiguration is asked for the configuration to use for the given
	// viewport size. It is called whenever the viewport size changes.
	SpreadConfiguration(viewport geom.Size) spread.Configuration
	// PageClass returns the kind of view required for the given page.
	PageClass(pageIndex int) *PageClass
	// ConfigurePage fills the view with the content of the given page. It is
	// called during active scrolling, and must be fast.
	ConfigurePage(view PageView, pageIndex int)
}

// Options are the optional data source hooks. A nil field takes the
// documented default.
type Options struct {
	// PreloadPageIndexes returns additional pages to preload, given the
	// visible pages. If set, the leading and trailing defaults are skipped
	// and only explicitly supplied counts expand the window.
	PreloadPageIndexes func(visible indexset.Set) indexset.Set
	// LeadingPreloadCount is the number of pages to preload before the
	// visible pages. Defaults to 2.
	LeadingPreloadCount func(visible indexset.Set) int
	// TrailingPreloadCount is the number of pages to preload after the
	// visible pages. Defaults to 6.
	TrailingPreloadCount func(visible indexset.Set) int
	// ZoomBackgroundColor is the color the zoom background fades to when the
	// given pages are zoomed in. Defaults to black at 0.7 alpha.
	ZoomBackgroundColor func(zooming indexset.Set) Color
	// SpreadOverlay returns an overlay to lay over the given zoomed pages, or
	// nil. size is the combined size of the pages and pageFrames their frames
	// relative to it.
	SpreadOverlay func(pageIndexes indexset.Set, size geom.Size, pageFrames map[int]geom.Box) Overlay
}

const (
	defaultLeadingPreloadCount  = 2
	defaultTrailingPreloadCount = 6
)

// IndexChange describes a change of the current or active pages.
type IndexChange struct {
	Pages   indexset.Set // the new set
	Added   indexset.Set
	Removed indexset.Set
}

// ZoomEvent describes the state of an ongoing zoom.
type ZoomEvent struct {
	Pages indexset.Set // pages in the zoom container
	Scale float64
}

// Delegate observes page and zoom changes.
type Delegate interface {
	// CurrentPagesChanged fires whenever the best-guess current pages
	// change, including mid-scroll.
	CurrentPagesChanged(c IndexChange)
	// ActivePagesChanged fires when the settled pages change.
	ActivePagesChanged(c IndexChange)
	ZoomStarted(e ZoomEvent)
	Zoomed(e ZoomEvent)
	ZoomEnded(e ZoomEvent)
}

// DelegateFuncs is a Delegate built from optional funcs; nil fields are
// ignored.
type DelegateFuncs struct {
	OnCurrentPagesChanged func(IndexChange)
	OnActivePagesChanged  func(IndexChange)
	OnZoomStarted         func(ZoomEvent)
	OnZoomed              func(ZoomEvent)
	OnZoomEnded           func(ZoomEvent)
}

var _ Delegate = DelegateFuncs{}

func (d DelegateFuncs) CurrentPagesChanged(c IndexChange) {
	if d.OnCurrentPagesChanged != nil {
		d.OnCurrentPagesChanged(c)
	}
}

func (d DelegateFuncs) ActivePagesChanged(c IndexChange) {
	if d.OnActivePagesChanged != nil {
		d.OnActivePagesChanged(c)
	}
}

func (d DelegateFuncs) ZoomStarted(e ZoomEvent) {
	if d.OnZoomStarted != nil {
		d.OnZoomStarted(e)
	}
}

func (d DelegateFuncs) Zoomed(e ZoomEvent) {
	if d.OnZoomed != nil {
		d.OnZoomed(e)
	}
}

func (d DelegateFuncs) ZoomEnded(e ZoomEvent) {
	if d.OnZoomEnded != nil {
		d.OnZoomEnded(e)
	}
}
