// Package verso is a paged viewer engine. It lays a publication's spreads
// out side by side in a horizontally paging scroll container, keeps page
// views materialized only around the visible pages (recycling the rest),
// tracks which spread is current while scrolling and which one is active
// once scrolling settles, and hands the active spread's pages over to a zoom
// container so they can be pinch-zoomed.
//
// Verso draws nothing itself. Hosts implement DataSource and PageView, feed
// input events (drags, pinches, taps) and display ticks in, and render the
// resulting state. Everything runs on the caller's goroutine; Verso is not
// safe for concurrent use.
package verso

import (
	"time"

	"github.com/irfansharif/verso/internal/geom"
	"github.com/irfansharif/verso/internal/indexset"
	"github.com/irfansharif/verso/internal/layout"
	"github.com/irfansharif/verso/internal/spread"
)

// Verso is the paged viewer engine.
type Verso struct {
	ds       DataSource
	opts     Options
	delegate Delegate
	attached bool

	scroll ScrollView
	zoom   ZoomView

	viewport     geom.Size
	config       spread.Configuration
	hasConfig    bool
	spreadFrames []geom.Box
	pageFrames   []geom.Box

	pages   map[int]*pooledView // page index -> view
	zooming indexset.Set        // pages held by the zoom container
	overlay Overlay

	currentSpread int
	hasCurrent    bool
	currentPages  indexset.Set
	activeSpread  int
	hasActive     bool
	activePages   indexset.Set

	performingLayout bool

	dragStartSpread  int
	dragStartVisible geom.Box

	settlePending bool
	settleDelay   time.Duration
	settleAt      time.Time // zero until the first tick after scheduling

	pinching      bool
	zoomTarget    Color
	hasZoomTarget bool
}

// New returns a detached Verso backed by the given data source. It does
// nothing until attached.
func New(ds DataSource, opts Options) *Verso {
	return &Verso{
		ds:       ds,
		opts:     opts,
		delegate: DelegateFuncs{},
		scroll:   ScrollView{Bounces: true, ScrollEnabled: true},
		zoom:     newZoomView(),
		pages:    make(map[int]*pooledView),
	}
}

// SetDelegate sets the delegate notified of page and zoom changes. A nil
// delegate drops all notifications.
func (v *Verso) SetDelegate(d Delegate) {
	if d == nil {
		d = DelegateFuncs{}
	}
	v.delegate = d
}

// Attach starts the engine with the given viewport size, loading pages from
// scratch.
func (v *Verso) Attach(viewport geom.Size) {
	v.attached = true
	v.reset()
	v.Layout(viewport)
}

// Detach unmounts every page view and the overlay, and drops all state. The
// data source and delegate are not called again until the next Attach.
func (v *Verso) Detach() {
	if !v.attached {
		return
	}
	v.resetZoomView()
	v.reset()
	v.viewport = geom.Size{}
	v.attached = false
}

// reset discards all page views, the current and active state, and the spread
// configuration.
func (v *Verso) reset() {
	v.removeSpreadOverlay()
	for _, pageIndex := range v.LoadedPageIndexes().Slice() {
		v.pages[pageIndex].view.Mount(ContainerNone)
	}
	v.pages = make(map[int]*pooledView)

	v.currentSpread, v.hasCurrent, v.currentPages = 0, false, indexset.Set{}
	v.activeSpread, v.hasActive, v.activePages = 0, false, indexset.Set{}
	v.config, v.hasConfig = spread.Configuration{}, false

	v.scroll.anim = nil
	v.scroll.Dragging, v.scroll.Tracking, v.scroll.Decelerating = false, false, false
	v.settlePending = false
	v.pinching = false
}

// ReloadPages discards all page views and state, fetches the spread
// configuration again, and lays everything out from scratch.
func (v *Verso) ReloadPages() {
	if !v.attached {
		return
	}
	v.reset()
	v.Layout(v.viewport)
}

// Layout lays the spreads out for the given viewport size. Nothing happens
// unless the size or the spread configuration changed. Zero-area viewports
// are ignored; they are transient states before the host has a size.
func (v *Verso) Layout(viewport geom.Size) {
	if !v.attached {
		return
	}
	assert(v.ds != nil, "verso: a DataSource is required")
	if viewport.Empty() {
		layoutLogger.Printf("ignoring layout with empty viewport %v", viewport)
		return
	}

	sizeChanged := viewport != v.viewport
	config, hadConfig := v.config, v.hasConfig
	if !hadConfig || sizeChanged {
		config = v.ds.SpreadConfiguration(viewport)
	}
	relayout := sizeChanged || !hadConfig || !config.Equal(v.config)

	if relayout {
		v.resetZoomView()
	}
	v.viewport = viewport
	v.scroll.Bounds = v.scroll.Bounds.WithSize(viewport)
	v.config, v.hasConfig = config, true

	if relayout {
		v.updateSpreadPositions()
	}
}

// updateSpreadPositions recomputes all frames, scrolls back to the first
// current page and prepares the page views around it. The active pages are
// then moved into the zoom container.
func (v *Verso) updateSpreadPositions() {
	targetPage, ok := v.currentPages.First()
	if !ok {
		targetPage = 0
	}

	v.performingLayout = true
	v.removeSpreadOverlay()
	v.scroll.ScrollEnabled = false
	v.scroll.anim = nil

	v.spreadFrames = layout.SpreadFrames(v.viewport, v.config)
	v.pageFrames = layout.PageFrames(v.spreadFrames, v.config)
	v.scroll.ContentSize = layout.ContentSize(v.spreadFrames)

	targetSpread, ok := v.config.SpreadIndexForPage(targetPage)
	if !ok {
		targetSpread = 0
	}
	v.scroll.setOffset(layout.ScrollOffsetForSpread(targetSpread, v.spreadFrames, v.viewport))
	layoutLogger.Printf("laid out %d spreads (%d pages) in %v, content %v, showing spread %d",
		v.config.SpreadCount(), v.config.PageCount(), v.viewport, v.scroll.ContentSize, targetSpread)

	v.preparePageViews()
	v.updateActiveSpreadIndex()

	v.scroll.ScrollEnabled = true
	v.enableZooming(true)
	v.performingLayout = false
}

// JumpToPage scrolls to the spread showing the given page. It does nothing if
// there is no such page. An animated jump is driven by Tick and settles when
// it ends; otherwise the jump settles immediately.
func (v *Verso) JumpToPage(pageIndex int, animated bool) {
	if !v.attached || !v.hasConfig {
		return
	}
	spreadIndex, ok := v.config.SpreadIndexForPage(pageIndex)
	if !ok {
		return
	}

	target := layout.ScrollOffsetForSpread(spreadIndex, v.spreadFrames, v.viewport)
	scrollLogger.Printf("jumping to page %d (spread %d) at %v (animated=%t)", pageIndex, spreadIndex, target, animated)
	if animated {
		v.didStartScrolling()
		v.scroll.animate(animateJump, target, jumpDuration)
		return
	}

	v.scroll.anim = nil
	v.scroll.setOffset(target)
	v.updateCurrentSpreadIndex()
	v.preparePageViews()
	v.didFinishScrolling()
}

// SpreadConfiguration returns the configuration in use, if laid out.
func (v *Verso) SpreadConfiguration() (spread.Configuration, bool) { return v.config, v.hasConfig }

// ScrollView returns the state of the paging scroll container.
func (v *Verso) ScrollView() ScrollView { return v.scroll }

// SpreadFrames returns the frame of every spread, in content coordinates.
func (v *Verso) SpreadFrames() []geom.Box { return append([]geom.Box(nil), v.spreadFrames...) }

// PageFrames returns the maximum frame of every page, in content coordinates.
func (v *Verso) PageFrames() []geom.Box { return append([]geom.Box(nil), v.pageFrames...) }

// Viewport returns the size last laid out for.
func (v *Verso) Viewport() geom.Size { return v.viewport }
