package verso

import (
	"github.com/irfansharif/verso/internal/geom"
	"github.com/irfansharif/verso/internal/indexset"
	"github.com/irfansharif/verso/internal/layout"
)

// pooledView is a page view and the class it was built from.
type pooledView struct {
	view  PageView
	class *PageClass
}

// PageViewIfLoaded returns the view for the given page, if one is
// materialized.
func (v *Verso) PageViewIfLoaded(pageIndex int) (PageView, bool) {
	pv, ok := v.pages[pageIndex]
	if !ok {
		return nil, false
	}
	return pv.view, true
}

// LoadedPageIndexes returns the pages that have a view.
func (v *Verso) LoadedPageIndexes() indexset.Set {
	idx := make([]int, 0, len(v.pages))
	for pageIndex := range v.pages {
		idx = append(idx, pageIndex)
	}
	return indexset.Of(idx...)
}

// ReconfigureVisiblePages asks the data source to configure every loaded page
// view again, without discarding any of them.
func (v *Verso) ReconfigureVisiblePages() {
	if !v.attached {
		return
	}
	for _, pageIndex := range v.LoadedPageIndexes().Slice() {
		v.configurePageView(v.pages[pageIndex].view)
	}
}

// preloadWindow returns the pages to materialize around the visible ones.
func (v *Verso) preloadWindow(visible indexset.Set) indexset.Set {
	if !v.hasConfig || v.config.PageCount() <= 0 {
		return indexset.Set{}
	}

	var explicit indexset.Set
	hasExplicit := v.opts.PreloadPageIndexes != nil
	if hasExplicit {
		explicit = v.opts.PreloadPageIndexes(visible)
	}

	var counts layout.PreloadCounts
	if v.opts.LeadingPreloadCount != nil {
		n := v.opts.LeadingPreloadCount(visible)
		counts.Before = &n
	} else if !hasExplicit {
		n := defaultLeadingPreloadCount
		counts.Before = &n
	}
	if v.opts.TrailingPreloadCount != nil {
		n := v.opts.TrailingPreloadCount(visible)
		counts.After = &n
	} else if !hasExplicit {
		n := defaultTrailingPreloadCount
		counts.After = &n
	}
	return layout.PreloadWindow(visible, explicit, counts, v.config.PageCount())
}

// preparePageViews makes sure exactly the pages in the preload window (and
// those being zoomed) have a view, recycling views that are no longer needed,
// then positions them. It runs on every scroll tick.
func (v *Verso) preparePageViews() {
	assert(v.ds != nil, "verso: a DataSource is required")

	visibleFrame := v.scroll.Bounds
	visible := layout.VisiblePageIndexes(visibleFrame, v.pageFrames, false)
	window := v.preloadWindow(visible)

	prepared := make(map[int]*pooledView, window.Len())
	var recyclable []*pooledView
	for _, pageIndex := range v.LoadedPageIndexes().Slice() {
		pv := v.pages[pageIndex]
		if !window.Contains(pageIndex) && !v.zooming.Contains(pageIndex) {
			recyclable = append(recyclable, pv)
			continue
		}
		prepared[pageIndex] = pv
	}

	var created, recycled int
	for _, pageIndex := range window.Slice() {
		if _, ok := prepared[pageIndex]; ok {
			continue
		}

		class := v.ds.PageClass(pageIndex)
		if class == nil {
			class = BaseClass
		}

		var pv *pooledView
		for i, r := range recyclable {
			if r.class == class {
				pv = r
				recyclable = append(recyclable[:i], recyclable[i+1:]...)
				recycled++
				break
			}
		}
		if pv == nil {
			// New views start at their page frame, so they don't fly in from
			// the origin.
			var initial geom.Box
			if pageIndex < len(v.pageFrames) {
				initial = v.pageFrames[pageIndex]
			}
			pv = &pooledView{view: class.new(initial), class: class}
			pv.view.Mount(ContainerScroll)
			created++
		}

		pv.view.SetPageIndex(pageIndex)
		v.configurePageView(pv.view)
		prepared[pageIndex] = pv
	}

	for _, pv := range recyclable {
		pv.view.Mount(ContainerNone)
	}

	first, hasVisible := visible.First()
	last, _ := visible.Last()
	for pageIndex, pv := range prepared {
		if v.zooming.Contains(pageIndex) {
			continue
		}

		pv.view.SetTransform(geom.Identity)
		pv.view.SetFrame(v.resizedFrame(pv.view))
		pv.view.SetAlpha(1)

		// Park pages outside the visible range off to the side, invisible,
		// further away the further they are from it.
		var dist int
		switch {
		case !hasVisible:
		case pageIndex > last:
			dist = pageIndex - last
		case pageIndex < first:
			dist = pageIndex - first
		}
		if dist != 0 {
			pv.view.SetAlpha(0)
			pv.view.SetTransform(geom.Translation(visibleFrame.W/2*float64(dist), 0))
		}
	}

	if created > 0 || recycled > 0 || len(recyclable) > 0 {
		layoutLogger.Printf("prepared pages %s for visible %s (%d created, %d recycled, %d discarded)",
			window, visible, created, recycled, len(recyclable))
	}
	v.pages = prepared
}

func (v *Verso) configurePageView(view PageView) {
	if view.PageIndex() == NoPage {
		return
	}
	v.ds.ConfigurePage(view, view.PageIndex())
}

// resizedFrame returns the frame the view takes within its page frame, given
// the size it wants to be.
func (v *Verso) resizedFrame(view PageView) geom.Box {
	pageIndex := view.PageIndex()
	if pageIndex < 0 || pageIndex >= len(v.pageFrames) {
		return view.Frame()
	}
	maxFrame := v.pageFrames[pageIndex]
	size := view.SizeThatFits(maxFrame.Size())
	return layout.FitPageFrame(maxFrame, size, v.config.Alignment(pageIndex))
}
