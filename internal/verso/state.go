package verso

import (
	"github.com/irfansharif/verso/internal/indexset"
	"github.com/irfansharif/verso/internal/layout"
)

// CurrentPageIndexes returns the pages of the spread under the center of the
// viewport. It updates live while scrolling.
func (v *Verso) CurrentPageIndexes() indexset.Set { return v.currentPages }

// ActivePageIndexes returns the pages that were current when scrolling last
// came to rest.
func (v *Verso) ActivePageIndexes() indexset.Set { return v.activePages }

// CurrentSpreadIndex returns the spread under the center of the viewport.
func (v *Verso) CurrentSpreadIndex() (int, bool) { return v.currentSpread, v.hasCurrent }

// ActiveSpreadIndex returns the spread that was current when scrolling last
// came to rest.
func (v *Verso) ActiveSpreadIndex() (int, bool) { return v.activeSpread, v.hasActive }

func changeFrom(prev, next indexset.Set) IndexChange {
	added, removed := next.Diff(prev)
	return IndexChange{Pages: next, Added: added, Removed: removed}
}

// updateCurrentSpreadIndex finds the spread under the center of the visible
// rect, notifying the delegate if the current pages changed.
func (v *Verso) updateCurrentSpreadIndex() {
	if !v.hasConfig {
		return
	}

	v.currentSpread, v.hasCurrent = layout.CurrentSpreadIndex(v.scroll.Bounds, v.spreadFrames)
	var pages indexset.Set
	if v.hasCurrent {
		pages = v.config.PageIndexesForSpread(v.currentSpread)
	}
	if pages.Equal(v.currentPages) {
		return
	}

	change := changeFrom(v.currentPages, pages)
	v.currentPages = pages
	scrollLogger.Printf("current pages %s (+%s -%s)", change.Pages, change.Added, change.Removed)
	v.delegate.CurrentPagesChanged(change)
}

// updateActiveSpreadIndex promotes the current spread to the active one,
// notifying the delegate if the active pages changed.
func (v *Verso) updateActiveSpreadIndex() {
	v.updateCurrentSpreadIndex()

	v.activeSpread, v.hasActive = v.currentSpread, v.hasCurrent
	pages := v.currentPages
	if pages.Equal(v.activePages) {
		return
	}

	change := changeFrom(v.activePages, pages)
	v.activePages = pages
	scrollLogger.Printf("active pages %s (+%s -%s)", change.Pages, change.Added, change.Removed)
	v.delegate.ActivePagesChanged(change)
}

func (v *Verso) didStartScrolling() {
	v.zoom.MaxScale = 1
}

// didFinishScrolling runs when scrolling comes to rest. It is skipped while
// a relayout is in progress, which settles on its own.
func (v *Verso) didFinishScrolling() {
	if v.performingLayout {
		return
	}
	v.updateActiveSpreadIndex()
	v.enableZooming(false)
	v.updateMaxZoomScale()
}
