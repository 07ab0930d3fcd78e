package spread

import (
	"github.com/irfansharif/verso/internal/indexset"
)

// Configuration holds the properties of all the spreads of a publication, in
// display order, and the spacing between consecutive spreads.
type Configuration struct {
	props     []Property
	spacing   float64
	pageCount int
}

// New returns a configuration for the given spreads. The page indexes across
// all spreads are expected to be contiguous and start at 0.
func New(props []Property, spacing float64) Configuration {
	c := Configuration{
		props:   make([]Property, len(props)),
		spacing: spacing,
	}
	copy(c.props, props)
	for _, p := range props {
		c.pageCount += len(p.pageIndexes)
	}
	return c
}

func (c Configuration) PageCount() int   { return c.pageCount }
func (c Configuration) SpreadCount() int { return len(c.props) }
func (c Configuration) Spacing() float64 { return c.spacing }

// Properties returns all the spread properties. The result is a copy.
func (c Configuration) Properties() []Property {
	out := make([]Property, len(c.props))
	copy(out, c.props)
	return out
}

// Property returns the properties of the given spread.
func (c Configuration) Property(spreadIndex int) (Property, bool) {
	if spreadIndex < 0 || spreadIndex >= len(c.props) {
		return Property{}, false
	}
	return c.props[spreadIndex], true
}

// SpreadIndexForPage returns the spread showing the given page.
func (c Configuration) SpreadIndexForPage(pageIndex int) (int, bool) {
	for spreadIndex, p := range c.props {
		if p.Contains(pageIndex) {
			return spreadIndex, true
		}
	}
	return 0, false
}

// PageIndexesForSpread returns the pages of the given spread, or the empty set
// if there is no such spread.
func (c Configuration) PageIndexesForSpread(spreadIndex int) indexset.Set {
	p, ok := c.Property(spreadIndex)
	if !ok {
		return indexset.Set{}
	}
	return indexset.Of(p.pageIndexes...)
}

// PropertyForPage returns the properties of the spread showing the given page.
func (c Configuration) PropertyForPage(pageIndex int) (Property, bool) {
	spreadIndex, ok := c.SpreadIndexForPage(pageIndex)
	if !ok {
		return Property{}, false
	}
	return c.Property(spreadIndex)
}

// TypeForSpread returns the kind of the given spread, None if out of range.
func (c Configuration) TypeForSpread(spreadIndex int) Type {
	p, ok := c.Property(spreadIndex)
	if !ok {
		return None
	}
	return p.Type()
}

// Alignment returns how the given page sits within its page frame.
func (c Configuration) Alignment(pageIndex int) Alignment {
	p, ok := c.PropertyForPage(pageIndex)
	if !ok {
		return AlignCenter
	}
	return p.Alignment(pageIndex)
}

// Equal reports whether both configurations hold the same pages in the same
// spreads, with the same zoom limits and widths.
func (c Configuration) Equal(o Configuration) bool {
	if c.pageCount != o.pageCount || len(c.props) != len(o.props) {
		return false
	}
	for i := range c.props {
		if !c.props[i].Equal(o.props[i]) {
			return false
		}
	}
	return true
}

// Layout is what a Constructor decides for the next spread.
type Layout struct {
	PageCount       int // pages in the spread, 1 or 2
	MaxZoomScale    float64
	WidthPercentage float64
}

// DefaultLayout is one page per spread, zoomable up to 4x, full width.
var DefaultLayout = Layout{PageCount: 1, MaxZoomScale: DefaultMaxZoomScale, WidthPercentage: DefaultWidthPercentage}

// Constructor decides the layout of the spread at spreadIndex, whose first
// page is nextPageIndex.
type Constructor func(spreadIndex, nextPageIndex int) Layout

// Build allocates pageCount pages to spreads, starting at page 0, asking ctor
// how many pages each spread takes. A nil ctor lays out one page per spread.
func Build(pageCount int, spacing float64, ctor Constructor) Configuration {
	if ctor == nil {
		ctor = func(int, int) Layout { return DefaultLayout }
	}

	var props []Property
	nextPageIndex, spreadIndex := 0, 0
	for nextPageIndex < pageCount {
		l := ctor(spreadIndex, nextPageIndex)

		n := l.PageCount
		if n < 1 {
			n = 1
		}
		if n > 2 {
			n = 2
		}
		if remaining := pageCount - nextPageIndex; n > remaining {
			n = remaining // never allocate past the last page
		}

		pageIndexes := make([]int, n)
		for i := range pageIndexes {
			pageIndexes[i] = nextPageIndex + i
		}
		props = append(props, NewProperty(pageIndexes, l.MaxZoomScale, l.WidthPercentage))

		nextPageIndex += n
		spreadIndex++
	}

	tracer().Debugf("built spread configuration: %d pages in %d spreads (spacing=%g)", pageCount, len(props), spacing)
	return New(props, spacing)
}
