package spread

import (
	"fmt"
	"math"
)

const (
	DefaultMaxZoomScale    = 4.0
	DefaultWidthPercentage = 1.0
)

// Type classifies a spread by how many pages it holds.
type Type int

const (
	None   Type = iota // no pages (out of range lookups)
	Single             // one page filling the spread
	Double             // verso (left) and recto (right) pages
)

func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case Single:
		return "single"
	case Double:
		return "double"
	default:
		return "unknown"
	}
}

// Alignment is how a page view is placed horizontally within its page frame.
type Alignment int

const (
	AlignCenter Alignment = iota
	AlignLeft
	AlignRight
)

func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	default:
		return "unknown"
	}
}

// Property holds everything needed to lay out a single spread.
type Property struct {
	pageIndexes     []int
	maxZoomScale    float64
	widthPercentage float64
}

// NewProperty builds a spread property. A spread holds one or two pages; the
// zoom limit is raised to at least 1 and the width percentage clamped to [0,1].
func NewProperty(pageIndexes []int, maxZoomScale, widthPercentage float64) Property {
	assert(len(pageIndexes) >= 1, "spread property does not support empty spreads")
	assert(len(pageIndexes) <= 2, fmt.Sprintf("spread property does not support more than 2 pages in a spread (%v)", pageIndexes))

	idx := make([]int, len(pageIndexes))
	copy(idx, pageIndexes)
	return Property{
		pageIndexes:     idx,
		maxZoomScale:    math.Max(maxZoomScale, 1.0),
		widthPercentage: math.Max(math.Min(widthPercentage, 1.0), 0.0),
	}
}

// PageIndexes returns the spread's pages in display order. The result is a
// copy.
func (p Property) PageIndexes() []int {
	out := make([]int, len(p.pageIndexes))
	copy(out, p.pageIndexes)
	return out
}

func (p Property) MaxZoomScale() float64    { return p.maxZoomScale }
func (p Property) WidthPercentage() float64 { return p.widthPercentage }

// Contains reports whether the spread shows the given page.
func (p Property) Contains(pageIndex int) bool {
	for _, i := range p.pageIndexes {
		if i == pageIndex {
			return true
		}
	}
	return false
}

// Type returns the kind of spread.
func (p Property) Type() Type {
	switch len(p.pageIndexes) {
	case 1:
		return Single
	case 2:
		return Double
	default:
		return None
	}
}

// Alignment returns how the given page sits within its frame. The verso page
// of a double spread hugs the gutter from the left (right-aligned) and the
// recto page from the right (left-aligned); everything else is centered.
func (p Property) Alignment(pageIndex int) Alignment {
	if p.Type() != Double {
		return AlignCenter
	}
	switch pageIndex {
	case p.pageIndexes[0]:
		return AlignRight
	case p.pageIndexes[1]:
		return AlignLeft
	default:
		return AlignCenter
	}
}

// Equal reports whether both properties describe the same spread.
func (p Property) Equal(o Property) bool {
	if p.maxZoomScale != o.maxZoomScale || p.widthPercentage != o.widthPercentage {
		return false
	}
	if len(p.pageIndexes) != len(o.pageIndexes) {
		return false
	}
	for i := range p.pageIndexes {
		if p.pageIndexes[i] != o.pageIndexes[i] {
			return false
		}
	}
	return true
}

func (p Property) String() string {
	return fmt.Sprintf("%v zoom=%g width=%g", p.pageIndexes, p.maxZoomScale, p.widthPercentage)
}
