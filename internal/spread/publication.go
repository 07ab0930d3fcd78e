package spread

// PublicationSpacing is the gap between the spreads of a paged publication.
const PublicationSpacing = 20.0

// Outro describes an extra trailing page appended after the publication's
// own pages. It always sits alone in its spread.
type Outro struct {
	MaxZoomScale    float64
	WidthPercentage float64
}

// PublicationConstructor lays out a paged publication of pageCount pages: the
// first and last pages, and every page in portrait orientation, get a spread
// of their own, the rest are paired up. If outro is non-nil it is laid out as
// page pageCount.
func PublicationConstructor(pageCount int, landscape bool, outro *Outro) Constructor {
	lastPageIndex := pageCount - 1
	if lastPageIndex < 0 {
		lastPageIndex = 0
	}
	return func(_, nextPageIndex int) Layout {
		if outro != nil && nextPageIndex == pageCount {
			return Layout{PageCount: 1, MaxZoomScale: outro.MaxZoomScale, WidthPercentage: outro.WidthPercentage}
		}

		n := 2
		if nextPageIndex == 0 || nextPageIndex == lastPageIndex || !landscape {
			n = 1
		}
		return Layout{PageCount: n, MaxZoomScale: DefaultMaxZoomScale, WidthPercentage: DefaultWidthPercentage}
	}
}

// BuildPublication builds the configuration of a paged publication shown in a
// viewport of the given orientation.
func BuildPublication(pageCount int, landscape bool, outro *Outro) Configuration {
	total := pageCount
	if outro != nil {
		total++
	}
	return Build(total, PublicationSpacing, PublicationConstructor(pageCount, landscape, outro))
}
