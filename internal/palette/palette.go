// Package palette picks the colors the demo host and layout snapshots paint
// pages with. Colors are derived from a seed, so the same publication looks
// the same across runs and between the window and the snapshots.
package palette

import (
	"image/color"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds the colors of a publication.
type Palette struct {
	Backdrop color.RGBA    // behind the spreads
	Spread   color.RGBA    // spread frames, in snapshots
	Outro    color.RGBA    // the trailing outro page
	Pages    [3]color.RGBA // cycled through by page index
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// hsb converts hue, saturation and brightness, all in the 0-100 range, to an
// opaque color.
func hsb(h, s, b float64) color.RGBA {
	c := colorful.Hsv(clamp(h, 0, 100)*3.6, clamp(s/100.0, 0, 1), clamp(b/100.0, 0, 1))
	red, green, blue := c.RGB255()
	return color.RGBA{R: red, G: green, B: blue, A: 255}
}

// New returns the palette for the given seed.
func New(seed int64) Palette {
	r := rand.New(rand.NewSource(seed))

	p := Palette{
		Backdrop: hsb(r.Float64()*100, r.Float64()*10, 92+r.Float64()*6), // near white
		Spread:   hsb(r.Float64()*100, r.Float64()*20, 80+r.Float64()*10),
		Outro:    hsb(r.Float64()*100, r.Float64()*100, r.Float64()*30), // dark
	}
	for i := range p.Pages {
		p.Pages[i] = hsb(r.Float64()*100, r.Float64()*50+25, r.Float64()*30+60)
	}
	return p
}

// Page returns the color of the given page. Pages sharing a base color are
// told apart by a brightness jitter seeded by the page index.
func (p Palette) Page(pageIndex int) color.RGBA {
	if pageIndex < 0 {
		pageIndex = -pageIndex
	}
	base := p.Pages[pageIndex%len(p.Pages)]
	return Shimmered(base, rand.New(rand.NewSource(int64(pageIndex))))
}

// Shimmered applies a small brightness jitter to the color.
func Shimmered(c color.RGBA, r *rand.Rand) color.RGBA {
	h, s, v := ToColorful(c).Hsv()
	v = clamp(v+(r.Float64()-0.5)*0.2, 0, 1)

	red, green, blue := colorful.Hsv(h, s, v).RGB255()
	return color.RGBA{R: red, G: green, B: blue, A: c.A}
}

// ToColorful drops the alpha channel of c.
func ToColorful(c color.RGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}
