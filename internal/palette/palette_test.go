package palette

import (
	"image/color"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewIsDeterministic(t *testing.T) {
	if diff := cmp.Diff(New(42), New(42)); diff != "" {
		t.Errorf("palettes for the same seed differ (-first +second):\n%s", diff)
	}
	if New(1) == New(2) {
		t.Errorf("palettes for different seeds are identical")
	}
}

func TestPageColors(t *testing.T) {
	p := New(7)
	for pageIndex := 0; pageIndex < 12; pageIndex++ {
		c := p.Page(pageIndex)
		if c.A != 255 {
			t.Errorf("page %d: alpha = %d, want 255", pageIndex, c.A)
		}
		if again := p.Page(pageIndex); again != c {
			t.Errorf("page %d: color changed between calls: %v vs %v", pageIndex, c, again)
		}
	}
	if p.Page(-3) != p.Page(3) {
		t.Errorf("negative page indexes should mirror positive ones")
	}
}

func TestShimmeredKeepsHueAndAlpha(t *testing.T) {
	in := color.RGBA{R: 200, G: 40, B: 40, A: 128}
	out := Shimmered(in, rand.New(rand.NewSource(1)))
	if out.A != in.A {
		t.Errorf("alpha = %d, want %d", out.A, in.A)
	}

	hIn, _, _ := ToColorful(in).Hsv()
	hOut, _, _ := ToColorful(out).Hsv()
	if d := hIn - hOut; d > 1 || d < -1 {
		t.Errorf("hue moved from %.2f to %.2f", hIn, hOut)
	}
}
