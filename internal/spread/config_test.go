package spread

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func pageIndexes(c Configuration) [][]int {
	var out [][]int
	for _, p := range c.Properties() {
		out = append(out, p.PageIndexes())
	}
	return out
}

func TestBuildCoversAllPages(t *testing.T) {
	ctors := map[string]Constructor{
		"default": nil,
		"pairs":   func(int, int) Layout { return Layout{PageCount: 2, MaxZoomScale: 3, WidthPercentage: 1} },
		"greedy":  func(int, int) Layout { return Layout{PageCount: 7} },
		"zero":    func(int, int) Layout { return Layout{PageCount: 0} },
		"alternating": func(spreadIndex, _ int) Layout {
			return Layout{PageCount: 1 + spreadIndex%2, MaxZoomScale: 2, WidthPercentage: 0.8}
		},
	}
	for name, ctor := range ctors {
		for n := 0; n <= 13; n++ {
			c := Build(n, 10, ctor)
			if c.PageCount() != n {
				t.Fatalf("%s/%d: PageCount() = %d", name, n, c.PageCount())
			}

			seen := make(map[int]bool)
			next := 0
			for _, p := range c.Properties() {
				idx := p.PageIndexes()
				if len(idx) < 1 || len(idx) > 2 {
					t.Fatalf("%s/%d: spread with %d pages", name, n, len(idx))
				}
				for _, i := range idx {
					if seen[i] {
						t.Fatalf("%s/%d: page %d appears twice", name, n, i)
					}
					if i != next {
						t.Fatalf("%s/%d: page %d out of order, want %d", name, n, i, next)
					}
					seen[i] = true
					next++
				}
			}
			if len(seen) != n {
				t.Fatalf("%s/%d: covered %d pages", name, n, len(seen))
			}
		}
	}
}

func TestBuildEmpty(t *testing.T) {
	c := Build(0, 20, nil)
	if c.SpreadCount() != 0 || c.PageCount() != 0 {
		t.Errorf("Build(0) = %d spreads, %d pages; want empty", c.SpreadCount(), c.PageCount())
	}
	if !c.PageIndexesForSpread(0).Empty() {
		t.Error("PageIndexesForSpread on empty configuration should be empty")
	}
}

func TestBuildDefaultLayout(t *testing.T) {
	c := Build(3, 0, nil)
	for i, p := range c.Properties() {
		if p.MaxZoomScale() != 4 || p.WidthPercentage() != 1 || p.Type() != Single {
			t.Errorf("spread %d = %v, want single page, zoom 4, width 1", i, p)
		}
	}
}

func TestPublicationLandscape(t *testing.T) {
	c := BuildPublication(10, true, nil)
	if c.SpreadCount() != 6 || c.PageCount() != 10 {
		t.Fatalf("got %d spreads, %d pages; want 6, 10", c.SpreadCount(), c.PageCount())
	}
	want := [][]int{{0}, {1, 2}, {3, 4}, {5, 6}, {7, 8}, {9}}
	if diff := cmp.Diff(want, pageIndexes(c)); diff != "" {
		t.Errorf("spreads mismatch (-want +got):\n%s", diff)
	}
	if c.Spacing() != PublicationSpacing {
		t.Errorf("Spacing() = %g, want %g", c.Spacing(), PublicationSpacing)
	}
}

func TestPublicationPortrait(t *testing.T) {
	c := BuildPublication(4, false, nil)
	want := [][]int{{0}, {1}, {2}, {3}}
	if diff := cmp.Diff(want, pageIndexes(c)); diff != "" {
		t.Errorf("spreads mismatch (-want +got):\n%s", diff)
	}
}

func TestPublicationOutro(t *testing.T) {
	c := BuildPublication(4, true, &Outro{MaxZoomScale: 1, WidthPercentage: 0.5})
	want := [][]int{{0}, {1, 2}, {3}, {4}}
	if diff := cmp.Diff(want, pageIndexes(c)); diff != "" {
		t.Errorf("spreads mismatch (-want +got):\n%s", diff)
	}
	outro, ok := c.PropertyForPage(4)
	if !ok {
		t.Fatal("no spread for outro page")
	}
	if outro.MaxZoomScale() != 1 || outro.WidthPercentage() != 0.5 {
		t.Errorf("outro property = %v", outro)
	}
}

func TestLookups(t *testing.T) {
	c := BuildPublication(10, true, nil)
	if s, ok := c.SpreadIndexForPage(4); !ok || s != 2 {
		t.Errorf("SpreadIndexForPage(4) = %d, %v; want 2, true", s, ok)
	}
	if _, ok := c.SpreadIndexForPage(10); ok {
		t.Error("SpreadIndexForPage(10) should not be found")
	}
	if diff := cmp.Diff([]int{5, 6}, c.PageIndexesForSpread(3).Slice()); diff != "" {
		t.Errorf("PageIndexesForSpread(3) mismatch (-want +got):\n%s", diff)
	}
	if got := c.TypeForSpread(6); got != None {
		t.Errorf("TypeForSpread(6) = %v, want none", got)
	}

	for page, want := range map[int]Alignment{0: AlignCenter, 1: AlignRight, 2: AlignLeft, 9: AlignCenter, 42: AlignCenter} {
		if got := c.Alignment(page); got != want {
			t.Errorf("Alignment(%d) = %v, want %v", page, got, want)
		}
	}
}

func TestEqual(t *testing.T) {
	a := BuildPublication(10, true, nil)
	if !a.Equal(BuildPublication(10, true, nil)) {
		t.Error("identical configurations should be equal")
	}
	if a.Equal(BuildPublication(10, false, nil)) {
		t.Error("different spreads should not be equal")
	}
	zoomed := Build(10, PublicationSpacing, func(s, n int) Layout {
		l := PublicationConstructor(10, true, nil)(s, n)
		if s == 3 {
			l.MaxZoomScale = 2
		}
		return l
	})
	if a.Equal(zoomed) {
		t.Error("configurations differing in nested zoom scale should not be equal")
	}
}

func TestPropertyClamping(t *testing.T) {
	p := NewProperty([]int{0}, 0.5, 1.7)
	if p.MaxZoomScale() != 1 || p.WidthPercentage() != 1 {
		t.Errorf("NewProperty clamps = %v, want zoom 1 width 1", p)
	}
	p = NewProperty([]int{0, 1}, 6, -1)
	if p.MaxZoomScale() != 6 || p.WidthPercentage() != 0 {
		t.Errorf("NewProperty clamps = %v, want zoom 6 width 0", p)
	}
}

func TestPropertyPreconditions(t *testing.T) {
	for _, idx := range [][]int{nil, {0, 1, 2}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("NewProperty(%v) should panic", idx)
				}
			}()
			NewProperty(idx, 1, 1)
		}()
	}
}
