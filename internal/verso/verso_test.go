package verso

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/irfansharif/verso/internal/geom"
	"github.com/irfansharif/verso/internal/indexset"
	"github.com/irfansharif/verso/internal/spread"
)

var (
	landscape = geom.MakeSize(1000, 600)
	portrait  = geom.MakeSize(600, 1000)
)

// testSource lays out a publication, one or two pages per spread depending
// on the viewport orientation.
type testSource struct {
	pageCount   int
	classOf     func(pageIndex int) *PageClass
	configured  []int
	configCalls int
}

func (s *testSource) SpreadConfiguration(viewport geom.Size) spread.Configuration {
	s.configCalls++
	return spread.BuildPublication(s.pageCount, viewport.W > viewport.H, nil)
}

func (s *testSource) PageClass(pageIndex int) *PageClass {
	if s.classOf == nil {
		return BaseClass
	}
	return s.classOf(pageIndex)
}

func (s *testSource) ConfigurePage(view PageView, pageIndex int) {
	s.configured = append(s.configured, pageIndex)
}

// countingClass returns a page class that counts the views it builds.
func countingClass(name string, n *int) *PageClass {
	return NewPageClass(name, func(frame geom.Box) PageView {
		*n++
		return NewBasePage(frame)
	})
}

// fakeClock is the time base of the display ticks fed to Verso.
type fakeClock struct{ now time.Time }

func (c *fakeClock) advance(d time.Duration) time.Time {
	c.now = c.now.Add(d)
	return c.now
}

type event struct {
	Kind    string
	Pages   []int
	Added   []int
	Removed []int
	Scale   float64
}

// recorder returns a delegate appending every notification to events.
func recorder(events *[]event) Delegate {
	change := func(kind string) func(IndexChange) {
		return func(c IndexChange) {
			*events = append(*events, event{Kind: kind, Pages: c.Pages.Slice(), Added: c.Added.Slice(), Removed: c.Removed.Slice()})
		}
	}
	zoom := func(kind string) func(ZoomEvent) {
		return func(e ZoomEvent) {
			*events = append(*events, event{Kind: kind, Pages: e.Pages.Slice(), Added: []int{}, Removed: []int{}, Scale: e.Scale})
		}
	}
	return DelegateFuncs{
		OnCurrentPagesChanged: change("current"),
		OnActivePagesChanged:  change("active"),
		OnZoomStarted:         zoom("zoom-start"),
		OnZoomed:              zoom("zoom"),
		OnZoomEnded:           zoom("zoom-end"),
	}
}

func setup(t *testing.T, src *testSource, opts Options) (*Verso, *fakeClock, *[]event) {
	t.Helper()
	clock := &fakeClock{now: time.Unix(1000, 0)}
	events := &[]event{}
	v := New(src, opts)
	v.SetDelegate(recorder(events))
	v.Attach(landscape)
	return v, clock, events
}

func basePage(t *testing.T, v *Verso, pageIndex int) *BasePage {
	t.Helper()
	view, ok := v.PageViewIfLoaded(pageIndex)
	if !ok {
		t.Fatalf("page %d not loaded", pageIndex)
	}
	return view.(*BasePage)
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

// checkExclusive verifies every loaded page is in exactly one container: the
// zoom container iff it is zooming.
func checkExclusive(t *testing.T, v *Verso) {
	t.Helper()
	zooming := v.ZoomingPageIndexes()
	for _, pageIndex := range v.LoadedPageIndexes().Slice() {
		want := ContainerScroll
		if zooming.Contains(pageIndex) {
			want = ContainerZoom
		}
		view, _ := v.PageViewIfLoaded(pageIndex)
		if got := view.(interface{ Container() Container }).Container(); got != want {
			t.Errorf("page %d mounted in %v, want %v", pageIndex, got, want)
		}
	}
}

func TestAttach(t *testing.T) {
	src := &testSource{pageCount: 10}
	v, _, events := setup(t, src, Options{})

	if diff := cmp.Diff([]int{0, 1, 2, 3, 4, 5, 6}, v.LoadedPageIndexes().Slice()); diff != "" {
		t.Errorf("loaded pages mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0}, v.ActivePageIndexes().Slice()); diff != "" {
		t.Errorf("active pages mismatch (-want +got):\n%s", diff)
	}
	if got := v.ScrollView().Offset(); got != geom.MakePoint(20, 0) {
		t.Errorf("offset = %v, want (20,0)", got)
	}
	want := []event{
		{Kind: "current", Pages: []int{0}, Added: []int{0}, Removed: []int{}},
		{Kind: "active", Pages: []int{0}, Added: []int{0}, Removed: []int{}},
	}
	if diff := cmp.Diff(want, *events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}

	// Pages past the visible one are parked, invisible, half a viewport per
	// page further away.
	for pageIndex, dx := range map[int]float64{1: 500, 3: 1500, 6: 3000} {
		p := basePage(t, v, pageIndex)
		if p.Alpha() != 0 || p.Transform() != geom.Translation(dx, 0) {
			t.Errorf("page %d: alpha %g, transform %v; want parked at %g", pageIndex, p.Alpha(), p.Transform(), dx)
		}
	}

	z := v.ZoomView()
	if z.MaxScale != 4 || z.Scale != 1 {
		t.Errorf("zoom scale %g (max %g), want 1 (max 4)", z.Scale, z.MaxScale)
	}
	if diff := cmp.Diff(geom.MakeBox(0, 0, 1000, 600), basePage(t, v, 0).Frame()); diff != "" {
		t.Errorf("zooming page frame mismatch (-want +got):\n%s", diff)
	}
	checkExclusive(t, v)
}

func TestPreloadOptions(t *testing.T) {
	for _, tc := range []struct {
		name string
		opts Options
		want []int
	}{
		{
			name: "explicit pages skip default counts",
			opts: Options{PreloadPageIndexes: func(indexset.Set) indexset.Set { return indexset.Of(9) }},
			want: []int{0, 9},
		},
		{
			name: "explicit pages with a trailing count",
			opts: Options{
				PreloadPageIndexes:   func(indexset.Set) indexset.Set { return indexset.Of(9) },
				TrailingPreloadCount: func(indexset.Set) int { return 1 },
			},
			want: []int{0, 1, 9},
		},
		{
			name: "counts only",
			opts: Options{
				LeadingPreloadCount:  func(indexset.Set) int { return 0 },
				TrailingPreloadCount: func(indexset.Set) int { return 2 },
			},
			want: []int{0, 1, 2},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			v, _, _ := setup(t, &testSource{pageCount: 10}, tc.opts)
			if diff := cmp.Diff(tc.want, v.LoadedPageIndexes().Slice()); diff != "" {
				t.Errorf("loaded pages mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestJumpRecyclesByClass(t *testing.T) {
	var base, outro int
	baseClass, outroClass := countingClass("page", &base), countingClass("outro", &outro)
	src := &testSource{pageCount: 10, classOf: func(pageIndex int) *PageClass {
		if pageIndex == 9 {
			return outroClass
		}
		return baseClass
	}}
	v, _, events := setup(t, src, Options{})
	if base != 7 || outro != 0 {
		t.Fatalf("built %d page and %d outro views, want 7 and 0", base, outro)
	}
	view1, _ := v.PageViewIfLoaded(1)
	view2, _ := v.PageViewIfLoaded(2)
	*events = nil

	v.JumpToPage(5, false)
	if got := v.ScrollView().Offset(); got != geom.MakePoint(3080, 0) {
		t.Errorf("offset = %v, want (3080,0)", got)
	}
	// Page 0 was still zooming when the views were prepared, so it survives.
	if diff := cmp.Diff([]int{0, 3, 4, 5, 6, 7, 8, 9}, v.LoadedPageIndexes().Slice()); diff != "" {
		t.Errorf("loaded pages mismatch (-want +got):\n%s", diff)
	}
	if base != 7 || outro != 1 {
		t.Errorf("built %d page and %d outro views, want 7 and 1", base, outro)
	}
	if view, _ := v.PageViewIfLoaded(7); view != view1 {
		t.Error("page 7 should reuse the view of page 1")
	}
	if view, _ := v.PageViewIfLoaded(8); view != view2 {
		t.Error("page 8 should reuse the view of page 2")
	}
	want := []event{
		{Kind: "current", Pages: []int{5, 6}, Added: []int{5, 6}, Removed: []int{0}},
		{Kind: "active", Pages: []int{5, 6}, Added: []int{5, 6}, Removed: []int{0}},
	}
	if diff := cmp.Diff(want, *events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	checkExclusive(t, v)

	outroView := basePage(t, v, 9)
	v.JumpToPage(0, false)
	if diff := cmp.Diff([]int{0, 1, 2, 3, 4, 5, 6}, v.LoadedPageIndexes().Slice()); diff != "" {
		t.Errorf("loaded pages mismatch (-want +got):\n%s", diff)
	}
	if base != 7 || outro != 1 {
		t.Errorf("built %d page and %d outro views, want 7 and 1", base, outro)
	}
	if outroView.Container() != ContainerNone {
		t.Errorf("unused outro view mounted in %v", outroView.Container())
	}
	checkExclusive(t, v)
}

func TestJumpToMissingPage(t *testing.T) {
	src := &testSource{pageCount: 10}
	v, _, events := setup(t, src, Options{})
	*events = nil
	v.JumpToPage(10, false)
	v.JumpToPage(-1, true)
	if got := v.ScrollView().Offset(); got != geom.MakePoint(20, 0) || len(*events) != 0 {
		t.Errorf("jump to a missing page moved to %v with events %v", got, *events)
	}
}

func TestAnimatedJump(t *testing.T) {
	v, clock, events := setup(t, &testSource{pageCount: 10}, Options{})
	*events = nil

	v.JumpToPage(9, true)
	if v.ZoomView().MaxScale != 1 {
		t.Errorf("zooming should be disabled while scrolling")
	}
	v.Tick(clock.now) // the animation starts on the first tick
	if got := v.ScrollView().Offset(); got != geom.MakePoint(20, 0) {
		t.Errorf("offset = %v on the first tick, want (20,0)", got)
	}
	for i := 0; i < 4; i++ {
		v.Tick(clock.advance(jumpDuration / 8))
	}
	if off := v.ScrollView().Offset().X; off <= 20 || off >= 5120 {
		t.Errorf("mid-animation offset %g, want between 20 and 5120", off)
	}
	if !v.ActivePageIndexes().Equal(indexset.Of(0)) || !v.CurrentPageIndexes().Equal(indexset.Of(0)) {
		t.Errorf("current %s and active %s pages changed before the jump settled",
			v.CurrentPageIndexes(), v.ActivePageIndexes())
	}
	if !v.LoadedPageIndexes().Contains(9) {
		t.Errorf("pages along the way should be prepared, loaded %s", v.LoadedPageIndexes())
	}

	for i := 0; i < 4; i++ {
		v.Tick(clock.advance(jumpDuration / 8))
	}
	if got := v.ScrollView().Offset(); got != geom.MakePoint(5120, 0) {
		t.Errorf("offset = %v, want (5120,0)", got)
	}
	if v.ZoomView().MaxScale != 4 || v.ScrollView().Animating() {
		t.Errorf("jump did not settle")
	}

	// The spreads passed on the way are never current.
	want := []event{
		{Kind: "current", Pages: []int{9}, Added: []int{9}, Removed: []int{0}},
		{Kind: "active", Pages: []int{9}, Added: []int{9}, Removed: []int{0}},
	}
	if diff := cmp.Diff(want, *events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestAnimationsUseTickTime(t *testing.T) {
	v, _, _ := setup(t, &testSource{pageCount: 10}, Options{})

	// The first tick comes long after the jump was requested, in a time base
	// unrelated to the wall clock. The animation still runs its full course.
	start := time.Unix(5, 0)
	v.JumpToPage(3, true)
	v.Tick(start)
	if got := v.ScrollView().Offset(); got != geom.MakePoint(20, 0) {
		t.Errorf("offset = %v on the first tick, want (20,0)", got)
	}
	v.Tick(start.Add(jumpDuration - time.Millisecond))
	if !v.ScrollView().Animating() {
		t.Fatal("animation ended early")
	}
	v.Tick(start.Add(jumpDuration))
	if got := v.ScrollView().Offset(); got != geom.MakePoint(2060, 0) || v.ScrollView().Animating() {
		t.Errorf("offset = %v (animating=%t), want (2060,0) at rest", got, v.ScrollView().Animating())
	}
	if diff := cmp.Diff([]int{3, 4}, v.ActivePageIndexes().Slice()); diff != "" {
		t.Errorf("active pages mismatch (-want +got):\n%s", diff)
	}
}

func TestCurrentPagesFollowDrag(t *testing.T) {
	v, _, events := setup(t, &testSource{pageCount: 10}, Options{})
	*events = nil

	v.BeginDragging()
	v.DragTo(geom.MakePoint(600, 0))
	if diff := cmp.Diff([]int{1, 2}, v.CurrentPageIndexes().Slice()); diff != "" {
		t.Errorf("current pages mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0}, v.ActivePageIndexes().Slice()); diff != "" {
		t.Errorf("active pages changed while dragging (-want +got):\n%s", diff)
	}
	v.DragTo(geom.MakePoint(300, 0))

	want := []event{
		{Kind: "current", Pages: []int{1, 2}, Added: []int{1, 2}, Removed: []int{0}},
		{Kind: "current", Pages: []int{0}, Added: []int{0}, Removed: []int{1, 2}},
	}
	if diff := cmp.Diff(want, *events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestDragPrediction(t *testing.T) {
	for _, tc := range []struct {
		name     string
		dragTo   float64
		velocity float64
		want     float64
		active   []int
	}{
		{"slow drag showing enough of the next spread", 170, 0, 1040, []int{1, 2}},
		{"slow drag showing too little of the next spread", 100, 0, 20, []int{0}},
		{"fling forward", 25, 1, 1040, []int{1, 2}},
		{"fling backward past the first spread", 25, -1, 20, []int{0}},
		{"drag onto the next spread ignores velocity", 1200, -1, 1040, []int{1, 2}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			v, clock, _ := setup(t, &testSource{pageCount: 10}, Options{})

			v.BeginDragging()
			v.DragTo(geom.MakePoint(tc.dragTo, 0))
			target := v.EndDragging(geom.MakePoint(tc.velocity, 0))
			if target.X != tc.want {
				t.Fatalf("target offset %v, want x=%g", target, tc.want)
			}
			if !v.ScrollView().Decelerating {
				t.Fatal("expected deceleration towards the target")
			}

			v.Tick(clock.now)
			v.Tick(clock.advance(decelerationDuration))
			if got := v.ScrollView().Offset().X; got != tc.want {
				t.Errorf("came to rest at %g, want %g", got, tc.want)
			}
			if diff := cmp.Diff(tc.active, v.ActivePageIndexes().Slice()); diff != "" {
				t.Errorf("active pages mismatch (-want +got):\n%s", diff)
			}
			checkExclusive(t, v)
		})
	}
}

func TestDragWithoutMovementSettles(t *testing.T) {
	v, _, _ := setup(t, &testSource{pageCount: 10}, Options{})
	v.BeginDragging()
	if v.ZoomView().MaxScale != 1 {
		t.Fatal("zooming should be disabled while dragging")
	}
	target := v.EndDragging(geom.Point{})
	if target != geom.MakePoint(20, 0) || v.ScrollView().Decelerating {
		t.Errorf("EndDragging = %v (decelerating=%t), want (20,0) at rest", target, v.ScrollView().Decelerating)
	}
	if v.ZoomView().MaxScale != 4 {
		t.Errorf("max zoom %g after settling, want 4", v.ZoomView().MaxScale)
	}
}

func TestBounceDelaysSettling(t *testing.T) {
	v, clock, _ := setup(t, &testSource{pageCount: 10}, Options{})
	settled := func() bool { return v.ZoomView().MaxScale == 4 }

	v.BeginDragging()
	v.DragTo(geom.MakePoint(-100, 0))
	v.DidEndDecelerating()
	v.Tick(clock.now) // the delay counts from here
	if settled() {
		t.Fatal("settled while bouncing back")
	}
	v.Tick(clock.advance(100 * time.Millisecond))
	if settled() {
		t.Fatal("settled while bouncing back")
	}
	v.Tick(clock.advance(100 * time.Millisecond))
	if !settled() {
		t.Fatal("did not settle after the bounce delay")
	}

	// A new deceleration cancels the pending settle.
	v.BeginDragging()
	v.DidEndDecelerating()
	v.WillBeginDecelerating()
	v.Tick(clock.advance(300 * time.Millisecond))
	if settled() {
		t.Fatal("cancelled settle still ran")
	}

	// A later deceleration end reschedules it.
	v.DidEndDecelerating()
	v.Tick(clock.now)
	v.Tick(clock.advance(150 * time.Millisecond))
	v.DidEndDecelerating()
	v.Tick(clock.now)
	v.Tick(clock.advance(100 * time.Millisecond))
	if settled() {
		t.Fatal("settled before the rescheduled delay")
	}
	v.Tick(clock.advance(100 * time.Millisecond))
	if !settled() {
		t.Fatal("did not settle after the rescheduled delay")
	}
}

func TestInBoundsDecelerationSettlesOnNextTick(t *testing.T) {
	v, clock, _ := setup(t, &testSource{pageCount: 10}, Options{})
	v.BeginDragging()
	v.DidEndDecelerating()
	v.Tick(clock.now)
	if v.ZoomView().MaxScale != 4 {
		t.Error("in-bounds deceleration end should settle without delay")
	}
}

func TestZoomBackgroundFade(t *testing.T) {
	v, _, events := setup(t, &testSource{pageCount: 10}, Options{})
	*events = nil
	center := geom.MakePoint(500, 300)

	v.BeginZooming()
	for _, tc := range []struct{ scale, alpha float64 }{
		{1, 0},
		{1.25, 0.35},
		{1.5, 0.7},
		{3, 0.7},
	} {
		v.ZoomTo(tc.scale, center)
		if got := v.ZoomView().Background.Alpha; !approx(got, tc.alpha) {
			t.Errorf("scale %g: background alpha %g, want %g", tc.scale, got, tc.alpha)
		}
	}
	v.EndZooming()
	if v.ScrollView().ScrollEnabled {
		t.Error("paging should be disabled while zoomed in")
	}

	want := []event{
		{Kind: "zoom-start", Pages: []int{0}, Added: []int{}, Removed: []int{}, Scale: 1},
		{Kind: "zoom", Pages: []int{0}, Added: []int{}, Removed: []int{}, Scale: 1},
		{Kind: "zoom", Pages: []int{0}, Added: []int{}, Removed: []int{}, Scale: 1.25},
		{Kind: "zoom", Pages: []int{0}, Added: []int{}, Removed: []int{}, Scale: 1.5},
		{Kind: "zoom", Pages: []int{0}, Added: []int{}, Removed: []int{}, Scale: 3},
		{Kind: "zoom-end", Pages: []int{0}, Added: []int{}, Removed: []int{}, Scale: 3},
	}
	if diff := cmp.Diff(want, *events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}

	v.BeginZooming()
	v.ZoomTo(1.005, center)
	v.EndZooming()
	if !v.ScrollView().ScrollEnabled {
		t.Error("paging should be enabled once zoomed out")
	}
}

func TestZoomBackgroundColor(t *testing.T) {
	red := Color{Alpha: 0.5}
	red.RGB.R = 1
	v, _, _ := setup(t, &testSource{pageCount: 10}, Options{
		ZoomBackgroundColor: func(indexset.Set) Color { return red },
	})
	v.BeginZooming()
	v.ZoomTo(1.25, geom.MakePoint(500, 300))
	if diff := cmp.Diff(red.WithAlpha(0.25), v.ZoomView().Background); diff != "" {
		t.Errorf("background mismatch (-want +got):\n%s", diff)
	}
}

func TestZoomIgnoredRequests(t *testing.T) {
	v, _, events := setup(t, &testSource{pageCount: 10}, Options{})
	*events = nil

	v.ZoomTo(0, geom.Point{})
	v.ZoomTo(-2, geom.Point{})
	if v.ZoomView().Scale != 1 || len(*events) != 0 {
		t.Errorf("non-positive zoom changed scale to %g with events %v", v.ZoomView().Scale, *events)
	}

	v.BeginDragging()
	if v.DoubleTap(geom.MakePoint(500, 300)) {
		t.Error("double tap should be ignored while zooming is disabled")
	}
	v.ZoomTo(2, geom.Point{})
	if v.ZoomView().Scale != 1 || len(*events) != 0 {
		t.Errorf("zoom while scrolling changed scale to %g with events %v", v.ZoomView().Scale, *events)
	}
}

func TestDoubleTap(t *testing.T) {
	v, clock, events := setup(t, &testSource{pageCount: 10}, Options{})
	*events = nil

	if !v.DoubleTap(geom.MakePoint(500, 300)) {
		t.Fatal("double tap ignored")
	}
	if z := v.ZoomView(); z.Scale != 1 || !z.Animating() {
		t.Fatalf("double tap should zoom in over time, at %g (animating=%t)", z.Scale, z.Animating())
	}
	v.Tick(clock.now)
	v.Tick(clock.advance(doubleTapZoomDuration / 2))
	if z := v.ZoomView(); z.Scale <= 1 || z.Scale >= 4 {
		t.Errorf("mid-animation scale %g, want between 1 and 4", z.Scale)
	}
	if v.DoubleTap(geom.MakePoint(200, 100)) {
		t.Error("double tap during a double tap zoom should be ignored")
	}
	v.Tick(clock.advance(doubleTapZoomDuration / 2))

	z := v.ZoomView()
	if z.Scale != 4 || z.Offset != geom.MakePoint(1500, 900) || z.Animating() {
		t.Errorf("zoomed in to %g at %v (animating=%t), want 4 at (1500,900)", z.Scale, z.Offset, z.Animating())
	}
	if v.ScrollView().ScrollEnabled {
		t.Error("paging should be disabled while zoomed in")
	}
	var kinds []string
	for _, e := range *events {
		kinds = append(kinds, e.Kind)
	}
	want := []string{"zoom-start", "zoom", "zoom", "zoom", "zoom-end"}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("event sequence mismatch (-want +got):\n%s", diff)
	}

	v.DoubleTap(geom.MakePoint(200, 100))
	v.Tick(clock.now)
	v.Tick(clock.advance(doubleTapZoomDuration))
	z = v.ZoomView()
	if z.Scale != 1 || z.Offset != (geom.Point{}) || z.Background.Alpha != 0 {
		t.Errorf("zoomed out to %g at %v (alpha %g), want 1 at origin", z.Scale, z.Offset, z.Background.Alpha)
	}
	if !v.ScrollView().ScrollEnabled {
		t.Error("paging should be enabled once zoomed out")
	}
}

func TestPinchInterruptsDoubleTap(t *testing.T) {
	v, clock, events := setup(t, &testSource{pageCount: 10}, Options{})
	*events = nil

	v.DoubleTap(geom.MakePoint(500, 300))
	v.Tick(clock.now)
	v.Tick(clock.advance(doubleTapZoomDuration / 2))
	v.BeginZooming()
	v.Tick(clock.advance(doubleTapZoomDuration))
	if z := v.ZoomView(); z.Animating() || z.Scale >= 4 {
		t.Errorf("double tap zoom kept running under a pinch, at %g", z.Scale)
	}
	v.ZoomTo(2, geom.MakePoint(500, 300))
	v.EndZooming()

	var kinds []string
	for _, e := range *events {
		kinds = append(kinds, e.Kind)
	}
	want := []string{"zoom-start", "zoom", "zoom", "zoom", "zoom-end"}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("event sequence mismatch (-want +got):\n%s", diff)
	}
	if v.ZoomView().Scale != 2 {
		t.Errorf("scale %g after the pinch, want 2", v.ZoomView().Scale)
	}
}

// fitPage is a page view that is smaller than its page frame.
type fitPage struct{ *BasePage }

func (p fitPage) SizeThatFits(geom.Size) geom.Size { return geom.MakeSize(400, 500) }

func TestZoomInsetsKeepNaturalPosition(t *testing.T) {
	fit := NewPageClass("fit", func(frame geom.Box) PageView { return fitPage{NewBasePage(frame)} })
	src := &testSource{pageCount: 10, classOf: func(int) *PageClass { return fit }}
	v, _, _ := setup(t, src, Options{})
	v.JumpToPage(5, false)

	z := v.ZoomView()
	if diff := cmp.Diff(geom.MakeBox(100, 50, 800, 500), z.TargetContentFrame); diff != "" {
		t.Errorf("target content frame mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(z.TargetContentFrame, z.ContentFrame()); diff != "" {
		t.Errorf("unzoomed content not at its natural position (-want +got):\n%s", diff)
	}
	for pageIndex, want := range map[int]geom.Box{
		5: geom.MakeBox(0, 0, 400, 500),
		6: geom.MakeBox(400, 0, 400, 500),
	} {
		view, _ := v.PageViewIfLoaded(pageIndex)
		if diff := cmp.Diff(want, view.Frame()); diff != "" {
			t.Errorf("page %d zoom frame mismatch (-want +got):\n%s", pageIndex, diff)
		}
	}

	v.BeginZooming()
	v.ZoomTo(2, geom.MakePoint(500, 300))
	z = v.ZoomView()
	if z.Offset != geom.MakePoint(300, 200) || z.Inset != (geom.Insets{}) {
		t.Errorf("zoomed offset %v insets %v, want (300,200) and none", z.Offset, z.Inset)
	}
	v.ZoomTo(1, geom.MakePoint(500, 300))
	if diff := cmp.Diff(z.TargetContentFrame, v.ZoomView().ContentFrame()); diff != "" {
		t.Errorf("content did not return to its natural position (-want +got):\n%s", diff)
	}

	// Moving back out of the zoom container restores the fitted frames.
	v.JumpToPage(0, false)
	view, _ := v.PageViewIfLoaded(5)
	if diff := cmp.Diff(geom.MakeBox(3180, 50, 400, 500), view.Frame()); diff != "" {
		t.Errorf("page 5 frame mismatch (-want +got):\n%s", diff)
	}
	checkExclusive(t, v)
}

type testOverlay struct {
	frame     geom.Box
	container Container
}

func (o *testOverlay) SetFrame(f geom.Box) { o.frame = f }
func (o *testOverlay) Mount(c Container)   { o.container = c }

func TestSpreadOverlay(t *testing.T) {
	var overlays []*testOverlay
	var frames []map[int]geom.Box
	v, _, _ := setup(t, &testSource{pageCount: 10}, Options{
		SpreadOverlay: func(pages indexset.Set, size geom.Size, pageFrames map[int]geom.Box) Overlay {
			o := &testOverlay{}
			overlays = append(overlays, o)
			frames = append(frames, pageFrames)
			return o
		},
	})
	if len(overlays) != 1 || v.Overlay() != Overlay(overlays[0]) {
		t.Fatalf("got %d overlays, want one mounted", len(overlays))
	}
	if overlays[0].container != ContainerZoom || overlays[0].frame != geom.MakeBox(0, 0, 1000, 600) {
		t.Errorf("overlay in %v at %v", overlays[0].container, overlays[0].frame)
	}

	v.JumpToPage(3, false)
	if len(overlays) != 2 || overlays[0].container != ContainerNone {
		t.Fatalf("previous overlay should be replaced")
	}
	want := map[int]geom.Box{3: geom.MakeBox(0, 0, 500, 600), 4: geom.MakeBox(500, 0, 500, 600)}
	if diff := cmp.Diff(want, frames[1]); diff != "" {
		t.Errorf("overlay page frames mismatch (-want +got):\n%s", diff)
	}

	v.ReconfigureSpreadOverlay()
	if len(overlays) != 3 || overlays[1].container != ContainerNone || overlays[2].container != ContainerZoom {
		t.Errorf("reconfiguring should swap in a new overlay")
	}
}

func TestReconfigureVisiblePages(t *testing.T) {
	src := &testSource{pageCount: 10}
	v, _, _ := setup(t, src, Options{})
	before := map[int]PageView{}
	for _, pageIndex := range v.LoadedPageIndexes().Slice() {
		before[pageIndex], _ = v.PageViewIfLoaded(pageIndex)
	}

	src.configured = nil
	v.ReconfigureVisiblePages()
	if diff := cmp.Diff([]int{0, 1, 2, 3, 4, 5, 6}, src.configured); diff != "" {
		t.Errorf("configured pages mismatch (-want +got):\n%s", diff)
	}
	for pageIndex, view := range before {
		if got, _ := v.PageViewIfLoaded(pageIndex); got != view {
			t.Errorf("page %d view replaced", pageIndex)
		}
	}
}

func TestReloadPagesIdempotent(t *testing.T) {
	src := &testSource{pageCount: 10}
	v, _, _ := setup(t, src, Options{})
	v.JumpToPage(5, false)

	state := func() [][]int {
		return [][]int{
			v.LoadedPageIndexes().Slice(),
			v.CurrentPageIndexes().Slice(),
			v.ActivePageIndexes().Slice(),
			v.ZoomingPageIndexes().Slice(),
		}
	}
	v.ReloadPages()
	once := state()
	v.ReloadPages()
	if diff := cmp.Diff(once, state()); diff != "" {
		t.Errorf("second reload changed state (-once +twice):\n%s", diff)
	}
	if diff := cmp.Diff([][]int{{0, 1, 2, 3, 4, 5, 6}, {0}, {0}, {0}}, once); diff != "" {
		t.Errorf("reload state mismatch (-want +got):\n%s", diff)
	}
	checkExclusive(t, v)
}

func TestLayout(t *testing.T) {
	src := &testSource{pageCount: 10}
	v, _, _ := setup(t, src, Options{})
	v.JumpToPage(5, false)

	v.Layout(landscape)
	if src.configCalls != 1 {
		t.Errorf("same-size layout fetched the configuration again (%d calls)", src.configCalls)
	}

	// Rotating keeps the first current page in view.
	v.Layout(portrait)
	config, _ := v.SpreadConfiguration()
	if config.SpreadCount() != 10 {
		t.Fatalf("portrait layout has %d spreads, want 10", config.SpreadCount())
	}
	if diff := cmp.Diff([]int{5}, v.ActivePageIndexes().Slice()); diff != "" {
		t.Errorf("active pages mismatch (-want +got):\n%s", diff)
	}
	if !v.ScrollView().ScrollEnabled {
		t.Error("paging should be enabled after a relayout")
	}
	checkExclusive(t, v)
}

func TestEmptyViewport(t *testing.T) {
	src := &testSource{pageCount: 10}
	v := New(src, Options{})
	v.Attach(geom.Size{})
	if _, ok := v.SpreadConfiguration(); ok || src.configCalls != 0 || !v.LoadedPageIndexes().Empty() {
		t.Fatal("empty viewport should not lay anything out")
	}
	v.JumpToPage(3, false)
	v.Tick(time.Unix(0, 0))

	v.Layout(landscape)
	if _, ok := v.SpreadConfiguration(); !ok || v.LoadedPageIndexes().Empty() {
		t.Error("layout with a real viewport should load pages")
	}
}

func TestEmptyPublication(t *testing.T) {
	v, _, events := setup(t, &testSource{pageCount: 0}, Options{})
	if !v.LoadedPageIndexes().Empty() || !v.ZoomingPageIndexes().Empty() || len(*events) != 0 {
		t.Errorf("empty publication loaded %s, zooming %s, events %v",
			v.LoadedPageIndexes(), v.ZoomingPageIndexes(), *events)
	}
	if v.DoubleTap(geom.Point{}) {
		t.Error("double tap on an empty publication should do nothing")
	}
	v.BeginDragging()
	if got := v.EndDragging(geom.MakePoint(2, 0)); got != (geom.Point{}) {
		t.Errorf("EndDragging = %v, want origin", got)
	}
}

func TestMissingDataSource(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("attaching without a data source should panic")
		}
	}()
	New(nil, Options{}).Attach(landscape)
}

func TestDetach(t *testing.T) {
	src := &testSource{pageCount: 10}
	v, _, events := setup(t, src, Options{})
	views := map[int]*BasePage{}
	for _, pageIndex := range v.LoadedPageIndexes().Slice() {
		views[pageIndex] = basePage(t, v, pageIndex)
	}

	v.Detach()
	for pageIndex, p := range views {
		if p.Container() != ContainerNone {
			t.Errorf("page %d still mounted in %v", pageIndex, p.Container())
		}
	}
	if !v.LoadedPageIndexes().Empty() {
		t.Errorf("detached verso still holds pages %s", v.LoadedPageIndexes())
	}

	src.configured = nil
	*events = nil
	v.JumpToPage(5, false)
	v.ReloadPages()
	v.ReconfigureVisiblePages()
	if len(src.configured) != 0 || len(*events) != 0 {
		t.Errorf("detached verso still calls out: configured %v, events %v", src.configured, *events)
	}

	v.Attach(landscape)
	if diff := cmp.Diff([]int{0}, v.ActivePageIndexes().Slice()); diff != "" {
		t.Errorf("reattached active pages mismatch (-want +got):\n%s", diff)
	}
}
