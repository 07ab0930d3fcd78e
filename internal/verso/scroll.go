package verso

import (
	"math"
	"time"

	"github.com/irfansharif/verso/internal/geom"
	"github.com/irfansharif/verso/internal/layout"
)

const (
	// decelerationDuration is how long a fling takes to come to rest on its
	// target spread.
	decelerationDuration = 300 * time.Millisecond
	// jumpDuration is how long an animated jump between spreads takes.
	jumpDuration = 400 * time.Millisecond
	// bounceSettleDelay is how long settling waits after a deceleration that
	// ended out of bounds, so a bounce-back doesn't settle prematurely.
	bounceSettleDelay = 200 * time.Millisecond
	// flingVelocity is the drag-end velocity (in points per millisecond)
	// above which a drag moves to the neighbouring spread.
	flingVelocity = 0.5
	// changeOnPercentageVisible is how much of the neighbouring spread must
	// be visible for a slow drag to move to it.
	changeOnPercentageVisible = 0.1
)

type animationKind int

const (
	animateDeceleration animationKind = iota
	animateJump
)

// offsetAnimation moves the content offset from one point to another,
// advanced by Tick. It starts at the first Tick after it is created, so all
// of its timing is in the host's tick time base.
type offsetAnimation struct {
	kind     animationKind
	from, to geom.Point
	start    time.Time // zero until the first tick
	duration time.Duration
}

// at returns the offset at the given time, and whether the animation is
// done.
func (a *offsetAnimation) at(now time.Time) (geom.Point, bool) {
	t, done := progress(&a.start, now, a.duration)
	return a.from.Add(a.to.Sub(a.from).Scale(t)), done
}

// progress returns how far, eased out, an animation of duration d that
// started at *start has come at now, and whether it is done. A zero start is
// set to now.
func progress(start *time.Time, now time.Time, d time.Duration) (float64, bool) {
	if start.IsZero() {
		*start = now
	}
	elapsed := now.Sub(*start)
	if d <= 0 || elapsed >= d {
		return 1, true
	}
	t := math.Max(float64(elapsed)/float64(d), 0)
	return 1 - math.Pow(1-t, 3), false
}

// ScrollView is the state of the paging scroll container. Bounds is the
// visible rect in content coordinates: its origin is the content offset and
// its size the viewport size.
type ScrollView struct {
	Bounds      geom.Box
	ContentSize geom.Size

	Dragging     bool // a drag is in progress
	Tracking     bool // the drag has moved the content
	Decelerating bool // a fling is coming to rest

	Bounces       bool // the content may be dragged past its edges
	ScrollEnabled bool

	anim *offsetAnimation
}

// Offset returns the content offset.
func (s ScrollView) Offset() geom.Point { return s.Bounds.Origin() }

func (s *ScrollView) setOffset(p geom.Point) { s.Bounds = s.Bounds.WithOrigin(p) }

// Animating reports whether an offset animation is in flight.
func (s ScrollView) Animating() bool { return s.anim != nil }

// OutOfBounds reports whether the visible rect extends past the content.
func (s ScrollView) OutOfBounds() bool {
	b := s.Bounds
	return b.MaxX() > s.ContentSize.W || b.MinX() < 0 ||
		b.MaxY() > s.ContentSize.H || b.MinY() < 0
}

func (s *ScrollView) animate(kind animationKind, to geom.Point, d time.Duration) {
	s.anim = &offsetAnimation{kind: kind, from: s.Offset(), to: to, duration: d}
}

// BeginDragging is called when the user starts dragging the content. Any
// running offset animation stops where it is. Drags are ignored while a
// double tap zoom is animating.
func (v *Verso) BeginDragging() {
	if !v.attached || !v.scroll.ScrollEnabled || v.zoom.Animating() {
		return
	}
	if v.scroll.anim != nil {
		v.scroll.anim = nil
		v.scroll.Decelerating = false
	}
	v.scroll.Dragging = true

	if !v.hasConfig || v.config.SpreadCount() == 0 {
		return
	}
	v.dragStartSpread = 0
	if v.hasCurrent {
		v.dragStartSpread = v.currentSpread
	}
	v.dragStartVisible = v.scroll.Bounds
	scrollLogger.Printf("drag started on spread %d at %v", v.dragStartSpread, v.dragStartVisible)
	v.didStartScrolling()
}

// DragTo moves the content offset during a drag.
func (v *Verso) DragTo(offset geom.Point) {
	if !v.attached || !v.scroll.Dragging {
		return
	}
	v.scroll.Tracking = true
	v.scroll.setOffset(offset)
	v.didScroll()
}

// EndDragging is called when the user lifts their finger, with the drag
// velocity in points per millisecond. It returns the offset the content comes
// to rest at: that of the predicted target spread. If the content isn't
// already there it decelerates towards it, driven by Tick.
func (v *Verso) EndDragging(velocity geom.Point) geom.Point {
	if !v.attached || !v.scroll.Dragging {
		return v.scroll.Offset()
	}
	v.scroll.Dragging = false
	v.scroll.Tracking = false

	target := v.scroll.Offset()
	if v.hasConfig && v.config.SpreadCount() > 0 {
		target = v.predictTargetOffset(velocity)
	}

	decelerate := target != v.scroll.Offset()
	scrollLogger.Printf("drag ended with velocity %v, target %v (decelerate=%t)", velocity, target, decelerate)
	if !decelerate {
		v.didFinishScrolling()
		return target
	}

	v.scroll.animate(animateDeceleration, target, decelerationDuration)
	v.scroll.Decelerating = true
	v.WillBeginDecelerating()
	return target
}

// predictTargetOffset picks the spread a drag should come to rest on. If the
// current spread hasn't changed since the drag began, a fling moves one
// spread in its direction; a slow drag moves to the neighbouring spread in
// the drag direction if enough of it is visible.
func (v *Verso) predictTargetOffset(velocity geom.Point) geom.Point {
	target := 0
	if v.hasCurrent {
		target = v.currentSpread
	}

	if target == v.dragStartSpread {
		visible := v.scroll.Bounds
		switch {
		case velocity.X > flingVelocity:
			target++
		case velocity.X < -flingVelocity:
			target--
		case visible.X > v.dragStartVisible.X &&
			layout.VisibilityPercentage(target+1, visible, v.spreadFrames) > changeOnPercentageVisible:
			target++
		case visible.X < v.dragStartVisible.X &&
			layout.VisibilityPercentage(target-1, visible, v.spreadFrames) > changeOnPercentageVisible:
			target--
		}
	}

	if target < 0 {
		target = 0
	}
	if last := v.config.SpreadCount() - 1; target > last {
		target = last
	}
	return layout.ScrollOffsetForSpread(target, v.spreadFrames, v.viewport)
}

// WillBeginDecelerating is called when a fling starts. It cancels any pending
// settle scheduled by DidEndDecelerating.
func (v *Verso) WillBeginDecelerating() {
	if !v.attached {
		return
	}
	v.settlePending = false
}

// DidEndDecelerating is called when a fling comes to rest. The scroll
// settles on the next Tick, or after a short delay if the content came to
// rest out of bounds and is about to bounce back. The delay counts from the
// next Tick. A pending settle is rescheduled.
func (v *Verso) DidEndDecelerating() {
	if !v.attached {
		return
	}
	var delay time.Duration
	if v.scroll.Bounces && v.scroll.OutOfBounds() {
		delay = bounceSettleDelay
	}
	v.settlePending = true
	v.settleDelay, v.settleAt = delay, time.Time{}
	scrollLogger.Printf("deceleration ended at %v, settling in %s", v.scroll.Offset(), delay)
}

// DidEndScrollingAnimation is called when a programmatic scroll animation
// finishes. The current spread is only recomputed here, not on every frame of
// the animation.
func (v *Verso) DidEndScrollingAnimation() {
	if !v.attached {
		return
	}
	v.didFinishScrolling()
}

// Tick advances offset and zoom animations and runs pending settles. Hosts
// call it once per display frame; now is the only time base the engine uses.
func (v *Verso) Tick(now time.Time) {
	if !v.attached {
		return
	}

	v.tickZoom(now)

	if a := v.scroll.anim; a != nil {
		offset, done := a.at(now)
		v.scroll.setOffset(offset)
		switch a.kind {
		case animateDeceleration:
			v.didScroll()
		case animateJump:
			v.preparePageViews()
		}
		if done {
			v.scroll.anim = nil
			switch a.kind {
			case animateDeceleration:
				v.scroll.Decelerating = false
				v.DidEndDecelerating()
			case animateJump:
				v.DidEndScrollingAnimation()
			}
		}
	}

	if !v.settlePending {
		return
	}
	if v.settleAt.IsZero() {
		v.settleAt = now.Add(v.settleDelay)
	}
	if !now.Before(v.settleAt) {
		v.settlePending = false
		v.didFinishScrolling()
	}
}

// didScroll runs on every content offset change. Only user-driven scrolls
// update the current spread and the page views.
func (v *Verso) didScroll() {
	if v.scroll.Dragging || v.scroll.Decelerating || v.scroll.Tracking {
		v.updateCurrentSpreadIndex()
		v.preparePageViews()
	}
}
