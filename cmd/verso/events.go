package main

import (
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/irfansharif/verso/internal/app"
	"github.com/irfansharif/verso/internal/geom"
)

const repeatInterval = 250 * time.Millisecond // time between successive steps when an arrow key is held down

// doubleClickInterval is the longest gap between two clicks of a double
// click.
const doubleClickInterval = 300 * time.Millisecond

// EventHandlers manages all event handling for the application.
type EventHandlers struct {
	application *app.App

	// Left/right arrows step through the spreads. If held down, we do so
	// continuously.
	stepKeyHeld   bool
	stepDirection int
	lastStepTime  time.Time

	// Current mouse position, in window points.
	cursor geom.Point

	lastClickTime time.Time
	seed          int64
}

// NewEventHandlers creates a new event handlers manager.
func NewEventHandlers(application *app.App, seed int64) *EventHandlers {
	eh := &EventHandlers{
		application:  application,
		lastStepTime: time.Now(),
		seed:         seed,
	}
	eh.SetupCallbacks(application.Window)
	return eh
}

// SetupCallbacks configures all GLFW event callbacks.
func (eh *EventHandlers) SetupCallbacks(window *glfw.Window) {
	window.SetKeyCallback(func(wnd *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		eh.handleKey(key, action, mods)
	})
	window.SetMouseButtonCallback(func(wnd *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		eh.handleMouseButton(button, action) // for dragging
	})
	window.SetCursorPosCallback(func(wnd *glfw.Window, xpos, ypos float64) {
		eh.handleCursorPos(xpos, ypos)
	})
	window.SetScrollCallback(func(wnd *glfw.Window, _, zoomDelta float64) {
		eh.application.Zoom(zoomDelta, eh.cursor) // for zooming
	})
	window.SetFramebufferSizeCallback(func(wnd *glfw.Window, newW, newH int) {
		eh.handleFramebufferSize(newW, newH) // for window resize
	})
}

// handleFramebufferSize handles window resize events.
func (eh *EventHandlers) handleFramebufferSize(newW, newH int) {
	ww, wh := eh.application.Window.GetSize()
	eh.application.Resize(ww, wh, newW, newH)
}

// handleKey handles keyboard input events.
func (eh *EventHandlers) handleKey(key glfw.Key, action glfw.Action, mods glfw.ModifierKey) {
	switch key {
	case glfw.KeyLeft:
		eh.handleStepKeys(action, -1)
	case glfw.KeyRight:
		eh.handleStepKeys(action, 1)
	case glfw.KeyHome:
		if action == glfw.Press {
			eh.application.Jump(0)
		}
	case glfw.KeyEnd:
		if action == glfw.Press {
			eh.application.Jump(eh.application.Publication.TotalPageCount() - 1)
		}
	case glfw.KeyR:
		if action == glfw.Press {
			eh.application.Reload()
		}
	case glfw.KeyC:
		if action == glfw.Press {
			// Shift+C goes back to the previous palette.
			if (mods & glfw.ModShift) != 0 {
				eh.seed--
			} else {
				eh.seed++
			}
			eh.application.Recolor(eh.seed)
		}
	case glfw.KeyEqual:
		if action == glfw.Press && (mods&glfw.ModSuper) != 0 {
			eh.application.Zoom(1, eh.center()) // zoom in
		}
	case glfw.KeyMinus:
		if action == glfw.Press && (mods&glfw.ModSuper) != 0 {
			eh.application.Zoom(-1, eh.center()) // zoom out
		}
	}
}

// handleStepKeys handles arrow key presses, and also releases for continuous
// stepping.
func (eh *EventHandlers) handleStepKeys(action glfw.Action, direction int) {
	switch action {
	case glfw.Press:
		eh.stepKeyHeld = true
		eh.stepDirection = direction
		eh.application.Step(direction)
		eh.lastStepTime = time.Now()

	case glfw.Release:
		eh.stepKeyHeld = false

	case glfw.Repeat:
		// Ignore repeat events - we handle continuous stepping ourselves to
		// ensure consistent timing.
	}
}

// handleContinuousStepping steps through spreads while an arrow key is held.
func (eh *EventHandlers) handleContinuousStepping() {
	if !eh.stepKeyHeld {
		return // nothing to do
	}

	now := time.Now()
	if now.Sub(eh.lastStepTime) < repeatInterval {
		return // not enough time has passed since the last step
	}

	eh.application.Step(eh.stepDirection)
	eh.lastStepTime = now
}

// handleMouseButton handles mouse button events for dragging and double
// clicks.
func (eh *EventHandlers) handleMouseButton(button glfw.MouseButton, action glfw.Action) {
	if button != glfw.MouseButtonLeft {
		return // nothing to do
	}

	now := time.Now()
	switch action {
	case glfw.Press:
		if now.Sub(eh.lastClickTime) < doubleClickInterval {
			eh.application.DoubleClick(eh.cursor)
			eh.lastClickTime = time.Time{}
			return
		}
		eh.lastClickTime = now
		eh.application.PressPointer(eh.cursor, now)
	case glfw.Release:
		eh.application.ReleasePointer(now)
	}
}

// handleCursorPos handles mouse movement for dragging.
func (eh *EventHandlers) handleCursorPos(xpos, ypos float64) {
	eh.cursor = geom.MakePoint(xpos, ypos)
	eh.application.MovePointer(eh.cursor, time.Now())
}

// center returns the middle of the window, in window points.
func (eh *EventHandlers) center() geom.Point {
	size := eh.application.View.Size()
	return geom.MakePoint(size.W/2, size.H/2)
}
