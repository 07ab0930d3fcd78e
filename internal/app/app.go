// Package app is the demo host of the paged viewer: a generated publication
// shown in a window, with pointer input driving the engine's scroll and zoom
// handling.
package app

import (
	"fmt"
	"log"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/irfansharif/verso/internal/geom"
	"github.com/irfansharif/verso/internal/indexset"
	"github.com/irfansharif/verso/internal/palette"
	"github.com/irfansharif/verso/internal/render"
	"github.com/irfansharif/verso/internal/verso"
)

// zoomStep is the relative scale change of one scroll wheel notch.
const zoomStep = 0.15

// App encapsulates the main application state and logic.
type App struct {
	Window      *glfw.Window
	Renderer    *render.Renderer
	Verso       *verso.Verso
	Publication *Publication
	View        *View

	drag      Drag
	panning   bool
	panCursor geom.Point

	current indexset.Set
	jumping bool // an animated jump to target is under way
	target  int
}

// NewApp creates a new application instance. The window and renderer may be
// nil, in which case nothing is drawn.
func NewApp(window *glfw.Window, renderer *render.Renderer, pub *Publication, view *View) *App {
	app := &App{
		Window:      window,
		Renderer:    renderer,
		Publication: pub,
		View:        view,
	}
	app.Verso = verso.New(pub, pub.PreloadOptions(verso.Options{
		ZoomBackgroundColor: pub.ZoomBackground,
		SpreadOverlay:       NewSpineOverlay,
	}))
	app.Verso.SetDelegate(verso.DelegateFuncs{
		OnCurrentPagesChanged: func(c verso.IndexChange) { app.current = c.Pages },
		OnActivePagesChanged: func(c verso.IndexChange) {
			log.Printf("showing pages %s", c.Pages)
		},
		OnZoomEnded: func(e verso.ZoomEvent) {
			log.Printf("zoomed pages %s to %.2fx", e.Pages, e.Scale)
		},
	})
	return app
}

// Start lays the publication out in the window.
func (app *App) Start() {
	app.Verso.Attach(app.View.Size())
}

// Resize relayouts for a new window size.
func (app *App) Resize(windowW, windowH, framebufferW, framebufferH int) {
	app.View.SetSize(windowW, windowH, framebufferW)
	app.Verso.Layout(app.View.Size())
	if app.Renderer != nil {
		app.Renderer.SetView(framebufferW, framebufferH, app.View.PixelRatio)
	}
}

// PressPointer starts dragging the pages, or panning them while zoomed in.
func (app *App) PressPointer(cursor geom.Point, now time.Time) {
	if sv := app.Verso.ScrollView(); !sv.ScrollEnabled {
		app.panning, app.panCursor = true, cursor
		return
	}
	app.jumping = false
	app.drag.Begin(cursor, app.scrollOffset(), now)
	app.Verso.BeginDragging()
}

// MovePointer follows the pointer with the content.
func (app *App) MovePointer(cursor geom.Point, now time.Time) {
	switch {
	case app.panning:
		app.Verso.PanZoomBy(app.panCursor.Sub(cursor))
		app.panCursor = cursor
	case app.drag.Active():
		app.Verso.DragTo(app.drag.Move(cursor, now))
	}
}

// ReleasePointer lets go of the content, flinging it with the pointer's
// velocity.
func (app *App) ReleasePointer(now time.Time) {
	switch {
	case app.panning:
		app.panning = false
	case app.drag.Active():
		app.Verso.EndDragging(app.drag.End(now))
	}
}

// Zoom zooms by the given number of scroll wheel notches about the cursor.
func (app *App) Zoom(notches float64, cursor geom.Point) {
	z := app.Verso.ZoomView()
	anchor := cursor.Sub(z.Frame.Origin().Sub(app.scrollOffset()))

	app.Verso.BeginZooming()
	app.Verso.ZoomTo(z.Scale*(1+notches*zoomStep), anchor)
	app.Verso.EndZooming()
}

// DoubleClick toggles between fitting the pages and zooming in on the cursor.
func (app *App) DoubleClick(cursor geom.Point) {
	z := app.Verso.ZoomView()
	app.Verso.DoubleTap(cursor.Sub(z.Frame.Origin().Sub(app.scrollOffset())))
}

// Step jumps by the given number of spreads from the current one.
func (app *App) Step(spreads int) {
	config, ok := app.Verso.SpreadConfiguration()
	if !ok {
		return
	}
	current, ok := app.Verso.CurrentSpreadIndex()
	if !ok {
		return
	}
	if app.jumping && app.Verso.ScrollView().Animating() {
		// The current spread only updates once the jump lands.
		current = app.target
	}
	target := current + spreads
	if target < 0 || target >= config.SpreadCount() {
		return
	}
	if first, ok := config.PageIndexesForSpread(target).First(); ok {
		app.Jump(first)
	}
}

// Jump scrolls to the spread showing the given page, animated.
func (app *App) Jump(pageIndex int) {
	config, ok := app.Verso.SpreadConfiguration()
	if !ok {
		return
	}
	target, ok := config.SpreadIndexForPage(pageIndex)
	if !ok {
		return
	}
	app.jumping, app.target = true, target
	app.Verso.JumpToPage(pageIndex, true /* animated */)
}

// Recolor repaints the loaded pages with the palette of another seed.
func (app *App) Recolor(seed int64) {
	app.Publication.Palette = palette.New(seed)
	app.Verso.ReconfigureVisiblePages()
}

// Reload discards every page view and lays the publication out again.
func (app *App) Reload() {
	app.Verso.ReloadPages()
}

// Tick advances the engine to now and, if there is a renderer, uploads the
// resulting scene.
func (app *App) Tick(now time.Time) {
	app.Verso.Tick(now)
	if app.Renderer != nil {
		app.Renderer.Prepare(Scene(app.Verso))
	}
}

// Title describes what is on screen.
func (app *App) Title() string {
	total := app.Publication.TotalPageCount()
	if app.current.Empty() {
		return fmt.Sprintf("Verso (%d pages)", total)
	}
	first, _ := app.current.First()
	last, _ := app.current.Last()
	pages := fmt.Sprintf("page %d", first+1)
	if last != first {
		pages = fmt.Sprintf("pages %d-%d", first+1, last+1)
	}
	z := app.Verso.ZoomView()
	return fmt.Sprintf("Verso (%s of %d, %.0f%%)", pages, total, z.Scale*100)
}

func (app *App) scrollOffset() geom.Point {
	sv := app.Verso.ScrollView()
	return sv.Offset()
}
