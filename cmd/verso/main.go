package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/irfansharif/verso/internal/app"
	"github.com/irfansharif/verso/internal/palette"
	"github.com/irfansharif/verso/internal/render"
)

const logFlags = log.Ltime | log.Lshortfile

const defaultPageCount = 24

var runtimeLogger *log.Logger = log.New(io.Discard, "", 0)

func init() {
	// OpenGL contexts are tied to specific OS threads - let's pin to just one.
	runtime.LockOSThread()
	log.SetFlags(logFlags)

	if os.Getenv("VERSO_DEBUG_RUNTIME") == "1" {
		runtimeLogger = log.New(os.Stdout, "[runtime] ", log.Ltime|log.Lmsgprefix)
	}
}

func makeTitle(title string, fps float64, stats render.Stats) string {
	return fmt.Sprintf("%s - %.1f FPS, %d quads, %d triangles, %.2fms/prepare",
		title, fps, stats.Quads, stats.Triangles, stats.LastPrepareTimeMs)
}

func main() {
	flag.Parse()

	if err := glfw.Init(); err != nil {
		log.Fatalf("Failed to initialize GLFW: %v", err)
	}
	defer glfw.Terminate()

	// Configure GLFW window hints - use OpenGL 4.1.
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)

	window, err := glfw.CreateWindow(
		1280, // width
		800,  // height
		"Verso",
		nil, nil,
	)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		log.Fatalf("Failed to initialize OpenGL: %v", err)
	}

	renderer, err := render.NewRenderer()
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer renderer.Cleanup()

	seed := envInt64("VERSO_SEED", time.Now().Unix())
	pub := app.NewPublication(envInt("VERSO_PAGES", defaultPageCount), seed, os.Getenv("VERSO_OUTRO") == "1")
	ww, wh := window.GetSize()
	fw, fh := window.GetFramebufferSize()
	application := app.NewApp(window, renderer, pub, app.NewView(ww, wh, fw))
	renderer.SetView(fw, fh, application.View.PixelRatio)
	application.Start()

	// Initialize event handlers.
	eventHandlers := NewEventHandlers(application, seed)

	backdrop := palette.ToColorful(pub.Palette.Backdrop)
	frameCount := 0
	lastFPSUpdate := time.Now()

	// Main loop.
	for !application.Window.ShouldClose() {
		eventHandlers.handleContinuousStepping()
		application.Tick(time.Now())

		w, h := application.Window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(float32(backdrop.R), float32(backdrop.G), float32(backdrop.B), 1)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		application.Renderer.Draw()
		application.Window.SwapBuffers()
		glfw.PollEvents()

		frameCount++
		now := time.Now()
		if now.Sub(lastFPSUpdate) >= time.Second {
			fps := float64(frameCount) / now.Sub(lastFPSUpdate).Seconds()
			frameCount = 0
			lastFPSUpdate = now

			stats := application.Renderer.Stats()
			application.Window.SetTitle(makeTitle(application.Title(), fps, stats))

			runtimeLogger.Printf("%.1f FPS, %d quads, %d triangles, %.2f µs/draw, %.2f ms/prepare, %.1f KiB GPU (%d grows), pages %s loaded",
				fps, stats.Quads, stats.Triangles, stats.LastDrawTimeUs, stats.LastPrepareTimeMs,
				float64(stats.GPUBytes)/1024.0, stats.BufferGrows, application.Verso.LoadedPageIndexes())
		}
	}
}

func envInt(name string, def int) int {
	return int(envInt64(name, int64(def)))
}

func envInt64(name string, def int64) int64 {
	s := os.Getenv(name)
	if s == "" {
		return def
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		log.Fatalf("Invalid %s value '%s': %v", name, s, err)
	}
	return v
}
