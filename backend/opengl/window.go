package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/view3d"
)

// windowConfig holds window creation settings.
type windowConfig struct {
	title         string
	width, height int
	vsync         bool
	msaa          int
	closeOnEscape bool
}

// WindowOption configures window creation.
type WindowOption func(*windowConfig)

// WithTitle sets the window title.
func WithTitle(title string) WindowOption {
	return func(c *windowConfig) { c.title = title }
}

// WithSize sets the initial window size in screen coordinates.
func WithSize(width, height int) WindowOption {
	return func(c *windowConfig) { c.width, c.height = width, height }
}

// WithVSync enables or disables vertical sync (enabled by default).
func WithVSync(enabled bool) WindowOption {
	return func(c *windowConfig) { c.vsync = enabled }
}

// WithMSAA requests multisampling with the given sample count.
func WithMSAA(samples int) WindowOption {
	return func(c *windowConfig) { c.msaa = samples }
}

// WithCloseOnEscape controls whether the Escape key closes the window
// (enabled by default).
func WithCloseOnEscape(enabled bool) WindowOption {
	return func(c *windowConfig) { c.closeOnEscape = enabled }
}

// Window owns a GLFW window with an OpenGL 4.1 core context and drives a
// set of RenderCallbacks through their lifecycle: OnInitialize once after
// the context is current, OnRenderFrame each frame, OnResize between
// frames when the framebuffer changes, OnTerminate once on shutdown.
//
// GLFW requires the main thread: callers must runtime.LockOSThread in an
// init function and call NewWindow and Run from that thread.
type Window struct {
	win       *glfw.Window
	lifecycle *view3d.Lifecycle
}

// NewWindow initializes GLFW and OpenGL and creates a window for the given
// callbacks. On error, everything initialized so far is torn down.
func NewWindow(cb view3d.RenderCallbacks, opts ...WindowOption) (*Window, error) {
	cfg := windowConfig{
		title:         "view3d",
		width:         800,
		height:        600,
		vsync:         true,
		closeOnEscape: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if cfg.msaa > 0 {
		glfw.WindowHint(glfw.Samples, cfg.msaa)
	}

	win, err := glfw.CreateWindow(cfg.width, cfg.height, cfg.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()
	if cfg.vsync {
		glfw.SwapInterval(1)
	}

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("gl init: %w", err)
	}

	w := &Window{
		win:       win,
		lifecycle: view3d.NewLifecycle(cb),
	}

	// Resizes are only recorded here; the lifecycle delivers the newest
	// size before the next frame, never mid-frame.
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.lifecycle.NotifyResize(width, height)
	})
	if cfg.closeOnEscape {
		win.SetKeyCallback(func(win *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
			if key == glfw.KeyEscape && action == glfw.Press {
				win.SetShouldClose(true)
			}
		})
	}

	return w, nil
}

// Close requests the window to close after the current frame.
func (w *Window) Close() {
	w.win.SetShouldClose(true)
}

// Run drives the render loop until the window closes or OnRenderFrame
// returns false, then terminates the lifecycle and tears down GLFW.
func (w *Window) Run() error {
	defer glfw.Terminate()
	defer w.win.Destroy()

	fbw, fbh := w.win.GetFramebufferSize()
	if err := w.lifecycle.Initialize(fbw, fbh); err != nil {
		return err
	}

	last := glfw.GetTime()
	for !w.win.ShouldClose() {
		glfw.PollEvents()

		now := glfw.GetTime()
		delta := float32(now - last)
		last = now

		more, err := w.lifecycle.Frame(delta)
		if err != nil {
			w.lifecycle.Terminate()
			return err
		}
		w.win.SwapBuffers()
		if !more {
			break
		}
	}
	return w.lifecycle.Terminate()
}
