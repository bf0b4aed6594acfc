package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwWindow holds the GLFW-specific window state.
type glfwWindow struct {
	parent  *engineWindow
	window  *glfw.Window
	running bool

	// borderless is set while the window covers the monitor work area without decorations.
	borderless bool

	// saved windowed placement, restored by ExitFullscreen.
	savedX, savedY, savedW, savedH int
}

// newPlatformWindow creates the GLFW window with input callbacks and stores it as the internal window.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
func newPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	// WebGPU provides its own graphics API, so disable OpenGL context creation.
	// Reference: https://www.glfw.org/docs/latest/window_guide.html#window_hints_ctx
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create GLFW window: %w", err)
	}
	win.SetSizeLimits(w.minWidth, w.minHeight, glfw.DontCare, glfw.DontCare)

	gw := &glfwWindow{
		parent:  w,
		window:  win,
		running: true,
	}
	w.internalWindow = gw

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetKeyCallback
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		w.handleKey(uint32(key), uint32(mods), action != glfw.Release)
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetScrollCallback
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		if w.onScroll != nil {
			w.onScroll(float32(yoff))
		}
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetMouseButtonCallback
	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		xpos, ypos := win.GetCursorPos()
		switch action {
		case glfw.Press:
			w.handleMouseDown(int(button), float32(xpos), float32(ypos))
		case glfw.Release:
			if w.onMouseUp != nil {
				w.onMouseUp(int(button), float32(xpos), float32(ypos))
			}
		}
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetCursorPosCallback
	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		if w.onMouseMove != nil {
			w.onMouseMove(float32(xpos), float32(ypos))
		}
	})

	// Use framebuffer size callback for pixel-accurate resize events.
	// On high-DPI displays (e.g., macOS Retina), framebuffer size differs from window size.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetFramebufferSizeCallback
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.mu.Lock()
		w.fbWidth = width
		w.fbHeight = height
		w.mu.Unlock()
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})

	fbWidth, fbHeight := win.GetFramebufferSize()
	w.fbWidth = fbWidth
	w.fbHeight = fbHeight

	return nil
}

// platformGetSurfaceDescriptor creates a platform-appropriate wgpu.SurfaceDescriptor from the GLFW window.
// Uses the wgpuglfw bridge package which has per-platform implementations (Windows, X11, Wayland, macOS).
//
// Reference: https://pkg.go.dev/github.com/cogentcore/webgpu/wgpuglfw#GetSurfaceDescriptor
func platformGetSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(gw.window)
}

// platformIsRunningCheck returns whether the GLFW window is still active.
// Returns false if the internal window is nil, the running flag is cleared, or GLFW reports ShouldClose.
func platformIsRunningCheck(w *engineWindow) bool {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok {
		return false
	}
	return gw.running && !gw.window.ShouldClose()
}

// platformCloseWindow destroys the GLFW window and terminates the GLFW library.
// Returns an error if the internal window has not been initialized.
func platformCloseWindow(w *engineWindow) error {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok {
		return fmt.Errorf("window is not initialized")
	}
	gw.running = false
	gw.window.SetShouldClose(true)
	gw.window.Destroy()
	w.internalWindow = nil
	glfw.Terminate()
	return nil
}

// platformProcessMessages polls GLFW for pending events without blocking.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#PollEvents
func platformProcessMessages(w *engineWindow) bool {
	glfw.PollEvents()
	return platformIsRunningCheck(w)
}

func platformSetTitle(w *engineWindow, title string) {
	if gw, ok := w.internalWindow.(*glfwWindow); ok {
		gw.window.SetTitle(title)
	}
}

func platformDisplaySize(w *engineWindow) (int, int) {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok {
		return 0, 0
	}
	return gw.window.GetSize()
}

func platformContentScale(w *engineWindow) float32 {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok {
		return 1
	}
	x, _ := gw.window.GetContentScale()
	if x <= 0 {
		return 1
	}
	return x
}

func platformIsFullscreen(w *engineWindow) bool {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok {
		return false
	}
	return gw.window.GetMonitor() != nil || gw.borderless
}

// savePlacement records the windowed position and size so ExitFullscreen can restore it.
func (gw *glfwWindow) savePlacement() {
	gw.savedX, gw.savedY = gw.window.GetPos()
	gw.savedW, gw.savedH = gw.window.GetSize()
}

// platformRequestFullscreen switches the window to exclusive mode on the primary monitor at its current video mode.
//
// Reference: https://www.glfw.org/docs/latest/window_guide.html#window_full_screen
func platformRequestFullscreen(w *engineWindow) error {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok {
		return fmt.Errorf("window is not initialized")
	}
	monitor := glfw.GetPrimaryMonitor()
	if monitor == nil {
		return ErrFullscreenUnsupported
	}
	mode := monitor.GetVideoMode()
	if mode == nil {
		return ErrFullscreenUnsupported
	}
	gw.savePlacement()
	gw.window.SetMonitor(monitor, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
	return nil
}

// platformRequestBorderless covers the primary monitor work area with an undecorated window.
//
// Reference: https://www.glfw.org/docs/latest/monitor_guide.html#monitor_workarea
func platformRequestBorderless(w *engineWindow) error {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok {
		return fmt.Errorf("window is not initialized")
	}
	monitor := glfw.GetPrimaryMonitor()
	if monitor == nil {
		return ErrFullscreenUnsupported
	}
	x, y, width, height := monitor.GetWorkarea()
	if width <= 0 || height <= 0 {
		return ErrFullscreenUnsupported
	}
	gw.savePlacement()
	gw.window.SetAttrib(glfw.Decorated, glfw.False)
	gw.window.SetPos(x, y)
	gw.window.SetSize(width, height)
	gw.borderless = true
	return nil
}

func platformExitFullscreen(w *engineWindow) error {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok {
		return fmt.Errorf("window is not initialized")
	}
	if gw.borderless {
		gw.window.SetAttrib(glfw.Decorated, glfw.True)
		gw.window.SetPos(gw.savedX, gw.savedY)
		gw.window.SetSize(gw.savedW, gw.savedH)
		gw.borderless = false
		return nil
	}
	if gw.window.GetMonitor() != nil {
		gw.window.SetMonitor(nil, gw.savedX, gw.savedY, gw.savedW, gw.savedH, 0)
	}
	return nil
}
