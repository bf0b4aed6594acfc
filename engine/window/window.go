package window

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cogentcore/webgpu/wgpu"
)

// ErrSurfaceNotFound is returned when no drawable surface could be opened, either because the
// windowing system failed to initialize or because the window itself could not be created.
var ErrSurfaceNotFound = errors.New("surface not found")

// Window provides platform windowing and input event handling.
// Wraps platform-specific window implementations with a common interface.
type Window interface {
	FullscreenHost

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new framebuffer width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving scroll delta (positive = up/zoom in, negative = down/zoom out)
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback sets the callback for key press and repeat events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code and the modifier bits (see common.Mod*)
	SetKeyDownCallback(callback func(keyCode uint32, mods uint32))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyUpCallback(callback func(keyCode uint32))

	// SetMouseDownCallback sets the callback for mouse button presses.
	//
	// Parameters:
	//   - callback: function receiving the button (see common.MouseButton*) and the cursor position
	SetMouseDownCallback(callback func(button int, x, y float32))

	// SetMouseUpCallback sets the callback for mouse button releases.
	//
	// Parameters:
	//   - callback: function receiving the button (see common.MouseButton*) and the cursor position
	SetMouseUpCallback(callback func(button int, x, y float32))

	// SetMouseMoveCallback sets the callback for mouse movement.
	//
	// Parameters:
	//   - callback: function receiving the cursor position in window coordinates
	SetMouseMoveCallback(callback func(x, y float32))

	// SetDoubleClickCallback sets the callback fired when two left-button presses are close
	// enough in time and space to count as a double-click.
	//
	// Parameters:
	//   - callback: function receiving the cursor position of the second press
	SetDoubleClickCallback(callback func(x, y float32))

	// SetTitle replaces the text displayed in the title bar.
	//
	// Parameters:
	//   - title: the new title
	SetTitle(title string)

	// DisplaySize returns the logical size of the client area, before any device pixel ratio is applied.
	//
	// Returns:
	//   - int: logical width
	//   - int: logical height
	DisplaySize() (int, int)

	// FramebufferSize returns the size of the backing framebuffer in pixels.
	//
	// Returns:
	//   - int: width in pixels
	//   - int: height in pixels
	FramebufferSize() (int, int)

	// DevicePixelRatio returns the ratio between framebuffer pixels and logical units.
	//
	// Returns:
	//   - float32: the device pixel ratio (1 on standard displays)
	DevicePixelRatio() float32

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// PollEvents processes pending window events without blocking and dispatches callbacks.
	PollEvents()

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	mu *sync.Mutex

	// title is the window title displayed in the title bar.
	title string

	// minWidth and minHeight bound the window size during resize.
	minWidth, minHeight int

	// width and height are the requested logical size of the window.
	width, height int

	// fbWidth and fbHeight are the current framebuffer size in pixels.
	fbWidth, fbHeight int

	// fullscreenOnStart requests exclusive fullscreen as soon as the window exists.
	fullscreenOnStart bool

	// doubleClick turns raw presses into double-click events.
	doubleClick DoubleClickDetector

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onResize      func(width, height int)
	onScroll      func(delta float32)
	onKeyDown     func(keyCode uint32, mods uint32)
	onKeyUp       func(keyCode uint32)
	onMouseDown   func(button int, x, y float32)
	onMouseUp     func(button int, x, y float32)
	onMouseMove   func(x, y float32)
	onDoubleClick func(x, y float32)
}

var _ Window = &engineWindow{}

// NewWindow creates and opens a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the opened window
//   - error: an error wrapping ErrSurfaceNotFound if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		mu:        &sync.Mutex{},
		title:     "oxy-materials",
		minWidth:  320,
		minHeight: 200,
		width:     1280,
		height:    720,
	}
	for _, opt := range options {
		opt(w)
	}
	if w.doubleClick == nil {
		w.doubleClick = NewDoubleClickDetector(time.Now)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSurfaceNotFound, err)
	}
	if w.fullscreenOnStart {
		if err := ToggleFullscreen(w); err != nil {
			return w, fmt.Errorf("failed to enter fullscreen: %w", err)
		}
	}
	return w, nil
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32, mods uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SetMouseDownCallback(callback func(button int, x, y float32)) {
	w.onMouseDown = callback
}

func (w *engineWindow) SetMouseUpCallback(callback func(button int, x, y float32)) {
	w.onMouseUp = callback
}

func (w *engineWindow) SetMouseMoveCallback(callback func(x, y float32)) {
	w.onMouseMove = callback
}

func (w *engineWindow) SetDoubleClickCallback(callback func(x, y float32)) {
	w.onDoubleClick = callback
}

func (w *engineWindow) SetTitle(title string) {
	w.mu.Lock()
	w.title = title
	w.mu.Unlock()
	platformSetTitle(w, title)
}

func (w *engineWindow) DisplaySize() (int, int) {
	return platformDisplaySize(w)
}

func (w *engineWindow) FramebufferSize() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fbWidth, w.fbHeight
}

func (w *engineWindow) DevicePixelRatio() float32 {
	lw, _ := w.DisplaySize()
	fw, _ := w.FramebufferSize()
	if lw > 0 && fw > 0 {
		return float32(fw) / float32(lw)
	}
	return platformContentScale(w)
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) PollEvents() {
	platformProcessMessages(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) IsFullscreen() bool {
	return platformIsFullscreen(w)
}

func (w *engineWindow) RequestFullscreen() error {
	return platformRequestFullscreen(w)
}

func (w *engineWindow) RequestBorderlessFullscreen() error {
	return platformRequestBorderless(w)
}

func (w *engineWindow) ExitFullscreen() error {
	return platformExitFullscreen(w)
}

// handleKey forwards a key event to the key callbacks. Every key, Escape included, is
// delivered; what a key does is up to the application.
func (w *engineWindow) handleKey(keyCode, mods uint32, down bool) {
	if down {
		if w.onKeyDown != nil {
			w.onKeyDown(keyCode, mods)
		}
		return
	}
	if w.onKeyUp != nil {
		w.onKeyUp(keyCode)
	}
}

// handleMouseDown forwards a press to the mouse callback and feeds left presses to the double-click detector.
func (w *engineWindow) handleMouseDown(button int, x, y float32) {
	if w.onMouseDown != nil {
		w.onMouseDown(button, x, y)
	}
	if button != 0 {
		return
	}
	if w.doubleClick.Press(x, y) && w.onDoubleClick != nil {
		w.onDoubleClick(x, y)
	}
}
