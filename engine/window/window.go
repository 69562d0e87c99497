package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing, input event handling, and display
// detection for the visualizer.
// Wraps platform-specific window implementations with a common interface.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the window is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetKeyDownCallback sets the callback for key press events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetMouseDownCallback sets the callback for left mouse button presses.
	// Feeds the double-tap gesture recognizer.
	//
	// Parameters:
	//   - callback: function receiving mouse x, y position in pixels
	SetMouseDownCallback(callback func(x, y float64))

	// SetFocusCallback sets the callback for window focus changes. Focus
	// loss suspends the control loop; focus gain resumes it.
	//
	// Parameters:
	//   - callback: function receiving the new focus state
	SetFocusCallback(callback func(focused bool))

	// SetTitle updates the window title. The engine uses this as the
	// quality-transition notification surface.
	//
	// Parameters:
	//   - title: the new title text
	SetTitle(title string)

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// DisplayRefreshRate returns the primary display's refresh rate hint in
	// Hz, or 0 when detection is unavailable.
	DisplayRefreshRate() int

	// DisplaySize returns the primary display's dimensions in pixels, or
	// zeros when detection is unavailable.
	DisplaySize() (width, height int)

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	// Must be called from the thread running ProcessMessages.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// RequestClose asks the message loop to exit without destroying platform
	// resources. Safe to call from any goroutine.
	RequestClose()

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls the update callback each iteration.
	ProcessMessages()

	// Width returns the current window client area width in pixels.
	Width() int

	// Height returns the current window client area height in pixels.
	Height() int
}

// visWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type visWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// fullscreen requests a borderless fullscreen window on the primary
	// monitor.
	fullscreen bool

	// width is the current window client area width in pixels.
	width int

	// height is the current window client area height in pixels.
	height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// onUpdate is called each iteration of the message loop (if set).
	onUpdate func()

	// onResize is called when the window is resized.
	onResize func(width, height int)

	// onKeyDown is called when a key is pressed.
	onKeyDown func(keyCode uint32)

	// onMouseDown is called when the left mouse button is pressed.
	onMouseDown func(x, y float64)

	// onFocus is called when window focus changes.
	onFocus func(focused bool)
}

var _ Window = &visWindow{}

// NewWindow creates a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &visWindow{
		title:  "glimmer",
		width:  1280,
		height: 720,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func (w *visWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *visWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *visWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *visWindow) SetMouseDownCallback(callback func(x, y float64)) {
	w.onMouseDown = callback
}

func (w *visWindow) SetFocusCallback(callback func(focused bool)) {
	w.onFocus = callback
}

func (w *visWindow) SetTitle(title string) {
	w.title = title
	platformSetTitle(w, title)
}

func (w *visWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *visWindow) DisplayRefreshRate() int {
	return platformDisplayRefreshRate()
}

func (w *visWindow) DisplaySize() (int, int) {
	return platformDisplaySize()
}

func (w *visWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *visWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *visWindow) RequestClose() {
	platformRequestClose(w)
}

func (w *visWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *visWindow) Width() int {
	return w.width
}

func (w *visWindow) Height() int {
	return w.height
}
