package window

// WindowBuilderOption is a functional option for configuring a visWindow.
// Use the With* functions to create options.
type WindowBuilderOption func(w *visWindow)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *visWindow) {
		w.title = title
	}
}

// WithWidth sets the initial window width.
//
// Parameters:
//   - width: initial width in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithWidth(width int) WindowBuilderOption {
	return func(w *visWindow) {
		w.width = width
	}
}

// WithHeight sets the initial window height.
//
// Parameters:
//   - height: initial height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithHeight(height int) WindowBuilderOption {
	return func(w *visWindow) {
		w.height = height
	}
}

// WithFullscreen requests a fullscreen window on the primary monitor at its
// native video mode.
//
// Parameters:
//   - fullscreen: if true, create the window fullscreen
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithFullscreen(fullscreen bool) WindowBuilderOption {
	return func(w *visWindow) {
		w.fullscreen = fullscreen
	}
}
