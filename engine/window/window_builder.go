package window

// WindowBuilderOption is a functional option for configuring an engineWindow.
// Use the With* functions to create options.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithMinSize sets the minimum allowed window size.
//
// Parameters:
//   - minWidth: minimum width in screen coordinates
//   - minHeight: minimum height in screen coordinates
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMinSize(minWidth, minHeight int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minWidth = minWidth
		w.minHeight = minHeight
	}
}

// WithWidth sets the initial window width.
//
// Parameters:
//   - width: initial width in screen coordinates
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithWidth(width int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.width = width
	}
}

// WithHeight sets the initial window height.
//
// Parameters:
//   - height: initial height in screen coordinates
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithHeight(height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.height = height
	}
}

// WithFullscreen opens the window in fullscreen mode when enabled.
//
// Parameters:
//   - enabled: whether to enter fullscreen immediately after creation
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithFullscreen(enabled bool) WindowBuilderOption {
	return func(w *engineWindow) {
		w.fullscreenOnStart = enabled
	}
}

// WithDoubleClickDetector overrides the detector used to recognize double-clicks.
//
// Parameters:
//   - d: the detector to use
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithDoubleClickDetector(d DoubleClickDetector) WindowBuilderOption {
	return func(w *engineWindow) {
		w.doubleClick = d
	}
}
