package demo

import (
	"io/fs"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-materials/engine/timer"
)

// AppBuilderOption is a functional option for configuring an App via NewApp.
type AppBuilderOption func(*App)

// WithLogger sets the logger for loader events, frame errors and presets. A nil logger is ignored.
//
// Parameters:
//   - logger: the destination logger
//
// Returns:
//   - AppBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) AppBuilderOption {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithWindowFactory replaces the GLFW window.
//
// Parameters:
//   - f: opens the window; errors wrapping window.ErrSurfaceNotFound trigger the alert
//
// Returns:
//   - AppBuilderOption: option function to apply
func WithWindowFactory(f WindowFactory) AppBuilderOption {
	return func(a *App) {
		if f != nil {
			a.openWindow = f
		}
	}
}

// WithRendererFactory replaces the wgpu renderer.
//
// Parameters:
//   - f: creates the renderer for the opened window
//
// Returns:
//   - AppBuilderOption: option function to apply
func WithRendererFactory(f RendererFactory) AppBuilderOption {
	return func(a *App) {
		if f != nil {
			a.newRenderer = f
		}
	}
}

// WithAlert sets the function that shows fatal messages to the user.
// Defaults to logging the message at error level.
//
// Parameters:
//   - alert: receives the message
//
// Returns:
//   - AppBuilderOption: option function to apply
func WithAlert(alert func(message string)) AppBuilderOption {
	return func(a *App) {
		a.alert = alert
	}
}

// WithAssetFS reads textures from fsys instead of Config.AssetRoot.
//
// Parameters:
//   - fsys: file system holding the textures/ tree
//
// Returns:
//   - AppBuilderOption: option function to apply
func WithAssetFS(fsys fs.FS) AppBuilderOption {
	return func(a *App) {
		a.assets = fsys
	}
}

// WithClock sets the time source of the animation timer.
//
// Parameters:
//   - clock: the time source; nil keeps time.Now
//
// Returns:
//   - AppBuilderOption: option function to apply
func WithClock(clock timer.Clock) AppBuilderOption {
	return func(a *App) {
		if clock != nil {
			a.clock = clock
		}
	}
}
