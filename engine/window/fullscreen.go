package window

import (
	"errors"
	"fmt"
)

// ErrFullscreenUnsupported is returned by a FullscreenHost when the requested mode is not available.
var ErrFullscreenUnsupported = errors.New("fullscreen mode unsupported")

// FullscreenHost exposes the fullscreen capabilities of a display surface.
// RequestFullscreen is the preferred capability and RequestBorderlessFullscreen the fallback.
type FullscreenHost interface {
	// IsFullscreen reports whether the surface currently covers the display.
	//
	// Returns:
	//   - bool: true when in either fullscreen mode
	IsFullscreen() bool

	// RequestFullscreen enters exclusive fullscreen on the current monitor.
	//
	// Returns:
	//   - error: ErrFullscreenUnsupported if no monitor mode is available
	RequestFullscreen() error

	// RequestBorderlessFullscreen resizes the window to cover the monitor work area without decorations.
	//
	// Returns:
	//   - error: ErrFullscreenUnsupported if no monitor is available
	RequestBorderlessFullscreen() error

	// ExitFullscreen restores the windowed position and size saved when fullscreen was entered.
	//
	// Returns:
	//   - error: error if the window could not be restored
	ExitFullscreen() error
}

// ToggleFullscreen exits fullscreen when the host is fullscreen, otherwise requests it.
// The preferred capability is tried first and the fallback is used only when the preferred
// one reports ErrFullscreenUnsupported.
//
// Parameters:
//   - host: the surface to toggle
//
// Returns:
//   - error: error if neither capability could enter fullscreen or exiting failed
func ToggleFullscreen(host FullscreenHost) error {
	if host.IsFullscreen() {
		return host.ExitFullscreen()
	}
	err := host.RequestFullscreen()
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrFullscreenUnsupported) {
		return fmt.Errorf("failed to request fullscreen: %w", err)
	}
	if err := host.RequestBorderlessFullscreen(); err != nil {
		return fmt.Errorf("failed to request borderless fullscreen: %w", err)
	}
	return nil
}
