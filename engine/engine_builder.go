package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-materials/engine/profiler"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler, for example to log through a different handler.
//
// Parameters:
//   - p: the profiler ticked once per frame while profiling is enabled
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithWindow sets the window whose events the loop polls.
// The loop ends when the window stops running.
//
// Parameters:
//   - w: the event source, usually a window.Window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w EventSource) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithDispatcher registers a queue drained at the start of every iteration, such as a loader.Manager.
//
// Parameters:
//   - d: the dispatcher
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithDispatcher(d Dispatcher) EngineBuilderOption {
	return func(e *engine) {
		if d != nil {
			e.dispatchers = append(e.dispatchers, d)
		}
	}
}

// WithFrameCallback registers the function called once per loop iteration.
//
// Parameters:
//   - callback: function receiving the time since the previous iteration in seconds
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameCallback(callback func(deltaTime float32)) EngineBuilderOption {
	return func(e *engine) {
		e.frameCallback = callback
	}
}

// WithFrameLimit sets an optional frame rate cap in frames per second.
// Pass 0 to uncap the loop (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.frameLimit = frameDuration(fps)
	}
}

// withClock replaces the time source. Used by tests.
func withClock(clock func() time.Time) EngineBuilderOption {
	return func(e *engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}
