package profiler

import (
	"log/slog"
	"runtime"
	"time"
)

// ProfilerBuilderOption is a functional option for configuring a Profiler.
type ProfilerBuilderOption func(*Profiler)

// WithLogger sets the logger the statistics are written to. A nil logger is ignored.
//
// Parameters:
//   - logger: the destination logger
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) ProfilerBuilderOption {
	return func(p *Profiler) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithInterval sets how often statistics are logged. Non-positive values are ignored.
//
// Parameters:
//   - interval: the logging interval (default 1s)
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithInterval(interval time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// withClock replaces the time source. Used by tests.
func withClock(clock func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.clock = clock
	}
}

// withMemStats replaces the memory statistics source. Used by tests.
func withMemStats(read func(*runtime.MemStats)) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.readMemStats = read
	}
}
