package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-materials/engine/profiler"
)

// ErrAlreadyRunning is returned by Run when another Run call has not returned yet.
var ErrAlreadyRunning = errors.New("engine is already running")

// errQuit is the cancellation cause set by Quit.
var errQuit = errors.New("engine quit")

// EventSource is the part of a window the loop drives.
type EventSource interface {
	PollEvents()
	IsRunning() bool
}

// Dispatcher drains work queued for the loop goroutine, such as loader completions.
type Dispatcher interface {
	Dispatch() int
}

// engine implements the Engine interface.
// Every iteration of the loop runs on the goroutine that called Run.
type engine struct {
	mu *sync.Mutex

	running bool
	cancel  context.CancelCauseFunc

	window      EventSource
	dispatchers []Dispatcher

	profiler         *profiler.Profiler
	profilingEnabled bool

	frameCallback func(deltaTime float32)
	frameLimit    time.Duration // minimum frame duration; 0 = uncapped

	clock func() time.Time
}

// Engine is the main entry point for the engine.
// It owns the frame loop: one iteration per display refresh, never overlapping.
type Engine interface {
	// Window returns the event source the loop polls.
	//
	// Returns:
	//   - EventSource: the window, or nil if none was configured
	Window() EventSource

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetFrameCallback registers the function called once per loop iteration, after window
	// events are polled and queued work is dispatched.
	//
	// Parameters:
	//   - callback: function receiving the time since the previous iteration in seconds
	SetFrameCallback(callback func(deltaTime float32))

	// SetFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetFrameLimit(fps float64)

	// AddDispatcher registers a queue drained at the start of every iteration.
	//
	// Parameters:
	//   - d: the dispatcher
	AddDispatcher(d Dispatcher)

	// Run blocks in the frame loop until ctx is cancelled, Quit is called or the window stops running.
	//
	// Parameters:
	//   - ctx: cancels the loop
	//
	// Returns:
	//   - error: ctx.Err() if the context ended the loop, ErrAlreadyRunning on a concurrent call, nil otherwise
	Run(ctx context.Context) error

	// Quit stops a running loop after its current iteration.
	// Safe to call multiple times and from any goroutine.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (window, profiling, frame limit, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:    &sync.Mutex{},
		clock: time.Now,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.profiler == nil {
		e.profiler = profiler.NewProfiler()
	}

	return e
}

func (e *engine) Window() EventSource {
	return e.window
}

func (e *engine) EnableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = false
}

func (e *engine) SetFrameCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.frameCallback = callback
}

func (e *engine) SetFrameLimit(fps float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.frameLimit = frameDuration(fps)
}

func (e *engine) AddDispatcher(d Dispatcher) {
	if d == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dispatchers = append(e.dispatchers, d)
}

func (e *engine) Run(ctx context.Context) error {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return ErrAlreadyRunning
	}
	ctx, cancel := context.WithCancelCause(ctx)
	e.running = true
	e.cancel = cancel
	e.mu.Unlock()

	defer func() {
		cancel(nil)
		e.mu.Lock()
		e.running = false
		e.cancel = nil
		e.mu.Unlock()
	}()

	last := e.clock()
	for {
		if ctx.Err() != nil {
			return e.runErr(ctx)
		}

		if e.window != nil {
			e.window.PollEvents()
			if !e.window.IsRunning() {
				return nil
			}
		}

		e.mu.Lock()
		dispatchers := e.dispatchers
		callback := e.frameCallback
		profiling := e.profilingEnabled
		limit := e.frameLimit
		e.mu.Unlock()

		for _, d := range dispatchers {
			d.Dispatch()
		}

		start := e.clock()
		dt := float32(start.Sub(last).Seconds())
		last = start

		if callback != nil {
			callback(dt)
		}

		if profiling {
			e.profiler.Tick()
		}

		if limit > 0 {
			if remaining := limit - e.clock().Sub(start); remaining > 0 {
				t := time.NewTimer(remaining)
				select {
				case <-ctx.Done():
					t.Stop()
					return e.runErr(ctx)
				case <-t.C:
				}
			}
		}
	}
}

// runErr reports a stop requested through Quit as a clean exit.
func (e *engine) runErr(ctx context.Context) error {
	if errors.Is(context.Cause(ctx), errQuit) {
		return nil
	}
	return ctx.Err()
}

func (e *engine) Quit() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		e.cancel(errQuit)
	}
}

// frameDuration converts a frame rate to a frame duration, 0 for uncapped.
func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
