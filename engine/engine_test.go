package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWindow struct {
	mu      sync.Mutex
	events  *[]string
	polls   int
	closeAt int
}

func (w *fakeWindow) PollEvents() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.polls++
	*w.events = append(*w.events, "poll")
}

func (w *fakeWindow) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeAt == 0 || w.polls < w.closeAt
}

type fakeDispatcher struct {
	events *[]string
}

func (d *fakeDispatcher) Dispatch() int {
	*d.events = append(*d.events, "dispatch")
	return 0
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func TestRunIterationOrder(t *testing.T) {
	var events []string
	win := &fakeWindow{events: &events, closeAt: 3}
	e := NewEngine(
		WithWindow(win),
		WithDispatcher(&fakeDispatcher{events: &events}),
		WithFrameCallback(func(float32) { events = append(events, "frame") }),
	)

	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, []string{
		"poll", "dispatch", "frame",
		"poll", "dispatch", "frame",
		"poll",
	}, events)
}

func TestRunReportsDeltaTime(t *testing.T) {
	var events []string
	clock := &fakeClock{now: time.Unix(100, 0)}
	var deltas []float32
	e := NewEngine(
		WithWindow(&fakeWindow{events: &events, closeAt: 4}),
		withClock(clock.Now),
		WithFrameCallback(func(dt float32) {
			deltas = append(deltas, dt)
			clock.now = clock.now.Add(16 * time.Millisecond)
		}),
	)

	require.NoError(t, e.Run(context.Background()))
	require.Len(t, deltas, 3)
	assert.InDelta(t, 0, deltas[0], 1e-6)
	assert.InDelta(t, 0.016, deltas[1], 1e-6)
	assert.InDelta(t, 0.016, deltas[2], 1e-6)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	frames := 0
	e := NewEngine(WithFrameCallback(func(float32) {
		frames++
		if frames == 5 {
			cancel()
		}
	}))

	err := e.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 5, frames)
}

func TestQuitIsCleanExit(t *testing.T) {
	var e Engine
	frames := 0
	e = NewEngine(WithFrameCallback(func(float32) {
		frames++
		if frames == 2 {
			e.Quit()
			e.Quit()
		}
	}))

	assert.NoError(t, e.Run(context.Background()))
	assert.Equal(t, 2, frames)

	// Quit outside Run is a no-op.
	e.Quit()
}

func TestRunRejectsConcurrentCall(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	e := NewEngine(WithFrameCallback(func(float32) {
		once.Do(func() { close(started) })
		<-release
	}))

	done := make(chan error, 1)
	go func() { done <- e.Run(context.Background()) }()
	<-started

	assert.ErrorIs(t, e.Run(context.Background()), ErrAlreadyRunning)

	e.Quit()
	close(release)
	assert.NoError(t, <-done)
}

func TestFrameLimitWaitIsCancellable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	e := NewEngine(
		WithFrameLimit(0.001),
		WithFrameCallback(func(float32) { cancel() }),
	)

	start := time.Now()
	assert.ErrorIs(t, e.Run(ctx), context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestFrameDuration(t *testing.T) {
	tests := []struct {
		fps  float64
		want time.Duration
	}{
		{0, 0},
		{-5, 0},
		{60, time.Second / 60},
		{144, 6944444 * time.Nanosecond},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, frameDuration(tt.fps), "fps %v", tt.fps)
	}
}

func TestSettersAndDispatchers(t *testing.T) {
	var events []string
	e := NewEngine()
	e.AddDispatcher(nil)
	e.AddDispatcher(&fakeDispatcher{events: &events})
	e.SetFrameLimit(30)
	e.EnableProfiler()
	e.DisableProfiler()

	impl := e.(*engine)
	assert.Len(t, impl.dispatchers, 1)
	assert.Equal(t, frameDuration(30), impl.frameLimit)
	assert.False(t, impl.profilingEnabled)
	assert.Nil(t, e.Window())

	e.SetFrameCallback(func(float32) { e.Quit() })
	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, []string{"dispatch"}, events)
}
