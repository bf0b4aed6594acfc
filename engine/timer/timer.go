// Package timer tracks frame time for the render loop.
package timer

import (
	"sync"
	"time"
)

// Clock returns the current time. Replaced in tests.
type Clock func() time.Time

// Timer measures elapsed and delta time between calls to Update.
// Elapsed and Delta report the state captured by the most recent Update, so reading
// Elapsed before calling Update in a frame yields the previous frame's value.
type Timer interface {
	// Update samples the clock and advances the elapsed and delta values.
	Update()

	// Elapsed returns the seconds between the last Reset (or construction) and the last Update.
	//
	// Returns:
	//   - float64: elapsed seconds, 0 before the first Update
	Elapsed() float64

	// Delta returns the seconds between the last two calls to Update.
	//
	// Returns:
	//   - float64: delta seconds, 0 before the second Update
	Delta() float64

	// Reset restarts the timer at the current clock reading.
	Reset()
}

type timer struct {
	mu *sync.Mutex

	clock    Clock
	start    time.Time
	previous time.Time
	current  time.Time
}

var _ Timer = &timer{}

// NewTimer creates a Timer reading from the given clock.
// A nil clock falls back to time.Now.
//
// Parameters:
//   - clock: the time source
//
// Returns:
//   - Timer: the new timer, started at the current clock reading
func NewTimer(clock Clock) Timer {
	if clock == nil {
		clock = time.Now
	}
	t := &timer{
		mu:    &sync.Mutex{},
		clock: clock,
	}
	t.Reset()
	return t
}

func (t *timer) Update() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.previous = t.current
	t.current = t.clock()
}

func (t *timer) Elapsed() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.current.Sub(t.start).Seconds()
}

func (t *timer) Delta() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.current.Sub(t.previous).Seconds()
}

func (t *timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock()
	t.start = now
	t.previous = now
	t.current = now
}
