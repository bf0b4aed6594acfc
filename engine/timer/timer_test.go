package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestTimerReadThenUpdate(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	tm := NewTimer(clock.Now)

	// first frame reads zero
	assert.Equal(t, 0.0, tm.Elapsed())
	tm.Update()

	clock.Advance(500 * time.Millisecond)
	assert.Equal(t, 0.0, tm.Elapsed())
	tm.Update()
	assert.InDelta(t, 0.5, tm.Elapsed(), 1e-6)
	assert.InDelta(t, 0.5, tm.Delta(), 1e-6)

	clock.Advance(250 * time.Millisecond)
	tm.Update()
	assert.InDelta(t, 0.75, tm.Elapsed(), 1e-6)
	assert.InDelta(t, 0.25, tm.Delta(), 1e-6)
}

func TestTimerReset(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	tm := NewTimer(clock.Now)

	clock.Advance(3 * time.Second)
	tm.Update()
	assert.InDelta(t, 3, tm.Elapsed(), 1e-6)

	tm.Reset()
	assert.Equal(t, 0.0, tm.Elapsed())
	assert.Equal(t, 0.0, tm.Delta())
}

func TestTimerNilClock(t *testing.T) {
	tm := NewTimer(nil)
	tm.Update()
	assert.GreaterOrEqual(t, tm.Elapsed(), 0.0)
}

func TestTimerKeepsPrecisionInLongSessions(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	tm := NewTimer(clock.Now)

	clock.Advance(30 * 24 * time.Hour)
	tm.Update()
	clock.Advance(16 * time.Millisecond)
	tm.Update()
	assert.InDelta(t, 30*24*3600+0.016, tm.Elapsed(), 1e-9)
	assert.InDelta(t, 0.016, tm.Delta(), 1e-9)
}
