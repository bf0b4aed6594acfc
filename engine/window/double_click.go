package window

import (
	"sync"
	"time"

	"github.com/chewxy/math32"
)

const (
	// DoubleClickInterval is the maximum time between two presses of a double-click.
	DoubleClickInterval = 500 * time.Millisecond

	// DoubleClickSlop is the maximum cursor travel, in window coordinates, between two presses of a double-click.
	DoubleClickSlop float32 = 4
)

// DoubleClickDetector turns a stream of button presses into double-click events.
type DoubleClickDetector interface {
	// Press records a button press at the given position.
	//
	// Parameters:
	//   - x: cursor x in window coordinates
	//   - y: cursor y in window coordinates
	//
	// Returns:
	//   - bool: true if this press completes a double-click
	Press(x, y float32) bool

	// Reset forgets any pending first press.
	Reset()
}

type doubleClickDetector struct {
	mu *sync.Mutex

	now      func() time.Time
	interval time.Duration
	slop     float32

	pending bool
	lastAt  time.Time
	lastX   float32
	lastY   float32
}

var _ DoubleClickDetector = &doubleClickDetector{}

// NewDoubleClickDetector creates a detector using DoubleClickInterval and DoubleClickSlop.
//
// Parameters:
//   - now: the time source, time.Now when nil
//
// Returns:
//   - DoubleClickDetector: the new detector
func NewDoubleClickDetector(now func() time.Time) DoubleClickDetector {
	if now == nil {
		now = time.Now
	}
	return &doubleClickDetector{
		mu:       &sync.Mutex{},
		now:      now,
		interval: DoubleClickInterval,
		slop:     DoubleClickSlop,
	}
}

func (d *doubleClickDetector) Press(x, y float32) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	at := d.now()
	if d.pending && at.Sub(d.lastAt) <= d.interval &&
		math32.Abs(x-d.lastX) <= d.slop && math32.Abs(y-d.lastY) <= d.slop {
		// a third press starts over
		d.pending = false
		return true
	}
	d.pending = true
	d.lastAt = at
	d.lastX, d.lastY = x, y
	return false
}

func (d *doubleClickDetector) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = false
}
