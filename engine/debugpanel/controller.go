package debugpanel

import (
	"math"
	"sync"
)

// DefaultStepDivisions is the number of keyboard steps across a bounded range when no
// explicit step is set.
const DefaultStepDivisions = 100

// NumberController binds a float parameter to the panel. Setters return the controller
// so calls chain.
type NumberController interface {
	// Label returns the displayed name.
	//
	// Returns:
	//   - string: the label
	Label() string

	// Name replaces the displayed name.
	//
	// Parameters:
	//   - label: the new label
	//
	// Returns:
	//   - NumberController: the controller
	Name(label string) NumberController

	// Min sets the lower bound.
	//
	// Parameters:
	//   - v: the lower bound
	//
	// Returns:
	//   - NumberController: the controller
	Min(v float32) NumberController

	// Max sets the upper bound.
	//
	// Parameters:
	//   - v: the upper bound
	//
	// Returns:
	//   - NumberController: the controller
	Max(v float32) NumberController

	// Step sets the increment values are snapped to. Zero disables snapping.
	//
	// Parameters:
	//   - v: the step
	//
	// Returns:
	//   - NumberController: the controller
	Step(v float32) NumberController

	// OnChange registers fn to run after every value change made through the controller.
	//
	// Parameters:
	//   - fn: the change handler
	//
	// Returns:
	//   - NumberController: the controller
	OnChange(fn func(v float32)) NumberController

	// Bounds returns the configured range.
	//
	// Returns:
	//   - lo, hi: the bounds; -Inf and +Inf when unset
	Bounds() (lo, hi float32)

	// StepSize returns the explicit step, or zero when unset.
	//
	// Returns:
	//   - float32: the step
	StepSize() float32

	// Value reads the bound parameter.
	//
	// Returns:
	//   - float32: the current value
	Value() float32

	// SetValue snaps v to the step, clamps it to the bounds and writes it to the bound parameter.
	//
	// Parameters:
	//   - v: the requested value
	//
	// Returns:
	//   - float32: the value actually written
	SetValue(v float32) float32

	// Nudge moves the value by n keyboard steps.
	//
	// Parameters:
	//   - n: signed step count
	//
	// Returns:
	//   - float32: the value actually written
	Nudge(n int) float32
}

type numberController struct {
	mu *sync.Mutex

	label    string
	min      float32
	max      float32
	step     float32
	get      func() float32
	set      func(float32)
	onChange func(float32)
	changed  func()
}

var _ NumberController = &numberController{}

func newNumberController(label string, get func() float32, set func(float32), changed func()) *numberController {
	return &numberController{
		mu:      &sync.Mutex{},
		label:   label,
		min:     float32(math.Inf(-1)),
		max:     float32(math.Inf(1)),
		get:     get,
		set:     set,
		changed: changed,
	}
}

func (c *numberController) Label() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.label
}

func (c *numberController) Name(label string) NumberController {
	c.mu.Lock()
	c.label = label
	c.mu.Unlock()
	return c
}

func (c *numberController) Min(v float32) NumberController {
	c.mu.Lock()
	c.min = v
	c.mu.Unlock()
	return c
}

func (c *numberController) Max(v float32) NumberController {
	c.mu.Lock()
	c.max = v
	c.mu.Unlock()
	return c
}

func (c *numberController) Step(v float32) NumberController {
	c.mu.Lock()
	c.step = max(v, 0)
	c.mu.Unlock()
	return c
}

func (c *numberController) OnChange(fn func(v float32)) NumberController {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
	return c
}

func (c *numberController) Bounds() (float32, float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.min, c.max
}

func (c *numberController) StepSize() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

func (c *numberController) Value() float32 {
	return c.get()
}

func (c *numberController) SetValue(v float32) float32 {
	c.mu.Lock()
	v = c.normalize(v)
	onChange := c.onChange
	c.mu.Unlock()

	c.set(v)
	if onChange != nil {
		onChange(v)
	}
	if c.changed != nil {
		c.changed()
	}
	return v
}

func (c *numberController) Nudge(n int) float32 {
	c.mu.Lock()
	inc := c.keyStep()
	c.mu.Unlock()
	return c.SetValue(c.get() + float32(n)*inc)
}

// normalize snaps to the step grid anchored at the lower bound, then clamps.
// Rounding is done in float64 so decimal steps land on their nearest float32.
func (c *numberController) normalize(v float32) float32 {
	if math.IsNaN(float64(v)) {
		return c.get()
	}
	if c.step > 0 {
		anchor := float64(0)
		switch {
		case !math.IsInf(float64(c.min), 0):
			anchor = float64(c.min)
		case !math.IsInf(float64(c.max), 0):
			anchor = float64(c.max)
		}
		step := float64(c.step)
		snapped := math.Round((float64(v)-anchor)/step)*step + anchor
		v = float32(roundDecimals(snapped, 9))
	}
	return min(max(v, c.min), c.max)
}

func (c *numberController) keyStep() float32 {
	if c.step > 0 {
		return c.step
	}
	if !math.IsInf(float64(c.min), 0) && !math.IsInf(float64(c.max), 0) && c.max > c.min {
		return (c.max - c.min) / DefaultStepDivisions
	}
	return 0.01
}

func roundDecimals(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
