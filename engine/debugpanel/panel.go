// Package debugpanel is a keyboard-driven parameter panel for tuning live values.
// Controllers are grouped in folders; the selected controller and its value are shown
// through a TitleSetter, typically the render window's title bar.
package debugpanel

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-materials/common"
)

// TitleSetter receives the panel's status line.
type TitleSetter interface {
	SetTitle(title string)
}

// Preset maps folder names to controller labels to values.
type Preset map[string]map[string]float32

// ErrUnknownController is wrapped by Apply for preset entries with no matching controller.
var ErrUnknownController = errors.New("unknown controller")

// Folder groups related controllers under a name.
type Folder interface {
	// Title returns the folder name.
	//
	// Returns:
	//   - string: the folder name
	Title() string

	// AddNumber binds a float parameter through its accessor pair.
	//
	// Parameters:
	//   - label: the displayed name
	//   - get: reads the current value
	//   - set: writes a new value
	//
	// Returns:
	//   - NumberController: the controller, for chaining bounds and step
	AddNumber(label string, get func() float32, set func(float32)) NumberController

	// Controllers returns the folder's controllers in insertion order.
	//
	// Returns:
	//   - []NumberController: the controllers
	Controllers() []NumberController
}

// Panel is the root of a debug panel.
type Panel interface {
	// Title returns the panel title.
	//
	// Returns:
	//   - string: the title
	Title() string

	// Folder returns the folder with the given name, creating it if needed.
	//
	// Parameters:
	//   - name: the folder name
	//
	// Returns:
	//   - Folder: the folder
	Folder(name string) Folder

	// Controllers returns every controller in folder order.
	//
	// Returns:
	//   - []NumberController: the controllers
	Controllers() []NumberController

	// Find looks up a controller by folder and label.
	//
	// Parameters:
	//   - folder: the folder name
	//   - label: the controller label
	//
	// Returns:
	//   - NumberController: the controller, or nil
	Find(folder, label string) NumberController

	// Selected returns the controller targeted by keyboard input, or nil when the panel is empty.
	//
	// Returns:
	//   - NumberController: the selected controller
	Selected() NumberController

	// Visible reports whether the panel is shown.
	//
	// Returns:
	//   - bool: true if shown
	Visible() bool

	// SetVisible shows or hides the panel. A hidden panel ignores every key but the toggle.
	//
	// Parameters:
	//   - visible: whether the panel is shown
	SetVisible(visible bool)

	// HandleKey applies a key press: Tab and Shift+Tab cycle the selection, Up and Down
	// nudge the selected value, H toggles visibility.
	//
	// Parameters:
	//   - keyCode: the key code from common
	//   - mods: the modifier bitmask from common
	//
	// Returns:
	//   - bool: true if the key was consumed
	HandleKey(keyCode, mods uint32) bool

	// Status returns the line describing the panel state.
	//
	// Returns:
	//   - string: the status line
	Status() string

	// Attach sends the status line to sink now and after every change.
	//
	// Parameters:
	//   - sink: the status receiver
	Attach(sink TitleSetter)

	// Snapshot reads every controller value.
	//
	// Returns:
	//   - Preset: values keyed by folder and label
	Snapshot() Preset

	// Apply writes preset values through each controller's SetValue, so bounds and steps hold.
	// Entries with no matching controller are skipped and reported.
	//
	// Parameters:
	//   - p: the values to apply
	//
	// Returns:
	//   - error: ErrUnknownController wrapped once per unmatched entry, or nil
	Apply(p Preset) error
}

type folder struct {
	mu *sync.Mutex

	title       string
	controllers []*numberController
	changed     func()
}

var _ Folder = &folder{}

func (f *folder) Title() string {
	return f.title
}

func (f *folder) AddNumber(label string, get func() float32, set func(float32)) NumberController {
	c := newNumberController(label, get, set, f.changed)
	f.mu.Lock()
	f.controllers = append(f.controllers, c)
	f.mu.Unlock()
	f.changed()
	return c
}

func (f *folder) Controllers() []NumberController {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]NumberController, len(f.controllers))
	for i, c := range f.controllers {
		out[i] = c
	}
	return out
}

type panel struct {
	mu *sync.Mutex

	title    string
	folders  []*folder
	selected int
	visible  bool
	sink     TitleSetter
	format   string
}

var _ Panel = &panel{}

// NewPanel creates an empty, visible panel.
//
// Parameters:
//   - title: the panel title
//   - options: functional options to configure the panel
//
// Returns:
//   - Panel: the new panel
func NewPanel(title string, options ...PanelBuilderOption) Panel {
	p := &panel{
		mu:      &sync.Mutex{},
		title:   title,
		visible: true,
		format:  "%.2f",
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *panel) Title() string {
	return p.title
}

func (p *panel) Folder(name string) Folder {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, f := range p.folders {
		if f.title == name {
			return f
		}
	}
	f := &folder{mu: &sync.Mutex{}, title: name, changed: p.refresh}
	p.folders = append(p.folders, f)
	return f
}

func (p *panel) all() []NumberController {
	p.mu.Lock()
	folders := append([]*folder(nil), p.folders...)
	p.mu.Unlock()

	var out []NumberController
	for _, f := range folders {
		out = append(out, f.Controllers()...)
	}
	return out
}

func (p *panel) Controllers() []NumberController {
	return p.all()
}

func (p *panel) Find(folderName, label string) NumberController {
	p.mu.Lock()
	folders := append([]*folder(nil), p.folders...)
	p.mu.Unlock()

	for _, f := range folders {
		if f.title != folderName {
			continue
		}
		for _, c := range f.Controllers() {
			if c.Label() == label {
				return c
			}
		}
	}
	return nil
}

func (p *panel) Selected() NumberController {
	all := p.all()
	if len(all) == 0 {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return all[p.selected%len(all)]
}

func (p *panel) Visible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visible
}

func (p *panel) SetVisible(visible bool) {
	p.mu.Lock()
	p.visible = visible
	p.mu.Unlock()
	p.refresh()
}

func (p *panel) HandleKey(keyCode, mods uint32) bool {
	if keyCode == common.KeyH {
		p.SetVisible(!p.Visible())
		return true
	}
	if !p.Visible() {
		return false
	}

	count := len(p.all())
	if count == 0 {
		return false
	}
	switch keyCode {
	case common.KeyTab:
		p.mu.Lock()
		if mods&common.ModShift != 0 {
			p.selected = (p.selected - 1 + count) % count
		} else {
			p.selected = (p.selected + 1) % count
		}
		p.mu.Unlock()
		p.refresh()
		return true
	case common.KeyUp, common.KeyRight:
		p.Selected().Nudge(1)
		return true
	case common.KeyDown, common.KeyLeft:
		p.Selected().Nudge(-1)
		return true
	}
	return false
}

func (p *panel) Status() string {
	if !p.Visible() {
		return p.title
	}
	sel := p.Selected()
	if sel == nil {
		return p.title
	}
	p.mu.Lock()
	format := p.format
	folders := append([]*folder(nil), p.folders...)
	p.mu.Unlock()

	folderName := ""
	for _, f := range folders {
		for _, c := range f.Controllers() {
			if c == sel {
				folderName = f.title
			}
		}
	}

	var b strings.Builder
	b.WriteString(p.title)
	b.WriteString(" | ")
	if folderName != "" {
		b.WriteString(folderName)
		b.WriteString(" / ")
	}
	b.WriteString(sel.Label())
	b.WriteString(" = ")
	fmt.Fprintf(&b, format, sel.Value())
	return b.String()
}

func (p *panel) Attach(sink TitleSetter) {
	p.mu.Lock()
	p.sink = sink
	p.mu.Unlock()
	p.refresh()
}

func (p *panel) refresh() {
	p.mu.Lock()
	sink := p.sink
	p.mu.Unlock()
	if sink != nil {
		sink.SetTitle(p.Status())
	}
}

func (p *panel) Snapshot() Preset {
	p.mu.Lock()
	folders := append([]*folder(nil), p.folders...)
	p.mu.Unlock()

	out := Preset{}
	for _, f := range folders {
		values := map[string]float32{}
		for _, c := range f.Controllers() {
			values[c.Label()] = c.Value()
		}
		out[f.title] = values
	}
	return out
}

func (p *panel) Apply(preset Preset) error {
	var errs []error
	for folderName, values := range preset {
		for label, v := range values {
			c := p.Find(folderName, label)
			if c == nil {
				errs = append(errs, fmt.Errorf("%w: %s/%s", ErrUnknownController, folderName, label))
				continue
			}
			c.SetValue(v)
		}
	}
	return errors.Join(errs...)
}
