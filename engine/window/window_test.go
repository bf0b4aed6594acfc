package window

import (
	"errors"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-materials/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHost struct {
	fullscreen   bool
	preferredErr error
	fallbackErr  error
	calls        []string
}

func (h *fakeHost) IsFullscreen() bool { return h.fullscreen }

func (h *fakeHost) RequestFullscreen() error {
	h.calls = append(h.calls, "request")
	if h.preferredErr != nil {
		return h.preferredErr
	}
	h.fullscreen = true
	return nil
}

func (h *fakeHost) RequestBorderlessFullscreen() error {
	h.calls = append(h.calls, "borderless")
	if h.fallbackErr != nil {
		return h.fallbackErr
	}
	h.fullscreen = true
	return nil
}

func (h *fakeHost) ExitFullscreen() error {
	h.calls = append(h.calls, "exit")
	h.fullscreen = false
	return nil
}

func TestToggleFullscreen(t *testing.T) {
	tests := []struct {
		name      string
		host      *fakeHost
		wantCalls []string
		wantFull  bool
		wantErr   bool
	}{
		{
			name:      "enters with preferred capability",
			host:      &fakeHost{},
			wantCalls: []string{"request"},
			wantFull:  true,
		},
		{
			name:      "falls back when preferred unsupported",
			host:      &fakeHost{preferredErr: ErrFullscreenUnsupported},
			wantCalls: []string{"request", "borderless"},
			wantFull:  true,
		},
		{
			name:      "does not fall back on other errors",
			host:      &fakeHost{preferredErr: errors.New("denied")},
			wantCalls: []string{"request"},
			wantErr:   true,
		},
		{
			name:      "both capabilities unsupported",
			host:      &fakeHost{preferredErr: ErrFullscreenUnsupported, fallbackErr: ErrFullscreenUnsupported},
			wantCalls: []string{"request", "borderless"},
			wantErr:   true,
		},
		{
			name:      "exits when fullscreen",
			host:      &fakeHost{fullscreen: true},
			wantCalls: []string{"exit"},
			wantFull:  false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ToggleFullscreen(tt.host)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantCalls, tt.host.calls)
			assert.Equal(t, tt.wantFull, tt.host.fullscreen)
		})
	}
}

func TestToggleFullscreenTwiceRestores(t *testing.T) {
	h := &fakeHost{}
	require.NoError(t, ToggleFullscreen(h))
	require.NoError(t, ToggleFullscreen(h))
	assert.False(t, h.fullscreen)
	assert.Equal(t, []string{"request", "exit"}, h.calls)
}

type stepClock struct{ now time.Time }

func (c *stepClock) Now() time.Time { return c.now }

func TestDoubleClickDetector(t *testing.T) {
	clock := &stepClock{now: time.Unix(0, 0)}
	d := NewDoubleClickDetector(clock.Now)

	assert.False(t, d.Press(10, 10))
	clock.now = clock.now.Add(200 * time.Millisecond)
	assert.True(t, d.Press(12, 11), "second press within interval and slop")

	clock.now = clock.now.Add(100 * time.Millisecond)
	assert.False(t, d.Press(12, 11), "third press starts a new sequence")

	clock.now = clock.now.Add(DoubleClickInterval + time.Millisecond)
	assert.False(t, d.Press(12, 11), "too slow")

	clock.now = clock.now.Add(100 * time.Millisecond)
	assert.False(t, d.Press(40, 11), "too far")

	d.Reset()
	assert.False(t, d.Press(40, 11))
}

func TestHandleMouseDownFiresDoubleClick(t *testing.T) {
	clock := &stepClock{now: time.Unix(0, 0)}
	w := &engineWindow{doubleClick: NewDoubleClickDetector(clock.Now)}

	var presses, doubles int
	w.SetMouseDownCallback(func(button int, x, y float32) { presses++ })
	w.SetDoubleClickCallback(func(x, y float32) { doubles++ })

	w.handleMouseDown(0, 5, 5)
	w.handleMouseDown(1, 5, 5)
	w.handleMouseDown(0, 5, 5)
	assert.Equal(t, 3, presses)
	assert.Equal(t, 1, doubles)
}

func TestHandleKeyForwardsEscape(t *testing.T) {
	w := &engineWindow{}

	var down []uint32
	var up []uint32
	w.SetKeyDownCallback(func(keyCode, mods uint32) { down = append(down, keyCode) })
	w.SetKeyUpCallback(func(keyCode uint32) { up = append(up, keyCode) })

	w.handleKey(common.KeyEsc, 0, true)
	w.handleKey(common.KeyEsc, 0, false)
	w.handleKey(common.KeyF, 0, true)
	assert.Equal(t, []uint32{common.KeyEsc, common.KeyF}, down)
	assert.Equal(t, []uint32{common.KeyEsc}, up)
}

func TestHandleKeyWithoutCallbacks(t *testing.T) {
	w := &engineWindow{}
	assert.NotPanics(t, func() {
		w.handleKey(common.KeyEsc, 0, true)
		w.handleKey(common.KeyEsc, 0, false)
	})
}
