package profiler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickLogsOncePerInterval(t *testing.T) {
	var buf bytes.Buffer
	now := time.Unix(0, 0)
	p := NewProfiler(
		WithLogger(slog.New(slog.NewJSONHandler(&buf, nil))),
		WithInterval(time.Second),
		withClock(func() time.Time { return now }),
		withMemStats(func(m *runtime.MemStats) {
			m.Alloc = 2 * 1024 * 1024
			m.TotalAlloc = 8 * 1024 * 1024
			m.Sys = 16 * 1024 * 1024
			m.NumGC = 2
			m.PauseNs[0] = 3000
			m.PauseNs[1] = 1000
		}),
	)

	for range 59 {
		now = now.Add(time.Second / 60)
		assert.False(t, p.Tick())
	}
	now = time.Unix(1, 0)
	require.True(t, p.Tick())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "profiler", entry["msg"])
	assert.InDelta(t, 60, entry["fps"], 0.01)
	assert.InDelta(t, 2, entry["heap_mb"], 1e-9)
	assert.InDelta(t, 8, entry["alloc_rate_mb_s"], 1e-6)
	assert.InDelta(t, 16, entry["sys_mb"], 1e-9)
	assert.EqualValues(t, 2, entry["gc"])
	assert.EqualValues(t, 1, entry["gc_last_pause_us"])
	assert.EqualValues(t, 3, entry["gc_max_pause_us"])

	// frame counter restarts after logging
	buf.Reset()
	now = now.Add(time.Second / 2)
	assert.False(t, p.Tick())
	assert.Empty(t, buf.String())
}

func TestOptionsIgnoreInvalidValues(t *testing.T) {
	p := NewProfiler(WithLogger(nil), WithInterval(-time.Second))
	assert.Equal(t, time.Second, p.updateInterval)
	assert.Same(t, slog.Default(), p.logger)
}
