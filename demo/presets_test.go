package demo

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-materials/engine/debugpanel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.toml")
	want := debugpanel.Preset{
		"camera":   {"camera position z": -1.5},
		"material": {"metalness": 0.25, "ior": 1.5},
	}
	require.NoError(t, SavePreset(path, want))

	got, err := LoadPreset(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadPresetParsesHandWrittenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.toml")
	require.NoError(t, os.WriteFile(path, []byte("[material]\nroughness = 0.5\nthickness = 0.75\n"), 0o644))

	got, err := LoadPreset(path)
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), got["material"]["roughness"])
	assert.Equal(t, float32(0.75), got["material"]["thickness"])
}

func TestLoadPresetErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadPreset(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[material\nroughness = "), 0o644))
	_, err = LoadPreset(bad)
	assert.ErrorContains(t, err, "failed to parse preset")
}

func TestWatchPresetReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "preset.toml")
	require.NoError(t, os.WriteFile(path, []byte("[material]\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var changes atomic.Int32
	require.NoError(t, WatchPreset(ctx, path, slog.New(slog.DiscardHandler), func() { changes.Add(1) }))

	// unrelated files in the same directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x = 1\n"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("[material]\nroughness = 0.5\n"), 0o644))

	assert.Eventually(t, func() bool { return changes.Load() > 0 }, 5*time.Second, 10*time.Millisecond)
}

func TestWatchPresetMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent", "preset.toml")
	err := WatchPreset(context.Background(), path, slog.New(slog.DiscardHandler), func() {})
	assert.Error(t, err)
}
