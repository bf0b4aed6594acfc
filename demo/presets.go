package demo

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Carmen-Shannon/oxy-materials/engine/debugpanel"
	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
)

// LoadPreset reads panel values from a TOML file with one table per folder:
//
//	[material]
//	metalness = 0.5
//
// Parameters:
//   - path: the preset file
//
// Returns:
//   - debugpanel.Preset: values keyed by folder and controller label
//   - error: error if the file cannot be read or parsed
func LoadPreset(path string) (debugpanel.Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset %s: %w", path, err)
	}
	var p debugpanel.Preset
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse preset %s: %w", path, err)
	}
	return p, nil
}

// SavePreset writes panel values to a TOML file, replacing it.
//
// Parameters:
//   - path: the preset file
//   - p: the values to write
//
// Returns:
//   - error: error if encoding or writing fails
func SavePreset(path string, p debugpanel.Preset) error {
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode preset: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write preset %s: %w", path, err)
	}
	return nil
}

// WatchPreset calls onChange whenever the preset file is written or replaced, until ctx
// is done. The parent directory is watched so editors that save by rename are seen.
// onChange runs on the watcher goroutine.
//
// Parameters:
//   - ctx: stops the watcher
//   - path: the preset file
//   - logger: receives watcher errors
//   - onChange: called after each change
//
// Returns:
//   - error: error if the watcher could not be started
func WatchPreset(ctx context.Context, path string, logger *slog.Logger, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create preset watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return fmt.Errorf("failed to resolve preset path %s: %w", path, err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch preset directory: %w", err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					onChange()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Error("preset watcher error", "path", path, "error", err)
			}
		}
	}()
	return nil
}
