package loader

import (
	"io/fs"
	"os"
)

// ManagerBuilderOption is a functional option for configuring a Manager via NewManager.
type ManagerBuilderOption func(*manager)

// WithCallbacks sets the item lifecycle callbacks.
//
// Parameters:
//   - cb: the callback set
//
// Returns:
//   - ManagerBuilderOption: option function to apply
func WithCallbacks(cb Callbacks) ManagerBuilderOption {
	return func(m *manager) {
		m.callbacks = cb
	}
}

// WithWorkers sets the number of worker goroutines. Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the worker count (minimum 1)
//
// Returns:
//   - ManagerBuilderOption: option function to apply
func WithWorkers(n int) ManagerBuilderOption {
	return func(m *manager) {
		m.workers = max(n, 1)
	}
}

// WithQueueSize sets the capacity of the pending job queue. Submit blocks while it is full.
//
// Parameters:
//   - n: the queue capacity (minimum 1)
//
// Returns:
//   - ManagerBuilderOption: option function to apply
func WithQueueSize(n int) ManagerBuilderOption {
	return func(m *manager) {
		m.queueSize = max(n, 1)
	}
}

// FileLoaderBuilderOption is a functional option for configuring a texture or HDR loader.
type FileLoaderBuilderOption func(*fileLoader)

// WithFS reads files from fsys instead of the working directory.
//
// Parameters:
//   - fsys: the file system to read from
//
// Returns:
//   - FileLoaderBuilderOption: option function to apply
func WithFS(fsys fs.FS) FileLoaderBuilderOption {
	return func(l *fileLoader) {
		l.fsys = fsys
	}
}

// WithBasePath reads files relative to the directory root.
//
// Parameters:
//   - root: the asset root directory
//
// Returns:
//   - FileLoaderBuilderOption: option function to apply
func WithBasePath(root string) FileLoaderBuilderOption {
	return func(l *fileLoader) {
		l.fsys = os.DirFS(root)
	}
}
