// Command oxy-materials renders the physical materials demo.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	cerrors "cogentcore.org/core/base/errors"
	"cogentcore.org/core/cli"
	"github.com/Carmen-Shannon/oxy-materials/demo"
)

// GLFW calls must come from the main thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	opts := cli.DefaultOptions("oxy-materials", "A physically based materials demo on a WebGPU engine.")
	opts.DefaultFiles = []string{"oxy-materials.toml"}
	cli.Run(opts, &demo.Config{}, Run)
}

// Run opens the demo window and renders until the window is closed or the process is interrupted.
func Run(cfg *demo.Config) error { //cli:cmd -root
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := demo.NewApp(*cfg)
	if err != nil {
		return err
	}
	defer func() {
		cerrors.Log(app.Close())
	}()

	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
