// © 2025 The accelkit Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"time"

	"github.com/haneulab/accelkit/accel"
	"github.com/haneulab/accelkit/cli"
	"github.com/haneulab/accelkit/logger"
	"github.com/haneulab/accelkit/version"
)

func main() { cli.Main(new(app)) }

type app struct {
	size int
	seed uint64

	// Swapped out in tests. Nil means the real thing.
	registry *accel.Registry
	backend  accel.Backend
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.IntVar(&a.size, "size", 3000, "Multiply two square matrices of this `dimension`.")
	fs.Uint64Var(&a.seed, "seed", 42, "Generate the matrices from this random `seed`.")
}

func (a *app) reg() *accel.Registry {
	if a.registry != nil {
		return a.registry
	}
	return accel.DefaultRegistry
}

func (a *app) be() accel.Backend {
	if a.backend != nil {
		return a.backend
	}
	return accel.CPU()
}

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)

	if len(env.Args) > 0 {
		return fmt.Errorf("%w: expected no arguments", cli.ErrInvalidArgs)
	}
	if a.size <= 0 {
		return fmt.Errorf("%w: size must be positive", cli.ErrInvalidArgs)
	}

	fmt.Fprintln(env.Stdout, "=== Accelerator Environment Check ===")
	fmt.Fprintf(env.Stdout, "Go version: %s\n", version.Version().Go)
	fmt.Fprintf(env.Stdout, "Default backend: %s\n", a.reg().DefaultPlatform(ctx))

	devices, err := a.reg().Devices(ctx)
	if err != nil {
		fmt.Fprintf(env.Stdout, "❌ Failed to find devices: %v\n", err)
		return err
	}
	fmt.Fprintf(env.Stdout, "Number of connected devices: %d\n", len(devices))
	for i, d := range devices {
		fmt.Fprintf(env.Stdout, " - Device %d: %s (ID: %d)\n", i, d.Kind, d.ID)
	}

	fmt.Fprintln(env.Stdout, "\n=== Computation Test Started ===")

	backend := a.be()
	logger.Debug(ctx, "dispatching computation",
		slog.String("backend", backend.Name()),
		slog.Int("size", a.size),
		slog.Uint64("seed", a.seed))

	// One seed feeds both operands, so x and y are identical.
	x := accel.Normal(a.size, a.size, a.seed)
	y := accel.Normal(a.size, a.size, a.seed)

	fmt.Fprintf(env.Stdout, "Performing %dx%d matrix multiplication...\n", a.size, a.size)
	start := time.Now()
	result, err := backend.MatMul(x, y).Wait(ctx)
	if err != nil {
		var ce *accel.ComputeError
		if errors.As(err, &ce) {
			fmt.Fprintf(env.Stdout, "❌ Error during computation: %v\n", err)
		}
		return err
	}
	elapsed := time.Since(start).Round(time.Millisecond)

	fmt.Fprintf(env.Stdout, "Sample output: %v\n", result.Row(0)[:min(5, a.size)])
	fmt.Fprintf(env.Stdout, "✅ Computation completed successfully in %v.\n", elapsed)
	return nil
}
