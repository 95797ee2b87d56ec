// © 2025 The accelkit Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"

	"github.com/haneulab/accelkit/cli"
	"github.com/haneulab/accelkit/license"
	"github.com/haneulab/accelkit/logger"
)

func main() { cli.Main(new(app)) }

type app struct {
	dry bool
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.BoolVar(&a.dry, "dry", false, "Print the files that would have the license header inserted, without making changes.")
}

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)

	root := "."
	switch len(env.Args) {
	case 0:
	case 1:
		root = env.Args[0]
	default:
		return fmt.Errorf("%w: expected at most one directory", cli.ErrInvalidArgs)
	}

	logger.Debug(ctx, "walking tree", slog.String("root", root), slog.Bool("dry", a.dry))

	in := &license.Inserter{
		DryRun: a.dry,
		Logf: func(format string, args ...any) {
			fmt.Fprintf(env.Stdout, format+"\n", args...)
		},
	}
	return in.Process(ctx, root)
}
