// © 2025 The accelkit Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/haneulab/accelkit/cli"
	"github.com/haneulab/accelkit/devtools/internal"
	"github.com/haneulab/accelkit/txtar"
	"golang.org/x/term"
)

const hookShellScript = `#!/bin/sh
echo "==> Running pre-commit check..."
go tool pre-commit
`

type check struct {
	Run      []string `json:"run"`
	SkipInCI bool     `json:"skip_in_ci"`
	OnlyInCI bool     `json:"only_in_ci"`
}

func loadChecks() ([]check, error) {
	ar, err := txtar.ParseFile(".devtools.txtar")
	if err != nil {
		return nil, err
	}
	var checks []check
	for _, f := range ar.Files {
		if f.Name == "pre-commit.json" {
			if err := json.Unmarshal(f.Data, &checks); err != nil {
				return nil, err
			}
		}
	}
	return checks, nil
}

func main() { cli.Main(cli.AppFunc(realMain)) }

func realMain(ctx context.Context) error {
	if err := internal.EnsureRoot(); err != nil {
		return err
	}
	env := cli.GetEnv(ctx)

	checks, err := loadChecks()
	if err != nil {
		return err
	}

	isCI := env.Getenv("CI") == "true"

	if !isCI {
		if fi, err := os.Stat(".git"); err == nil && fi.IsDir() {
			hookPath := filepath.Join(".git", "hooks", "pre-commit")
			if _, err := os.Stat(hookPath); errors.Is(err, fs.ErrNotExist) {
				if err := os.MkdirAll(filepath.Dir(hookPath), 0o755); err != nil {
					return err
				}
				if err := os.WriteFile(hookPath, []byte(hookShellScript), 0o755); err != nil {
					return err
				}
			}
		}
	}

	var toRun []check
	for _, c := range checks {
		if isCI && c.SkipInCI {
			continue
		}
		if !isCI && c.OnlyInCI {
			continue
		}
		toRun = append(toRun, c)
	}

	width := terminalWidth(env.Stdout)
	for i, c := range toRun {
		fmt.Fprintln(env.Stdout, progressMessage(i+1, len(toRun), c.Run, width))
		if err := c.run(ctx); err != nil {
			return err
		}
	}
	fmt.Fprintln(env.Stdout, "All checks passed.")
	return nil
}

// progressMessage renders the "[i/n] Running check ..." line, shortened
// to fit a terminal of the given width. A width of zero or less means
// no limit. The prefix is never cut, only the command.
func progressMessage(current, total int, command []string, width int) string {
	prefix := fmt.Sprintf("[%d/%d] Running check ", current, total)
	cmd := strings.Join(command, " ")
	if width <= 0 || len(prefix)+len(cmd) <= width {
		return prefix + cmd
	}
	avail := width - len(prefix)
	if avail <= 0 {
		return prefix
	}
	if avail > 3 {
		return prefix + cmd[:avail-3] + "..."
	}
	return prefix + cmd[:avail]
}

func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

func (c check) run(ctx context.Context) error {
	if len(c.Run) == 0 {
		return errors.New("empty check")
	}
	var buf bytes.Buffer
	cmd := exec.CommandContext(ctx, c.Run[0], c.Run[1:]...)
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("check %q failed: %v:\n%v", c.Run, err, buf.String())
	}
	return nil
}
