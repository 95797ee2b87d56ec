// © 2025 The accelkit Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package internal contains helpers shared by the devtools commands.
package internal

import (
	"errors"
	"os"
	"path/filepath"
)

// EnsureRoot changes the working directory to the module root, the
// nearest parent directory containing a go.mod file.
func EnsureRoot() error {
	dir, err := os.Getwd()
	if err != nil {
		return err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return os.Chdir(dir)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return errors.New("go.mod not found in any parent directory")
		}
		dir = parent
	}
}
