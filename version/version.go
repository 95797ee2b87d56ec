// © 2025 The accelkit Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package version provides information about the currently running binary.
package version

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/haneulab/accelkit/syncx"
)

// Info describes the currently running binary.
type Info struct {
	// Name is the name of the binary, as reported by [CmdName].
	Name string
	// Version is the version of the main module.
	Version string
	// Commit is the VCS revision the binary was built from, if known.
	Commit string
	// Dirty reports whether the source tree had uncommitted changes.
	Dirty bool
	// Go is the version of the Go toolchain that built the binary.
	Go string
	// OS and Arch identify the platform the binary runs on.
	OS, Arch string
}

// String implements the [fmt.Stringer] interface.
func (i Info) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s", i.Name, i.Version)
	if i.Commit != "" {
		commit := i.Commit
		if len(commit) > 12 {
			commit = commit[:12]
		}
		fmt.Fprintf(&sb, " (%s", commit)
		if i.Dirty {
			sb.WriteString(", dirty")
		}
		sb.WriteString(")")
	}
	fmt.Fprintf(&sb, "\nbuilt with %s (%s/%s)\n", i.Go, i.OS, i.Arch)
	return sb.String()
}

var cached syncx.Lazy[Info]

// Version returns information about the currently running binary.
// It is computed once and cached.
func Version() Info { return cached.Get(load) }

func load() Info {
	i := Info{
		Name:    CmdName(),
		Version: "devel",
		Go:      runtime.Version(),
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return i
	}
	if bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		i.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			i.Commit = s.Value
		case "vcs.modified":
			i.Dirty = s.Value == "true"
		}
	}
	return i
}

// CmdName returns the base name of the currently running binary, without
// the extension on Windows.
func CmdName() string {
	exe, err := os.Executable()
	if err != nil {
		exe = os.Args[0]
	}
	return strings.TrimSuffix(filepath.Base(exe), ".exe")
}
