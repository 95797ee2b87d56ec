// © 2025 The accelkit Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package license inserts Apache License 2.0 headers into Rust source
// files.
package license

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/haneulab/accelkit/logger"
)

// Header is the license header block inserted into Rust source files,
// terminated by a blank line.
const Header = `// Copyright 2025 Lablup Inc. and Jeongkyu Shin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

`

// Marker identifies a file that already carries the license header.
const Marker = `Licensed under the Apache License, Version 2.0`

// HasHeader reports whether content already carries the license header,
// by looking for [Marker] anywhere in it.
func HasHeader(content string) bool {
	return strings.Contains(content, Marker)
}

// InsertIndex returns the index of the line before which the header
// should be inserted. Leading inner attributes (#![...]), inner doc
// comments (//!) and blank lines must stay at the top of the file, so
// they are skipped.
func InsertIndex(lines []string) int {
	var i int
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		switch {
		case strings.HasPrefix(line, "#!"), strings.HasPrefix(line, "//!"), line == "":
			i++
		default:
			return i
		}
	}
	return i
}

// Insert returns content with [Header] spliced in at the position
// reported by [InsertIndex]. If content already carries the header, it
// is returned unchanged and inserted is false.
func Insert(content string) (result string, inserted bool) {
	if HasHeader(content) {
		return content, false
	}

	lines := splitLines(content)
	i := InsertIndex(lines)

	var sb strings.Builder
	sb.Grow(len(content) + len(Header))
	for _, line := range lines[:i] {
		sb.WriteString(line)
	}
	sb.WriteString(Header)
	for _, line := range lines[i:] {
		sb.WriteString(line)
	}
	return sb.String(), true
}

// splitLines splits content into lines, each keeping its trailing
// newline. A final line without a newline is kept as is.
func splitLines(content string) []string {
	lines := strings.SplitAfter(content, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

// An Inserter inserts the license header into every Rust file below a
// root directory.
type Inserter struct {
	// DryRun reports what would change without writing any files.
	DryRun bool
	// Logf is used to report the outcome for each visited file.
	// If nil, outcomes are not reported.
	Logf logger.Logf
}

// skipDirs are directory names that are never descended into.
var skipDirs = map[string]bool{
	"target": true,
	".git":   true,
}

// Process walks the tree rooted at root and inserts the header into
// every .rs file that doesn't already carry it. Directories named
// target or .git are skipped, but a root with one of these names is
// still processed. Process stops at the first error.
func (in *Inserter) Process(ctx context.Context, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && skipDirs[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".rs") {
			return nil
		}
		_, err = in.InsertInFile(path)
		return err
	})
}

// InsertInFile inserts the header into the file at path unless it's
// already present. It reports whether the file was changed, or would
// have been in dry run mode.
func (in *Inserter) InsertInFile(path string) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	out, inserted := Insert(string(content))
	if !inserted {
		in.report("✅ Already has header: %s", path)
		return false, nil
	}

	if in.DryRun {
		in.report("📝 Would insert header: %s", path)
		return true, nil
	}
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return false, err
	}
	in.report("📝 Header inserted: %s", path)
	return true, nil
}

func (in *Inserter) report(format string, args ...any) {
	if in.Logf != nil {
		in.Logf(format, args...)
	}
}
