// © 2025 The accelkit Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package txtar implements a trivial text-based file archive format.
//
// The format of a txtar archive is an optional comment followed by a
// sequence of file entries. Each entry begins with a marker line of the
// form "-- FILENAME --" and continues until the next marker line or the
// end of the archive. Marker lines are only recognized at the beginning
// of a line.
//
// The format is line-oriented and cannot represent data that does not end
// with a newline; parsing and formatting add a terminating newline to
// non-empty data that lacks one.
package txtar

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Archive is a collection of files with an optional leading comment.
type Archive struct {
	Comment []byte
	Files   []File
}

// File is a single file in an [Archive].
type File struct {
	Name string
	Data []byte
}

// Format serializes the archive into txtar form.
func Format(a *Archive) []byte {
	var buf bytes.Buffer
	buf.Write(fixNL(a.Comment))
	for _, f := range a.Files {
		fmt.Fprintf(&buf, "-- %s --\n", f.Name)
		buf.Write(fixNL(f.Data))
	}
	return buf.Bytes()
}

// Parse parses the serialized form of an archive.
// The returned Archive aliases data, so data must not be modified afterwards.
func Parse(data []byte) *Archive {
	a := new(Archive)
	var name string
	a.Comment, name, data = findMarker(data)
	for name != "" {
		f := File{Name: name}
		f.Data, name, data = findMarker(data)
		a.Files = append(a.Files, f)
	}
	return a
}

// ParseFile parses the named file as an archive.
func ParseFile(path string) (*Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data), nil
}

var (
	markerPrefix = []byte("-- ")
	markerSuffix = []byte(" --")
	markerOnLine = []byte("\n-- ")
)

// findMarker returns the data before the next marker line, the name on
// that marker line, and the data after it. If no marker is found, it
// returns fixNL(data), "", nil.
func findMarker(data []byte) (before []byte, name string, after []byte) {
	var i int
	for {
		if name, after = parseMarker(data[i:]); name != "" {
			return data[:i], name, after
		}
		j := bytes.Index(data[i:], markerOnLine)
		if j < 0 {
			return fixNL(data), "", nil
		}
		i += j + 1 // advance to the line that begins with the marker prefix
	}
}

// parseMarker checks whether data begins with a marker line.
// It reports the file name on the marker line and the remaining data.
func parseMarker(data []byte) (name string, after []byte) {
	if !bytes.HasPrefix(data, markerPrefix) {
		return "", nil
	}
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line, after = data[:i], data[i+1:]
	}
	line = bytes.TrimRight(line, "\r")
	if !bytes.HasSuffix(line, markerSuffix) || len(line) < len(markerPrefix)+len(markerSuffix) {
		return "", nil
	}
	name = strings.TrimSpace(string(line[len(markerPrefix) : len(line)-len(markerSuffix)]))
	if name == "" {
		return "", nil
	}
	return name, after
}

// fixNL returns data, appending a final newline when data is non-empty and
// doesn't already end with one.
func fixNL(data []byte) []byte {
	if len(data) == 0 || data[len(data)-1] == '\n' {
		return data
	}
	d := make([]byte, len(data)+1)
	copy(d, data)
	d[len(data)] = '\n'
	return d
}

// Extract writes each file of the archive into dir, creating intermediate
// directories as needed. File names must stay within dir: absolute names
// and names escaping through ".." are rejected.
func Extract(a *Archive, dir string) error {
	for _, f := range a.Files {
		name := filepath.FromSlash(f.Name)
		if !filepath.IsLocal(name) {
			return fmt.Errorf("txtar: file name %q escapes the target directory", f.Name)
		}
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, f.Data, 0o644); err != nil {
			return err
		}
	}
	return nil
}

// FromDir builds an archive from the regular files under dir.
// File names are slash-separated and relative to dir, in lexical order.
func FromDir(dir string) (*Archive, error) {
	a := new(Archive)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		a.Files = append(a.Files, File{Name: filepath.ToSlash(rel), Data: data})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}
