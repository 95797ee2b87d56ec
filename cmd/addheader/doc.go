// © 2025 The accelkit Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Addheader inserts the Apache License 2.0 header into Rust source files.

It recursively walks a directory tree (the current directory by default,
or the one passed as an argument), finds files ending in .rs and inserts
a fixed license header into those that don't already carry one. Files
inside directories named target or .git are left untouched.

A file is considered to already carry the header if the line "Licensed
under the Apache License, Version 2.0" appears anywhere in it. The
header is inserted after any leading inner attributes (#![...]), inner
doc comments (//!) and blank lines, which must stay at the top of the
file.

Usage:

	addheader [flags] [dir]
*/
package main

import (
	_ "embed"

	"github.com/haneulab/accelkit/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
