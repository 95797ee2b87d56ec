// © 2025 The accelkit Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Accelcheck probes the machine for compute accelerators.

It reports the Go runtime version and the preferred compute platform,
lists the platform's devices and runs one timed matrix multiplication
as a smoke test. A few values of the product are printed so the result
can be eyeballed.

The matrices are square, drawn from a seeded normal distribution, and
multiplied on the host processor. Their dimension and seed are set with
the -size and -seed flags.

Usage:

	accelcheck [flags]
*/
package main

import (
	_ "embed"

	"github.com/haneulab/accelkit/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
