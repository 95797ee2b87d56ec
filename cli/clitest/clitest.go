// © 2025 The accelkit Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package clitest provides helpers for testing applications built on the
// [github.com/haneulab/accelkit/cli] package.
package clitest

import (
	"bytes"
	"context"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/haneulab/accelkit/cli"
)

// Case describes a single test case for an application of type A.
type Case[A cli.App] struct {
	// Args are the command-line arguments passed to the application.
	Args []string
	// Env contains the environment variables visible to the application.
	Env map[string]string
	// Stdin is the application's standard input. If nil, an empty reader
	// is used.
	Stdin io.Reader
	// WantErr, if non-nil, is an error the run must match with [errors.Is].
	WantErr error
	// WantErrType, if non-nil, is a value of the error type the run must
	// match with [errors.As].
	WantErrType any
	// WantInStdout is a string that must appear in standard output.
	WantInStdout string
	// WantInStderr is a string that must appear in standard error.
	WantInStderr string
	// WantNothingPrinted requires both standard output and standard error
	// to be empty.
	WantNothingPrinted bool
	// CheckFunc, if set, runs after the application finishes, receiving
	// the application value for extra assertions.
	CheckFunc func(*testing.T, A)
}

// Run runs the application constructed by setup once per test case.
func Run[A cli.App](t *testing.T, setup func(*testing.T) A, cases map[string]Case[A]) {
	t.Helper()
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			app := setup(t)

			var stdout, stderr bytes.Buffer
			stdin := tc.Stdin
			if stdin == nil {
				stdin = strings.NewReader("")
			}
			env := &cli.Env{
				Args:   tc.Args,
				Getenv: func(name string) string { return tc.Env[name] },
				Stdin:  stdin,
				Stdout: &stdout,
				Stderr: &stderr,
			}

			err := cli.Run(cli.WithEnv(context.Background(), env), app)

			switch {
			case tc.WantErr != nil:
				if !errors.Is(err, tc.WantErr) {
					t.Fatalf("want error %v, got %v", tc.WantErr, err)
				}
			case tc.WantErrType != nil:
				target := reflect.New(reflect.TypeOf(tc.WantErrType))
				if !errors.As(err, target.Interface()) {
					t.Fatalf("want error of type %T, got %v (%T)", tc.WantErrType, err, err)
				}
			case err != nil:
				t.Fatalf("unexpected error: %v", err)
			}

			if tc.WantNothingPrinted {
				if stdout.Len() > 0 {
					t.Errorf("nothing should be printed to stdout, got: %q", stdout.String())
				}
				if stderr.Len() > 0 {
					t.Errorf("nothing should be printed to stderr, got: %q", stderr.String())
				}
			}
			if tc.WantInStdout != "" && !strings.Contains(stdout.String(), tc.WantInStdout) {
				t.Errorf("stdout must contain %q, got: %q", tc.WantInStdout, stdout.String())
			}
			if tc.WantInStderr != "" && !strings.Contains(stderr.String(), tc.WantInStderr) {
				t.Errorf("stderr must contain %q, got: %q", tc.WantInStderr, stderr.String())
			}

			if tc.CheckFunc != nil {
				tc.CheckFunc(t, app)
			}
		})
	}
}
