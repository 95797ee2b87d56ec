// © 2025 The accelkit Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package logger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/haneulab/accelkit/testutil"
)

func TestLogfWriter(t *testing.T) {
	var (
		logged  bool
		message string
	)
	logf := func(format string, args ...any) {
		logged = true
		message = fmt.Sprintf(format, args...)
	}
	Logf(logf).Write([]byte("hello"))
	testutil.AssertEqual(t, logged, true)
	testutil.AssertEqual(t, message, "hello")
}

func TestNew(t *testing.T) {
	var sb strings.Builder

	l := New(&sb, nil)
	l.Info("hello", "key", "value")

	out := sb.String()
	if !strings.Contains(out, "hello") {
		t.Errorf("output %q doesn't contain the message", out)
	}
	if !strings.Contains(out, "key=value") {
		t.Errorf("output %q doesn't contain the attribute", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("output %q contains escape sequences, want no color for a non-terminal writer", out)
	}
}

func TestLevel(t *testing.T) {
	var sb strings.Builder

	l := New(&sb, nil)
	l.Debug("quiet")
	testutil.AssertEqual(t, sb.String(), "")

	l.Level.Set(slog.LevelDebug)
	l.Debug("loud")
	if !strings.Contains(sb.String(), "loud") {
		t.Errorf("output %q doesn't contain the debug message", sb.String())
	}
}

func TestContext(t *testing.T) {
	ctx := context.Background()

	// Without a logger in the context everything is discarded.
	if l := Get(ctx); l == nil {
		t.Fatal("Get returned nil for a bare context")
	}
	Info(ctx, "dropped")

	var sb strings.Builder
	l := New(&sb, nil)
	ctx = Put(ctx, l)

	testutil.AssertEqual(t, Get(ctx), l)
	testutil.AssertEqual(t, LevelVar(ctx), l.Level)

	Info(ctx, "kept", slog.String("key", "value"))
	if !strings.Contains(sb.String(), "kept") {
		t.Errorf("output %q doesn't contain the message", sb.String())
	}

	sb.Reset()
	Debug(ctx, "below level")
	testutil.AssertEqual(t, sb.String(), "")

	LevelVar(ctx).Set(slog.LevelDebug)
	Debug(ctx, "at level")
	if !strings.Contains(sb.String(), "at level") {
		t.Errorf("output %q doesn't contain the debug message", sb.String())
	}
}
