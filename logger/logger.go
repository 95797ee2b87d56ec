// © 2025 The accelkit Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package logger provides a context-aware logger built on [slog].
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

// Logf is a simple printf-like logging function.
type Logf func(format string, args ...any)

// Write implements the [io.Writer] interface.
func (f Logf) Write(p []byte) (n int, err error) {
	f("%s", p)
	return len(p), nil
}

// Logger wraps an [slog.Logger] together with the [slog.LevelVar] that
// controls its level.
type Logger struct {
	*slog.Logger
	Level *slog.LevelVar
}

// IsTerminal reports whether the file descriptor is attached to a terminal.
// It's a variable so it can be replaced in tests.
var IsTerminal = term.IsTerminal

// New returns a [Logger] that writes human-readable output to w.
// Output is colorized when w is a terminal and the NO_COLOR environment
// variable is unset. If level is nil, a new [slog.LevelVar] set to
// [slog.LevelInfo] is used.
func New(w io.Writer, level *slog.LevelVar) *Logger {
	if level == nil {
		level = new(slog.LevelVar)
	}
	h := tint.NewHandler(w, &tint.Options{
		Level:   level,
		NoColor: !colorize(w),
	})
	return &Logger{Logger: slog.New(h), Level: level}
}

func colorize(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return IsTerminal(int(f.Fd()))
}

type ctxKey string

const loggerKey ctxKey = "logger"

var defaultLogger = &Logger{
	Logger: slog.New(slog.DiscardHandler),
	Level:  new(slog.LevelVar),
}

// Put returns a new context with the provided [Logger].
func Put(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// Get retrieves the [Logger] from the context.
//
// If the context has no [Logger], it returns a default [Logger] that
// discards all messages.
func Get(ctx context.Context) *Logger {
	if l, ok := ctx.Value(loggerKey).(*Logger); ok {
		return l
	}
	return defaultLogger
}

// LevelVar retrieves the [slog.LevelVar] associated with the [Logger] in
// the context.
//
// If the context has no [Logger], it returns the [slog.LevelVar] of the
// default [Logger].
func LevelVar(ctx context.Context) *slog.LevelVar {
	return Get(ctx).Level
}

// Debug logs a debug message.
func Debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	Get(ctx).LogAttrs(ctx, slog.LevelDebug, msg, attrs...)
}

// Info logs an info message.
func Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	Get(ctx).LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

// Warn logs a warning message.
func Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	Get(ctx).LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
}

// Error logs an error message.
func Error(ctx context.Context, msg string, attrs ...slog.Attr) {
	Get(ctx).LogAttrs(ctx, slog.LevelError, msg, attrs...)
}
