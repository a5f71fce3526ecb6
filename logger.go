// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cubey

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/cubey/cube"
	"github.com/gogpu/cubey/shader"
	"github.com/gogpu/cubey/text"
)

// nopHandler drops every record. Enabled reports false so callers skip
// formatting attributes.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger returns the silent default logger.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr holds the active logger; read and swapped atomically.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for cubey and its sub-packages
// (shader, text, cube). By default nothing is logged.
//
// SetLogger is safe for concurrent use. Pass nil to restore the silent
// default.
//
// Log levels used by cubey:
//   - [slog.LevelDebug]: pipeline and buffer details, bake coverage
//   - [slog.LevelInfo]: lifecycle events (font baked, scene ready)
//   - [slog.LevelWarn]: shader diagnostics, non-fatal draw failures
//
// Example:
//
//	cubey.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	shader.SetLogger(l)
	text.SetLogger(l)
	cube.SetLogger(l)
}

// Logger returns the current logger used by cubey.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by devices that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// propagateLogger passes the current logger to dev if it accepts one.
func propagateLogger(dev any) {
	if ls, ok := dev.(loggerSetter); ok {
		ls.SetLogger(Logger())
	}
}
