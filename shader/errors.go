// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	"errors"
	"fmt"

	"github.com/gogpu/cubey/gpucore"
)

// ErrNilDevice is returned when a build is attempted without a device.
var ErrNilDevice = errors.New("shader: nil device")

// CompileError reports a stage that failed to compile.
type CompileError struct {
	Stage gpucore.StageKind
	Log   string // compiler diagnostics
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("shader: %s stage compilation failed: %s", e.Stage, e.Log)
}

// LinkError reports a program that failed to link.
type LinkError struct {
	Label string
	Log   string // linker diagnostics
}

func (e *LinkError) Error() string {
	if e.Label == "" {
		return "shader: link failed: " + e.Log
	}
	return fmt.Sprintf("shader: link of %q failed: %s", e.Label, e.Log)
}

// Diagnostics returns the compiler or linker log carried by err.
// It returns "" for nil and err.Error() for any other error.
func Diagnostics(err error) string {
	if err == nil {
		return ""
	}
	var ce *CompileError
	if errors.As(err, &ce) {
		return ce.Log
	}
	var le *LinkError
	if errors.As(err, &le) {
		return le.Log
	}
	return err.Error()
}
