// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpucore

import "errors"

// Sentinel errors shared by Device implementations.
var (
	// ErrUnknownResource is returned when an ID does not name a live resource.
	ErrUnknownResource = errors.New("gpucore: unknown resource")

	// ErrSizeMismatch is returned when uploaded data does not match the
	// declared size of the destination.
	ErrSizeMismatch = errors.New("gpucore: data size mismatch")

	// ErrInvalidSize is returned for non-positive buffer or texture sizes.
	ErrInvalidSize = errors.New("gpucore: size must be positive")

	// ErrStageMismatch is returned when stages are linked in the wrong slots.
	ErrStageMismatch = errors.New("gpucore: stage kind mismatch")
)
