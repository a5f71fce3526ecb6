// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package native

import "errors"

// Package errors for the HAL device.
var (
	// ErrNilHALDevice is returned when New is called without a device or queue.
	ErrNilHALDevice = errors.New("native: HAL device is nil")

	// ErrClosed is returned by operations on a closed Device.
	ErrClosed = errors.New("native: device closed")

	// ErrNilTarget is returned when EndFrame has no color target.
	ErrNilTarget = errors.New("native: nil frame target")

	// ErrInvalidDimensions is returned when the frame width or height is zero.
	ErrInvalidDimensions = errors.New("native: invalid dimensions")
)
