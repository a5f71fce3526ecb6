// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

import (
	"errors"
	"fmt"
)

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrAtlasFull is returned when the glyph range does not fit the atlas.
	ErrAtlasFull = errors.New("text: atlas full")

	// ErrNilDevice is returned when a GPU operation is given no device.
	ErrNilDevice = errors.New("text: nil device")

	// ErrNilAtlas is returned when a renderer is created without an atlas.
	ErrNilAtlas = errors.New("text: nil atlas")
)

// BakeReason classifies a bake failure.
type BakeReason int

// Bake failure reasons.
const (
	// ReasonUnreadable means the font file could not be read.
	ReasonUnreadable BakeReason = iota + 1

	// ReasonCorrupt means the bytes are not a usable TrueType font.
	ReasonCorrupt

	// ReasonInvalidParams means the bake configuration was rejected.
	ReasonInvalidParams

	// ReasonAtlasFull means the packer ran out of atlas space.
	ReasonAtlasFull
)

// String returns a human-readable name for the reason.
func (r BakeReason) String() string {
	switch r {
	case ReasonUnreadable:
		return "unreadable"
	case ReasonCorrupt:
		return "corrupt font"
	case ReasonInvalidParams:
		return "invalid parameters"
	case ReasonAtlasFull:
		return "atlas full"
	default:
		return fmt.Sprintf("BakeReason(%d)", int(r))
	}
}

// BakeError is returned by LoadFont and Bake.
type BakeError struct {
	Reason BakeReason
	Err    error
}

func (e *BakeError) Error() string {
	return fmt.Sprintf("text: bake failed (%s): %v", e.Reason, e.Err)
}

func (e *BakeError) Unwrap() error {
	return e.Err
}

// FileError records a failed font file operation.
type FileError struct {
	Path string
	Op   string
	Err  error
}

func (e *FileError) Error() string {
	return "text: " + e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error {
	return e.Err
}
