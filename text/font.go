// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

import "os"

// LoadFont reads a font file into memory.
//
// A missing or unreadable file yields a *BakeError with ReasonUnreadable
// wrapping a *FileError; an empty file yields ReasonCorrupt.
func LoadFont(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &BakeError{
			Reason: ReasonUnreadable,
			Err:    &FileError{Path: path, Op: "read", Err: err},
		}
	}
	if len(data) == 0 {
		return nil, &BakeError{
			Reason: ReasonCorrupt,
			Err:    &FileError{Path: path, Op: "read", Err: ErrEmptyFontData},
		}
	}
	slogger().Debug("text: font loaded", "path", path, "bytes", len(data))
	return data, nil
}
