// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

import (
	"bytes"

	gotext "github.com/go-text/typesetting/font"
)

// missingGlyphs returns the codepoints in [first, first+count) that the
// font's cmap does not map to a glyph.
func missingGlyphs(data []byte, first, count int) ([]rune, error) {
	face, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var missing []rune
	for i := range count {
		r := rune(first + i)
		if _, ok := face.NominalGlyph(r); !ok {
			missing = append(missing, r)
		}
	}
	return missing, nil
}
