// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

import (
	"fmt"

	"github.com/gogpu/cubey/gpucore"
)

// GlyphMetrics locates one glyph in the atlas.
type GlyphMetrics struct {
	// X0, Y0, X1, Y1 is the glyph rectangle in atlas texels.
	X0, Y0, X1, Y1 int

	// XOff, YOff is the offset of the rectangle's top-left corner from the
	// pen position on the baseline. YOff is negative above the baseline.
	XOff, YOff float32

	// XAdvance is the distance the pen moves after this glyph, in pixels.
	XAdvance float32
}

// FontAtlas is a baked glyph range. Everything except the GPU texture is
// immutable after Bake.
type FontAtlas struct {
	Width  int
	Height int

	// Bitmap holds Width*Height coverage bytes, row-major.
	Bitmap []byte

	// Glyphs is indexed by codepoint - FirstChar.
	Glyphs    []GlyphMetrics
	FirstChar int

	PixelHeight float64

	// Family is the font family name, if the font declares one.
	Family string

	// Missing lists codepoints the font does not map; they were baked as
	// the font's .notdef glyph.
	Missing []rune

	texture gpucore.TextureID
}

// Count returns the number of baked glyphs.
func (a *FontAtlas) Count() int {
	return len(a.Glyphs)
}

// Glyph returns the metrics of c, or false when c is outside the baked range.
func (a *FontAtlas) Glyph(c byte) (GlyphMetrics, bool) {
	i := int(c) - a.FirstChar
	if i < 0 || i >= len(a.Glyphs) {
		return GlyphMetrics{}, false
	}
	return a.Glyphs[i], true
}

// MeasureString returns how far the pen moves when s is drawn at scale.
func (a *FontAtlas) MeasureString(s string, scale float32) float32 {
	var w float32
	for i := 0; i < len(s); i++ {
		if g, ok := a.Glyph(s[i]); ok {
			w += g.XAdvance * scale
		}
	}
	return w
}

// Texture returns the uploaded texture, or InvalidID before Upload.
func (a *FontAtlas) Texture() gpucore.TextureID {
	return a.texture
}

// Upload copies the bitmap into a single-channel texture. Calling Upload
// on an atlas that already has a texture is a no-op.
func (a *FontAtlas) Upload(dev gpucore.Device) error {
	if dev == nil {
		return ErrNilDevice
	}
	if a.texture != gpucore.InvalidID {
		return nil
	}
	id, err := dev.UploadTexture(a.Width, a.Height, gpucore.TextureFormatR8Unorm, a.Bitmap)
	if err != nil {
		return fmt.Errorf("text: upload atlas: %w", err)
	}
	a.texture = id
	slogger().Debug("text: atlas uploaded", "texture", uint64(id), "width", a.Width, "height", a.Height)
	return nil
}

// Release destroys the texture created by Upload.
func (a *FontAtlas) Release(dev gpucore.Device) {
	if dev == nil || a.texture == gpucore.InvalidID {
		return
	}
	dev.DestroyTexture(a.texture)
	a.texture = gpucore.InvalidID
}
