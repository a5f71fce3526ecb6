// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// The baked glyph range: codepoints 32 through 127.
const (
	FirstChar  = 32
	GlyphCount = 96
)

// glyphPadding is the empty border kept around every glyph in the atlas.
const glyphPadding = 1

// BakeConfig holds parameters for Bake.
type BakeConfig struct {
	// PixelHeight is the distance from the highest ascender to the lowest
	// descender, in atlas texels.
	PixelHeight float64

	// AtlasWidth and AtlasHeight are the atlas size in texels.
	AtlasWidth  int
	AtlasHeight int

	// FirstChar and Count select the baked codepoints. Only FirstChar 32
	// with Count 96, codepoints 32 through 127, is accepted.
	FirstChar int
	Count     int
}

// DefaultBakeConfig returns a 48 px bake into a 512×512 atlas.
func DefaultBakeConfig() BakeConfig {
	return BakeConfig{
		PixelHeight: 48,
		AtlasWidth:  512,
		AtlasHeight: 512,
		FirstChar:   FirstChar,
		Count:       GlyphCount,
	}
}

// Validate checks the configuration. It returns nil or an error describing
// the first invalid field.
func (c BakeConfig) Validate() error {
	if c.PixelHeight <= 0 {
		return fmt.Errorf("PixelHeight must be positive, got %v", c.PixelHeight)
	}
	if c.AtlasWidth <= 0 || c.AtlasHeight <= 0 {
		return fmt.Errorf("atlas size must be positive, got %dx%d", c.AtlasWidth, c.AtlasHeight)
	}
	if c.FirstChar != FirstChar || c.Count != GlyphCount {
		return fmt.Errorf("glyph range must start at %d and hold %d glyphs, got %d+%d",
			FirstChar, GlyphCount, c.FirstChar, c.Count)
	}
	return nil
}

// Bake rasterizes the configured glyph range of a TrueType font into a
// single-channel atlas. Identical inputs produce identical atlases.
//
// Errors are *BakeError with ReasonInvalidParams, ReasonCorrupt or
// ReasonAtlasFull.
func Bake(data []byte, cfg BakeConfig) (*FontAtlas, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &BakeError{Reason: ReasonInvalidParams, Err: err}
	}
	if len(data) == 0 {
		return nil, &BakeError{Reason: ReasonCorrupt, Err: ErrEmptyFontData}
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, &BakeError{Reason: ReasonCorrupt, Err: fmt.Errorf("parse font: %w", err)}
	}

	size, err := pixelHeightSize(f, cfg.PixelHeight)
	if err != nil {
		return nil, &BakeError{Reason: ReasonCorrupt, Err: err}
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, &BakeError{Reason: ReasonCorrupt, Err: fmt.Errorf("create face: %w", err)}
	}
	defer face.Close()

	img := image.NewAlpha(image.Rect(0, 0, cfg.AtlasWidth, cfg.AtlasHeight))
	packer := newRowPacker(cfg.AtlasWidth, cfg.AtlasHeight, glyphPadding)
	glyphs := make([]GlyphMetrics, cfg.Count)

	for i := range glyphs {
		r := rune(cfg.FirstChar + i)

		dr, mask, maskp, advance, ok := face.Glyph(fixed.Point26_6{}, r)
		if !ok {
			// nothing to draw; keep the advance
			dr, mask = image.Rectangle{}, nil
			advance, _ = face.GlyphAdvance(r)
		}

		gw, gh := dr.Dx(), dr.Dy()
		x, y, placed := packer.place(gw, gh)
		if !placed {
			return nil, &BakeError{
				Reason: ReasonAtlasFull,
				Err: fmt.Errorf("%w: glyph %q (%dx%d) does not fit %dx%d at %v px",
					ErrAtlasFull, r, gw, gh, cfg.AtlasWidth, cfg.AtlasHeight, cfg.PixelHeight),
			}
		}

		if mask != nil && !dr.Empty() {
			draw.Draw(img, image.Rect(x, y, x+gw, y+gh), mask, maskp, draw.Src)
		}

		glyphs[i] = GlyphMetrics{
			X0:       x,
			Y0:       y,
			X1:       x + gw,
			Y1:       y + gh,
			XOff:     float32(dr.Min.X),
			YOff:     float32(dr.Min.Y),
			XAdvance: fixedToFloat32(advance),
		}
	}

	atlas := &FontAtlas{
		Width:       cfg.AtlasWidth,
		Height:      cfg.AtlasHeight,
		Bitmap:      img.Pix,
		Glyphs:      glyphs,
		FirstChar:   cfg.FirstChar,
		PixelHeight: cfg.PixelHeight,
	}
	if family, err := f.Name(nil, sfnt.NameIDFamily); err == nil {
		atlas.Family = family
	}

	missing, err := missingGlyphs(data, cfg.FirstChar, cfg.Count)
	if err != nil {
		slogger().Debug("text: coverage check skipped", "err", err)
	}
	atlas.Missing = missing
	if len(missing) > 0 {
		slogger().Debug("text: font lacks glyphs, baked as .notdef",
			"family", atlas.Family,
			"missing", string(missing))
	}

	slogger().Info("text: font baked",
		"family", atlas.Family,
		"pixel_height", cfg.PixelHeight,
		"atlas", fmt.Sprintf("%dx%d", cfg.AtlasWidth, cfg.AtlasHeight),
		"rows_used", packer.usedHeight())

	return atlas, nil
}

// pixelHeightSize returns the face size (in pixels per em) at which the
// font's ascent plus descent spans pixelHeight pixels.
func pixelHeightSize(f *opentype.Font, pixelHeight float64) (float64, error) {
	var buf sfnt.Buffer
	upem := f.UnitsPerEm()

	// at ppem == unitsPerEm, metrics come back in font units
	m, err := f.Metrics(&buf, fixed.I(int(upem)), font.HintingNone)
	if err != nil {
		return 0, fmt.Errorf("read metrics: %w", err)
	}
	extent := fixedToFloat64(m.Ascent + m.Descent)
	if extent <= 0 {
		return 0, fmt.Errorf("font has non-positive vertical extent %v", extent)
	}
	return pixelHeight * float64(upem) / extent, nil
}

// fixedToFloat64 converts fixed.Int26_6 to float64.
func fixedToFloat64(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}

func fixedToFloat32(x fixed.Int26_6) float32 {
	return float32(x) / 64.0
}
