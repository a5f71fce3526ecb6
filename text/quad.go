// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

import (
	"encoding/binary"
	"math"
)

// Quad layout.
const (
	QuadVertices = 6
	QuadFloats   = QuadVertices * 4 // (x, y, u, v) per vertex
	QuadBytes    = QuadFloats * 4
)

// Pen is the drawing position on the baseline.
type Pen struct {
	X, Y float32
}

// Quad is two triangles covering one glyph, flattened to (x, y, u, v)
// vertices.
type Quad [QuadFloats]float32

// GlyphQuad builds the quad for c at the pen and advances the pen by the
// scaled glyph advance. It returns false and leaves the pen untouched when
// c is outside the baked range.
func (a *FontAtlas) GlyphQuad(pen *Pen, c byte, scale float32) (Quad, bool) {
	g, ok := a.Glyph(c)
	if !ok {
		return Quad{}, false
	}

	// snap the top-left corner to whole pixels
	x0 := float32(math.Floor(float64(pen.X + g.XOff*scale + 0.5)))
	y0 := float32(math.Floor(float64(pen.Y + g.YOff*scale + 0.5)))
	x1 := x0 + float32(g.X1-g.X0)*scale
	y1 := y0 + float32(g.Y1-g.Y0)*scale

	w, h := float32(a.Width), float32(a.Height)
	s0, t0 := float32(g.X0)/w, float32(g.Y0)/h
	s1, t1 := float32(g.X1)/w, float32(g.Y1)/h

	pen.X += g.XAdvance * scale

	return Quad{
		x0, y0, s0, t0,
		x0, y1, s0, t1,
		x1, y1, s1, t1,

		x0, y0, s0, t0,
		x1, y1, s1, t1,
		x1, y0, s1, t0,
	}, true
}

// putBytes writes q as little-endian float32 values into dst, which must
// hold at least QuadBytes bytes.
func (q *Quad) putBytes(dst []byte) {
	for i, v := range q {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(v))
	}
}
