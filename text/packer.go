// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

// rowPacker places rectangles left-to-right in rows, single pass.
//
// Placement starts at (padding, padding). When a rectangle would reach the
// right edge, a new row starts below the tallest rectangle of the current
// row. Packing fails once a rectangle would reach the bottom edge, or the
// right edge of an empty row. The result
// depends only on the order and sizes of the requests.
type rowPacker struct {
	width   int
	height  int
	padding int

	x      int // next free column in the current row
	y      int // top of the current row
	bottom int // first free row below everything placed so far
}

func newRowPacker(width, height, padding int) *rowPacker {
	return &rowPacker{
		width:   width,
		height:  height,
		padding: padding,
		x:       padding,
		y:       padding,
		bottom:  padding,
	}
}

// place reserves a w×h rectangle and returns its top-left corner.
func (p *rowPacker) place(w, h int) (x, y int, ok bool) {
	if p.padding+w+p.padding >= p.width {
		return -1, -1, false
	}
	if p.x+w+p.padding >= p.width {
		// advance to next row
		p.y = p.bottom
		p.x = p.padding
	}
	if p.y+h+p.padding >= p.height {
		return -1, -1, false
	}
	x, y = p.x, p.y
	p.x += w + p.padding
	p.bottom = max(p.bottom, p.y+h+p.padding)
	return x, y, true
}

// usedHeight returns the number of texel rows touched so far.
func (p *rowPacker) usedHeight() int {
	return p.bottom
}
