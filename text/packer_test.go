// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

import "testing"

func TestRowPacker_Basic(t *testing.T) {
	p := newRowPacker(50, 100, 1)

	x, y, ok := p.place(20, 20)
	if !ok || x != 1 || y != 1 {
		t.Fatalf("first: got (%d,%d,%v), want (1,1,true)", x, y, ok)
	}

	x, y, ok = p.place(20, 20)
	if !ok || x != 22 || y != 1 {
		t.Fatalf("second: got (%d,%d,%v), want (22,1,true)", x, y, ok)
	}
}

func TestRowPacker_Wrap(t *testing.T) {
	p := newRowPacker(50, 100, 1)
	p.place(20, 20)
	p.place(20, 5)

	// 43 + 20 + 1 reaches the right edge
	x, y, ok := p.place(20, 10)
	if !ok {
		t.Fatal("wrap failed")
	}
	if x != 1 || y != 22 {
		t.Errorf("got (%d,%d), want (1,22) below the tallest glyph", x, y)
	}
	if p.usedHeight() != 33 {
		t.Errorf("usedHeight = %d, want 33", p.usedHeight())
	}
}

func TestRowPacker_Full(t *testing.T) {
	p := newRowPacker(10, 10, 1)
	if _, _, ok := p.place(5, 8); ok {
		t.Error("glyph touching the bottom edge should not fit")
	}

	p = newRowPacker(10, 10, 1)
	if _, _, ok := p.place(5, 7); !ok {
		t.Error("glyph with one texel to spare should fit")
	}
}

func TestRowPacker_EmptyGlyph(t *testing.T) {
	p := newRowPacker(10, 10, 1)
	x, y, ok := p.place(0, 0)
	if !ok || x != 1 || y != 1 {
		t.Fatalf("got (%d,%d,%v), want (1,1,true)", x, y, ok)
	}
	x, _, _ = p.place(3, 3)
	if x != 2 {
		t.Errorf("empty glyph still consumes padding: x = %d, want 2", x)
	}
}

func TestRowPacker_TooWide(t *testing.T) {
	p := newRowPacker(10, 100, 1)
	if _, _, ok := p.place(30, 5); ok {
		t.Fatal("glyph wider than the atlas should not fit")
	}
	if _, _, ok := p.place(8, 5); ok {
		t.Error("glyph touching the right edge should not fit")
	}
	x, y, ok := p.place(7, 5)
	if !ok || x != 1 || y != 1 {
		t.Errorf("got (%d,%d,%v), want (1,1,true)", x, y, ok)
	}
}
