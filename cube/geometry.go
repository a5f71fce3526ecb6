// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cube

// Geometry sizes.
const (
	VertexCount = 24
	IndexCount  = 36

	// floatsPerVertex is position(3) + color(3).
	floatsPerVertex = 6
)

// Vertices is the interleaved position+color data of the cube, one quad
// per face: red (back), green (front), blue (left), yellow (right),
// magenta (bottom), cyan (top).
var Vertices = [VertexCount * floatsPerVertex]float32{
	-0.5, -0.5, -0.5, 1, 0, 0,
	0.5, -0.5, -0.5, 1, 0, 0,
	0.5, 0.5, -0.5, 1, 0, 0,
	-0.5, 0.5, -0.5, 1, 0, 0,

	-0.5, -0.5, 0.5, 0, 1, 0,
	0.5, -0.5, 0.5, 0, 1, 0,
	0.5, 0.5, 0.5, 0, 1, 0,
	-0.5, 0.5, 0.5, 0, 1, 0,

	-0.5, 0.5, 0.5, 0, 0, 1,
	-0.5, 0.5, -0.5, 0, 0, 1,
	-0.5, -0.5, -0.5, 0, 0, 1,
	-0.5, -0.5, 0.5, 0, 0, 1,

	0.5, 0.5, 0.5, 1, 1, 0,
	0.5, 0.5, -0.5, 1, 1, 0,
	0.5, -0.5, -0.5, 1, 1, 0,
	0.5, -0.5, 0.5, 1, 1, 0,

	-0.5, -0.5, -0.5, 1, 0, 1,
	0.5, -0.5, -0.5, 1, 0, 1,
	0.5, -0.5, 0.5, 1, 0, 1,
	-0.5, -0.5, 0.5, 1, 0, 1,

	-0.5, 0.5, -0.5, 0, 1, 1,
	0.5, 0.5, -0.5, 0, 1, 1,
	0.5, 0.5, 0.5, 0, 1, 1,
	-0.5, 0.5, 0.5, 0, 1, 1,
}

// Indices draws each face as two triangles (0,1,2) and (2,3,0).
var Indices = func() [IndexCount]uint32 {
	var idx [IndexCount]uint32
	for face := range 6 {
		base := uint32(face * 4)
		copy(idx[face*6:], []uint32{base, base + 1, base + 2, base + 2, base + 3, base})
	}
	return idx
}()
