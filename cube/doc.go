// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package cube draws a rotating, flat-shaded unit cube.
//
// The geometry is static: 24 vertices (four per face, so each face carries
// its own color) and 36 indices. Rotation accumulates per frame in degrees
// and is reset to zero once an angle leaves [-360, 360].
package cube
