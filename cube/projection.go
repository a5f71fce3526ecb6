// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cube

import "github.com/go-gl/mathgl/mgl32"

// depthRemap maps OpenGL clip depth [-w, w] to the [0, w] range WebGPU
// rasterizes.
var depthRemap = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// Perspective returns a perspective projection for a vertical field of
// view in degrees, with depth in WebGPU clip range.
func Perspective(fovDegrees, aspect, near, far float32) mgl32.Mat4 {
	return depthRemap.Mul4(mgl32.Perspective(mgl32.DegToRad(fovDegrees), aspect, near, far))
}

// View returns a camera looking down -Z from distance units in front of
// the origin.
func View(distance float32) mgl32.Mat4 {
	return mgl32.Translate3D(0, 0, -distance)
}

// MVP composes projection * view * model.
func MVP(model, view, projection mgl32.Mat4) mgl32.Mat4 {
	return projection.Mul4(view).Mul4(model)
}
