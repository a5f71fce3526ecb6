// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	_ "embed"

	"github.com/gogpu/cubey/gpucore"
)

//go:embed shaders/cube_vs.wgsl
var cubeVertexSource string

//go:embed shaders/cube_fs.wgsl
var cubeFragmentSource string

//go:embed shaders/text_vs.wgsl
var textVertexSource string

//go:embed shaders/text_fs.wgsl
var textFragmentSource string

// Uniform block sizes of the embedded programs.
const (
	// CubeUniformSize holds one mat4x4<f32> (mvp).
	CubeUniformSize = 64

	// TextUniformSize holds a mat4x4<f32> projection followed by a vec4<f32> color.
	TextUniformSize = 80
)

// Vertex strides of the embedded programs.
const (
	// CubeVertexStride is position(3) + color(3) float32.
	CubeVertexStride = 6 * 4

	// TextVertexStride is (x, y, u, v) float32.
	TextVertexStride = 4 * 4
)

// CubeProgram returns the source of the flat-colored cube program.
func CubeProgram() ProgramSource {
	return ProgramSource{
		Vertex:   cubeVertexSource,
		Fragment: cubeFragmentSource,
		Desc: gpucore.ProgramDesc{
			Label: "cube",
			Layout: gpucore.VertexLayout{
				Stride: CubeVertexStride,
				Attributes: []gpucore.VertexAttribute{
					{Location: 0, Format: gpucore.VertexFormatFloat32x3, Offset: 0},
					{Location: 1, Format: gpucore.VertexFormatFloat32x3, Offset: 12},
				},
			},
			UniformSize: CubeUniformSize,
		},
	}
}

// TextProgram returns the source of the atlas-sampling text program.
func TextProgram() ProgramSource {
	return ProgramSource{
		Vertex:   textVertexSource,
		Fragment: textFragmentSource,
		Desc: gpucore.ProgramDesc{
			Label: "text",
			Layout: gpucore.VertexLayout{
				Stride: TextVertexStride,
				Attributes: []gpucore.VertexAttribute{
					{Location: 0, Format: gpucore.VertexFormatFloat32x4, Offset: 0},
				},
			},
			UniformSize: TextUniformSize,
			Textured:    true,
			Blended:     true,
		},
	}
}
