// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpucore

// Resource IDs
//
// These opaque IDs represent GPU resources. Each device implementation
// maintains a mapping between IDs and actual backend resources.

// StageID is an opaque handle to a compiled shader stage.
type StageID uint64

// ProgramID is an opaque handle to a linked vertex+fragment program.
type ProgramID uint64

// TextureID is an opaque handle to a GPU texture.
type TextureID uint64

// BufferID is an opaque handle to a GPU buffer.
type BufferID uint64

// InvalidID is the zero value, representing an invalid/null resource.
const InvalidID = 0

// StageKind identifies the pipeline stage a shader source is compiled for.
type StageKind uint8

// Shader stages.
const (
	StageVertex StageKind = iota + 1
	StageFragment
)

// String returns the lowercase stage name.
func (k StageKind) String() string {
	switch k {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// EntryPoint returns the entry point name every stage of that kind declares.
func (k StageKind) EntryPoint() string {
	switch k {
	case StageVertex:
		return "vs_main"
	case StageFragment:
		return "fs_main"
	default:
		return ""
	}
}

// BufferUsage is a bitmask specifying how a buffer will be used.
type BufferUsage uint32

// Buffer usage flags.
const (
	// BufferUsageVertex indicates the buffer holds vertex data.
	BufferUsageVertex BufferUsage = 1 << 0

	// BufferUsageIndex indicates the buffer holds uint32 indices.
	BufferUsageIndex BufferUsage = 1 << 1

	// BufferUsageStream indicates the contents are overwritten frequently
	// (per glyph for the text stream buffer).
	BufferUsageStream BufferUsage = 1 << 2
)

// TextureFormat specifies the format of texture data.
type TextureFormat uint32

// Texture formats.
const (
	// TextureFormatR8Unorm is 8-bit red channel only, normalized unsigned integer.
	// Sampling returns the coverage in .r and nothing else.
	TextureFormatR8Unorm TextureFormat = iota + 1

	// TextureFormatRGBA8Unorm is 8-bit RGBA, normalized unsigned integer.
	TextureFormatRGBA8Unorm
)

// BytesPerPixel returns the size of one texel, or 0 for unknown formats.
func (f TextureFormat) BytesPerPixel() int {
	switch f {
	case TextureFormatR8Unorm:
		return 1
	case TextureFormatRGBA8Unorm:
		return 4
	default:
		return 0
	}
}

// VertexFormat is the type of a single vertex attribute.
type VertexFormat uint8

// Vertex attribute formats.
const (
	VertexFormatFloat32x2 VertexFormat = iota + 1
	VertexFormatFloat32x3
	VertexFormatFloat32x4
)

// Size returns the attribute size in bytes.
func (f VertexFormat) Size() uint32 {
	switch f {
	case VertexFormatFloat32x2:
		return 8
	case VertexFormatFloat32x3:
		return 12
	case VertexFormatFloat32x4:
		return 16
	default:
		return 0
	}
}

// VertexAttribute binds a shader @location to an offset in the vertex.
type VertexAttribute struct {
	Location uint32
	Format   VertexFormat
	Offset   uint32
}

// VertexLayout describes one interleaved vertex buffer.
type VertexLayout struct {
	// Stride is the byte distance between consecutive vertices.
	Stride uint32

	// Attributes are the fields read by the vertex stage.
	Attributes []VertexAttribute
}

// ProgramDesc describes the fixed-function state a program is linked with.
type ProgramDesc struct {
	// Label is an optional debug label.
	Label string

	// Layout is the vertex buffer layout consumed by the vertex stage.
	Layout VertexLayout

	// UniformSize is the byte size of the uniform block at @group(0) @binding(0).
	UniformSize uint32

	// Textured programs also bind a 2D texture at binding 1 and a filtering
	// sampler at binding 2.
	Textured bool

	// Blended programs composite premultiplied-alpha output over the target.
	Blended bool
}

// DrawCommand describes one indexed triangle-list draw.
type DrawCommand struct {
	Program  ProgramID
	Vertices BufferID
	Indices  BufferID

	// Count is the number of indices to draw.
	Count uint32

	// Texture is bound for textured programs; ignored otherwise.
	Texture TextureID
}
