// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpucore

// Device abstracts over the rendering backends.
//
// This interface lets the text and cube renderers run against the wgpu HAL
// (backend/native) or an in-memory recorder (backend/recorder). Calls are
// made from a single goroutine, in submission order.
//
// Resource lifecycle:
//   - Resources are created via Compile/Link/Upload/Allocate methods
//   - Resources must be explicitly released via Release*/Destroy* methods
//   - IDs become invalid after release and are never reused
type Device interface {
	// === Shader Compilation ===

	// CompileStage compiles WGSL source for one stage. On failure the
	// returned ID is InvalidID and the error carries the compiler log.
	CompileStage(source string, kind StageKind) (StageID, error)

	// ReleaseStage frees a stage object. Programs already linked from it
	// stay valid.
	ReleaseStage(id StageID)

	// LinkProgram links a vertex and a fragment stage. On failure the
	// returned ID is InvalidID and the error carries the link log.
	LinkProgram(vertex, fragment StageID, desc *ProgramDesc) (ProgramID, error)

	// DestroyProgram releases a linked program.
	DestroyProgram(id ProgramID)

	// WriteUniforms replaces the program's uniform block. len(data) must
	// equal ProgramDesc.UniformSize.
	WriteUniforms(id ProgramID, data []byte) error

	// === Textures ===

	// UploadTexture creates a sampled 2D texture initialized with pixels.
	// len(pixels) must be width*height*format.BytesPerPixel().
	UploadTexture(width, height int, format TextureFormat, pixels []byte) (TextureID, error)

	// DestroyTexture releases a texture.
	DestroyTexture(id TextureID)

	// === Buffers ===

	// AllocateBuffer creates a buffer of size bytes.
	AllocateBuffer(size int, usage BufferUsage) (BufferID, error)

	// StreamBufferData overwrites the buffer contents starting at offset 0.
	// Draws recorded afterwards observe the new contents; draws recorded
	// before keep the contents they were recorded with.
	StreamBufferData(id BufferID, data []byte) error

	// DestroyBuffer releases a buffer.
	DestroyBuffer(id BufferID)

	// === Draw Submission ===

	// SetDepthTest enables or disables depth testing for subsequent draws.
	SetDepthTest(enabled bool)

	// DrawIndexed issues one indexed triangle-list draw.
	DrawIndexed(cmd *DrawCommand) error
}
