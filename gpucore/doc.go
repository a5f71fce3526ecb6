// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpucore defines the rendering context shared by the cube and text
// pipelines.
//
// The [Device] interface is the small capability set the renderers need:
//
//	CompileStage / ReleaseStage      shader stage objects
//	LinkProgram / DestroyProgram     linked render programs
//	UploadTexture / DestroyTexture   sampled textures (font atlas)
//	AllocateBuffer / StreamBufferData / DestroyBuffer
//	WriteUniforms                    per-program uniform block
//	SetDepthTest / DrawIndexed       draw submission
//
// Renderers depend only on this interface, so layout and pen-advance logic can
// be tested without a GPU:
//
//	               +------------------+
//	               |   text / cube    |
//	               +--------+---------+
//	                        |
//	              gpucore.Device
//	                        |
//	         +--------------+--------------+
//	         |                             |
//	+--------v--------+          +---------v--------+
//	| backend/native  |          | backend/recorder |
//	|  (wgpu hal)     |          |  (in memory)     |
//	+-----------------+          +------------------+
//
// # Resource Management
//
// Resources are referenced through opaque IDs ([StageID], [ProgramID],
// [TextureID], [BufferID]). The zero value [InvalidID] never names a live
// resource; a failed compile or link reports it so callers can keep running
// with the affected pipeline disabled.
package gpucore
