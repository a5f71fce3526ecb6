// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

// Package native implements gpucore.Device on the gogpu/wgpu HAL.
//
// Shader stages are validated by naga and turned into HAL shader modules;
// each linked program owns a bind group layout, a pipeline layout and two
// render pipelines (depth test on and off). Buffer writes land in CPU
// shadows, and every DrawIndexed call snapshots the bytes it reads into a
// per-frame arena. EndFrame uploads the arena, encodes one render pass into
// the caller's target view and submits it.
//
// Resources that may still be read by in-flight submissions are retired
// and destroyed once Queue.PollCompleted reports the submission done.
package native

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/cubey/gpucore"
	"github.com/gogpu/cubey/internal/wgsl"
)

// depthFormat is the format of the frame depth attachment.
const depthFormat = gputypes.TextureFormatDepth24PlusStencil8

type stage struct {
	module hal.ShaderModule
	src    *wgsl.Module
}

type program struct {
	desc     gpucore.ProgramDesc
	uniforms []byte
	bgLayout hal.BindGroupLayout
	layout   hal.PipelineLayout
	depthOn  hal.RenderPipeline
	depthOff hal.RenderPipeline
}

type texture struct {
	tex    hal.Texture
	view   hal.TextureView
	width  int
	height int
	format gpucore.TextureFormat
}

type buffer struct {
	usage gpucore.BufferUsage
	data  []byte
}

// Device implements gpucore.Device on a HAL device and queue.
//
// Thread Safety: Device is safe for concurrent use. All operations are
// serialized by a mutex; draw order follows call order.
type Device struct {
	mu     sync.Mutex
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat
	clear  gputypes.Color

	nextID uint64

	stages   map[gpucore.StageID]*stage
	programs map[gpucore.ProgramID]*program
	textures map[gpucore.TextureID]*texture
	buffers  map[gpucore.BufferID]*buffer

	sampler hal.Sampler

	depthTest bool
	frame     frameArena
	depth     depthTarget
	retired   []retired
	submitted uint64
	last      FrameStats

	closed bool
}

var _ gpucore.Device = (*Device)(nil)

// New wraps a HAL device and queue. Pipelines render into targets of the
// given color format; TextureFormatUndefined selects BGRA8Unorm.
func New(device hal.Device, queue hal.Queue, format gputypes.TextureFormat) (*Device, error) {
	if device == nil || queue == nil {
		return nil, ErrNilHALDevice
	}
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatBGRA8Unorm
	}
	return &Device{
		device:   device,
		queue:    queue,
		format:   format,
		clear:    gputypes.Color{A: 1},
		stages:   make(map[gpucore.StageID]*stage),
		programs: make(map[gpucore.ProgramID]*program),
		textures: make(map[gpucore.TextureID]*texture),
		buffers:  make(map[gpucore.BufferID]*buffer),
	}, nil
}

// SetLogger forwards l to the package logger.
func (d *Device) SetLogger(l *slog.Logger) {
	SetLogger(l)
}

// Format returns the color target format pipelines are built for.
func (d *Device) Format() gputypes.TextureFormat {
	return d.format
}

// SetClearColor sets the color the frame target is cleared to.
func (d *Device) SetClearColor(c gputypes.Color) {
	d.mu.Lock()
	d.clear = c
	d.mu.Unlock()
}

// newID generates a unique resource ID. Caller holds mu.
func (d *Device) newID() uint64 {
	d.nextID++
	return d.nextID
}

// === Shader Compilation ===

// CompileStage implements gpucore.Device.
func (d *Device) CompileStage(source string, kind gpucore.StageKind) (gpucore.StageID, error) {
	src, err := wgsl.Compile(source, kind)
	if err != nil {
		return gpucore.InvalidID, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return gpucore.InvalidID, ErrClosed
	}

	module, err := d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  kind.String(),
		Source: hal.ShaderSource{SPIRV: src.SPIRV},
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("failed to create shader module: %w", err)
	}

	id := gpucore.StageID(d.newID())
	d.stages[id] = &stage{module: module, src: src}
	slogger().Debug("native: stage compiled", "id", id, "kind", kind, "spirv_words", len(src.SPIRV))
	return id, nil
}

// ReleaseStage implements gpucore.Device. Pipelines created from the
// stage keep working.
func (d *Device) ReleaseStage(id gpucore.StageID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, ok := d.stages[id]
	if !ok {
		return
	}
	delete(d.stages, id)
	d.device.DestroyShaderModule(s.module)
}

// LinkProgram implements gpucore.Device.
func (d *Device) LinkProgram(vertex, fragment gpucore.StageID, desc *gpucore.ProgramDesc) (gpucore.ProgramID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return gpucore.InvalidID, ErrClosed
	}

	vs, ok := d.stages[vertex]
	if !ok {
		return gpucore.InvalidID, fmt.Errorf("%w: vertex stage %d", gpucore.ErrUnknownResource, vertex)
	}
	fs, ok := d.stages[fragment]
	if !ok {
		return gpucore.InvalidID, fmt.Errorf("%w: fragment stage %d", gpucore.ErrUnknownResource, fragment)
	}
	if err := wgsl.CheckInterface(vs.src, fs.src); err != nil {
		return gpucore.InvalidID, err
	}
	if desc == nil || len(desc.Layout.Attributes) == 0 || desc.Layout.Stride == 0 {
		return gpucore.InvalidID, fmt.Errorf("program has no vertex layout")
	}

	p, err := d.createProgram(vs, fs, desc)
	if err != nil {
		return gpucore.InvalidID, err
	}
	id := gpucore.ProgramID(d.newID())
	d.programs[id] = p
	slogger().Debug("native: program linked", "id", id, "label", desc.Label, "textured", desc.Textured)
	return id, nil
}

// DestroyProgram implements gpucore.Device.
func (d *Device) DestroyProgram(id gpucore.ProgramID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, ok := d.programs[id]
	if !ok {
		return
	}
	delete(d.programs, id)
	d.retire(func() { d.destroyProgram(p) })
}

// WriteUniforms implements gpucore.Device.
func (d *Device) WriteUniforms(id gpucore.ProgramID, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, ok := d.programs[id]
	if !ok {
		return fmt.Errorf("%w: program %d", gpucore.ErrUnknownResource, id)
	}
	if len(data) != len(p.uniforms) {
		return fmt.Errorf("%w: uniforms are %d bytes, got %d", gpucore.ErrSizeMismatch, len(p.uniforms), len(data))
	}
	copy(p.uniforms, data)
	return nil
}

// === Buffers ===

// AllocateBuffer implements gpucore.Device. The buffer lives in CPU memory
// until a draw snapshots it into the frame arena.
func (d *Device) AllocateBuffer(size int, usage gpucore.BufferUsage) (gpucore.BufferID, error) {
	if size <= 0 {
		return gpucore.InvalidID, gpucore.ErrInvalidSize
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return gpucore.InvalidID, ErrClosed
	}

	id := gpucore.BufferID(d.newID())
	d.buffers[id] = &buffer{usage: usage, data: make([]byte, size)}
	return id, nil
}

// StreamBufferData implements gpucore.Device.
func (d *Device) StreamBufferData(id gpucore.BufferID, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	b, ok := d.buffers[id]
	if !ok {
		return fmt.Errorf("%w: buffer %d", gpucore.ErrUnknownResource, id)
	}
	if len(data) > len(b.data) {
		return fmt.Errorf("%w: buffer holds %d bytes, got %d", gpucore.ErrSizeMismatch, len(b.data), len(data))
	}
	copy(b.data, data)
	return nil
}

// DestroyBuffer implements gpucore.Device.
func (d *Device) DestroyBuffer(id gpucore.BufferID) {
	d.mu.Lock()
	delete(d.buffers, id)
	d.mu.Unlock()
}

// === Draw Submission ===

// SetDepthTest implements gpucore.Device.
func (d *Device) SetDepthTest(enabled bool) {
	d.mu.Lock()
	d.depthTest = enabled
	d.mu.Unlock()
}

// DrawIndexed implements gpucore.Device. The vertex, index and uniform
// bytes are copied now; later writes do not affect this draw.
func (d *Device) DrawIndexed(cmd *gpucore.DrawCommand) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}

	p, ok := d.programs[cmd.Program]
	if !ok {
		return fmt.Errorf("%w: program %d", gpucore.ErrUnknownResource, cmd.Program)
	}
	vb, ok := d.buffers[cmd.Vertices]
	if !ok {
		return fmt.Errorf("%w: vertex buffer %d", gpucore.ErrUnknownResource, cmd.Vertices)
	}
	ib, ok := d.buffers[cmd.Indices]
	if !ok {
		return fmt.Errorf("%w: index buffer %d", gpucore.ErrUnknownResource, cmd.Indices)
	}
	if uint64(cmd.Count)*4 > uint64(len(ib.data)) {
		return fmt.Errorf("%w: %d indices exceed index buffer of %d bytes", gpucore.ErrSizeMismatch, cmd.Count, len(ib.data))
	}

	var tex *texture
	if p.desc.Textured {
		tex, ok = d.textures[cmd.Texture]
		if !ok {
			return fmt.Errorf("%w: texture %d", gpucore.ErrUnknownResource, cmd.Texture)
		}
	}

	d.frame.record(p, tex, d.depthTest, cmd.Count, vb.data, ib.data[:cmd.Count*4])
	return nil
}
