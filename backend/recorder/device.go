// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package recorder provides an in-memory gpucore.Device.
//
// Stages are compiled with naga exactly as on the GPU path, but draws are
// recorded instead of rasterized: every DrawIndexed call captures a copy
// of the vertex, index and uniform data it would have read. The recorder
// is used by tests and by headless runs.
package recorder

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/cubey/gpucore"
	"github.com/gogpu/cubey/internal/wgsl"
)

// Draw is a snapshot of one DrawIndexed call.
type Draw struct {
	Program   gpucore.ProgramID
	Texture   gpucore.TextureID
	Count     uint32
	DepthTest bool

	VertexData []byte
	IndexData  []byte
	Uniforms   []byte
}

// Floats decodes the vertex data as little-endian float32 values.
func (d Draw) Floats() []float32 {
	return decodeFloats(d.VertexData)
}

// UniformFloats decodes the uniform block as little-endian float32 values.
func (d Draw) UniformFloats() []float32 {
	return decodeFloats(d.Uniforms)
}

func decodeFloats(b []byte) []float32 {
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return out
}

// Texture is an uploaded texture.
type Texture struct {
	Width  int
	Height int
	Format gpucore.TextureFormat
	Pixels []byte
}

type program struct {
	desc     gpucore.ProgramDesc
	uniforms []byte
}

type buffer struct {
	usage  gpucore.BufferUsage
	data   []byte
	writes int
}

// Device records GPU calls in memory. It is not safe for concurrent use.
type Device struct {
	nextID uint64

	stages   map[gpucore.StageID]*wgsl.Module
	programs map[gpucore.ProgramID]*program
	textures map[gpucore.TextureID]*Texture
	buffers  map[gpucore.BufferID]*buffer

	depthTest bool
	draws     []Draw
}

var _ gpucore.Device = (*Device)(nil)

// New returns an empty recorder.
func New() *Device {
	return &Device{
		stages:   make(map[gpucore.StageID]*wgsl.Module),
		programs: make(map[gpucore.ProgramID]*program),
		textures: make(map[gpucore.TextureID]*Texture),
		buffers:  make(map[gpucore.BufferID]*buffer),
	}
}

func (d *Device) newID() uint64 {
	d.nextID++
	return d.nextID
}

// CompileStage implements gpucore.Device.
func (d *Device) CompileStage(source string, kind gpucore.StageKind) (gpucore.StageID, error) {
	mod, err := wgsl.Compile(source, kind)
	if err != nil {
		return gpucore.InvalidID, err
	}
	id := gpucore.StageID(d.newID())
	d.stages[id] = mod
	return id, nil
}

// ReleaseStage implements gpucore.Device.
func (d *Device) ReleaseStage(id gpucore.StageID) {
	delete(d.stages, id)
}

// LinkProgram implements gpucore.Device.
func (d *Device) LinkProgram(vertex, fragment gpucore.StageID, desc *gpucore.ProgramDesc) (gpucore.ProgramID, error) {
	vs, ok := d.stages[vertex]
	if !ok {
		return gpucore.InvalidID, fmt.Errorf("%w: vertex stage %d", gpucore.ErrUnknownResource, vertex)
	}
	fs, ok := d.stages[fragment]
	if !ok {
		return gpucore.InvalidID, fmt.Errorf("%w: fragment stage %d", gpucore.ErrUnknownResource, fragment)
	}
	if err := wgsl.CheckInterface(vs, fs); err != nil {
		return gpucore.InvalidID, err
	}
	if desc == nil || len(desc.Layout.Attributes) == 0 || desc.Layout.Stride == 0 {
		return gpucore.InvalidID, errors.New("program has no vertex layout")
	}

	id := gpucore.ProgramID(d.newID())
	p := &program{desc: *desc}
	p.desc.Layout.Attributes = append([]gpucore.VertexAttribute(nil), desc.Layout.Attributes...)
	if desc.UniformSize > 0 {
		p.uniforms = make([]byte, desc.UniformSize)
	}
	d.programs[id] = p
	return id, nil
}

// DestroyProgram implements gpucore.Device.
func (d *Device) DestroyProgram(id gpucore.ProgramID) {
	delete(d.programs, id)
}

// WriteUniforms implements gpucore.Device.
func (d *Device) WriteUniforms(id gpucore.ProgramID, data []byte) error {
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

// UploadTexture implements gpucore.Device.
func (d *Device) UploadTexture(width, height int, format gpucore.TextureFormat, pixels []byte) (gpucore.TextureID, error) {
	if width <= 0 || height <= 0 {
		return gpucore.InvalidID, gpucore.ErrInvalidSize
	}
	if want := width * height * format.BytesPerPixel(); want == 0 || len(pixels) != want {
		return gpucore.InvalidID, fmt.Errorf("%w: texture needs %d bytes, got %d", gpucore.ErrSizeMismatch, want, len(pixels))
	}
	id := gpucore.TextureID(d.newID())
	d.textures[id] = &Texture{
		Width:  width,
		Height: height,
		Format: format,
		Pixels: append([]byte(nil), pixels...),
	}
	return id, nil
}

// DestroyTexture implements gpucore.Device.
func (d *Device) DestroyTexture(id gpucore.TextureID) {
	delete(d.textures, id)
}

// AllocateBuffer implements gpucore.Device.
func (d *Device) AllocateBuffer(size int, usage gpucore.BufferUsage) (gpucore.BufferID, error) {
	if size <= 0 {
		return gpucore.InvalidID, gpucore.ErrInvalidSize
	}
	id := gpucore.BufferID(d.newID())
	d.buffers[id] = &buffer{usage: usage, data: make([]byte, size)}
	return id, nil
}

// StreamBufferData implements gpucore.Device.
func (d *Device) StreamBufferData(id gpucore.BufferID, data []byte) error {
	b, ok := d.buffers[id]
	if !ok {
		return fmt.Errorf("%w: buffer %d", gpucore.ErrUnknownResource, id)
	}
	if len(data) > len(b.data) {
		return fmt.Errorf("%w: buffer holds %d bytes, got %d", gpucore.ErrSizeMismatch, len(b.data), len(data))
	}
	copy(b.data, data)
	b.writes++
	return nil
}

// DestroyBuffer implements gpucore.Device.
func (d *Device) DestroyBuffer(id gpucore.BufferID) {
	delete(d.buffers, id)
}

// SetDepthTest implements gpucore.Device.
func (d *Device) SetDepthTest(enabled bool) {
	d.depthTest = enabled
}

// DrawIndexed implements gpucore.Device.
func (d *Device) DrawIndexed(cmd *gpucore.DrawCommand) error {
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
	if int(cmd.Count)*4 > len(ib.data) {
		return fmt.Errorf("%w: %d indices exceed index buffer", gpucore.ErrSizeMismatch, cmd.Count)
	}
	if p.desc.Textured {
		if _, ok := d.textures[cmd.Texture]; !ok {
			return fmt.Errorf("%w: texture %d", gpucore.ErrUnknownResource, cmd.Texture)
		}
	}

	d.draws = append(d.draws, Draw{
		Program:    cmd.Program,
		Texture:    cmd.Texture,
		Count:      cmd.Count,
		DepthTest:  d.depthTest,
		VertexData: append([]byte(nil), vb.data...),
		IndexData:  append([]byte(nil), ib.data[:cmd.Count*4]...),
		Uniforms:   append([]byte(nil), p.uniforms...),
	})
	return nil
}

// Draws returns the draws recorded since the last Reset.
func (d *Device) Draws() []Draw {
	return d.draws
}

// Reset forgets recorded draws. Resources stay alive.
func (d *Device) Reset() {
	d.draws = nil
}

// DepthTest reports the current depth-test state.
func (d *Device) DepthTest() bool {
	return d.depthTest
}

// LiveStages returns the number of compiled stages not yet released.
func (d *Device) LiveStages() int { return len(d.stages) }

// LivePrograms returns the number of linked programs not yet destroyed.
func (d *Device) LivePrograms() int { return len(d.programs) }

// LiveBuffers returns the number of allocated buffers not yet destroyed.
func (d *Device) LiveBuffers() int { return len(d.buffers) }

// Texture returns an uploaded texture.
func (d *Device) Texture(id gpucore.TextureID) (*Texture, bool) {
	t, ok := d.textures[id]
	return t, ok
}

// BufferWrites returns how many times StreamBufferData wrote to id.
func (d *Device) BufferWrites(id gpucore.BufferID) int {
	if b, ok := d.buffers[id]; ok {
		return b.writes
	}
	return 0
}

// BufferUsage returns the usage a buffer was allocated with.
func (d *Device) BufferUsage(id gpucore.BufferID) gpucore.BufferUsage {
	if b, ok := d.buffers[id]; ok {
		return b.usage
	}
	return 0
}
