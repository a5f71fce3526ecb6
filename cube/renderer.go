// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cube

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/cubey/gpucore"
	"github.com/gogpu/cubey/shader"
)

// ErrNilDevice is returned when a renderer is created without a device.
var ErrNilDevice = errors.New("cube: nil device")

// Renderer owns the cube program, its static buffers, and the rotation.
type Renderer struct {
	// Rotation is the current orientation. Callers update it once per frame.
	Rotation Rotation

	dev      gpucore.Device
	program  gpucore.ProgramID
	vertices gpucore.BufferID
	indices  gpucore.BufferID

	uniformBuf [shader.CubeUniformSize]byte
}

// NewRenderer builds the cube program and uploads the static geometry.
// A program that fails to build is logged; Draw then draws nothing.
func NewRenderer(dev gpucore.Device, rot Rotation) (*Renderer, error) {
	if dev == nil {
		return nil, ErrNilDevice
	}
	r := &Renderer{Rotation: rot, dev: dev}

	// build failures are already logged by shader.Build
	r.program, _ = shader.Build(dev, shader.CubeProgram())

	vdata := make([]byte, len(Vertices)*4)
	for i, v := range Vertices {
		binary.LittleEndian.PutUint32(vdata[i*4:], math.Float32bits(v))
	}
	idata := make([]byte, len(Indices)*4)
	for i, v := range Indices {
		binary.LittleEndian.PutUint32(idata[i*4:], v)
	}

	var err error
	if r.vertices, err = upload(dev, vdata, gpucore.BufferUsageVertex); err != nil {
		r.Close()
		return nil, fmt.Errorf("cube: vertex buffer: %w", err)
	}
	if r.indices, err = upload(dev, idata, gpucore.BufferUsageIndex); err != nil {
		r.Close()
		return nil, fmt.Errorf("cube: index buffer: %w", err)
	}

	slogger().Debug("cube: renderer ready",
		"program", uint64(r.program),
		"vertices", VertexCount,
		"indices", IndexCount)
	return r, nil
}

func upload(dev gpucore.Device, data []byte, usage gpucore.BufferUsage) (gpucore.BufferID, error) {
	id, err := dev.AllocateBuffer(len(data), usage)
	if err != nil {
		return gpucore.InvalidID, err
	}
	if err := dev.StreamBufferData(id, data); err != nil {
		dev.DestroyBuffer(id)
		return gpucore.InvalidID, err
	}
	return id, nil
}

// Program returns the cube program, InvalidID if it failed to build.
func (r *Renderer) Program() gpucore.ProgramID {
	return r.program
}

// Draw writes projection * view * model to the uniform block and draws
// all 36 indices.
func (r *Renderer) Draw(view, projection mgl32.Mat4) error {
	if r.program == gpucore.InvalidID {
		return nil
	}

	mvp := MVP(r.Rotation.Model(), view, projection)
	for i, v := range mvp {
		binary.LittleEndian.PutUint32(r.uniformBuf[i*4:], math.Float32bits(v))
	}
	if err := r.dev.WriteUniforms(r.program, r.uniformBuf[:]); err != nil {
		return fmt.Errorf("cube: write uniforms: %w", err)
	}

	err := r.dev.DrawIndexed(&gpucore.DrawCommand{
		Program:  r.program,
		Vertices: r.vertices,
		Indices:  r.indices,
		Count:    IndexCount,
	})
	if err != nil {
		return fmt.Errorf("cube: draw: %w", err)
	}
	return nil
}

// Close releases the program and buffers. Close is idempotent.
func (r *Renderer) Close() {
	if r.vertices != gpucore.InvalidID {
		r.dev.DestroyBuffer(r.vertices)
		r.vertices = gpucore.InvalidID
	}
	if r.indices != gpucore.InvalidID {
		r.dev.DestroyBuffer(r.indices)
		r.indices = gpucore.InvalidID
	}
	if r.program != gpucore.InvalidID {
		r.dev.DestroyProgram(r.program)
		r.program = gpucore.InvalidID
	}
}
