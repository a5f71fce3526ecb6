// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package native

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// uniformAlignment is the minimum uniform buffer binding offset alignment.
const uniformAlignment = 256

func alignUp(n, a int) int {
	return (n + a - 1) / a * a
}

// drawRecord is one DrawIndexed call with the arena offsets of its data.
type drawRecord struct {
	prog      *program
	tex       *texture
	depthTest bool
	count     uint32

	vertexOffset  uint64
	indexOffset   uint64
	uniformOffset uint64
}

// frameArena accumulates the draws of the frame being recorded.
type frameArena struct {
	draws    []drawRecord
	vertices []byte
	indices  []byte
	uniforms []byte
}

// record snapshots the draw's data into the arena.
func (a *frameArena) record(p *program, tex *texture, depthTest bool, count uint32, vertices, indices []byte) {
	r := drawRecord{
		prog:         p,
		tex:          tex,
		depthTest:    depthTest,
		count:        count,
		vertexOffset: uint64(len(a.vertices)),
		indexOffset:  uint64(len(a.indices)),
	}
	a.vertices = append(a.vertices, vertices...)
	a.vertices = pad(a.vertices, 4)
	a.indices = append(a.indices, indices...)

	if len(p.uniforms) > 0 {
		a.uniforms = pad(a.uniforms, uniformAlignment)
		r.uniformOffset = uint64(len(a.uniforms))
		a.uniforms = append(a.uniforms, p.uniforms...)
	}
	a.draws = append(a.draws, r)
}

func (a *frameArena) reset() {
	a.draws = a.draws[:0]
	a.vertices = a.vertices[:0]
	a.indices = a.indices[:0]
	a.uniforms = a.uniforms[:0]
}

func pad(b []byte, align int) []byte {
	for len(b)%align != 0 {
		b = append(b, 0)
	}
	return b
}

// retired is a release deferred until a submission completes.
type retired struct {
	after   uint64
	release func()
}

// retire defers release until the next submission completes. Caller
// holds mu.
func (d *Device) retire(release func()) {
	d.retireAt(d.submitted+1, release)
}

func (d *Device) retireAt(index uint64, release func()) {
	d.retired = append(d.retired, retired{after: index, release: release})
}

// reclaim runs the releases whose submissions have completed. Caller
// holds mu.
func (d *Device) reclaim() {
	if len(d.retired) == 0 {
		return
	}
	done := d.queue.PollCompleted()
	kept := d.retired[:0]
	for _, r := range d.retired {
		if r.after <= done {
			r.release()
			continue
		}
		kept = append(kept, r)
	}
	for i := len(kept); i < len(d.retired); i++ {
		d.retired[i] = retired{}
	}
	d.retired = kept
}

// FrameStats describes the last submitted frame.
type FrameStats struct {
	Draws        int
	VertexBytes  int
	IndexBytes   int
	UniformBytes int

	// Submission is the queue submission index of the frame.
	Submission uint64
}

// LastFrame returns statistics of the most recent EndFrame.
func (d *Device) LastFrame() FrameStats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last
}

// PendingReleases returns the number of deferred releases still waiting
// for their submission to complete.
func (d *Device) PendingReleases() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.retired)
}

// frameResources are the per-frame HAL objects built from the arena.
type frameResources struct {
	vertices   hal.Buffer
	indices    hal.Buffer
	uniforms   hal.Buffer
	bindGroups []hal.BindGroup
}

func (d *Device) destroyFrameResources(r *frameResources) {
	for _, bg := range r.bindGroups {
		d.device.DestroyBindGroup(bg)
	}
	for _, b := range []hal.Buffer{r.vertices, r.indices, r.uniforms} {
		if b != nil {
			d.device.DestroyBuffer(b)
		}
	}
}

// uploadArena creates and fills the frame buffers and per-draw bind groups.
func (d *Device) uploadArena() (*frameResources, error) {
	r := &frameResources{}
	a := &d.frame

	mk := func(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
		if len(data) == 0 {
			return nil, nil //nolint:nilnil // nothing to upload
		}
		buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
			Label: label,
			Size:  uint64(alignUp(len(data), 4)),
			Usage: usage | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return nil, fmt.Errorf("create %s buffer: %w", label, err)
		}
		if err := d.queue.WriteBuffer(buf, 0, pad(data, 4)); err != nil {
			d.device.DestroyBuffer(buf)
			return nil, fmt.Errorf("write %s buffer: %w", label, err)
		}
		return buf, nil
	}

	var err error
	if r.vertices, err = mk("frame_vertices", a.vertices, gputypes.BufferUsageVertex); err != nil {
		return nil, err
	}
	if r.indices, err = mk("frame_indices", a.indices, gputypes.BufferUsageIndex); err != nil {
		d.destroyFrameResources(r)
		return nil, err
	}
	if r.uniforms, err = mk("frame_uniforms", a.uniforms, gputypes.BufferUsageUniform); err != nil {
		d.destroyFrameResources(r)
		return nil, err
	}

	r.bindGroups = make([]hal.BindGroup, 0, len(a.draws))
	for i := range a.draws {
		bg, err := d.createBindGroup(&a.draws[i], r.uniforms)
		if err != nil {
			d.destroyFrameResources(r)
			return nil, err
		}
		r.bindGroups = append(r.bindGroups, bg)
	}
	return r, nil
}

func (d *Device) createBindGroup(dr *drawRecord, uniforms hal.Buffer) (hal.BindGroup, error) {
	var entries []gputypes.BindGroupEntry
	if n := len(dr.prog.uniforms); n > 0 {
		entries = append(entries, gputypes.BindGroupEntry{
			Binding: bindingUniforms,
			Resource: gputypes.BufferBinding{
				Buffer: uniforms.NativeHandle(),
				Offset: dr.uniformOffset,
				Size:   uint64(n),
			},
		})
	}
	if dr.prog.desc.Textured {
		entries = append(entries,
			gputypes.BindGroupEntry{
				Binding:  bindingTexture,
				Resource: gputypes.TextureViewBinding{TextureView: dr.tex.view.NativeHandle()},
			},
			gputypes.BindGroupEntry{
				Binding:  bindingSampler,
				Resource: gputypes.SamplerBinding{Sampler: d.sampler.NativeHandle()},
			},
		)
	}
	bg, err := d.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   dr.prog.desc.Label + "_bind",
		Layout:  dr.prog.bgLayout,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s bind group: %w", dr.prog.desc.Label, err)
	}
	return bg, nil
}

// EndFrame encodes every draw recorded since the previous EndFrame into one
// render pass targeting view, then submits it. The target is cleared to the
// clear color and a width×height depth buffer is cleared to 1.
//
// The recorded draws are consumed even when EndFrame fails.
func (d *Device) EndFrame(view hal.TextureView, width, height uint32) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	defer d.frame.reset()

	if d.closed {
		return ErrClosed
	}
	if view == nil {
		return ErrNilTarget
	}
	if width == 0 || height == 0 {
		return ErrInvalidDimensions
	}

	d.reclaim()
	if err := d.ensureDepth(width, height); err != nil {
		return err
	}

	res, err := d.uploadArena()
	if err != nil {
		return err
	}

	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "cubey_frame"})
	if err != nil {
		d.destroyFrameResources(res)
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("cubey_frame"); err != nil {
		encoder.Destroy()
		d.destroyFrameResources(res)
		return fmt.Errorf("begin encoding: %w", err)
	}

	d.encodePass(encoder, view, width, height, res)

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		encoder.Destroy()
		d.destroyFrameResources(res)
		return fmt.Errorf("end encoding: %w", err)
	}

	index, err := d.queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		d.device.FreeCommandBuffer(cmdBuf)
		encoder.Destroy()
		d.destroyFrameResources(res)
		return fmt.Errorf("submit: %w", err)
	}
	d.submitted = index
	d.retireAt(index, func() {
		d.device.FreeCommandBuffer(cmdBuf)
		encoder.Destroy()
		d.destroyFrameResources(res)
	})

	d.last = FrameStats{
		Draws:        len(d.frame.draws),
		VertexBytes:  len(d.frame.vertices),
		IndexBytes:   len(d.frame.indices),
		UniformBytes: len(d.frame.uniforms),
		Submission:   index,
	}
	slogger().Debug("native: frame submitted",
		"submission", index,
		"draws", d.last.Draws,
		"vertex_bytes", d.last.VertexBytes)
	return nil
}

func (d *Device) encodePass(encoder hal.CommandEncoder, view hal.TextureView, width, height uint32, res *frameResources) {
	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "cubey_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: d.clear,
		}},
		DepthStencilAttachment: &hal.RenderPassDepthStencilAttachment{
			View:              d.depth.view,
			DepthLoadOp:       gputypes.LoadOpClear,
			DepthStoreOp:      gputypes.StoreOpDiscard,
			DepthClearValue:   1.0,
			StencilLoadOp:     gputypes.LoadOpClear,
			StencilStoreOp:    gputypes.StoreOpDiscard,
			StencilClearValue: 0,
		},
	})
	rp.SetViewport(0, 0, float32(width), float32(height), 0, 1)

	for i := range d.frame.draws {
		dr := &d.frame.draws[i]
		pipeline := dr.prog.depthOff
		if dr.depthTest {
			pipeline = dr.prog.depthOn
		}
		rp.SetPipeline(pipeline)
		rp.SetBindGroup(0, res.bindGroups[i], nil)
		rp.SetVertexBuffer(0, res.vertices, dr.vertexOffset)
		rp.SetIndexBuffer(res.indices, gputypes.IndexFormatUint32, dr.indexOffset)
		rp.DrawIndexed(dr.count, 1, 0, 0, 0)
	}
	rp.End()
}

// Close waits for the GPU to go idle and releases every resource the
// Device created. The HAL device and queue stay owned by the caller.
// Close is idempotent.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	d.frame.reset()

	var errs []error
	if err := d.device.WaitIdle(); err != nil {
		errs = append(errs, fmt.Errorf("wait idle: %w", err))
	}
	for _, r := range d.retired {
		r.release()
	}
	d.retired = nil

	for id, p := range d.programs {
		d.destroyProgram(p)
		delete(d.programs, id)
	}
	for id, s := range d.stages {
		d.device.DestroyShaderModule(s.module)
		delete(d.stages, id)
	}
	for id, t := range d.textures {
		d.device.DestroyTextureView(t.view)
		d.device.DestroyTexture(t.tex)
		delete(d.textures, id)
	}
	clear(d.buffers)
	if d.sampler != nil {
		d.device.DestroySampler(d.sampler)
		d.sampler = nil
	}
	if d.depth.view != nil {
		d.device.DestroyTextureView(d.depth.view)
		d.device.DestroyTexture(d.depth.tex)
		d.depth = depthTarget{}
	}
	slogger().Debug("native: device closed")
	return errors.Join(errs...)
}
