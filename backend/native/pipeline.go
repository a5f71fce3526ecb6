// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package native

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/cubey/gpucore"
)

// Bind group layout of every program:
//
//	@group(0) @binding(0) uniform block       (vertex + fragment)
//	@group(0) @binding(1) texture_2d<f32>     (fragment, textured only)
//	@group(0) @binding(2) filtering sampler   (fragment, textured only)
const (
	bindingUniforms = 0
	bindingTexture  = 1
	bindingSampler  = 2
)

// vertexFormat maps a gpucore attribute format to its gputypes equivalent.
func vertexFormat(f gpucore.VertexFormat) (gputypes.VertexFormat, error) {
	switch f {
	case gpucore.VertexFormatFloat32x2:
		return gputypes.VertexFormatFloat32x2, nil
	case gpucore.VertexFormatFloat32x3:
		return gputypes.VertexFormatFloat32x3, nil
	case gpucore.VertexFormatFloat32x4:
		return gputypes.VertexFormatFloat32x4, nil
	default:
		return 0, fmt.Errorf("unsupported vertex format %d", f)
	}
}

// textureFormat maps a gpucore texture format to its gputypes equivalent.
func textureFormat(f gpucore.TextureFormat) (gputypes.TextureFormat, error) {
	switch f {
	case gpucore.TextureFormatR8Unorm:
		return gputypes.TextureFormatR8Unorm, nil
	case gpucore.TextureFormatRGBA8Unorm:
		return gputypes.TextureFormatRGBA8Unorm, nil
	default:
		return gputypes.TextureFormatUndefined, fmt.Errorf("unsupported texture format %d", f)
	}
}

// bindGroupLayoutEntries returns the layout entries a program needs.
func bindGroupLayoutEntries(desc *gpucore.ProgramDesc) []gputypes.BindGroupLayoutEntry {
	var entries []gputypes.BindGroupLayoutEntry
	if desc.UniformSize > 0 {
		entries = append(entries, gputypes.BindGroupLayoutEntry{
			Binding:    bindingUniforms,
			Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
			Buffer: &gputypes.BufferBindingLayout{
				Type:           gputypes.BufferBindingTypeUniform,
				MinBindingSize: uint64(desc.UniformSize),
			},
		})
	}
	if desc.Textured {
		entries = append(entries,
			gputypes.BindGroupLayoutEntry{
				Binding:    bindingTexture,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			gputypes.BindGroupLayoutEntry{
				Binding:    bindingSampler,
				Visibility: gputypes.ShaderStageFragment,
				Sampler: &gputypes.SamplerBindingLayout{
					Type: gputypes.SamplerBindingTypeFiltering,
				},
			},
		)
	}
	return entries
}

// vertexBufferLayout converts the program's vertex layout.
func vertexBufferLayout(l gpucore.VertexLayout) (gputypes.VertexBufferLayout, error) {
	attrs := make([]gputypes.VertexAttribute, 0, len(l.Attributes))
	for _, a := range l.Attributes {
		f, err := vertexFormat(a.Format)
		if err != nil {
			return gputypes.VertexBufferLayout{}, err
		}
		if a.Offset+a.Format.Size() > l.Stride {
			return gputypes.VertexBufferLayout{}, fmt.Errorf(
				"attribute at location %d overruns stride %d", a.Location, l.Stride)
		}
		attrs = append(attrs, gputypes.VertexAttribute{
			Format:         f,
			Offset:         uint64(a.Offset),
			ShaderLocation: a.Location,
		})
	}
	return gputypes.VertexBufferLayout{
		ArrayStride: uint64(l.Stride),
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes:  attrs,
	}, nil
}

// depthState returns the depth/stencil state for one pipeline variant.
// With the test off every fragment passes and depth is left untouched.
func depthState(test bool) *hal.DepthStencilState {
	keep := hal.StencilFaceState{Compare: gputypes.CompareFunctionAlways}
	ds := &hal.DepthStencilState{
		Format:       depthFormat,
		DepthCompare: gputypes.CompareFunctionAlways,
		StencilFront: keep,
		StencilBack:  keep,
	}
	if test {
		ds.DepthWriteEnabled = true
		ds.DepthCompare = gputypes.CompareFunctionLess
	}
	return ds
}

// createProgram builds the layouts and both pipeline variants. Caller
// holds mu.
func (d *Device) createProgram(vs, fs *stage, desc *gpucore.ProgramDesc) (*program, error) {
	vbl, err := vertexBufferLayout(desc.Layout)
	if err != nil {
		return nil, err
	}
	if desc.Textured {
		if err := d.ensureSampler(); err != nil {
			return nil, err
		}
	}

	p := &program{desc: *desc}
	p.desc.Layout.Attributes = append([]gpucore.VertexAttribute(nil), desc.Layout.Attributes...)
	if desc.UniformSize > 0 {
		p.uniforms = make([]byte, desc.UniformSize)
	}

	p.bgLayout, err = d.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   desc.Label + "_bind_layout",
		Entries: bindGroupLayoutEntries(desc),
	})
	if err != nil {
		return nil, fmt.Errorf("create bind group layout: %w", err)
	}

	p.layout, err = d.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            desc.Label + "_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.bgLayout},
	})
	if err != nil {
		d.destroyProgram(p)
		return nil, fmt.Errorf("create pipeline layout: %w", err)
	}

	target := gputypes.ColorTargetState{
		Format:    d.format,
		WriteMask: gputypes.ColorWriteMaskAll,
	}
	if desc.Blended {
		blend := gputypes.BlendStatePremultiplied()
		target.Blend = &blend
	}

	build := func(test bool) (hal.RenderPipeline, error) {
		return d.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
			Label:  desc.Label,
			Layout: p.layout,
			Vertex: hal.VertexState{
				Module:     vs.module,
				EntryPoint: vs.src.EntryPoint,
				Buffers:    []gputypes.VertexBufferLayout{vbl},
			},
			Primitive: gputypes.PrimitiveState{
				Topology:  gputypes.PrimitiveTopologyTriangleList,
				FrontFace: gputypes.FrontFaceCCW,
				CullMode:  gputypes.CullModeNone,
			},
			DepthStencil: depthState(test),
			Multisample:  gputypes.DefaultMultisampleState(),
			Fragment: &hal.FragmentState{
				Module:     fs.module,
				EntryPoint: fs.src.EntryPoint,
				Targets:    []gputypes.ColorTargetState{target},
			},
		})
	}

	if p.depthOn, err = build(true); err != nil {
		d.destroyProgram(p)
		return nil, fmt.Errorf("create %s pipeline: %w", desc.Label, err)
	}
	if p.depthOff, err = build(false); err != nil {
		d.destroyProgram(p)
		return nil, fmt.Errorf("create %s pipeline: %w", desc.Label, err)
	}
	return p, nil
}

// destroyProgram releases whatever HAL objects p holds.
func (d *Device) destroyProgram(p *program) {
	if p.depthOn != nil {
		d.device.DestroyRenderPipeline(p.depthOn)
		p.depthOn = nil
	}
	if p.depthOff != nil {
		d.device.DestroyRenderPipeline(p.depthOff)
		p.depthOff = nil
	}
	if p.layout != nil {
		d.device.DestroyPipelineLayout(p.layout)
		p.layout = nil
	}
	if p.bgLayout != nil {
		d.device.DestroyBindGroupLayout(p.bgLayout)
		p.bgLayout = nil
	}
}

// ensureSampler creates the shared linear clamp-to-edge sampler.
func (d *Device) ensureSampler() error {
	if d.sampler != nil {
		return nil
	}
	s, err := d.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "atlas_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
		LodMaxClamp:  32,
		Anisotropy:   1,
	})
	if err != nil {
		return fmt.Errorf("create sampler: %w", err)
	}
	d.sampler = s
	return nil
}
