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

// UploadTexture implements gpucore.Device. The texture is created with a
// single mip level and written through the queue.
func (d *Device) UploadTexture(width, height int, format gpucore.TextureFormat, pixels []byte) (gpucore.TextureID, error) {
	if width <= 0 || height <= 0 {
		return gpucore.InvalidID, gpucore.ErrInvalidSize
	}
	bpp := format.BytesPerPixel()
	if want := width * height * bpp; want == 0 || len(pixels) != want {
		return gpucore.InvalidID, fmt.Errorf("%w: texture needs %d bytes, got %d", gpucore.ErrSizeMismatch, want, len(pixels))
	}
	halFormat, err := textureFormat(format)
	if err != nil {
		return gpucore.InvalidID, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return gpucore.InvalidID, ErrClosed
	}

	size := hal.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1}
	tex, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "atlas",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        halFormat,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("create texture: %w", err)
	}

	data, stride := padRows(pixels, width*bpp, height)
	err = d.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: tex, Aspect: gputypes.TextureAspectAll},
		data,
		&hal.ImageDataLayout{BytesPerRow: uint32(stride), RowsPerImage: uint32(height)},
		&size,
	)
	if err != nil {
		d.device.DestroyTexture(tex)
		return gpucore.InvalidID, fmt.Errorf("write texture: %w", err)
	}

	view, err := d.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "atlas_view",
		Format:        halFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		d.device.DestroyTexture(tex)
		return gpucore.InvalidID, fmt.Errorf("create texture view: %w", err)
	}

	id := gpucore.TextureID(d.newID())
	d.textures[id] = &texture{tex: tex, view: view, width: width, height: height, format: format}
	slogger().Debug("native: texture uploaded", "id", id, "width", width, "height", height)
	return id, nil
}

// rowAlignment is the bytes-per-row granularity of texture copies.
const rowAlignment = 256

// padRows returns pixels with each row padded to a multiple of
// rowAlignment, and the padded stride. Aligned input is returned as is.
func padRows(pixels []byte, rowBytes, rows int) ([]byte, int) {
	stride := alignUp(rowBytes, rowAlignment)
	if stride == rowBytes {
		return pixels, stride
	}
	out := make([]byte, stride*rows)
	for y := 0; y < rows; y++ {
		copy(out[y*stride:], pixels[y*rowBytes:(y+1)*rowBytes])
	}
	return out, stride
}

// DestroyTexture implements gpucore.Device. Destruction is deferred until
// submissions that may sample the texture complete.
func (d *Device) DestroyTexture(id gpucore.TextureID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	t, ok := d.textures[id]
	if !ok {
		return
	}
	delete(d.textures, id)
	d.retire(func() {
		d.device.DestroyTextureView(t.view)
		d.device.DestroyTexture(t.tex)
	})
}

// depthTarget is the depth/stencil attachment, resized with the frame.
type depthTarget struct {
	tex           hal.Texture
	view          hal.TextureView
	width, height uint32
}

// ensureDepth (re)creates the depth attachment for a width×height frame.
// Caller holds mu.
func (d *Device) ensureDepth(width, height uint32) error {
	if d.depth.view != nil && d.depth.width == width && d.depth.height == height {
		return nil
	}
	if old := d.depth; old.view != nil {
		d.retire(func() {
			d.device.DestroyTextureView(old.view)
			d.device.DestroyTexture(old.tex)
		})
		d.depth = depthTarget{}
	}

	tex, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "frame_depth",
		Size:          hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        depthFormat,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("create depth texture: %w", err)
	}
	view, err := d.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "frame_depth_view",
		Format:        depthFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		d.device.DestroyTexture(tex)
		return fmt.Errorf("create depth view: %w", err)
	}
	d.depth = depthTarget{tex: tex, view: view, width: width, height: height}
	slogger().Debug("native: depth target resized", "width", width, "height", height)
	return nil
}
