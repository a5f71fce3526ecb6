// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"errors"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/cubey/backend/native"
)

// openDevice wraps the window's GPU device in a native.Device. The provider
// must expose HAL types, either directly or through a *wgpu.Device.
func openDevice(provider gpucontext.DeviceProvider) (*native.Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}

	var (
		device hal.Device
		queue  hal.Queue
	)
	if hp, ok := provider.(halProvider); ok {
		device, _ = hp.HalDevice().(hal.Device)
		queue, _ = hp.HalQueue().(hal.Queue)
	} else if wd, ok := provider.Device().(*wgpu.Device); ok && wd != nil {
		device = wd.HalDevice()
		queue = wd.HalQueue()
	}
	if device == nil || queue == nil {
		return nil, errors.New("cubey: provider does not expose HAL types")
	}
	return native.New(device, queue, provider.SurfaceFormat())
}

// halView extracts the HAL texture view behind the surface view handed to
// the draw callback. It returns nil for anything it cannot unwrap.
func halView(v any) hal.TextureView {
	switch tv := v.(type) {
	case hal.TextureView:
		return tv
	case *wgpu.TextureView:
		if tv == nil {
			return nil
		}
		return tv.HalTextureView()
	case gpucontext.TextureView:
		if tv.IsNil() {
			return nil
		}
		return (*wgpu.TextureView)(tv.Pointer()).HalTextureView()
	case interface{ HalTextureView() hal.TextureView }:
		return tv.HalTextureView()
	default:
		return nil
	}
}
