// Copyright (c) 2026, The VoxelGame Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render implements the deferred rendering core: a geometry
// pass that rasterizes per-vertex position, color, and normal into a
// two-attachment g-buffer, and a composition pass that resolves the
// g-buffer into the final surface color via a full-screen triangle.
// The shading stages are WGSL (shaders/), each with a pure Go
// reference implementation that the tests exercise.
package render

import (
	"image"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/math32"
	"github.com/cogentcore/webgpu/wgpu"
)

// Renderer owns the g-buffer, both pipeline passes, and the uniform
// buffers they share. It encodes one frame as: geometry pass writes
// the g-buffer, then the composition pass reads it. The render-pass
// boundary on the shared command encoder is the write/read barrier,
// so the composition stage never observes a partially written
// g-buffer.
type Renderer struct {
	// GBuf holds the per-pixel surface attribute attachments.
	GBuf *GBuffer

	// Geometry is the g-buffer-writing pass.
	Geometry *GeometryPass

	// Composition is the g-buffer-resolving pass.
	Composition *CompositionPass

	device *wgpu.Device
	queue  *wgpu.Queue

	cameraBuffer *wgpu.Buffer
	objectBuffer *wgpu.Buffer
	cameraGroup  *wgpu.BindGroup
	objectGroup  *wgpu.BindGroup
}

// NewRenderer creates the deferred pipeline for the given output
// size and surface format. The camera and object uniforms start as
// identity transforms.
func NewRenderer(dev *wgpu.Device, queue *wgpu.Queue, format wgpu.TextureFormat, size image.Point) (*Renderer, error) {
	rd := &Renderer{device: dev, queue: queue}
	var err error
	if rd.GBuf, err = NewGBuffer(dev, size); err != nil {
		return nil, err
	}
	if rd.Geometry, err = NewGeometryPass(dev); err != nil {
		rd.Release()
		return nil, err
	}
	if rd.Composition, err = NewCompositionPass(dev, format); err != nil {
		rd.Release()
		return nil, err
	}
	if err = rd.configUniforms(); err != nil {
		rd.Release()
		return nil, err
	}
	if err = rd.Composition.BindGBuffer(dev, rd.GBuf); err != nil {
		rd.Release()
		return nil, err
	}
	return rd, nil
}

// configUniforms creates the camera and object uniform buffers and
// their bind groups, per the [GeometryBindings] contract.
func (rd *Renderer) configUniforms() error {
	cam := NewCameraUniform()
	buf, err := rd.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "camera uniform",
		Contents: wgpu.ToBytes([]CameraUniform{cam}),
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if errors.Log(err) != nil {
		return err
	}
	rd.cameraBuffer = buf

	obj := NewObjectUniform()
	buf, err = rd.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "object uniform",
		Contents: wgpu.ToBytes([]ObjectUniform{obj}),
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if errors.Log(err) != nil {
		return err
	}
	rd.objectBuffer = buf

	rd.cameraGroup, err = rd.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "camera bind group",
		Layout: rd.Geometry.layouts[0],
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: rd.cameraBuffer, Size: wgpu.WholeSize},
		},
	})
	if errors.Log(err) != nil {
		return err
	}
	rd.objectGroup, err = rd.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "object bind group",
		Layout: rd.Geometry.layouts[1],
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: rd.objectBuffer, Size: wgpu.WholeSize},
		},
	})
	return errors.Log(err)
}

// SetCamera uploads the combined view-projection transform.
// Call once per frame, before RenderFrame.
func (rd *Renderer) SetCamera(viewProj *math32.Matrix4) {
	cu := CameraUniform{ViewProjection: *viewProj}
	rd.queue.WriteBuffer(rd.cameraBuffer, 0, wgpu.ToBytes([]CameraUniform{cu}))
}

// SetObject uploads the per-draw model transform. World-space
// geometry uses the identity (the default).
func (rd *Renderer) SetObject(model *math32.Matrix4) {
	ou := ObjectUniform{Model: *model}
	rd.queue.WriteBuffer(rd.objectBuffer, 0, wgpu.ToBytes([]ObjectUniform{ou}))
}

// SetSize recreates the g-buffer for a new output resolution and
// rebinds it to the composition pass.
func (rd *Renderer) SetSize(size image.Point) error {
	if size == rd.GBuf.Size {
		return nil
	}
	if err := rd.GBuf.SetSize(size); err != nil {
		return err
	}
	return rd.Composition.BindGBuffer(rd.device, rd.GBuf)
}

// RenderFrame encodes and submits one frame: the geometry pass runs
// draw over the g-buffer targets, then the composition pass resolves
// the g-buffer into view. draw receives the geometry render pass
// with pipeline and uniform bind groups already set, and issues the
// frame's draw calls.
func (rd *Renderer) RenderFrame(view *wgpu.TextureView, draw func(rp *wgpu.RenderPassEncoder)) error {
	cmd, err := rd.device.CreateCommandEncoder(nil)
	if errors.Log(err) != nil {
		return err
	}
	defer cmd.Release()

	rp := rd.Geometry.begin(cmd, rd.GBuf)
	rp.SetBindGroup(0, rd.cameraGroup, nil)
	rp.SetBindGroup(1, rd.objectGroup, nil)
	if draw != nil {
		draw(rp)
	}
	rp.End()
	rp.Release() // must happen before Finish

	rd.Composition.encode(cmd, view)

	buf, err := cmd.Finish(nil)
	if errors.Log(err) != nil {
		return err
	}
	defer buf.Release()
	rd.queue.Submit(buf)
	return nil
}

func (rd *Renderer) Release() {
	if rd.cameraGroup != nil {
		rd.cameraGroup.Release()
		rd.cameraGroup = nil
	}
	if rd.objectGroup != nil {
		rd.objectGroup.Release()
		rd.objectGroup = nil
	}
	if rd.cameraBuffer != nil {
		rd.cameraBuffer.Release()
		rd.cameraBuffer = nil
	}
	if rd.objectBuffer != nil {
		rd.objectBuffer.Release()
		rd.objectBuffer = nil
	}
	if rd.Composition != nil {
		rd.Composition.Release()
		rd.Composition = nil
	}
	if rd.Geometry != nil {
		rd.Geometry.Release()
		rd.Geometry = nil
	}
	if rd.GBuf != nil {
		rd.GBuf.Release()
		rd.GBuf = nil
	}
}
