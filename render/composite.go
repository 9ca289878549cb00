// Copyright (c) 2026, The VoxelGame Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/math32"
	"github.com/cogentcore/webgpu/wgpu"
)

// FullscreenVertex is the reference implementation of the
// composition pass vertex stage, mirroring shaders/composite.wgsl
// vs_main. For vertex index id in {0,1,2} it generates one triangle
// strictly covering the [-1,1] NDC square, with no vertex or index
// buffer: uv = ((id<<1)&2, id&2), clip = (uv*(2,-2) + (-1,1), 0, 1).
// The arithmetic must stay bit-identical: any deviation can leave
// gaps or double-cover pixels at the viewport edges.
// The normalized uv is passed through to the fragment stage so that
// sampling does not depend on the viewport-to-texture mapping.
func FullscreenVertex(id uint32) (clip math32.Vector4, uv math32.Vector2) {
	uv = math32.Vec2(float32((id<<1)&2), float32(id&2))
	clip = math32.Vec4(uv.X*2-1, uv.Y*-2+1, 0, 1)
	return
}

// ShadeDeferred is the lighting extension point of the composition
// pass, mirroring shade_deferred in shaders/composite.wgsl. It
// receives the sampled g-buffer values for one pixel and returns the
// final color. The lighting model is not implemented: the result is
// unconditionally opaque black, which callers must not mistake for a
// rendering failure. Implementing lighting means replacing this
// function body (and its WGSL twin) only; the full-screen-triangle
// and binding logic stay untouched.
func ShadeDeferred(normal, color math32.Vector4) math32.Vector4 {
	return math32.Vec4(0, 0, 0, 1)
}

// CompositeFragment is the reference implementation of the
// composition pass fragment stage: both g-buffer textures are
// sampled (the reads must remain, to keep binding validation
// correct) and handed to [ShadeDeferred].
func CompositeFragment(normal, color math32.Vector4) math32.Vector4 {
	return ShadeDeferred(normal, color)
}

// CompositionPass resolves the g-buffer into the final surface
// color. It reads both attachments through sampler + texture pairs
// laid out by [CompositionBindings] and draws exactly 3 vertices
// with no vertex buffer.
type CompositionPass struct {
	pipeline *wgpu.RenderPipeline
	layouts  []*wgpu.BindGroupLayout

	// bindGroup binds the current g-buffer attachments; rebuilt
	// whenever the g-buffer is recreated.
	bindGroup *wgpu.BindGroup
}

// NewCompositionPass builds the composition pipeline targeting the
// given surface format.
func NewCompositionPass(dev *wgpu.Device, format wgpu.TextureFormat) (*CompositionPass, error) {
	mod, err := newShaderModule(dev, "composite", compositeWGSL)
	if err != nil {
		return nil, err
	}
	defer mod.Release()

	cp := &CompositionPass{}
	cp.layouts, err = CompositionBindings.BindGroupLayouts(dev)
	if err != nil {
		return nil, err
	}
	lay, err := dev.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "composition pipeline layout",
		BindGroupLayouts: cp.layouts,
	})
	if errors.Log(err) != nil {
		cp.Release()
		return nil, err
	}
	defer lay.Release()

	cp.pipeline, err = dev.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "composition pipeline",
		Layout: lay,
		Vertex: wgpu.VertexState{
			Module:     mod,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     mod,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    format,
				Blend:     &wgpu.BlendStateReplace,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count:                  1,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	})
	if errors.Log(err) != nil {
		cp.Release()
		return nil, err
	}
	return cp, nil
}

// BindGBuffer builds the bind group exposing the g-buffer to the
// composition shader, in [CompositionBindings] order. It enforces
// the matching-dimensions invariant: binding attachments of
// differing pixel sizes is the BindingMismatch error of the resource
// boundary, detected here on the host, never inside the shader.
func (cp *CompositionPass) BindGBuffer(dev *wgpu.Device, gb *GBuffer) error {
	if err := errors.Log(gb.check()); err != nil {
		return err
	}
	bg, err := dev.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "composition bind group",
		Layout: cp.layouts[0],
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Sampler: gb.Normal.Sampler()},
			{Binding: 1, TextureView: gb.Normal.View()},
			{Binding: 2, Sampler: gb.Color.Sampler()},
			{Binding: 3, TextureView: gb.Color.View()},
		},
	})
	if errors.Log(err) != nil {
		return err
	}
	if cp.bindGroup != nil {
		cp.bindGroup.Release()
	}
	cp.bindGroup = bg
	return nil
}

// encode records the composition pass: a 3-vertex draw over the
// whole target, reading the bound g-buffer.
func (cp *CompositionPass) encode(cmd *wgpu.CommandEncoder, view *wgpu.TextureView) {
	rp := cmd.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "composition pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
		}},
	})
	rp.SetPipeline(cp.pipeline)
	rp.SetBindGroup(0, cp.bindGroup, nil)
	rp.Draw(3, 1, 0, 0)
	rp.End()
	rp.Release() // must happen before Finish
}

func (cp *CompositionPass) Release() {
	if cp.bindGroup != nil {
		cp.bindGroup.Release()
		cp.bindGroup = nil
	}
	if cp.pipeline != nil {
		cp.pipeline.Release()
		cp.pipeline = nil
	}
	for _, l := range cp.layouts {
		if l != nil {
			l.Release()
		}
	}
	cp.layouts = nil
}
