// Copyright (c) 2026, The VoxelGame Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/math32"
	"github.com/cogentcore/webgpu/wgpu"
)

// CameraUniform is the per-frame camera contract of the geometry
// pass: a single combined view-projection matrix, uploaded once per
// frame before the pass runs, read-only to all draws in the frame.
// A degenerate matrix produces an undefined image, not an error.
type CameraUniform struct {
	ViewProjection math32.Matrix4
}

// NewCameraUniform returns a CameraUniform with an identity transform.
func NewCameraUniform() CameraUniform {
	cu := CameraUniform{}
	cu.ViewProjection.SetIdentity()
	return cu
}

// ObjectUniform is the per-draw transform of the geometry pass.
// Geometry authored directly in world space draws with the identity
// transform, which leaves the vertex contract unchanged.
type ObjectUniform struct {
	Model math32.Matrix4
}

// NewObjectUniform returns an ObjectUniform with an identity transform.
func NewObjectUniform() ObjectUniform {
	ou := ObjectUniform{}
	ou.Model.SetIdentity()
	return ou
}

// GeometryVaryings is what the geometry vertex stage hands to the
// rasterizer: the clip-space position and the two linearly
// interpolated attributes.
type GeometryVaryings struct {
	// ClipPosition is view_proj * model * (position, 1).
	ClipPosition math32.Vector4

	// Color is the vertex color with the model-space position added
	// component-wise. Looks like a debugging artifact, but it is the
	// exact output contract; preserved deliberately, flagged for
	// product-owner review.
	Color math32.Vector3

	// Normal is forwarded unmodified; it is normalized only in the
	// fragment stage so that interpolation happens on the raw vector.
	Normal math32.Vector3
}

// GeometryVertex is the reference implementation of the geometry
// pass vertex stage, mirroring shaders/gbuffer.wgsl vs_main.
func GeometryVertex(viewProj, model *math32.Matrix4, v Vertex) GeometryVaryings {
	pos := math32.Vector4FromVector3(v.Position, 1).MulMatrix4(model)
	return GeometryVaryings{
		ClipPosition: pos.MulMatrix4(viewProj),
		Color:        v.Color.Add(v.Position),
		Normal:       v.Normal,
	}
}

// GeometryFragment is the reference implementation of the geometry
// pass fragment stage, mirroring shaders/gbuffer.wgsl fs_main.
// It returns the two g-buffer outputs: normal (location 0) and color
// (location 1). The w components are the reserved smoothness and
// emissive channels. A zero-length interpolated normal has no
// defined direction: in WGSL, normalize(0) is NaN-producing and left
// that way; this reference yields the zero vector only because
// math32 guards division by zero. Neither path "fixes" the input.
func GeometryFragment(vy GeometryVaryings) (normal, color math32.Vector4) {
	n := vy.Normal.Normal()
	normal = math32.Vector4FromVector3(n, 1)
	color = math32.Vector4FromVector3(vy.Color, 1)
	return
}

// GeometryPass rasterizes mesh vertices through the shared camera
// transform into the g-buffer attachments. It owns the pipeline and
// the bind group layouts generated from [GeometryBindings].
type GeometryPass struct {
	pipeline *wgpu.RenderPipeline
	layouts  []*wgpu.BindGroupLayout
}

// NewGeometryPass builds the geometry pipeline: one vertex buffer in
// [VertexLayout] form, two color targets in [GBufferFormat], depth
// test less with write, back-face culling, CCW front faces.
func NewGeometryPass(dev *wgpu.Device) (*GeometryPass, error) {
	mod, err := newShaderModule(dev, "gbuffer", gbufferWGSL)
	if err != nil {
		return nil, err
	}
	defer mod.Release()

	gp := &GeometryPass{}
	gp.layouts, err = GeometryBindings.BindGroupLayouts(dev)
	if err != nil {
		return nil, err
	}
	lay, err := dev.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "geometry pipeline layout",
		BindGroupLayouts: gp.layouts,
	})
	if errors.Log(err) != nil {
		gp.Release()
		return nil, err
	}
	defer lay.Release()

	// Float32 targets do not support blending; replace is implicit.
	gp.pipeline, err = dev.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "geometry pipeline",
		Layout: lay,
		Vertex: wgpu.VertexState{
			Module:     mod,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{VertexLayout()},
		},
		Fragment: &wgpu.FragmentState{
			Module:     mod,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{Format: GBufferFormat, WriteMask: wgpu.ColorWriteMaskAll},
				{Format: GBufferFormat, WriteMask: wgpu.ColorWriteMaskAll},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeBack,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            DepthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			StencilReadMask:   0xFFFFFFFF,
			StencilWriteMask:  0xFFFFFFFF,
		},
		Multisample: wgpu.MultisampleState{
			Count:                  1,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	})
	if errors.Log(err) != nil {
		gp.Release()
		return nil, err
	}
	return gp, nil
}

// begin starts the geometry render pass on the given encoder,
// clearing both attachments and the depth buffer.
func (gp *GeometryPass) begin(cmd *wgpu.CommandEncoder, gb *GBuffer) *wgpu.RenderPassEncoder {
	clear := wgpu.Color{R: 0, G: 0, B: 0, A: 1}
	rp := cmd.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "geometry pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       gb.Normal.View(),
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: clear,
			},
			{
				View:       gb.Color.View(),
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: clear,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            gb.Depth.View(),
			DepthClearValue: 1,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
		},
	})
	rp.SetPipeline(gp.pipeline)
	return rp
}

func (gp *GeometryPass) Release() {
	if gp.pipeline != nil {
		gp.pipeline.Release()
		gp.pipeline = nil
	}
	for _, l := range gp.layouts {
		if l != nil {
			l.Release()
		}
	}
	gp.layouts = nil
}
