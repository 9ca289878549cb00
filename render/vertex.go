// Copyright (c) 2026, The VoxelGame Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"unsafe"

	"cogentcore.org/core/math32"
	"github.com/cogentcore/webgpu/wgpu"
)

// Vertex is one element of the geometry stream consumed by the
// geometry pass. Position is in model space, Color is linear and
// unpremultiplied, and Normal is a direction that is not required
// to be normalized on input: normalization happens in the fragment
// stage, after interpolation.
type Vertex struct {
	Position math32.Vector3
	Color    math32.Vector3
	Normal   math32.Vector3
}

// Vtx returns a Vertex from position, color, and normal components.
func Vtx(px, py, pz, cr, cg, cb, nx, ny, nz float32) Vertex {
	return Vertex{
		Position: math32.Vec3(px, py, pz),
		Color:    math32.Vec3(cr, cg, cb),
		Normal:   math32.Vec3(nx, ny, nz),
	}
}

// vertexAttributes is the wire layout of Vertex: three 3xfloat32
// attributes at shader locations 0 (position), 1 (color), 2 (normal).
var vertexAttributes = []wgpu.VertexAttribute{
	{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
	{Format: wgpu.VertexFormatFloat32x3, Offset: uint64(unsafe.Offsetof(Vertex{}.Color)), ShaderLocation: 1},
	{Format: wgpu.VertexFormatFloat32x3, Offset: uint64(unsafe.Offsetof(Vertex{}.Normal)), ShaderLocation: 2},
}

// VertexLayout returns the vertex buffer layout the geometry pass
// expects for its single vertex buffer slot.
func VertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(unsafe.Sizeof(Vertex{})),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  vertexAttributes,
	}
}
