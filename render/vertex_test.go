// Copyright (c) 2026, The VoxelGame Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"testing"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestVertexLayout(t *testing.T) {
	lay := VertexLayout()
	// 3 x 3 x float32, tightly packed.
	assert.Equal(t, uint64(36), lay.ArrayStride)
	assert.Equal(t, uint64(36), uint64(unsafe.Sizeof(Vertex{})))
	assert.Equal(t, wgpu.VertexStepModeVertex, lay.StepMode)

	want := []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
		{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
		{Format: wgpu.VertexFormatFloat32x3, Offset: 24, ShaderLocation: 2},
	}
	assert.Equal(t, want, lay.Attributes)
}

func TestVtx(t *testing.T) {
	v := Vtx(1, 2, 3, 0.1, 0.2, 0.3, 0, 1, 0)
	assert.Equal(t, float32(3), v.Position.Z)
	assert.Equal(t, float32(0.2), v.Color.Y)
	assert.Equal(t, float32(1), v.Normal.Y)
}
