// Copyright (c) 2026, The VoxelGame Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package model loads and owns the GPU-resident meshes drawn by the
// geometry pass.
package model

import (
	"fmt"
	"log/slog"

	"cogentcore.org/core/base/errors"
	"github.com/Glitch752/VoxelGame/render"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/udhos/gwob"
)

// Mesh is one drawable mesh: an interleaved vertex buffer in
// [render.Vertex] layout and a uint32 index buffer. Vertices are
// assumed pre-transformed into the shared world space unless a
// per-draw object transform is set on the renderer.
type Mesh struct {
	// Name of the mesh, e.g. the file it was loaded from.
	Name string

	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   uint32
}

// NewMesh uploads the given vertices and indices into GPU buffers.
func NewMesh(dev *wgpu.Device, name string, verts []render.Vertex, indices []uint32) (*Mesh, error) {
	if len(verts) == 0 || len(indices) == 0 {
		return nil, errors.Log(fmt.Errorf("model.NewMesh %s: empty geometry", name))
	}
	vb, err := dev.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    name + " vertex buffer",
		Contents: wgpu.ToBytes(verts),
		Usage:    wgpu.BufferUsageVertex,
	})
	if errors.Log(err) != nil {
		return nil, err
	}
	ib, err := dev.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    name + " index buffer",
		Contents: wgpu.ToBytes(indices),
		Usage:    wgpu.BufferUsageIndex,
	})
	if errors.Log(err) != nil {
		vb.Release()
		return nil, err
	}
	return &Mesh{
		Name:         name,
		vertexBuffer: vb,
		indexBuffer:  ib,
		indexCount:   uint32(len(indices)),
	}, nil
}

// Load reads a Wavefront OBJ file and uploads it as a Mesh.
func Load(dev *wgpu.Device, fileName string) (*Mesh, error) {
	o, err := gwob.NewObjFromFile(fileName, parserOptions(fileName))
	if errors.Log(err) != nil {
		return nil, err
	}
	return fromObj(dev, fileName, o)
}

// Decode parses OBJ data from memory (e.g. an embedded asset) and
// uploads it as a Mesh.
func Decode(dev *wgpu.Device, name string, data []byte) (*Mesh, error) {
	o, err := gwob.NewObjFromBuf(name, data, parserOptions(name))
	if errors.Log(err) != nil {
		return nil, err
	}
	return fromObj(dev, name, o)
}

func parserOptions(name string) *gwob.ObjParserOptions {
	return &gwob.ObjParserOptions{
		Logger: func(msg string) {
			slog.Warn("model: obj parser", "file", name, "msg", msg)
		},
	}
}

func fromObj(dev *wgpu.Device, name string, o *gwob.Obj) (*Mesh, error) {
	verts, idx := geometryFromObj(name, o)
	return NewMesh(dev, name, verts, idx)
}

// geometryFromObj converts a parsed OBJ into the render.Vertex
// stream: positions and normals come from the file, missing normals
// become the zero vector, and color is initialized to zero.
func geometryFromObj(name string, o *gwob.Obj) ([]render.Vertex, []uint32) {
	indices := o.Indices
	if len(o.Groups) > 1 {
		slog.Warn("model: found more than one group; only using the first", "file", name, "groups", len(o.Groups))
		g := o.Groups[0]
		indices = o.Indices[g.IndexBegin : g.IndexBegin+g.IndexCount]
	}

	strideFloats := o.StrideSize / 4
	posOffset := o.StrideOffsetPosition / 4
	normOffset := o.StrideOffsetNormal / 4
	nv := len(o.Coord) / strideFloats

	verts := make([]render.Vertex, nv)
	for i := range verts {
		base := i * strideFloats
		p := o.Coord[base+posOffset:]
		verts[i].Position.Set(p[0], p[1], p[2])
		if o.NormCoordFound {
			n := o.Coord[base+normOffset:]
			verts[i].Normal.Set(n[0], n[1], n[2])
		}
	}

	idx := make([]uint32, len(indices))
	for i, ix := range indices {
		idx[i] = uint32(ix)
	}
	return verts, idx
}

// Draw binds the mesh buffers and issues the indexed draw call on
// the geometry render pass.
func (ms *Mesh) Draw(rp *wgpu.RenderPassEncoder) {
	rp.SetVertexBuffer(0, ms.vertexBuffer, 0, wgpu.WholeSize)
	rp.SetIndexBuffer(ms.indexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	rp.DrawIndexed(ms.indexCount, 1, 0, 0, 0)
}

// NumIndices returns the number of indices drawn.
func (ms *Mesh) NumIndices() uint32 { return ms.indexCount }

func (ms *Mesh) Release() {
	if ms.vertexBuffer != nil {
		ms.vertexBuffer.Release()
		ms.vertexBuffer = nil
	}
	if ms.indexBuffer != nil {
		ms.indexBuffer.Release()
		ms.indexBuffer = nil
	}
}
