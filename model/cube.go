// Copyright (c) 2026, The VoxelGame Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"cogentcore.org/core/math32"
	"github.com/Glitch752/VoxelGame/render"
)

// cubeFaces enumerates the six axis-aligned faces of the unit voxel:
// outward normal and the four corners in CCW winding as seen from
// outside.
var cubeFaces = []struct {
	normal  math32.Vector3
	corners [4]math32.Vector3
}{
	{math32.Vec3(0, 0, 1), [4]math32.Vector3{
		{X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1}}},
	{math32.Vec3(0, 0, -1), [4]math32.Vector3{
		{X: 1, Y: -1, Z: -1}, {X: -1, Y: -1, Z: -1}, {X: -1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: -1}}},
	{math32.Vec3(1, 0, 0), [4]math32.Vector3{
		{X: 1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: 1}}},
	{math32.Vec3(-1, 0, 0), [4]math32.Vector3{
		{X: -1, Y: -1, Z: -1}, {X: -1, Y: -1, Z: 1}, {X: -1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: -1}}},
	{math32.Vec3(0, 1, 0), [4]math32.Vector3{
		{X: -1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: -1}}},
	{math32.Vec3(0, -1, 0), [4]math32.Vector3{
		{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: 1}, {X: -1, Y: -1, Z: 1}}},
}

// Cube returns the voxel primitive: a cube of the given half-size
// centered at center, with per-face normals and the given uniform
// vertex color. 24 vertices, 36 indices.
func Cube(center math32.Vector3, halfSize float32, color math32.Vector3) ([]render.Vertex, []uint32) {
	verts := make([]render.Vertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range cubeFaces {
		base := uint32(len(verts))
		for _, c := range f.corners {
			verts = append(verts, render.Vertex{
				Position: center.Add(c.MulScalar(halfSize)),
				Color:    color,
				Normal:   f.normal,
			})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return verts, indices
}
