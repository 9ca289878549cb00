// Copyright (c) 2026, The VoxelGame Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/udhos/gwob"
)

const tol = 1.0e-6

// triangleNormal returns the geometric normal of triangle a,b,c with
// CCW winding.
func triangleNormal(a, b, c math32.Vector3) math32.Vector3 {
	return b.Sub(a).Cross(c.Sub(a)).Normal()
}

func TestCube(t *testing.T) {
	ctr := math32.Vec3(1, 2, 3)
	clr := math32.Vec3(0.5, 0.6, 0.7)
	verts, indices := Cube(ctr, 0.5, clr)
	require.Equal(t, 24, len(verts))
	require.Equal(t, 36, len(indices))

	for _, v := range verts {
		// Corners sit at center +- halfSize on every axis.
		d := v.Position.Sub(ctr)
		assert.InDelta(t, 0.5, math32.Abs(d.X), tol)
		assert.InDelta(t, 0.5, math32.Abs(d.Y), tol)
		assert.InDelta(t, 0.5, math32.Abs(d.Z), tol)
		assert.Equal(t, clr, v.Color)
		assert.InDelta(t, 1, v.Normal.Length(), tol)
	}

	// Each face's triangles wind CCW as seen from outside: the
	// geometric normal agrees with the stored face normal.
	for i := 0; i < len(indices); i += 3 {
		a := verts[indices[i]]
		b := verts[indices[i+1]]
		c := verts[indices[i+2]]
		gn := triangleNormal(a.Position, b.Position, c.Position)
		assert.InDelta(t, 1, gn.Dot(a.Normal), tol)
	}
}

const cubeObj = `# two-triangle quad with normals
o quad
v -1 0 -1
v 1 0 -1
v 1 0 1
v -1 0 1
vn 0 1 0
f 1//1 2//1 3//1
f 1//1 3//1 4//1
`

func TestGeometryFromObj(t *testing.T) {
	o, err := gwob.NewObjFromBuf("quad.obj", []byte(cubeObj), parserOptions("quad.obj"))
	require.NoError(t, err)

	verts, indices := geometryFromObj("quad.obj", o)
	require.Equal(t, 6, len(indices))
	require.NotEmpty(t, verts)

	for _, ix := range indices {
		require.Less(t, int(ix), len(verts))
	}
	for _, v := range verts {
		// Normals come from the file; colors start at zero.
		assert.Equal(t, math32.Vec3(0, 1, 0), v.Normal)
		assert.Equal(t, math32.Vector3{}, v.Color)
		assert.InDelta(t, 0, v.Position.Y, tol)
	}
}

const noNormalObj = `o flat
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`

func TestGeometryFromObjNoNormals(t *testing.T) {
	o, err := gwob.NewObjFromBuf("flat.obj", []byte(noNormalObj), parserOptions("flat.obj"))
	require.NoError(t, err)

	verts, indices := geometryFromObj("flat.obj", o)
	require.Equal(t, 3, len(indices))
	for _, v := range verts {
		// Missing normals stay zero, matching the loader contract;
		// the fragment stage documents what zero normals produce.
		assert.Equal(t, math32.Vector3{}, v.Normal)
	}
}
