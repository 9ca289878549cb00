// Copyright (c) 2026, The VoxelGame Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
)

func TestFullscreenVertex(t *testing.T) {
	tests := []struct {
		id   uint32
		uv   math32.Vector2
		clip math32.Vector4
	}{
		{0, math32.Vec2(0, 0), math32.Vec4(-1, 1, 0, 1)},
		{1, math32.Vec2(2, 0), math32.Vec4(3, 1, 0, 1)},
		{2, math32.Vec2(0, 2), math32.Vec4(-1, -3, 0, 1)},
	}
	for _, tc := range tests {
		clip, uv := FullscreenVertex(tc.id)
		assert.Equal(t, tc.uv, uv, "id %d", tc.id)
		assert.Equal(t, tc.clip, clip, "id %d", tc.id)
	}
}

// edge computes the signed area of triangle (a, b, p), positive when
// p is to the left of a->b.
func edge(ax, ay, bx, by, px, py float32) float32 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

func TestFullscreenTriangleCoverage(t *testing.T) {
	// Every pixel center of any viewport must fall inside the
	// generated triangle: no gaps, and a single triangle cannot
	// double-cover.
	c0, _ := FullscreenVertex(0)
	c1, _ := FullscreenVertex(1)
	c2, _ := FullscreenVertex(2)

	for _, sz := range []struct{ w, h int }{{7, 5}, {64, 64}, {1, 1}, {1920, 3}} {
		for py := 0; py < sz.h; py++ {
			for px := 0; px < sz.w; px++ {
				// Pixel center in NDC.
				x := (float32(px)+0.5)/float32(sz.w)*2 - 1
				y := 1 - (float32(py)+0.5)/float32(sz.h)*2

				w0 := edge(c1.X, c1.Y, c2.X, c2.Y, x, y)
				w1 := edge(c2.X, c2.Y, c0.X, c0.Y, x, y)
				w2 := edge(c0.X, c0.Y, c1.X, c1.Y, x, y)
				inside := (w0 >= 0 && w1 >= 0 && w2 >= 0) || (w0 <= 0 && w1 <= 0 && w2 <= 0)
				if !inside {
					t.Fatalf("pixel (%d,%d) of %dx%d not covered", px, py, sz.w, sz.h)
				}
			}
		}
	}
}

func TestFullscreenVertexUVMatchesClip(t *testing.T) {
	// The interpolated uv must agree with the mapping of clip space
	// onto texture coordinates, so sampling with uv is equivalent to
	// the upstream clip-position addressing at every vertex.
	for id := uint32(0); id < 3; id++ {
		clip, uv := FullscreenVertex(id)
		assert.InDelta(t, (clip.X+1)/2, uv.X, tol)
		assert.InDelta(t, (1-clip.Y)/2, uv.Y, tol)
	}
}

func TestCompositeFragmentFixedBlack(t *testing.T) {
	black := math32.Vec4(0, 0, 0, 1)
	inputs := []struct {
		normal, color math32.Vector4
	}{
		{math32.Vec4(0, 0, 1, 1), math32.Vec4(1, 1, 1, 1)},
		{math32.Vec4(0.6, 0.8, 0, 1), math32.Vec4(0.2, 0.3, 0.4, 1)},
		{math32.Vector4{}, math32.Vector4{}},
		{math32.Vector4Scalar(-5), math32.Vector4Scalar(42)},
	}
	// The sampled values are read but not yet incorporated: the
	// output is unconditionally opaque black until the lighting
	// model lands in ShadeDeferred. Regression guard, not a bug.
	for _, tc := range inputs {
		assert.Equal(t, black, CompositeFragment(tc.normal, tc.color))
	}
	// Idempotent across repeated resolves of the same g-buffer.
	for i := 0; i < 3; i++ {
		assert.Equal(t, black, CompositeFragment(inputs[0].normal, inputs[0].color))
	}
}
