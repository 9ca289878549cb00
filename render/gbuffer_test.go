// Copyright (c) 2026, The VoxelGame Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGBufferCheck(t *testing.T) {
	sz := image.Point{64, 48}
	gb := &GBuffer{
		Size:   sz,
		Normal: &Attachment{Name: "gbuffer normal", Size: sz},
		Color:  &Attachment{Name: "gbuffer color", Size: sz},
	}
	assert.NoError(t, gb.check())

	// Attachments of differing pixel sizes must be rejected before
	// the bind group is built: one uv maps onto both textures.
	gb.Color.Size = image.Point{32, 48}
	err := gb.check()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "dimensions differ")

	gb.Color.Size = image.Point{64, 32}
	assert.Error(t, gb.check())

	// A missing attachment is an error, not a panic.
	gb.Color = nil
	err = gb.check()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing attachment")

	gb = &GBuffer{Size: sz, Color: &Attachment{Name: "gbuffer color", Size: sz}}
	assert.Error(t, gb.check())
}
