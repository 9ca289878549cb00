// Copyright (c) 2026, The VoxelGame Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"image"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

const (
	// GBufferFormat is the pixel format of both g-buffer color
	// attachments: 4 x float32. The first three components carry the
	// attachment's payload (world-space normal, or surface color);
	// the fourth is reserved (smoothness and emissive placeholders).
	GBufferFormat = wgpu.TextureFormatRGBA32Float

	// DepthFormat is the format of the geometry pass depth buffer.
	DepthFormat = wgpu.TextureFormatDepth32Float
)

// Attachment is one render-target image: the texture, its view, and
// the sampler used when the composition pass reads it back.
// The sampler is nil for the depth attachment.
type Attachment struct {
	// Name of the attachment, for labels and errors.
	Name string

	// Size in pixels.
	Size image.Point

	texture *wgpu.Texture
	view    *wgpu.TextureView
	sampler *wgpu.Sampler
}

// View returns the texture view for binding this attachment as a
// render target or sampled texture.
func (at *Attachment) View() *wgpu.TextureView { return at.view }

// Sampler returns the sampler paired with this attachment.
func (at *Attachment) Sampler() *wgpu.Sampler { return at.sampler }

func (at *Attachment) Release() {
	if at.sampler != nil {
		at.sampler.Release()
		at.sampler = nil
	}
	if at.view != nil {
		at.view.Release()
		at.view = nil
	}
	if at.texture != nil {
		at.texture.Release()
		at.texture = nil
	}
}

// newAttachment creates a 2D render-target texture of the given
// format, with a view, and if sampled is true a non-filtering
// clamp-to-edge sampler and a TextureBinding usage so the
// composition pass can read it.
func newAttachment(dev *wgpu.Device, name string, size image.Point, format wgpu.TextureFormat, sampled bool) (*Attachment, error) {
	usage := wgpu.TextureUsageRenderAttachment
	if sampled {
		usage |= wgpu.TextureUsageTextureBinding
	}
	tex, err := dev.CreateTexture(&wgpu.TextureDescriptor{
		Label: name,
		Size: wgpu.Extent3D{
			Width:              uint32(size.X),
			Height:             uint32(size.Y),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         usage,
	})
	if errors.Log(err) != nil {
		return nil, err
	}
	at := &Attachment{Name: name, Size: size, texture: tex}
	at.view, err = tex.CreateView(nil)
	if errors.Log(err) != nil {
		at.Release()
		return nil, err
	}
	if !sampled {
		return at, nil
	}
	at.sampler, err = dev.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         name + " sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeNearest,
		MinFilter:     wgpu.FilterModeNearest,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if errors.Log(err) != nil {
		at.Release()
		return nil, err
	}
	return at, nil
}

// GBuffer holds the per-pixel surface attribute images written by
// the geometry pass and read by the composition pass, plus the depth
// buffer shared with neither. All attachments have identical pixel
// dimensions; the whole set is recreated when the output resolution
// changes.
type GBuffer struct {
	// Size of every attachment, in pixels.
	Size image.Point

	// Normal holds normalized world-space normals in xyz;
	// w is the reserved smoothness channel.
	Normal *Attachment

	// Color holds surface color in xyz; w is the reserved
	// emissive channel.
	Color *Attachment

	// Depth is the geometry pass depth buffer.
	Depth *Attachment

	device *wgpu.Device
}

// NewGBuffer creates the g-buffer attachments at the given size.
func NewGBuffer(dev *wgpu.Device, size image.Point) (*GBuffer, error) {
	if size.X <= 0 || size.Y <= 0 {
		return nil, errors.Log(fmt.Errorf("render.NewGBuffer: invalid size %v", size))
	}
	gb := &GBuffer{Size: size, device: dev}
	var err error
	if gb.Normal, err = newAttachment(dev, "gbuffer normal", size, GBufferFormat, true); err != nil {
		return nil, err
	}
	if gb.Color, err = newAttachment(dev, "gbuffer color", size, GBufferFormat, true); err != nil {
		gb.Release()
		return nil, err
	}
	if gb.Depth, err = newAttachment(dev, "gbuffer depth", size, DepthFormat, false); err != nil {
		gb.Release()
		return nil, err
	}
	return gb, nil
}

// SetSize recreates all attachments at the new size.
// It is a no-op if the size is unchanged.
func (gb *GBuffer) SetSize(size image.Point) error {
	if size == gb.Size {
		return nil
	}
	ngb, err := NewGBuffer(gb.device, size)
	if err != nil {
		return err
	}
	gb.Release()
	*gb = *ngb
	return nil
}

// check verifies the invariant that both sampled attachments share
// pixel dimensions, which the composition pass relies on when it
// maps one set of texture coordinates onto both textures.
func (gb *GBuffer) check() error {
	if gb.Normal == nil || gb.Color == nil {
		return fmt.Errorf("render.GBuffer: missing attachment")
	}
	if gb.Normal.Size != gb.Color.Size {
		return fmt.Errorf("render.GBuffer: attachment dimensions differ: normal %v vs color %v",
			gb.Normal.Size, gb.Color.Size)
	}
	return nil
}

func (gb *GBuffer) Release() {
	if gb.Normal != nil {
		gb.Normal.Release()
		gb.Normal = nil
	}
	if gb.Color != nil {
		gb.Color.Release()
		gb.Color = nil
	}
	if gb.Depth != nil {
		gb.Depth.Release()
		gb.Depth = nil
	}
}
