// Copyright (c) 2026, The VoxelGame Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// BindingKind is the kind of resource bound at a {group, binding}
// slot in a pass's binding layout.
type BindingKind int32

const (
	// UniformBufferBinding is a read-only uniform buffer.
	UniformBufferBinding BindingKind = iota

	// SamplerBinding is a non-filtering sampler.
	SamplerBinding

	// SampledTextureBinding is a 2D unfilterable-float sampled texture.
	SampledTextureBinding
)

// Binding is one {group, binding} slot in a pass's resource layout.
type Binding struct {
	// Group is the bind group index.
	Group uint32

	// Index is the binding index within the group.
	Index uint32

	// Kind is the kind of resource bound at this slot.
	Kind BindingKind

	// Stages is the set of shader stages that read this slot.
	Stages wgpu.ShaderStage

	// Name identifies the slot for labels and error messages.
	Name string
}

// BindingLayout enumerates every {group, binding, kind} slot a pass
// uses, as data. It is the single shared contract between the WGSL
// shader code and the host-side pipeline setup: the wgpu bind group
// layouts are generated from it rather than duplicated as literals.
// Version increments whenever a slot is added, removed, or changed.
type BindingLayout struct {
	// Name of the pass this layout belongs to.
	Name string

	// Version of the layout contract.
	Version int

	// Bindings, sorted by group then binding index.
	Bindings []Binding
}

// GeometryBindings is the binding contract of the geometry pass:
// the per-frame camera uniform and the per-draw object transform.
var GeometryBindings = BindingLayout{
	Name:    "geometry",
	Version: 1,
	Bindings: []Binding{
		{Group: 0, Index: 0, Kind: UniformBufferBinding, Stages: wgpu.ShaderStageVertex, Name: "camera"},
		{Group: 1, Index: 0, Kind: UniformBufferBinding, Stages: wgpu.ShaderStageVertex, Name: "object"},
	},
}

// CompositionBindings is the binding contract of the composition
// pass: each g-buffer attachment exposed as a sampler + texture pair.
var CompositionBindings = BindingLayout{
	Name:    "composition",
	Version: 1,
	Bindings: []Binding{
		{Group: 0, Index: 0, Kind: SamplerBinding, Stages: wgpu.ShaderStageFragment, Name: "normal sampler"},
		{Group: 0, Index: 1, Kind: SampledTextureBinding, Stages: wgpu.ShaderStageFragment, Name: "normal texture"},
		{Group: 0, Index: 2, Kind: SamplerBinding, Stages: wgpu.ShaderStageFragment, Name: "color sampler"},
		{Group: 0, Index: 3, Kind: SampledTextureBinding, Stages: wgpu.ShaderStageFragment, Name: "color texture"},
	},
}

// NumGroups returns the number of bind groups the layout spans.
func (bl *BindingLayout) NumGroups() int {
	ng := 0
	for _, b := range bl.Bindings {
		if int(b.Group) >= ng {
			ng = int(b.Group) + 1
		}
	}
	return ng
}

// Group returns the bindings in the given group, in binding order.
func (bl *BindingLayout) Group(group uint32) []Binding {
	var bs []Binding
	for _, b := range bl.Bindings {
		if b.Group == group {
			bs = append(bs, b)
		}
	}
	return bs
}

// ByName returns the binding with the given name.
func (bl *BindingLayout) ByName(name string) (Binding, error) {
	for _, b := range bl.Bindings {
		if b.Name == name {
			return b, nil
		}
	}
	return Binding{}, fmt.Errorf("render.BindingLayout %s v%d: no binding named %q", bl.Name, bl.Version, name)
}

// layoutEntry generates the wgpu bind group layout entry for one slot.
func (b *Binding) layoutEntry() wgpu.BindGroupLayoutEntry {
	ent := wgpu.BindGroupLayoutEntry{
		Binding:    b.Index,
		Visibility: b.Stages,
	}
	switch b.Kind {
	case UniformBufferBinding:
		ent.Buffer = wgpu.BufferBindingLayout{
			Type: wgpu.BufferBindingTypeUniform,
		}
	case SamplerBinding:
		ent.Sampler = wgpu.SamplerBindingLayout{
			Type: wgpu.SamplerBindingTypeNonFiltering,
		}
	case SampledTextureBinding:
		ent.Texture = wgpu.TextureBindingLayout{
			Multisampled:  false,
			ViewDimension: wgpu.TextureViewDimension2D,
			SampleType:    wgpu.TextureSampleTypeUnfilterableFloat,
		}
	}
	return ent
}

// BindGroupLayouts creates one wgpu bind group layout per group in
// the binding layout, in group order.
func (bl *BindingLayout) BindGroupLayouts(dev *wgpu.Device) ([]*wgpu.BindGroupLayout, error) {
	ng := bl.NumGroups()
	lays := make([]*wgpu.BindGroupLayout, ng)
	for g := 0; g < ng; g++ {
		gbs := bl.Group(uint32(g))
		ents := make([]wgpu.BindGroupLayoutEntry, len(gbs))
		for i, b := range gbs {
			ents[i] = b.layoutEntry()
		}
		lay, err := dev.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
			Label:   fmt.Sprintf("%s group %d layout", bl.Name, g),
			Entries: ents,
		})
		if err != nil {
			for _, l := range lays[:g] {
				if l != nil {
					l.Release()
				}
			}
			return nil, err
		}
		lays[g] = lay
	}
	return lays, nil
}
