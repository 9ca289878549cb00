// Copyright (c) 2026, The VoxelGame Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	_ "embed"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed shaders/gbuffer.wgsl
var gbufferWGSL string

//go:embed shaders/composite.wgsl
var compositeWGSL string

// newShaderModule compiles the given WGSL source into a shader module.
func newShaderModule(dev *wgpu.Device, name, code string) (*wgpu.ShaderModule, error) {
	mod, err := dev.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          name,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: code},
	})
	if errors.Log(err) != nil {
		return nil, err
	}
	return mod, nil
}
