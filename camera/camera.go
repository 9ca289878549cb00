// Copyright (c) 2026, The VoxelGame Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package camera provides the free-flying perspective camera whose
// combined view-projection matrix drives the geometry pass. Only
// that output matrix matters to the renderer; everything else here
// is the frame driver's concern.
package camera

import "cogentcore.org/core/math32"

// glToWebGPU converts OpenGL-convention clip depth (-1..1) to the
// WebGPU 0..1 range: z' = 0.5*z + 0.5*w. Applied on top of the
// perspective projection. Column-major.
var glToWebGPU = math32.Matrix4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// Camera is a perspective camera positioned with an eye point and a
// world-to-view rotation quaternion.
type Camera struct {
	// Eye is the camera position in world space.
	Eye math32.Vector3

	// Rotation is the world-to-view rotation.
	Rotation math32.Quat

	// Aspect is the output width / height ratio.
	Aspect float32

	// FOV is the vertical field of view, in degrees.
	FOV float32

	// Near and Far are the clip plane distances.
	Near, Far float32
}

// New returns a Camera at the standard start pose, looking down -Z.
func New(aspect, fov, near, far float32) *Camera {
	cm := &Camera{Aspect: aspect, FOV: fov, Near: near, Far: far}
	cm.Eye = math32.Vec3(0, 1, 2)
	cm.Rotation.SetIdentity()
	return cm
}

// SetAspect updates the aspect ratio, on window resize.
func (cm *Camera) SetAspect(aspect float32) {
	cm.Aspect = aspect
}

// View returns the world-to-view matrix: rotation composed with
// translation by the negated eye point.
func (cm *Camera) View() math32.Matrix4 {
	// The camera-to-world transform is T(eye) * R^-1; invert it.
	var c2w math32.Matrix4
	c2w.SetTransform(cm.Eye, cm.Rotation.Conjugate(), math32.Vec3(1, 1, 1))
	view, _ := c2w.Inverse()
	return *view
}

// ViewProjection returns the combined view-projection matrix for
// uploading to the camera uniform. A degenerate result (e.g. from a
// zero aspect) yields an undefined image, not an error.
func (cm *Camera) ViewProjection() math32.Matrix4 {
	var proj math32.Matrix4
	proj.SetPerspective(cm.FOV, cm.Aspect, cm.Near, cm.Far)
	view := cm.View()
	var pv math32.Matrix4
	pv.MulMatrices(&proj, &view)
	var out math32.Matrix4
	out.MulMatrices(&glToWebGPU, &pv)
	return out
}
