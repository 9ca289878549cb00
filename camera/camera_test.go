// Copyright (c) 2026, The VoxelGame Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package camera

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
)

const tol = 1.0e-5

func TestViewTranslation(t *testing.T) {
	cm := New(1.5, 45, 0.1, 100)
	cm.Eye = math32.Vec3(0, 1, 2)
	cm.Rotation.SetIdentity()

	// With identity rotation the view matrix is translation by -eye.
	view := cm.View()
	assert.InDelta(t, 0, view[12], tol)
	assert.InDelta(t, -1, view[13], tol)
	assert.InDelta(t, -2, view[14], tol)

	// A world point at the eye maps to the view-space origin.
	p := math32.Vector4FromVector3(cm.Eye, 1).MulMatrix4(&view)
	assert.InDelta(t, 0, p.X, tol)
	assert.InDelta(t, 0, p.Y, tol)
	assert.InDelta(t, 0, p.Z, tol)
}

func TestViewRotation(t *testing.T) {
	cm := New(1, 45, 0.1, 100)
	cm.Eye = math32.Vector3{}
	// Yaw 90 degrees: the view frame turns about +Y.
	cm.Rotation.SetFromAxisAngle(math32.Vec3(0, 1, 0), math32.Pi/2)

	view := cm.View()
	p := math32.Vec4(1, 0, 0, 1).MulMatrix4(&view)
	// World +X lands on view -Z (for this rotation direction,
	// world-to-view applies the quaternion directly).
	assert.InDelta(t, 0, p.X, tol)
	assert.InDelta(t, 0, p.Y, tol)
	assert.InDelta(t, -1, p.Z, tol)
}

func TestViewProjectionDepthRange(t *testing.T) {
	cm := New(1, 90, 1, 100)
	cm.Eye = math32.Vector3{}
	cm.Rotation.SetIdentity()
	vp := cm.ViewProjection()

	// A point on the near plane straight ahead (camera looks down
	// -Z) maps to NDC depth 0 in the WebGPU convention.
	p := math32.Vec4(0, 0, -1, 1).MulMatrix4(&vp)
	ndc := p.PerspDiv()
	assert.InDelta(t, 0, ndc.X, tol)
	assert.InDelta(t, 0, ndc.Y, tol)
	assert.InDelta(t, 0, ndc.Z, tol)
}

func TestControllerForwardMovement(t *testing.T) {
	cm := New(1, 45, 0.1, 100)
	cm.Eye = math32.Vector3{}
	ct := NewController(5)

	ct.SetPressed(MoveForward, true)
	ct.Update(cm, 0.5)

	// Facing down -Z at zero yaw: forward motion decreases Z by
	// speed * dt.
	assert.InDelta(t, 0, cm.Eye.X, tol)
	assert.InDelta(t, 0, cm.Eye.Y, tol)
	assert.InDelta(t, -2.5, cm.Eye.Z, tol)

	ct.SetPressed(MoveForward, false)
	ct.SetPressed(MoveUp, true)
	ct.Update(cm, 1)
	assert.InDelta(t, 5, cm.Eye.Y, tol)
}

func TestControllerDiagonalNotFaster(t *testing.T) {
	cm := New(1, 45, 0.1, 100)
	cm.Eye = math32.Vector3{}
	ct := NewController(5)

	ct.SetPressed(MoveForward, true)
	ct.SetPressed(MoveLeft, true)
	ct.Update(cm, 1)

	// Diagonal movement is normalized: same distance per second as
	// a single direction.
	assert.InDelta(t, 5, cm.Eye.Length(), tol)
}

func TestControllerPitchClamp(t *testing.T) {
	cm := New(1, 45, 0.1, 100)
	ct := NewController(5)

	// A huge upward mouse swing cannot flip the camera: pitch stays
	// clamped, so looking direction keeps a nonzero horizontal part.
	ct.Rotate(0, -1e6)
	ct.Update(cm, 0)

	forward := math32.Vec3(0, 0, 1).MulQuat(cm.Rotation.Conjugate())
	horiz := math32.Vec3(forward.X, 0, forward.Z).Length()
	assert.Greater(t, horiz, float32(0.1))
	assert.InDelta(t, math32.Sin(pitchLimit), math32.Abs(forward.Y), tol)
}

func TestControllerRotateThenMove(t *testing.T) {
	cm := New(1, 45, 0.1, 100)
	cm.Eye = math32.Vector3{}
	ct := NewController(1)

	// Yaw a quarter turn, then move forward: motion is along the
	// rotated, y-flattened forward axis, not world -Z. The zero-dt
	// update applies the rotation to the camera before moving.
	ct.Rotate(math32.Pi/2/0.001, 0)
	ct.Update(cm, 0)
	ct.SetPressed(MoveForward, true)
	ct.Update(cm, 1)

	assert.InDelta(t, 0, cm.Eye.Y, tol)
	assert.InDelta(t, 1, cm.Eye.Length(), 1.0e-3)
	assert.Greater(t, math32.Abs(cm.Eye.X), float32(0.9))
}
