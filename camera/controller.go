// Copyright (c) 2026, The VoxelGame Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package camera

import "cogentcore.org/core/math32"

// Move is a camera movement direction, driven by held keys.
type Move int32

const (
	MoveForward Move = iota
	MoveBackward
	MoveLeft
	MoveRight
	MoveUp
	MoveDown
	MovesN
)

// pitchLimit keeps the camera from flipping over the poles.
var pitchLimit float32 = math32.Pi / 2 * (5.0 / 6.0)

// Controller turns held-key and mouse-delta input into camera pose
// updates. It is windowing-agnostic: the frame driver maps its input
// events onto [Controller.SetPressed] and [Controller.Rotate].
type Controller struct {
	// Speed is the movement speed in world units per second.
	Speed float32

	// Sensitivity scales mouse deltas to radians.
	Sensitivity float32

	yaw     float32
	pitch   float32
	pressed [MovesN]bool
}

// NewController returns a Controller with the given movement speed.
func NewController(speed float32) *Controller {
	return &Controller{Speed: speed, Sensitivity: 0.001}
}

// SetPressed records that the given movement direction's key is
// held or released.
func (ct *Controller) SetPressed(mv Move, pressed bool) {
	ct.pressed[mv] = pressed
}

// Rotate applies a mouse movement delta in pixels to the camera yaw
// and pitch, clamping pitch to avoid flipping.
func (ct *Controller) Rotate(dx, dy float32) {
	ct.yaw += dx * ct.Sensitivity
	ct.pitch += dy * ct.Sensitivity
	ct.pitch = math32.Clamp(ct.pitch, -pitchLimit, pitchLimit)
}

// Update advances the camera by dt seconds: movement along the
// yaw-flattened forward frame (diagonals normalized so they are not
// faster), then pitch-after-yaw rotation.
func (ct *Controller) Update(cm *Camera, dt float32) {
	up := math32.Vec3(0, 1, 0)
	forward := math32.Vec3(0, 0, 1).MulQuat(cm.Rotation.Conjugate())
	forward = math32.Vec3(forward.X, 0, forward.Z).Normal()
	right := forward.Cross(up).Normal()

	var movement math32.Vector3
	if ct.pressed[MoveForward] {
		movement.SetSub(forward)
	}
	if ct.pressed[MoveBackward] {
		movement.SetAdd(forward)
	}
	if ct.pressed[MoveLeft] {
		movement.SetAdd(right)
	}
	if ct.pressed[MoveRight] {
		movement.SetSub(right)
	}
	if ct.pressed[MoveUp] {
		movement.SetAdd(up)
	}
	if ct.pressed[MoveDown] {
		movement.SetSub(up)
	}
	if movement.Length() > 0 {
		movement = movement.Normal().MulScalar(ct.Speed * dt)
		cm.Eye.SetAdd(movement)
	}

	var yawRot, pitchRot math32.Quat
	yawRot.SetFromAxisAngle(math32.Vec3(0, 1, 0), ct.yaw)
	pitchRot.SetFromAxisAngle(math32.Vec3(1, 0, 0), ct.pitch)
	cm.Rotation = pitchRot.Mul(yawRot)
}
