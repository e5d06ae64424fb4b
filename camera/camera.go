package camera

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/glw/assert"
	"github.com/chewxy/math32"
)

type Type int32

const (
	Type_Unknown Type = iota
	Type_Perspective
	Type_Orthographic
)

// Camera builds right-handed view and projection matrices. Setters only mark what they affect as dirty
// and the matrices are recomputed on the next read. Setting a value equal to the current one does nothing.
type Camera struct {
	Type Type

	pos     gglm.Vec3
	forward gglm.Vec3
	worldUp gglm.Vec3

	nearClip float32
	farClip  float32

	// Perspective
	fovRadians  float32
	aspectRatio float32

	// Orthographic
	orthoLeft   float32
	orthoRight  float32
	orthoTop    float32
	orthoBottom float32

	viewMat     gglm.Mat4
	projMat     gglm.Mat4
	projViewMat gglm.Mat4

	viewDirty     bool
	projDirty     bool
	projViewDirty bool
}

func (c *Camera) Pos() gglm.Vec3 {
	return c.pos
}

func (c *Camera) Forward() gglm.Vec3 {
	return c.forward
}

func (c *Camera) WorldUp() gglm.Vec3 {
	return c.worldUp
}

func (c *Camera) NearClip() float32 {
	return c.nearClip
}

func (c *Camera) FarClip() float32 {
	return c.farClip
}

func (c *Camera) FovRadians() float32 {
	return c.fovRadians
}

func (c *Camera) AspectRatio() float32 {
	return c.aspectRatio
}

func (c *Camera) IsViewDirty() bool {
	return c.viewDirty
}

func (c *Camera) IsProjDirty() bool {
	return c.projDirty
}

func (c *Camera) markView() {
	c.viewDirty = true
	c.projViewDirty = true
}

func (c *Camera) markProj() {
	c.projDirty = true
	c.projViewDirty = true
}

func (c *Camera) SetPos(pos *gglm.Vec3) {

	if c.pos.Data == pos.Data {
		return
	}

	c.pos = *pos
	c.markView()
}

// SetForward sets the view direction. It's normalized before use.
func (c *Camera) SetForward(forward *gglm.Vec3) {

	f := normalized(*forward)
	if c.forward.Data == f.Data {
		return
	}

	c.forward = f
	c.markView()
}

func (c *Camera) SetWorldUp(worldUp *gglm.Vec3) {

	up := normalized(*worldUp)
	if c.worldUp.Data == up.Data {
		return
	}

	c.worldUp = up
	c.markView()
}

func (c *Camera) SetNearClip(nearClip float32) {

	if c.nearClip == nearClip {
		return
	}

	c.nearClip = nearClip
	c.markProj()
}

func (c *Camera) SetFarClip(farClip float32) {

	if c.farClip == farClip {
		return
	}

	c.farClip = farClip
	c.markProj()
}

func (c *Camera) SetFovRadians(fovRadians float32) {

	assert.T(c.Type == Type_Perspective, "SetFovRadians called on a non-perspective camera")
	if c.fovRadians == fovRadians {
		return
	}

	c.fovRadians = fovRadians
	c.markProj()
}

func (c *Camera) SetAspectRatio(aspectRatio float32) {

	assert.T(c.Type == Type_Perspective, "SetAspectRatio called on a non-perspective camera")
	if c.aspectRatio == aspectRatio {
		return
	}

	c.aspectRatio = aspectRatio
	c.markProj()
}

func (c *Camera) SetOrthoBox(left, right, top, bottom float32) {

	assert.T(c.Type == Type_Orthographic, "SetOrthoBox called on a non-orthographic camera")
	if c.orthoLeft == left && c.orthoRight == right && c.orthoTop == top && c.orthoBottom == bottom {
		return
	}

	c.orthoLeft, c.orthoRight, c.orthoTop, c.orthoBottom = left, right, top, bottom
	c.markProj()
}

// Translate moves the camera by offset in world space
func (c *Camera) Translate(offset *gglm.Vec3) {
	newPos := gglm.NewVec3(c.pos.X()+offset.X(), c.pos.Y()+offset.Y(), c.pos.Z()+offset.Z())
	c.SetPos(&newPos)
}

// MoveRelative moves the camera relative to where it looks: x along its right, y along world up and z along forward
func (c *Camera) MoveRelative(offset *gglm.Vec3) {

	f, u := &c.forward, &c.worldUp
	right := normalized(gglm.NewVec3(
		f.Y()*u.Z()-f.Z()*u.Y(),
		f.Z()*u.X()-f.X()*u.Z(),
		f.X()*u.Y()-f.Y()*u.X(),
	))

	delta := gglm.NewVec3(
		right.X()*offset.X()+c.worldUp.X()*offset.Y()+c.forward.X()*offset.Z(),
		right.Y()*offset.X()+c.worldUp.Y()*offset.Y()+c.forward.Y()*offset.Z(),
		right.Z()*offset.X()+c.worldUp.Z()*offset.Y()+c.forward.Z()*offset.Z(),
	)
	c.Translate(&delta)
}

// LookAt turns the camera to face target. target must not be the camera position.
func (c *Camera) LookAt(target *gglm.Vec3) {
	dir := gglm.NewVec3(target.X()-c.pos.X(), target.Y()-c.pos.Y(), target.Z()-c.pos.Z())
	c.SetForward(&dir)
}

// UpdateRotation points the camera using euler angles in radians.
// Yaw of -90 degrees with zero pitch looks down negative Z.
func (c *Camera) UpdateRotation(pitch, yaw float32) {

	dir := gglm.NewVec3(
		math32.Cos(yaw)*math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw)*math32.Cos(pitch),
	)

	c.SetForward(&dir)
}

// RotateQuat rotates both the view direction and the up vector by q
func (c *Camera) RotateQuat(q *gglm.Quat) {

	fwd, up := c.forward, c.worldUp
	fwd.RotByQuat(q)
	up.RotByQuat(q)

	c.SetForward(&fwd)
	c.SetWorldUp(&up)
}

// Rotate turns the camera angleRadians around axis, counter-clockwise when looking down the axis
func (c *Camera) Rotate(axis *gglm.Vec3, angleRadians float32) {
	axisNorm := normalized(*axis)
	q := gglm.NewQuatAngleAxisVec(angleRadians, &axisNorm)
	c.RotateQuat(&q)
}

// SetOrientationTaitBryan replaces the orientation with yaw, pitch and roll in radians, applied in that order.
// All zero looks down negative Z with positive Y up. Positive yaw turns right,
// positive pitch looks up and positive roll tilts the up vector clockwise around the view direction.
func (c *Camera) SetOrientationTaitBryan(yaw, pitch, roll float32) {

	yAxis := gglm.NewVec3(0, 1, 0)

	fwd := gglm.NewVec3(0, 0, -1)
	yawQuat := gglm.NewQuatAngleAxisVec(-yaw, &yAxis)
	fwd.RotByQuat(&yawQuat)

	right := gglm.Cross(&fwd, &yAxis)
	right = normalized(right)

	pitchQuat := gglm.NewQuatAngleAxisVec(pitch, &right)
	fwd.RotByQuat(&pitchQuat)
	fwd = normalized(fwd)

	up := gglm.Cross(&right, &fwd)
	rollQuat := gglm.NewQuatAngleAxisVec(roll, &fwd)
	up.RotByQuat(&rollQuat)

	c.SetForward(&fwd)
	c.SetWorldUp(&up)
}

// Update recomputes whatever matrices are dirty
func (c *Camera) Update() {

	if c.viewDirty {
		target := gglm.NewVec3(c.pos.X()+c.forward.X(), c.pos.Y()+c.forward.Y(), c.pos.Z()+c.forward.Z())
		c.viewMat = gglm.LookAtRH(&c.pos, &target, &c.worldUp).Mat4
		c.viewDirty = false
	}

	if c.projDirty {

		switch c.Type {
		case Type_Perspective:
			projMat := gglm.Perspective(c.fovRadians, c.aspectRatio, c.nearClip, c.farClip)
			c.projMat = *projMat.Clone()
		case Type_Orthographic:
			c.projMat = gglm.Ortho(c.orthoLeft, c.orthoRight, c.orthoTop, c.orthoBottom, c.nearClip, c.farClip).Mat4
		default:
			assert.T(false, "Unknown camera type '%d'", c.Type)
		}

		c.projDirty = false
	}

	if c.projViewDirty {
		c.projViewMat = *c.projMat.Clone().Mul(&c.viewMat)
		c.projViewDirty = false
	}
}

func (c *Camera) ViewMat() gglm.Mat4 {
	c.Update()
	return c.viewMat
}

func (c *Camera) ProjMat() gglm.Mat4 {
	c.Update()
	return c.projMat
}

// ProjViewMat is ProjMat * ViewMat
func (c *Camera) ProjViewMat() gglm.Mat4 {
	c.Update()
	return c.projViewMat
}

func normalized(v gglm.Vec3) gglm.Vec3 {

	length := math32.Sqrt(v.X()*v.X() + v.Y()*v.Y() + v.Z()*v.Z())
	assert.T(length > 0, "camera direction vectors can't be zero")

	return gglm.NewVec3(v.X()/length, v.Y()/length, v.Z()/length)
}

func newCamera(camType Type, pos, forward, worldUp *gglm.Vec3, nearClip, farClip float32) *Camera {

	c := &Camera{
		Type:     camType,
		pos:      *pos,
		forward:  normalized(*forward),
		worldUp:  normalized(*worldUp),
		nearClip: nearClip,
		farClip:  farClip,
	}

	c.markView()
	c.markProj()
	return c
}

func NewPerspective(pos, forward, worldUp *gglm.Vec3, nearClip, farClip, fovRadians, aspectRatio float32) *Camera {

	c := newCamera(Type_Perspective, pos, forward, worldUp, nearClip, farClip)
	c.fovRadians = fovRadians
	c.aspectRatio = aspectRatio

	c.Update()
	return c
}

func NewOrthographic(pos, forward, worldUp *gglm.Vec3, nearClip, farClip, left, right, top, bottom float32) *Camera {

	c := newCamera(Type_Orthographic, pos, forward, worldUp, nearClip, farClip)
	c.orthoLeft, c.orthoRight, c.orthoTop, c.orthoBottom = left, right, top, bottom

	c.Update()
	return c
}
