package camera_test

import (
	"math"
	"testing"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/glw/camera"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-5

func newTestPerspective() *camera.Camera {
	pos := gglm.NewVec3(0, 0, 5)
	forward := gglm.NewVec3(0, 0, -2)
	up := gglm.NewVec3(0, 1, 0)
	return camera.NewPerspective(&pos, &forward, &up, 1, 3, 90*gglm.Deg2Rad, 2)
}

func assertMatInDelta(t *testing.T, expected, actual *gglm.Mat4) {
	t.Helper()
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			assert.InDelta(t, expected.Data[c][r], actual.Data[c][r], eps, "column %d row %d", c, r)
		}
	}
}

func TestPerspectiveMatrices(t *testing.T) {

	cam := newTestPerspective()
	require.False(t, cam.IsViewDirty())
	require.False(t, cam.IsProjDirty())

	fwd := cam.Forward()
	assert.InDelta(t, -1, fwd.Z(), eps, "forward is normalized")

	view := cam.ViewMat()
	expectedView := gglm.NewMat4Diag(1)
	expectedView.Data[3][2] = -5
	assertMatInDelta(t, &expectedView, &view)

	proj := cam.ProjMat()
	assert.InDelta(t, 0.5, proj.Data[0][0], eps)
	assert.InDelta(t, 1, proj.Data[1][1], eps)
	assert.InDelta(t, -2, proj.Data[2][2], eps)
	assert.InDelta(t, -1, proj.Data[2][3], eps)
	assert.InDelta(t, -3, proj.Data[3][2], eps)

	projView := cam.ProjViewMat()
	expected := *proj.Clone().Mul(&view)
	assertMatInDelta(t, &expected, &projView)
}

func TestSettersMarkDirty(t *testing.T) {

	cam := newTestPerspective()

	samePos := cam.Pos()
	cam.SetPos(&samePos)
	cam.SetNearClip(1)
	cam.SetAspectRatio(2)
	assert.False(t, cam.IsViewDirty(), "unchanged values don't dirty anything")
	assert.False(t, cam.IsProjDirty())

	newPos := gglm.NewVec3(1, 2, 3)
	cam.SetPos(&newPos)
	assert.True(t, cam.IsViewDirty())
	assert.False(t, cam.IsProjDirty())

	cam.SetFovRadians(60 * gglm.Deg2Rad)
	assert.True(t, cam.IsProjDirty())

	view := cam.ViewMat()
	assert.False(t, cam.IsViewDirty())
	assert.False(t, cam.IsProjDirty())
	assert.InDelta(t, -1, view.Data[3][0], eps)
	assert.InDelta(t, -2, view.Data[3][1], eps)
	assert.InDelta(t, -3, view.Data[3][2], eps)

	proj := cam.ProjMat()
	assert.InDelta(t, 1.7320508, proj.Data[1][1], eps, "1/tan(30deg)")

	assert.Panics(t, func() { cam.SetOrthoBox(-1, 1, 1, -1) })
}

func TestRotationAndMovement(t *testing.T) {

	cam := newTestPerspective()

	cam.UpdateRotation(0, 0)
	fwd := cam.Forward()
	assert.InDelta(t, 1, fwd.X(), eps)
	assert.InDelta(t, 0, fwd.Z(), eps)
	assert.True(t, cam.IsViewDirty())

	cam.UpdateRotation(0, -90*gglm.Deg2Rad)
	fwd = cam.Forward()
	assert.InDelta(t, 0, fwd.X(), eps)
	assert.InDelta(t, -1, fwd.Z(), eps)

	offset := gglm.NewVec3(1, 0, 0)
	cam.Translate(&offset)
	pos := cam.Pos()
	assert.Equal(t, [3]float32{1, 0, 5}, pos.Data)

	// Looking down -Z: right is +X and forward is -Z
	rel := gglm.NewVec3(1, 2, 3)
	cam.MoveRelative(&rel)
	pos = cam.Pos()
	assert.InDelta(t, 2, pos.X(), eps)
	assert.InDelta(t, 2, pos.Y(), eps)
	assert.InDelta(t, 2, pos.Z(), eps)

	target := gglm.NewVec3(2, 2, 10)
	cam.LookAt(&target)
	fwd = cam.Forward()
	assert.InDelta(t, 1, fwd.Z(), eps)

	assert.Panics(t, func() { cam.LookAt(&pos) }, "looking at its own position has no direction")
}

func assertVecInDelta(t *testing.T, expected [3]float32, actual gglm.Vec3) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, expected[i], actual.Data[i], eps, "component %d of %v", i, actual.Data)
	}
}

func TestRotate(t *testing.T) {

	cam := newTestPerspective()
	cam.ViewMat()

	id := gglm.NewQuatId()
	cam.RotateQuat(&id)
	assert.False(t, cam.IsViewDirty(), "identity rotation changes nothing")

	yAxis := gglm.NewVec3(0, 2, 0)
	cam.Rotate(&yAxis, 90*gglm.Deg2Rad)
	assert.True(t, cam.IsViewDirty())
	assertVecInDelta(t, [3]float32{-1, 0, 0}, cam.Forward())
	assertVecInDelta(t, [3]float32{0, 1, 0}, cam.WorldUp())

	// Rolling around the view direction only moves the up vector
	roll := gglm.NewQuatAngleAxis(90*gglm.Deg2Rad, -1, 0, 0)
	cam.RotateQuat(&roll)
	assertVecInDelta(t, [3]float32{-1, 0, 0}, cam.Forward())
	assertVecInDelta(t, [3]float32{0, 0, -1}, cam.WorldUp())
}

func TestSetOrientationTaitBryan(t *testing.T) {

	cam := newTestPerspective()

	cam.SetOrientationTaitBryan(0, 0, 0)
	assertVecInDelta(t, [3]float32{0, 0, -1}, cam.Forward())
	assertVecInDelta(t, [3]float32{0, 1, 0}, cam.WorldUp())

	cam.SetOrientationTaitBryan(90*gglm.Deg2Rad, 0, 0)
	assertVecInDelta(t, [3]float32{1, 0, 0}, cam.Forward())
	assertVecInDelta(t, [3]float32{0, 1, 0}, cam.WorldUp())

	half := float32(math.Sqrt2 / 2)
	cam.SetOrientationTaitBryan(0, 45*gglm.Deg2Rad, 0)
	assertVecInDelta(t, [3]float32{0, half, -half}, cam.Forward())
	assertVecInDelta(t, [3]float32{0, half, half}, cam.WorldUp())

	cam.SetOrientationTaitBryan(0, 0, 90*gglm.Deg2Rad)
	assertVecInDelta(t, [3]float32{0, 0, -1}, cam.Forward())
	assertVecInDelta(t, [3]float32{1, 0, 0}, cam.WorldUp())

	view := cam.ViewMat()
	p := gglm.NewVec4(1, 0, 4, 1)
	viewPos := gglm.MulMat4Vec4(&view, &p)
	assert.InDelta(t, 1, viewPos.Y(), eps, "a point on world +X is above the center once rolled")
}

func TestOrthographic(t *testing.T) {

	pos := gglm.NewVec3(0, 0, 0)
	forward := gglm.NewVec3(0, 0, -1)
	up := gglm.NewVec3(0, 1, 0)
	cam := camera.NewOrthographic(&pos, &forward, &up, 0.1, 10, -2, 2, 4, -4)

	proj := cam.ProjMat()
	assert.InDelta(t, 0.5, proj.Data[0][0], eps)
	assert.InDelta(t, 0.25, math.Abs(float64(proj.Data[1][1])), eps)

	cam.SetOrthoBox(-1, 1, 4, -4)
	assert.True(t, cam.IsProjDirty())
	assert.False(t, cam.IsViewDirty())

	proj = cam.ProjMat()
	assert.InDelta(t, 1, proj.Data[0][0], eps)

	assert.Panics(t, func() { cam.SetFovRadians(1) })
}
