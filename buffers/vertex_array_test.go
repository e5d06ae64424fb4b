package buffers_test

import (
	"testing"

	"github.com/bloeys/glw/buffers"
	"github.com/bloeys/glw/glapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVertexBufferLayout(t *testing.T) {

	newFake(t)

	vbo := buffers.NewVertexBuffer(
		buffers.Element{ElementType: buffers.DataTypeVec3},
		buffers.Element{ElementType: buffers.DataTypeVec2},
		buffers.Element{ElementType: buffers.DataTypeUint32},
	)

	assert.Equal(t, int32(24), vbo.Stride)

	layout := vbo.GetLayout()
	require.Len(t, layout, 3)
	assert.Equal(t, 0, layout[0].Offset)
	assert.Equal(t, 12, layout[1].Offset)
	assert.Equal(t, 20, layout[2].Offset)

	vbo.SetData(make([]float32, 12), buffers.BufUsage_Static_Draw)
	assert.Equal(t, int32(2), vbo.VertexCount())
}

func TestAddVertexBuffers(t *testing.T) {

	g := newFake(t)

	pos := buffers.NewVertexBuffer(
		buffers.Element{ElementType: buffers.DataTypeVec3},
		buffers.Element{ElementType: buffers.DataTypeVec2},
	)
	pos.SetData(make([]float32, 15), buffers.BufUsage_Static_Draw)

	ids := buffers.NewVertexBuffer(
		buffers.Element{ElementType: buffers.DataTypeInt32},
		buffers.Element{ElementType: buffers.DataTypeUint32, Normalized: true},
	)
	ids.SetData(make([]float32, 6), buffers.BufUsage_Static_Draw)

	vao := buffers.NewVertexArray()
	assert.Equal(t, uint32(0), vao.AddVertexBuffer(pos))
	assert.Equal(t, uint32(2), vao.AddVertexBuffer(ids), "second buffer continues after the first one's attributes")
	assert.Equal(t, uint32(4), vao.NextAttrib())

	attribs := g.VertexArrays[vao.Id].Attribs
	require.Len(t, attribs, 4)

	assert.True(t, attribs[0].Enabled)
	assert.Equal(t, int32(3), attribs[0].Size)
	assert.Equal(t, int32(20), attribs[0].Stride)
	assert.Equal(t, pos.Id, attribs[0].BufferId)

	assert.Equal(t, int32(2), attribs[1].Size)
	assert.Equal(t, 12, attribs[1].Offset)
	assert.False(t, attribs[1].Integer)

	assert.True(t, attribs[2].Integer)
	assert.Equal(t, uint32(glapi.INT), attribs[2].Type)
	assert.Equal(t, ids.Id, attribs[2].BufferId)

	assert.False(t, attribs[3].Integer, "normalized integers are read as floats")
	assert.True(t, attribs[3].Normalized)

	vao.DisableAttrib(1)
	assert.False(t, attribs[1].Enabled)
	vao.EnableAttrib(1)
	assert.True(t, attribs[1].Enabled)

	vao.SetAttribDivisor(2, 1)
	assert.Equal(t, uint32(1), attribs[2].Divisor)
	assert.Zero(t, g.ErrorCount())
}

func TestInstancedMatrixAttribute(t *testing.T) {

	g := newFake(t)

	models := buffers.NewVertexBuffer(buffers.Element{ElementType: buffers.DataTypeMat4})
	models.SetData(make([]float32, 32), buffers.BufUsage_Dynamic_Draw)

	vao := buffers.NewVertexArray()
	first := vao.AddInstancedVertexBuffer(models, 1)
	assert.Equal(t, uint32(0), first)
	assert.Equal(t, uint32(4), vao.NextAttrib())

	attribs := g.VertexArrays[vao.Id].Attribs
	for i := uint32(0); i < 4; i++ {
		assert.Equal(t, int32(4), attribs[i].Size)
		assert.Equal(t, int(i)*16, attribs[i].Offset)
		assert.Equal(t, int32(64), attribs[i].Stride)
		assert.Equal(t, uint32(1), attribs[i].Divisor)
	}
}

func TestVertexArrayFollowsBufferGrowth(t *testing.T) {

	g := newFake(t)

	vbo := buffers.NewVertexBuffer(buffers.Element{ElementType: buffers.DataTypeVec2})
	vbo.SetData([]float32{1, 2}, buffers.BufUsage_Dynamic_Draw)

	ib := buffers.NewIndexBuffer()

	vao := buffers.NewVertexArray()
	vao.AddVertexBuffer(vbo)
	ib.SetData([]uint32{0, 1, 2})
	vao.SetIndexBuffer(ib)
	vao.UnBind()

	assert.Equal(t, ib.Id, g.VertexArrays[vao.Id].IndexBuffer)

	oldVbo := vbo.Id
	vbo.SubData(vbo.Size(), buffers.Float32Bytes([]float32{3, 4}))
	require.NotEqual(t, oldVbo, vbo.Id)
	assert.Equal(t, vbo.Id, g.VertexArrays[vao.Id].Attribs[0].BufferId)

	oldIb := ib.Id
	ib.SetSubData(int(ib.IndexBufCount), []uint32{3, 4})
	require.NotEqual(t, oldIb, ib.Id)
	assert.Equal(t, int32(5), ib.IndexBufCount)
	assert.Equal(t, ib.Id, g.VertexArrays[vao.Id].IndexBuffer)
	assert.Equal(t, buffers.Uint32Bytes([]uint32{0, 1, 2, 3, 4}), g.Buffers[ib.Id].Data)

	assert.Zero(t, g.ErrorCount())
}

func TestDeletedVertexArrayIgnoresGrowth(t *testing.T) {

	g := newFake(t)

	vbo := buffers.NewVertexBuffer(buffers.Element{ElementType: buffers.DataTypeFloat32})
	vbo.SetData([]float32{1}, buffers.BufUsage_Dynamic_Draw)

	vao := buffers.NewVertexArray()
	vao.AddVertexBuffer(vbo)
	vao.Delete()
	vao.Delete()

	vbo.SubData(4, buffers.Float32Bytes([]float32{2}))
	assert.Empty(t, g.VertexArrays)
	assert.Zero(t, g.ErrorCount())
}

func TestElementTypes(t *testing.T) {

	assert.Equal(t, int32(12), buffers.DataTypeVec3.Size())
	assert.Equal(t, int32(16), buffers.DataTypeMat4.CompCount())
	assert.Equal(t, uint16(3), buffers.DataTypeMat3.Columns())
	assert.Equal(t, uint16(8), buffers.DataTypeVec2.GlStd140AlignmentBoundary())
	assert.Equal(t, uint32(glapi.UNSIGNED_INT), buffers.DataTypeUint32.GLType())
	assert.True(t, buffers.DataTypeInt32.IsInteger())
	assert.False(t, buffers.DataTypeFloat32.IsInteger())
	assert.Equal(t, "Mat2", buffers.DataTypeMat2.String())
}

func TestBufferGrowthKeepsBoundVertexArray(t *testing.T) {

	g := newFake(t)

	vbo := buffers.NewVertexBuffer(buffers.Element{ElementType: buffers.DataTypeVec2})
	vbo.SetData([]float32{1, 2}, buffers.BufUsage_Dynamic_Draw)
	ib := buffers.NewIndexBuffer()
	ib.SetData([]uint32{0})

	vao := buffers.NewVertexArray()
	vao.AddVertexBuffer(vbo)
	vao.SetIndexBuffer(ib)

	other := buffers.NewVertexArray()
	other.Bind()

	vbo.SubData(vbo.Size(), buffers.Float32Bytes([]float32{3, 4}))
	assert.Equal(t, other.Id, g.BoundVao, "growing a vbo must not change the bound vertex array")
	assert.Equal(t, vbo.Id, g.VertexArrays[vao.Id].Attribs[0].BufferId)
	assert.Empty(t, g.VertexArrays[other.Id].Attribs)

	ib.Reserve(64)
	assert.Equal(t, other.Id, g.BoundVao)
	assert.Equal(t, ib.Id, g.VertexArrays[vao.Id].IndexBuffer)
	assert.Zero(t, g.VertexArrays[other.Id].IndexBuffer)
	assert.Zero(t, g.ErrorCount())
}

type attribNames map[string]int32

func (a attribNames) AttribLoc(name string) int32 {
	if loc, ok := a[name]; ok {
		return loc
	}
	return -1
}

func TestUnbindAttribute(t *testing.T) {

	g := newFake(t)

	vbo := buffers.NewVertexBuffer(
		buffers.Element{ElementType: buffers.DataTypeVec3},
		buffers.Element{ElementType: buffers.DataTypeVec2},
	)
	vbo.SetData(make([]float32, 5), buffers.BufUsage_Static_Draw)

	vao := buffers.NewVertexArray()
	vao.AddVertexBuffer(vbo)

	attribs := g.VertexArrays[vao.Id].Attribs
	vao.UnbindAttribute(0)
	assert.False(t, attribs[0].Enabled)
	assert.True(t, attribs[1].Enabled)
	assert.Zero(t, g.BoundVao)

	prog := attribNames{"uv": 1}
	vao.UnbindNamedAttribute(prog, "missing")
	assert.True(t, attribs[1].Enabled)

	vao.UnbindNamedAttribute(prog, "uv")
	assert.False(t, attribs[1].Enabled)
	assert.Zero(t, g.ErrorCount())
}

func TestClearAttributeBindings(t *testing.T) {

	g := newFake(t)

	first := buffers.NewVertexBuffer(buffers.Element{ElementType: buffers.DataTypeVec3})
	first.SetData(make([]float32, 3), buffers.BufUsage_Dynamic_Draw)

	vao := buffers.NewVertexArray()
	vao.AddVertexBuffer(first)
	vao.AddVertexBuffer(first)
	require.Equal(t, uint32(2), vao.NextAttrib())

	vao.ClearAttributeBindings()
	assert.Zero(t, vao.NextAttrib())
	assert.Empty(t, vao.Vbos)

	attribs := g.VertexArrays[vao.Id].Attribs
	assert.Len(t, attribs, 16, "every supported index is disabled")
	for i, a := range attribs {
		assert.False(t, a.Enabled, "attribute %d", i)
	}

	second := buffers.NewVertexBuffer(buffers.Element{ElementType: buffers.DataTypeVec2})
	second.SetData(make([]float32, 2), buffers.BufUsage_Dynamic_Draw)
	assert.Equal(t, uint32(0), vao.AddVertexBuffer(second))
	assert.Equal(t, second.Id, attribs[0].BufferId)

	// The cleared buffer growing must not point index 0 back at itself
	first.SubData(first.Size(), buffers.Float32Bytes([]float32{1, 2, 3}))
	assert.Equal(t, second.Id, attribs[0].BufferId)
	assert.Equal(t, int32(2), attribs[0].Size)
	assert.Zero(t, g.ErrorCount())
}

func TestUnbindIndexBuffer(t *testing.T) {

	g := newFake(t)

	ib := buffers.NewIndexBuffer()
	ib.SetData([]uint32{0, 1, 2})

	vao := buffers.NewVertexArray()
	vao.SetIndexBuffer(ib)
	require.Equal(t, ib.Id, g.VertexArrays[vao.Id].IndexBuffer)

	vao.UnbindIndexBuffer()
	assert.Nil(t, vao.IndexBuffer)
	assert.Zero(t, g.VertexArrays[vao.Id].IndexBuffer)
	assert.Zero(t, g.BoundVao)

	// A later growth of the detached index buffer must not attach it again
	ib.SetSubData(int(ib.IndexBufCount), []uint32{3, 4})
	assert.Zero(t, g.VertexArrays[vao.Id].IndexBuffer)
	assert.Zero(t, g.ErrorCount())
}
