package buffers_test

import (
	"testing"

	"github.com/bloeys/glw/buffers"
	"github.com/bloeys/glw/glapi"
	"github.com/bloeys/glw/internal/glfake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFake(t *testing.T) *glfake.GL {
	t.Helper()
	g := glfake.New()
	glapi.SetCurrent(g)
	t.Cleanup(func() { glapi.SetCurrent(nil) })
	return g
}

func TestSubDataGrowsAndKeepsContents(t *testing.T) {

	g := newFake(t)

	b := buffers.NewBufferWithData(buffers.BufTarget_Array, []byte{1, 2, 3, 4}, buffers.BufUsage_Static_Draw)
	oldId := b.Id

	var reallocs []uint32
	b.OnRealloc(func(nb *buffers.Buffer, old uint32) {
		assert.Equal(t, b, nb)
		reallocs = append(reallocs, old)
	})

	b.SubData(2, []byte{9, 9, 9, 9})

	assert.Equal(t, 6, b.Size())
	assert.NotEqual(t, oldId, b.Id)
	assert.Nil(t, g.Buffers[oldId], "old store must be released")
	assert.Equal(t, []byte{1, 2, 9, 9, 9, 9}, g.Buffers[b.Id].Data)
	assert.Equal(t, uint32(glapi.STATIC_DRAW), g.Buffers[b.Id].Usage)
	assert.Equal(t, []uint32{oldId}, reallocs)
	assert.Zero(t, g.ErrorCount())

	// In range writes keep the identity
	id := b.Id
	b.SubData(0, []byte{7})
	assert.Equal(t, id, b.Id)
	assert.Equal(t, []byte{7, 2, 9, 9, 9, 9}, g.Buffers[b.Id].Data)
}

func TestReserveNeverShrinks(t *testing.T) {

	g := newFake(t)

	b := buffers.NewBufferWithData(buffers.BufTarget_Array, []byte{1, 2, 3, 4, 5, 6}, buffers.BufUsage_Dynamic_Draw)
	id := b.Id

	b.Reserve(2)
	b.Reserve(6)
	assert.Equal(t, id, b.Id)
	assert.Equal(t, 6, b.Size())

	b.Reserve(10)
	assert.Equal(t, 10, b.Size())
	assert.Len(t, g.Buffers[b.Id].Data, 10)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, g.Buffers[b.Id].Data[:6])
}

func TestGrowingEmptyBufferUsesDynamicDraw(t *testing.T) {

	g := newFake(t)

	b := buffers.NewBuffer(buffers.BufTarget_Array)
	assert.Equal(t, buffers.BufUsage_Unknown, b.Usage())

	b.SubData(4, []byte{1, 2})
	assert.Equal(t, 6, b.Size())
	assert.Equal(t, buffers.BufUsage_Dynamic_Draw, b.Usage())
	assert.Equal(t, []byte{0, 0, 0, 0, 1, 2}, g.Buffers[b.Id].Data)
	assert.Zero(t, g.ErrorCount())
}

func TestSetDataIsExact(t *testing.T) {

	g := newFake(t)

	b := buffers.NewBufferWithData(buffers.BufTarget_Array, make([]byte, 64), buffers.BufUsage_Static_Draw)
	b.SetData([]byte{1, 2}, buffers.BufUsage_Stream_Draw)

	assert.Equal(t, 2, b.Size())
	assert.Equal(t, buffers.BufUsage_Stream_Draw, b.Usage())
	assert.Equal(t, []byte{1, 2}, g.Buffers[b.Id].Data)

	b.Allocate(16, buffers.BufUsage_Static_Read)
	assert.Equal(t, 16, b.Size())
	assert.Equal(t, uint32(glapi.STATIC_READ), g.Buffers[b.Id].Usage)
}

func TestCopySubData(t *testing.T) {

	g := newFake(t)

	src := buffers.NewBufferWithData(buffers.BufTarget_Array, []byte{1, 2, 3, 4, 5, 6, 7, 8}, buffers.BufUsage_Static_Draw)
	dst := buffers.NewBufferWithData(buffers.BufTarget_Array, []byte{0xA, 0xB}, buffers.BufUsage_Static_Draw)

	require.NoError(t, dst.CopySubData(src, 4, 2, 4))
	assert.Equal(t, 6, dst.Size())
	assert.Equal(t, []byte{0xA, 0xB, 5, 6, 7, 8}, g.Buffers[dst.Id].Data)

	err := dst.CopySubData(src, 6, 0, 4)
	assert.ErrorIs(t, err, buffers.ErrOutOfRange)

	err = dst.CopySubData(src, -1, 0, 1)
	assert.ErrorIs(t, err, buffers.ErrOutOfRange)

	assert.Zero(t, g.ErrorCount())
}

func TestCopySubDataWithinSameBuffer(t *testing.T) {

	g := newFake(t)

	b := buffers.NewBufferWithData(buffers.BufTarget_Array, []byte{1, 2, 3, 4}, buffers.BufUsage_Static_Draw)

	// [0,2) and [1,3) overlap
	err := b.CopySubData(b, 0, 1, 2)
	assert.ErrorIs(t, err, buffers.ErrOutOfRange, "overlapping ranges are rejected")
	assert.Equal(t, []byte{1, 2, 3, 4}, g.Buffers[b.Id].Data)

	require.NoError(t, b.CopySubData(b, 0, 4, 4))
	assert.Equal(t, 8, b.Size())
	assert.Equal(t, []byte{1, 2, 3, 4, 1, 2, 3, 4}, g.Buffers[b.Id].Data)
	assert.Zero(t, g.ErrorCount())
}

func TestCopySubDataAdjacentRanges(t *testing.T) {

	g := newFake(t)

	b := buffers.NewBufferWithData(buffers.BufTarget_Array, []byte{1, 2, 3, 4}, buffers.BufUsage_Static_Draw)

	// [0,2) and [2,4) only touch
	require.NoError(t, b.CopySubData(b, 0, 2, 2))
	assert.Equal(t, 4, b.Size())
	assert.Equal(t, []byte{1, 2, 1, 2}, g.Buffers[b.Id].Data)

	require.NoError(t, b.CopySubData(b, 2, 0, 2))
	assert.Equal(t, []byte{1, 2, 1, 2}, g.Buffers[b.Id].Data)
	assert.Zero(t, g.ErrorCount())
}

func TestGetSubData(t *testing.T) {

	newFake(t)

	b := buffers.NewBufferWithData(buffers.BufTarget_Array, []byte{1, 2, 3, 4}, buffers.BufUsage_Static_Draw)

	out := make([]byte, 2)
	require.NoError(t, b.GetSubData(1, out))
	assert.Equal(t, []byte{2, 3}, out)

	assert.ErrorIs(t, b.GetSubData(3, out), buffers.ErrOutOfRange)
}

func TestMapRange(t *testing.T) {

	g := newFake(t)

	b := buffers.NewBufferWithData(buffers.BufTarget_Array, []byte{1, 2, 3, 4}, buffers.BufUsage_Dynamic_Draw)

	_, err := b.MapRange(2, 4, glapi.MAP_WRITE_BIT)
	assert.ErrorIs(t, err, buffers.ErrOutOfRange)

	mem, err := b.MapRange(1, 2, glapi.MAP_WRITE_BIT)
	require.NoError(t, err)
	assert.True(t, b.IsMapped())

	mem[0], mem[1] = 8, 9
	assert.True(t, b.Unmap())
	assert.False(t, b.IsMapped())
	assert.Equal(t, []byte{1, 8, 9, 4}, g.Buffers[b.Id].Data)
}

func TestIndexedBinding(t *testing.T) {

	g := newFake(t)

	b := buffers.NewBuffer(buffers.BufTarget_Uniform)
	b.Allocate(256, buffers.BufUsage_Dynamic_Draw)

	b.BindBase(3)
	assert.Equal(t, b.Id, g.IndexedBinds[glapi.UNIFORM_BUFFER][3])

	require.NoError(t, b.BindRange(4, 0, 128))
	assert.Equal(t, b.Id, g.IndexedBinds[glapi.UNIFORM_BUFFER][4])

	assert.ErrorIs(t, b.BindRange(5, 200, 128), buffers.ErrOutOfRange)

	arr := buffers.NewBuffer(buffers.BufTarget_Array)
	assert.Panics(t, func() { arr.BindBase(0) })
}

func TestDeleteIsIdempotent(t *testing.T) {

	g := newFake(t)

	b := buffers.NewBufferWithData(buffers.BufTarget_Array, []byte{1}, buffers.BufUsage_Static_Draw)
	id := b.Id

	b.Delete()
	assert.Zero(t, b.Id)
	assert.Zero(t, b.Size())
	assert.Nil(t, g.Buffers[id])

	b.Delete()
	assert.Zero(t, g.ErrorCount())
}

func TestByteHelpers(t *testing.T) {

	assert.Equal(t, []byte{0, 0, 0x80, 0x3f}, buffers.Float32Bytes([]float32{1}))
	assert.Equal(t, []byte{1, 0, 0, 0, 0, 1, 0, 0}, buffers.Uint32Bytes([]uint32{1, 256}))
	assert.Equal(t, buffers.Uint32Bytes([]uint32{5, 6}), buffers.SliceBytes([]uint32{5, 6}))
	assert.Nil(t, buffers.SliceBytes([]float32{}))
}
