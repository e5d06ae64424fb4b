package buffers

import "github.com/bloeys/glw/glapi"

// IndexBuffer is an ELEMENT_ARRAY_BUFFER of uint32 indices.
//
// Binding it attaches it to whatever vertex array is currently bound, so prefer VertexArray.SetIndexBuffer.
type IndexBuffer struct {
	*Buffer
	// IndexBufCount is the number of elements in the index buffer. Updated in IndexBuffer.SetData
	IndexBufCount int32
}

// IndexType is the GL type of the stored indices, as needed by DrawElements
func (ib *IndexBuffer) IndexType() uint32 {
	return glapi.UNSIGNED_INT
}

func (ib *IndexBuffer) SetData(values []uint32) {
	ib.IndexBufCount = int32(len(values))
	ib.Buffer.SetData(Uint32Bytes(values), BufUsage_Static_Draw)
}

func NewIndexBuffer() *IndexBuffer {
	return &IndexBuffer{
		Buffer: NewBuffer(BufTarget_ElementArray),
	}
}

// SetSubData writes values starting at index start, growing the buffer if they go past its end
func (ib *IndexBuffer) SetSubData(start int, values []uint32) {

	ib.SubData(start*4, Uint32Bytes(values))

	if n := int32(start + len(values)); n > ib.IndexBufCount {
		ib.IndexBufCount = n
	}
}
