package buffers

// VertexBuffer is an ARRAY_BUFFER whose contents are interleaved vertices described by a layout
type VertexBuffer struct {
	*Buffer
	Stride int32
	layout []Element
}

func (vb *VertexBuffer) SetData(values []float32, usage BufUsage) {
	vb.Buffer.SetData(Float32Bytes(values), usage)
}

// VertexCount is how many whole vertices the buffer currently holds
func (vb *VertexBuffer) VertexCount() int32 {

	if vb.Stride == 0 {
		return 0
	}

	return int32(vb.Size()) / vb.Stride
}

func (vb *VertexBuffer) GetLayout() []Element {
	e := make([]Element, len(vb.layout))
	copy(e, vb.layout)
	return e
}

// SetLayout computes element offsets and the stride. Offsets set on the passed elements are overwritten.
func (vb *VertexBuffer) SetLayout(layout ...Element) {

	vb.Stride = 0
	vb.layout = make([]Element, len(layout))
	copy(vb.layout, layout)

	for i := 0; i < len(vb.layout); i++ {
		vb.layout[i].Offset = int(vb.Stride)
		vb.Stride += vb.layout[i].Size()
	}
}

func NewVertexBuffer(layout ...Element) *VertexBuffer {

	vb := &VertexBuffer{
		Buffer: NewBuffer(BufTarget_Array),
	}

	vb.SetLayout(layout...)
	return vb
}
