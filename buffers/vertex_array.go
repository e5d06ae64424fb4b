package buffers

import (
	"runtime"

	"github.com/bloeys/glw/assert"
	"github.com/bloeys/glw/glapi"
	"github.com/bloeys/glw/logging"
)

// vaoHandle is what buffer growth callbacks hold on to. Capturing the VertexArray itself would put
// finalized objects in a reference cycle and they would never be collected.
type vaoHandle struct {
	id        uint32
	gl        glapi.GL
	indexGen  uint32
	attribGen uint32
}

// rebind runs f with the vertex array bound, then goes back to whatever vertex array was bound before
func (h *vaoHandle) rebind(f func()) {

	prev := uint32(h.gl.GetIntegerv(glapi.VERTEX_ARRAY_BINDING))

	h.gl.BindVertexArray(h.id)
	f()
	h.gl.BindVertexArray(prev)
}

// AttribLocator is anything that can resolve an attribute name to its location, like a linked shader program
type AttribLocator interface {
	AttribLoc(name string) int32
}

// attribPointer is one VertexAttrib*Pointer call
type attribPointer struct {
	index  uint32
	elem   Element
	column uint16
	stride int32
}

type VertexArray struct {
	Id          uint32
	Vbos        []*VertexBuffer
	IndexBuffer *IndexBuffer

	nextAttrib uint32
	h          *vaoHandle
	gl         glapi.GL
}

func (va *VertexArray) Bind() {
	va.gl.BindVertexArray(va.Id)
}

func (va *VertexArray) UnBind() {
	va.gl.BindVertexArray(0)
}

// NextAttrib is the attribute index the next added vertex buffer starts at
func (va *VertexArray) NextAttrib() uint32 {
	return va.nextAttrib
}

// AddVertexBuffer assigns consecutive attribute indices to the elements of the vbo layout, enables them and
// returns the first index used. Matrix elements take one index per column.
//
// Integer elements that are not normalized are read as integers by the shader.
func (va *VertexArray) AddVertexBuffer(vbo *VertexBuffer) (firstAttrib uint32) {

	assert.T(va.Id != 0, "AddVertexBuffer called on a deleted vertex array")
	assert.T(vbo != nil && vbo.Id != 0, "AddVertexBuffer called with a nil or deleted vertex buffer")

	firstAttrib = va.nextAttrib

	ptrs := make([]attribPointer, 0, len(vbo.layout))
	for i := 0; i < len(vbo.layout); i++ {

		l := vbo.layout[i]
		for c := uint16(0); c < l.Columns(); c++ {
			ptrs = append(ptrs, attribPointer{index: va.nextAttrib, elem: l, column: c, stride: vbo.Stride})
			va.nextAttrib++
		}
	}

	va.Bind()
	vbo.Bind()
	pointAttribs(va.gl, ptrs, true)

	va.Vbos = append(va.Vbos, vbo)

	h := va.h
	gen := h.attribGen
	vbo.OnRealloc(func(b *Buffer, oldId uint32) {

		// Stale if the attribute bindings were cleared since
		if h.id == 0 || h.attribGen != gen {
			return
		}

		h.rebind(func() {
			b.Bind()
			pointAttribs(h.gl, ptrs, false)
		})
	})

	return firstAttrib
}

// AddInstancedVertexBuffer is AddVertexBuffer with every attribute of the vbo advancing once per divisor instances
func (va *VertexArray) AddInstancedVertexBuffer(vbo *VertexBuffer, divisor uint32) (firstAttrib uint32) {

	firstAttrib = va.AddVertexBuffer(vbo)
	for i := firstAttrib; i < va.nextAttrib; i++ {
		va.gl.VertexAttribDivisor(i, divisor)
	}

	return firstAttrib
}

// pointAttribs expects both the vertex array and the source ARRAY_BUFFER to be bound
func pointAttribs(g glapi.GL, ptrs []attribPointer, enable bool) {

	for i := 0; i < len(ptrs); i++ {

		p := &ptrs[i]

		compCount := p.elem.CompCount()
		offset := p.elem.Offset
		if cols := int32(p.elem.Columns()); cols > 1 {
			compCount /= cols
			offset += int(p.column) * int(compCount*p.elem.CompSize())
		}

		if enable {
			g.EnableVertexAttribArray(p.index)
		}

		if p.elem.IsInteger() && !p.elem.Normalized {
			g.VertexAttribIPointer(p.index, compCount, p.elem.GLType(), p.stride, offset)
		} else {
			g.VertexAttribPointer(p.index, compCount, p.elem.GLType(), p.elem.Normalized, p.stride, offset)
		}
	}
}

func (va *VertexArray) SetAttribDivisor(index, divisor uint32) {
	va.Bind()
	va.gl.VertexAttribDivisor(index, divisor)
}

func (va *VertexArray) EnableAttrib(index uint32) {
	va.Bind()
	va.gl.EnableVertexAttribArray(index)
}

func (va *VertexArray) DisableAttrib(index uint32) {
	va.Bind()
	va.gl.DisableVertexAttribArray(index)
}

// UnbindAttribute disables the attribute at index and leaves no vertex array bound
func (va *VertexArray) UnbindAttribute(index uint32) {

	assert.T(va.Id != 0, "UnbindAttribute called on a deleted vertex array")

	va.Bind()
	va.gl.DisableVertexAttribArray(index)
	va.UnBind()
}

// UnbindNamedAttribute is UnbindAttribute for the location of the attribute called name in prog.
// It does nothing if prog has no such active attribute.
func (va *VertexArray) UnbindNamedAttribute(prog AttribLocator, name string) {

	loc := prog.AttribLoc(name)
	if loc < 0 {
		return
	}

	va.UnbindAttribute(uint32(loc))
}

// ClearAttributeBindings disables every attribute index the driver supports and forgets the added vertex buffers,
// so the next AddVertexBuffer starts again at index 0
func (va *VertexArray) ClearAttributeBindings() {

	assert.T(va.Id != 0, "ClearAttributeBindings called on a deleted vertex array")

	maxAttribs := uint32(va.gl.GetIntegerv(glapi.MAX_VERTEX_ATTRIBS))

	va.Bind()
	for i := uint32(0); i < maxAttribs; i++ {
		va.gl.DisableVertexAttribArray(i)
	}
	va.UnBind()

	va.Vbos = nil
	va.nextAttrib = 0
	va.h.attribGen++
}

// SetIndexBuffer makes ib the element array of this vertex array. If ib grows later it is attached again.
func (va *VertexArray) SetIndexBuffer(ib *IndexBuffer) {

	assert.T(va.Id != 0, "SetIndexBuffer called on a deleted vertex array")
	assert.T(ib != nil && ib.Id != 0, "SetIndexBuffer called with a nil or deleted index buffer")

	va.Bind()
	ib.Bind()

	if va.IndexBuffer == ib {
		return
	}

	va.IndexBuffer = ib

	h := va.h
	h.indexGen++
	gen := h.indexGen

	ib.OnRealloc(func(b *Buffer, oldId uint32) {

		// Stale if the vertex array moved on to another index buffer
		if h.id == 0 || h.indexGen != gen {
			return
		}

		h.rebind(b.Bind)
	})
}

// UnbindIndexBuffer detaches the index buffer, leaving the vertex array without an element array
func (va *VertexArray) UnbindIndexBuffer() {

	assert.T(va.Id != 0, "UnbindIndexBuffer called on a deleted vertex array")

	va.Bind()
	va.gl.BindBuffer(glapi.ELEMENT_ARRAY_BUFFER, 0)
	va.UnBind()

	va.IndexBuffer = nil
	va.h.indexGen++
}

// Delete releases the vertex array object only. The buffers it references are not deleted.
func (va *VertexArray) Delete() {

	if va.Id == 0 {
		return
	}

	va.gl.DeleteVertexArray(va.Id)
	va.Id = 0
	va.h.id = 0
	va.Vbos = nil
	va.IndexBuffer = nil
	runtime.SetFinalizer(va, nil)
}

func NewVertexArray() *VertexArray {

	vao := &VertexArray{
		gl: glapi.Current(),
	}

	vao.Id = vao.gl.GenVertexArray()
	if vao.Id == 0 {
		logging.ErrLog.Panicln("Failed to create OpenGL vertex array object")
	}

	vao.h = &vaoHandle{id: vao.Id, gl: vao.gl}

	runtime.SetFinalizer(vao, func(va *VertexArray) {
		va.h.id = 0
		glapi.QueueRelease(va.gl, glapi.ObjectKind_VertexArray, va.Id)
	})

	return vao
}
