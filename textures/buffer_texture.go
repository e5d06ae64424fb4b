package textures

import (
	"github.com/bloeys/glw/buffers"
	"github.com/bloeys/glw/glapi"
)

// BufferTexture exposes a buffer to shaders as a samplerBuffer/isamplerBuffer/usamplerBuffer.
//
// Writes that grow the buffer replace its Id, after which the texture is attached to the new buffer.
type BufferTexture struct {
	Buf *buffers.Buffer
	Tex *Texture

	InternalFormat uint32
}

func (bt *BufferTexture) Bind(unit uint32) {
	bt.Tex.Bind(unit)
}

func (bt *BufferTexture) UnBind() {
	bt.Tex.UnBind()
}

func (bt *BufferTexture) Size() int {
	return bt.Buf.Size()
}

// SetData respecifies the buffer storage. The Id stays the same so the texture needs no re-attaching.
func (bt *BufferTexture) SetData(data []byte, usage buffers.BufUsage) {
	bt.Buf.SetData(data, usage)
}

func (bt *BufferTexture) SubData(offset int, data []byte) {
	bt.Buf.SubData(offset, data)
}

func (bt *BufferTexture) CopySubData(src *buffers.Buffer, readOffset, writeOffset, size int) error {
	return bt.Buf.CopySubData(src, readOffset, writeOffset, size)
}

func (bt *BufferTexture) GetSubData(offset int, out []byte) error {
	return bt.Buf.GetSubData(offset, out)
}

func attachBuffer(g glapi.GL, texId, internalFormat, bufId uint32) {
	g.BindTexture(glapi.TEXTURE_BUFFER, texId)
	g.TexBuffer(glapi.TEXTURE_BUFFER, internalFormat, bufId)
	g.BindTexture(glapi.TEXTURE_BUFFER, 0)
}

// Delete releases both the texture and the buffer
func (bt *BufferTexture) Delete() {
	bt.Tex.Delete()
	bt.Buf.Delete()
}

// NewBufferTexture creates a buffer of target TEXTURE_BUFFER holding data and a texture viewing it with internalFormat (e.g. R32F, RGBA32F)
func NewBufferTexture(internalFormat uint32, data []byte, usage buffers.BufUsage) *BufferTexture {

	bt := &BufferTexture{
		Buf:            buffers.NewBufferWithData(buffers.BufTarget_Texture, data, usage),
		Tex:            NewTexture(TexTarget_Buffer),
		InternalFormat: internalFormat,
	}

	g, texId := bt.Tex.gl, bt.Tex.Id
	attachBuffer(g, texId, internalFormat, bt.Buf.Id)

	// Capture ids, not the wrappers
	bt.Buf.OnRealloc(func(b *buffers.Buffer, oldId uint32) {
		attachBuffer(g, texId, internalFormat, b.Id)
	})

	return bt
}
