package framebuffers_test

import (
	"testing"

	"github.com/bloeys/glw/framebuffers"
	"github.com/bloeys/glw/glapi"
	"github.com/bloeys/glw/internal/glfake"
	"github.com/bloeys/glw/textures"
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

func TestRenderbufferStorage(t *testing.T) {

	g := newFake(t)

	rb := framebuffers.NewRenderbuffer()
	rb.Storage(glapi.DEPTH24_STENCIL8, 64, 32)

	fake := g.Renderbuffers[rb.Id]
	assert.Equal(t, uint32(glapi.DEPTH24_STENCIL8), fake.InternalFormat)
	assert.Equal(t, int32(64), fake.Width)
	assert.Equal(t, int32(32), fake.Height)
	assert.Zero(t, fake.Samples)
	assert.Zero(t, g.BoundRbo)

	rb.StorageMultisample(4, glapi.RGBA8, 16, 16)
	assert.Equal(t, int32(4), g.Renderbuffers[rb.Id].Samples)
	assert.Equal(t, int32(4), rb.Samples())
	assert.Equal(t, uint32(glapi.RGBA8), rb.InternalFormat())

	id := rb.Id
	rb.Delete()
	rb.Delete()
	assert.Nil(t, g.Renderbuffers[id])
	assert.Zero(t, g.ErrorCount())
}

func TestFramebufferBinding(t *testing.T) {

	g := newFake(t)

	fbo := framebuffers.NewFramebuffer(320, 240)

	fbo.BindWithViewport()
	assert.Equal(t, fbo.Id, g.BoundFramebuffer(glapi.FRAMEBUFFER))
	assert.Equal(t, [4]int32{0, 0, 320, 240}, g.Viewports[len(g.Viewports)-1])

	fbo.UnBindWithViewport(800, 600)
	assert.Zero(t, g.BoundFramebuffer(glapi.FRAMEBUFFER))
	assert.Equal(t, [4]int32{0, 0, 800, 600}, g.Viewports[len(g.Viewports)-1])
}

func TestFramebufferCompleteness(t *testing.T) {

	g := newFake(t)

	fbo := framebuffers.NewFramebuffer(64, 64)
	assert.False(t, fbo.IsComplete())
	assert.Equal(t, uint32(glapi.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT), fbo.Status())

	err := fbo.CheckComplete()
	require.ErrorIs(t, err, framebuffers.ErrIncomplete)
	assert.Contains(t, err.Error(), "missing attachment")

	fbo.NewColorAttachment(framebuffers.AttachmentType_Texture, framebuffers.AttachmentFormat_RGBA8)
	assert.True(t, fbo.IsComplete())
	require.NoError(t, fbo.CheckComplete())

	g.FramebufferStatus = glapi.FRAMEBUFFER_UNSUPPORTED
	assert.ErrorContains(t, fbo.CheckComplete(), "unsupported")
	assert.Zero(t, g.BoundFramebuffer(glapi.FRAMEBUFFER), "status checks unbind")
}

func TestFramebufferOwnedAttachments(t *testing.T) {

	g := newFake(t)

	fbo := framebuffers.NewFramebuffer(128, 64)
	fbo.NewColorAttachment(framebuffers.AttachmentType_Texture, framebuffers.AttachmentFormat_SRGBA)
	fbo.NewColorAttachment(framebuffers.AttachmentType_Texture, framebuffers.AttachmentFormat_R32Int)
	fbo.NewDepthStencilAttachment(framebuffers.AttachmentType_Renderbuffer, framebuffers.AttachmentFormat_Depth24Stencil8)

	require.Len(t, fbo.Attachments, 3)
	assert.Equal(t, uint32(2), fbo.ColorAttachmentsCount())
	assert.True(t, fbo.HasColorAttachment())
	assert.True(t, fbo.HasDepthAttachment())

	fake := g.Framebuffers[fbo.Id]
	color0 := fbo.Attachments[0].Texture
	color1 := fbo.Attachments[1].Texture
	depth := fbo.Attachments[2].Renderbuffer
	assert.Equal(t, color0.Id, fake.Attachments[glapi.COLOR_ATTACHMENT0])
	assert.Equal(t, color1.Id, fake.Attachments[glapi.COLOR_ATTACHMENT0+1])
	assert.Equal(t, depth.Id, fake.Attachments[glapi.DEPTH_STENCIL_ATTACHMENT])

	img := g.Textures[color0.Id].Images[0]
	assert.Equal(t, int32(glapi.SRGB8_ALPHA8), img.InternalFormat)
	assert.Equal(t, int32(128), img.Width)
	assert.Equal(t, int32(64), img.Height)
	assert.Equal(t, int32(glapi.NEAREST), g.Textures[color1.Id].Params[glapi.TEXTURE_MIN_FILTER], "integer formats use nearest filtering")
	assert.Equal(t, uint32(glapi.DEPTH24_STENCIL8), g.Renderbuffers[depth.Id].InternalFormat)

	assert.Panics(t, func() {
		fbo.NewDepthStencilAttachment(framebuffers.AttachmentType_Texture, framebuffers.AttachmentFormat_Depth32F)
	})
	assert.Panics(t, func() {
		fbo.NewColorAttachment(framebuffers.AttachmentType_Texture, framebuffers.AttachmentFormat_Depth24Stencil8)
	})
	assert.Panics(t, func() {
		fbo.NewColorAttachment(framebuffers.AttachmentType_Unknown, framebuffers.AttachmentFormat_RGBA8)
	})

	fbo.Delete()
	fbo.Delete()
	assert.Empty(t, g.Framebuffers)
	assert.Empty(t, g.Textures)
	assert.Empty(t, g.Renderbuffers)
	assert.Zero(t, g.ErrorCount())
}

func TestFramebufferColorAttachmentLimit(t *testing.T) {

	g := newFake(t)
	g.Integers[glapi.MAX_COLOR_ATTACHMENTS] = 2

	fbo := framebuffers.NewFramebuffer(8, 8)
	fbo.NewColorAttachment(framebuffers.AttachmentType_Renderbuffer, framebuffers.AttachmentFormat_RGBA8)
	fbo.NewColorAttachment(framebuffers.AttachmentType_Renderbuffer, framebuffers.AttachmentFormat_RGBA16F)

	assert.Panics(t, func() {
		fbo.NewColorAttachment(framebuffers.AttachmentType_Renderbuffer, framebuffers.AttachmentFormat_RGBA8)
	})
}

func TestNewColorAttachmentUsesLowestFreePoint(t *testing.T) {

	g := newFake(t)
	g.Integers[glapi.MAX_COLOR_ATTACHMENTS] = 3

	tex := textures.NewTexture(textures.TexTarget_2D)
	tex.SetImage2D(0, glapi.RGBA8, 16, 16, glapi.RGBA, glapi.UNSIGNED_BYTE, nil)

	fbo := framebuffers.NewFramebuffer(16, 16)
	fbo.AttachTexture(glapi.COLOR_ATTACHMENT0+1, tex, 0)

	fbo.NewColorAttachment(framebuffers.AttachmentType_Texture, framebuffers.AttachmentFormat_RGBA8)

	a, ok := fbo.Attachment(glapi.COLOR_ATTACHMENT0 + 1)
	require.True(t, ok)
	assert.Same(t, tex, a.Texture, "the caller's texture stays attached")

	a, ok = fbo.Attachment(glapi.COLOR_ATTACHMENT0)
	require.True(t, ok)
	assert.True(t, a.Owned)

	fbo.NewColorAttachment(framebuffers.AttachmentType_Renderbuffer, framebuffers.AttachmentFormat_RGBA8)
	a, ok = fbo.Attachment(glapi.COLOR_ATTACHMENT0 + 2)
	require.True(t, ok)
	assert.Equal(t, framebuffers.AttachmentType_Renderbuffer, a.Type)
	assert.Equal(t, uint32(3), fbo.ColorAttachmentsCount())

	assert.Panics(t, func() {
		fbo.NewColorAttachment(framebuffers.AttachmentType_Texture, framebuffers.AttachmentFormat_RGBA8)
	})

	fake := g.Framebuffers[fbo.Id]
	assert.Equal(t, tex.Id, fake.Attachments[glapi.COLOR_ATTACHMENT0+1])
	assert.NotNil(t, g.Textures[tex.Id])
	assert.Zero(t, g.ErrorCount())
}

func TestFramebufferDetach(t *testing.T) {

	g := newFake(t)

	tex := textures.NewTexture(textures.TexTarget_2D)
	tex.SetImage2D(0, glapi.RGBA8, 16, 16, glapi.RGBA, glapi.UNSIGNED_BYTE, nil)

	fbo := framebuffers.NewFramebuffer(16, 16)
	fbo.AttachTexture(glapi.COLOR_ATTACHMENT0, tex, 0)
	fbo.NewColorAttachment(framebuffers.AttachmentType_Texture, framebuffers.AttachmentFormat_RGBA8)
	fbo.NewDepthStencilAttachment(framebuffers.AttachmentType_Renderbuffer, framebuffers.AttachmentFormat_Depth24Stencil8)

	ownedTex := fbo.Attachments[1].Texture
	ownedTexId := ownedTex.Id
	depthId := fbo.Attachments[2].Renderbuffer.Id
	fake := g.Framebuffers[fbo.Id]

	// Caller owned textures are only unattached
	assert.True(t, fbo.Detach(glapi.COLOR_ATTACHMENT0))
	assert.NotContains(t, fake.Attachments, uint32(glapi.COLOR_ATTACHMENT0))
	assert.NotNil(t, g.Textures[tex.Id])
	_, ok := fbo.Attachment(glapi.COLOR_ATTACHMENT0)
	assert.False(t, ok)

	assert.True(t, fbo.Detach(glapi.COLOR_ATTACHMENT0+1))
	assert.Nil(t, g.Textures[ownedTexId])
	assert.Zero(t, ownedTex.Id)

	assert.True(t, fbo.Detach(glapi.DEPTH_STENCIL_ATTACHMENT))
	assert.Nil(t, g.Renderbuffers[depthId])
	assert.False(t, fbo.HasDepthAttachment())

	assert.False(t, fbo.Detach(glapi.DEPTH_STENCIL_ATTACHMENT))
	assert.Empty(t, fbo.Attachments)
	assert.Empty(t, fake.Attachments)
	assert.False(t, fbo.IsComplete())

	// Freed points are reused
	fbo.NewColorAttachment(framebuffers.AttachmentType_Renderbuffer, framebuffers.AttachmentFormat_RGBA8)
	_, ok = fbo.Attachment(glapi.COLOR_ATTACHMENT0)
	assert.True(t, ok)
	assert.Zero(t, g.ErrorCount())
}

func TestFramebufferExternalAttachments(t *testing.T) {

	g := newFake(t)

	tex := textures.NewTexture(textures.TexTarget_2D)
	tex.SetImage2D(0, glapi.RGBA8, 32, 32, glapi.RGBA, glapi.UNSIGNED_BYTE, nil)

	layered := textures.NewTexture(textures.TexTarget_2DArray)
	layered.SetImage3D(0, glapi.RGBA8, 32, 32, 4, glapi.RGBA, glapi.UNSIGNED_BYTE, nil)

	rb := framebuffers.NewRenderbuffer()
	rb.Storage(glapi.DEPTH_COMPONENT24, 32, 32)

	fbo := framebuffers.NewFramebuffer(32, 32)
	fbo.AttachTexture(glapi.COLOR_ATTACHMENT0, tex, 0)
	fbo.AttachTextureLayer(glapi.COLOR_ATTACHMENT0+1, layered, 0, 2)
	fbo.AttachRenderbuffer(glapi.DEPTH_ATTACHMENT, rb)

	a, ok := fbo.Attachment(glapi.COLOR_ATTACHMENT0)
	require.True(t, ok)
	assert.False(t, a.Owned)
	assert.Same(t, tex, a.Texture)

	a, ok = fbo.Attachment(glapi.DEPTH_ATTACHMENT)
	require.True(t, ok)
	assert.True(t, a.Owned, "renderbuffers are owned once attached")

	fake := g.Framebuffers[fbo.Id]
	assert.Equal(t, layered.Id, fake.Attachments[glapi.COLOR_ATTACHMENT0+1])
	assert.Equal(t, rb.Id, fake.Attachments[glapi.DEPTH_ATTACHMENT])

	// Replacing an owned attachment releases it
	rbId := rb.Id
	rb2 := framebuffers.NewRenderbuffer()
	rb2.Storage(glapi.DEPTH_COMPONENT24, 32, 32)
	fbo.AttachRenderbuffer(glapi.DEPTH_ATTACHMENT, rb2)
	assert.Nil(t, g.Renderbuffers[rbId])
	assert.Len(t, fbo.Attachments, 3)

	fbo.Delete()
	assert.NotNil(t, g.Textures[tex.Id], "textures attached by the caller stay alive")
	assert.NotNil(t, g.Textures[layered.Id])
	assert.Nil(t, g.Renderbuffers[rb2.Id])
	assert.Zero(t, g.ErrorCount())
}

func TestFramebufferDrawReadBuffers(t *testing.T) {

	g := newFake(t)

	fbo := framebuffers.NewFramebuffer(16, 16)
	fbo.NewColorAttachment(framebuffers.AttachmentType_Texture, framebuffers.AttachmentFormat_RGBA8)
	fbo.NewColorAttachment(framebuffers.AttachmentType_Texture, framebuffers.AttachmentFormat_RGBA8)

	fbo.SetDrawBuffers(glapi.COLOR_ATTACHMENT0, glapi.NONE, glapi.COLOR_ATTACHMENT0+1)
	fbo.SetReadBuffer(glapi.COLOR_ATTACHMENT0 + 1)

	fake := g.Framebuffers[fbo.Id]
	assert.Equal(t, []uint32{glapi.COLOR_ATTACHMENT0, glapi.NONE, glapi.COLOR_ATTACHMENT0 + 1}, fake.DrawBuffers)
	assert.Equal(t, uint32(glapi.COLOR_ATTACHMENT0+1), fake.ReadBuffer)

	assert.Panics(t, func() { fbo.SetDrawBuffers(glapi.DEPTH_ATTACHMENT) })
}

func TestFramebufferBlit(t *testing.T) {

	g := newFake(t)

	src := framebuffers.NewFramebuffer(256, 128)
	dst := framebuffers.NewFramebuffer(64, 32)

	src.BlitTo(dst, glapi.COLOR_BUFFER_BIT, glapi.LINEAR)
	src.BlitTo(nil, glapi.COLOR_BUFFER_BIT|glapi.DEPTH_BUFFER_BIT, glapi.NEAREST)

	require.Len(t, g.Blits, 2)
	assert.Equal(t, glfake.BlitCall{
		ReadFbo: src.Id,
		DrawFbo: dst.Id,
		Src:     [4]int32{0, 0, 256, 128},
		Dst:     [4]int32{0, 0, 64, 32},
		Mask:    glapi.COLOR_BUFFER_BIT,
		Filter:  glapi.LINEAR,
	}, g.Blits[0])
	assert.Zero(t, g.Blits[1].DrawFbo)
	assert.Equal(t, [4]int32{0, 0, 256, 128}, g.Blits[1].Dst)
	assert.Zero(t, g.BoundFramebuffer(glapi.READ_FRAMEBUFFER))

	assert.Panics(t, func() { src.BlitTo(dst, glapi.DEPTH_BUFFER_BIT, glapi.LINEAR) })
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "complete", framebuffers.StatusString(glapi.FRAMEBUFFER_COMPLETE))
	assert.Equal(t, "incomplete attachment", framebuffers.StatusString(glapi.FRAMEBUFFER_INCOMPLETE_ATTACHMENT))
	assert.Equal(t, "unknown status 0x1234", framebuffers.StatusString(0x1234))
}
