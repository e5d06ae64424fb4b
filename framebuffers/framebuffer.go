package framebuffers

import (
	"fmt"
	"runtime"

	"github.com/bloeys/glw/assert"
	"github.com/bloeys/glw/glapi"
	"github.com/bloeys/glw/logging"
	"github.com/bloeys/glw/textures"
)

type AttachmentType int32

const (
	AttachmentType_Unknown AttachmentType = iota
	AttachmentType_Texture
	AttachmentType_Renderbuffer
)

func (f AttachmentType) IsValid() bool {

	switch f {
	case AttachmentType_Texture:
		fallthrough
	case AttachmentType_Renderbuffer:
		return true

	default:
		return false
	}
}

type AttachmentFormat int32

const (
	AttachmentFormat_Unknown AttachmentFormat = iota
	AttachmentFormat_R32Int
	AttachmentFormat_RGBA8
	AttachmentFormat_SRGBA
	AttachmentFormat_RGBA16F
	AttachmentFormat_Depth24Stencil8
	AttachmentFormat_Depth32F
)

func (f AttachmentFormat) IsColorFormat() bool {
	return f == AttachmentFormat_R32Int ||
		f == AttachmentFormat_RGBA8 ||
		f == AttachmentFormat_SRGBA ||
		f == AttachmentFormat_RGBA16F
}

func (f AttachmentFormat) IsDepthFormat() bool {
	return f == AttachmentFormat_Depth24Stencil8 || f == AttachmentFormat_Depth32F
}

func (f AttachmentFormat) GlInternalFormat() int32 {

	switch f {
	case AttachmentFormat_R32Int:
		return glapi.R32I
	case AttachmentFormat_RGBA8:
		return glapi.RGBA8
	case AttachmentFormat_SRGBA:
		return glapi.SRGB8_ALPHA8
	case AttachmentFormat_RGBA16F:
		return glapi.RGBA16F
	case AttachmentFormat_Depth24Stencil8:
		return glapi.DEPTH24_STENCIL8
	case AttachmentFormat_Depth32F:
		return glapi.DEPTH_COMPONENT32F
	}

	assert.T(false, "unknown framebuffer attachment data format. Format=%d", f)
	return 0
}

func (f AttachmentFormat) GlFormat() uint32 {

	switch f {
	case AttachmentFormat_R32Int:
		return glapi.RED_INTEGER

	case AttachmentFormat_RGBA8:
		fallthrough
	case AttachmentFormat_SRGBA:
		fallthrough
	case AttachmentFormat_RGBA16F:
		return glapi.RGBA

	case AttachmentFormat_Depth24Stencil8:
		return glapi.DEPTH_STENCIL
	case AttachmentFormat_Depth32F:
		return glapi.DEPTH_COMPONENT
	}

	assert.T(false, "unknown framebuffer attachment data format. Format=%d", f)
	return 0
}

// GlType is the pixel type used when allocating texture storage for the format
func (f AttachmentFormat) GlType() uint32 {

	switch f {
	case AttachmentFormat_R32Int:
		return glapi.INT
	case AttachmentFormat_RGBA16F, AttachmentFormat_Depth32F:
		return glapi.FLOAT
	case AttachmentFormat_Depth24Stencil8:
		return glapi.UNSIGNED_INT_24_8
	default:
		return glapi.UNSIGNED_BYTE
	}
}

// AttachmentPoint is where a depth format attaches
func (f AttachmentFormat) AttachmentPoint() uint32 {

	if f == AttachmentFormat_Depth32F {
		return glapi.DEPTH_ATTACHMENT
	}

	return glapi.DEPTH_STENCIL_ATTACHMENT
}

type Attachment struct {
	// Point is the attachment point, e.g. COLOR_ATTACHMENT0+i or DEPTH_STENCIL_ATTACHMENT
	Point  uint32
	Type   AttachmentType
	Format AttachmentFormat

	Texture      *textures.Texture
	Renderbuffer *Renderbuffer

	// Owned attachments are deleted with the framebuffer
	Owned bool
}

func (a *Attachment) IsColor() bool {
	return isColorPoint(a.Point)
}

func (a *Attachment) IsDepth() bool {
	return a.Point == glapi.DEPTH_ATTACHMENT || a.Point == glapi.DEPTH_STENCIL_ATTACHMENT
}

func (a *Attachment) deleteOwned() {

	if !a.Owned {
		return
	}

	if a.Texture != nil {
		a.Texture.Delete()
	}

	if a.Renderbuffer != nil {
		a.Renderbuffer.Delete()
	}
}

func isColorPoint(point uint32) bool {
	// GL reserves 32 color attachment points even though drivers support fewer
	return point >= glapi.COLOR_ATTACHMENT0 && point < glapi.COLOR_ATTACHMENT0+32
}

// Framebuffer is an off-screen render target. All attachments created through it share its size.
type Framebuffer struct {
	Id          uint32
	Attachments []Attachment
	Width       uint32
	Height      uint32

	gl glapi.GL
}

func (fbo *Framebuffer) Bind() {
	assert.T(fbo.Id != 0, "using deleted framebuffer")
	fbo.gl.BindFramebuffer(glapi.FRAMEBUFFER, fbo.Id)
}

func (fbo *Framebuffer) BindWithViewport() {
	fbo.Bind()
	fbo.gl.Viewport(0, 0, int32(fbo.Width), int32(fbo.Height))
}

func (fbo *Framebuffer) UnBind() {
	fbo.gl.BindFramebuffer(glapi.FRAMEBUFFER, 0)
}

func (fbo *Framebuffer) UnBindWithViewport(width, height uint32) {
	fbo.UnBind()
	fbo.gl.Viewport(0, 0, int32(width), int32(height))
}

// Status returns the CheckFramebufferStatus result. Note that this function binds and then unbinds the fbo
func (fbo *Framebuffer) Status() uint32 {
	fbo.Bind()
	status := fbo.gl.CheckFramebufferStatus(glapi.FRAMEBUFFER)
	fbo.UnBind()
	return status
}

// IsComplete returns true if OpenGL reports that the fbo is complete/usable.
// Note that this function binds and then unbinds the fbo
func (fbo *Framebuffer) IsComplete() bool {
	return fbo.Status() == glapi.FRAMEBUFFER_COMPLETE
}

// CheckComplete returns an error wrapping ErrIncomplete that names the reason if the fbo isn't complete
func (fbo *Framebuffer) CheckComplete() error {

	status := fbo.Status()
	if status == glapi.FRAMEBUFFER_COMPLETE {
		return nil
	}

	return fmt.Errorf("%w: id=%d: %s", ErrIncomplete, fbo.Id, StatusString(status))
}

func (fbo *Framebuffer) ColorAttachmentsCount() uint32 {

	count := uint32(0)
	for i := 0; i < len(fbo.Attachments); i++ {
		if fbo.Attachments[i].IsColor() {
			count++
		}
	}

	return count
}

func (fbo *Framebuffer) HasColorAttachment() bool {
	return fbo.ColorAttachmentsCount() > 0
}

func (fbo *Framebuffer) HasDepthAttachment() bool {

	for i := 0; i < len(fbo.Attachments); i++ {
		if fbo.Attachments[i].IsDepth() {
			return true
		}
	}

	return false
}

// Attachment returns the attachment at point, if any
func (fbo *Framebuffer) Attachment(point uint32) (Attachment, bool) {

	for i := 0; i < len(fbo.Attachments); i++ {
		if fbo.Attachments[i].Point == point {
			return fbo.Attachments[i], true
		}
	}

	return Attachment{}, false
}

// setAttachment records a, replacing and releasing whatever was at the same point
func (fbo *Framebuffer) setAttachment(a Attachment) {

	for i := 0; i < len(fbo.Attachments); i++ {

		old := &fbo.Attachments[i]
		if old.Point != a.Point {
			continue
		}

		// Re-attaching the same object keeps it alive
		sameObj := (a.Texture != nil && a.Texture == old.Texture) || (a.Renderbuffer != nil && a.Renderbuffer == old.Renderbuffer)
		if !sameObj {
			old.deleteOwned()
		}

		fbo.Attachments[i] = a
		return
	}

	fbo.Attachments = append(fbo.Attachments, a)
}

// AttachTexture attaches a level of a 2D texture. The texture stays owned by the caller.
func (fbo *Framebuffer) AttachTexture(point uint32, tex *textures.Texture, level int32) {

	assert.T(tex != nil && tex.Id != 0, "AttachTexture called with a nil or deleted texture")
	assert.T(!tex.Target.Is3D() && tex.Target != textures.TexTarget_CubeMap, "AttachTexture needs a 2D texture, got target=%d. Use AttachTextureLayer", tex.Target)

	fbo.Bind()
	fbo.gl.FramebufferTexture2D(glapi.FRAMEBUFFER, point, tex.Target.ToGL(), tex.Id, level)
	fbo.UnBind()

	fbo.setAttachment(Attachment{
		Point:   point,
		Type:    AttachmentType_Texture,
		Texture: tex,
	})
}

// AttachTextureLayer attaches one layer of a 3D, array or cube map texture. The texture stays owned by the caller.
func (fbo *Framebuffer) AttachTextureLayer(point uint32, tex *textures.Texture, level, layer int32) {

	assert.T(tex != nil && tex.Id != 0, "AttachTextureLayer called with a nil or deleted texture")
	assert.T(layer >= 0, "AttachTextureLayer called with negative layer=%d", layer)

	fbo.Bind()
	fbo.gl.FramebufferTextureLayer(glapi.FRAMEBUFFER, point, tex.Id, level, layer)
	fbo.UnBind()

	fbo.setAttachment(Attachment{
		Point:   point,
		Type:    AttachmentType_Texture,
		Texture: tex,
	})
}

// AttachRenderbuffer attaches rb and takes ownership of it: it's deleted with the framebuffer
// or when another attachment replaces it.
func (fbo *Framebuffer) AttachRenderbuffer(point uint32, rb *Renderbuffer) {

	assert.T(rb != nil && rb.Id != 0, "AttachRenderbuffer called with a nil or deleted renderbuffer")

	fbo.Bind()
	fbo.gl.FramebufferRenderbuffer(glapi.FRAMEBUFFER, point, glapi.RENDERBUFFER, rb.Id)
	fbo.UnBind()

	fbo.setAttachment(Attachment{
		Point:        point,
		Type:         AttachmentType_Renderbuffer,
		Renderbuffer: rb,
		Owned:        true,
	})
}

// NewColorAttachment creates a texture or renderbuffer of the fbo's size and attaches it
// at the lowest free color attachment point. The fbo owns it.
func (fbo *Framebuffer) NewColorAttachment(
	attachType AttachmentType,
	attachFormat AttachmentFormat,
) {

	if !attachType.IsValid() {
		logging.ErrLog.Panicf("failed creating color attachment for framebuffer due to unknown attachment type. Type=%d\n", attachType)
	}

	if !attachFormat.IsColorFormat() {
		logging.ErrLog.Panicf("failed creating color attachment for framebuffer due to attachment data format not being a valid color type. Data format=%d\n", attachFormat)
	}

	point, ok := fbo.freeColorPoint()
	if !ok {
		logging.ErrLog.Panicf("failed creating color attachment for framebuffer due to all %d color attachment points being used\n", fbo.ColorAttachmentsCount())
	}

	filter := textures.FilterMode_Linear
	if attachFormat == AttachmentFormat_R32Int {
		// Integer textures can't be linearly filtered
		filter = textures.FilterMode_Nearest
	}

	fbo.newOwnedAttachment(point, attachType, attachFormat, filter)
}

// freeColorPoint returns the lowest color attachment point with nothing attached that the driver supports
func (fbo *Framebuffer) freeColorPoint() (uint32, bool) {

	maxColorAttachments := uint32(fbo.gl.GetIntegerv(glapi.MAX_COLOR_ATTACHMENTS))
	for point := uint32(glapi.COLOR_ATTACHMENT0); point < glapi.COLOR_ATTACHMENT0+maxColorAttachments; point++ {
		if _, used := fbo.Attachment(point); !used {
			return point, true
		}
	}

	return 0, false
}

// Detach removes whatever is attached at point, deleting it if the fbo owns it.
// Returns false if nothing was attached there.
func (fbo *Framebuffer) Detach(point uint32) bool {

	for i := 0; i < len(fbo.Attachments); i++ {

		a := &fbo.Attachments[i]
		if a.Point != point {
			continue
		}

		fbo.Bind()
		if a.Type == AttachmentType_Renderbuffer {
			fbo.gl.FramebufferRenderbuffer(glapi.FRAMEBUFFER, point, glapi.RENDERBUFFER, 0)
		} else {
			fbo.gl.FramebufferTexture2D(glapi.FRAMEBUFFER, point, glapi.TEXTURE_2D, 0, 0)
		}
		fbo.UnBind()

		a.deleteOwned()
		fbo.Attachments = append(fbo.Attachments[:i], fbo.Attachments[i+1:]...)
		return true
	}

	return false
}

// NewDepthStencilAttachment creates a depth (and stencil for Depth24Stencil8) attachment of the fbo's size. The fbo owns it.
func (fbo *Framebuffer) NewDepthStencilAttachment(
	attachType AttachmentType,
	attachFormat AttachmentFormat,
) {

	if fbo.HasDepthAttachment() {
		logging.ErrLog.Panicf("failed creating depth-stencil attachment for framebuffer because a depth-stencil attachment already exists\n")
	}

	if !attachType.IsValid() {
		logging.ErrLog.Panicf("failed creating depth-stencil attachment for framebuffer due to unknown attachment type. Type=%d\n", attachType)
	}

	if !attachFormat.IsDepthFormat() {
		logging.ErrLog.Panicf("failed creating depth-stencil attachment for framebuffer due to attachment data format not being a valid depth-stencil type. Data format=%d\n", attachFormat)
	}

	fbo.newOwnedAttachment(attachFormat.AttachmentPoint(), attachType, attachFormat, textures.FilterMode_Nearest)
}

func (fbo *Framebuffer) newOwnedAttachment(point uint32, attachType AttachmentType, attachFormat AttachmentFormat, filter textures.FilterMode) {

	a := Attachment{
		Point:  point,
		Type:   attachType,
		Format: attachFormat,
		Owned:  true,
	}

	if attachType == AttachmentType_Texture {

		tex := textures.NewTexture(textures.TexTarget_2D)
		tex.SetImage2D(0, attachFormat.GlInternalFormat(), int32(fbo.Width), int32(fbo.Height), attachFormat.GlFormat(), attachFormat.GlType(), nil)
		tex.SetParams(textures.TextureParams{
			MinFilter: filter,
			MagFilter: filter,
			WrapS:     textures.WrapMode_ClampToEdge,
			WrapT:     textures.WrapMode_ClampToEdge,
		})
		tex.UnBind()

		fbo.Bind()
		fbo.gl.FramebufferTexture2D(glapi.FRAMEBUFFER, point, glapi.TEXTURE_2D, tex.Id, 0)
		fbo.UnBind()

		a.Texture = tex

	} else if attachType == AttachmentType_Renderbuffer {

		rb := NewRenderbuffer()
		rb.Storage(uint32(attachFormat.GlInternalFormat()), int32(fbo.Width), int32(fbo.Height))

		fbo.Bind()
		fbo.gl.FramebufferRenderbuffer(glapi.FRAMEBUFFER, point, glapi.RENDERBUFFER, rb.Id)
		fbo.UnBind()

		a.Renderbuffer = rb
	}

	fbo.setAttachment(a)
}

// SetDrawBuffers selects the attachment points fragment outputs are written to, in output order
func (fbo *Framebuffer) SetDrawBuffers(points ...uint32) {

	for i := 0; i < len(points); i++ {
		assert.T(points[i] == glapi.NONE || isColorPoint(points[i]), "draw buffer %d must be NONE or a color attachment, got 0x%X", i, points[i])
	}

	fbo.Bind()
	fbo.gl.DrawBuffers(points)
	fbo.UnBind()
}

func (fbo *Framebuffer) SetReadBuffer(point uint32) {

	assert.T(point == glapi.NONE || isColorPoint(point), "read buffer must be NONE or a color attachment, got 0x%X", point)

	fbo.Bind()
	fbo.gl.ReadBuffer(point)
	fbo.UnBind()
}

// BlitTo copies this fbo's contents into dst, scaling to dst's size. A nil dst is the default framebuffer,
// in which case the size of this fbo is used for it.
func (fbo *Framebuffer) BlitTo(dst *Framebuffer, mask, filter uint32) {

	assert.T(fbo.Id != 0, "BlitTo called on deleted framebuffer")
	assert.T(filter == glapi.NEAREST || mask&(glapi.DEPTH_BUFFER_BIT|glapi.STENCIL_BUFFER_BIT) == 0, "depth and stencil blits must use NEAREST filtering")

	dstId := uint32(0)
	dstW, dstH := int32(fbo.Width), int32(fbo.Height)
	if dst != nil {
		assert.T(dst.Id != 0, "BlitTo called with deleted destination framebuffer")
		dstId = dst.Id
		dstW, dstH = int32(dst.Width), int32(dst.Height)
	}

	fbo.gl.BindFramebuffer(glapi.READ_FRAMEBUFFER, fbo.Id)
	fbo.gl.BindFramebuffer(glapi.DRAW_FRAMEBUFFER, dstId)
	fbo.gl.BlitFramebuffer(0, 0, int32(fbo.Width), int32(fbo.Height), 0, 0, dstW, dstH, mask, filter)
	fbo.gl.BindFramebuffer(glapi.FRAMEBUFFER, 0)
}

// Delete deletes the fbo and every attachment it owns
func (fbo *Framebuffer) Delete() {

	if fbo.Id == 0 {
		return
	}

	for i := 0; i < len(fbo.Attachments); i++ {
		fbo.Attachments[i].deleteOwned()
	}
	fbo.Attachments = nil

	fbo.gl.DeleteFramebuffer(fbo.Id)
	fbo.Id = 0
	runtime.SetFinalizer(fbo, nil)
}

func NewFramebuffer(width, height uint32) *Framebuffer {

	// It is allowed to have attachments of different sizes in one FBO,
	// but that complicates things (e.g. which size to use for gl.viewport), so all attachments created here share size
	fbo := &Framebuffer{
		Width:  width,
		Height: height,
		gl:     glapi.Current(),
	}

	fbo.Id = fbo.gl.GenFramebuffer()
	if fbo.Id == 0 {
		logging.ErrLog.Panicf("failed to generate framebuffer. GlError=%d\n", fbo.gl.GetError())
	}

	runtime.SetFinalizer(fbo, func(fbo *Framebuffer) {
		glapi.QueueRelease(fbo.gl, glapi.ObjectKind_Framebuffer, fbo.Id)
	})

	return fbo
}
