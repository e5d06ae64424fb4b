package textures

import (
	"fmt"
	"image"
	"runtime"

	"github.com/bloeys/glw/assert"
	"github.com/bloeys/glw/glapi"
	"github.com/bloeys/glw/logging"
	"github.com/mandykoh/prism"
)

type Texture struct {
	Id     uint32
	Target TexTarget

	width          int32
	height         int32
	depth          int32
	internalFormat int32
	samples        int32

	gl glapi.GL
}

func (t *Texture) Width() int32 {
	return t.width
}

func (t *Texture) Height() int32 {
	return t.height
}

func (t *Texture) Depth() int32 {
	return t.depth
}

func (t *Texture) InternalFormat() int32 {
	return t.internalFormat
}

func (t *Texture) Samples() int32 {
	return t.samples
}

// Bind makes unit the active texture unit and binds the texture to it
func (t *Texture) Bind(unit uint32) {
	t.gl.ActiveTexture(glapi.TEXTURE0 + unit)
	t.gl.BindTexture(t.Target.ToGL(), t.Id)
}

// UnBind unbinds the texture target of the currently active unit
func (t *Texture) UnBind() {
	t.gl.BindTexture(t.Target.ToGL(), 0)
}

// bind binds on whatever unit is active, for editing
func (t *Texture) bind() {
	assert.T(t.Id != 0, "using deleted texture")
	t.gl.BindTexture(t.Target.ToGL(), t.Id)
}

func (t *Texture) SetImage1D(level, internalFormat, width int32, format, xtype uint32, data []byte) {

	assert.T(t.Target == TexTarget_1D, "SetImage1D called on texture id=%d with target=%d", t.Id, t.Target)

	t.bind()
	t.gl.TexImage1D(t.Target.ToGL(), level, internalFormat, width, format, xtype, data)

	if level == 0 {
		t.width, t.height, t.depth = width, 1, 1
		t.internalFormat = internalFormat
	}
}

func (t *Texture) SetSubImage1D(level, xOffset, width int32, format, xtype uint32, data []byte) {
	assert.T(t.Target == TexTarget_1D, "SetSubImage1D called on texture id=%d with target=%d", t.Id, t.Target)
	t.bind()
	t.gl.TexSubImage1D(t.Target.ToGL(), level, xOffset, width, format, xtype, data)
}

// SetImage2D specifies an image for a level. Passing nil data allocates storage without uploading.
func (t *Texture) SetImage2D(level, internalFormat, width, height int32, format, xtype uint32, data []byte) {

	assert.T(!t.Target.Is3D() && t.Target != TexTarget_CubeMap && t.Target != TexTarget_1D, "SetImage2D called on texture id=%d with target=%d", t.Id, t.Target)

	t.bind()
	t.gl.TexImage2D(t.Target.ToGL(), level, internalFormat, width, height, format, xtype, data)

	if level == 0 {
		t.width, t.height, t.depth = width, height, 1
		t.internalFormat = internalFormat
	}
}

// SetCubeMapFace specifies the image of one face of a cube map. Faces are ordered +X, -X, +Y, -Y, +Z, -Z.
func (t *Texture) SetCubeMapFace(face uint32, level, internalFormat, width, height int32, format, xtype uint32, data []byte) {

	assert.T(t.Target == TexTarget_CubeMap, "SetCubeMapFace called on texture id=%d that isn't a cube map", t.Id)
	assert.T(face < 6, "cube map face must be in [0,6), got %d", face)

	t.bind()
	t.gl.TexImage2D(glapi.TEXTURE_CUBE_MAP_POSITIVE_X+face, level, internalFormat, width, height, format, xtype, data)

	if level == 0 {
		t.width, t.height, t.depth = width, height, 1
		t.internalFormat = internalFormat
	}
}

func (t *Texture) SetSubImage2D(level, xOffset, yOffset, width, height int32, format, xtype uint32, data []byte) {
	t.bind()
	t.gl.TexSubImage2D(t.Target.ToGL(), level, xOffset, yOffset, width, height, format, xtype, data)
}

func (t *Texture) SetImage3D(level, internalFormat, width, height, depth int32, format, xtype uint32, data []byte) {

	assert.T(t.Target.Is3D(), "SetImage3D called on texture id=%d with target=%d", t.Id, t.Target)

	t.bind()
	t.gl.TexImage3D(t.Target.ToGL(), level, internalFormat, width, height, depth, format, xtype, data)

	if level == 0 {
		t.width, t.height, t.depth = width, height, depth
		t.internalFormat = internalFormat
	}
}

func (t *Texture) SetSubImage3D(level, xOffset, yOffset, zOffset, width, height, depth int32, format, xtype uint32, data []byte) {
	t.bind()
	t.gl.TexSubImage3D(t.Target.ToGL(), level, xOffset, yOffset, zOffset, width, height, depth, format, xtype, data)
}

func (t *Texture) SetImage2DMultisample(samples int32, internalFormat uint32, width, height int32, fixedSampleLocations bool) {

	assert.T(t.Target == TexTarget_2DMultisample, "SetImage2DMultisample called on texture id=%d with target=%d", t.Id, t.Target)

	t.bind()
	t.gl.TexImage2DMultisample(t.Target.ToGL(), samples, internalFormat, width, height, fixedSampleLocations)

	t.width, t.height, t.depth = width, height, 1
	t.internalFormat = int32(internalFormat)
	t.samples = samples
}

// GetImage reads back a level into out, which must be big enough for the requested format and type
func (t *Texture) GetImage(level int32, format, xtype uint32, out []byte) error {

	t.bind()
	t.gl.GetTexImage(t.Target.ToGL(), level, format, xtype, out)

	if err := glapi.CheckErrors(t.gl, "GetTexImage"); err != nil {
		return fmt.Errorf("failed to read level %d of texture id=%d: %w", level, t.Id, err)
	}

	return nil
}

func (t *Texture) SetParams(p TextureParams) {

	t.bind()
	target := t.Target.ToGL()

	if p.MinFilter != FilterMode_Unset {
		t.gl.TexParameteri(target, glapi.TEXTURE_MIN_FILTER, p.MinFilter.ToGL())
	}

	if p.MagFilter != FilterMode_Unset {
		assert.T(!p.MagFilter.UsesMipmaps(), "magnification filter can't use mipmaps, got %d", p.MagFilter)
		t.gl.TexParameteri(target, glapi.TEXTURE_MAG_FILTER, p.MagFilter.ToGL())
	}

	if p.WrapS != WrapMode_Unset {
		t.gl.TexParameteri(target, glapi.TEXTURE_WRAP_S, p.WrapS.ToGL())
	}

	if p.WrapT != WrapMode_Unset {
		t.gl.TexParameteri(target, glapi.TEXTURE_WRAP_T, p.WrapT.ToGL())
	}

	if p.WrapR != WrapMode_Unset {
		t.gl.TexParameteri(target, glapi.TEXTURE_WRAP_R, p.WrapR.ToGL())
	}

	if p.BaseLevel > 0 {
		t.gl.TexParameteri(target, glapi.TEXTURE_BASE_LEVEL, p.BaseLevel)
	}

	if p.MaxLevel > 0 {
		t.gl.TexParameteri(target, glapi.TEXTURE_MAX_LEVEL, p.MaxLevel)
	}
}

func (t *Texture) GenerateMipmaps() {
	t.bind()
	t.gl.GenerateMipmap(t.Target.ToGL())
}

func (t *Texture) Delete() {

	if t.Id == 0 {
		return
	}

	t.gl.DeleteTexture(t.Id)
	t.Id = 0
	runtime.SetFinalizer(t, nil)
}

func NewTexture(target TexTarget) *Texture {

	t := &Texture{
		Target: target,
		gl:     glapi.Current(),
	}

	t.Id = t.gl.GenTexture()
	if t.Id == 0 {
		logging.ErrLog.Panicln("Failed to create OpenGL texture")
	}

	runtime.SetFinalizer(t, func(t *Texture) {
		glapi.QueueRelease(t.gl, glapi.ObjectKind_Texture, t.Id)
	})

	return t
}

// NewTextureFromImage uploads img as a 2D RGBA texture. Any image type is accepted and converted to non-premultiplied RGBA first.
func NewTextureFromImage(img image.Image, params TextureParams) (*Texture, error) {

	if img == nil {
		return nil, fmt.Errorf("NewTextureFromImage called with a nil image")
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("NewTextureFromImage called with an empty image of bounds %v", bounds)
	}

	nrgba := prism.ConvertImageToNRGBA(img, runtime.NumCPU())
	pixels := ImagePixels(nrgba, !params.NoFlip)

	internalFormat := int32(glapi.RGBA8)
	if params.Srgb {
		internalFormat = glapi.SRGB8_ALPHA8
	}

	t := NewTexture(TexTarget_2D)
	t.SetImage2D(0, internalFormat, int32(bounds.Dx()), int32(bounds.Dy()), glapi.RGBA, glapi.UNSIGNED_BYTE, pixels)
	t.SetParams(params)

	if params.GenMipmaps {
		t.GenerateMipmaps()
	}

	if err := glapi.CheckErrors(t.gl, "NewTextureFromImage"); err != nil {
		t.Delete()
		return nil, fmt.Errorf("failed to upload %dx%d image: %w", bounds.Dx(), bounds.Dy(), err)
	}

	return t, nil
}

// ImagePixels returns the tightly packed pixels of img. With flip the last row comes first,
// which is the order OpenGL expects for a texture whose row 0 is the bottom.
func ImagePixels(img *image.NRGBA, flip bool) []byte {

	b := img.Bounds()
	rowLen := b.Dx() * 4
	out := make([]byte, rowLen*b.Dy())

	for y := 0; y < b.Dy(); y++ {

		srcStart := img.PixOffset(b.Min.X, b.Min.Y+y)
		dstRow := y
		if flip {
			dstRow = b.Dy() - 1 - y
		}

		copy(out[dstRow*rowLen:(dstRow+1)*rowLen], img.Pix[srcStart:srcStart+rowLen])
	}

	return out
}
