package textures

import (
	"github.com/bloeys/glw/assert"
	"github.com/bloeys/glw/glapi"
)

type TexTarget int32

const (
	TexTarget_Unknown TexTarget = iota
	TexTarget_1D
	TexTarget_2D
	TexTarget_3D
	TexTarget_2DArray
	TexTarget_Rectangle
	TexTarget_CubeMap
	TexTarget_CubeMapArray
	TexTarget_2DMultisample
	TexTarget_Buffer
)

func (t TexTarget) ToGL() uint32 {

	switch t {
	case TexTarget_1D:
		return glapi.TEXTURE_1D
	case TexTarget_2D:
		return glapi.TEXTURE_2D
	case TexTarget_3D:
		return glapi.TEXTURE_3D
	case TexTarget_2DArray:
		return glapi.TEXTURE_2D_ARRAY
	case TexTarget_Rectangle:
		return glapi.TEXTURE_RECTANGLE
	case TexTarget_CubeMap:
		return glapi.TEXTURE_CUBE_MAP
	case TexTarget_CubeMapArray:
		return glapi.TEXTURE_CUBE_MAP_ARRAY
	case TexTarget_2DMultisample:
		return glapi.TEXTURE_2D_MULTISAMPLE
	case TexTarget_Buffer:
		return glapi.TEXTURE_BUFFER
	}

	assert.T(false, "Unknown texture target passed. TexTarget '%d'", t)
	return 0
}

// Is3D is true for targets whose images are specified with TexImage3D
func (t TexTarget) Is3D() bool {
	return t == TexTarget_3D || t == TexTarget_2DArray || t == TexTarget_CubeMapArray
}

type FilterMode int32

const (
	FilterMode_Unset FilterMode = iota
	FilterMode_Nearest
	FilterMode_Linear
	FilterMode_NearestMipmapNearest
	FilterMode_LinearMipmapNearest
	FilterMode_NearestMipmapLinear
	FilterMode_LinearMipmapLinear
)

func (f FilterMode) ToGL() int32 {

	switch f {
	case FilterMode_Nearest:
		return glapi.NEAREST
	case FilterMode_Linear:
		return glapi.LINEAR
	case FilterMode_NearestMipmapNearest:
		return glapi.NEAREST_MIPMAP_NEAREST
	case FilterMode_LinearMipmapNearest:
		return glapi.LINEAR_MIPMAP_NEAREST
	case FilterMode_NearestMipmapLinear:
		return glapi.NEAREST_MIPMAP_LINEAR
	case FilterMode_LinearMipmapLinear:
		return glapi.LINEAR_MIPMAP_LINEAR
	}

	assert.T(false, "Unknown filter mode passed. FilterMode '%d'", f)
	return 0
}

func (f FilterMode) UsesMipmaps() bool {
	return f >= FilterMode_NearestMipmapNearest
}

type WrapMode int32

const (
	WrapMode_Unset WrapMode = iota
	WrapMode_Repeat
	WrapMode_MirroredRepeat
	WrapMode_ClampToEdge
	WrapMode_ClampToBorder
)

func (w WrapMode) ToGL() int32 {

	switch w {
	case WrapMode_Repeat:
		return glapi.REPEAT
	case WrapMode_MirroredRepeat:
		return glapi.MIRRORED_REPEAT
	case WrapMode_ClampToEdge:
		return glapi.CLAMP_TO_EDGE
	case WrapMode_ClampToBorder:
		return glapi.CLAMP_TO_BORDER
	}

	assert.T(false, "Unknown wrap mode passed. WrapMode '%d'", w)
	return 0
}

// TextureParams holds sampling state. Unset fields are left at whatever the texture currently has.
type TextureParams struct {
	MinFilter FilterMode
	MagFilter FilterMode

	WrapS WrapMode
	WrapT WrapMode
	WrapR WrapMode

	// BaseLevel and MaxLevel are each applied only when above zero
	BaseLevel int32
	MaxLevel  int32

	// GenMipmaps generates the mip chain after an image upload done by NewTextureFromImage
	GenMipmaps bool
	// Srgb makes NewTextureFromImage store the image as SRGB8_ALPHA8 instead of RGBA8
	Srgb bool
	// NoFlip keeps image row 0 as the first row in memory. By default rows are flipped so row 0 is the bottom.
	NoFlip bool
}

// DefaultTextureParams is linear filtering with mipmaps and repeat wrapping
func DefaultTextureParams() TextureParams {
	return TextureParams{
		MinFilter:  FilterMode_LinearMipmapLinear,
		MagFilter:  FilterMode_Linear,
		WrapS:      WrapMode_Repeat,
		WrapT:      WrapMode_Repeat,
		GenMipmaps: true,
	}
}
