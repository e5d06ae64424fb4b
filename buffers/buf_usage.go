package buffers

import (
	"github.com/bloeys/glw/assert"
	"github.com/bloeys/glw/glapi"
)

type BufUsage int

// Full docs for buffer usage can be found here: https://registry.khronos.org/OpenGL-Refpages/gl4/html/glBufferData.xhtml
const (
	BufUsage_Unknown BufUsage = iota

	//Buffer is set only once and used many times
	BufUsage_Static_Draw
	//Buffer is changed a lot and used many times
	BufUsage_Dynamic_Draw
	//Buffer is set only once and used by the GPU at most a few times
	BufUsage_Stream_Draw

	BufUsage_Static_Read
	BufUsage_Dynamic_Read
	BufUsage_Stream_Read

	BufUsage_Static_Copy
	BufUsage_Dynamic_Copy
	BufUsage_Stream_Copy
)

func (b BufUsage) ToGL() uint32 {

	switch b {
	case BufUsage_Static_Draw:
		return glapi.STATIC_DRAW
	case BufUsage_Dynamic_Draw:
		return glapi.DYNAMIC_DRAW
	case BufUsage_Stream_Draw:
		return glapi.STREAM_DRAW

	case BufUsage_Static_Read:
		return glapi.STATIC_READ
	case BufUsage_Dynamic_Read:
		return glapi.DYNAMIC_READ
	case BufUsage_Stream_Read:
		return glapi.STREAM_READ

	case BufUsage_Static_Copy:
		return glapi.STATIC_COPY
	case BufUsage_Dynamic_Copy:
		return glapi.DYNAMIC_COPY
	case BufUsage_Stream_Copy:
		return glapi.STREAM_COPY
	}

	assert.T(false, "Unexpected BufUsage value '%v'", b)
	return 0
}

// BufTarget is the binding point a buffer is bound to by Bind
type BufTarget int

const (
	BufTarget_Unknown BufTarget = iota
	BufTarget_Array
	BufTarget_ElementArray
	BufTarget_Uniform
	BufTarget_Texture
	BufTarget_CopyRead
	BufTarget_CopyWrite
	BufTarget_PixelPack
	BufTarget_PixelUnpack
	BufTarget_TransformFeedback
	BufTarget_DrawIndirect
)

func (t BufTarget) ToGL() uint32 {

	switch t {
	case BufTarget_Array:
		return glapi.ARRAY_BUFFER
	case BufTarget_ElementArray:
		return glapi.ELEMENT_ARRAY_BUFFER
	case BufTarget_Uniform:
		return glapi.UNIFORM_BUFFER
	case BufTarget_Texture:
		return glapi.TEXTURE_BUFFER
	case BufTarget_CopyRead:
		return glapi.COPY_READ_BUFFER
	case BufTarget_CopyWrite:
		return glapi.COPY_WRITE_BUFFER
	case BufTarget_PixelPack:
		return glapi.PIXEL_PACK_BUFFER
	case BufTarget_PixelUnpack:
		return glapi.PIXEL_UNPACK_BUFFER
	case BufTarget_TransformFeedback:
		return glapi.TRANSFORM_FEEDBACK_BUFFER
	case BufTarget_DrawIndirect:
		return glapi.DRAW_INDIRECT_BUFFER
	}

	assert.T(false, "Unexpected BufTarget value '%v'", t)
	return 0
}

// IsIndexed returns true for targets that have indexed binding points usable with BindBase/BindRange
func (t BufTarget) IsIndexed() bool {
	return t == BufTarget_Uniform || t == BufTarget_TransformFeedback
}
