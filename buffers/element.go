package buffers

import (
	"github.com/bloeys/glw/assert"
	"github.com/bloeys/glw/glapi"
)

// Element represents an element that makes up a buffer (e.g. Vec3 at an offset of 12 bytes)
type Element struct {
	Offset int
	ElementType

	// Normalized maps integer data to [0,1] or [-1,1] when read as floats in the shader.
	// Integer element types that are not normalized are passed to the shader as integers.
	Normalized bool
}

// ElementType is the type of an element thats makes up a buffer (e.g. Vec3)
type ElementType uint8

const (
	DataTypeUnknown ElementType = iota

	DataTypeUint32
	DataTypeInt32
	DataTypeFloat32

	DataTypeVec2
	DataTypeVec3
	DataTypeVec4

	DataTypeMat2
	DataTypeMat3
	DataTypeMat4

	DataTypeStruct
)

func (dt ElementType) GLType() uint32 {

	switch dt {
	case DataTypeUint32:
		return glapi.UNSIGNED_INT
	case DataTypeInt32:
		return glapi.INT
	case DataTypeFloat32, DataTypeVec2, DataTypeVec3, DataTypeVec4, DataTypeMat2, DataTypeMat3, DataTypeMat4:
		return glapi.FLOAT
	}

	assert.T(false, "ElementType.GLType got unsupported data type '%s'", dt)
	return 0
}

func (dt ElementType) IsInteger() bool {
	return dt == DataTypeUint32 || dt == DataTypeInt32
}

// CompSize returns the size in bytes for one component of the type (e.g. for Vec2 its 4)
func (dt ElementType) CompSize() int32 {

	switch dt {
	case DataTypeUint32, DataTypeInt32, DataTypeFloat32, DataTypeVec2, DataTypeVec3, DataTypeVec4, DataTypeMat2, DataTypeMat3, DataTypeMat4:
		return 4
	}

	assert.T(false, "ElementType.CompSize got unsupported data type '%s'", dt)
	return 0
}

// CompCount returns the number of components in the element (e.g. for Vec2 its 2)
func (dt ElementType) CompCount() int32 {

	switch dt {
	case DataTypeUint32, DataTypeInt32, DataTypeFloat32:
		return 1
	case DataTypeVec2:
		return 2
	case DataTypeVec3:
		return 3
	case DataTypeVec4:
		return 4
	case DataTypeMat2:
		return 2 * 2
	case DataTypeMat3:
		return 3 * 3
	case DataTypeMat4:
		return 4 * 4
	}

	assert.T(false, "ElementType.CompCount got unsupported data type '%s'", dt)
	return 0
}

// Size returns the total size in bytes (e.g. for vec3 its 3*4=12 bytes)
func (dt ElementType) Size() int32 {
	return dt.CompSize() * dt.CompCount()
}

// Columns returns how many columns a matrix has, and 1 for everything else
func (dt ElementType) Columns() uint16 {

	switch dt {
	case DataTypeMat2:
		return 2
	case DataTypeMat3:
		return 3
	case DataTypeMat4:
		return 4
	default:
		return 1
	}
}

// GlStd140AlignmentBoundary is the base alignment of the type inside a std140 uniform block
func (dt ElementType) GlStd140AlignmentBoundary() uint16 {

	switch dt {
	case DataTypeUint32, DataTypeInt32, DataTypeFloat32:
		return 4
	case DataTypeVec2:
		return 8
	case DataTypeVec3, DataTypeVec4, DataTypeMat2, DataTypeMat3, DataTypeMat4, DataTypeStruct:
		return 16
	}

	assert.T(false, "ElementType.GlStd140AlignmentBoundary got unknown data type '%d'", dt)
	return 0
}

func (dt ElementType) String() string {

	switch dt {
	case DataTypeUint32:
		return "uint32"
	case DataTypeFloat32:
		return "float32"
	case DataTypeInt32:
		return "int32"

	case DataTypeVec2:
		return "Vec2"
	case DataTypeVec3:
		return "Vec3"
	case DataTypeVec4:
		return "Vec4"

	case DataTypeMat2:
		return "Mat2"
	case DataTypeMat3:
		return "Mat3"
	case DataTypeMat4:
		return "Mat4"

	case DataTypeStruct:
		return "Struct"

	default:
		return "Unknown"
	}
}
