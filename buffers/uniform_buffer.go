package buffers

import (
	"encoding/binary"
	"math"
	"reflect"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/glw/assert"
	"github.com/bloeys/glw/logging"
)

type UniformBufferFieldInput struct {
	Id   uint16
	Type ElementType
	// Count should be set in case this field is an array of type `[Count]Type`.
	// Count=0 is valid and is equivalent to Count=1, which means the type is NOT an array, but a single field.
	Count uint16

	// Subfields is used when type is a struct, in which case it holds the fields of the struct.
	// Ids do not have to be unique across structs.
	Subfields []UniformBufferFieldInput
}

// UniformBufferField is a field placed according to the std140 rules
type UniformBufferField struct {
	Id   uint16
	Type ElementType

	// Offset is in bytes. Top level fields are relative to the start of the buffer,
	// subfields are relative to the start of the struct element holding them.
	Offset int
	// Stride is the distance in bytes between two array elements. For non-arrays its the size the field occupies.
	Stride int
	Count  uint16

	Subfields []UniformBufferField
}

func (f *UniformBufferField) IsArray() bool {
	return f.Count > 1
}

// UniformBuffer is a buffer of target UNIFORM_BUFFER whose contents are described by a std140 layout
type UniformBuffer struct {
	*Buffer
	Fields []UniformBufferField
}

// SetBindPoint binds the buffer to the uniform block binding point, like the one set with Program.SetUniformBlockBinding
func (ub *UniformBuffer) SetBindPoint(bindPointIndex uint32) {
	ub.BindBase(bindPointIndex)
}

func alignUp(v, boundary int) int {
	if rem := v % boundary; rem != 0 {
		return v + boundary - rem
	}
	return v
}

// Std140Layout places fields following the std140 rules and returns them along with the total (16 byte padded) size.
// Arrays of any type are aligned to 16 bytes per element. Matrices are laid out as arrays of vec4 columns.
func Std140Layout(inputs []UniformBufferFieldInput) (fields []UniformBufferField, size int) {

	fields = make([]UniformBufferField, 0, len(inputs))
	seenIds := make(map[uint16]ElementType, len(inputs))

	cursor := 0
	for i := 0; i < len(inputs); i++ {

		in := &inputs[i]

		existingType, ok := seenIds[in.Id]
		assert.T(!ok, "Uniform buffer field id is reused within the same uniform buffer. FieldId=%d was first used on a field with type=%s and then used on a different field with type=%s", in.Id, existingType, in.Type)
		seenIds[in.Id] = in.Type

		f := UniformBufferField{Id: in.Id, Type: in.Type, Count: in.Count}
		if f.Count == 0 {
			f.Count = 1
		}

		var elemSize int
		alignment := int(in.Type.GlStd140AlignmentBoundary())

		switch in.Type {
		case DataTypeStruct:
			var structSize int
			f.Subfields, structSize = Std140Layout(in.Subfields)
			elemSize = structSize
		case DataTypeMat2, DataTypeMat3, DataTypeMat4:
			elemSize = 16 * int(in.Type.Columns())
		default:
			elemSize = int(in.Type.Size())
		}

		if f.IsArray() {
			alignment = 16
			elemSize = alignUp(elemSize, 16)
		}

		f.Offset = alignUp(cursor, alignment)
		f.Stride = elemSize
		cursor = f.Offset + elemSize*int(f.Count)

		// Whatever follows a struct starts on a 16 byte boundary
		if in.Type == DataTypeStruct {
			cursor = alignUp(cursor, 16)
		}

		fields = append(fields, f)
	}

	return fields, alignUp(cursor, 16)
}

func (ub *UniformBuffer) getField(fieldId uint16, fieldType ElementType) *UniformBufferField {

	for i := 0; i < len(ub.Fields); i++ {

		f := &ub.Fields[i]
		if f.Id != fieldId {
			continue
		}

		assert.T(f.Type == fieldType, "Uniform buffer field id=%d has type=%s, but is being set as type=%s", fieldId, f.Type, fieldType)
		return f
	}

	logging.ErrLog.Panicf("couldn't find uniform buffer field of id=%d and type=%s\n", fieldId, fieldType)
	return nil
}

func (ub *UniformBuffer) SetInt32(fieldId uint16, val int32) {
	f := ub.getField(fieldId, DataTypeInt32)
	ub.SubData(f.Offset, binary.LittleEndian.AppendUint32(nil, uint32(val)))
}

func (ub *UniformBuffer) SetUint32(fieldId uint16, val uint32) {
	f := ub.getField(fieldId, DataTypeUint32)
	ub.SubData(f.Offset, binary.LittleEndian.AppendUint32(nil, val))
}

func (ub *UniformBuffer) SetFloat32(fieldId uint16, val float32) {
	f := ub.getField(fieldId, DataTypeFloat32)
	ub.SubData(f.Offset, binary.LittleEndian.AppendUint32(nil, math.Float32bits(val)))
}

func (ub *UniformBuffer) SetVec2(fieldId uint16, val *gglm.Vec2) {
	f := ub.getField(fieldId, DataTypeVec2)
	ub.SubData(f.Offset, Float32Bytes(val.Data[:]))
}

func (ub *UniformBuffer) SetVec3(fieldId uint16, val *gglm.Vec3) {
	f := ub.getField(fieldId, DataTypeVec3)
	ub.SubData(f.Offset, Float32Bytes(val.Data[:]))
}

func (ub *UniformBuffer) SetVec4(fieldId uint16, val *gglm.Vec4) {
	f := ub.getField(fieldId, DataTypeVec4)
	ub.SubData(f.Offset, Float32Bytes(val.Data[:]))
}

func (ub *UniformBuffer) SetMat2(fieldId uint16, val *gglm.Mat2) {
	f := ub.getField(fieldId, DataTypeMat2)
	w := std140Writer{buf: make([]byte, f.Stride)}
	w.putColumns(0, val.Data[0][:], val.Data[1][:])
	ub.SubData(f.Offset, w.buf)
}

func (ub *UniformBuffer) SetMat3(fieldId uint16, val *gglm.Mat3) {
	f := ub.getField(fieldId, DataTypeMat3)
	w := std140Writer{buf: make([]byte, f.Stride)}
	w.putColumns(0, val.Data[0][:], val.Data[1][:], val.Data[2][:])
	ub.SubData(f.Offset, w.buf)
}

func (ub *UniformBuffer) SetMat4(fieldId uint16, val *gglm.Mat4) {
	f := ub.getField(fieldId, DataTypeMat4)
	ub.SubData(f.Offset, Float32Bytes(val.Data[0][:]))
	ub.SubData(f.Offset+16, Float32Bytes(val.Data[1][:]))
	ub.SubData(f.Offset+32, Float32Bytes(val.Data[2][:]))
	ub.SubData(f.Offset+48, Float32Bytes(val.Data[3][:]))
}

// SetStruct uploads the whole buffer from a struct whose fields, in order, match the buffer fields.
// Array fields take a slice or array of exactly Count elements, struct fields take a (nested) struct.
func (ub *UniformBuffer) SetStruct(inputStruct any) {

	if inputStruct == nil {
		logging.ErrLog.Panicf("UniformBuffer.SetStruct called with a value that is nil")
	}

	w := std140Writer{buf: make([]byte, ub.Size())}
	w.putStruct(0, ub.Fields, reflect.ValueOf(inputStruct))
	ub.SubData(0, w.buf)
}

// Std140Bytes encodes inputStruct following fields, without uploading it anywhere
func Std140Bytes(fields []UniformBufferField, size int, inputStruct any) []byte {
	w := std140Writer{buf: make([]byte, size)}
	w.putStruct(0, fields, reflect.ValueOf(inputStruct))
	return w.buf
}

type std140Writer struct {
	buf []byte
}

func (w *std140Writer) putUint32(offset int, v uint32) {
	assert.T(offset+4 <= len(w.buf), "std140 write of 4 bytes at offset=%d overflows buffer of length=%d", offset, len(w.buf))
	binary.LittleEndian.PutUint32(w.buf[offset:], v)
}

func (w *std140Writer) putFloats(offset int, vals []float32) {
	for i := 0; i < len(vals); i++ {
		w.putUint32(offset+i*4, math.Float32bits(vals[i]))
	}
}

func (w *std140Writer) putColumns(offset int, cols ...[]float32) {
	for i := 0; i < len(cols); i++ {
		w.putFloats(offset+i*16, cols[i])
	}
}

func (w *std140Writer) putStruct(base int, fields []UniformBufferField, structVal reflect.Value) {

	if structVal.Kind() == reflect.Pointer {
		structVal = structVal.Elem()
	}

	if structVal.Kind() != reflect.Struct {
		logging.ErrLog.Panicf("UniformBuffer.SetStruct expected a struct but got a value of kind %s\n", structVal.Kind())
	}

	if structVal.NumField() != len(fields) {
		logging.ErrLog.Panicf("UniformBuffer.SetStruct got struct %s with %d fields, but the uniform buffer has %d fields at this level\n", structVal.Type(), structVal.NumField(), len(fields))
	}

	for i := 0; i < len(fields); i++ {

		f := &fields[i]
		v := structVal.Field(i)
		if v.Kind() == reflect.Pointer {
			v = v.Elem()
		}

		if !f.IsArray() {
			w.putValue(base+f.Offset, f, v)
			continue
		}

		if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
			logging.ErrLog.Panicf("ubo field of id=%d is an array of %d elements but got input of kind %s\n", f.Id, f.Count, v.Kind())
		}

		assert.T(v.Len() == int(f.Count), "ubo field of id=%d is an array/slice field of length=%d but got input of length=%d", f.Id, f.Count, v.Len())

		for j := 0; j < v.Len(); j++ {
			w.putValue(base+f.Offset+j*f.Stride, f, v.Index(j))
		}
	}
}

func (w *std140Writer) putValue(offset int, f *UniformBufferField, v reflect.Value) {

	typeMatches := false
	switch f.Type {

	case DataTypeUint32:
		if typeMatches = v.Kind() == reflect.Uint32; typeMatches {
			w.putUint32(offset, uint32(v.Uint()))
		}

	case DataTypeInt32:
		if typeMatches = v.Kind() == reflect.Int32; typeMatches {
			w.putUint32(offset, uint32(int32(v.Int())))
		}

	case DataTypeFloat32:
		if typeMatches = v.Kind() == reflect.Float32; typeMatches {
			w.putUint32(offset, math.Float32bits(float32(v.Float())))
		}

	case DataTypeVec2:
		var vec gglm.Vec2
		if vec, typeMatches = v.Interface().(gglm.Vec2); typeMatches {
			w.putFloats(offset, vec.Data[:])
		}

	case DataTypeVec3:
		var vec gglm.Vec3
		if vec, typeMatches = v.Interface().(gglm.Vec3); typeMatches {
			w.putFloats(offset, vec.Data[:])
		}

	case DataTypeVec4:
		var vec gglm.Vec4
		if vec, typeMatches = v.Interface().(gglm.Vec4); typeMatches {
			w.putFloats(offset, vec.Data[:])
		}

	case DataTypeMat2:
		var m gglm.Mat2
		if m, typeMatches = v.Interface().(gglm.Mat2); typeMatches {
			w.putColumns(offset, m.Data[0][:], m.Data[1][:])
		}

	case DataTypeMat3:
		var m gglm.Mat3
		if m, typeMatches = v.Interface().(gglm.Mat3); typeMatches {
			w.putColumns(offset, m.Data[0][:], m.Data[1][:], m.Data[2][:])
		}

	case DataTypeMat4:
		var m gglm.Mat4
		if m, typeMatches = v.Interface().(gglm.Mat4); typeMatches {
			w.putColumns(offset, m.Data[0][:], m.Data[1][:], m.Data[2][:], m.Data[3][:])
		}

	case DataTypeStruct:
		if typeMatches = v.Kind() == reflect.Struct; typeMatches {
			w.putStruct(offset, f.Subfields, v)
		}

	default:
		assert.T(false, "Unknown uniform buffer data type passed. DataType '%d'", f.Type)
	}

	if !typeMatches {
		logging.ErrLog.Panicf("Struct field ordering and types must match uniform buffer fields, but field id=%d of type %s got a value of type %s\n", f.Id, f.Type, v.Type())
	}
}

func NewUniformBuffer(fields []UniformBufferFieldInput) *UniformBuffer {

	ub := &UniformBuffer{
		Buffer: NewBuffer(BufTarget_Uniform),
	}

	var size int
	ub.Fields, size = Std140Layout(fields)
	ub.Allocate(size, BufUsage_Dynamic_Draw)
	ub.UnBind()

	return ub
}
