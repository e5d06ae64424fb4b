package buffers

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"runtime"
	"unsafe"

	"github.com/bloeys/glw/assert"
	"github.com/bloeys/glw/glapi"
	"github.com/bloeys/glw/logging"
)

var (
	ErrOutOfRange = errors.New("buffer range out of bounds")
	ErrMapFailed  = errors.New("failed to map buffer")
)

// ReallocFunc is called after a buffer grew and its Id changed. oldId is already deleted when this is called.
type ReallocFunc func(b *Buffer, oldId uint32)

// Buffer owns one OpenGL buffer object.
//
// Writes past the end of the buffer (SubData, CopySubData, Reserve) grow it: a new buffer object
// sized to exactly what the write needs is allocated, existing contents are copied into it on the GPU,
// and it replaces the old one, so Id changes. Growth never shrinks or truncates.
// Anything that captured the old Id (vertex arrays, buffer textures) can re-attach with OnRealloc.
type Buffer struct {
	Id     uint32
	Target BufTarget

	size   int
	usage  BufUsage
	mapped bool

	gl        glapi.GL
	onRealloc []ReallocFunc
}

func (b *Buffer) Size() int {
	return b.size
}

func (b *Buffer) Usage() BufUsage {
	return b.usage
}

func (b *Buffer) IsMapped() bool {
	return b.mapped
}

func (b *Buffer) Bind() {
	b.gl.BindBuffer(b.Target.ToGL(), b.Id)
}

func (b *Buffer) UnBind() {
	b.gl.BindBuffer(b.Target.ToGL(), 0)
}

// OnRealloc registers f to be called every time the buffer grows into a new buffer object
func (b *Buffer) OnRealloc(f ReallocFunc) {
	b.onRealloc = append(b.onRealloc, f)
}

// SetData replaces the buffer storage with exactly len(data) bytes
func (b *Buffer) SetData(data []byte, usage BufUsage) {

	assert.T(b.Id != 0, "SetData called on a deleted buffer")
	assert.T(!b.mapped, "SetData called on mapped buffer id=%d", b.Id)

	b.Bind()

	b.gl.BufferData(b.Target.ToGL(), len(data), data, usage.ToGL())

	b.size = len(data)
	b.usage = usage
}

// Allocate replaces the buffer storage with size uninitialized bytes
func (b *Buffer) Allocate(size int, usage BufUsage) {

	assert.T(b.Id != 0, "Allocate called on a deleted buffer")
	assert.T(size >= 0, "Allocate called with negative size=%d", size)
	assert.T(!b.mapped, "Allocate called on mapped buffer id=%d", b.Id)

	b.Bind()
	b.gl.BufferData(b.Target.ToGL(), size, nil, usage.ToGL())

	b.size = size
	b.usage = usage
}

// SubData writes data at offset, growing the buffer first if the write goes past the end
func (b *Buffer) SubData(offset int, data []byte) {

	assert.T(b.Id != 0, "SubData called on a deleted buffer")
	assert.T(offset >= 0, "SubData called with negative offset=%d", offset)

	if len(data) == 0 {
		return
	}

	b.Reserve(offset + len(data))

	b.Bind()
	b.gl.BufferSubData(b.Target.ToGL(), offset, data)
}

// GetSubData reads len(out) bytes starting at offset
func (b *Buffer) GetSubData(offset int, out []byte) error {

	assert.T(b.Id != 0, "GetSubData called on a deleted buffer")

	if offset < 0 || offset+len(out) > b.size {
		return fmt.Errorf("%w: reading %d bytes at offset %d from buffer id=%d of size %d", ErrOutOfRange, len(out), offset, b.Id, b.size)
	}

	if len(out) == 0 {
		return nil
	}

	b.Bind()
	b.gl.GetBufferSubData(b.Target.ToGL(), offset, out)
	return nil
}

// CopySubData copies size bytes from src at readOffset into this buffer at writeOffset using a GPU side copy.
// This buffer grows if the write goes past its end. src may be this buffer as long as the ranges don't overlap.
func (b *Buffer) CopySubData(src *Buffer, readOffset, writeOffset, size int) error {

	assert.T(b.Id != 0, "CopySubData called on a deleted buffer")
	assert.T(src != nil && src.Id != 0, "CopySubData called with a nil or deleted source buffer")
	assert.T(writeOffset >= 0, "CopySubData called with negative write offset=%d", writeOffset)

	if readOffset < 0 || size < 0 || readOffset+size > src.size {
		return fmt.Errorf("%w: reading %d bytes at offset %d from buffer id=%d of size %d", ErrOutOfRange, size, readOffset, src.Id, src.size)
	}

	if src == b && readOffset < writeOffset+size && writeOffset < readOffset+size {
		return fmt.Errorf("%w: overlapping copy within buffer id=%d (read=[%d,%d) write=[%d,%d))", ErrOutOfRange, b.Id, readOffset, readOffset+size, writeOffset, writeOffset+size)
	}

	if size == 0 {
		return nil
	}

	// Growing first means that if src == b we copy from the new buffer, which holds the same bytes
	b.Reserve(writeOffset + size)

	b.gl.BindBuffer(glapi.COPY_READ_BUFFER, src.Id)
	b.gl.BindBuffer(glapi.COPY_WRITE_BUFFER, b.Id)
	b.gl.CopyBufferSubData(glapi.COPY_READ_BUFFER, glapi.COPY_WRITE_BUFFER, readOffset, writeOffset, size)
	b.gl.BindBuffer(glapi.COPY_READ_BUFFER, 0)
	b.gl.BindBuffer(glapi.COPY_WRITE_BUFFER, 0)

	return nil
}

// Reserve grows the buffer to at least size bytes, keeping its contents. It never shrinks.
func (b *Buffer) Reserve(size int) {

	if size <= b.size {
		return
	}

	assert.T(!b.mapped, "buffer id=%d can't grow while mapped", b.Id)

	usage := b.usage
	if usage == BufUsage_Unknown {
		usage = BufUsage_Dynamic_Draw
	}

	oldId := b.Id
	newId := b.gl.GenBuffer()
	if newId == 0 {
		logging.ErrLog.Panicf("Failed to create OpenGL buffer while growing buffer id=%d from %d to %d bytes\n", oldId, b.size, size)
	}

	b.gl.BindBuffer(glapi.COPY_WRITE_BUFFER, newId)
	b.gl.BufferData(glapi.COPY_WRITE_BUFFER, size, nil, usage.ToGL())

	if b.size > 0 {
		b.gl.BindBuffer(glapi.COPY_READ_BUFFER, oldId)
		b.gl.CopyBufferSubData(glapi.COPY_READ_BUFFER, glapi.COPY_WRITE_BUFFER, 0, 0, b.size)
		b.gl.BindBuffer(glapi.COPY_READ_BUFFER, 0)
	}

	b.gl.BindBuffer(glapi.COPY_WRITE_BUFFER, 0)
	b.gl.DeleteBuffer(oldId)

	logging.DebugLog.Printf("Buffer grew from %d to %d bytes (id %d -> %d)\n", b.size, size, oldId, newId)

	b.Id = newId
	b.size = size
	b.usage = usage

	for i := 0; i < len(b.onRealloc); i++ {
		b.onRealloc[i](b, oldId)
	}
}

// BindBase binds the whole buffer to an indexed binding point of its target (e.g. a uniform block binding)
func (b *Buffer) BindBase(index uint32) {
	assert.T(b.Target.IsIndexed(), "BindBase called on buffer id=%d whose target=%d has no indexed binding points", b.Id, b.Target)
	b.gl.BindBufferBase(b.Target.ToGL(), index, b.Id)
}

// BindRange binds size bytes starting at offset to an indexed binding point of the buffer's target
func (b *Buffer) BindRange(index uint32, offset, size int) error {

	assert.T(b.Target.IsIndexed(), "BindRange called on buffer id=%d whose target=%d has no indexed binding points", b.Id, b.Target)

	if offset < 0 || size <= 0 || offset+size > b.size {
		return fmt.Errorf("%w: binding %d bytes at offset %d of buffer id=%d of size %d", ErrOutOfRange, size, offset, b.Id, b.size)
	}

	b.gl.BindBufferRange(b.Target.ToGL(), index, b.Id, offset, size)
	return nil
}

// MapRange maps length bytes at offset into client memory. The returned slice is only valid until Unmap.
func (b *Buffer) MapRange(offset, length int, access uint32) ([]byte, error) {

	assert.T(!b.mapped, "MapRange called on already mapped buffer id=%d", b.Id)

	if offset < 0 || length <= 0 || offset+length > b.size {
		return nil, fmt.Errorf("%w: mapping %d bytes at offset %d of buffer id=%d of size %d", ErrOutOfRange, length, offset, b.Id, b.size)
	}

	b.Bind()
	mem := b.gl.MapBufferRange(b.Target.ToGL(), offset, length, access)
	if mem == nil {

		if err := glapi.CheckErrors(b.gl, "MapBufferRange"); err != nil {
			return nil, fmt.Errorf("%w: id=%d: %w", ErrMapFailed, b.Id, err)
		}

		return nil, fmt.Errorf("%w: id=%d", ErrMapFailed, b.Id)
	}

	b.mapped = true
	return mem, nil
}

// Unmap returns false if the buffer contents became corrupt while mapped, in which case they must be uploaded again
func (b *Buffer) Unmap() bool {

	assert.T(b.mapped, "Unmap called on buffer id=%d that isn't mapped", b.Id)

	b.Bind()
	b.mapped = false
	return b.gl.UnmapBuffer(b.Target.ToGL())
}

func (b *Buffer) Delete() {

	if b.Id == 0 {
		return
	}

	b.gl.DeleteBuffer(b.Id)
	b.Id = 0
	b.size = 0
	b.mapped = false
	b.onRealloc = nil
	runtime.SetFinalizer(b, nil)
}

func NewBuffer(target BufTarget) *Buffer {

	b := &Buffer{
		Target: target,
		gl:     glapi.Current(),
	}

	b.Id = b.gl.GenBuffer()
	if b.Id == 0 {
		logging.ErrLog.Panicln("Failed to create OpenGL buffer")
	}

	runtime.SetFinalizer(b, func(b *Buffer) {
		glapi.QueueRelease(b.gl, glapi.ObjectKind_Buffer, b.Id)
	})

	return b
}

func NewBufferWithData(target BufTarget, data []byte, usage BufUsage) *Buffer {
	b := NewBuffer(target)
	b.SetData(data, usage)
	return b
}

// SliceBytes reinterprets a slice of plain values as bytes without copying
func SliceBytes[T uint8 | int8 | uint16 | int16 | uint32 | int32 | float32 | uint64 | int64 | float64](vals []T) []byte {

	if len(vals) == 0 {
		return nil
	}

	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&vals[0])), len(vals)*int(unsafe.Sizeof(zero)))
}

// Float32Bytes encodes vals as little-endian bytes into a new slice
func Float32Bytes(vals []float32) []byte {

	out := make([]byte, 0, len(vals)*4)
	for i := 0; i < len(vals); i++ {
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(vals[i]))
	}

	return out
}

// Uint32Bytes encodes vals as little-endian bytes into a new slice
func Uint32Bytes(vals []uint32) []byte {

	out := make([]byte, 0, len(vals)*4)
	for i := 0; i < len(vals); i++ {
		out = binary.LittleEndian.AppendUint32(out, vals[i])
	}

	return out
}
