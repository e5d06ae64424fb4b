// Package gogl implements glapi.GL on top of github.com/go-gl/gl.
package gogl

import (
	"strings"
	"unsafe"

	"github.com/bloeys/glw/glapi"
	"github.com/go-gl/gl/v4.1-core/gl"
)

var _ glapi.GL = &Driver{}

type Driver struct{}

// Init loads the OpenGL function pointers. A context must be current on the calling thread.
func Init() (*Driver, error) {

	if err := gl.Init(); err != nil {
		return nil, err
	}

	return &Driver{}, nil
}

func ptr(data []byte) unsafe.Pointer {

	if len(data) == 0 {
		return nil
	}

	return gl.Ptr(&data[0])
}

// cstr returns a NUL terminated copy of s that stays alive for the duration of the call using it
func cstr(s string) *uint8 {
	return gl.Str(s + "\x00")
}

func (d *Driver) GenBuffer() (id uint32) {
	gl.GenBuffers(1, &id)
	return id
}

func (d *Driver) DeleteBuffer(id uint32) {
	gl.DeleteBuffers(1, &id)
}

func (d *Driver) BindBuffer(target, id uint32) {
	gl.BindBuffer(target, id)
}

func (d *Driver) BufferData(target uint32, size int, data []byte, usage uint32) {
	gl.BufferData(target, size, ptr(data), usage)
}

func (d *Driver) BufferSubData(target uint32, offset int, data []byte) {

	if len(data) == 0 {
		return
	}

	gl.BufferSubData(target, offset, len(data), ptr(data))
}

func (d *Driver) GetBufferSubData(target uint32, offset int, out []byte) {

	if len(out) == 0 {
		return
	}

	gl.GetBufferSubData(target, offset, len(out), ptr(out))
}

func (d *Driver) CopyBufferSubData(readTarget, writeTarget uint32, readOffset, writeOffset, size int) {
	gl.CopyBufferSubData(readTarget, writeTarget, readOffset, writeOffset, size)
}

func (d *Driver) BindBufferBase(target, index, id uint32) {
	gl.BindBufferBase(target, index, id)
}

func (d *Driver) BindBufferRange(target, index, id uint32, offset, size int) {
	gl.BindBufferRange(target, index, id, offset, size)
}

func (d *Driver) MapBufferRange(target uint32, offset, length int, access uint32) []byte {

	p := gl.MapBufferRange(target, offset, length, access)
	if p == nil {
		return nil
	}

	return unsafe.Slice((*byte)(p), length)
}

func (d *Driver) UnmapBuffer(target uint32) bool {
	return gl.UnmapBuffer(target)
}

func (d *Driver) GenVertexArray() (id uint32) {
	gl.GenVertexArrays(1, &id)
	return id
}

func (d *Driver) DeleteVertexArray(id uint32) {
	gl.DeleteVertexArrays(1, &id)
}

func (d *Driver) BindVertexArray(id uint32) {
	gl.BindVertexArray(id)
}

func (d *Driver) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (d *Driver) DisableVertexAttribArray(index uint32) {
	gl.DisableVertexAttribArray(index)
}

func (d *Driver) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointerWithOffset(index, size, xtype, normalized, stride, uintptr(offset))
}

func (d *Driver) VertexAttribIPointer(index uint32, size int32, xtype uint32, stride int32, offset int) {
	gl.VertexAttribIPointer(index, size, xtype, stride, gl.PtrOffset(offset))
}

func (d *Driver) VertexAttribDivisor(index, divisor uint32) {
	gl.VertexAttribDivisor(index, divisor)
}

func (d *Driver) GenTexture() (id uint32) {
	gl.GenTextures(1, &id)
	return id
}

func (d *Driver) DeleteTexture(id uint32) {
	gl.DeleteTextures(1, &id)
}

func (d *Driver) ActiveTexture(unit uint32) {
	gl.ActiveTexture(unit)
}

func (d *Driver) BindTexture(target, id uint32) {
	gl.BindTexture(target, id)
}

func (d *Driver) TexImage1D(target uint32, level, internalFormat, width int32, format, xtype uint32, data []byte) {
	gl.TexImage1D(target, level, internalFormat, width, 0, format, xtype, ptr(data))
}

func (d *Driver) TexSubImage1D(target uint32, level, xOffset, width int32, format, xtype uint32, data []byte) {
	gl.TexSubImage1D(target, level, xOffset, width, format, xtype, ptr(data))
}

func (d *Driver) TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, data []byte) {
	gl.TexImage2D(target, level, internalFormat, width, height, 0, format, xtype, ptr(data))
}

func (d *Driver) TexSubImage2D(target uint32, level, xOffset, yOffset, width, height int32, format, xtype uint32, data []byte) {
	gl.TexSubImage2D(target, level, xOffset, yOffset, width, height, format, xtype, ptr(data))
}

func (d *Driver) TexImage3D(target uint32, level, internalFormat, width, height, depth int32, format, xtype uint32, data []byte) {
	gl.TexImage3D(target, level, internalFormat, width, height, depth, 0, format, xtype, ptr(data))
}

func (d *Driver) TexSubImage3D(target uint32, level, xOffset, yOffset, zOffset, width, height, depth int32, format, xtype uint32, data []byte) {
	gl.TexSubImage3D(target, level, xOffset, yOffset, zOffset, width, height, depth, format, xtype, ptr(data))
}

func (d *Driver) TexImage2DMultisample(target uint32, samples int32, internalFormat uint32, width, height int32, fixedSampleLocations bool) {
	gl.TexImage2DMultisample(target, samples, internalFormat, width, height, fixedSampleLocations)
}

func (d *Driver) TexParameteri(target, pname uint32, param int32) {
	gl.TexParameteri(target, pname, param)
}

func (d *Driver) GenerateMipmap(target uint32) {
	gl.GenerateMipmap(target)
}

func (d *Driver) TexBuffer(target, internalFormat, bufferId uint32) {
	gl.TexBuffer(target, internalFormat, bufferId)
}

func (d *Driver) GetTexImage(target uint32, level int32, format, xtype uint32, out []byte) {
	gl.GetTexImage(target, level, format, xtype, ptr(out))
}

func (d *Driver) CreateShader(xtype uint32) uint32 {
	return gl.CreateShader(xtype)
}

func (d *Driver) DeleteShader(id uint32) {
	gl.DeleteShader(id)
}

func (d *Driver) ShaderSource(id uint32, src string) {
	csrc, free := gl.Strs(src + "\x00")
	defer free()
	gl.ShaderSource(id, 1, csrc, nil)
}

func (d *Driver) CompileShader(id uint32) {
	gl.CompileShader(id)
}

func (d *Driver) GetShaderi(id, pname uint32) (v int32) {
	gl.GetShaderiv(id, pname, &v)
	return v
}

func (d *Driver) GetShaderInfoLog(id uint32) string {

	var logLength int32
	gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}

	log := gl.Str(strings.Repeat("\x00", int(logLength)))
	gl.GetShaderInfoLog(id, logLength, nil, log)
	return gl.GoStr(log)
}

func (d *Driver) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (d *Driver) DeleteProgram(id uint32) {
	gl.DeleteProgram(id)
}

func (d *Driver) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (d *Driver) DetachShader(program, shader uint32) {
	gl.DetachShader(program, shader)
}

func (d *Driver) LinkProgram(id uint32) {
	gl.LinkProgram(id)
}

func (d *Driver) ValidateProgram(id uint32) {
	gl.ValidateProgram(id)
}

func (d *Driver) GetProgrami(id, pname uint32) (v int32) {
	gl.GetProgramiv(id, pname, &v)
	return v
}

func (d *Driver) GetProgramInfoLog(id uint32) string {

	var logLength int32
	gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}

	log := gl.Str(strings.Repeat("\x00", int(logLength)))
	gl.GetProgramInfoLog(id, logLength, nil, log)
	return gl.GoStr(log)
}

func (d *Driver) UseProgram(id uint32) {
	gl.UseProgram(id)
}

func (d *Driver) BindAttribLocation(program, index uint32, name string) {
	gl.BindAttribLocation(program, index, cstr(name))
}

func (d *Driver) BindFragDataLocation(program, colorNumber uint32, name string) {
	gl.BindFragDataLocation(program, colorNumber, cstr(name))
}

func (d *Driver) GetActiveAttrib(program, index uint32) (name string, size int32, xtype uint32) {

	var maxLen int32
	gl.GetProgramiv(program, gl.ACTIVE_ATTRIBUTE_MAX_LENGTH, &maxLen)
	if maxLen == 0 {
		maxLen = 1
	}

	var length int32
	buf := make([]uint8, maxLen)
	gl.GetActiveAttrib(program, index, maxLen, &length, &size, &xtype, &buf[0])
	return string(buf[:length]), size, xtype
}

func (d *Driver) GetActiveUniform(program, index uint32) (name string, size int32, xtype uint32) {

	var maxLen int32
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORM_MAX_LENGTH, &maxLen)
	if maxLen == 0 {
		maxLen = 1
	}

	var length int32
	buf := make([]uint8, maxLen)
	gl.GetActiveUniform(program, index, maxLen, &length, &size, &xtype, &buf[0])
	return string(buf[:length]), size, xtype
}

func (d *Driver) GetAttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, cstr(name))
}

func (d *Driver) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, cstr(name))
}

func (d *Driver) GetActiveUniformsi(program uint32, indices []uint32, pname uint32) []int32 {

	out := make([]int32, len(indices))
	if len(indices) == 0 {
		return out
	}

	gl.GetActiveUniformsiv(program, int32(len(indices)), &indices[0], pname, &out[0])
	return out
}

func (d *Driver) GetUniformBlockIndex(program uint32, name string) uint32 {
	return gl.GetUniformBlockIndex(program, cstr(name))
}

func (d *Driver) GetActiveUniformBlockName(program, blockIndex uint32) string {

	var nameLen int32
	gl.GetActiveUniformBlockiv(program, blockIndex, gl.UNIFORM_BLOCK_NAME_LENGTH, &nameLen)
	if nameLen == 0 {
		return ""
	}

	var length int32
	buf := make([]uint8, nameLen)
	gl.GetActiveUniformBlockName(program, blockIndex, nameLen, &length, &buf[0])
	return string(buf[:length])
}

func (d *Driver) GetActiveUniformBlocki(program, blockIndex, pname uint32) (v int32) {
	gl.GetActiveUniformBlockiv(program, blockIndex, pname, &v)
	return v
}

func (d *Driver) UniformBlockBinding(program, blockIndex, bindPoint uint32) {
	gl.UniformBlockBinding(program, blockIndex, bindPoint)
}

func (d *Driver) ProgramUniform1i(program uint32, loc int32, v int32) {
	gl.ProgramUniform1i(program, loc, v)
}

func (d *Driver) ProgramUniform1ui(program uint32, loc int32, v uint32) {
	gl.ProgramUniform1ui(program, loc, v)
}

func (d *Driver) ProgramUniform1f(program uint32, loc int32, v float32) {
	gl.ProgramUniform1f(program, loc, v)
}

func (d *Driver) ProgramUniform1iv(program uint32, loc int32, v []int32) {

	if len(v) == 0 {
		return
	}

	gl.ProgramUniform1iv(program, loc, int32(len(v)), &v[0])
}

func (d *Driver) ProgramUniform1fv(program uint32, loc int32, v []float32) {

	if len(v) == 0 {
		return
	}

	gl.ProgramUniform1fv(program, loc, int32(len(v)), &v[0])
}

func (d *Driver) ProgramUniform2fv(program uint32, loc int32, v []float32) {

	if len(v) < 2 {
		return
	}

	gl.ProgramUniform2fv(program, loc, int32(len(v)/2), &v[0])
}

func (d *Driver) ProgramUniform3fv(program uint32, loc int32, v []float32) {

	if len(v) < 3 {
		return
	}

	gl.ProgramUniform3fv(program, loc, int32(len(v)/3), &v[0])
}

func (d *Driver) ProgramUniform4fv(program uint32, loc int32, v []float32) {

	if len(v) < 4 {
		return
	}

	gl.ProgramUniform4fv(program, loc, int32(len(v)/4), &v[0])
}

func (d *Driver) ProgramUniformMatrix2fv(program uint32, loc int32, transpose bool, v []float32) {

	if len(v) < 4 {
		return
	}

	gl.ProgramUniformMatrix2fv(program, loc, int32(len(v)/4), transpose, &v[0])
}

func (d *Driver) ProgramUniformMatrix3fv(program uint32, loc int32, transpose bool, v []float32) {

	if len(v) < 9 {
		return
	}

	gl.ProgramUniformMatrix3fv(program, loc, int32(len(v)/9), transpose, &v[0])
}

func (d *Driver) ProgramUniformMatrix4fv(program uint32, loc int32, transpose bool, v []float32) {

	if len(v) < 16 {
		return
	}

	gl.ProgramUniformMatrix4fv(program, loc, int32(len(v)/16), transpose, &v[0])
}

func (d *Driver) ProgramUniform2iv(program uint32, loc int32, v []int32) {

	if len(v) < 2 {
		return
	}

	gl.ProgramUniform2iv(program, loc, int32(len(v)/2), &v[0])
}

func (d *Driver) ProgramUniform3iv(program uint32, loc int32, v []int32) {

	if len(v) < 3 {
		return
	}

	gl.ProgramUniform3iv(program, loc, int32(len(v)/3), &v[0])
}

func (d *Driver) ProgramUniform4iv(program uint32, loc int32, v []int32) {

	if len(v) < 4 {
		return
	}

	gl.ProgramUniform4iv(program, loc, int32(len(v)/4), &v[0])
}

func (d *Driver) ProgramUniform2uiv(program uint32, loc int32, v []uint32) {

	if len(v) < 2 {
		return
	}

	gl.ProgramUniform2uiv(program, loc, int32(len(v)/2), &v[0])
}

func (d *Driver) ProgramUniform3uiv(program uint32, loc int32, v []uint32) {

	if len(v) < 3 {
		return
	}

	gl.ProgramUniform3uiv(program, loc, int32(len(v)/3), &v[0])
}

func (d *Driver) ProgramUniform4uiv(program uint32, loc int32, v []uint32) {

	if len(v) < 4 {
		return
	}

	gl.ProgramUniform4uiv(program, loc, int32(len(v)/4), &v[0])
}

func (d *Driver) ProgramUniformMatrix2x3fv(program uint32, loc int32, transpose bool, v []float32) {

	if len(v) < 6 {
		return
	}

	gl.ProgramUniformMatrix2x3fv(program, loc, int32(len(v)/6), transpose, &v[0])
}

func (d *Driver) ProgramUniformMatrix2x4fv(program uint32, loc int32, transpose bool, v []float32) {

	if len(v) < 8 {
		return
	}

	gl.ProgramUniformMatrix2x4fv(program, loc, int32(len(v)/8), transpose, &v[0])
}

func (d *Driver) ProgramUniformMatrix3x2fv(program uint32, loc int32, transpose bool, v []float32) {

	if len(v) < 6 {
		return
	}

	gl.ProgramUniformMatrix3x2fv(program, loc, int32(len(v)/6), transpose, &v[0])
}

func (d *Driver) ProgramUniformMatrix3x4fv(program uint32, loc int32, transpose bool, v []float32) {

	if len(v) < 12 {
		return
	}

	gl.ProgramUniformMatrix3x4fv(program, loc, int32(len(v)/12), transpose, &v[0])
}

func (d *Driver) ProgramUniformMatrix4x2fv(program uint32, loc int32, transpose bool, v []float32) {

	if len(v) < 8 {
		return
	}

	gl.ProgramUniformMatrix4x2fv(program, loc, int32(len(v)/8), transpose, &v[0])
}

func (d *Driver) ProgramUniformMatrix4x3fv(program uint32, loc int32, transpose bool, v []float32) {

	if len(v) < 12 {
		return
	}

	gl.ProgramUniformMatrix4x3fv(program, loc, int32(len(v)/12), transpose, &v[0])
}

func (d *Driver) GenFramebuffer() (id uint32) {
	gl.GenFramebuffers(1, &id)
	return id
}

func (d *Driver) DeleteFramebuffer(id uint32) {
	gl.DeleteFramebuffers(1, &id)
}

func (d *Driver) BindFramebuffer(target, id uint32) {
	gl.BindFramebuffer(target, id)
}

func (d *Driver) CheckFramebufferStatus(target uint32) uint32 {
	return gl.CheckFramebufferStatus(target)
}

func (d *Driver) FramebufferTexture2D(target, attachment, texTarget, texture uint32, level int32) {
	gl.FramebufferTexture2D(target, attachment, texTarget, texture, level)
}

func (d *Driver) FramebufferTextureLayer(target, attachment, texture uint32, level, layer int32) {
	gl.FramebufferTextureLayer(target, attachment, texture, level, layer)
}

func (d *Driver) FramebufferRenderbuffer(target, attachment, rbTarget, renderbuffer uint32) {
	gl.FramebufferRenderbuffer(target, attachment, rbTarget, renderbuffer)
}

func (d *Driver) DrawBuffers(bufs []uint32) {

	if len(bufs) == 0 {
		none := uint32(gl.NONE)
		gl.DrawBuffers(1, &none)
		return
	}

	gl.DrawBuffers(int32(len(bufs)), &bufs[0])
}

func (d *Driver) ReadBuffer(src uint32) {
	gl.ReadBuffer(src)
}

func (d *Driver) BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter uint32) {
	gl.BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1, mask, filter)
}

func (d *Driver) GenRenderbuffer() (id uint32) {
	gl.GenRenderbuffers(1, &id)
	return id
}

func (d *Driver) DeleteRenderbuffer(id uint32) {
	gl.DeleteRenderbuffers(1, &id)
}

func (d *Driver) BindRenderbuffer(target, id uint32) {
	gl.BindRenderbuffer(target, id)
}

func (d *Driver) RenderbufferStorage(target, internalFormat uint32, width, height int32) {
	gl.RenderbufferStorage(target, internalFormat, width, height)
}

func (d *Driver) RenderbufferStorageMultisample(target uint32, samples int32, internalFormat uint32, width, height int32) {
	gl.RenderbufferStorageMultisample(target, samples, internalFormat, width, height)
}

func (d *Driver) GenQuery() (id uint32) {
	gl.GenQueries(1, &id)
	return id
}

func (d *Driver) DeleteQuery(id uint32) {
	gl.DeleteQueries(1, &id)
}

func (d *Driver) BeginQuery(target, id uint32) {
	gl.BeginQuery(target, id)
}

func (d *Driver) EndQuery(target uint32) {
	gl.EndQuery(target)
}

func (d *Driver) QueryCounter(id, target uint32) {
	gl.QueryCounter(id, target)
}

func (d *Driver) GetQueryObjectui(id, pname uint32) (v uint32) {
	gl.GetQueryObjectuiv(id, pname, &v)
	return v
}

func (d *Driver) GetQueryObjectui64(id, pname uint32) (v uint64) {
	gl.GetQueryObjectui64v(id, pname, &v)
	return v
}

func (d *Driver) FenceSync(condition, flags uint32) uintptr {
	return gl.FenceSync(condition, flags)
}

func (d *Driver) DeleteSync(sync uintptr) {
	gl.DeleteSync(sync)
}

func (d *Driver) ClientWaitSync(sync uintptr, flags uint32, timeoutNs uint64) uint32 {
	return gl.ClientWaitSync(sync, flags, timeoutNs)
}

func (d *Driver) WaitSync(sync uintptr, flags uint32, timeoutNs uint64) {
	gl.WaitSync(sync, flags, timeoutNs)
}

func (d *Driver) GetSynci(sync uintptr, pname uint32) (v int32) {
	var length int32
	gl.GetSynciv(sync, pname, 1, &length, &v)
	return v
}

func (d *Driver) GetError() uint32 {
	return gl.GetError()
}

func (d *Driver) GetString(name uint32) string {

	s := gl.GetString(name)
	if s == nil {
		return ""
	}

	return gl.GoStr(s)
}

func (d *Driver) GetIntegerv(pname uint32) (v int32) {
	gl.GetIntegerv(pname, &v)
	return v
}

func (d *Driver) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (d *Driver) Enable(capability uint32) {
	gl.Enable(capability)
}

func (d *Driver) Disable(capability uint32) {
	gl.Disable(capability)
}

func (d *Driver) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (d *Driver) Clear(mask uint32) {
	gl.Clear(mask)
}

func (d *Driver) DrawArrays(mode uint32, first, count int32) {
	gl.DrawArrays(mode, first, count)
}

func (d *Driver) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	gl.DrawElements(mode, count, xtype, gl.PtrOffset(offset))
}

func (d *Driver) Flush() {
	gl.Flush()
}

func (d *Driver) Finish() {
	gl.Finish()
}
