// Package glapi is the boundary between the object wrappers and an OpenGL driver.
//
// GL mirrors the driver entry points the wrappers use, but with Go types: byte
// slices instead of raw pointers, strings instead of NUL terminated C strings and
// single-object Gen/Delete calls. The real implementation lives in glapi/gogl.
package glapi

type GL interface {

	// Buffers
	GenBuffer() uint32
	DeleteBuffer(id uint32)
	BindBuffer(target, id uint32)
	// BufferData allocates size bytes. If data is non-nil, len(data) must equal size.
	BufferData(target uint32, size int, data []byte, usage uint32)
	BufferSubData(target uint32, offset int, data []byte)
	GetBufferSubData(target uint32, offset int, out []byte)
	CopyBufferSubData(readTarget, writeTarget uint32, readOffset, writeOffset, size int)
	BindBufferBase(target, index, id uint32)
	BindBufferRange(target, index, id uint32, offset, size int)
	// MapBufferRange returns nil on failure.
	MapBufferRange(target uint32, offset, length int, access uint32) []byte
	UnmapBuffer(target uint32) bool

	// Vertex arrays
	GenVertexArray() uint32
	DeleteVertexArray(id uint32)
	BindVertexArray(id uint32)
	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int)
	VertexAttribIPointer(index uint32, size int32, xtype uint32, stride int32, offset int)
	VertexAttribDivisor(index, divisor uint32)

	// Textures
	GenTexture() uint32
	DeleteTexture(id uint32)
	ActiveTexture(unit uint32)
	BindTexture(target, id uint32)
	TexImage1D(target uint32, level, internalFormat, width int32, format, xtype uint32, data []byte)
	TexSubImage1D(target uint32, level, xOffset, width int32, format, xtype uint32, data []byte)
	TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, data []byte)
	TexSubImage2D(target uint32, level, xOffset, yOffset, width, height int32, format, xtype uint32, data []byte)
	TexImage3D(target uint32, level, internalFormat, width, height, depth int32, format, xtype uint32, data []byte)
	TexSubImage3D(target uint32, level, xOffset, yOffset, zOffset, width, height, depth int32, format, xtype uint32, data []byte)
	TexImage2DMultisample(target uint32, samples int32, internalFormat uint32, width, height int32, fixedSampleLocations bool)
	TexParameteri(target, pname uint32, param int32)
	GenerateMipmap(target uint32)
	TexBuffer(target, internalFormat, bufferId uint32)
	GetTexImage(target uint32, level int32, format, xtype uint32, out []byte)

	// Shaders and programs
	CreateShader(xtype uint32) uint32
	DeleteShader(id uint32)
	ShaderSource(id uint32, src string)
	CompileShader(id uint32)
	GetShaderi(id, pname uint32) int32
	GetShaderInfoLog(id uint32) string

	CreateProgram() uint32
	DeleteProgram(id uint32)
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(id uint32)
	ValidateProgram(id uint32)
	GetProgrami(id, pname uint32) int32
	GetProgramInfoLog(id uint32) string
	UseProgram(id uint32)
	BindAttribLocation(program, index uint32, name string)
	BindFragDataLocation(program, colorNumber uint32, name string)

	GetActiveAttrib(program, index uint32) (name string, size int32, xtype uint32)
	GetActiveUniform(program, index uint32) (name string, size int32, xtype uint32)
	GetAttribLocation(program uint32, name string) int32
	GetUniformLocation(program uint32, name string) int32
	GetActiveUniformsi(program uint32, indices []uint32, pname uint32) []int32
	GetUniformBlockIndex(program uint32, name string) uint32
	GetActiveUniformBlockName(program, blockIndex uint32) string
	GetActiveUniformBlocki(program, blockIndex, pname uint32) int32
	UniformBlockBinding(program, blockIndex, bindPoint uint32)

	ProgramUniform1i(program uint32, loc int32, v int32)
	ProgramUniform1ui(program uint32, loc int32, v uint32)
	ProgramUniform1f(program uint32, loc int32, v float32)
	ProgramUniform1iv(program uint32, loc int32, v []int32)
	ProgramUniform1fv(program uint32, loc int32, v []float32)
	ProgramUniform2fv(program uint32, loc int32, v []float32)
	ProgramUniform3fv(program uint32, loc int32, v []float32)
	ProgramUniform4fv(program uint32, loc int32, v []float32)
	ProgramUniformMatrix2fv(program uint32, loc int32, transpose bool, v []float32)
	ProgramUniformMatrix3fv(program uint32, loc int32, transpose bool, v []float32)
	ProgramUniformMatrix4fv(program uint32, loc int32, transpose bool, v []float32)
	ProgramUniform2iv(program uint32, loc int32, v []int32)
	ProgramUniform3iv(program uint32, loc int32, v []int32)
	ProgramUniform4iv(program uint32, loc int32, v []int32)
	ProgramUniform2uiv(program uint32, loc int32, v []uint32)
	ProgramUniform3uiv(program uint32, loc int32, v []uint32)
	ProgramUniform4uiv(program uint32, loc int32, v []uint32)
	ProgramUniformMatrix2x3fv(program uint32, loc int32, transpose bool, v []float32)
	ProgramUniformMatrix2x4fv(program uint32, loc int32, transpose bool, v []float32)
	ProgramUniformMatrix3x2fv(program uint32, loc int32, transpose bool, v []float32)
	ProgramUniformMatrix3x4fv(program uint32, loc int32, transpose bool, v []float32)
	ProgramUniformMatrix4x2fv(program uint32, loc int32, transpose bool, v []float32)
	ProgramUniformMatrix4x3fv(program uint32, loc int32, transpose bool, v []float32)

	// Framebuffers and renderbuffers
	GenFramebuffer() uint32
	DeleteFramebuffer(id uint32)
	BindFramebuffer(target, id uint32)
	CheckFramebufferStatus(target uint32) uint32
	FramebufferTexture2D(target, attachment, texTarget, texture uint32, level int32)
	FramebufferTextureLayer(target, attachment, texture uint32, level, layer int32)
	FramebufferRenderbuffer(target, attachment, rbTarget, renderbuffer uint32)
	DrawBuffers(bufs []uint32)
	ReadBuffer(src uint32)
	BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter uint32)

	GenRenderbuffer() uint32
	DeleteRenderbuffer(id uint32)
	BindRenderbuffer(target, id uint32)
	RenderbufferStorage(target, internalFormat uint32, width, height int32)
	RenderbufferStorageMultisample(target uint32, samples int32, internalFormat uint32, width, height int32)

	// Queries
	GenQuery() uint32
	DeleteQuery(id uint32)
	BeginQuery(target, id uint32)
	EndQuery(target uint32)
	QueryCounter(id, target uint32)
	GetQueryObjectui(id, pname uint32) uint32
	GetQueryObjectui64(id, pname uint32) uint64

	// Sync objects
	FenceSync(condition, flags uint32) uintptr
	DeleteSync(sync uintptr)
	ClientWaitSync(sync uintptr, flags uint32, timeoutNs uint64) uint32
	WaitSync(sync uintptr, flags uint32, timeoutNs uint64)
	GetSynci(sync uintptr, pname uint32) int32

	// State and drawing
	GetError() uint32
	GetString(name uint32) string
	GetIntegerv(pname uint32) int32
	Viewport(x, y, width, height int32)
	Enable(capability uint32)
	Disable(capability uint32)
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	DrawArrays(mode uint32, first, count int32)
	DrawElements(mode uint32, count int32, xtype uint32, offset int)
	Flush()
	Finish()
}
