// Package glfake is an in-memory glapi.GL used by unit tests.
//
// It keeps enough server state (buffer bytes, bindings, texture images, shader and
// program status, query results, fence status) for the wrappers to be tested without
// a real context. Invalid operations record GL errors the same way a driver would.
package glfake

import (
	"strconv"
	"strings"

	"github.com/bloeys/glw/glapi"
)

var _ glapi.GL = &GL{}

type Buffer struct {
	Data   []byte
	Usage  uint32
	Mapped bool
}

type Image struct {
	Level          int32
	InternalFormat int32
	Width          int32
	Height         int32
	Depth          int32
	Format         uint32
	Type           uint32
	Data           []byte
}

type Texture struct {
	Target      uint32
	Images      map[int32]*Image
	Params      map[uint32]int32
	Mipmapped   bool
	BufferId    uint32
	BufferFmt   uint32
	Samples     int32
	Multisample bool
}

type Attrib struct {
	Enabled    bool
	Size       int32
	Type       uint32
	Normalized bool
	Integer    bool
	Stride     int32
	Offset     int
	Divisor    uint32
	BufferId   uint32
}

type VertexArray struct {
	Attribs     map[uint32]*Attrib
	IndexBuffer uint32
}

type Shader struct {
	Type     uint32
	Source   string
	Compiled bool
	Log      string
}

// Variable describes an active attribute or uniform reported after a link
type Variable struct {
	Name       string
	Size       int32
	Type       uint32
	Location   int32
	BlockIndex int32
}

type Block struct {
	Name     string
	DataSize int32
	Binding  uint32
	Uniforms []uint32
}

// LinkResult scripts what happens when a program is linked
type LinkResult struct {
	Fail     bool
	Log      string
	Attribs  []Variable
	Uniforms []Variable
	Blocks   []Block
}

type UniformValue struct {
	Ints      []int32
	Uints     []uint32
	Floats    []float32
	Transpose bool

	// Shape is the suffix of the glProgramUniform call that set the value, like "3iv" or "Matrix2x3fv"
	Shape string
}

type Program struct {
	Shaders  map[uint32]bool
	Linked   bool
	Log      string
	Attribs  []Variable
	Uniforms []Variable
	Blocks   []Block
	Values   map[int32]UniformValue

	BoundAttribs  map[string]uint32
	BoundFragData map[string]uint32
	Validated     bool
}

type Framebuffer struct {
	Attachments map[uint32]uint32
	DrawBuffers []uint32
	ReadBuffer  uint32
}

type Renderbuffer struct {
	InternalFormat uint32
	Width          int32
	Height         int32
	Samples        int32
}

type Query struct {
	Target    uint32
	Active    bool
	Result    uint64
	Available bool
}

type Fence struct {
	Signaled bool
	// PollsUntilSignaled counts down on every ClientWaitSync/GetSynci and signals the fence when it hits zero.
	// Zero means the fence only signals through SignalFence or Finish.
	PollsUntilSignaled int
}

// BlitCall records one BlitFramebuffer call
type BlitCall struct {
	ReadFbo, DrawFbo uint32
	Src, Dst         [4]int32
	Mask, Filter     uint32
}

type GL struct {
	nextId   uint32
	nextSync uintptr

	Errors []uint32

	Buffers       map[uint32]*Buffer
	BufferBinds   map[uint32]uint32
	IndexedBinds  map[uint32]map[uint32]uint32
	VertexArrays  map[uint32]*VertexArray
	BoundVao      uint32
	Textures      map[uint32]*Texture
	TextureBinds  map[uint32]uint32
	ActiveUnit    uint32
	Shaders       map[uint32]*Shader
	Programs      map[uint32]*Program
	CurrentProg   uint32
	Framebuffers  map[uint32]*Framebuffer
	FboBinds      map[uint32]uint32
	Renderbuffers map[uint32]*Renderbuffer
	BoundRbo      uint32
	Queries       map[uint32]*Query
	ActiveQueries map[uint32]uint32
	Fences        map[uintptr]*Fence

	// LinkResults scripts link outcomes per program id. Programs without an entry link successfully with no resources.
	LinkResults map[uint32]LinkResult
	// CompileFailMarker makes any shader whose source contains it fail to compile
	CompileFailMarker string
	// FramebufferStatus overrides CheckFramebufferStatus when non-zero
	FramebufferStatus uint32
	// NextFenceSignaled makes new fences start signaled
	NextFenceSignaled bool
	// FencePolls is copied into Fence.PollsUntilSignaled of new fences
	FencePolls int

	Blits     []BlitCall
	Viewports [][4]int32
	Draws     int
	Strings   map[uint32]string
	Integers  map[uint32]int32
	Caps      map[uint32]bool
	Flushes   int
}

func New() *GL {
	return &GL{
		Buffers:       map[uint32]*Buffer{},
		BufferBinds:   map[uint32]uint32{},
		IndexedBinds:  map[uint32]map[uint32]uint32{},
		VertexArrays:  map[uint32]*VertexArray{},
		Textures:      map[uint32]*Texture{},
		TextureBinds:  map[uint32]uint32{},
		Shaders:       map[uint32]*Shader{},
		Programs:      map[uint32]*Program{},
		Framebuffers:  map[uint32]*Framebuffer{},
		FboBinds:      map[uint32]uint32{},
		Renderbuffers: map[uint32]*Renderbuffer{},
		Queries:       map[uint32]*Query{},
		ActiveQueries: map[uint32]uint32{},
		Fences:        map[uintptr]*Fence{},
		LinkResults:   map[uint32]LinkResult{},
		Caps:          map[uint32]bool{},
		Strings: map[uint32]string{
			glapi.VENDOR:                   "glfake",
			glapi.RENDERER:                 "glfake renderer",
			glapi.VERSION:                  "4.1 glfake",
			glapi.SHADING_LANGUAGE_VERSION: "4.10",
		},
		Integers: map[uint32]int32{
			glapi.MAX_COLOR_ATTACHMENTS: 8,
			glapi.MAX_VERTEX_ATTRIBS:    16,
		},
	}
}

func (g *GL) genId() uint32 {
	g.nextId++
	return g.nextId
}

func (g *GL) recordErr(code uint32) {
	g.Errors = append(g.Errors, code)
}

// ErrorCount returns the number of errors not yet fetched with GetError
func (g *GL) ErrorCount() int {
	return len(g.Errors)
}

// BoundBuffer returns the buffer object currently bound to target, or nil
func (g *GL) BoundBuffer(target uint32) *Buffer {
	return g.Buffers[g.BufferBinds[target]]
}

func (g *GL) boundBuffer(target uint32) *Buffer {

	b := g.Buffers[g.BufferBinds[target]]
	if b == nil {
		g.recordErr(glapi.INVALID_OPERATION)
	}

	return b
}

/*
	Buffers
*/

func (g *GL) GenBuffer() uint32 {
	id := g.genId()
	g.Buffers[id] = &Buffer{}
	return id
}

func (g *GL) DeleteBuffer(id uint32) {

	if id == 0 {
		return
	}

	delete(g.Buffers, id)
	for target, bound := range g.BufferBinds {
		if bound == id {
			g.BufferBinds[target] = 0
		}
	}
}

func (g *GL) BindBuffer(target, id uint32) {

	if id != 0 && g.Buffers[id] == nil {
		g.recordErr(glapi.INVALID_OPERATION)
		return
	}

	g.BufferBinds[target] = id
	if target == glapi.ELEMENT_ARRAY_BUFFER && g.BoundVao != 0 {
		g.VertexArrays[g.BoundVao].IndexBuffer = id
	}
}

func (g *GL) BufferData(target uint32, size int, data []byte, usage uint32) {

	b := g.boundBuffer(target)
	if b == nil {
		return
	}

	if size < 0 || (data != nil && len(data) != size) {
		g.recordErr(glapi.INVALID_VALUE)
		return
	}

	b.Data = make([]byte, size)
	copy(b.Data, data)
	b.Usage = usage
}

func (g *GL) BufferSubData(target uint32, offset int, data []byte) {

	b := g.boundBuffer(target)
	if b == nil {
		return
	}

	if offset < 0 || offset+len(data) > len(b.Data) {
		g.recordErr(glapi.INVALID_VALUE)
		return
	}

	copy(b.Data[offset:], data)
}

func (g *GL) GetBufferSubData(target uint32, offset int, out []byte) {

	b := g.boundBuffer(target)
	if b == nil {
		return
	}

	if offset < 0 || offset+len(out) > len(b.Data) {
		g.recordErr(glapi.INVALID_VALUE)
		return
	}

	copy(out, b.Data[offset:])
}

func (g *GL) CopyBufferSubData(readTarget, writeTarget uint32, readOffset, writeOffset, size int) {

	src := g.boundBuffer(readTarget)
	dst := g.boundBuffer(writeTarget)
	if src == nil || dst == nil {
		return
	}

	if readOffset < 0 || writeOffset < 0 || size < 0 ||
		readOffset+size > len(src.Data) || writeOffset+size > len(dst.Data) {
		g.recordErr(glapi.INVALID_VALUE)
		return
	}

	copy(dst.Data[writeOffset:writeOffset+size], src.Data[readOffset:readOffset+size])
}

func (g *GL) BindBufferBase(target, index, id uint32) {
	g.BindBufferRange(target, index, id, 0, 0)
}

func (g *GL) BindBufferRange(target, index, id uint32, offset, size int) {

	if id != 0 && g.Buffers[id] == nil {
		g.recordErr(glapi.INVALID_OPERATION)
		return
	}

	if g.IndexedBinds[target] == nil {
		g.IndexedBinds[target] = map[uint32]uint32{}
	}

	g.IndexedBinds[target][index] = id
	g.BufferBinds[target] = id
}

func (g *GL) MapBufferRange(target uint32, offset, length int, access uint32) []byte {

	b := g.boundBuffer(target)
	if b == nil {
		return nil
	}

	if b.Mapped || offset < 0 || length <= 0 || offset+length > len(b.Data) {
		g.recordErr(glapi.INVALID_VALUE)
		return nil
	}

	b.Mapped = true
	return b.Data[offset : offset+length]
}

func (g *GL) UnmapBuffer(target uint32) bool {

	b := g.boundBuffer(target)
	if b == nil {
		return false
	}

	if !b.Mapped {
		g.recordErr(glapi.INVALID_OPERATION)
		return false
	}

	b.Mapped = false
	return true
}

/*
	Vertex arrays
*/

func (g *GL) GenVertexArray() uint32 {
	id := g.genId()
	g.VertexArrays[id] = &VertexArray{Attribs: map[uint32]*Attrib{}}
	return id
}

func (g *GL) DeleteVertexArray(id uint32) {

	delete(g.VertexArrays, id)
	if g.BoundVao == id {
		g.BoundVao = 0
	}
}

func (g *GL) BindVertexArray(id uint32) {

	if id != 0 && g.VertexArrays[id] == nil {
		g.recordErr(glapi.INVALID_OPERATION)
		return
	}

	g.BoundVao = id
	if id != 0 {
		g.BufferBinds[glapi.ELEMENT_ARRAY_BUFFER] = g.VertexArrays[id].IndexBuffer
	}
}

func (g *GL) boundAttrib(index uint32) *Attrib {

	vao := g.VertexArrays[g.BoundVao]
	if vao == nil {
		g.recordErr(glapi.INVALID_OPERATION)
		return nil
	}

	a := vao.Attribs[index]
	if a == nil {
		a = &Attrib{}
		vao.Attribs[index] = a
	}

	return a
}

func (g *GL) EnableVertexAttribArray(index uint32) {
	if a := g.boundAttrib(index); a != nil {
		a.Enabled = true
	}
}

func (g *GL) DisableVertexAttribArray(index uint32) {
	if a := g.boundAttrib(index); a != nil {
		a.Enabled = false
	}
}

func (g *GL) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {

	a := g.boundAttrib(index)
	if a == nil {
		return
	}

	a.Size, a.Type, a.Normalized, a.Integer, a.Stride, a.Offset = size, xtype, normalized, false, stride, offset
	a.BufferId = g.BufferBinds[glapi.ARRAY_BUFFER]
}

func (g *GL) VertexAttribIPointer(index uint32, size int32, xtype uint32, stride int32, offset int) {

	a := g.boundAttrib(index)
	if a == nil {
		return
	}

	a.Size, a.Type, a.Normalized, a.Integer, a.Stride, a.Offset = size, xtype, false, true, stride, offset
	a.BufferId = g.BufferBinds[glapi.ARRAY_BUFFER]
}

func (g *GL) VertexAttribDivisor(index, divisor uint32) {
	if a := g.boundAttrib(index); a != nil {
		a.Divisor = divisor
	}
}

/*
	Textures
*/

func (g *GL) GenTexture() uint32 {
	id := g.genId()
	g.Textures[id] = &Texture{Images: map[int32]*Image{}, Params: map[uint32]int32{}}
	return id
}

func (g *GL) DeleteTexture(id uint32) {

	delete(g.Textures, id)
	for target, bound := range g.TextureBinds {
		if bound == id {
			g.TextureBinds[target] = 0
		}
	}
}

func (g *GL) ActiveTexture(unit uint32) {
	g.ActiveUnit = unit - glapi.TEXTURE0
}

func (g *GL) BindTexture(target, id uint32) {

	if id == 0 {
		g.TextureBinds[target] = 0
		return
	}

	t := g.Textures[id]
	if t == nil || (t.Target != 0 && t.Target != target) {
		g.recordErr(glapi.INVALID_OPERATION)
		return
	}

	t.Target = target
	g.TextureBinds[target] = id
}

// BoundTexture returns the texture currently bound to target, or nil
func (g *GL) BoundTexture(target uint32) *Texture {
	return g.Textures[g.TextureBinds[target]]
}

func (g *GL) boundTexture(target uint32) *Texture {

	// Cube map faces are bound through the cube map target
	if target >= glapi.TEXTURE_CUBE_MAP_POSITIVE_X && target < glapi.TEXTURE_CUBE_MAP_POSITIVE_X+6 {
		target = glapi.TEXTURE_CUBE_MAP
	}

	t := g.Textures[g.TextureBinds[target]]
	if t == nil {
		g.recordErr(glapi.INVALID_OPERATION)
	}

	return t
}

func (g *GL) TexImage1D(target uint32, level, internalFormat, width int32, format, xtype uint32, data []byte) {
	g.TexImage3D(target, level, internalFormat, width, 1, 1, format, xtype, data)
}

func (g *GL) TexSubImage1D(target uint32, level, xOffset, width int32, format, xtype uint32, data []byte) {
	g.TexSubImage3D(target, level, xOffset, 0, 0, width, 1, 1, format, xtype, data)
}

func (g *GL) TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, data []byte) {
	g.TexImage3D(target, level, internalFormat, width, height, 1, format, xtype, data)
}

func (g *GL) TexSubImage2D(target uint32, level, xOffset, yOffset, width, height int32, format, xtype uint32, data []byte) {
	g.TexSubImage3D(target, level, xOffset, yOffset, 0, width, height, 1, format, xtype, data)
}

func (g *GL) TexImage3D(target uint32, level, internalFormat, width, height, depth int32, format, xtype uint32, data []byte) {

	t := g.boundTexture(target)
	if t == nil {
		return
	}

	if width < 0 || height < 0 || depth < 0 || level < 0 {
		g.recordErr(glapi.INVALID_VALUE)
		return
	}

	img := &Image{
		Level:          level,
		InternalFormat: internalFormat,
		Width:          width,
		Height:         height,
		Depth:          depth,
		Format:         format,
		Type:           xtype,
	}

	if data != nil {
		img.Data = append([]byte(nil), data...)
	}

	t.Images[level] = img
}

func (g *GL) TexSubImage3D(target uint32, level, xOffset, yOffset, zOffset, width, height, depth int32, format, xtype uint32, data []byte) {

	t := g.boundTexture(target)
	if t == nil {
		return
	}

	img := t.Images[level]
	if img == nil || xOffset+width > img.Width || yOffset+height > img.Height || zOffset+depth > img.Depth {
		g.recordErr(glapi.INVALID_VALUE)
		return
	}

	// The fake only tracks full-image updates byte for byte
	if xOffset == 0 && yOffset == 0 && zOffset == 0 && width == img.Width && height == img.Height && depth == img.Depth {
		img.Data = append([]byte(nil), data...)
	}
}

func (g *GL) TexImage2DMultisample(target uint32, samples int32, internalFormat uint32, width, height int32, fixedSampleLocations bool) {

	t := g.boundTexture(target)
	if t == nil {
		return
	}

	t.Multisample = true
	t.Samples = samples
	t.Images[0] = &Image{InternalFormat: int32(internalFormat), Width: width, Height: height, Depth: 1}
}

func (g *GL) TexParameteri(target, pname uint32, param int32) {
	if t := g.boundTexture(target); t != nil {
		t.Params[pname] = param
	}
}

func (g *GL) GenerateMipmap(target uint32) {
	if t := g.boundTexture(target); t != nil {
		t.Mipmapped = true
	}
}

func (g *GL) TexBuffer(target, internalFormat, bufferId uint32) {

	t := g.boundTexture(target)
	if t == nil {
		return
	}

	if bufferId != 0 && g.Buffers[bufferId] == nil {
		g.recordErr(glapi.INVALID_OPERATION)
		return
	}

	t.BufferId = bufferId
	t.BufferFmt = internalFormat
}

func (g *GL) GetTexImage(target uint32, level int32, format, xtype uint32, out []byte) {

	t := g.boundTexture(target)
	if t == nil {
		return
	}

	img := t.Images[level]
	if img == nil {
		g.recordErr(glapi.INVALID_VALUE)
		return
	}

	copy(out, img.Data)
}

/*
	Shaders and programs
*/

func (g *GL) CreateShader(xtype uint32) uint32 {

	switch xtype {
	case glapi.VERTEX_SHADER, glapi.FRAGMENT_SHADER, glapi.GEOMETRY_SHADER, glapi.TESS_CONTROL_SHADER, glapi.TESS_EVALUATION_SHADER:
	default:
		g.recordErr(glapi.INVALID_ENUM)
		return 0
	}

	id := g.genId()
	g.Shaders[id] = &Shader{Type: xtype}
	return id
}

func (g *GL) DeleteShader(id uint32) {
	delete(g.Shaders, id)
}

func (g *GL) ShaderSource(id uint32, src string) {

	s := g.Shaders[id]
	if s == nil {
		g.recordErr(glapi.INVALID_VALUE)
		return
	}

	s.Source = src
}

func (g *GL) CompileShader(id uint32) {

	s := g.Shaders[id]
	if s == nil {
		g.recordErr(glapi.INVALID_VALUE)
		return
	}

	if g.CompileFailMarker != "" && strings.Contains(s.Source, g.CompileFailMarker) {
		s.Compiled = false
		line := markerLine(s.Source, g.CompileFailMarker)
		s.Log = "0:" + strconv.Itoa(line) + "(1): error: syntax error near '" + g.CompileFailMarker + "'"
		return
	}

	s.Compiled = true
	s.Log = ""
}

// markerLine is the line number a driver would report for the first line holding marker, following #line directives
func markerLine(src, marker string) int {

	line := 1
	for _, l := range strings.Split(src, "\n") {

		if rest, ok := strings.CutPrefix(strings.TrimSpace(l), "#line "); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(rest)); err == nil {
				line = n
				continue
			}
		}

		if strings.Contains(l, marker) {
			return line
		}
		line++
	}

	return 1
}

func (g *GL) GetShaderi(id, pname uint32) int32 {

	s := g.Shaders[id]
	if s == nil {
		g.recordErr(glapi.INVALID_VALUE)
		return 0
	}

	switch pname {
	case glapi.COMPILE_STATUS:
		if s.Compiled {
			return glapi.TRUE
		}
		return glapi.FALSE
	case glapi.INFO_LOG_LENGTH:
		if s.Log == "" {
			return 0
		}
		return int32(len(s.Log) + 1)
	}

	g.recordErr(glapi.INVALID_ENUM)
	return 0
}

func (g *GL) GetShaderInfoLog(id uint32) string {

	s := g.Shaders[id]
	if s == nil {
		g.recordErr(glapi.INVALID_VALUE)
		return ""
	}

	return s.Log
}

func (g *GL) CreateProgram() uint32 {
	id := g.genId()
	g.Programs[id] = &Program{
		Shaders:       map[uint32]bool{},
		Values:        map[int32]UniformValue{},
		BoundAttribs:  map[string]uint32{},
		BoundFragData: map[string]uint32{},
	}
	return id
}

func (g *GL) DeleteProgram(id uint32) {

	delete(g.Programs, id)
	if g.CurrentProg == id {
		g.CurrentProg = 0
	}
}

func (g *GL) program(id uint32) *Program {

	p := g.Programs[id]
	if p == nil {
		g.recordErr(glapi.INVALID_VALUE)
	}

	return p
}

func (g *GL) AttachShader(program, shader uint32) {

	p := g.program(program)
	if p == nil {
		return
	}

	if g.Shaders[shader] == nil || p.Shaders[shader] {
		g.recordErr(glapi.INVALID_OPERATION)
		return
	}

	p.Shaders[shader] = true
}

func (g *GL) DetachShader(program, shader uint32) {

	p := g.program(program)
	if p == nil {
		return
	}

	if !p.Shaders[shader] {
		g.recordErr(glapi.INVALID_OPERATION)
		return
	}

	delete(p.Shaders, shader)
}

func (g *GL) LinkProgram(id uint32) {

	p := g.program(id)
	if p == nil {
		return
	}

	res, ok := g.LinkResults[id]
	if !ok {
		res = LinkResult{}
	}

	// Unlinked shaders make the link fail like a real driver would
	for sid := range p.Shaders {
		if s := g.Shaders[sid]; s != nil && !s.Compiled {
			res = LinkResult{Fail: true, Log: "error: linking with uncompiled/unspecialized shader"}
			break
		}
	}

	if res.Fail {
		p.Linked = false
		p.Log = res.Log
		p.Attribs, p.Uniforms, p.Blocks = nil, nil, nil
		return
	}

	p.Linked = true
	p.Log = res.Log
	p.Values = map[int32]UniformValue{}
	p.Attribs = append([]Variable(nil), res.Attribs...)
	p.Uniforms = append([]Variable(nil), res.Uniforms...)
	p.Blocks = append([]Block(nil), res.Blocks...)

	// Explicitly bound attribute locations win like they would in a real link
	for i := 0; i < len(p.Attribs); i++ {
		if loc, ok := p.BoundAttribs[p.Attribs[i].Name]; ok {
			p.Attribs[i].Location = int32(loc)
		}
	}
}

func (g *GL) ValidateProgram(id uint32) {
	if p := g.program(id); p != nil {
		p.Validated = p.Linked
	}
}

func (g *GL) GetProgrami(id, pname uint32) int32 {

	p := g.program(id)
	if p == nil {
		return 0
	}

	boolToGl := func(b bool) int32 {
		if b {
			return glapi.TRUE
		}
		return glapi.FALSE
	}

	switch pname {
	case glapi.LINK_STATUS:
		return boolToGl(p.Linked)
	case glapi.VALIDATE_STATUS:
		return boolToGl(p.Validated)
	case glapi.INFO_LOG_LENGTH:
		if p.Log == "" {
			return 0
		}
		return int32(len(p.Log) + 1)
	case glapi.ATTACHED_SHADERS:
		return int32(len(p.Shaders))
	case glapi.ACTIVE_ATTRIBUTES:
		return int32(len(p.Attribs))
	case glapi.ACTIVE_UNIFORMS:
		return int32(len(p.Uniforms))
	case glapi.ACTIVE_UNIFORM_BLOCKS:
		return int32(len(p.Blocks))
	}

	g.recordErr(glapi.INVALID_ENUM)
	return 0
}

func (g *GL) GetProgramInfoLog(id uint32) string {

	p := g.program(id)
	if p == nil {
		return ""
	}

	return p.Log
}

func (g *GL) UseProgram(id uint32) {

	if id != 0 {
		p := g.program(id)
		if p == nil {
			return
		}

		if !p.Linked {
			g.recordErr(glapi.INVALID_OPERATION)
			return
		}
	}

	g.CurrentProg = id
}

func (g *GL) BindAttribLocation(program, index uint32, name string) {
	if p := g.program(program); p != nil {
		p.BoundAttribs[name] = index
	}
}

func (g *GL) BindFragDataLocation(program, colorNumber uint32, name string) {
	if p := g.program(program); p != nil {
		p.BoundFragData[name] = colorNumber
	}
}

func (g *GL) GetActiveAttrib(program, index uint32) (name string, size int32, xtype uint32) {

	p := g.program(program)
	if p == nil {
		return "", 0, 0
	}

	if int(index) >= len(p.Attribs) {
		g.recordErr(glapi.INVALID_VALUE)
		return "", 0, 0
	}

	a := p.Attribs[index]
	return a.Name, a.Size, a.Type
}

func (g *GL) GetActiveUniform(program, index uint32) (name string, size int32, xtype uint32) {

	p := g.program(program)
	if p == nil {
		return "", 0, 0
	}

	if int(index) >= len(p.Uniforms) {
		g.recordErr(glapi.INVALID_VALUE)
		return "", 0, 0
	}

	u := p.Uniforms[index]
	return u.Name, u.Size, u.Type
}

func (g *GL) GetAttribLocation(program uint32, name string) int32 {

	p := g.program(program)
	if p == nil {
		return -1
	}

	if !p.Linked {
		g.recordErr(glapi.INVALID_OPERATION)
		return -1
	}

	for i := 0; i < len(p.Attribs); i++ {
		if p.Attribs[i].Name == name {
			return p.Attribs[i].Location
		}
	}

	return -1
}

func (g *GL) GetUniformLocation(program uint32, name string) int32 {

	p := g.program(program)
	if p == nil {
		return -1
	}

	if !p.Linked {
		g.recordErr(glapi.INVALID_OPERATION)
		return -1
	}

	for i := 0; i < len(p.Uniforms); i++ {

		u := &p.Uniforms[i]
		if u.Name == name || strings.TrimSuffix(u.Name, "[0]") == name {
			return u.Location
		}
	}

	return -1
}

func (g *GL) GetActiveUniformsi(program uint32, indices []uint32, pname uint32) []int32 {

	out := make([]int32, len(indices))
	p := g.program(program)
	if p == nil {
		return out
	}

	for i, index := range indices {

		if int(index) >= len(p.Uniforms) {
			g.recordErr(glapi.INVALID_VALUE)
			return out
		}

		u := &p.Uniforms[index]
		switch pname {
		case glapi.UNIFORM_BLOCK_INDEX:
			out[i] = u.BlockIndex
		default:
			g.recordErr(glapi.INVALID_ENUM)
			return out
		}
	}

	return out
}

func (g *GL) GetUniformBlockIndex(program uint32, name string) uint32 {

	p := g.program(program)
	if p == nil {
		return glapi.INVALID_INDEX
	}

	for i := 0; i < len(p.Blocks); i++ {
		if p.Blocks[i].Name == name {
			return uint32(i)
		}
	}

	return glapi.INVALID_INDEX
}

func (g *GL) block(program, blockIndex uint32) *Block {

	p := g.program(program)
	if p == nil {
		return nil
	}

	if int(blockIndex) >= len(p.Blocks) {
		g.recordErr(glapi.INVALID_VALUE)
		return nil
	}

	return &p.Blocks[blockIndex]
}

func (g *GL) GetActiveUniformBlockName(program, blockIndex uint32) string {

	b := g.block(program, blockIndex)
	if b == nil {
		return ""
	}

	return b.Name
}

func (g *GL) GetActiveUniformBlocki(program, blockIndex, pname uint32) int32 {

	b := g.block(program, blockIndex)
	if b == nil {
		return 0
	}

	switch pname {
	case glapi.UNIFORM_BLOCK_DATA_SIZE:
		return b.DataSize
	case glapi.UNIFORM_BLOCK_BINDING:
		return int32(b.Binding)
	case glapi.UNIFORM_BLOCK_ACTIVE_UNIFORMS:
		return int32(len(b.Uniforms))
	case glapi.UNIFORM_BLOCK_NAME_LENGTH:
		return int32(len(b.Name) + 1)
	}

	g.recordErr(glapi.INVALID_ENUM)
	return 0
}

func (g *GL) UniformBlockBinding(program, blockIndex, bindPoint uint32) {
	if b := g.block(program, blockIndex); b != nil {
		b.Binding = bindPoint
	}
}

func (g *GL) setUniform(program uint32, loc int32, v UniformValue) {

	p := g.program(program)
	if p == nil {
		return
	}

	// Location -1 is silently ignored by real drivers
	if loc == -1 {
		return
	}

	p.Values[loc] = v
}

func (g *GL) ProgramUniform1i(program uint32, loc int32, v int32) {
	g.setUniform(program, loc, UniformValue{Ints: []int32{v}, Shape: "1i"})
}

func (g *GL) ProgramUniform1ui(program uint32, loc int32, v uint32) {
	g.setUniform(program, loc, UniformValue{Uints: []uint32{v}, Shape: "1ui"})
}

func (g *GL) ProgramUniform1f(program uint32, loc int32, v float32) {
	g.setUniform(program, loc, UniformValue{Floats: []float32{v}, Shape: "1f"})
}

func (g *GL) ProgramUniform1iv(program uint32, loc int32, v []int32) {
	g.setUniform(program, loc, UniformValue{Ints: append([]int32(nil), v...), Shape: "1iv"})
}

func (g *GL) ProgramUniform1fv(program uint32, loc int32, v []float32) {
	g.setUniform(program, loc, UniformValue{Floats: append([]float32(nil), v...), Shape: "1fv"})
}

func (g *GL) ProgramUniform2fv(program uint32, loc int32, v []float32) {
	g.setUniform(program, loc, UniformValue{Floats: append([]float32(nil), v...), Shape: "2fv"})
}

func (g *GL) ProgramUniform3fv(program uint32, loc int32, v []float32) {
	g.setUniform(program, loc, UniformValue{Floats: append([]float32(nil), v...), Shape: "3fv"})
}

func (g *GL) ProgramUniform4fv(program uint32, loc int32, v []float32) {
	g.setUniform(program, loc, UniformValue{Floats: append([]float32(nil), v...), Shape: "4fv"})
}

func (g *GL) ProgramUniformMatrix2fv(program uint32, loc int32, transpose bool, v []float32) {
	g.setUniform(program, loc, UniformValue{Floats: append([]float32(nil), v...), Transpose: transpose, Shape: "Matrix2fv"})
}

func (g *GL) ProgramUniformMatrix3fv(program uint32, loc int32, transpose bool, v []float32) {
	g.setUniform(program, loc, UniformValue{Floats: append([]float32(nil), v...), Transpose: transpose, Shape: "Matrix3fv"})
}

func (g *GL) ProgramUniformMatrix4fv(program uint32, loc int32, transpose bool, v []float32) {
	g.setUniform(program, loc, UniformValue{Floats: append([]float32(nil), v...), Transpose: transpose, Shape: "Matrix4fv"})
}

func (g *GL) ProgramUniform2iv(program uint32, loc int32, v []int32) {
	g.setUniform(program, loc, UniformValue{Ints: append([]int32(nil), v...), Shape: "2iv"})
}

func (g *GL) ProgramUniform3iv(program uint32, loc int32, v []int32) {
	g.setUniform(program, loc, UniformValue{Ints: append([]int32(nil), v...), Shape: "3iv"})
}

func (g *GL) ProgramUniform4iv(program uint32, loc int32, v []int32) {
	g.setUniform(program, loc, UniformValue{Ints: append([]int32(nil), v...), Shape: "4iv"})
}

func (g *GL) ProgramUniform2uiv(program uint32, loc int32, v []uint32) {
	g.setUniform(program, loc, UniformValue{Uints: append([]uint32(nil), v...), Shape: "2uiv"})
}

func (g *GL) ProgramUniform3uiv(program uint32, loc int32, v []uint32) {
	g.setUniform(program, loc, UniformValue{Uints: append([]uint32(nil), v...), Shape: "3uiv"})
}

func (g *GL) ProgramUniform4uiv(program uint32, loc int32, v []uint32) {
	g.setUniform(program, loc, UniformValue{Uints: append([]uint32(nil), v...), Shape: "4uiv"})
}

func (g *GL) ProgramUniformMatrix2x3fv(program uint32, loc int32, transpose bool, v []float32) {
	g.setUniform(program, loc, UniformValue{Floats: append([]float32(nil), v...), Transpose: transpose, Shape: "Matrix2x3fv"})
}

func (g *GL) ProgramUniformMatrix2x4fv(program uint32, loc int32, transpose bool, v []float32) {
	g.setUniform(program, loc, UniformValue{Floats: append([]float32(nil), v...), Transpose: transpose, Shape: "Matrix2x4fv"})
}

func (g *GL) ProgramUniformMatrix3x2fv(program uint32, loc int32, transpose bool, v []float32) {
	g.setUniform(program, loc, UniformValue{Floats: append([]float32(nil), v...), Transpose: transpose, Shape: "Matrix3x2fv"})
}

func (g *GL) ProgramUniformMatrix3x4fv(program uint32, loc int32, transpose bool, v []float32) {
	g.setUniform(program, loc, UniformValue{Floats: append([]float32(nil), v...), Transpose: transpose, Shape: "Matrix3x4fv"})
}

func (g *GL) ProgramUniformMatrix4x2fv(program uint32, loc int32, transpose bool, v []float32) {
	g.setUniform(program, loc, UniformValue{Floats: append([]float32(nil), v...), Transpose: transpose, Shape: "Matrix4x2fv"})
}

func (g *GL) ProgramUniformMatrix4x3fv(program uint32, loc int32, transpose bool, v []float32) {
	g.setUniform(program, loc, UniformValue{Floats: append([]float32(nil), v...), Transpose: transpose, Shape: "Matrix4x3fv"})
}

/*
	Framebuffers and renderbuffers
*/

func (g *GL) GenFramebuffer() uint32 {
	id := g.genId()
	g.Framebuffers[id] = &Framebuffer{Attachments: map[uint32]uint32{}, ReadBuffer: glapi.COLOR_ATTACHMENT0}
	return id
}

func (g *GL) DeleteFramebuffer(id uint32) {

	delete(g.Framebuffers, id)
	for target, bound := range g.FboBinds {
		if bound == id {
			g.FboBinds[target] = 0
		}
	}
}

func (g *GL) BindFramebuffer(target, id uint32) {

	if id != 0 && g.Framebuffers[id] == nil {
		g.recordErr(glapi.INVALID_OPERATION)
		return
	}

	if target == glapi.FRAMEBUFFER {
		g.FboBinds[glapi.READ_FRAMEBUFFER] = id
		g.FboBinds[glapi.DRAW_FRAMEBUFFER] = id
		return
	}

	g.FboBinds[target] = id
}

// BoundFramebuffer returns the id bound to target, with FRAMEBUFFER meaning the draw framebuffer
func (g *GL) BoundFramebuffer(target uint32) uint32 {

	if target == glapi.FRAMEBUFFER {
		target = glapi.DRAW_FRAMEBUFFER
	}

	return g.FboBinds[target]
}

func (g *GL) boundFbo(target uint32) *Framebuffer {

	f := g.Framebuffers[g.BoundFramebuffer(target)]
	if f == nil {
		g.recordErr(glapi.INVALID_OPERATION)
	}

	return f
}

func (g *GL) CheckFramebufferStatus(target uint32) uint32 {

	id := g.BoundFramebuffer(target)
	if id == 0 {
		return glapi.FRAMEBUFFER_COMPLETE
	}

	if g.FramebufferStatus != 0 {
		return g.FramebufferStatus
	}

	if len(g.Framebuffers[id].Attachments) == 0 {
		return glapi.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT
	}

	return glapi.FRAMEBUFFER_COMPLETE
}

func (g *GL) FramebufferTexture2D(target, attachment, texTarget, texture uint32, level int32) {

	f := g.boundFbo(target)
	if f == nil {
		return
	}

	if texture != 0 && g.Textures[texture] == nil {
		g.recordErr(glapi.INVALID_OPERATION)
		return
	}

	if texture == 0 {
		delete(f.Attachments, attachment)
		return
	}

	f.Attachments[attachment] = texture
}

func (g *GL) FramebufferTextureLayer(target, attachment, texture uint32, level, layer int32) {
	g.FramebufferTexture2D(target, attachment, 0, texture, level)
}

func (g *GL) FramebufferRenderbuffer(target, attachment, rbTarget, renderbuffer uint32) {

	f := g.boundFbo(target)
	if f == nil {
		return
	}

	if renderbuffer != 0 && g.Renderbuffers[renderbuffer] == nil {
		g.recordErr(glapi.INVALID_OPERATION)
		return
	}

	if renderbuffer == 0 {
		delete(f.Attachments, attachment)
		return
	}

	f.Attachments[attachment] = renderbuffer
}

func (g *GL) DrawBuffers(bufs []uint32) {
	if f := g.boundFbo(glapi.DRAW_FRAMEBUFFER); f != nil {
		f.DrawBuffers = append([]uint32(nil), bufs...)
	}
}

func (g *GL) ReadBuffer(src uint32) {
	if f := g.boundFbo(glapi.READ_FRAMEBUFFER); f != nil {
		f.ReadBuffer = src
	}
}

func (g *GL) BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter uint32) {
	g.Blits = append(g.Blits, BlitCall{
		ReadFbo: g.FboBinds[glapi.READ_FRAMEBUFFER],
		DrawFbo: g.FboBinds[glapi.DRAW_FRAMEBUFFER],
		Src:     [4]int32{srcX0, srcY0, srcX1, srcY1},
		Dst:     [4]int32{dstX0, dstY0, dstX1, dstY1},
		Mask:    mask,
		Filter:  filter,
	})
}

func (g *GL) GenRenderbuffer() uint32 {
	id := g.genId()
	g.Renderbuffers[id] = &Renderbuffer{}
	return id
}

func (g *GL) DeleteRenderbuffer(id uint32) {

	delete(g.Renderbuffers, id)
	if g.BoundRbo == id {
		g.BoundRbo = 0
	}
}

func (g *GL) BindRenderbuffer(target, id uint32) {

	if id != 0 && g.Renderbuffers[id] == nil {
		g.recordErr(glapi.INVALID_OPERATION)
		return
	}

	g.BoundRbo = id
}

func (g *GL) RenderbufferStorage(target, internalFormat uint32, width, height int32) {
	g.RenderbufferStorageMultisample(target, 0, internalFormat, width, height)
}

func (g *GL) RenderbufferStorageMultisample(target uint32, samples int32, internalFormat uint32, width, height int32) {

	rb := g.Renderbuffers[g.BoundRbo]
	if rb == nil {
		g.recordErr(glapi.INVALID_OPERATION)
		return
	}

	rb.Samples, rb.InternalFormat, rb.Width, rb.Height = samples, internalFormat, width, height
}

/*
	Queries
*/

func (g *GL) GenQuery() uint32 {
	id := g.genId()
	g.Queries[id] = &Query{}
	return id
}

func (g *GL) DeleteQuery(id uint32) {
	delete(g.Queries, id)
}

func (g *GL) BeginQuery(target, id uint32) {

	q := g.Queries[id]
	if q == nil || q.Active || g.ActiveQueries[target] != 0 {
		g.recordErr(glapi.INVALID_OPERATION)
		return
	}

	q.Target = target
	q.Active = true
	q.Available = false
	g.ActiveQueries[target] = id
}

func (g *GL) EndQuery(target uint32) {

	id := g.ActiveQueries[target]
	if id == 0 {
		g.recordErr(glapi.INVALID_OPERATION)
		return
	}

	g.ActiveQueries[target] = 0
	if q := g.Queries[id]; q != nil {
		q.Active = false
	}
}

func (g *GL) QueryCounter(id, target uint32) {

	q := g.Queries[id]
	if q == nil || target != glapi.TIMESTAMP {
		g.recordErr(glapi.INVALID_OPERATION)
		return
	}

	q.Target = target
	q.Available = false
}

// CompleteQuery makes a query result available, as if the GPU finished the work
func (g *GL) CompleteQuery(id uint32, result uint64) {
	if q := g.Queries[id]; q != nil {
		q.Result = result
		q.Available = true
	}
}

func (g *GL) GetQueryObjectui(id, pname uint32) uint32 {
	return uint32(g.GetQueryObjectui64(id, pname))
}

func (g *GL) GetQueryObjectui64(id, pname uint32) uint64 {

	q := g.Queries[id]
	if q == nil || q.Active {
		g.recordErr(glapi.INVALID_OPERATION)
		return 0
	}

	switch pname {
	case glapi.QUERY_RESULT_AVAILABLE:
		if q.Available {
			return glapi.TRUE
		}
		return glapi.FALSE
	case glapi.QUERY_RESULT:
		// A real driver blocks here, the fake just completes the query
		q.Available = true
		return q.Result
	}

	g.recordErr(glapi.INVALID_ENUM)
	return 0
}

/*
	Sync objects
*/

func (g *GL) FenceSync(condition, flags uint32) uintptr {

	if condition != glapi.SYNC_GPU_COMMANDS_COMPLETE || flags != 0 {
		g.recordErr(glapi.INVALID_ENUM)
		return 0
	}

	g.nextSync++
	g.Fences[g.nextSync] = &Fence{Signaled: g.NextFenceSignaled, PollsUntilSignaled: g.FencePolls}
	return g.nextSync
}

func (g *GL) DeleteSync(sync uintptr) {
	delete(g.Fences, sync)
}

func (g *GL) pollFence(f *Fence) {

	if f.Signaled || f.PollsUntilSignaled == 0 {
		return
	}

	f.PollsUntilSignaled--
	if f.PollsUntilSignaled == 0 {
		f.Signaled = true
	}
}

// SignalFence marks a fence as passed, as if the GPU reached it
func (g *GL) SignalFence(sync uintptr) {
	if f := g.Fences[sync]; f != nil {
		f.Signaled = true
	}
}

func (g *GL) ClientWaitSync(sync uintptr, flags uint32, timeoutNs uint64) uint32 {

	f := g.Fences[sync]
	if f == nil {
		g.recordErr(glapi.INVALID_VALUE)
		return glapi.WAIT_FAILED
	}

	if flags&glapi.SYNC_FLUSH_COMMANDS_BIT != 0 {
		g.Flushes++
	}

	if f.Signaled {
		return glapi.ALREADY_SIGNALED
	}

	g.pollFence(f)
	if f.Signaled {
		return glapi.CONDITION_SATISFIED
	}

	return glapi.TIMEOUT_EXPIRED
}

func (g *GL) WaitSync(sync uintptr, flags uint32, timeoutNs uint64) {

	if g.Fences[sync] == nil {
		g.recordErr(glapi.INVALID_VALUE)
		return
	}

	if flags != 0 || timeoutNs != glapi.TIMEOUT_IGNORED {
		g.recordErr(glapi.INVALID_VALUE)
	}
}

func (g *GL) GetSynci(sync uintptr, pname uint32) int32 {

	f := g.Fences[sync]
	if f == nil {
		g.recordErr(glapi.INVALID_VALUE)
		return 0
	}

	if pname != glapi.SYNC_STATUS {
		g.recordErr(glapi.INVALID_ENUM)
		return 0
	}

	g.pollFence(f)
	if f.Signaled {
		return glapi.SIGNALED
	}

	return glapi.UNSIGNALED
}

/*
	State and drawing
*/

func (g *GL) GetError() uint32 {

	if len(g.Errors) == 0 {
		return glapi.NO_ERROR
	}

	code := g.Errors[0]
	g.Errors = g.Errors[1:]
	return code
}

func (g *GL) GetString(name uint32) string {
	return g.Strings[name]
}

func (g *GL) GetIntegerv(pname uint32) int32 {

	if pname == glapi.VERTEX_ARRAY_BINDING {
		return int32(g.BoundVao)
	}

	return g.Integers[pname]
}

func (g *GL) Viewport(x, y, width, height int32) {
	g.Viewports = append(g.Viewports, [4]int32{x, y, width, height})
}

func (g *GL) Enable(capability uint32) {
	g.Caps[capability] = true
}

func (g *GL) Disable(capability uint32) {
	delete(g.Caps, capability)
}

func (g *GL) ClearColor(r, gr, b, a float32) {
}

func (g *GL) Clear(mask uint32) {
}

func (g *GL) DrawArrays(mode uint32, first, count int32) {
	g.Draws++
}

func (g *GL) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	g.Draws++
}

func (g *GL) Flush() {
	g.Flushes++
}

func (g *GL) Finish() {
	for _, f := range g.Fences {
		f.Signaled = true
	}
}
