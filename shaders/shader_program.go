package shaders

import (
	"fmt"
	"runtime"
	"slices"
	"strings"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/glw/assert"
	"github.com/bloeys/glw/glapi"
	"github.com/bloeys/glw/logging"
	"golang.org/x/exp/maps"
)

// Variable is an active attribute or uniform of a linked program.
// Location is -1 for uniforms that live inside a uniform block.
type Variable struct {
	Name       string
	Location   int32
	Type       uint32
	Size       int32
	BlockIndex int32
}

func (v *Variable) InBlock() bool {
	return v.BlockIndex >= 0
}

type UniformBlock struct {
	Name     string
	Index    uint32
	DataSize int32
	Binding  uint32
}

// Program is a shader program. Active attributes, uniforms and uniform blocks are read back from the driver
// after every successful Link, so lookups never hit the driver.
type Program struct {
	Id uint32

	linked   bool
	attribs  map[string]Variable
	uniforms map[string]Variable
	blocks   map[string]UniformBlock

	gl glapi.GL
}

func (sp *Program) AttachShader(s *Shader) {
	assert.T(s != nil && s.Id != 0, "AttachShader called with a nil or deleted shader")
	sp.gl.AttachShader(sp.Id, s.Id)
}

func (sp *Program) DetachShader(s *Shader) {
	sp.gl.DetachShader(sp.Id, s.Id)
}

// BindAttribLocation takes effect on the next Link
func (sp *Program) BindAttribLocation(index uint32, name string) {
	sp.gl.BindAttribLocation(sp.Id, index, name)
}

// BindFragDataLocation takes effect on the next Link
func (sp *Program) BindFragDataLocation(colorNumber uint32, name string) {
	sp.gl.BindFragDataLocation(sp.Id, colorNumber, name)
}

// Link links the attached shaders. On failure the returned error wraps ErrLinkFailed and holds the info log,
// and the program is left without any active resources.
func (sp *Program) Link() error {

	assert.T(sp.Id != 0, "Link called on a deleted program")

	sp.gl.LinkProgram(sp.Id)

	if sp.gl.GetProgrami(sp.Id, glapi.LINK_STATUS) != glapi.TRUE {

		sp.linked = false
		sp.clearResources()

		infoLog := sp.InfoLog()
		logging.ErrLog.Printf("Linking of shader program with id %d failed. Err: %s\n", sp.Id, infoLog)
		return fmt.Errorf("%w: program id=%d: %s", ErrLinkFailed, sp.Id, infoLog)
	}

	if infoLog := sp.InfoLog(); infoLog != "" {
		logging.DebugLog.Printf("Shader program with id %d linked with log: %s\n", sp.Id, infoLog)
	}

	sp.linked = true
	sp.introspect()
	return nil
}

func (sp *Program) clearResources() {
	sp.attribs = map[string]Variable{}
	sp.uniforms = map[string]Variable{}
	sp.blocks = map[string]UniformBlock{}
}

func (sp *Program) introspect() {

	sp.clearResources()

	attribCount := uint32(sp.gl.GetProgrami(sp.Id, glapi.ACTIVE_ATTRIBUTES))
	for i := uint32(0); i < attribCount; i++ {

		name, size, xtype := sp.gl.GetActiveAttrib(sp.Id, i)

		// Built-ins like gl_VertexID are reported as active but have no location
		if strings.HasPrefix(name, "gl_") {
			continue
		}

		name = strings.TrimSuffix(name, "[0]")
		sp.attribs[name] = Variable{
			Name:       name,
			Location:   sp.gl.GetAttribLocation(sp.Id, name),
			Type:       xtype,
			Size:       size,
			BlockIndex: -1,
		}
	}

	uniformCount := uint32(sp.gl.GetProgrami(sp.Id, glapi.ACTIVE_UNIFORMS))
	if uniformCount > 0 {

		indices := make([]uint32, uniformCount)
		for i := uint32(0); i < uniformCount; i++ {
			indices[i] = i
		}

		blockIndices := sp.gl.GetActiveUniformsi(sp.Id, indices, glapi.UNIFORM_BLOCK_INDEX)
		for i := uint32(0); i < uniformCount; i++ {

			name, size, xtype := sp.gl.GetActiveUniform(sp.Id, i)
			name = strings.TrimSuffix(name, "[0]")

			v := Variable{
				Name:       name,
				Location:   -1,
				Type:       xtype,
				Size:       size,
				BlockIndex: blockIndices[i],
			}

			if !v.InBlock() {
				v.Location = sp.gl.GetUniformLocation(sp.Id, name)
			}

			sp.uniforms[name] = v
		}
	}

	blockCount := uint32(sp.gl.GetProgrami(sp.Id, glapi.ACTIVE_UNIFORM_BLOCKS))
	for i := uint32(0); i < blockCount; i++ {

		name := sp.gl.GetActiveUniformBlockName(sp.Id, i)
		sp.blocks[name] = UniformBlock{
			Name:     name,
			Index:    i,
			DataSize: sp.gl.GetActiveUniformBlocki(sp.Id, i, glapi.UNIFORM_BLOCK_DATA_SIZE),
			Binding:  uint32(sp.gl.GetActiveUniformBlocki(sp.Id, i, glapi.UNIFORM_BLOCK_BINDING)),
		}
	}
}

func (sp *Program) InfoLog() string {

	if sp.gl.GetProgrami(sp.Id, glapi.INFO_LOG_LENGTH) == 0 {
		return ""
	}

	return sp.gl.GetProgramInfoLog(sp.Id)
}

func (sp *Program) IsLinked() bool {
	return sp.linked
}

// Validate checks whether the program can run in the current GL state
func (sp *Program) Validate() error {

	if !sp.linked {
		return fmt.Errorf("%w: program id=%d", ErrNotLinked, sp.Id)
	}

	sp.gl.ValidateProgram(sp.Id)
	if sp.gl.GetProgrami(sp.Id, glapi.VALIDATE_STATUS) == glapi.TRUE {
		return nil
	}

	return fmt.Errorf("validation of shader program id=%d failed: %s", sp.Id, sp.InfoLog())
}

func (sp *Program) Bind() {
	assert.T(sp.linked, "Bind called on shader program id=%d that isn't linked", sp.Id)
	sp.gl.UseProgram(sp.Id)
}

func (sp *Program) UnBind() {
	sp.gl.UseProgram(0)
}

// AttribLoc returns -1 if there is no active attribute with this name
func (sp *Program) AttribLoc(name string) int32 {

	a, ok := sp.attribs[name]
	if !ok {
		return -1
	}

	return a.Location
}

// UnifLoc returns -1 if there is no active uniform with this name outside a uniform block
func (sp *Program) UnifLoc(name string) int32 {

	u, ok := sp.uniforms[name]
	if !ok {
		return -1
	}

	return u.Location
}

func (sp *Program) Attribute(name string) (Variable, bool) {
	a, ok := sp.attribs[name]
	return a, ok
}

func (sp *Program) Uniform(name string) (Variable, bool) {
	u, ok := sp.uniforms[name]
	return u, ok
}

func (sp *Program) UniformBlock(name string) (UniformBlock, bool) {
	b, ok := sp.blocks[name]
	return b, ok
}

func (sp *Program) AttribNames() []string {
	return sortedKeys(sp.attribs)
}

func (sp *Program) UniformNames() []string {
	return sortedKeys(sp.uniforms)
}

func (sp *Program) UniformBlockNames() []string {
	return sortedKeys(sp.blocks)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}

// SetUniformBlockBinding connects the named uniform block to a uniform buffer binding point
func (sp *Program) SetUniformBlockBinding(blockName string, bindPointIndex uint32) error {

	b, ok := sp.blocks[blockName]
	if !ok {
		return fmt.Errorf("%w: uniform block '%s' in program id=%d", ErrUnknownName, blockName, sp.Id)
	}

	sp.gl.UniformBlockBinding(sp.Id, b.Index, bindPointIndex)

	b.Binding = bindPointIndex
	sp.blocks[blockName] = b
	return nil
}

// unifLocForSet returns -1 for unknown names, which the driver ignores
func (sp *Program) unifLocForSet(uniformName string) int32 {

	assert.T(sp.linked, "setting uniform '%s' on shader program id=%d that isn't linked", uniformName, sp.Id)

	loc := sp.UnifLoc(uniformName)
	if loc == -1 {
		logging.DebugLog.Printf("Uniform '%s' is not active in shader program id=%d\n", uniformName, sp.Id)
	}

	return loc
}

func (sp *Program) SetUnifInt32(uniformName string, val int32) {
	sp.gl.ProgramUniform1i(sp.Id, sp.unifLocForSet(uniformName), val)
}

func (sp *Program) SetUnifUint32(uniformName string, val uint32) {
	sp.gl.ProgramUniform1ui(sp.Id, sp.unifLocForSet(uniformName), val)
}

func (sp *Program) SetUnifFloat32(uniformName string, val float32) {
	sp.gl.ProgramUniform1f(sp.Id, sp.unifLocForSet(uniformName), val)
}

func (sp *Program) SetUnifInt32Slice(uniformName string, vals []int32) {
	sp.gl.ProgramUniform1iv(sp.Id, sp.unifLocForSet(uniformName), vals)
}

func (sp *Program) SetUnifFloat32Slice(uniformName string, vals []float32) {
	sp.gl.ProgramUniform1fv(sp.Id, sp.unifLocForSet(uniformName), vals)
}

func (sp *Program) SetUnifVec2(uniformName string, vec2 *gglm.Vec2) {
	sp.gl.ProgramUniform2fv(sp.Id, sp.unifLocForSet(uniformName), vec2.Data[:])
}

func (sp *Program) SetUnifVec3(uniformName string, vec3 *gglm.Vec3) {
	sp.gl.ProgramUniform3fv(sp.Id, sp.unifLocForSet(uniformName), vec3.Data[:])
}

func (sp *Program) SetUnifVec4(uniformName string, vec4 *gglm.Vec4) {
	sp.gl.ProgramUniform4fv(sp.Id, sp.unifLocForSet(uniformName), vec4.Data[:])
}

func (sp *Program) SetUnifMat2(uniformName string, mat2 *gglm.Mat2) {
	sp.gl.ProgramUniformMatrix2fv(sp.Id, sp.unifLocForSet(uniformName), false, flattenColumns(mat2.Data[0][:], mat2.Data[1][:]))
}

func (sp *Program) SetUnifMat3(uniformName string, mat3 *gglm.Mat3) {
	sp.gl.ProgramUniformMatrix3fv(sp.Id, sp.unifLocForSet(uniformName), false, flattenColumns(mat3.Data[0][:], mat3.Data[1][:], mat3.Data[2][:]))
}

func (sp *Program) SetUnifMat4(uniformName string, mat4 *gglm.Mat4) {
	sp.gl.ProgramUniformMatrix4fv(sp.Id, sp.unifLocForSet(uniformName), false, flattenColumns(mat4.Data[0][:], mat4.Data[1][:], mat4.Data[2][:], mat4.Data[3][:]))
}

func (sp *Program) SetUnifIVec2(uniformName string, v [2]int32) {
	sp.gl.ProgramUniform2iv(sp.Id, sp.unifLocForSet(uniformName), v[:])
}

func (sp *Program) SetUnifIVec3(uniformName string, v [3]int32) {
	sp.gl.ProgramUniform3iv(sp.Id, sp.unifLocForSet(uniformName), v[:])
}

func (sp *Program) SetUnifIVec4(uniformName string, v [4]int32) {
	sp.gl.ProgramUniform4iv(sp.Id, sp.unifLocForSet(uniformName), v[:])
}

func (sp *Program) SetUnifUVec2(uniformName string, v [2]uint32) {
	sp.gl.ProgramUniform2uiv(sp.Id, sp.unifLocForSet(uniformName), v[:])
}

func (sp *Program) SetUnifUVec3(uniformName string, v [3]uint32) {
	sp.gl.ProgramUniform3uiv(sp.Id, sp.unifLocForSet(uniformName), v[:])
}

func (sp *Program) SetUnifUVec4(uniformName string, v [4]uint32) {
	sp.gl.ProgramUniform4uiv(sp.Id, sp.unifLocForSet(uniformName), v[:])
}

// SetUnifVec2Slice sets consecutive elements of a vec2 array uniform, starting at the element uniformName refers to
func (sp *Program) SetUnifVec2Slice(uniformName string, vecs []gglm.Vec2) {

	flat := make([]float32, 0, len(vecs)*2)
	for i := 0; i < len(vecs); i++ {
		flat = append(flat, vecs[i].Data[:]...)
	}

	sp.gl.ProgramUniform2fv(sp.Id, sp.unifLocForSet(uniformName), flat)
}

func (sp *Program) SetUnifVec3Slice(uniformName string, vecs []gglm.Vec3) {

	flat := make([]float32, 0, len(vecs)*3)
	for i := 0; i < len(vecs); i++ {
		flat = append(flat, vecs[i].Data[:]...)
	}

	sp.gl.ProgramUniform3fv(sp.Id, sp.unifLocForSet(uniformName), flat)
}

func (sp *Program) SetUnifVec4Slice(uniformName string, vecs []gglm.Vec4) {

	flat := make([]float32, 0, len(vecs)*4)
	for i := 0; i < len(vecs); i++ {
		flat = append(flat, vecs[i].Data[:]...)
	}

	sp.gl.ProgramUniform4fv(sp.Id, sp.unifLocForSet(uniformName), flat)
}

// Non-square matrices are passed as column-major floats, one or more matrices back to back.
// A matNxM has N columns of M rows.

func (sp *Program) SetUnifMat2x3(uniformName string, cols []float32) {
	checkMatLen(uniformName, cols, 2, 3)
	sp.gl.ProgramUniformMatrix2x3fv(sp.Id, sp.unifLocForSet(uniformName), false, cols)
}

func (sp *Program) SetUnifMat2x4(uniformName string, cols []float32) {
	checkMatLen(uniformName, cols, 2, 4)
	sp.gl.ProgramUniformMatrix2x4fv(sp.Id, sp.unifLocForSet(uniformName), false, cols)
}

func (sp *Program) SetUnifMat3x2(uniformName string, cols []float32) {
	checkMatLen(uniformName, cols, 3, 2)
	sp.gl.ProgramUniformMatrix3x2fv(sp.Id, sp.unifLocForSet(uniformName), false, cols)
}

func (sp *Program) SetUnifMat3x4(uniformName string, cols []float32) {
	checkMatLen(uniformName, cols, 3, 4)
	sp.gl.ProgramUniformMatrix3x4fv(sp.Id, sp.unifLocForSet(uniformName), false, cols)
}

func (sp *Program) SetUnifMat4x2(uniformName string, cols []float32) {
	checkMatLen(uniformName, cols, 4, 2)
	sp.gl.ProgramUniformMatrix4x2fv(sp.Id, sp.unifLocForSet(uniformName), false, cols)
}

func (sp *Program) SetUnifMat4x3(uniformName string, cols []float32) {
	checkMatLen(uniformName, cols, 4, 3)
	sp.gl.ProgramUniformMatrix4x3fv(sp.Id, sp.unifLocForSet(uniformName), false, cols)
}

func checkMatLen(uniformName string, cols []float32, colCount, rowCount int) {
	n := colCount * rowCount
	assert.T(len(cols) > 0 && len(cols)%n == 0, "mat%dx%d uniform '%s' needs a multiple of %d floats, got %d", colCount, rowCount, uniformName, n, len(cols))
}

func flattenColumns(cols ...[]float32) []float32 {

	out := make([]float32, 0, len(cols)*len(cols[0]))
	for i := 0; i < len(cols); i++ {
		out = append(out, cols[i]...)
	}

	return out
}

func (sp *Program) Delete() {

	if sp.Id == 0 {
		return
	}

	sp.gl.DeleteProgram(sp.Id)
	sp.Id = 0
	sp.linked = false
	sp.clearResources()
	runtime.SetFinalizer(sp, nil)
}

func NewProgram() (*Program, error) {

	sp := &Program{gl: glapi.Current()}

	sp.Id = sp.gl.CreateProgram()
	if sp.Id == 0 {
		if err := glapi.CheckErrors(sp.gl, "CreateProgram"); err != nil {
			return nil, fmt.Errorf("failed to create OpenGL program: %w", err)
		}
		return nil, fmt.Errorf("failed to create OpenGL program")
	}

	sp.clearResources()
	runtime.SetFinalizer(sp, func(sp *Program) {
		glapi.QueueRelease(sp.gl, glapi.ObjectKind_Program, sp.Id)
	})

	return sp, nil
}
