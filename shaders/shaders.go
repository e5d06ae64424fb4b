package shaders

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/bloeys/glw/assert"
	"github.com/bloeys/glw/glapi"
	"github.com/bloeys/glw/logging"
)

var (
	ErrCompileFailed = errors.New("shader compilation failed")
	ErrLinkFailed    = errors.New("shader program link failed")
	ErrNotLinked     = errors.New("shader program is not linked")
	ErrUnknownName   = errors.New("no active resource with that name")
)

type Shader struct {
	Id   uint32
	Type ShaderType
	gl   glapi.GL
}

func (s *Shader) SetSource(src string) {
	assert.T(s.Id != 0, "SetSource called on a deleted shader")
	s.gl.ShaderSource(s.Id, src)
}

// Compile returns an error wrapping ErrCompileFailed and holding the info log if compilation fails
func (s *Shader) Compile() error {

	assert.T(s.Id != 0, "Compile called on a deleted shader")

	s.gl.CompileShader(s.Id)
	if s.IsCompiled() {
		return nil
	}

	infoLog := s.InfoLog()
	logging.ErrLog.Printf("Compilation of %s shader with id %d failed. Err: %s\n", s.Type, s.Id, infoLog)
	return fmt.Errorf("%w: %s shader id=%d: %s", ErrCompileFailed, s.Type, s.Id, infoLog)
}

func (s *Shader) IsCompiled() bool {
	return s.gl.GetShaderi(s.Id, glapi.COMPILE_STATUS) == glapi.TRUE
}

func (s *Shader) InfoLog() string {

	if s.gl.GetShaderi(s.Id, glapi.INFO_LOG_LENGTH) == 0 {
		return ""
	}

	return s.gl.GetShaderInfoLog(s.Id)
}

func (s *Shader) Delete() {

	if s.Id == 0 {
		return
	}

	s.gl.DeleteShader(s.Id)
	s.Id = 0
	runtime.SetFinalizer(s, nil)
}

func NewShader(shaderType ShaderType) (*Shader, error) {

	s := &Shader{
		Type: shaderType,
		gl:   glapi.Current(),
	}

	s.Id = s.gl.CreateShader(shaderType.ToGl())
	if s.Id == 0 {
		if err := glapi.CheckErrors(s.gl, "CreateShader"); err != nil {
			return nil, fmt.Errorf("failed to create OpenGL %s shader: %w", shaderType, err)
		}
		return nil, fmt.Errorf("failed to create OpenGL %s shader", shaderType)
	}

	runtime.SetFinalizer(s, func(s *Shader) {
		glapi.QueueRelease(s.gl, glapi.ObjectKind_Shader, s.Id)
	})

	return s, nil
}

func CompileShaderOfType(shaderSource []byte, shaderType ShaderType) (*Shader, error) {

	s, err := NewShader(shaderType)
	if err != nil {
		return nil, err
	}

	s.SetSource(string(shaderSource))
	if err := s.Compile(); err != nil {
		s.Delete()
		return nil, err
	}

	return s, nil
}

func LoadAndCompileCombinedShader(shaderPath string) (*Program, error) {

	combinedSource, err := os.ReadFile(shaderPath)
	if err != nil {
		logging.ErrLog.Println("Failed to read shader. Err: ", err)
		return nil, err
	}

	return LoadAndCompileCombinedShaderSrc(combinedSource)
}

// LoadAndCompileCombinedShaderSrc builds a program from one source holding several stages, each starting
// with a marker line like '//shader:vertex'. Vertex and fragment stages are required.
// The stage shaders are deleted once the program is linked.
// Compile errors report line numbers of the combined source.
func LoadAndCompileCombinedShaderSrc(shaderSrc []byte) (*Program, error) {

	shaderSources := bytes.Split(shaderSrc, []byte("//shader:"))
	if len(shaderSources) < 2 {
		return nil, errors.New("failed to read combined shader. The minimum shader types to have are '//shader:vertex' and '//shader:fragment'")
	}

	prog, err := NewProgram()
	if err != nil {
		return nil, fmt.Errorf("failed to create new shader program: %w", err)
	}

	var stages []*Shader
	cleanup := func() {
		for i := 0; i < len(stages); i++ {
			stages[i].Delete()
		}
	}

	seen := map[ShaderType]bool{}
	line := 1
	for i := 0; i < len(shaderSources); i++ {

		src := shaderSources[i]
		markerLine := line
		line += bytes.Count(src, []byte("\n"))

		// This can happen when the shader type is at the start of the file
		if len(bytes.TrimSpace(src)) == 0 {
			continue
		}

		// Anything before the first marker isn't a stage
		if i == 0 {
			continue
		}

		marker, body, _ := bytes.Cut(src, []byte("\n"))
		shdrType := shaderTypeFromMarker(string(bytes.TrimSpace(marker)))
		if shdrType == ShaderType_Unknown {
			cleanup()
			prog.Delete()
			return nil, fmt.Errorf("unknown shader type '%s'. Must be one of '//shader:vertex', '//shader:fragment', '//shader:geometry', '//shader:tess_control' or '//shader:tess_evaluation'", bytes.TrimSpace(marker))
		}

		if seen[shdrType] {
			cleanup()
			prog.Delete()
			return nil, fmt.Errorf("combined shader has more than one '//shader:%s' section", shdrType)
		}
		seen[shdrType] = true

		shdr, err := CompileShaderOfType(withLineDirective(body, markerLine+1), shdrType)
		if err != nil {
			cleanup()
			prog.Delete()
			return nil, fmt.Errorf("%s section starting at line %d: %w", shdrType, markerLine+1, err)
		}

		stages = append(stages, shdr)
		prog.AttachShader(shdr)
	}

	if !seen[ShaderType_Vertex] {
		cleanup()
		prog.Delete()
		return nil, errors.New("no valid vertex shader found. Please put '//shader:vertex' before your vertex shader")
	}

	if !seen[ShaderType_Fragment] {
		cleanup()
		prog.Delete()
		return nil, errors.New("no valid fragment shader found. Please put '//shader:fragment' before your fragment shader")
	}

	err = prog.Link()
	for i := 0; i < len(stages); i++ {
		prog.DetachShader(stages[i])
	}
	cleanup()

	if err != nil {
		prog.Delete()
		return nil, err
	}

	return prog, nil
}

// withLineDirective adds a #line directive so the driver reports line numbers of the combined file.
// body starts at firstLine of that file. The directive goes after #version when there is one.
func withLineDirective(body []byte, firstLine int) []byte {

	lines := bytes.SplitAfter(body, []byte("\n"))
	for i := 0; i < len(lines); i++ {

		trimmed := bytes.TrimSpace(lines[i])
		if len(trimmed) == 0 {
			continue
		}

		if !bytes.HasPrefix(trimmed, []byte("#version")) {
			break
		}

		out := bytes.Join(lines[:i+1], nil)
		if !bytes.HasSuffix(out, []byte("\n")) {
			out = append(out, '\n')
		}

		out = fmt.Appendf(out, "#line %d\n", firstLine+i+1)
		return append(out, bytes.Join(lines[i+1:], nil)...)
	}

	return append(fmt.Appendf(nil, "#line %d\n", firstLine), body...)
}
