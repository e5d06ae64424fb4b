package shaders_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bloeys/glw/glapi"
	"github.com/bloeys/glw/internal/glfake"
	"github.com/bloeys/glw/shaders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const combinedSrc = `//shader:vertex
#version 410
in vec3 vertPosIn;
void main() { gl_Position = vec4(vertPosIn, 1.0); }

//shader:fragment
#version 410
out vec4 fragColor;
void main() { fragColor = vec4(1); }
`

func newFake(t *testing.T) *glfake.GL {
	t.Helper()
	g := glfake.New()
	glapi.SetCurrent(g)
	t.Cleanup(func() { glapi.SetCurrent(nil) })
	return g
}

func TestCompileShader(t *testing.T) {

	g := newFake(t)
	g.CompileFailMarker = "BROKEN"

	s, err := shaders.CompileShaderOfType([]byte("void main() {}"), shaders.ShaderType_Vertex)
	require.NoError(t, err)
	assert.True(t, s.IsCompiled())
	assert.Equal(t, uint32(glapi.VERTEX_SHADER), g.Shaders[s.Id].Type)
	assert.Empty(t, s.InfoLog())

	s.Delete()
	s.Delete()
	assert.Zero(t, s.Id)
	assert.Empty(t, g.Shaders)

	_, err = shaders.CompileShaderOfType([]byte("BROKEN"), shaders.ShaderType_Fragment)
	require.ErrorIs(t, err, shaders.ErrCompileFailed)
	assert.Contains(t, err.Error(), "syntax error near 'BROKEN'")
	assert.Empty(t, g.Shaders, "failed shaders are deleted")
}

func TestShaderTypes(t *testing.T) {

	assert.Equal(t, uint32(glapi.TESS_CONTROL_SHADER), shaders.ShaderType_TessControl.ToGl())
	assert.Equal(t, uint32(glapi.TESS_EVALUATION_SHADER), shaders.ShaderType_TessEvaluation.ToGl())
	assert.Equal(t, "geometry", shaders.ShaderType_Geometry.String())
	assert.Panics(t, func() { shaders.ShaderType_Unknown.ToGl() })
}

func TestCombinedShader(t *testing.T) {

	g := newFake(t)

	prog, err := shaders.LoadAndCompileCombinedShaderSrc([]byte(combinedSrc))
	require.NoError(t, err)
	assert.True(t, prog.IsLinked())
	assert.Empty(t, g.Shaders, "stage shaders are deleted after link")
	assert.Empty(t, g.Programs[prog.Id].Shaders)

	path := filepath.Join(t.TempDir(), "simple.glsl")
	require.NoError(t, os.WriteFile(path, []byte(combinedSrc), 0o644))

	prog2, err := shaders.LoadAndCompileCombinedShader(path)
	require.NoError(t, err)
	assert.True(t, prog2.IsLinked())

	_, err = shaders.LoadAndCompileCombinedShader(filepath.Join(t.TempDir(), "missing.glsl"))
	assert.Error(t, err)
}

func TestCombinedShaderErrors(t *testing.T) {

	g := newFake(t)
	g.CompileFailMarker = "BROKEN"

	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{name: "no markers", src: "void main() {}", msg: "minimum shader types"},
		{name: "no fragment", src: "//shader:vertex\nvoid main() {}", msg: "no valid fragment shader"},
		{name: "no vertex", src: "//shader:fragment\nvoid main() {}", msg: "no valid vertex shader"},
		{name: "unknown stage", src: "//shader:compute\nvoid main() {}", msg: "unknown shader type 'compute'"},
		{name: "duplicate stage", src: "//shader:vertex\nA\n//shader:vertex\nB", msg: "more than one '//shader:vertex'"},
		{name: "compile error", src: "//shader:vertex\nBROKEN\n//shader:fragment\nvoid main() {}", msg: "BROKEN"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {

			prog, err := shaders.LoadAndCompileCombinedShaderSrc([]byte(tc.src))
			require.Error(t, err)
			assert.Nil(t, prog)
			assert.Contains(t, err.Error(), tc.msg)
			assert.Empty(t, g.Shaders)
			assert.Empty(t, g.Programs)
		})
	}
}

func TestCombinedShaderErrorLinesMatchFile(t *testing.T) {

	g := newFake(t)
	g.CompileFailMarker = "BROKEN"

	withVersion := `//shader:vertex
#version 410
void main() {}

//shader:fragment
#version 410
out vec4 fragColor;
BROKEN
`
	_, err := shaders.LoadAndCompileCombinedShaderSrc([]byte(withVersion))
	require.ErrorIs(t, err, shaders.ErrCompileFailed)
	assert.Contains(t, err.Error(), "fragment section starting at line 6")
	assert.Contains(t, err.Error(), "0:8(1)", "reported line is the line in the combined file")

	withoutVersion := "//shader:vertex\nBROKEN\n//shader:fragment\nvoid main() {}"
	_, err = shaders.LoadAndCompileCombinedShaderSrc([]byte(withoutVersion))
	require.ErrorIs(t, err, shaders.ErrCompileFailed)
	assert.Contains(t, err.Error(), "vertex section starting at line 2")
	assert.Contains(t, err.Error(), "0:2(1)")

	leadingBlank := "//shader:vertex\nvoid main() {}\n//shader:fragment\n\nBROKEN"
	_, err = shaders.LoadAndCompileCombinedShaderSrc([]byte(leadingBlank))
	require.ErrorIs(t, err, shaders.ErrCompileFailed)
	assert.Contains(t, err.Error(), "0:5(1)")
}

func TestCombinedShaderLinkError(t *testing.T) {

	g := newFake(t)

	// The program is the first object created in a fresh context
	g.LinkResults[1] = glfake.LinkResult{Fail: true, Log: "error: fragColor not written"}

	prog, err := shaders.LoadAndCompileCombinedShaderSrc([]byte(combinedSrc))
	require.ErrorIs(t, err, shaders.ErrLinkFailed)
	assert.Nil(t, prog)
	assert.Contains(t, err.Error(), "fragColor not written")
	assert.Empty(t, g.Programs)
	assert.Empty(t, g.Shaders)
}
