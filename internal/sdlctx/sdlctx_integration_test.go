//go:build glintegration

package sdlctx_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/bloeys/glw/buffers"
	"github.com/bloeys/glw/fences"
	"github.com/bloeys/glw/framebuffers"
	"github.com/bloeys/glw/glapi"
	"github.com/bloeys/glw/internal/sdlctx"
	"github.com/bloeys/glw/logging"
	"github.com/bloeys/glw/queries"
	"github.com/bloeys/glw/shaders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var win *sdlctx.Window

// Tests run on the main goroutine here, which Init locks to the thread owning the context
func TestMain(m *testing.M) {

	cfg := sdlctx.DefaultConfig()
	cfg.Title = "glw integration"
	cfg.Width = 64
	cfg.Height = 64
	cfg.Hidden = true
	cfg.VSync = false

	if err := sdlctx.Init(cfg); err != nil {
		logging.ErrLog.Println("Skipping integration tests, SDL init failed:", err)
		os.Exit(0)
	}

	var err error
	win, err = sdlctx.CreateWindow(cfg)
	if err != nil {
		logging.ErrLog.Println("Skipping integration tests, no OpenGL 4.1 context:", err)
		os.Exit(0)
	}

	code := m.Run()
	win.Destroy()
	os.Exit(code)
}

func TestBufferGrowthKeepsContents(t *testing.T) {

	b := buffers.NewBufferWithData(buffers.BufTarget_Array, []byte{1, 2, 3, 4}, buffers.BufUsage_Dynamic_Draw)
	defer b.Delete()

	oldId := b.Id
	b.SubData(6, []byte{9, 9})
	assert.NotEqual(t, oldId, b.Id)
	assert.Equal(t, 8, b.Size())

	out := make([]byte, 4)
	require.NoError(t, b.GetSubData(0, out))
	assert.Equal(t, []byte{1, 2, 3, 4}, out)

	assert.NoError(t, glapi.CheckErrors(win.Driver, "buffer test"))
}

func TestProgramIntrospection(t *testing.T) {

	prog, err := shaders.LoadAndCompileCombinedShaderSrc([]byte(`
//shader:vertex
#version 410
layout(std140) uniform Matrices { mat4 projView; };
in vec3 vertPosIn;
uniform vec3 offsets[4];
void main() { gl_Position = projView * vec4(vertPosIn + offsets[gl_VertexID % 4], 1.0); }

//shader:fragment
#version 410
out vec4 fragColor;
uniform float alpha;
void main() { fragColor = vec4(1.0, 1.0, 1.0, alpha); }
`))
	require.NoError(t, err)
	defer prog.Delete()

	assert.Equal(t, []string{"vertPosIn"}, prog.AttribNames())
	assert.Equal(t, []string{"alpha", "offsets", "projView"}, prog.UniformNames())
	assert.Equal(t, []string{"Matrices"}, prog.UniformBlockNames())

	offsets, ok := prog.Uniform("offsets")
	require.True(t, ok)
	assert.Equal(t, int32(4), offsets.Size)

	projView, ok := prog.Uniform("projView")
	require.True(t, ok)
	assert.True(t, projView.InBlock())
	assert.Equal(t, int32(-1), projView.Location)

	block, ok := prog.UniformBlock("Matrices")
	require.True(t, ok)
	assert.Equal(t, int32(64), block.DataSize)

	require.NoError(t, prog.SetUniformBlockBinding("Matrices", 2))
	assert.NoError(t, prog.Validate())

	_, err = shaders.LoadAndCompileCombinedShaderSrc([]byte("//shader:vertex\n#version 410\nvoid main() { nope }\n//shader:fragment\n#version 410\nvoid main() {}\n"))
	assert.ErrorIs(t, err, shaders.ErrCompileFailed)
}

func TestFramebufferCompleteness(t *testing.T) {

	fbo := framebuffers.NewFramebuffer(32, 32)
	defer fbo.Delete()

	assert.ErrorIs(t, fbo.CheckComplete(), framebuffers.ErrIncomplete)

	fbo.NewColorAttachment(framebuffers.AttachmentType_Texture, framebuffers.AttachmentFormat_RGBA8)
	fbo.NewDepthStencilAttachment(framebuffers.AttachmentType_Renderbuffer, framebuffers.AttachmentFormat_Depth24Stencil8)
	assert.NoError(t, fbo.CheckComplete())
}

func TestQueryAndFence(t *testing.T) {

	q := queries.NewQuery(queries.QueryTarget_TimeElapsed)
	defer q.Delete()

	q.Run(func() {
		win.Driver.Clear(glapi.COLOR_BUFFER_BIT)
	})

	f := fences.NewFence()
	defer f.Delete()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, f.Await(ctx, time.Millisecond))
	assert.True(t, f.IsSignaled())

	_, err := q.WaitResult(ctx)
	assert.NoError(t, err)
	assert.False(t, q.IsPending())
}
